package config

import "time"

type Config struct {
	Environment Environment
	Log         Log
	HTTP        HTTPServer
	Database    Database
	Auth        Auth       `envPrefix:"AUTH_"`
	RateLimit   RateLimit  `envPrefix:"RATE_LIMIT_"`
	Telemetry   Telemetry  `envPrefix:"OTEL_"`
	Settlement  Settlement `envPrefix:"SETTLEMENT_"`
}

type Environment struct {
	Name string `env:"ENVIRONMENT" envDefault:"development"`
}

type Log struct {
	Level  string `env:"LOG_LEVEL" envDefault:"info"`
	Format string `env:"LOG_FORMAT" envDefault:"json"`
}

type HTTPServer struct {
	Host            string        `env:"HTTP_HOST" envDefault:"0.0.0.0"`
	Port            string        `env:"HTTP_PORT" envDefault:"8080"`
	ReadTimeout     time.Duration `env:"HTTP_READ_TIMEOUT" envDefault:"30s"`
	WriteTimeout    time.Duration `env:"HTTP_WRITE_TIMEOUT" envDefault:"30s"`
	ShutdownTimeout time.Duration `env:"HTTP_SHUTDOWN_TIMEOUT" envDefault:"30s"`
}

type Database struct {
	Driver          string        `env:"DB_DRIVER" envDefault:"sqlite"` // mysql, postgres, sqlite
	URL             string        `env:"DATABASE_URL" envDefault:"lpg.db"`
	MaxIdleConns    int           `env:"DB_MAX_IDLE_CONNS" envDefault:"10"`
	MaxOpenConns    int           `env:"DB_MAX_OPEN_CONNS" envDefault:"50"`
	ConnMaxLifetime time.Duration `env:"DB_CONN_MAX_LIFETIME" envDefault:"1h"`
}

type Auth struct {
	JWTSecret string        `env:"JWT_SECRET" envDefault:"change-me"`
	Issuer    string        `env:"ISSUER" envDefault:"lpg-marketplace"`
	TokenTTL  time.Duration `env:"TOKEN_TTL" envDefault:"24h"`
}

type RateLimit struct {
	RPS float64 `env:"RPS" envDefault:"20"`
}

type Telemetry struct {
	Endpoint    string `env:"EXPORTER_OTLP_ENDPOINT"`
	ServiceName string `env:"SERVICE_NAME" envDefault:"lpg-marketplace"`
}

type Settlement struct {
	// LockItems takes row locks on the items of a checkout before folding their stock.
	LockItems bool `env:"LOCK_ITEMS" envDefault:"true"`
}

func (h HTTPServer) Address() string {
	return h.Host + ":" + h.Port
}
