package middleware

import (
	"lpg-marketplace/internal/config"
	"lpg-marketplace/internal/model"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/labstack/echo/v4"
)

const (
	RoleUser  = "user"
	RoleAdmin = "admin"

	userIDKey = "user_id"
	roleKey   = "role"
	actorKey  = "actor"
)

type Claims struct {
	Role string `json:"role"`
	Name string `json:"name"`
	jwt.RegisteredClaims
}

// NewToken signs an HS256 token for the given user.
func NewToken(cfg config.Auth, userID, role, name string) (string, error) {
	now := time.Now()
	claims := Claims{
		Role: role,
		Name: name,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   userID,
			Issuer:    cfg.Issuer,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(cfg.TokenTTL)),
		},
	}

	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(cfg.JWTSecret))
}

func parseToken(cfg config.Auth, raw string) (*Claims, error) {
	claims := &Claims{}
	_, err := jwt.ParseWithClaims(raw, claims, func(*jwt.Token) (interface{}, error) {
		return []byte(cfg.JWTSecret), nil
	},
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithIssuer(cfg.Issuer),
		jwt.WithExpirationRequired(),
	)
	if err != nil {
		return nil, err
	}
	if claims.Subject == "" {
		return nil, model.ErrUnauthorized
	}
	return claims, nil
}

// AuthMiddleware verifies the bearer token and puts the caller on the echo context.
func AuthMiddleware(cfg config.Auth) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			header := c.Request().Header.Get(echo.HeaderAuthorization)
			raw, ok := strings.CutPrefix(header, "Bearer ")
			if !ok || raw == "" {
				return model.ErrUnauthorized
			}

			claims, err := parseToken(cfg, raw)
			if err != nil {
				return model.ErrUnauthorized
			}

			actor := model.UserActor(claims.Subject, claims.Name)
			if claims.Role == RoleAdmin {
				actor = model.AdminActor(claims.Subject, claims.Name)
			}

			c.Set(userIDKey, claims.Subject)
			c.Set(roleKey, claims.Role)
			c.Set(actorKey, actor)
			return next(c)
		}
	}
}

// RequireAdmin must run after AuthMiddleware.
func RequireAdmin() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			if !ActorFrom(c).IsAdmin() {
				return model.ErrForbidden
			}
			return next(c)
		}
	}
}

func ActorFrom(c echo.Context) model.Actor {
	actor, _ := c.Get(actorKey).(model.Actor)
	return actor
}

func UserIDFrom(c echo.Context) string {
	userID, _ := c.Get(userIDKey).(string)
	return userID
}
