package main

import (
	"fmt"
	"lpg-marketplace/internal/client"
	"lpg-marketplace/internal/config"
	"lpg-marketplace/internal/logger"
	"os"

	"github.com/caarlos0/env/v10"
	"github.com/joho/godotenv"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
	"gorm.io/gorm"
)

func main() {
	// load .env into os.Environ
	if err := godotenv.Load(); err != nil {
		fmt.Println("No .env file found (ok in prod)")
	}

	rootCmd := &cobra.Command{
		Use:   "lpg-marketplace",
		Short: "LPG marketplace inventory and settlement API",
		RunE:  runServe,
	}

	rootCmd.AddCommand(serveCmd())
	rootCmd.AddCommand(migrateCmd())
	rootCmd.AddCommand(seedCmd())
	rootCmd.AddCommand(tokenCmd())

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func loadConfig() (*config.Config, error) {
	cfg := &config.Config{}
	if err := env.Parse(cfg); err != nil {
		return nil, fmt.Errorf("parse config: %w", err)
	}
	return cfg, nil
}

// bootstrap loads config and opens the database with an up-to-date schema.
func bootstrap() (*config.Config, *logrus.Logger, *gorm.DB, error) {
	cfg, err := loadConfig()
	if err != nil {
		return nil, nil, nil, err
	}

	log := logger.New(cfg.Log)

	db, err := client.InitDBClient(cfg.Database)
	if err != nil {
		return nil, nil, nil, err
	}
	if err := client.Migrate(db); err != nil {
		return nil, nil, nil, fmt.Errorf("migrate: %w", err)
	}

	return cfg, log, db, nil
}
