package main

import (
	"lpg-marketplace/internal/service"

	"github.com/spf13/cobra"
)

func seedCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "seed",
		Short: "Load the default cylinder catalog and payment methods",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, log, db, err := bootstrap()
			if err != nil {
				return err
			}

			services := service.NewServices(db, cfg.Settlement, log)
			if err := services.Catalog.Seed(cmd.Context()); err != nil {
				return err
			}

			log.Info("seed data loaded")
			return nil
		},
	}
}
