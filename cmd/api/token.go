package main

import (
	"fmt"
	"lpg-marketplace/internal/middleware"

	"github.com/spf13/cobra"
)

func tokenCmd() *cobra.Command {
	var (
		userID string
		role   string
		name   string
	)

	cmd := &cobra.Command{
		Use:   "token",
		Short: "Mint a bearer token for local development",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if role != middleware.RoleUser && role != middleware.RoleAdmin {
				return fmt.Errorf("role must be %q or %q", middleware.RoleUser, middleware.RoleAdmin)
			}

			cfg, err := loadConfig()
			if err != nil {
				return err
			}

			token, err := middleware.NewToken(cfg.Auth, userID, role, name)
			if err != nil {
				return err
			}

			fmt.Fprintln(cmd.OutOrStdout(), token)
			return nil
		},
	}

	cmd.Flags().StringVar(&userID, "user", "demo-user-001", "subject of the token")
	cmd.Flags().StringVar(&role, "role", middleware.RoleUser, "user or admin")
	cmd.Flags().StringVar(&name, "name", "Demo User", "display name stored in history rows")

	return cmd
}
