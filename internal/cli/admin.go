package cli

import (
	"fmt"
	"time"

	"github.com/SscSPs/landed_pricing_app/internal/core/domain"
	"github.com/SscSPs/landed_pricing_app/internal/middleware"
	"github.com/SscSPs/landed_pricing_app/pkg/database"
	"github.com/golang-jwt/jwt/v5"
	"github.com/spf13/cobra"
)

// MigrateCmd returns the migrate command.
func MigrateCmd() *cobra.Command {
	return &cobra.Command{
		Use:       "migrate <up|down>",
		Short:     "Apply or roll back database migrations",
		Args:      cobra.ExactArgs(1),
		ValidArgs: []string{string(database.MigrateUp), string(database.MigrateDown)},
		RunE: func(cmd *cobra.Command, args []string) error {
			direction := database.MigrationDirection(args[0])
			if direction != database.MigrateUp && direction != database.MigrateDown {
				return fmt.Errorf("unknown direction %q", args[0])
			}
			e, err := loadEnv(true)
			if err != nil {
				return err
			}
			defer e.Close()

			applied, err := database.RunMigrations(e.cfg.DatabaseURL, e.cfg.MigrationsPath, direction, e.logger)
			if err != nil {
				return err
			}
			if applied {
				fmt.Fprintf(cmd.OutOrStdout(), "Migrations %s applied\n", direction)
			} else {
				fmt.Fprintln(cmd.OutOrStdout(), "No migrations to apply")
			}
			return nil
		},
	}
}

// TokenCmd returns the token command.
func TokenCmd() *cobra.Command {
	var (
		userID string
		role   string
		ttl    time.Duration
	)

	cmd := &cobra.Command{
		Use:   "token",
		Short: "Issue an API token for a user and role",
		RunE: func(cmd *cobra.Command, args []string) error {
			r, ok := domain.ParseRole(role)
			if !ok {
				return fmt.Errorf("unknown role %q", role)
			}
			e, err := loadEnv(false)
			if err != nil {
				return err
			}
			defer e.Close()

			if ttl <= 0 {
				ttl = e.cfg.JWTExpiryDuration
			}
			now := time.Now()
			token, err := middleware.IssueToken(e.cfg.JWTSecret, e.cfg.JWTIssuer, domain.Actor{ID: userID, Role: r}, jwt.RegisteredClaims{
				IssuedAt:  jwt.NewNumericDate(now),
				ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
			})
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), token)
			return nil
		},
	}

	cmd.Flags().StringVarP(&userID, "user", "u", "", "user ID (token subject)")
	cmd.Flags().StringVarP(&role, "role", "r", string(domain.RoleSeller), "role")
	cmd.Flags().DurationVar(&ttl, "ttl", 0, "token lifetime (default: JWT_EXPIRY_DURATION)")
	_ = cmd.MarkFlagRequired("user")
	return cmd
}
