package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/SscSPs/landed_pricing_app/internal/cli"
)

func main() {
	rootCmd := &cobra.Command{
		Use:   "pricing_cli",
		Short: "Landed cost and price list tooling",
		Long: `pricing_cli recomputes landed costs and price tiers, imports reference
workbooks, exports the price list and issues API tokens.`,
		SilenceUsage: true,
	}

	// Pricing
	rootCmd.AddCommand(cli.RecalcCmd())
	rootCmd.AddCommand(cli.QualityCmd())
	rootCmd.AddCommand(cli.ExportCmd())

	// Reference data
	rootCmd.AddCommand(cli.ValidateCmd())
	rootCmd.AddCommand(cli.ImportCmd())

	// Operations
	rootCmd.AddCommand(cli.MigrateCmd())
	rootCmd.AddCommand(cli.TokenCmd())
	rootCmd.AddCommand(cli.WatchCmd())

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
