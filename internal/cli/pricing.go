package cli

import (
	"fmt"
	"os"
	"strings"

	"github.com/SscSPs/landed_pricing_app/internal/core/domain"
	portsrepo "github.com/SscSPs/landed_pricing_app/internal/core/ports/repositories"
	"github.com/SscSPs/landed_pricing_app/internal/spreadsheet"
	"github.com/fatih/color"
	"github.com/spf13/cobra"
)

// RecalcCmd returns the recalc command.
func RecalcCmd() *cobra.Command {
	var (
		flags   storeFlags
		modes   []string
		verbose bool
	)

	cmd := &cobra.Command{
		Use:   "recalc",
		Short: "Recompute landed costs and price tiers",
		Long: `Recompute landed costs and the four-tier price list for each transport mode.
With --memory the run reads the workbook and writes nothing.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			e, err := loadEnv(verbose)
			if err != nil {
				return err
			}
			defer e.Close()
			if flags.memory && flags.workbook == "" {
				return fmt.Errorf("--memory needs --workbook")
			}
			if err := e.connect(cmd.Context(), flags); err != nil {
				return err
			}

			if len(modes) == 0 {
				modes = []string{string(e.cfg.DefaultTransport)}
			}
			for _, m := range modes {
				summary, err := e.services.Pricing.Recalculate(cmd.Context(), domain.ParseTransportMode(m))
				if err != nil {
					return fmt.Errorf("recalculate %s: %w", m, err)
				}
				fmt.Fprintf(cmd.OutOrStdout(), "%s %s: %d landed, %d tiers\n",
					color.New(color.FgGreen).Sprint("✓"), summary.TransportMode, summary.LandedRows, summary.TierRows)
				if len(summary.FlaggedSKUs) > 0 {
					fmt.Fprintf(cmd.OutOrStdout(), "  %s %s\n",
						color.New(color.FgYellow).Sprint("flagged:"), strings.Join(summary.FlaggedSKUs, ", "))
				}
			}
			return nil
		},
	}

	flags.register(cmd)
	cmd.Flags().StringSliceVarP(&modes, "mode", "m", nil, "transport modes to recompute (default: DEFAULT_TRANSPORT)")
	cmd.Flags().BoolVarP(&verbose, "verbose", "v", false, "debug logging")
	return cmd
}

// QualityCmd returns the quality command.
func QualityCmd() *cobra.Command {
	var (
		flags storeFlags
		mode  string
	)

	cmd := &cobra.Command{
		Use:   "quality",
		Short: "Check stored price tiers against the data-quality rules",
		RunE: func(cmd *cobra.Command, args []string) error {
			e, err := loadEnv(false)
			if err != nil {
				return err
			}
			defer e.Close()
			if err := e.connect(cmd.Context(), flags); err != nil {
				return err
			}

			m := domain.ParseTransportMode(mode)
			if m == "" {
				m = e.cfg.DefaultTransport
			}
			if flags.memory {
				if _, err := e.services.Pricing.Recalculate(cmd.Context(), m); err != nil {
					return err
				}
			}
			report, err := e.services.Pricing.CheckQuality(cmd.Context(), m)
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			if report.OK() {
				fmt.Fprintf(out, "%s %d tiers checked, no issues\n", color.New(color.FgGreen).Sprint("OK"), report.Checked)
				return nil
			}
			for _, issue := range report.Issues {
				fmt.Fprintf(out, "%s %s [%s] %s\n", color.New(color.FgRed).Sprint("✗"), issue.SKU, issue.Code, issue.Message)
			}
			return fmt.Errorf("%d issues in %d tiers", len(report.Issues), report.Checked)
		},
	}

	flags.register(cmd)
	cmd.Flags().StringVarP(&mode, "mode", "m", "", "transport mode (default: DEFAULT_TRANSPORT)")
	return cmd
}

// ExportCmd returns the export command.
func ExportCmd() *cobra.Command {
	var (
		flags storeFlags
		out   string
		modes []string
	)

	cmd := &cobra.Command{
		Use:   "export",
		Short: "Write the price list workbook",
		RunE: func(cmd *cobra.Command, args []string) error {
			e, err := loadEnv(false)
			if err != nil {
				return err
			}
			defer e.Close()
			if err := e.connect(cmd.Context(), flags); err != nil {
				return err
			}

			if flags.memory {
				for _, m := range modes {
					if _, err := e.services.Pricing.Recalculate(cmd.Context(), domain.ParseTransportMode(m)); err != nil {
						return err
					}
				}
			}
			tiers, err := e.services.Pricing.ListPriceTiers(cmd.Context(), operator, portsrepo.PricingFilter{})
			if err != nil {
				return err
			}

			f, err := os.Create(out)
			if err != nil {
				return fmt.Errorf("create %s: %w", out, err)
			}
			defer f.Close()
			if err := spreadsheet.ExportPriceList(f, tiers); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Wrote %d tiers to %s\n", len(tiers), out)
			return nil
		},
	}

	flags.register(cmd)
	cmd.Flags().StringVarP(&out, "out", "o", "price_list.xlsx", "output file")
	cmd.Flags().StringSliceVarP(&modes, "mode", "m", []string{string(domain.TransportAir), string(domain.TransportMaritime)}, "modes recomputed before exporting in --memory runs")
	return cmd
}
