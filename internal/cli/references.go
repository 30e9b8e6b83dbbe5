package cli

import (
	"fmt"

	"github.com/SscSPs/landed_pricing_app/internal/spreadsheet"
	"github.com/fatih/color"
	"github.com/spf13/cobra"
)

// ValidateCmd returns the validate command.
func ValidateCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "validate <workbook.xlsx>",
		Short: "Parse a reference workbook and report the first invalid row",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			data, err := spreadsheet.NewImporter(nil).ImportFile(args[0])
			if err != nil {
				fmt.Fprintf(cmd.OutOrStdout(), "%s %v\n", color.New(color.FgRed).Sprint("INVALID"), err)
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%s %d products, %d parameters, %d rates\n",
				color.New(color.FgGreen).Sprint("VALID"), len(data.Products), len(data.Parameters), len(data.Rates))
			return nil
		},
	}
}

// ImportCmd returns the import command.
func ImportCmd() *cobra.Command {
	var verbose bool

	cmd := &cobra.Command{
		Use:   "import <workbook.xlsx>",
		Short: "Load reference data from a workbook into PostgreSQL",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			e, err := loadEnv(verbose)
			if err != nil {
				return err
			}
			defer e.Close()
			if err := e.connect(cmd.Context(), storeFlags{}); err != nil {
				return err
			}

			summary, err := e.importWorkbook(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Imported %d products, %d parameters, %d rates\n",
				summary.Products, summary.Parameters, summary.Rates)
			return nil
		},
	}

	cmd.Flags().BoolVarP(&verbose, "verbose", "v", false, "debug logging")
	return cmd
}
