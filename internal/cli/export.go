package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"backoffice-client/internal/service/report"
)

var exportCmd = &cobra.Command{
	Use:   "export",
	Short: "Export data as XLSX spreadsheets",
	RunE: func(cmd *cobra.Command, args []string) error {
		return cmd.Help()
	},
}

var exportPaymentsCmd = &cobra.Command{
	Use:   "payments",
	Short: "Export payments under the current scope",
	RunE: func(cmd *cobra.Command, args []string) error {
		out, _ := cmd.Flags().GetString("output")
		tenant, _ := cmd.Flags().GetString("tenant")
		if out == "" {
			out = report.FileName("pagos")
		}

		a, err := newApp()
		if err != nil {
			return err
		}
		defer a.close()
		a.auth.Bootstrap(cmd.Context())

		f, err := os.Create(out)
		if err != nil {
			return fmt.Errorf("failed to create %s: %w", out, err)
		}
		defer f.Close()

		if err := a.report.ExportPayments(cmd.Context(), tenant, f); err != nil {
			return err
		}
		fmt.Printf("Exportado a %s\n", out)
		return nil
	},
}

var exportCreditsCmd = &cobra.Command{
	Use:   "credits",
	Short: "Export credits under the current scope",
	RunE: func(cmd *cobra.Command, args []string) error {
		out, _ := cmd.Flags().GetString("output")
		if out == "" {
			out = report.FileName("creditos")
		}

		a, err := newApp()
		if err != nil {
			return err
		}
		defer a.close()
		a.auth.Bootstrap(cmd.Context())

		f, err := os.Create(out)
		if err != nil {
			return fmt.Errorf("failed to create %s: %w", out, err)
		}
		defer f.Close()

		if err := a.report.ExportCredits(cmd.Context(), f); err != nil {
			return err
		}
		fmt.Printf("Exportado a %s\n", out)
		return nil
	},
}

func init() {
	exportPaymentsCmd.Flags().String("output", "", "output file (default pagos_<fecha>.xlsx)")
	exportPaymentsCmd.Flags().String("tenant", "", "explicit company scope")
	exportCreditsCmd.Flags().String("output", "", "output file (default creditos_<fecha>.xlsx)")

	exportCmd.AddCommand(exportPaymentsCmd, exportCreditsCmd)
	rootCmd.AddCommand(exportCmd)
}
