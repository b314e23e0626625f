package cli

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	domain "backoffice-client/internal/domain/credittype"
	"backoffice-client/internal/domain/shared"
	"backoffice-client/internal/service/credittypes"
)

var creditTypesCmd = &cobra.Command{
	Use:   "credit-types",
	Short: "Manage the credit product catalog",
	RunE: func(cmd *cobra.Command, args []string) error {
		return cmd.Help()
	},
}

var creditTypesListCmd = &cobra.Command{
	Use:   "list",
	Short: "List credit types",
	RunE: func(cmd *cobra.Command, args []string) error {
		params := domain.ListParams{}
		params.Search, _ = cmd.Flags().GetString("search")
		params.Page, _ = cmd.Flags().GetInt("page")
		params.PageSize, _ = cmd.Flags().GetInt("page-size")

		a, err := newApp()
		if err != nil {
			return err
		}
		defer a.close()
		a.auth.Bootstrap(cmd.Context())

		result, err := a.types.List(cmd.Context(), params)
		if err != nil {
			return err
		}

		for _, t := range result.Results {
			fmt.Printf("%-8s %-24s %s - %s\n",
				t.ID, t.Nombre,
				credittypes.FormatMonto(t.MontoMinimo),
				credittypes.FormatMonto(t.MontoMaximo),
			)
		}
		fmt.Printf("\n%d de %d tipos de crédito\n", len(result.Results), result.Count)
		return nil
	},
}

var creditTypesCreateCmd = &cobra.Command{
	Use:   "create",
	Short: "Create a credit type",
	RunE: func(cmd *cobra.Command, args []string) error {
		input := &domain.CreateInput{}
		input.Nombre, _ = cmd.Flags().GetString("nombre")
		input.Descripcion, _ = cmd.Flags().GetString("descripcion")
		input.MontoMinimo, _ = cmd.Flags().GetFloat64("monto-minimo")
		input.MontoMaximo, _ = cmd.Flags().GetFloat64("monto-maximo")

		if problems := credittypes.Validate(input); len(problems) > 0 {
			return fmt.Errorf("datos inválidos:\n  %s", strings.Join(problems, "\n  "))
		}

		a, err := newApp()
		if err != nil {
			return err
		}
		defer a.close()
		a.auth.Bootstrap(cmd.Context())

		created, err := a.types.Create(cmd.Context(), input)
		if err != nil {
			return err
		}
		fmt.Printf("Tipo de crédito creado: %s (%s)\n", created.ID, created.Nombre)
		return nil
	},
}

var creditTypesUpdateCmd = &cobra.Command{
	Use:   "update <id>",
	Short: "Update a credit type",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		input := &domain.UpdateInput{ID: shared.FlexID(args[0])}
		input.Nombre, _ = cmd.Flags().GetString("nombre")
		input.Descripcion, _ = cmd.Flags().GetString("descripcion")
		input.MontoMinimo, _ = cmd.Flags().GetFloat64("monto-minimo")
		input.MontoMaximo, _ = cmd.Flags().GetFloat64("monto-maximo")

		a, err := newApp()
		if err != nil {
			return err
		}
		defer a.close()
		a.auth.Bootstrap(cmd.Context())

		updated, err := a.types.Update(cmd.Context(), input)
		if err != nil {
			return err
		}
		fmt.Printf("Tipo de crédito actualizado: %s (%s)\n", updated.ID, updated.Nombre)
		return nil
	},
}

var creditTypesDeleteCmd = &cobra.Command{
	Use:   "delete <id>",
	Short: "Delete a credit type",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := newApp()
		if err != nil {
			return err
		}
		defer a.close()
		a.auth.Bootstrap(cmd.Context())

		if err := a.types.Delete(cmd.Context(), args[0]); err != nil {
			return err
		}
		fmt.Printf("Tipo de crédito %s eliminado.\n", args[0])
		return nil
	},
}

func init() {
	creditTypesListCmd.Flags().String("search", "", "filter by name")
	creditTypesListCmd.Flags().Int("page", 1, "page number")
	creditTypesListCmd.Flags().Int("page-size", 10, "results per page")

	for _, c := range []*cobra.Command{creditTypesCreateCmd, creditTypesUpdateCmd} {
		c.Flags().String("nombre", "", "product name")
		c.Flags().String("descripcion", "", "description")
		c.Flags().Float64("monto-minimo", 0, "minimum amount")
		c.Flags().Float64("monto-maximo", 0, "maximum amount")
	}

	creditTypesCmd.AddCommand(creditTypesListCmd, creditTypesCreateCmd, creditTypesUpdateCmd, creditTypesDeleteCmd)
	rootCmd.AddCommand(creditTypesCmd)
}
