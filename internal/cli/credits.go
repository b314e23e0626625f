package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	domain "backoffice-client/internal/domain/credit"
	"backoffice-client/internal/domain/shared"
	"backoffice-client/internal/service/credittypes"
)

var creditsCmd = &cobra.Command{
	Use:   "credits",
	Short: "Create and review credit requests",
	RunE: func(cmd *cobra.Command, args []string) error {
		return cmd.Help()
	},
}

var creditsOptionsCmd = &cobra.Command{
	Use:   "options",
	Short: "Show the clients and credit types available for a new request",
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := newApp()
		if err != nil {
			return err
		}
		defer a.close()
		a.auth.Bootstrap(cmd.Context())

		clients, err := a.credits.ListClients(cmd.Context())
		if err != nil {
			return err
		}
		types, err := a.credits.ListCreditTypes(cmd.Context())
		if err != nil {
			return err
		}

		fmt.Println("Clientes:")
		for _, c := range clients {
			fmt.Printf("  %-6s %s %s (%s)\n", c.ID, c.Nombre, c.Apellido, c.Telefono)
		}
		fmt.Println("\nTipos de crédito:")
		for _, t := range types {
			fmt.Printf("  %-6s %-24s %s - %s\n", t.ID, t.Nombre,
				credittypes.FormatMonto(t.MontoMinimo),
				credittypes.FormatMonto(t.MontoMaximo),
			)
		}
		return nil
	},
}

var creditsCreateCmd = &cobra.Command{
	Use:   "create",
	Short: "Submit a credit request",
	RunE: func(cmd *cobra.Command, args []string) error {
		clienteID, _ := cmd.Flags().GetString("cliente")
		tipoID, _ := cmd.Flags().GetString("tipo")
		monto, _ := cmd.Flags().GetFloat64("monto")
		plazo, _ := cmd.Flags().GetInt("plazo")
		obs, _ := cmd.Flags().GetString("observaciones")

		input := &domain.CreateInput{
			ClienteID:     shared.FlexID(clienteID),
			TipoCreditoID: shared.FlexID(tipoID),
			Monto:         monto,
			PlazoMeses:    plazo,
			Observaciones: obs,
		}

		a, err := newApp()
		if err != nil {
			return err
		}
		defer a.close()
		a.auth.Bootstrap(cmd.Context())

		created, err := a.credits.Create(cmd.Context(), input)
		if err != nil {
			return err
		}
		fmt.Printf("Crédito %s creado (%s, %s)\n",
			created.ID, created.Estado, credittypes.FormatMonto(created.Monto))
		return nil
	},
}

var creditsListCmd = &cobra.Command{
	Use:   "list",
	Short: "List credits under the current scope",
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := newApp()
		if err != nil {
			return err
		}
		defer a.close()
		a.auth.Bootstrap(cmd.Context())

		list, err := a.credits.List(cmd.Context())
		if err != nil {
			return err
		}
		for _, c := range list {
			fmt.Printf("%-28s %-10s %-12s %s\n",
				c.ID, c.Estado, c.FechaCreacion, credittypes.FormatMonto(c.Monto))
		}
		fmt.Printf("\n%d créditos\n", len(list))
		return nil
	},
}

func init() {
	creditsCreateCmd.Flags().String("cliente", "", "client id")
	creditsCreateCmd.Flags().String("tipo", "", "credit type id")
	creditsCreateCmd.Flags().Float64("monto", 0, "requested amount")
	creditsCreateCmd.Flags().Int("plazo", 12, "term in months")
	creditsCreateCmd.Flags().String("observaciones", "", "free-form notes")

	creditsCmd.AddCommand(creditsOptionsCmd, creditsCreateCmd, creditsListCmd)
	rootCmd.AddCommand(creditsCmd)
}
