package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	domain "backoffice-client/internal/domain/client"
)

var clientsCmd = &cobra.Command{
	Use:   "clients",
	Short: "Manage the client portfolio",
	RunE: func(cmd *cobra.Command, args []string) error {
		return cmd.Help()
	},
}

var clientsListCmd = &cobra.Command{
	Use:   "list",
	Short: "List clients under the current company scope",
	RunE: func(cmd *cobra.Command, args []string) error {
		page, _ := cmd.Flags().GetInt("page")
		pageSize, _ := cmd.Flags().GetInt("page-size")

		a, err := newApp()
		if err != nil {
			return err
		}
		defer a.close()
		a.auth.Bootstrap(cmd.Context())

		result, err := a.clients.List(cmd.Context(), page, pageSize)
		if err != nil {
			return err
		}

		for _, c := range result.Results {
			fmt.Printf("%-8s %-20s %-20s %s\n", c.ID, c.Nombre, c.Apellido, c.Telefono)
		}
		fmt.Printf("\n%d de %d clientes (página %d)\n", len(result.Results), result.Count, page)
		return nil
	},
}

var clientsCreateCmd = &cobra.Command{
	Use:   "create",
	Short: "Register a new client",
	RunE: func(cmd *cobra.Command, args []string) error {
		input := &domain.CreateClienteInput{}
		input.Nombre, _ = cmd.Flags().GetString("nombre")
		input.Apellido, _ = cmd.Flags().GetString("apellido")
		input.Telefono, _ = cmd.Flags().GetString("telefono")
		input.Email, _ = cmd.Flags().GetString("email")

		a, err := newApp()
		if err != nil {
			return err
		}
		defer a.close()
		a.auth.Bootstrap(cmd.Context())

		created, err := a.clients.Create(cmd.Context(), input)
		if err != nil {
			return err
		}
		fmt.Printf("Cliente creado: %s (%s %s)\n", created.ID, created.Nombre, created.Apellido)
		return nil
	},
}

func init() {
	clientsListCmd.Flags().Int("page", 1, "page number")
	clientsListCmd.Flags().Int("page-size", 10, "results per page")

	clientsCreateCmd.Flags().String("nombre", "", "first name")
	clientsCreateCmd.Flags().String("apellido", "", "last name")
	clientsCreateCmd.Flags().String("telefono", "", "phone number")
	clientsCreateCmd.Flags().String("email", "", "email address")

	clientsCmd.AddCommand(clientsListCmd, clientsCreateCmd)
	rootCmd.AddCommand(clientsCmd)
}
