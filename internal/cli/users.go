package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	domain "backoffice-client/internal/domain/user"
)

var usersCmd = &cobra.Command{
	Use:   "users",
	Short: "Manage platform accounts",
	RunE: func(cmd *cobra.Command, args []string) error {
		return cmd.Help()
	},
}

var usersListCmd = &cobra.Command{
	Use:   "list",
	Short: "List accounts",
	RunE: func(cmd *cobra.Command, args []string) error {
		params := domain.ListParams{Activo: domain.ActiveAll}
		params.Search, _ = cmd.Flags().GetString("search")
		params.Page, _ = cmd.Flags().GetInt("page")
		params.PageSize, _ = cmd.Flags().GetInt("page-size")
		if activo, _ := cmd.Flags().GetString("activo"); activo != "" {
			params.Activo = domain.ActiveFilter(activo)
		}

		a, err := newApp()
		if err != nil {
			return err
		}
		defer a.close()
		a.auth.Bootstrap(cmd.Context())

		result, err := a.users.List(cmd.Context(), params)
		if err != nil {
			return err
		}
		for _, u := range result.Results {
			state := "activo"
			if !u.Activo {
				state = "inactivo"
			}
			fmt.Printf("%-8s %-16s %-28s %-12s %s\n", u.ID, u.Username, u.Email, u.Role, state)
		}
		fmt.Printf("\n%d de %d usuarios\n", len(result.Results), result.Count)
		return nil
	},
}

var usersCreateCmd = &cobra.Command{
	Use:   "create",
	Short: "Create an account",
	RunE: func(cmd *cobra.Command, args []string) error {
		payload := &domain.CreatePayload{IsActive: true}
		payload.Username, _ = cmd.Flags().GetString("username")
		payload.FirstName, _ = cmd.Flags().GetString("first-name")
		payload.LastName, _ = cmd.Flags().GetString("last-name")
		payload.Email, _ = cmd.Flags().GetString("email")
		payload.Password, _ = cmd.Flags().GetString("password")
		payload.IsStaff, _ = cmd.Flags().GetBool("staff")
		payload.Telefono, _ = cmd.Flags().GetString("telefono")
		payload.Cargo, _ = cmd.Flags().GetString("cargo")
		payload.Departamento, _ = cmd.Flags().GetString("departamento")

		a, err := newApp()
		if err != nil {
			return err
		}
		defer a.close()
		a.auth.Bootstrap(cmd.Context())

		created, err := a.users.Create(cmd.Context(), payload)
		if err != nil {
			return err
		}
		fmt.Printf("Usuario creado: %s (%s)\n", created.ID, created.Username)
		if created.Message != "" {
			fmt.Println(created.Message)
		}
		return nil
	},
}

var usersSetActiveCmd = &cobra.Command{
	Use:   "set-active <id> <true|false>",
	Short: "Activate or deactivate an account",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		active := args[1] == "true"

		a, err := newApp()
		if err != nil {
			return err
		}
		defer a.close()
		a.auth.Bootstrap(cmd.Context())

		if err := a.users.SetActive(cmd.Context(), args[0], active); err != nil {
			return err
		}
		fmt.Printf("Usuario %s actualizado.\n", args[0])
		return nil
	},
}

func init() {
	usersListCmd.Flags().String("search", "", "filter by name or email")
	usersListCmd.Flags().String("activo", "", "all, active or inactive")
	usersListCmd.Flags().Int("page", 1, "page number")
	usersListCmd.Flags().Int("page-size", 10, "results per page")

	usersCreateCmd.Flags().String("username", "", "login name")
	usersCreateCmd.Flags().String("first-name", "", "first name")
	usersCreateCmd.Flags().String("last-name", "", "last name")
	usersCreateCmd.Flags().String("email", "", "email address")
	usersCreateCmd.Flags().String("password", "", "initial password")
	usersCreateCmd.Flags().Bool("staff", false, "grant company admin rights")
	usersCreateCmd.Flags().String("telefono", "", "phone number")
	usersCreateCmd.Flags().String("cargo", "", "job title")
	usersCreateCmd.Flags().String("departamento", "", "department")

	usersCmd.AddCommand(usersListCmd, usersCreateCmd, usersSetActiveCmd)
	rootCmd.AddCommand(usersCmd)
}
