package cli

import (
	"fmt"

	"github.com/spf13/cobra"
)

var empresasCmd = &cobra.Command{
	Use:   "empresas",
	Short: "Browse the company catalog",
	RunE: func(cmd *cobra.Command, args []string) error {
		return cmd.Help()
	},
}

var empresasListCmd = &cobra.Command{
	Use:   "list",
	Short: "List companies",
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := newApp()
		if err != nil {
			return err
		}
		defer a.close()
		a.auth.Bootstrap(cmd.Context())

		list, err := a.empresa.List(cmd.Context())
		if err != nil {
			return err
		}
		for _, e := range list {
			fmt.Printf("%-8s %-32s %s\n", e.ID, e.RazonSocial, e.EmailContacto)
		}
		fmt.Printf("\n%d empresas\n", len(list))
		return nil
	},
}

var empresasShowCmd = &cobra.Command{
	Use:   "show <id>",
	Short: "Show a company and its subscription",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := newApp()
		if err != nil {
			return err
		}
		defer a.close()
		a.auth.Bootstrap(cmd.Context())

		e, err := a.empresa.Get(cmd.Context(), args[0])
		if err != nil {
			return err
		}
		if e == nil {
			fmt.Println("Empresa no encontrada.")
			return nil
		}
		fmt.Printf("Razón social:     %s\n", e.RazonSocial)
		fmt.Printf("Nombre comercial: %s\n", e.NombreComercial)
		fmt.Printf("Contacto:         %s\n", e.EmailContacto)

		sub, _ := a.empresa.GetSuscripcion(cmd.Context(), args[0])
		if sub == nil {
			fmt.Println("Suscripción:      ninguna")
			return nil
		}
		fmt.Printf("Suscripción:      %s (%s)\n", sub.EnumPlan, sub.EnumEstado)
		return nil
	},
}

func init() {
	empresasCmd.AddCommand(empresasListCmd, empresasShowCmd)
	rootCmd.AddCommand(empresasCmd)
}
