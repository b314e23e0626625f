package cli

import (
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	domain "backoffice-client/internal/domain/auth"
)

var loginCmd = &cobra.Command{
	Use:   "login",
	Short: "Authenticate and store a session",
	RunE: func(cmd *cobra.Command, args []string) error {
		email, _ := cmd.Flags().GetString("email")
		password, _ := cmd.Flags().GetString("password")

		if email == "" {
			return fmt.Errorf("--email is required")
		}
		if password == "" {
			fmt.Fprint(os.Stderr, "Password: ")
			raw, err := term.ReadPassword(int(os.Stdin.Fd()))
			fmt.Fprintln(os.Stderr)
			if err != nil {
				return fmt.Errorf("failed to read password: %w", err)
			}
			password = string(raw)
		}

		a, err := newApp()
		if err != nil {
			return err
		}
		defer a.close()

		result := a.auth.Login(cmd.Context(), email, password)
		if !result.Success {
			return fmt.Errorf("%s", result.Message)
		}

		fmt.Println(result.Message)
		if result.EmpresaID != "" {
			fmt.Printf("Empresa: %s\n", result.Session.User.EmpresaNombre)
		} else {
			fmt.Println("Acceso global (superadmin)")
		}
		return nil
	},
}

var logoutCmd = &cobra.Command{
	Use:   "logout",
	Short: "Close the session and clear stored credentials",
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := newApp()
		if err != nil {
			return err
		}
		defer a.close()

		a.auth.Logout(cmd.Context())
		fmt.Println("Sesión cerrada.")
		return nil
	},
}

var whoamiCmd = &cobra.Command{
	Use:   "whoami",
	Short: "Show the current session",
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := newApp()
		if err != nil {
			return err
		}
		defer a.close()

		a.auth.Bootstrap(cmd.Context())
		sess := a.auth.Current()
		if sess == nil {
			fmt.Println("No hay sesión activa.")
			return nil
		}

		asJSON, _ := cmd.Flags().GetBool("json")
		if asJSON {
			raw, err := json.MarshalIndent(sess.User, "", "  ")
			if err != nil {
				return err
			}
			fmt.Println(string(raw))
			return nil
		}

		u := sess.User
		fmt.Printf("Usuario:  %s <%s>\n", u.Username, u.Email)
		fmt.Printf("Roles:    %s\n", joinRoles(u.Roles))
		if u.EmpresaID != "" {
			fmt.Printf("Empresa:  %s (%s)\n", u.EmpresaNombre, u.EmpresaID)
		} else {
			fmt.Println("Empresa:  acceso global")
		}
		if scope := a.auth.CompanyScope(); scope != "" {
			fmt.Printf("Alcance:  %s\n", scope)
		}
		return nil
	},
}

var switchCompanyCmd = &cobra.Command{
	Use:   "switch-company <empresa-id>",
	Short: "Pin a company scope (superadmin only)",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := newApp()
		if err != nil {
			return err
		}
		defer a.close()

		a.auth.Bootstrap(cmd.Context())
		if err := a.auth.SwitchCompany(cmd.Context(), args[0]); err != nil {
			return err
		}
		fmt.Printf("Alcance cambiado a la empresa %s.\n", args[0])
		return nil
	},
}

var registerEmpresaCmd = &cobra.Command{
	Use:   "register-empresa",
	Short: "Register a company and its first administrator",
	RunE: func(cmd *cobra.Command, args []string) error {
		req := &domain.RegisterEmpresaUserRequest{}
		req.RazonSocial, _ = cmd.Flags().GetString("razon-social")
		req.NombreComercial, _ = cmd.Flags().GetString("nombre-comercial")
		req.EmailContacto, _ = cmd.Flags().GetString("email-contacto")
		req.Username, _ = cmd.Flags().GetString("username")
		req.Password, _ = cmd.Flags().GetString("password")
		req.FirstName, _ = cmd.Flags().GetString("first-name")
		req.LastName, _ = cmd.Flags().GetString("last-name")
		req.Email, _ = cmd.Flags().GetString("email")

		if err := req.Validate(); err != nil {
			return fmt.Errorf("datos incompletos: %w", err)
		}

		a, err := newApp()
		if err != nil {
			return err
		}
		defer a.close()

		result := a.auth.RegisterEmpresaUser(cmd.Context(), req)
		if !result.Success {
			return fmt.Errorf("%s", result.Message)
		}
		fmt.Println(result.Message)
		fmt.Printf("Empresa creada: %s\n", result.EmpresaID)
		return nil
	},
}

func joinRoles(roles []domain.Role) string {
	parts := make([]string, len(roles))
	for i, r := range roles {
		parts[i] = string(r)
	}
	return strings.Join(parts, ", ")
}

func init() {
	loginCmd.Flags().String("email", "", "account email")
	loginCmd.Flags().String("password", "", "account password (prompted when omitted)")

	whoamiCmd.Flags().Bool("json", false, "print the raw user record")

	registerEmpresaCmd.Flags().String("razon-social", "", "legal company name")
	registerEmpresaCmd.Flags().String("nombre-comercial", "", "trade name")
	registerEmpresaCmd.Flags().String("email-contacto", "", "company contact email")
	registerEmpresaCmd.Flags().String("username", "", "administrator username")
	registerEmpresaCmd.Flags().String("password", "", "administrator password (min 8 chars)")
	registerEmpresaCmd.Flags().String("first-name", "", "administrator first name")
	registerEmpresaCmd.Flags().String("last-name", "", "administrator last name")
	registerEmpresaCmd.Flags().String("email", "", "administrator email")

	rootCmd.AddCommand(loginCmd, logoutCmd, whoamiCmd, switchCompanyCmd, registerEmpresaCmd)
}
