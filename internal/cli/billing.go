package cli

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	domain "backoffice-client/internal/domain/billing"
	"backoffice-client/internal/domain/shared"
	billingsvc "backoffice-client/internal/service/billing"
)

var billingCmd = &cobra.Command{
	Use:   "billing",
	Short: "Plans, subscriptions, payments and billing history",
	RunE: func(cmd *cobra.Command, args []string) error {
		return cmd.Help()
	},
}

var billingPlansCmd = &cobra.Command{
	Use:   "plans",
	Short: "Show the plan catalog",
	RunE: func(cmd *cobra.Command, args []string) error {
		for _, p := range billingsvc.ListPlans() {
			fmt.Printf("%s (%s) - USD %d/mes\n", p.Name, p.ID, p.PriceUSD)
			fmt.Printf("  hasta %d usuarios, %d solicitudes/mes, %d GB\n",
				p.Limits.MaxUsers, p.Limits.MaxRequests, p.Limits.MaxStorageGB)
			for _, line := range billingsvc.PlanDetails(p.ID) {
				fmt.Printf("  - %s\n", line)
			}
			fmt.Println()
		}
		return nil
	},
}

var billingStatusCmd = &cobra.Command{
	Use:   "status",
	Short: "Show the current subscription and usage",
	RunE: func(cmd *cobra.Command, args []string) error {
		tenant, _ := cmd.Flags().GetString("tenant")

		a, err := newApp()
		if err != nil {
			return err
		}
		defer a.close()
		a.auth.Bootstrap(cmd.Context())

		sub, err := a.billing.GetSubscription(cmd.Context(), tenant)
		if err != nil {
			return err
		}
		if sub == nil {
			fmt.Println("Sin suscripción.")
			return nil
		}
		fmt.Printf("Plan:    %s\n", sub.PlanID)
		fmt.Printf("Estado:  %s\n", sub.State)
		if sub.TrialEndsAt != "" {
			fmt.Printf("Prueba hasta: %s\n", sub.TrialEndsAt)
		}

		usage, err := a.billing.GetUsage(cmd.Context(), tenant)
		if err == nil && usage != nil {
			fmt.Printf("Uso:     %d usuarios, %d solicitudes, %d GB\n",
				usage.Users, usage.Requests, usage.StorageGB)
		}
		return nil
	},
}

var billingStartTrialCmd = &cobra.Command{
	Use:   "start-trial <plan>",
	Short: "Start a 14-day trial",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		orgName, _ := cmd.Flags().GetString("org-name")
		tenant, _ := cmd.Flags().GetString("tenant")

		a, err := newApp()
		if err != nil {
			return err
		}
		defer a.close()
		a.auth.Bootstrap(cmd.Context())

		sub, err := a.billing.StartTrial(cmd.Context(), domain.PlanID(args[0]), orgName, actorEmail(a), tenant)
		if err != nil {
			return err
		}
		fmt.Printf("Prueba iniciada en el plan %s hasta %s.\n", sub.PlanID, sub.TrialEndsAt)
		return nil
	},
}

var billingChangePlanCmd = &cobra.Command{
	Use:   "change-plan <plan>",
	Short: "Move the subscription to another plan",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		tenant, _ := cmd.Flags().GetString("tenant")

		a, err := newApp()
		if err != nil {
			return err
		}
		defer a.close()
		a.auth.Bootstrap(cmd.Context())

		sub, err := a.billing.ChangePlan(cmd.Context(), domain.PlanID(args[0]), actorEmail(a), tenant)
		if err != nil {
			return err
		}
		fmt.Printf("Plan cambiado a %s.\n", sub.PlanID)
		return nil
	},
}

var billingCancelCmd = &cobra.Command{
	Use:   "cancel",
	Short: "Cancel the subscription",
	RunE: func(cmd *cobra.Command, args []string) error {
		tenant, _ := cmd.Flags().GetString("tenant")

		a, err := newApp()
		if err != nil {
			return err
		}
		defer a.close()
		a.auth.Bootstrap(cmd.Context())

		sub, err := a.billing.CancelSubscription(cmd.Context(), actorEmail(a), tenant)
		if err != nil {
			return err
		}
		if sub == nil {
			fmt.Println("Sin suscripción que cancelar.")
			return nil
		}
		fmt.Println("Suscripción cancelada.")
		return nil
	},
}

var billingSubscribeCmd = &cobra.Command{
	Use:   "subscribe <empresa-id> <plan>",
	Short: "Create a backend subscription record for a company",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		duration, _ := cmd.Flags().GetString("duration")

		a, err := newApp()
		if err != nil {
			return err
		}
		defer a.close()
		a.auth.Bootstrap(cmd.Context())

		sub, err := a.billing.CreateSuscripcionFromPlan(cmd.Context(), shared.FlexID(args[0]), domain.PlanID(args[1]), duration)
		if err != nil {
			return err
		}
		fmt.Printf("Suscripción %s creada para la empresa %s (plan %s).\n", sub.ID, sub.Empresa, sub.EnumPlan)
		return nil
	},
}

var billingPaymentsCmd = &cobra.Command{
	Use:   "payments",
	Short: "List payments under the current scope",
	RunE: func(cmd *cobra.Command, args []string) error {
		tenant, _ := cmd.Flags().GetString("tenant")

		a, err := newApp()
		if err != nil {
			return err
		}
		defer a.close()
		a.auth.Bootstrap(cmd.Context())

		payments, err := a.billing.ListPayments(cmd.Context(), tenant)
		if err != nil {
			return err
		}
		for _, p := range payments {
			fmt.Printf("%-28s %8.2f %-4s %-14s %s\n",
				p.ID, float64(p.AmountCents)/100, strings.ToUpper(p.Currency), p.Method, p.CreatedAt)
		}
		fmt.Printf("\n%d pagos\n", len(payments))
		return nil
	},
}

var billingHistoryCmd = &cobra.Command{
	Use:   "history",
	Short: "Show the billing audit trail",
	RunE: func(cmd *cobra.Command, args []string) error {
		page, _ := cmd.Flags().GetInt("page")
		pageSize, _ := cmd.Flags().GetInt("page-size")
		tenant, _ := cmd.Flags().GetString("tenant")

		a, err := newApp()
		if err != nil {
			return err
		}
		defer a.close()
		a.auth.Bootstrap(cmd.Context())

		result, err := a.billing.GetHistory(cmd.Context(), page, pageSize, tenant)
		if err != nil {
			return err
		}
		for _, e := range result.Results {
			fmt.Printf("%s  %-22s %s\n", e.At.Format("2006-01-02 15:04"), e.Action, e.Actor)
		}
		fmt.Printf("\n%d de %d eventos (página %d)\n", len(result.Results), result.Total, result.Page)
		return nil
	},
}

// actorEmail names the session user in history entries, "system" when
// anonymous.
func actorEmail(a *app) string {
	if sess := a.auth.Current(); sess != nil {
		return sess.User.Email
	}
	return "system"
}

func init() {
	for _, c := range []*cobra.Command{
		billingStatusCmd, billingStartTrialCmd, billingChangePlanCmd,
		billingCancelCmd, billingPaymentsCmd, billingHistoryCmd,
	} {
		c.Flags().String("tenant", "", "explicit company scope (default: session scope)")
	}
	billingStartTrialCmd.Flags().String("org-name", "", "organization display name")
	billingSubscribeCmd.Flags().String("duration", "monthly", "monthly or yearly")
	billingHistoryCmd.Flags().Int("page", 1, "page number")
	billingHistoryCmd.Flags().Int("page-size", 20, "results per page")

	billingCmd.AddCommand(
		billingPlansCmd, billingStatusCmd, billingStartTrialCmd,
		billingChangePlanCmd, billingCancelCmd, billingSubscribeCmd,
		billingPaymentsCmd, billingHistoryCmd,
	)
	rootCmd.AddCommand(billingCmd)
}
