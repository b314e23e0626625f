// Package billing handles the plan catalog, the backend subscription
// records and the tenant-scoped payment, usage and history views. Backend
// endpoints are tried first and every read degrades to a local copy, so
// the billing panel keeps working against a half-deployed backend.
package billing

import (
	"time"

	domain "backoffice-client/internal/domain/billing"
	xerrors "backoffice-client/internal/pkg/errors"
)

// The plan catalog is immutable and local. Prices and limits only change
// with a release.
var plans = []domain.Plan{
	{ID: domain.PlanBasico, Name: "Básico", PriceUSD: 0, Limits: domain.PlanLimits{MaxUsers: 3, MaxRequests: 1000, MaxStorageGB: 100}},
	{ID: domain.PlanProfesional, Name: "Pro", PriceUSD: 80, Limits: domain.PlanLimits{MaxUsers: 20, MaxRequests: 25000, MaxStorageGB: 300}},
	{ID: domain.PlanPersonalizado, Name: "Personalizado", PriceUSD: 300, Limits: domain.PlanLimits{MaxUsers: 100, MaxRequests: 60000, MaxStorageGB: 1000}},
}

func ListPlans() []domain.Plan {
	out := make([]domain.Plan, len(plans))
	copy(out, plans)
	return out
}

func GetPlan(id domain.PlanID) (*domain.Plan, error) {
	for i := range plans {
		if plans[i].ID == id {
			p := plans[i]
			return &p, nil
		}
	}
	return nil, xerrors.Wrap(xerrors.ErrNotFound, "plan no encontrado")
}

// PlanDetails lists the selling points shown next to each plan.
func PlanDetails(id domain.PlanID) []string {
	common := []string{
		"Workflow de gestión financiera",
		"Contabilidad básica y reportes",
		"Integraciones con pasarelas de pago",
	}
	switch id {
	case domain.PlanBasico:
		return append(common, "1 espacio de trabajo", "Usuarios limitados", "Reportes mensuales")
	case domain.PlanProfesional:
		return append(common, "Multi-tenant", "Reportes avanzados y exportes", "Soporte prioritario")
	case domain.PlanPersonalizado:
		return append(common, "Integraciones SSO", "SLA personalizado", "Onboarding dedicado")
	default:
		return common
	}
}

// MapPlanToEnum is the canonical catalog-id to backend-enum mapping.
func MapPlanToEnum(id domain.PlanID) string {
	switch id {
	case domain.PlanBasico:
		return domain.EnumPlanBasico
	case domain.PlanProfesional:
		return domain.EnumPlanProfesional
	case domain.PlanPersonalizado:
		return domain.EnumPlanPremium
	default:
		return ""
	}
}

// enumCandidatesForPlan lists the spellings to try when the backend
// rejects the canonical enum value. Deployments have disagreed on these.
func enumCandidatesForPlan(id domain.PlanID) []string {
	switch id {
	case domain.PlanBasico:
		return []string{"BASICO", "basico"}
	case domain.PlanProfesional:
		return []string{"PROFESIONAL", "PROFESSIONAL", "profesional", "professional"}
	case domain.PlanPersonalizado:
		return []string{"PREMIUM", "PREMIUM_CUSTOM", "personalizado", "premium"}
	default:
		return []string{string(id)}
	}
}

// CalculateEndDate returns the subscription end timestamp one month or one
// year from now, in RFC 3339.
func CalculateEndDate(duration string) string {
	now := time.Now()
	if duration == "yearly" {
		return now.AddDate(1, 0, 0).Format(time.RFC3339)
	}
	return now.AddDate(0, 1, 0).Format(time.RFC3339)
}
