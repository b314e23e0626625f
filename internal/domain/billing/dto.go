package billing

import "backoffice-client/internal/domain/shared"

// Backend enum values for plans and states.
const (
	EnumPlanBasico      = "BASICO"
	EnumPlanProfesional = "PROFESIONAL"
	EnumPlanPremium     = "PREMIUM"

	EnumEstadoActivo     = "ACTIVO"
	EnumEstadoSuspendido = "SUSPENDIDO"
	EnumEstadoCancelado  = "CANCELADO"
)

// CreateSuscripcionPayload is what the backend expects. The field is
// `empresa` (id), not `empresa_id`.
type CreateSuscripcionPayload struct {
	Empresa    shared.FlexID `json:"empresa"`
	EnumPlan   string        `json:"enum_plan"`
	EnumEstado string        `json:"enum_estado,omitempty"`
	FechaFin   string        `json:"fecha_fin"`
}

// UpdateSuscripcionPayload carries partial updates.
type UpdateSuscripcionPayload struct {
	EnumPlan   string `json:"enum_plan,omitempty"`
	EnumEstado string `json:"enum_estado,omitempty"`
	FechaFin   string `json:"fecha_fin,omitempty"`
	Activo     *bool  `json:"activo,omitempty"`
}

// SubscriptionResponse wraps the local-shape subscription endpoints.
type SubscriptionResponse struct {
	Subscription *Subscription `json:"subscription"`
	Message      string        `json:"message,omitempty"`
}

type PaymentsResponse struct {
	Payments []Payment `json:"payments"`
	Total    int       `json:"total,omitempty"`
}

// CreatePaymentInput registers a manual payment.
type CreatePaymentInput struct {
	TenantID    string `json:"tenant_id,omitempty"`
	AmountCents int64  `json:"amount_cents"`
	Currency    string `json:"currency"`
	PeriodStart string `json:"period_start,omitempty"`
	PeriodEnd   string `json:"period_end,omitempty"`
	Method      string `json:"method"`
	ExternalID  string `json:"external_id,omitempty"`
}
