package billing

import (
	"time"

	"backoffice-client/internal/domain/shared"
)

// PlanID identifies an entry of the immutable local catalog.
type PlanID string

const (
	PlanBasico        PlanID = "basico"
	PlanProfesional   PlanID = "profesional"
	PlanPersonalizado PlanID = "personalizado"
)

type PlanLimits struct {
	MaxUsers     int `json:"max_users"`
	MaxRequests  int `json:"max_requests"` // per month
	MaxStorageGB int `json:"max_storage_gb"`
}

type Plan struct {
	ID       PlanID     `json:"id"`
	Name     string     `json:"name"`
	PriceUSD int        `json:"price_usd"`
	Limits   PlanLimits `json:"limits"`
}

// Subscription states.
const (
	StateEnPrueba  = "en_prueba"
	StateActivo    = "activo"
	StateCancelado = "cancelado"
)

// Subscription references a tenant and a catalog plan.
type Subscription struct {
	ID          string `json:"id"`
	TenantID    string `json:"tenant_id"`
	PlanID      PlanID `json:"plan_id"`
	State       string `json:"state"`
	TrialEndsAt string `json:"trial_ends_at,omitempty"`
	StartedAt   string `json:"started_at,omitempty"`
	CancelledAt string `json:"cancelled_at,omitempty"`
	OrgName     string `json:"org_name,omitempty"`
}

// Payment methods.
const (
	MethodCard         = "card"
	MethodPaypal       = "paypal"
	MethodBankTransfer = "bank_transfer"
	MethodManual       = "manual"
)

type Payment struct {
	ID          string `json:"id"`
	TenantID    string `json:"tenant_id"`
	AmountCents int64  `json:"amount_cents"`
	Currency    string `json:"currency"`
	PeriodStart string `json:"period_start,omitempty"`
	PeriodEnd   string `json:"period_end,omitempty"`
	Method      string `json:"method"`
	ExternalID  string `json:"external_id,omitempty"`
	CreatedAt   string `json:"created_at"`
}

// Usage is consumption against plan limits, for progress displays.
type Usage struct {
	TenantID   string `json:"tenant_id"`
	Users      int    `json:"users"`
	Requests   int    `json:"requests"`
	StorageGB  int    `json:"storage_gb"`
	MeasuredAt string `json:"measured_at"`
}

// HistoryEvent is one line of the tenant's billing audit trail.
type HistoryEvent struct {
	ID       string                 `json:"id"`
	TenantID string                 `json:"tenant_id"`
	Action   string                 `json:"action"`
	Actor    string                 `json:"actor"`
	At       time.Time              `json:"at"`
	Meta     map[string]interface{} `json:"meta,omitempty"`
}

type HistoryPage struct {
	Results  []HistoryEvent `json:"results"`
	Total    int            `json:"total"`
	Page     int            `json:"page"`
	PageSize int            `json:"page_size"`
}

// Suscripcion is the backend's subscription record (distinct from the
// local Subscription shape above, which predates it).
type Suscripcion struct {
	ID          shared.FlexID `json:"id"`
	Empresa     shared.FlexID `json:"empresa"`
	EnumPlan    string        `json:"enum_plan,omitempty"`
	EnumEstado  string        `json:"enum_estado,omitempty"`
	Estado      string        `json:"estado,omitempty"`
	Activo      bool          `json:"activo,omitempty"`
	FechaInicio string        `json:"fecha_inicio,omitempty"`
	FechaFin    string        `json:"fecha_fin,omitempty"`
}
