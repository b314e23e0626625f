package credit

import "backoffice-client/internal/domain/shared"

// Credit states as the backend spells them.
const (
	EstadoPendiente = "PENDIENTE"
	EstadoAprobado  = "APROBADO"
	EstadoRechazado = "RECHAZADO"
)

// CreateInput is a credit request as the form submits it.
type CreateInput struct {
	ClienteID     shared.FlexID `json:"cliente_id"`
	TipoCreditoID shared.FlexID `json:"tipo_credito_id"`
	Monto         float64       `json:"monto"`
	PlazoMeses    int           `json:"plazo_meses"`
	Observaciones string        `json:"observaciones,omitempty"`
}

// Credit is a granted or pending credit.
type Credit struct {
	ID            shared.FlexID `json:"id"`
	ClienteID     shared.FlexID `json:"cliente_id"`
	TipoCreditoID shared.FlexID `json:"tipo_credito_id"`
	Monto         float64       `json:"monto"`
	PlazoMeses    int           `json:"plazo_meses"`
	Observaciones string        `json:"observaciones,omitempty"`
	FechaCreacion string        `json:"fecha_creacion"`
	Estado        string        `json:"estado"`
}

// ClientOption is the client shape the credit form consumes.
type ClientOption struct {
	ID       shared.FlexID `json:"id"`
	Nombre   string        `json:"nombre"`
	Apellido string        `json:"apellido"`
	Telefono string        `json:"telefono"`
}

// TypeOption is the credit-type shape the credit form consumes.
type TypeOption struct {
	ID          shared.FlexID `json:"id"`
	Nombre      string        `json:"nombre"`
	Descripcion string        `json:"descripcion"`
	MontoMinimo float64       `json:"monto_minimo"`
	MontoMaximo float64       `json:"monto_maximo"`
}
