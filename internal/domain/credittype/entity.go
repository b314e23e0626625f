package credittype

import "backoffice-client/internal/domain/shared"

// TipoCredito is a configurable credit product.
type TipoCredito struct {
	ID          shared.FlexID `json:"id"`
	Nombre      string        `json:"nombre"`
	Descripcion string        `json:"descripcion"`
	MontoMinimo float64       `json:"monto_minimo"`
	MontoMaximo float64       `json:"monto_maximo"`
	CreatedAt   string        `json:"created_at,omitempty"`
	UpdatedAt   string        `json:"updated_at,omitempty"`
}

type CreateInput struct {
	Nombre      string  `json:"nombre"`
	Descripcion string  `json:"descripcion"`
	MontoMinimo float64 `json:"monto_minimo"`
	MontoMaximo float64 `json:"monto_maximo"`
}

type UpdateInput struct {
	ID          shared.FlexID `json:"id"`
	Nombre      string        `json:"nombre,omitempty"`
	Descripcion string        `json:"descripcion,omitempty"`
	MontoMinimo float64       `json:"monto_minimo,omitempty"`
	MontoMaximo float64       `json:"monto_maximo,omitempty"`
}

type ListParams struct {
	Search   string
	Page     int
	PageSize int
}

type Page struct {
	Results  []TipoCredito `json:"results"`
	Count    int           `json:"count"`
	Page     int           `json:"page"`
	PageSize int           `json:"page_size"`
}
