package client

import "backoffice-client/internal/domain/shared"

// Cliente is a company's end customer.
type Cliente struct {
	ID            shared.FlexID `json:"id"`
	Nombre        string        `json:"nombre"`
	Apellido      string        `json:"apellido,omitempty"`
	CI            string        `json:"ci,omitempty"`
	Telefono      string        `json:"telefono,omitempty"`
	Email         string        `json:"email,omitempty"`
	FechaRegistro string        `json:"fecha_registro,omitempty"`
}

// CreateClienteInput is the creation payload.
type CreateClienteInput struct {
	Nombre   string `json:"nombre" validate:"required"`
	Apellido string `json:"apellido"`
	CI       string `json:"ci"`
	Telefono string `json:"telefono"`
	Email    string `json:"email" validate:"omitempty,email"`
}

// Page is a normalized listing.
type Page struct {
	Results  []Cliente `json:"results"`
	Count    int       `json:"count"`
	Page     int       `json:"page"`
	PageSize int       `json:"page_size"`
}
