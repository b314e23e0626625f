package empresa

import "backoffice-client/internal/domain/shared"

// Empresa is a tenant company.
type Empresa struct {
	ID              shared.FlexID `json:"id"`
	RazonSocial     string        `json:"razon_social"`
	NombreComercial string        `json:"nombre_comercial"`
	EmailContacto   string        `json:"email_contacto,omitempty"`
	ImagenURL       string        `json:"imagen_url,omitempty"`
	FechaRegistro   string        `json:"fecha_registro,omitempty"`
	Activo          bool          `json:"activo,omitempty"`
}
