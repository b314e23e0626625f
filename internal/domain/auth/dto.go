package auth

import "github.com/go-playground/validator/v10"

// UserDTO is the untrusted user-shaped object backends return. Field names
// follow the Django auth_user conventions the backend speaks.
type UserDTO struct {
	ID             FlexID            `json:"id"`
	Username       string            `json:"username"`
	Email          string            `json:"email"`
	NombreCompleto string            `json:"nombre_completo"`
	IsSuperuser    bool              `json:"is_superuser"`
	IsStaff        bool              `json:"is_staff"`
	EmpresaID      FlexID            `json:"empresa_id"`
	EmpresaNombre  string            `json:"empresa_nombre"`
	TenantID       FlexID            `json:"tenant_id"`
	GlobalRoles    []Role            `json:"global_roles"`
	OrgRoles       map[string]string `json:"org_roles"`
	Permissions    []string          `json:"permissions"`
}

// LoginRequest for the login endpoint. Non-emptiness is the caller's
// responsibility; the backend rejects blanks with field errors.
type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// LoginResponseDTO tolerates both nested (user-shaped object) and flattened
// payload variants the backend has shipped over time.
type LoginResponseDTO struct {
	Token   string   `json:"token"`
	Message string   `json:"message"`
	User    *UserDTO `json:"user"`

	// Flattened fallbacks, consulted only when User is absent.
	UserID         FlexID            `json:"user_id"`
	Username       string            `json:"username"`
	Email          string            `json:"email"`
	NombreCompleto string            `json:"nombre_completo"`
	IsSuperuser    bool              `json:"is_superuser"`
	IsStaff        bool              `json:"is_staff"`
	EmpresaID      FlexID            `json:"empresa_id"`
	EmpresaNombre  string            `json:"empresa_nombre"`
	OrgRoles       map[string]string `json:"org_roles"`
}

// ProfileDTO is the "who am I" response.
type ProfileDTO struct {
	User    UserDTO `json:"user"`
	Message string  `json:"message"`
}

// RegisterEmpresaUserRequest creates a company and its first administrative
// user in one call. Validated before the network call, not inside it.
type RegisterEmpresaUserRequest struct {
	RazonSocial      string `json:"razon_social" validate:"required"`
	NombreComercial  string `json:"nombre_comercial" validate:"required"`
	EmailContacto    string `json:"email_contacto" validate:"required,email"`
	ImagenURLEmpresa string `json:"imagen_url_empresa"`

	Username        string `json:"username" validate:"required"`
	Password        string `json:"password" validate:"required,min=8"`
	FirstName       string `json:"first_name" validate:"required"`
	LastName        string `json:"last_name" validate:"required"`
	Email           string `json:"email" validate:"required,email"`
	ImagenURLPerfil string `json:"imagen_url_perfil"`
}

var validate = validator.New()

// Validate enforces the caller-side contract for company registration.
func (r *RegisterEmpresaUserRequest) Validate() error {
	return validate.Struct(r)
}

// RegisterEmpresaUserResponse is the backend's registration response.
type RegisterEmpresaUserResponse struct {
	Token     string  `json:"token"`
	User      UserDTO `json:"user"`
	EmpresaID FlexID  `json:"empresa_id"`
	Message   string  `json:"message"`
}

// Result is the uniform outcome login/register/logout hand to the UI.
// Nothing throws past this boundary.
type Result struct {
	Success   bool     `json:"success"`
	Message   string   `json:"message,omitempty"`
	Session   *Session `json:"-"`
	EmpresaID string   `json:"empresa_id,omitempty"`
}
