package user

import "backoffice-client/internal/domain/shared"

// UIRole is the coarse role shown in the user management screens.
type UIRole string

const (
	UIRoleSuperAdmin UIRole = "superadmin"
	UIRoleAdmin      UIRole = "admin"
	UIRoleUser       UIRole = "user"
)

// User is the normalized row the management screens render.
type User struct {
	ID        shared.FlexID `json:"id"`
	Nombre    string        `json:"nombre"`
	Apellido  string        `json:"apellido,omitempty"`
	Username  string        `json:"username"`
	Email     string        `json:"email"`
	Telefono  string        `json:"telefono,omitempty"`
	Role      UIRole        `json:"role"`
	Activo    bool          `json:"activo"`
	LastLogin string        `json:"last_login,omitempty"`
	CreatedAt string        `json:"created_at,omitempty"`
}

// DTO mirrors the Django auth_user record shape.
type DTO struct {
	ID             shared.FlexID `json:"id"`
	Username       string        `json:"username"`
	FirstName      string        `json:"first_name"`
	LastName       string        `json:"last_name"`
	Email          string        `json:"email"`
	NombreCompleto string        `json:"nombre_completo,omitempty"`
	Name           string        `json:"name,omitempty"`
	Telefono       string        `json:"telefono,omitempty"`
	IsStaff        bool          `json:"is_staff"`
	IsActive       *bool         `json:"is_active,omitempty"`
	Active         *bool         `json:"active,omitempty"`
	IsSuperuser    bool          `json:"is_superuser"`
	LastLogin      string        `json:"last_login,omitempty"`
	CreatedAt      string        `json:"created_at,omitempty"`
	DateJoined     string        `json:"date_joined,omitempty"`
}

// CreatePayload is the form payload for a new user, including the extended
// profile fields the backend stores separately.
type CreatePayload struct {
	Username    string `json:"username" validate:"required"`
	FirstName   string `json:"first_name"`
	LastName    string `json:"last_name"`
	Email       string `json:"email" validate:"required,email"`
	Password    string `json:"password,omitempty"`
	IsStaff     bool   `json:"is_staff"`
	IsActive    bool   `json:"is_active"`
	IsSuperuser bool   `json:"is_superuser"`

	Telefono        string   `json:"telefono,omitempty"`
	Cargo           string   `json:"cargo,omitempty"`
	Departamento    string   `json:"departamento,omitempty"`
	FechaIngreso    string   `json:"fecha_ingreso,omitempty"`
	Avatar          string   `json:"avatar,omitempty"`
	UserPermissions []string `json:"user_permissions,omitempty"`
}

// CreateResponse is the backend's (or the local fallback's) creation result.
type CreateResponse struct {
	ID          shared.FlexID `json:"id"`
	Username    string        `json:"username"`
	FirstName   string        `json:"first_name"`
	LastName    string        `json:"last_name"`
	Email       string        `json:"email"`
	IsStaff     bool          `json:"is_staff"`
	IsActive    bool          `json:"is_active"`
	IsSuperuser bool          `json:"is_superuser"`
	LastLogin   string        `json:"last_login,omitempty"`
	DateJoined  string        `json:"date_joined,omitempty"`
	Message     string        `json:"message,omitempty"`

	Telefono        string   `json:"telefono,omitempty"`
	Cargo           string   `json:"cargo,omitempty"`
	Departamento    string   `json:"departamento,omitempty"`
	FechaIngreso    string   `json:"fecha_ingreso,omitempty"`
	Avatar          string   `json:"avatar,omitempty"`
	UserPermissions []string `json:"user_permissions,omitempty"`
}

// ActiveFilter narrows listings by account state.
type ActiveFilter string

const (
	ActiveAll    ActiveFilter = "all"
	ActiveOnly   ActiveFilter = "active"
	InactiveOnly ActiveFilter = "inactive"
)

type ListParams struct {
	Search   string
	Activo   ActiveFilter
	Page     int
	PageSize int
}

type Page struct {
	Results  []User `json:"results"`
	Count    int    `json:"count"`
	Page     int    `json:"page"`
	PageSize int    `json:"page_size"`
}
