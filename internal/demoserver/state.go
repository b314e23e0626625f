package demoserver

import (
	"strconv"
	"sync"

	"golang.org/x/crypto/bcrypt"

	"backoffice-client/internal/domain/shared"
)

// account is a seeded login principal.
type account struct {
	ID             string
	Username       string
	Email          string
	NombreCompleto string
	PasswordHash   []byte
	IsSuperuser    bool
	IsStaff        bool
	EmpresaID      string
	EmpresaNombre  string
	OrgRoles       map[string]string
	Active         bool
}

type empresa struct {
	ID              string `json:"id"`
	RazonSocial     string `json:"razon_social"`
	NombreComercial string `json:"nombre_comercial"`
	EmailContacto   string `json:"email_contacto"`
}

type cliente struct {
	ID        shared.FlexID `json:"id"`
	Nombre    string        `json:"nombre"`
	Apellido  string        `json:"apellido"`
	Telefono  string        `json:"telefono"`
	Email     string        `json:"email,omitempty"`
	EmpresaID string        `json:"empresa_id,omitempty"`
}

type tipoCredito struct {
	ID          shared.FlexID `json:"id"`
	Nombre      string        `json:"nombre"`
	Descripcion string        `json:"descripcion"`
	MontoMinimo float64       `json:"monto_minimo"`
	MontoMaximo float64       `json:"monto_maximo"`
}

type suscripcion struct {
	ID         shared.FlexID `json:"id"`
	Empresa    shared.FlexID `json:"empresa"`
	EnumPlan   string        `json:"enum_plan"`
	EnumEstado string        `json:"enum_estado"`
	Activo     bool          `json:"activo"`
	FechaFin   string        `json:"fecha_fin,omitempty"`
}

// state is the in-memory fixture data behind the handlers.
type state struct {
	mu sync.RWMutex

	accounts      map[string]*account // keyed by email
	empresas      []empresa
	clientes      []cliente
	tipos         []tipoCredito
	suscripciones []suscripcion
	revoked       map[string]bool // logged-out tokens

	nextID int
}

func mustHash(password string) []byte {
	h, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		panic(err)
	}
	return h
}

// seed mirrors the demo environment: one platform superadmin without a
// company and one staff admin inside "Empresa Demo S.A.".
func newState() *state {
	return &state{
		accounts: map[string]*account{
			"admin@plataforma.com": {
				ID:             "100",
				Username:       "superadmin",
				Email:          "admin@plataforma.com",
				NombreCompleto: "Super Admin",
				PasswordHash:   mustHash("superadmin123"),
				IsSuperuser:    true,
				Active:         true,
			},
			"vagner@gmail.com": {
				ID:             "1",
				Username:       "vagner",
				Email:          "vagner@gmail.com",
				NombreCompleto: "Vagner Admin",
				PasswordHash:   mustHash("sssssssssssssssssssss"),
				IsStaff:        true,
				EmpresaID:      "1",
				EmpresaNombre:  "Empresa Demo S.A.",
				OrgRoles:       map[string]string{"1": "administrador"},
				Active:         true,
			},
		},
		empresas: []empresa{
			{ID: "1", RazonSocial: "Empresa Demo S.A.", NombreComercial: "Empresa Demo", EmailContacto: "contacto@demo.com"},
		},
		clientes: []cliente{
			{ID: "1", Nombre: "Juan", Apellido: "Pérez", Telefono: "+591 70123456", EmpresaID: "1"},
			{ID: "2", Nombre: "María", Apellido: "García", Telefono: "+591 71234567", EmpresaID: "1"},
			{ID: "3", Nombre: "Carlos", Apellido: "López", Telefono: "+591 72345678", EmpresaID: "1"},
			{ID: "4", Nombre: "Ana", Apellido: "Martínez", Telefono: "+591 73456789", EmpresaID: "1"},
		},
		tipos: []tipoCredito{
			{ID: "1", Nombre: "Préstamo Personal", Descripcion: "Para gastos personales", MontoMinimo: 1000, MontoMaximo: 50000},
			{ID: "2", Nombre: "Crédito Vehicular", Descripcion: "Para compra de vehículos", MontoMinimo: 10000, MontoMaximo: 200000},
			{ID: "3", Nombre: "Crédito Hipotecario", Descripcion: "Para compra de vivienda", MontoMinimo: 50000, MontoMaximo: 500000},
		},
		suscripciones: []suscripcion{
			{ID: "1", Empresa: "1", EnumPlan: "BASICO", EnumEstado: "ACTIVO", Activo: true},
		},
		revoked: map[string]bool{},
		nextID:  1000,
	}
}

func (s *state) nextIDString() string {
	s.nextID++
	return strconv.Itoa(s.nextID)
}
