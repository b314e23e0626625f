package demoserver

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"backoffice-client/internal/domain/shared"
	"backoffice-client/internal/middleware"
	"backoffice-client/internal/pkg/response"
)

// scopeEmpresa resolves which company the caller may see. Superusers see
// everything unless they pin a scope with X-Tenant-ID.
func scopeEmpresa(c *gin.Context) (empresaID string, all bool) {
	if middleware.IsSuperuser(c) {
		if override := c.GetHeader("X-Tenant-ID"); override != "" {
			return override, false
		}
		return "", true
	}
	return middleware.EmpresaID(c), false
}

func (s *Server) handleListClientes(c *gin.Context) {
	empresaID, all := scopeEmpresa(c)

	s.state.mu.RLock()
	defer s.state.mu.RUnlock()

	results := make([]cliente, 0, len(s.state.clientes))
	for _, cl := range s.state.clientes {
		if all || cl.EmpresaID == empresaID {
			results = append(results, cl)
		}
	}
	c.JSON(http.StatusOK, gin.H{"results": results, "count": len(results)})
}

func (s *Server) handleCreateCliente(c *gin.Context) {
	var in cliente
	if err := c.ShouldBindJSON(&in); err != nil {
		response.Detail(c, http.StatusBadRequest, "cuerpo de solicitud inválido")
		return
	}
	if strings.TrimSpace(in.Nombre) == "" {
		response.FieldError(c, "nombre", "Este campo es requerido.")
		return
	}

	empresaID, _ := scopeEmpresa(c)

	s.state.mu.Lock()
	in.ID = shared.FlexID(s.state.nextIDString())
	if in.EmpresaID == "" {
		in.EmpresaID = empresaID
	}
	s.state.clientes = append(s.state.clientes, in)
	s.state.mu.Unlock()

	c.JSON(http.StatusCreated, in)
}

func (s *Server) handleListTipos(c *gin.Context) {
	search := strings.ToLower(strings.TrimSpace(c.Query("search")))

	s.state.mu.RLock()
	defer s.state.mu.RUnlock()

	results := make([]tipoCredito, 0, len(s.state.tipos))
	for _, t := range s.state.tipos {
		if search != "" && !strings.Contains(strings.ToLower(t.Nombre), search) {
			continue
		}
		results = append(results, t)
	}
	c.JSON(http.StatusOK, gin.H{"results": results, "count": len(results)})
}

func (s *Server) handleCreateTipo(c *gin.Context) {
	var in tipoCredito
	if err := c.ShouldBindJSON(&in); err != nil {
		response.Detail(c, http.StatusBadRequest, "cuerpo de solicitud inválido")
		return
	}
	if strings.TrimSpace(in.Nombre) == "" {
		response.FieldError(c, "nombre", "Este campo es requerido.")
		return
	}

	s.state.mu.Lock()
	in.ID = shared.FlexID(s.state.nextIDString())
	s.state.tipos = append(s.state.tipos, in)
	s.state.mu.Unlock()

	c.JSON(http.StatusCreated, in)
}

func (s *Server) handleListEmpresas(c *gin.Context) {
	s.state.mu.RLock()
	defer s.state.mu.RUnlock()
	c.JSON(http.StatusOK, gin.H{"results": s.state.empresas})
}

func (s *Server) handleGetEmpresa(c *gin.Context) {
	id := c.Param("id")

	s.state.mu.RLock()
	defer s.state.mu.RUnlock()
	for _, e := range s.state.empresas {
		if e.ID == id {
			c.JSON(http.StatusOK, gin.H{"empresa": e})
			return
		}
	}
	response.NotFound(c, "empresa no encontrada")
}

// validEnumPlans is intentionally strict so the client's candidate retry
// has something to negotiate against.
var validEnumPlans = map[string]bool{
	"BASICO":      true,
	"PROFESIONAL": true,
	"PREMIUM":     true,
}

func (s *Server) handleListSuscripciones(c *gin.Context) {
	empresaFilter := c.Query("empresa")

	s.state.mu.RLock()
	defer s.state.mu.RUnlock()

	results := make([]suscripcion, 0, len(s.state.suscripciones))
	for _, sub := range s.state.suscripciones {
		if empresaFilter != "" && sub.Empresa.String() != empresaFilter {
			continue
		}
		results = append(results, sub)
	}
	c.JSON(http.StatusOK, results)
}

func (s *Server) handleCreateSuscripcion(c *gin.Context) {
	var in suscripcion
	if err := c.ShouldBindJSON(&in); err != nil {
		response.Detail(c, http.StatusBadRequest, "cuerpo de solicitud inválido")
		return
	}
	if !validEnumPlans[in.EnumPlan] {
		response.FieldError(c, "enum_plan", `"`+in.EnumPlan+`" no es una elección válida.`)
		return
	}
	if in.Empresa == "" {
		response.FieldError(c, "empresa", "Este campo es requerido.")
		return
	}

	s.state.mu.Lock()
	in.ID = shared.FlexID(s.state.nextIDString())
	in.Activo = true
	if in.EnumEstado == "" {
		in.EnumEstado = "ACTIVO"
	}
	s.state.suscripciones = append(s.state.suscripciones, in)
	s.state.mu.Unlock()

	c.JSON(http.StatusCreated, in)
}

func (s *Server) handleUpdateSuscripcion(c *gin.Context) {
	id := c.Param("id")

	var in struct {
		EnumPlan   string `json:"enum_plan"`
		EnumEstado string `json:"enum_estado"`
		FechaFin   string `json:"fecha_fin"`
		Activo     *bool  `json:"activo"`
	}
	if err := c.ShouldBindJSON(&in); err != nil {
		response.Detail(c, http.StatusBadRequest, "cuerpo de solicitud inválido")
		return
	}
	if in.EnumPlan != "" && !validEnumPlans[in.EnumPlan] {
		response.FieldError(c, "enum_plan", `"`+in.EnumPlan+`" no es una elección válida.`)
		return
	}

	s.state.mu.Lock()
	defer s.state.mu.Unlock()
	for i := range s.state.suscripciones {
		if s.state.suscripciones[i].ID.String() != id {
			continue
		}
		if in.EnumPlan != "" {
			s.state.suscripciones[i].EnumPlan = in.EnumPlan
		}
		if in.EnumEstado != "" {
			s.state.suscripciones[i].EnumEstado = in.EnumEstado
		}
		if in.FechaFin != "" {
			s.state.suscripciones[i].FechaFin = in.FechaFin
		}
		if in.Activo != nil {
			s.state.suscripciones[i].Activo = *in.Activo
		}
		c.JSON(http.StatusOK, s.state.suscripciones[i])
		return
	}
	response.NotFound(c, "suscripción no encontrada")
}
