package demoserver

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"

	"backoffice-client/internal/pkg/response"
)

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type registerRequest struct {
	RazonSocial      string `json:"razon_social"`
	NombreComercial  string `json:"nombre_comercial"`
	EmailContacto    string `json:"email_contacto"`
	ImagenURLEmpresa string `json:"imagen_url_empresa"`

	Username        string `json:"username"`
	Password        string `json:"password"`
	FirstName       string `json:"first_name"`
	LastName        string `json:"last_name"`
	Email           string `json:"email"`
	ImagenURLPerfil string `json:"imagen_url_perfil"`
}

// userPayload is the user object login and profile responses carry.
func userPayload(a *account) gin.H {
	return gin.H{
		"id":              a.ID,
		"username":        a.Username,
		"email":           a.Email,
		"nombre_completo": a.NombreCompleto,
		"is_superuser":    a.IsSuperuser,
		"is_staff":        a.IsStaff,
		"empresa_id":      a.EmpresaID,
		"empresa_nombre":  a.EmpresaNombre,
		"org_roles":       a.OrgRoles,
	}
}

func (s *Server) handleLogin(c *gin.Context) {
	var req loginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Detail(c, http.StatusBadRequest, "cuerpo de solicitud inválido")
		return
	}

	fields := map[string][]string{}
	if strings.TrimSpace(req.Email) == "" {
		fields["email"] = []string{"Este campo es requerido."}
	}
	if req.Password == "" {
		fields["password"] = []string{"Este campo es requerido."}
	}
	if len(fields) > 0 {
		response.FieldErrors(c, fields)
		return
	}

	s.state.mu.RLock()
	acct := s.state.accounts[strings.ToLower(req.Email)]
	s.state.mu.RUnlock()

	if acct == nil || bcrypt.CompareHashAndPassword(acct.PasswordHash, []byte(req.Password)) != nil {
		s.logger.Info("login rejected", zap.String("email", req.Email))
		response.Detail(c, http.StatusBadRequest, "Credenciales inválidas")
		return
	}
	if !acct.Active {
		response.Detail(c, http.StatusForbidden, "Cuenta desactivada")
		return
	}

	token, err := s.tokens.Generate(acct.ID, acct.Email, acct.IsStaff, acct.IsSuperuser, acct.EmpresaID)
	if err != nil {
		response.Detail(c, http.StatusInternalServerError, "no se pudo generar el token")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"token":          token,
		"message":        "Login exitoso",
		"user":           userPayload(acct),
		"empresa_id":     acct.EmpresaID,
		"empresa_nombre": acct.EmpresaNombre,
	})
}

func (s *Server) handleProfile(c *gin.Context) {
	email, _ := c.Get("email")
	addr, _ := email.(string)

	s.state.mu.RLock()
	revoked := s.state.revoked[bearerToken(c)]
	acct := s.state.accounts[strings.ToLower(addr)]
	s.state.mu.RUnlock()

	if revoked || acct == nil {
		response.Unauthorized(c, "sesión inválida")
		return
	}

	c.JSON(http.StatusOK, gin.H{"user": userPayload(acct)})
}

// handleRegisterEmpresaUser creates a company and its first admin in one
// step, returning a ready-to-use session token.
func (s *Server) handleRegisterEmpresaUser(c *gin.Context) {
	var req registerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Detail(c, http.StatusBadRequest, "cuerpo de solicitud inválido")
		return
	}

	fields := map[string][]string{}
	for name, value := range map[string]string{
		"razon_social":     req.RazonSocial,
		"nombre_comercial": req.NombreComercial,
		"email_contacto":   req.EmailContacto,
		"username":         req.Username,
		"first_name":       req.FirstName,
		"last_name":        req.LastName,
		"email":            req.Email,
	} {
		if strings.TrimSpace(value) == "" {
			fields[name] = []string{"Este campo es requerido."}
		}
	}
	if len(req.Password) < 8 {
		fields["password"] = []string{"La contraseña debe tener al menos 8 caracteres."}
	}
	if len(fields) > 0 {
		response.FieldErrors(c, fields)
		return
	}

	s.state.mu.Lock()
	if _, exists := s.state.accounts[strings.ToLower(req.Email)]; exists {
		s.state.mu.Unlock()
		response.FieldError(c, "email", "Ya existe un usuario con este correo.")
		return
	}

	empresaID := s.state.nextIDString()
	s.state.empresas = append(s.state.empresas, empresa{
		ID:              empresaID,
		RazonSocial:     req.RazonSocial,
		NombreComercial: req.NombreComercial,
		EmailContacto:   req.EmailContacto,
	})

	acct := &account{
		ID:             s.state.nextIDString(),
		Username:       req.Username,
		Email:          req.Email,
		NombreCompleto: strings.TrimSpace(req.FirstName + " " + req.LastName),
		PasswordHash:   mustHash(req.Password),
		IsStaff:        true,
		EmpresaID:      empresaID,
		EmpresaNombre:  req.RazonSocial,
		OrgRoles:       map[string]string{empresaID: "administrador"},
		Active:         true,
	}
	s.state.accounts[strings.ToLower(req.Email)] = acct
	s.state.mu.Unlock()

	token, err := s.tokens.Generate(acct.ID, acct.Email, acct.IsStaff, acct.IsSuperuser, acct.EmpresaID)
	if err != nil {
		response.Detail(c, http.StatusInternalServerError, "no se pudo generar el token")
		return
	}

	s.logger.Info("company registered",
		zap.String("empresa_id", empresaID),
		zap.String("razon_social", req.RazonSocial),
	)
	c.JSON(http.StatusCreated, gin.H{
		"token":      token,
		"user":       userPayload(acct),
		"empresa_id": empresaID,
		"message":    "Registro exitoso",
	})
}

func (s *Server) handleLogout(c *gin.Context) {
	var req struct {
		Token string `json:"token"`
	}
	if err := c.ShouldBindJSON(&req); err != nil || req.Token == "" {
		response.Detail(c, http.StatusBadRequest, "token requerido")
		return
	}

	s.state.mu.Lock()
	s.state.revoked[req.Token] = true
	s.state.mu.Unlock()

	c.JSON(http.StatusOK, gin.H{"message": "Sesión cerrada"})
}

func bearerToken(c *gin.Context) string {
	header := c.GetHeader("Authorization")
	parts := strings.Split(header, " ")
	if len(parts) == 2 && strings.EqualFold(parts[0], "Bearer") {
		return parts[1]
	}
	return ""
}
