// Package auth produces a trustworthy, minimal session from untrusted
// backend responses, exposes the scoping predicates the rest of the
// application gates on, and manages the persist/clear lifecycle of the
// client-side mirror.
package auth

import (
	"context"
	"encoding/json"
	"sync"

	"go.uber.org/zap"

	"backoffice-client/internal/apiclient"
	domain "backoffice-client/internal/domain/auth"
	xerrors "backoffice-client/internal/pkg/errors"
	"backoffice-client/internal/store"
)

// Mirror keys. Exact names are preserved for backward compatibility with
// already-deployed sessions.
const (
	KeyToken          = "auth.token"
	KeyMe             = "auth.me"
	KeyEmpresaID      = "auth.empresa_id"
	KeyPermissions    = "auth.permissions"
	KeyTenantID       = "auth.tenant_id"
	KeyEnvelope       = "auth"
	KeyCurrentCompany = "auth.current_company_id"
)

// sessionKeys are cleared together on logout or failed refresh.
var sessionKeys = []string{KeyToken, KeyMe, KeyEmpresaID, KeyPermissions, KeyTenantID, KeyEnvelope}

// Options configure hooks and the demo toggle.
type Options struct {
	// DemoMode enables the fixed credential allowlist. Off in production.
	DemoMode bool

	// Reload is invoked after a successful company switch so tenant-scoped
	// views re-fetch under the new scope (the SPA full-reload analog).
	Reload func()

	// NavigateHome is invoked after logout (the full-page redirect analog).
	NavigateHome func()
}

type Service struct {
	api    *apiclient.Client
	store  store.Store
	logger *zap.Logger
	opts   Options

	mu      sync.RWMutex
	session *domain.Session
}

func NewService(api *apiclient.Client, st store.Store, logger *zap.Logger, opts Options) *Service {
	return &Service{
		api:    api,
		store:  st,
		logger: logger,
		opts:   opts,
	}
}

// TokenSource reads the bearer credential straight from the mirror, the way
// the web client's request interceptor read localStorage.
func TokenSource(st store.Store) apiclient.TokenFunc {
	return func() string {
		v, err := st.Get(context.Background(), KeyToken)
		if err != nil {
			return ""
		}
		return v
	}
}

// Current returns the in-memory session, or nil when anonymous.
func (s *Service) Current() *domain.Session {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.session
}

func (s *Service) setSession(sess *domain.Session) {
	s.mu.Lock()
	s.session = sess
	s.mu.Unlock()
}

// ========== Login ==========

// Login authenticates against the backend and mints a session. All failure
// kinds are folded into the Result; it never returns an error.
func (s *Service) Login(ctx context.Context, email, password string) *domain.Result {
	if s.opts.DemoMode {
		if sess, msg, ok := matchDemoCredentials(email, password); ok {
			if err := s.persistSession(ctx, sess); err != nil {
				s.logger.Warn("failed to persist demo session", zap.Error(err))
			}
			s.setSession(sess)
			return &domain.Result{Success: true, Message: msg, Session: sess, EmpresaID: sess.User.EmpresaID}
		}
	}

	var resp domain.LoginResponseDTO
	err := s.api.Post(ctx, "/api/auth/login/", domain.LoginRequest{Email: email, Password: password}, &resp, apiclient.WithoutAuth())
	if err != nil {
		s.logger.Warn("login failed", zap.String("email", email), zap.Error(err))
		return &domain.Result{Success: false, Message: apiclient.Humanize(err, "No se pudo iniciar sesión.")}
	}

	if resp.Token == "" {
		return &domain.Result{Success: false, Message: "el servidor no devolvió un token válido"}
	}

	dto := mergeLoginUser(&resp, email)
	user := MapUser(dto)

	// A user outside any company is a configuration error, even on HTTP 200.
	if !user.HasRole(domain.RoleSuperAdmin) && user.EmpresaID == "" {
		s.logger.Warn("login rejected: user has no company", zap.String("email", email))
		return &domain.Result{Success: false, Message: xerrors.ErrNoCompany.Error()}
	}

	sess := &domain.Session{Token: resp.Token, User: user}
	if err := s.persistSession(ctx, sess); err != nil {
		s.logger.Warn("failed to persist session", zap.Error(err))
	}
	s.setSession(sess)

	message := resp.Message
	if message == "" {
		message = "Login exitoso"
	}
	return &domain.Result{Success: true, Message: message, Session: sess, EmpresaID: user.EmpresaID}
}

// mergeLoginUser reconciles the nested and flattened login payload variants.
// Top-level company fields win over the nested record.
func mergeLoginUser(resp *domain.LoginResponseDTO, loginEmail string) *domain.UserDTO {
	dto := &domain.UserDTO{}
	if resp.User != nil {
		*dto = *resp.User
	} else {
		dto.ID = resp.UserID
		dto.Username = resp.Username
		dto.Email = resp.Email
		dto.NombreCompleto = resp.NombreCompleto
		dto.IsSuperuser = resp.IsSuperuser
		dto.IsStaff = resp.IsStaff
		dto.OrgRoles = resp.OrgRoles
	}
	if resp.EmpresaID != "" {
		dto.EmpresaID = resp.EmpresaID
	}
	if resp.EmpresaNombre != "" {
		dto.EmpresaNombre = resp.EmpresaNombre
	}
	if dto.Email == "" {
		dto.Email = loginEmail
	}
	if dto.TenantID == "" {
		dto.TenantID = dto.EmpresaID
	}
	return dto
}

// ========== Profile refresh ==========

// FetchProfile asks the backend "who am I" with the stored token and
// returns a refreshed, re-persisted session.
func (s *Service) FetchProfile(ctx context.Context) (*domain.Session, error) {
	token, err := s.store.Get(ctx, KeyToken)
	if err != nil || token == "" {
		return nil, xerrors.ErrNoSession
	}

	if s.opts.DemoMode {
		if sess, ok := demoSessionForToken(token); ok {
			if err := s.persistSession(ctx, sess); err != nil {
				s.logger.Warn("failed to persist demo session", zap.Error(err))
			}
			s.setSession(sess)
			return sess, nil
		}
	}

	var resp domain.ProfileDTO
	if err := s.api.Get(ctx, "/api/profile/", nil, &resp); err != nil {
		return nil, xerrors.Wrap(err, "profile refresh failed")
	}

	user := MapUser(&resp.User)
	sess := &domain.Session{Token: token, User: user}
	if err := s.persistSession(ctx, sess); err != nil {
		s.logger.Warn("failed to persist refreshed session", zap.Error(err))
	}
	s.setSession(sess)
	return sess, nil
}

// Bootstrap restores the session at startup. Every failure kind degrades to
// "logged out" with the mirror invalidated wholesale; it never surfaces an
// error to the caller.
func (s *Service) Bootstrap(ctx context.Context) {
	token, err := s.store.Get(ctx, KeyToken)
	if err != nil || token == "" {
		s.setSession(nil)
		return
	}
	if _, err := s.FetchProfile(ctx); err != nil {
		s.logger.Info("stored session invalid, clearing", zap.Error(err))
		s.clearSession(ctx)
		s.setSession(nil)
	}
}

// ========== Company + owner registration ==========

// RegisterEmpresaUser creates a company and its first administrative user,
// then mints a session for that user. The payload contract is validated by
// the caller (RegisterEmpresaUserRequest.Validate), not here.
func (s *Service) RegisterEmpresaUser(ctx context.Context, req *domain.RegisterEmpresaUserRequest) *domain.Result {
	var resp domain.RegisterEmpresaUserResponse
	err := s.api.Post(ctx, "/api/register/empresa-user/", req, &resp, apiclient.WithoutAuth())
	if err != nil {
		s.logger.Warn("company registration failed", zap.String("razon_social", req.RazonSocial), zap.Error(err))
		return &domain.Result{Success: false, Message: apiclient.Humanize(err, "No se pudo registrar la empresa.")}
	}

	// The owner is always that company's admin, whatever the backend says.
	dto := resp.User
	dto.EmpresaID = resp.EmpresaID
	dto.IsStaff = true
	dto.GlobalRoles = []domain.Role{domain.RoleAdmin}

	user := MapUser(&dto)
	user.Permissions = []string{"*"} // wildcard inside the new company

	sess := &domain.Session{Token: resp.Token, User: user}
	if err := s.persistSession(ctx, sess); err != nil {
		s.logger.Warn("failed to persist session", zap.Error(err))
	}
	s.setSession(sess)

	message := resp.Message
	if message == "" {
		message = "Registro exitoso"
	}
	return &domain.Result{Success: true, Message: message, Session: sess, EmpresaID: user.EmpresaID}
}

// ========== Logout ==========

// Logout notifies the backend best-effort, then unconditionally clears the
// mirror and the in-memory session before navigating home.
func (s *Service) Logout(ctx context.Context) *domain.Result {
	token, _ := s.store.Get(ctx, KeyToken)
	if token != "" {
		payload := map[string]string{"token": token}
		if err := s.api.Post(ctx, "/api/auth/logout/", payload, nil, apiclient.WithoutAuth()); err != nil {
			s.logger.Warn("logout notification failed", zap.Error(err))
		}
	}

	s.clearSession(ctx)
	s.setSession(nil)

	if s.opts.NavigateHome != nil {
		s.opts.NavigateHome()
	}
	return &domain.Result{Success: true}
}

// ========== Mirror lifecycle ==========

// envelope duplicates the individual keys for backward compatibility.
type envelope struct {
	Token     string      `json:"token"`
	User      domain.User `json:"user"`
	EmpresaID string      `json:"empresa_id,omitempty"`
	TenantID  string      `json:"tenant_id,omitempty"`
}

// persistSession writes every mirror key in one atomic batch so readers
// never observe a partial state.
func (s *Service) persistSession(ctx context.Context, sess *domain.Session) error {
	rawUser, err := json.Marshal(sess.User)
	if err != nil {
		return xerrors.Wrap(err, "failed to serialize user")
	}
	rawEnvelope, err := json.Marshal(envelope{
		Token:     sess.Token,
		User:      sess.User,
		EmpresaID: sess.User.EmpresaID,
		TenantID:  sess.User.TenantID,
	})
	if err != nil {
		return xerrors.Wrap(err, "failed to serialize session envelope")
	}

	set := map[string]string{
		KeyToken:    sess.Token,
		KeyMe:       string(rawUser),
		KeyEnvelope: string(rawEnvelope),
	}
	var del []string

	if sess.User.EmpresaID != "" {
		set[KeyEmpresaID] = sess.User.EmpresaID
	} else {
		del = append(del, KeyEmpresaID) // superadmin has no company
	}
	if sess.User.TenantID != "" {
		set[KeyTenantID] = sess.User.TenantID
	} else {
		del = append(del, KeyTenantID)
	}
	if len(sess.User.Permissions) > 0 {
		rawPerms, err := json.Marshal(sess.User.Permissions)
		if err != nil {
			return xerrors.Wrap(err, "failed to serialize permissions")
		}
		set[KeyPermissions] = string(rawPerms)
	} else {
		del = append(del, KeyPermissions)
	}

	return s.store.Batch(ctx, set, del)
}

func (s *Service) clearSession(ctx context.Context) {
	if err := s.store.Batch(ctx, nil, sessionKeys); err != nil {
		s.logger.Warn("failed to clear session mirror", zap.Error(err))
	}
}
