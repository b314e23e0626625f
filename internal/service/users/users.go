// Package users manages accounts against a Django auth_user backend.
// Endpoint paths have moved between deployments, so creation walks a list
// of known spellings before giving up and saving locally.
package users

import (
	"context"
	"encoding/json"
	"fmt"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/oklog/ulid/v2"
	"go.uber.org/zap"

	"backoffice-client/internal/apiclient"
	"backoffice-client/internal/domain/shared"
	domain "backoffice-client/internal/domain/user"
	xerrors "backoffice-client/internal/pkg/errors"
	"backoffice-client/internal/store"
)

// Local fallback key for accounts created while the backend is down.
const keyLocalUsers = "mock.users"

// createEndpoints in preference order, trailing slash variants included.
var createEndpoints = []string{
	"/api/User/user/",
	"/api/User/user",
	"/api/users/",
	"/api/users",
}

type Service struct {
	api      *apiclient.Client
	store    store.Store
	logger   *zap.Logger
	validate *validator.Validate
}

func NewService(api *apiclient.Client, st store.Store, logger *zap.Logger) *Service {
	return &Service{
		api:      api,
		store:    st,
		logger:   logger,
		validate: validator.New(),
	}
}

// Create tries every known endpoint, then falls back to the local list.
// The extended profile fields go out as a best-effort PATCH after the
// account itself exists.
func (s *Service) Create(ctx context.Context, payload *domain.CreatePayload) (*domain.CreateResponse, error) {
	if err := s.validate.Struct(payload); err != nil {
		return nil, xerrors.Wrap(xerrors.ErrInvalidInput, err.Error())
	}

	for _, endpoint := range createEndpoints {
		var resp domain.CreateResponse
		err := s.api.Post(ctx, endpoint, payload, &resp)
		if err != nil {
			s.logger.Warn("user create endpoint failed",
				zap.String("endpoint", endpoint),
				zap.Error(err),
			)
			continue
		}

		s.patchExtendedProfile(ctx, resp.ID.String(), payload)

		resp.Telefono = payload.Telefono
		resp.Cargo = payload.Cargo
		resp.Departamento = payload.Departamento
		resp.FechaIngreso = payload.FechaIngreso
		resp.Avatar = payload.Avatar
		resp.UserPermissions = payload.UserPermissions
		return &resp, nil
	}

	s.logger.Warn("all user create endpoints failed, saving locally",
		zap.String("username", payload.Username),
	)
	return s.createLocal(ctx, payload)
}

// patchExtendedProfile is best-effort: deployments without the profile
// endpoint just log a warning.
func (s *Service) patchExtendedProfile(ctx context.Context, id string, payload *domain.CreatePayload) {
	if payload.Telefono == "" && payload.Cargo == "" && payload.Departamento == "" && payload.Avatar == "" {
		return
	}
	body := map[string]interface{}{
		"telefono":         payload.Telefono,
		"cargo":            payload.Cargo,
		"departamento":     payload.Departamento,
		"fecha_ingreso":    payload.FechaIngreso,
		"avatar":           payload.Avatar,
		"user_permissions": payload.UserPermissions,
	}
	if err := s.api.Patch(ctx, fmt.Sprintf("/api/User/user/%s/profile/", id), body, nil); err != nil {
		s.logger.Warn("extended profile update failed", zap.String("user_id", id), zap.Error(err))
	}
}

func (s *Service) createLocal(ctx context.Context, payload *domain.CreatePayload) (*domain.CreateResponse, error) {
	resp := domain.CreateResponse{
		ID:          shared.FlexID(ulid.Make().String()),
		Username:    payload.Username,
		FirstName:   payload.FirstName,
		LastName:    payload.LastName,
		Email:       payload.Email,
		IsStaff:     payload.IsStaff,
		IsActive:    payload.IsActive,
		IsSuperuser: payload.IsSuperuser,
		DateJoined:  time.Now().Format(time.RFC3339),
		Message:     "Usuario creado localmente (backend no disponible)",

		Telefono:        payload.Telefono,
		Cargo:           payload.Cargo,
		Departamento:    payload.Departamento,
		FechaIngreso:    payload.FechaIngreso,
		Avatar:          payload.Avatar,
		UserPermissions: payload.UserPermissions,
	}

	var existing []domain.CreateResponse
	store.GetJSON(ctx, s.store, keyLocalUsers, &existing)
	existing = append(existing, resp)
	if err := store.SetJSON(ctx, s.store, keyLocalUsers, existing); err != nil {
		return nil, xerrors.Wrap(err, "no se pudo guardar el usuario localmente")
	}
	return &resp, nil
}

// List fetches accounts from the backend and adapts them to the UI row
// shape. On failure the locally created accounts fill in.
func (s *Service) List(ctx context.Context, params domain.ListParams) (*domain.Page, error) {
	page, pageSize := params.Page, params.PageSize
	if page < 1 {
		page = 1
	}
	if pageSize < 1 {
		pageSize = 10
	}

	query := url.Values{
		"page":      {strconv.Itoa(page)},
		"page_size": {strconv.Itoa(pageSize)},
	}
	if search := strings.TrimSpace(params.Search); search != "" {
		query.Set("search", search)
	}
	switch params.Activo {
	case domain.ActiveOnly:
		query.Set("is_active", "true")
	case domain.InactiveOnly:
		query.Set("is_active", "false")
	}

	var raw json.RawMessage
	if err := s.api.Get(ctx, "/api/User/user", query, &raw); err != nil {
		s.logger.Warn("user listing failed, using local accounts", zap.Error(err))
		return s.listLocal(ctx, params, page, pageSize)
	}

	dtos, count, pg, ps := normalizePage(raw, page, pageSize)
	results := make([]domain.User, 0, len(dtos))
	for _, dto := range dtos {
		results = append(results, adaptDTO(dto))
	}
	return &domain.Page{Results: results, Count: count, Page: pg, PageSize: ps}, nil
}

func (s *Service) listLocal(ctx context.Context, params domain.ListParams, page, pageSize int) (*domain.Page, error) {
	var local []domain.CreateResponse
	store.GetJSON(ctx, s.store, keyLocalUsers, &local)

	filtered := local[:0:0]
	search := strings.ToLower(strings.TrimSpace(params.Search))
	for _, u := range local {
		if search != "" &&
			!strings.Contains(strings.ToLower(u.Username), search) &&
			!strings.Contains(strings.ToLower(u.FirstName), search) &&
			!strings.Contains(strings.ToLower(u.LastName), search) &&
			!strings.Contains(strings.ToLower(u.Email), search) {
			continue
		}
		if params.Activo == domain.ActiveOnly && !u.IsActive {
			continue
		}
		if params.Activo == domain.InactiveOnly && u.IsActive {
			continue
		}
		filtered = append(filtered, u)
	}

	total := len(filtered)
	start := (page - 1) * pageSize
	if start > total {
		start = total
	}
	end := start + pageSize
	if end > total {
		end = total
	}

	results := make([]domain.User, 0, end-start)
	for _, u := range filtered[start:end] {
		results = append(results, adaptLocal(u))
	}
	return &domain.Page{Results: results, Count: total, Page: page, PageSize: pageSize}, nil
}

// SetActive toggles an account, locally when the backend refuses.
func (s *Service) SetActive(ctx context.Context, id string, active bool) error {
	body := map[string]bool{"is_active": active}
	if err := s.api.Patch(ctx, fmt.Sprintf("/api/User/user/%s/", id), body, nil); err == nil {
		return nil
	}

	var local []domain.CreateResponse
	store.GetJSON(ctx, s.store, keyLocalUsers, &local)
	for i := range local {
		if local[i].ID.String() == id {
			local[i].IsActive = active
			return store.SetJSON(ctx, s.store, keyLocalUsers, local)
		}
	}
	return nil
}

// normalizePage accepts a bare array or the DRF page envelope with its
// aliases for items, count and page numbers.
func normalizePage(raw json.RawMessage, page, pageSize int) (items []domain.DTO, count, pg, ps int) {
	pg, ps = page, pageSize

	if err := json.Unmarshal(raw, &items); err == nil {
		return items, len(items), pg, ps
	}

	var envelope struct {
		Results     []domain.DTO `json:"results"`
		Data        []domain.DTO `json:"data"`
		Count       *int         `json:"count"`
		Total       *int         `json:"total"`
		Page        *int         `json:"page"`
		CurrentPage *int         `json:"current_page"`
		PageSize    *int         `json:"page_size"`
		PerPage     *int         `json:"per_page"`
	}
	if err := json.Unmarshal(raw, &envelope); err != nil {
		return nil, 0, pg, ps
	}

	items = envelope.Results
	if items == nil {
		items = envelope.Data
	}
	count = len(items)
	if envelope.Count != nil {
		count = *envelope.Count
	} else if envelope.Total != nil {
		count = *envelope.Total
	}
	if envelope.Page != nil {
		pg = *envelope.Page
	} else if envelope.CurrentPage != nil {
		pg = *envelope.CurrentPage
	}
	if envelope.PageSize != nil {
		ps = *envelope.PageSize
	} else if envelope.PerPage != nil {
		ps = *envelope.PerPage
	}
	return items, count, pg, ps
}

func adaptDTO(dto domain.DTO) domain.User {
	nombre := dto.Username
	if nombre == "" {
		nombre = dto.NombreCompleto
	}
	if nombre == "" {
		nombre = dto.Name
	}
	if nombre == "" {
		nombre = "Usuario"
	}

	activo := true
	if dto.IsActive != nil {
		activo = *dto.IsActive
	} else if dto.Active != nil {
		activo = *dto.Active
	}

	return domain.User{
		ID:        dto.ID,
		Nombre:    nombre,
		Username:  dto.Username,
		Email:     dto.Email,
		Telefono:  dto.Telefono,
		Role:      mapDjangoRole(dto),
		Activo:    activo,
		LastLogin: dto.LastLogin,
		CreatedAt: dto.CreatedAt,
	}
}

func adaptLocal(u domain.CreateResponse) domain.User {
	role := domain.UIRoleUser
	if u.IsSuperuser {
		role = domain.UIRoleSuperAdmin
	} else if u.IsStaff {
		role = domain.UIRoleAdmin
	}
	return domain.User{
		ID:        u.ID,
		Nombre:    strings.TrimSpace(u.FirstName + " " + u.LastName),
		Username:  u.Username,
		Email:     u.Email,
		Telefono:  u.Telefono,
		Role:      role,
		Activo:    u.IsActive,
		LastLogin: u.LastLogin,
		CreatedAt: u.DateJoined,
	}
}

func mapDjangoRole(dto domain.DTO) domain.UIRole {
	if dto.IsSuperuser {
		return domain.UIRoleSuperAdmin
	}
	if dto.IsStaff {
		return domain.UIRoleAdmin
	}
	return domain.UIRoleUser
}
