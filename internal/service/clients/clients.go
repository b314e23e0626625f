// Package clients lists and creates a company's end customers. REST first,
// tenant-partitioned local cache when the backend is unreachable.
package clients

import (
	"context"
	"encoding/json"
	"net/url"
	"strconv"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/oklog/ulid/v2"
	"go.uber.org/zap"

	"backoffice-client/internal/apiclient"
	domain "backoffice-client/internal/domain/client"
	"backoffice-client/internal/domain/shared"
	xerrors "backoffice-client/internal/pkg/errors"
	"backoffice-client/internal/store"
)

// TenantProvider yields the operational scope to partition caches by.
type TenantProvider interface {
	CurrentTenant(ctx context.Context) string
}

type Service struct {
	api      *apiclient.Client
	store    store.Store
	tenant   TenantProvider
	logger   *zap.Logger
	validate *validator.Validate
}

func NewService(api *apiclient.Client, st store.Store, tenant TenantProvider, logger *zap.Logger) *Service {
	return &Service{
		api:      api,
		store:    st,
		tenant:   tenant,
		logger:   logger,
		validate: validator.New(),
	}
}

func (s *Service) cacheKey(ctx context.Context) string {
	tenant := s.tenant.CurrentTenant(ctx)
	if tenant == "" {
		tenant = "global"
	}
	return "clientes." + tenant
}

// List fetches clients. The backend answers either a bare array or a DRF
// page; both normalize into the same Page.
func (s *Service) List(ctx context.Context, page, pageSize int) (*domain.Page, error) {
	if page <= 0 {
		page = 1
	}
	if pageSize <= 0 {
		pageSize = 10
	}

	query := url.Values{}
	query.Set("page", strconv.Itoa(page))
	query.Set("page_size", strconv.Itoa(pageSize))

	var raw json.RawMessage
	if err := s.api.Get(ctx, "/api/clients/", query, &raw); err != nil {
		s.logger.Warn("client list failed, falling back to cache", zap.Error(err))
		return s.listFromCache(ctx, page, pageSize, err)
	}

	result := normalizePage(raw, page, pageSize)

	// Refresh the cache so the next offline read has data.
	if err := store.SetJSON(ctx, s.store, s.cacheKey(ctx), result.Results); err != nil {
		s.logger.Warn("failed to refresh client cache", zap.Error(err))
	}
	return result, nil
}

func (s *Service) listFromCache(ctx context.Context, page, pageSize int, cause error) (*domain.Page, error) {
	var cached []domain.Cliente
	if !store.GetJSON(ctx, s.store, s.cacheKey(ctx), &cached) {
		return nil, xerrors.Wrap(cause, "no se pudieron cargar los clientes")
	}
	start := (page - 1) * pageSize
	if start > len(cached) {
		start = len(cached)
	}
	end := start + pageSize
	if end > len(cached) {
		end = len(cached)
	}
	return &domain.Page{
		Results:  cached[start:end],
		Count:    len(cached),
		Page:     page,
		PageSize: pageSize,
	}, nil
}

// Get fetches a single client by id.
func (s *Service) Get(ctx context.Context, id string) (*domain.Cliente, error) {
	var out domain.Cliente
	if err := s.api.Get(ctx, "/api/clients/"+id+"/", nil, &out); err != nil {
		var cached []domain.Cliente
		if store.GetJSON(ctx, s.store, s.cacheKey(ctx), &cached) {
			for i := range cached {
				if cached[i].ID.String() == id {
					return &cached[i], nil
				}
			}
		}
		return nil, xerrors.Wrap(err, "no se pudo cargar el cliente")
	}
	return &out, nil
}

// Create registers a client. When the backend is unreachable the record is
// kept locally with a generated id so the operator can keep working.
func (s *Service) Create(ctx context.Context, input *domain.CreateClienteInput) (*domain.Cliente, error) {
	if err := s.validate.Struct(input); err != nil {
		return nil, xerrors.Wrap(err, "datos de cliente inválidos")
	}

	var out domain.Cliente
	err := s.api.Post(ctx, "/api/clients/", input, &out)
	if err == nil {
		return &out, nil
	}
	if !apiclient.IsNetwork(err) {
		return nil, xerrors.Wrap(err, "no se pudo crear el cliente")
	}

	s.logger.Warn("backend unreachable, saving client locally", zap.Error(err))
	local := domain.Cliente{
		ID:            shared.FlexID(ulid.Make().String()),
		Nombre:        input.Nombre,
		Apellido:      input.Apellido,
		CI:            input.CI,
		Telefono:      input.Telefono,
		Email:         input.Email,
		FechaRegistro: time.Now().Format(time.RFC3339),
	}

	var cached []domain.Cliente
	store.GetJSON(ctx, s.store, s.cacheKey(ctx), &cached)
	cached = append(cached, local)
	if err := store.SetJSON(ctx, s.store, s.cacheKey(ctx), cached); err != nil {
		return nil, xerrors.Wrap(err, "no se pudo guardar el cliente localmente")
	}
	return &local, nil
}

// normalizePage reconciles array and page response shapes.
func normalizePage(raw json.RawMessage, page, pageSize int) *domain.Page {
	var list []domain.Cliente
	if err := json.Unmarshal(raw, &list); err == nil {
		return &domain.Page{Results: list, Count: len(list), Page: page, PageSize: pageSize}
	}

	var wrapped struct {
		Results  []domain.Cliente `json:"results"`
		Data     []domain.Cliente `json:"data"`
		Count    int              `json:"count"`
		Total    int              `json:"total"`
		Page     int              `json:"page"`
		PageSize int              `json:"page_size"`
	}
	if err := json.Unmarshal(raw, &wrapped); err != nil {
		return &domain.Page{Results: nil, Count: 0, Page: page, PageSize: pageSize}
	}
	results := wrapped.Results
	if results == nil {
		results = wrapped.Data
	}
	count := wrapped.Count
	if count == 0 {
		count = wrapped.Total
	}
	if count == 0 {
		count = len(results)
	}
	if wrapped.Page > 0 {
		page = wrapped.Page
	}
	if wrapped.PageSize > 0 {
		pageSize = wrapped.PageSize
	}
	return &domain.Page{Results: results, Count: count, Page: page, PageSize: pageSize}
}
