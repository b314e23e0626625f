// Package credittypes manages the configurable credit products
// (tipos de crédito): paginated listing with search, full CRUD, and the
// client-side validation the create/edit forms run before submitting.
package credittypes

import (
	"context"
	"fmt"
	"math"
	"net/url"
	"strconv"
	"strings"

	"go.uber.org/zap"

	"backoffice-client/internal/apiclient"
	domain "backoffice-client/internal/domain/credittype"
	xerrors "backoffice-client/internal/pkg/errors"
	"backoffice-client/internal/store"
)

const baseURL = "/api/Creditos/creditos"

type TenantProvider interface {
	CurrentTenant(ctx context.Context) string
}

type Service struct {
	api    *apiclient.Client
	store  store.Store
	tenant TenantProvider
	logger *zap.Logger
}

func NewService(api *apiclient.Client, st store.Store, tenant TenantProvider, logger *zap.Logger) *Service {
	return &Service{api: api, store: st, tenant: tenant, logger: logger}
}

func (s *Service) cacheKey(ctx context.Context) string {
	tenant := s.tenant.CurrentTenant(ctx)
	if tenant == "" {
		tenant = "global"
	}
	return "tipos_credito." + tenant
}

// List fetches credit types with pagination and optional search.
func (s *Service) List(ctx context.Context, params domain.ListParams) (*domain.Page, error) {
	page := params.Page
	if page <= 0 {
		page = 1
	}
	pageSize := params.PageSize
	if pageSize <= 0 {
		pageSize = 10
	}

	query := url.Values{}
	query.Set("page", strconv.Itoa(page))
	query.Set("page_size", strconv.Itoa(pageSize))
	if search := strings.TrimSpace(params.Search); search != "" {
		query.Set("search", search)
	}

	var raw struct {
		Results []domain.TipoCredito `json:"results"`
		Data    []domain.TipoCredito `json:"data"`
		Count   int                  `json:"count"`
		Total   int                  `json:"total"`
	}
	if err := s.api.Get(ctx, baseURL, query, &raw); err != nil {
		s.logger.Warn("credit type list failed, falling back to cache", zap.Error(err))
		var cached []domain.TipoCredito
		if !store.GetJSON(ctx, s.store, s.cacheKey(ctx), &cached) {
			return nil, xerrors.Wrap(err, "no se pudieron cargar los tipos de crédito")
		}
		return &domain.Page{Results: cached, Count: len(cached), Page: page, PageSize: pageSize}, nil
	}

	results := raw.Results
	if results == nil {
		results = raw.Data
	}
	count := raw.Count
	if count == 0 {
		count = raw.Total
	}
	if count == 0 {
		count = len(results)
	}

	if err := store.SetJSON(ctx, s.store, s.cacheKey(ctx), results); err != nil {
		s.logger.Warn("failed to refresh credit type cache", zap.Error(err))
	}
	return &domain.Page{Results: results, Count: count, Page: page, PageSize: pageSize}, nil
}

// Get fetches a single credit type.
func (s *Service) Get(ctx context.Context, id string) (*domain.TipoCredito, error) {
	var out domain.TipoCredito
	if err := s.api.Get(ctx, baseURL+"/"+id+"/", nil, &out); err != nil {
		return nil, xerrors.Wrap(err, "no se pudo cargar el tipo de crédito")
	}
	return &out, nil
}

// Create registers a new credit type.
func (s *Service) Create(ctx context.Context, input *domain.CreateInput) (*domain.TipoCredito, error) {
	if errs := Validate(input); len(errs) > 0 {
		return nil, xerrors.Wrap(xerrors.ErrInvalidInput, strings.Join(errs, "; "))
	}
	var out domain.TipoCredito
	if err := s.api.Post(ctx, baseURL, input, &out); err != nil {
		return nil, xerrors.Wrap(err, "no se pudo crear el tipo de crédito")
	}
	return &out, nil
}

// Update modifies an existing credit type.
func (s *Service) Update(ctx context.Context, input *domain.UpdateInput) (*domain.TipoCredito, error) {
	if input.ID == "" {
		return nil, xerrors.ErrInvalidInput
	}
	body := domain.CreateInput{
		Nombre:      input.Nombre,
		Descripcion: input.Descripcion,
		MontoMinimo: input.MontoMinimo,
		MontoMaximo: input.MontoMaximo,
	}
	var out domain.TipoCredito
	if err := s.api.Put(ctx, baseURL+"/"+input.ID.String()+"/", body, &out); err != nil {
		return nil, xerrors.Wrap(err, "no se pudo actualizar el tipo de crédito")
	}
	return &out, nil
}

// Delete removes a credit type.
func (s *Service) Delete(ctx context.Context, id string) error {
	if err := s.api.Delete(ctx, baseURL+"/"+id+"/"); err != nil {
		return xerrors.Wrap(err, "no se pudo eliminar el tipo de crédito")
	}
	return nil
}

// Validate runs the form-level checks. Returns every violation, not just
// the first, so the form can mark all offending fields at once.
func Validate(input *domain.CreateInput) []string {
	var errs []string
	if strings.TrimSpace(input.Nombre) == "" {
		errs = append(errs, "el nombre es obligatorio")
	}
	if strings.TrimSpace(input.Descripcion) == "" {
		errs = append(errs, "la descripción es obligatoria")
	}
	if input.MontoMinimo <= 0 {
		errs = append(errs, "el monto mínimo debe ser mayor a 0")
	}
	if input.MontoMaximo <= 0 {
		errs = append(errs, "el monto máximo debe ser mayor a 0")
	}
	if input.MontoMaximo <= input.MontoMinimo {
		errs = append(errs, "el monto máximo debe ser mayor al monto mínimo")
	}
	return errs
}

// FormatMonto renders an amount the way the es-BO locale does:
// Bs 1.234,56 (dot thousands, comma decimals).
func FormatMonto(amount float64) string {
	negative := math.Signbit(amount)
	amount = math.Abs(amount)

	whole := int64(amount)
	cents := int64(math.Round((amount - float64(whole)) * 100))
	if cents == 100 {
		whole++
		cents = 0
	}

	digits := strconv.FormatInt(whole, 10)
	var b strings.Builder
	for i, d := range digits {
		if i > 0 && (len(digits)-i)%3 == 0 {
			b.WriteByte('.')
		}
		b.WriteRune(d)
	}

	sign := ""
	if negative {
		sign = "-"
	}
	return fmt.Sprintf("%sBs %s,%02d", sign, b.String(), cents)
}
