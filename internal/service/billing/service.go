package billing

import (
	"context"
	"net/url"
	"strconv"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"backoffice-client/internal/apiclient"
	domain "backoffice-client/internal/domain/billing"
	"backoffice-client/internal/store"
)

// Local fallback keys. Lists are global with per-record tenant ids, so a
// superadmin hopping between companies reuses the same copies.
const (
	keySubscriptions = "billing.subscription"
	keyPayments      = "billing.payments"
	keyUsage         = "billing.usage"
	keyHistory       = "billing.history"
)

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

// resolveTenant prefers the explicit argument over the session scope.
func (s *Service) resolveTenant(ctx context.Context, tenantID string) string {
	if tenantID != "" {
		return tenantID
	}
	return s.tenant.CurrentTenant(ctx)
}

// tenantHeader returns the X-Tenant-ID option. WithHeader already skips
// empty values, which keeps anonymous requests clean.
func tenantHeader(tenantID string) apiclient.RequestOption {
	return apiclient.WithHeader("X-Tenant-ID", tenantID)
}

// pushHistory prepends an event to the local audit trail.
func (s *Service) pushHistory(ctx context.Context, tenantID, action, actor string, meta map[string]interface{}) {
	var list []domain.HistoryEvent
	store.GetJSON(ctx, s.store, keyHistory, &list)

	event := domain.HistoryEvent{
		ID:       uuid.NewString(),
		TenantID: tenantID,
		Action:   action,
		Actor:    actor,
		At:       time.Now(),
		Meta:     meta,
	}
	list = append([]domain.HistoryEvent{event}, list...)
	if err := store.SetJSON(ctx, s.store, keyHistory, list); err != nil {
		s.logger.Warn("failed to record billing history event", zap.String("action", action), zap.Error(err))
	}
}

// GetSubscription reads the current subscription, falling back to the
// locally saved one for the tenant.
func (s *Service) GetSubscription(ctx context.Context, tenantID string) (*domain.Subscription, error) {
	tenantID = s.resolveTenant(ctx, tenantID)

	var resp domain.SubscriptionResponse
	if err := s.api.Get(ctx, "/api/subscription", nil, &resp, tenantHeader(tenantID)); err == nil {
		return resp.Subscription, nil
	}

	var all []domain.Subscription
	store.GetJSON(ctx, s.store, keySubscriptions, &all)
	for i := range all {
		if all[i].TenantID == tenantID {
			sub := all[i]
			return &sub, nil
		}
	}
	return nil, nil
}

func (s *Service) saveLocalSubscription(ctx context.Context, sub *domain.Subscription) error {
	var all []domain.Subscription
	store.GetJSON(ctx, s.store, keySubscriptions, &all)
	replaced := false
	for i := range all {
		if all[i].TenantID == sub.TenantID {
			all[i] = *sub
			replaced = true
			break
		}
	}
	if !replaced {
		all = append(all, *sub)
	}
	return store.SetJSON(ctx, s.store, keySubscriptions, all)
}

// ListPayments returns the tenant's payments, local copies included.
func (s *Service) ListPayments(ctx context.Context, tenantID string) ([]domain.Payment, error) {
	tenantID = s.resolveTenant(ctx, tenantID)

	var resp domain.PaymentsResponse
	if err := s.api.Get(ctx, "/api/subscription/payments", nil, &resp, tenantHeader(tenantID)); err == nil {
		return resp.Payments, nil
	}

	var all []domain.Payment
	store.GetJSON(ctx, s.store, keyPayments, &all)
	if tenantID == "" {
		return all, nil
	}
	var filtered []domain.Payment
	for _, p := range all {
		if p.TenantID == tenantID {
			filtered = append(filtered, p)
		}
	}
	return filtered, nil
}

// CreateManualPayment registers a payment, saving locally when the
// backend does not offer the endpoint.
func (s *Service) CreateManualPayment(ctx context.Context, input *domain.CreatePaymentInput) (*domain.Payment, error) {
	tenantID := s.resolveTenant(ctx, input.TenantID)

	var resp struct {
		Payment *domain.Payment `json:"payment"`
	}
	if err := s.api.Post(ctx, "/api/subscription/payments/create", input, &resp, tenantHeader(tenantID)); err == nil && resp.Payment != nil {
		return resp.Payment, nil
	}

	if tenantID == "" {
		tenantID = "unknown"
	}
	payment := domain.Payment{
		ID:          uuid.NewString(),
		TenantID:    tenantID,
		AmountCents: input.AmountCents,
		Currency:    input.Currency,
		PeriodStart: input.PeriodStart,
		PeriodEnd:   input.PeriodEnd,
		Method:      input.Method,
		ExternalID:  input.ExternalID,
		CreatedAt:   time.Now().Format(time.RFC3339),
	}

	var all []domain.Payment
	store.GetJSON(ctx, s.store, keyPayments, &all)
	all = append(all, payment)
	if err := store.SetJSON(ctx, s.store, keyPayments, all); err != nil {
		return nil, err
	}
	return &payment, nil
}

// GetUsage reads consumption figures, synthesizing a minimal default when
// neither the backend nor the local copy has any.
func (s *Service) GetUsage(ctx context.Context, tenantID string) (*domain.Usage, error) {
	tenantID = s.resolveTenant(ctx, tenantID)

	var usage domain.Usage
	if err := s.api.Get(ctx, "/api/subscription/usage", nil, &usage, tenantHeader(tenantID)); err == nil {
		return &usage, nil
	}

	if tenantID == "" {
		return nil, nil
	}
	var all []domain.Usage
	store.GetJSON(ctx, s.store, keyUsage, &all)
	for i := range all {
		if all[i].TenantID == tenantID {
			u := all[i]
			return &u, nil
		}
	}
	return &domain.Usage{
		TenantID:   tenantID,
		Users:      1,
		Requests:   20,
		StorageGB:  1,
		MeasuredAt: time.Now().Format(time.RFC3339),
	}, nil
}

// ActivateSubscription marks the tenant's subscription active. Without a
// backend it activates (or creates) the local record.
func (s *Service) ActivateSubscription(ctx context.Context, actor, tenantID string) (*domain.Subscription, error) {
	tenantID = s.resolveTenant(ctx, tenantID)

	var resp domain.SubscriptionResponse
	body := map[string]string{"actor": actor}
	if err := s.api.Post(ctx, "/api/subscription/activate", body, &resp, tenantHeader(tenantID)); err == nil {
		return resp.Subscription, nil
	}

	if tenantID == "" {
		tenantID = "unknown"
	}
	current, _ := s.GetSubscription(ctx, tenantID)
	if current == nil {
		current = &domain.Subscription{
			ID:          uuid.NewString(),
			TenantID:    tenantID,
			PlanID:      domain.PlanBasico,
			State:       domain.StateEnPrueba,
			TrialEndsAt: time.Now().Add(14 * 24 * time.Hour).Format(time.RFC3339),
			StartedAt:   time.Now().Format(time.RFC3339),
			OrgName:     tenantID,
		}
	}
	current.State = domain.StateActivo
	current.StartedAt = time.Now().Format(time.RFC3339)
	if err := s.saveLocalSubscription(ctx, current); err != nil {
		return nil, err
	}
	s.pushHistory(ctx, tenantID, "activate_subscription", actor, map[string]interface{}{"planId": current.PlanID})
	return current, nil
}

// ChangePlan moves the tenant's subscription to another catalog plan.
func (s *Service) ChangePlan(ctx context.Context, newPlan domain.PlanID, actor, tenantID string) (*domain.Subscription, error) {
	tenantID = s.resolveTenant(ctx, tenantID)

	var resp domain.SubscriptionResponse
	body := map[string]interface{}{"newPlan": newPlan, "actor": actor}
	if err := s.api.Post(ctx, "/api/subscription/change-plan", body, &resp, tenantHeader(tenantID)); err == nil {
		return resp.Subscription, nil
	}

	if tenantID == "" {
		tenantID = "unknown"
	}
	sub, _ := s.GetSubscription(ctx, tenantID)
	if sub == nil {
		sub = &domain.Subscription{
			ID:        uuid.NewString(),
			TenantID:  tenantID,
			PlanID:    newPlan,
			State:     domain.StateActivo,
			OrgName:   tenantID,
			StartedAt: time.Now().Format(time.RFC3339),
		}
	}
	old := sub.PlanID
	sub.PlanID = newPlan
	if err := s.saveLocalSubscription(ctx, sub); err != nil {
		return nil, err
	}
	s.pushHistory(ctx, tenantID, "change_plan", actor, map[string]interface{}{"from": old, "to": newPlan})
	return sub, nil
}

// CancelSubscription marks the subscription cancelled. A tenant without
// one yields nil without error.
func (s *Service) CancelSubscription(ctx context.Context, actor, tenantID string) (*domain.Subscription, error) {
	tenantID = s.resolveTenant(ctx, tenantID)

	var resp domain.SubscriptionResponse
	body := map[string]string{"actor": actor}
	if err := s.api.Post(ctx, "/api/subscription/cancel", body, &resp, tenantHeader(tenantID)); err == nil {
		return resp.Subscription, nil
	}

	if tenantID == "" {
		tenantID = "unknown"
	}
	sub, _ := s.GetSubscription(ctx, tenantID)
	if sub == nil {
		return nil, nil
	}
	sub.State = domain.StateCancelado
	sub.CancelledAt = time.Now().Format(time.RFC3339)
	if err := s.saveLocalSubscription(ctx, sub); err != nil {
		return nil, err
	}
	s.pushHistory(ctx, tenantID, "cancel_subscription", actor, map[string]interface{}{"planId": sub.PlanID})
	return sub, nil
}

// StartTrial opens a 14-day trial on the given plan.
func (s *Service) StartTrial(ctx context.Context, planID domain.PlanID, orgName, actor, tenantID string) (*domain.Subscription, error) {
	tenantID = s.resolveTenant(ctx, tenantID)

	var resp domain.SubscriptionResponse
	body := map[string]interface{}{"planId": planID, "orgName": orgName, "actor": actor}
	if err := s.api.Post(ctx, "/api/subscription/start-trial", body, &resp, tenantHeader(tenantID)); err == nil && resp.Subscription != nil {
		if err := s.saveLocalSubscription(ctx, resp.Subscription); err != nil {
			return nil, err
		}
		s.pushHistory(ctx, resp.Subscription.TenantID, "start_trial", actor, map[string]interface{}{"planId": planID})
		return resp.Subscription, nil
	}

	if tenantID == "" {
		tenantID = "org_local_" + uuid.NewString()
	}
	sub := &domain.Subscription{
		ID:          uuid.NewString(),
		TenantID:    tenantID,
		PlanID:      planID,
		State:       domain.StateEnPrueba,
		OrgName:     orgName,
		TrialEndsAt: time.Now().Add(14 * 24 * time.Hour).Format(time.RFC3339),
		StartedAt:   time.Now().Format(time.RFC3339),
	}
	if err := s.saveLocalSubscription(ctx, sub); err != nil {
		return nil, err
	}
	s.pushHistory(ctx, tenantID, "start_trial", actor, map[string]interface{}{"planId": planID})
	return sub, nil
}

// GetHistory pages through the tenant's audit trail, newest first.
func (s *Service) GetHistory(ctx context.Context, page, pageSize int, tenantID string) (*domain.HistoryPage, error) {
	if page < 1 {
		page = 1
	}
	if pageSize < 1 {
		pageSize = 20
	}
	tenantID = s.resolveTenant(ctx, tenantID)

	query := url.Values{
		"page":     {strconv.Itoa(page)},
		"pageSize": {strconv.Itoa(pageSize)},
	}
	var remote domain.HistoryPage
	if err := s.api.Get(ctx, "/api/subscription/history", query, &remote, tenantHeader(tenantID)); err == nil {
		return &remote, nil
	}

	var all []domain.HistoryEvent
	store.GetJSON(ctx, s.store, keyHistory, &all)
	filtered := all
	if tenantID != "" {
		filtered = nil
		for _, e := range all {
			if e.TenantID == tenantID {
				filtered = append(filtered, e)
			}
		}
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
	return &domain.HistoryPage{
		Results:  filtered[start:end],
		Total:    total,
		Page:     page,
		PageSize: pageSize,
	}, nil
}

// DeleteHistoryEvent removes one event and records the deletion itself.
func (s *Service) DeleteHistoryEvent(ctx context.Context, id, actor string) error {
	var all []domain.HistoryEvent
	store.GetJSON(ctx, s.store, keyHistory, &all)
	kept := all[:0]
	for _, e := range all {
		if e.ID != id {
			kept = append(kept, e)
		}
	}
	if err := store.SetJSON(ctx, s.store, keyHistory, kept); err != nil {
		return err
	}
	tenantID := s.tenant.CurrentTenant(ctx)
	if tenantID == "" {
		tenantID = "unknown"
	}
	s.pushHistory(ctx, tenantID, "delete_history_event", actor, map[string]interface{}{"deletedId": id})
	return nil
}

// ClearHistory wipes the trail and records the wipe as its first entry.
func (s *Service) ClearHistory(ctx context.Context, actor string) error {
	if err := store.SetJSON(ctx, s.store, keyHistory, []domain.HistoryEvent{}); err != nil {
		return err
	}
	tenantID := s.tenant.CurrentTenant(ctx)
	if tenantID == "" {
		tenantID = "unknown"
	}
	s.pushHistory(ctx, tenantID, "clear_history", actor, map[string]interface{}{})
	return nil
}
