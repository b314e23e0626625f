package billing

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/url"

	"go.uber.org/zap"

	"backoffice-client/internal/apiclient"
	domain "backoffice-client/internal/domain/billing"
	"backoffice-client/internal/domain/shared"
)

// CreateSuscripcion posts a subscription record. enum_plan rejections come
// back as a field array, which Error() already renders as
// "Error en enum_plan: ...".
func (s *Service) CreateSuscripcion(ctx context.Context, payload *domain.CreateSuscripcionPayload) (*domain.Suscripcion, error) {
	var out domain.Suscripcion
	if err := s.api.Post(ctx, "/api/suscripcion/", payload, &out); err != nil {
		s.logger.Error("suscripcion create rejected", zap.Error(err))
		return nil, err
	}

	s.pushHistory(ctx, payload.Empresa.String(), "create_subscription", "system", map[string]interface{}{
		"planId": payload.EnumPlan,
	})
	return &out, nil
}

// CreateSuscripcionFromPlan tries the enum spellings for the plan until
// one is accepted. Only enum_plan validation rejections move the loop
// forward; any other failure aborts immediately.
func (s *Service) CreateSuscripcionFromPlan(ctx context.Context, empresaID shared.FlexID, planID domain.PlanID, duration string) (*domain.Suscripcion, error) {
	candidates := enumCandidatesForPlan(planID)
	fechaFin := CalculateEndDate(duration)

	var lastErr error
	for _, candidate := range candidates {
		payload := &domain.CreateSuscripcionPayload{
			Empresa:    empresaID,
			EnumPlan:   candidate,
			EnumEstado: domain.EnumEstadoActivo,
			FechaFin:   fechaFin,
		}
		out, err := s.CreateSuscripcion(ctx, payload)
		if err == nil {
			return out, nil
		}
		if isEnumRejection(err) {
			s.logger.Warn("enum_plan rejected, trying next candidate", zap.String("candidate", candidate))
			lastErr = err
			continue
		}
		return nil, err
	}

	if lastErr != nil {
		return nil, fmt.Errorf("no se pudo crear la suscripción. Último error: %s", apiclient.Humanize(lastErr, "desconocido"))
	}
	return nil, errors.New("no se pudo crear la suscripción: candidatos agotados")
}

func isEnumRejection(err error) bool {
	var apiErr *apiclient.APIError
	if !errors.As(err, &apiErr) {
		return false
	}
	_, hasEnum := apiErr.Fields["enum_plan"]
	_, hasErrors := apiErr.Fields["errors"]
	return hasEnum || hasErrors
}

// GetSuscripcionByEmpresa returns the first record for the company, or
// nil when the lookup fails or comes back empty.
func (s *Service) GetSuscripcionByEmpresa(ctx context.Context, empresaID string) (*domain.Suscripcion, error) {
	var raw json.RawMessage
	err := s.api.Get(ctx, "/api/suscripcion/", url.Values{"empresa": {empresaID}}, &raw)
	if err != nil {
		s.logger.Warn("suscripcion lookup failed", zap.String("empresa_id", empresaID), zap.Error(err))
		return nil, nil
	}

	var list []domain.Suscripcion
	if jerr := json.Unmarshal(raw, &list); jerr == nil {
		if len(list) == 0 {
			return nil, nil
		}
		return &list[0], nil
	}

	var one domain.Suscripcion
	if jerr := json.Unmarshal(raw, &one); jerr == nil && one.ID != "" {
		return &one, nil
	}
	return nil, nil
}

// ListSuscripciones returns every record the caller is allowed to see.
// Failures degrade to an empty list.
func (s *Service) ListSuscripciones(ctx context.Context) ([]domain.Suscripcion, error) {
	var list []domain.Suscripcion
	if err := s.api.Get(ctx, "/api/suscripcion/", nil, &list); err != nil {
		s.logger.Warn("suscripcion list failed", zap.Error(err))
		return []domain.Suscripcion{}, nil
	}
	return list, nil
}

// UpdateSuscripcion applies a partial update to one record.
func (s *Service) UpdateSuscripcion(ctx context.Context, id string, payload *domain.UpdateSuscripcionPayload) (*domain.Suscripcion, error) {
	var out domain.Suscripcion
	if err := s.api.Put(ctx, fmt.Sprintf("/api/suscripcion/%s/", id), payload, &out); err != nil {
		return nil, err
	}

	s.pushHistory(ctx, out.Empresa.String(), "update_subscription", "system", map[string]interface{}{
		"subscriptionId": id,
		"changes":        payload,
	})
	return &out, nil
}

// CancelSuscripcion marks one backend record cancelled and inactive.
func (s *Service) CancelSuscripcion(ctx context.Context, id string) (*domain.Suscripcion, error) {
	activo := false
	body := &domain.UpdateSuscripcionPayload{
		EnumEstado: domain.EnumEstadoCancelado,
		Activo:     &activo,
	}

	var out domain.Suscripcion
	if err := s.api.Patch(ctx, fmt.Sprintf("/api/suscripcion/%s/", id), body, &out); err != nil {
		return nil, err
	}

	s.pushHistory(ctx, out.Empresa.String(), "cancel_subscription", "system", map[string]interface{}{
		"subscriptionId": id,
	})
	return &out, nil
}
