// Package empresa reads the company catalog and the subscription record
// attached to a company. Backends differ in the envelope they return for
// these endpoints, so every reader normalizes a handful of shapes.
package empresa

import (
	"context"
	"encoding/json"
	"fmt"
	"net/url"

	"go.uber.org/zap"

	"backoffice-client/internal/apiclient"
	billingdomain "backoffice-client/internal/domain/billing"
	domain "backoffice-client/internal/domain/empresa"
	xerrors "backoffice-client/internal/pkg/errors"
)

type Service struct {
	api    *apiclient.Client
	logger *zap.Logger
}

func NewService(api *apiclient.Client, logger *zap.Logger) *Service {
	return &Service{api: api, logger: logger}
}

// extractList accepts a bare array or any of the wrapper keys backends
// have been seen to use.
func extractList(raw json.RawMessage) []domain.Empresa {
	var list []domain.Empresa
	if err := json.Unmarshal(raw, &list); err == nil {
		return list
	}

	var obj map[string]json.RawMessage
	if err := json.Unmarshal(raw, &obj); err != nil {
		return nil
	}
	for _, key := range []string{"results", "data", "empresas", "items"} {
		inner, ok := obj[key]
		if !ok {
			continue
		}
		if err := json.Unmarshal(inner, &list); err == nil {
			return list
		}
	}
	return nil
}

func (s *Service) List(ctx context.Context) ([]domain.Empresa, error) {
	var raw json.RawMessage
	if err := s.api.Get(ctx, "/api/empresa/", nil, &raw); err != nil {
		return nil, xerrors.Wrap(err, "no se pudieron cargar las empresas")
	}
	return extractList(raw), nil
}

// Get unwraps the optional {"empresa": {...}} envelope. A lookup failure
// degrades to nil rather than an error, matching how callers treat a
// missing company as simply unknown.
func (s *Service) Get(ctx context.Context, id string) (*domain.Empresa, error) {
	var raw json.RawMessage
	if err := s.api.Get(ctx, fmt.Sprintf("/api/empresa/%s/", id), nil, &raw); err != nil {
		s.logger.Warn("empresa lookup failed", zap.String("empresa_id", id), zap.Error(err))
		return nil, nil
	}

	var wrapped struct {
		Empresa *domain.Empresa `json:"empresa"`
	}
	if err := json.Unmarshal(raw, &wrapped); err == nil && wrapped.Empresa != nil {
		return wrapped.Empresa, nil
	}

	var e domain.Empresa
	if err := json.Unmarshal(raw, &e); err != nil {
		return nil, nil
	}
	return &e, nil
}

// GetSuscripcion queries /api/suscripcion/?empresa=<id> and returns the
// first record when several exist. Any failure degrades to nil so that a
// company without a subscription renders as unsubscribed, not as an error.
func (s *Service) GetSuscripcion(ctx context.Context, empresaID string) (*billingdomain.Suscripcion, error) {
	var raw json.RawMessage
	err := s.api.Get(ctx, "/api/suscripcion/", url.Values{"empresa": {empresaID}}, &raw)
	if err != nil {
		s.logger.Warn("suscripcion lookup failed", zap.String("empresa_id", empresaID), zap.Error(err))
		return nil, nil
	}

	var list []billingdomain.Suscripcion
	if jerr := json.Unmarshal(raw, &list); jerr == nil {
		if len(list) > 0 {
			return &list[0], nil
		}
		return nil, nil
	}

	var obj map[string]json.RawMessage
	if jerr := json.Unmarshal(raw, &obj); jerr != nil {
		return nil, nil
	}
	for _, key := range []string{"results", "data"} {
		inner, ok := obj[key]
		if !ok {
			continue
		}
		if jerr := json.Unmarshal(inner, &list); jerr == nil && len(list) > 0 {
			return &list[0], nil
		}
	}
	if _, ok := obj["id"]; ok {
		var one billingdomain.Suscripcion
		if jerr := json.Unmarshal(raw, &one); jerr == nil {
			return &one, nil
		}
	}
	return nil, nil
}
