// Package methods orders a university's verification tiers.
package methods

import (
	"context"
	"log/slog"
	"sort"

	unimodels "campuspass/internal/university/models"
	"campuspass/internal/verification/models"
	id "campuspass/pkg/domain"
)

// ConfigReader reads a university's configured method rows.
type ConfigReader interface {
	ListMethodConfigs(ctx context.Context, universityID id.UniversityID) ([]unimodels.MethodConfig, error)
}

// Registry resolves the ordered method list for a university.
type Registry struct {
	configs ConfigReader
	logger  *slog.Logger
}

func NewRegistry(configs ConfigReader, logger *slog.Logger) *Registry {
	if logger == nil {
		logger = slog.Default()
	}
	return &Registry{configs: configs, logger: logger}
}

// GetAvailableMethods reads the configuration and orders it with Order.
func (r *Registry) GetAvailableMethods(ctx context.Context, universityID id.UniversityID) ([]models.MethodAvailability, error) {
	configs, err := r.configs.ListMethodConfigs(ctx, universityID)
	if err != nil {
		return nil, err
	}
	for _, cfg := range configs {
		if !cfg.Method.IsValid() {
			r.logger.WarnContext(ctx, "ignoring unknown verification method",
				"university_id", universityID.String(),
				"method", string(cfg.Method),
			)
		}
	}
	return Order(configs), nil
}

// Order merges configured rows with the canonical fallback.
//
// With no rows every canonical method is available in canonical order.
// Otherwise configured rows keep their active flag and priority, and each
// canonical method without a row is appended as available after the configured
// ones, in canonical order. The result is sorted by priority with ties broken
// by canonical position.
func Order(configs []unimodels.MethodConfig) []models.MethodAvailability {
	if len(configs) == 0 {
		out := make([]models.MethodAvailability, 0, len(models.CanonicalOrder))
		for i, m := range models.CanonicalOrder {
			out = append(out, models.MethodAvailability{Method: m, IsAvailable: true, Priority: i})
		}
		return out
	}

	seen := make(map[models.MethodKind]bool, len(models.CanonicalOrder))
	out := make([]models.MethodAvailability, 0, len(models.CanonicalOrder))
	maxPriority := 0
	for _, cfg := range configs {
		if !cfg.Method.IsValid() || seen[cfg.Method] {
			continue
		}
		seen[cfg.Method] = true
		out = append(out, models.MethodAvailability{Method: cfg.Method, IsAvailable: cfg.Active, Priority: cfg.Priority})
		maxPriority = max(maxPriority, cfg.Priority)
	}

	for i, m := range models.CanonicalOrder {
		if seen[m] {
			continue
		}
		out = append(out, models.MethodAvailability{Method: m, IsAvailable: true, Priority: maxPriority + 1 + i})
	}

	sort.SliceStable(out, func(i, j int) bool {
		if out[i].Priority != out[j].Priority {
			return out[i].Priority < out[j].Priority
		}
		return models.CanonicalIndex(out[i].Method) < models.CanonicalIndex(out[j].Method)
	})
	return out
}

// EndpointFor returns the method-specific endpoint configured for method, if any.
func EndpointFor(configs []unimodels.MethodConfig, method models.MethodKind) string {
	for _, cfg := range configs {
		if cfg.Method == method && cfg.Endpoint != "" {
			return cfg.Endpoint
		}
	}
	return ""
}
