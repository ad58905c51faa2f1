package translate

import (
	"context"

	"go.uber.org/zap"
)

// BackendManager is a Backend that routes to a primary provider and retries
// a fallback provider on failure. Detection failures do not fall back: the
// gate already treats them as "translate anyway", so a second round trip
// buys nothing.
type BackendManager struct {
	primary  Backend
	fallback Backend
	logger   *zap.Logger
}

func NewBackendManager(primary, fallback Backend, logger *zap.Logger) *BackendManager {
	if fallback != nil {
		logger.Info("translation fallback enabled", zap.String("provider", fallback.Name()))
	}
	return &BackendManager{
		primary:  primary,
		fallback: fallback,
		logger:   logger,
	}
}

func (m *BackendManager) Name() string {
	return m.primary.Name()
}

func (m *BackendManager) Translate(ctx context.Context, text, targetLang string) (string, error) {
	out, err := m.primary.Translate(ctx, text, targetLang)
	if err == nil {
		return out, nil
	}

	if m.fallback == nil {
		return "", err
	}

	m.logger.Warn("primary translation backend failed, trying fallback",
		zap.String("primary", m.primary.Name()),
		zap.String("fallback", m.fallback.Name()),
		zap.Error(err),
	)
	return m.fallback.Translate(ctx, text, targetLang)
}

func (m *BackendManager) DetectLanguage(ctx context.Context, text string) (string, error) {
	return m.primary.DetectLanguage(ctx, text)
}
