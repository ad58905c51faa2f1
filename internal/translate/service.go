// Package translate implements best-effort translation of document fragments.
// Every failure path degrades to the original text; nothing here may ever
// block or abort document generation.
package translate

import (
	"context"
	"time"

	"github.com/sourcegraph/conc/pool"
	"go.uber.org/zap"

	"github.com/kapu/bird2md-go/internal/domain"
	"github.com/kapu/bird2md-go/internal/textscan"
	"github.com/kapu/bird2md-go/internal/util"
)

// Result is the outcome for a single fragment. Skipped means the backend was
// not asked: the gate said no, the fragment cleaned down to nothing, or the
// attempt failed and the original stands in.
type Result struct {
	Original   string
	Translated string
	Skipped    bool
}

type Options struct {
	MaxConcurrency int
	Timeout        time.Duration
}

const (
	defaultMaxConcurrency = 8
	defaultTimeout        = 15 * time.Second
)

// Service is the translation adapter wired into the pipeline.
type Service struct {
	backend        Backend
	gate           *Gate
	cache          Cache
	breaker        *Breaker
	maxConcurrency int
	timeout        time.Duration
	logger         *zap.Logger
	diags          *domain.Diagnostics
}

func NewService(backend Backend, gate *Gate, cache Cache, opts Options, diags *domain.Diagnostics, logger *zap.Logger) *Service {
	if opts.MaxConcurrency <= 0 {
		opts.MaxConcurrency = defaultMaxConcurrency
	}
	if opts.Timeout <= 0 {
		opts.Timeout = defaultTimeout
	}
	if cache == nil {
		cache = NewMemoryCache()
	}

	return &Service{
		backend:        backend,
		gate:           gate,
		cache:          cache,
		breaker:        NewBreaker(3, 30*time.Second, logger),
		maxConcurrency: opts.MaxConcurrency,
		timeout:        opts.Timeout,
		logger:         logger,
		diags:          diags,
	}
}

// Translate handles one fragment. URLs and mentions are stripped before
// gating and dispatch, and the backend's answer is cached per run.
func (s *Service) Translate(ctx context.Context, text, targetLang string) Result {
	skipped := Result{Original: text, Translated: text, Skipped: true}

	cleaned := textscan.StripLinksAndMentions(text)
	if cleaned == "" {
		return skipped
	}

	if s.backend == nil {
		return skipped
	}

	if !s.gate.ShouldTranslate(ctx, cleaned, targetLang) {
		s.logger.Debug("fragment already in target language",
			zap.String("fragment", util.TruncateString(cleaned, 40)),
		)
		return skipped
	}

	if cached, ok := s.cache.Get(ctx, targetLang, cleaned); ok {
		return Result{Original: text, Translated: cached}
	}

	if !s.breaker.Allow() {
		s.diags.Warnf("translation skipped (backend unavailable): %s", util.TruncateString(cleaned, 40))
		return skipped
	}

	callCtx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()

	translated, err := s.backend.Translate(callCtx, cleaned, targetLang)
	if err != nil {
		s.breaker.RecordFailure()
		s.diags.Warnf("translation failed for %q: %v", util.TruncateString(cleaned, 40), err)
		s.logger.Warn("translation failed, keeping original text", zap.Error(err))
		return skipped
	}

	s.breaker.RecordSuccess()
	s.cache.Set(ctx, targetLang, cleaned, translated)
	return Result{Original: text, Translated: translated}
}

// TranslateAll dispatches independent fragments concurrently, bounded by the
// configured pool size, and returns results in input order.
func (s *Service) TranslateAll(ctx context.Context, fragments []string, targetLang string) []Result {
	results := make([]Result, len(fragments))
	if len(fragments) == 0 {
		return results
	}

	p := pool.New().WithMaxGoroutines(s.maxConcurrency)
	for idx, fragment := range fragments {
		idx, fragment := idx, fragment
		p.Go(func() {
			results[idx] = s.Translate(ctx, fragment, targetLang)
		})
	}
	p.Wait()

	return results
}
