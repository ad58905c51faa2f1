package translate

import (
	"context"
	"strings"
	"unicode/utf8"

	"go.uber.org/zap"
)

// DefaultMinDetectRunes is the fragment length below which detection is not
// attempted. Very short strings detect unreliably, and skipping a fragment
// that actually needed translation is worse than one redundant backend call.
const DefaultMinDetectRunes = 12

// Detector reports the language of a text as a BCP-47 code.
type Detector interface {
	DetectLanguage(ctx context.Context, text string) (string, error)
}

// Gate decides per fragment whether translation should run at all.
type Gate struct {
	detector Detector
	minRunes int
	logger   *zap.Logger
}

func NewGate(detector Detector, minRunes int, logger *zap.Logger) *Gate {
	if minRunes <= 0 {
		minRunes = DefaultMinDetectRunes
	}
	return &Gate{
		detector: detector,
		minRunes: minRunes,
		logger:   logger,
	}
}

// ShouldTranslate returns false only when translation is provably pointless:
// the fragment is empty, or detection confidently reports it is already in
// the target language. Short fragments and detection failures both answer
// true, so the worst case is a redundant translation, never a missing one.
func (g *Gate) ShouldTranslate(ctx context.Context, text, targetLang string) bool {
	trimmed := strings.TrimSpace(text)
	if trimmed == "" {
		return false
	}
	if utf8.RuneCountInString(trimmed) < g.minRunes {
		return true
	}
	if g.detector == nil {
		return true
	}

	detected, err := g.detector.DetectLanguage(ctx, trimmed)
	if err != nil {
		g.logger.Debug("language detection failed, translating anyway", zap.Error(err))
		return true
	}
	if detected == "" || detected == "und" {
		return true
	}

	return !langMatches(detected, targetLang)
}

// langMatches compares primary language subtags so that a detected "zh"
// matches targets like "zh-CN" and vice versa.
func langMatches(detected, target string) bool {
	return primarySubtag(detected) == primarySubtag(target)
}

func primarySubtag(code string) string {
	code = strings.ToLower(strings.TrimSpace(code))
	if i := strings.IndexAny(code, "-_"); i >= 0 {
		code = code[:i]
	}
	return code
}
