package translate

import (
	"context"
	"errors"
	"testing"

	"go.uber.org/zap"
)

type fakeDetector struct {
	lang  string
	err   error
	calls int
}

func (f *fakeDetector) DetectLanguage(_ context.Context, _ string) (string, error) {
	f.calls++
	return f.lang, f.err
}

func TestGateSkipsTargetLanguageText(t *testing.T) {
	detector := &fakeDetector{lang: "zh"}
	gate := NewGate(detector, 1, zap.NewNop())

	if gate.ShouldTranslate(context.Background(), "这是一段足够长的中文文本内容", "zh-CN") {
		t.Fatalf("expected text already in target language to be skipped")
	}
	if detector.calls != 1 {
		t.Fatalf("expected one detection call, got %d", detector.calls)
	}
}

func TestGateTranslatesOtherLanguages(t *testing.T) {
	detector := &fakeDetector{lang: "en"}
	gate := NewGate(detector, 1, zap.NewNop())

	if !gate.ShouldTranslate(context.Background(), "a long enough English sentence", "zh-CN") {
		t.Fatalf("expected English text to require translation")
	}
}

func TestGateEmptyAndWhitespace(t *testing.T) {
	detector := &fakeDetector{lang: "en"}
	gate := NewGate(detector, 1, zap.NewNop())

	if gate.ShouldTranslate(context.Background(), "", "zh-CN") {
		t.Fatalf("empty text must not translate")
	}
	if gate.ShouldTranslate(context.Background(), "   \n\t", "zh-CN") {
		t.Fatalf("whitespace-only text must not translate")
	}
	if detector.calls != 0 {
		t.Fatalf("detector must not run for empty text")
	}
}

func TestGateShortTextSkipsDetection(t *testing.T) {
	// Detection is unreliable on short fragments: translate anyway, without
	// spending a detection call.
	detector := &fakeDetector{lang: "zh"}
	gate := NewGate(detector, 12, zap.NewNop())

	if !gate.ShouldTranslate(context.Background(), "short", "zh-CN") {
		t.Fatalf("short text should translate anyway")
	}
	if detector.calls != 0 {
		t.Fatalf("detector must not run for short text, got %d calls", detector.calls)
	}
}

func TestGateDetectionFailureDefaultsToTranslate(t *testing.T) {
	detector := &fakeDetector{err: errors.New("backend down")}
	gate := NewGate(detector, 1, zap.NewNop())

	if !gate.ShouldTranslate(context.Background(), "some reasonably long text", "zh-CN") {
		t.Fatalf("detection failure must default to translating")
	}
}

func TestLangMatchesPrefix(t *testing.T) {
	tests := []struct {
		detected, target string
		want             bool
	}{
		{"zh", "zh-CN", true},
		{"zh-TW", "zh-CN", true},
		{"ZH", "zh", true},
		{"ja", "zh-CN", false},
		{"en", "en-US", true},
		{"und", "zh-CN", false},
	}

	for _, tt := range tests {
		if got := langMatches(tt.detected, tt.target); got != tt.want {
			t.Fatalf("langMatches(%q, %q) = %v, want %v", tt.detected, tt.target, got, tt.want)
		}
	}
}
