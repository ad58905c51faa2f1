package translate

import (
	"context"
	"errors"
	"strings"
	"sync"
	"testing"

	"go.uber.org/zap"

	"github.com/kapu/bird2md-go/internal/domain"
)

// fakeBackend reverses its input and counts calls.
type fakeBackend struct {
	mu             sync.Mutex
	translateCalls int
	detectCalls    int
	detectLang     string
	translateErr   error
}

func (f *fakeBackend) Name() string { return "fake" }

func (f *fakeBackend) Translate(_ context.Context, text, _ string) (string, error) {
	f.mu.Lock()
	f.translateCalls++
	f.mu.Unlock()
	if f.translateErr != nil {
		return "", f.translateErr
	}
	runes := []rune(text)
	for i, j := 0, len(runes)-1; i < j; i, j = i+1, j-1 {
		runes[i], runes[j] = runes[j], runes[i]
	}
	return string(runes), nil
}

func (f *fakeBackend) DetectLanguage(_ context.Context, _ string) (string, error) {
	f.mu.Lock()
	f.detectCalls++
	f.mu.Unlock()
	if f.detectLang == "" {
		return "en", nil
	}
	return f.detectLang, nil
}

func (f *fakeBackend) calls() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.translateCalls
}

func newTestService(backend Backend, detector Detector) *Service {
	gate := NewGate(detector, 1, zap.NewNop())
	return NewService(backend, gate, nil, Options{MaxConcurrency: 4}, &domain.Diagnostics{}, zap.NewNop())
}

func TestTranslateProducesTranslatedVariant(t *testing.T) {
	backend := &fakeBackend{}
	svc := newTestService(backend, backend)

	res := svc.Translate(context.Background(), "hello world", "zh-CN")
	if res.Skipped {
		t.Fatalf("expected translation, got skipped")
	}
	if res.Original != "hello world" {
		t.Fatalf("original mangled: %q", res.Original)
	}
	if res.Translated != "dlrow olleh" {
		t.Fatalf("unexpected translation: %q", res.Translated)
	}
}

func TestTranslateSkipsWhenAlreadyInTargetLanguage(t *testing.T) {
	backend := &fakeBackend{detectLang: "zh"}
	svc := newTestService(backend, backend)

	res := svc.Translate(context.Background(), "这是一段足够长的中文文本内容", "zh-CN")
	if !res.Skipped {
		t.Fatalf("expected skip for target-language text")
	}
	if res.Translated != res.Original {
		t.Fatalf("skipped result must carry original text")
	}
	if backend.calls() != 0 {
		t.Fatalf("backend translate must not run when gate says no, got %d calls", backend.calls())
	}
}

func TestTranslateBackendFailureFallsBack(t *testing.T) {
	backend := &fakeBackend{translateErr: errors.New("quota exceeded")}
	diags := &domain.Diagnostics{}
	gate := NewGate(backend, 1, zap.NewNop())
	svc := NewService(backend, gate, nil, Options{}, diags, zap.NewNop())

	res := svc.Translate(context.Background(), "some text to translate", "zh-CN")
	if !res.Skipped || res.Translated != "some text to translate" {
		t.Fatalf("backend failure must fall back to original, got %+v", res)
	}
	if diags.Count() != 1 {
		t.Fatalf("expected one warning, got %d: %v", diags.Count(), diags.Warnings())
	}
}

func TestTranslateBreakerStopsHammeringFailingBackend(t *testing.T) {
	backend := &fakeBackend{translateErr: errors.New("connection refused")}
	svc := newTestService(backend, backend)

	for i := 0; i < 6; i++ {
		svc.Translate(context.Background(), "fragment needing translation", "zh-CN")
	}

	if backend.calls() != 3 {
		t.Fatalf("breaker should open after 3 failures, backend saw %d calls", backend.calls())
	}
}

func TestTranslateCachesIdenticalFragments(t *testing.T) {
	backend := &fakeBackend{}
	svc := newTestService(backend, backend)

	first := svc.Translate(context.Background(), "the same headline", "zh-CN")
	second := svc.Translate(context.Background(), "the same headline", "zh-CN")

	if backend.calls() != 1 {
		t.Fatalf("identical fragment should translate once, backend saw %d calls", backend.calls())
	}
	if first.Translated != second.Translated {
		t.Fatalf("cache returned a different translation")
	}
}

func TestTranslateCleansLinksAndMentions(t *testing.T) {
	backend := &fakeBackend{}
	svc := newTestService(backend, backend)

	res := svc.Translate(context.Background(), "hello @alice https://example.com/x", "zh-CN")
	if res.Skipped {
		t.Fatalf("expected translation")
	}
	if strings.Contains(res.Translated, "example.com") || strings.Contains(res.Translated, "ecila") {
		t.Fatalf("links and mentions must be stripped before translation: %q", res.Translated)
	}

	res = svc.Translate(context.Background(), "@alice https://example.com", "zh-CN")
	if !res.Skipped {
		t.Fatalf("fragment that cleans down to nothing must be skipped")
	}
}

func TestTranslateNilBackendSkipsEverything(t *testing.T) {
	svc := newTestService(nil, ScriptDetector{})

	res := svc.Translate(context.Background(), "anything at all", "zh-CN")
	if !res.Skipped {
		t.Fatalf("nil backend must skip")
	}
}

func TestTranslateAllPreservesOrder(t *testing.T) {
	backend := &fakeBackend{}
	svc := newTestService(backend, backend)

	fragments := []string{"first fragment", "second fragment", "third fragment", ""}
	results := svc.TranslateAll(context.Background(), fragments, "zh-CN")

	if len(results) != len(fragments) {
		t.Fatalf("expected %d results, got %d", len(fragments), len(results))
	}
	for i, fragment := range fragments {
		if results[i].Original != fragment {
			t.Fatalf("result %d out of order: %q", i, results[i].Original)
		}
	}
	if !results[3].Skipped {
		t.Fatalf("empty fragment must be skipped")
	}
	if results[0].Translated != "tnemgarf tsrif" {
		t.Fatalf("unexpected translation at index 0: %q", results[0].Translated)
	}
}
