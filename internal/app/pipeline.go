// Package app wires the conversion stages into a single pass: read all input,
// normalize, translate (optional), render, write once. Fatal errors abort
// before anything is written; partial documents are never flushed.
package app

import (
	"context"
	"io"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/kapu/bird2md-go/internal/domain"
	"github.com/kapu/bird2md-go/internal/render"
	"github.com/kapu/bird2md-go/internal/schema"
	"github.com/kapu/bird2md-go/internal/translate"
	"github.com/kapu/bird2md-go/pkg/errors"
)

// Request describes one conversion invocation.
type Request struct {
	Mode       domain.Mode
	Input      io.Reader
	Output     io.Writer
	InputPath  string // for error reporting only; empty means stdin
	OutputPath string // for error reporting only; empty means stdout
	Query      string
	Handle     string
	Title      string
	TargetLang string // empty disables translation

	// GeneratedAt overrides the document timestamp; zero means time.Now.
	GeneratedAt time.Time
}

type Pipeline struct {
	translator *translate.Service
	diags      *domain.Diagnostics
	logger     *zap.Logger
}

func New(translator *translate.Service, diags *domain.Diagnostics, logger *zap.Logger) *Pipeline {
	return &Pipeline{
		translator: translator,
		diags:      diags,
		logger:     logger,
	}
}

// Run executes the four-stage pass. Any returned error is fatal and nothing
// has been written to the output sink.
func (p *Pipeline) Run(ctx context.Context, req Request) error {
	runID := uuid.NewString()
	logger := p.logger.With(zap.String("run_id", runID), zap.String("mode", string(req.Mode)))

	data, err := readFiltered(req.Input)
	if err != nil {
		return errors.NewIOError("failed to read input", "read", req.InputPath, err)
	}

	doc := &domain.Document{
		Mode:        req.Mode,
		Title:       req.Title,
		Query:       req.Query,
		Handle:      req.Handle,
		TargetLang:  req.TargetLang,
		GeneratedAt: req.GeneratedAt,
	}
	if doc.GeneratedAt.IsZero() {
		doc.GeneratedAt = time.Now()
	}

	switch req.Mode {
	case domain.ModeTrending:
		items, err := schema.TrendingItems(data)
		if err != nil {
			return err
		}
		doc.Items = items
	default:
		tweets, err := schema.Tweets(data)
		if err != nil {
			return err
		}
		doc.Tweets = tweets
	}

	recordCount := len(doc.Items) + len(doc.Tweets)
	if recordCount == 0 {
		logger.Warn("no records in input")
	}

	if req.TargetLang != "" {
		if err := ctx.Err(); err != nil {
			return err
		}
		p.applyTranslations(ctx, doc)
	}

	if err := ctx.Err(); err != nil {
		return err
	}

	out := render.Document(doc, p.diags)

	if _, err := io.WriteString(req.Output, out); err != nil {
		return errors.NewIOError("failed to write output", "write", req.OutputPath, err)
	}

	logger.Info("document rendered",
		zap.Int("records", recordCount),
		zap.Int("warnings", p.diags.Count()),
		zap.Int("bytes", len(out)),
	)
	return nil
}

// applyTranslations collects every eligible fragment, translates them in one
// bounded-concurrency batch, and writes distinct translations back onto the
// records in the original field order.
func (p *Pipeline) applyTranslations(ctx context.Context, doc *domain.Document) {
	var fragments []string
	var apply []func(translate.Result)

	addFragment := func(text string, set func(string)) {
		fragments = append(fragments, text)
		apply = append(apply, func(res translate.Result) {
			if res.Skipped || res.Translated == "" || res.Translated == text {
				return
			}
			set(res.Translated)
		})
	}

	for i := range doc.Items {
		item := &doc.Items[i]
		addFragment(item.Headline, func(s string) { item.HeadlineTranslation = s })
		if item.Description != "" {
			addFragment(item.Description, func(s string) { item.DescriptionTranslation = s })
		}
		for j := range item.Tweets {
			tweet := &item.Tweets[j]
			addFragment(tweet.Text, func(s string) { tweet.Translation = s })
		}
	}
	for i := range doc.Tweets {
		tweet := &doc.Tweets[i]
		addFragment(tweet.Text, func(s string) { tweet.Translation = s })
	}

	results := p.translator.TranslateAll(ctx, fragments, doc.TargetLang)
	for i, res := range results {
		apply[i](res)
	}
}

// readFiltered drains the input, dropping the upstream CLI's human-readable
// diagnostic lines (prefixed with ⚠ or ℹ) that it interleaves with JSON on
// the same stream.
func readFiltered(r io.Reader) ([]byte, error) {
	raw, err := io.ReadAll(r)
	if err != nil {
		return nil, err
	}

	lines := strings.Split(string(raw), "\n")
	kept := lines[:0]
	for _, line := range lines {
		trimmed := strings.TrimSpace(line)
		if strings.HasPrefix(trimmed, "⚠") || strings.HasPrefix(trimmed, "ℹ") {
			continue
		}
		kept = append(kept, line)
	}

	return []byte(strings.Join(kept, "\n")), nil
}
