// bird2md converts the bird CLI's JSON output (trending topics, search
// results, user timelines) into Markdown, optionally translating text content
// into a target language.
//
// Usage:
//
//	bird trending --json -n 20 --with-tweets | bird2md trending
//	bird search "AI" --json -n 20 | bird2md search -query "AI"
//	bird user-tweets @alice --json -n 20 | bird2md user -handle alice
//	bird2md trending -f trending.json -o trending.md -translate zh-CN
package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"

	"go.uber.org/zap"

	"github.com/kapu/bird2md-go/internal/app"
	"github.com/kapu/bird2md-go/internal/config"
	"github.com/kapu/bird2md-go/internal/domain"
	"github.com/kapu/bird2md-go/internal/translate"
	"github.com/kapu/bird2md-go/internal/util"
)

func main() {
	os.Exit(run())
}

func run() int {
	if len(os.Args) < 2 {
		usage()
		return 1
	}

	mode, err := domain.ParseMode(os.Args[1])
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n\n", err)
		usage()
		return 1
	}

	fs := flag.NewFlagSet("bird2md", flag.ExitOnError)
	var (
		inputFile  string
		outputFile string
		query      string
		handle     string
		title      string
		targetLang string
		configFile string
	)
	fs.StringVar(&inputFile, "f", "", "read JSON from file instead of stdin")
	fs.StringVar(&inputFile, "file", "", "read JSON from file instead of stdin")
	fs.StringVar(&outputFile, "o", "", "write Markdown to file instead of stdout")
	fs.StringVar(&outputFile, "output", "", "write Markdown to file instead of stdout")
	fs.StringVar(&query, "query", "", "search query (for search mode title)")
	fs.StringVar(&handle, "handle", "", "twitter handle (for user mode title)")
	fs.StringVar(&title, "title", "", "custom title for the Markdown document")
	fs.StringVar(&targetLang, "translate", "", "translate content to target language (e.g. zh-CN, ja, ko)")
	fs.StringVar(&configFile, "config", "", "YAML config file overriding environment settings")
	_ = fs.Parse(os.Args[2:])

	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load config: %v\n", err)
		return 1
	}
	if configFile != "" {
		if err := cfg.ApplyFile(configFile); err != nil {
			fmt.Fprintf(os.Stderr, "Failed to load config: %v\n", err)
			return 1
		}
	}

	logger, err := util.NewLogger(cfg.Logging.Level, cfg.Logging.File)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to initialize logger: %v\n", err)
		return 1
	}
	defer logger.Sync()

	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	diags := &domain.Diagnostics{}
	translator := buildTranslator(ctx, cfg, targetLang, diags, logger)
	pipeline := app.New(translator, diags, logger)

	req := app.Request{
		Mode:       mode,
		Query:      query,
		Handle:     handle,
		Title:      title,
		TargetLang: targetLang,
		InputPath:  inputFile,
		OutputPath: outputFile,
	}

	req.Input = os.Stdin
	if inputFile != "" {
		in, err := os.Open(inputFile)
		if err != nil {
			logger.Error("Cannot open input file", zap.String("path", inputFile), zap.Error(err))
			return 1
		}
		defer in.Close()
		req.Input = in
	}

	req.Output = os.Stdout
	if outputFile != "" {
		if dir := filepath.Dir(outputFile); dir != "." {
			if err := os.MkdirAll(dir, 0755); err != nil {
				logger.Error("Cannot create output directory", zap.String("path", outputFile), zap.Error(err))
				return 1
			}
		}
		out, err := os.Create(outputFile)
		if err != nil {
			logger.Error("Cannot create output file", zap.String("path", outputFile), zap.Error(err))
			return 1
		}
		defer out.Close()
		req.Output = out
	}

	if err := pipeline.Run(ctx, req); err != nil {
		logger.Error("Conversion failed", zap.Error(err))
		return 1
	}

	for _, warning := range diags.Warnings() {
		logger.Warn(warning)
	}
	if outputFile != "" {
		logger.Info("Written", zap.String("path", outputFile))
	}

	return 0
}

// buildTranslator assembles the translation service. Without a -translate
// flag or a configured backend the service still exists, it just skips every
// fragment; translation is best-effort by contract.
func buildTranslator(ctx context.Context, cfg *config.Config, targetLang string, diags *domain.Diagnostics, logger *zap.Logger) *translate.Service {
	var backend translate.Backend
	var detector translate.Detector = translate.ScriptDetector{}

	if targetLang != "" && cfg.Translation.GeminiAPIKey != "" {
		gemini, err := translate.NewGeminiBackend(ctx, cfg.Translation.GeminiAPIKey, cfg.Translation.GeminiModel, logger)
		if err != nil {
			logger.Warn("Translation backend unavailable, output keeps original text", zap.Error(err))
		} else {
			var fallback translate.Backend
			if cfg.Translation.EnableFallback {
				if openAI := translate.NewOpenAIBackend(cfg.Translation.OpenAIAPIKey, cfg.Translation.OpenAIModel, logger); openAI != nil {
					fallback = openAI
				}
			}
			manager := translate.NewBackendManager(gemini, fallback, logger)
			backend = manager
			detector = manager
		}
	} else if targetLang != "" {
		logger.Warn("GEMINI_API_KEY not configured; translation disabled, output keeps original text")
	}

	var cache translate.Cache
	if targetLang != "" && cfg.Redis.Addr != "" {
		redisCache, err := translate.NewRedisCache(translate.RedisConfig{
			Addr:     cfg.Redis.Addr,
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
			TTL:      cfg.Redis.TTL,
		}, logger)
		if err != nil {
			logger.Warn("Redis translation cache unavailable, using in-memory cache", zap.Error(err))
		} else {
			cache = redisCache
		}
	}

	gate := translate.NewGate(detector, cfg.Translation.MinDetectRunes, logger)
	return translate.NewService(backend, gate, cache, translate.Options{
		MaxConcurrency: cfg.Translation.MaxConcurrency,
		Timeout:        cfg.Translation.Timeout,
	}, diags, logger)
}

func usage() {
	fmt.Fprintf(os.Stderr, `Usage: bird2md <trending|search|user> [options]

Options:
  -f, -file PATH    read JSON from file instead of stdin
  -o, -output PATH  write Markdown to file instead of stdout
  -query TEXT       search query (for search mode title)
  -handle TEXT      twitter handle (for user mode title)
  -title TEXT       custom title for the Markdown document
  -translate LANG   translate content to target language (e.g. zh-CN, ja, ko)
  -config PATH      YAML config file overriding environment settings
`)
}
