package translate

import (
	"context"
	"fmt"
	"strings"

	"github.com/openai/openai-go/v3"
	"github.com/openai/openai-go/v3/option"
	"go.uber.org/zap"
	"google.golang.org/genai"

	"github.com/kapu/bird2md-go/pkg/errors"
)

// Backend is the external translation capability: any service that can
// translate a text into a target language and report a text's language is
// substitutable here.
type Backend interface {
	Name() string
	Translate(ctx context.Context, text, targetLang string) (string, error)
	DetectLanguage(ctx context.Context, text string) (string, error)
}

const (
	defaultGeminiModel = "gemini-2.5-flash"
	defaultOpenAIModel = "gpt-4.1-mini"
)

// GeminiBackend translates through the Gemini API.
type GeminiBackend struct {
	client *genai.Client
	model  string
	logger *zap.Logger
}

func NewGeminiBackend(ctx context.Context, apiKey, model string, logger *zap.Logger) (*GeminiBackend, error) {
	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:  apiKey,
		Backend: genai.BackendGeminiAPI,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create Gemini client: %w", err)
	}

	if model == "" {
		model = defaultGeminiModel
	}

	return &GeminiBackend{
		client: client,
		model:  model,
		logger: logger,
	}, nil
}

func (g *GeminiBackend) Name() string {
	return "Gemini"
}

func (g *GeminiBackend) Translate(ctx context.Context, text, targetLang string) (string, error) {
	prompt := fmt.Sprintf(
		"Translate the following text into %s. Reply with the translation only, no explanations, no quotes.\n\n%s",
		targetLang, text,
	)
	out, err := g.generate(ctx, prompt)
	if err != nil {
		return "", errors.NewBackendError("translation request failed", g.Name(), "translate", err)
	}
	return out, nil
}

func (g *GeminiBackend) DetectLanguage(ctx context.Context, text string) (string, error) {
	prompt := fmt.Sprintf(
		"Identify the language of the following text. Reply with the BCP-47 language code only (e.g. en, zh-CN, ja).\n\n%s",
		text,
	)
	out, err := g.generate(ctx, prompt)
	if err != nil {
		return "", errors.NewBackendError("language detection request failed", g.Name(), "detect", err)
	}
	return strings.ToLower(strings.TrimSpace(out)), nil
}

func (g *GeminiBackend) generate(ctx context.Context, prompt string) (string, error) {
	if g.client == nil {
		return "", fmt.Errorf("gemini client not initialized")
	}

	temp := float32(0)
	config := &genai.GenerateContentConfig{
		Temperature: &temp,
	}

	resp, err := g.client.Models.GenerateContent(ctx, g.model, []*genai.Content{
		{
			Parts: []*genai.Part{
				{Text: prompt},
			},
		},
	}, config)
	if err != nil {
		g.logger.Debug("Gemini generation failed", zap.Error(err))
		return "", err
	}

	text := extractGeminiText(resp)
	if text == "" {
		return "", fmt.Errorf("empty response from Gemini")
	}
	return strings.TrimSpace(text), nil
}

func extractGeminiText(resp *genai.GenerateContentResponse) string {
	if resp == nil || len(resp.Candidates) == 0 {
		return ""
	}

	candidate := resp.Candidates[0]
	if candidate.Content == nil || len(candidate.Content.Parts) == 0 {
		return ""
	}

	var texts []string
	for _, part := range candidate.Content.Parts {
		if part.Text != "" {
			texts = append(texts, part.Text)
		}
	}

	return strings.Join(texts, "")
}

// OpenAIBackend translates through the OpenAI chat completion API. It is
// wired as the fallback provider; NewOpenAIBackend returns nil without a key.
type OpenAIBackend struct {
	client *openai.Client
	model  openai.ChatModel
	logger *zap.Logger
}

func NewOpenAIBackend(apiKey, model string, logger *zap.Logger) *OpenAIBackend {
	if apiKey == "" {
		return nil
	}

	if model == "" {
		model = defaultOpenAIModel
	}

	client := openai.NewClient(option.WithAPIKey(apiKey))
	return &OpenAIBackend{
		client: &client,
		model:  openai.ChatModel(model),
		logger: logger,
	}
}

func (o *OpenAIBackend) Name() string {
	return "OpenAI"
}

func (o *OpenAIBackend) Translate(ctx context.Context, text, targetLang string) (string, error) {
	system := fmt.Sprintf("You are a translator. Translate the user's text into %s. Reply with the translation only.", targetLang)
	out, err := o.complete(ctx, system, text)
	if err != nil {
		return "", errors.NewBackendError("translation request failed", o.Name(), "translate", err)
	}
	return out, nil
}

func (o *OpenAIBackend) DetectLanguage(ctx context.Context, text string) (string, error) {
	system := "Identify the language of the user's text. Reply with the BCP-47 language code only (e.g. en, zh-CN, ja)."
	out, err := o.complete(ctx, system, text)
	if err != nil {
		return "", errors.NewBackendError("language detection request failed", o.Name(), "detect", err)
	}
	return strings.ToLower(strings.TrimSpace(out)), nil
}

func (o *OpenAIBackend) complete(ctx context.Context, system, user string) (string, error) {
	if o.client == nil {
		return "", fmt.Errorf("OpenAI client not initialized")
	}

	resp, err := o.client.Chat.Completions.New(ctx, openai.ChatCompletionNewParams{
		Model: o.model,
		Messages: []openai.ChatCompletionMessageParamUnion{
			openai.SystemMessage(system),
			openai.UserMessage(user),
		},
	})
	if err != nil {
		o.logger.Debug("OpenAI completion failed", zap.Error(err))
		return "", err
	}

	if len(resp.Choices) == 0 {
		return "", fmt.Errorf("no choices in OpenAI response")
	}

	return strings.TrimSpace(resp.Choices[0].Message.Content), nil
}
