package provider

import (
	"context"
	"fmt"

	"golang.org/x/time/rate"
	"google.golang.org/genai"
)

const geminiModel = "gemini-1.5-flash"

// Google captions images through the Gemini vision model.
type Google struct {
	client  *genai.Client
	limiter *rate.Limiter
}

func NewGoogle(ctx context.Context, apiKey string) (*Google, error) {
	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:  apiKey,
		Backend: genai.BackendGeminiAPI,
	})
	if err != nil {
		return nil, fmt.Errorf("gemini client: %w", err)
	}

	return &Google{
		client:  client,
		limiter: rate.NewLimiter(rate.Limit(2), 4),
	}, nil
}

func (g *Google) Name() string { return "google_gemini_vision" }

func (g *Google) Caption(ctx context.Context, jpeg []byte) (string, error) {
	if err := g.limiter.Wait(ctx); err != nil {
		return "", err
	}

	content := genai.NewContentFromParts([]*genai.Part{
		genai.NewPartFromText(visionPrompt),
		genai.NewPartFromBytes(jpeg, "image/jpeg"),
	}, genai.RoleUser)

	resp, err := g.client.Models.GenerateContent(ctx, geminiModel, []*genai.Content{content}, nil)
	if err != nil {
		return "", fmt.Errorf("gemini vision request: %w", err)
	}

	text := resp.Text()
	if text == "" {
		return "", fmt.Errorf("gemini vision: empty response")
	}

	return text, nil
}
