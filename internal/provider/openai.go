package provider

import (
	"context"
	"encoding/base64"
	"fmt"

	"github.com/openai/openai-go/v3"
	"github.com/openai/openai-go/v3/option"
	"golang.org/x/time/rate"
)

// OpenAI captions images through the GPT-4o Mini vision model.
type OpenAI struct {
	client  openai.Client
	limiter *rate.Limiter
}

// NewOpenAI creates the provider. The limiter keeps bursts of batch requests
// under the API's default rate tier.
func NewOpenAI(apiKey string) *OpenAI {
	return &OpenAI{
		client:  openai.NewClient(option.WithAPIKey(apiKey)),
		limiter: rate.NewLimiter(rate.Limit(2), 4),
	}
}

func (o *OpenAI) Name() string { return "openai_gpt4o_mini" }

func (o *OpenAI) Caption(ctx context.Context, jpeg []byte) (string, error) {
	if err := o.limiter.Wait(ctx); err != nil {
		return "", err
	}

	dataURL := "data:image/jpeg;base64," + base64.StdEncoding.EncodeToString(jpeg)

	completion, err := o.client.Chat.Completions.New(ctx, openai.ChatCompletionNewParams{
		Messages: []openai.ChatCompletionMessageParamUnion{
			openai.UserMessage([]openai.ChatCompletionContentPartUnionParam{
				openai.TextContentPart(visionPrompt),
				openai.ImageContentPart(openai.ChatCompletionContentPartImageImageURLParam{
					URL: dataURL,
				}),
			}),
		},
		Model:     openai.ChatModelGPT4oMini,
		MaxTokens: openai.Int(500),
	})
	if err != nil {
		return "", fmt.Errorf("openai vision request: %w", err)
	}

	if len(completion.Choices) == 0 {
		return "", fmt.Errorf("openai vision: empty response")
	}

	return completion.Choices[0].Message.Content, nil
}
