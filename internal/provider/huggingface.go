package provider

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"golang.org/x/time/rate"
)

const defaultHFEndpoint = "https://api-inference.huggingface.co/models/Salesforce/blip-image-captioning-base"

// modelLoadRetryDelay is how long to wait before the single retry when the
// hosted model responds 503 while it is still loading.
const modelLoadRetryDelay = 2 * time.Second

// HuggingFace captions images through the hosted BLIP inference endpoint.
type HuggingFace struct {
	apiKey   string
	endpoint string
	client   *http.Client
	limiter  *rate.Limiter
}

func NewHuggingFace(apiKey string) *HuggingFace {
	return &HuggingFace{
		apiKey:   apiKey,
		endpoint: defaultHFEndpoint,
		client:   &http.Client{Timeout: 60 * time.Second},
		limiter:  rate.NewLimiter(rate.Limit(1), 2),
	}
}

func (h *HuggingFace) Name() string { return "huggingface_blip_base" }

func (h *HuggingFace) Caption(ctx context.Context, jpeg []byte) (string, error) {
	if err := h.limiter.Wait(ctx); err != nil {
		return "", err
	}

	caption, status, err := h.post(ctx, jpeg)
	if err != nil {
		return "", err
	}
	if status == http.StatusOK {
		return caption, nil
	}

	// 503 means the model is cold; wait once and retry, then give up.
	if status == http.StatusServiceUnavailable {
		select {
		case <-time.After(modelLoadRetryDelay):
		case <-ctx.Done():
			return "", ctx.Err()
		}

		caption, status, err = h.post(ctx, jpeg)
		if err != nil {
			return "", err
		}
		if status == http.StatusOK {
			return caption, nil
		}
		return "", fmt.Errorf("huggingface inference: status %d after retry", status)
	}

	return "", fmt.Errorf("huggingface inference: status %d", status)
}

func (h *HuggingFace) post(ctx context.Context, jpeg []byte) (string, int, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, h.endpoint, bytes.NewReader(jpeg))
	if err != nil {
		return "", 0, err
	}
	req.Header.Set("Authorization", "Bearer "+h.apiKey)
	req.Header.Set("Content-Type", "application/octet-stream")
	req.Header.Set("x-wait-for-model", "true")

	resp, err := h.client.Do(req)
	if err != nil {
		return "", 0, fmt.Errorf("huggingface inference: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		io.Copy(io.Discard, resp.Body)
		return "", resp.StatusCode, nil
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", resp.StatusCode, err
	}

	return parseGeneratedText(body), resp.StatusCode, nil
}

// parseGeneratedText handles both response shapes the inference API emits:
// a list of objects or a single object with generated_text.
func parseGeneratedText(body []byte) string {
	const fallback = "A scene with various elements"

	var list []struct {
		GeneratedText string `json:"generated_text"`
	}
	if err := json.Unmarshal(body, &list); err == nil && len(list) > 0 && list[0].GeneratedText != "" {
		return list[0].GeneratedText
	}

	var single struct {
		GeneratedText string `json:"generated_text"`
	}
	if err := json.Unmarshal(body, &single); err == nil && single.GeneratedText != "" {
		return single.GeneratedText
	}

	return fallback
}
