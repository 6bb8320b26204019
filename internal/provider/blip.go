package provider

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"time"

	"github.com/rs/zerolog"
)

// blipPlaceholder is returned when the local model endpoint is unreachable.
// The local provider is the terminal link in the fallback chain and must
// never fail.
const blipPlaceholder = "a person in a scene"

// LocalBLIP captions images through a captioning model served on localhost.
// Any failure degrades to a fixed placeholder caption instead of an error.
type LocalBLIP struct {
	endpoint string
	client   *http.Client
	log      zerolog.Logger
}

func NewLocalBLIP(endpoint string, log zerolog.Logger) *LocalBLIP {
	return &LocalBLIP{
		endpoint: endpoint,
		client:   &http.Client{Timeout: 30 * time.Second},
		log:      log.With().Str("component", "blip-local").Logger(),
	}
}

func (b *LocalBLIP) Name() string { return "blip_local" }

func (b *LocalBLIP) Caption(ctx context.Context, jpeg []byte) (string, error) {
	if b.endpoint == "" {
		return blipPlaceholder, nil
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, b.endpoint, bytes.NewReader(jpeg))
	if err != nil {
		return blipPlaceholder, nil
	}
	req.Header.Set("Content-Type", "application/octet-stream")

	resp, err := b.client.Do(req)
	if err != nil {
		b.log.Debug().Err(err).Msg("local model unavailable, using placeholder caption")
		return blipPlaceholder, nil
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		io.Copy(io.Discard, resp.Body)
		b.log.Debug().Int("status", resp.StatusCode).Msg("local model error, using placeholder caption")
		return blipPlaceholder, nil
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return blipPlaceholder, nil
	}

	var out struct {
		Caption string `json:"caption"`
	}
	if err := json.Unmarshal(body, &out); err != nil || out.Caption == "" {
		return blipPlaceholder, nil
	}

	return out.Caption, nil
}
