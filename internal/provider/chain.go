package provider

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"time"

	gocache "github.com/patrickmn/go-cache"
	"github.com/rs/zerolog"

	"github.com/framepack/promptgen/internal/config"
)

// Chain selects a caption provider: the configured primary first, then the
// remaining remote providers in fixed priority order when fallback is
// enabled, then the local model as the terminal resort. Captions are cached
// by image content hash so repeated analyses of the same image don't repeat
// API calls.
type Chain struct {
	primary  string
	fallback bool
	remotes  []Provider
	local    Provider
	cache    *gocache.Cache
	log      zerolog.Logger
}

type cachedCaption struct {
	Text string
	Tag  string
}

// BuildChain assembles providers from the settings. Remote providers without
// an API key are simply absent from the chain.
func BuildChain(ctx context.Context, cfg *config.Settings, log zerolog.Logger) *Chain {
	c := &Chain{
		primary:  cfg.API.Provider,
		fallback: cfg.FallbackEnabled(),
		local:    NewLocalBLIP(cfg.API.BlipEndpoint, log),
		cache:    gocache.New(10*time.Minute, 30*time.Minute),
		log:      log.With().Str("component", "provider-chain").Logger(),
	}

	if cfg.API.OpenAIAPIKey != "" {
		c.remotes = append(c.remotes, NewOpenAI(cfg.API.OpenAIAPIKey))
	}
	if cfg.API.GoogleAPIKey != "" {
		google, err := NewGoogle(ctx, cfg.API.GoogleAPIKey)
		if err != nil {
			c.log.Warn().Err(err).Msg("gemini client init failed, provider skipped")
		} else {
			c.remotes = append(c.remotes, google)
		}
	}
	if cfg.API.HuggingFaceAPIKey != "" {
		c.remotes = append(c.remotes, NewHuggingFace(cfg.API.HuggingFaceAPIKey))
	}

	return c
}

// NewChain builds a chain from explicit providers, primarily for tests.
func NewChain(primary string, fallback bool, remotes []Provider, local Provider, log zerolog.Logger) *Chain {
	return &Chain{
		primary:  primary,
		fallback: fallback,
		remotes:  remotes,
		local:    local,
		cache:    gocache.New(10*time.Minute, 30*time.Minute),
		log:      log,
	}
}

// Describe returns a caption for the image plus the tag of the provider that
// produced it. It fails only when fallback is disabled and the primary
// provider errors.
func (c *Chain) Describe(ctx context.Context, jpeg []byte) (string, string, error) {
	key := contentKey(jpeg)
	if hit, ok := c.cache.Get(key); ok {
		cached := hit.(cachedCaption)
		return cached.Text, cached.Tag, nil
	}

	text, tag, err := c.describe(ctx, jpeg)
	if err != nil {
		return "", "", err
	}

	c.cache.Set(key, cachedCaption{Text: text, Tag: tag}, gocache.DefaultExpiration)
	return text, tag, nil
}

func (c *Chain) describe(ctx context.Context, jpeg []byte) (string, string, error) {
	// The local model short-circuits: it is its own terminal fallback.
	if c.primary == "blip" || c.primary == "" {
		text, err := c.local.Caption(ctx, jpeg)
		if err != nil {
			return "", "", err
		}
		return text, c.local.Name(), nil
	}

	var primaryErr error
	if p := c.remoteFor(c.primary); p != nil {
		text, err := p.Caption(ctx, jpeg)
		if err == nil {
			return text, p.Name(), nil
		}
		primaryErr = err
		c.log.Warn().Err(err).Str("provider", p.Name()).Msg("primary provider failed")
	}

	if !c.fallback {
		if primaryErr != nil {
			return "", "", primaryErr
		}
		return "", "", fmt.Errorf("provider %q is not configured", c.primary)
	}

	for _, p := range c.remotes {
		if providerKey(p) == c.primary {
			continue
		}
		text, err := p.Caption(ctx, jpeg)
		if err == nil {
			c.log.Debug().Str("provider", p.Name()).Msg("fallback provider succeeded")
			return text, p.Name(), nil
		}
		c.log.Warn().Err(err).Str("provider", p.Name()).Msg("fallback provider failed")
	}

	// Terminal resort: the local model, which never fails.
	text, err := c.local.Caption(ctx, jpeg)
	if err != nil {
		return "", "", err
	}
	return text, c.local.Name(), nil
}

func (c *Chain) remoteFor(key string) Provider {
	for _, p := range c.remotes {
		if providerKey(p) == key {
			return p
		}
	}
	return nil
}

// providerKey maps a provider to its settings key.
func providerKey(p Provider) string {
	switch p.Name() {
	case "openai_gpt4o_mini":
		return "openai"
	case "google_gemini_vision":
		return "google"
	case "huggingface_blip_base":
		return "huggingface"
	case "blip_local":
		return "blip"
	default:
		return p.Name()
	}
}

func contentKey(jpeg []byte) string {
	sum := sha256.Sum256(jpeg)
	return hex.EncodeToString(sum[:])
}
