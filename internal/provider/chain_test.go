package provider

import (
	"context"
	"errors"
	"testing"

	"github.com/rs/zerolog"
)

type fakeProvider struct {
	name    string
	caption string
	err     error
	calls   int
}

func (f *fakeProvider) Name() string { return f.name }

func (f *fakeProvider) Caption(ctx context.Context, jpeg []byte) (string, error) {
	f.calls++
	if f.err != nil {
		return "", f.err
	}
	return f.caption, nil
}

func TestChainPrimarySucceeds(t *testing.T) {
	openai := &fakeProvider{name: "openai_gpt4o_mini", caption: "a woman in a park"}
	local := &fakeProvider{name: "blip_local", caption: "a person in a scene"}

	chain := NewChain("openai", true, []Provider{openai}, local, zerolog.Nop())

	text, tag, err := chain.Describe(context.Background(), []byte("img-1"))
	if err != nil {
		t.Fatalf("Describe failed: %v", err)
	}
	if text != "a woman in a park" {
		t.Errorf("Unexpected caption: %q", text)
	}
	if tag != "openai_gpt4o_mini" {
		t.Errorf("Unexpected provider tag: %q", tag)
	}
	if local.calls != 0 {
		t.Error("Local model should not be consulted when primary succeeds")
	}
}

func TestChainFallbackOrder(t *testing.T) {
	openai := &fakeProvider{name: "openai_gpt4o_mini", err: errors.New("auth failed")}
	google := &fakeProvider{name: "google_gemini_vision", err: errors.New("quota")}
	hf := &fakeProvider{name: "huggingface_blip_base", caption: "hosted caption"}
	local := &fakeProvider{name: "blip_local", caption: "a person in a scene"}

	chain := NewChain("openai", true, []Provider{openai, google, hf}, local, zerolog.Nop())

	text, tag, err := chain.Describe(context.Background(), []byte("img-2"))
	if err != nil {
		t.Fatalf("Describe failed: %v", err)
	}
	if tag != "huggingface_blip_base" || text != "hosted caption" {
		t.Errorf("Expected huggingface fallback, got %q / %q", tag, text)
	}
	if google.calls != 1 {
		t.Errorf("Expected google tried once before huggingface, got %d calls", google.calls)
	}
}

func TestChainTerminalLocalFallback(t *testing.T) {
	openai := &fakeProvider{name: "openai_gpt4o_mini", err: errors.New("down")}
	local := &fakeProvider{name: "blip_local", caption: "a person in a scene"}

	chain := NewChain("openai", true, []Provider{openai}, local, zerolog.Nop())

	text, tag, err := chain.Describe(context.Background(), []byte("img-3"))
	if err != nil {
		t.Fatalf("Describe failed: %v", err)
	}
	if tag != "blip_local" {
		t.Errorf("Expected blip_local terminal fallback, got %q", tag)
	}
	if text != "a person in a scene" {
		t.Errorf("Unexpected caption: %q", text)
	}
}

func TestChainMissingPrimaryFallsBackToLocal(t *testing.T) {
	// Provider configured in settings but no matching client (no API key).
	local := &fakeProvider{name: "blip_local", caption: "a person in a scene"}
	chain := NewChain("openai", true, nil, local, zerolog.Nop())

	_, tag, err := chain.Describe(context.Background(), []byte("img-4"))
	if err != nil {
		t.Fatalf("Describe failed: %v", err)
	}
	if tag != "blip_local" {
		t.Errorf("Expected blip_local, got %q", tag)
	}
}

func TestChainFallbackDisabled(t *testing.T) {
	openai := &fakeProvider{name: "openai_gpt4o_mini", err: errors.New("auth failed")}
	local := &fakeProvider{name: "blip_local", caption: "a person in a scene"}

	chain := NewChain("openai", false, []Provider{openai}, local, zerolog.Nop())

	_, _, err := chain.Describe(context.Background(), []byte("img-5"))
	if err == nil {
		t.Fatal("Expected error when fallback is disabled and primary fails")
	}
	if local.calls != 0 {
		t.Error("Local model should not run when fallback is disabled")
	}
}

func TestChainBlipPrimaryShortCircuits(t *testing.T) {
	openai := &fakeProvider{name: "openai_gpt4o_mini", caption: "unused"}
	local := &fakeProvider{name: "blip_local", caption: "a person in a scene"}

	chain := NewChain("blip", true, []Provider{openai}, local, zerolog.Nop())

	_, tag, err := chain.Describe(context.Background(), []byte("img-6"))
	if err != nil {
		t.Fatalf("Describe failed: %v", err)
	}
	if tag != "blip_local" {
		t.Errorf("Expected blip_local, got %q", tag)
	}
	if openai.calls != 0 {
		t.Error("Remote providers should not run when blip is the configured provider")
	}
}

func TestChainCachesByContent(t *testing.T) {
	openai := &fakeProvider{name: "openai_gpt4o_mini", caption: "cached caption"}
	local := &fakeProvider{name: "blip_local", caption: "a person in a scene"}

	chain := NewChain("openai", true, []Provider{openai}, local, zerolog.Nop())

	for i := 0; i < 3; i++ {
		text, _, err := chain.Describe(context.Background(), []byte("same-bytes"))
		if err != nil {
			t.Fatalf("Describe failed: %v", err)
		}
		if text != "cached caption" {
			t.Errorf("Unexpected caption: %q", text)
		}
	}

	if openai.calls != 1 {
		t.Errorf("Expected a single upstream call for identical bytes, got %d", openai.calls)
	}
}
