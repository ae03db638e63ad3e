package llm

import (
	"context"
	"strings"
	"testing"

	"hookgenie-api/internal/config"
)

func newFactory(apiKey string) *EinoFactory {
	return NewEinoFactory(&config.Config{
		LLM: config.LLMConfig{
			DefaultProvider: "gemini",
			Providers: map[string]config.ProviderConfig{
				"gemini": {
					APIKey:  apiKey,
					BaseURL: "https://generativelanguage.googleapis.com/v1beta/openai/",
					Model:   "gemini-1.5-flash",
				},
			},
		},
	})
}

func TestHasCredential(t *testing.T) {
	if newFactory("").HasCredential("") {
		t.Error("empty key should not count as credential")
	}
	if newFactory("   ").HasCredential("gemini") {
		t.Error("blank key should not count as credential")
	}
	if !newFactory("k").HasCredential("") {
		t.Error("expected default provider credential")
	}
	if newFactory("k").HasCredential("other") {
		t.Error("unknown provider has no credential")
	}
}

func TestGetWithoutCredential(t *testing.T) {
	_, err := newFactory("").Get(context.Background(), "")
	if err == nil || !strings.Contains(err.Error(), "API key") {
		t.Fatalf("Get() error = %v, want API key error", err)
	}
}

func TestGetCachesModel(t *testing.T) {
	f := newFactory("test-key")
	m1, err := f.Get(context.Background(), "")
	if err != nil {
		t.Fatalf("Get(default) error = %v", err)
	}
	m2, err := f.Get(context.Background(), "gemini")
	if err != nil {
		t.Fatalf("Get() error = %v", err)
	}
	if m1 != m2 {
		t.Error("expected cached model instance")
	}
}

func TestGetUnknownProvider(t *testing.T) {
	if _, err := newFactory("k").Get(context.Background(), "missing"); err == nil {
		t.Fatal("expected error for unknown provider")
	}
}
