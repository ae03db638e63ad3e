package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestExpandEnv(t *testing.T) {
	t.Setenv("HOOKGENIE_TEST_SET", "value")

	tests := []struct {
		name string
		in   string
		want string
	}{
		{"set variable", "key: ${HOOKGENIE_TEST_SET}", "key: value"},
		{"set variable ignores default", "key: ${HOOKGENIE_TEST_SET:other}", "key: value"},
		{"default used", "key: ${HOOKGENIE_TEST_UNSET:fallback}", "key: fallback"},
		{"empty default", "key: ${HOOKGENIE_TEST_UNSET:}", "key: "},
		{"undefined kept", "key: ${HOOKGENIE_TEST_UNSET}", "key: ${HOOKGENIE_TEST_UNSET}"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := expandEnv(tt.in); got != tt.want {
				t.Errorf("expandEnv(%q) = %q, want %q", tt.in, got, tt.want)
			}
		})
	}
}

func TestLoadFromDir(t *testing.T) {
	dir := t.TempDir()
	content := `
app:
  name: hookgenie-test
llm:
  default_provider: gemini
  providers:
    gemini:
      api_key: ${HOOKGENIE_TEST_API_KEY:}
      model: gemini-1.5-flash
      timeout: 15s
features:
  history:
    backend: memory
`
	if err := os.WriteFile(filepath.Join(dir, "config.yaml"), []byte(content), 0o600); err != nil {
		t.Fatalf("write config: %v", err)
	}
	t.Setenv("APP_ENV", "test")

	cfg, err := LoadFromDir(dir)
	if err != nil {
		t.Fatalf("LoadFromDir() error = %v", err)
	}

	if cfg.App.Name != "hookgenie-test" {
		t.Errorf("App.Name = %q", cfg.App.Name)
	}
	if cfg.Features.History.Backend != "memory" {
		t.Errorf("History.Backend = %q, want memory", cfg.Features.History.Backend)
	}
	if cfg.Features.History.Cap != 3 {
		t.Errorf("History.Cap = %d, want default 3", cfg.Features.History.Cap)
	}
	if cfg.Features.Usage.SoftLimit != 45 || cfg.Features.Usage.NominalLimit != 50 {
		t.Errorf("Usage = %+v, want 45/50", cfg.Features.Usage)
	}

	p, ok := cfg.LLM.DefaultProviderConfig()
	if !ok {
		t.Fatal("default provider not found")
	}
	if p.APIKey != "" {
		t.Errorf("APIKey = %q, want empty", p.APIKey)
	}
	if p.Timeout != 15*time.Second {
		t.Errorf("Timeout = %v, want 15s", p.Timeout)
	}
}

func TestLoadFromDir_MissingBaseFile(t *testing.T) {
	if _, err := LoadFromDir(t.TempDir()); err == nil {
		t.Fatal("expected error for missing config.yaml")
	}
}
