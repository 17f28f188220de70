package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"
)

// clearEnv blanks every environment variable the loader consults so tests
// see only what they set themselves. Viper treats empty values as unset.
func clearEnv(t *testing.T) {
	t.Helper()
	for _, key := range []string{
		"SERVER_PORT",
		"SERVER_MODE",
		"MODEL_API_KEY",
		"OPENAI_API_KEY",
		"MODEL_BASE_URL",
		"OPENAI_BASE_URL",
		"MODEL_NAME",
		"MODEL_MAX_TOKENS",
		"MODEL_TIMEOUT_SECONDS",
		"UPLOAD_MAX_SIZE_MB",
		"CLIPBOARD_CONFIRM_TTL_MS",
	} {
		t.Setenv(key, "")
	}
}

func TestLoadDefaults(t *testing.T) {
	clearEnv(t)

	cfg, err := Load("")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if cfg.Server.Port != 8080 {
		t.Errorf("expected default port 8080, got %d", cfg.Server.Port)
	}
	if cfg.Server.Mode != "debug" {
		t.Errorf("expected default mode debug, got %s", cfg.Server.Mode)
	}
	if !cfg.Server.CORS.AllowAllOrigins {
		t.Error("expected CORS to allow all origins by default")
	}
	if cfg.Model.Provider != "openai" {
		t.Errorf("expected default provider openai, got %s", cfg.Model.Provider)
	}
	if cfg.Model.Name != "gpt-4o-mini" {
		t.Errorf("expected default model gpt-4o-mini, got %s", cfg.Model.Name)
	}
	if cfg.Model.BaseURL != "https://api.openai.com/v1" {
		t.Errorf("expected the OpenAI base URL, got %s", cfg.Model.BaseURL)
	}
	if cfg.Model.APIKey != "" {
		t.Error("expected no API key without environment input")
	}
	if cfg.Model.MaxTokens != 1024 {
		t.Errorf("expected default max_tokens 1024, got %d", cfg.Model.MaxTokens)
	}
	if cfg.Model.TimeoutSeconds != 0 {
		t.Errorf("expected default timeout 0, got %d", cfg.Model.TimeoutSeconds)
	}
	if cfg.Upload.MaxSizeMB != 10 {
		t.Errorf("expected default upload cap 10 MB, got %d", cfg.Upload.MaxSizeMB)
	}
	if cfg.Clipboard.ConfirmTTLMs != 2000 {
		t.Errorf("expected default confirmation TTL 2000 ms, got %d", cfg.Clipboard.ConfirmTTLMs)
	}
}

func TestLoadEnvOverrides(t *testing.T) {
	clearEnv(t)
	t.Setenv("SERVER_PORT", "9090")
	t.Setenv("SERVER_MODE", "release")
	t.Setenv("MODEL_API_KEY", "sk-test-123")
	t.Setenv("MODEL_NAME", "gpt-4o")
	t.Setenv("MODEL_BASE_URL", "http://localhost:11434/v1")
	t.Setenv("MODEL_MAX_TOKENS", "256")
	t.Setenv("MODEL_TIMEOUT_SECONDS", "30")
	t.Setenv("UPLOAD_MAX_SIZE_MB", "5")
	t.Setenv("CLIPBOARD_CONFIRM_TTL_MS", "1500")

	cfg, err := Load("")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if cfg.Server.Port != 9090 {
		t.Errorf("expected port 9090, got %d", cfg.Server.Port)
	}
	if cfg.Server.Mode != "release" {
		t.Errorf("expected mode release, got %s", cfg.Server.Mode)
	}
	if cfg.Model.APIKey != "sk-test-123" {
		t.Errorf("expected API key from MODEL_API_KEY, got %q", cfg.Model.APIKey)
	}
	if cfg.Model.Name != "gpt-4o" {
		t.Errorf("expected model gpt-4o, got %s", cfg.Model.Name)
	}
	if cfg.Model.BaseURL != "http://localhost:11434/v1" {
		t.Errorf("expected the local base URL, got %s", cfg.Model.BaseURL)
	}
	if cfg.Model.MaxTokens != 256 {
		t.Errorf("expected max_tokens 256, got %d", cfg.Model.MaxTokens)
	}
	if cfg.Model.TimeoutSeconds != 30 {
		t.Errorf("expected timeout 30, got %d", cfg.Model.TimeoutSeconds)
	}
	if cfg.Upload.MaxSizeMB != 5 {
		t.Errorf("expected upload cap 5 MB, got %d", cfg.Upload.MaxSizeMB)
	}
	if cfg.Clipboard.ConfirmTTLMs != 1500 {
		t.Errorf("expected confirmation TTL 1500 ms, got %d", cfg.Clipboard.ConfirmTTLMs)
	}
}

func TestLoadCredentialFallbackEnv(t *testing.T) {
	clearEnv(t)
	t.Setenv("OPENAI_API_KEY", "sk-fallback")

	cfg, err := Load("")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.Model.APIKey != "sk-fallback" {
		t.Errorf("expected API key from OPENAI_API_KEY, got %q", cfg.Model.APIKey)
	}
}

func TestLoadConfigFile(t *testing.T) {
	clearEnv(t)

	content := `server:
  port: 3000
  mode: release
model:
  name: llama3
  base_url: http://localhost:11434/v1
  max_tokens: 512
upload:
  max_size_mb: 4
clipboard:
  confirm_ttl_ms: 1200
`
	path := filepath.Join(t.TempDir(), "config.yaml")
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatalf("failed to write config file: %v", err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if cfg.Server.Port != 3000 {
		t.Errorf("expected port 3000 from file, got %d", cfg.Server.Port)
	}
	if cfg.Model.Name != "llama3" {
		t.Errorf("expected model llama3 from file, got %s", cfg.Model.Name)
	}
	if cfg.Model.MaxTokens != 512 {
		t.Errorf("expected max_tokens 512 from file, got %d", cfg.Model.MaxTokens)
	}
	if cfg.Upload.MaxSizeMB != 4 {
		t.Errorf("expected upload cap 4 MB from file, got %d", cfg.Upload.MaxSizeMB)
	}
	// Keys the file leaves out keep their defaults.
	if cfg.Model.Provider != "openai" {
		t.Errorf("expected default provider openai, got %s", cfg.Model.Provider)
	}
}

func TestLoadEnvBeatsConfigFile(t *testing.T) {
	clearEnv(t)
	t.Setenv("SERVER_PORT", "9999")

	content := "server:\n  port: 3000\n"
	path := filepath.Join(t.TempDir(), "config.yaml")
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatalf("failed to write config file: %v", err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.Server.Port != 9999 {
		t.Errorf("expected the environment to win over the file, got %d", cfg.Server.Port)
	}
}

func TestLoadMissingExplicitFile(t *testing.T) {
	clearEnv(t)

	if _, err := Load(filepath.Join(t.TempDir(), "missing.yaml")); err == nil {
		t.Error("expected an error for an explicitly named missing file")
	}
}

func validConfig() *Config {
	return &Config{
		Server: ServerConfig{Port: 8080, Mode: "debug"},
		Model: ModelConfig{
			Provider:  "openai",
			Name:      "gpt-4o-mini",
			APIKey:    "sk-test",
			BaseURL:   "https://api.openai.com/v1",
			MaxTokens: 1024,
		},
		Upload:    UploadConfig{MaxSizeMB: 10},
		Clipboard: ClipboardConfig{ConfirmTTLMs: 2000},
	}
}

func TestConfigValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr string
	}{
		{
			name:   "valid",
			mutate: func(c *Config) {},
		},
		{
			name:    "missing api key",
			mutate:  func(c *Config) { c.Model.APIKey = "" },
			wantErr: "api_key",
		},
		{
			name:    "missing model name",
			mutate:  func(c *Config) { c.Model.Name = "" },
			wantErr: "name is required",
		},
		{
			name:    "missing base url",
			mutate:  func(c *Config) { c.Model.BaseURL = "" },
			wantErr: "base_url",
		},
		{
			name:    "zero max tokens",
			mutate:  func(c *Config) { c.Model.MaxTokens = 0 },
			wantErr: "max_tokens",
		},
		{
			name:    "negative timeout",
			mutate:  func(c *Config) { c.Model.TimeoutSeconds = -1 },
			wantErr: "timeout_seconds",
		},
		{
			name:    "unknown provider",
			mutate:  func(c *Config) { c.Model.Provider = "aws-bedrock" },
			wantErr: "unknown provider",
		},
		{
			name:    "port too low",
			mutate:  func(c *Config) { c.Server.Port = 0 },
			wantErr: "out of range",
		},
		{
			name:    "port too high",
			mutate:  func(c *Config) { c.Server.Port = 70000 },
			wantErr: "out of range",
		},
		{
			name:    "zero upload cap",
			mutate:  func(c *Config) { c.Upload.MaxSizeMB = 0 },
			wantErr: "max_size_mb",
		},
		{
			name:    "zero confirmation TTL",
			mutate:  func(c *Config) { c.Clipboard.ConfirmTTLMs = 0 },
			wantErr: "confirm_ttl_ms",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := validConfig()
			tt.mutate(cfg)

			err := cfg.Validate()
			if tt.wantErr == "" {
				if err != nil {
					t.Errorf("unexpected error: %v", err)
				}
				return
			}
			if err == nil {
				t.Fatal("expected a validation error")
			}
			if !strings.Contains(err.Error(), tt.wantErr) {
				t.Errorf("expected error mentioning %q, got %v", tt.wantErr, err)
			}
		})
	}
}

func TestModelConfigTimeout(t *testing.T) {
	cfg := ModelConfig{TimeoutSeconds: 30}
	if got := cfg.Timeout(); got != 30*time.Second {
		t.Errorf("expected 30s, got %v", got)
	}

	cfg.TimeoutSeconds = 0
	if got := cfg.Timeout(); got != 0 {
		t.Errorf("expected zero duration, got %v", got)
	}
}
