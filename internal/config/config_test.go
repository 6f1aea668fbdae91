package config

import "testing"

func TestLoadDefaults(t *testing.T) {
	t.Setenv("MAX_UPLOAD_MB", "")
	t.Setenv("PORT", "")
	t.Setenv("S3_ENDPOINT", "")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}

	if cfg.Port != "8000" {
		t.Errorf("Port = %q, want 8000", cfg.Port)
	}
	if cfg.MaxFileSize != 10<<20 {
		t.Errorf("MaxFileSize = %d, want %d", cfg.MaxFileSize, 10<<20)
	}
	if cfg.ArchiveEnabled() {
		t.Errorf("archive should be disabled without S3_ENDPOINT")
	}
}

func TestLoadRejectsBadInteger(t *testing.T) {
	t.Setenv("MAX_UPLOAD_MB", "lots")

	if _, err := Load(); err == nil {
		t.Fatal("expected error for non-integer MAX_UPLOAD_MB")
	}
}

func TestValidateRequiresAPIKey(t *testing.T) {
	cfg := &Config{}
	if err := cfg.Validate(); err == nil {
		t.Fatal("expected error without OPENAI_API_KEY")
	}

	cfg.OpenAIAPIKey = "sk-test"
	if err := cfg.Validate(); err != nil {
		t.Fatalf("Validate returned error: %v", err)
	}
}
