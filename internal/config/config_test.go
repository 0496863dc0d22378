package config

import (
	"path/filepath"
	"testing"
	"time"

	"github.com/Nadercr7/Shamel/internal/models"
)

func TestDefaultConfig_FromEnv(t *testing.T) {
	home := t.TempDir()
	t.Setenv("SHAMEL_HOME", home)
	t.Setenv("GEMINI_API_KEY", "")
	t.Setenv("API_KEY", "legacy-key")
	t.Setenv("SHAMEL_LANG", "ar")
	t.Setenv("SHAMEL_HIGH_CONTRAST", "true")
	t.Setenv("SPEECH_PROVIDER", "OpenAI")

	cfg := DefaultConfig()
	if cfg.GeminiAPIKey != "legacy-key" {
		t.Fatalf("expected API_KEY fallback, got %q", cfg.GeminiAPIKey)
	}
	if cfg.DefaultLanguage != models.Arabic {
		t.Fatalf("expected arabic, got %q", cfg.DefaultLanguage)
	}
	if !cfg.HighContrast {
		t.Fatalf("expected high contrast from env")
	}
	if cfg.SpeechProvider != ProviderOpenAI {
		t.Fatalf("expected provider to be lower-cased, got %q", cfg.SpeechProvider)
	}
	if cfg.LogFile != filepath.Join(home, "shamel.log") {
		t.Fatalf("unexpected log file %q", cfg.LogFile)
	}
}

func TestDefaultConfig_BadNumbersFallBack(t *testing.T) {
	t.Setenv("SHAMEL_HOME", t.TempDir())
	t.Setenv("SHAMEL_SEGMENT_SECONDS", "soon")
	t.Setenv("SHAMEL_HIGH_CONTRAST", "maybe")
	cfg := DefaultConfig()
	if cfg.SegmentDuration != 4*time.Second {
		t.Fatalf("expected default segment, got %v", cfg.SegmentDuration)
	}
	if cfg.HighContrast {
		t.Fatalf("expected default contrast")
	}
}

func TestLoad_CreatesDirectories(t *testing.T) {
	home := filepath.Join(t.TempDir(), "nested")
	t.Setenv("SHAMEL_HOME", home)
	cfg, err := Load()
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if err := cfg.Validate(); err != nil {
		t.Fatalf("default config should validate: %v", err)
	}
}

func TestValidate(t *testing.T) {
	t.Setenv("SHAMEL_HOME", t.TempDir())
	cases := []struct {
		name   string
		mutate func(*Config)
	}{
		{"provider", func(c *Config) { c.SpeechProvider = "espeak" }},
		{"sample_rate", func(c *Config) { c.SampleRate = 0 }},
		{"buffer", func(c *Config) { c.BufferSize = -1 }},
		{"segment", func(c *Config) { c.SegmentDuration = 100 * time.Millisecond }},
		{"font_low", func(c *Config) { c.FontSize = 10 }},
		{"font_odd", func(c *Config) { c.FontSize = 17 }},
		{"font_high", func(c *Config) { c.FontSize = 26 }},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			cfg := DefaultConfig()
			tc.mutate(cfg)
			if err := cfg.Validate(); err == nil {
				t.Fatalf("expected validation error")
			}
		})
	}
}

func TestWarnings(t *testing.T) {
	cfg := &Config{SpeechProvider: ProviderElevenLabs}
	if got := len(cfg.Warnings()); got != 3 {
		t.Fatalf("expected 3 warnings, got %d", got)
	}
	cfg = &Config{SpeechProvider: ProviderOpenAI, GeminiAPIKey: "g", OpenAIAPIKey: "o"}
	if got := cfg.Warnings(); len(got) != 0 {
		t.Fatalf("expected no warnings, got %v", got)
	}
}
