package config

import (
	"fmt"
	"log"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/Nadercr7/Shamel/internal/models"
	"github.com/joho/godotenv"
)

// Speech synthesis providers
const (
	ProviderElevenLabs = "elevenlabs"
	ProviderOpenAI     = "openai"
)

// VoiceSettings mirrors the voice_settings object of the ElevenLabs API
type VoiceSettings struct {
	Stability       float64
	SimilarityBoost float64
	Style           float64
	UseSpeakerBoost bool
}

// Config holds the application configuration
type Config struct {
	// API Configuration
	GeminiAPIKey     string
	ElevenLabsAPIKey string
	OpenAIAPIKey     string

	// AI Model Configuration
	GeminiModel       string
	SpeechProvider    string
	ElevenLabsBaseURL string
	ElevenLabsModel   string
	EnglishVoiceID    string
	ArabicVoiceID     string
	Voice             VoiceSettings
	OpenAITTSModel    string
	OpenAITTSVoice    string
	OpenAISTTModel    string

	// Audio Configuration
	SampleRate       int
	BufferSize       int
	SegmentDuration  time.Duration
	SilenceThreshold float64

	// Presentation defaults
	DefaultLanguage models.Language
	HighContrast    bool
	FontSize        int

	// File Paths
	ConfigDir    string
	LogFile      string
	AudioTempDir string
}

// DefaultConfig returns a configuration with sensible defaults
func DefaultConfig() *Config {
	configDir := getEnv("SHAMEL_HOME", "")
	if configDir == "" {
		homeDir, _ := os.UserHomeDir()
		configDir = filepath.Join(homeDir, ".config", "shamel")
	}

	geminiKey := os.Getenv("GEMINI_API_KEY")
	if geminiKey == "" {
		geminiKey = os.Getenv("API_KEY")
	}

	return &Config{
		GeminiAPIKey:     geminiKey,
		ElevenLabsAPIKey: strings.TrimSpace(os.Getenv("ELEVENLABS_API_KEY")),
		OpenAIAPIKey:     os.Getenv("OPENAI_API_KEY"),

		GeminiModel:       getEnv("GEMINI_MODEL", "gemini-2.5-flash"),
		SpeechProvider:    strings.ToLower(getEnv("SPEECH_PROVIDER", ProviderElevenLabs)),
		ElevenLabsBaseURL: getEnv("ELEVENLABS_BASE_URL", "https://api.elevenlabs.io"),
		ElevenLabsModel:   getEnv("ELEVENLABS_MODEL_ID", "eleven_multilingual_v2"),
		EnglishVoiceID:    getEnv("ELEVENLABS_VOICE_EN", "21m00Tcm4TlvDq8ikWAM"),
		ArabicVoiceID:     getEnv("ELEVENLABS_VOICE_AR", "pNInz6obpgDQGcFmaJgB"),
		Voice: VoiceSettings{
			Stability:       0.5,
			SimilarityBoost: 0.75,
			Style:           0.1,
			UseSpeakerBoost: true,
		},
		OpenAITTSModel: "tts-1",
		OpenAITTSVoice: getEnv("OPENAI_TTS_VOICE", "alloy"),
		OpenAISTTModel: "whisper-1",

		SampleRate:       16000,
		BufferSize:       1024,
		SegmentDuration:  time.Duration(getEnvInt("SHAMEL_SEGMENT_SECONDS", 4)) * time.Second,
		SilenceThreshold: 0.01,

		DefaultLanguage: models.ParseLanguage(getEnv("SHAMEL_LANG", "en")),
		HighContrast:    getEnvBool("SHAMEL_HIGH_CONTRAST", false),
		FontSize:        16,

		ConfigDir:    configDir,
		LogFile:      filepath.Join(configDir, "shamel.log"),
		AudioTempDir: filepath.Join(configDir, "audio_temp"),
	}
}

// Load loads configuration from .env and the environment and prepares directories.
// Missing credentials are reported as warnings; the features that need them stay inert.
func Load() (*Config, error) {
	if err := godotenv.Load(); err != nil && !os.IsNotExist(err) {
		log.Printf("Error loading .env file: %v", err)
	}

	config := DefaultConfig()

	if err := os.MkdirAll(config.ConfigDir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create config directory: %w", err)
	}

	if err := os.MkdirAll(config.AudioTempDir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create audio temp directory: %w", err)
	}

	return config, nil
}

// Warnings lists the credentials that are missing for the configured features
func (c *Config) Warnings() []string {
	var warnings []string
	if c.GeminiAPIKey == "" {
		warnings = append(warnings, "GEMINI_API_KEY not set - assistant and summarizer are disabled")
	}
	switch c.SpeechProvider {
	case ProviderOpenAI:
		if c.OpenAIAPIKey == "" {
			warnings = append(warnings, "OPENAI_API_KEY not set - speech synthesis is disabled")
		}
	default:
		if c.ElevenLabsAPIKey == "" {
			warnings = append(warnings, "ELEVENLABS_API_KEY not set - speech synthesis is disabled")
		}
	}
	if c.OpenAIAPIKey == "" {
		warnings = append(warnings, "OPENAI_API_KEY not set - speech input is disabled")
	}
	return warnings
}

// Validate checks if the configuration is valid
func (c *Config) Validate() error {
	if c.SpeechProvider != ProviderElevenLabs && c.SpeechProvider != ProviderOpenAI {
		return fmt.Errorf("unknown speech provider %q", c.SpeechProvider)
	}

	if c.SampleRate <= 0 {
		return fmt.Errorf("sample rate must be positive")
	}

	if c.BufferSize <= 0 {
		return fmt.Errorf("buffer size must be positive")
	}

	if c.SegmentDuration < time.Second {
		return fmt.Errorf("segment duration must be at least one second")
	}

	if c.FontSize < 12 || c.FontSize > 24 || c.FontSize%2 != 0 {
		return fmt.Errorf("font size must be an even number between 12 and 24")
	}

	return nil
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvInt(key string, defaultValue int) int {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	n, err := strconv.Atoi(value)
	if err != nil {
		return defaultValue
	}
	return n
}

func getEnvBool(key string, defaultValue bool) bool {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	b, err := strconv.ParseBool(value)
	if err != nil {
		return defaultValue
	}
	return b
}
