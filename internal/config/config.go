package config

import (
	"fmt"
	"os"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	ListenAddr      string
	Backend         string
	GeminiAPIKey    string
	GeminiModel     string
	ClaudeAPIKey    string
	ClaudeModel     string
	OpenAIAPIKey    string
	OpenAIModel     string
	AnalysisTimeout time.Duration
	LogLevel        string
	LogFile         string
}

// ConfigurationError reports a startup-time configuration problem, such as a
// missing API key for the selected analysis backend. It is fatal: the server
// refuses to start rather than exposing an analyze action that can never work.
type ConfigurationError struct {
	Reason string
}

func (e *ConfigurationError) Error() string {
	return "configuration error: " + e.Reason
}

// Load reads configuration from the environment, after merging in a .env file
// if one is present in the working directory.
func Load() *Config {
	_ = godotenv.Load()

	return &Config{
		ListenAddr:      getEnv("LISTEN_ADDR", ":8080"),
		Backend:         getEnv("ANALYSIS_BACKEND", "gemini"),
		GeminiAPIKey:    getEnv("GOOGLE_API_KEY", ""),
		GeminiModel:     getEnv("GEMINI_MODEL", "gemini-2.0-flash"),
		ClaudeAPIKey:    getEnv("CLAUDE_API_KEY", ""),
		ClaudeModel:     getEnv("CLAUDE_MODEL", "claude-3-5-sonnet-20241022"),
		OpenAIAPIKey:    getEnv("OPENAI_API_KEY", ""),
		OpenAIModel:     getEnv("OPENAI_MODEL", "gpt-4o"),
		AnalysisTimeout: getDuration("ANALYSIS_TIMEOUT", 60*time.Second),
		LogLevel:        getEnv("LOG_LEVEL", "info"),
		LogFile:         getEnv("LOG_FILE", ""),
	}
}

// Validate checks that the selected backend has a credential. The credential
// is loaded exactly once here; nothing reads the environment at call time.
func (c *Config) Validate() error {
	switch c.Backend {
	case "gemini":
		if c.GeminiAPIKey == "" {
			return &ConfigurationError{Reason: "GOOGLE_API_KEY is required when ANALYSIS_BACKEND=gemini"}
		}
	case "claude":
		if c.ClaudeAPIKey == "" {
			return &ConfigurationError{Reason: "CLAUDE_API_KEY is required when ANALYSIS_BACKEND=claude"}
		}
	case "openai":
		if c.OpenAIAPIKey == "" {
			return &ConfigurationError{Reason: "OPENAI_API_KEY is required when ANALYSIS_BACKEND=openai"}
		}
	default:
		return &ConfigurationError{Reason: fmt.Sprintf("unknown ANALYSIS_BACKEND %q", c.Backend)}
	}
	return nil
}

func getEnv(key, defaultVal string) string {
	if val, exists := os.LookupEnv(key); exists {
		return val
	}
	return defaultVal
}

func getDuration(key string, defaultVal time.Duration) time.Duration {
	val, exists := os.LookupEnv(key)
	if !exists {
		return defaultVal
	}
	d, err := time.ParseDuration(val)
	if err != nil {
		return defaultVal
	}
	return d
}
