package main

import (
	"log"

	"github.com/rafiqdevhub/caloriesmart/internal/analysis"
	claudeanalyzer "github.com/rafiqdevhub/caloriesmart/internal/analysis/claude"
	geminianalyzer "github.com/rafiqdevhub/caloriesmart/internal/analysis/gemini"
	openaianalyzer "github.com/rafiqdevhub/caloriesmart/internal/analysis/openai"
	"github.com/rafiqdevhub/caloriesmart/internal/config"
	"github.com/rafiqdevhub/caloriesmart/internal/logging"
	"github.com/rafiqdevhub/caloriesmart/internal/service"
	"github.com/rafiqdevhub/caloriesmart/internal/web"
	"github.com/rafiqdevhub/caloriesmart/internal/web/templates"
)

func main() {
	cfg := config.Load()

	logger, cleanup, err := logging.New(cfg.LogLevel, cfg.LogFile)
	if err != nil {
		log.Fatalf("failed to initialize logger: %v", err)
	}
	defer cleanup()

	// Credential problems are fatal here, before any request is served.
	if err := cfg.Validate(); err != nil {
		logger.Error("invalid configuration", "error", err)
		return
	}

	logger.Info("using analysis backend", "backend", cfg.Backend)
	analyzer := newAnalyzer(cfg)

	analysisService := service.NewAnalysisService(analyzer, logger)
	server := web.NewServer(analysisService, templates.FS, logger)

	if err := server.ListenAndServe(cfg.ListenAddr); err != nil {
		logger.Error("server error", "error", err)
	}
}

func newAnalyzer(cfg *config.Config) analysis.Analyzer {
	switch cfg.Backend {
	case "claude":
		return claudeanalyzer.NewClaudeAnalyzer(cfg.ClaudeAPIKey, cfg.ClaudeModel, cfg.AnalysisTimeout)
	case "openai":
		return openaianalyzer.NewOpenAIAnalyzer(cfg.OpenAIAPIKey, cfg.OpenAIModel, cfg.AnalysisTimeout)
	default:
		return geminianalyzer.NewGeminiAnalyzer(cfg.GeminiAPIKey, cfg.GeminiModel, cfg.AnalysisTimeout)
	}
}
