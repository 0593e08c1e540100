package service

import (
	"context"
	"log/slog"

	"github.com/rafiqdevhub/caloriesmart/internal/analysis"
	"github.com/rafiqdevhub/caloriesmart/internal/intake"
	"github.com/rafiqdevhub/caloriesmart/internal/logging"
	"github.com/rafiqdevhub/caloriesmart/internal/prompt"
)

// AnalysisService runs one analysis end to end: validate the upload, compose
// the prompt, call the model. Each call is independent; nothing is retained
// between invocations.
type AnalysisService struct {
	analyzer analysis.Analyzer
	logger   *slog.Logger
}

func NewAnalysisService(analyzer analysis.Analyzer, logger *slog.Logger) *AnalysisService {
	return &AnalysisService{
		analyzer: analyzer,
		logger:   logger,
	}
}

// Analyze validates imageData, composes the prompt with the optional user
// instructions, and issues exactly one model call. The analyzer is never
// invoked for an invalid image.
func (s *AnalysisService) Analyze(ctx context.Context, imageData []byte, instructions string) (*analysis.Result, error) {
	logger := logging.FromContext(ctx, s.logger)

	img, err := intake.Validate(imageData)
	if err != nil {
		return nil, err
	}
	logger.Info("image accepted", "mime_type", img.MimeType, "bytes", len(img.Data))

	composed := prompt.Compose(instructions)

	logger.Info("analysis started", "instructions_len", len(instructions))
	result, err := s.analyzer.Analyze(ctx, img, composed)
	if err != nil {
		return nil, err
	}

	parsed := result.Report != nil
	logger.Info("analysis complete", "response_len", len(result.RawText), "parsed", parsed)
	return result, nil
}
