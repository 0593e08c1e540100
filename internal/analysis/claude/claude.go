package claude

import (
	"context"
	"errors"
	"net/http"
	"time"

	anthropic "github.com/liushuangls/go-anthropic/v2"

	"github.com/rafiqdevhub/caloriesmart/internal/analysis"
	"github.com/rafiqdevhub/caloriesmart/internal/intake"
)

// maxTokens leaves ample headroom for the templated nutrition report; a
// typical response for a full plate is well under 600 tokens.
const maxTokens = 1024

type ClaudeAnalyzer struct {
	client *anthropic.Client
	model  string
}

func NewClaudeAnalyzer(apiKey, model string, timeout time.Duration) *ClaudeAnalyzer {
	return &ClaudeAnalyzer{
		client: anthropic.NewClient(apiKey,
			anthropic.WithHTTPClient(&http.Client{Timeout: timeout}),
		),
		model: model,
	}
}

// NewClaudeAnalyzerWithBaseURL is used by tests to point the client at a fake
// API server.
func NewClaudeAnalyzerWithBaseURL(apiKey, model, baseURL string, timeout time.Duration) *ClaudeAnalyzer {
	return &ClaudeAnalyzer{
		client: anthropic.NewClient(apiKey,
			anthropic.WithHTTPClient(&http.Client{Timeout: timeout}),
			anthropic.WithBaseURL(baseURL),
		),
		model: model,
	}
}

func (a *ClaudeAnalyzer) Analyze(ctx context.Context, img *intake.UploadedImage, prompt string) (*analysis.Result, error) {
	resp, err := a.client.CreateMessages(ctx, anthropic.MessagesRequest{
		Model:     anthropic.Model(a.model),
		MaxTokens: maxTokens,
		Messages: []anthropic.Message{
			{
				Role: anthropic.RoleUser,
				Content: []anthropic.MessageContent{
					anthropic.NewImageMessageContent(anthropic.NewMessageContentSource(
						anthropic.MessagesContentSourceTypeBase64,
						img.MimeType,
						img.Data,
					)),
					anthropic.NewTextMessageContent(prompt),
				},
			},
		},
	})
	if err != nil {
		return nil, mapErr(err)
	}

	var text string
	if len(resp.Content) > 0 {
		text = resp.Content[0].GetText()
	}
	return analysis.NewResult(text)
}

// mapErr translates go-anthropic errors into the analysis error taxonomy.
func mapErr(err error) error {
	var apiErr *anthropic.APIError
	if errors.As(err, &apiErr) {
		if apiErr.IsAuthenticationErr() {
			return &analysis.AuthenticationError{Backend: "claude"}
		}
		return &analysis.AnalysisFailedError{Cause: apiErr.Message, Err: err}
	}
	return &analysis.AnalysisFailedError{Cause: "failed to call claude", Err: err}
}
