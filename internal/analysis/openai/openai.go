package openai

import (
	"context"
	"encoding/base64"
	"errors"
	"fmt"
	"net/http"
	"time"

	openai "github.com/sashabaranov/go-openai"

	"github.com/rafiqdevhub/caloriesmart/internal/analysis"
	"github.com/rafiqdevhub/caloriesmart/internal/intake"
)

const maxTokens = 1024

type OpenAIAnalyzer struct {
	client *openai.Client
	model  string
}

func NewOpenAIAnalyzer(apiKey, model string, timeout time.Duration) *OpenAIAnalyzer {
	cfg := openai.DefaultConfig(apiKey)
	cfg.HTTPClient = &http.Client{Timeout: timeout}
	return &OpenAIAnalyzer{
		client: openai.NewClientWithConfig(cfg),
		model:  model,
	}
}

// NewOpenAIAnalyzerWithBaseURL is used by tests to point the client at a fake
// API server.
func NewOpenAIAnalyzerWithBaseURL(apiKey, model, baseURL string, timeout time.Duration) *OpenAIAnalyzer {
	cfg := openai.DefaultConfig(apiKey)
	cfg.HTTPClient = &http.Client{Timeout: timeout}
	cfg.BaseURL = baseURL
	return &OpenAIAnalyzer{
		client: openai.NewClientWithConfig(cfg),
		model:  model,
	}
}

func (a *OpenAIAnalyzer) Analyze(ctx context.Context, img *intake.UploadedImage, prompt string) (*analysis.Result, error) {
	dataURI := fmt.Sprintf("data:%s;base64,%s", img.MimeType, base64.StdEncoding.EncodeToString(img.Data))

	resp, err := a.client.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
		Model:     a.model,
		MaxTokens: maxTokens,
		Messages: []openai.ChatCompletionMessage{
			{
				Role: openai.ChatMessageRoleUser,
				MultiContent: []openai.ChatMessagePart{
					{
						Type:     openai.ChatMessagePartTypeImageURL,
						ImageURL: &openai.ChatMessageImageURL{URL: dataURI},
					},
					{
						Type: openai.ChatMessagePartTypeText,
						Text: prompt,
					},
				},
			},
		},
	})
	if err != nil {
		return nil, mapErr(err)
	}

	if len(resp.Choices) == 0 {
		return nil, &analysis.AnalysisFailedError{Cause: "model returned no choices"}
	}

	return analysis.NewResult(resp.Choices[0].Message.Content)
}

// mapErr translates go-openai errors into the analysis error taxonomy.
func mapErr(err error) error {
	var apiErr *openai.APIError
	if errors.As(err, &apiErr) {
		if apiErr.HTTPStatusCode == http.StatusUnauthorized || apiErr.HTTPStatusCode == http.StatusForbidden {
			return &analysis.AuthenticationError{Backend: "openai"}
		}
		return &analysis.AnalysisFailedError{Cause: apiErr.Message, Err: err}
	}
	return &analysis.AnalysisFailedError{Cause: "failed to call openai", Err: err}
}
