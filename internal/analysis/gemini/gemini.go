package gemini

import (
	"bytes"
	"context"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"time"

	"github.com/rafiqdevhub/caloriesmart/internal/analysis"
	"github.com/rafiqdevhub/caloriesmart/internal/intake"
)

const defaultBaseURL = "https://generativelanguage.googleapis.com/v1beta"

// request types mirror the Gemini generateContent API structure.
type request struct {
	Contents []content `json:"contents"`
}

type content struct {
	Parts []part `json:"parts"`
}

type part struct {
	Text       string      `json:"text,omitempty"`
	InlineData *inlineData `json:"inline_data,omitempty"`
}

type inlineData struct {
	MimeType string `json:"mime_type"`
	Data     string `json:"data"`
}

type response struct {
	Candidates []struct {
		Content struct {
			Parts []struct {
				Text string `json:"text"`
			} `json:"parts"`
		} `json:"content"`
	} `json:"candidates"`
}

type GeminiAnalyzer struct {
	apiKey  string
	model   string
	client  *http.Client
	baseURL string
}

func NewGeminiAnalyzer(apiKey, model string, timeout time.Duration) *GeminiAnalyzer {
	return &GeminiAnalyzer{
		apiKey:  apiKey,
		model:   model,
		client:  &http.Client{Timeout: timeout},
		baseURL: defaultBaseURL,
	}
}

func (a *GeminiAnalyzer) Analyze(ctx context.Context, img *intake.UploadedImage, prompt string) (*analysis.Result, error) {
	body := request{
		Contents: []content{{
			Parts: []part{
				{InlineData: &inlineData{
					MimeType: img.MimeType,
					Data:     base64.StdEncoding.EncodeToString(img.Data),
				}},
				{Text: prompt},
			},
		}},
	}

	payload, err := json.Marshal(body)
	if err != nil {
		return nil, &analysis.AnalysisFailedError{Cause: "failed to marshal request", Err: err}
	}

	url := fmt.Sprintf("%s/models/%s:generateContent", a.baseURL, a.model)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(payload))
	if err != nil {
		return nil, &analysis.AnalysisFailedError{Cause: "failed to create request", Err: err}
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("x-goog-api-key", a.apiKey)

	resp, err := a.client.Do(req)
	if err != nil {
		return nil, &analysis.AnalysisFailedError{Cause: "failed to call gemini", Err: err}
	}
	defer func() {
		if err := resp.Body.Close(); err != nil {
			slog.Error("failed to close gemini response body", "error", err)
		}
	}()

	if resp.StatusCode == http.StatusUnauthorized || resp.StatusCode == http.StatusForbidden {
		return nil, &analysis.AuthenticationError{Backend: "gemini"}
	}
	if resp.StatusCode != http.StatusOK {
		errBody, _ := io.ReadAll(resp.Body)
		return nil, &analysis.AnalysisFailedError{
			Cause: fmt.Sprintf("gemini returned status %d: %s", resp.StatusCode, errBody),
		}
	}

	var respBody response
	if err := json.NewDecoder(resp.Body).Decode(&respBody); err != nil {
		return nil, &analysis.AnalysisFailedError{Cause: "failed to decode response", Err: err}
	}

	var text string
	for _, cand := range respBody.Candidates {
		for _, p := range cand.Content.Parts {
			if p.Text != "" {
				text = p.Text
				break
			}
		}
		if text != "" {
			break
		}
	}

	return analysis.NewResult(text)
}
