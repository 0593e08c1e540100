package openai

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	openai "github.com/sashabaranov/go-openai"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rafiqdevhub/caloriesmart/internal/analysis"
	"github.com/rafiqdevhub/caloriesmart/internal/intake"
)

var testImage = &intake.UploadedImage{
	Data:     []byte{0x89, 0x50, 0x4E, 0x47},
	MimeType: "image/png",
}

func TestOpenAIAnalyze(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/chat/completions", r.URL.Path)
		assert.Equal(t, "Bearer sk-test", r.Header.Get("Authorization"))

		w.Header().Set("Content-Type", "application/json")
		resp := map[string]any{
			"id":     "chatcmpl-test",
			"object": "chat.completion",
			"model":  "gpt-4o",
			"choices": []map[string]any{
				{
					"index": 0,
					"message": map[string]any{
						"role":    "assistant",
						"content": "Identified Items:\n- Burger - 550 kcal\n\nTotal Calories: 550 kcal",
					},
					"finish_reason": "stop",
				},
			},
		}
		require.NoError(t, json.NewEncoder(w).Encode(resp))
	}))
	defer server.Close()

	analyzer := NewOpenAIAnalyzerWithBaseURL("sk-test", "gpt-4o", server.URL, time.Minute)

	result, err := analyzer.Analyze(context.Background(), testImage, "analyze this meal")
	require.NoError(t, err)
	assert.Contains(t, result.RawText, "Burger")
	require.NotNil(t, result.Report)
	assert.Equal(t, 550, result.Report.TotalCalories)
}

func TestOpenAIAnalyzeEmptyContent(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		resp := map[string]any{
			"id":     "chatcmpl-test",
			"object": "chat.completion",
			"model":  "gpt-4o",
			"choices": []map[string]any{
				{
					"index":         0,
					"message":       map[string]any{"role": "assistant", "content": ""},
					"finish_reason": "stop",
				},
			},
		}
		require.NoError(t, json.NewEncoder(w).Encode(resp))
	}))
	defer server.Close()

	analyzer := NewOpenAIAnalyzerWithBaseURL("sk-test", "gpt-4o", server.URL, time.Minute)

	_, err := analyzer.Analyze(context.Background(), testImage, "prompt")
	var failed *analysis.AnalysisFailedError
	require.ErrorAs(t, err, &failed)
}

func TestOpenAIAnalyzeAuthError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusUnauthorized)
		_, _ = w.Write([]byte(`{"error":{"message":"Incorrect API key provided","type":"invalid_request_error"}}`))
	}))
	defer server.Close()

	analyzer := NewOpenAIAnalyzerWithBaseURL("sk-bad", "gpt-4o", server.URL, time.Minute)

	_, err := analyzer.Analyze(context.Background(), testImage, "prompt")
	var authErr *analysis.AuthenticationError
	require.ErrorAs(t, err, &authErr)
	assert.Equal(t, "openai", authErr.Backend)
}

func TestMapErrQuota(t *testing.T) {
	err := mapErr(&openai.APIError{
		HTTPStatusCode: http.StatusTooManyRequests,
		Message:        "You exceeded your current quota",
	})

	var failed *analysis.AnalysisFailedError
	require.ErrorAs(t, err, &failed)
	assert.Contains(t, failed.Cause, "quota")
}

func TestMapErrTransport(t *testing.T) {
	err := mapErr(context.DeadlineExceeded)

	var failed *analysis.AnalysisFailedError
	require.ErrorAs(t, err, &failed)
	assert.ErrorIs(t, err, context.DeadlineExceeded)
}
