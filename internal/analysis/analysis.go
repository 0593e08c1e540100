package analysis

import (
	"context"
	"fmt"

	"github.com/rafiqdevhub/caloriesmart/internal/intake"
)

// Analyzer sends one prompt + image to a multimodal model and returns the
// generated text. One outbound call per invocation, no retries, no state.
type Analyzer interface {
	Analyze(ctx context.Context, img *intake.UploadedImage, prompt string) (*Result, error)
}

// Result is a successful model response. RawText is guaranteed non-empty;
// Report is the best-effort structured view of it and may be nil when the
// model ignored the requested format.
type Result struct {
	RawText string
	Report  *Report
}

// AuthenticationError means the vendor rejected the credential. Distinct from
// a missing credential, which is caught at startup before any network call.
type AuthenticationError struct {
	Backend string
}

func (e *AuthenticationError) Error() string {
	return fmt.Sprintf("%s rejected the API key", e.Backend)
}

// AnalysisFailedError covers every service-side failure: timeout, quota,
// malformed or empty response, model refusal. Cause is human-readable and
// shown to the user.
type AnalysisFailedError struct {
	Cause string
	Err   error
}

func (e *AnalysisFailedError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("analysis failed: %s: %v", e.Cause, e.Err)
	}
	return "analysis failed: " + e.Cause
}

func (e *AnalysisFailedError) Unwrap() error {
	return e.Err
}

// NewResult validates model output and wraps it as a Result. Empty output is
// a failure, never a success.
func NewResult(raw string) (*Result, error) {
	if raw == "" {
		return nil, &AnalysisFailedError{Cause: "model returned empty response"}
	}
	return &Result{RawText: raw, Report: ParseReport(raw)}, nil
}
