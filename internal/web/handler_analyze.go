package web

import (
	"errors"
	"io"
	"log/slog"
	"net/http"

	"github.com/rafiqdevhub/caloriesmart/internal/analysis"
	"github.com/rafiqdevhub/caloriesmart/internal/intake"
	"github.com/rafiqdevhub/caloriesmart/internal/logging"
)

// maxFormSize bounds the multipart form as a whole. Slightly above the intake
// image limit so oversized images reach intake and produce its error message
// instead of an opaque form parse failure.
const maxFormSize = intake.MaxImageBytes + 1<<20

// errorView is the data for the error partial.
type errorView struct {
	Message string
}

func (s *Server) handleAnalyze(w http.ResponseWriter, r *http.Request) {
	logger := logging.FromContext(r.Context(), s.logger)

	r.Body = http.MaxBytesReader(w, r.Body, maxFormSize)
	if err := r.ParseMultipartForm(maxFormSize); err != nil {
		s.renderError(w, http.StatusBadRequest, "Could not read the upload. Please try again with a smaller image.")
		return
	}

	file, _, err := r.FormFile("image")
	if err != nil {
		s.renderError(w, http.StatusBadRequest, "Please choose a food image first.")
		return
	}
	defer closeWithLog(file, "upload file", logger)

	imageData, err := io.ReadAll(file)
	if err != nil {
		logger.Error("read upload failed", "error", err)
		s.renderError(w, http.StatusInternalServerError, "Failed to read the uploaded file.")
		return
	}

	instructions := r.FormValue("instructions")

	result, err := s.service.Analyze(r.Context(), imageData, instructions)
	if err != nil {
		s.renderAnalysisError(w, logger, err)
		return
	}

	if err := s.renderPartial(w, http.StatusOK, "partials/result.html", "result", result); err != nil {
		logger.Error("render result failed", "error", err)
	}
}

// renderAnalysisError maps the error taxonomy to an HTTP status and a user
// facing message. Every failure produces a visible message; none are
// swallowed.
func (s *Server) renderAnalysisError(w http.ResponseWriter, logger *slog.Logger, err error) {
	var invalidImage *intake.InvalidImageError
	var authErr *analysis.AuthenticationError
	var failed *analysis.AnalysisFailedError

	switch {
	case errors.As(err, &invalidImage):
		s.renderError(w, http.StatusBadRequest, "That upload is not a usable image: "+invalidImage.Reason+". Please select a JPEG, PNG, or WebP photo.")
	case errors.As(err, &authErr):
		logger.Error("credential rejected", "error", err)
		s.renderError(w, http.StatusUnauthorized, "The AI service rejected the configured API key. Check the server credential.")
	case errors.As(err, &failed):
		logger.Error("analysis failed", "error", err)
		s.renderError(w, http.StatusBadGateway, "Analysis failed: "+failed.Cause+". You can try again.")
	default:
		logger.Error("unexpected analyze error", "error", err)
		s.renderError(w, http.StatusInternalServerError, "Something went wrong. Please try again.")
	}
}

func (s *Server) renderError(w http.ResponseWriter, status int, message string) {
	if err := s.renderPartial(w, status, "partials/error.html", "error", errorView{Message: message}); err != nil {
		s.logger.Error("render error partial failed", "error", err)
	}
}

// closeWithLog closes c and logs any error, using label to identify the resource.
func closeWithLog(c io.Closer, label string, logger *slog.Logger) {
	if err := c.Close(); err != nil {
		logger.Error("failed to close resource", "label", label, "error", err)
	}
}
