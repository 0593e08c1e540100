package web

import "net/http"

func (s *Server) handleIndex(w http.ResponseWriter, r *http.Request) {
	if err := s.renderPage(w, nil, "base.html", "pages/index.html"); err != nil {
		s.logger.Error("render index failed", "error", err)
	}
}
