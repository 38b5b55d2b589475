package api

import (
	"net/http"

	"github.com/lribeiro/flashdeck/internal/services"
)

func (s *Server) handleGetSettings(w http.ResponseWriter, r *http.Request) {
	settings, err := s.Settings.Get(r.Context())
	if err != nil {
		handleError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, settings)
}

func (s *Server) handleUpdateSettings(w http.ResponseWriter, r *http.Request) {
	var input services.UpdateSettingsInput
	if err := s.decodeJSON(r, &input); err != nil {
		handleError(w, r, err)
		return
	}
	settings, err := s.Settings.Update(r.Context(), input)
	if err != nil {
		handleError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, settings)
}
