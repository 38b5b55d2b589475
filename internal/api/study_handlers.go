package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/lribeiro/flashdeck/internal/errors"
	"github.com/lribeiro/flashdeck/internal/logger"
	"github.com/lribeiro/flashdeck/internal/models"
	"github.com/lribeiro/flashdeck/internal/study"
)

func (s *Server) handleStartStudy(w http.ResponseWriter, r *http.Request) {
	log := logger.FromContext(r.Context())

	var input struct {
		DeckID string `json:"deck_id" validate:"required"`
		Mode   string `json:"mode"`
	}
	if err := s.decodeJSON(r, &input); err != nil {
		handleError(w, r, err)
		return
	}

	mode, err := study.ParseMode(input.Mode)
	if err != nil {
		handleError(w, r, errors.NewValidationError("mode", err.Error()))
		return
	}

	log.Debug("start study request: deck_id=%s, mode=%s", input.DeckID, mode)
	result, err := s.Study.StartStudy(r.Context(), input.DeckID, mode)
	if err != nil {
		handleError(w, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, result)
}

func (s *Server) handleStudyView(w http.ResponseWriter, r *http.Request) {
	view, err := s.Study.View(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		handleError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, view)
}

func (s *Server) handleFlip(w http.ResponseWriter, r *http.Request) {
	view, err := s.Study.Flip(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		handleError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, view)
}

func (s *Server) handleAnswer(w http.ResponseWriter, r *http.Request) {
	var input struct {
		Answer string `json:"answer"`
	}
	if err := s.decodeJSON(r, &input); err != nil {
		handleError(w, r, err)
		return
	}
	result, err := s.Study.Answer(r.Context(), chi.URLParam(r, "id"), input.Answer)
	if err != nil {
		handleError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, result)
}

func (s *Server) handleRate(w http.ResponseWriter, r *http.Request) {
	var input struct {
		Rating int `json:"rating" validate:"required,min=1,max=4"`
	}
	if err := s.decodeJSON(r, &input); err != nil {
		handleError(w, r, err)
		return
	}
	result, err := s.Study.Rate(r.Context(), chi.URLParam(r, "id"), models.Rating(input.Rating))
	if err != nil {
		handleError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, result)
}

func (s *Server) handleNext(w http.ResponseWriter, r *http.Request) {
	view, err := s.Study.Next(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		handleError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, view)
}

func (s *Server) handlePrevious(w http.ResponseWriter, r *http.Request) {
	view, err := s.Study.Previous(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		handleError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, view)
}
