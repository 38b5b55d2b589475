package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/lribeiro/flashdeck/internal/logger"
	"github.com/lribeiro/flashdeck/internal/models"
	"github.com/lribeiro/flashdeck/internal/services"
)

func (s *Server) handleListDecks(w http.ResponseWriter, r *http.Request) {
	filter := models.DeckFilter{
		Folder:   r.URL.Query().Get("folder"),
		Language: r.URL.Query().Get("language"),
	}
	decks, err := s.Decks.ListDecks(r.Context(), filter)
	if err != nil {
		handleError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"decks": decks})
}

func (s *Server) handleCreateDeck(w http.ResponseWriter, r *http.Request) {
	var input services.CreateDeckInput
	if err := s.decodeJSON(r, &input); err != nil {
		handleError(w, r, err)
		return
	}
	deck, err := s.Decks.CreateDeck(r.Context(), input)
	if err != nil {
		handleError(w, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, deck)
}

func (s *Server) handleGetDeck(w http.ResponseWriter, r *http.Request) {
	deck, err := s.Decks.GetDeck(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		handleError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, deck)
}

func (s *Server) handleDeleteDeck(w http.ResponseWriter, r *http.Request) {
	if err := s.Decks.DeleteDeck(r.Context(), chi.URLParam(r, "id")); err != nil {
		handleError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) handleAddCards(w http.ResponseWriter, r *http.Request) {
	var input struct {
		Cards     []services.CardInput `json:"cards" validate:"dive"`
		CardsText string               `json:"cards_text"`
	}
	if err := s.decodeJSON(r, &input); err != nil {
		handleError(w, r, err)
		return
	}

	cards := input.Cards
	if len(cards) == 0 && input.CardsText != "" {
		parsed, err := services.ParseCardLines(input.CardsText)
		if err != nil {
			handleError(w, r, err)
			return
		}
		cards = parsed
	}

	created, err := s.Decks.AddCards(r.Context(), chi.URLParam(r, "id"), cards)
	if err != nil {
		handleError(w, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, map[string]any{"cards": created})
}

func (s *Server) handleDeleteCard(w http.ResponseWriter, r *http.Request) {
	deckID := chi.URLParam(r, "id")
	cardID := chi.URLParam(r, "cardID")
	if err := s.Decks.DeleteCard(r.Context(), deckID, cardID); err != nil {
		handleError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) handleExportDeck(w http.ResponseWriter, r *http.Request) {
	export, err := s.Decks.ExportDeck(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		handleError(w, r, err)
		return
	}
	w.Header().Set("Content-Disposition", `attachment; filename="deck.json"`)
	writeJSON(w, http.StatusOK, export)
}

func (s *Server) handleImportDeck(w http.ResponseWriter, r *http.Request) {
	log := logger.FromContext(r.Context())

	var export services.DeckExport
	if err := s.decodeJSON(r, &export); err != nil {
		handleError(w, r, err)
		return
	}
	log.Debug("importing deck: name=%s, cards=%d", export.Name, len(export.Cards))

	deck, err := s.Decks.ImportDeck(r.Context(), export)
	if err != nil {
		handleError(w, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, deck)
}
