package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"
)

func (s *Server) Routes() http.Handler {
	r := chi.NewRouter()
	r.Use(recoveryMiddleware)
	r.Use(loggingMiddleware)
	r.Use(securityHeadersMiddleware)

	r.Get("/health", s.handleHealth)
	r.Get("/ready", s.handleReady)

	r.Route("/decks", func(r chi.Router) {
		r.Get("/", s.handleListDecks)
		r.Post("/", s.handleCreateDeck)
		r.Post("/import", s.handleImportDeck)
		r.Get("/{id}", s.handleGetDeck)
		r.Delete("/{id}", s.handleDeleteDeck)
		r.Get("/{id}/export", s.handleExportDeck)
		r.Post("/{id}/cards", s.handleAddCards)
		r.Delete("/{id}/cards/{cardID}", s.handleDeleteCard)
	})

	r.Route("/folders", func(r chi.Router) {
		r.Get("/", s.handleListFolders)
		r.Post("/", s.handleCreateFolder)
		r.Post("/{id}/rename", s.handleRenameFolder)
		r.Delete("/{id}", s.handleDeleteFolder)
	})

	r.Route("/study", func(r chi.Router) {
		r.Post("/", s.handleStartStudy)
		r.Get("/{id}", s.handleStudyView)
		r.Post("/{id}/flip", s.handleFlip)
		r.Post("/{id}/answer", s.handleAnswer)
		r.Post("/{id}/rate", s.handleRate)
		r.Post("/{id}/next", s.handleNext)
		r.Post("/{id}/previous", s.handlePrevious)
	})

	r.Get("/stats", s.handleStats)
	r.Get("/stats/activity", s.handleActivity)

	r.Get("/settings", s.handleGetSettings)
	r.Put("/settings", s.handleUpdateSettings)

	return r
}
