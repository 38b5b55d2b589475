package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"
)

type folderInput struct {
	Name string `json:"name" validate:"required"`
}

func (s *Server) handleListFolders(w http.ResponseWriter, r *http.Request) {
	folders, err := s.Folders.ListFolders(r.Context())
	if err != nil {
		handleError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"folders": folders})
}

func (s *Server) handleCreateFolder(w http.ResponseWriter, r *http.Request) {
	var input folderInput
	if err := s.decodeJSON(r, &input); err != nil {
		handleError(w, r, err)
		return
	}
	folder, err := s.Folders.CreateFolder(r.Context(), input.Name)
	if err != nil {
		handleError(w, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, folder)
}

func (s *Server) handleRenameFolder(w http.ResponseWriter, r *http.Request) {
	var input folderInput
	if err := s.decodeJSON(r, &input); err != nil {
		handleError(w, r, err)
		return
	}
	folder, err := s.Folders.RenameFolder(r.Context(), chi.URLParam(r, "id"), input.Name)
	if err != nil {
		handleError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, folder)
}

func (s *Server) handleDeleteFolder(w http.ResponseWriter, r *http.Request) {
	if err := s.Folders.DeleteFolder(r.Context(), chi.URLParam(r, "id")); err != nil {
		handleError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
