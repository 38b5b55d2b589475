package api

import (
	"encoding/json"
	"net/http"

	"github.com/go-playground/validator/v10"

	"github.com/lribeiro/flashdeck/internal/db"
	"github.com/lribeiro/flashdeck/internal/errors"
	"github.com/lribeiro/flashdeck/internal/services"
)

type Server struct {
	DB           *db.DB
	Decks        services.DeckService
	Folders      services.FolderService
	Study        services.StudyService
	Stats        services.StatsService
	Settings     services.SettingsService
	ActivityDays int

	validate *validator.Validate
}

func (s *Server) validator() *validator.Validate {
	if s.validate == nil {
		s.validate = validator.New()
	}
	return s.validate
}

// writeJSON encodes v with the given status. Encoding failures are logged by
// the middleware via the wrapped writer; nothing more can be sent by then.
func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

// decodeJSON decodes the request body into v and runs struct validation.
func (s *Server) decodeJSON(r *http.Request, v any) error {
	dec := json.NewDecoder(r.Body)
	dec.DisallowUnknownFields()
	if err := dec.Decode(v); err != nil {
		return errors.NewBadRequestError("invalid JSON body: " + err.Error())
	}
	if err := s.validator().Struct(v); err != nil {
		if verrs, ok := err.(validator.ValidationErrors); ok && len(verrs) > 0 {
			fe := verrs[0]
			return errors.NewValidationError(fe.Field(), "failed rule "+fe.Tag())
		}
		return errors.NewBadRequestError(err.Error())
	}
	return nil
}
