package services

import (
	"context"
	"strings"

	"github.com/google/uuid"

	"github.com/lribeiro/flashdeck/internal/clock"
	"github.com/lribeiro/flashdeck/internal/errors"
	"github.com/lribeiro/flashdeck/internal/logger"
	"github.com/lribeiro/flashdeck/internal/models"
	"github.com/lribeiro/flashdeck/internal/repository"
)

// CardInput is one front/back pair supplied when authoring or importing a
// deck.
type CardInput struct {
	Front string `json:"front" validate:"required"`
	Back  string `json:"back" validate:"required"`
}

// CreateDeckInput carries everything needed to author a deck. Cards may be
// given as explicit pairs or as CardsText, alternating front/back lines the
// way the quick-entry form works.
type CreateDeckInput struct {
	Name        string      `json:"name" validate:"required"`
	Description string      `json:"description"`
	Language    string      `json:"language"`
	Folder      string      `json:"folder"`
	Cards       []CardInput `json:"cards" validate:"dive"`
	CardsText   string      `json:"cards_text"`
}

// DeckExport is the portable form of a deck, used by export and import.
// Scheduling state travels with the cards so progress survives a move.
type DeckExport struct {
	Name        string        `json:"name" validate:"required"`
	Description string        `json:"description"`
	Language    string        `json:"language"`
	Folder      string        `json:"folder"`
	Cards       []models.Card `json:"cards"`
}

// DeckService handles deck and card authoring
type DeckService interface {
	CreateDeck(ctx context.Context, input CreateDeckInput) (*models.Deck, error)
	GetDeck(ctx context.Context, id string) (*models.Deck, error)
	ListDecks(ctx context.Context, filter models.DeckFilter) ([]models.DeckSummary, error)
	DeleteDeck(ctx context.Context, id string) error
	AddCards(ctx context.Context, deckID string, cards []CardInput) ([]models.Card, error)
	DeleteCard(ctx context.Context, deckID, cardID string) error
	ExportDeck(ctx context.Context, id string) (*DeckExport, error)
	ImportDeck(ctx context.Context, export DeckExport) (*models.Deck, error)
}

type deckService struct {
	decks repository.DeckRepository
	clk   clock.Clock
}

// NewDeckService creates a new DeckService
func NewDeckService(decks repository.DeckRepository, clk clock.Clock) DeckService {
	return &deckService{decks: decks, clk: clk}
}

// ParseCardLines turns alternating front/back lines into card pairs. Blank
// lines are skipped; an odd number of remaining lines is a caller error.
func ParseCardLines(text string) ([]CardInput, error) {
	var lines []string
	for _, line := range strings.Split(text, "\n") {
		if s := strings.TrimSpace(line); s != "" {
			lines = append(lines, s)
		}
	}
	if len(lines) == 0 {
		return nil, errors.NewValidationError("cards_text", "at least one front/back pair is required")
	}
	if len(lines)%2 != 0 {
		return nil, errors.NewValidationError("cards_text", "lines must come in front/back pairs")
	}
	pairs := make([]CardInput, 0, len(lines)/2)
	for i := 0; i < len(lines); i += 2 {
		pairs = append(pairs, CardInput{Front: lines[i], Back: lines[i+1]})
	}
	return pairs, nil
}

func (s *deckService) buildCards(deckID string, inputs []CardInput) ([]models.Card, error) {
	now := s.clk.Now()
	cards := make([]models.Card, 0, len(inputs))
	for _, in := range inputs {
		front := strings.TrimSpace(in.Front)
		back := strings.TrimSpace(in.Back)
		if front == "" || back == "" {
			return nil, errors.NewValidationError("cards", "front and back are both required")
		}
		cards = append(cards, models.Card{
			ID:        uuid.NewString(),
			DeckID:    deckID,
			Front:     front,
			Back:      back,
			CreatedAt: now,
		})
	}
	return cards, nil
}

func (s *deckService) CreateDeck(ctx context.Context, input CreateDeckInput) (*models.Deck, error) {
	log := logger.FromContext(ctx)
	log.Debug("creating deck: name=%s", input.Name)

	if strings.TrimSpace(input.Name) == "" {
		return nil, errors.NewValidationError("name", "is required")
	}

	inputs := input.Cards
	if len(inputs) == 0 && input.CardsText != "" {
		parsed, err := ParseCardLines(input.CardsText)
		if err != nil {
			return nil, err
		}
		inputs = parsed
	}
	if len(inputs) == 0 {
		return nil, errors.NewValidationError("cards", "a deck needs at least one card")
	}

	deckID := uuid.NewString()
	cards, err := s.buildCards(deckID, inputs)
	if err != nil {
		return nil, err
	}

	deck := models.Deck{
		ID:          deckID,
		Name:        strings.TrimSpace(input.Name),
		Description: strings.TrimSpace(input.Description),
		Language:    strings.TrimSpace(input.Language),
		Folder:      strings.TrimSpace(input.Folder),
		Cards:       cards,
		CreatedAt:   s.clk.Now(),
	}

	if err := s.decks.Insert(ctx, deck); err != nil {
		log.Error("failed to insert deck: %v", err)
		return nil, errors.NewInternalError(err)
	}

	log.Info("deck created: id=%s, name=%s, cards=%d", deck.ID, deck.Name, len(deck.Cards))
	return &deck, nil
}

func (s *deckService) GetDeck(ctx context.Context, id string) (*models.Deck, error) {
	deck, err := s.decks.Get(ctx, id)
	if err != nil {
		return nil, errors.NewInternalError(err)
	}
	if deck == nil {
		return nil, errors.NewNotFoundError("deck", id)
	}
	return deck, nil
}

func (s *deckService) ListDecks(ctx context.Context, filter models.DeckFilter) ([]models.DeckSummary, error) {
	decks, err := s.decks.List(ctx, filter, s.clk.Now())
	if err != nil {
		return nil, errors.NewInternalError(err)
	}
	return decks, nil
}

func (s *deckService) DeleteDeck(ctx context.Context, id string) error {
	log := logger.FromContext(ctx)
	log.Debug("deleting deck: id=%s", id)

	if err := s.decks.Delete(ctx, id); err != nil {
		if isNoRows(err) {
			return errors.NewNotFoundError("deck", id)
		}
		return errors.NewInternalError(err)
	}
	log.Info("deck deleted: id=%s", id)
	return nil
}

func (s *deckService) AddCards(ctx context.Context, deckID string, inputs []CardInput) ([]models.Card, error) {
	log := logger.FromContext(ctx)

	if len(inputs) == 0 {
		return nil, errors.NewValidationError("cards", "at least one card is required")
	}
	deck, err := s.decks.Get(ctx, deckID)
	if err != nil {
		return nil, errors.NewInternalError(err)
	}
	if deck == nil {
		return nil, errors.NewNotFoundError("deck", deckID)
	}

	cards, err := s.buildCards(deckID, inputs)
	if err != nil {
		return nil, err
	}
	if err := s.decks.InsertCards(ctx, deckID, cards); err != nil {
		log.Error("failed to insert cards: %v", err)
		return nil, errors.NewInternalError(err)
	}
	log.Info("added %d cards to deck %s", len(cards), deckID)
	return cards, nil
}

func (s *deckService) DeleteCard(ctx context.Context, deckID, cardID string) error {
	card, err := s.decks.GetCard(ctx, cardID)
	if err != nil {
		return errors.NewInternalError(err)
	}
	if card == nil || card.DeckID != deckID {
		return errors.NewNotFoundError("card", cardID)
	}
	if err := s.decks.DeleteCard(ctx, cardID); err != nil {
		return errors.NewInternalError(err)
	}
	return nil
}

func (s *deckService) ExportDeck(ctx context.Context, id string) (*DeckExport, error) {
	deck, err := s.GetDeck(ctx, id)
	if err != nil {
		return nil, err
	}
	return &DeckExport{
		Name:        deck.Name,
		Description: deck.Description,
		Language:    deck.Language,
		Folder:      deck.Folder,
		Cards:       deck.Cards,
	}, nil
}

// ImportDeck recreates an exported deck under fresh ids, keeping each
// card's level, due date, and history.
func (s *deckService) ImportDeck(ctx context.Context, export DeckExport) (*models.Deck, error) {
	log := logger.FromContext(ctx)

	if strings.TrimSpace(export.Name) == "" {
		return nil, errors.NewValidationError("name", "is required")
	}
	if len(export.Cards) == 0 {
		return nil, errors.NewValidationError("cards", "a deck needs at least one card")
	}

	now := s.clk.Now()
	deckID := uuid.NewString()
	cards := make([]models.Card, 0, len(export.Cards))
	for _, c := range export.Cards {
		if strings.TrimSpace(c.Front) == "" || strings.TrimSpace(c.Back) == "" {
			return nil, errors.NewValidationError("cards", "front and back are both required")
		}
		c.ID = uuid.NewString()
		c.DeckID = deckID
		if c.CreatedAt.IsZero() {
			c.CreatedAt = now
		}
		cards = append(cards, c)
	}

	deck := models.Deck{
		ID:          deckID,
		Name:        strings.TrimSpace(export.Name),
		Description: export.Description,
		Language:    export.Language,
		Folder:      export.Folder,
		Cards:       cards,
		CreatedAt:   now,
	}
	if err := s.decks.Insert(ctx, deck); err != nil {
		log.Error("failed to import deck: %v", err)
		return nil, errors.NewInternalError(err)
	}

	// Imported histories arrive with the card payload but are stored as
	// review rows; replay them so the audit trail survives the move.
	for i := range deck.Cards {
		for _, entry := range deck.Cards[i].History {
			if err := s.decks.SaveCard(ctx, deck.Cards[i], entry); err != nil {
				log.Warn("failed to replay history for card %s: %v", deck.Cards[i].ID, err)
				break
			}
		}
	}

	log.Info("deck imported: id=%s, name=%s, cards=%d", deck.ID, deck.Name, len(deck.Cards))
	return &deck, nil
}
