package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/Masterminds/squirrel"

	"github.com/lribeiro/flashdeck/internal/logger"
	"github.com/lribeiro/flashdeck/internal/models"
	"github.com/lribeiro/flashdeck/internal/repository"
)

var sqlBuilder = squirrel.StatementBuilder.PlaceholderFormat(squirrel.Question)

type deckRepository struct {
	db *sql.DB
}

// NewDeckRepository creates a new DeckRepository implementation
func NewDeckRepository(db *sql.DB) repository.DeckRepository {
	return &deckRepository{db: db}
}

func (r *deckRepository) Insert(ctx context.Context, deck models.Deck) error {
	log := logger.FromContext(ctx).WithPrefix("deck_repo")
	log.Debug("inserting deck: id=%s, name=%s, cards=%d", deck.ID, deck.Name, len(deck.Cards))

	return tx(ctx, r.db, func(t *sql.Tx) error {
		_, err := t.ExecContext(ctx, `
INSERT INTO decks (id, name, description, language, folder, created_at)
VALUES (?, ?, ?, ?, ?, ?)
`, deck.ID, deck.Name, deck.Description, deck.Language, deck.Folder, deck.CreatedAt)
		if err != nil {
			log.Error("failed to insert deck: %v", err)
			return err
		}
		for _, c := range deck.Cards {
			if err := insertCard(ctx, t, deck.ID, c); err != nil {
				log.Error("failed to insert card %s: %v", c.ID, err)
				return err
			}
		}
		return nil
	})
}

func insertCard(ctx context.Context, t *sql.Tx, deckID string, c models.Card) error {
	var next any
	if c.NextReview != nil {
		next = *c.NextReview
	}
	_, err := t.ExecContext(ctx, `
INSERT INTO cards (id, deck_id, front, back, level, next_review, created_at)
VALUES (?, ?, ?, ?, ?, ?, ?)
`, c.ID, deckID, c.Front, c.Back, c.Level, next, c.CreatedAt)
	return err
}

func (r *deckRepository) InsertCards(ctx context.Context, deckID string, cards []models.Card) error {
	log := logger.FromContext(ctx).WithPrefix("deck_repo")
	log.Debug("inserting %d cards into deck %s", len(cards), deckID)

	return tx(ctx, r.db, func(t *sql.Tx) error {
		for _, c := range cards {
			if err := insertCard(ctx, t, deckID, c); err != nil {
				log.Error("failed to insert card %s: %v", c.ID, err)
				return err
			}
		}
		return nil
	})
}

func (r *deckRepository) Get(ctx context.Context, id string) (*models.Deck, error) {
	log := logger.FromContext(ctx).WithPrefix("deck_repo")
	log.Debug("getting deck: id=%s", id)

	var d models.Deck
	err := r.db.QueryRowContext(ctx, `
SELECT id, name, description, language, folder, created_at
FROM decks
WHERE id = ?
`, id).Scan(&d.ID, &d.Name, &d.Description, &d.Language, &d.Folder, &d.CreatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		log.Debug("deck not found: id=%s", id)
		return nil, nil
	}
	if err != nil {
		log.Error("failed to get deck: %v", err)
		return nil, err
	}

	cards, err := r.deckCards(ctx, id)
	if err != nil {
		return nil, err
	}
	d.Cards = cards
	log.Debug("deck found: name=%s, cards=%d", d.Name, len(d.Cards))
	return &d, nil
}

func (r *deckRepository) deckCards(ctx context.Context, deckID string) ([]models.Card, error) {
	log := logger.FromContext(ctx).WithPrefix("deck_repo")

	rows, err := r.db.QueryContext(ctx, `
SELECT id, deck_id, front, back, level, next_review, created_at
FROM cards
WHERE deck_id = ?
ORDER BY created_at, id
`, deckID)
	if err != nil {
		log.Error("failed to query cards: %v", err)
		return nil, err
	}
	defer rows.Close()

	var cards []models.Card
	byID := map[string]int{}
	for rows.Next() {
		var c models.Card
		var next sql.NullTime
		if err := rows.Scan(&c.ID, &c.DeckID, &c.Front, &c.Back, &c.Level, &next, &c.CreatedAt); err != nil {
			log.Error("failed to scan card row: %v", err)
			return nil, err
		}
		if next.Valid {
			t := next.Time
			c.NextReview = &t
		}
		byID[c.ID] = len(cards)
		cards = append(cards, c)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	// Attach review histories in one pass.
	hrows, err := r.db.QueryContext(ctx, `
SELECT r.card_id, r.rating, r.reviewed_at
FROM reviews r
JOIN cards c ON c.id = r.card_id
WHERE c.deck_id = ?
ORDER BY r.id
`, deckID)
	if err != nil {
		log.Error("failed to query reviews: %v", err)
		return nil, err
	}
	defer hrows.Close()

	for hrows.Next() {
		var cardID string
		var entry models.ReviewEntry
		if err := hrows.Scan(&cardID, &entry.Rating, &entry.Date); err != nil {
			log.Error("failed to scan review row: %v", err)
			return nil, err
		}
		if i, ok := byID[cardID]; ok {
			cards[i].History = append(cards[i].History, entry)
		}
	}
	return cards, hrows.Err()
}

func (r *deckRepository) List(ctx context.Context, filter models.DeckFilter, now time.Time) ([]models.DeckSummary, error) {
	log := logger.FromContext(ctx).WithPrefix("deck_repo")
	log.Debug("listing decks: folder=%s, language=%s", filter.Folder, filter.Language)

	query := sqlBuilder.Select(
		"d.id", "d.name", "d.description", "d.language", "d.folder", "d.created_at",
		"COUNT(c.id) AS card_count",
		"COALESCE(SUM(CASE WHEN c.next_review IS NULL OR c.next_review <= ? THEN 1 ELSE 0 END), 0) AS due_count",
		"COALESCE(SUM(CASE WHEN NOT EXISTS (SELECT 1 FROM reviews rv WHERE rv.card_id = c.id) THEN 1 ELSE 0 END), 0) AS new_count",
	).From("decks d").
		LeftJoin("cards c ON c.deck_id = d.id")

	if filter.Folder != "" {
		query = query.Where(squirrel.Eq{"d.folder": filter.Folder})
	}
	if filter.Language != "" {
		query = query.Where(squirrel.Eq{"d.language": filter.Language})
	}
	query = query.GroupBy("d.id").OrderBy("d.created_at DESC")

	sqlStr, args, err := query.ToSql()
	if err != nil {
		log.Error("failed to build query: %v", err)
		return nil, err
	}
	// The due-count placeholder in the SELECT list binds first.
	args = append([]any{now}, args...)

	rows, err := r.db.QueryContext(ctx, sqlStr, args...)
	if err != nil {
		log.Error("failed to list decks: %v", err)
		return nil, err
	}
	defer rows.Close()

	var decks []models.DeckSummary
	for rows.Next() {
		var d models.DeckSummary
		if err := rows.Scan(&d.ID, &d.Name, &d.Description, &d.Language, &d.Folder, &d.CreatedAt,
			&d.CardCount, &d.DueCount, &d.NewCount); err != nil {
			log.Error("failed to scan deck row: %v", err)
			return nil, err
		}
		decks = append(decks, d)
	}
	log.Debug("found %d decks", len(decks))
	return decks, rows.Err()
}

func (r *deckRepository) Delete(ctx context.Context, id string) error {
	log := logger.FromContext(ctx).WithPrefix("deck_repo")
	log.Debug("deleting deck: id=%s", id)

	res, err := r.db.ExecContext(ctx, `DELETE FROM decks WHERE id = ?`, id)
	if err != nil {
		log.Error("failed to delete deck: %v", err)
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return sql.ErrNoRows
	}
	return nil
}

func (r *deckRepository) GetCard(ctx context.Context, cardID string) (*models.Card, error) {
	log := logger.FromContext(ctx).WithPrefix("deck_repo")
	log.Debug("getting card: id=%s", cardID)

	var c models.Card
	var next sql.NullTime
	err := r.db.QueryRowContext(ctx, `
SELECT id, deck_id, front, back, level, next_review, created_at
FROM cards
WHERE id = ?
`, cardID).Scan(&c.ID, &c.DeckID, &c.Front, &c.Back, &c.Level, &next, &c.CreatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		log.Debug("card not found: id=%s", cardID)
		return nil, nil
	}
	if err != nil {
		log.Error("failed to get card: %v", err)
		return nil, err
	}
	if next.Valid {
		t := next.Time
		c.NextReview = &t
	}

	rows, err := r.db.QueryContext(ctx, `
SELECT rating, reviewed_at FROM reviews WHERE card_id = ? ORDER BY id
`, cardID)
	if err != nil {
		log.Error("failed to query card history: %v", err)
		return nil, err
	}
	defer rows.Close()
	for rows.Next() {
		var entry models.ReviewEntry
		if err := rows.Scan(&entry.Rating, &entry.Date); err != nil {
			log.Error("failed to scan review row: %v", err)
			return nil, err
		}
		c.History = append(c.History, entry)
	}
	return &c, rows.Err()
}

func (r *deckRepository) SaveCard(ctx context.Context, card models.Card, entry models.ReviewEntry) error {
	log := logger.FromContext(ctx).WithPrefix("deck_repo")
	log.Debug("saving card: id=%s, level=%d", card.ID, card.Level)

	var next any
	if card.NextReview != nil {
		next = *card.NextReview
	}
	return tx(ctx, r.db, func(t *sql.Tx) error {
		res, err := t.ExecContext(ctx, `
UPDATE cards SET level = ?, next_review = ? WHERE id = ?
`, card.Level, next, card.ID)
		if err != nil {
			log.Error("failed to update card: %v", err)
			return err
		}
		if n, _ := res.RowsAffected(); n == 0 {
			return sql.ErrNoRows
		}
		_, err = t.ExecContext(ctx, `
INSERT INTO reviews (card_id, rating, reviewed_at) VALUES (?, ?, ?)
`, card.ID, entry.Rating, entry.Date)
		if err != nil {
			log.Error("failed to append review: %v", err)
		}
		return err
	})
}

func (r *deckRepository) DeleteCard(ctx context.Context, cardID string) error {
	log := logger.FromContext(ctx).WithPrefix("deck_repo")
	log.Debug("deleting card: id=%s", cardID)

	res, err := r.db.ExecContext(ctx, `DELETE FROM cards WHERE id = ?`, cardID)
	if err != nil {
		log.Error("failed to delete card: %v", err)
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return sql.ErrNoRows
	}
	return nil
}
