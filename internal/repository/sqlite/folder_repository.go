package sqlite

import (
	"context"
	"database/sql"
	"errors"

	"github.com/lribeiro/flashdeck/internal/logger"
	"github.com/lribeiro/flashdeck/internal/models"
	"github.com/lribeiro/flashdeck/internal/repository"
)

type folderRepository struct {
	db *sql.DB
}

// NewFolderRepository creates a new FolderRepository implementation
func NewFolderRepository(db *sql.DB) repository.FolderRepository {
	return &folderRepository{db: db}
}

func (r *folderRepository) Insert(ctx context.Context, folder models.Folder) error {
	log := logger.FromContext(ctx).WithPrefix("folder_repo")
	log.Debug("inserting folder: id=%s, name=%s", folder.ID, folder.Name)

	_, err := r.db.ExecContext(ctx, `
INSERT INTO folders (id, name, created_at) VALUES (?, ?, ?)
`, folder.ID, folder.Name, folder.CreatedAt)
	if err != nil {
		log.Error("failed to insert folder: %v", err)
	}
	return err
}

func (r *folderRepository) Get(ctx context.Context, id string) (*models.Folder, error) {
	log := logger.FromContext(ctx).WithPrefix("folder_repo")

	var f models.Folder
	err := r.db.QueryRowContext(ctx, `
SELECT id, name, created_at FROM folders WHERE id = ?
`, id).Scan(&f.ID, &f.Name, &f.CreatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		log.Debug("folder not found: id=%s", id)
		return nil, nil
	}
	if err != nil {
		log.Error("failed to get folder: %v", err)
		return nil, err
	}
	return &f, nil
}

func (r *folderRepository) List(ctx context.Context) ([]models.Folder, error) {
	log := logger.FromContext(ctx).WithPrefix("folder_repo")

	rows, err := r.db.QueryContext(ctx, `SELECT id, name, created_at FROM folders ORDER BY name`)
	if err != nil {
		log.Error("failed to list folders: %v", err)
		return nil, err
	}
	defer rows.Close()

	var folders []models.Folder
	for rows.Next() {
		var f models.Folder
		if err := rows.Scan(&f.ID, &f.Name, &f.CreatedAt); err != nil {
			log.Error("failed to scan folder row: %v", err)
			return nil, err
		}
		folders = append(folders, f)
	}
	return folders, rows.Err()
}

// Rename updates the folder and fans the new name out to every deck that
// referenced the old one.
func (r *folderRepository) Rename(ctx context.Context, id string, name string) error {
	log := logger.FromContext(ctx).WithPrefix("folder_repo")
	log.Debug("renaming folder: id=%s, name=%s", id, name)

	return tx(ctx, r.db, func(t *sql.Tx) error {
		var oldName string
		err := t.QueryRowContext(ctx, `SELECT name FROM folders WHERE id = ?`, id).Scan(&oldName)
		if err != nil {
			return err
		}
		if _, err := t.ExecContext(ctx, `UPDATE folders SET name = ? WHERE id = ?`, name, id); err != nil {
			log.Error("failed to rename folder: %v", err)
			return err
		}
		_, err = t.ExecContext(ctx, `UPDATE decks SET folder = ? WHERE folder = ?`, name, oldName)
		if err != nil {
			log.Error("failed to move decks to renamed folder: %v", err)
		}
		return err
	})
}

// Delete removes the folder; decks inside it are kept and become unfiled.
func (r *folderRepository) Delete(ctx context.Context, id string) error {
	log := logger.FromContext(ctx).WithPrefix("folder_repo")
	log.Debug("deleting folder: id=%s", id)

	return tx(ctx, r.db, func(t *sql.Tx) error {
		var name string
		err := t.QueryRowContext(ctx, `SELECT name FROM folders WHERE id = ?`, id).Scan(&name)
		if err != nil {
			return err
		}
		if _, err := t.ExecContext(ctx, `UPDATE decks SET folder = '' WHERE folder = ?`, name); err != nil {
			log.Error("failed to unfile decks: %v", err)
			return err
		}
		_, err = t.ExecContext(ctx, `DELETE FROM folders WHERE id = ?`, id)
		if err != nil {
			log.Error("failed to delete folder: %v", err)
		}
		return err
	})
}
