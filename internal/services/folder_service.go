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

// FolderService groups decks into named folders. Decks reference folders by
// name, so rename and delete propagate to the decks that use them.
type FolderService interface {
	CreateFolder(ctx context.Context, name string) (*models.Folder, error)
	ListFolders(ctx context.Context) ([]models.Folder, error)
	RenameFolder(ctx context.Context, id, name string) (*models.Folder, error)
	DeleteFolder(ctx context.Context, id string) error
}

type folderService struct {
	folders repository.FolderRepository
	clk     clock.Clock
}

// NewFolderService creates a new FolderService
func NewFolderService(folders repository.FolderRepository, clk clock.Clock) FolderService {
	return &folderService{folders: folders, clk: clk}
}

func (s *folderService) CreateFolder(ctx context.Context, name string) (*models.Folder, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, errors.NewValidationError("name", "is required")
	}

	existing, err := s.folders.List(ctx)
	if err != nil {
		return nil, errors.NewInternalError(err)
	}
	for _, f := range existing {
		if strings.EqualFold(f.Name, name) {
			return nil, errors.NewConflictError("a folder with that name already exists")
		}
	}

	folder := models.Folder{
		ID:        uuid.NewString(),
		Name:      name,
		CreatedAt: s.clk.Now(),
	}
	if err := s.folders.Insert(ctx, folder); err != nil {
		return nil, errors.NewInternalError(err)
	}
	logger.FromContext(ctx).Info("folder created: id=%s, name=%s", folder.ID, folder.Name)
	return &folder, nil
}

func (s *folderService) ListFolders(ctx context.Context) ([]models.Folder, error) {
	folders, err := s.folders.List(ctx)
	if err != nil {
		return nil, errors.NewInternalError(err)
	}
	return folders, nil
}

func (s *folderService) RenameFolder(ctx context.Context, id, name string) (*models.Folder, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, errors.NewValidationError("name", "is required")
	}

	folder, err := s.folders.Get(ctx, id)
	if err != nil {
		return nil, errors.NewInternalError(err)
	}
	if folder == nil {
		return nil, errors.NewNotFoundError("folder", id)
	}

	if err := s.folders.Rename(ctx, id, name); err != nil {
		return nil, errors.NewInternalError(err)
	}
	folder.Name = name
	logger.FromContext(ctx).Info("folder renamed: id=%s, name=%s", id, name)
	return folder, nil
}

// DeleteFolder removes the folder; its decks survive and simply become
// unfiled.
func (s *folderService) DeleteFolder(ctx context.Context, id string) error {
	folder, err := s.folders.Get(ctx, id)
	if err != nil {
		return errors.NewInternalError(err)
	}
	if folder == nil {
		return errors.NewNotFoundError("folder", id)
	}
	if err := s.folders.Delete(ctx, id); err != nil {
		return errors.NewInternalError(err)
	}
	logger.FromContext(ctx).Info("folder deleted: id=%s", id)
	return nil
}
