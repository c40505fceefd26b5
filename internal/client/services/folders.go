package services

import (
	"context"

	"github.com/cloudchest/cloudchest-cli/internal/client/events"
	"github.com/cloudchest/cloudchest-cli/internal/client/models"
	"github.com/cloudchest/cloudchest-cli/internal/client/repositories/folders"
	"github.com/cloudchest/cloudchest-cli/internal/logging"
)

// FoldersAPI is the slice of the API client the folder service uses.
type FoldersAPI interface {
	Folders(ctx context.Context, code string) ([]models.Folder, []models.FolderHierarchy, error)
	CreateFolder(ctx context.Context, parentCode, name string) (*models.Folder, error)
	PatchFolder(ctx context.Context, code string, patch models.FolderPatch) (*models.Folder, error)
	DeleteFolder(ctx context.Context, code string, trash bool) error
}

type FolderService struct {
	api   FoldersAPI
	bus   *events.Bus
	cache folders.Repository
	log   logging.Logger
}

func NewFolderService(api FoldersAPI, bus *events.Bus, cache folders.Repository, log logging.Logger) *FolderService {
	return &FolderService{api: api, bus: bus, cache: cache, log: log}
}

// List returns a folder's subfolders plus the breadcrumb hierarchy, or empty
// slices on any failure. Successful listings refresh the local cache.
func (s *FolderService) List(ctx context.Context, code string) ([]models.Folder, []models.FolderHierarchy) {
	list, hierarchy, err := s.api.Folders(ctx, code)
	if err != nil {
		s.log.Error(ctx, "list folders failed", "folder", code, "err", err)
		return []models.Folder{}, []models.FolderHierarchy{}
	}
	if err := s.cache.ReplaceChildren(ctx, code, list); err != nil {
		s.log.Warn(ctx, "caching folder list failed", "folder", code, "err", err)
	}
	return list, hierarchy
}

// Create makes a new folder and announces it. Returns nil on failure.
func (s *FolderService) Create(ctx context.Context, parentCode, name string) *models.Folder {
	created, err := s.api.CreateFolder(ctx, parentCode, name)
	if err != nil {
		s.log.Error(ctx, "create folder failed", "name", name, "err", err)
		return nil
	}
	s.bus.Publish(events.Event{Kind: events.FolderAdded, Folder: created})
	return created
}

// Update applies a partial update and announces the refreshed record.
// Returns false on failure.
func (s *FolderService) Update(ctx context.Context, code string, patch models.FolderPatch) bool {
	updated, err := s.api.PatchFolder(ctx, code, patch)
	if err != nil {
		s.log.Error(ctx, "update folder failed", "code", code, "err", err)
		return false
	}
	s.bus.Publish(events.Event{Kind: events.FolderUpdated, Folder: updated})
	return true
}

// Trash soft-deletes a folder and its contents. Returns false on failure.
func (s *FolderService) Trash(ctx context.Context, f models.Folder) bool {
	if err := s.api.DeleteFolder(ctx, f.Code, true); err != nil {
		s.log.Error(ctx, "trash folder failed", "code", f.Code, "err", err)
		return false
	}
	s.bus.Publish(events.Event{Kind: events.FolderTrashed, Folder: &f})
	return true
}

// DeletePermanently removes a folder for good. Returns false on failure.
func (s *FolderService) DeletePermanently(ctx context.Context, f models.Folder) bool {
	if err := s.api.DeleteFolder(ctx, f.Code, false); err != nil {
		s.log.Error(ctx, "delete folder failed", "code", f.Code, "err", err)
		return false
	}
	s.bus.Publish(events.Event{Kind: events.FolderDeleted, Folder: &f})
	return true
}
