// Package services sits between the views and the API client. It applies the
// client's blanket error policy (catch, log, return a safe default), publishes
// domain events after successful mutations, and writes listings through to
// the local cache. The api package underneath stays errorful, so the two
// outcomes "empty" and "failed" remain distinguishable internally.
package services

import (
	"context"

	"github.com/cloudchest/cloudchest-cli/internal/client/events"
	"github.com/cloudchest/cloudchest-cli/internal/client/models"
	"github.com/cloudchest/cloudchest-cli/internal/client/repositories/files"
	"github.com/cloudchest/cloudchest-cli/internal/logging"
)

// FilesAPI is the slice of the API client the file service uses.
type FilesAPI interface {
	FolderContents(ctx context.Context, code string) ([]models.File, error)
	TrashedFiles(ctx context.Context) ([]models.File, error)
	FavoriteFiles(ctx context.Context) ([]models.File, error)
	DeleteFile(ctx context.Context, id uint, trash bool) error
	EmptyTrash(ctx context.Context) error
	PatchFile(ctx context.Context, id uint, patch models.FilePatch) (*models.File, error)
	DownloadLink(ctx context.Context, code string) (*models.PresignedURL, error)
	Thumbnail(ctx context.Context, id uint) (string, error)
}

type FileService struct {
	api   FilesAPI
	bus   *events.Bus
	cache files.Repository
	log   logging.Logger
}

func NewFileService(api FilesAPI, bus *events.Bus, cache files.Repository, log logging.Logger) *FileService {
	return &FileService{api: api, bus: bus, cache: cache, log: log}
}

// ListFolder returns the files in a folder, or an empty slice on any failure.
// Successful listings refresh the local cache.
func (s *FileService) ListFolder(ctx context.Context, code string) []models.File {
	list, err := s.api.FolderContents(ctx, code)
	if err != nil {
		s.log.Error(ctx, "list folder failed", "folder", code, "err", err)
		return []models.File{}
	}
	if err := s.cache.ReplaceFolder(ctx, code, list); err != nil {
		s.log.Warn(ctx, "caching folder listing failed", "folder", code, "err", err)
	}
	return list
}

// Trashed returns the trash can, or an empty slice on any failure.
func (s *FileService) Trashed(ctx context.Context) []models.File {
	list, err := s.api.TrashedFiles(ctx)
	if err != nil {
		s.log.Error(ctx, "list trashcan failed", "err", err)
		return []models.File{}
	}
	return list
}

// Favorites returns the starred files, or an empty slice on any failure.
func (s *FileService) Favorites(ctx context.Context) []models.File {
	list, err := s.api.FavoriteFiles(ctx)
	if err != nil {
		s.log.Error(ctx, "list favorites failed", "err", err)
		return []models.File{}
	}
	return list
}

// Trash soft-deletes a file and announces it. Returns false on failure.
func (s *FileService) Trash(ctx context.Context, f models.File) bool {
	if err := s.api.DeleteFile(ctx, f.ID, true); err != nil {
		s.log.Error(ctx, "trash file failed", "id", f.ID, "err", err)
		return false
	}
	s.bus.Publish(events.Event{Kind: events.FileTrashed, File: &f})
	return true
}

// DeletePermanently removes a file for good. Returns false on failure.
func (s *FileService) DeletePermanently(ctx context.Context, f models.File) bool {
	if err := s.api.DeleteFile(ctx, f.ID, false); err != nil {
		s.log.Error(ctx, "delete file failed", "id", f.ID, "err", err)
		return false
	}
	s.bus.Publish(events.Event{Kind: events.FileDeleted, File: &f})
	return true
}

// EmptyTrash purges the whole trash can. Returns false on failure.
func (s *FileService) EmptyTrash(ctx context.Context) bool {
	if err := s.api.EmptyTrash(ctx); err != nil {
		s.log.Error(ctx, "empty trash failed", "err", err)
		return false
	}
	s.bus.Publish(events.Event{Kind: events.FileDeleted})
	return true
}

// Update applies a partial update (rename, favorite, restore, move) and
// announces the refreshed record. Returns false on failure.
func (s *FileService) Update(ctx context.Context, id uint, patch models.FilePatch) bool {
	updated, err := s.api.PatchFile(ctx, id, patch)
	if err != nil {
		s.log.Error(ctx, "update file failed", "id", id, "err", err)
		return false
	}
	s.bus.Publish(events.Event{Kind: events.FileUpdated, File: updated})
	return true
}

// DownloadLink returns the presigned descriptor for a file, or a zero
// descriptor on any failure.
func (s *FileService) DownloadLink(ctx context.Context, code string) models.PresignedURL {
	link, err := s.api.DownloadLink(ctx, code)
	if err != nil {
		s.log.Error(ctx, "download link failed", "code", code, "err", err)
		return models.PresignedURL{}
	}
	return *link
}

// Thumbnail returns the inline data URL for a file's thumbnail, or "" on any
// failure.
func (s *FileService) Thumbnail(ctx context.Context, id uint) string {
	dataURL, err := s.api.Thumbnail(ctx, id)
	if err != nil {
		s.log.Error(ctx, "thumbnail failed", "id", id, "err", err)
		return ""
	}
	return dataURL
}
