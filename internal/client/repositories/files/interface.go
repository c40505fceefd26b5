// Package files caches the most recent successful file listing per folder so
// the client can keep browsing while the server is unreachable.
package files

import (
	"context"

	"github.com/cloudchest/cloudchest-cli/internal/client/models"
)

type Repository interface {
	// ReplaceFolder swaps the cached listing of one folder for a fresh one.
	ReplaceFolder(ctx context.Context, folderCode string, files []models.File) error

	// ListByFolder returns the cached listing; there is at most one
	// snapshot per folder.
	ListByFolder(ctx context.Context, folderCode string) ([]models.File, error)
}
