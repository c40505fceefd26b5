// Package folders caches the most recent successful subfolder listing per
// parent, the folder counterpart of the files cache.
package folders

import (
	"context"

	"github.com/cloudchest/cloudchest-cli/internal/client/models"
)

type Repository interface {
	ReplaceChildren(ctx context.Context, parentCode string, folders []models.Folder) error
	ListByParent(ctx context.Context, parentCode string) ([]models.Folder, error)
}
