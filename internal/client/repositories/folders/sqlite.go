package folders

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/cloudchest/cloudchest-cli/internal/client/models"
	"github.com/cloudchest/cloudchest-cli/internal/dbx"
)

type SQLiteRepository struct {
	db *sql.DB
}

func NewSQLiteRepository(db *sql.DB) *SQLiteRepository {
	return &SQLiteRepository{db: db}
}

func (r *SQLiteRepository) ReplaceChildren(ctx context.Context, parentCode string, list []models.Folder) error {
	return dbx.WithTx(ctx, r.db, nil, func(ctx context.Context, tx dbx.DBTX) error {
		if _, err := tx.ExecContext(ctx, `DELETE FROM folders WHERE parent_code = ?`, parentCode); err != nil {
			return fmt.Errorf("clear cached children of %s: %w", parentCode, err)
		}
		for _, f := range list {
			_, err := tx.ExecContext(ctx, `
				INSERT INTO folders (id, parent_code, code, name, created_at, updated_at)
				VALUES (?, ?, ?, ?, ?, ?)
			`, f.ID, parentCode, f.Code, f.Name, f.CreatedAt.Unix(), f.UpdatedAt.Unix())
			if err != nil {
				return fmt.Errorf("cache folder %d: %w", f.ID, err)
			}
		}
		return nil
	})
}

func (r *SQLiteRepository) ListByParent(ctx context.Context, parentCode string) ([]models.Folder, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT id, code, name, created_at, updated_at
		FROM folders WHERE parent_code = ? ORDER BY name
	`, parentCode)
	if err != nil {
		return nil, fmt.Errorf("list cached children of %s: %w", parentCode, err)
	}
	defer rows.Close()

	var result []models.Folder
	for rows.Next() {
		var (
			f         models.Folder
			createdAt int64
			updatedAt int64
		)
		if err := rows.Scan(&f.ID, &f.Code, &f.Name, &createdAt, &updatedAt); err != nil {
			return nil, fmt.Errorf("scan cached folder: %w", err)
		}
		f.CreatedAt = time.Unix(createdAt, 0).UTC()
		f.UpdatedAt = time.Unix(updatedAt, 0).UTC()
		result = append(result, f)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate cached folders: %w", err)
	}
	return result, nil
}
