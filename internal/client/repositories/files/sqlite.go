package files

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

func (r *SQLiteRepository) ReplaceFolder(ctx context.Context, folderCode string, list []models.File) error {
	return dbx.WithTx(ctx, r.db, nil, func(ctx context.Context, tx dbx.DBTX) error {
		if _, err := tx.ExecContext(ctx, `DELETE FROM files WHERE folder_code = ?`, folderCode); err != nil {
			return fmt.Errorf("clear cached folder %s: %w", folderCode, err)
		}
		for _, f := range list {
			var deletedAt sql.NullInt64
			if f.DeletedAt != nil {
				deletedAt = sql.NullInt64{Int64: f.DeletedAt.Unix(), Valid: true}
			}
			_, err := tx.ExecContext(ctx, `
				INSERT INTO files (id, folder_code, file_name, file_code, file_size, file_type, is_favorite, created_at, updated_at, deleted_at)
				VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
			`, f.ID, folderCode, f.FileName, f.FileCode, f.FileSize, f.FileType, f.IsFavorite,
				f.CreatedAt.Unix(), f.UpdatedAt.Unix(), deletedAt)
			if err != nil {
				return fmt.Errorf("cache file %d: %w", f.ID, err)
			}
		}
		return nil
	})
}

func (r *SQLiteRepository) ListByFolder(ctx context.Context, folderCode string) ([]models.File, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT id, file_name, file_code, file_size, file_type, is_favorite, created_at, updated_at, deleted_at
		FROM files WHERE folder_code = ? ORDER BY file_name
	`, folderCode)
	if err != nil {
		return nil, fmt.Errorf("list cached folder %s: %w", folderCode, err)
	}
	defer rows.Close()

	var result []models.File
	for rows.Next() {
		var (
			f         models.File
			createdAt int64
			updatedAt int64
			deletedAt sql.NullInt64
		)
		if err := rows.Scan(&f.ID, &f.FileName, &f.FileCode, &f.FileSize, &f.FileType, &f.IsFavorite, &createdAt, &updatedAt, &deletedAt); err != nil {
			return nil, fmt.Errorf("scan cached file: %w", err)
		}
		f.CreatedAt = time.Unix(createdAt, 0).UTC()
		f.UpdatedAt = time.Unix(updatedAt, 0).UTC()
		if deletedAt.Valid {
			t := time.Unix(deletedAt.Int64, 0).UTC()
			f.DeletedAt = &t
		}
		result = append(result, f)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate cached files: %w", err)
	}
	return result, nil
}
