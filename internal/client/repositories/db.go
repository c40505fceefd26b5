// Package repositories wires the local sqlite database: it opens the file,
// applies the embedded goose migrations, and hands out the repositories.
package repositories

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/pressly/goose/v3"

	"github.com/cloudchest/cloudchest-cli/internal/client/migrations"
	"github.com/cloudchest/cloudchest-cli/internal/client/repositories/files"
	"github.com/cloudchest/cloudchest-cli/internal/client/repositories/folders"
	"github.com/cloudchest/cloudchest-cli/internal/client/repositories/metadata"
)

type Repositories struct {
	Metadata metadata.Repository
	Files    files.Repository
	Folders  folders.Repository
	DB       *sql.DB
}

func RunMigrations(ctx context.Context, db *sql.DB) error {
	goose.SetBaseFS(migrations.Migrations)
	if err := goose.SetDialect("sqlite3"); err != nil {
		return fmt.Errorf("set goose dialect: %w", err)
	}
	return goose.UpContext(ctx, db, ".")
}

// InitDatabase opens (creating if needed) the local database at dsn and
// migrates it to the latest schema.
func InitDatabase(ctx context.Context, dsn string) (*Repositories, error) {
	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("open local db: %w", err)
	}

	if err := RunMigrations(ctx, db); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("migrate local db: %w", err)
	}

	return &Repositories{
		Metadata: metadata.NewSQLiteRepository(db),
		Files:    files.NewSQLiteRepository(db),
		Folders:  folders.NewSQLiteRepository(db),
		DB:       db,
	}, nil
}
