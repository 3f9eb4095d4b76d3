package scan

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	_ "github.com/mattn/go-sqlite3" // SQLite driver
)

// Index is a persistent SQLite inventory of inspected files. It lets repeat
// scans of large directories skip MIME detection and PDF parsing for files
// whose size and modification time have not changed.
type Index struct {
	db   *sql.DB
	path string
}

// OpenIndex opens (or creates) the index database at path.
func OpenIndex(path string) (*Index, error) {
	db, err := sql.Open("sqlite3", path+"?_journal_mode=WAL&_busy_timeout=5000")
	if err != nil {
		return nil, fmt.Errorf("failed to open scan index: %w", err)
	}

	// SQLite handles concurrent access poorly; serialize through one connection.
	db.SetMaxOpenConns(1)

	if err := db.Ping(); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("failed to ping scan index: %w", err)
	}

	return &Index{db: db, path: path}, nil
}

// Migrate creates the schema if it does not exist.
func (ix *Index) Migrate(ctx context.Context) error {
	schema := `
	CREATE TABLE IF NOT EXISTS files (
		path TEXT PRIMARY KEY,
		name TEXT NOT NULL,
		extension TEXT NOT NULL,
		mime_type TEXT NOT NULL,
		size INTEGER NOT NULL,
		pages INTEGER NOT NULL DEFAULT 0,
		is_pdf INTEGER NOT NULL DEFAULT 0,
		is_image INTEGER NOT NULL DEFAULT 0,
		modified_at TIMESTAMP NOT NULL,
		indexed_at TIMESTAMP NOT NULL
	);
	CREATE INDEX IF NOT EXISTS idx_files_extension ON files(extension);
	`
	if _, err := ix.db.ExecContext(ctx, schema); err != nil {
		return fmt.Errorf("failed to migrate scan index: %w", err)
	}
	return nil
}

// Put inserts or replaces the index entry for info.Path.
func (ix *Index) Put(ctx context.Context, info FileInfo) error {
	query := `
	INSERT INTO files (path, name, extension, mime_type, size, pages, is_pdf, is_image, modified_at, indexed_at)
	VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	ON CONFLICT(path) DO UPDATE SET
		name = excluded.name,
		extension = excluded.extension,
		mime_type = excluded.mime_type,
		size = excluded.size,
		pages = excluded.pages,
		is_pdf = excluded.is_pdf,
		is_image = excluded.is_image,
		modified_at = excluded.modified_at,
		indexed_at = excluded.indexed_at`

	_, err := ix.db.ExecContext(ctx, query,
		info.Path, info.Name, info.Extension, info.MimeType,
		info.Size, info.Pages, info.IsPDF, info.IsImage,
		info.ModifiedAt, time.Now())
	if err != nil {
		return fmt.Errorf("failed to index %s: %w", info.Path, err)
	}
	return nil
}

// Get returns the indexed entry for path, or nil if none exists.
func (ix *Index) Get(ctx context.Context, path string) (*FileInfo, error) {
	query := `
	SELECT path, name, extension, mime_type, size, pages, is_pdf, is_image, modified_at
	FROM files WHERE path = ?`

	var info FileInfo
	err := ix.db.QueryRowContext(ctx, query, path).Scan(
		&info.Path, &info.Name, &info.Extension, &info.MimeType,
		&info.Size, &info.Pages, &info.IsPDF, &info.IsImage, &info.ModifiedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read scan index for %s: %w", path, err)
	}
	return &info, nil
}

// List returns all indexed entries ordered by path.
func (ix *Index) List(ctx context.Context) ([]FileInfo, error) {
	query := `
	SELECT path, name, extension, mime_type, size, pages, is_pdf, is_image, modified_at
	FROM files ORDER BY path`

	rows, err := ix.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to list scan index: %w", err)
	}
	defer func() { _ = rows.Close() }()

	var files []FileInfo
	for rows.Next() {
		var info FileInfo
		if err := rows.Scan(
			&info.Path, &info.Name, &info.Extension, &info.MimeType,
			&info.Size, &info.Pages, &info.IsPDF, &info.IsImage, &info.ModifiedAt); err != nil {
			return nil, fmt.Errorf("failed to scan index row: %w", err)
		}
		files = append(files, info)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate scan index: %w", err)
	}
	return files, nil
}

// Delete removes the index entry for path, if any.
func (ix *Index) Delete(ctx context.Context, path string) error {
	if _, err := ix.db.ExecContext(ctx, `DELETE FROM files WHERE path = ?`, path); err != nil {
		return fmt.Errorf("failed to delete %s from scan index: %w", path, err)
	}
	return nil
}

// Close closes the underlying database.
func (ix *Index) Close() error {
	if err := ix.db.Close(); err != nil {
		return fmt.Errorf("failed to close scan index: %w", err)
	}
	return nil
}
