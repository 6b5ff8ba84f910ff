package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	_ "github.com/mattn/go-sqlite3" // sqlite3 driver
)

// DatabaseName is the file name of a collection database
const DatabaseName = "images.db"

// Status is the processing state a downstream poster records for a row.
// The indexer only ever writes StatusUnposted.
type Status int

const (
	StatusUnposted       Status = 0
	StatusSuccess        Status = 1
	StatusDownloadFailed Status = 2
	StatusImageTooLarge  Status = 3
	StatusPostFailed     Status = 4
)

func (s Status) String() string {
	switch s {
	case StatusUnposted:
		return "unposted"
	case StatusSuccess:
		return "success"
	case StatusDownloadFailed:
		return "download_failed"
	case StatusImageTooLarge:
		return "image_too_large"
	case StatusPostFailed:
		return "post_failed"
	default:
		return fmt.Sprintf("status(%d)", int(s))
	}
}

// Image is one row of the images table
type Image struct {
	ID      int64
	Title   string
	Source  string
	Image   string
	License string
	Status  Status
}

// Store is an open collection database
type Store struct {
	db   *sql.DB
	path string
}

// CollectionDir returns the directory that holds a collection's files
func CollectionDir(root, collection string) string {
	return filepath.Join(root, collection)
}

// PrepareCollectionDir creates the collection directory if needed
func PrepareCollectionDir(root, collection string) (string, error) {
	dir := CollectionDir(root, collection)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return "", fmt.Errorf("create collection directory: %w", err)
	}
	return dir, nil
}

// Open opens or creates the database at path
func Open(ctx context.Context, path string) (*Store, error) {
	if path == "" {
		return nil, errors.New("open sqlite: path is empty")
	}

	db, err := sql.Open("sqlite3", path)
	if err != nil {
		return nil, fmt.Errorf("open sqlite: %w", err)
	}

	if err := db.PingContext(ctx); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("ping sqlite: %w", err)
	}

	if _, err := db.ExecContext(ctx, "PRAGMA busy_timeout = 5000"); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("apply pragma: %w", err)
	}

	return &Store{db: db, path: path}, nil
}

// Path returns the database file path
func (s *Store) Path() string {
	return s.path
}

// EnsureSchema creates the images table if it does not exist
func (s *Store) EnsureSchema(ctx context.Context) error {
	_, err := s.db.ExecContext(ctx, `
		CREATE TABLE IF NOT EXISTS images(
			id INT PRIMARY KEY,
			title,
			source,
			image,
			license,
			status INT
		)`)
	if err != nil {
		return fmt.Errorf("create images table: %w", err)
	}
	return nil
}

// Persist inserts rows in one transaction. Rows whose id already exists are
// skipped and the existing row is left untouched.
func (s *Store) Persist(ctx context.Context, rows []Image) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin persist txn: %w", err)
	}

	committed := false

	defer func() {
		if !committed {
			_ = tx.Rollback()
		}
	}()

	insert, err := tx.PrepareContext(ctx, `INSERT OR IGNORE INTO images VALUES(?, ?, ?, ?, ?, ?)`)
	if err != nil {
		return fmt.Errorf("prepare insert: %w", err)
	}

	defer func() { _ = insert.Close() }()

	for _, row := range rows {
		_, err = insert.ExecContext(ctx, row.ID, row.Title, row.Source, row.Image, row.License, int(row.Status))
		if err != nil {
			return fmt.Errorf("insert image %d: %w", row.ID, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit persist txn: %w", err)
	}

	committed = true

	return nil
}

// Images returns every row in insertion order
func (s *Store) Images(ctx context.Context) ([]Image, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT id, title, source, image, license, status
		FROM images
		ORDER BY rowid`)
	if err != nil {
		return nil, fmt.Errorf("query images: %w", err)
	}
	defer rows.Close()

	var images []Image
	for rows.Next() {
		var (
			img     Image
			title   sql.NullString
			source  sql.NullString
			image   sql.NullString
			license sql.NullString
			status  sql.NullInt64
		)
		if err := rows.Scan(&img.ID, &title, &source, &image, &license, &status); err != nil {
			return nil, fmt.Errorf("scan image: %w", err)
		}
		img.Title = title.String
		img.Source = source.String
		img.Image = image.String
		img.License = license.String
		img.Status = Status(status.Int64)
		images = append(images, img)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate images: %w", err)
	}

	return images, nil
}

// CountByStatus returns the number of rows per status
func (s *Store) CountByStatus(ctx context.Context) (map[Status]int, error) {
	rows, err := s.db.QueryContext(ctx, `SELECT COALESCE(status, 0), COUNT(*) FROM images GROUP BY 1`)
	if err != nil {
		return nil, fmt.Errorf("count images: %w", err)
	}
	defer rows.Close()

	counts := make(map[Status]int)
	for rows.Next() {
		var (
			status int
			n      int
		)
		if err := rows.Scan(&status, &n); err != nil {
			return nil, fmt.Errorf("scan count: %w", err)
		}
		counts[Status(status)] += n
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate counts: %w", err)
	}

	return counts, nil
}

// Close releases the database
func (s *Store) Close() error {
	if err := s.db.Close(); err != nil {
		return fmt.Errorf("close sqlite: %w", err)
	}
	return nil
}
