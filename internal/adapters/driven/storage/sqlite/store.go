package sqlite

import (
	"context"
	"database/sql"
	"embed"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"

	_ "modernc.org/sqlite" // SQLite driver

	"github.com/custodia-labs/antipat/internal/adapters/driven/storage/sqlite/migrations"
	"github.com/custodia-labs/antipat/internal/core/domain"
	"github.com/custodia-labs/antipat/internal/core/ports/driven"
)

// Ensure Store implements the interface.
var _ driven.CatalogStore = (*Store)(nil)

// Store is a SQLite-backed catalog store.
type Store struct {
	db   *sql.DB
	path string
}

// NewStore creates a new SQLite store at the specified data directory.
// If dataDir is empty, defaults to ~/.antipat/data/catalog.db.
func NewStore(dataDir string) (*Store, error) {
	if dataDir == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return nil, fmt.Errorf("getting home directory: %w", err)
		}
		dataDir = filepath.Join(home, ".antipat", "data")
	}

	// Ensure directory exists
	if err := os.MkdirAll(dataDir, 0700); err != nil {
		return nil, fmt.Errorf("creating data directory: %w", err)
	}

	dbPath := filepath.Join(dataDir, "catalog.db")

	// Open database with WAL mode for better concurrency
	db, err := sql.Open("sqlite", dbPath+"?_pragma=journal_mode(WAL)&_pragma=busy_timeout(5000)")
	if err != nil {
		return nil, fmt.Errorf("opening database: %w", err)
	}

	s := &Store{
		db:   db,
		path: dbPath,
	}

	// Run migrations
	if err := s.migrate(migrations.FS); err != nil {
		db.Close()
		return nil, fmt.Errorf("running migrations: %w", err)
	}

	return s, nil
}

// Close closes the database connection.
func (s *Store) Close() error {
	return s.db.Close()
}

// Path returns the database file path.
func (s *Store) Path() string {
	return s.path
}

// migrate runs all pending migrations.
func (s *Store) migrate(fsys embed.FS) error {
	// Ensure schema_migrations table exists
	_, err := s.db.Exec(`
		CREATE TABLE IF NOT EXISTS schema_migrations (
			version INTEGER PRIMARY KEY,
			applied_at DATETIME DEFAULT CURRENT_TIMESTAMP
		)
	`)
	if err != nil {
		return fmt.Errorf("creating schema_migrations table: %w", err)
	}

	// Get current version
	var currentVersion int
	row := s.db.QueryRow("SELECT COALESCE(MAX(version), 0) FROM schema_migrations")
	if err := row.Scan(&currentVersion); err != nil {
		return fmt.Errorf("getting current version: %w", err)
	}

	entries, err := fs.ReadDir(fsys, ".")
	if err != nil {
		return fmt.Errorf("reading migrations directory: %w", err)
	}

	var upFiles []string
	for _, entry := range entries {
		name := entry.Name()
		if strings.HasSuffix(name, ".up.sql") {
			upFiles = append(upFiles, name)
		}
	}
	sort.Strings(upFiles)

	for _, name := range upFiles {
		// Extract version number (e.g., "001_initial.up.sql" -> 1)
		var version int
		if _, err := fmt.Sscanf(name, "%d_", &version); err != nil {
			continue // Skip files that don't match pattern
		}

		if version <= currentVersion {
			continue // Already applied
		}

		content, err := fs.ReadFile(fsys, name)
		if err != nil {
			return fmt.Errorf("reading migration %s: %w", name, err)
		}

		if _, err := s.db.Exec(string(content)); err != nil {
			return fmt.Errorf("executing migration %s: %w", name, err)
		}

		if _, err := s.db.Exec("INSERT INTO schema_migrations (version) VALUES (?)", version); err != nil {
			return fmt.Errorf("recording migration %s: %w", name, err)
		}
	}

	return nil
}

// SaveCatalog replaces the stored catalog wholesale.
func (s *Store) SaveCatalog(ctx context.Context, catalog *domain.Catalog) error {
	if catalog == nil {
		return domain.ErrInvalidInput
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("beginning transaction: %w", err)
	}
	defer tx.Rollback() //nolint:errcheck

	if _, err := tx.ExecContext(ctx, "DELETE FROM documents"); err != nil {
		return fmt.Errorf("clearing documents: %w", err)
	}
	if _, err := tx.ExecContext(ctx, "DELETE FROM catalogs"); err != nil {
		return fmt.Errorf("clearing catalog: %w", err)
	}

	_, err = tx.ExecContext(ctx, `
		INSERT INTO catalogs (id, run_id, built_at) VALUES (1, ?, ?)
	`, catalog.RunID, catalog.BuiltAt.UTC())
	if err != nil {
		return fmt.Errorf("saving catalog: %w", err)
	}

	for i := range catalog.Documents {
		doc := &catalog.Documents[i]
		payload, err := json.Marshal(doc)
		if err != nil {
			return fmt.Errorf("marshalling document %s: %w", doc.ID, err)
		}
		_, err = tx.ExecContext(ctx, `
			INSERT INTO documents (pattern_id, category_id, title, source_path, payload)
			VALUES (?, ?, ?, ?, ?)
		`, string(doc.ID), doc.CategoryID, doc.Title, doc.SourcePath, string(payload))
		if err != nil {
			return fmt.Errorf("saving document %s: %w", doc.ID, err)
		}
	}

	return tx.Commit()
}

// LoadCatalog returns the stored catalog.
func (s *Store) LoadCatalog(ctx context.Context) (*domain.Catalog, error) {
	row := s.db.QueryRowContext(ctx, "SELECT run_id, built_at FROM catalogs WHERE id = 1")

	var catalog domain.Catalog
	if err := row.Scan(&catalog.RunID, &catalog.BuiltAt); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("scanning catalog: %w", err)
	}

	docs, err := s.ListDocuments(ctx)
	if err != nil && !errors.Is(err, domain.ErrNotFound) {
		return nil, err
	}
	catalog.Documents = docs

	return &catalog, nil
}

// GetDocument returns one catalogued document by pattern id.
func (s *Store) GetDocument(ctx context.Context, id domain.PatternID) (*domain.Document, error) {
	row := s.db.QueryRowContext(ctx, "SELECT payload FROM documents WHERE pattern_id = ?", string(id))

	var payload string
	if err := row.Scan(&payload); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("scanning document: %w", err)
	}

	var doc domain.Document
	if err := json.Unmarshal([]byte(payload), &doc); err != nil {
		return nil, fmt.Errorf("unmarshalling document %s: %w", id, err)
	}
	return &doc, nil
}

// ListDocuments returns all catalogued documents ordered by category id.
// Returns domain.ErrNotFound when no catalog has been saved; a saved
// catalog with zero documents lists as empty.
func (s *Store) ListDocuments(ctx context.Context) ([]domain.Document, error) {
	var saved int
	if err := s.db.QueryRowContext(ctx, "SELECT COUNT(*) FROM catalogs").Scan(&saved); err != nil {
		return nil, fmt.Errorf("checking for catalog: %w", err)
	}
	if saved == 0 {
		return nil, domain.ErrNotFound
	}

	rows, err := s.db.QueryContext(ctx, "SELECT payload FROM documents ORDER BY category_id ASC")
	if err != nil {
		return nil, fmt.Errorf("listing documents: %w", err)
	}
	defer rows.Close()

	var docs []domain.Document
	for rows.Next() {
		var payload string
		if err := rows.Scan(&payload); err != nil {
			return nil, fmt.Errorf("scanning document: %w", err)
		}
		var doc domain.Document
		if err := json.Unmarshal([]byte(payload), &doc); err != nil {
			return nil, fmt.Errorf("unmarshalling document: %w", err)
		}
		docs = append(docs, doc)
	}
	return docs, rows.Err()
}

// SaveReport replaces the stored validation report.
func (s *Store) SaveReport(ctx context.Context, report *domain.ValidationReport) error {
	if report == nil {
		return domain.ErrInvalidInput
	}

	payload, err := json.Marshal(report)
	if err != nil {
		return fmt.Errorf("marshalling report: %w", err)
	}

	_, err = s.db.ExecContext(ctx, `
		INSERT INTO reports (id, run_id, payload) VALUES (1, ?, ?)
		ON CONFLICT(id) DO UPDATE SET
			run_id = excluded.run_id,
			payload = excluded.payload
	`, report.RunID, string(payload))
	if err != nil {
		return fmt.Errorf("saving report: %w", err)
	}
	return nil
}

// LoadReport returns the stored validation report.
func (s *Store) LoadReport(ctx context.Context) (*domain.ValidationReport, error) {
	row := s.db.QueryRowContext(ctx, "SELECT payload FROM reports WHERE id = 1")

	var payload string
	if err := row.Scan(&payload); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("scanning report: %w", err)
	}

	var report domain.ValidationReport
	if err := json.Unmarshal([]byte(payload), &report); err != nil {
		return nil, fmt.Errorf("unmarshalling report: %w", err)
	}
	return &report, nil
}
