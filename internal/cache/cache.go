// Package cache memoizes a compile's diagnostics across CLI invocations: an
// unchanged source file doesn't need to be re-lexed, re-parsed, and
// re-analyzed just to print the same diagnostics again. It sits above the
// inference driver, not inside it — internal/analyzer remains as stateless
// between calls as the distilled spec's §5 describes.
package cache

import (
	"crypto/sha256"
	"database/sql"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"
	_ "modernc.org/sqlite"

	"github.com/nanov/jsasta/internal/diag"
)

// schemaVersion changes whenever the diagnostic shape or compiler behavior
// changes in a way that would make an old cache entry misleading; bumping
// it invalidates every existing row without needing a migration.
const schemaVersion = "1"

// Cache is a sqlite-backed store of (source hash, compiler version) ->
// serialized compile result, one row per source file.
type Cache struct {
	db *sql.DB
}

// Entry is one cached compile result for a single source file.
type Entry struct {
	RunID       string
	Diagnostics []diag.Diagnostic
	Elapsed     time.Duration
}

// Open creates (if needed) and opens the cache database under dir,
// defaulting to ".jsasta-cache" the way --cache-dir's default does.
func Open(dir string) (*Cache, error) {
	if dir == "" {
		dir = ".jsasta-cache"
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("cache: create %s: %w", dir, err)
	}
	db, err := sql.Open("sqlite", filepath.Join(dir, "compile.db"))
	if err != nil {
		return nil, fmt.Errorf("cache: open db: %w", err)
	}
	if _, err := db.Exec(`
		CREATE TABLE IF NOT EXISTS entries (
			source_hash      TEXT NOT NULL,
			compiler_version TEXT NOT NULL,
			run_id           TEXT NOT NULL,
			diagnostics_json TEXT NOT NULL,
			elapsed_ns       INTEGER NOT NULL,
			stored_at        INTEGER NOT NULL,
			PRIMARY KEY (source_hash, compiler_version)
		)`); err != nil {
		db.Close()
		return nil, fmt.Errorf("cache: create schema: %w", err)
	}
	return &Cache{db: db}, nil
}

func (c *Cache) Close() error { return c.db.Close() }

// Lookup returns the cached entry for path's current contents, if one
// exists and the file hasn't changed since it was stored.
func (c *Cache) Lookup(path string) (*Entry, bool, error) {
	hash, err := hashFile(path)
	if err != nil {
		return nil, false, err
	}
	row := c.db.QueryRow(
		`SELECT run_id, diagnostics_json, elapsed_ns FROM entries WHERE source_hash = ? AND compiler_version = ?`,
		hash, schemaVersion,
	)
	var runID, diagsJSON string
	var elapsedNs int64
	if err := row.Scan(&runID, &diagsJSON, &elapsedNs); err != nil {
		if err == sql.ErrNoRows {
			return nil, false, nil
		}
		return nil, false, fmt.Errorf("cache: lookup %s: %w", path, err)
	}
	var diags []diag.Diagnostic
	if err := json.Unmarshal([]byte(diagsJSON), &diags); err != nil {
		return nil, false, fmt.Errorf("cache: decode entry for %s: %w", path, err)
	}
	return &Entry{RunID: runID, Diagnostics: diags, Elapsed: time.Duration(elapsedNs)}, true, nil
}

// Store records path's diagnostics under its current content hash, tagged
// with a fresh run ID so -v output can tell two writes for the same hash
// (produced by concurrently invoked CLI processes) apart.
func (c *Cache) Store(path string, diags []diag.Diagnostic, elapsed time.Duration) (string, error) {
	hash, err := hashFile(path)
	if err != nil {
		return "", err
	}
	diagsJSON, err := json.Marshal(diags)
	if err != nil {
		return "", fmt.Errorf("cache: encode diagnostics for %s: %w", path, err)
	}
	runID := uuid.NewString()
	_, err = c.db.Exec(
		`INSERT INTO entries (source_hash, compiler_version, run_id, diagnostics_json, elapsed_ns, stored_at)
		 VALUES (?, ?, ?, ?, ?, ?)
		 ON CONFLICT (source_hash, compiler_version) DO UPDATE SET
			run_id = excluded.run_id, diagnostics_json = excluded.diagnostics_json,
			elapsed_ns = excluded.elapsed_ns, stored_at = excluded.stored_at`,
		hash, schemaVersion, runID, string(diagsJSON), elapsed.Nanoseconds(), time.Now().Unix(),
	)
	if err != nil {
		return "", fmt.Errorf("cache: store %s: %w", path, err)
	}
	return runID, nil
}

func hashFile(path string) (string, error) {
	f, err := os.Open(path)
	if err != nil {
		return "", fmt.Errorf("cache: hash %s: %w", path, err)
	}
	defer f.Close()
	h := sha256.New()
	if _, err := io.Copy(h, f); err != nil {
		return "", fmt.Errorf("cache: hash %s: %w", path, err)
	}
	return hex.EncodeToString(h.Sum(nil)), nil
}
