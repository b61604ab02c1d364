package database

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	_ "modernc.org/sqlite" // SQLite driver
)

// FileName is the database file name inside the database directory.
const FileName = "pokedex.db"

// PokeDB provides SQLite-based storage for API responses, sprites and
// lookup history.
//
// Design decision: Responses are stored as the raw JSON body rather than
// decoded columns. The API client decodes them exactly as it would a live
// response, so there is one decoding path and no schema migration when
// more fields are consumed.
type PokeDB struct {
	// db is the underlying SQL database connection.
	db *sql.DB

	// dbPath is the path to the SQLite database file.
	dbPath string
}

// Options configures PokeDB behavior.
type Options struct {
	// CreateIfNotExists creates the database file if it doesn't exist.
	CreateIfNotExists bool

	// EnableWAL enables Write-Ahead Logging for better concurrent performance.
	EnableWAL bool
}

// DefaultOptions returns the default database options.
func DefaultOptions() Options {
	return Options{
		CreateIfNotExists: true,
		EnableWAL:         true,
	}
}

// ErrDatabaseNotFound is returned by Open when the database does not exist
// and CreateIfNotExists is false.
var ErrDatabaseNotFound = errors.New("database not found")

// Open opens or creates a PokeDB in the specified directory.
func Open(dbDir string, opts Options) (*PokeDB, error) {
	dbPath := filepath.Join(dbDir, FileName)

	if !opts.CreateIfNotExists {
		if _, err := os.Stat(dbPath); os.IsNotExist(err) {
			return nil, fmt.Errorf("%w at %s", ErrDatabaseNotFound, dbPath)
		} else if err != nil {
			return nil, fmt.Errorf("failed to check database path: %w", err)
		}
	} else {
		if err := os.MkdirAll(dbDir, 0750); err != nil {
			return nil, fmt.Errorf("failed to create database directory: %w", err)
		}
	}

	// mode=rw prevents modernc.org/sqlite from creating a missing file.
	dsn := dbPath + "?mode=rw"
	if opts.CreateIfNotExists {
		dsn = dbPath + "?mode=rwc"
	}

	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	// SQLite only supports one writer.
	db.SetMaxOpenConns(1)
	db.SetMaxIdleConns(1)
	db.SetConnMaxLifetime(time.Hour)

	pdb := &PokeDB{
		db:     db,
		dbPath: dbPath,
	}

	if opts.EnableWAL {
		if _, err := db.ExecContext(context.Background(), "PRAGMA journal_mode=WAL"); err != nil {
			_ = db.Close()
			return nil, fmt.Errorf("failed to enable WAL mode: %w", err)
		}
	}

	if err := pdb.createTables(); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("failed to create tables: %w", err)
	}

	return pdb, nil
}

// Close closes the database connection.
func (pdb *PokeDB) Close() error {
	return pdb.db.Close()
}

// Path returns the database file path.
func (pdb *PokeDB) Path() string {
	return pdb.dbPath
}

// createTables creates the database schema if it doesn't exist.
func (pdb *PokeDB) createTables() error {
	schema := `
	-- API responses, one row per endpoint and resource
	CREATE TABLE IF NOT EXISTS responses (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		kind TEXT NOT NULL,
		key TEXT NOT NULL,
		body BLOB NOT NULL,
		fetched_at DATETIME DEFAULT CURRENT_TIMESTAMP,
		UNIQUE(kind, key)
	);

	CREATE INDEX IF NOT EXISTS idx_responses_fetched ON responses(fetched_at);

	-- Sprite images keyed by their source URL
	CREATE TABLE IF NOT EXISTS sprites (
		url TEXT PRIMARY KEY,
		data BLOB NOT NULL,
		fetched_at DATETIME DEFAULT CURRENT_TIMESTAMP
	);

	-- Every name the user looked up, found or not
	CREATE TABLE IF NOT EXISTS lookups (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		name TEXT NOT NULL,
		found INTEGER NOT NULL DEFAULT 1,
		timestamp DATETIME DEFAULT CURRENT_TIMESTAMP
	);

	CREATE INDEX IF NOT EXISTS idx_lookups_name ON lookups(name);
	CREATE INDEX IF NOT EXISTS idx_lookups_timestamp ON lookups(timestamp);
	`

	_, err := pdb.db.ExecContext(context.Background(), schema)
	return err
}

// ageModifier converts a duration to an SQLite datetime modifier.
func ageModifier(d time.Duration) string {
	return fmt.Sprintf("-%d seconds", int64(d.Seconds()))
}

// GetResponse returns the stored body for (kind, key).
// A maxAge of zero accepts any age. The second return value reports
// whether a fresh enough row exists.
func (pdb *PokeDB) GetResponse(ctx context.Context, kind, key string, maxAge time.Duration) ([]byte, bool, error) {
	query := `SELECT body FROM responses WHERE kind = ? AND key = ?`
	args := []any{kind, strings.ToLower(key)}
	if maxAge > 0 {
		query += ` AND fetched_at > datetime('now', ?)`
		args = append(args, ageModifier(maxAge))
	}

	var body []byte
	err := pdb.db.QueryRowContext(ctx, query, args...).Scan(&body)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, fmt.Errorf("failed to get response: %w", err)
	}
	return body, true, nil
}

// PutResponse inserts or replaces the body for (kind, key).
func (pdb *PokeDB) PutResponse(ctx context.Context, kind, key string, body []byte) error {
	query := `
	INSERT INTO responses (kind, key, body)
	VALUES (?, ?, ?)
	ON CONFLICT(kind, key) DO UPDATE SET
		body = excluded.body,
		fetched_at = CURRENT_TIMESTAMP
	`
	if _, err := pdb.db.ExecContext(ctx, query, kind, strings.ToLower(key), body); err != nil {
		return fmt.Errorf("failed to store response: %w", err)
	}
	return nil
}

// GetSprite returns the stored image for url. Sprites never change on
// PokeAPI's CDN, so there is no age check.
func (pdb *PokeDB) GetSprite(ctx context.Context, url string) ([]byte, bool, error) {
	var data []byte
	err := pdb.db.QueryRowContext(ctx, `SELECT data FROM sprites WHERE url = ?`, url).Scan(&data)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, fmt.Errorf("failed to get sprite: %w", err)
	}
	return data, true, nil
}

// PutSprite inserts or replaces the image for url.
func (pdb *PokeDB) PutSprite(ctx context.Context, url string, data []byte) error {
	query := `
	INSERT INTO sprites (url, data)
	VALUES (?, ?)
	ON CONFLICT(url) DO UPDATE SET
		data = excluded.data,
		fetched_at = CURRENT_TIMESTAMP
	`
	if _, err := pdb.db.ExecContext(ctx, query, url, data); err != nil {
		return fmt.Errorf("failed to store sprite: %w", err)
	}
	return nil
}

// LookupRecord is one row of lookup history.
type LookupRecord struct {
	ID        int64
	Name      string
	Found     bool
	Timestamp time.Time
}

// LookupCount is the number of successful lookups of a name.
type LookupCount struct {
	Name  string
	Count int
}

// RecordLookup appends a lookup to the history.
func (pdb *PokeDB) RecordLookup(ctx context.Context, name string, found bool) error {
	_, err := pdb.db.ExecContext(ctx,
		`INSERT INTO lookups (name, found) VALUES (?, ?)`,
		strings.ToLower(strings.TrimSpace(name)), found)
	if err != nil {
		return fmt.Errorf("failed to record lookup: %w", err)
	}
	return nil
}

// RecentLookups returns up to limit lookups, newest first.
func (pdb *PokeDB) RecentLookups(ctx context.Context, limit int) ([]LookupRecord, error) {
	query := `
	SELECT id, name, found, timestamp
	FROM lookups
	ORDER BY id DESC
	LIMIT ?
	`

	rows, err := pdb.db.QueryContext(ctx, query, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to query lookups: %w", err)
	}
	defer rows.Close()

	var records []LookupRecord
	for rows.Next() {
		var rec LookupRecord
		var timestamp string
		if err := rows.Scan(&rec.ID, &rec.Name, &rec.Found, &timestamp); err != nil {
			return nil, fmt.Errorf("failed to scan lookup: %w", err)
		}
		rec.Timestamp = parseTimestamp(timestamp)
		records = append(records, rec)
	}
	return records, rows.Err()
}

// LookupCounts returns the most looked-up names that were found,
// most frequent first, ties broken by name.
func (pdb *PokeDB) LookupCounts(ctx context.Context, limit int) ([]LookupCount, error) {
	query := `
	SELECT name, COUNT(*) AS n
	FROM lookups
	WHERE found = 1
	GROUP BY name
	ORDER BY n DESC, name ASC
	LIMIT ?
	`

	rows, err := pdb.db.QueryContext(ctx, query, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to query lookup counts: %w", err)
	}
	defer rows.Close()

	var counts []LookupCount
	for rows.Next() {
		var c LookupCount
		if err := rows.Scan(&c.Name, &c.Count); err != nil {
			return nil, fmt.Errorf("failed to scan lookup count: %w", err)
		}
		counts = append(counts, c)
	}
	return counts, rows.Err()
}

// Stats summarizes the database contents.
type Stats struct {
	Path      string
	SizeBytes int64
	Responses int
	Sprites   int
	Lookups   int
	// ByKind counts stored responses per kind (pokemon, species, ...).
	ByKind map[string]int
}

// Stats returns row counts and the file size.
func (pdb *PokeDB) Stats(ctx context.Context) (*Stats, error) {
	stats := &Stats{Path: pdb.dbPath, ByKind: make(map[string]int)}

	counts := []struct {
		table string
		dst   *int
	}{
		{"responses", &stats.Responses},
		{"sprites", &stats.Sprites},
		{"lookups", &stats.Lookups},
	}
	for _, c := range counts {
		// Table names come from the fixed list above.
		if err := pdb.db.QueryRowContext(ctx, "SELECT COUNT(*) FROM "+c.table).Scan(c.dst); err != nil { //nolint:gosec
			return nil, fmt.Errorf("failed to count %s: %w", c.table, err)
		}
	}

	rows, err := pdb.db.QueryContext(ctx, `SELECT kind, COUNT(*) FROM responses GROUP BY kind`)
	if err != nil {
		return nil, fmt.Errorf("failed to count responses by kind: %w", err)
	}
	defer rows.Close()
	for rows.Next() {
		var kind string
		var n int
		if err := rows.Scan(&kind, &n); err != nil {
			return nil, fmt.Errorf("failed to scan kind count: %w", err)
		}
		stats.ByKind[kind] = n
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	if info, err := os.Stat(pdb.dbPath); err == nil {
		stats.SizeBytes = info.Size()
	}
	return stats, nil
}

// Purge deletes responses and sprites fetched more than olderThan ago.
// Lookup history is kept. It returns the number of rows deleted.
func (pdb *PokeDB) Purge(ctx context.Context, olderThan time.Duration) (int64, error) {
	modifier := ageModifier(olderThan)

	var total int64
	for _, query := range []string{
		`DELETE FROM responses WHERE fetched_at <= datetime('now', ?)`,
		`DELETE FROM sprites WHERE fetched_at <= datetime('now', ?)`,
	} {
		result, err := pdb.db.ExecContext(ctx, query, modifier)
		if err != nil {
			return total, fmt.Errorf("failed to purge: %w", err)
		}
		n, err := result.RowsAffected()
		if err != nil {
			return total, fmt.Errorf("failed to count purged rows: %w", err)
		}
		total += n
	}
	return total, nil
}

// Clear deletes everything, including lookup history.
func (pdb *PokeDB) Clear(ctx context.Context) error {
	tx, err := pdb.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	for _, query := range []string{
		`DELETE FROM responses`,
		`DELETE FROM sprites`,
		`DELETE FROM lookups`,
	} {
		if _, err := tx.ExecContext(ctx, query); err != nil {
			return fmt.Errorf("failed to clear database: %w", err)
		}
	}
	return tx.Commit()
}

// timestampFormats contains the timestamp formats that SQLite may return.
// The order matters: more specific formats should come first.
var timestampFormats = []string{
	"2006-01-02 15:04:05",     // SQLite default datetime format
	"2006-01-02T15:04:05Z",    // ISO 8601 with Z suffix
	"2006-01-02T15:04:05",     // ISO 8601 without timezone
	time.RFC3339,              // Full RFC3339 format
	time.RFC3339Nano,          // RFC3339 with nanoseconds
	"2006-01-02 15:04:05.999", // SQLite with milliseconds
}

// parseTimestamp tries each known format and returns the zero time if
// none matches.
func parseTimestamp(s string) time.Time {
	for _, format := range timestampFormats {
		if t, err := time.Parse(format, s); err == nil {
			return t
		}
	}
	return time.Time{}
}
