// Package store provides the opaque key-value persistence layer backing
// save slots. Values are JSON documents, lz4-compressed at rest with a
// blake3 checksum; a checksum or decode mismatch surfaces as a corruption
// error so callers can discard and reinitialize.
package store

import (
	"context"
	"database/sql"
	"embed"
	"encoding/hex"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/pierrec/lz4/v4"
	"github.com/pressly/goose/v3"
	"lukechampine.com/blake3"
	_ "modernc.org/sqlite"
)

//go:embed migrations/*.sql
var embedMigrations embed.FS

// Sentinel errors
var (
	// ErrNotFound is returned when a key has no stored value.
	ErrNotFound = errors.New("key not found")
	// ErrCorrupt is returned when a stored value fails its checksum or
	// cannot be decoded.
	ErrCorrupt = errors.New("stored value corrupt")
)

// Store is a SQLite-backed key-value store.
type Store struct {
	db *sql.DB
}

// Open opens (creating if needed) the store at path and runs migrations.
// Use ":memory:" for an ephemeral store in tests.
func Open(path string) (*Store, error) {
	db, err := sql.Open("sqlite", path+"?_pragma=journal_mode(WAL)&_pragma=busy_timeout(5000)")
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}
	// modernc sqlite is single-writer; serialize access through one conn.
	db.SetMaxOpenConns(1)

	goose.SetBaseFS(embedMigrations)
	if err := goose.SetDialect("sqlite3"); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to set migration dialect: %w", err)
	}
	if err := goose.Up(db, "migrations"); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to run migrations: %w", err)
	}

	return &Store{db: db}, nil
}

// Close closes the underlying database.
func (s *Store) Close() error {
	return s.db.Close()
}

// Ping verifies the database is reachable. Used by readiness checks.
func (s *Store) Ping(ctx context.Context) error {
	return s.db.PingContext(ctx)
}

// Put serializes v as JSON and writes it under key, overwriting any
// previous value.
func (s *Store) Put(ctx context.Context, key string, v any) error {
	raw, err := json.Marshal(v)
	if err != nil {
		return fmt.Errorf("failed to encode value for %q: %w", key, err)
	}

	sum := blake3.Sum256(raw)
	stored := compress(raw)

	_, err = s.db.ExecContext(ctx, `
		INSERT INTO kv (key, value, raw_len, checksum, updated_at)
		VALUES (?, ?, ?, ?, ?)
		ON CONFLICT(key) DO UPDATE SET
			value = excluded.value,
			raw_len = excluded.raw_len,
			checksum = excluded.checksum,
			updated_at = excluded.updated_at`,
		key, stored, len(raw), hex.EncodeToString(sum[:]), time.Now().UnixMilli())
	if err != nil {
		return fmt.Errorf("failed to write %q: %w", key, err)
	}
	return nil
}

// Get reads the value under key into out. Returns ErrNotFound when the key
// is absent and ErrCorrupt when the stored bytes fail verification.
func (s *Store) Get(ctx context.Context, key string, out any) error {
	var (
		stored   []byte
		rawLen   int
		checksum string
	)
	err := s.db.QueryRowContext(ctx,
		`SELECT value, raw_len, checksum FROM kv WHERE key = ?`, key).
		Scan(&stored, &rawLen, &checksum)
	if errors.Is(err, sql.ErrNoRows) {
		return fmt.Errorf("%w: %q", ErrNotFound, key)
	}
	if err != nil {
		return fmt.Errorf("failed to read %q: %w", key, err)
	}

	raw, err := decompress(stored, rawLen)
	if err != nil {
		return fmt.Errorf("%w: %q: %v", ErrCorrupt, key, err)
	}

	sum := blake3.Sum256(raw)
	if hex.EncodeToString(sum[:]) != checksum {
		return fmt.Errorf("%w: %q: checksum mismatch", ErrCorrupt, key)
	}

	if err := json.Unmarshal(raw, out); err != nil {
		return fmt.Errorf("%w: %q: %v", ErrCorrupt, key, err)
	}
	return nil
}

// Delete removes the value under key. Deleting an absent key is not an
// error.
func (s *Store) Delete(ctx context.Context, key string) error {
	if _, err := s.db.ExecContext(ctx, `DELETE FROM kv WHERE key = ?`, key); err != nil {
		return fmt.Errorf("failed to delete %q: %w", key, err)
	}
	return nil
}

// PutTime stores a millisecond epoch timestamp under key.
func (s *Store) PutTime(ctx context.Context, key string, t time.Time) error {
	return s.Put(ctx, key, t.UnixMilli())
}

// GetTime reads a millisecond epoch timestamp. A missing key returns the
// zero time without error; the scheduler treats that as "never".
func (s *Store) GetTime(ctx context.Context, key string) (time.Time, error) {
	var millis int64
	err := s.Get(ctx, key, &millis)
	if errors.Is(err, ErrNotFound) {
		return time.Time{}, nil
	}
	if err != nil {
		return time.Time{}, err
	}
	return time.UnixMilli(millis), nil
}

// compress lz4-compresses raw, falling back to raw bytes when the block is
// incompressible. decompress distinguishes the cases by comparing stored
// length to raw_len.
func compress(raw []byte) []byte {
	buf := make([]byte, lz4.CompressBlockBound(len(raw)))
	var c lz4.Compressor
	n, err := c.CompressBlock(raw, buf)
	if err != nil || n == 0 || n >= len(raw) {
		return raw
	}
	return buf[:n]
}

func decompress(stored []byte, rawLen int) ([]byte, error) {
	if len(stored) == rawLen {
		return stored, nil
	}
	raw := make([]byte, rawLen)
	n, err := lz4.UncompressBlock(stored, raw)
	if err != nil {
		return nil, err
	}
	if n != rawLen {
		return nil, fmt.Errorf("decompressed %d bytes, want %d", n, rawLen)
	}
	return raw, nil
}

// Keys used by the save-slot manager.

// SlotKey is the storage key for a slot's garden record.
func SlotKey(slotID int) string { return fmt.Sprintf("save-slot-%d", slotID) }

// LastSaveKey is the storage key for a slot's last explicit save time.
func LastSaveKey(slotID int) string { return fmt.Sprintf("last-save-time-%d", slotID) }

// AdminChangeKey is the storage key for a slot's last admin mutation time.
func AdminChangeKey(slotID int) string { return fmt.Sprintf("admin-change-time-%d", slotID) }
