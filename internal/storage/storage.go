// Package storage is the durable key-value layer behind saved and
// in-progress games.
package storage

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"
)

// ErrNotFound is returned by Get for missing or expired keys.
var ErrNotFound = errors.New("key not found")

// ErrInvalidKey rejects keys that cannot be stored safely.
var ErrInvalidKey = errors.New("invalid key")

// KV stores opaque values under string keys.
type KV interface {
	Get(ctx context.Context, key string) ([]byte, error)
	Put(ctx context.Context, key string, value []byte) error
	Delete(ctx context.Context, key string) error
	// Cleanup removes every key of sessions with no write within maxAge and
	// reports how many keys went. Keys of one session expire together.
	Cleanup(ctx context.Context, maxAge time.Duration) (int, error)
	Close() error
}

// Logical keys used per player session.
const (
	SavedGamesKey  = "bingoSavedGames"
	CurrentGameKey = "bingoCurrentGame"
)

// Key joins a session id and a logical key into the physical key.
func Key(session, logical string) string {
	return session + "/" + logical
}

// splitKey validates a physical key and returns its two parts.
func splitKey(key string) (session, logical string, err error) {
	session, logical, ok := strings.Cut(key, "/")
	if !ok || session == "" || logical == "" || strings.Contains(logical, "/") ||
		strings.Contains(key, "..") || strings.ContainsAny(key, `\`+"\x00") {
		return "", "", fmt.Errorf("%q: %w", key, ErrInvalidKey)
	}
	return session, logical, nil
}

// Drivers accepted by Open.
const (
	DriverMemory   = "memory"
	DriverFile     = "file"
	DriverSQLite   = "sqlite"
	DriverPostgres = "postgres"
)

// Config selects and configures a backend.
type Config struct {
	Driver      string
	DataDir     string
	SQLitePath  string
	DatabaseURL string
	// MaxAge makes the file backend treat older entries as missing.
	MaxAge time.Duration
}

// Open builds the backend named by cfg.Driver.
func Open(ctx context.Context, cfg Config) (KV, error) {
	switch strings.ToLower(cfg.Driver) {
	case DriverMemory:
		return NewMemory(), nil
	case DriverFile, "":
		return NewFile(cfg.DataDir, cfg.MaxAge)
	case DriverSQLite:
		return OpenSQLite(ctx, cfg.SQLitePath)
	case DriverPostgres:
		return OpenPostgres(ctx, cfg.DatabaseURL)
	}
	return nil, fmt.Errorf("unknown store driver %q", cfg.Driver)
}
