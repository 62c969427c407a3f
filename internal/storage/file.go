package storage

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/rs/zerolog/log"
)

// File stores one JSON file per key under {dir}/sessions/{session}/.
// A session whose newest file is older than maxAge is treated as missing
// and removed on read.
type File struct {
	dir    string
	maxAge time.Duration
}

// NewFile creates the sessions directory if needed.
func NewFile(dataDir string, maxAge time.Duration) (*File, error) {
	if dataDir == "" {
		dataDir = "data"
	}
	dir := filepath.Join(dataDir, "sessions")
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, fmt.Errorf("create sessions directory: %w", err)
	}
	return &File{dir: dir, maxAge: maxAge}, nil
}

func (f *File) path(key string) (string, error) {
	session, logical, err := splitKey(key)
	if err != nil {
		return "", err
	}
	return filepath.Join(f.dir, session, logical+".json"), nil
}

func (f *File) Get(_ context.Context, key string) ([]byte, error) {
	p, err := f.path(key)
	if err != nil {
		return nil, err
	}
	if _, err := os.Stat(p); err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	sdir := filepath.Dir(p)
	if newest, err := newestModTime(sdir); err == nil && f.maxAge > 0 {
		if age := time.Since(newest); age > f.maxAge {
			log.Info().Str("dir", sdir).Dur("age", age).Dur("max_age", f.maxAge).Msg("session too old, removing")
			_ = os.RemoveAll(sdir)
			return nil, ErrNotFound
		}
	}
	data, err := os.ReadFile(p)
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", p, err)
	}
	return data, nil
}

func (f *File) Put(_ context.Context, key string, value []byte) error {
	p, err := f.path(key)
	if err != nil {
		return err
	}
	if err := os.MkdirAll(filepath.Dir(p), 0755); err != nil {
		return fmt.Errorf("create session directory: %w", err)
	}
	tmp := p + ".tmp"
	if err := os.WriteFile(tmp, value, 0644); err != nil {
		return fmt.Errorf("write %s: %w", tmp, err)
	}
	if err := os.Rename(tmp, p); err != nil {
		return fmt.Errorf("rename %s: %w", tmp, err)
	}
	log.Debug().Str("file", p).Int("bytes", len(value)).Msg("saved session file")
	return nil
}

func (f *File) Delete(_ context.Context, key string) error {
	p, err := f.path(key)
	if err != nil {
		return err
	}
	if err := os.Remove(p); err != nil && !errors.Is(err, os.ErrNotExist) {
		return err
	}
	return nil
}

// newestModTime returns the latest modification time of the files in dir.
func newestModTime(dir string) (time.Time, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return time.Time{}, err
	}
	var newest time.Time
	for _, e := range entries {
		info, err := e.Info()
		if err != nil {
			return time.Time{}, err
		}
		if info.ModTime().After(newest) {
			newest = info.ModTime()
		}
	}
	return newest, nil
}

// Cleanup removes session directories whose newest file is older than maxAge.
func (f *File) Cleanup(_ context.Context, maxAge time.Duration) (int, error) {
	sessions, err := os.ReadDir(f.dir)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return 0, nil
		}
		return 0, err
	}

	cutoff := time.Now().Add(-maxAge)
	removed, failed := 0, 0
	for _, s := range sessions {
		if !s.IsDir() {
			continue
		}
		sdir := filepath.Join(f.dir, s.Name())
		newest, err := newestModTime(sdir)
		if err != nil {
			failed++
			continue
		}
		if !newest.Before(cutoff) {
			continue
		}
		entries, _ := os.ReadDir(sdir)
		if err := os.RemoveAll(sdir); err != nil {
			log.Warn().Err(err).Str("session", s.Name()).Msg("failed to remove old session")
			failed++
			continue
		}
		removed += len(entries)
	}
	log.Info().Int("removed", removed).Int("errors", failed).Msg("session cleanup completed")
	return removed, nil
}

func (f *File) Close() error { return nil }
