// Package datastore is a small JSON-file-backed key/value store. Values are
// kept in memory as raw JSON and flushed to disk by a background autosave
// loop; writes go through a temp file rename so a crash never leaves a
// half-written store behind.
package datastore

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"sync"
	"time"
)

// DefaultAutoSaveInterval is used when Config.AutoSaveInterval is zero.
const DefaultAutoSaveInterval = 10 * time.Second

// Config holds datastore options.
type Config struct {
	FilePath         string
	AutoSaveInterval time.Duration
}

// DataStore is a persistent string-keyed store of JSON values.
// Safe for concurrent use.
type DataStore struct {
	mu       sync.RWMutex
	data     map[string]json.RawMessage
	file     string
	lastHash string

	cancel context.CancelFunc
	done   chan struct{}

	closeMu sync.Mutex
	closed  bool
}

// New opens (or creates) a datastore at filePath with default options.
func New(filePath string) (*DataStore, error) {
	return NewWithConfig(&Config{FilePath: filePath})
}

// NewWithConfig opens (or creates) a datastore with the given options and
// starts its autosave loop.
func NewWithConfig(cfg *Config) (*DataStore, error) {
	if cfg == nil || cfg.FilePath == "" {
		return nil, errors.New("datastore: file path is required")
	}
	interval := cfg.AutoSaveInterval
	if interval <= 0 {
		interval = DefaultAutoSaveInterval
	}

	ds := &DataStore{
		data: make(map[string]json.RawMessage),
		file: cfg.FilePath,
		done: make(chan struct{}),
	}
	if err := ds.load(); err != nil {
		return nil, err
	}

	ctx, cancel := context.WithCancel(context.Background())
	ds.cancel = cancel
	go ds.autosave(ctx, interval)

	return ds, nil
}

// Get unmarshals the value stored under key into out. The bool result
// reports whether the key exists.
func (ds *DataStore) Get(key string, out any) (bool, error) {
	ds.mu.RLock()
	raw, ok := ds.data[key]
	ds.mu.RUnlock()
	if !ok {
		return false, nil
	}
	if err := json.Unmarshal(raw, out); err != nil {
		return true, fmt.Errorf("datastore: decode %q: %w", key, err)
	}
	return true, nil
}

// Put stores value under key, replacing any previous value.
func (ds *DataStore) Put(key string, value any) error {
	raw, err := json.Marshal(value)
	if err != nil {
		return fmt.Errorf("datastore: encode %q: %w", key, err)
	}
	ds.mu.Lock()
	ds.data[key] = raw
	ds.mu.Unlock()
	return nil
}

// Delete removes key from the store.
func (ds *DataStore) Delete(key string) {
	ds.mu.Lock()
	delete(ds.data, key)
	ds.mu.Unlock()
}

// Keys returns all stored keys.
func (ds *DataStore) Keys() []string {
	ds.mu.RLock()
	defer ds.mu.RUnlock()
	keys := make([]string, 0, len(ds.data))
	for k := range ds.data {
		keys = append(keys, k)
	}
	return keys
}

// Save flushes the store to disk. Skipped when nothing changed since the
// last save.
func (ds *DataStore) Save() error {
	ds.mu.RLock()
	raw, err := json.MarshalIndent(ds.data, "", "  ")
	ds.mu.RUnlock()
	if err != nil {
		return fmt.Errorf("datastore: encode store: %w", err)
	}

	sum := sha256.Sum256(raw)
	hash := hex.EncodeToString(sum[:])

	ds.mu.Lock()
	defer ds.mu.Unlock()
	if hash == ds.lastHash {
		return nil
	}

	tmp := ds.file + ".tmp"
	if err := os.MkdirAll(filepath.Dir(ds.file), 0o755); err != nil {
		return fmt.Errorf("datastore: create dir: %w", err)
	}
	if err := os.WriteFile(tmp, raw, 0o644); err != nil {
		return fmt.Errorf("datastore: write temp file: %w", err)
	}
	if err := os.Rename(tmp, ds.file); err != nil {
		return fmt.Errorf("datastore: replace %s: %w", ds.file, err)
	}
	ds.lastHash = hash
	return nil
}

// Close stops the autosave loop and flushes once more.
func (ds *DataStore) Close() error {
	ds.closeMu.Lock()
	defer ds.closeMu.Unlock()
	if ds.closed {
		return nil
	}
	ds.closed = true
	ds.cancel()
	<-ds.done
	return ds.Save()
}

func (ds *DataStore) load() error {
	raw, err := os.ReadFile(ds.file)
	if errors.Is(err, os.ErrNotExist) {
		return nil
	}
	if err != nil {
		return fmt.Errorf("datastore: read %s: %w", ds.file, err)
	}
	if len(raw) == 0 {
		return nil
	}
	if err := json.Unmarshal(raw, &ds.data); err != nil {
		return fmt.Errorf("datastore: parse %s: %w", ds.file, err)
	}
	sum := sha256.Sum256(raw)
	ds.lastHash = hex.EncodeToString(sum[:])
	return nil
}

func (ds *DataStore) autosave(ctx context.Context, interval time.Duration) {
	defer close(ds.done)
	ticker := time.NewTicker(interval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			if err := ds.Save(); err != nil {
				log.Printf("[WARN] datastore autosave: %v", err)
			}
		}
	}
}
