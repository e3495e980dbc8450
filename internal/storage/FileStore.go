package storage

import (
	"bytes"
	"context"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"tabsleep/internal/providers"
	"tabsleep/internal/storage/interfaces"
	"tabsleep/internal/structures"
	"time"

	json "github.com/goccy/go-json"
)

// Keys persisted in the store.
const (
	KeyWhitelist         = "whitelist"
	KeyInactivityTimeout = "inactivityTimeout"
	KeyDarkMode          = "darkMode"
	KeySuspendedTabs     = "suspendedTabs"
	KeyMemorySaved       = "memorySaved"
)

// FileStore keeps every key in a single zstd-compressed JSON document.
// The file is re-read on each call so that processes sharing the
// path see each other's writes. There are no cross-process transactions.
type FileStore struct {
	mu         sync.Mutex
	path       string
	compressor interfaces.CompressorInterface
	logger     providers.Logger
	metrics    providers.MetricsProviderInterface
}

func NewFileStore(conf *structures.Config, compressor interfaces.CompressorInterface, logger providers.Logger, metrics providers.MetricsProviderInterface) interfaces.StoreInterface {
	return &FileStore{
		path:       conf.Persistence.FilePath,
		compressor: compressor,
		logger:     logger,
		metrics:    metrics,
	}
}

func (f *FileStore) Get(ctx context.Context, keys ...string) (map[string]json.RawMessage, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	f.mu.Lock()
	defer f.mu.Unlock()

	doc, err := f.load()
	if err != nil {
		return nil, err
	}

	result := make(map[string]json.RawMessage, len(keys))
	for _, key := range keys {
		if val, ok := doc[key]; ok {
			result[key] = val
		}
	}
	return result, nil
}

func (f *FileStore) Set(ctx context.Context, values map[string]any) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	f.mu.Lock()
	defer f.mu.Unlock()

	doc, err := f.load()
	if err != nil {
		return err
	}
	for key, val := range values {
		raw, err := json.Marshal(val)
		if err != nil {
			return fmt.Errorf("unable to encode %s: %w", key, err)
		}
		doc[key] = raw
	}
	return f.save(doc)
}

func (f *FileStore) Remove(ctx context.Context, keys ...string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	f.mu.Lock()
	defer f.mu.Unlock()

	doc, err := f.load()
	if err != nil {
		return err
	}
	for _, key := range keys {
		delete(doc, key)
	}
	return f.save(doc)
}

func (f *FileStore) load() (map[string]json.RawMessage, error) {
	doc := make(map[string]json.RawMessage)

	data, err := os.ReadFile(f.path)
	if err != nil {
		if os.IsNotExist(err) {
			return doc, nil
		}
		return nil, err
	}
	if len(data) == 0 {
		return doc, nil
	}

	// Hand-written stores are plain JSON.
	if trimmed := bytes.TrimSpace(data); len(trimmed) == 0 || trimmed[0] != '{' {
		data, err = f.compressor.Decompress(data)
		if err != nil {
			return nil, fmt.Errorf("unable to decompress store %s: %w", f.path, err)
		}
	}

	if err := json.Unmarshal(data, &doc); err != nil {
		f.logger.Warnf(providers.TypeApp, "Store %s is not a JSON object", f.path)
		return nil, err
	}
	return doc, nil
}

func (f *FileStore) save(doc map[string]json.RawMessage) error {
	start := time.Now()
	defer func() {
		f.metrics.ObservePersistenceDuration(time.Since(start))
	}()

	jsonData, err := json.Marshal(doc)
	if err != nil {
		return err
	}
	data, err := f.compressor.Compress(jsonData)
	if err != nil {
		return err
	}

	if err := os.MkdirAll(filepath.Dir(f.path), 0o755); err != nil {
		return err
	}

	tmpFile := f.path + ".tmp"
	file, err := os.Create(tmpFile)
	if err != nil {
		return err
	}

	_, err = file.Write(data)
	if err != nil {
		file.Close()
		os.Remove(tmpFile)
		return err
	}

	if err = file.Sync(); err != nil {
		file.Close()
		os.Remove(tmpFile)
		return err
	}

	if err = file.Close(); err != nil {
		os.Remove(tmpFile)
		return err
	}

	return os.Rename(tmpFile, f.path)
}

// Decode unmarshals key from a Get result into dst. It reports whether the
// key was present.
func Decode(values map[string]json.RawMessage, key string, dst any) (bool, error) {
	raw, ok := values[key]
	if !ok || len(raw) == 0 || string(raw) == "null" {
		return false, nil
	}
	if err := json.Unmarshal(raw, dst); err != nil {
		return true, fmt.Errorf("unable to decode %s: %w", key, err)
	}
	return true, nil
}
