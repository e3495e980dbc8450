package interfaces

import (
	"context"

	json "github.com/goccy/go-json"
)

type CompressorInterface interface {
	Compress(val []byte) ([]byte, error)
	Decompress(val []byte) ([]byte, error)
	Close()
}

// StoreInterface is a key-value store shared by the daemon and the panel.
// Get returns only the keys that are present.
type StoreInterface interface {
	Get(ctx context.Context, keys ...string) (map[string]json.RawMessage, error)
	Set(ctx context.Context, values map[string]any) error
	Remove(ctx context.Context, keys ...string) error
}
