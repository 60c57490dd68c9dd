package interfaces

import (
	"context"
	"errors"
	"time"
)

// ErrKeyNotFound is returned when a key does not exist in the KV store
var ErrKeyNotFound = errors.New("key not found")

// KeyValuePair represents a stored key/value entry with metadata
type KeyValuePair struct {
	Key         string    `badgerhold:"key" json:"key"`
	Value       string    `json:"value"`
	Description string    `json:"description,omitempty"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// KeyValueStorage defines the interface for key/value storage operations.
// Keys are case-insensitive. Used for API keys and runtime settings.
type KeyValueStorage interface {
	// Get retrieves a value by key. Returns ErrKeyNotFound if missing.
	Get(ctx context.Context, key string) (string, error)

	// Set inserts or updates a key/value pair.
	Set(ctx context.Context, key, value, description string) error

	// Delete removes a key. Deleting a missing key is not an error.
	Delete(ctx context.Context, key string) error

	// GetAll returns all pairs keyed by normalized key name.
	GetAll(ctx context.Context) (map[string]string, error)
}
