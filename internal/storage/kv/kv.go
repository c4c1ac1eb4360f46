// Package kv provides the durable local key/value store backing the history
// log. Values are whole JSON blobs written in one read-modify-write step;
// there are no partial or incremental writes.
package kv

// Store is a durable string key/value store.
type Store interface {
	// Get returns the value for key. The second return is false when the key
	// is absent.
	Get(key string) (string, bool, error)

	// Set overwrites the value for key in a single atomic step.
	Set(key, value string) error

	// Delete removes key. Deleting an absent key is not an error.
	Delete(key string) error

	// Close releases any underlying resources.
	Close() error
}
