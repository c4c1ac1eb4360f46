// Package history implements the bounded durable log of past recommendations.
//
// The full entry sequence is mirrored as a single JSON blob into the
// key/value store on every mutation. Keeping the writes whole-blob is what
// motivates the entry cap: the blob can never grow without bound.
package history

import (
	"bytes"
	"encoding/base64"
	"encoding/json"
	"log/slog"
	"sync"

	"github.com/masterclass-labs/architect-advisor/internal/domain"
	"github.com/masterclass-labs/architect-advisor/internal/storage/kv"
)

// StorageKey is the fixed key the history blob lives under.
const StorageKey = "advisor.history.v1"

// MaxEntries caps the log length. Appends beyond the cap silently drop the
// oldest entries.
const MaxEntries = 50

// Store is an ordered, bounded, durable log of domain.HistoryEntry, newest
// first. The order invariant is insertion order, not timestamp order.
type Store struct {
	mu      sync.Mutex
	entries []domain.HistoryEntry
	kv      kv.Store
	logger  *slog.Logger
}

// New loads any persisted history from the key/value store. A missing or
// corrupt blob degrades to an empty history; corruption is logged for
// diagnosis but never surfaced as an error.
func New(store kv.Store, logger *slog.Logger) *Store {
	s := &Store{kv: store, logger: logger}
	s.loadAll()
	return s
}

func (s *Store) loadAll() {
	blob, ok, err := s.kv.Get(StorageKey)
	if err != nil {
		s.logger.Warn("history blob unreadable, starting empty", slog.String("error", err.Error()))
		return
	}
	if !ok {
		return
	}
	var entries []domain.HistoryEntry
	if err := json.Unmarshal([]byte(blob), &entries); err != nil {
		s.logger.Warn("history blob corrupt, starting empty",
			slog.String("kind", string(domain.ErrorKindStorageCorruption)),
			slog.String("error", err.Error()),
		)
		return
	}
	s.entries = entries
}

// Append inserts the entry at the front, truncates the tail beyond
// MaxEntries, and persists the whole sequence.
func (s *Store) Append(entry domain.HistoryEntry) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.entries = append([]domain.HistoryEntry{entry}, s.entries...)
	if len(s.entries) > MaxEntries {
		s.entries = s.entries[:MaxEntries]
	}
	return s.persist()
}

// Entries returns a copy of the current sequence, newest first.
func (s *Store) Entries() []domain.HistoryEntry {
	s.mu.Lock()
	defer s.mu.Unlock()

	out := make([]domain.HistoryEntry, len(s.entries))
	copy(out, s.entries)
	return out
}

// Len returns the current number of entries.
func (s *Store) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.entries)
}

// Clear resets to an empty sequence and removes the durable key.
func (s *Store) Clear() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.entries = nil
	return s.kv.Delete(StorageKey)
}

// ExportPortable serializes the current sequence to JSON and text-encodes it
// into one opaque string the user can carry elsewhere. The encoding is
// reversible for arbitrary JSON including non-ASCII text.
func (s *Store) ExportPortable() (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	blob, err := s.marshal()
	if err != nil {
		return "", err
	}
	return base64.StdEncoding.EncodeToString(blob), nil
}

// ImportPortable reverses the encoding and, only if the decoded value is
// structurally an entry sequence, atomically replaces the entire current
// history and persists it. On any failure the existing history is untouched.
func (s *Store) ImportPortable(key string) error {
	blob, err := base64.StdEncoding.DecodeString(key)
	if err != nil {
		return domain.ErrPortabilityDecode("portability key is not valid").WithCause(err)
	}
	// json.Unmarshal accepts null into a slice without error; only an actual
	// JSON array counts as a sequence.
	trimmed := bytes.TrimLeft(blob, " \t\r\n")
	if len(trimmed) == 0 || trimmed[0] != '[' {
		return domain.ErrPortabilityDecode("portability key does not decode to a history sequence")
	}
	var entries []domain.HistoryEntry
	if err := json.Unmarshal(blob, &entries); err != nil {
		return domain.ErrPortabilityDecode("portability key does not decode to a history sequence").WithCause(err)
	}
	if len(entries) > MaxEntries {
		entries = entries[:MaxEntries]
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	prev := s.entries
	s.entries = entries
	if err := s.persist(); err != nil {
		s.entries = prev
		return err
	}
	return nil
}

// persist writes the whole sequence as one blob. Callers hold s.mu.
func (s *Store) persist() error {
	blob, err := s.marshal()
	if err != nil {
		return err
	}
	return s.kv.Set(StorageKey, string(blob))
}

func (s *Store) marshal() ([]byte, error) {
	if s.entries == nil {
		return []byte("[]"), nil
	}
	return json.Marshal(s.entries)
}
