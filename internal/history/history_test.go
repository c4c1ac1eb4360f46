package history

import (
	"encoding/base64"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"reflect"
	"testing"
	"time"

	"github.com/masterclass-labs/architect-advisor/internal/domain"
	"github.com/masterclass-labs/architect-advisor/internal/storage/kv"
)

func discard() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func newStore(t *testing.T) (*Store, kv.Store) {
	t.Helper()
	backing, err := kv.NewFileStore(t.TempDir())
	if err != nil {
		t.Fatalf("failed to create kv store: %v", err)
	}
	return New(backing, discard()), backing
}

func entry(i int) domain.HistoryEntry {
	return domain.HistoryEntry{
		ID:             fmt.Sprintf("id-%d", i),
		CreatedAt:      time.Date(2026, 8, 1, 0, 0, 0, 0, time.UTC).Add(time.Duration(i) * time.Minute),
		OriginalPrompt: fmt.Sprintf("prompt %d", i),
		Result: domain.RecommendationResult{
			RecommendedService:  fmt.Sprintf("Service %d", i),
			Justification:       "fits the workload",
			ImplementationSteps: []domain.ImplementationStep{{Phase: "Setup", Details: "provision"}},
			DiagramDefinition:   "graph TD\n  A --> B",
		},
	}
}

func TestAppendNewestFirst(t *testing.T) {
	s, _ := newStore(t)

	for i := 0; i < 3; i++ {
		if err := s.Append(entry(i)); err != nil {
			t.Fatalf("append: %v", err)
		}
	}

	entries := s.Entries()
	if len(entries) != 3 {
		t.Fatalf("got %d entries, want 3", len(entries))
	}
	for i, want := range []string{"id-2", "id-1", "id-0"} {
		if entries[i].ID != want {
			t.Errorf("entries[%d].ID = %s, want %s", i, entries[i].ID, want)
		}
	}
}

func TestAppendBound(t *testing.T) {
	s, _ := newStore(t)

	for i := 0; i < MaxEntries+1; i++ {
		if err := s.Append(entry(i)); err != nil {
			t.Fatalf("append %d: %v", i, err)
		}
	}

	entries := s.Entries()
	if len(entries) != MaxEntries {
		t.Fatalf("got %d entries, want %d", len(entries), MaxEntries)
	}
	for _, e := range entries {
		if e.ID == "id-0" {
			t.Error("oldest entry survived the cap")
		}
	}
	if entries[0].ID != fmt.Sprintf("id-%d", MaxEntries) {
		t.Errorf("newest entry is %s", entries[0].ID)
	}
}

func TestPersistenceAcrossRestart(t *testing.T) {
	backing, err := kv.NewFileStore(t.TempDir())
	if err != nil {
		t.Fatalf("failed to create kv store: %v", err)
	}

	s := New(backing, discard())
	if err := s.Append(entry(1)); err != nil {
		t.Fatalf("append: %v", err)
	}

	reopened := New(backing, discard())
	entries := reopened.Entries()
	if len(entries) != 1 || entries[0].ID != "id-1" {
		t.Fatalf("reloaded entries = %+v", entries)
	}
}

func TestCorruptBlobDegradesToEmpty(t *testing.T) {
	backing, err := kv.NewFileStore(t.TempDir())
	if err != nil {
		t.Fatalf("failed to create kv store: %v", err)
	}
	if err := backing.Set(StorageKey, "{not json"); err != nil {
		t.Fatalf("seed corrupt blob: %v", err)
	}

	s := New(backing, discard())
	if got := s.Len(); got != 0 {
		t.Errorf("corrupt blob produced %d entries, want 0", got)
	}
}

func TestClearRemovesKey(t *testing.T) {
	s, backing := newStore(t)
	if err := s.Append(entry(1)); err != nil {
		t.Fatalf("append: %v", err)
	}

	if err := s.Clear(); err != nil {
		t.Fatalf("clear: %v", err)
	}
	if s.Len() != 0 {
		t.Error("history not empty after clear")
	}
	if _, ok, _ := backing.Get(StorageKey); ok {
		t.Error("durable key still present after clear")
	}
}

func TestPortableRoundTrip(t *testing.T) {
	for _, count := range []int{0, 1, 7, MaxEntries} {
		t.Run(fmt.Sprintf("%d entries", count), func(t *testing.T) {
			s, _ := newStore(t)
			for i := 0; i < count; i++ {
				if err := s.Append(entry(i)); err != nil {
					t.Fatalf("append: %v", err)
				}
			}
			before := s.Entries()

			key, err := s.ExportPortable()
			if err != nil {
				t.Fatalf("export: %v", err)
			}
			if err := s.ImportPortable(key); err != nil {
				t.Fatalf("import: %v", err)
			}

			if !reflect.DeepEqual(before, s.Entries()) {
				t.Errorf("round trip changed entries:\nbefore %+v\nafter  %+v", before, s.Entries())
			}
		})
	}
}

func TestPortableNonASCII(t *testing.T) {
	s, _ := newStore(t)
	e := entry(1)
	e.OriginalPrompt = "低レイテンシのグローバル キー値ストア"
	if err := s.Append(e); err != nil {
		t.Fatalf("append: %v", err)
	}

	key, err := s.ExportPortable()
	if err != nil {
		t.Fatalf("export: %v", err)
	}
	if err := s.ImportPortable(key); err != nil {
		t.Fatalf("import: %v", err)
	}
	if got := s.Entries()[0].OriginalPrompt; got != e.OriginalPrompt {
		t.Errorf("non-ASCII prompt mangled: %q", got)
	}
}

func TestImportRejectsInvalidKey(t *testing.T) {
	s, _ := newStore(t)
	if err := s.Append(entry(1)); err != nil {
		t.Fatalf("append: %v", err)
	}
	before := s.Entries()

	for _, key := range []string{
		"not a valid encoded key",
		"AAAA",     // valid base64, not JSON
		"e30=",     // valid base64, JSON object, not a sequence
		"Im5vcGUi", // valid base64, JSON string
		"bnVsbA==", // valid base64, JSON null
		"IG51bGw=", // JSON null behind leading whitespace
	} {
		err := s.ImportPortable(key)
		if err == nil {
			t.Fatalf("import of %q succeeded", key)
		}
		var de *domain.Error
		if !errors.As(err, &de) || de.Kind != domain.ErrorKindPortabilityDecode {
			t.Errorf("import of %q: got %v, want portability_decode", key, err)
		}
		if !reflect.DeepEqual(before, s.Entries()) {
			t.Errorf("failed import of %q mutated history", key)
		}
	}
}

func TestImportReplacesWholeSequence(t *testing.T) {
	s, _ := newStore(t)
	for i := 0; i < 5; i++ {
		if err := s.Append(entry(i)); err != nil {
			t.Fatalf("append: %v", err)
		}
	}

	replacement := []domain.HistoryEntry{entry(100)}
	blob, err := json.Marshal(replacement)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	if err := s.ImportPortable(base64.StdEncoding.EncodeToString(blob)); err != nil {
		t.Fatalf("import: %v", err)
	}

	entries := s.Entries()
	if len(entries) != 1 || entries[0].ID != "id-100" {
		t.Errorf("import did not replace sequence: %+v", entries)
	}
}
