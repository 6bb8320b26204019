package history

import (
	"fmt"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/rs/zerolog"
)

func testLog(t *testing.T, max int) *Log {
	t.Helper()
	return New(filepath.Join(t.TempDir(), "history", "generation_history.json"), max, zerolog.Nop())
}

func TestAppendAndRead(t *testing.T) {
	l := testLog(t, 100)

	entry := Entry{
		Timestamp:       time.Date(2026, 8, 1, 12, 0, 0, 0, time.UTC),
		TimestampPrompt: "[0s: medium shot]",
		HunyuanPrompt:   "The camera opens...",
		Duration:        30,
		CustomAction:    "waves",
	}
	if err := l.Append(entry); err != nil {
		t.Fatalf("Append: %v", err)
	}

	entries, err := l.Entries()
	if err != nil {
		t.Fatalf("Entries: %v", err)
	}
	if len(entries) != 1 {
		t.Fatalf("len = %d, want 1", len(entries))
	}
	if entries[0].TimestampPrompt != entry.TimestampPrompt || entries[0].Duration != 30 {
		t.Errorf("round trip mismatch: %+v", entries[0])
	}
}

func TestEmptyWhenMissing(t *testing.T) {
	l := testLog(t, 100)

	entries, err := l.Entries()
	if err != nil {
		t.Fatalf("Entries: %v", err)
	}
	if len(entries) != 0 {
		t.Errorf("len = %d, want 0", len(entries))
	}
}

func TestCapKeepsNewest(t *testing.T) {
	l := testLog(t, 3)

	for i := 0; i < 5; i++ {
		err := l.Append(Entry{TimestampPrompt: fmt.Sprintf("prompt-%d", i)})
		if err != nil {
			t.Fatalf("Append %d: %v", i, err)
		}
	}

	entries, err := l.Entries()
	if err != nil {
		t.Fatalf("Entries: %v", err)
	}
	if len(entries) != 3 {
		t.Fatalf("len = %d, want 3", len(entries))
	}
	if entries[0].TimestampPrompt != "prompt-2" || entries[2].TimestampPrompt != "prompt-4" {
		t.Errorf("wrong entries kept: %+v", entries)
	}
}

func TestCorruptFileStartsFresh(t *testing.T) {
	l := testLog(t, 100)

	if err := os.MkdirAll(filepath.Dir(l.path), 0755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(l.path, []byte("{not json"), 0644); err != nil {
		t.Fatal(err)
	}

	entries, err := l.Entries()
	if err != nil {
		t.Fatalf("Entries: %v", err)
	}
	if len(entries) != 0 {
		t.Errorf("len = %d, want 0", len(entries))
	}

	if err := l.Append(Entry{TimestampPrompt: "recovered"}); err != nil {
		t.Fatalf("Append after corruption: %v", err)
	}
	entries, _ = l.Entries()
	if len(entries) != 1 || entries[0].TimestampPrompt != "recovered" {
		t.Errorf("recovery failed: %+v", entries)
	}
}
