package system

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestFindLatestImage(t *testing.T) {
	dir := t.TempDir()
	base := time.Now().Add(-time.Hour)

	files := []string{"old.png", "newest.jpg", "skip.txt"}
	for i, name := range files {
		path := filepath.Join(dir, name)
		if err := os.WriteFile(path, []byte("x"), 0644); err != nil {
			t.Fatal(err)
		}
		mt := base.Add(time.Duration(i) * time.Minute)
		if err := os.Chtimes(path, mt, mt); err != nil {
			t.Fatal(err)
		}
	}

	got, err := FindLatestImage(dir)
	if err != nil {
		t.Fatalf("FindLatestImage: %v", err)
	}
	if filepath.Base(got) != "newest.jpg" {
		t.Errorf("got %q, want newest.jpg", got)
	}
}

func TestFindLatestImageEmpty(t *testing.T) {
	if _, err := FindLatestImage(t.TempDir()); err == nil {
		t.Error("expected error for directory without images")
	}
}

func TestMemorySnapshot(t *testing.T) {
	stats := MemorySnapshot()
	if stats.TotalMB == 0 {
		t.Skip("memory stats unavailable on this platform")
	}
	if stats.AvailableMB > stats.TotalMB {
		t.Errorf("available %d > total %d", stats.AvailableMB, stats.TotalMB)
	}
}
