package media_test

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"log/slog"

	"github.com/ivost9/incidents-backend/internal/storage/media"
)

func newTestLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(bytes.NewBuffer(nil), &slog.HandlerOptions{Level: slog.LevelError}))
}

func TestSave_RoundTrip(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	store, err := media.NewStore(dir, "http://localhost:5000", newTestLogger())
	if err != nil {
		t.Fatalf("NewStore: %v", err)
	}

	payload := []byte{1, 2, 3}
	url, err := store.Save(context.Background(), "flood.png", bytes.NewReader(payload))
	if err != nil {
		t.Fatalf("Save: %v", err)
	}

	if !strings.HasPrefix(url, "http://localhost:5000/uploads/") {
		t.Fatalf("unexpected url %q", url)
	}
	if !strings.HasSuffix(url, ".png") {
		t.Fatalf("original extension lost: %q", url)
	}

	name := url[strings.LastIndex(url, "/")+1:]
	got, err := os.ReadFile(filepath.Join(dir, name))
	if err != nil {
		t.Fatalf("read stored file: %v", err)
	}
	if !bytes.Equal(got, payload) {
		t.Fatalf("stored bytes differ: %v", got)
	}
}

func TestSave_UniqueNames(t *testing.T) {
	t.Parallel()

	store, err := media.NewStore(t.TempDir(), "http://localhost:5000", newTestLogger())
	if err != nil {
		t.Fatalf("NewStore: %v", err)
	}

	seen := make(map[string]bool)
	for i := 0; i < 20; i++ {
		url, err := store.Save(context.Background(), "a.jpg", bytes.NewReader([]byte{byte(i)}))
		if err != nil {
			t.Fatalf("Save #%d: %v", i, err)
		}
		if seen[url] {
			t.Fatalf("name collision: %q", url)
		}
		seen[url] = true
	}
}

func TestSave_NoExtension(t *testing.T) {
	t.Parallel()

	store, err := media.NewStore(t.TempDir(), "http://localhost:5000", newTestLogger())
	if err != nil {
		t.Fatalf("NewStore: %v", err)
	}

	url, err := store.Save(context.Background(), "blob", bytes.NewReader([]byte{42}))
	if err != nil {
		t.Fatalf("Save: %v", err)
	}
	if strings.Contains(url[strings.LastIndex(url, "/"):], ".") {
		t.Fatalf("unexpected extension on %q", url)
	}
}

func TestNewStore_CreatesDir(t *testing.T) {
	t.Parallel()

	dir := filepath.Join(t.TempDir(), "uploads")
	store, err := media.NewStore(dir, "http://localhost:5000", newTestLogger())
	if err != nil {
		t.Fatalf("NewStore: %v", err)
	}

	info, err := os.Stat(store.Dir())
	if err != nil || !info.IsDir() {
		t.Fatalf("uploads dir not created: %v", err)
	}
}
