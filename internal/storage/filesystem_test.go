package storage

import (
	"context"
	"os"
	"path/filepath"
	"testing"
)

func TestFileStoreWrite(t *testing.T) {
	dir := t.TempDir()
	store, err := NewFileStore(dir)
	if err != nil {
		t.Fatalf("NewFileStore() error = %v", err)
	}

	key, err := store.Write(context.Background(), "./out/../out/quang-hop.html", []byte("<html>"))
	if err != nil {
		t.Fatalf("Write() error = %v", err)
	}
	if key != "out/quang-hop.html" {
		t.Fatalf("key = %q", key)
	}
	got, err := os.ReadFile(filepath.Join(dir, "out", "quang-hop.html"))
	if err != nil || string(got) != "<html>" {
		t.Fatalf("ReadFile() = %q, %v", got, err)
	}
	path, err := store.Path(key)
	if err != nil || !filepath.IsAbs(path) {
		t.Fatalf("Path() = %q, %v", path, err)
	}
}

func TestFileStoreRejectsEscapes(t *testing.T) {
	store, err := NewFileStore(t.TempDir())
	if err != nil {
		t.Fatalf("NewFileStore() error = %v", err)
	}
	for _, key := range []string{"", "../secret", "a/../../b", "."} {
		if _, err := store.Write(context.Background(), key, []byte("x")); err == nil {
			t.Fatalf("Write(%q) expected error", key)
		}
	}

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	if _, err := store.Write(ctx, "a.html", []byte("x")); err == nil {
		t.Fatal("expected error for cancelled context")
	}
}
