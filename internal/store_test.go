package pooltop

import (
	"errors"
	"path/filepath"
	"testing"
)

func TestAddressStore(t *testing.T) {
	t.Parallel()
	path := filepath.Join(t.TempDir(), "pooltop", "config.yaml")

	store, err := NewAddressStore(path)
	if err != nil {
		t.Fatalf("unexpected error on missing file: %v", err)
	}
	if got := store.Load(); got != "" {
		t.Fatalf("unexpected address: got %q want empty", got)
	}

	if _, err := store.Save("short"); !errors.Is(err, ErrInvalidAddress) {
		t.Fatalf("unexpected error: got %v want %v", err, ErrInvalidAddress)
	}
	if _, err := store.Save(" " + testAddress + "\n"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	reopened, err := NewAddressStore(path)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got := reopened.Load(); got != testAddress {
		t.Fatalf("unexpected address: got %q want %q", got, testAddress)
	}

	if err := reopened.Clear(); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	cleared, err := NewAddressStore(path)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got := cleared.Load(); got != "" {
		t.Fatalf("unexpected address after clear: got %q", got)
	}
}
