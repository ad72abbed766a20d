package storage

import (
	"bytes"
	"context"
	"io"
	"strings"
	"testing"
	"time"

	"github.com/rs/zerolog"

	"github.com/memberhub/media-api/internal/config"
)

func newLocal(t *testing.T, baseURL string) *LocalStorage {
	t.Helper()
	cfg := &config.Config{
		LocalStoragePath:    t.TempDir(),
		LocalStorageBaseURL: baseURL,
	}
	store, err := NewLocalStorage(cfg, zerolog.Nop())
	if err != nil {
		t.Fatalf("create local storage: %v", err)
	}
	return store
}

func TestLocalPutGetDelete(t *testing.T) {
	store := newLocal(t, "")
	ctx := context.Background()
	payload := []byte("blob payload")

	if err := store.Put(ctx, "image/med_1.png", bytes.NewReader(payload), int64(len(payload)), "image/png"); err != nil {
		t.Fatalf("put: %v", err)
	}

	rc, size, contentType, err := store.Get(ctx, "image/med_1.png")
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	defer rc.Close()
	got, err := io.ReadAll(rc)
	if err != nil {
		t.Fatalf("read: %v", err)
	}
	if !bytes.Equal(got, payload) {
		t.Errorf("payload altered on the round trip")
	}
	if size != int64(len(payload)) {
		t.Errorf("size = %d, want %d", size, len(payload))
	}
	if contentType != "image/png" {
		t.Errorf("content type = %q, want image/png", contentType)
	}

	if err := store.Delete(ctx, "image/med_1.png"); err != nil {
		t.Fatalf("delete: %v", err)
	}
	if _, _, _, err := store.Get(ctx, "image/med_1.png"); err == nil {
		t.Errorf("get succeeded after delete")
	}
	if err := store.Delete(ctx, "image/med_1.png"); err == nil {
		t.Errorf("second delete reported success")
	}
}

func TestLocalResolveURL(t *testing.T) {
	ctx := context.Background()
	payload := []byte("x")

	store := newLocal(t, "https://media.test/files/")
	if err := store.Put(ctx, "image/med_1.png", bytes.NewReader(payload), 1, "image/png"); err != nil {
		t.Fatalf("put: %v", err)
	}
	url, err := store.ResolveURL(ctx, "image/med_1.png", time.Minute)
	if err != nil {
		t.Fatalf("resolve: %v", err)
	}
	if url != "https://media.test/files/image/med_1.png" {
		t.Errorf("url = %q", url)
	}

	bare := newLocal(t, "")
	if err := bare.Put(ctx, "image/med_2.png", bytes.NewReader(payload), 1, "image/png"); err != nil {
		t.Fatalf("put: %v", err)
	}
	url, err = bare.ResolveURL(ctx, "image/med_2.png", time.Minute)
	if err != nil {
		t.Fatalf("resolve: %v", err)
	}
	if !strings.HasPrefix(url, "file://") {
		t.Errorf("url = %q, want a file:// URL without a base URL", url)
	}

	if _, err := store.ResolveURL(ctx, "image/missing.png", time.Minute); err == nil {
		t.Errorf("resolve succeeded for a missing blob")
	}
}

func TestLocalHealth(t *testing.T) {
	store := newLocal(t, "")
	if err := store.Health(context.Background()); err != nil {
		t.Errorf("health: %v", err)
	}
}
