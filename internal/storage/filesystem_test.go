package storage

import (
	"context"
	"net/url"
	"strconv"
	"strings"
	"testing"
	"time"
)

func newTestStore(t *testing.T) *FileStore {
	t.Helper()
	store, err := NewFileStore(t.TempDir(), "http://localhost:8080/v1/files", "test-secret")
	if err != nil {
		t.Fatalf("NewFileStore error: %v", err)
	}
	return store
}

func TestNewFileStoreValidation(t *testing.T) {
	if _, err := NewFileStore("", "http://x", "secret"); err == nil {
		t.Fatal("expected error for empty base path")
	}
	if _, err := NewFileStore(t.TempDir(), "http://x", "  "); err == nil {
		t.Fatal("expected error for empty secret")
	}
}

func TestWriteAndRead(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	key, err := store.Write(ctx, "exports/u1/e1/carousel.zip", []byte("payload"), "application/zip")
	if err != nil {
		t.Fatalf("Write error: %v", err)
	}
	if key != "exports/u1/e1/carousel.zip" {
		t.Fatalf("key = %q", key)
	}

	data, err := store.Read(ctx, key)
	if err != nil {
		t.Fatalf("Read error: %v", err)
	}
	if string(data) != "payload" {
		t.Fatalf("data = %q", data)
	}

	// Upsert.
	if _, err := store.Write(ctx, key, []byte("updated"), "application/zip"); err != nil {
		t.Fatalf("second Write error: %v", err)
	}
	data, err = store.Read(ctx, key)
	if err != nil {
		t.Fatalf("Read after upsert error: %v", err)
	}
	if string(data) != "updated" {
		t.Fatalf("data after upsert = %q", data)
	}
}

func TestWriteRejectsTraversal(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()
	for _, key := range []string{"", "   ", "../outside", "a/../../outside", "."} {
		if _, err := store.Write(ctx, key, []byte("x"), ""); err == nil {
			t.Fatalf("Write(%q) accepted an invalid key", key)
		}
	}
}

func TestSanitizeKeyNormalizes(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"a/b.png", "a/b.png"},
		{"/a/b.png", "a/b.png"},
		{"./a/b.png", "a/b.png"},
		{"a//b.png", "a/b.png"},
		{"a/./b.png", "a/b.png"},
		{`a\b.png`, "a/b.png"},
	}
	for _, tc := range tests {
		got, err := sanitizeKey(tc.in)
		if err != nil {
			t.Fatalf("sanitizeKey(%q) error: %v", tc.in, err)
		}
		if got != tc.want {
			t.Fatalf("sanitizeKey(%q) = %q, want %q", tc.in, got, tc.want)
		}
	}
}

func TestSignedURLRoundTrip(t *testing.T) {
	store := newTestStore(t)
	signed, err := store.SignedURL("exports/u1/file.png", time.Hour)
	if err != nil {
		t.Fatalf("SignedURL error: %v", err)
	}
	if !strings.HasPrefix(signed, "http://localhost:8080/v1/files/exports/u1/file.png?") {
		t.Fatalf("signed url = %q", signed)
	}

	u, err := url.Parse(signed)
	if err != nil {
		t.Fatalf("parse signed url: %v", err)
	}
	exp, err := strconv.ParseInt(u.Query().Get("exp"), 10, 64)
	if err != nil {
		t.Fatalf("parse exp: %v", err)
	}
	sig := u.Query().Get("sig")

	if err := store.VerifySignedURL("exports/u1/file.png", exp, sig); err != nil {
		t.Fatalf("VerifySignedURL error: %v", err)
	}
	if err := store.VerifySignedURL("exports/u1/other.png", exp, sig); err == nil {
		t.Fatal("signature accepted for a different key")
	}
	if err := store.VerifySignedURL("exports/u1/file.png", exp+1, sig); err == nil {
		t.Fatal("signature accepted for a different expiry")
	}
	if err := store.VerifySignedURL("exports/u1/file.png", exp, sig+"00"); err == nil {
		t.Fatal("tampered signature accepted")
	}
}

func TestSignedURLExpiry(t *testing.T) {
	store := newTestStore(t)
	current := time.Unix(5000, 0)
	store.now = func() time.Time { return current }

	signed, err := store.SignedURL("k.png", 10*time.Second)
	if err != nil {
		t.Fatalf("SignedURL error: %v", err)
	}
	u, _ := url.Parse(signed)
	exp, _ := strconv.ParseInt(u.Query().Get("exp"), 10, 64)
	sig := u.Query().Get("sig")

	if err := store.VerifySignedURL("k.png", exp, sig); err != nil {
		t.Fatalf("verify before expiry: %v", err)
	}
	current = current.Add(11 * time.Second)
	if err := store.VerifySignedURL("k.png", exp, sig); err == nil {
		t.Fatal("expired url accepted")
	}
}
