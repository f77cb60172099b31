package model

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"sync/atomic"
	"testing"
)

func newTestStore(t *testing.T) *Store {
	t.Helper()
	s, err := NewStore(t.TempDir(), nil)
	if err != nil {
		t.Fatalf("NewStore() error = %v", err)
	}
	return s
}

func TestStore_EnsureDownloads(t *testing.T) {
	content := []byte("model bytes")
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write(content)
	}))
	defer srv.Close()

	s := newTestStore(t)

	path, err := s.Ensure("pose.task", srv.URL)
	if err != nil {
		t.Fatalf("Ensure() error = %v", err)
	}

	got, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("reading downloaded artifact: %v", err)
	}
	if string(got) != string(content) {
		t.Errorf("artifact content = %q, want %q", got, content)
	}
}

func TestStore_EnsureIdempotent(t *testing.T) {
	var hits atomic.Int64
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		hits.Add(1)
		w.Write([]byte("model bytes"))
	}))
	defer srv.Close()

	s := newTestStore(t)

	first, err := s.Ensure("pose.task", srv.URL)
	if err != nil {
		t.Fatalf("first Ensure() error = %v", err)
	}
	second, err := s.Ensure("pose.task", srv.URL)
	if err != nil {
		t.Fatalf("second Ensure() error = %v", err)
	}

	if first != second {
		t.Errorf("paths differ between calls: %q != %q", first, second)
	}
	if hits.Load() != 1 {
		t.Errorf("server hit %d times, want 1 (second call should use the cached file)", hits.Load())
	}
}

func TestStore_EnsureExistingFileNoNetwork(t *testing.T) {
	s := newTestStore(t)

	path := filepath.Join(s.Dir(), "face.task")
	if err := os.WriteFile(path, []byte("cached"), 0644); err != nil {
		t.Fatal(err)
	}

	// The URL is unreachable; an existing file must short-circuit the fetch.
	got, err := s.Ensure("face.task", "http://127.0.0.1:0/face.task")
	if err != nil {
		t.Fatalf("Ensure() error = %v, want cached hit", err)
	}
	if got != path {
		t.Errorf("Ensure() = %q, want %q", got, path)
	}
}

func TestStore_EnsureNon200(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.NotFound(w, r)
	}))
	defer srv.Close()

	s := newTestStore(t)

	_, err := s.Ensure("pose.task", srv.URL)
	if err == nil {
		t.Fatal("Ensure() error = nil, want DownloadError")
	}

	var dlErr *DownloadError
	if !errors.As(err, &dlErr) {
		t.Fatalf("Ensure() error = %T, want *DownloadError", err)
	}
	if dlErr.Name != "pose.task" {
		t.Errorf("DownloadError.Name = %q, want %q", dlErr.Name, "pose.task")
	}

	assertNoArtifacts(t, s.Dir())
}

func TestStore_EnsureTruncatedBody(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		// Promise more bytes than are sent, then cut the connection
		w.Header().Set("Content-Length", "1024")
		w.Write([]byte("partial"))
		if f, ok := w.(http.Flusher); ok {
			f.Flush()
		}
		conn, _, err := w.(http.Hijacker).Hijack()
		if err == nil {
			conn.Close()
		}
	}))
	defer srv.Close()

	s := newTestStore(t)

	_, err := s.Ensure("pose.task", srv.URL)
	if err == nil {
		t.Fatal("Ensure() error = nil, want DownloadError for truncated body")
	}

	var dlErr *DownloadError
	if !errors.As(err, &dlErr) {
		t.Fatalf("Ensure() error = %T, want *DownloadError", err)
	}

	// A retry must not see a corrupt artifact
	assertNoArtifacts(t, s.Dir())
}

// assertNoArtifacts fails if the store directory contains any file,
// complete or partial.
func assertNoArtifacts(t *testing.T, dir string) {
	t.Helper()
	entries, err := os.ReadDir(dir)
	if err != nil {
		t.Fatal(err)
	}
	for _, e := range entries {
		t.Errorf("leftover file in model dir after failed fetch: %s", e.Name())
	}
}
