package uploader

import (
	"bytes"
	"errors"
	"mime/multipart"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

// fileHeader builds a real multipart.FileHeader whose Open works, by
// round-tripping a form through the multipart reader.
func fileHeader(t *testing.T, name, content string) *multipart.FileHeader {
	t.Helper()
	var buf bytes.Buffer
	w := multipart.NewWriter(&buf)
	part, err := w.CreateFormFile("file", name)
	if err != nil {
		t.Fatal(err)
	}
	if _, err := part.Write([]byte(content)); err != nil {
		t.Fatal(err)
	}
	if err := w.Close(); err != nil {
		t.Fatal(err)
	}
	form, err := multipart.NewReader(&buf, w.Boundary()).ReadForm(1 << 20)
	if err != nil {
		t.Fatal(err)
	}
	t.Cleanup(func() { _ = form.RemoveAll() })
	return form.File["file"][0]
}

func TestStoreWritesFileAndReturnsURL(t *testing.T) {
	root := t.TempDir()
	t.Setenv("UPLOAD_DIR", root)
	t.Setenv("BASE_URL", "http://localhost:3000")

	opts := Options{Folder: "events", Entity: "Annual Gala", SubDir: "responses"}
	url, err := Store(fileHeader(t, "cv.pdf", "pdf-bytes"), opts)
	if err != nil {
		t.Fatalf("Store: %v", err)
	}

	prefix := "http://localhost:3000/static/uploads/events/annual-gala/responses/cv-"
	if !strings.HasPrefix(url, prefix) || !strings.HasSuffix(url, ".pdf") {
		t.Fatalf("url = %q, want %scv-*.pdf", url, prefix)
	}

	name := strings.TrimPrefix(url, "http://localhost:3000/static/uploads/events/annual-gala/responses/")
	data, err := os.ReadFile(filepath.Join(root, "events", "annual-gala", "responses", name))
	if err != nil {
		t.Fatalf("stored file unreadable: %v", err)
	}
	if string(data) != "pdf-bytes" {
		t.Errorf("stored content = %q", data)
	}
}

func TestStoreRejectsOversizeBeforeOpening(t *testing.T) {
	t.Setenv("UPLOAD_DIR", t.TempDir())

	// The size check runs before Open, so a bare header is enough.
	big := &multipart.FileHeader{Filename: "big.zip", Size: MaxFileSize + 1}
	if _, err := Store(big, Options{Folder: "events", Entity: "x"}); !errors.Is(err, ErrFileTooLarge) {
		t.Fatalf("err = %v, want ErrFileTooLarge", err)
	}
}

func TestStoreAllStopsAtFirstFailure(t *testing.T) {
	t.Setenv("UPLOAD_DIR", t.TempDir())
	t.Setenv("BASE_URL", "http://localhost:3000")

	files := []*multipart.FileHeader{
		fileHeader(t, "a.txt", "a"),
		{Filename: "big.zip", Size: MaxFileSize + 1},
		fileHeader(t, "c.txt", "c"),
	}
	urls, err := StoreAll(files, Options{Folder: "events", Entity: "x"})
	if !errors.Is(err, ErrFileTooLarge) {
		t.Fatalf("err = %v, want ErrFileTooLarge", err)
	}
	if len(urls) != 1 {
		t.Fatalf("got %d stored urls before the failure, want 1", len(urls))
	}
}

func TestDeleteRemovesStoredFile(t *testing.T) {
	root := t.TempDir()
	t.Setenv("UPLOAD_DIR", root)
	t.Setenv("BASE_URL", "http://localhost:3000")

	opts := Options{Folder: "events", Entity: "gala", SubDir: "responses"}
	url, err := Store(fileHeader(t, "cv.pdf", "x"), opts)
	if err != nil {
		t.Fatal(err)
	}

	Delete([]string{url}, opts)

	dir := filepath.Join(root, "events", "gala", "responses")
	entries, err := os.ReadDir(dir)
	if err != nil {
		t.Fatal(err)
	}
	if len(entries) != 0 {
		t.Errorf("directory still holds %d files after Delete", len(entries))
	}
}

func TestDeleteIgnoresForeignURLs(t *testing.T) {
	root := t.TempDir()
	t.Setenv("UPLOAD_DIR", root)
	t.Setenv("BASE_URL", "http://localhost:3000")

	victim := filepath.Join(root, "secret.txt")
	if err := os.WriteFile(victim, []byte("keep"), 0o644); err != nil {
		t.Fatal(err)
	}

	opts := Options{Folder: "events", Entity: "gala"}
	Delete([]string{
		"http://localhost:3000/static/uploads/events/gala/../../secret.txt",
		"http://evil.example/other.txt",
	}, opts)

	if _, err := os.Stat(victim); err != nil {
		t.Errorf("file outside the upload folder was touched: %v", err)
	}
}
