package storage

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"drowsyguard/internal/logger"
)

func testStore(t *testing.T) *ArtifactStore {
	t.Helper()
	store, err := NewArtifactStore(t.TempDir(), logger.New(t.TempDir()))
	if err != nil {
		t.Fatalf("Failed to create artifact store: %v", err)
	}
	return store
}

func TestArtifactStore_SaveAndPath(t *testing.T) {
	store := testStore(t)

	name, err := store.Save("upload.jpg", []byte("jpeg-bytes"))
	if err != nil {
		t.Fatalf("Save failed: %v", err)
	}
	if !strings.HasPrefix(name, "output_") || !strings.HasSuffix(name, "_upload.jpg") {
		t.Errorf("unexpected artifact name: %q", name)
	}

	path, err := store.Path(name)
	if err != nil {
		t.Fatalf("Path failed: %v", err)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("Failed to read artifact: %v", err)
	}
	if string(data) != "jpeg-bytes" {
		t.Errorf("artifact content = %q", data)
	}
}

func TestArtifactStore_SameContentSameName(t *testing.T) {
	store := testStore(t)

	first, err := store.Save("a.jpg", []byte("same"))
	if err != nil {
		t.Fatalf("Save failed: %v", err)
	}
	second, err := store.Save("a.jpg", []byte("same"))
	if err != nil {
		t.Fatalf("Save failed: %v", err)
	}
	if first != second {
		t.Errorf("same content produced %q and %q", first, second)
	}
}

func TestArtifactStore_StripsUploadDirectories(t *testing.T) {
	store := testStore(t)

	name, err := store.Save("../../etc/passwd", []byte("data"))
	if err != nil {
		t.Fatalf("Save failed: %v", err)
	}
	if strings.Contains(name, "..") || strings.ContainsAny(name, "/\\") {
		t.Errorf("artifact name leaks path components: %q", name)
	}
	if !strings.HasSuffix(name, "_passwd.jpg") {
		t.Errorf("extensionless upload should get .jpg: %q", name)
	}
}

func TestArtifactStore_PathRejectsTraversal(t *testing.T) {
	store := testStore(t)

	for _, name := range []string{"", "../secret", "a/b.jpg", "a\\b.jpg", "x..y"} {
		if _, err := store.Path(name); err == nil {
			t.Errorf("Path(%q) should be rejected", name)
		}
	}
}

func TestValidName(t *testing.T) {
	tests := []struct {
		name     string
		expected bool
	}{
		{"output_abc123_img.jpg", true},
		{"", false},
		{"../x.jpg", false},
		{"dir/x.jpg", false},
		{"dir\\x.jpg", false},
		{"bad\x00name", false},
	}

	for _, tt := range tests {
		if got := ValidName(tt.name); got != tt.expected {
			t.Errorf("ValidName(%q) = %v, expected %v", tt.name, got, tt.expected)
		}
	}
}

func TestNewArtifactStore_CreatesDirectory(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "nested", "outputs")
	if _, err := NewArtifactStore(dir, logger.New(t.TempDir())); err != nil {
		t.Fatalf("NewArtifactStore failed: %v", err)
	}
	if _, err := os.Stat(dir); err != nil {
		t.Errorf("output directory should exist: %v", err)
	}
}
