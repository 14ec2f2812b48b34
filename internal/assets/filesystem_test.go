package assets

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
)

func writeAsset(t *testing.T, dir, name, content string) {
	t.Helper()
	if err := os.WriteFile(filepath.Join(dir, name), []byte(content), 0644); err != nil {
		t.Fatalf("failed to write %s: %v", name, err)
	}
}

func TestNewFilesystemLoader(t *testing.T) {
	t.Parallel()

	t.Run("valid directory", func(t *testing.T) {
		t.Parallel()

		loader, err := NewFilesystemLoader(t.TempDir())
		if err != nil {
			t.Fatalf("NewFilesystemLoader() error = %v", err)
		}
		if loader == nil {
			t.Fatal("NewFilesystemLoader() returned nil")
		}
	})

	t.Run("empty path returns error", func(t *testing.T) {
		t.Parallel()

		_, err := NewFilesystemLoader("")
		if !errors.Is(err, ErrInvalidBasePath) {
			t.Errorf("NewFilesystemLoader(\"\") error = %v, want ErrInvalidBasePath", err)
		}
	})

	t.Run("nonexistent directory returns error", func(t *testing.T) {
		t.Parallel()

		_, err := NewFilesystemLoader("/nonexistent/path/abc123xyz")
		if !errors.Is(err, ErrInvalidBasePath) {
			t.Errorf("NewFilesystemLoader() error = %v, want ErrInvalidBasePath", err)
		}
	})

	t.Run("file instead of directory returns error", func(t *testing.T) {
		t.Parallel()

		tmpDir := t.TempDir()
		writeAsset(t, tmpDir, "file.txt", "test")

		_, err := NewFilesystemLoader(filepath.Join(tmpDir, "file.txt"))
		if !errors.Is(err, ErrInvalidBasePath) {
			t.Errorf("NewFilesystemLoader() error = %v, want ErrInvalidBasePath", err)
		}
	})
}

func TestFilesystemLoader_Load(t *testing.T) {
	t.Parallel()

	tmpDir := t.TempDir()
	writeAsset(t, tmpDir, "page.html", "<html>{{.Body}}</html>")
	writeAsset(t, tmpDir, "default.css", "body { color: red; }")

	loader, err := NewFilesystemLoader(tmpDir)
	if err != nil {
		t.Fatalf("NewFilesystemLoader() error = %v", err)
	}

	tests := []struct {
		name    string
		load    func(string) (string, error)
		asset   string
		want    string
		wantErr error
	}{
		{name: "template", load: loader.LoadTemplate, asset: "page", want: "<html>{{.Body}}</html>"},
		{name: "style", load: loader.LoadStyle, asset: "default", want: "body { color: red; }"},
		{name: "missing template", load: loader.LoadTemplate, asset: "cover", wantErr: ErrTemplateNotFound},
		{name: "missing style", load: loader.LoadStyle, asset: "dark", wantErr: ErrStyleNotFound},
		{name: "invalid name", load: loader.LoadStyle, asset: "../default", wantErr: ErrInvalidAssetName},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			got, err := tt.load(tt.asset)
			if !errors.Is(err, tt.wantErr) {
				t.Fatalf("load(%q) error = %v, want %v", tt.asset, err, tt.wantErr)
			}
			if got != tt.want {
				t.Errorf("load(%q) = %q, want %q", tt.asset, got, tt.want)
			}
		})
	}
}

func TestFilesystemLoader_RejectsSymlinkEscape(t *testing.T) {
	t.Parallel()

	outside := t.TempDir()
	writeAsset(t, outside, "secret.css", "secret")

	base := t.TempDir()
	if err := os.Symlink(filepath.Join(outside, "secret.css"), filepath.Join(base, "evil.css")); err != nil {
		t.Skipf("symlink creation not supported: %v", err)
	}

	loader, err := NewFilesystemLoader(base)
	if err != nil {
		t.Fatalf("NewFilesystemLoader() error = %v", err)
	}

	_, err = loader.LoadStyle("evil")
	if !errors.Is(err, ErrPathTraversal) {
		t.Errorf("LoadStyle() with symlink escape error = %v, want ErrPathTraversal", err)
	}
}

func TestFilesystemLoader_ReadError(t *testing.T) {
	t.Parallel()

	base := t.TempDir()
	// A directory named like the asset cannot be read as a file.
	if err := os.Mkdir(filepath.Join(base, "page.html"), 0755); err != nil {
		t.Fatalf("setup: %v", err)
	}

	loader, err := NewFilesystemLoader(base)
	if err != nil {
		t.Fatalf("NewFilesystemLoader() error = %v", err)
	}

	_, err = loader.LoadTemplate("page")
	if !errors.Is(err, ErrAssetRead) {
		t.Errorf("LoadTemplate() error = %v, want ErrAssetRead", err)
	}
}
