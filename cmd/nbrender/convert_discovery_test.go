package main

import (
	"errors"
	"path/filepath"
	"sort"
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestResolveOutputPath(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name         string
		inputPath    string
		outputDir    string
		baseInputDir string
		want         string
	}{
		{"next to source", filepath.Join("docs", "a.ipynb"), "", "", filepath.Join("docs", "a.html")},
		{"upper-case extension", filepath.Join("docs", "A.IPYNB"), "", "", filepath.Join("docs", "A.html")},
		{"explicit html file", "a.ipynb", filepath.Join("out", "page.html"), "", filepath.Join("out", "page.html")},
		{"output directory", filepath.Join("docs", "a.ipynb"), "out", "", filepath.Join("out", "a.html")},
		{"mirrors tree", filepath.Join("docs", "sub", "a.ipynb"), "out", "docs", filepath.Join("out", "sub", "a.html")},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			got, err := resolveOutputPath(tt.inputPath, tt.outputDir, tt.baseInputDir)
			if err != nil {
				t.Fatalf("resolveOutputPath() error = %v", err)
			}
			if got != tt.want {
				t.Errorf("resolveOutputPath() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestDiscoverFiles(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	writeFile(t, dir, "a.ipynb", "{}")
	writeFile(t, dir, "sub/b.ipynb", "{}")
	writeFile(t, dir, "sub/.ipynb_checkpoints/b-checkpoint.ipynb", "{}")
	writeFile(t, dir, "readme.md", "#")

	files, err := discoverFiles(dir, "")
	if err != nil {
		t.Fatalf("discoverFiles() error = %v", err)
	}

	var got []string
	for _, f := range files {
		rel, _ := filepath.Rel(dir, f.OutputPath)
		got = append(got, rel)
	}
	sort.Strings(got)

	want := []string{"a.html", filepath.Join("sub", "b.html")}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("outputs mismatch (-want +got):\n%s", diff)
	}
}

func TestDiscoverFiles_SingleFile(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	input := writeFile(t, dir, "a.ipynb", "{}")

	files, err := discoverFiles(input, filepath.Join(dir, "out"))
	if err != nil {
		t.Fatalf("discoverFiles() error = %v", err)
	}
	want := []FileToConvert{{InputPath: input, OutputPath: filepath.Join(dir, "out", "a.html")}}
	if diff := cmp.Diff(want, files); diff != "" {
		t.Errorf("files mismatch (-want +got):\n%s", diff)
	}
}

func TestDiscoverFiles_InvalidExtension(t *testing.T) {
	t.Parallel()

	input := writeFile(t, t.TempDir(), "a.json", "{}")
	if _, err := discoverFiles(input, ""); !errors.Is(err, ErrInvalidExtension) {
		t.Errorf("discoverFiles() error = %v, want ErrInvalidExtension", err)
	}
}

func TestValidateWorkers(t *testing.T) {
	t.Parallel()

	tests := []struct {
		n       int
		wantErr bool
	}{
		{-1, true},
		{0, false},
		{8, false},
		{MaxWorkers, false},
		{MaxWorkers + 1, true},
	}

	for _, tt := range tests {
		err := validateWorkers(tt.n)
		if (err != nil) != tt.wantErr {
			t.Errorf("validateWorkers(%d) error = %v, wantErr %v", tt.n, err, tt.wantErr)
		}
		if err != nil && !errors.Is(err, ErrInvalidWorkerCount) {
			t.Errorf("validateWorkers(%d) error = %v, want ErrInvalidWorkerCount", tt.n, err)
		}
	}
}
