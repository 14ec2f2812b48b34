package assets

import (
	"errors"
	"strings"
	"testing"
)

func TestEmbeddedLoader_LoadTemplate(t *testing.T) {
	t.Parallel()

	loader := NewEmbeddedLoader()

	t.Run("page template has all placeholders", func(t *testing.T) {
		t.Parallel()

		got, err := loader.LoadTemplate(PageTemplateName)
		if err != nil {
			t.Fatalf("LoadTemplate() error = %v", err)
		}
		wantContains := []string{"<!DOCTYPE html>", "{{.Title}}", "{{.CSS}}", "{{.Body}}"}
		for _, want := range wantContains {
			if !strings.Contains(got, want) {
				t.Errorf("page template missing %q", want)
			}
		}
	})

	t.Run("unknown template", func(t *testing.T) {
		t.Parallel()

		_, err := loader.LoadTemplate("cover")
		if !errors.Is(err, ErrTemplateNotFound) {
			t.Errorf("LoadTemplate() error = %v, want ErrTemplateNotFound", err)
		}
	})

	t.Run("invalid name", func(t *testing.T) {
		t.Parallel()

		_, err := loader.LoadTemplate("../page")
		if !errors.Is(err, ErrInvalidAssetName) {
			t.Errorf("LoadTemplate() error = %v, want ErrInvalidAssetName", err)
		}
	})
}

func TestEmbeddedLoader_LoadStyle(t *testing.T) {
	t.Parallel()

	loader := NewEmbeddedLoader()

	got, err := loader.LoadStyle(DefaultStyleName)
	if err != nil {
		t.Fatalf("LoadStyle() error = %v", err)
	}
	wantContains := []string{".nb-cell", ".nb-render-error", ".nb-pyerr", ".chroma"}
	for _, want := range wantContains {
		if !strings.Contains(got, want) {
			t.Errorf("default style missing %q", want)
		}
	}
	if strings.Contains(got, "</style") {
		t.Error("default style must not close its style block")
	}

	if _, err := loader.LoadStyle("technical"); !errors.Is(err, ErrStyleNotFound) {
		t.Errorf("LoadStyle(technical) error = %v, want ErrStyleNotFound", err)
	}
}

func TestPackageLevelLoaders(t *testing.T) {
	t.Parallel()

	if _, err := LoadTemplate(PageTemplateName); err != nil {
		t.Errorf("LoadTemplate() error = %v", err)
	}
	if _, err := LoadStyle(DefaultStyleName); err != nil {
		t.Errorf("LoadStyle() error = %v", err)
	}
}
