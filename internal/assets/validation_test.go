package assets

import (
	"errors"
	"testing"
)

func TestValidateAssetName(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		input   string
		wantErr error
	}{
		{name: "simple name", input: "page"},
		{name: "name with hyphen", input: "dark-page"},
		{name: "name with underscore", input: "my_style"},
		{name: "mixed case", input: "MyStyle"},
		{name: "empty name", input: "", wantErr: ErrInvalidAssetName},
		{name: "forward slash", input: "path/to/style", wantErr: ErrInvalidAssetName},
		{name: "backslash", input: "path\\to\\style", wantErr: ErrInvalidAssetName},
		{name: "parent directory traversal", input: "../secret", wantErr: ErrInvalidAssetName},
		{name: "extension included", input: "page.html", wantErr: ErrInvalidAssetName},
		{name: "null byte", input: "page\x00", wantErr: ErrInvalidAssetName},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			err := ValidateAssetName(tt.input)
			if !errors.Is(err, tt.wantErr) {
				t.Errorf("ValidateAssetName(%q) = %v, want %v", tt.input, err, tt.wantErr)
			}
		})
	}
}
