package assets

import (
	"fmt"
	"strings"
)

// ValidateAssetName rejects names that could address a file other than
// the intended asset: empty names, path separators, and dots.
func ValidateAssetName(name string) error {
	if name == "" {
		return fmt.Errorf("%w: empty name", ErrInvalidAssetName)
	}
	if strings.ContainsAny(name, "/\\.\x00") {
		return fmt.Errorf("%w: %q", ErrInvalidAssetName, name)
	}
	return nil
}
