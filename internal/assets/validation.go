package assets

import (
	"fmt"
	"strings"
)

// ValidateAssetName checks that name is a bare style name such as
// "compact". Separators, dots and NUL bytes are refused, so "../x" or
// "x.css" never reach the file system.
func ValidateAssetName(name string) error {
	switch {
	case name == "":
		return fmt.Errorf("%w: empty name", ErrInvalidAssetName)
	case strings.ContainsAny(name, "/\\.\x00"):
		return fmt.Errorf("%w: %q (use the name without extension or path)", ErrInvalidAssetName, name)
	}
	return nil
}
