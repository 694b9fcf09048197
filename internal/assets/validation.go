package assets

import (
	"fmt"
)

// MaxAssetNameLength bounds style and locale names. Names reach the loaders
// from form fields as well as flags.
const MaxAssetNameLength = 64

// ValidateAssetName checks that name can be used as a bare file stem.
// Only ASCII letters, digits, '-' and '_' are accepted, so separators,
// dots and control bytes are all rejected.
func ValidateAssetName(name string) error {
	if name == "" {
		return fmt.Errorf("%w: empty name", ErrInvalidAssetName)
	}
	if len(name) > MaxAssetNameLength {
		return fmt.Errorf("%w: %d bytes (max %d)", ErrInvalidAssetName, len(name), MaxAssetNameLength)
	}
	for i := 0; i < len(name); i++ {
		if !isNameByte(name[i]) {
			return fmt.Errorf("%w: %q", ErrInvalidAssetName, name)
		}
	}
	return nil
}

func isNameByte(c byte) bool {
	switch {
	case 'a' <= c && c <= 'z', 'A' <= c && c <= 'Z', '0' <= c && c <= '9':
		return true
	case c == '-' || c == '_':
		return true
	}
	return false
}
