package assets

import (
	"errors"
	"strings"
	"testing"
)

func TestValidateAssetName(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		input   string
		wantErr error
	}{
		// Valid names
		{name: "style name", input: "default"},
		{name: "locale code", input: "it"},
		{name: "regional locale", input: "pt-BR"},
		{name: "name with underscore", input: "zh_Hant"},
		{name: "name with numbers", input: "style2"},

		// Invalid names
		{name: "empty name", input: "", wantErr: ErrInvalidAssetName},
		{name: "forward slash", input: "locales/it", wantErr: ErrInvalidAssetName},
		{name: "backslash", input: "locales\\it", wantErr: ErrInvalidAssetName},
		{name: "parent traversal", input: "../secret", wantErr: ErrInvalidAssetName},
		{name: "extension included", input: "it.yaml", wantErr: ErrInvalidAssetName},
		{name: "hidden file", input: ".hidden", wantErr: ErrInvalidAssetName},
		{name: "two dots", input: "..", wantErr: ErrInvalidAssetName},
		{name: "nul byte", input: "it\x00", wantErr: ErrInvalidAssetName},
		{name: "absolute path", input: "/etc/passwd", wantErr: ErrInvalidAssetName},
		{name: "space", input: "my style", wantErr: ErrInvalidAssetName},
		{name: "non-ascii", input: "stilé", wantErr: ErrInvalidAssetName},
		{name: "newline", input: "it\n", wantErr: ErrInvalidAssetName},
		{name: "at length limit", input: strings.Repeat("a", MaxAssetNameLength)},
		{name: "over length limit", input: strings.Repeat("a", MaxAssetNameLength+1), wantErr: ErrInvalidAssetName},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			err := ValidateAssetName(tt.input)

			if tt.wantErr == nil {
				if err != nil {
					t.Errorf("ValidateAssetName(%q) unexpected error: %v", tt.input, err)
				}
				return
			}

			if !errors.Is(err, tt.wantErr) {
				t.Errorf("ValidateAssetName(%q) error = %v, want %v", tt.input, err, tt.wantErr)
			}
		})
	}
}

func TestValidateAssetName_MessageNamesInput(t *testing.T) {
	t.Parallel()

	err := ValidateAssetName("../evil")
	if err == nil {
		t.Fatal("expected error for invalid name")
	}
	if !strings.Contains(err.Error(), "../evil") {
		t.Errorf("error %q should mention the rejected name", err)
	}
}
