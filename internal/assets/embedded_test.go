package assets

import (
	"errors"
	"reflect"
	"strings"
	"testing"
)

func TestEmbeddedLoader_LoadStyle(t *testing.T) {
	t.Parallel()

	loader := NewEmbeddedLoader()

	tests := []struct {
		name        string
		styleName   string
		wantErr     error
		wantContain string
	}{
		{
			name:        "loads default style",
			styleName:   DefaultStyleName,
			wantContain: "font-family",
		},
		{
			name:        "loads compact style",
			styleName:   "compact",
			wantContain: "hr.heavy",
		},
		{
			name:      "returns ErrStyleNotFound for nonexistent",
			styleName: "nonexistent-style-xyz",
			wantErr:   ErrStyleNotFound,
		},
		{
			name:      "returns ErrInvalidAssetName for empty name",
			styleName: "",
			wantErr:   ErrInvalidAssetName,
		},
		{
			name:      "returns ErrInvalidAssetName for path traversal",
			styleName: "../secret",
			wantErr:   ErrInvalidAssetName,
		},
		{
			name:      "returns ErrInvalidAssetName for name with dot",
			styleName: "style.name",
			wantErr:   ErrInvalidAssetName,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			got, err := loader.LoadStyle(tt.styleName)

			if tt.wantErr != nil {
				if !errors.Is(err, tt.wantErr) {
					t.Errorf("LoadStyle(%q) error = %v, want %v", tt.styleName, err, tt.wantErr)
				}
				return
			}

			if err != nil {
				t.Fatalf("LoadStyle(%q) unexpected error: %v", tt.styleName, err)
			}
			if !strings.Contains(got, tt.wantContain) {
				t.Errorf("LoadStyle(%q) content should contain %q", tt.styleName, tt.wantContain)
			}
		})
	}
}

func TestEmbeddedLoader_LoadLocale(t *testing.T) {
	t.Parallel()

	loader := NewEmbeddedLoader()

	for _, lang := range []string{"it", "en", "es", "fr", "de"} {
		got, err := loader.LoadLocale(lang)
		if err != nil {
			t.Errorf("LoadLocale(%q) unexpected error: %v", lang, err)
			continue
		}
		if !strings.Contains(string(got), "doc_title:") {
			t.Errorf("LoadLocale(%q) missing doc_title key", lang)
		}
	}

	if _, err := loader.LoadLocale("xx"); !errors.Is(err, ErrLocaleNotFound) {
		t.Errorf("LoadLocale(%q) error = %v, want ErrLocaleNotFound", "xx", err)
	}
	if _, err := loader.LoadLocale("../it"); !errors.Is(err, ErrInvalidAssetName) {
		t.Errorf("LoadLocale(%q) error = %v, want ErrInvalidAssetName", "../it", err)
	}
}

func TestEmbeddedLoader_ListLocales(t *testing.T) {
	t.Parallel()

	got, err := NewEmbeddedLoader().ListLocales()
	if err != nil {
		t.Fatalf("ListLocales() unexpected error: %v", err)
	}

	want := []string{"de", "en", "es", "fr", "it"}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("ListLocales() = %v, want %v", got, want)
	}
}

func TestEmbeddedLoader_ListStyles(t *testing.T) {
	t.Parallel()

	got, err := NewEmbeddedLoader().ListStyles()
	if err != nil {
		t.Fatalf("ListStyles() unexpected error: %v", err)
	}

	want := []string{"compact", "default"}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("ListStyles() = %v, want %v", got, want)
	}
}

func TestPackageLevelLoaders(t *testing.T) {
	t.Parallel()

	if _, err := LoadStyle(DefaultStyleName); err != nil {
		t.Errorf("LoadStyle(%q) unexpected error: %v", DefaultStyleName, err)
	}
	if _, err := LoadLocale(DefaultLocale); err != nil {
		t.Errorf("LoadLocale(%q) unexpected error: %v", DefaultLocale, err)
	}
}
