package assets

import (
	"embed"
	"fmt"
	"io/fs"
	"path"
	"sort"
	"strings"
)

//go:embed styles/*.css
var styles embed.FS

//go:embed locales/*.yaml
var locales embed.FS

// EmbeddedLoader loads assets compiled into the binary.
type EmbeddedLoader struct{}

// NewEmbeddedLoader creates an EmbeddedLoader.
func NewEmbeddedLoader() *EmbeddedLoader {
	return &EmbeddedLoader{}
}

// LoadStyle loads a CSS style from embedded assets by name.
func (e *EmbeddedLoader) LoadStyle(name string) (string, error) {
	if err := ValidateAssetName(name); err != nil {
		return "", err
	}

	content, err := styles.ReadFile(path.Join(stylesDir, name+styleExt))
	if err != nil {
		return "", fmt.Errorf("%w: %q", ErrStyleNotFound, name)
	}

	return string(content), nil
}

// LoadLocale loads an embedded translation table.
func (e *EmbeddedLoader) LoadLocale(lang string) ([]byte, error) {
	if err := ValidateAssetName(lang); err != nil {
		return nil, err
	}

	content, err := locales.ReadFile(path.Join(localesDir, lang+localeExt))
	if err != nil {
		return nil, fmt.Errorf("%w: %q", ErrLocaleNotFound, lang)
	}

	return content, nil
}

// ListLocales returns the embedded language codes.
func (e *EmbeddedLoader) ListLocales() ([]string, error) {
	entries, err := fs.ReadDir(locales, localesDir)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrAssetRead, err)
	}
	return assetNames(entries, localeExt), nil
}

// ListStyles returns the embedded style names.
func (e *EmbeddedLoader) ListStyles() ([]string, error) {
	entries, err := fs.ReadDir(styles, stylesDir)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrAssetRead, err)
	}
	return assetNames(entries, styleExt), nil
}

// assetNames extracts sorted asset names with extension ext from directory entries.
func assetNames(entries []fs.DirEntry, ext string) []string {
	var names []string
	for _, e := range entries {
		if e.IsDir() || !strings.HasSuffix(e.Name(), ext) {
			continue
		}
		name := strings.TrimSuffix(e.Name(), ext)
		if ValidateAssetName(name) == nil {
			names = append(names, name)
		}
	}
	sort.Strings(names)
	return names
}

// Compile-time interface check.
var _ AssetLoader = (*EmbeddedLoader)(nil)
