package assets

// AssetLoader defines the contract for loading stylesheets and locales.
type AssetLoader interface {
	// LoadStyle loads a CSS style by name (without .css extension).
	// Returns ErrStyleNotFound if the style doesn't exist.
	// Returns ErrInvalidAssetName if the name contains invalid characters.
	LoadStyle(name string) (string, error)

	// LoadLocale loads the raw YAML translation table for lang.
	// Returns ErrLocaleNotFound if the locale doesn't exist.
	LoadLocale(lang string) ([]byte, error)

	// ListLocales returns the available language codes, sorted.
	ListLocales() ([]string, error)
}
