package assets

// DefaultStyleName is the name of the built-in stylesheet.
const DefaultStyleName = "default"

// DefaultLocale is the language used when a requested one is unavailable.
const DefaultLocale = "it"

// Directory names shared by every loader.
const (
	stylesDir  = "styles"
	localesDir = "locales"
	styleExt   = ".css"
	localeExt  = ".yaml"
)

var defaultLoader = NewEmbeddedLoader()

// LoadStyle loads a built-in stylesheet by name.
func LoadStyle(name string) (string, error) {
	return defaultLoader.LoadStyle(name)
}

// LoadLocale loads a built-in translation table.
func LoadLocale(lang string) ([]byte, error) {
	return defaultLoader.LoadLocale(lang)
}
