// Package i18n holds the translation tables used for document labels.
//
// A Catalog is loaded once and never mutated, so it is safe for concurrent
// use without locking.
package i18n

import (
	"errors"
	"fmt"
	"sort"

	"github.com/alnah/go-chat2doc/internal/yamlutil"
)

// Label keys used in generated documents.
const (
	KeyDocTitle         = "doc_title"
	KeyDocInfo          = "doc_info"
	KeyConvID           = "conv_id"
	KeyConvName         = "conv_name"
	KeyConvLastMod      = "conv_last_mod"
	KeyConvNode         = "conv_node"
	KeyDefaultUser      = "default_user"
	KeyDefaultAssistant = "default_assistant"
	KeyExtraContent     = "extra_content"
	KeyGeneratedAt      = "generated_at"
)

// Keys lists every label a complete locale provides.
var Keys = []string{
	KeyDocTitle, KeyDocInfo, KeyConvID, KeyConvName, KeyConvLastMod,
	KeyConvNode, KeyDefaultUser, KeyDefaultAssistant, KeyExtraContent, KeyGeneratedAt,
}

// Sentinel errors.
var (
	ErrNoLocales      = errors.New("no locales available")
	ErrMissingDefault = errors.New("default locale not available")
	ErrLocaleLoad     = errors.New("failed to load locale")
)

// Source provides raw locale tables. assets.AssetResolver satisfies it.
type Source interface {
	ListLocales() ([]string, error)
	LoadLocale(lang string) ([]byte, error)
}

// Catalog maps language codes to label tables.
type Catalog struct {
	fallback string
	tables   map[string]map[string]string
}

// New builds a Catalog from in-memory tables. fallback must be one of them.
func New(fallback string, tables map[string]map[string]string) (*Catalog, error) {
	if len(tables) == 0 {
		return nil, ErrNoLocales
	}
	if _, ok := tables[fallback]; !ok {
		return nil, fmt.Errorf("%w: %q", ErrMissingDefault, fallback)
	}

	c := &Catalog{fallback: fallback, tables: make(map[string]map[string]string, len(tables))}
	for lang, table := range tables {
		copied := make(map[string]string, len(table))
		for k, v := range table {
			copied[k] = v
		}
		c.tables[lang] = copied
	}
	return c, nil
}

// Load reads every locale from src.
func Load(src Source, fallback string) (*Catalog, error) {
	langs, err := src.ListLocales()
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrLocaleLoad, err)
	}

	tables := make(map[string]map[string]string, len(langs))
	for _, lang := range langs {
		data, err := src.LoadLocale(lang)
		if err != nil {
			return nil, fmt.Errorf("%w: %s: %v", ErrLocaleLoad, lang, err)
		}
		table, err := yamlutil.UnmarshalFlatMap(data)
		if err != nil {
			return nil, fmt.Errorf("%w: %s: %v", ErrLocaleLoad, lang, err)
		}
		tables[lang] = table
	}
	return New(fallback, tables)
}

// Text returns the label for key in lang. An unknown language uses the
// fallback table; a key missing from the chosen table is returned as-is.
func (c *Catalog) Text(lang, key string) string {
	table, ok := c.tables[lang]
	if !ok {
		table = c.tables[c.fallback]
	}
	if v, ok := table[key]; ok {
		return v
	}
	return key
}

// Has reports whether lang has its own table.
func (c *Catalog) Has(lang string) bool {
	_, ok := c.tables[lang]
	return ok
}

// Resolve returns lang if the catalog knows it, otherwise the fallback.
func (c *Catalog) Resolve(lang string) string {
	if c.Has(lang) {
		return lang
	}
	return c.fallback
}

// Fallback returns the fallback language code.
func (c *Catalog) Fallback() string {
	return c.fallback
}

// Languages returns the available language codes, sorted.
func (c *Catalog) Languages() []string {
	langs := make([]string, 0, len(c.tables))
	for lang := range c.tables {
		langs = append(langs, lang)
	}
	sort.Strings(langs)
	return langs
}

// Missing returns, per language, the keys from Keys that the table lacks.
// Complete languages are omitted.
func (c *Catalog) Missing() map[string][]string {
	out := make(map[string][]string)
	for lang, table := range c.tables {
		for _, k := range Keys {
			if _, ok := table[k]; !ok {
				out[lang] = append(out[lang], k)
			}
		}
	}
	return out
}

// Translator is a Catalog bound to one language.
type Translator struct {
	catalog *Catalog
	lang    string
}

// For binds the catalog to lang (resolved through the fallback).
func (c *Catalog) For(lang string) Translator {
	return Translator{catalog: c, lang: c.Resolve(lang)}
}

// T returns the label for key.
func (t Translator) T(key string) string {
	return t.catalog.Text(t.lang, key)
}

// Lang returns the bound language code.
func (t Translator) Lang() string {
	return t.lang
}
