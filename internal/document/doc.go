// Package document assembles a parsed conversation into the Block sequence
// consumed by renderers.
//
// The layout follows a fixed order: title, conversation details table,
// one section per message, footer. Per-call Options toggle the optional
// parts (timestamps, dividers, model line, timing line, ordinals).
// A Builder never fails: missing data has already been defaulted by the
// transcript package and is rendered as-is.
package document
