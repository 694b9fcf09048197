// Package render turns a Block sequence into output formats.
//
// HTML is self-contained (stylesheet inlined) and is also the input of the
// PDF renderer. Markdown targets GitHub Flavored Markdown. Terminal output
// uses ANSI styling when the destination supports it and degrades to plain
// text otherwise.
package render
