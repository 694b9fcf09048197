package pipeline

import (
	"regexp"
	"strings"
)

// Precompiled regex patterns for math span rewriting.
var (
	// $$...$$ may span lines and is matched before single-dollar spans.
	displayMathPattern = regexp.MustCompile(`(?s)\$\$(.+?)\$\$`)

	// $...$ stays on one line. Prices are filtered out by looksLikePrice.
	inlineMathPattern = regexp.MustCompile(`\$([^$\n]+)\$`)

	commandPattern     = regexp.MustCompile(`\\([a-zA-Z]+)`)
	superGroupPattern  = regexp.MustCompile(`\^\{([^{}]*)\}`)
	superCharPattern   = regexp.MustCompile(`\^([^\s{])`)
	subGroupPattern    = regexp.MustCompile(`_\{([^{}]*)\}`)
	subCharPattern     = regexp.MustCompile(`_([^\s{])`)
	fracPattern        = regexp.MustCompile(`\\frac\{([^{}]*)\}\{([^{}]*)\}`)
	strayBackslashTail = regexp.MustCompile(`\\+(\s|$)`)
)

// latexSymbols maps command names (without the backslash) to Unicode.
// Lookup is by whole command token, so \in never shadows \infty.
var latexSymbols = map[string]string{
	// Greek lowercase
	"alpha": "α", "beta": "β", "gamma": "γ", "delta": "δ", "epsilon": "ε",
	"varepsilon": "ε", "zeta": "ζ", "eta": "η", "theta": "θ", "iota": "ι",
	"kappa": "κ", "lambda": "λ", "mu": "μ", "nu": "ν", "xi": "ξ", "pi": "π",
	"rho": "ρ", "sigma": "σ", "tau": "τ", "phi": "φ", "varphi": "φ",
	"chi": "χ", "psi": "ψ", "omega": "ω",

	// Greek uppercase
	"Gamma": "Γ", "Delta": "Δ", "Theta": "Θ", "Lambda": "Λ", "Xi": "Ξ",
	"Pi": "Π", "Sigma": "Σ", "Phi": "Φ", "Psi": "Ψ", "Omega": "Ω",

	// Operators and relations
	"times": "×", "div": "÷", "pm": "±", "mp": "∓", "cdot": "·", "circ": "∘",
	"leq": "≤", "le": "≤", "geq": "≥", "ge": "≥", "neq": "≠", "ne": "≠",
	"approx": "≈", "equiv": "≡", "sim": "∼", "propto": "∝",
	"infty": "∞", "sum": "∑", "prod": "∏", "int": "∫", "oint": "∮",
	"partial": "∂", "nabla": "∇", "sqrt": "√",

	// Sets and logic
	"in": "∈", "notin": "∉", "subset": "⊂", "subseteq": "⊆", "supset": "⊃",
	"supseteq": "⊇", "cup": "∪", "cap": "∩", "emptyset": "∅",
	"forall": "∀", "exists": "∃", "neg": "¬", "land": "∧", "lor": "∨",

	// Arrows
	"rightarrow": "→", "to": "→", "leftarrow": "←", "leftrightarrow": "↔",
	"Rightarrow": "⇒", "Leftarrow": "⇐", "Leftrightarrow": "⇔", "implies": "⇒",
	"mapsto": "↦",

	// Dots
	"ldots": "…", "cdots": "⋯",
}

// latexDropped lists commands removed with no replacement: sizing commands,
// and font wrappers whose braces are stripped later so only the argument survives.
var latexDropped = map[string]bool{
	"left": true, "right": true,
	"big": true, "Big": true, "bigg": true, "Bigg": true,
	"text": true, "mathrm": true, "mathbf": true, "mathit": true, "operatorname": true,
}

var superscripts = map[rune]rune{
	'0': '⁰', '1': '¹', '2': '²', '3': '³', '4': '⁴',
	'5': '⁵', '6': '⁶', '7': '⁷', '8': '⁸', '9': '⁹',
	'+': '⁺', '-': '⁻', '=': '⁼', '(': '⁽', ')': '⁾',
	'a': 'ᵃ', 'b': 'ᵇ', 'c': 'ᶜ', 'd': 'ᵈ', 'e': 'ᵉ', 'f': 'ᶠ', 'g': 'ᵍ',
	'h': 'ʰ', 'i': 'ⁱ', 'j': 'ʲ', 'k': 'ᵏ', 'l': 'ˡ', 'm': 'ᵐ', 'n': 'ⁿ',
	'o': 'ᵒ', 'p': 'ᵖ', 'r': 'ʳ', 's': 'ˢ', 't': 'ᵗ', 'u': 'ᵘ', 'v': 'ᵛ',
	'w': 'ʷ', 'x': 'ˣ', 'y': 'ʸ', 'z': 'ᶻ',
}

var subscripts = map[rune]rune{
	'0': '₀', '1': '₁', '2': '₂', '3': '₃', '4': '₄',
	'5': '₅', '6': '₆', '7': '₇', '8': '₈', '9': '₉',
	'+': '₊', '-': '₋', '=': '₌', '(': '₍', ')': '₎',
	'a': 'ₐ', 'e': 'ₑ', 'h': 'ₕ', 'i': 'ᵢ', 'j': 'ⱼ', 'k': 'ₖ', 'l': 'ₗ',
	'm': 'ₘ', 'n': 'ₙ', 'o': 'ₒ', 'p': 'ₚ', 'r': 'ᵣ', 's': 'ₛ', 't': 'ₜ',
	'u': 'ᵤ', 'v': 'ᵥ', 'x': 'ₓ',
}

// NormalizeLatex rewrites $$...$$ and $...$ math spans to Unicode text.
// Text outside math spans is returned unchanged. Never fails: unknown
// commands and malformed spans degrade to best-effort plain text.
func NormalizeLatex(text string) string {
	if !strings.Contains(text, "$") {
		return text
	}
	text = displayMathPattern.ReplaceAllStringFunc(text, func(m string) string {
		return convertMathSpan(m[2 : len(m)-2])
	})
	return replaceInlineMath(text)
}

// replaceInlineMath converts single-dollar spans left to right. A rejected
// span gives its closing "$" back, so "$5 and $\alpha$" still converts \alpha.
func replaceInlineMath(text string) string {
	var b strings.Builder
	pos := 0
	for pos < len(text) {
		loc := inlineMathPattern.FindStringSubmatchIndex(text[pos:])
		if loc == nil {
			break
		}
		start, end := pos+loc[0], pos+loc[1]
		inner := text[pos+loc[2] : pos+loc[3]]
		if looksLikePrice(inner) {
			b.WriteString(text[pos : end-1])
			pos = end - 1
			continue
		}
		b.WriteString(text[pos:start])
		b.WriteString(convertMathSpan(inner))
		pos = end
	}
	b.WriteString(text[pos:])
	return b.String()
}

// looksLikePrice reports whether the text between two dollars reads as
// "$5 and $": a digit right after the opener and a blank before the closer.
func looksLikePrice(inner string) bool {
	first, last := inner[0], inner[len(inner)-1]
	return first >= '0' && first <= '9' && (last == ' ' || last == '\t')
}

// convertMathSpan applies the symbol, script, fraction and cleanup passes
// to the inside of one math span.
func convertMathSpan(span string) string {
	// 1. Known symbols
	span = commandPattern.ReplaceAllStringFunc(span, func(m string) string {
		if sym, ok := latexSymbols[m[1:]]; ok {
			return sym
		}
		return m
	})

	// 2-3. Superscripts and subscripts
	span = superGroupPattern.ReplaceAllStringFunc(span, func(m string) string {
		return mapRunes(m[2:len(m)-1], superscripts)
	})
	span = superCharPattern.ReplaceAllStringFunc(span, func(m string) string {
		return mapRunes(m[1:], superscripts)
	})
	span = subGroupPattern.ReplaceAllStringFunc(span, func(m string) string {
		return mapRunes(m[2:len(m)-1], subscripts)
	})
	span = subCharPattern.ReplaceAllStringFunc(span, func(m string) string {
		return mapRunes(m[1:], subscripts)
	})

	// 4. Simple fractions, single pass
	span = fracPattern.ReplaceAllString(span, "$1/$2")

	// 5. Sizing commands and font wrappers
	span = commandPattern.ReplaceAllStringFunc(span, func(m string) string {
		if latexDropped[m[1:]] {
			return ""
		}
		return m
	})

	// 6. Leftover grouping braces
	span = strings.NewReplacer("{", "", "}", "").Replace(span)

	// 7. Backslashes with nothing after them
	span = strayBackslashTail.ReplaceAllString(span, "$1")

	return strings.TrimSpace(span)
}

// mapRunes replaces each rune that has an entry in table; others pass through.
func mapRunes(s string, table map[rune]rune) string {
	return strings.Map(func(r rune) rune {
		if mapped, ok := table[r]; ok {
			return mapped
		}
		return r
	}, s)
}
