// Package hints builds the short remedies the CLI prints under an error.
// Every non-empty hint starts with Prefix.
package hints

import (
	"strings"
)

// Prefix introduces a hint on its own indented line.
const Prefix = "\n  hint: "

// hint collects remedies for one error. Its String joins them with "; ".
type hint []string

func (h hint) String() string {
	if len(h) == 0 {
		return ""
	}
	return Prefix + strings.Join(h, "; ")
}

// ForBrowserConnect suggests how to get Chrome running on h, and reminds
// that only PDF output needs it.
func ForBrowserConnect(h Host) string {
	var out hint
	if h.NeedsNoSandbox() {
		out = append(out, "set ROD_NO_SANDBOX=1 inside containers and CI")
	}
	if h.Getenv("ROD_BROWSER_BIN") == "" {
		out = append(out, "set ROD_BROWSER_BIN to a Chrome or Chromium binary")
	}
	out = append(out, "or use --format html, markdown or text, which need no browser")
	return out.String()
}

// ForTimeout suggests a longer PDF timeout.
func ForTimeout() string {
	return hint{"long conversations may need a larger --timeout, e.g. --timeout 2m"}.String()
}

// ForConfigNotFound points at --config and, when the user config directory
// was searched, at the file that would have been picked up there.
func ForConfigNotFound(searched []string) string {
	out := hint{"pass --config /path/to/file.yaml"}
	for _, p := range searched {
		if strings.Contains(strings.ReplaceAll(p, `\`, "/"), "/go-chat2doc/") {
			out = append(out, "or create "+p)
			break
		}
	}
	return out.String()
}

// ForOutputDirectory covers failures to create or write the output.
func ForOutputDirectory() string {
	return hint{"check that the output's parent directory exists and is writable"}.String()
}

// ForStyleNotFound lists the styles that do exist. Empty when none are known.
func ForStyleNotFound(available []string) string {
	return listing("available: ", available)
}

// ForInvalidPayload describes the expected export shape.
func ForInvalidPayload() string {
	return hint{`expected a JSON object with "conv" and "messages"`,
		`run "chat2doc sample" for an example`}.String()
}

// ForUnsupportedFormat lists the accepted output formats.
func ForUnsupportedFormat(formats []string) string {
	return listing("supported formats: ", formats)
}

func listing(label string, items []string) string {
	if len(items) == 0 {
		return ""
	}
	return hint{label + strings.Join(items, ", ")}.String()
}
