package main

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"os/exec"
	"path/filepath"
	"runtime"
	"strings"

	"github.com/go-rod/rod/lib/launcher"
	flag "github.com/spf13/pflag"

	"github.com/alnah/go-chat2doc"
	"github.com/alnah/go-chat2doc/internal/assets"
	"github.com/alnah/go-chat2doc/internal/hints"
	"github.com/alnah/go-chat2doc/internal/i18n"
)

// Doctor status values.
const (
	statusReady    = "ready"
	statusWarnings = "warnings"
	statusErrors   = "errors"
)

// doctorResult holds all diagnostic information.
type doctorResult struct {
	Status   string     `json:"status"`
	Chrome   chromeInfo `json:"chrome"`
	Assets   assetInfo  `json:"assets"`
	Env      envInfo    `json:"environment"`
	System   systemInfo `json:"system"`
	Warnings []string   `json:"warnings,omitempty"`
	Errors   []string   `json:"errors,omitempty"`
}

// chromeInfo holds Chrome/Chromium detection results.
type chromeInfo struct {
	Found   bool   `json:"found"`
	Path    string `json:"path,omitempty"`
	Version string `json:"version,omitempty"`
	Sandbox bool   `json:"sandbox"`
}

// assetInfo describes the built-in styles and label catalogs.
type assetInfo struct {
	Styles   []string `json:"styles"`
	Locales  []string `json:"locales"`
	Fallback string   `json:"fallback_locale,omitempty"`
}

// envInfo holds environment detection results.
type envInfo struct {
	OS            string `json:"os"`
	Arch          string `json:"arch"`
	Container     bool   `json:"container"`
	ContainerHint string `json:"container_hint,omitempty"`
	CI            bool   `json:"ci"`
	NoSandbox     string `json:"rod_no_sandbox"`
	BrowserBin    string `json:"rod_browser_bin"`
}

// systemInfo holds system check results.
type systemInfo struct {
	TempWritable bool `json:"temp_writable"`
}

func registerDoctorFlags(fs *flag.FlagSet, jsonOutput *bool) {
	fs.BoolVar(jsonOutput, "json", false, "print results as JSON")
}

// runDoctorCmd executes the doctor command and returns an exit code.
// Exit codes: 0 = OK (including warnings), 1 = errors found.
func runDoctorCmd(args []string, env *Environment) int {
	fs := flag.NewFlagSet("doctor", flag.ContinueOnError)
	fs.SetOutput(env.Stderr)
	var jsonOutput bool
	registerDoctorFlags(fs, &jsonOutput)
	if err := fs.Parse(args); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return ExitSuccess
		}
		return ExitUsage
	}

	result := runDoctor()

	if jsonOutput {
		enc := json.NewEncoder(env.Stdout)
		enc.SetIndent("", "  ")
		_ = enc.Encode(result)
	} else {
		printDoctorResult(env.Stdout, result)
	}

	if result.Status == statusErrors {
		return ExitGeneral
	}
	return ExitSuccess
}

// runDoctor performs all diagnostic checks.
func runDoctor() *doctorResult {
	result := &doctorResult{
		Status: statusReady,
		Env: envInfo{
			OS:         runtime.GOOS,
			Arch:       runtime.GOARCH,
			NoSandbox:  os.Getenv("ROD_NO_SANDBOX"),
			BrowserBin: os.Getenv("ROD_BROWSER_BIN"),
		},
	}

	checkChrome(result)
	checkAssets(result)
	checkEnvironment(result)
	checkSystem(result)

	if len(result.Errors) > 0 {
		result.Status = statusErrors
	} else if len(result.Warnings) > 0 {
		result.Status = statusWarnings
	}

	return result
}

// checkChrome detects Chrome/Chromium installation. Only PDF output needs it,
// so a missing browser is a warning.
func checkChrome(result *doctorResult) {
	chromePath := result.Env.BrowserBin

	if chromePath == "" {
		var found bool
		chromePath, found = launcher.LookPath()
		if !found {
			result.Warnings = append(result.Warnings,
				"Chrome/Chromium not found: PDF output unavailable. Install Chrome or set ROD_BROWSER_BIN")
			return
		}
	}

	if _, err := os.Stat(chromePath); err != nil {
		result.Warnings = append(result.Warnings,
			fmt.Sprintf("Chrome not found at %s: PDF output unavailable", chromePath))
		return
	}

	result.Chrome.Found = true
	result.Chrome.Path = chromePath

	cmd := exec.Command(chromePath, "--version") // #nosec G204 -- path from rod launcher or ROD_BROWSER_BIN
	out, err := cmd.Output()
	if err == nil {
		result.Chrome.Version = strings.TrimSpace(string(out))
	} else {
		result.Warnings = append(result.Warnings,
			fmt.Sprintf("Could not get Chrome version: %v", err))
	}

	result.Chrome.Sandbox = result.Env.NoSandbox != "1"
}

// checkAssets verifies the embedded styles and label catalogs.
func checkAssets(result *doctorResult) {
	loader := assets.NewEmbeddedLoader()
	styles, err := loader.ListStyles()
	if err != nil || len(styles) == 0 {
		result.Errors = append(result.Errors, "Embedded styles unavailable")
	}
	result.Assets.Styles = styles
	checkLocales(result, loader)
}

// checkLocales loads every locale from src. A locale lacking keys only
// warns: lookups fall back to the key itself.
func checkLocales(result *doctorResult, src i18n.Source) {
	catalog, err := i18n.Load(src, chat2doc.DefaultLanguage)
	if err != nil {
		result.Errors = append(result.Errors, fmt.Sprintf("Locales unavailable: %v", err))
		return
	}
	result.Assets.Locales = catalog.Languages()
	result.Assets.Fallback = catalog.Fallback()

	missing := catalog.Missing()
	for _, lang := range result.Assets.Locales {
		if keys := missing[lang]; len(keys) > 0 {
			result.Warnings = append(result.Warnings,
				fmt.Sprintf("Locale %s is missing %s", lang, strings.Join(keys, ", ")))
		}
	}
}

// checkEnvironment detects container and CI environments.
func checkEnvironment(result *doctorResult) {
	host := hints.LocalHost()
	result.Env.Container, result.Env.ContainerHint = host.Container()
	result.Env.CI = host.CI()

	if host.NeedsNoSandbox() {
		result.Warnings = append(result.Warnings,
			"Container/CI detected but ROD_NO_SANDBOX not set. Set ROD_NO_SANDBOX=1")
	}
}

// checkSystem verifies the temp directory used for PDF rendering is writable.
func checkSystem(result *doctorResult) {
	tmpDir := os.TempDir()
	testFile := filepath.Join(tmpDir, "chat2doc-doctor-test")
	if err := os.WriteFile(testFile, []byte("test"), 0o600); err != nil {
		result.Errors = append(result.Errors,
			fmt.Sprintf("Temp directory not writable: %s", tmpDir))
	} else {
		_ = os.Remove(testFile)
		result.System.TempWritable = true
	}
}

// Report line markers.
const (
	markOK    = "[OK]"
	markWarn  = "[WARN]"
	markError = "[ERROR]"
)

type reportLine struct {
	mark string
	text string
}

type reportSection struct {
	title string
	lines []reportLine
}

// printDoctorResult writes the human-readable report.
func printDoctorResult(w io.Writer, r *doctorResult) {
	fmt.Fprintf(w, "chat2doc doctor\n\n")
	for _, sec := range reportSections(r) {
		if len(sec.lines) == 0 {
			continue
		}
		fmt.Fprintln(w, sec.title)
		for _, l := range sec.lines {
			fmt.Fprintf(w, "  %s %s\n", l.mark, l.text)
		}
		fmt.Fprintln(w)
	}

	switch r.Status {
	case statusReady:
		fmt.Fprintln(w, "Status: Ready to convert")
	case statusWarnings:
		fmt.Fprintln(w, "Status: Ready with warnings")
	case statusErrors:
		fmt.Fprintln(w, "Status: Not ready (see errors above)")
	}
}

func reportSections(r *doctorResult) []reportSection {
	var chrome []reportLine
	if r.Chrome.Found {
		chrome = append(chrome, reportLine{markOK, "Found at " + r.Chrome.Path})
		if r.Chrome.Version != "" {
			chrome = append(chrome, reportLine{markOK, "Version: " + r.Chrome.Version})
		}
		sandbox := "enabled"
		if !r.Chrome.Sandbox {
			sandbox = "disabled (ROD_NO_SANDBOX=1)"
		}
		chrome = append(chrome, reportLine{markOK, "Sandbox: " + sandbox})
	} else {
		chrome = append(chrome, reportLine{markWarn, "Not found (html, markdown and text still work)"})
	}

	formats := make([]reportLine, 0, len(chat2doc.Formats))
	for _, f := range chat2doc.Formats {
		if f == chat2doc.FormatPDF && !r.Chrome.Found {
			formats = append(formats, reportLine{markWarn, string(f) + ": needs Chrome"})
			continue
		}
		formats = append(formats, reportLine{markOK, string(f)})
	}

	assetLines := []reportLine{
		listLine("Styles", r.Assets.Styles, ""),
		listLine("Locales", r.Assets.Locales, r.Assets.Fallback),
	}

	env := []reportLine{{markOK, fmt.Sprintf("Platform: %s/%s", r.Env.OS, r.Env.Arch)}}
	if r.Env.Container {
		env = append(env, reportLine{markOK, fmt.Sprintf("Container: detected (%s)", r.Env.ContainerHint)})
	}
	if r.Env.CI {
		env = append(env, reportLine{markOK, "CI: detected"})
	}

	temp := reportLine{markOK, "Temp directory: writable"}
	if !r.System.TempWritable {
		temp = reportLine{markError, "Temp directory: not writable"}
	}

	return []reportSection{
		{"Chrome/Chromium", chrome},
		{"Formats", formats},
		{"Assets", assetLines},
		{"Environment", env},
		{"System", []reportLine{temp}},
		{"Warnings:", markAll(markWarn, r.Warnings)},
		{"Errors:", markAll(markError, r.Errors)},
	}
}

// listLine reports a named asset list; an empty list is an error.
func listLine(name string, items []string, fallback string) reportLine {
	if len(items) == 0 {
		return reportLine{markError, name + ": none"}
	}
	text := name + ": " + strings.Join(items, ", ")
	if fallback != "" {
		text += " (fallback " + fallback + ")"
	}
	return reportLine{markOK, text}
}

func markAll(mark string, texts []string) []reportLine {
	lines := make([]reportLine, len(texts))
	for i, t := range texts {
		lines[i] = reportLine{mark, t}
	}
	return lines
}
