package main

import (
	"io"

	flag "github.com/spf13/pflag"
)

// commonFlags holds flags shared across commands.
type commonFlags struct {
	config  string
	quiet   bool
	verbose bool
}

// documentFlags selects what each document shows.
type documentFlags struct {
	language        string
	userLabel       string
	assistantLabel  string
	timestampFormat string
	timezone        string
	noDate          bool
	noDivider       bool
	noModel         bool
	noTimings       bool
	noNumbers       bool
}

// renderFlags holds output format and styling flags.
type renderFlags struct {
	format        string
	style         string
	assetPath     string
	width         int
	noPageNumbers bool
}

// convertFlags holds all flags for the convert command.
type convertFlags struct {
	common   commonFlags
	output   string
	stdout   bool
	workers  int
	timeout  string
	document documentFlags
	render   renderFlags
}

// serveFlags holds all flags for the serve command.
type serveFlags struct {
	common    commonFlags
	addr      string
	workers   int
	timeout   string
	maxUpload int64
	logLevel  string
	logFormat string
	envFile   string
	document  documentFlags
	render    renderFlags
}

// widthUnset detects whether --width was given, since 0 disables wrapping.
const widthUnset = -1

// addCommonFlags adds common flags to a FlagSet.
func addCommonFlags(fs *flag.FlagSet, f *commonFlags) {
	fs.StringVarP(&f.config, "config", "c", "", "config file name or path")
	fs.BoolVarP(&f.quiet, "quiet", "q", false, "only show errors")
	fs.BoolVarP(&f.verbose, "verbose", "v", false, "show detailed timing")
}

// addDocumentFlags adds document content flags to a FlagSet.
func addDocumentFlags(fs *flag.FlagSet, f *documentFlags) {
	fs.StringVarP(&f.language, "language", "l", "", "label language: it, en, es, fr, de")
	fs.StringVar(&f.userLabel, "user-label", "", "label for user messages")
	fs.StringVar(&f.assistantLabel, "assistant-label", "", "label for assistant messages")
	fs.StringVar(&f.timestampFormat, "date-format", "", "timestamp format or preset: european, iso, us, long")
	fs.StringVar(&f.timezone, "timezone", "", "IANA time zone for timestamps (default: local)")
	fs.BoolVar(&f.noDate, "no-date", false, "hide message timestamps")
	fs.BoolVar(&f.noDivider, "no-divider", false, "hide rules between messages")
	fs.BoolVar(&f.noModel, "no-model", false, "hide the assistant model")
	fs.BoolVar(&f.noTimings, "no-timings", false, "hide token and latency statistics")
	fs.BoolVar(&f.noNumbers, "no-numbers", false, "hide message ordinals")
}

// addRenderFlags adds format and styling flags to a FlagSet.
func addRenderFlags(fs *flag.FlagSet, f *renderFlags) {
	fs.StringVarP(&f.format, "format", "f", "", "output format: pdf, html, markdown, text")
	fs.StringVar(&f.style, "style", "", "CSS style name or file path (html, pdf)")
	fs.StringVar(&f.assetPath, "asset-path", "", "custom asset directory (styles/, locales/)")
	fs.IntVar(&f.width, "width", widthUnset, "wrap width of text output (0 = no wrap)")
	fs.BoolVar(&f.noPageNumbers, "no-page-numbers", false, "omit the PDF page number footer")
}

// registerConvertFlags registers every convert flag on fs.
// Shared by parseConvertFlags and shell completion.
func registerConvertFlags(fs *flag.FlagSet, f *convertFlags) {
	fs.StringVarP(&f.output, "output", "o", "", "output file or directory")
	fs.BoolVar(&f.stdout, "stdout", false, "write a single document to stdout")
	fs.IntVarP(&f.workers, "workers", "w", 0, "parallel workers (0 = auto)")
	fs.StringVarP(&f.timeout, "timeout", "t", "", "PDF generation timeout (e.g., 30s, 2m)")

	addCommonFlags(fs, &f.common)
	addDocumentFlags(fs, &f.document)
	addRenderFlags(fs, &f.render)
}

// registerServeFlags registers every serve flag on fs.
func registerServeFlags(fs *flag.FlagSet, f *serveFlags) {
	fs.StringVarP(&f.addr, "addr", "a", "", "listen address (default :5000)")
	fs.IntVarP(&f.workers, "workers", "w", 0, "concurrent conversions (0 = auto)")
	fs.StringVarP(&f.timeout, "timeout", "t", "", "PDF generation timeout (e.g., 30s, 2m)")
	fs.Int64Var(&f.maxUpload, "max-upload", 0, "upload size limit in bytes (default 10 MiB)")
	fs.StringVar(&f.logLevel, "log-level", "", "log level: debug, info, warn, error")
	fs.StringVar(&f.logFormat, "log-format", "", "log encoding: console, json")
	fs.StringVar(&f.envFile, "env-file", ".env", "dotenv file loaded before reading CHAT2DOC_* variables")

	addCommonFlags(fs, &f.common)
	addDocumentFlags(fs, &f.document)
	addRenderFlags(fs, &f.render)
}

// parseConvertFlags parses convert command flags and returns positional args.
func parseConvertFlags(args []string, stderr io.Writer) (*convertFlags, []string, error) {
	fs := flag.NewFlagSet("convert", flag.ContinueOnError)
	fs.SetOutput(stderr)
	f := &convertFlags{}
	registerConvertFlags(fs, f)
	fs.Usage = func() { printConvertUsage(stderr) }

	if err := fs.Parse(args); err != nil {
		return nil, nil, err
	}
	return f, fs.Args(), nil
}

// parseServeFlags parses serve command flags.
func parseServeFlags(args []string, stderr io.Writer) (*serveFlags, []string, error) {
	fs := flag.NewFlagSet("serve", flag.ContinueOnError)
	fs.SetOutput(stderr)
	f := &serveFlags{}
	registerServeFlags(fs, f)
	fs.Usage = func() { printServeUsage(stderr) }

	if err := fs.Parse(args); err != nil {
		return nil, nil, err
	}
	return f, fs.Args(), nil
}
