package main

import (
	"fmt"
	"io"
)

// printUsage prints the main usage message.
func printUsage(w io.Writer) {
	fmt.Fprintln(w, "Usage: chat2doc <command> [flags] [args]")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Commands:")
	fmt.Fprintln(w, "  convert     Convert conversation exports to PDF, HTML, Markdown or text")
	fmt.Fprintln(w, "  serve       Run the upload web server")
	fmt.Fprintln(w, "  sample      Write a sample conversation export")
	fmt.Fprintln(w, "  doctor      Check system configuration")
	fmt.Fprintln(w, "  completion  Generate shell completion script")
	fmt.Fprintln(w, "  version     Show version information")
	fmt.Fprintln(w, "  help        Show help for a command")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Run 'chat2doc help <command>' for details on a specific command.")
}

// printDocumentFlags prints the flags shared by convert and serve.
func printDocumentFlags(w io.Writer) {
	fmt.Fprintln(w, "Document:")
	fmt.Fprintln(w, "  -l, --language <s>        Label language: it, en, es, fr, de (default it)")
	fmt.Fprintln(w, "      --user-label <s>      Label for user messages")
	fmt.Fprintln(w, "      --assistant-label <s> Label for assistant messages")
	fmt.Fprintln(w, "      --date-format <s>     Timestamp format, e.g. DD/MM/YYYY HH:mm:ss")
	fmt.Fprintln(w, "                            Tokens: YYYY, YY, MMMM, MMM, MM, M, DD, D, HH, mm, ss")
	fmt.Fprintln(w, "                            Presets (case-insensitive): european, iso, us, long")
	fmt.Fprintln(w, "      --timezone <s>        IANA time zone, e.g. Europe/Rome (default local)")
	fmt.Fprintln(w, "      --no-date             Hide message timestamps")
	fmt.Fprintln(w, "      --no-divider          Hide rules between messages")
	fmt.Fprintln(w, "      --no-model            Hide the assistant model")
	fmt.Fprintln(w, "      --no-timings          Hide token and latency statistics")
	fmt.Fprintln(w, "      --no-numbers          Hide message ordinals")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Rendering:")
	fmt.Fprintln(w, "  -f, --format <s>          Output format: pdf, html, markdown, text (default pdf)")
	fmt.Fprintln(w, "      --style <s>           CSS style name or file path (html, pdf)")
	fmt.Fprintln(w, "      --asset-path <dir>    Custom asset directory (styles/, locales/)")
	fmt.Fprintln(w, "      --width <n>           Wrap width of text output (0 = no wrap)")
	fmt.Fprintln(w, "      --no-page-numbers     Omit the PDF page number footer")
	fmt.Fprintln(w, "  -t, --timeout <d>         PDF generation timeout (e.g., 30s, 2m)")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Configuration:")
	fmt.Fprintln(w, "  -c, --config <name>       Config file name or path")
	fmt.Fprintln(w, "  -w, --workers <n>         Parallel conversions (0 = auto)")
}

// printConvertUsage prints usage for the convert command.
func printConvertUsage(w io.Writer) {
	fmt.Fprintln(w, "Usage: chat2doc convert <input> [flags]")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Convert conversation exports (.json) to documents.")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Arguments:")
	fmt.Fprintln(w, "  input    Export file or directory (optional if config has input.defaultDir)")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Input/Output:")
	fmt.Fprintln(w, "  -o, --output <path>       Output file or directory")
	fmt.Fprintln(w, "      --stdout              Write a single document to stdout")
	fmt.Fprintln(w)
	printDocumentFlags(w)
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Output Control:")
	fmt.Fprintln(w, "  -q, --quiet               Only show errors")
	fmt.Fprintln(w, "  -v, --verbose             Show detailed timing")
}

// printServeUsage prints usage for the serve command.
func printServeUsage(w io.Writer) {
	fmt.Fprintln(w, "Usage: chat2doc serve [flags]")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Serve an upload form and a conversion endpoint over HTTP.")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Server:")
	fmt.Fprintln(w, "  -a, --addr <addr>         Listen address (default :5000)")
	fmt.Fprintln(w, "      --max-upload <n>      Upload size limit in bytes (default 10 MiB)")
	fmt.Fprintln(w, "      --log-level <s>       Log level: debug, info, warn, error")
	fmt.Fprintln(w, "      --log-format <s>      Log encoding: console, json")
	fmt.Fprintln(w, "      --env-file <path>     Dotenv file read at startup (default .env)")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Form fields override the document defaults below per request.")
	fmt.Fprintln(w)
	printDocumentFlags(w)
}

// printSampleUsage prints usage for the sample command.
func printSampleUsage(w io.Writer) {
	fmt.Fprintln(w, "Usage: chat2doc sample [flags]")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Write a sample conversation export to stdout or a file.")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Flags:")
	fmt.Fprintln(w, "  -o, --output <path>       File or directory to write")
	fmt.Fprintln(w, "      --force               Overwrite an existing file")
}

// runHelp prints help for a specific command.
func runHelp(args []string, env *Environment) {
	if len(args) == 0 {
		printUsage(env.Stdout)
		return
	}

	switch args[0] {
	case "convert":
		printConvertUsage(env.Stdout)
	case "serve":
		printServeUsage(env.Stdout)
	case "sample":
		printSampleUsage(env.Stdout)
	case "doctor":
		fmt.Fprintln(env.Stdout, "Usage: chat2doc doctor [--json]")
		fmt.Fprintln(env.Stdout)
		fmt.Fprintln(env.Stdout, "Check Chrome, embedded assets and the environment.")
	case "completion":
		printCompletionUsage(env.Stdout)
	case "version":
		fmt.Fprintln(env.Stdout, "Usage: chat2doc version")
		fmt.Fprintln(env.Stdout)
		fmt.Fprintln(env.Stdout, "Show version information.")
	case "help":
		fmt.Fprintln(env.Stdout, "Usage: chat2doc help [command]")
		fmt.Fprintln(env.Stdout)
		fmt.Fprintln(env.Stdout, "Show help for a command.")
	default:
		fmt.Fprintf(env.Stderr, "Unknown command: %s\n", args[0])
		printUsage(env.Stderr)
	}
}
