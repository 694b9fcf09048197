package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"runtime"

	"go.uber.org/automaxprocs/maxprocs"

	"github.com/alnah/go-chat2doc"
	"github.com/alnah/go-chat2doc/internal/assets"
	"github.com/alnah/go-chat2doc/internal/fileutil"
	"github.com/alnah/go-chat2doc/internal/hints"
)

// Version is set at build time via ldflags.
var Version = "dev"

func main() {
	// Error ignored: maxprocs.Set only fails if GOMAXPROCS env is invalid,
	// in which case Go runtime defaults apply.
	_, _ = maxprocs.Set(maxprocs.Logger(func(string, ...interface{}) {}))

	os.Exit(runMain(os.Args, DefaultEnv()))
}

// commands lists the subcommand names accepted as the first argument.
var commands = []string{"convert", "serve", "sample", "doctor", "completion", "version", "help"}

// isCommand reports whether arg names a subcommand.
func isCommand(arg string) bool {
	for _, c := range commands {
		if arg == c {
			return true
		}
	}
	return false
}

// looksLikeConversation reports whether arg is a conversation file given
// without the convert subcommand.
func looksLikeConversation(arg string) bool {
	return fileutil.HasExtension(arg, conversationExt)
}

// runMain dispatches to a subcommand and returns the process exit code.
func runMain(args []string, env *Environment) int {
	if len(args) < 2 {
		printUsage(env.Stderr)
		return ExitUsage
	}

	ctx, stop := notifyContext(context.Background())
	defer stop()

	cmd, rest := args[1], args[2:]
	if !isCommand(cmd) && looksLikeConversation(cmd) {
		cmd, rest = "convert", args[1:]
	}

	var err error
	switch cmd {
	case "convert":
		err = runConvert(ctx, rest, env)
	case "serve":
		err = runServe(ctx, rest, env)
	case "sample":
		err = runSample(rest, env)
	case "doctor":
		return runDoctorCmd(rest, env)
	case "completion":
		err = runCompletion(rest, env)
	case "version":
		fmt.Fprintf(env.Stdout, "chat2doc %s (%s, %s/%s)\n", Version, runtime.Version(), runtime.GOOS, runtime.GOARCH)
		return ExitSuccess
	case "help", "-h", "--help":
		runHelp(rest, env)
		return ExitSuccess
	default:
		fmt.Fprintf(env.Stderr, "unknown command: %s\n", cmd)
		printUsage(env.Stderr)
		return ExitUsage
	}

	if err != nil {
		fmt.Fprintf(env.Stderr, "error: %v%s\n", err, hintFor(err))
		return exitCodeFor(err)
	}
	return ExitSuccess
}

// hintFor returns an actionable suffix for err, or "".
func hintFor(err error) string {
	switch {
	case errors.Is(err, chat2doc.ErrBrowserConnect),
		errors.Is(err, chat2doc.ErrPageCreate):
		return hints.ForBrowserConnect(hints.LocalHost())
	case errors.Is(err, context.DeadlineExceeded),
		errors.Is(err, chat2doc.ErrPageLoad):
		return hints.ForTimeout()
	case errors.Is(err, chat2doc.ErrInvalidPayload),
		errors.Is(err, chat2doc.ErrEmptyPayload):
		return hints.ForInvalidPayload()
	case errors.Is(err, chat2doc.ErrUnsupportedFormat):
		return hints.ForUnsupportedFormat(formatNames())
	case errors.Is(err, chat2doc.ErrStyleNotFound):
		available, _ := assets.NewEmbeddedLoader().ListStyles()
		return hints.ForStyleNotFound(available)
	case errors.Is(err, ErrWriteOutput):
		return hints.ForOutputDirectory()
	}
	return ""
}
