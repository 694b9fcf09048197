package main

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	flag "github.com/spf13/pflag"

	"github.com/alnah/go-chat2doc"
)

// sampleFlags holds flags for the sample command.
type sampleFlags struct {
	output string
	force  bool
}

func registerSampleFlags(fs *flag.FlagSet, f *sampleFlags) {
	fs.StringVarP(&f.output, "output", "o", "", "write to this file or directory instead of stdout")
	fs.BoolVar(&f.force, "force", false, "overwrite an existing file")
}

// runSample writes the bundled example export.
func runSample(args []string, env *Environment) error {
	fs := flag.NewFlagSet("sample", flag.ContinueOnError)
	fs.SetOutput(env.Stderr)
	f := &sampleFlags{}
	registerSampleFlags(fs, f)
	fs.Usage = func() { printSampleUsage(env.Stderr) }

	if err := fs.Parse(args); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return nil
		}
		return fmt.Errorf("%w: %v", ErrUsage, err)
	}
	if fs.NArg() > 0 {
		return fmt.Errorf("%w: sample takes no arguments, got %q", ErrUsage, fs.Arg(0))
	}

	payload := chat2doc.SamplePayload()
	if f.output == "" {
		_, err := env.Stdout.Write(payload)
		return err
	}

	path := f.output
	if info, err := os.Stat(path); err == nil && info.IsDir() {
		path = filepath.Join(path, chat2doc.SampleFileName)
	}
	if !f.force {
		if _, err := os.Stat(path); err == nil {
			return fmt.Errorf("%w: %s already exists (use --force to overwrite)", ErrUsage, path)
		}
	}

	if err := os.WriteFile(path, payload, filePermissions); err != nil {
		return fmt.Errorf("%w: %w", ErrWriteOutput, err)
	}
	fmt.Fprintf(env.Stdout, "Created %s\n", path)
	return nil
}
