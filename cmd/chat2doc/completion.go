package main

import (
	"errors"
	"fmt"
	"io"
	"sort"
	"strings"

	flag "github.com/spf13/pflag"

	"github.com/alnah/go-chat2doc"
)

// Shell represents a supported shell for completion generation.
type Shell string

// Supported shells for completion.
const (
	ShellBash       Shell = "bash"
	ShellZsh        Shell = "zsh"
	ShellFish       Shell = "fish"
	ShellPowerShell Shell = "powershell"
)

// ErrUnsupportedShell is returned when an unknown shell is requested.
var ErrUnsupportedShell = errors.New("unsupported shell")

// flagType represents the completion type for a flag.
type flagType int

const (
	flagString flagType = iota // default
	flagBool
	flagInt
	flagFloat
	flagEnum // has predefined values
	flagFile // file with glob pattern
	flagDir  // directory
)

// flagDef describes a flag for completion purposes.
type flagDef struct {
	Long     string   // --output
	Short    string   // -o (empty if none)
	Type     flagType // completion type
	Desc     string   // help text
	Values   []string // for enum flags
	FileGlob string   // for file flags
}

// commandDef describes a command for completion.
type commandDef struct {
	Name        string
	Desc        string
	Flags       []flagDef
	TakesFiles  bool   // accepts file arguments
	FilePattern string // glob for file arguments (e.g., "*.json")
}

// completionMeta holds completion-specific metadata for flags.
// Names and usage strings come from the FlagSet.
type completionMeta struct {
	Values   []string // enum values
	FileGlob string   // file glob pattern
	IsDir    bool     // directory completion
}

// flagCompletionMeta maps flag names to their completion metadata.
var flagCompletionMeta = map[string]completionMeta{
	"format":      {Values: formatNames()},
	"language":    {Values: []string{"it", "en", "es", "fr", "de"}},
	"date-format": {Values: []string{"european", "iso", "us", "long"}},
	"log-level":   {Values: []string{"debug", "info", "warn", "error"}},
	"log-format":  {Values: []string{"console", "json"}},

	"config":   {FileGlob: "*.yaml,*.yml"},
	"style":    {FileGlob: "*.css"},
	"env-file": {FileGlob: ".env,*.env"},

	"output":     {IsDir: true},
	"asset-path": {IsDir: true},
}

func formatNames() []string {
	names := make([]string, len(chat2doc.Formats))
	for i, f := range chat2doc.Formats {
		names[i] = string(f)
	}
	return names
}

// extractFlagsFromFlagSet extracts flag definitions from a pflag.FlagSet.
// Enriches with completion metadata from flagCompletionMeta.
func extractFlagsFromFlagSet(fs *flag.FlagSet) []flagDef {
	var flags []flagDef

	fs.VisitAll(func(f *flag.Flag) {
		fd := flagDef{
			Long:  f.Name,
			Short: f.Shorthand,
			Desc:  f.Usage,
		}

		switch f.Value.Type() {
		case "bool":
			fd.Type = flagBool
		case "int", "int8", "int16", "int32", "int64", "uint", "uint8", "uint16", "uint32", "uint64":
			fd.Type = flagInt
		case "float32", "float64":
			fd.Type = flagFloat
		default:
			fd.Type = flagString
		}

		if meta, ok := flagCompletionMeta[f.Name]; ok {
			switch {
			case len(meta.Values) > 0:
				fd.Type = flagEnum
				fd.Values = meta.Values
			case meta.FileGlob != "":
				fd.Type = flagFile
				fd.FileGlob = meta.FileGlob
			case meta.IsDir:
				fd.Type = flagDir
			}
		}

		flags = append(flags, fd)
	})

	return flags
}

func commandFlagSet(name string, register func(*flag.FlagSet)) *flag.FlagSet {
	fs := flag.NewFlagSet(name, flag.ContinueOnError)
	register(fs)
	return fs
}

// getCommands returns the command registry for completion.
// Flags are extracted from the same registration used for parsing.
func getCommands() []commandDef {
	return []commandDef{
		{
			Name: "convert",
			Desc: "Convert conversation exports to documents",
			Flags: extractFlagsFromFlagSet(commandFlagSet("convert", func(fs *flag.FlagSet) {
				registerConvertFlags(fs, &convertFlags{})
			})),
			TakesFiles:  true,
			FilePattern: "*.json",
		},
		{
			Name: "serve",
			Desc: "Run the upload web server",
			Flags: extractFlagsFromFlagSet(commandFlagSet("serve", func(fs *flag.FlagSet) {
				registerServeFlags(fs, &serveFlags{})
			})),
		},
		{
			Name: "sample",
			Desc: "Write a sample conversation export",
			Flags: extractFlagsFromFlagSet(commandFlagSet("sample", func(fs *flag.FlagSet) {
				registerSampleFlags(fs, &sampleFlags{})
			})),
		},
		{
			Name: "doctor",
			Desc: "Check system configuration",
			Flags: extractFlagsFromFlagSet(commandFlagSet("doctor", func(fs *flag.FlagSet) {
				registerDoctorFlags(fs, new(bool))
			})),
		},
		{Name: "completion", Desc: "Generate shell completion script"},
		{Name: "version", Desc: "Show version information"},
		{Name: "help", Desc: "Show help for a command"},
	}
}

// GenerateCompletion writes shell completion script to w.
// Returns error if shell is unsupported or write fails.
func GenerateCompletion(w io.Writer, shell Shell) error {
	var script string
	switch shell {
	case ShellBash:
		script = generateBash(getCommands())
	case ShellZsh:
		script = generateZsh(getCommands())
	case ShellFish:
		script = generateFish(getCommands())
	case ShellPowerShell:
		script = generatePowerShell(getCommands())
	default:
		return fmt.Errorf("%w: %q (supported: bash, zsh, fish, powershell)", ErrUnsupportedShell, shell)
	}
	_, err := io.WriteString(w, script)
	return err
}

// runCompletion handles the completion command.
func runCompletion(args []string, env *Environment) error {
	if len(args) == 0 {
		printCompletionUsage(env.Stdout)
		return nil
	}
	return GenerateCompletion(env.Stdout, Shell(args[0]))
}

// printCompletionUsage prints help for the completion command.
func printCompletionUsage(w io.Writer) {
	fmt.Fprintln(w, "Usage: chat2doc completion <shell>")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Generate shell completion script for the specified shell.")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Supported shells:")
	fmt.Fprintln(w, "  bash        Bash completion script")
	fmt.Fprintln(w, "  zsh         Zsh completion script")
	fmt.Fprintln(w, "  fish        Fish completion script")
	fmt.Fprintln(w, "  powershell  PowerShell completion script")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Installation:")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "  Bash:")
	fmt.Fprintln(w, "    # Add to ~/.bashrc:")
	fmt.Fprintln(w, "    eval \"$(chat2doc completion bash)\"")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "  Zsh:")
	fmt.Fprintln(w, "    # Add to ~/.zshrc (before compinit):")
	fmt.Fprintln(w, "    eval \"$(chat2doc completion zsh)\"")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "  Fish:")
	fmt.Fprintln(w, "    chat2doc completion fish > ~/.config/fish/completions/chat2doc.fish")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "  PowerShell:")
	fmt.Fprintln(w, "    # Add to $PROFILE:")
	fmt.Fprintln(w, "    chat2doc completion powershell | Out-String | Invoke-Expression")
}

// splitGlobs turns "*.yaml,*.yml" into its patterns.
func splitGlobs(globs string) []string {
	var out []string
	for _, g := range strings.Split(globs, ",") {
		if g = strings.TrimSpace(g); g != "" {
			out = append(out, g)
		}
	}
	return out
}

func commandNames(cmds []commandDef) []string {
	names := make([]string, len(cmds))
	for i, c := range cmds {
		names[i] = c.Name
	}
	return names
}

// flagWords lists every spelling of a flag: "--output" and "-o".
func flagWords(f flagDef) []string {
	words := []string{"--" + f.Long}
	if f.Short != "" {
		words = append(words, "-"+f.Short)
	}
	return words
}

// takesValue reports whether the flag consumes the next word.
func takesValue(f flagDef) bool {
	return f.Type != flagBool
}

func generateBash(cmds []commandDef) string {
	var b strings.Builder

	b.WriteString("# bash completion for chat2doc\n\n")
	b.WriteString("_chat2doc_completions() {\n")
	b.WriteString("    local cur prev cmd\n")
	b.WriteString("    cur=\"${COMP_WORDS[COMP_CWORD]}\"\n")
	b.WriteString("    prev=\"${COMP_WORDS[COMP_CWORD-1]}\"\n")
	b.WriteString("    cmd=\"${COMP_WORDS[1]}\"\n\n")
	b.WriteString("    if [[ ${COMP_CWORD} -eq 1 ]]; then\n")
	fmt.Fprintf(&b, "        COMPREPLY=( $(compgen -W %q -- \"${cur}\") )\n", strings.Join(commandNames(cmds), " "))
	b.WriteString("        return 0\n")
	b.WriteString("    fi\n\n")
	b.WriteString("    case \"${cmd}\" in\n")

	for _, cmd := range cmds {
		switch cmd.Name {
		case "help":
			fmt.Fprintf(&b, "        help)\n            COMPREPLY=( $(compgen -W %q -- \"${cur}\") )\n            ;;\n",
				strings.Join(commandNames(cmds), " "))
			continue
		case "completion":
			b.WriteString("        completion)\n            COMPREPLY=( $(compgen -W \"bash zsh fish powershell\" -- \"${cur}\") )\n            ;;\n")
			continue
		}
		if len(cmd.Flags) == 0 && !cmd.TakesFiles {
			continue
		}

		fmt.Fprintf(&b, "        %s)\n", cmd.Name)
		b.WriteString("            case \"${prev}\" in\n")
		var words []string
		for _, f := range cmd.Flags {
			words = append(words, flagWords(f)...)
			if !takesValue(f) {
				continue
			}
			fmt.Fprintf(&b, "                %s)\n", strings.Join(flagWords(f), "|"))
			switch f.Type {
			case flagEnum:
				fmt.Fprintf(&b, "                    COMPREPLY=( $(compgen -W %q -- \"${cur}\") )\n", strings.Join(f.Values, " "))
			case flagFile:
				b.WriteString("                    COMPREPLY=( $(compgen -d -- \"${cur}\")")
				for _, g := range splitGlobs(f.FileGlob) {
					fmt.Fprintf(&b, " $(compgen -f -X '!%s' -- \"${cur}\")", g)
				}
				b.WriteString(" )\n")
			case flagDir:
				b.WriteString("                    COMPREPLY=( $(compgen -d -- \"${cur}\") )\n")
			default:
				b.WriteString("                    COMPREPLY=()\n")
			}
			b.WriteString("                    return 0\n")
			b.WriteString("                    ;;\n")
		}
		b.WriteString("            esac\n")
		b.WriteString("            if [[ ${cur} == -* ]]; then\n")
		fmt.Fprintf(&b, "                COMPREPLY=( $(compgen -W %q -- \"${cur}\") )\n", strings.Join(words, " "))
		if cmd.TakesFiles {
			b.WriteString("            else\n")
			b.WriteString("                COMPREPLY=( $(compgen -d -- \"${cur}\")")
			for _, g := range splitGlobs(cmd.FilePattern) {
				fmt.Fprintf(&b, " $(compgen -f -X '!%s' -- \"${cur}\")", g)
			}
			b.WriteString(" )\n")
		}
		b.WriteString("            fi\n")
		b.WriteString("            ;;\n")
	}

	b.WriteString("    esac\n")
	b.WriteString("}\n\n")
	b.WriteString("complete -F _chat2doc_completions chat2doc\n")
	return b.String()
}

var zshEscaper = strings.NewReplacer(`'`, `'\''`, `[`, `\[`, `]`, `\]`, `:`, `\:`)

func zshSpec(f flagDef) string {
	desc := zshEscaper.Replace(f.Desc)
	var names string
	if f.Short != "" {
		names = fmt.Sprintf("'(-%s --%s)'{-%s,--%s}'[%s]", f.Short, f.Long, f.Short, f.Long, desc)
	} else {
		names = fmt.Sprintf("'--%s[%s]", f.Long, desc)
	}

	switch f.Type {
	case flagBool:
		return names + "'"
	case flagEnum:
		return fmt.Sprintf("%s:%s:(%s)'", names, f.Long, strings.Join(f.Values, " "))
	case flagFile:
		globs := splitGlobs(f.FileGlob)
		return fmt.Sprintf("%s:%s:_files -g \"%s\"'", names, f.Long, strings.Join(globs, " "))
	case flagDir:
		return fmt.Sprintf("%s:%s:_files -/'", names, f.Long)
	default:
		return fmt.Sprintf("%s:%s: '", names, f.Long)
	}
}

func generateZsh(cmds []commandDef) string {
	var b strings.Builder

	b.WriteString("#compdef chat2doc\n\n")
	b.WriteString("_chat2doc() {\n")
	b.WriteString("    local -a commands\n")
	b.WriteString("    commands=(\n")
	for _, cmd := range cmds {
		fmt.Fprintf(&b, "        '%s:%s'\n", cmd.Name, zshEscaper.Replace(cmd.Desc))
	}
	b.WriteString("    )\n\n")
	b.WriteString("    if (( CURRENT == 2 )); then\n")
	b.WriteString("        _describe -t commands 'chat2doc command' commands\n")
	b.WriteString("        return\n")
	b.WriteString("    fi\n\n")
	b.WriteString("    case \"$words[2]\" in\n")

	for _, cmd := range cmds {
		switch cmd.Name {
		case "help":
			b.WriteString("        help)\n            _describe -t commands 'chat2doc command' commands\n            ;;\n")
			continue
		case "completion":
			b.WriteString("        completion)\n            _values 'shell' bash zsh fish powershell\n            ;;\n")
			continue
		}
		if len(cmd.Flags) == 0 && !cmd.TakesFiles {
			continue
		}

		fmt.Fprintf(&b, "        %s)\n", cmd.Name)
		b.WriteString("            shift words\n")
		b.WriteString("            (( CURRENT-- ))\n")
		b.WriteString("            _arguments -s \\\n")
		for _, f := range cmd.Flags {
			fmt.Fprintf(&b, "                %s \\\n", zshSpec(f))
		}
		if cmd.TakesFiles {
			fmt.Fprintf(&b, "                '*:file:_files -g \"%s\"'\n", strings.Join(splitGlobs(cmd.FilePattern), " "))
		} else {
			b.WriteString("                '*: :'\n")
		}
		b.WriteString("            ;;\n")
	}

	b.WriteString("    esac\n")
	b.WriteString("}\n\n")
	b.WriteString("compdef _chat2doc chat2doc\n")
	return b.String()
}

func fishQuote(s string) string {
	return "'" + strings.ReplaceAll(strings.ReplaceAll(s, `\`, `\\`), `'`, `\'`) + "'"
}

func generateFish(cmds []commandDef) string {
	var b strings.Builder

	b.WriteString("# fish completion for chat2doc\n\n")
	b.WriteString("function __fish_chat2doc_needs_command\n")
	b.WriteString("    set -l cmd (commandline -opc)\n")
	b.WriteString("    test (count $cmd) -eq 1\n")
	b.WriteString("end\n\n")
	b.WriteString("function __fish_chat2doc_using_command\n")
	b.WriteString("    set -l cmd (commandline -opc)\n")
	b.WriteString("    test (count $cmd) -gt 1; and test $cmd[2] = $argv[1]\n")
	b.WriteString("end\n\n")
	b.WriteString("complete -c chat2doc -f\n\n")

	for _, cmd := range cmds {
		fmt.Fprintf(&b, "complete -c chat2doc -n __fish_chat2doc_needs_command -a %s -d %s\n",
			cmd.Name, fishQuote(cmd.Desc))
	}
	b.WriteString("\n")

	for _, cmd := range cmds {
		cond := fishQuote("__fish_chat2doc_using_command " + cmd.Name)
		switch cmd.Name {
		case "help":
			fmt.Fprintf(&b, "complete -c chat2doc -n %s -a %s\n", cond, fishQuote(strings.Join(commandNames(cmds), " ")))
			continue
		case "completion":
			fmt.Fprintf(&b, "complete -c chat2doc -n %s -a 'bash zsh fish powershell'\n", cond)
			continue
		}

		for _, f := range cmd.Flags {
			line := fmt.Sprintf("complete -c chat2doc -n %s", cond)
			if f.Short != "" {
				line += " -s " + f.Short
			}
			line += " -l " + f.Long + " -d " + fishQuote(f.Desc)
			switch f.Type {
			case flagBool:
			case flagEnum:
				line += " -x -a " + fishQuote(strings.Join(f.Values, " "))
			case flagFile:
				line += " -r -F"
			case flagDir:
				line += " -x -a '(__fish_complete_directories)'"
			default:
				line += " -x"
			}
			b.WriteString(line + "\n")
		}
		if cmd.TakesFiles {
			for _, g := range splitGlobs(cmd.FilePattern) {
				ext := strings.TrimPrefix(g, "*")
				fmt.Fprintf(&b, "complete -c chat2doc -n %s -k -a %s\n", cond, fishQuote("(__fish_complete_suffix "+ext+")"))
			}
		}
		b.WriteString("\n")
	}
	return b.String()
}

func psQuote(s string) string {
	return "'" + strings.ReplaceAll(s, "'", "''") + "'"
}

func generatePowerShell(cmds []commandDef) string {
	var b strings.Builder

	b.WriteString("# PowerShell completion for chat2doc\n\n")
	b.WriteString("Register-ArgumentCompleter -Native -CommandName chat2doc -ScriptBlock {\n")
	b.WriteString("    param($wordToComplete, $commandAst, $cursorPosition)\n\n")

	b.WriteString("    $commands = [ordered]@{\n")
	for _, cmd := range cmds {
		fmt.Fprintf(&b, "        %s = %s\n", psQuote(cmd.Name), psQuote(cmd.Desc))
	}
	b.WriteString("    }\n\n")

	values := map[string][]string{}
	b.WriteString("    $flags = @{\n")
	for _, cmd := range cmds {
		if len(cmd.Flags) == 0 {
			continue
		}
		fmt.Fprintf(&b, "        %s = @(\n", psQuote(cmd.Name))
		for _, f := range cmd.Flags {
			for _, w := range flagWords(f) {
				fmt.Fprintf(&b, "            @{ Name = %s; Desc = %s }\n", psQuote(w), psQuote(f.Desc))
				if f.Type == flagEnum {
					values[w] = f.Values
				}
			}
		}
		b.WriteString("        )\n")
	}
	b.WriteString("    }\n\n")

	keys := make([]string, 0, len(values))
	for k := range values {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	b.WriteString("    $values = @{\n")
	for _, k := range keys {
		quoted := make([]string, len(values[k]))
		for i, v := range values[k] {
			quoted[i] = psQuote(v)
		}
		fmt.Fprintf(&b, "        %s = @(%s)\n", psQuote(k), strings.Join(quoted, ", "))
	}
	b.WriteString("        'completion' = @('bash', 'zsh', 'fish', 'powershell')\n")
	b.WriteString("    }\n\n")

	b.WriteString("    $elements = @($commandAst.CommandElements | ForEach-Object { $_.ToString() })\n")
	b.WriteString("    if ($wordToComplete -ne '') { $elements = $elements[0..($elements.Count - 2)] }\n\n")
	b.WriteString("    if ($elements.Count -le 1) {\n")
	b.WriteString("        $commands.GetEnumerator() | Where-Object { $_.Key -like \"$wordToComplete*\" } | ForEach-Object {\n")
	b.WriteString("            [System.Management.Automation.CompletionResult]::new($_.Key, $_.Key, 'ParameterValue', $_.Value)\n")
	b.WriteString("        }\n")
	b.WriteString("        return\n")
	b.WriteString("    }\n\n")
	b.WriteString("    $cmd = $elements[1]\n")
	b.WriteString("    $prev = $elements[-1]\n")
	b.WriteString("    if ($cmd -eq 'help') {\n")
	b.WriteString("        $commands.Keys | Where-Object { $_ -like \"$wordToComplete*\" } | ForEach-Object {\n")
	b.WriteString("            [System.Management.Automation.CompletionResult]::new($_, $_, 'ParameterValue', $_)\n")
	b.WriteString("        }\n")
	b.WriteString("        return\n")
	b.WriteString("    }\n")
	b.WriteString("    if ($cmd -eq 'completion') { $prev = 'completion' }\n")
	b.WriteString("    if ($values.ContainsKey($prev)) {\n")
	b.WriteString("        $values[$prev] | Where-Object { $_ -like \"$wordToComplete*\" } | ForEach-Object {\n")
	b.WriteString("            [System.Management.Automation.CompletionResult]::new($_, $_, 'ParameterValue', $_)\n")
	b.WriteString("        }\n")
	b.WriteString("        return\n")
	b.WriteString("    }\n")
	b.WriteString("    if ($flags.ContainsKey($cmd) -and $wordToComplete -like '-*') {\n")
	b.WriteString("        $flags[$cmd] | Where-Object { $_.Name -like \"$wordToComplete*\" } | ForEach-Object {\n")
	b.WriteString("            [System.Management.Automation.CompletionResult]::new($_.Name, $_.Name, 'ParameterName', $_.Desc)\n")
	b.WriteString("        }\n")
	b.WriteString("    }\n")
	b.WriteString("}\n")
	return b.String()
}
