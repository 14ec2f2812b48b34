package main

import (
	"errors"
	"fmt"
	"io"
	"sort"
	"strings"

	flag "github.com/spf13/pflag"
)

// Shell represents a supported shell for completion generation.
type Shell string

// Supported shells for completion.
const (
	ShellBash Shell = "bash"
	ShellZsh  Shell = "zsh"
	ShellFish Shell = "fish"
)

// ErrUnsupportedShell is returned when an unknown shell is requested.
var ErrUnsupportedShell = errors.New("unsupported shell")

// flagType represents the completion type for a flag.
type flagType int

const (
	flagString flagType = iota // default
	flagBool
	flagInt
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
	FileGlob []string // for file flags
	Repeat   bool     // may be given several times (-vv)
}

// completionMeta holds completion-specific metadata for flags.
// Flag names, types, and descriptions come from the FlagSet.
type completionMeta struct {
	Values   []string
	FileGlob []string
	IsDir    bool
}

// flagCompletionMeta maps flag names to their completion metadata.
var flagCompletionMeta = map[string]completionMeta{
	"ansi":         {Values: []string{"html", "strip", "none"}},
	"config":       {FileGlob: []string{"*.yaml", "*.yml"}},
	"css":          {FileGlob: []string{"*.css"}},
	"output":       {IsDir: true},
	"template-dir": {IsDir: true},
}

// commands lists the subcommands with their descriptions.
var commands = []struct{ name, desc string }{
	{"convert", "Render notebooks to HTML"},
	{"version", "Show version information"},
	{"help", "Show help for a command"},
	{"completion", "Generate shell completion script"},
}

// convertFlagDefs extracts the convert flags from the real FlagSet.
func convertFlagDefs() []flagDef {
	return extractFlagsFromFlagSet(newConvertFlagSet(&convertFlags{}))
}

// extractFlagsFromFlagSet extracts flag definitions from a pflag.FlagSet,
// enriched with flagCompletionMeta. Flags are sorted by long name.
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
		case "count":
			fd.Type = flagBool
			fd.Repeat = true
		case "int", "int8", "int16", "int32", "int64", "uint", "uint8", "uint16", "uint32", "uint64":
			fd.Type = flagInt
		default:
			fd.Type = flagString
		}

		if meta, ok := flagCompletionMeta[f.Name]; ok {
			switch {
			case len(meta.Values) > 0:
				fd.Type = flagEnum
				fd.Values = meta.Values
			case len(meta.FileGlob) > 0:
				fd.Type = flagFile
				fd.FileGlob = meta.FileGlob
			case meta.IsDir:
				fd.Type = flagDir
			}
		}

		flags = append(flags, fd)
	})

	sort.Slice(flags, func(i, j int) bool { return flags[i].Long < flags[j].Long })
	return flags
}

// GenerateCompletion writes shell completion script to w.
// Returns error if shell is unsupported or write fails.
func GenerateCompletion(w io.Writer, shell Shell) error {
	flags := convertFlagDefs()

	var script string
	switch shell {
	case ShellBash:
		script = bashScript(flags)
	case ShellZsh:
		script = zshScript(flags)
	case ShellFish:
		script = fishScript(flags)
	default:
		return fmt.Errorf("%w: %q (supported: bash, zsh, fish)", ErrUnsupportedShell, shell)
	}

	_, err := io.WriteString(w, script)
	return err
}

func bashScript(flags []flagDef) string {
	var b strings.Builder
	names := make([]string, 0, len(commands))
	for _, c := range commands {
		names = append(names, c.name)
	}

	var words []string
	for _, f := range flags {
		words = append(words, "--"+f.Long)
		if f.Short != "" {
			words = append(words, "-"+f.Short)
		}
	}

	b.WriteString("# bash completion for nbrender\n")
	b.WriteString("_nbrender() {\n")
	b.WriteString("    local cur prev\n")
	b.WriteString("    cur=\"${COMP_WORDS[COMP_CWORD]}\"\n")
	b.WriteString("    prev=\"${COMP_WORDS[COMP_CWORD-1]}\"\n\n")
	b.WriteString("    if [[ $COMP_CWORD -eq 1 && \"$cur\" != -* ]]; then\n")
	fmt.Fprintf(&b, "        COMPREPLY=($(compgen -W %q -- \"$cur\") $(compgen -f -X '!*.ipynb' -- \"$cur\") $(compgen -d -- \"$cur\"))\n", strings.Join(names, " "))
	b.WriteString("        return\n")
	b.WriteString("    fi\n\n")
	b.WriteString("    case \"$prev\" in\n")
	for _, f := range flags {
		pattern := "--" + f.Long
		if f.Short != "" {
			pattern = "-" + f.Short + "|" + pattern
		}
		switch f.Type {
		case flagEnum:
			fmt.Fprintf(&b, "        %s) COMPREPLY=($(compgen -W %q -- \"$cur\")); return ;;\n", pattern, strings.Join(f.Values, " "))
		case flagFile:
			var gens []string
			for _, g := range f.FileGlob {
				gens = append(gens, fmt.Sprintf("$(compgen -f -X '!%s' -- \"$cur\")", g))
			}
			fmt.Fprintf(&b, "        %s) COMPREPLY=(%s $(compgen -d -- \"$cur\")); return ;;\n", pattern, strings.Join(gens, " "))
		case flagDir:
			fmt.Fprintf(&b, "        %s) COMPREPLY=($(compgen -d -- \"$cur\")); return ;;\n", pattern)
		case flagString, flagInt:
			fmt.Fprintf(&b, "        %s) return ;;\n", pattern)
		}
	}
	b.WriteString("    esac\n\n")
	b.WriteString("    if [[ \"$cur\" == -* ]]; then\n")
	fmt.Fprintf(&b, "        COMPREPLY=($(compgen -W %q -- \"$cur\"))\n", strings.Join(words, " "))
	b.WriteString("        return\n")
	b.WriteString("    fi\n")
	b.WriteString("    COMPREPLY=($(compgen -f -X '!*.ipynb' -- \"$cur\") $(compgen -d -- \"$cur\"))\n")
	b.WriteString("}\n")
	b.WriteString("complete -o filenames -F _nbrender nbrender\n")
	return b.String()
}

func zshScript(flags []flagDef) string {
	var b strings.Builder
	b.WriteString("#compdef nbrender\n\n")
	b.WriteString("_nbrender() {\n")
	b.WriteString("    local -a commands\n")
	b.WriteString("    commands=(\n")
	for _, c := range commands {
		fmt.Fprintf(&b, "        '%s:%s'\n", c.name, zshEscape(c.desc))
	}
	b.WriteString("    )\n\n")
	b.WriteString("    _arguments -s \\\n")
	for _, f := range flags {
		fmt.Fprintf(&b, "        %s \\\n", zshFlagSpec(f))
	}
	b.WriteString("        '1: :->first' \\\n")
	b.WriteString("        '*:notebook:_files -g \"*.ipynb\"'\n\n")
	b.WriteString("    case $state in\n")
	b.WriteString("        first)\n")
	b.WriteString("            _describe 'command' commands\n")
	b.WriteString("            _files -g '*.ipynb'\n")
	b.WriteString("            ;;\n")
	b.WriteString("    esac\n")
	b.WriteString("}\n\n")
	b.WriteString("_nbrender \"$@\"\n")
	return b.String()
}

// zshFlagSpec formats one _arguments spec, e.g.
// '(-o --output)'{-o,--output}'[output file or directory]:dir:_files -/'.
func zshFlagSpec(f flagDef) string {
	var action string
	switch f.Type {
	case flagEnum:
		action = ":value:(" + strings.Join(f.Values, " ") + ")"
	case flagFile:
		action = ":file:_files -g \"" + strings.Join(f.FileGlob, " ") + "\""
	case flagDir:
		action = ":dir:_files -/"
	case flagString, flagInt:
		action = ":value: "
	}

	desc := "[" + zshEscape(f.Desc) + "]"
	repeat := ""
	if f.Repeat {
		repeat = "*"
	}

	if f.Short == "" {
		return "'" + repeat + "--" + f.Long + desc + action + "'"
	}
	exclusion := "'(-" + f.Short + " --" + f.Long + ")'"
	if f.Repeat {
		exclusion = "'*'"
	}
	return exclusion + "{-" + f.Short + ",--" + f.Long + "}'" + desc + action + "'"
}

func zshEscape(s string) string {
	return strings.NewReplacer("'", `'\''`, "[", `\[`, "]", `\]`, ":", `\:`).Replace(s)
}

func fishScript(flags []flagDef) string {
	var b strings.Builder
	b.WriteString("# fish completion for nbrender\n")
	for _, c := range commands {
		fmt.Fprintf(&b, "complete -c nbrender -n '__fish_use_subcommand' -f -a %s -d '%s'\n", c.name, fishEscape(c.desc))
	}
	b.WriteString("complete -c nbrender -n '__fish_use_subcommand' -k -a '(__fish_complete_suffix .ipynb)'\n")
	b.WriteString("complete -c nbrender -n '__fish_seen_subcommand_from completion' -f -a 'bash zsh fish'\n")

	for _, f := range flags {
		line := "complete -c nbrender -l " + f.Long
		if f.Short != "" {
			line += " -s " + f.Short
		}
		switch f.Type {
		case flagEnum:
			line += " -x -a '" + strings.Join(f.Values, " ") + "'"
		case flagFile:
			line += " -r -F"
		case flagDir:
			line += " -x -a '(__fish_complete_directories)'"
		case flagString, flagInt:
			line += " -x"
		}
		line += " -d '" + fishEscape(f.Desc) + "'\n"
		b.WriteString(line)
	}
	return b.String()
}

func fishEscape(s string) string {
	return strings.ReplaceAll(s, "'", `\'`)
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
	fmt.Fprintln(w, "Usage: nbrender completion <shell>")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Generate shell completion script for the specified shell.")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Supported shells:")
	fmt.Fprintln(w, "  bash    Bash completion script")
	fmt.Fprintln(w, "  zsh     Zsh completion script")
	fmt.Fprintln(w, "  fish    Fish completion script")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Installation:")
	fmt.Fprintln(w, "  Bash:  eval \"$(nbrender completion bash)\"  # in ~/.bashrc")
	fmt.Fprintln(w, "  Zsh:   eval \"$(nbrender completion zsh)\"   # in ~/.zshrc, before compinit")
	fmt.Fprintln(w, "  Fish:  nbrender completion fish > ~/.config/fish/completions/nbrender.fish")
}
