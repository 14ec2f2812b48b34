package main

import (
	"fmt"
	"io"
)

// printUsage prints the main usage message.
func printUsage(w io.Writer) {
	fmt.Fprintln(w, "Usage: nbrender <command> [flags] [args]")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Commands:")
	fmt.Fprintln(w, "  convert      Render notebooks to HTML (default)")
	fmt.Fprintln(w, "  version      Show version information")
	fmt.Fprintln(w, "  help         Show help for a command")
	fmt.Fprintln(w, "  completion   Generate shell completion script")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Run 'nbrender help <command>' for details on a specific command.")
}

// printConvertUsage prints usage for the convert command.
func printConvertUsage(w io.Writer) {
	fmt.Fprintln(w, "Usage: nbrender convert [flags] <input>...")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Render Jupyter notebooks (nbformat 3 and 4) to HTML.")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Arguments:")
	fmt.Fprintln(w, "  input    .ipynb file or directory, searched recursively")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Input/Output:")
	fmt.Fprintln(w, "  -o, --output <path>       Output .html file or directory")
	fmt.Fprintln(w, "  -c, --config <name>       Config file name or path")
	fmt.Fprintln(w, "  -w, --workers <n>         Parallel workers (0 = auto)")
	fmt.Fprintln(w, "      --strict              Fail when any cell fails to render")
	fmt.Fprintln(w, "      --print-config        Print the effective config and exit")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Rendering:")
	fmt.Fprintln(w, "      --prefix <s>          Class name prefix (default \"nb-\", \"\" = none)")
	fmt.Fprintln(w, "      --no-markdown         Inject markdown cells without converting")
	fmt.Fprintln(w, "      --raw-html            Keep raw HTML inside markdown")
	fmt.Fprintln(w, "      --ansi <s>            Terminal escapes: html, strip, none")
	fmt.Fprintln(w, "      --highlight           Highlight code inputs")
	fmt.Fprintln(w, "      --sanitize            Sanitize markdown and HTML outputs")
	fmt.Fprintln(w, "      --xhtml               Build well-formed XHTML")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Page:")
	fmt.Fprintln(w, "      --fragment            Write the notebook without a page")
	fmt.Fprintln(w, "      --css <path>          CSS file added to the page")
	fmt.Fprintln(w, "      --template-dir <dir>  Directory with page.html and default.css")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Output Control:")
	fmt.Fprintln(w, "  -q, --quiet               Only show errors")
	fmt.Fprintln(w, "  -v, --verbose             More output (-v info, -vv debug)")
	fmt.Fprintln(w, "      --version             Show version information")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Environment:")
	fmt.Fprintln(w, "  NBRENDER_CONFIG, NBRENDER_OUTPUT_DIR, NBRENDER_PREFIX,")
	fmt.Fprintln(w, "  NBRENDER_ANSI, NBRENDER_TEMPLATE_DIR, NBRENDER_WORKERS")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Exit codes: 0 ok, 1 error, 2 usage/config, 3 I/O, 4 notebook content")
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
	case "version":
		fmt.Fprintln(env.Stdout, "Usage: nbrender version")
		fmt.Fprintln(env.Stdout)
		fmt.Fprintln(env.Stdout, "Show version information.")
	case "help":
		fmt.Fprintln(env.Stdout, "Usage: nbrender help [command]")
		fmt.Fprintln(env.Stdout)
		fmt.Fprintln(env.Stdout, "Show help for a command.")
	case "completion":
		printCompletionUsage(env.Stdout)
	default:
		fmt.Fprintf(env.Stderr, "Unknown command: %s\n", args[0])
		printUsage(env.Stderr)
	}
}
