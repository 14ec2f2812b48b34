package main

import (
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/alnah/go-nbrender/internal/fileutil"
)

// Version is set at build time via ldflags.
var Version = "dev"

func main() {
	os.Exit(run(os.Args, DefaultEnv()))
}

// run dispatches args[1] to a command and returns the process exit code.
// A first argument that is a flag or an existing path runs convert.
func run(args []string, env *Environment) int {
	if len(args) < 2 {
		printUsage(env.Stderr)
		return ExitUsage
	}

	cmd, rest := args[1], args[2:]
	switch cmd {
	case "convert":
		return runConvertCmd(rest, env)
	case "version", "--version":
		fmt.Fprintf(env.Stdout, "nbrender %s\n", Version)
		return ExitSuccess
	case "help", "-h", "--help":
		runHelp(rest, env)
		return ExitSuccess
	case "completion":
		if err := runCompletion(rest, env); err != nil {
			fmt.Fprintln(env.Stderr, "error:", err)
			return exitCodeFor(err)
		}
		return ExitSuccess
	}

	if strings.HasPrefix(cmd, "-") || fileutil.FileExists(cmd) || isDir(cmd) {
		return runConvertCmd(args[1:], env)
	}

	fmt.Fprintf(env.Stderr, "Unknown command: %s\n\n", cmd)
	printUsage(env.Stderr)
	return ExitUsage
}

// runConvertCmd parses convert flags, runs the conversion under a
// signal-aware context, and reports the outcome.
func runConvertCmd(args []string, env *Environment) int {
	flags, positional, err := parseConvertFlags(args, env.Stderr)
	if err != nil {
		// parseConvertFlags already printed the error or the help text.
		return exitCodeFor(err)
	}

	if flags.version {
		fmt.Fprintf(env.Stdout, "nbrender %s\n", Version)
		return ExitSuccess
	}

	ctx, stop := notifyContext(context.Background())
	defer stop()

	if err := runConvert(ctx, positional, flags, env); err != nil {
		fmt.Fprintln(env.Stderr, "error:", err)
		return exitCodeFor(err)
	}
	return ExitSuccess
}

func isDir(path string) bool {
	info, err := os.Stat(path)
	return err == nil && info.IsDir()
}
