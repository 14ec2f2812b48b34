package main

import (
	"errors"
	"fmt"
	"io"

	flag "github.com/spf13/pflag"
)

// ErrInvalidFlags wraps flag parsing failures.
var ErrInvalidFlags = errors.New("invalid flags")

// commonFlags holds flags shared across commands.
type commonFlags struct {
	config  string
	quiet   bool
	verbose int
}

// renderFlags selects the renderer collaborators.
type renderFlags struct {
	prefix     string
	prefixSet  bool // --prefix given, even as ""
	noMarkdown bool
	rawHTML    bool
	ansi       string
	highlight  bool
	sanitize   bool
	xhtml      bool
}

// pageFlags holds standalone page flags.
type pageFlags struct {
	fragment    bool
	css         string
	templateDir string
}

// convertFlags holds all flags for the convert command.
type convertFlags struct {
	common      commonFlags
	output      string
	workers     int
	strict      bool
	printConfig bool
	version     bool
	render      renderFlags
	page        pageFlags
}

// addCommonFlags adds common flags to a FlagSet.
func addCommonFlags(fs *flag.FlagSet, f *commonFlags) {
	fs.StringVarP(&f.config, "config", "c", "", "config file name or path")
	fs.BoolVarP(&f.quiet, "quiet", "q", false, "only show errors")
	fs.CountVarP(&f.verbose, "verbose", "v", "more output (-v info, -vv debug)")
}

// addRenderFlags adds renderer flags to a FlagSet.
func addRenderFlags(fs *flag.FlagSet, f *renderFlags) {
	fs.StringVar(&f.prefix, "prefix", "", "class name prefix (default \"nb-\")")
	fs.BoolVar(&f.noMarkdown, "no-markdown", false, "inject markdown cells without converting")
	fs.BoolVar(&f.rawHTML, "raw-html", false, "keep raw HTML inside markdown")
	fs.StringVar(&f.ansi, "ansi", "", "terminal escapes: html, strip, none")
	fs.BoolVar(&f.highlight, "highlight", false, "highlight code inputs")
	fs.BoolVar(&f.sanitize, "sanitize", false, "sanitize markdown and HTML outputs")
	fs.BoolVar(&f.xhtml, "xhtml", false, "build well-formed XHTML")
}

// addPageFlags adds standalone page flags to a FlagSet.
func addPageFlags(fs *flag.FlagSet, f *pageFlags) {
	fs.BoolVar(&f.fragment, "fragment", false, "write the notebook fragment without a page")
	fs.StringVar(&f.css, "css", "", "CSS file added to the page")
	fs.StringVar(&f.templateDir, "template-dir", "", "directory with page.html and default.css overrides")
}

// newConvertFlagSet registers every convert flag on a new FlagSet.
// Shared by parsing and completion generation.
func newConvertFlagSet(f *convertFlags) *flag.FlagSet {
	fs := flag.NewFlagSet("convert", flag.ContinueOnError)

	// I/O flags
	fs.StringVarP(&f.output, "output", "o", "", "output file or directory")
	fs.IntVarP(&f.workers, "workers", "w", 0, "parallel workers (0 = auto)")
	fs.BoolVar(&f.strict, "strict", false, "fail when any cell fails to render")
	fs.BoolVar(&f.printConfig, "print-config", false, "print the effective config and exit")
	fs.BoolVar(&f.version, "version", false, "show version information")

	// Flag groups
	addCommonFlags(fs, &f.common)
	addRenderFlags(fs, &f.render)
	addPageFlags(fs, &f.page)

	return fs
}

// parseConvertFlags parses convert command flags and returns positional args.
// Usage and parse errors are written to w.
func parseConvertFlags(args []string, w io.Writer) (*convertFlags, []string, error) {
	f := &convertFlags{}
	fs := newConvertFlagSet(f)
	fs.SetOutput(w)
	fs.Usage = func() { printConvertUsage(w) }

	if err := fs.Parse(args); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return nil, nil, err
		}
		fmt.Fprintln(w, "error:", err)
		fmt.Fprintln(w, "Run 'nbrender help convert' for usage.")
		return nil, nil, fmt.Errorf("%w: %v", ErrInvalidFlags, err)
	}
	f.render.prefixSet = fs.Changed("prefix")

	return f, fs.Args(), nil
}
