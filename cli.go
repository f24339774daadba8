package main

import (
	"flag"
	"fmt"
	"io"
	"strings"

	"github.com/metcalfc/prr/internal/assistant"
	"github.com/metcalfc/prr/internal/viewer"
)

// Version info (injected via ldflags)
var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

type options struct {
	showVersion bool
	showFormats bool
	fresh       bool
	debug       bool
	mode        string
	zoom        int
	provider    string
	model       string
	lang        string
	path        string
}

// parseFlags parses the command line shared by both front ends. It
// returns flag.ErrHelp when usage was requested.
func parseFlags(name string, args []string, out io.Writer) (*options, error) {
	o := &options{}
	fs := flag.NewFlagSet(name, flag.ContinueOnError)
	fs.SetOutput(out)

	fs.BoolVar(&o.showVersion, "v", false, "Show version information")
	fs.BoolVar(&o.showVersion, "version", false, "Show version information")
	fs.BoolVar(&o.showFormats, "formats", false, "List supported document formats")
	fs.BoolVar(&o.fresh, "fresh", false, "Ignore saved zoom and view mode")
	fs.BoolVar(&o.debug, "debug", false, "Write debug logs")
	fs.StringVar(&o.mode, "mode", "", "Initial view mode: reading, analysis, focus, presentation, mobile")
	fs.IntVar(&o.zoom, "zoom", 0, "Initial zoom in percent (25-300)")
	fs.StringVar(&o.provider, "provider", "", "AI provider: offline or ollama")
	fs.StringVar(&o.model, "model", "", "Model name passed to the AI provider")
	fs.StringVar(&o.lang, "lang", "", "Translation language")

	fs.Usage = func() {
		fmt.Fprintf(out, "%s - Terminal Document Reader with an AI assistant\n\n", name)
		fmt.Fprintf(out, "Usage:\n")
		fmt.Fprintf(out, "  %s [options] [file|directory]\n\n", name)
		fmt.Fprintf(out, "Options:\n")
		fs.PrintDefaults()
		fmt.Fprintf(out, "\nExamples:\n")
		fmt.Fprintf(out, "  %s paper.pdf                Read a PDF\n", name)
		fmt.Fprintf(out, "  %s -mode analysis book.epub Open with the assistant sidebar\n", name)
		fmt.Fprintf(out, "  %s ~/Books                  Browse a library\n", name)
		fmt.Fprintf(out, "\nControls:\n")
		for _, s := range viewer.Shortcuts {
			fmt.Fprintf(out, "  %-8s %s\n", s.Label, s.Command)
		}
	}

	if err := fs.Parse(args); err != nil {
		return nil, err
	}
	if fs.NArg() > 1 {
		return nil, fmt.Errorf("expected one file or directory, got %d", fs.NArg())
	}
	o.path = fs.Arg(0)

	if o.mode != "" {
		if _, ok := viewer.ParseViewMode(o.mode); !ok {
			return nil, fmt.Errorf("unknown view mode %q", o.mode)
		}
	}
	if o.zoom != 0 && (o.zoom < 25 || o.zoom > 300) {
		return nil, fmt.Errorf("zoom %d%% out of range 25-300", o.zoom)
	}
	if o.lang != "" {
		if _, err := assistant.ParseLanguage(o.lang); err != nil {
			return nil, err
		}
	}
	if o.provider != "" {
		o.provider = strings.ToLower(o.provider)
	}
	return o, nil
}

func versionString(name string) string {
	return fmt.Sprintf("%s %s (commit: %s, built: %s)", name, version, commit, date)
}
