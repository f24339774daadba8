//go:build !gui

package main

import (
	"errors"
	"flag"
	"fmt"
	"os"
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/metcalfc/prr/internal/document"
)

func main() {
	o, err := parseFlags("prr", os.Args[1:], os.Stderr)
	if errors.Is(err, flag.ErrHelp) {
		os.Exit(0)
	}
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		fmt.Fprintln(os.Stderr, "Try: prr -h")
		os.Exit(2)
	}

	if o.showVersion {
		fmt.Println(versionString("prr"))
		os.Exit(0)
	}
	if o.showFormats {
		fmt.Println("Supported formats:")
		fmt.Println("  " + strings.Join(document.SupportedFormats(), "\n  "))
		os.Exit(0)
	}

	a, err := newApp(o)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	defer a.close()

	path, isDir, err := a.startPath(o.path)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		fmt.Fprintln(os.Stderr, "Try: prr -h")
		os.Exit(1)
	}

	m := newModel(a)
	if isDir {
		m.init = m.openLibrary(path)
	} else {
		m.init = m.openFile(path)
	}

	p := tea.NewProgram(m, tea.WithAltScreen())
	if _, err := p.Run(); err != nil {
		a.close()
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
