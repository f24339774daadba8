package document

import (
	"fmt"
	"path/filepath"
	"strings"
)

// Format defines a file format loader.
type Format interface {
	Name() string
	Extensions() []string
	Load(filename string, opts Options) (*Document, error)
}

var registry []Format

// Register adds a format loader to the registry.
func Register(f Format) {
	registry = append(registry, f)
}

// lookup returns the format registered for filename's extension.
func lookup(filename string) (Format, bool) {
	ext := strings.ToLower(filepath.Ext(filename))
	for _, f := range registry {
		for _, e := range f.Extensions() {
			if ext == e {
				return f, true
			}
		}
	}
	return nil, false
}

// Supported reports whether filename has a registered extension.
func Supported(filename string) bool {
	_, ok := lookup(filename)
	return ok
}

// Open loads filename using a registered format or the plain text fallback,
// and fills in the document's ID, path and title.
func Open(filename string, opts Options) (*Document, error) {
	f, ok := lookup(filename)
	if !ok {
		f = &TextFormat{}
	}

	doc, err := f.Load(filename, opts)
	if err != nil {
		return nil, fmt.Errorf("load %s as %s: %w", filepath.Base(filename), f.Name(), err)
	}
	if doc.PageCount() == 0 {
		return nil, fmt.Errorf("load %s: %w", filepath.Base(filename), ErrEmpty)
	}

	doc.Path = filename
	doc.Format = f.Name()
	if doc.Title == "" {
		doc.Title = titleFromPath(filename)
	}
	if doc.ID == "" {
		id, err := ComputeHash(filename)
		if err != nil {
			return nil, fmt.Errorf("hash %s: %w", filepath.Base(filename), err)
		}
		doc.ID = id
	}
	return doc, nil
}

// SupportedFormats returns registered format names with their extensions.
func SupportedFormats() []string {
	var out []string
	for _, f := range registry {
		out = append(out, f.Name()+" ("+strings.Join(f.Extensions(), ", ")+")")
	}
	return out
}

func titleFromPath(filename string) string {
	base := filepath.Base(filename)
	name := strings.TrimSuffix(base, filepath.Ext(base))
	name = strings.NewReplacer("_", " ", "-", " ").Replace(name)
	return strings.TrimSpace(name)
}
