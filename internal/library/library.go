// Package library scans a directory of documents for the dashboard.
package library

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"sort"
	"strings"
	"sync"
	"time"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/metcalfc/prr/internal/document"
)

// Book is one readable document on the shelf.
type Book struct {
	ID       string
	Title    string
	Path     string
	Format   string
	Pages    int
	Modified time.Time
}

// Failure records a file that could not be loaded.
type Failure struct {
	Path string
	Err  error
}

// Shelf is the result of a scan.
type Shelf struct {
	Dir      string
	Books    []Book
	Failures []Failure
}

// Options control a scan.
type Options struct {
	Document document.Options
	// Workers bounds concurrent loads. Defaults to GOMAXPROCS.
	Workers int
	Logger  *zap.Logger
}

// Scan loads every supported file directly inside dir. Files that fail to
// load are reported in Failures; only a cancelled context or an unreadable
// directory fail the scan.
func Scan(ctx context.Context, dir string, opts Options) (*Shelf, error) {
	log := opts.Logger
	if log == nil {
		log = zap.NewNop()
	}

	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("read library %s: %w", dir, err)
	}

	var paths []string
	for _, e := range entries {
		if e.IsDir() || strings.HasPrefix(e.Name(), ".") {
			continue
		}
		if document.Supported(e.Name()) {
			paths = append(paths, filepath.Join(dir, e.Name()))
		}
	}

	workers := opts.Workers
	if workers <= 0 {
		workers = runtime.GOMAXPROCS(0)
	}

	shelf := &Shelf{Dir: dir}
	var mu sync.Mutex

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(workers)
	for _, path := range paths {
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			book, err := load(path, opts.Document)

			mu.Lock()
			defer mu.Unlock()
			if err != nil {
				log.Warn("skipping document", zap.String("path", path), zap.Error(err))
				shelf.Failures = append(shelf.Failures, Failure{Path: path, Err: err})
				return nil
			}
			shelf.Books = append(shelf.Books, book)
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	sort.Slice(shelf.Books, func(i, j int) bool {
		a, b := strings.ToLower(shelf.Books[i].Title), strings.ToLower(shelf.Books[j].Title)
		if a != b {
			return a < b
		}
		return shelf.Books[i].Path < shelf.Books[j].Path
	})
	sort.Slice(shelf.Failures, func(i, j int) bool {
		return shelf.Failures[i].Path < shelf.Failures[j].Path
	})

	log.Info("library scanned", zap.String("dir", dir),
		zap.Int("books", len(shelf.Books)), zap.Int("failures", len(shelf.Failures)))
	return shelf, nil
}

func load(path string, opts document.Options) (Book, error) {
	doc, err := document.Open(path, opts)
	if err != nil {
		return Book{}, err
	}
	b := Book{
		ID:     doc.ID,
		Title:  doc.Title,
		Path:   path,
		Format: doc.Format,
		Pages:  doc.PageCount(),
	}
	if fi, err := os.Stat(path); err == nil {
		b.Modified = fi.ModTime()
	}
	return b, nil
}

// Stats summarise a shelf for the dashboard header.
type Stats struct {
	Books   int
	Pages   int
	Formats map[string]int
}

func (s *Shelf) Stats() Stats {
	st := Stats{Books: len(s.Books), Formats: make(map[string]int)}
	for _, b := range s.Books {
		st.Pages += b.Pages
		st.Formats[b.Format]++
	}
	return st
}

// Filter returns the books whose title contains query, case-insensitively.
func (s *Shelf) Filter(query string) []Book {
	q := strings.ToLower(strings.TrimSpace(query))
	if q == "" {
		return s.Books
	}
	var out []Book
	for _, b := range s.Books {
		if strings.Contains(strings.ToLower(b.Title), q) {
			out = append(out, b)
		}
	}
	return out
}

// Recent returns up to n books, most recently modified first.
func (s *Shelf) Recent(n int) []Book {
	books := append([]Book(nil), s.Books...)
	sort.SliceStable(books, func(i, j int) bool {
		return books[i].Modified.After(books[j].Modified)
	})
	if n >= 0 && len(books) > n {
		books = books[:n]
	}
	return books
}

// ErrEmptyShelf is returned by Require when nothing could be loaded.
var ErrEmptyShelf = errors.New("no readable documents in library")

// Require returns ErrEmptyShelf when the shelf holds no books.
func (s *Shelf) Require() error {
	if len(s.Books) == 0 {
		return fmt.Errorf("%s: %w", s.Dir, ErrEmptyShelf)
	}
	return nil
}
