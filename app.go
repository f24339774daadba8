package main

import (
	"context"
	"fmt"
	"os"
	"slices"
	"strings"

	"go.uber.org/zap"

	"github.com/metcalfc/prr/internal/assistant"
	"github.com/metcalfc/prr/internal/config"
	"github.com/metcalfc/prr/internal/document"
	"github.com/metcalfc/prr/internal/library"
	"github.com/metcalfc/prr/internal/logger"
	"github.com/metcalfc/prr/internal/state"
	"github.com/metcalfc/prr/internal/viewer"
)

// app holds what both front ends share: configuration, logging, the
// assistant and the view preference store.
type app struct {
	cfg   *config.Config
	log   *zap.Logger
	ai    *assistant.Assistant
	store *state.StateStore // nil when the state dir is unusable

	docOpts  document.Options
	language assistant.Language
	length   assistant.SummaryLength
	models   []string
	model    string

	fresh     bool
	flagMode  string
	flagScale float64
}

func newApp(o *options) (*app, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, err
	}
	if o.debug {
		cfg.App.Debug = true
	}
	if o.provider != "" {
		cfg.AI.Provider = o.provider
	}
	if o.lang != "" {
		cfg.AI.Language = o.lang
	}
	if o.model != "" && !slices.Contains(cfg.AI.Models, o.model) {
		cfg.AI.Models = append([]string{o.model}, cfg.AI.Models...)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	lang, err := assistant.ParseLanguage(cfg.AI.Language)
	if err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	log, err := logger.New(cfg.App.LogFilePath, cfg.App.Debug)
	if err != nil {
		return nil, err
	}

	a := &app{
		cfg:      cfg,
		log:      log,
		docOpts:  document.Options{WordsPerPage: cfg.App.WordsPerPage},
		language: lang,
		length:   assistant.SummaryLength(cfg.AI.SummaryLength),
		models:   cfg.AI.Models,
		model:    cfg.AI.Models[0],
		fresh:    o.fresh,
		flagMode: o.mode,
	}
	if o.model != "" {
		a.model = o.model
	}
	if o.zoom != 0 {
		a.flagScale = float64(o.zoom) / 100
	}

	a.ai = assistant.New(a.provider(), cfg.AI.CacheTTL, logger.Module(log, "assistant"))

	store, err := state.NewStateStore(config.StateDir())
	if err != nil {
		log.Warn("view preferences disabled", zap.Error(err))
	} else {
		a.store = store
	}

	log.Info("starting",
		zap.String("version", version),
		zap.String("provider", cfg.AI.Provider),
		zap.String("model", a.model),
		zap.String("language", string(lang)))
	return a, nil
}

func (a *app) provider() assistant.Provider {
	if a.cfg.AI.Provider == "ollama" {
		return assistant.NewOllamaProvider(a.cfg.AI.OllamaBaseURL, a.model, a.cfg.AI.Timeout)
	}
	return assistant.NewCannedProvider(a.cfg.AI.CannedDelay)
}

func (a *app) close() {
	_ = a.log.Sync()
}

// startPath picks what to open: the argument, else the configured library.
func (a *app) startPath(arg string) (path string, isDir bool, err error) {
	path = arg
	if path == "" {
		path = a.cfg.App.LibraryDir
	}
	if path == "" {
		return "", false, fmt.Errorf("no input provided: pass a file or directory, or set PRR_LIBRARY")
	}
	fi, err := os.Stat(path)
	if err != nil {
		return "", false, err
	}
	return path, fi.IsDir(), nil
}

func (a *app) openDocument(path string) (*document.Document, error) {
	doc, err := document.Open(path, a.docOpts)
	if err != nil {
		a.log.Error("load failed", zap.String("path", path), zap.Error(err))
		return nil, err
	}
	a.log.Info("document loaded",
		zap.String("path", path),
		zap.String("format", doc.Format),
		zap.Int("pages", doc.PageCount()))
	return doc, nil
}

func (a *app) scan(ctx context.Context, dir string) (*library.Shelf, error) {
	return library.Scan(ctx, dir, library.Options{
		Document: a.docOpts,
		Logger:   logger.Module(a.log, "library"),
	})
}

// initialView returns the scale and mode a document opens with: command
// line flags, then saved preferences, then the configured default.
func (a *app) initialView(docID string) (float64, viewer.ViewMode) {
	scale, mode := viewer.DefaultScale, viewer.ModeReading
	if m, ok := viewer.ParseViewMode(a.cfg.App.ViewMode); ok {
		mode = m
	}
	if !a.fresh && a.store != nil {
		if p, ok := a.store.Get(docID); ok {
			if p.Scale > 0 {
				scale = p.Scale
			}
			if m, ok := viewer.ParseViewMode(p.Mode); ok {
				mode = m
			}
		}
	}
	if m, ok := viewer.ParseViewMode(a.flagMode); ok {
		mode = m
	}
	if a.flagScale > 0 {
		scale = a.flagScale
	}
	return scale, mode
}

// applyView loads doc into c and restores its view preferences.
func (a *app) applyView(c *viewer.Controller, doc *document.Document) {
	c.OnDocumentLoaded(doc.PageCount())
	scale, mode := a.initialView(doc.ID)
	c.SetZoom(viewer.ZoomTo(scale))
	c.SetViewMode(mode)
}

// saveView remembers zoom and mode for docID. The page is not saved.
func (a *app) saveView(docID string, s viewer.State) {
	if a.store == nil || docID == "" {
		return
	}
	err := a.store.Set(docID, state.ViewPrefs{Scale: s.Scale, Mode: s.Mode.String()})
	if err != nil {
		a.log.Warn("save view preferences", zap.String("doc", docID), zap.Error(err))
	}
}

func (a *app) request(doc *document.Document, page int) assistant.Request {
	r := assistant.Request{
		Language:    a.language,
		Length:      a.length,
		Model:       a.model,
		Temperature: a.cfg.AI.Temperature,
	}
	if doc != nil {
		r.DocumentID = doc.ID
		r.Page = page
		r.Text = doc.PageText(page)
	}
	return r
}

// runTask performs a non-chat assistant task. The request is built by
// the caller on the UI goroutine; doc supplies the full text for book
// tasks.
func runTask(ctx context.Context, ai *assistant.Assistant, kind assistant.TaskKind, doc *document.Document, r assistant.Request) (string, error) {
	switch kind {
	case assistant.TaskTranslatePage:
		return ai.TranslatePage(ctx, r)
	case assistant.TaskSummarizePage:
		return ai.SummarizePage(ctx, r)
	case assistant.TaskTranslateBook:
		r.Page, r.Text = 0, doc.Text()
		return ai.TranslateBook(ctx, r)
	case assistant.TaskSummarizeBook:
		r.Page, r.Text = 0, doc.Text()
		return ai.SummarizeBook(ctx, r)
	}
	return "", fmt.Errorf("unsupported task %s", kind)
}

func (a *app) nextModel() string {
	i := slices.Index(a.models, a.model)
	a.model = a.models[(i+1)%len(a.models)]
	return a.model
}

func capitalize(s string) string {
	if s == "" {
		return s
	}
	return strings.ToUpper(s[:1]) + s[1:]
}
