// Package assistant runs AI reading tasks (translation, summaries, chat)
// against a model provider and tracks their state.
package assistant

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/patrickmn/go-cache"
	"go.uber.org/zap"
)

// Prompts sent for whole-book actions are cut to this many characters.
const maxBookPrompt = 24000

// Assistant builds prompts, calls the provider and caches answers.
type Assistant struct {
	provider Provider
	cache    *cache.Cache
	log      *zap.Logger
}

// New returns an assistant. A zero ttl disables caching.
func New(p Provider, ttl time.Duration, log *zap.Logger) *Assistant {
	if log == nil {
		log = zap.NewNop()
	}
	a := &Assistant{provider: p, log: log}
	if ttl > 0 {
		a.cache = cache.New(ttl, 2*ttl)
	}
	return a
}

// Request describes the document context of an action.
type Request struct {
	DocumentID string
	Page       int
	Text       string
	Language   Language
	Length     SummaryLength
	Model      string
	// Temperature overrides the provider default when positive.
	Temperature float64
}

func (r Request) options(p Purpose) []Option {
	opts := []Option{WithPurpose(p)}
	if r.Model != "" {
		opts = append(opts, WithModel(r.Model))
	}
	if r.Temperature > 0 {
		opts = append(opts, WithTemperature(r.Temperature))
	}
	return opts
}

// TranslatePage translates the text of one page.
func (a *Assistant) TranslatePage(ctx context.Context, r Request) (string, error) {
	prompt := fmt.Sprintf("Translate the following page %d of a document into %s. Reply with the translation only.\n\n%s",
		r.Page, r.Language.Title(), r.Text)
	return a.generate(ctx, TaskTranslatePage, r, prompt, PurposeTranslate)
}

// SummarizePage summarizes the text of one page.
func (a *Assistant) SummarizePage(ctx context.Context, r Request) (string, error) {
	prompt := fmt.Sprintf("Summarize page %d of a document %s.\n\n%s", r.Page, r.Length.instruction(), r.Text)
	return a.generate(ctx, TaskSummarizePage, r, prompt, PurposeSummarize)
}

// TranslateBook translates the opening of the whole document.
func (a *Assistant) TranslateBook(ctx context.Context, r Request) (string, error) {
	prompt := fmt.Sprintf("Translate the following document into %s. Reply with the translation only.\n\n%s",
		r.Language.Title(), truncate(r.Text, maxBookPrompt))
	return a.generate(ctx, TaskTranslateBook, r, prompt, PurposeTranslate)
}

// SummarizeBook summarizes the whole document.
func (a *Assistant) SummarizeBook(ctx context.Context, r Request) (string, error) {
	prompt := fmt.Sprintf("Summarize the following document %s.\n\n%s", r.Length.instruction(), truncate(r.Text, maxBookPrompt))
	return a.generate(ctx, TaskSummarizeBook, r, prompt, PurposeSummarize)
}

// Ask answers question about the page in r, given the earlier
// conversation. The reply is prefixed with the page it refers to.
func (a *Assistant) Ask(ctx context.Context, r Request, history []Message, question string) (string, error) {
	msgs := make([]Message, 0, len(history)+2)
	msgs = append(msgs, Message{
		Role: RoleSystem,
		Content: fmt.Sprintf("You are a reading assistant. The reader is on page %d of a document. Page text:\n\n%s",
			r.Page, r.Text),
	})
	msgs = append(msgs, history...)
	msgs = append(msgs, Message{Role: RoleUser, Content: question})

	start := time.Now()
	reply, err := a.provider.Chat(ctx, msgs, r.options(PurposeChat)...)
	if err != nil {
		a.log.Warn("chat failed", zap.Int("page", r.Page), zap.Error(err))
		return "", err
	}
	a.log.Debug("chat answered", zap.Int("page", r.Page), zap.Duration("took", time.Since(start)))
	return fmt.Sprintf("Based on page %d, here's what I can tell you: %s", r.Page, reply), nil
}

func (a *Assistant) generate(ctx context.Context, kind TaskKind, r Request, prompt string, p Purpose) (string, error) {
	key := cacheKey(kind, r)
	if a.cache != nil {
		if v, ok := a.cache.Get(key); ok {
			a.log.Debug("cache hit", zap.String("task", kind.String()), zap.Int("page", r.Page))
			return v.(string), nil
		}
	}

	start := time.Now()
	out, err := a.provider.Generate(ctx, prompt, r.options(p)...)
	if err != nil {
		a.log.Warn("task failed", zap.String("task", kind.String()), zap.Int("page", r.Page), zap.Error(err))
		return "", err
	}
	a.log.Info("task finished", zap.String("task", kind.String()), zap.Int("page", r.Page),
		zap.Duration("took", time.Since(start)))

	if a.cache != nil {
		a.cache.SetDefault(key, out)
	}
	return out, nil
}

func cacheKey(kind TaskKind, r Request) string {
	parts := []string{r.DocumentID, kind.String(), fmt.Sprint(r.Page), r.Model}
	switch kind {
	case TaskTranslatePage, TaskTranslateBook:
		parts = append(parts, string(r.Language))
	case TaskSummarizePage, TaskSummarizeBook:
		parts = append(parts, string(r.Length))
	}
	return strings.Join(parts, "|")
}

func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	// Back off to a rune boundary.
	for n > 0 && !utf8Start(s[n]) {
		n--
	}
	return s[:n]
}

func utf8Start(b byte) bool {
	return b&0xC0 != 0x80
}
