package assistant

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type recordingProvider struct {
	prompts []string
	chats   [][]Message
	opts    []*Options
	reply   string
}

func (r *recordingProvider) Chat(_ context.Context, history []Message, opts ...Option) (string, error) {
	r.chats = append(r.chats, history)
	r.opts = append(r.opts, buildOptions(opts))
	return r.reply, nil
}

func (r *recordingProvider) Generate(_ context.Context, prompt string, opts ...Option) (string, error) {
	r.prompts = append(r.prompts, prompt)
	r.opts = append(r.opts, buildOptions(opts))
	return r.reply, nil
}

func TestTranslatePageCaches(t *testing.T) {
	p := &recordingProvider{reply: "texto"}
	a := New(p, time.Minute, nil)
	req := Request{DocumentID: "doc", Page: 2, Text: "some text", Language: Spanish, Model: "llama3"}

	out, err := a.TranslatePage(context.Background(), req)
	require.NoError(t, err)
	assert.Equal(t, "texto", out)

	_, err = a.TranslatePage(context.Background(), req)
	require.NoError(t, err)
	assert.Len(t, p.prompts, 1, "second call is served from cache")
	assert.Contains(t, p.prompts[0], "Spanish")
	assert.Contains(t, p.prompts[0], "some text")
	assert.Equal(t, PurposeTranslate, p.opts[0].Purpose)
	assert.Equal(t, "llama3", p.opts[0].Model)

	req.Language = French
	_, err = a.TranslatePage(context.Background(), req)
	require.NoError(t, err)
	assert.Len(t, p.prompts, 2, "a different language misses the cache")

	req.Page = 3
	_, err = a.TranslatePage(context.Background(), req)
	require.NoError(t, err)
	assert.Len(t, p.prompts, 3, "a different page misses the cache")
}

func TestRequestTemperature(t *testing.T) {
	p := &recordingProvider{reply: "ok"}
	a := New(p, 0, nil)

	_, err := a.SummarizePage(context.Background(), Request{Page: 1, Text: "x", Temperature: 0.2})
	require.NoError(t, err)
	_, err = a.SummarizePage(context.Background(), Request{Page: 1, Text: "x"})
	require.NoError(t, err)

	require.Len(t, p.opts, 2)
	assert.InDelta(t, 0.2, p.opts[0].Temperature, 1e-9)
	assert.InDelta(t, 0.7, p.opts[1].Temperature, 1e-9, "zero keeps the provider default")
}

func TestNoCacheWithZeroTTL(t *testing.T) {
	p := &recordingProvider{reply: "sum"}
	a := New(p, 0, nil)
	req := Request{DocumentID: "doc", Page: 1, Text: "x", Length: SummaryBrief}

	for range 2 {
		_, err := a.SummarizePage(context.Background(), req)
		require.NoError(t, err)
	}
	assert.Len(t, p.prompts, 2)
	assert.Contains(t, p.prompts[0], "one or two sentences")
	assert.Equal(t, PurposeSummarize, p.opts[0].Purpose)
}

func TestBookPromptsAreTruncated(t *testing.T) {
	p := &recordingProvider{reply: "ok"}
	a := New(p, 0, nil)
	long := strings.Repeat("é", maxBookPrompt)

	_, err := a.SummarizeBook(context.Background(), Request{Text: long, Length: SummaryDetailed})
	require.NoError(t, err)
	_, err = a.TranslateBook(context.Background(), Request{Text: long, Language: German})
	require.NoError(t, err)

	require.Len(t, p.prompts, 2)
	for _, prompt := range p.prompts {
		assert.Less(t, len(prompt), maxBookPrompt+200)
		assert.True(t, strings.HasSuffix(prompt, "é"), "cut on a rune boundary")
	}
}

func TestAskPrefixesPage(t *testing.T) {
	p := &recordingProvider{reply: "It is about gravity."}
	a := New(p, time.Minute, nil)

	tr := NewTranscript()
	tr.AddUser("earlier", 1)
	tr.AddAssistant("answer", 1)

	out, err := a.Ask(context.Background(), Request{Page: 7, Text: "page seven"}, tr.History(), "What is this?")
	require.NoError(t, err)
	assert.Equal(t, "Based on page 7, here's what I can tell you: It is about gravity.", out)

	require.Len(t, p.chats, 1)
	msgs := p.chats[0]
	require.Len(t, msgs, 4)
	assert.Equal(t, RoleSystem, msgs[0].Role)
	assert.Contains(t, msgs[0].Content, "page seven")
	assert.Equal(t, "earlier", msgs[1].Content)
	assert.Equal(t, Message{Role: RoleUser, Content: "What is this?"}, msgs[3])
}

func TestAskPropagatesErrors(t *testing.T) {
	a := New(NewCannedProvider(time.Hour), 0, nil)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := a.Ask(ctx, Request{Page: 1}, nil, "hi")
	assert.ErrorIs(t, err, context.Canceled)
}

func TestCannedProvider(t *testing.T) {
	c := &CannedProvider{Pick: func(n int) int { return n - 1 }}

	out, err := c.Chat(context.Background(), nil)
	require.NoError(t, err)
	assert.Equal(t, cannedReplies[PurposeChat][3], out)

	out, err = c.Generate(context.Background(), "p", WithPurpose(PurposeTranslate))
	require.NoError(t, err)
	assert.Equal(t, cannedReplies[PurposeTranslate][0], out)

	out, err = c.Generate(context.Background(), "p", WithPurpose(PurposeSummarize))
	require.NoError(t, err)
	assert.Equal(t, cannedReplies[PurposeSummarize][0], out)
}

func TestCannedProviderHonoursDeadline(t *testing.T) {
	c := NewCannedProvider(time.Hour)
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Millisecond)
	defer cancel()

	_, err := c.Generate(ctx, "p")
	assert.ErrorIs(t, err, context.DeadlineExceeded)
}

func TestTranscript(t *testing.T) {
	tr := NewTranscript()
	require.Equal(t, 1, tr.Len())
	welcome := tr.Messages()[0]
	assert.Equal(t, RoleAssistant, welcome.Role)
	assert.Contains(t, welcome.Content, "AI reading assistant")
	assert.Empty(t, tr.History())

	q := tr.AddUser("question", 3)
	r := tr.AddAssistant("reply", 3)
	assert.NotEqual(t, q.ID, r.ID)
	assert.Equal(t, 3, tr.Len())
	assert.Equal(t, []Message{
		{Role: RoleUser, Content: "question"},
		{Role: RoleAssistant, Content: "reply"},
	}, tr.History())

	tr.Clear()
	require.Equal(t, 1, tr.Len())
	assert.Equal(t, welcome.ID, tr.Messages()[0].ID)
}

func TestLanguages(t *testing.T) {
	l, err := ParseLanguage(" Urdu ")
	require.NoError(t, err)
	assert.Equal(t, Urdu, l)
	assert.Equal(t, "Urdu", l.Title())

	_, err = ParseLanguage("klingon")
	assert.Error(t, err)

	assert.Equal(t, Spanish, NextLanguage(English))
	assert.Equal(t, English, NextLanguage(Hindi))
	assert.Equal(t, SummaryDetailed, SummaryMedium.Next())
	assert.Equal(t, SummaryBrief, SummaryDetailed.Next())
}
