package assistant

import (
	"context"
	"errors"
)

// ErrProvider wraps failures reported by a model backend.
var ErrProvider = errors.New("assistant provider failed")

// Role of a chat message.
type Role string

const (
	RoleSystem    Role = "system"
	RoleUser      Role = "user"
	RoleAssistant Role = "assistant"
)

// Message represents a chat message in a provider-agnostic format
type Message struct {
	Role    Role
	Content string
}

// Purpose tells offline providers what kind of answer is expected.
// Network providers ignore it.
type Purpose string

const (
	PurposeChat      Purpose = "chat"
	PurposeTranslate Purpose = "translate"
	PurposeSummarize Purpose = "summarize"
)

// Option allows for optional parameters like Temperature, MaxTokens, etc.
type Option func(*Options)

type Options struct {
	Temperature float64
	MaxTokens   int
	Model       string
	Purpose     Purpose
}

func WithTemperature(temp float64) Option {
	return func(o *Options) {
		o.Temperature = temp
	}
}

func WithMaxTokens(n int) Option {
	return func(o *Options) {
		o.MaxTokens = n
	}
}

func WithModel(model string) Option {
	return func(o *Options) {
		o.Model = model
	}
}

func WithPurpose(p Purpose) Option {
	return func(o *Options) {
		o.Purpose = p
	}
}

func buildOptions(opts []Option) *Options {
	o := &Options{Temperature: 0.7, Purpose: PurposeChat}
	for _, opt := range opts {
		opt(o)
	}
	return o
}

// Provider defines the contract for any model backend.
type Provider interface {
	// Chat sends a chat history to the model and returns the response
	Chat(ctx context.Context, history []Message, options ...Option) (string, error)

	// Generate sends a single prompt to the model (convenience method)
	Generate(ctx context.Context, prompt string, options ...Option) (string, error)
}
