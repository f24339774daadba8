package assistant

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"
)

// OllamaProvider talks to an Ollama server's chat and generate endpoints.
type OllamaProvider struct {
	BaseURL   string
	ModelName string
	Client    *http.Client
}

var _ Provider = (*OllamaProvider)(nil)

func NewOllamaProvider(baseURL, modelName string, timeout time.Duration) *OllamaProvider {
	return &OllamaProvider{
		BaseURL:   strings.TrimRight(baseURL, "/"),
		ModelName: modelName,
		Client:    &http.Client{Timeout: timeout},
	}
}

type ollamaChatRequest struct {
	Model    string          `json:"model"`
	Messages []ollamaMessage `json:"messages"`
	Stream   bool            `json:"stream"`
	Options  *ollamaOptions  `json:"options,omitempty"`
}

type ollamaGenerateRequest struct {
	Model   string         `json:"model"`
	Prompt  string         `json:"prompt"`
	Stream  bool           `json:"stream"`
	Options *ollamaOptions `json:"options,omitempty"`
}

type ollamaMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type ollamaOptions struct {
	Temperature float64 `json:"temperature,omitempty"`
	NumPredict  int     `json:"num_predict,omitempty"`
}

type ollamaChatResponse struct {
	Model   string        `json:"model"`
	Message ollamaMessage `json:"message"`
	Done    bool          `json:"done"`
}

type ollamaGenerateResponse struct {
	Model    string `json:"model"`
	Response string `json:"response"`
	Done     bool   `json:"done"`
}

func (o *OllamaProvider) Chat(ctx context.Context, history []Message, opts ...Option) (string, error) {
	options := buildOptions(opts)

	msgs := make([]ollamaMessage, len(history))
	for i, m := range history {
		msgs[i] = ollamaMessage{Role: string(m.Role), Content: m.Content}
	}

	req := ollamaChatRequest{
		Model:    o.model(options),
		Messages: msgs,
		Options:  toOllamaOptions(options),
	}
	var resp ollamaChatResponse
	if err := o.post(ctx, "/api/chat", req, &resp); err != nil {
		return "", err
	}
	return strings.TrimSpace(resp.Message.Content), nil
}

func (o *OllamaProvider) Generate(ctx context.Context, prompt string, opts ...Option) (string, error) {
	options := buildOptions(opts)

	req := ollamaGenerateRequest{
		Model:   o.model(options),
		Prompt:  prompt,
		Options: toOllamaOptions(options),
	}
	var resp ollamaGenerateResponse
	if err := o.post(ctx, "/api/generate", req, &resp); err != nil {
		return "", err
	}
	return strings.TrimSpace(resp.Response), nil
}

func (o *OllamaProvider) model(options *Options) string {
	if options.Model != "" {
		return options.Model
	}
	return o.ModelName
}

func toOllamaOptions(o *Options) *ollamaOptions {
	return &ollamaOptions{Temperature: o.Temperature, NumPredict: o.MaxTokens}
}

func (o *OllamaProvider) post(ctx context.Context, path string, body, out any) error {
	payload, err := json.Marshal(body)
	if err != nil {
		return fmt.Errorf("encode request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, o.BaseURL+path, bytes.NewReader(payload))
	if err != nil {
		return fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := o.Client.Do(req)
	if err != nil {
		return fmt.Errorf("%w: %w", ErrProvider, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		msg, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return fmt.Errorf("%w: ollama %s returned %d: %s", ErrProvider, path, resp.StatusCode, strings.TrimSpace(string(msg)))
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("%w: decode response: %w", ErrProvider, err)
	}
	return nil
}
