package assistant

import (
	"time"

	"github.com/google/uuid"
)

const welcomeMessage = "Hi! I'm your AI reading assistant. Ask me anything about this document or specific pages. " +
	"I can help you understand concepts, summarize content, or answer questions."

// SuggestedQuestions are offered as one-key prompts in the chat panel.
var SuggestedQuestions = []string{
	"What are the main points?",
	"Explain this concept",
	"How does this relate to the previous chapter?",
	"What are the implications?",
}

// ChatMessage is one entry in the chat transcript.
type ChatMessage struct {
	ID        string
	Role      Role
	Content   string
	Timestamp time.Time
	// Page is the page the message was asked about; 0 for the welcome.
	Page int
}

// Transcript is the conversation shown in the chat panel. The welcome
// message is always first.
type Transcript struct {
	messages []ChatMessage
	now      func() time.Time
}

func NewTranscript() *Transcript {
	t := &Transcript{now: time.Now}
	t.messages = []ChatMessage{t.newMessage(RoleAssistant, welcomeMessage, 0)}
	return t
}

func (t *Transcript) newMessage(role Role, content string, page int) ChatMessage {
	return ChatMessage{
		ID:        uuid.NewString(),
		Role:      role,
		Content:   content,
		Timestamp: t.now(),
		Page:      page,
	}
}

// AddUser appends a question asked on page.
func (t *Transcript) AddUser(content string, page int) ChatMessage {
	m := t.newMessage(RoleUser, content, page)
	t.messages = append(t.messages, m)
	return m
}

// AddAssistant appends a reply about page.
func (t *Transcript) AddAssistant(content string, page int) ChatMessage {
	m := t.newMessage(RoleAssistant, content, page)
	t.messages = append(t.messages, m)
	return m
}

// Messages returns a copy of the transcript.
func (t *Transcript) Messages() []ChatMessage {
	return append([]ChatMessage(nil), t.messages...)
}

// Len returns the number of messages, welcome included.
func (t *Transcript) Len() int {
	return len(t.messages)
}

// Clear drops everything but the welcome message.
func (t *Transcript) Clear() {
	t.messages = t.messages[:1]
}

// History converts the transcript into provider messages, skipping the
// welcome.
func (t *Transcript) History() []Message {
	out := make([]Message, 0, len(t.messages)-1)
	for _, m := range t.messages[1:] {
		out = append(out, Message{Role: m.Role, Content: m.Content})
	}
	return out
}
