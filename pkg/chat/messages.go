package chat

import (
	"strings"
	"time"

	"github.com/google/uuid"
)

// MessageStatus tracks the lifecycle of a message. Assistant messages move
// pending -> streaming -> complete; user messages are complete on creation.
type MessageStatus string

const (
	StatusPending   MessageStatus = "pending"
	StatusStreaming MessageStatus = "streaming"
	StatusComplete  MessageStatus = "complete"
)

const (
	RoleUser      = "user"
	RoleAssistant = "assistant"
	RoleSystem    = "system"
	RoleError     = "error"
)

// Message is one entry in the transcript. ID is stable for the message's
// lifetime; Content grows by append while Status != complete.
type Message struct {
	ID        string        `json:"id"`
	Role      string        `json:"role"`
	Content   string        `json:"content"`
	Status    MessageStatus `json:"status"`
	Timestamp time.Time     `json:"timestamp"`
}

func NewUserMessage(content string) Message {
	return Message{
		ID:        uuid.NewString(),
		Role:      RoleUser,
		Content:   strings.TrimSpace(content),
		Status:    StatusComplete,
		Timestamp: time.Now(),
	}
}

// NewPendingAssistantMessage creates the placeholder entry opened when a
// request starts, before any delta has arrived.
func NewPendingAssistantMessage() Message {
	return Message{
		ID:        uuid.NewString(),
		Role:      RoleAssistant,
		Content:   "",
		Status:    StatusPending,
		Timestamp: time.Now(),
	}
}

func NewSystemMessage(content string) Message {
	return Message{
		ID:        uuid.NewString(),
		Role:      RoleSystem,
		Content:   content,
		Status:    StatusComplete,
		Timestamp: time.Now(),
	}
}

func NewErrorMessage(content string) Message {
	return Message{
		ID:        uuid.NewString(),
		Role:      RoleError,
		Content:   content,
		Status:    StatusComplete,
		Timestamp: time.Now(),
	}
}

func (m Message) IsUser() bool {
	return m.Role == RoleUser
}

func (m Message) IsAssistant() bool {
	return m.Role == RoleAssistant
}

func (m Message) IsError() bool {
	return m.Role == RoleError
}

func (m Message) IsComplete() bool {
	return m.Status == StatusComplete
}

// InFlight reports whether the message is still receiving content.
func (m Message) InFlight() bool {
	return m.Status == StatusPending || m.Status == StatusStreaming
}

func (m Message) IsEmpty() bool {
	return strings.TrimSpace(m.Content) == ""
}

// DisplayContent returns the content trimmed for display. The stored
// content is never mutated by trimming.
func (m Message) DisplayContent() string {
	return strings.TrimSpace(m.Content)
}
