package models

import (
	"time"

	"github.com/google/uuid"
)

// MessageRole distinguishes who produced a chat message
type MessageRole string

const (
	RoleUser      MessageRole = "user"
	RoleAssistant MessageRole = "assistant"
)

// ChatMessage is a single turn half stored for a session
type ChatMessage struct {
	ID        uuid.UUID   `json:"id"`
	SessionID string      `json:"session_id"`
	Role      MessageRole `json:"role"`
	Content   string      `json:"content"`
	CreatedAt time.Time   `json:"created_at"`
}

// ChatSession groups an ordered sequence of messages under a caller-supplied id
type ChatSession struct {
	SessionID string    `json:"session_id"`
	CreatedAt time.Time `json:"created_at"`
}

// DefaultSessionID is used when a chat request carries no session id
const DefaultSessionID = "default"
