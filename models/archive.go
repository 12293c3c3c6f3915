package models

import (
	"time"

	"github.com/google/uuid"
)

// SessionArchive records an exported transcript and where it landed in storage
type SessionArchive struct {
	ID           uuid.UUID `json:"id"`
	SessionID    string    `json:"session_id"`
	StoragePath  string    `json:"storage_path"`
	MessageCount int       `json:"message_count"`
	CreatedAt    time.Time `json:"created_at"`
}

// Transcript is the JSON document written to storage when a session is archived
type Transcript struct {
	SessionID  string        `json:"session_id"`
	ArchivedAt time.Time     `json:"archived_at"`
	Messages   []ChatMessage `json:"messages"`
}
