package handlers

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"time"

	"knoyosta-backend/models"
	"knoyosta-backend/storage"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// SessionReader is the subset of the session repository the archive handler needs
type SessionReader interface {
	Exists(ctx context.Context, sessionID string) (bool, error)
	ListMessages(ctx context.Context, sessionID string) ([]models.ChatMessage, error)
}

// ArchiveRecorder records exported transcripts
type ArchiveRecorder interface {
	Create(ctx context.Context, archive *models.SessionArchive) error
}

// ArchiveHandler handles HTTP requests for transcript export
type ArchiveHandler struct {
	sessions SessionReader
	archives ArchiveRecorder
	storage  storage.Storage
}

// NewArchiveHandler creates a new archive handler
func NewArchiveHandler(sessions SessionReader, archives ArchiveRecorder, store storage.Storage) *ArchiveHandler {
	return &ArchiveHandler{
		sessions: sessions,
		archives: archives,
		storage:  store,
	}
}

// ArchiveSession handles POST /sessions/:id/archive
func (h *ArchiveHandler) ArchiveSession(c *gin.Context) {
	sessionID := c.Param("id")
	ctx := c.Request.Context()

	exists, err := h.sessions.Exists(ctx, sessionID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "UPSTREAM_UNAVAILABLE",
				"message": "session store unavailable",
			},
		})
		return
	}
	if !exists {
		c.JSON(http.StatusNotFound, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "NOT_FOUND",
				"message": "Session not found",
			},
		})
		return
	}

	messages, err := h.sessions.ListMessages(ctx, sessionID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "UPSTREAM_UNAVAILABLE",
				"message": "session store unavailable",
			},
		})
		return
	}

	transcript := models.Transcript{
		SessionID:  sessionID,
		ArchivedAt: time.Now().UTC(),
		Messages:   messages,
	}

	data, err := json.MarshalIndent(transcript, "", "  ")
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "ARCHIVE_FAILED",
				"message": err.Error(),
			},
		})
		return
	}

	archiveID := uuid.New()
	storagePath, err := h.storage.Upload(ctx, archiveID, sessionID+".json", bytes.NewReader(data))
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "ARCHIVE_FAILED",
				"message": "failed to write transcript to storage",
			},
		})
		return
	}

	archive := &models.SessionArchive{
		ID:           archiveID,
		SessionID:    sessionID,
		StoragePath:  storagePath,
		MessageCount: len(messages),
	}
	if err := h.archives.Create(ctx, archive); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "ARCHIVE_FAILED",
				"message": "failed to record archive",
			},
		})
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"success": true,
		"data":    archive,
	})
}
