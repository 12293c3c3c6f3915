package handlers

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"testing"

	"knoyosta-backend/models"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stubSessionReader struct {
	messages map[string][]models.ChatMessage
}

func (s *stubSessionReader) Exists(ctx context.Context, sessionID string) (bool, error) {
	_, ok := s.messages[sessionID]
	return ok, nil
}

func (s *stubSessionReader) ListMessages(ctx context.Context, sessionID string) ([]models.ChatMessage, error) {
	return s.messages[sessionID], nil
}

type stubArchiveRecorder struct {
	created []*models.SessionArchive
}

func (s *stubArchiveRecorder) Create(ctx context.Context, archive *models.SessionArchive) error {
	s.created = append(s.created, archive)
	return nil
}

type memStorage struct {
	objects map[string][]byte
}

func (m *memStorage) Upload(ctx context.Context, archiveID uuid.UUID, name string, data io.Reader) (string, error) {
	body, err := io.ReadAll(data)
	if err != nil {
		return "", err
	}
	path := archiveID.String() + "/" + name
	m.objects[path] = body
	return path, nil
}

func (m *memStorage) Download(ctx context.Context, storagePath string) (io.ReadCloser, error) {
	return nil, nil
}

func (m *memStorage) Delete(ctx context.Context, storagePath string) error {
	return nil
}

func setupArchiveRouter(reader *stubSessionReader, recorder *stubArchiveRecorder, store *memStorage) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.POST("/sessions/:id/archive", NewArchiveHandler(reader, recorder, store).ArchiveSession)
	return r
}

func TestArchiveEndpoint_Success(t *testing.T) {
	reader := &stubSessionReader{messages: map[string][]models.ChatMessage{
		"s1": {
			{SessionID: "s1", Role: models.RoleUser, Content: "first"},
			{SessionID: "s1", Role: models.RoleAssistant, Content: "second"},
		},
	}}
	recorder := &stubArchiveRecorder{}
	store := &memStorage{objects: make(map[string][]byte)}
	r := setupArchiveRouter(reader, recorder, store)

	w := postJSON(r, "/sessions/s1/archive", nil)

	require.Equal(t, http.StatusCreated, w.Code)
	require.Len(t, recorder.created, 1)
	assert.Equal(t, "s1", recorder.created[0].SessionID)
	assert.Equal(t, 2, recorder.created[0].MessageCount)

	// The stored transcript carries the messages in order
	body, ok := store.objects[recorder.created[0].StoragePath]
	require.True(t, ok)

	var transcript models.Transcript
	require.NoError(t, json.Unmarshal(body, &transcript))
	assert.Equal(t, "s1", transcript.SessionID)
	require.Len(t, transcript.Messages, 2)
	assert.Equal(t, "first", transcript.Messages[0].Content)
	assert.Equal(t, "second", transcript.Messages[1].Content)
}

func TestArchiveEndpoint_UnknownSession(t *testing.T) {
	reader := &stubSessionReader{messages: map[string][]models.ChatMessage{}}
	recorder := &stubArchiveRecorder{}
	store := &memStorage{objects: make(map[string][]byte)}
	r := setupArchiveRouter(reader, recorder, store)

	w := postJSON(r, "/sessions/nope/archive", nil)

	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.Contains(t, w.Body.String(), "NOT_FOUND")
	assert.Empty(t, recorder.created)
	assert.Empty(t, store.objects)
}
