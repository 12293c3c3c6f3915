package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"testing"

	"knoyosta-backend/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeSessionStore keeps per-session message slices in memory
type fakeSessionStore struct {
	messages map[string][]models.ChatMessage
	loadErr  error
	saveErr  error
}

func newFakeSessionStore() *fakeSessionStore {
	return &fakeSessionStore{messages: make(map[string][]models.ChatMessage)}
}

func (f *fakeSessionStore) GetOrCreate(ctx context.Context, sessionID string) (*models.ChatSession, error) {
	if f.loadErr != nil {
		return nil, f.loadErr
	}
	if _, ok := f.messages[sessionID]; !ok {
		f.messages[sessionID] = nil
	}
	return &models.ChatSession{SessionID: sessionID}, nil
}

func (f *fakeSessionStore) RecentMessages(ctx context.Context, sessionID string, limit int) ([]models.ChatMessage, error) {
	if f.loadErr != nil {
		return nil, f.loadErr
	}
	msgs := f.messages[sessionID]
	if len(msgs) > limit {
		msgs = msgs[len(msgs)-limit:]
	}
	return msgs, nil
}

func (f *fakeSessionStore) AppendTurn(ctx context.Context, sessionID, userMessage, assistantReply string) error {
	if f.saveErr != nil {
		return f.saveErr
	}
	f.messages[sessionID] = append(f.messages[sessionID],
		models.ChatMessage{SessionID: sessionID, Role: models.RoleUser, Content: userMessage},
		models.ChatMessage{SessionID: sessionID, Role: models.RoleAssistant, Content: assistantReply},
	)
	return nil
}

type fakeGenerator struct {
	reply   string
	err     error
	prompts []string
}

func (f *fakeGenerator) Generate(ctx context.Context, prompt string) (string, error) {
	f.prompts = append(f.prompts, prompt)
	if f.err != nil {
		return "", f.err
	}
	return f.reply, nil
}

func newOracle(store SessionStore, gen TextGenerator) *OracleService {
	return NewOracleService(
		WithSessionStore(store),
		WithTextGenerator(gen),
	)
}

func TestAnswer_Success(t *testing.T) {
	store := newFakeSessionStore()
	gen := &fakeGenerator{reply: "The stars align for you."}
	svc := newOracle(store, gen)

	result, err := svc.Answer(context.Background(), ChatRequest{Message: "What awaits me?", SessionID: "s1"})

	require.NoError(t, err)
	assert.Equal(t, "The stars align for you.", result.Response)

	msgs := store.messages["s1"]
	require.Len(t, msgs, 2)
	assert.Equal(t, models.RoleUser, msgs[0].Role)
	assert.Equal(t, "What awaits me?", msgs[0].Content)
	assert.Equal(t, models.RoleAssistant, msgs[1].Role)
	assert.Equal(t, "The stars align for you.", msgs[1].Content)
}

func TestAnswer_PromptShape(t *testing.T) {
	store := newFakeSessionStore()
	store.messages["s1"] = []models.ChatMessage{
		{Role: models.RoleUser, Content: "earlier question"},
		{Role: models.RoleAssistant, Content: "earlier answer"},
	}
	gen := &fakeGenerator{reply: "ok"}
	svc := newOracle(store, gen)

	_, err := svc.Answer(context.Background(), ChatRequest{Message: "new question", SessionID: "s1"})
	require.NoError(t, err)

	require.Len(t, gen.prompts, 1)
	prompt := gen.prompts[0]
	assert.True(t, strings.HasPrefix(prompt, "You are knoYOsta"))
	assert.Contains(t, prompt, "Recent History:")
	assert.Contains(t, prompt, "Seeker: earlier question")
	assert.Contains(t, prompt, "knoYOsta: earlier answer")
	assert.True(t, strings.HasSuffix(prompt, "Seeker: new question\nknoYOsta:"))
}

func TestAnswer_HistoryWindow(t *testing.T) {
	store := newFakeSessionStore()
	for i := 0; i < 10; i++ {
		store.messages["s1"] = append(store.messages["s1"], models.ChatMessage{
			Role:    models.RoleUser,
			Content: fmt.Sprintf("message %d", i),
		})
	}
	gen := &fakeGenerator{reply: "ok"}
	svc := newOracle(store, gen)

	_, err := svc.Answer(context.Background(), ChatRequest{Message: "now", SessionID: "s1"})
	require.NoError(t, err)

	prompt := gen.prompts[0]
	// Only the last six stored messages appear as context
	assert.NotContains(t, prompt, "message 3")
	assert.Contains(t, prompt, "message 4")
	assert.Contains(t, prompt, "message 9")
}

func TestAnswer_DefaultSessionID(t *testing.T) {
	store := newFakeSessionStore()
	gen := &fakeGenerator{reply: "ok"}
	svc := newOracle(store, gen)

	_, err := svc.Answer(context.Background(), ChatRequest{Message: "hello"})
	require.NoError(t, err)

	assert.Len(t, store.messages[models.DefaultSessionID], 2)
}

func TestAnswer_EmptyMessage(t *testing.T) {
	store := newFakeSessionStore()
	gen := &fakeGenerator{reply: "ok"}
	svc := newOracle(store, gen)

	for _, message := range []string{"", "   "} {
		_, err := svc.Answer(context.Background(), ChatRequest{Message: message, SessionID: "s1"})

		assert.ErrorIs(t, err, ErrInvalidInput)
		assert.Empty(t, gen.prompts, "no collaborator call should be made")
		assert.Empty(t, store.messages["s1"], "history must not be mutated")
	}
}

func TestAnswer_GeneratorFailureLeavesHistoryUntouched(t *testing.T) {
	store := newFakeSessionStore()
	store.messages["s1"] = []models.ChatMessage{
		{Role: models.RoleUser, Content: "before"},
	}
	gen := &fakeGenerator{err: errors.New("quota exceeded")}
	svc := newOracle(store, gen)

	_, err := svc.Answer(context.Background(), ChatRequest{Message: "hi", SessionID: "s1"})

	assert.ErrorIs(t, err, ErrUpstreamUnavailable)
	require.Len(t, store.messages["s1"], 1)
	assert.Equal(t, "before", store.messages["s1"][0].Content)
}

func TestAnswer_StoreFailure(t *testing.T) {
	store := newFakeSessionStore()
	store.loadErr = errors.New("connection refused")
	gen := &fakeGenerator{reply: "ok"}
	svc := newOracle(store, gen)

	_, err := svc.Answer(context.Background(), ChatRequest{Message: "hi", SessionID: "s1"})

	assert.ErrorIs(t, err, ErrUpstreamUnavailable)
	assert.Empty(t, gen.prompts)
}

func TestAnswer_AppendFailure(t *testing.T) {
	store := newFakeSessionStore()
	store.saveErr = errors.New("write failed")
	gen := &fakeGenerator{reply: "ok"}
	svc := newOracle(store, gen)

	_, err := svc.Answer(context.Background(), ChatRequest{Message: "hi", SessionID: "s1"})

	assert.ErrorIs(t, err, ErrUpstreamUnavailable)
}

func TestAnswer_Unconfigured(t *testing.T) {
	store := newFakeSessionStore()
	svc := NewOracleService(WithSessionStore(store))

	_, err := svc.Answer(context.Background(), ChatRequest{Message: "hi", SessionID: "s1"})

	assert.ErrorIs(t, err, ErrUnconfigured)
	assert.Empty(t, store.messages["s1"])
}
