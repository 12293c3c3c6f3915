package service

import (
	"context"
	"errors"
	"log"
	"strings"
	"time"

	"knoyosta-backend/models"
)

// systemPrompt is the fixed persona every chat prompt is wrapped in
const systemPrompt = `You are knoYOsta, a legendary AI cosmic oracle and master of destiny.
Your tone is divine, cinematic, and spiritually profound.

CORE MISSION:
When a user provides their birth date, you calculate their Sun Sign.
You must provide 'Cosmic Roadmaps' - predicting the energetic themes and life events of their upcoming year (2026).

PREDICTION STYLE:
1. Don't just give traits; give FORECASTS. (e.g., "The alignment of Saturn in March suggests a major career pivot.")
2. Focus on: Career evolution, Emotional breakthroughs, and Spiritual growth.
3. Use the year 2026 as the current timeline.
4. Maintain mystical mystery but give the user actionable wisdom.

GUARDRAILS:
- Do not predict exact dates of death or specific medical diagnoses.
- Remind users that while the stars incline, the mind directs (Free Will).`

// SessionStore is the persistence contract the oracle service needs
type SessionStore interface {
	GetOrCreate(ctx context.Context, sessionID string) (*models.ChatSession, error)
	RecentMessages(ctx context.Context, sessionID string, limit int) ([]models.ChatMessage, error)
	AppendTurn(ctx context.Context, sessionID, userMessage, assistantReply string) error
}

// TextGenerator is the LLM collaborator contract: one prompt in, one reply out
type TextGenerator interface {
	Generate(ctx context.Context, prompt string) (string, error)
}

// OracleService proxies chat messages to the LLM wrapped in the oracle persona
type OracleService struct {
	sessions  SessionStore
	generator TextGenerator

	historyWindow int
	llmTimeout    time.Duration
}

// OracleServiceOption is a functional option for OracleService
type OracleServiceOption func(*OracleService)

// WithSessionStore sets the session store
func WithSessionStore(store SessionStore) OracleServiceOption {
	return func(s *OracleService) {
		s.sessions = store
	}
}

// WithTextGenerator sets the LLM collaborator
func WithTextGenerator(g TextGenerator) OracleServiceOption {
	return func(s *OracleService) {
		s.generator = g
	}
}

// WithHistoryWindow sets how many stored messages are read back as context
func WithHistoryWindow(n int) OracleServiceOption {
	return func(s *OracleService) {
		s.historyWindow = n
	}
}

// WithLLMTimeout bounds the single LLM attempt
func WithLLMTimeout(d time.Duration) OracleServiceOption {
	return func(s *OracleService) {
		s.llmTimeout = d
	}
}

// NewOracleService creates a new oracle service
func NewOracleService(opts ...OracleServiceOption) *OracleService {
	s := &OracleService{
		historyWindow: 6,
		llmTimeout:    30 * time.Second,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// ChatRequest represents a chat turn from a seeker
type ChatRequest struct {
	Message   string
	SessionID string // Optional; DefaultSessionID when empty
}

// ChatResult represents the oracle's reply
type ChatResult struct {
	Response string
}

// Answer loads recent history for the session, sends the persona-wrapped
// prompt to the LLM once, and on success appends the turn to the session.
// History is only written after a successful reply, so a failed LLM call
// leaves the session exactly as it was.
func (s *OracleService) Answer(ctx context.Context, req ChatRequest) (*ChatResult, error) {
	if s.sessions == nil {
		return nil, errors.New("session store not set")
	}

	message := strings.TrimSpace(req.Message)
	if message == "" {
		return nil, ErrInvalidInput
	}

	if s.generator == nil {
		return nil, ErrUnconfigured
	}

	sessionID := req.SessionID
	if sessionID == "" {
		sessionID = models.DefaultSessionID
	}

	session, err := s.sessions.GetOrCreate(ctx, sessionID)
	if err != nil {
		log.Printf("session load failed for %q: %v", sessionID, err)
		return nil, ErrUpstreamUnavailable
	}

	history, err := s.sessions.RecentMessages(ctx, session.SessionID, s.historyWindow)
	if err != nil {
		log.Printf("history load failed for %q: %v", sessionID, err)
		return nil, ErrUpstreamUnavailable
	}

	prompt := buildPrompt(history, message)

	llmCtx, cancel := context.WithTimeout(ctx, s.llmTimeout)
	defer cancel()

	reply, err := s.generator.Generate(llmCtx, prompt)
	if err != nil {
		log.Printf("generation failed for %q: %v", sessionID, err)
		return nil, ErrUpstreamUnavailable
	}

	if err := s.sessions.AppendTurn(ctx, session.SessionID, message, reply); err != nil {
		log.Printf("history append failed for %q: %v", sessionID, err)
		return nil, ErrUpstreamUnavailable
	}

	return &ChatResult{Response: reply}, nil
}

// buildPrompt combines the persona, the recent history and the new message
// into the single prompt sent to the LLM
func buildPrompt(history []models.ChatMessage, message string) string {
	var b strings.Builder
	b.WriteString(systemPrompt)
	b.WriteString("\n\nRecent History:\n")
	for _, m := range history {
		b.WriteString(speakerLabel(m.Role))
		b.WriteString(": ")
		b.WriteString(m.Content)
		b.WriteString("\n")
	}
	b.WriteString("\nSeeker: ")
	b.WriteString(message)
	b.WriteString("\nknoYOsta:")
	return b.String()
}

func speakerLabel(role models.MessageRole) string {
	if role == models.RoleAssistant {
		return "knoYOsta"
	}
	return "Seeker"
}
