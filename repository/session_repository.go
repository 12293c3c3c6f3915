package repository

import (
	"context"

	"knoyosta-backend/models"

	"github.com/jackc/pgx/v5/pgxpool"
)

// SessionRepository handles database operations for chat sessions and their messages
type SessionRepository struct {
	db *pgxpool.Pool

	// maxRetained bounds write-side history growth: after every append the
	// oldest messages beyond this count are trimmed.
	maxRetained int
}

// NewSessionRepository creates a new session repository retaining at most
// maxRetained messages per session
func NewSessionRepository(db *pgxpool.Pool, maxRetained int) *SessionRepository {
	return &SessionRepository{db: db, maxRetained: maxRetained}
}

// GetOrCreate loads the session for sessionID, creating it on first use
func (r *SessionRepository) GetOrCreate(ctx context.Context, sessionID string) (*models.ChatSession, error) {
	session := &models.ChatSession{}
	query := `
		INSERT INTO sessions (session_id)
		VALUES ($1)
		ON CONFLICT (session_id) DO UPDATE SET session_id = EXCLUDED.session_id
		RETURNING session_id, created_at`

	err := r.db.QueryRow(ctx, query, sessionID).Scan(&session.SessionID, &session.CreatedAt)
	if err != nil {
		return nil, err
	}

	return session, nil
}

// Exists reports whether a session has been created for sessionID
func (r *SessionRepository) Exists(ctx context.Context, sessionID string) (bool, error) {
	var exists bool
	query := `SELECT EXISTS (SELECT 1 FROM sessions WHERE session_id = $1)`
	if err := r.db.QueryRow(ctx, query, sessionID).Scan(&exists); err != nil {
		return false, err
	}
	return exists, nil
}

// RecentMessages returns up to limit of the newest messages for a session,
// oldest first
func (r *SessionRepository) RecentMessages(ctx context.Context, sessionID string, limit int) ([]models.ChatMessage, error) {
	query := `
		SELECT id, session_id, role, content, created_at
		FROM (
			SELECT id, session_id, seq, role, content, created_at
			FROM session_messages
			WHERE session_id = $1
			ORDER BY seq DESC
			LIMIT $2
		) recent
		ORDER BY seq ASC`

	rows, err := r.db.Query(ctx, query, sessionID, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var messages []models.ChatMessage
	for rows.Next() {
		var m models.ChatMessage
		err := rows.Scan(&m.ID, &m.SessionID, &m.Role, &m.Content, &m.CreatedAt)
		if err != nil {
			return nil, err
		}
		messages = append(messages, m)
	}

	return messages, rows.Err()
}

// ListMessages returns every retained message for a session in order
func (r *SessionRepository) ListMessages(ctx context.Context, sessionID string) ([]models.ChatMessage, error) {
	query := `
		SELECT id, session_id, role, content, created_at
		FROM session_messages
		WHERE session_id = $1
		ORDER BY seq ASC`

	rows, err := r.db.Query(ctx, query, sessionID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var messages []models.ChatMessage
	for rows.Next() {
		var m models.ChatMessage
		err := rows.Scan(&m.ID, &m.SessionID, &m.Role, &m.Content, &m.CreatedAt)
		if err != nil {
			return nil, err
		}
		messages = append(messages, m)
	}

	return messages, rows.Err()
}

// AppendTurn appends a user message and the assistant reply to a session in a
// single transaction, then trims messages beyond the retention bound
func (r *SessionRepository) AppendTurn(ctx context.Context, sessionID, userMessage, assistantReply string) error {
	tx, err := r.db.Begin(ctx)
	if err != nil {
		return err
	}
	defer tx.Rollback(ctx)

	insert := `INSERT INTO session_messages (session_id, role, content) VALUES ($1, $2, $3)`

	if _, err := tx.Exec(ctx, insert, sessionID, models.RoleUser, userMessage); err != nil {
		return err
	}
	if _, err := tx.Exec(ctx, insert, sessionID, models.RoleAssistant, assistantReply); err != nil {
		return err
	}

	trim := `
		DELETE FROM session_messages
		WHERE session_id = $1 AND seq < (
			SELECT COALESCE(MIN(seq), 0)
			FROM (
				SELECT seq FROM session_messages
				WHERE session_id = $1
				ORDER BY seq DESC
				LIMIT $2
			) recent
		)`

	if _, err := tx.Exec(ctx, trim, sessionID, r.maxRetained); err != nil {
		return err
	}

	return tx.Commit(ctx)
}
