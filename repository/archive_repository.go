package repository

import (
	"context"

	"knoyosta-backend/models"

	"github.com/jackc/pgx/v5/pgxpool"
)

// ArchiveRepository handles database operations for session archives
type ArchiveRepository struct {
	db *pgxpool.Pool
}

// NewArchiveRepository creates a new archive repository
func NewArchiveRepository(db *pgxpool.Pool) *ArchiveRepository {
	return &ArchiveRepository{db: db}
}

// Create records an exported transcript
func (r *ArchiveRepository) Create(ctx context.Context, archive *models.SessionArchive) error {
	query := `
		INSERT INTO session_archives (id, session_id, storage_path, message_count)
		VALUES ($1, $2, $3, $4)
		RETURNING created_at`

	return r.db.QueryRow(
		ctx, query,
		archive.ID,
		archive.SessionID,
		archive.StoragePath,
		archive.MessageCount,
	).Scan(&archive.CreatedAt)
}

// ListBySessionID returns the archives recorded for a session, newest first
func (r *ArchiveRepository) ListBySessionID(ctx context.Context, sessionID string) ([]*models.SessionArchive, error) {
	query := `
		SELECT id, session_id, storage_path, message_count, created_at
		FROM session_archives
		WHERE session_id = $1
		ORDER BY created_at DESC`

	rows, err := r.db.Query(ctx, query, sessionID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var archives []*models.SessionArchive
	for rows.Next() {
		a := &models.SessionArchive{}
		err := rows.Scan(&a.ID, &a.SessionID, &a.StoragePath, &a.MessageCount, &a.CreatedAt)
		if err != nil {
			return nil, err
		}
		archives = append(archives, a)
	}

	return archives, rows.Err()
}
