package repository

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"studiolens/api/internal/models"
)

var ErrSessionNotFound = errors.New("session not found")

// SessionRepository persists each photo session as one JSONB document.
// Updates replace the whole document (last write wins); there is no
// field-level atomicity across concurrent writers.
type SessionRepository struct {
	pool *pgxpool.Pool
}

func NewSessionRepository(pool *pgxpool.Pool) *SessionRepository {
	return &SessionRepository{pool: pool}
}

func (r *SessionRepository) Create(ctx context.Context, session models.PhotoSession) error {
	doc, err := json.Marshal(session)
	if err != nil {
		return fmt.Errorf("marshal session: %w", err)
	}

	const query = `
		INSERT INTO photo_sessions (id, doc, created_at, updated_at)
		VALUES ($1, $2, $3, $4)
	`
	_, err = r.pool.Exec(ctx, query, session.ID, doc, session.CreatedAt, session.UpdatedAt)
	return err
}

func (r *SessionRepository) GetByID(ctx context.Context, id string) (models.PhotoSession, error) {
	const query = `SELECT doc FROM photo_sessions WHERE id = $1`
	return r.scanOne(r.pool.QueryRow(ctx, query, id))
}

// FindByAccessCode resolves the unique active session for a client-supplied
// code. The match is case-sensitive and inactive sessions are invisible.
func (r *SessionRepository) FindByAccessCode(ctx context.Context, accessCode string) (models.PhotoSession, error) {
	const query = `
		SELECT doc FROM photo_sessions
		WHERE doc->>'accessCode' = $1 AND (doc->>'isActive')::boolean
		LIMIT 1
	`
	return r.scanOne(r.pool.QueryRow(ctx, query, accessCode))
}

func (r *SessionRepository) Update(ctx context.Context, session models.PhotoSession) error {
	session.UpdatedAt = time.Now().UTC()

	doc, err := json.Marshal(session)
	if err != nil {
		return fmt.Errorf("marshal session: %w", err)
	}

	const query = `
		UPDATE photo_sessions
		SET doc = $2, updated_at = $3
		WHERE id = $1
	`
	cmd, err := r.pool.Exec(ctx, query, session.ID, doc, session.UpdatedAt)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return ErrSessionNotFound
	}
	return nil
}

func (r *SessionRepository) Delete(ctx context.Context, id string) error {
	const query = `DELETE FROM photo_sessions WHERE id = $1`
	cmd, err := r.pool.Exec(ctx, query, id)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return ErrSessionNotFound
	}
	return nil
}

func (r *SessionRepository) List(ctx context.Context) ([]models.PhotoSession, error) {
	const query = `SELECT doc FROM photo_sessions ORDER BY created_at DESC`

	rows, err := r.pool.Query(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var sessions []models.PhotoSession
	for rows.Next() {
		var doc []byte
		if err := rows.Scan(&doc); err != nil {
			return nil, err
		}
		var session models.PhotoSession
		if err := json.Unmarshal(doc, &session); err != nil {
			return nil, fmt.Errorf("unmarshal session: %w", err)
		}
		sessions = append(sessions, session)
	}
	return sessions, rows.Err()
}

func (r *SessionRepository) scanOne(row pgx.Row) (models.PhotoSession, error) {
	var doc []byte
	if err := row.Scan(&doc); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return models.PhotoSession{}, ErrSessionNotFound
		}
		return models.PhotoSession{}, err
	}

	var session models.PhotoSession
	if err := json.Unmarshal(doc, &session); err != nil {
		return models.PhotoSession{}, fmt.Errorf("unmarshal session: %w", err)
	}
	return session, nil
}
