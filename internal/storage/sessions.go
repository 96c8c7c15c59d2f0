package storage

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
	"zombiezen.com/go/sqlite"
	"zombiezen.com/go/sqlite/sqlitex"

	"github.com/dmitrymomot/portfolio/core/session"
)

// sessionTimeFormat is fixed-width UTC so stored timestamps compare
// chronologically as plain strings, which DeleteExpired relies on.
const sessionTimeFormat = "2006-01-02 15:04:05.000000000"

// SessionStore implements session.Store over the sessions table.
// Application data is serialized to a JSON column, so only exported
// fields of Data survive a round trip.
type SessionStore[Data any] struct {
	db *DB
}

// NewSessionStore creates a session store over the given database.
func NewSessionStore[Data any](db *DB) *SessionStore[Data] {
	return &SessionStore[Data]{db: db}
}

const sessionColumns = "id, token, user_id, ip, user_agent, data, expires_at, created_at, updated_at"

// Save upserts the session row keyed by session ID. Token rotation
// lands as an update on the same row, so stale tokens stop resolving
// immediately. IP and user agent are creation attributes and never
// change after insert.
func (s *SessionStore[Data]) Save(ctx context.Context, sess *session.Session[Data]) error {
	conn, err := s.db.Take(ctx)
	if err != nil {
		return err
	}
	defer s.db.Put(conn)

	data, err := json.Marshal(sess.Data)
	if err != nil {
		return fmt.Errorf("storage: marshal session data: %w", err)
	}

	var userID any
	if sess.UserID != uuid.Nil {
		userID = sess.UserID.String()
	}

	err = sqlitex.Execute(conn, `
		INSERT INTO sessions (`+sessionColumns+`)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(id) DO UPDATE SET
			token      = excluded.token,
			user_id    = excluded.user_id,
			data       = excluded.data,
			expires_at = excluded.expires_at,
			updated_at = excluded.updated_at`,
		&sqlitex.ExecOptions{
			Args: []any{
				sess.ID.String(),
				sess.Token,
				userID,
				sess.IP,
				sess.UserAgent,
				string(data),
				sess.ExpiresAt.UTC().Format(sessionTimeFormat),
				sess.CreatedAt.UTC().Format(sessionTimeFormat),
				sess.UpdatedAt.UTC().Format(sessionTimeFormat),
			},
		})
	if err != nil {
		return fmt.Errorf("storage: save session %s: %w", sess.ID, err)
	}
	return nil
}

// GetByID returns the session with the given ID, or session.ErrNotFound.
// Expiry is the manager's call; rows are returned as stored.
func (s *SessionStore[Data]) GetByID(ctx context.Context, id uuid.UUID) (*session.Session[Data], error) {
	return s.getWhere(ctx, "id = ?", id.String())
}

// GetByToken returns the session holding the given token, or
// session.ErrNotFound.
func (s *SessionStore[Data]) GetByToken(ctx context.Context, token string) (*session.Session[Data], error) {
	return s.getWhere(ctx, "token = ?", token)
}

func (s *SessionStore[Data]) getWhere(ctx context.Context, where string, arg any) (*session.Session[Data], error) {
	conn, err := s.db.Take(ctx)
	if err != nil {
		return nil, err
	}
	defer s.db.Put(conn)

	var sess *session.Session[Data]
	err = sqlitex.Execute(conn,
		"SELECT "+sessionColumns+" FROM sessions WHERE "+where,
		&sqlitex.ExecOptions{
			Args: []any{arg},
			ResultFunc: func(stmt *sqlite.Stmt) error {
				loaded, scanErr := scanSession[Data](stmt)
				if scanErr != nil {
					return scanErr
				}
				sess = loaded
				return nil
			},
		})
	if err != nil {
		return nil, fmt.Errorf("storage: load session: %w", err)
	}
	if sess == nil {
		return nil, session.ErrNotFound
	}
	return sess, nil
}

// Delete removes the session row. Deleting a missing session is not an
// error.
func (s *SessionStore[Data]) Delete(ctx context.Context, id uuid.UUID) error {
	conn, err := s.db.Take(ctx)
	if err != nil {
		return err
	}
	defer s.db.Put(conn)

	err = sqlitex.Execute(conn,
		"DELETE FROM sessions WHERE id = ?",
		&sqlitex.ExecOptions{Args: []any{id.String()}})
	if err != nil {
		return fmt.Errorf("storage: delete session %s: %w", id, err)
	}
	return nil
}

// DeleteExpired removes sessions whose expiry has passed and returns
// how many were deleted. Called from the background cleanup ticker.
func (s *SessionStore[Data]) DeleteExpired(ctx context.Context) (int64, error) {
	conn, err := s.db.Take(ctx)
	if err != nil {
		return 0, err
	}
	defer s.db.Put(conn)

	now := time.Now().UTC().Format(sessionTimeFormat)
	err = sqlitex.Execute(conn,
		"DELETE FROM sessions WHERE expires_at <= ?",
		&sqlitex.ExecOptions{Args: []any{now}})
	if err != nil {
		return 0, fmt.Errorf("storage: delete expired sessions: %w", err)
	}
	return int64(conn.Changes()), nil
}

// scanSession reads one sessions row. Column order must match
// sessionColumns.
func scanSession[Data any](stmt *sqlite.Stmt) (*session.Session[Data], error) {
	id, err := uuid.Parse(stmt.ColumnText(0))
	if err != nil {
		return nil, fmt.Errorf("storage: parse session id: %w", err)
	}

	userID := uuid.Nil
	if !stmt.ColumnIsNull(2) {
		userID, err = uuid.Parse(stmt.ColumnText(2))
		if err != nil {
			return nil, fmt.Errorf("storage: parse session user id: %w", err)
		}
	}

	var data Data
	if err := json.Unmarshal([]byte(stmt.ColumnText(5)), &data); err != nil {
		return nil, fmt.Errorf("storage: unmarshal session data: %w", err)
	}

	expiresAt, err := parseSessionTime(stmt.ColumnText(6))
	if err != nil {
		return nil, err
	}
	createdAt, err := parseSessionTime(stmt.ColumnText(7))
	if err != nil {
		return nil, err
	}
	updatedAt, err := parseSessionTime(stmt.ColumnText(8))
	if err != nil {
		return nil, err
	}

	return &session.Session[Data]{
		ID:        id,
		Token:     stmt.ColumnText(1),
		UserID:    userID,
		IP:        stmt.ColumnText(3),
		UserAgent: stmt.ColumnText(4),
		Data:      data,
		ExpiresAt: expiresAt,
		CreatedAt: createdAt,
		UpdatedAt: updatedAt,
	}, nil
}

func parseSessionTime(value string) (time.Time, error) {
	t, err := time.ParseInLocation(sessionTimeFormat, value, time.UTC)
	if err != nil {
		return time.Time{}, fmt.Errorf("storage: parse session time: %w", err)
	}
	return t, nil
}
