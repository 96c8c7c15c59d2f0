package storage

import (
	"context"
	"fmt"
	"time"

	"zombiezen.com/go/sqlite"
	"zombiezen.com/go/sqlite/sqlitex"
)

// messageTimeFormat matches SQLite's datetime('now') output, which is
// UTC with second resolution.
const messageTimeFormat = "2006-01-02 15:04:05"

// Message is one contact-form submission.
type Message struct {
	ID        int64
	Name      string
	Email     string
	Subject   string
	Body      string
	Read      bool
	CreatedAt time.Time
}

// MessageRepository persists contact-form messages. All queries are
// parameterized single statements.
type MessageRepository struct {
	db *DB
}

// NewMessageRepository creates a repository over the given database.
func NewMessageRepository(db *DB) *MessageRepository {
	return &MessageRepository{db: db}
}

const messageColumns = "id, name, email, subject, message, read, created_at"

// Create inserts a message and returns the stored row, including the
// generated ID and the database-assigned creation time.
func (r *MessageRepository) Create(ctx context.Context, name, email, subject, body string) (Message, error) {
	conn, err := r.db.Take(ctx)
	if err != nil {
		return Message{}, err
	}
	defer r.db.Put(conn)

	var msg Message
	var scanErr error
	err = sqlitex.Execute(conn,
		"INSERT INTO messages (name, email, subject, message) VALUES (?, ?, ?, ?) RETURNING "+messageColumns,
		&sqlitex.ExecOptions{
			Args: []any{name, email, subject, body},
			ResultFunc: func(stmt *sqlite.Stmt) error {
				msg, scanErr = scanMessage(stmt)
				return scanErr
			},
		})
	if err != nil {
		return Message{}, fmt.Errorf("storage: create message: %w", err)
	}
	return msg, nil
}

// Find returns the message with the given ID, or ErrMessageNotFound.
func (r *MessageRepository) Find(ctx context.Context, id int64) (Message, error) {
	conn, err := r.db.Take(ctx)
	if err != nil {
		return Message{}, err
	}
	defer r.db.Put(conn)

	var msg Message
	found := false
	err = sqlitex.Execute(conn,
		"SELECT "+messageColumns+" FROM messages WHERE id = ?",
		&sqlitex.ExecOptions{
			Args: []any{id},
			ResultFunc: func(stmt *sqlite.Stmt) error {
				var scanErr error
				msg, scanErr = scanMessage(stmt)
				found = scanErr == nil
				return scanErr
			},
		})
	if err != nil {
		return Message{}, fmt.Errorf("storage: find message %d: %w", id, err)
	}
	if !found {
		return Message{}, ErrMessageNotFound
	}
	return msg, nil
}

// FindAll returns every message, newest first.
func (r *MessageRepository) FindAll(ctx context.Context) ([]Message, error) {
	conn, err := r.db.Take(ctx)
	if err != nil {
		return nil, err
	}
	defer r.db.Put(conn)

	var messages []Message
	err = sqlitex.Execute(conn,
		"SELECT "+messageColumns+" FROM messages ORDER BY created_at DESC, id DESC",
		&sqlitex.ExecOptions{
			ResultFunc: func(stmt *sqlite.Stmt) error {
				msg, scanErr := scanMessage(stmt)
				if scanErr != nil {
					return scanErr
				}
				messages = append(messages, msg)
				return nil
			},
		})
	if err != nil {
		return nil, fmt.Errorf("storage: list messages: %w", err)
	}
	return messages, nil
}

// Count returns the total number of messages.
func (r *MessageRepository) Count(ctx context.Context) (int64, error) {
	return r.countWhere(ctx, "")
}

// CountUnread returns the number of messages not yet marked read.
func (r *MessageRepository) CountUnread(ctx context.Context) (int64, error) {
	return r.countWhere(ctx, "WHERE read = 0")
}

func (r *MessageRepository) countWhere(ctx context.Context, where string) (int64, error) {
	conn, err := r.db.Take(ctx)
	if err != nil {
		return 0, err
	}
	defer r.db.Put(conn)

	var count int64
	err = sqlitex.Execute(conn,
		"SELECT COUNT(*) FROM messages "+where,
		&sqlitex.ExecOptions{
			ResultFunc: func(stmt *sqlite.Stmt) error {
				count = stmt.ColumnInt64(0)
				return nil
			},
		})
	if err != nil {
		return 0, fmt.Errorf("storage: count messages: %w", err)
	}
	return count, nil
}

// UpdateReadStatus sets the read flag on a message. Returns
// ErrMessageNotFound when the ID does not exist.
func (r *MessageRepository) UpdateReadStatus(ctx context.Context, id int64, read bool) error {
	conn, err := r.db.Take(ctx)
	if err != nil {
		return err
	}
	defer r.db.Put(conn)

	readValue := 0
	if read {
		readValue = 1
	}

	err = sqlitex.Execute(conn,
		"UPDATE messages SET read = ? WHERE id = ?",
		&sqlitex.ExecOptions{Args: []any{readValue, id}})
	if err != nil {
		return fmt.Errorf("storage: update message %d: %w", id, err)
	}
	if conn.Changes() == 0 {
		return ErrMessageNotFound
	}
	return nil
}

// Delete removes a message. Returns ErrMessageNotFound when the ID does
// not exist.
func (r *MessageRepository) Delete(ctx context.Context, id int64) error {
	conn, err := r.db.Take(ctx)
	if err != nil {
		return err
	}
	defer r.db.Put(conn)

	err = sqlitex.Execute(conn,
		"DELETE FROM messages WHERE id = ?",
		&sqlitex.ExecOptions{Args: []any{id}})
	if err != nil {
		return fmt.Errorf("storage: delete message %d: %w", id, err)
	}
	if conn.Changes() == 0 {
		return ErrMessageNotFound
	}
	return nil
}

// scanMessage reads one messages row. Column order must match
// messageColumns.
func scanMessage(stmt *sqlite.Stmt) (Message, error) {
	createdAt, err := time.ParseInLocation(messageTimeFormat, stmt.ColumnText(6), time.UTC)
	if err != nil {
		return Message{}, fmt.Errorf("storage: parse created_at: %w", err)
	}

	return Message{
		ID:        stmt.ColumnInt64(0),
		Name:      stmt.ColumnText(1),
		Email:     stmt.ColumnText(2),
		Subject:   stmt.ColumnText(3),
		Body:      stmt.ColumnText(4),
		Read:      stmt.ColumnInt(5) != 0,
		CreatedAt: createdAt,
	}, nil
}
