package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/mattn/go-sqlite3"

	"github.com/Veraticus/show-me-the-data/internal/common"
	"github.com/Veraticus/show-me-the-data/internal/model"
)

// EventFilter narrows a listing. Nil fields match everything.
type EventFilter struct {
	Category *model.Category
	OwnerID  *string
	// Limit caps the result; zero means no limit.
	Limit int
}

const eventColumns = `id, event_type, customer_name, datetime, description, user_id, original_text, confidence, created_at`

// SaveEvent inserts a new event.
func (s *SQLiteStorage) SaveEvent(ctx context.Context, ev model.EventRecord) error {
	if err := validateContext(ctx); err != nil {
		return err
	}
	if err := validateEvent(ev); err != nil {
		return err
	}
	return s.saveEventTx(ctx, s.db, ev)
}

func (s *SQLiteStorage) saveEventTx(ctx context.Context, q queryable, ev model.EventRecord) error {
	_, err := q.ExecContext(ctx, `
		INSERT INTO events (`+eventColumns+`)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		*ev.ID,
		string(ev.Category),
		nullString(ev.SubjectName),
		nullString(ev.ScheduledAt),
		nullString(ev.Description),
		nullString(ev.OwnerID),
		ev.SourceText,
		ev.Confidence,
		ev.CreatedAt,
	)
	if err != nil {
		var sqliteErr sqlite3.Error
		if errors.As(err, &sqliteErr) && sqliteErr.Code == sqlite3.ErrConstraint {
			return fmt.Errorf("event %s: %w", *ev.ID, common.ErrDuplicateEntry)
		}
		return fmt.Errorf("failed to save event: %w", err)
	}
	return nil
}

// GetEvent returns the event with id, or common.ErrNotFound.
func (s *SQLiteStorage) GetEvent(ctx context.Context, id string) (model.EventRecord, error) {
	if err := validateContext(ctx); err != nil {
		return model.EventRecord{}, err
	}
	if err := validateString(id, "id"); err != nil {
		return model.EventRecord{}, err
	}

	row := s.db.QueryRowContext(ctx, `SELECT `+eventColumns+` FROM events WHERE id = ?`, id)
	ev, err := scanEvent(row)
	if errors.Is(err, sql.ErrNoRows) {
		return model.EventRecord{}, fmt.Errorf("event %s: %w", id, common.ErrNotFound)
	}
	if err != nil {
		return model.EventRecord{}, fmt.Errorf("failed to get event: %w", err)
	}
	return ev, nil
}

// ListEvents returns matching events, newest first.
func (s *SQLiteStorage) ListEvents(ctx context.Context, filter EventFilter) ([]model.EventRecord, error) {
	if err := validateContext(ctx); err != nil {
		return nil, err
	}
	if err := validateFilter(filter); err != nil {
		return nil, err
	}

	where, args := filter.clause()
	query := `SELECT ` + eventColumns + ` FROM events` + where + ` ORDER BY created_at DESC, rowid DESC`
	if filter.Limit > 0 {
		query += ` LIMIT ?`
		args = append(args, filter.Limit)
	}

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list events: %w", err)
	}
	defer func() { _ = rows.Close() }()

	events := []model.EventRecord{}
	for rows.Next() {
		ev, scanErr := scanEvent(rows)
		if scanErr != nil {
			return nil, fmt.Errorf("failed to scan event: %w", scanErr)
		}
		events = append(events, ev)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate events: %w", err)
	}
	return events, nil
}

// CountEvents returns the number of matching events, ignoring Limit.
func (s *SQLiteStorage) CountEvents(ctx context.Context, filter EventFilter) (int, error) {
	if err := validateContext(ctx); err != nil {
		return 0, err
	}
	if err := validateFilter(filter); err != nil {
		return 0, err
	}

	where, args := filter.clause()
	var count int
	if err := s.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM events`+where, args...).Scan(&count); err != nil {
		return 0, fmt.Errorf("failed to count events: %w", err)
	}
	return count, nil
}

// DeleteEvent removes the event with id, or returns common.ErrNotFound.
func (s *SQLiteStorage) DeleteEvent(ctx context.Context, id string) error {
	if err := validateContext(ctx); err != nil {
		return err
	}
	if err := validateString(id, "id"); err != nil {
		return err
	}

	res, err := s.db.ExecContext(ctx, `DELETE FROM events WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("failed to delete event: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to check deleted rows: %w", err)
	}
	if n == 0 {
		return fmt.Errorf("event %s: %w", id, common.ErrNotFound)
	}
	return nil
}

func (f EventFilter) clause() (string, []any) {
	var conds []string
	var args []any
	if f.Category != nil {
		conds = append(conds, "event_type = ?")
		args = append(args, string(*f.Category))
	}
	if f.OwnerID != nil {
		conds = append(conds, "user_id = ?")
		args = append(args, *f.OwnerID)
	}
	if len(conds) == 0 {
		return "", args
	}
	return " WHERE " + strings.Join(conds, " AND "), args
}

type scanner interface {
	Scan(dest ...any) error
}

func scanEvent(row scanner) (model.EventRecord, error) {
	var (
		ev                                     model.EventRecord
		id, category                           string
		subject, scheduled, description, owner sql.NullString
	)
	err := row.Scan(
		&id,
		&category,
		&subject,
		&scheduled,
		&description,
		&owner,
		&ev.SourceText,
		&ev.Confidence,
		&ev.CreatedAt,
	)
	if err != nil {
		return model.EventRecord{}, err
	}

	ev.ID = &id
	ev.Category = model.Category(category)
	ev.SubjectName = stringPtr(subject)
	ev.ScheduledAt = stringPtr(scheduled)
	ev.Description = stringPtr(description)
	ev.OwnerID = stringPtr(owner)
	return ev, nil
}

func nullString(s *string) sql.NullString {
	if s == nil {
		return sql.NullString{}
	}
	return sql.NullString{String: *s, Valid: true}
}

func stringPtr(ns sql.NullString) *string {
	if !ns.Valid {
		return nil
	}
	return &ns.String
}
