// Copyright (c) 2025-2026 HopeWorks Foundation
// SPDX-License-Identifier: GPL-3.0-or-later

package store

import (
	"context"
	"database/sql"
	"time"

	"github.com/hopeworks/hopeworks-go/internal/model"
)

const eventColumns = "id, level, category, message, user_id, metadata, ip_address, created_at"

// CreateEventParams holds the fields for an audit log entry.
type CreateEventParams struct {
	Level     string
	Category  string
	Message   string
	UserID    sql.NullInt64
	Metadata  string
	IPAddress string
}

func scanEvent(row interface{ Scan(...any) error }) (model.Event, error) {
	var e model.Event
	err := row.Scan(&e.ID, &e.Level, &e.Category, &e.Message, &e.UserID,
		&e.Metadata, &e.IPAddress, &e.CreatedAt)
	return e, err
}

// CreateEvent inserts an audit log entry.
func (q *Queries) CreateEvent(ctx context.Context, arg CreateEventParams) (model.Event, error) {
	row := q.db.QueryRowContext(ctx, `
		INSERT INTO events (level, category, message, user_id, metadata, ip_address, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?)
		RETURNING `+eventColumns,
		arg.Level, arg.Category, arg.Message, arg.UserID, arg.Metadata, arg.IPAddress,
		time.Now())
	return scanEvent(row)
}

// ListEvents returns audit log entries, newest first, with pagination.
func (q *Queries) ListEvents(ctx context.Context, limit, offset int64) ([]model.Event, error) {
	rows, err := q.db.QueryContext(ctx, `
		SELECT `+eventColumns+` FROM events
		ORDER BY created_at DESC
		LIMIT ? OFFSET ?`, limit, offset)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var events []model.Event
	for rows.Next() {
		e, err := scanEvent(rows)
		if err != nil {
			return nil, err
		}
		events = append(events, e)
	}
	return events, rows.Err()
}

// CountEvents returns the total number of audit log entries.
func (q *Queries) CountEvents(ctx context.Context) (int64, error) {
	var n int64
	err := q.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM events`).Scan(&n)
	return n, err
}

// DeleteEventsBefore removes audit log entries created before the cutoff.
// Returns the number of rows removed.
func (q *Queries) DeleteEventsBefore(ctx context.Context, cutoff time.Time) (int64, error) {
	res, err := q.db.ExecContext(ctx, `DELETE FROM events WHERE created_at < ?`, cutoff)
	if err != nil {
		return 0, err
	}
	return res.RowsAffected()
}
