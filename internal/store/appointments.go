// Copyright (c) 2025-2026 HopeWorks Foundation
// SPDX-License-Identifier: GPL-3.0-or-later

package store

import (
	"context"
	"database/sql"
	"time"

	"github.com/hopeworks/hopeworks-go/internal/model"
)

const appointmentColumns = "id, name, mobile, email, message, browser, os, country, created_at"

// CreateAppointmentParams holds the fields for a new contact/appointment request.
type CreateAppointmentParams struct {
	Name    string
	Mobile  string
	Email   string
	Message string
	Browser sql.NullString
	OS      sql.NullString
	Country sql.NullString
}

func scanAppointment(row interface{ Scan(...any) error }) (model.Appointment, error) {
	var a model.Appointment
	err := row.Scan(&a.ID, &a.Name, &a.Mobile, &a.Email, &a.Message,
		&a.Browser, &a.OS, &a.Country, &a.CreatedAt)
	return a, err
}

// CreateAppointment inserts a new appointment request.
func (q *Queries) CreateAppointment(ctx context.Context, arg CreateAppointmentParams) (model.Appointment, error) {
	row := q.db.QueryRowContext(ctx, `
		INSERT INTO appointments (name, mobile, email, message, browser, os, country, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)
		RETURNING `+appointmentColumns,
		arg.Name, arg.Mobile, arg.Email, arg.Message, arg.Browser, arg.OS, arg.Country,
		time.Now())
	return scanAppointment(row)
}

// GetAppointmentByID returns an appointment by primary key.
func (q *Queries) GetAppointmentByID(ctx context.Context, id int64) (model.Appointment, error) {
	row := q.db.QueryRowContext(ctx, `SELECT `+appointmentColumns+` FROM appointments WHERE id = ?`, id)
	return scanAppointment(row)
}

// ListAppointments returns all appointment requests, newest first.
func (q *Queries) ListAppointments(ctx context.Context) ([]model.Appointment, error) {
	rows, err := q.db.QueryContext(ctx, `SELECT `+appointmentColumns+` FROM appointments ORDER BY created_at DESC`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var appointments []model.Appointment
	for rows.Next() {
		a, err := scanAppointment(rows)
		if err != nil {
			return nil, err
		}
		appointments = append(appointments, a)
	}
	return appointments, rows.Err()
}

// DeleteAppointment removes an appointment by primary key.
func (q *Queries) DeleteAppointment(ctx context.Context, id int64) error {
	_, err := q.db.ExecContext(ctx, `DELETE FROM appointments WHERE id = ?`, id)
	return err
}

// DeleteAppointmentsBefore removes appointments created before the cutoff.
// Returns the number of rows removed.
func (q *Queries) DeleteAppointmentsBefore(ctx context.Context, cutoff time.Time) (int64, error) {
	res, err := q.db.ExecContext(ctx, `DELETE FROM appointments WHERE created_at < ?`, cutoff)
	if err != nil {
		return 0, err
	}
	return res.RowsAffected()
}
