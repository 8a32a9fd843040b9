// Copyright (c) 2025-2026 HopeWorks Foundation
// SPDX-License-Identifier: GPL-3.0-or-later

package store

import (
	"context"
	"database/sql"
	"time"

	"github.com/hopeworks/hopeworks-go/internal/model"
)

const membershipColumns = "id, first_name, last_name, email, mobile, interest, status, created_at, updated_at"

// CreateMembershipParams holds the fields for a new membership
// application. Status is always "New" on creation.
type CreateMembershipParams struct {
	FirstName string
	LastName  string
	Email     string
	Mobile    sql.NullString
	Interest  sql.NullString
}

// UpdateMembershipParams holds the fields for updating a membership.
type UpdateMembershipParams struct {
	ID        int64
	FirstName string
	LastName  string
	Email     string
	Mobile    sql.NullString
	Interest  sql.NullString
	Status    string
}

func scanMembership(row interface{ Scan(...any) error }) (model.Membership, error) {
	var m model.Membership
	err := row.Scan(&m.ID, &m.FirstName, &m.LastName, &m.Email, &m.Mobile,
		&m.Interest, &m.Status, &m.CreatedAt, &m.UpdatedAt)
	return m, err
}

// CreateMembership inserts a new membership application.
func (q *Queries) CreateMembership(ctx context.Context, arg CreateMembershipParams) (model.Membership, error) {
	now := time.Now()
	row := q.db.QueryRowContext(ctx, `
		INSERT INTO memberships (first_name, last_name, email, mobile, interest, status, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)
		RETURNING `+membershipColumns,
		arg.FirstName, arg.LastName, arg.Email, arg.Mobile, arg.Interest,
		model.MembershipStatusNew, now, now)
	return scanMembership(row)
}

// UpdateMembership replaces all membership fields and returns the updated record.
func (q *Queries) UpdateMembership(ctx context.Context, arg UpdateMembershipParams) (model.Membership, error) {
	row := q.db.QueryRowContext(ctx, `
		UPDATE memberships SET first_name = ?, last_name = ?, email = ?, mobile = ?,
			interest = ?, status = ?, updated_at = ?
		WHERE id = ?
		RETURNING `+membershipColumns,
		arg.FirstName, arg.LastName, arg.Email, arg.Mobile, arg.Interest, arg.Status,
		time.Now(), arg.ID)
	return scanMembership(row)
}

// GetMembershipByID returns a membership by primary key.
func (q *Queries) GetMembershipByID(ctx context.Context, id int64) (model.Membership, error) {
	row := q.db.QueryRowContext(ctx, `SELECT `+membershipColumns+` FROM memberships WHERE id = ?`, id)
	return scanMembership(row)
}

// ListMemberships returns all membership applications, newest first.
func (q *Queries) ListMemberships(ctx context.Context) ([]model.Membership, error) {
	rows, err := q.db.QueryContext(ctx, `SELECT `+membershipColumns+` FROM memberships ORDER BY created_at DESC`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var memberships []model.Membership
	for rows.Next() {
		m, err := scanMembership(rows)
		if err != nil {
			return nil, err
		}
		memberships = append(memberships, m)
	}
	return memberships, rows.Err()
}

// DeleteMembership removes a membership by primary key.
func (q *Queries) DeleteMembership(ctx context.Context, id int64) error {
	_, err := q.db.ExecContext(ctx, `DELETE FROM memberships WHERE id = ?`, id)
	return err
}
