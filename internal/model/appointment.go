// Copyright (c) 2025-2026 HopeWorks Foundation
// SPDX-License-Identifier: GPL-3.0-or-later

package model

import (
	"database/sql"
	"time"
)

// Appointment represents a contact/appointment request submitted through
// the public site. Browser and Country are recorded at submission time
// for the admin contact overview.
type Appointment struct {
	ID        int64
	Name      string
	Mobile    string
	Email     string
	Message   string
	Browser   sql.NullString
	OS        sql.NullString
	Country   sql.NullString
	CreatedAt time.Time
}
