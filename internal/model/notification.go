// Copyright (c) 2025-2026 HopeWorks Foundation
// SPDX-License-Identifier: GPL-3.0-or-later

package model

import "time"

// Notification is a transient "new contact" feed entry for the admin
// shell. It only lives in memory between arrival and dismissal; the ID
// gives each delivery a stable identity so clients can acknowledge or
// de-duplicate if they choose to.
type Notification struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Email     string    `json:"email"`
	Subject   string    `json:"subject"`
	CreatedAt time.Time `json:"createdAt"`
}
