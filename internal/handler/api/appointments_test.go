// Copyright (c) 2025-2026 HopeWorks Foundation
// SPDX-License-Identifier: GPL-3.0-or-later

package api

import (
	"net/http"
	"testing"
)

func TestCreateAppointment_PublishesNotification(t *testing.T) {
	db, h := testSetup(t)

	req := newJSONRequest(t, http.MethodPost, "/api/appointments",
		`{"name": "Alice", "mobile": "555-0100", "email": "alice@example.com", "message": "Need an appointment"}`, nil)
	req.Header.Set("User-Agent", "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/120.0.0.0 Safari/537.36")
	req.RemoteAddr = "192.168.1.50:12345"
	w := executeHandler(t, h.CreateAppointment, req)

	if w.Code != http.StatusCreated {
		t.Fatalf("status = %d; want 201; body: %s", w.Code, w.Body.String())
	}

	body := unmarshalBody(t, w)
	if body["name"] != "Alice" {
		t.Errorf("name = %v; want Alice", body["name"])
	}
	if body["browser"] == nil || body["browser"] == "" {
		t.Error("browser breakdown missing")
	}

	// The admin feed got exactly one notification.
	if got := h.hub.Len(); got != 1 {
		t.Fatalf("hub.Len() = %d; want 1", got)
	}
	n := h.hub.Snapshot()[0]
	if n.Name != "Alice" || n.Email != "alice@example.com" {
		t.Errorf("notification = %+v; want Alice's submission", n)
	}

	// The submission is on disk.
	var count int
	if err := db.QueryRow(`SELECT COUNT(*) FROM appointments`).Scan(&count); err != nil {
		t.Fatalf("count query failed: %v", err)
	}
	if count != 1 {
		t.Errorf("appointments table has %d rows; want 1", count)
	}
}

func TestCreateAppointment_EverySubmissionNotifies(t *testing.T) {
	_, h := testSetup(t)

	body := `{"name": "Alice", "mobile": "555-0100", "email": "alice@example.com", "message": "Same message"}`
	for i := 0; i < 3; i++ {
		req := newJSONRequest(t, http.MethodPost, "/api/appointments", body, nil)
		w := executeHandler(t, h.CreateAppointment, req)
		if w.Code != http.StatusCreated {
			t.Fatalf("status = %d; want 201", w.Code)
		}
	}

	// Identical submissions are not collapsed.
	if got := h.hub.Len(); got != 3 {
		t.Errorf("hub.Len() = %d; want 3", got)
	}
}

func TestCreateAppointment_MobileOptional(t *testing.T) {
	_, h := testSetup(t)

	req := newJSONRequest(t, http.MethodPost, "/api/appointments",
		`{"name": "Carol", "email": "carol@example.com", "message": "call me back"}`, nil)
	w := executeHandler(t, h.CreateAppointment, req)

	if w.Code != http.StatusCreated {
		t.Fatalf("status = %d; want 201; body: %s", w.Code, w.Body.String())
	}
	if got := h.hub.Len(); got != 1 {
		t.Errorf("hub.Len() = %d; want 1", got)
	}
}

func TestCreateAppointment_Validation(t *testing.T) {
	tests := []struct {
		name string
		body string
	}{
		{"missing name", `{"mobile": "1", "email": "a@b.c", "message": "m"}`},
		{"missing email", `{"name": "A", "mobile": "1", "message": "m"}`},
		{"bad email", `{"name": "A", "mobile": "1", "email": "not-an-email", "message": "m"}`},
		{"missing message", `{"name": "A", "mobile": "1", "email": "a@b.c"}`},
		{"not json", `name=A`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, h := testSetup(t)

			req := newJSONRequest(t, http.MethodPost, "/api/appointments", tt.body, nil)
			w := executeHandler(t, h.CreateAppointment, req)

			if w.Code != http.StatusBadRequest {
				t.Fatalf("status = %d; want 400; body: %s", w.Code, w.Body.String())
			}
			if h.hub.Len() != 0 {
				t.Error("rejected submission must not notify")
			}
		})
	}
}

func TestListAppointments_ClearsNotificationFeed(t *testing.T) {
	_, h := testSetup(t)

	// Two pending contact notifications.
	for i := 0; i < 2; i++ {
		req := newJSONRequest(t, http.MethodPost, "/api/appointments",
			`{"name": "Bob", "mobile": "555", "email": "bob@example.com", "message": "hi"}`, nil)
		executeHandler(t, h.CreateAppointment, req)
	}
	if h.hub.Len() != 2 {
		t.Fatalf("hub.Len() = %d; want 2", h.hub.Len())
	}

	// Opening the contacts screen acknowledges them.
	req := newJSONRequest(t, http.MethodGet, "/api/admin/appointments", "", nil)
	w := executeHandler(t, h.ListAppointments, req)

	if w.Code != http.StatusOK {
		t.Fatalf("status = %d; want 200", w.Code)
	}
	body := unmarshalBody(t, w)
	appointments, ok := body["appointments"].([]any)
	if !ok {
		t.Fatalf("response missing appointments envelope: %s", w.Body.String())
	}
	if len(appointments) != 2 {
		t.Errorf("got %d appointments; want 2", len(appointments))
	}

	if got := h.hub.Len(); got != 0 {
		t.Errorf("hub.Len() after list = %d; want 0", got)
	}
}

func TestDeleteAppointment(t *testing.T) {
	_, h := testSetup(t)

	req := newJSONRequest(t, http.MethodPost, "/api/appointments",
		`{"name": "Gone", "mobile": "555", "email": "gone@example.com", "message": "bye"}`, nil)
	w := executeHandler(t, h.CreateAppointment, req)
	if w.Code != http.StatusCreated {
		t.Fatalf("seeding appointment failed: %d", w.Code)
	}

	req = newJSONRequest(t, http.MethodDelete, "/api/admin/appointments/1", "",
		map[string]string{"id": "1"})
	w = executeHandler(t, h.DeleteAppointment, req)
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d; want 200; body: %s", w.Code, w.Body.String())
	}

	// Deleting again yields a 404.
	req = newJSONRequest(t, http.MethodDelete, "/api/admin/appointments/1", "",
		map[string]string{"id": "1"})
	w = executeHandler(t, h.DeleteAppointment, req)
	if w.Code != http.StatusNotFound {
		t.Errorf("status = %d; want 404", w.Code)
	}
}
