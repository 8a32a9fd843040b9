// Copyright (c) 2025-2026 HopeWorks Foundation
// SPDX-License-Identifier: GPL-3.0-or-later

package api

import (
	"net/http"
	"testing"

	"github.com/hopeworks/hopeworks-go/internal/model"
)

func TestJoinMembership_StartsAsNew(t *testing.T) {
	_, h := testSetup(t)

	req := newJSONRequest(t, http.MethodPost, "/api/memberships",
		`{"firstName": "Dana", "lastName": "Lee", "email": "dana@example.com", "interest": "volunteering"}`, nil)
	w := executeHandler(t, h.JoinMembership, req)

	if w.Code != http.StatusCreated {
		t.Fatalf("status = %d; want 201; body: %s", w.Code, w.Body.String())
	}

	body := unmarshalBody(t, w)
	if body["status"] != model.MembershipStatusNew {
		t.Errorf("status = %v; want New", body["status"])
	}
	if body["firstName"] != "Dana" {
		t.Errorf("firstName = %v; want Dana", body["firstName"])
	}
}

func TestJoinMembership_StatusCannotBeSmuggled(t *testing.T) {
	_, h := testSetup(t)

	// Unknown fields are rejected outright.
	req := newJSONRequest(t, http.MethodPost, "/api/memberships",
		`{"firstName": "Eve", "lastName": "Adams", "email": "eve@example.com", "status": "Approved"}`, nil)
	w := executeHandler(t, h.JoinMembership, req)

	if w.Code != http.StatusBadRequest {
		t.Fatalf("status = %d; want 400; body: %s", w.Code, w.Body.String())
	}
}

func TestJoinMembership_Validation(t *testing.T) {
	tests := []struct {
		name string
		body string
	}{
		{"missing first name", `{"lastName": "L", "email": "a@b.c"}`},
		{"missing last name", `{"firstName": "F", "email": "a@b.c"}`},
		{"missing email", `{"firstName": "F", "lastName": "L"}`},
		{"bad email", `{"firstName": "F", "lastName": "L", "email": "nope"}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, h := testSetup(t)

			req := newJSONRequest(t, http.MethodPost, "/api/memberships", tt.body, nil)
			w := executeHandler(t, h.JoinMembership, req)
			if w.Code != http.StatusBadRequest {
				t.Errorf("status = %d; want 400", w.Code)
			}
		})
	}
}

func TestUpdateMembership_StatusTransition(t *testing.T) {
	_, h := testSetup(t)

	req := newJSONRequest(t, http.MethodPost, "/api/memberships",
		`{"firstName": "Dana", "lastName": "Lee", "email": "dana@example.com"}`, nil)
	if w := executeHandler(t, h.JoinMembership, req); w.Code != http.StatusCreated {
		t.Fatalf("seeding membership failed: %d", w.Code)
	}

	// A bare status transition keeps everything else.
	req = newJSONRequest(t, http.MethodPut, "/api/admin/memberships/1",
		`{"status": "Approved"}`, map[string]string{"id": "1"})
	w := executeHandler(t, h.UpdateMembership, req)

	if w.Code != http.StatusOK {
		t.Fatalf("status = %d; want 200; body: %s", w.Code, w.Body.String())
	}
	body := unmarshalBody(t, w)
	if body["status"] != model.MembershipStatusApproved {
		t.Errorf("status = %v; want Approved", body["status"])
	}
	if body["firstName"] != "Dana" {
		t.Errorf("firstName = %v; want Dana (preserved)", body["firstName"])
	}
}

func TestUpdateMembership_InvalidStatusRejected(t *testing.T) {
	_, h := testSetup(t)

	req := newJSONRequest(t, http.MethodPost, "/api/memberships",
		`{"firstName": "Dana", "lastName": "Lee", "email": "dana@example.com"}`, nil)
	if w := executeHandler(t, h.JoinMembership, req); w.Code != http.StatusCreated {
		t.Fatalf("seeding membership failed: %d", w.Code)
	}

	req = newJSONRequest(t, http.MethodPut, "/api/admin/memberships/1",
		`{"status": "Pending"}`, map[string]string{"id": "1"})
	w := executeHandler(t, h.UpdateMembership, req)

	if w.Code != http.StatusUnprocessableEntity {
		t.Fatalf("status = %d; want 422; body: %s", w.Code, w.Body.String())
	}
	body := unmarshalBody(t, w)
	if body["error"] != "invalid status: Pending" {
		t.Errorf("error = %v; want invalid status: Pending", body["error"])
	}
}

func TestUpdateMembership_NotFound(t *testing.T) {
	_, h := testSetup(t)

	req := newJSONRequest(t, http.MethodPut, "/api/admin/memberships/42",
		`{"status": "Approved"}`, map[string]string{"id": "42"})
	w := executeHandler(t, h.UpdateMembership, req)

	if w.Code != http.StatusNotFound {
		t.Errorf("status = %d; want 404", w.Code)
	}
}
