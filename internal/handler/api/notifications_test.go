// Copyright (c) 2025-2026 HopeWorks Foundation
// SPDX-License-Identifier: GPL-3.0-or-later

package api

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"
)

func TestListNotifications_EmptyFeed(t *testing.T) {
	_, h := testSetup(t)

	req := newJSONRequest(t, http.MethodGet, "/api/admin/notifications", "", nil)
	w := executeHandler(t, h.ListNotifications, req)

	if w.Code != http.StatusOK {
		t.Fatalf("status = %d; want 200", w.Code)
	}
	// Empty feed renders as an empty array, never null.
	if !strings.Contains(w.Body.String(), `"notifications":[]`) {
		t.Errorf("empty feed should be an empty array: %s", w.Body.String())
	}
}

func TestListNotifications_NewestFirst(t *testing.T) {
	_, h := testSetup(t)

	h.hub.Publish("First", "a@example.com", "one")
	h.hub.Publish("Second", "b@example.com", "two")

	req := newJSONRequest(t, http.MethodGet, "/api/admin/notifications", "", nil)
	w := executeHandler(t, h.ListNotifications, req)

	body := unmarshalBody(t, w)
	notifications := body["notifications"].([]any)
	if len(notifications) != 2 {
		t.Fatalf("got %d notifications; want 2", len(notifications))
	}
	first := notifications[0].(map[string]any)
	if first["name"] != "Second" {
		t.Errorf("first entry = %v; want the newest (Second)", first["name"])
	}
}

func TestClearNotifications(t *testing.T) {
	_, h := testSetup(t)

	h.hub.Publish("A", "a@example.com", "x")
	h.hub.Publish("B", "b@example.com", "y")

	req := newJSONRequest(t, http.MethodDelete, "/api/admin/notifications", "", nil)
	w := executeHandler(t, h.ClearNotifications, req)

	if w.Code != http.StatusOK {
		t.Fatalf("status = %d; want 200", w.Code)
	}
	if got := h.hub.Len(); got != 0 {
		t.Errorf("hub.Len() = %d; want 0", got)
	}
}

func TestStreamNotifications_DeliversEvent(t *testing.T) {
	_, h := testSetup(t)

	ctx, cancel := context.WithCancel(context.Background())
	req := httptest.NewRequest(http.MethodGet, "/api/admin/notifications/stream", nil).WithContext(ctx)
	w := httptest.NewRecorder()

	done := make(chan struct{})
	go func() {
		h.StreamNotifications(w, req)
		close(done)
	}()

	// Give the handler a moment to subscribe, then publish.
	deadline := time.After(2 * time.Second)
	for h.hub.Subscribers() == 0 {
		select {
		case <-deadline:
			t.Fatal("handler never subscribed")
		case <-time.After(10 * time.Millisecond):
		}
	}
	h.hub.Publish("Alice", "alice@example.com", "need help")

	// Give the event time to flush, then close the connection. The body is
	// only inspected after the handler returns.
	time.Sleep(200 * time.Millisecond)
	cancel()

	select {
	case <-done:
	case <-time.After(2 * time.Second):
		t.Fatal("handler did not return after context cancellation")
	}

	if got := w.Header().Get("Content-Type"); got != "text/event-stream" {
		t.Errorf("Content-Type = %q; want text/event-stream", got)
	}
	body := w.Body.String()
	if !strings.Contains(body, "event: newContact") {
		t.Errorf("event name missing: %q", body)
	}
	if !strings.Contains(body, `"name":"Alice"`) {
		t.Errorf("event payload missing sender: %q", body)
	}
	if !strings.Contains(body, "data: {") {
		t.Errorf("event missing data line: %q", body)
	}

	// The subscription was released.
	if got := h.hub.Subscribers(); got != 0 {
		t.Errorf("Subscribers() = %d; want 0 after disconnect", got)
	}
}
