// Copyright (c) 2025-2026 HopeWorks Foundation
// SPDX-License-Identifier: GPL-3.0-or-later

package api

import (
	"net/http"
	"testing"
)

func TestCacheStats(t *testing.T) {
	_, h := testSetup(t)

	// A cached list populates the counters: one miss to fill, one hit.
	for i := 0; i < 2; i++ {
		req := newJSONRequest(t, http.MethodGet, "/api/admin/ideas", "", nil)
		if w := executeHandler(t, h.ideaResource().List, req); w.Code != http.StatusOK {
			t.Fatalf("priming the cache failed: %d", w.Code)
		}
	}

	req := newJSONRequest(t, http.MethodGet, "/api/admin/cache/stats", "", nil)
	w := executeHandler(t, h.CacheStats, req)

	if w.Code != http.StatusOK {
		t.Fatalf("status = %d; want 200; body: %s", w.Code, w.Body.String())
	}
	body := unmarshalBody(t, w)
	if body["hits"] != float64(1) {
		t.Errorf("hits = %v; want 1", body["hits"])
	}
	if body["misses"] != float64(1) {
		t.Errorf("misses = %v; want 1", body["misses"])
	}
	if body["items"] != float64(1) {
		t.Errorf("items = %v; want 1", body["items"])
	}
}
