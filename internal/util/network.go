// Copyright (c) 2025-2026 HopeWorks Foundation
// SPDX-License-Identifier: GPL-3.0-or-later

package util

import (
	"net"
	"net/http"
	"strings"
)

// ClientIP extracts the client IP address from a request, preferring the
// values set by upstream proxies when present. RemoteAddr is the fallback.
func ClientIP(r *http.Request) string {
	// X-Forwarded-For may hold a comma-separated chain; the first entry
	// is the originating client.
	if fwd := r.Header.Get("X-Forwarded-For"); fwd != "" {
		parts := strings.Split(fwd, ",")
		if ip := strings.TrimSpace(parts[0]); ip != "" {
			return ip
		}
	}

	if rip := r.Header.Get("X-Real-IP"); rip != "" {
		return rip
	}

	host, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		return r.RemoteAddr
	}
	return host
}
