// Copyright 2026 Canonical Ltd.
// SPDX-License-Identifier: AGPL-3.0

package proxy

import (
	"encoding/json"
	"net/http"

	"github.com/canonical/webix-edge/internal/logging"
)

// failure is the envelope of every error produced by the proxies themselves
type failure struct {
	Success    bool   `json:"success"`
	Message    string `json:"message,omitempty"`
	Error      string `json:"error,omitempty"`
	BackendURL string `json:"backendUrl,omitempty"`
	Suggestion string `json:"suggestion,omitempty"`
}

func writeJSON(w http.ResponseWriter, status int, body any, logger logging.LoggerInterface) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)

	if err := json.NewEncoder(w).Encode(body); err != nil {
		logger.Errorf("failed to encode response: %v", err)
	}
}

// writeRaw relays a backend body byte for byte
func writeRaw(w http.ResponseWriter, status int, payload []byte, logger logging.LoggerInterface) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)

	if _, err := w.Write(payload); err != nil {
		logger.Errorf("failed to write response: %v", err)
	}
}
