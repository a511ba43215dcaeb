// Copyright 2026 Canonical Ltd.
// SPDX-License-Identifier: AGPL-3.0

package proxy

import (
	"encoding/json"
	"fmt"
	"io"
	"net/http"

	"github.com/go-chi/chi/v5/middleware"
	"github.com/google/uuid"
)

// optionalJSONBody returns the request body when it holds a JSON document, bodyless
// or malformed mutations are forwarded without a body instead of being rejected.
// Bodies above limit are never truncated, ErrBodyTooLarge is returned instead
func optionalJSONBody(body io.Reader, limit int64) ([]byte, bool, error) {
	if body == nil {
		return nil, false, nil
	}

	payload, err := io.ReadAll(io.LimitReader(body, limit+1))
	if err != nil {
		return nil, false, nil
	}

	if int64(len(payload)) > limit {
		return nil, false, fmt.Errorf("%w: more than %d bytes", ErrBodyTooLarge, limit)
	}

	if len(payload) == 0 || !json.Valid(payload) {
		return nil, false, nil
	}

	return payload, true, nil
}

func carriesBody(method string) bool {
	switch method {
	case http.MethodPost, http.MethodPut, http.MethodPatch:
		return true
	default:
		return false
	}
}

// requestID reuses the id assigned by the router so that both hops share it
func requestID(r *http.Request) string {
	if id := middleware.GetReqID(r.Context()); id != "" {
		return id
	}

	return uuid.NewString()
}
