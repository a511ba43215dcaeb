// Copyright 2026 Canonical Ltd.
// SPDX-License-Identifier: AGPL-3.0

package proxy

import (
	"net/http"
)

// HTTPClientInterface is the subset of *http.Client used to reach the backend
type HTTPClientInterface interface {
	Do(*http.Request) (*http.Response, error)
}
