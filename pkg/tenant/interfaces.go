// Copyright 2026 Canonical Ltd.
// SPDX-License-Identifier: AGPL-3.0

package tenant

import (
	"net/http"

	"github.com/canonical/webix-edge/internal/types"
)

type ResolverInterface interface {
	// Resolve maps a host, optionally carrying a port, to its tenant
	Resolve(string) types.TenantInfo
	// ResolveURL parses a full URL and resolves its hostname, a parse failure yields an invalid tenant
	ResolveURL(string) types.TenantInfo
	// ResolveHeaders resolves the host value found in a header mapping
	ResolveHeaders(map[string][]string) types.TenantInfo
	// ResolveRequest resolves the absolute URL the request was made to
	ResolveRequest(*http.Request) types.TenantInfo
}
