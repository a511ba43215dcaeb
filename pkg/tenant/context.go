// Copyright 2026 Canonical Ltd.
// SPDX-License-Identifier: AGPL-3.0

package tenant

import (
	"context"

	"github.com/canonical/webix-edge/internal/types"
)

type contextKey struct{}

var tenantContextKey = contextKey{}

// WithInfo returns a new context carrying the tenant resolved for the request
func WithInfo(ctx context.Context, info types.TenantInfo) context.Context {
	return context.WithValue(ctx, tenantContextKey, info)
}

// FromContext retrieves the tenant stored by the edge middleware.
// Returns the zero value and false if no tenant is present.
func FromContext(ctx context.Context) (types.TenantInfo, bool) {
	info, ok := ctx.Value(tenantContextKey).(types.TenantInfo)
	return info, ok
}
