// Copyright 2026 Canonical Ltd.
// SPDX-License-Identifier: AGPL-3.0

package tenant

import (
	"net/http"
	"strconv"
	"strings"

	"github.com/canonical/webix-edge/internal/logging"
	"github.com/canonical/webix-edge/internal/monitoring"
	"github.com/canonical/webix-edge/internal/tracing"
)

const (
	HeaderSubdomain = "X-Tenant-Subdomain"
	HeaderDatabase  = "X-Tenant-Database"
	HeaderValid     = "X-Tenant-Valid"
)

// paths starting with any of these never go through tenant resolution
var excludedPrefixes = []string{
	"/api",
	"/_next/static",
	"/favicon.ico",
}

type Middleware struct {
	resolver     ResolverInterface
	notFoundPath string

	tracer  tracing.TracingInterface
	monitor monitoring.MonitorInterface
	logger  logging.LoggerInterface
}

// HTTPMiddleware resolves the tenant of every navigational request, invalid tenants are
// redirected to the not found route before any page handler runs
func (m *Middleware) HTTPMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if m.excluded(r.URL.Path) {
			next.ServeHTTP(w, r)
			return
		}

		ctx, span := m.tracer.Start(r.Context(), "tenant.Middleware.HTTPMiddleware")
		defer span.End()

		info := m.resolver.ResolveRequest(r)

		r.Header.Set(HeaderSubdomain, info.Subdomain)
		r.Header.Set(HeaderDatabase, info.DatabaseName)
		r.Header.Set(HeaderValid, strconv.FormatBool(info.IsValid))

		if !info.IsValid {
			m.logger.Security().InputValidationFailure(
				"host",
				"tenant could not be resolved",
				logging.WithRequest(r.Host, r.URL.Path),
			)
			http.Redirect(w, r, m.notFoundPath, http.StatusTemporaryRedirect)
			return
		}

		next.ServeHTTP(w, r.WithContext(WithInfo(ctx, info)))
	})
}

func (m *Middleware) excluded(path string) bool {
	if path == m.notFoundPath {
		return true
	}

	// anything with an extension is a static file
	if strings.Contains(path, ".") {
		return true
	}

	for _, prefix := range excludedPrefixes {
		if strings.HasPrefix(path, prefix) {
			return true
		}
	}

	return false
}

func NewMiddleware(resolver ResolverInterface, notFoundPath string, tracer tracing.TracingInterface, monitor monitoring.MonitorInterface, logger logging.LoggerInterface) *Middleware {
	return &Middleware{
		resolver:     resolver,
		notFoundPath: notFoundPath,
		tracer:       tracer,
		monitor:      monitor,
		logger:       logger,
	}
}
