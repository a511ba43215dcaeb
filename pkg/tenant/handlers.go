// Copyright 2026 Canonical Ltd.
// SPDX-License-Identifier: AGPL-3.0

package tenant

import (
	"encoding/json"
	"fmt"
	"net"
	"net/http"
	"regexp"
	"strings"

	"github.com/go-chi/chi/v5"

	"github.com/canonical/webix-edge/internal/logging"
	"github.com/canonical/webix-edge/internal/monitoring"
	"github.com/canonical/webix-edge/internal/tracing"
	"github.com/canonical/webix-edge/internal/types"
)

var subdomainPattern = regexp.MustCompile(`^[a-z0-9]([a-z0-9-]*[a-z0-9])?$`)

type API struct {
	resolver           ResolverInterface
	allowedSubdomains  []string
	notFoundPath       string
	licenseExpiredPath string

	tracer  tracing.TracingInterface
	monitor monitoring.MonitorInterface
	logger  logging.LoggerInterface
}

func (a *API) RegisterEndpoints(mux chi.Router) {
	mux.Get("/tenant", a.current)
	mux.Get("/tenant/switch", a.switchTenant)
	mux.Get(a.notFoundPath, a.notFound)
	mux.Get(a.licenseExpiredPath, a.licenseExpired)
}

func (a *API) current(w http.ResponseWriter, r *http.Request) {
	info, ok := FromContext(r.Context())
	if !ok {
		info = a.resolver.ResolveRequest(r)
	}

	a.writeJSON(w, http.StatusOK, info)
}

// switchTenant navigates the browser to another tenant, the new host triggers a
// fresh resolution on the next request
func (a *API) switchTenant(w http.ResponseWriter, r *http.Request) {
	_, span := a.tracer.Start(r.Context(), "tenant.API.switchTenant")
	defer span.End()

	subdomain := strings.ToLower(strings.TrimSpace(r.URL.Query().Get("subdomain")))

	if subdomain != "" && (subdomain == wwwLabel || !subdomainPattern.MatchString(subdomain)) {
		a.logger.Security().InputValidationFailure("subdomain", "malformed", logging.WithRequest(r.Host, r.URL.Path))
		a.writeJSON(w, http.StatusBadRequest, types.Envelope{Success: false, Message: "Invalid subdomain"})
		return
	}

	if len(a.allowedSubdomains) > 0 && !IsSubdomainAllowed(subdomain, a.allowedSubdomains) {
		a.logger.Security().AuthzFailure(r.Host, subdomain, logging.WithRequest(r.Host, r.URL.Path))
		a.writeJSON(w, http.StatusForbidden, types.Envelope{Success: false, Message: "Tenant is not allowed"})
		return
	}

	current, ok := FromContext(r.Context())
	if !ok {
		current = a.resolver.ResolveRequest(r)
	}

	http.Redirect(w, r, SwitchURL(r, current, subdomain, r.URL.Query().Get("next")), http.StatusFound)
}

func (a *API) notFound(w http.ResponseWriter, r *http.Request) {
	a.writeJSON(w, http.StatusNotFound, types.Envelope{Success: false, Message: "Tenant not found"})
}

func (a *API) licenseExpired(w http.ResponseWriter, r *http.Request) {
	a.writeJSON(w, http.StatusPaymentRequired, types.Envelope{Success: false, Message: "License expired"})
}

func (a *API) writeJSON(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)

	if err := json.NewEncoder(w).Encode(body); err != nil {
		a.logger.Errorf("failed to encode response: %v", err)
	}
}

// SwitchURL builds the absolute URL of next on the host serving subdomain, the
// current tenant label (or www) is replaced so that switching is idempotent
func SwitchURL(r *http.Request, current types.TenantInfo, subdomain, next string) string {
	host, port, err := net.SplitHostPort(r.Host)
	if err != nil {
		host, port = r.Host, ""
	}

	labels := strings.Split(strings.ToLower(host), ".")
	if len(labels) > 1 && (labels[0] == wwwLabel || (current.Subdomain != "" && labels[0] == current.Subdomain)) {
		labels = labels[1:]
	}

	if subdomain != "" {
		labels = append([]string{subdomain}, labels...)
	}

	host = strings.Join(labels, ".")
	if port != "" {
		host = net.JoinHostPort(host, port)
	}

	// only same-site relative paths, anything else lands on the home page
	if !strings.HasPrefix(next, "/") || strings.HasPrefix(next, "//") {
		next = "/"
	}

	return fmt.Sprintf("%s://%s%s", scheme(r), host, next)
}

func scheme(r *http.Request) string {
	if proto := r.Header.Get("X-Forwarded-Proto"); proto == "http" || proto == "https" {
		return proto
	}

	if r.TLS != nil {
		return "https"
	}

	return "http"
}

func NewAPI(
	resolver ResolverInterface,
	allowedSubdomains []string,
	notFoundPath string,
	licenseExpiredPath string,
	tracer tracing.TracingInterface,
	monitor monitoring.MonitorInterface,
	logger logging.LoggerInterface,
) *API {
	a := new(API)

	a.resolver = resolver
	a.allowedSubdomains = allowedSubdomains
	a.notFoundPath = notFoundPath
	a.licenseExpiredPath = licenseExpiredPath

	a.tracer = tracer
	a.monitor = monitor
	a.logger = logger

	return a
}
