// Copyright 2026 Canonical Ltd.
// SPDX-License-Identifier: AGPL-3.0

package pages

import (
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httputil"
	"net/url"

	"github.com/go-chi/chi/v5"

	"github.com/canonical/webix-edge/internal/logging"
	"github.com/canonical/webix-edge/internal/monitoring"
	"github.com/canonical/webix-edge/internal/tracing"
	"github.com/canonical/webix-edge/internal/types"
	"github.com/canonical/webix-edge/pkg/tenant"
)

const rendererComponent = "renderer"

// Page is returned for page routes when no renderer is configured
type Page struct {
	Path   string           `json:"path"`
	Tenant types.TenantInfo `json:"tenant"`
}

// API serves every route not claimed by another API, pages are produced by the
// external renderer and carry the tenant headers set by the edge middleware
type API struct {
	renderer *httputil.ReverseProxy
	resolver tenant.ResolverInterface

	tracer  tracing.TracingInterface
	monitor monitoring.MonitorInterface
	logger  logging.LoggerInterface
}

func (a *API) RegisterEndpoints(mux chi.Router) {
	mux.Get("/*", a.page)
	mux.Head("/*", a.page)
}

func (a *API) page(w http.ResponseWriter, r *http.Request) {
	ctx, span := a.tracer.Start(r.Context(), "pages.API.page")
	defer span.End()

	if a.renderer != nil {
		a.renderer.ServeHTTP(w, r.WithContext(ctx))
		return
	}

	info, ok := tenant.FromContext(ctx)
	if !ok {
		info = a.resolver.ResolveRequest(r)
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)

	if err := json.NewEncoder(w).Encode(Page{Path: r.URL.Path, Tenant: info}); err != nil {
		a.logger.Errorf("failed to encode page: %v", err)
	}
}

func (a *API) rewrite(target *url.URL) func(*httputil.ProxyRequest) {
	return func(pr *httputil.ProxyRequest) {
		pr.SetURL(target)
		pr.SetXForwarded()
		// the renderer resolves links against the public host
		pr.Out.Host = pr.In.Host
	}
}

func (a *API) modifyResponse(*http.Response) error {
	a.setAvailability(1)

	return nil
}

func (a *API) errorHandler(w http.ResponseWriter, r *http.Request, err error) {
	a.setAvailability(0)
	a.logger.Errorf("renderer request %s %s failed: %v", r.Method, r.URL.Path, err)

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusBadGateway)

	if err := json.NewEncoder(w).Encode(types.Envelope{Success: false, Message: "Renderer unavailable", Error: err.Error()}); err != nil {
		a.logger.Errorf("failed to encode response: %v", err)
	}
}

func (a *API) setAvailability(value float64) {
	if err := a.monitor.SetDependencyAvailability(map[string]string{"component": rendererComponent}, value); err != nil {
		a.logger.Debugf("error setting dependency metric: %v", err)
	}
}

// NewAPI proxies pages to rendererURL, an empty rendererURL makes page routes
// describe the resolved tenant instead
func NewAPI(
	rendererURL string,
	transport http.RoundTripper,
	resolver tenant.ResolverInterface,
	tracer tracing.TracingInterface,
	monitor monitoring.MonitorInterface,
	logger logging.LoggerInterface,
) (*API, error) {
	a := new(API)

	a.resolver = resolver

	a.tracer = tracer
	a.monitor = monitor
	a.logger = logger

	if rendererURL == "" {
		return a, nil
	}

	target, err := url.Parse(rendererURL)
	if err != nil {
		return nil, fmt.Errorf("invalid renderer url: %w", err)
	}

	if target.Scheme == "" || target.Host == "" {
		return nil, fmt.Errorf("invalid renderer url %q: scheme and host are required", rendererURL)
	}

	a.renderer = &httputil.ReverseProxy{
		Rewrite:        a.rewrite(target),
		Transport:      transport,
		ModifyResponse: a.modifyResponse,
		ErrorHandler:   a.errorHandler,
	}

	return a, nil
}
