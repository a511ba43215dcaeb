// Copyright 2026 Canonical Ltd.
// SPDX-License-Identifier: AGPL-3.0

package web

import (
	"net/http"
	"time"

	chi "github.com/go-chi/chi/v5"
	middleware "github.com/go-chi/chi/v5/middleware"

	"github.com/canonical/webix-edge/internal/logging"
	"github.com/canonical/webix-edge/internal/monitoring"
	"github.com/canonical/webix-edge/internal/tracing"
	"github.com/canonical/webix-edge/pkg/metrics"
	"github.com/canonical/webix-edge/pkg/pages"
	"github.com/canonical/webix-edge/pkg/proxy"
	"github.com/canonical/webix-edge/pkg/status"
	"github.com/canonical/webix-edge/pkg/tenant"
)

// Config groups the routing options coming from the environment
type Config struct {
	AllowedOrigins     []string
	AllowedSubdomains  []string
	NotFoundPath       string
	LicenseExpiredPath string
	RendererURL        string
	ProxyTimeout       time.Duration
	UploadTimeout      time.Duration
	MaxUploadSize      int64
}

func NewRouter(
	cfg Config,
	resolver tenant.ResolverInterface,
	apiBackend *proxy.StaticBackend,
	uploadBackend *proxy.HostBackend,
	client *http.Client,
	tracer tracing.TracingInterface,
	monitor monitoring.MonitorInterface,
	logger logging.LoggerInterface,
) (http.Handler, error) {
	router := chi.NewMux()

	middlewares := make(chi.Middlewares, 0)
	middlewares = append(
		middlewares,
		middleware.RequestID,
		monitoring.NewMiddleware(monitor, logger).ResponseTime(),
		middlewareCORS(cfg.AllowedOrigins),
		tenant.NewMiddleware(resolver, cfg.NotFoundPath, tracer, monitor, logger).HTTPMiddleware,
	)

	router.Use(middlewares...)

	pagesAPI, err := pages.NewAPI(cfg.RendererURL, client.Transport, resolver, tracer, monitor, logger)
	if err != nil {
		return nil, err
	}

	metrics.NewAPI(logger).RegisterEndpoints(router)
	status.NewAPI(tracer, monitor, logger).RegisterEndpoints(router)
	tenant.NewAPI(resolver, cfg.AllowedSubdomains, cfg.NotFoundPath, cfg.LicenseExpiredPath, tracer, monitor, logger).RegisterEndpoints(router)
	// json bodies share the upload size cap
	proxy.NewAPI(apiBackend, client, cfg.ProxyTimeout, cfg.MaxUploadSize, tracer, monitor, logger).RegisterEndpoints(router)
	proxy.NewUpload(uploadBackend, client, cfg.UploadTimeout, cfg.MaxUploadSize, tracer, monitor, logger).RegisterEndpoints(router)
	pagesAPI.RegisterEndpoints(router)

	return tracing.NewMiddleware(monitor, logger).OpenTelemetry(router), nil
}
