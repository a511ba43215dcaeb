// Copyright 2026 Canonical Ltd.
// SPDX-License-Identifier: AGPL-3.0

package cmd

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/canonical/webix-edge/internal/logging"
	"github.com/canonical/webix-edge/internal/monitoring/prometheus"
	"github.com/canonical/webix-edge/internal/tracing"
	"github.com/canonical/webix-edge/pkg/proxy"
	"github.com/canonical/webix-edge/pkg/tenant"
	"github.com/canonical/webix-edge/pkg/web"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "serve starts the web server",
	Long:  `Launch the edge server, list of environment variables is available in the readme`,
	RunE: func(cmd *cobra.Command, args []string) error {
		return serve()
	},
}

func init() {
	rootCmd.AddCommand(serveCmd)
}

func serve() error {
	specs, err := loadSpecs(envFile)
	if err != nil {
		return err
	}

	logger := logging.NewLogger(specs.LogLevel)
	logger.Debugf("env vars: %v", specs)
	defer logger.Sync()

	monitor := prometheus.NewMonitor("webix-edge", logger)
	tracer := tracing.NewTracer(tracing.NewConfig(specs.TracingEnabled, specs.OtelGRPCEndpoint, specs.OtelHTTPEndpoint, logger))

	mappings, err := tenant.LoadMappings(specs.TenantMappingFile)
	if err != nil {
		return fmt.Errorf("failed to load tenant mappings: %w", err)
	}
	logger.Infof("Loaded %d explicit tenant mappings", len(mappings))

	resolver := tenant.NewResolver(specs.TenantPrefix, specs.MainDatabase, mappings)

	// per call deadlines come from the proxies, the client itself has none
	client := &http.Client{Transport: tracing.NewTransport(nil)}

	router, err := web.NewRouter(
		web.Config{
			AllowedOrigins:     specs.CORSAllowedOrigins,
			AllowedSubdomains:  specs.AllowedSubdomains,
			NotFoundPath:       specs.NotFoundPath,
			LicenseExpiredPath: specs.LicenseExpiredPath,
			RendererURL:        specs.RendererURL,
			ProxyTimeout:       specs.ProxyTimeout,
			UploadTimeout:      specs.UploadTimeout,
			MaxUploadSize:      specs.MaxUploadSize,
		},
		resolver,
		proxy.NewStaticBackend(specs.BackendURL),
		proxy.NewHostBackend(specs.ProductionDomain, specs.ProductionScheme, specs.LocalDomain, specs.UploadBackendURL),
		client,
		tracer,
		monitor,
		logger,
	)
	if err != nil {
		return fmt.Errorf("failed to create router: %w", err)
	}

	logger.Infof("Starting HTTP server on port %v", specs.Port)

	srv := &http.Server{
		Addr:         fmt.Sprintf("0.0.0.0:%v", specs.Port),
		WriteTimeout: specs.UploadTimeout + time.Second*15,
		ReadTimeout:  time.Second * 15,
		IdleTimeout:  time.Second * 60,
		Handler:      router,
	}

	var serverError error
	c := make(chan os.Signal, 1)
	signal.Notify(c, os.Interrupt, syscall.SIGTERM)

	go func() {
		logger.Security().SystemStartup()
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serverError = fmt.Errorf("server error: %w", err)
			c <- os.Interrupt
		}
	}()

	<-c

	// Create a deadline to wait for.
	ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()

	logger.Security().SystemShutdown()
	if err := srv.Shutdown(ctx); err != nil {
		serverError = fmt.Errorf("server shutdown error: %w", err)
	}

	return serverError
}
