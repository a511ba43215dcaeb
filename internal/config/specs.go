// Copyright 2026 Canonical Ltd.
// SPDX-License-Identifier: AGPL-3.0

package config

import (
	"time"
)

// EnvSpec is the basic environment configuration setup needed for the app to start
type EnvSpec struct {
	OtelGRPCEndpoint string `envconfig:"otel_grpc_endpoint"`
	OtelHTTPEndpoint string `envconfig:"otel_http_endpoint"`
	TracingEnabled   bool   `envconfig:"tracing_enabled" default:"true"`

	LogLevel string `envconfig:"log_level" default:"error" validate:"oneof=debug info warn error DEBUG INFO WARN ERROR"`
	Debug    bool   `envconfig:"debug" default:"false"`

	Port int `envconfig:"port" default:"8080" validate:"gt=0,lt=65536"`

	// BackendURL is the base of the generic /api2 proxy
	BackendURL string `envconfig:"backend_url" default:"http://localhost:5000" validate:"required,url"`

	// UploadBackendURL is used by the upload proxy only when no subdomain is found on the host
	UploadBackendURL string `envconfig:"upload_backend_url" validate:"omitempty,url"`
	ProductionDomain string `envconfig:"production_domain" default:"webix.app" validate:"required,hostname"`
	ProductionScheme string `envconfig:"production_scheme" default:"https" validate:"oneof=http https"`
	LocalDomain      string `envconfig:"local_domain" default:"localhost" validate:"required"`

	TenantPrefix      string   `envconfig:"tenant_prefix" default:"webix" validate:"required"`
	MainDatabase      string   `envconfig:"main_database" default:"webix-main" validate:"required"`
	TenantMappingFile string   `envconfig:"tenant_mapping_file" validate:"omitempty,file"`
	AllowedSubdomains []string `envconfig:"allowed_subdomains"`

	NotFoundPath       string `envconfig:"not_found_path" default:"/not-found" validate:"startswith=/"`
	LicenseExpiredPath string `envconfig:"license_expired_path" default:"/license-expired" validate:"startswith=/"`

	RendererURL string `envconfig:"renderer_url" validate:"omitempty,url"`

	ProxyTimeout  time.Duration `envconfig:"proxy_timeout" default:"30s" validate:"gt=0"`
	UploadTimeout time.Duration `envconfig:"upload_timeout" default:"60s" validate:"gt=0"`
	MaxUploadSize int64         `envconfig:"max_upload_size" default:"10485760" validate:"gt=0"`

	CORSAllowedOrigins []string `envconfig:"cors_allowed_origins" default:"*"`
}
