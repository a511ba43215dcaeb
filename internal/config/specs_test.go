// Copyright 2026 Canonical Ltd.
// SPDX-License-Identifier: AGPL-3.0

package config

import (
	"strings"
	"testing"
	"time"

	"github.com/kelseyhightower/envconfig"
)

func TestEnvSpecDefaults(t *testing.T) {
	specs := new(EnvSpec)
	if err := envconfig.Process("", specs); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if specs.BackendURL != "http://localhost:5000" {
		t.Errorf("unexpected backend url %q", specs.BackendURL)
	}

	if specs.MainDatabase != "webix-main" || specs.TenantPrefix != "webix" {
		t.Errorf("unexpected tenant defaults %q %q", specs.MainDatabase, specs.TenantPrefix)
	}

	if specs.ProxyTimeout != 30*time.Second {
		t.Errorf("unexpected proxy timeout %v", specs.ProxyTimeout)
	}

	if err := specs.Validate(); err != nil {
		t.Errorf("expected defaults to validate, got %v", err)
	}
}

func TestEnvSpecFromEnvironment(t *testing.T) {
	t.Setenv("BACKEND_URL", "http://backend:8000")
	t.Setenv("ALLOWED_SUBDOMAINS", "acme,globex")
	t.Setenv("UPLOAD_TIMEOUT", "5s")

	specs := new(EnvSpec)
	if err := envconfig.Process("", specs); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if specs.BackendURL != "http://backend:8000" {
		t.Errorf("unexpected backend url %q", specs.BackendURL)
	}

	if len(specs.AllowedSubdomains) != 2 || specs.AllowedSubdomains[1] != "globex" {
		t.Errorf("unexpected allowed subdomains %v", specs.AllowedSubdomains)
	}

	if specs.UploadTimeout != 5*time.Second {
		t.Errorf("unexpected upload timeout %v", specs.UploadTimeout)
	}
}

func TestEnvSpecValidate(t *testing.T) {
	tests := []struct {
		name     string
		mutate   func(*EnvSpec)
		expected string
	}{
		{
			name:     "Invalid backend url",
			mutate:   func(s *EnvSpec) { s.BackendURL = "not a url" },
			expected: "BackendURL failed on url",
		},
		{
			name:     "Invalid scheme",
			mutate:   func(s *EnvSpec) { s.ProductionScheme = "ftp" },
			expected: "ProductionScheme failed on oneof",
		},
		{
			name:     "Relative not found path",
			mutate:   func(s *EnvSpec) { s.NotFoundPath = "not-found" },
			expected: "NotFoundPath failed on startswith",
		},
		{
			name:     "Zero timeout",
			mutate:   func(s *EnvSpec) { s.ProxyTimeout = 0 },
			expected: "ProxyTimeout failed on gt",
		},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			specs := new(EnvSpec)
			if err := envconfig.Process("", specs); err != nil {
				t.Fatalf("unexpected error: %v", err)
			}

			test.mutate(specs)

			err := specs.Validate()
			if err == nil {
				t.Fatalf("expected validation error")
			}

			if !strings.Contains(err.Error(), test.expected) {
				t.Errorf("expected error to contain %q, got %q", test.expected, err.Error())
			}
		})
	}
}
