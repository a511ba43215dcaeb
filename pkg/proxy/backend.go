// Copyright 2026 Canonical Ltd.
// SPDX-License-Identifier: AGPL-3.0

package proxy

import (
	"fmt"
	"strings"

	"github.com/canonical/webix-edge/pkg/tenant"
)

// The generic proxy and the upload proxy pick their backend in two different ways
// and are configured separately, a subdomain can end up on different backends
// depending on which of the two serves the call.

// StaticBackend always targets the same base URL, the backend is expected to
// resolve the tenant itself from the forwarded Host header
type StaticBackend struct {
	baseURL string
}

// URL joins the captured path under /api and appends the untouched raw query
func (b *StaticBackend) URL(path, rawQuery string) string {
	target := fmt.Sprintf("%s/api/%s", b.baseURL, strings.TrimPrefix(path, "/"))

	if rawQuery != "" {
		target = fmt.Sprintf("%s?%s", target, rawQuery)
	}

	return target
}

func NewStaticBackend(baseURL string) *StaticBackend {
	b := new(StaticBackend)
	b.baseURL = strings.TrimSuffix(baseURL, "/")

	return b
}

// Target is where an upload is sent and the host the backend should resolve the tenant from
type Target struct {
	BaseURL      string
	OriginalHost string
	Subdomain    string
}

// HostBackend derives the upload backend from the request host, a detected
// subdomain always targets its production host, local backends included
type HostBackend struct {
	productionDomain string
	scheme           string
	localDomain      string
	fallbackURL      string
}

func (b *HostBackend) Target(host string) Target {
	subdomain, local := b.subdomain(host)

	if subdomain == "" {
		base := b.fallbackURL
		if base == "" {
			base = fmt.Sprintf("%s://%s", b.scheme, b.productionDomain)
		}

		return Target{
			BaseURL:      base,
			OriginalHost: host,
		}
	}

	originalDomain := b.productionDomain
	if local {
		originalDomain = b.localDomain
	}

	return Target{
		BaseURL:      fmt.Sprintf("%s://%s.%s", b.scheme, subdomain, b.productionDomain),
		OriginalHost: fmt.Sprintf("%s.%s", subdomain, originalDomain),
		Subdomain:    subdomain,
	}
}

// subdomain returns the first label of hosts shaped like sub.domain.tld or sub.localhost
func (b *HostBackend) subdomain(host string) (string, bool) {
	hostname := strings.ToLower(tenant.StripPort(strings.TrimSpace(host)))
	local := strings.Contains(hostname, "localhost")

	labels := strings.Split(hostname, ".")
	if len(labels) < 2 {
		return "", local
	}

	first := labels[0]
	if first == "" || first == "www" || first == "localhost" {
		return "", local
	}

	if local || len(labels) >= 3 {
		return first, local
	}

	return "", local
}

func NewHostBackend(productionDomain, scheme, localDomain, fallbackURL string) *HostBackend {
	b := new(HostBackend)

	b.productionDomain = productionDomain
	b.scheme = scheme
	if b.scheme == "" {
		b.scheme = "https"
	}
	b.localDomain = localDomain
	if b.localDomain == "" {
		b.localDomain = "localhost"
	}
	b.fallbackURL = strings.TrimSuffix(fallbackURL, "/")

	return b
}
