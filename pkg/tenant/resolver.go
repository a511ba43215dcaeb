// Copyright 2026 Canonical Ltd.
// SPDX-License-Identifier: AGPL-3.0

package tenant

import (
	"fmt"
	"net/http"
	"net/url"
	"slices"
	"strings"

	"github.com/canonical/webix-edge/internal/types"
)

const (
	DefaultPrefix       = "webix"
	DefaultMainDatabase = "webix-main"

	// invalidDatabaseName is deliberately different from the main partition so that
	// callers can tell a parse failure apart from a subdomain-less host
	invalidDatabaseName = "main"

	wwwLabel       = "www"
	localhostLabel = "localhost"
)

var _ ResolverInterface = (*Resolver)(nil)

// Resolver maps hostnames to tenants, it holds no mutable state and is safe for concurrent use
type Resolver struct {
	prefix       string
	mainDatabase string
	mappings     Mappings
}

func (r *Resolver) Resolve(host string) types.TenantInfo {
	hostname := strings.ToLower(StripPort(strings.TrimSpace(host)))

	labels := strings.Split(hostname, ".")
	if len(labels) < 2 {
		return r.main()
	}

	candidate := labels[0]
	if candidate == "" || candidate == wwwLabel {
		return r.main()
	}

	if databaseName, ok := r.mappings.Lookup(candidate); ok {
		return types.TenantInfo{
			Subdomain:    candidate,
			DatabaseName: databaseName,
			IsValid:      true,
		}
	}

	// any label in front of localhost is a tenant during development
	if strings.Contains(hostname, localhostLabel) {
		return r.derive(candidate)
	}

	if len(labels) >= 3 {
		return r.derive(candidate)
	}

	return r.main()
}

func (r *Resolver) ResolveURL(rawURL string) types.TenantInfo {
	u, err := url.Parse(rawURL)
	if err != nil || u.Hostname() == "" {
		return invalid()
	}

	return r.Resolve(u.Host)
}

func (r *Resolver) ResolveHeaders(headers map[string][]string) types.TenantInfo {
	for key, values := range headers {
		if strings.EqualFold(key, "host") && len(values) > 0 {
			return r.Resolve(values[0])
		}
	}

	return r.Resolve("")
}

func (r *Resolver) ResolveRequest(req *http.Request) types.TenantInfo {
	if req.Host == "" {
		return r.Resolve("")
	}

	scheme := "http"
	if req.TLS != nil {
		scheme = "https"
	}

	return r.ResolveURL(fmt.Sprintf("%s://%s%s", scheme, req.Host, req.URL.RequestURI()))
}

func (r *Resolver) main() types.TenantInfo {
	return types.TenantInfo{
		Subdomain:    "",
		DatabaseName: r.mainDatabase,
		IsValid:      true,
	}
}

func (r *Resolver) derive(subdomain string) types.TenantInfo {
	return types.TenantInfo{
		Subdomain:    subdomain,
		DatabaseName: DatabaseName(r.prefix, subdomain),
		IsValid:      true,
	}
}

func invalid() types.TenantInfo {
	return types.TenantInfo{
		Subdomain:    "",
		DatabaseName: invalidDatabaseName,
		IsValid:      false,
	}
}

// DatabaseName derives the partition name of a tenant that has no explicit mapping
func DatabaseName(prefix, subdomain string) string {
	return fmt.Sprintf("%s-%s", prefix, subdomain)
}

// IsSubdomainAllowed reports whether switching to subdomain is permitted, the main
// deployment is always allowed
func IsSubdomainAllowed(subdomain string, allowed []string) bool {
	if subdomain == "" {
		return true
	}

	return slices.Contains(allowed, subdomain)
}

// StripPort removes a trailing :port and the brackets of IPv6 literals
func StripPort(host string) string {
	i := strings.LastIndexByte(host, ':')
	if i != -1 && i > strings.LastIndexByte(host, ']') {
		host = host[:i]
	}

	return strings.TrimSuffix(strings.TrimPrefix(host, "["), "]")
}

func NewResolver(prefix, mainDatabase string, mappings Mappings) *Resolver {
	r := new(Resolver)

	r.prefix = prefix
	if r.prefix == "" {
		r.prefix = DefaultPrefix
	}

	r.mainDatabase = mainDatabase
	if r.mainDatabase == "" {
		r.mainDatabase = DefaultMainDatabase
	}

	r.mappings = mappings
	if r.mappings == nil {
		r.mappings = Mappings{}
	}

	return r
}
