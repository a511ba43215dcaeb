// Copyright 2026 Canonical Ltd.
// SPDX-License-Identifier: AGPL-3.0

package tenant

import (
	"fmt"
	"os"
	"strings"

	"gopkg.in/yaml.v3"
)

// Mappings pins subdomains to partitions whose name does not follow the <prefix>-<subdomain> convention
type Mappings map[string]string

func (m Mappings) Lookup(subdomain string) (string, bool) {
	databaseName, ok := m[subdomain]
	return databaseName, ok
}

type mappingFile struct {
	Tenants map[string]string `yaml:"tenants"`
}

// ParseMappings reads a YAML document of the form
//
//	tenants:
//	  acme: acme-legacy-db
func ParseMappings(data []byte) (Mappings, error) {
	var f mappingFile
	if err := yaml.Unmarshal(data, &f); err != nil {
		return nil, fmt.Errorf("failed to parse tenant mappings: %w", err)
	}

	m := make(Mappings, len(f.Tenants))
	for subdomain, databaseName := range f.Tenants {
		subdomain = strings.ToLower(strings.TrimSpace(subdomain))
		databaseName = strings.TrimSpace(databaseName)

		if subdomain == "" || databaseName == "" {
			return nil, fmt.Errorf("tenant mapping %q -> %q has an empty side", subdomain, databaseName)
		}

		if subdomain == wwwLabel {
			return nil, fmt.Errorf("%q is reserved for the main deployment", wwwLabel)
		}

		m[subdomain] = databaseName
	}

	return m, nil
}

// LoadMappings reads the mapping table from path, an empty path yields an empty table
func LoadMappings(path string) (Mappings, error) {
	if path == "" {
		return Mappings{}, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read tenant mappings: %w", err)
	}

	return ParseMappings(data)
}
