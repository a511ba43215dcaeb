// Copyright 2026 Canonical Ltd.
// SPDX-License-Identifier: AGPL-3.0

package types

// TenantInfo is the tenant resolved from a request host.
// An empty Subdomain is the main deployment.
type TenantInfo struct {
	Subdomain    string `json:"subdomain"`
	DatabaseName string `json:"databaseName"`
	IsValid      bool   `json:"isValid"`
}

// Envelope is the JSON body every failure (and some successes) is reported with
type Envelope struct {
	Success bool   `json:"success"`
	Message string `json:"message,omitempty"`
	Error   string `json:"error,omitempty"`
}
