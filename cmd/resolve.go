// Copyright 2026 Canonical Ltd.
// SPDX-License-Identifier: AGPL-3.0

package cmd

import (
	"encoding/json"
	"strings"

	"github.com/spf13/cobra"

	"github.com/canonical/webix-edge/internal/config"
	"github.com/canonical/webix-edge/internal/types"
	"github.com/canonical/webix-edge/pkg/tenant"
)

var resolveCmd = &cobra.Command{
	Use:   "resolve <host-or-url>",
	Short: "Print the tenant a host or URL resolves to",
	Long:  `Resolve a host (acme.webix.app:443) or a full URL (https://acme.webix.app/comics) with the configured prefix and mapping file`,
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		specs, err := loadSpecs(envFile)
		if err != nil {
			return err
		}

		info, err := resolve(specs, args[0])
		if err != nil {
			return err
		}

		enc := json.NewEncoder(cmd.OutOrStdout())
		enc.SetIndent("", "  ")

		return enc.Encode(info)
	},
}

func init() {
	rootCmd.AddCommand(resolveCmd)
}

func resolve(specs *config.EnvSpec, target string) (types.TenantInfo, error) {
	mappings, err := tenant.LoadMappings(specs.TenantMappingFile)
	if err != nil {
		return types.TenantInfo{}, err
	}

	resolver := tenant.NewResolver(specs.TenantPrefix, specs.MainDatabase, mappings)

	if strings.Contains(target, "://") {
		return resolver.ResolveURL(target), nil
	}

	return resolver.Resolve(target), nil
}
