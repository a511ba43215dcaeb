// Copyright 2026 Canonical Ltd.
// SPDX-License-Identifier: AGPL-3.0

package config

import (
	"errors"
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"
)

// Validate checks the EnvSpec once envconfig has filled it in, returning every
// failing field in a single error
func (s *EnvSpec) Validate() error {
	err := validator.New(validator.WithRequiredStructEnabled()).Struct(s)
	if err == nil {
		return nil
	}

	var validationErrors validator.ValidationErrors
	if !errors.As(err, &validationErrors) {
		return err
	}

	msgs := make([]string, 0, len(validationErrors))
	for _, e := range validationErrors {
		msgs = append(msgs, fmt.Sprintf("%s failed on %s", e.Field(), e.Tag()))
	}

	return fmt.Errorf("invalid configuration: %s", strings.Join(msgs, ", "))
}
