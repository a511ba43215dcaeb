// Copyright 2026 Canonical Ltd.
// SPDX-License-Identifier: AGPL-3.0

package logging

import (
	"fmt"

	"go.uber.org/zap"
)

const (
	systemStartup          = "sys_startup"
	systemShutdown         = "sys_shutdown"
	inputValidationFailure = "input_validation_fail"
	authzFailure           = "authz_fail"
)

// Option adds a structured field to a security event
type Option func(*[]zap.Field)

func WithLabel(key, value string) Option {
	return func(fields *[]zap.Field) {
		*fields = append(*fields, zap.String(key, value))
	}
}

// WithRequest attaches the originating host and path to the event
func WithRequest(host, path string) Option {
	return func(fields *[]zap.Field) {
		*fields = append(*fields, zap.String("host", host), zap.String("path", path))
	}
}

// SecurityLogger emits events using the OWASP logging vocabulary
type SecurityLogger struct {
	l *zap.Logger
}

func (s *SecurityLogger) SystemStartup(opts ...Option) {
	s.log(systemStartup, "system startup", opts...)
}

func (s *SecurityLogger) SystemShutdown(opts ...Option) {
	s.log(systemShutdown, "system shutdown", opts...)
}

func (s *SecurityLogger) InputValidationFailure(field, reason string, opts ...Option) {
	s.log(
		fmt.Sprintf("%s:%s,%s", inputValidationFailure, field, reason),
		fmt.Sprintf("input validation failed on %s", field),
		opts...,
	)
}

func (s *SecurityLogger) AuthzFailure(subject, resource string, opts ...Option) {
	s.log(
		fmt.Sprintf("%s:%s,%s", authzFailure, subject, resource),
		fmt.Sprintf("%s is not allowed to access %s", subject, resource),
		opts...,
	)
}

func (s *SecurityLogger) log(event, description string, opts ...Option) {
	fields := []zap.Field{
		zap.String("event", event),
		zap.String("description", description),
	}

	for _, opt := range opts {
		opt(&fields)
	}

	s.l.Warn(description, fields...)
}

func newSecurityLogger(l *zap.Logger) *SecurityLogger {
	return &SecurityLogger{l: l}
}
