// Copyright 2026 Canonical Ltd.
// SPDX-License-Identifier: AGPL-3.0

package proxy

import (
	"errors"
)

var (
	ErrNoFile                 = errors.New("no file uploaded")
	ErrFileTooLarge           = errors.New("file too large")
	ErrBodyTooLarge           = errors.New("request body too large")
	ErrBackendUnreachable     = errors.New("backend unreachable")
	ErrInvalidBackendResponse = errors.New("invalid response from backend")
)
