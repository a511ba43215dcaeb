// Copyright 2026 Canonical Ltd.
// SPDX-License-Identifier: AGPL-3.0

package proxy

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/canonical/webix-edge/internal/logging"
	"github.com/canonical/webix-edge/internal/monitoring"
	"github.com/canonical/webix-edge/internal/tracing"
)

const backendComponent = "backend"

var proxiedMethods = []string{
	http.MethodGet,
	http.MethodPost,
	http.MethodPut,
	http.MethodDelete,
	http.MethodPatch,
}

// API forwards /api2/* calls to <backend>/api/* keeping method, body, query and host
type API struct {
	backend     *StaticBackend
	client      HTTPClientInterface
	timeout     time.Duration
	maxBodySize int64

	tracer  tracing.TracingInterface
	monitor monitoring.MonitorInterface
	logger  logging.LoggerInterface
}

func (a *API) RegisterEndpoints(mux chi.Router) {
	for _, method := range proxiedMethods {
		mux.MethodFunc(method, "/api2/*", a.forward)
	}
}

func (a *API) forward(w http.ResponseWriter, r *http.Request) {
	ctx, span := a.tracer.Start(r.Context(), "proxy.API.forward")
	defer span.End()

	ctx, cancel := context.WithTimeout(ctx, a.timeout)
	defer cancel()

	target := a.backend.URL(chi.URLParam(r, "*"), r.URL.RawQuery)

	var body io.Reader = http.NoBody
	if carriesBody(r.Method) {
		payload, ok, err := optionalJSONBody(r.Body, a.maxBodySize)
		switch {
		case err != nil:
			a.logger.Debugf("rejecting %s %s: %v", r.Method, target, err)
			writeJSON(w, http.StatusRequestEntityTooLarge, failure{Success: false, Message: "Request body too large", Error: err.Error()}, a.logger)
			return
		case ok:
			body = bytes.NewReader(payload)
		default:
			a.logger.Debugf("forwarding %s %s without a body", r.Method, target)
		}
	}

	req, err := http.NewRequestWithContext(ctx, r.Method, target, body)
	if err != nil {
		a.logger.Errorf("failed to build backend request: %v", err)
		writeJSON(w, http.StatusInternalServerError, failure{Success: false, Error: err.Error()}, a.logger)
		return
	}

	// the backend runs its own tenant resolution on the original host
	req.Host = r.Host
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("X-Request-Id", requestID(r))
	for _, h := range []string{"Authorization", "Cookie"} {
		if v := r.Header.Get(h); v != "" {
			req.Header.Set(h, v)
		}
	}

	start := time.Now()
	res, err := a.client.Do(req)
	if err != nil {
		a.setAvailability(0)
		a.logger.Errorf("backend request %s %s failed: %v", r.Method, target, err)
		writeJSON(w, http.StatusInternalServerError, failure{Success: false, Error: err.Error()}, a.logger)
		return
	}
	defer res.Body.Close()

	a.setAvailability(1)
	a.observe(r.Method, res.StatusCode, time.Since(start))

	payload, err := io.ReadAll(res.Body)
	if err != nil {
		a.logger.Errorf("failed to read backend response: %v", err)
		writeJSON(w, http.StatusInternalServerError, failure{Success: false, Error: err.Error()}, a.logger)
		return
	}

	if !json.Valid(payload) {
		status := res.StatusCode
		if status == 0 {
			status = http.StatusInternalServerError
		}

		a.logger.Errorf("%v: %s %s answered %d with %d bytes", ErrInvalidBackendResponse, r.Method, target, res.StatusCode, len(payload))
		writeJSON(w, status, failure{Success: false, Error: "Invalid response from backend"}, a.logger)
		return
	}

	writeRaw(w, res.StatusCode, payload, a.logger)
}

func (a *API) setAvailability(value float64) {
	if err := a.monitor.SetDependencyAvailability(map[string]string{"component": backendComponent}, value); err != nil {
		a.logger.Debugf("error setting dependency metric: %v", err)
	}
}

func (a *API) observe(method string, status int, elapsed time.Duration) {
	tags := map[string]string{
		"route":  fmt.Sprintf("%s%s", method, "/backend/api/*"),
		"status": strconv.Itoa(status),
	}

	if err := a.monitor.SetResponseTimeMetric(tags, elapsed.Seconds()); err != nil {
		a.logger.Debugf("error setting response time metric: %v", err)
	}
}

func NewAPI(
	backend *StaticBackend,
	client HTTPClientInterface,
	timeout time.Duration,
	maxBodySize int64,
	tracer tracing.TracingInterface,
	monitor monitoring.MonitorInterface,
	logger logging.LoggerInterface,
) *API {
	a := new(API)

	a.backend = backend
	a.client = client
	a.timeout = timeout
	a.maxBodySize = maxBodySize

	a.tracer = tracer
	a.monitor = monitor
	a.logger = logger

	return a
}
