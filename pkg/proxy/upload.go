// Copyright 2026 Canonical Ltd.
// SPDX-License-Identifier: AGPL-3.0

package proxy

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"net/textproto"
	"strconv"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/canonical/webix-edge/internal/logging"
	"github.com/canonical/webix-edge/internal/monitoring"
	"github.com/canonical/webix-edge/internal/tracing"
	"github.com/canonical/webix-edge/internal/types"
)

const (
	uploadField       = "image"
	uploadPath        = "/api2/upload/single"
	uploadComponent   = "upload-backend"
	multipartMaxMem   = 32 << 20
	defaultUploadMsg  = "Upload failed"
	multipartOverhead = 64 << 10
)

var quoteEscaper = strings.NewReplacer("\\", "\\\\", `"`, "\\\"")

// backendResult is the part of the backend upload response the proxy looks at
type backendResult struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
}

// Upload forwards a single multipart image to the backend picked by HostBackend
type Upload struct {
	backend       *HostBackend
	client        HTTPClientInterface
	timeout       time.Duration
	maxUploadSize int64

	tracer  tracing.TracingInterface
	monitor monitoring.MonitorInterface
	logger  logging.LoggerInterface
}

func (u *Upload) RegisterEndpoints(mux chi.Router) {
	mux.Get("/api/upload", u.available)
	mux.Post("/api/upload", u.upload)
}

func (u *Upload) available(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, types.Envelope{Success: true, Message: "Upload API is available"}, u.logger)
}

func (u *Upload) upload(w http.ResponseWriter, r *http.Request) {
	ctx, span := u.tracer.Start(r.Context(), "proxy.Upload.upload")
	defer span.End()

	body, contentType, err := u.rewrap(w, r)
	switch {
	case errors.Is(err, ErrFileTooLarge):
		writeJSON(w, http.StatusRequestEntityTooLarge, types.Envelope{Success: false, Message: "File too large"}, u.logger)
		return
	case err != nil:
		u.logger.Debugf("rejecting upload: %v", err)
		writeJSON(w, http.StatusBadRequest, types.Envelope{Success: false, Message: "No file uploaded"}, u.logger)
		return
	}

	target := u.backend.Target(r.Host)
	targetURL := target.BaseURL + uploadPath

	ctx, cancel := context.WithTimeout(ctx, u.timeout)
	defer cancel()

	status, payload, err := u.send(ctx, r, target, targetURL, body, contentType)
	if err != nil {
		u.logger.Errorf("upload to %s failed: %v", targetURL, err)
	}

	switch {
	case errors.Is(err, ErrBackendUnreachable):
		writeJSON(w, http.StatusInternalServerError, failure{
			Success:    false,
			Message:    fmt.Sprintf("Cannot connect to backend at %s", targetURL),
			Error:      err.Error(),
			BackendURL: targetURL,
			Suggestion: fmt.Sprintf("Make sure the backend is running and listening at %s", target.BaseURL),
		}, u.logger)
	case errors.Is(err, ErrInvalidBackendResponse):
		writeJSON(w, status, failure{
			Success: false,
			Message: "Invalid response from backend",
			Error:   err.Error(),
		}, u.logger)
	case err != nil:
		writeJSON(w, http.StatusInternalServerError, failure{Success: false, Message: defaultUploadMsg, Error: err.Error()}, u.logger)
	default:
		u.relay(w, status, payload)
	}
}

// relay passes successful uploads through untouched and normalises business failures
func (u *Upload) relay(w http.ResponseWriter, status int, payload []byte) {
	var result backendResult
	// payload was validated by send
	_ = json.Unmarshal(payload, &result)

	if result.Success {
		writeRaw(w, status, payload, u.logger)
		return
	}

	message := result.Message
	if message == "" {
		message = defaultUploadMsg
	}

	writeJSON(w, status, types.Envelope{Success: false, Message: message}, u.logger)
}

// send performs the single attempt towards the backend, the returned status is
// the backend one (500 when missing) and payload is guaranteed to be valid JSON
// when err is nil
func (u *Upload) send(ctx context.Context, r *http.Request, target Target, targetURL string, body io.Reader, contentType string) (int, []byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, targetURL, body)
	if err != nil {
		return http.StatusInternalServerError, nil, fmt.Errorf("%w: %v", ErrBackendUnreachable, err)
	}

	req.Header.Set("Content-Type", contentType)
	req.Header.Set("X-Original-Host", target.OriginalHost)
	req.Header.Set("X-Request-Id", requestID(r))
	if auth := r.Header.Get("Authorization"); auth != "" {
		req.Header.Set("Authorization", auth)
	}

	start := time.Now()
	res, err := u.client.Do(req)
	if err != nil {
		u.setAvailability(0)
		return http.StatusInternalServerError, nil, fmt.Errorf("%w: %v", ErrBackendUnreachable, err)
	}
	defer res.Body.Close()

	u.setAvailability(1)
	u.observe(res.StatusCode, time.Since(start))

	status := res.StatusCode
	if status == 0 {
		status = http.StatusInternalServerError
	}

	payload, err := io.ReadAll(res.Body)
	if err != nil {
		return status, nil, fmt.Errorf("%w: %v", ErrInvalidBackendResponse, err)
	}

	if !json.Valid(payload) {
		return status, nil, fmt.Errorf("%w: status %d with %d bytes of non JSON body", ErrInvalidBackendResponse, status, len(payload))
	}

	return status, payload, nil
}

// rewrap extracts the image part of the inbound form and copies it into a fresh
// multipart body under the same field name
func (u *Upload) rewrap(w http.ResponseWriter, r *http.Request) (io.Reader, string, error) {
	bodyLimit := u.maxUploadSize + multipartOverhead
	if r.ContentLength > bodyLimit {
		return nil, "", fmt.Errorf("%w: content length %d", ErrFileTooLarge, r.ContentLength)
	}

	r.Body = http.MaxBytesReader(w, r.Body, bodyLimit)

	if err := r.ParseMultipartForm(multipartMaxMem); err != nil {
		var maxBytesErr *http.MaxBytesError
		if errors.As(err, &maxBytesErr) {
			return nil, "", fmt.Errorf("%w: %v", ErrFileTooLarge, err)
		}
		return nil, "", fmt.Errorf("%w: %v", ErrNoFile, err)
	}
	defer r.MultipartForm.RemoveAll()

	file, header, err := r.FormFile(uploadField)
	if err != nil {
		return nil, "", fmt.Errorf("%w: %v", ErrNoFile, err)
	}
	defer file.Close()

	if header.Size > u.maxUploadSize {
		return nil, "", fmt.Errorf("%w: %s is %d bytes", ErrFileTooLarge, header.Filename, header.Size)
	}

	buf := new(bytes.Buffer)
	mw := multipart.NewWriter(buf)

	partType := header.Header.Get("Content-Type")
	if partType == "" {
		partType = "application/octet-stream"
	}

	h := make(textproto.MIMEHeader)
	h.Set("Content-Disposition", fmt.Sprintf(`form-data; name="%s"; filename="%s"`, uploadField, quoteEscaper.Replace(header.Filename)))
	h.Set("Content-Type", partType)

	part, err := mw.CreatePart(h)
	if err != nil {
		return nil, "", err
	}

	if _, err := io.Copy(part, file); err != nil {
		return nil, "", err
	}

	if err := mw.Close(); err != nil {
		return nil, "", err
	}

	return buf, mw.FormDataContentType(), nil
}

func (u *Upload) setAvailability(value float64) {
	if err := u.monitor.SetDependencyAvailability(map[string]string{"component": uploadComponent}, value); err != nil {
		u.logger.Debugf("error setting dependency metric: %v", err)
	}
}

func (u *Upload) observe(status int, elapsed time.Duration) {
	tags := map[string]string{
		"route":  "POST" + uploadPath,
		"status": strconv.Itoa(status),
	}

	if err := u.monitor.SetResponseTimeMetric(tags, elapsed.Seconds()); err != nil {
		u.logger.Debugf("error setting response time metric: %v", err)
	}
}

func NewUpload(
	backend *HostBackend,
	client HTTPClientInterface,
	timeout time.Duration,
	maxUploadSize int64,
	tracer tracing.TracingInterface,
	monitor monitoring.MonitorInterface,
	logger logging.LoggerInterface,
) *Upload {
	u := new(Upload)

	u.backend = backend
	u.client = client
	u.timeout = timeout
	u.maxUploadSize = maxUploadSize

	u.tracer = tracer
	u.monitor = monitor
	u.logger = logger

	return u
}
