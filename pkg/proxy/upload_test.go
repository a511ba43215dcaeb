// Copyright 2026 Canonical Ltd.
// SPDX-License-Identifier: AGPL-3.0

package proxy

import (
	"bytes"
	"encoding/json"
	"errors"
	"io"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"net/textproto"
	"strings"
	"sync/atomic"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	"go.uber.org/mock/gomock"

	"github.com/canonical/webix-edge/internal/logging"
	"github.com/canonical/webix-edge/internal/monitoring"
	"github.com/canonical/webix-edge/internal/tracing"
)

type uploadResponse struct {
	Success    bool   `json:"success"`
	Message    string `json:"message"`
	Error      string `json:"error"`
	BackendURL string `json:"backendUrl"`
	Suggestion string `json:"suggestion"`
	URL        string `json:"url"`
}

func newTestUpload(backend *HostBackend, client HTTPClientInterface, maxUploadSize int64) http.Handler {
	logger := logging.NewNoopLogger()

	upload := NewUpload(
		backend,
		client,
		time.Second,
		maxUploadSize,
		tracing.NewNoopTracer(),
		monitoring.NewNoopMonitor("webix-edge", logger),
		logger,
	)

	mux := chi.NewMux()
	upload.RegisterEndpoints(mux)

	return mux
}

func multipartRequest(t *testing.T, field, filename, contentType string, content []byte) *http.Request {
	t.Helper()

	buf := new(bytes.Buffer)
	mw := multipart.NewWriter(buf)

	h := make(textproto.MIMEHeader)
	h.Set("Content-Disposition", `form-data; name="`+field+`"; filename="`+filename+`"`)
	h.Set("Content-Type", contentType)

	part, err := mw.CreatePart(h)
	if err != nil {
		t.Fatalf("failed to create part: %v", err)
	}

	if _, err := part.Write(content); err != nil {
		t.Fatalf("failed to write part: %v", err)
	}

	if err := mw.WriteField("caption", "cover"); err != nil {
		t.Fatalf("failed to write field: %v", err)
	}

	if err := mw.Close(); err != nil {
		t.Fatalf("failed to close writer: %v", err)
	}

	req := httptest.NewRequest(http.MethodPost, "/api/upload", buf)
	req.Header.Set("Content-Type", mw.FormDataContentType())

	return req
}

func decodeUpload(t *testing.T, body io.Reader) uploadResponse {
	t.Helper()

	var res uploadResponse
	if err := json.NewDecoder(body).Decode(&res); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}

	return res
}

func TestUploadAvailable(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	req := httptest.NewRequest(http.MethodGet, "/api/upload", nil)
	rr := httptest.NewRecorder()

	newTestUpload(NewHostBackend("webix.app", "https", "localhost", ""), NewMockHTTPClientInterface(ctrl), 1<<20).ServeHTTP(rr, req)

	if rr.Code != http.StatusOK {
		t.Fatalf("expected status %d, got %d", http.StatusOK, rr.Code)
	}

	res := decodeUpload(t, rr.Body)
	if !res.Success || res.Message != "Upload API is available" {
		t.Errorf("unexpected response %+v", res)
	}
}

func TestUploadRejectsMissingFile(t *testing.T) {
	tests := []struct {
		name    string
		request func(t *testing.T) *http.Request
	}{
		{
			name: "Wrong field name",
			request: func(t *testing.T) *http.Request {
				return multipartRequest(t, "file", "cover.png", "image/png", []byte("png"))
			},
		},
		{
			name: "Not a multipart body",
			request: func(t *testing.T) *http.Request {
				req := httptest.NewRequest(http.MethodPost, "/api/upload", strings.NewReader(`{"image":"x"}`))
				req.Header.Set("Content-Type", "application/json")
				return req
			},
		},
		{
			name: "Empty body",
			request: func(t *testing.T) *http.Request {
				return httptest.NewRequest(http.MethodPost, "/api/upload", nil)
			},
		},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			var calls atomic.Int32
			backend := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				calls.Add(1)
			}))
			defer backend.Close()

			rr := httptest.NewRecorder()
			handler := newTestUpload(NewHostBackend("webix.app", "https", "localhost", backend.URL), backend.Client(), 1<<20)
			handler.ServeHTTP(rr, test.request(t))

			if rr.Code != http.StatusBadRequest {
				t.Fatalf("expected status %d, got %d", http.StatusBadRequest, rr.Code)
			}

			res := decodeUpload(t, rr.Body)
			if res.Success || res.Message != "No file uploaded" {
				t.Errorf("unexpected response %+v", res)
			}

			if calls.Load() != 0 {
				t.Errorf("expected backend not to be called, got %d calls", calls.Load())
			}
		})
	}
}

func TestUploadRejectsLargeFile(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockClient := NewMockHTTPClientInterface(ctrl)
	mockClient.EXPECT().Do(gomock.Any()).Times(0)

	req := multipartRequest(t, "image", "cover.png", "image/png", bytes.Repeat([]byte("a"), 4096))
	rr := httptest.NewRecorder()

	newTestUpload(NewHostBackend("webix.app", "https", "localhost", ""), mockClient, 512).ServeHTTP(rr, req)

	if rr.Code != http.StatusRequestEntityTooLarge {
		t.Fatalf("expected status %d, got %d", http.StatusRequestEntityTooLarge, rr.Code)
	}

	res := decodeUpload(t, rr.Body)
	if res.Success || res.Message != "File too large" {
		t.Errorf("unexpected response %+v", res)
	}
}

func TestUploadSizeLimit(t *testing.T) {
	const maxUploadSize = 4096

	tests := []struct {
		name           string
		fileSize       int
		expectedStatus int
		expectedCalls  int
	}{
		{
			name:           "File exactly at the limit",
			fileSize:       maxUploadSize,
			expectedStatus: http.StatusOK,
			expectedCalls:  1,
		},
		{
			name:           "File one byte under the limit",
			fileSize:       maxUploadSize - 1,
			expectedStatus: http.StatusOK,
			expectedCalls:  1,
		},
		{
			name:           "File one byte over the limit",
			fileSize:       maxUploadSize + 1,
			expectedStatus: http.StatusRequestEntityTooLarge,
		},
		{
			name:           "Body far beyond the multipart allowance",
			fileSize:       maxUploadSize + 128<<10,
			expectedStatus: http.StatusRequestEntityTooLarge,
		},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			defer ctrl.Finish()

			mockClient := NewMockHTTPClientInterface(ctrl)
			mockClient.EXPECT().Do(gomock.Any()).Times(test.expectedCalls).DoAndReturn(
				func(req *http.Request) (*http.Response, error) {
					return jsonResponse(http.StatusOK, `{"success":true}`), nil
				},
			)

			req := multipartRequest(t, "image", "cover.png", "image/png", bytes.Repeat([]byte("a"), test.fileSize))
			req.Host = "acme.webix.app"
			rr := httptest.NewRecorder()

			newTestUpload(NewHostBackend("webix.app", "https", "localhost", ""), mockClient, maxUploadSize).ServeHTTP(rr, req)

			if rr.Code != test.expectedStatus {
				t.Errorf("expected status %d, got %d", test.expectedStatus, rr.Code)
			}
		})
	}
}

func TestUploadBackendResponses(t *testing.T) {
	tests := []struct {
		name            string
		backendStatus   int
		backendBody     string
		expectedStatus  int
		expectedSuccess bool
		expectedMessage string
		expectedRaw     string
	}{
		{
			name:            "Success is relayed verbatim",
			backendStatus:   http.StatusOK,
			backendBody:     `{"success":true,"url":"https://cdn.webix.app/cover.png"}`,
			expectedStatus:  http.StatusOK,
			expectedSuccess: true,
			expectedRaw:     `{"success":true,"url":"https://cdn.webix.app/cover.png"}`,
		},
		{
			name:            "Business failure keeps the backend message",
			backendStatus:   http.StatusUnprocessableEntity,
			backendBody:     `{"success":false,"message":"Unsupported format","code":"E_FORMAT"}`,
			expectedStatus:  http.StatusUnprocessableEntity,
			expectedMessage: "Unsupported format",
		},
		{
			name:            "Business failure without message",
			backendStatus:   http.StatusBadRequest,
			backendBody:     `{"success":false}`,
			expectedStatus:  http.StatusBadRequest,
			expectedMessage: "Upload failed",
		},
		{
			name:            "Non JSON body",
			backendStatus:   http.StatusBadGateway,
			backendBody:     "<html>Bad Gateway</html>",
			expectedStatus:  http.StatusBadGateway,
			expectedMessage: "Invalid response from backend",
		},
		{
			name:            "Empty body",
			backendStatus:   http.StatusOK,
			backendBody:     "",
			expectedStatus:  http.StatusOK,
			expectedMessage: "Invalid response from backend",
		},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			backend := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				if r.URL.Path != "/api2/upload/single" {
					t.Errorf("unexpected upload path %s", r.URL.Path)
				}

				file, header, err := r.FormFile("image")
				if err != nil {
					t.Errorf("expected image part: %v", err)
				} else {
					defer file.Close()

					content, _ := io.ReadAll(file)
					if string(content) != "png-bytes" {
						t.Errorf("unexpected file content %q", string(content))
					}
					if header.Filename != "cover.png" {
						t.Errorf("expected filename cover.png, got %s", header.Filename)
					}
					if ct := header.Header.Get("Content-Type"); ct != "image/png" {
						t.Errorf("expected part content type image/png, got %s", ct)
					}
				}

				if r.Header.Get("Authorization") != "Bearer admin" {
					t.Errorf("expected authorization to be forwarded, got %q", r.Header.Get("Authorization"))
				}
				if r.Header.Get("X-Original-Host") != "localhost:3000" {
					t.Errorf("unexpected original host %s", r.Header.Get("X-Original-Host"))
				}

				w.WriteHeader(test.backendStatus)
				w.Write([]byte(test.backendBody))
			}))
			defer backend.Close()

			req := multipartRequest(t, "image", "cover.png", "image/png", []byte("png-bytes"))
			req.Host = "localhost:3000"
			req.Header.Set("Authorization", "Bearer admin")
			rr := httptest.NewRecorder()

			newTestUpload(NewHostBackend("webix.app", "https", "localhost", backend.URL), backend.Client(), 1<<20).ServeHTTP(rr, req)

			if rr.Code != test.expectedStatus {
				t.Fatalf("expected status %d, got %d", test.expectedStatus, rr.Code)
			}

			if test.expectedRaw != "" {
				if rr.Body.String() != test.expectedRaw {
					t.Errorf("expected raw body %q, got %q", test.expectedRaw, rr.Body.String())
				}
				return
			}

			res := decodeUpload(t, rr.Body)
			if res.Success != test.expectedSuccess {
				t.Errorf("expected success %v, got %v", test.expectedSuccess, res.Success)
			}
			if res.Message != test.expectedMessage {
				t.Errorf("expected message %q, got %q", test.expectedMessage, res.Message)
			}
		})
	}
}

func TestUploadBackendUnreachable(t *testing.T) {
	backend := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	backendURL := backend.URL
	backend.Close()

	req := multipartRequest(t, "image", "cover.png", "image/png", []byte("png-bytes"))
	req.Host = "localhost:3000"
	rr := httptest.NewRecorder()

	newTestUpload(NewHostBackend("webix.app", "https", "localhost", backendURL), http.DefaultClient, 1<<20).ServeHTTP(rr, req)

	if rr.Code != http.StatusInternalServerError {
		t.Fatalf("expected status %d, got %d", http.StatusInternalServerError, rr.Code)
	}

	res := decodeUpload(t, rr.Body)
	if res.Success {
		t.Errorf("expected failure envelope")
	}

	target := backendURL + "/api2/upload/single"
	if res.Message != "Cannot connect to backend at "+target {
		t.Errorf("unexpected message %q", res.Message)
	}
	if res.BackendURL != target {
		t.Errorf("expected backendUrl %s, got %s", target, res.BackendURL)
	}
	if res.Error == "" || res.Suggestion == "" {
		t.Errorf("expected error and suggestion, got %+v", res)
	}
}

func TestUploadTargetsSubdomainBackend(t *testing.T) {
	tests := []struct {
		name                 string
		host                 string
		auth                 string
		expectedURL          string
		expectedOriginalHost string
	}{
		{
			name:                 "Production subdomain",
			host:                 "acme.webix.app",
			auth:                 "Bearer t",
			expectedURL:          "https://acme.webix.app/api2/upload/single",
			expectedOriginalHost: "acme.webix.app",
		},
		{
			name:                 "Local subdomain targets production",
			host:                 "acme.localhost:3000",
			expectedURL:          "https://acme.webix.app/api2/upload/single",
			expectedOriginalHost: "acme.localhost",
		},
		{
			name:                 "Apex falls back to the default backend",
			host:                 "webix.app",
			expectedURL:          "https://webix.app/api2/upload/single",
			expectedOriginalHost: "webix.app",
		},
		{
			name:                 "www falls back to the default backend",
			host:                 "www.webix.app",
			expectedURL:          "https://webix.app/api2/upload/single",
			expectedOriginalHost: "www.webix.app",
		},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			defer ctrl.Finish()

			mockClient := NewMockHTTPClientInterface(ctrl)
			mockClient.EXPECT().Do(gomock.Any()).DoAndReturn(
				func(req *http.Request) (*http.Response, error) {
					if req.URL.String() != test.expectedURL {
						t.Errorf("expected url %s, got %s", test.expectedURL, req.URL.String())
					}
					if req.Header.Get("X-Original-Host") != test.expectedOriginalHost {
						t.Errorf("expected original host %s, got %s", test.expectedOriginalHost, req.Header.Get("X-Original-Host"))
					}
					if req.Header.Get("Authorization") != test.auth {
						t.Errorf("expected authorization %q, got %q", test.auth, req.Header.Get("Authorization"))
					}
					if !strings.HasPrefix(req.Header.Get("Content-Type"), "multipart/form-data; boundary=") {
						t.Errorf("unexpected content type %s", req.Header.Get("Content-Type"))
					}

					return jsonResponse(http.StatusOK, `{"success":true}`), nil
				},
			)

			req := multipartRequest(t, "image", "cover.png", "image/png", []byte("png-bytes"))
			req.Host = test.host
			if test.auth != "" {
				req.Header.Set("Authorization", test.auth)
			}
			rr := httptest.NewRecorder()

			newTestUpload(NewHostBackend("webix.app", "https", "localhost", ""), mockClient, 1<<20).ServeHTTP(rr, req)

			if rr.Code != http.StatusOK {
				t.Errorf("expected status %d, got %d", http.StatusOK, rr.Code)
			}
		})
	}
}

func TestUploadRecordsBackendAvailability(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockClient := NewMockHTTPClientInterface(ctrl)
	mockClient.EXPECT().Do(gomock.Any()).Return(nil, errors.New("connection refused"))

	mockMonitor := NewMockMonitorInterface(ctrl)
	mockMonitor.EXPECT().SetDependencyAvailability(map[string]string{"component": "upload-backend"}, float64(0)).Return(nil)

	logger := logging.NewNoopLogger()
	upload := NewUpload(
		NewHostBackend("webix.app", "https", "localhost", ""),
		mockClient,
		time.Second,
		1<<20,
		tracing.NewNoopTracer(),
		mockMonitor,
		logger,
	)

	mux := chi.NewMux()
	upload.RegisterEndpoints(mux)

	req := multipartRequest(t, "image", "cover.png", "image/png", []byte("png-bytes"))
	req.Host = "acme.webix.app"
	rr := httptest.NewRecorder()

	mux.ServeHTTP(rr, req)

	if rr.Code != http.StatusInternalServerError {
		t.Errorf("expected status %d, got %d", http.StatusInternalServerError, rr.Code)
	}
}
