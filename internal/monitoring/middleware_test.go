// Copyright 2026 Canonical Ltd.
// SPDX-License-Identifier: AGPL-3.0

package monitoring

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/v5"
	"go.uber.org/mock/gomock"

	"github.com/canonical/webix-edge/internal/logging"
)

//go:generate mockgen -build_flags=--mod=mod -package monitoring -destination ./mock_monitor.go -source=./interfaces.go

func TestMiddlewareResponseTime(t *testing.T) {
	tests := []struct {
		name          string
		path          string
		expectedRoute string
		expectedCode  string
	}{
		{
			name:          "Wildcard route collapses",
			path:          "/api2/comics/12",
			expectedRoute: "GET/api2/*",
			expectedCode:  "200",
		},
		{
			name:          "Unmatched route",
			path:          "/nowhere",
			expectedRoute: "GETunmatched",
			expectedCode:  "404",
		},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			defer ctrl.Finish()

			mockMonitor := NewMockMonitorInterface(ctrl)
			mockMonitor.EXPECT().GetService().Return("webix-edge")
			mockMonitor.EXPECT().SetResponseTimeMetric(
				map[string]string{"route": test.expectedRoute, "status": test.expectedCode},
				gomock.Any(),
			).Return(nil)

			mux := chi.NewMux()
			mux.Use(NewMiddleware(mockMonitor, logging.NewNoopLogger()).ResponseTime())
			mux.Get("/api2/*", func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(http.StatusOK)
			})

			req := httptest.NewRequest(http.MethodGet, test.path, nil)
			rr := httptest.NewRecorder()

			mux.ServeHTTP(rr, req)
		})
	}
}
