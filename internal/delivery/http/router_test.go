package http

import (
	"context"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	_ "zone37/docs"
	"zone37/internal/delivery/http/controllers"
	"zone37/internal/domain"

	"github.com/stretchr/testify/assert"
)

type okPinger struct{}

func (okPinger) PingContext(context.Context) error { return nil }

type stubVerifier struct {
	err error
}

func (v stubVerifier) Verify(string) (string, error) { return "user-1", v.err }

func newTestRouter(verifierErr error) http.Handler {
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	c := Controllers{
		Health:   controllers.NewHealthController(logger, okPinger{}),
		Games:    controllers.NewGameController(logger, nil),
		Pricing:  controllers.NewPricingController(logger, nil, nil),
		Factions: controllers.NewFactionController(logger, nil),
	}
	mux := NewRouter(c, stubVerifier{err: verifierErr}, logger)
	return NewHandler(mux, []string{"https://zone37.fr"}, logger)
}

func TestRouter(t *testing.T) {
	tests := []struct {
		name       string
		method     string
		path       string
		auth       string
		verifyErr  error
		wantStatus int
	}{
		{name: "health", method: http.MethodGet, path: "/health", wantStatus: http.StatusOK},
		{name: "public route validates ids", method: http.MethodGet, path: "/games/not-a-uuid/availability", wantStatus: http.StatusBadRequest},
		{name: "admin without token", method: http.MethodPost, path: "/admin/games", wantStatus: http.StatusUnauthorized},
		{name: "editor without token", method: http.MethodPost, path: "/admin/pricing/append", wantStatus: http.StatusUnauthorized},
		{name: "admin without role", method: http.MethodPut, path: "/admin/games/x/pricing", auth: "Bearer t", verifyErr: domain.ErrForbidden, wantStatus: http.StatusForbidden},
		{name: "admin reaches handler", method: http.MethodDelete, path: "/admin/games/not-a-uuid", auth: "Bearer t", wantStatus: http.StatusBadRequest},
		{name: "wrong method", method: http.MethodDelete, path: "/games", wantStatus: http.StatusMethodNotAllowed},
		{name: "preflight", method: http.MethodOptions, path: "/admin/games", wantStatus: http.StatusNoContent},
		{name: "openapi document", method: http.MethodGet, path: "/swagger/doc.json", wantStatus: http.StatusOK},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			handler := newTestRouter(tt.verifyErr)
			req := httptest.NewRequest(tt.method, tt.path, strings.NewReader(`{}`))
			req.Header.Set("Origin", "https://zone37.fr")
			if tt.auth != "" {
				req.Header.Set("Authorization", tt.auth)
			}
			rr := httptest.NewRecorder()

			handler.ServeHTTP(rr, req)

			assert.Equal(t, tt.wantStatus, rr.Code, rr.Body.String())
			assert.Equal(t, "https://zone37.fr", rr.Header().Get("Access-Control-Allow-Origin"))
			assert.NotEmpty(t, rr.Header().Get("X-Request-ID"))
		})
	}
}
