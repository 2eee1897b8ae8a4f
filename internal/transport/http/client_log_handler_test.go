package http

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	apierrors "github.com/Kirankkt/Complex-gannt/internal/errors"
	"github.com/Kirankkt/Complex-gannt/internal/shared/testutil"
)

func TestClientLogHandler(t *testing.T) {
	tests := []struct {
		name       string
		body       string
		wantStatus int
		wantLevel  slog.Level
		wantLogged string
	}{
		{
			name:       "error entry",
			body:       `{"level":"error","message":"render failed","source":"gantt.js","data":{"lanes":3}}`,
			wantStatus: http.StatusOK,
			wantLevel:  slog.LevelError,
			wantLogged: "render failed",
		},
		{
			name:       "level defaults to info",
			body:       `{"message":"connected"}`,
			wantStatus: http.StatusOK,
			wantLevel:  slog.LevelInfo,
			wantLogged: "connected",
		},
		{
			name:       "unknown level",
			body:       `{"level":"fatal","message":"x"}`,
			wantStatus: http.StatusBadRequest,
		},
		{
			name:       "missing message",
			body:       `{"level":"info"}`,
			wantStatus: http.StatusBadRequest,
		},
		{
			name:       "malformed json",
			body:       `{"level":`,
			wantStatus: http.StatusBadRequest,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			logger, logs := testutil.NewTestLogger(t)
			h := NewClientLogHandler(logger, apierrors.NewErrorHandler(logger, false))

			req := httptest.NewRequest(http.MethodPost, "/api/logs", strings.NewReader(tt.body))
			req.Header.Set("Content-Type", "application/json")
			rec := httptest.NewRecorder()
			h.Handle(rec, req)

			assert.Equal(t, tt.wantStatus, rec.Code)
			if tt.wantLogged == "" {
				var problem map[string]interface{}
				require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &problem))
				assert.Equal(t, apierrors.TypeValidation, problem["type"])
				return
			}

			records := logs.GetRecordsByLevel(tt.wantLevel)
			found := false
			for _, r := range records {
				if r.Message == tt.wantLogged {
					found = true
				}
			}
			assert.True(t, found, "expected %q at %s", tt.wantLogged, tt.wantLevel)
		})
	}
}
