package shared

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tekmux/gatelab/internal/platform/logger"
)

func TestRespondWithJSON(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/test", nil)
	w := httptest.NewRecorder()

	RespondWithJSON(w, req, http.StatusCreated, map[string]interface{}{"placed": true})

	assert.Equal(t, http.StatusCreated, w.Code)
	assert.Equal(t, "application/json", w.Header().Get("Content-Type"))
	assert.JSONEq(t, `{"placed":true}`, w.Body.String())
}

func TestRespondWithJSONEncodingError(t *testing.T) {
	log, buf := logger.GetTestLogger(t)
	req := httptest.NewRequest(http.MethodGet, "/test", nil)
	req = req.WithContext(logger.WithLogger(req.Context(), log))
	w := httptest.NewRecorder()

	RespondWithJSON(w, req, http.StatusOK, map[string]interface{}{"bad": make(chan int)})

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, buf.String(), "failed to encode JSON response")
}

func TestRespondWithErrorAndLog(t *testing.T) {
	tests := []struct {
		name      string
		status    int
		err       error
		elevate   bool
		wantLevel string
	}{
		{name: "server error", status: http.StatusInternalServerError, err: errors.New("boom"), wantLevel: "ERROR"},
		{name: "client error", status: http.StatusBadRequest, err: errors.New("bad kind"), wantLevel: "DEBUG"},
		{name: "elevated client error", status: http.StatusUnauthorized, err: errors.New("bad token"), elevate: true, wantLevel: "WARN"},
		{name: "rate limited", status: http.StatusTooManyRequests, wantLevel: "WARN"},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			log, buf := logger.GetTestLogger(t)
			ctx := context.WithValue(context.Background(), TraceIDKey, "trace-1")
			ctx = logger.WithLogger(ctx, log)
			req := httptest.NewRequest(http.MethodGet, "/test", nil).WithContext(ctx)
			w := httptest.NewRecorder()

			var opts []ResponseOption
			if tc.elevate {
				opts = append(opts, WithElevatedLogLevel())
			}
			RespondWithErrorAndLog(w, req, tc.status, "safe message", tc.err, opts...)

			assert.Equal(t, tc.status, w.Code)
			var body ErrorResponse
			require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
			assert.Equal(t, "safe message", body.Error)
			assert.Equal(t, "trace-1", body.TraceID)

			entries, err := buf.GetLogEntries()
			require.NoError(t, err)
			require.Len(t, entries, 1)
			assert.Equal(t, tc.wantLevel, entries[0]["level"])
			assert.Equal(t, "trace-1", entries[0]["trace_id"])
			if tc.err != nil {
				assert.Contains(t, entries[0], "error_type")
			}
		})
	}
}

func TestRespondWithErrorAndLogRedactsDetails(t *testing.T) {
	log, buf := logger.GetTestLogger(t)
	req := httptest.NewRequest(http.MethodGet, "/test", nil)
	req = req.WithContext(logger.WithLogger(req.Context(), log))
	w := httptest.NewRecorder()

	RespondWithErrorAndLog(w, req, http.StatusInternalServerError, "Internal error",
		errors.New("open /var/lib/gatelab/state.json: permission denied"))

	assert.NotContains(t, w.Body.String(), "/var/lib")
	assert.NotContains(t, buf.String(), "/var/lib/gatelab")
}
