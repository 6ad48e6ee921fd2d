package metrics

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tekmux/gatelab/internal/events"
)

func emit(t *testing.T, r *Recorder, typ string, payload interface{}) {
	t.Helper()
	e, err := events.NewSandboxEvent(typ, uuid.New(), payload)
	require.NoError(t, err)
	require.NoError(t, r.HandleEvent(context.Background(), e))
}

func TestRecorderCountsChecksByResult(t *testing.T) {
	r := NewRecorder(nil)

	emit(t, r, events.ChallengeChecked, events.ChallengePayload{ChallengeID: "1", Correct: true})
	emit(t, r, events.ChallengeChecked, events.ChallengePayload{ChallengeID: "1", Correct: false})
	emit(t, r, events.ChallengeChecked, events.ChallengePayload{ChallengeID: "1", Correct: false})

	assert.Equal(t, 1.0, testutil.ToFloat64(r.checks.WithLabelValues("1", "correct")))
	assert.Equal(t, 2.0, testutil.ToFloat64(r.checks.WithLabelValues("1", "incorrect")))
	assert.Equal(t, 3.0, testutil.ToFloat64(r.events.WithLabelValues(events.ChallengeChecked)))
}

func TestRecorderCountsPlacements(t *testing.T) {
	r := NewRecorder(nil)

	emit(t, r, events.GatePlaced, events.GatePayload{Workspace: "build", GateID: uuid.New(), Kind: "XOR"})
	emit(t, r, events.InputToggled, events.InputPayload{Workspace: "build", Input: "A", Value: true})

	assert.Equal(t, 1.0, testutil.ToFloat64(r.gatesPlaced.WithLabelValues("XOR", "build")))
	assert.Equal(t, 1.0, testutil.ToFloat64(r.events.WithLabelValues(events.InputToggled)))
}

func TestRecorderRejectsBadPayload(t *testing.T) {
	r := NewRecorder(nil)
	e := &events.SandboxEvent{Type: events.GatePlaced, Payload: []byte("{")}
	assert.Error(t, r.HandleEvent(context.Background(), e))
}

func TestRecorderHandlerServesMetrics(t *testing.T) {
	live := 3
	r := NewRecorder(func() int { return live })
	r.ObserveRequest("/api/sessions", http.MethodPost, http.StatusCreated, 5*time.Millisecond)

	rec := httptest.NewRecorder()
	r.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	require.Equal(t, http.StatusOK, rec.Code)

	body, err := io.ReadAll(rec.Body)
	require.NoError(t, err)
	assert.Contains(t, string(body), "gatelab_sandbox_live_sessions 3")
	assert.Contains(t, string(body), `gatelab_http_requests_total{code="201",method="POST",route="/api/sessions"} 1`)
	assert.Contains(t, string(body), "gatelab_http_request_duration_seconds_bucket")
}
