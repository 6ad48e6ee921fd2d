package api

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/tekmux/gatelab/internal/api/shared"
	"github.com/tekmux/gatelab/internal/domain"
	"github.com/tekmux/gatelab/internal/domain/logic"
	"github.com/tekmux/gatelab/internal/platform/logger"
	"github.com/tekmux/gatelab/internal/service/auth"
	"github.com/tekmux/gatelab/internal/service/sandbox"
)

// SessionHandler serves session creation and every gesture on a session.
type SessionHandler struct {
	sandbox       sandbox.Service
	tokens        auth.TokenService
	tokenLifetime time.Duration
	timeFunc      func() time.Time
	logger        *slog.Logger
}

// NewSessionHandler creates a new SessionHandler.
func NewSessionHandler(
	svc sandbox.Service,
	tokens auth.TokenService,
	tokenLifetime time.Duration,
	logger *slog.Logger,
) *SessionHandler {
	if logger == nil {
		// ALLOW-PANIC: Constructor enforcing required dependency
		panic("logger cannot be nil for SessionHandler")
	}
	return &SessionHandler{
		sandbox:       svc,
		tokens:        tokens,
		tokenLifetime: tokenLifetime,
		timeFunc:      time.Now,
		logger:        logger.With(slog.String("component", "session_handler")),
	}
}

// CreateSession handles POST /api/sessions.
func (h *SessionHandler) CreateSession(w http.ResponseWriter, r *http.Request) {
	log := logger.FromContextOrDefault(r.Context(), h.logger)

	snap, err := h.sandbox.CreateSession(r.Context())
	if err != nil {
		HandleAPIError(w, r, err, "Failed to create session")
		return
	}

	issuedAt := h.timeFunc()
	token, err := h.tokens.GenerateToken(r.Context(), snap.SessionID)
	if err != nil {
		if endErr := h.sandbox.EndSession(r.Context(), snap.SessionID); endErr != nil {
			log.Warn("failed to discard session after token error",
				slog.String("session_id", snap.SessionID.String()))
		}
		HandleAPIError(w, r, err, "Failed to create session")
		return
	}

	log.Info("session created", slog.String("session_id", snap.SessionID.String()))
	shared.RespondWithJSON(w, r, http.StatusCreated, CreateSessionResponse{
		Token:     token,
		ExpiresAt: formatTime(issuedAt.Add(h.tokenLifetime)),
		Session:   snap,
	})
}

// GetSession handles GET /api/session.
func (h *SessionHandler) GetSession(w http.ResponseWriter, r *http.Request) {
	scope, ok := handleSessionScope(w, r, false, logger.FromContextOrDefault(r.Context(), h.logger))
	if !ok {
		return
	}
	snap, err := h.sandbox.Snapshot(r.Context(), scope.sessionID)
	h.respond(w, r, http.StatusOK, snap, err)
}

// EndSession handles DELETE /api/session.
func (h *SessionHandler) EndSession(w http.ResponseWriter, r *http.Request) {
	scope, ok := handleSessionScope(w, r, false, logger.FromContextOrDefault(r.Context(), h.logger))
	if !ok {
		return
	}
	if err := h.sandbox.EndSession(r.Context(), scope.sessionID); err != nil {
		HandleAPIError(w, r, err, "Failed to end session")
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// SelectMode handles PUT /api/session/mode.
func (h *SessionHandler) SelectMode(w http.ResponseWriter, r *http.Request) {
	scope, ok := handleSessionScope(w, r, false, logger.FromContextOrDefault(r.Context(), h.logger))
	if !ok {
		return
	}

	var req ModeRequest
	if err := decodeRequest(r, &req); err != nil {
		HandleAPIError(w, r, err, "")
		return
	}
	mode, err := domain.ParseMode(req.Mode)
	if err != nil {
		HandleAPIError(w, r, err, "")
		return
	}

	snap, err := h.sandbox.SelectMode(r.Context(), scope.sessionID, mode)
	h.respond(w, r, http.StatusOK, snap, err)
}

// SelectGate handles PUT /api/session/learn/gate.
func (h *SessionHandler) SelectGate(w http.ResponseWriter, r *http.Request) {
	scope, ok := handleSessionScope(w, r, false, logger.FromContextOrDefault(r.Context(), h.logger))
	if !ok {
		return
	}
	kind, ok := h.decodeKind(w, r)
	if !ok {
		return
	}
	snap, err := h.sandbox.SelectGate(r.Context(), scope.sessionID, kind)
	h.respond(w, r, http.StatusOK, snap, err)
}

// ToggleTruthTable handles POST /api/session/learn/truth-table.
func (h *SessionHandler) ToggleTruthTable(w http.ResponseWriter, r *http.Request) {
	scope, ok := handleSessionScope(w, r, false, logger.FromContextOrDefault(r.Context(), h.logger))
	if !ok {
		return
	}
	snap, err := h.sandbox.ToggleTruthTable(r.Context(), scope.sessionID)
	h.respond(w, r, http.StatusOK, snap, err)
}

// StartChallenge handles POST /api/session/challenges/{id}/start.
func (h *SessionHandler) StartChallenge(w http.ResponseWriter, r *http.Request) {
	scope, ok := handleSessionScope(w, r, false, logger.FromContextOrDefault(r.Context(), h.logger))
	if !ok {
		return
	}
	snap, err := h.sandbox.StartChallenge(r.Context(), scope.sessionID, chi.URLParam(r, "id"))
	h.respond(w, r, http.StatusOK, snap, err)
}

// BackToList handles POST /api/session/challenges/back.
func (h *SessionHandler) BackToList(w http.ResponseWriter, r *http.Request) {
	scope, ok := handleSessionScope(w, r, false, logger.FromContextOrDefault(r.Context(), h.logger))
	if !ok {
		return
	}
	snap, err := h.sandbox.BackToList(r.Context(), scope.sessionID)
	h.respond(w, r, http.StatusOK, snap, err)
}

// CheckChallenge handles POST /api/session/challenges/check.
func (h *SessionHandler) CheckChallenge(w http.ResponseWriter, r *http.Request) {
	log := logger.FromContextOrDefault(r.Context(), h.logger)
	scope, ok := handleSessionScope(w, r, false, log)
	if !ok {
		return
	}

	result, err := h.sandbox.CheckChallenge(r.Context(), scope.sessionID)
	if err != nil {
		HandleAPIError(w, r, err, "Failed to check challenge")
		return
	}
	log.Debug("challenge checked",
		slog.String("session_id", scope.sessionID.String()),
		slog.Bool("correct", result.Correct))
	shared.RespondWithJSON(w, r, http.StatusOK, result)
}

// BeginPlacement handles POST /api/session/{ws}/placement.
func (h *SessionHandler) BeginPlacement(w http.ResponseWriter, r *http.Request) {
	scope, ok := handleSessionScope(w, r, true, logger.FromContextOrDefault(r.Context(), h.logger))
	if !ok {
		return
	}
	kind, ok := h.decodeKind(w, r)
	if !ok {
		return
	}
	snap, err := h.sandbox.BeginPlacement(r.Context(), scope.sessionID, scope.workspace, kind)
	h.respond(w, r, http.StatusOK, snap, err)
}

// CompletePlacement handles POST /api/session/{ws}/placement/drop. A drop
// with no picked gate is answered with placed false.
func (h *SessionHandler) CompletePlacement(w http.ResponseWriter, r *http.Request) {
	scope, ok := handleSessionScope(w, r, true, logger.FromContextOrDefault(r.Context(), h.logger))
	if !ok {
		return
	}
	p, ok := h.decodePoint(w, r)
	if !ok {
		return
	}

	change, err := h.sandbox.CompletePlacement(r.Context(), scope.sessionID, scope.workspace, p)
	status := http.StatusOK
	if change.Placed {
		status = http.StatusCreated
	}
	h.respond(w, r, status, change, err)
}

// CancelPlacement handles DELETE /api/session/{ws}/placement.
func (h *SessionHandler) CancelPlacement(w http.ResponseWriter, r *http.Request) {
	scope, ok := handleSessionScope(w, r, true, logger.FromContextOrDefault(r.Context(), h.logger))
	if !ok {
		return
	}
	snap, err := h.sandbox.CancelPlacement(r.Context(), scope.sessionID, scope.workspace)
	h.respond(w, r, http.StatusOK, snap, err)
}

// PlaceGate handles POST /api/session/{ws}/gates.
func (h *SessionHandler) PlaceGate(w http.ResponseWriter, r *http.Request) {
	scope, ok := handleSessionScope(w, r, true, logger.FromContextOrDefault(r.Context(), h.logger))
	if !ok {
		return
	}

	var req PlaceGateRequest
	if err := decodeRequest(r, &req); err != nil {
		HandleAPIError(w, r, err, "")
		return
	}
	kind, err := parseKind(req.Kind)
	if err != nil {
		HandleAPIError(w, r, err, "")
		return
	}

	change, err := h.sandbox.PlaceGate(r.Context(), scope.sessionID, scope.workspace, kind,
		domain.Point{X: *req.X, Y: *req.Y})
	h.respond(w, r, http.StatusCreated, change, err)
}

// MoveGate handles PATCH /api/session/{ws}/gates/{id}.
func (h *SessionHandler) MoveGate(w http.ResponseWriter, r *http.Request) {
	scope, ok := handleSessionScope(w, r, true, logger.FromContextOrDefault(r.Context(), h.logger))
	if !ok {
		return
	}
	gateID, err := getPathUUID(r, "id")
	if err != nil {
		HandleAPIError(w, r, err, "")
		return
	}
	p, ok := h.decodePoint(w, r)
	if !ok {
		return
	}

	change, err := h.sandbox.MoveGate(r.Context(), scope.sessionID, scope.workspace, gateID, p)
	h.respond(w, r, http.StatusOK, change, err)
}

// RemoveGate handles DELETE /api/session/{ws}/gates/{id}. Removing a gate
// that does not exist succeeds.
func (h *SessionHandler) RemoveGate(w http.ResponseWriter, r *http.Request) {
	log := logger.FromContextOrDefault(r.Context(), h.logger)
	scope, ok := handleSessionScope(w, r, true, log)
	if !ok {
		return
	}
	gateID, err := getPathUUID(r, "id")
	if err != nil {
		HandleAPIError(w, r, err, "")
		return
	}

	removed, err := h.sandbox.RemoveGate(r.Context(), scope.sessionID, scope.workspace, gateID)
	if err != nil {
		HandleAPIError(w, r, err, "Failed to remove gate")
		return
	}
	if !removed {
		log.Debug("remove of unknown gate ignored", slog.String("gate_id", gateID.String()))
	}
	w.WriteHeader(http.StatusNoContent)
}

// ClearCanvas handles DELETE /api/session/{ws}/gates.
func (h *SessionHandler) ClearCanvas(w http.ResponseWriter, r *http.Request) {
	scope, ok := handleSessionScope(w, r, true, logger.FromContextOrDefault(r.Context(), h.logger))
	if !ok {
		return
	}
	snap, err := h.sandbox.ClearCanvas(r.Context(), scope.sessionID, scope.workspace)
	h.respond(w, r, http.StatusOK, snap, err)
}

// ToggleInput handles POST /api/session/{ws}/inputs/{name}/toggle.
func (h *SessionHandler) ToggleInput(w http.ResponseWriter, r *http.Request) {
	scope, ok := handleSessionScope(w, r, true, logger.FromContextOrDefault(r.Context(), h.logger))
	if !ok {
		return
	}
	name, err := domain.ParseInputName(chi.URLParam(r, "name"))
	if err != nil {
		HandleAPIError(w, r, err, "")
		return
	}
	snap, err := h.sandbox.ToggleInput(r.Context(), scope.sessionID, scope.workspace, name)
	h.respond(w, r, http.StatusOK, snap, err)
}

func (h *SessionHandler) decodeKind(w http.ResponseWriter, r *http.Request) (logic.Kind, bool) {
	var req KindRequest
	if err := decodeRequest(r, &req); err != nil {
		HandleAPIError(w, r, err, "")
		return 0, false
	}
	kind, err := parseKind(req.Kind)
	if err != nil {
		HandleAPIError(w, r, err, "")
		return 0, false
	}
	return kind, true
}

func (h *SessionHandler) decodePoint(w http.ResponseWriter, r *http.Request) (domain.Point, bool) {
	var req PointRequest
	if err := decodeRequest(r, &req); err != nil {
		HandleAPIError(w, r, err, "")
		return domain.Point{}, false
	}
	return domain.Point{X: *req.X, Y: *req.Y}, true
}

// respond writes body with status, or the mapped error when err is set.
func (h *SessionHandler) respond(w http.ResponseWriter, r *http.Request, status int, body interface{}, err error) {
	if err != nil {
		HandleAPIError(w, r, err, "Failed to update session")
		return
	}
	shared.RespondWithJSON(w, r, status, body)
}
