package api

import (
	"time"

	"github.com/tekmux/gatelab/internal/domain/logic"
	"github.com/tekmux/gatelab/internal/service/sandbox"
)

// CreateSessionResponse is returned by POST /api/sessions.
type CreateSessionResponse struct {
	// Token authorizes the session-scoped routes as a bearer token
	Token string `json:"token"`

	// ExpiresAt is the RFC 3339 time the token stops being accepted
	ExpiresAt string `json:"expires_at"`

	Session sandbox.Snapshot `json:"session"`
}

// ModeRequest selects a tab.
type ModeRequest struct {
	Mode string `json:"mode" validate:"required"`
}

// KindRequest names a gate kind, for the learn tab and the palette.
type KindRequest struct {
	Kind string `json:"kind" validate:"required"`
}

// PointRequest is a canvas-local position. Both coordinates are required
// since zero is a valid value.
type PointRequest struct {
	X *float64 `json:"x" validate:"required"`
	Y *float64 `json:"y" validate:"required"`
}

// PlaceGateRequest places a gate with its top-left corner at X, Y.
type PlaceGateRequest struct {
	Kind string   `json:"kind" validate:"required"`
	X    *float64 `json:"x"    validate:"required"`
	Y    *float64 `json:"y"    validate:"required"`
}

// GateInfo describes one gate kind.
type GateInfo struct {
	Kind        logic.Kind `json:"kind"`
	Glyph       string     `json:"glyph"`
	Description string     `json:"description"`
	Arity       int        `json:"arity"`
}

// TruthTableResponse lists every row of one kind's truth table.
type TruthTableResponse struct {
	Kind logic.Kind  `json:"kind"`
	Rows []logic.Row `json:"rows"`
}

// HealthResponse reports liveness.
type HealthResponse struct {
	Status   string `json:"status"`
	Sessions int    `json:"sessions"`
	Time     string `json:"time"`
}

func gateInfo(k logic.Kind) GateInfo {
	return GateInfo{
		Kind:        k,
		Glyph:       k.Glyph(),
		Description: k.Description(),
		Arity:       k.Arity(),
	}
}

func formatTime(t time.Time) string {
	return t.UTC().Format(time.RFC3339)
}
