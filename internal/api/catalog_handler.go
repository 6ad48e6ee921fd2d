package api

import (
	"log/slog"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/tekmux/gatelab/internal/api/shared"
	"github.com/tekmux/gatelab/internal/domain"
	"github.com/tekmux/gatelab/internal/domain/logic"
	"github.com/tekmux/gatelab/internal/platform/logger"
	"github.com/tekmux/gatelab/internal/redact"
	"github.com/tekmux/gatelab/internal/service/sandbox"
	"github.com/tekmux/gatelab/internal/symbol"
)

// CatalogHandler serves the read-only gate and challenge catalogs.
type CatalogHandler struct {
	sandbox sandbox.Service
	logger  *slog.Logger
}

// NewCatalogHandler creates a new CatalogHandler.
func NewCatalogHandler(svc sandbox.Service, logger *slog.Logger) *CatalogHandler {
	if logger == nil {
		// ALLOW-PANIC: Constructor enforcing required dependency
		panic("logger cannot be nil for CatalogHandler")
	}
	return &CatalogHandler{
		sandbox: svc,
		logger:  logger.With(slog.String("component", "catalog_handler")),
	}
}

// ListGates handles GET /api/gates.
func (h *CatalogHandler) ListGates(w http.ResponseWriter, r *http.Request) {
	kinds := logic.Kinds()
	gates := make([]GateInfo, 0, len(kinds))
	for _, k := range kinds {
		gates = append(gates, gateInfo(k))
	}
	shared.RespondWithJSON(w, r, http.StatusOK, gates)
}

// TruthTable handles GET /api/gates/{kind}/truth-table.
func (h *CatalogHandler) TruthTable(w http.ResponseWriter, r *http.Request) {
	k, err := parseKind(chi.URLParam(r, "kind"))
	if err != nil {
		HandleAPIError(w, r, err, "")
		return
	}
	shared.RespondWithJSON(w, r, http.StatusOK, TruthTableResponse{Kind: k, Rows: logic.TruthTable(k)})
}

// Symbol handles GET /api/gates/{kind}/symbol. The optional size query
// parameter is clamped to the supported range; style=diagram returns the
// fixed-size learn tab diagram instead.
func (h *CatalogHandler) Symbol(w http.ResponseWriter, r *http.Request) {
	log := logger.FromContextOrDefault(r.Context(), h.logger)

	k, err := parseKind(chi.URLParam(r, "kind"))
	if err != nil {
		HandleAPIError(w, r, err, "")
		return
	}

	var svg string
	switch style := r.URL.Query().Get("style"); style {
	case "diagram":
		svg = symbol.Diagram(k)
	case "", "symbol":
		size := symbol.DefaultSize
		if raw := r.URL.Query().Get("size"); raw != "" {
			n, err := strconv.Atoi(raw)
			if err != nil {
				HandleAPIError(w, r, domain.NewValidationError("size", "must be an integer", domain.ErrValidation), "")
				return
			}
			size = n
		}
		svg = symbol.Symbol(k, size)
	default:
		HandleAPIError(w, r, domain.NewValidationError("style", "must be symbol or diagram", domain.ErrValidation), "")
		return
	}

	w.Header().Set("Content-Type", "image/svg+xml")
	w.Header().Set("Cache-Control", "public, max-age=86400")
	w.WriteHeader(http.StatusOK)
	if _, err := w.Write([]byte(svg)); err != nil {
		log.Error("failed to write symbol", slog.String("kind", k.String()), slog.String("error", redact.Error(err)))
	}
}

// ListChallenges handles GET /api/challenges.
func (h *CatalogHandler) ListChallenges(w http.ResponseWriter, r *http.Request) {
	shared.RespondWithJSON(w, r, http.StatusOK, h.sandbox.Challenges())
}
