// Package admin exposes read-only views over the outcome audit log.
package admin

import (
	"log/slog"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	dErrors "bankapi/pkg/domain-errors"
	audit "bankapi/pkg/platform/audit"
	"bankapi/pkg/platform/httputil"
	"bankapi/pkg/requestcontext"
)

const (
	defaultLimit = 50
	maxLimit     = 500
)

var knownOperations = map[audit.Operation]bool{
	audit.OperationLookup:   true,
	audit.OperationCreate:   true,
	audit.OperationTransfer: true,
	audit.OperationWithdraw: true,
	audit.OperationDeposit:  true,
}

type Handler struct {
	events audit.Lister
	logger *slog.Logger
}

func New(events audit.Lister, logger *slog.Logger) *Handler {
	return &Handler{events: events, logger: logger}
}

// Register mounts the audit views on the router.
func (h *Handler) Register(r chi.Router) {
	r.Get("/outcomes", h.HandleListRecent)
	r.Get("/outcomes/{operation}", h.HandleListByOperation)
}

// HandleListRecent handles GET /outcomes?limit=N.
func (h *Handler) HandleListRecent(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	limit := defaultLimit
	if raw := r.URL.Query().Get("limit"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n <= 0 {
			httputil.WriteError(w, httputil.FieldErrors{"limit": "must be a positive integer"})
			return
		}
		limit = min(n, maxLimit)
	}

	events, err := h.events.ListRecent(ctx, limit)
	if err != nil {
		h.logger.ErrorContext(ctx, "failed to list recent outcomes",
			"request_id", requestcontext.RequestID(ctx),
			"error", err,
		)
		httputil.WriteError(w, dErrors.Wrap(err, dErrors.CodeInternal, "failed to list outcomes"))
		return
	}
	httputil.WriteJSON(w, http.StatusOK, toListResponse(events))
}

// HandleListByOperation handles GET /outcomes/{operation}.
func (h *Handler) HandleListByOperation(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	op := audit.Operation(chi.URLParam(r, "operation"))
	if !knownOperations[op] {
		httputil.WriteError(w, dErrors.New(dErrors.CodeNotFound, "unknown operation"))
		return
	}

	events, err := h.events.ListByOperation(ctx, op)
	if err != nil {
		h.logger.ErrorContext(ctx, "failed to list outcomes by operation",
			"request_id", requestcontext.RequestID(ctx),
			"operation", op,
			"error", err,
		)
		httputil.WriteError(w, dErrors.Wrap(err, dErrors.CodeInternal, "failed to list outcomes"))
		return
	}
	httputil.WriteJSON(w, http.StatusOK, toListResponse(events))
}
