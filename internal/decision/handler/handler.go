package handler

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"bankapi/internal/account/models"
	"bankapi/internal/decision"
	"bankapi/internal/decision/outcome"
	"bankapi/pkg/platform/httputil"
	"bankapi/pkg/requestcontext"
)

//go:generate mockgen -source=handler.go -destination=mocks/service.go -package=mocks Service

// Service defines the evaluators the handler drives.
type Service interface {
	LookupAccount(ctx context.Context, in decision.LookupInput) (outcome.Outcome[*models.Account], error)
	CreateAccount(ctx context.Context, in decision.CreateAccountInput) (outcome.Outcome[*models.Account], error)
	Transfer(ctx context.Context, in decision.TransferInput) (outcome.Outcome[bool], error)
	Withdraw(ctx context.Context, in decision.WithdrawInput) (outcome.Outcome[string], error)
	Deposit(ctx context.Context, in decision.DepositInput) (outcome.Outcome[string], error)
	Messages() decision.Messages
}

// Handler wires the banking endpoints to the decision service.
type Handler struct {
	service Service
	logger  *slog.Logger
}

// New constructs a decision handler with its dependencies.
func New(service Service, logger *slog.Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
	}
}

// Register mounts the banking endpoints on the router.
func (h *Handler) Register(r chi.Router) {
	r.Post("/accounts", h.HandleLookupAccount)
	r.Put("/accounts", h.HandleCreateAccount)
	r.Post("/transactions", h.HandleTransfer)
	r.Post("/withdraw", h.HandleWithdraw)
	r.Post("/deposit", h.HandleDeposit)
}

func renderAccount(a *models.Account) any {
	return FromAccount(a)
}

func renderTransfer(ok bool) any {
	return &TransferResponse{Success: ok}
}

func renderMessage(msg string) any {
	return messageBody(msg)
}

// HandleLookupAccount handles POST /accounts.
func (h *Handler) HandleLookupAccount(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	requestID := requestcontext.RequestID(ctx)
	start := time.Now()

	req, ok := httputil.DecodeAndPrepare[AccountLookupRequest](w, r, h.logger, ctx, requestID)
	if !ok {
		return
	}

	out, err := h.service.LookupAccount(ctx, req.Input())
	if err != nil {
		h.fail(ctx, w, "account lookup", err)
		return
	}
	h.logOutcome(ctx, "account lookup", out.Summary(), start)

	m := h.service.Messages()
	writeOutcome(w, out, fallbacks{
		empty:   m.NoAccountFound,
		invalid: m.InvalidSearchCriteria,
		failure: m.NoAccountFound,
	}, renderAccount)
}

// HandleCreateAccount handles PUT /accounts.
func (h *Handler) HandleCreateAccount(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	requestID := requestcontext.RequestID(ctx)
	start := time.Now()

	req, ok := httputil.DecodeAndPrepare[CreateAccountRequest](w, r, h.logger, ctx, requestID)
	if !ok {
		return
	}

	out, err := h.service.CreateAccount(ctx, req.Input())
	if err != nil {
		h.fail(ctx, w, "account creation", err)
		return
	}
	h.logOutcome(ctx, "account creation", out.Summary(), start)

	m := h.service.Messages()
	writeOutcome(w, out, fallbacks{
		empty:   m.CreateAccountFailed,
		invalid: m.InvalidSearchCriteria,
		failure: m.CreateAccountFailed,
	}, renderAccount)
}

// HandleTransfer handles POST /transactions.
func (h *Handler) HandleTransfer(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	requestID := requestcontext.RequestID(ctx)
	start := time.Now()

	req, ok := httputil.DecodeAndPrepare[TransferRequest](w, r, h.logger, ctx, requestID)
	if !ok {
		return
	}

	out, err := h.service.Transfer(ctx, req.Input())
	if err != nil {
		h.fail(ctx, w, "transfer", err)
		return
	}
	h.logOutcome(ctx, "transfer", out.Summary(), start)

	m := h.service.Messages()
	writeOutcome(w, out, fallbacks{
		empty:   m.InvalidTransaction,
		invalid: m.InvalidTransaction,
		failure: m.InvalidTransaction,
	}, renderTransfer)
}

// HandleWithdraw handles POST /withdraw.
func (h *Handler) HandleWithdraw(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	requestID := requestcontext.RequestID(ctx)
	start := time.Now()

	req, ok := httputil.DecodeAndPrepare[WithdrawRequest](w, r, h.logger, ctx, requestID)
	if !ok {
		return
	}

	out, err := h.service.Withdraw(ctx, req.Input())
	if err != nil {
		h.fail(ctx, w, "withdrawal", err)
		return
	}
	h.logOutcome(ctx, "withdrawal", out.Summary(), start)

	m := h.service.Messages()
	writeOutcome(w, out, fallbacks{
		empty:   m.NoAccountFound,
		invalid: m.InvalidSearchCriteria,
		failure: m.InsufficientBalance,
	}, renderMessage)
}

// HandleDeposit handles POST /deposit.
func (h *Handler) HandleDeposit(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	requestID := requestcontext.RequestID(ctx)
	start := time.Now()

	req, ok := httputil.DecodeAndPrepare[DepositRequest](w, r, h.logger, ctx, requestID)
	if !ok {
		return
	}

	out, err := h.service.Deposit(ctx, req.Input())
	if err != nil {
		h.fail(ctx, w, "deposit", err)
		return
	}
	h.logOutcome(ctx, "deposit", out.Summary(), start)

	m := h.service.Messages()
	writeOutcome(w, out, fallbacks{
		empty:   m.NoAccountFound,
		invalid: m.InvalidSearchCriteria,
		failure: m.InvalidSearchCriteria,
	}, renderMessage)
}

func (h *Handler) fail(ctx context.Context, w http.ResponseWriter, operation string, err error) {
	h.logger.ErrorContext(ctx, operation+" failed",
		"request_id", requestcontext.RequestID(ctx),
		"error", err,
	)
	httputil.WriteError(w, err)
}

func (h *Handler) logOutcome(ctx context.Context, operation string, sum outcome.Summary, start time.Time) {
	h.logger.InfoContext(ctx, operation+" evaluated",
		"request_id", requestcontext.RequestID(ctx),
		"kind", sum.Kind,
		"status", sum.Status,
		"duration_ms", time.Since(start).Milliseconds(),
	)
}
