package handler

import (
	"net/http"
	"time"

	"github.com/google/uuid"

	"bankapi/internal/account/models"
	"bankapi/internal/decision/outcome"
	"bankapi/pkg/platform/httputil"
)

// AccountResponse is the JSON view of an account.
type AccountResponse struct {
	ID             uuid.UUID `json:"id"`
	SortCode       string    `json:"sort_code"`
	AccountNumber  string    `json:"account_number"`
	BankName       string    `json:"bank_name"`
	OwnerName      string    `json:"owner_name"`
	CurrentBalance string    `json:"current_balance"`
	CreatedAt      time.Time `json:"created_at"`
}

func FromAccount(a *models.Account) *AccountResponse {
	return &AccountResponse{
		ID:             a.ID,
		SortCode:       a.SortCode,
		AccountNumber:  a.AccountNumber,
		BankName:       a.BankName,
		OwnerName:      a.OwnerName,
		CurrentBalance: a.CurrentBalance.StringFixed(2),
		CreatedAt:      a.CreatedAt,
	}
}

type TransferResponse struct {
	Success bool `json:"success"`
}

// MessageResponse carries a bare message, for non-success outcomes and for
// the withdraw/deposit confirmation.
type MessageResponse struct {
	Message string `json:"message"`
}

func messageBody(msg string) any {
	return &MessageResponse{Message: msg}
}

// fallbacks are the messages used when a non-success outcome carries neither
// payload nor message.
type fallbacks struct {
	empty   string
	invalid string
	failure string
}

// writeOutcome maps an outcome onto the wire: success writes the rendered
// payload; the other kinds write their payload if present, else their
// message, else the kind's fallback. An unknown kind is a defect and panics.
func writeOutcome[P any](w http.ResponseWriter, o outcome.Outcome[P], fb fallbacks, render func(P) any) {
	status := o.Status()
	if status == 0 {
		status = http.StatusOK
	}

	var fallback string
	switch o.Kind() {
	case outcome.KindSuccess:
		payload, _ := o.Payload()
		httputil.WriteJSON(w, status, render(payload))
		return
	case outcome.KindInvalidInput:
		fallback = fb.invalid
	case outcome.KindEmptyResult:
		fallback = fb.empty
	case outcome.KindFailure:
		fallback = fb.failure
	default:
		outcome.Unhandled(o.Kind())
	}

	if payload, ok := o.Payload(); ok {
		httputil.WriteJSON(w, status, render(payload))
		return
	}
	if msg, ok := o.Message(); ok {
		httputil.WriteJSON(w, status, messageBody(msg))
		return
	}
	httputil.WriteJSON(w, status, messageBody(fallback))
}
