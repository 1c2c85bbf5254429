package handlers

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/oleksii-sytar/personal-finance-sub002/internal/api/httpx"
	"github.com/oleksii-sytar/personal-finance-sub002/internal/api/validate"
	"github.com/oleksii-sytar/personal-finance-sub002/internal/auth"
	repo "github.com/oleksii-sytar/personal-finance-sub002/internal/repository"
	"github.com/oleksii-sytar/personal-finance-sub002/internal/services"
)

// writeErr maps service errors onto the wire. Field-level validation
// problems keep their details; anything unrecognized collapses to a 500
// so internals never leak.
func writeErr(w http.ResponseWriter, err error) {
	var fields validate.Errs
	switch {
	case errors.As(err, &fields):
		httpx.WriteError(w, http.StatusBadRequest, "validation_failed", "validation failed", fields)
	case errors.Is(err, services.ErrInvalid):
		httpx.WriteError(w, http.StatusBadRequest, "invalid_input", err.Error(), nil)
	case errors.Is(err, services.ErrSameAccount):
		httpx.WriteError(w, http.StatusBadRequest, "same_account", "transfer needs two different accounts", nil)
	case errors.Is(err, services.ErrCurrencyMismatch):
		httpx.WriteError(w, http.StatusBadRequest, "currency_mismatch", "accounts use different currencies", nil)
	case errors.Is(err, services.ErrInvalidCredentials):
		httpx.WriteError(w, http.StatusUnauthorized, "invalid_credentials", "invalid email or password", nil)
	case errors.Is(err, auth.ErrInvalidToken):
		httpx.WriteError(w, http.StatusUnauthorized, "invalid_token", "invalid or expired token", nil)
	case errors.Is(err, services.ErrForbidden), errors.Is(err, services.ErrInvitationForOther):
		httpx.WriteError(w, http.StatusForbidden, "forbidden", "forbidden", nil)
	case errors.Is(err, repo.ErrNotFound):
		httpx.WriteError(w, http.StatusNotFound, "not_found", "not found", nil)
	case errors.Is(err, services.ErrEmailTaken):
		httpx.WriteError(w, http.StatusConflict, "email_taken", "email already registered", nil)
	case errors.Is(err, services.ErrAlreadyMember):
		httpx.WriteError(w, http.StatusConflict, "already_member", "already a workspace member", nil)
	case errors.Is(err, services.ErrInvitationNotPending):
		httpx.WriteError(w, http.StatusConflict, "invitation_not_pending", "invitation is no longer pending", nil)
	case errors.Is(err, services.ErrAccountArchived):
		httpx.WriteError(w, http.StatusConflict, "account_archived", "account is archived", nil)
	case errors.Is(err, services.ErrTransferLeg):
		httpx.WriteError(w, http.StatusConflict, "transfer_leg_locked", "amount, type and date of a transfer leg follow its twin", nil)
	case errors.Is(err, repo.ErrConflict):
		httpx.WriteError(w, http.StatusConflict, "conflict", "conflicting state", nil)
	default:
		slog.Error("request failed", "error", err)
		httpx.WriteError(w, http.StatusInternalServerError, "internal_error", "internal error", nil)
	}
}

func badBody(w http.ResponseWriter) {
	httpx.WriteError(w, http.StatusBadRequest, "bad_request", "malformed request body", nil)
}
