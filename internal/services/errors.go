package services

import "errors"

var (
	// ErrInvalid wraps input the caller can fix; handlers answer 400.
	ErrInvalid = errors.New("invalid input")

	ErrInvalidCredentials   = errors.New("invalid credentials")
	ErrEmailTaken           = errors.New("email already registered")
	ErrForbidden            = errors.New("forbidden")
	ErrAccountArchived      = errors.New("account is archived")
	ErrCurrencyMismatch     = errors.New("accounts use different currencies")
	ErrSameAccount          = errors.New("transfer needs two different accounts")
	ErrTransferLeg          = errors.New("transfer legs change only through the transfer")
	ErrAlreadyMember        = errors.New("already a workspace member")
	ErrInvitationNotPending = errors.New("invitation is not pending")
	ErrInvitationForOther   = errors.New("invitation addressed to a different email")
)
