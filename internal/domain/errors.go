package domain

import "errors"

var (
	// ErrInvalidSplit is returned when a split configuration violates the basis point budget
	// or when a model is already configured and the caller did not use the re-configuration path
	ErrInvalidSplit = errors.New("invalid split")

	// ErrDuplicatePayment is returned when a payment with the same source transaction hash is already queued
	ErrDuplicatePayment = errors.New("duplicate payment")

	// ErrPaymentCollision is returned with ErrDuplicatePayment when the queued payment of a transaction
	// is not the one being registered, e.g. a second payment log in the same transaction
	ErrPaymentCollision = errors.New("payment collides with another payment of the same transaction")

	// ErrSplitNotConfigured is returned when a payment is registered for a model without a split
	ErrSplitNotConfigured = errors.New("split not configured")

	// ErrInvalidAmount is returned when an amount is not a positive integer
	ErrInvalidAmount = errors.New("invalid amount")

	// ErrInvalidAddress is returned when an address is not a 20-byte hex string
	ErrInvalidAddress = errors.New("invalid address")

	// ErrUnknownSignature is returned when a log does not match any known event signature
	ErrUnknownSignature = errors.New("unknown event signature")

	// ErrUnknownStream is returned when a stream is not configured for a chain
	ErrUnknownStream = errors.New("unknown stream")

	// ErrStreamBusy is returned when another advance is already running for the same stream
	ErrStreamBusy = errors.New("stream busy")

	// ErrStaleMetadata is a soft error returned together with a stale cache entry
	ErrStaleMetadata = errors.New("stale metadata")

	// ErrModelNotFound is returned when a model is neither in the store nor on the ledger
	ErrModelNotFound = errors.New("model not found")

	// ErrCursorResetNotConfirmed is returned when a cursor reset is requested without confirmation
	ErrCursorResetNotConfirmed = errors.New("cursor reset requires confirmation")

	// ErrInvalidModelID is returned when a model id is not a positive 64-bit integer
	ErrInvalidModelID = errors.New("invalid model id")

	// ErrInvalidTxHash is returned when a source transaction hash is not a 32-byte hex string
	ErrInvalidTxHash = errors.New("invalid transaction hash")

	// ErrBalanceConflict is returned when an optimistic balance update keeps losing to concurrent writers
	ErrBalanceConflict = errors.New("balance update conflict")

	// ErrSignerNotConfigured is returned when a transaction is submitted without a payer key
	ErrSignerNotConfigured = errors.New("signer not configured")
)
