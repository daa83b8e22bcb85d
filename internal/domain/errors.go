package domain

import "errors"

var (
	// ErrUserRejected is returned when the account holder explicitly declines a signature request
	ErrUserRejected = errors.New("request rejected by user")

	// ErrArkNotFound is returned when the owner has no ark
	ErrArkNotFound = errors.New("ark not found")

	// ErrArkAlreadyExists is returned when building an ark for an owner that already has one
	ErrArkAlreadyExists = errors.New("ark already exists")

	// ErrBatchUnsupported is returned when a batch is requested from an account without atomic batching
	ErrBatchUnsupported = errors.New("atomic batching not supported by account")

	// ErrNoTokens is returned when an operation needs at least one token
	ErrNoTokens = errors.New("no tokens selected")

	// ErrInvalidAddress is returned for malformed hex addresses
	ErrInvalidAddress = errors.New("invalid address")

	// ErrPollingTimeout is returned when a bounded poll runs out of attempts
	ErrPollingTimeout = errors.New("polling gave up before the expected state was observed")

	// ErrTransactionFailed is returned when a transaction or batch is mined but reverted
	ErrTransactionFailed = errors.New("transaction failed")
)
