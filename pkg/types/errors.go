package types

import (
	"errors"
	"fmt"
)

// Common SDK errors
var (
	// Parameter validation errors
	ErrNilRPC          = errors.New("rpc client is nil")
	ErrNilSigner       = errors.New("signer is nil")
	ErrZeroAmount      = errors.New("amount must be greater than 0")
	ErrInvalidSlippage = errors.New("slippage bps must be <= 10000")
	ErrNoInstructions  = errors.New("requires at least one instruction")

	// Pool discovery errors
	ErrPoolNotFound  = errors.New("pool not found for token")
	ErrAmbiguousPool = errors.New("multiple pools match token")

	// Trade precondition errors
	ErrInsufficientFunds    = errors.New("insufficient SOL balance")
	ErrTokenAccountNotFound = errors.New("token account does not exist")
	ErrEmptyPosition        = errors.New("token account empty, nothing to sell")

	// Quote errors
	ErrInvalidQuote  = errors.New("invalid quote: non-positive output")
	ErrAmountTooBig  = errors.New("amount exceeds uint64 range")
	ErrEmptyReserves = errors.New("pool reserves are empty")
)

// RPCError wraps RPC failures with operation context.
type RPCError struct {
	Op  string
	Err error
}

func (e RPCError) Error() string {
	return fmt.Sprintf("%s: %v", e.Op, e.Err)
}

func (e RPCError) Unwrap() error {
	return e.Err
}

// ReserveReadError wraps a failure reading pool reserve balances.
type ReserveReadError struct {
	Account string
	Err     error
}

func (e ReserveReadError) Error() string {
	return fmt.Sprintf("read reserves (%s): %v", e.Account, e.Err)
}

func (e ReserveReadError) Unwrap() error {
	return e.Err
}

// BuildError wraps unexpected downstream failures during instruction assembly.
type BuildError struct {
	Step string
	Err  error
}

func (e BuildError) Error() string {
	return fmt.Sprintf("build %s: %v", e.Step, e.Err)
}

func (e BuildError) Unwrap() error {
	return e.Err
}

// ValidationError represents input validation failures.
type ValidationError struct {
	Field   string
	Message string
}

func (e ValidationError) Error() string {
	return fmt.Sprintf("validation error: %s - %s", e.Field, e.Message)
}

// NewValidationError creates a new validation error.
func NewValidationError(field, message string) ValidationError {
	return ValidationError{Field: field, Message: message}
}
