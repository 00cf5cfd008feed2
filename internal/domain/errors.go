package domain

import (
	"errors"
	"fmt"
	"strings"

	"github.com/ethereum/go-ethereum/common"
)

// Sentinel errors for domain operations
var (
	// ErrNotFound is returned when a requested resource doesn't exist
	ErrNotFound = errors.New("not found")

	// ErrInvalidEntropy is returned when entropy does not fit in 88 bits
	ErrInvalidEntropy = errors.New("invalid entropy")

	// ErrMaxNonceExceeded is returned for the nonce 2^64-1, which can never be used
	ErrMaxNonceExceeded = errors.New("max nonce exceeded")

	// ErrTransientChain marks chain errors that may succeed when retried
	ErrTransientChain = errors.New("transient chain error")

	// ErrCreationEventMissing is returned when a mined deployment emitted no ContractCreation event
	ErrCreationEventMissing = errors.New("contract creation event not found")

	// ErrUnlinkedLibrary is returned when linked bytecode still carries placeholders
	ErrUnlinkedLibrary = errors.New("unlinked library")

	// ErrVerificationFailed is returned when contract verification fails
	ErrVerificationFailed = errors.New("verification failed")

	// ErrSaltGuardMismatch is returned when the factory would deploy to a different address than predicted
	ErrSaltGuardMismatch = errors.New("salt guard mismatch")

	// ErrTransactionReverted is returned when a deployment transaction was mined with a failure status
	ErrTransactionReverted = errors.New("transaction reverted")

	// ErrInvalidConfig is returned when configuration fails validation
	ErrInvalidConfig = errors.New("invalid configuration")
)

// ValidationError reports an input rejected before any I/O took place.
type ValidationError struct {
	Field string
	Value string
	Err   error
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("%s: invalid %s %q", e.Err, e.Field, e.Value)
}

func (e *ValidationError) Unwrap() error { return e.Err }

// ChainErrorClass separates retryable RPC failures from everything else
type ChainErrorClass int

const (
	ChainErrorFatal ChainErrorClass = iota
	ChainErrorTransient
)

func (c ChainErrorClass) String() string {
	if c == ChainErrorTransient {
		return "transient"
	}
	return "fatal"
}

// ChainError wraps a failure returned by the chain client with its classification.
type ChainError struct {
	Op    string
	Class ChainErrorClass
	Err   error
}

func (e *ChainError) Error() string {
	return fmt.Sprintf("%s (%s): %v", e.Op, e.Class, e.Err)
}

func (e *ChainError) Unwrap() error { return e.Err }

// Is lets errors.Is(err, ErrTransientChain) match transient chain errors
func (e *ChainError) Is(target error) bool {
	return target == ErrTransientChain && e.Class == ChainErrorTransient
}

// NewTransientChainError creates a ChainError that callers may retry
func NewTransientChainError(op string, err error) *ChainError {
	return &ChainError{Op: op, Class: ChainErrorTransient, Err: err}
}

// NewFatalChainError creates a ChainError that must not be retried
func NewFatalChainError(op string, err error) *ChainError {
	return &ChainError{Op: op, Class: ChainErrorFatal, Err: err}
}

// IsTransient reports whether err carries a transient chain classification
func IsTransient(err error) bool {
	return errors.Is(err, ErrTransientChain)
}

// UnlinkedLibraryError lists the placeholders left in bytecode after linking
type UnlinkedLibraryError struct {
	Placeholders []string
}

func (e *UnlinkedLibraryError) Error() string {
	return fmt.Sprintf("bytecode has unresolved library placeholders: %s", strings.Join(e.Placeholders, ", "))
}

func (e *UnlinkedLibraryError) Unwrap() error { return ErrUnlinkedLibrary }

// CreationEventMissingError is returned when a receipt holds no factory ContractCreation log
type CreationEventMissingError struct {
	TxHash  common.Hash
	Factory common.Address
}

func (e *CreationEventMissingError) Error() string {
	return fmt.Sprintf("contract creation event not found in transaction %s (factory %s)", e.TxHash.Hex(), e.Factory.Hex())
}

func (e *CreationEventMissingError) Unwrap() error { return ErrCreationEventMissing }

// SaltGuardMismatchError is returned when a simulated deployment disagrees with the prediction
type SaltGuardMismatchError struct {
	Guard     SaltGuard
	Predicted common.Address
	Simulated common.Address
}

func (e *SaltGuardMismatchError) Error() string {
	return fmt.Sprintf(
		"factory would deploy to %s but %s salt predicted %s: check the factory salt_guard setting",
		e.Simulated.Hex(), e.Guard, e.Predicted.Hex(),
	)
}

func (e *SaltGuardMismatchError) Unwrap() error { return ErrSaltGuardMismatch }

// VerificationError wraps a failed explorer verification
type VerificationError struct {
	Name     string
	Address  common.Address
	Verifier string
	Err      error
}

func (e *VerificationError) Error() string {
	return fmt.Sprintf("verification of %s at %s on %s failed: %v", e.Name, e.Address.Hex(), e.Verifier, e.Err)
}

func (e *VerificationError) Unwrap() []error {
	if e.Err == nil {
		return []error{ErrVerificationFailed}
	}
	return []error{ErrVerificationFailed, e.Err}
}

// RetrySafe reports whether re-running the whole deployment request after err
// can make progress. Every completed step is idempotent, so only errors that
// would reproduce identically are excluded.
func RetrySafe(err error) bool {
	switch {
	case err == nil:
		return false
	case errors.Is(err, ErrInvalidEntropy),
		errors.Is(err, ErrMaxNonceExceeded),
		errors.Is(err, ErrUnlinkedLibrary),
		errors.Is(err, ErrSaltGuardMismatch),
		errors.Is(err, ErrInvalidConfig):
		return false
	}
	return true
}
