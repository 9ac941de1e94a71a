package dasfri

import "github.com/vybium/das-fri/internal/dasfri/dasfrierr"

// ErrorCode identifies the class of failure behind an Error, matching
// the error kinds named in spec section 7.
type ErrorCode = dasfrierr.Code

const (
	ErrUnknown             = dasfrierr.ErrUnknown
	ErrInvalidEncoding     = dasfrierr.InvalidEncoding
	ErrBadLength           = dasfrierr.BadLength
	ErrDomainTooLarge      = dasfrierr.DomainTooLarge
	ErrNotInvertible       = dasfrierr.NotInvertible
	ErrMerkleMismatch      = dasfrierr.MerkleMismatch
	ErrFoldingMismatch     = dasfrierr.FoldingMismatch
	ErrFinalMismatch       = dasfrierr.FinalMismatch
	ErrInsufficientSymbols = dasfrierr.InsufficientSymbols
)

// Error is the concrete error type returned by this package's operations.
type Error = dasfrierr.Error
