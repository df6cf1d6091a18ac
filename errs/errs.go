// Package errs defines the sentinel errors returned by vpack.
//
// Every error a caller can observe from Compress/Decompress wraps one of
// these sentinels with fmt.Errorf("%w: ...", errs.ErrX), so callers can
// branch with errors.Is while still getting a message that names the
// offending value, tag, or offset.
package errs

import "errors"

var (
	// ErrUnsupportedType is returned when the Probe encounters a value
	// outside the supported catalog (a live engine instance, a callable,
	// a thread, or any other opaque type this module does not know).
	ErrUnsupportedType = errors.New("vpack: unsupported value type")

	// ErrLimitsExceeded is returned when recursion depth exceeds 64 or
	// the number of visited atomic items exceeds 1,000,000.
	ErrLimitsExceeded = errors.New("vpack: depth or item limit exceeded")

	// ErrVersionMismatch is returned when the first byte of a Decompress
	// input does not match Version.
	ErrVersionMismatch = errors.New("vpack: version byte mismatch")

	// ErrTruncated is returned when a reader would read past the end of
	// the input buffer.
	ErrTruncated = errors.New("vpack: truncated input")

	// ErrInvalidTag is returned when a tag byte has no assigned reader.
	ErrInvalidTag = errors.New("vpack: invalid tag byte")

	// ErrInvalidReference is returned when a STR_REF id has no prior
	// STR_NEW definition.
	ErrInvalidReference = errors.New("vpack: invalid string intern reference")

	// ErrInvalidKey is returned when a table key is neither a number nor
	// a string.
	ErrInvalidKey = errors.New("vpack: table key must be number or string")

	// ErrInternalInvariant indicates the decision stack and the encoder
	// disagreed on byte count, or the stack was exhausted or overfilled
	// mid-replay. This should never fire on valid input; it means Probe
	// and Encoder have diverged.
	ErrInternalInvariant = errors.New("vpack: internal invariant violation")
)
