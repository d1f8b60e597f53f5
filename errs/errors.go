// Package errs defines the error taxonomy shared by the charconv packages.
//
// Conversion errors fall into a small closed set. Converters and the
// chunked engine report these sentinels (possibly wrapped with context via
// fmt.Errorf and %w), so callers can classify failures with errors.Is:
//
//   - ErrInput: malformed or unencodable byte/character sequence.
//     Recoverable on the encode path via the character-reference fallback,
//     fatal on the decode path.
//   - ErrSpace: destination buffer exhausted. Always recoverable by
//     growing the destination and retrying with the unconsumed remainder.
//   - ErrPartial: incomplete trailing multi-byte sequence. Recoverable on
//     decode by supplying more input; converted to ErrInternal on encode
//     since well-formed UTF-8 never leaves a dangling sequence.
//   - ErrInternal: contract violation (nil arguments, reused single-use
//     converter, encode-side partial sequence). Fatal to the current call.
//   - ErrUnsupportedEncoding: no handler could be resolved for the
//     requested name or tag. Fatal to opening the stream.
package errs

import "errors"

var (
	// ErrInput indicates a malformed or unencodable input sequence.
	// Consumed/produced counts are accurate up to the failure point.
	ErrInput = errors.New("invalid input sequence")

	// ErrSpace indicates the destination buffer is full while input remains.
	ErrSpace = errors.New("destination buffer full")

	// ErrPartial indicates an incomplete trailing multi-byte sequence.
	ErrPartial = errors.New("incomplete multi-byte sequence")

	// ErrInternal indicates a contract violation in the conversion engine.
	ErrInternal = errors.New("internal conversion error")

	// ErrUnsupportedEncoding indicates no handler resolves the encoding.
	ErrUnsupportedEncoding = errors.New("unsupported encoding")

	// ErrRegistryFull indicates the dynamic handler table reached its
	// fixed capacity and the handler was discarded.
	ErrRegistryFull = errors.New("handler registry full")

	// ErrAliasNotFound indicates the alias is not present in the registry.
	ErrAliasNotFound = errors.New("encoding alias not found")

	// ErrConverterClosed indicates use of a single-use converter after it
	// was closed or handed to another stream.
	ErrConverterClosed = errors.New("converter already closed")
)
