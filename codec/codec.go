// Package codec implements the built-in converters between external
// encodings and UTF-8, plus the two-level transcoding tables for the
// 8-bit code pages.
//
// # Conversion contract
//
// Every ConvertFunc transcodes as much of src into dst as fits and
// reports exact byte accounting:
//
//	written, read, err := fn(dst, src)
//
// written is the number of bytes produced into dst and read is the
// number of bytes consumed from src; both are accurate on every return,
// including error returns. A converter stops without error when dst is
// full or when src ends in the middle of a multi-byte sequence; the
// caller classifies those outcomes from the counts (see the handler
// chunk dispatch in the registry package). The only error a built-in
// converter reports itself is errs.ErrInput, for a byte or character
// that cannot be represented.
//
// Converters never buffer: consumed bytes are always fully represented
// in the produced bytes, so a caller can resume at src[read:] after
// growing dst or appending input.
package codec

import "unicode/utf8"

// ConvertFunc converts bytes between an external encoding and UTF-8.
//
// It returns the number of bytes written to dst, the number of bytes
// read from src, and errs.ErrInput if an unconvertible sequence was hit.
// Counts are valid on error returns and cover the input prefix before
// the offending sequence.
type ConvertFunc func(dst, src []byte) (written, read int, err error)

// decodeRune decodes one UTF-8 encoded rune at src[pos:].
//
// complete is false when the sequence is truncated by the end of src;
// a malformed sequence yields utf8.RuneError with size 1, which callers
// report as an input error.
func decodeRune(src []byte) (r rune, size int, complete bool) {
	if !utf8.FullRune(src) {
		return 0, 0, false
	}
	r, size = utf8.DecodeRune(src)

	return r, size, true
}
