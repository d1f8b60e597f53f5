package codec

import (
	"unicode/utf8"

	"github.com/arcline/charconv/errs"
)

// ASCIIToUTF8 converts a block of ASCII bytes to UTF-8.
//
// ASCII is a strict subset of UTF-8, so this is a bounded copy: any
// input byte >= 0x80 is an input error, reported with the counts of the
// valid prefix already transferred.
func ASCIIToUTF8(dst, src []byte) (written, read int, err error) {
	for read < len(src) && written < len(dst) {
		c := src[read]
		if c >= 0x80 {
			return written, read, errs.ErrInput
		}
		dst[written] = c
		written++
		read++
	}

	return written, read, nil
}

// UTF8ToASCII converts a block of UTF-8 bytes to ASCII.
//
// Any code point >= 0x80 is an input error. A truncated trailing
// sequence stops conversion without error; the caller classifies it
// from read < len(src).
func UTF8ToASCII(dst, src []byte) (written, read int, err error) {
	for read < len(src) {
		r, size, complete := decodeRune(src[read:])
		if !complete {
			break
		}
		if r == utf8.RuneError && size == 1 {
			return written, read, errs.ErrInput
		}
		if r >= 0x80 {
			return written, read, errs.ErrInput
		}
		if written >= len(dst) {
			break
		}
		dst[written] = byte(r)
		written++
		read += size
	}

	return written, read, nil
}
