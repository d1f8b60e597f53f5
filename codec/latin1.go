package codec

import (
	"unicode/utf8"

	"github.com/arcline/charconv/errs"
)

// Latin1ToUTF8 converts a block of ISO-8859-1 bytes to UTF-8.
//
// Every Latin-1 byte maps to a code point of the same value, so bytes
// below 0x80 copy through and bytes >= 0x80 expand to the two-byte
// sequence 0xC0|(b>>6), 0x80|(b&0x3F). The conversion cannot fail;
// it stops when dst lacks room for the next (possibly two-byte) output.
func Latin1ToUTF8(dst, src []byte) (written, read int, err error) {
	for read < len(src) {
		b := src[read]
		if b < 0x80 {
			if written >= len(dst) {
				break
			}
			dst[written] = b
			written++
		} else {
			if written+2 > len(dst) {
				break
			}
			dst[written] = (b >> 6) | 0xC0
			dst[written+1] = (b & 0x3F) | 0x80
			written += 2
		}
		read++
	}

	return written, read, nil
}

// UTF8ToLatin1 converts a block of UTF-8 bytes to ISO-8859-1.
//
// Code points above 0xFF are an input error. A truncated trailing
// sequence stops conversion without error.
func UTF8ToLatin1(dst, src []byte) (written, read int, err error) {
	for read < len(src) {
		r, size, complete := decodeRune(src[read:])
		if !complete {
			break
		}
		if r == utf8.RuneError && size == 1 {
			return written, read, errs.ErrInput
		}
		if r > 0xFF {
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
