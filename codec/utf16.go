package codec

import (
	"unicode/utf8"

	"github.com/arcline/charconv/endian"
	"github.com/arcline/charconv/errs"
)

// UTF16BOM is the byte-order mark emitted before the first chunk when
// encoding to "UTF-16" without an explicit byte order, which defaults
// to little-endian.
var UTF16BOM = []byte{0xFF, 0xFE}

// UTF16ToUTF8 returns a converter that decodes UTF-16 in the byte order
// of engine into UTF-8.
//
// The converter consumes 16-bit code units. A unit in the high
// surrogate range must be followed by a low surrogate or the call fails
// with an input error; a pair split across the end of src is left
// unconsumed for the next call, as is a trailing odd byte.
func UTF16ToUTF8(engine endian.EndianEngine) ConvertFunc {
	return func(dst, src []byte) (written, read int, err error) {
		for read+2 <= len(src) {
			c := uint32(engine.Uint16(src[read:]))
			size := 2
			if c&0xFC00 == 0xD800 {
				if read+4 > len(src) {
					// Surrogate pair split across chunks.
					break
				}
				d := uint32(engine.Uint16(src[read+2:]))
				if d&0xFC00 != 0xDC00 {
					return written, read, errs.ErrInput
				}
				c = (c&0x03FF)<<10 | (d & 0x03FF)
				c += 0x10000
				size = 4
			}

			n := utf8Len(c)
			if written+n > len(dst) {
				break
			}
			putUTF8(dst[written:], c, n)
			written += n
			read += size
		}

		return written, read, nil
	}
}

// UTF8ToUTF16 returns a converter that encodes UTF-8 into UTF-16 in the
// byte order of engine, producing a BOM-less stream. Code points beyond
// the basic multilingual plane become surrogate pairs.
func UTF8ToUTF16(engine endian.EndianEngine) ConvertFunc {
	return func(dst, src []byte) (written, read int, err error) {
		for read < len(src) {
			r, size, complete := decodeRune(src[read:])
			if !complete {
				break
			}
			if r == utf8.RuneError && size == 1 {
				return written, read, errs.ErrInput
			}

			if r < 0x10000 {
				if written+2 > len(dst) {
					break
				}
				engine.PutUint16(dst[written:], uint16(r))
				written += 2
			} else {
				if written+4 > len(dst) {
					break
				}
				c := uint32(r) - 0x10000
				engine.PutUint16(dst[written:], uint16(0xD800|c>>10))
				engine.PutUint16(dst[written+2:], uint16(0xDC00|c&0x03FF))
				written += 4
			}
			read += size
		}

		return written, read, nil
	}
}

// utf8Len returns the encoded length of code point c, 1 to 4 bytes.
func utf8Len(c uint32) int {
	switch {
	case c < 0x80:
		return 1
	case c < 0x800:
		return 2
	case c < 0x10000:
		return 3
	default:
		return 4
	}
}

// putUTF8 writes code point c as n UTF-8 bytes at the start of dst.
func putUTF8(dst []byte, c uint32, n int) {
	switch n {
	case 1:
		dst[0] = byte(c)
	case 2:
		dst[0] = byte(c>>6&0x1F) | 0xC0
		dst[1] = byte(c&0x3F) | 0x80
	case 3:
		dst[0] = byte(c>>12&0x0F) | 0xE0
		dst[1] = byte(c>>6&0x3F) | 0x80
		dst[2] = byte(c&0x3F) | 0x80
	default:
		dst[0] = byte(c>>18&0x07) | 0xF0
		dst[1] = byte(c>>12&0x3F) | 0x80
		dst[2] = byte(c>>6&0x3F) | 0x80
		dst[3] = byte(c&0x3F) | 0x80
	}
}
