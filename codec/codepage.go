package codec

import "github.com/arcline/charconv/errs"

// CodePage holds the transcoding tables for one legacy 8-bit encoding.
//
// Unicode maps the high half of the code page (bytes 0x80-0xFF) to code
// points; a zero entry marks an undefined byte. Transcode is the
// inverse as a flat two-level table: the first 32 entries index 2-byte
// UTF-8 lead values, the next 16 index 3-byte lead values, and the
// remainder is a sequence of 64-entry blocks selected by those indices
// and subscripted by the trailing 6-bit groups. A zero result marks a
// code point the page cannot represent.
//
// Both tables are immutable static data; CodePage values are shared and
// never mutated after package init.
type CodePage struct {
	Name      string
	Unicode   *[128]uint16
	Transcode []byte
}

// Decoder returns a converter that decodes the code page into UTF-8.
//
// Bytes below 0x80 copy through; higher bytes look up their code point
// directly and expand to two or three UTF-8 bytes. An undefined byte is
// an input error.
func (cp *CodePage) Decoder() ConvertFunc {
	table := cp.Unicode

	return func(dst, src []byte) (written, read int, err error) {
		for read < len(src) {
			b := src[read]
			if b < 0x80 {
				if written >= len(dst) {
					break
				}
				dst[written] = b
				written++
				read++
				continue
			}

			c := table[b-0x80]
			if c == 0 {
				return written, read, errs.ErrInput
			}
			if c < 0x800 {
				if written+2 > len(dst) {
					break
				}
				dst[written] = byte(c>>6&0x1F) | 0xC0
				dst[written+1] = byte(c&0x3F) | 0x80
				written += 2
			} else {
				if written+3 > len(dst) {
					break
				}
				dst[written] = byte(c>>12&0x0F) | 0xE0
				dst[written+1] = byte(c>>6&0x3F) | 0x80
				dst[written+2] = byte(c&0x3F) | 0x80
				written += 3
			}
			read++
		}

		return written, read, nil
	}
}

// Encoder returns a converter that encodes UTF-8 into the code page.
//
// ASCII bytes copy through. Two- and three-byte UTF-8 sequences run
// through the two-level table; a zero lookup result means the code
// point is not representable in this page and is an input error, as is
// any four-byte sequence. A truncated trailing sequence stops
// conversion without error.
func (cp *CodePage) Encoder() ConvertFunc {
	xlat := cp.Transcode

	return func(dst, src []byte) (written, read int, err error) {
		for read < len(src) {
			d := src[read]
			switch {
			case d < 0x80:
				if written >= len(dst) {
					return written, read, nil
				}
				dst[written] = d
				written++
				read++

			case d < 0xC0:
				// Continuation byte in leading position.
				return written, read, errs.ErrInput

			case d < 0xE0:
				if read+2 > len(src) {
					return written, read, nil
				}
				c := src[read+1]
				if c&0xC0 != 0x80 {
					return written, read, errs.ErrInput
				}
				b := xlat[48+int(c&0x3F)+int(xlat[d&0x1F])*64]
				if b == 0 {
					return written, read, errs.ErrInput
				}
				if written >= len(dst) {
					return written, read, nil
				}
				dst[written] = b
				written++
				read += 2

			case d < 0xF0:
				if read+3 > len(src) {
					return written, read, nil
				}
				c1 := src[read+1]
				c2 := src[read+2]
				if c1&0xC0 != 0x80 || c2&0xC0 != 0x80 {
					return written, read, errs.ErrInput
				}
				b := xlat[48+int(c2&0x3F)+int(xlat[48+int(c1&0x3F)+int(xlat[32+int(d&0x0F)])*64])*64]
				if b == 0 {
					return written, read, errs.ErrInput
				}
				if written >= len(dst) {
					return written, read, nil
				}
				dst[written] = b
				written++
				read += 3

			default:
				// No 8-bit code page reaches U+10000.
				return written, read, errs.ErrInput
			}
		}

		return written, read, nil
	}
}
