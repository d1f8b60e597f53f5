// Package charset defines the canonical encoding tags known to charconv
// and the byte-pattern detection of a document's encoding from its
// leading bytes.
package charset

// Encoding identifies a character encoding. The zero value is None.
type Encoding uint8

const (
	None      Encoding = 0  // None represents an undetected or absent encoding.
	UTF8      Encoding = 1  // UTF8 represents UTF-8.
	UTF16LE   Encoding = 2  // UTF16LE represents UTF-16 little-endian.
	UTF16BE   Encoding = 3  // UTF16BE represents UTF-16 big-endian.
	UCS4LE    Encoding = 4  // UCS4LE represents UCS-4 little-endian.
	UCS4BE    Encoding = 5  // UCS4BE represents UCS-4 big-endian.
	EBCDIC    Encoding = 6  // EBCDIC represents EBCDIC (IBM-037 family).
	UCS4_2143 Encoding = 7  // UCS4_2143 represents UCS-4 with unusual byte order 2143.
	UCS4_3412 Encoding = 8  // UCS4_3412 represents UCS-4 with unusual byte order 3412.
	UCS2      Encoding = 9  // UCS2 represents ISO-10646-UCS-2.
	ISO8859_1 Encoding = 10 // ISO8859_1 represents ISO-8859-1 (Latin-1).
	ISO8859_2 Encoding = 11 // ISO8859_2 represents ISO-8859-2.
	ISO8859_3 Encoding = 12 // ISO8859_3 represents ISO-8859-3.
	ISO8859_4 Encoding = 13 // ISO8859_4 represents ISO-8859-4.
	ISO8859_5 Encoding = 14 // ISO8859_5 represents ISO-8859-5.
	ISO8859_6 Encoding = 15 // ISO8859_6 represents ISO-8859-6.
	ISO8859_7 Encoding = 16 // ISO8859_7 represents ISO-8859-7.
	ISO8859_8 Encoding = 17 // ISO8859_8 represents ISO-8859-8.
	ISO8859_9 Encoding = 18 // ISO8859_9 represents ISO-8859-9.
	ISO2022JP Encoding = 19 // ISO2022JP represents ISO-2022-JP.
	ShiftJIS  Encoding = 20 // ShiftJIS represents Shift-JIS.
	EUCJP     Encoding = 21 // EUCJP represents EUC-JP.
	ASCII     Encoding = 22 // ASCII represents pure 7-bit ASCII.
	Error     Encoding = 23 // Error represents an unrecognized encoding name.
)

func (e Encoding) String() string {
	switch e {
	case None:
		return "None"
	case UTF8:
		return "UTF-8"
	case UTF16LE:
		return "UTF-16LE"
	case UTF16BE:
		return "UTF-16BE"
	case UCS4LE:
		return "UCS-4LE"
	case UCS4BE:
		return "UCS-4BE"
	case EBCDIC:
		return "EBCDIC"
	case UCS4_2143:
		return "UCS-4-2143"
	case UCS4_3412:
		return "UCS-4-3412"
	case UCS2:
		return "UCS-2"
	case ISO8859_1:
		return "ISO-8859-1"
	case ISO8859_2:
		return "ISO-8859-2"
	case ISO8859_3:
		return "ISO-8859-3"
	case ISO8859_4:
		return "ISO-8859-4"
	case ISO8859_5:
		return "ISO-8859-5"
	case ISO8859_6:
		return "ISO-8859-6"
	case ISO8859_7:
		return "ISO-8859-7"
	case ISO8859_8:
		return "ISO-8859-8"
	case ISO8859_9:
		return "ISO-8859-9"
	case ISO2022JP:
		return "ISO-2022-JP"
	case ShiftJIS:
		return "Shift-JIS"
	case EUCJP:
		return "EUC-JP"
	case ASCII:
		return "ASCII"
	default:
		return "Error"
	}
}

// CanonicalName returns the preferred spelling of the encoding used as
// the registry key, or "" for tags that have no canonical name (None,
// Error, ASCII detection-only variants).
//
// Both UTF-16 byte orders collapse to "UTF-16", and all UCS-4 byte
// orders collapse to "ISO-10646-UCS-4", matching the names used in XML
// encoding declarations.
func (e Encoding) CanonicalName() string {
	switch e {
	case UTF8:
		return "UTF-8"
	case UTF16LE, UTF16BE:
		return "UTF-16"
	case EBCDIC:
		return "EBCDIC"
	case UCS4LE, UCS4BE, UCS4_2143, UCS4_3412:
		return "ISO-10646-UCS-4"
	case UCS2:
		return "ISO-10646-UCS-2"
	case ISO8859_1:
		return "ISO-8859-1"
	case ISO8859_2:
		return "ISO-8859-2"
	case ISO8859_3:
		return "ISO-8859-3"
	case ISO8859_4:
		return "ISO-8859-4"
	case ISO8859_5:
		return "ISO-8859-5"
	case ISO8859_6:
		return "ISO-8859-6"
	case ISO8859_7:
		return "ISO-8859-7"
	case ISO8859_8:
		return "ISO-8859-8"
	case ISO8859_9:
		return "ISO-8859-9"
	case ISO2022JP:
		return "ISO-2022-JP"
	case ShiftJIS:
		return "Shift-JIS"
	case EUCJP:
		return "EUC-JP"
	default:
		return ""
	}
}

// Detect guesses the encoding of a document from its first bytes,
// following the priority order of appendix F of the XML 1.0
// recommendation. It returns None when fewer than 2 bytes are available
// or no pattern matches.
//
// Detection is pure classification: no bytes are consumed and the
// patterns are checked in a fixed priority order, first match wins.
// The 4-byte patterns cover the UCS-4 byte orders, the EBCDIC
// signature, the UTF-8 "<?xm" prefix and the UTF-16 "<?" prefixes;
// the 3-byte pattern is the UTF-8 byte-order mark; the 2-byte patterns
// are the UTF-16 byte-order marks.
func Detect(head []byte) Encoding {
	if len(head) >= 4 {
		switch {
		case head[0] == 0x00 && head[1] == 0x00 && head[2] == 0x00 && head[3] == 0x3C:
			return UCS4BE
		case head[0] == 0x3C && head[1] == 0x00 && head[2] == 0x00 && head[3] == 0x00:
			return UCS4LE
		case head[0] == 0x00 && head[1] == 0x00 && head[2] == 0x3C && head[3] == 0x00:
			return UCS4_2143
		case head[0] == 0x00 && head[1] == 0x3C && head[2] == 0x00 && head[3] == 0x00:
			return UCS4_3412
		case head[0] == 0x4C && head[1] == 0x6F && head[2] == 0xA7 && head[3] == 0x94:
			return EBCDIC
		case head[0] == 0x3C && head[1] == 0x3F && head[2] == 0x78 && head[3] == 0x6D:
			return UTF8
		case head[0] == 0x3C && head[1] == 0x00 && head[2] == 0x3F && head[3] == 0x00:
			return UTF16LE
		case head[0] == 0x00 && head[1] == 0x3C && head[2] == 0x00 && head[3] == 0x3F:
			return UTF16BE
		}
	}
	if len(head) >= 3 {
		// UTF-8 encoded BOM, per the June 2001 errata on XML 1.0.
		if head[0] == 0xEF && head[1] == 0xBB && head[2] == 0xBF {
			return UTF8
		}
	}
	if len(head) >= 2 {
		if head[0] == 0xFE && head[1] == 0xFF {
			return UTF16BE
		}
		if head[0] == 0xFF && head[1] == 0xFE {
			return UTF16LE
		}
	}

	return None
}
