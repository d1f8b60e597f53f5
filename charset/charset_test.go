package charset

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestDetect(t *testing.T) {
	tests := []struct {
		name string
		head []byte
		want Encoding
	}{
		{"empty", nil, None},
		{"single byte", []byte{0x3C}, None},
		{"xml declaration", []byte{0x3C, 0x3F, 0x78, 0x6D}, UTF8},
		{"utf8 bom", []byte{0xEF, 0xBB, 0xBF}, UTF8},
		{"utf8 bom with content", []byte{0xEF, 0xBB, 0xBF, 0x3C}, UTF8},
		{"utf16be bom", []byte{0xFE, 0xFF}, UTF16BE},
		{"utf16le bom", []byte{0xFF, 0xFE}, UTF16LE},
		{"utf16le declaration", []byte{0x3C, 0x00, 0x3F, 0x00}, UTF16LE},
		{"utf16be declaration", []byte{0x00, 0x3C, 0x00, 0x3F}, UTF16BE},
		{"ucs4 big endian", []byte{0x00, 0x00, 0x00, 0x3C}, UCS4BE},
		{"ucs4 little endian", []byte{0x3C, 0x00, 0x00, 0x00}, UCS4LE},
		{"ucs4 2143", []byte{0x00, 0x00, 0x3C, 0x00}, UCS4_2143},
		{"ucs4 3412", []byte{0x00, 0x3C, 0x00, 0x00}, UCS4_3412},
		{"ebcdic", []byte{0x4C, 0x6F, 0xA7, 0x94}, EBCDIC},
		{"plain text", []byte("hello"), None},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			require.Equal(t, tt.want, Detect(tt.head))
		})
	}
}

func TestDetectPriority(t *testing.T) {
	require := require.New(t)

	// A UTF-16LE BOM followed by "<?" must resolve by the BOM, not by
	// any longer pattern; four bytes are available but none of the
	// 4-byte patterns match.
	require.Equal(UTF16LE, Detect([]byte{0xFF, 0xFE, 0x3C, 0x00}))
	require.Equal(UTF16BE, Detect([]byte{0xFE, 0xFF, 0x00, 0x3C}))
}

func TestCanonicalName(t *testing.T) {
	require := require.New(t)

	require.Equal("UTF-8", UTF8.CanonicalName())
	require.Equal("UTF-16", UTF16LE.CanonicalName())
	require.Equal("UTF-16", UTF16BE.CanonicalName())
	require.Equal("ISO-10646-UCS-4", UCS4LE.CanonicalName())
	require.Equal("ISO-10646-UCS-4", UCS4_2143.CanonicalName())
	require.Equal("ISO-8859-5", ISO8859_5.CanonicalName())
	require.Equal("", None.CanonicalName())
	require.Equal("", ASCII.CanonicalName())
	require.Equal("", Error.CanonicalName())
}

func TestString(t *testing.T) {
	require := require.New(t)

	require.Equal("None", None.String())
	require.Equal("UTF-16LE", UTF16LE.String())
	require.Equal("Shift-JIS", ShiftJIS.String())
	require.Equal("Error", Error.String())
	require.Equal("Error", Encoding(200).String())
}
