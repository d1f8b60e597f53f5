package codec

import (
	"testing"
	"unicode/utf8"

	"github.com/stretchr/testify/require"

	"github.com/arcline/charconv/errs"
)

func TestCodePageDecode(t *testing.T) {
	require := require.New(t)

	decode := ISO8859_2Table.Decoder()
	dst := make([]byte, 16)

	// 0xB1 is LATIN SMALL LETTER A WITH OGONEK in ISO-8859-2.
	written, read, err := decode(dst, []byte{'a', 0xB1, 'b'})
	require.NoError(err)
	require.Equal(3, read)
	require.Equal("aąb", string(dst[:written]))
}

func TestCodePageDecode_UndefinedByte(t *testing.T) {
	require := require.New(t)

	// 0xD2 has no assignment in ISO-8859-7.
	decode := ISO8859_7Table.Decoder()
	dst := make([]byte, 16)

	written, read, err := decode(dst, []byte{'x', 0xD2})
	require.ErrorIs(err, errs.ErrInput)
	require.Equal(1, written)
	require.Equal(1, read)
}

func TestCodePageEncode(t *testing.T) {
	require := require.New(t)

	encode := ISO8859_15Table.Encoder()
	dst := make([]byte, 16)

	// ISO-8859-15 places the euro sign at 0xA4.
	written, read, err := encode(dst, []byte("a€b"))
	require.NoError(err)
	require.Equal(5, read)
	require.Equal([]byte{'a', 0xA4, 'b'}, dst[:written])
}

func TestCodePageEncode_Unrepresentable(t *testing.T) {
	require := require.New(t)

	// ISO-8859-2 has no euro sign.
	encode := ISO8859_2Table.Encoder()
	dst := make([]byte, 16)

	written, read, err := encode(dst, []byte("a€"))
	require.ErrorIs(err, errs.ErrInput)
	require.Equal(1, written)
	require.Equal(1, read)
}

func TestCodePageEncode_TruncatedTail(t *testing.T) {
	require := require.New(t)

	encode := ISO8859_5Table.Encoder()
	dst := make([]byte, 16)

	src := []byte("ж") // 0xD0 0xB6
	written, read, err := encode(dst, src[:1])
	require.NoError(err)
	require.Equal(0, written)
	require.Equal(0, read)
}

func TestCodePageRoundTrip(t *testing.T) {
	pages := []*CodePage{ISO8859_2Table, ISO8859_5Table, ISO8859_7Table, ISO8859_15Table}

	for _, cp := range pages {
		t.Run(cp.Name, func(t *testing.T) {
			require := require.New(t)

			decode := cp.Decoder()
			encode := cp.Encoder()

			for b := 0x80; b <= 0xFF; b++ {
				if cp.Unicode[b-0x80] == 0 {
					continue
				}

				utf := make([]byte, 4)
				written, read, err := decode(utf, []byte{byte(b)})
				require.NoError(err, "decode of 0x%02X", b)
				require.Equal(1, read)

				r, _ := utf8.DecodeRune(utf[:written])
				require.Equal(rune(cp.Unicode[b-0x80]), r)

				back := make([]byte, 4)
				bw, br, err := encode(back, utf[:written])
				require.NoError(err, "encode of U+%04X", r)
				require.Equal(written, br)
				require.Equal(1, bw)
				require.Equal(byte(b), back[0], "0x%02X does not survive the round trip", b)
			}
		})
	}
}

func TestCodePageEncode_RejectsSupplementaryPlane(t *testing.T) {
	require := require.New(t)

	encode := ISO8859_2Table.Encoder()
	dst := make([]byte, 16)

	_, _, err := encode(dst, []byte("😀"))
	require.ErrorIs(err, errs.ErrInput)
}
