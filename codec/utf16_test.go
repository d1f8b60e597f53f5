package codec

import (
	"testing"
	"unicode/utf16"

	"github.com/stretchr/testify/require"

	"github.com/arcline/charconv/endian"
	"github.com/arcline/charconv/errs"
)

func encodeUTF16(t *testing.T, s string, engine endian.EndianEngine) []byte {
	t.Helper()

	var buf []byte
	for _, u := range utf16.Encode([]rune(s)) {
		buf = engine.AppendUint16(buf, u)
	}

	return buf
}

func TestUTF16ToUTF8_LittleEndian(t *testing.T) {
	require := require.New(t)

	const text = "héllo 😀"
	src := encodeUTF16(t, text, endian.GetLittleEndianEngine())
	dst := make([]byte, 64)

	convert := UTF16ToUTF8(endian.GetLittleEndianEngine())
	written, read, err := convert(dst, src)
	require.NoError(err)
	require.Equal(len(src), read)
	require.Equal(text, string(dst[:written]))
}

func TestUTF16ToUTF8_BigEndian(t *testing.T) {
	require := require.New(t)

	const text = "δοκιμή"
	src := encodeUTF16(t, text, endian.GetBigEndianEngine())
	dst := make([]byte, 64)

	convert := UTF16ToUTF8(endian.GetBigEndianEngine())
	written, read, err := convert(dst, src)
	require.NoError(err)
	require.Equal(len(src), read)
	require.Equal(text, string(dst[:written]))
}

func TestUTF16ToUTF8_LoneHighSurrogate(t *testing.T) {
	require := require.New(t)

	engine := endian.GetLittleEndianEngine()
	src := engine.AppendUint16(nil, 0xD83D) // high surrogate
	src = engine.AppendUint16(src, 0x0041)  // not a low surrogate

	dst := make([]byte, 16)
	convert := UTF16ToUTF8(engine)
	_, read, err := convert(dst, src)
	require.ErrorIs(err, errs.ErrInput)
	require.Equal(0, read)
}

func TestUTF16ToUTF8_SplitSurrogatePair(t *testing.T) {
	require := require.New(t)

	engine := endian.GetLittleEndianEngine()
	full := encodeUTF16(t, "😀", engine)
	require.Len(full, 4)

	dst := make([]byte, 16)
	convert := UTF16ToUTF8(engine)

	// Only the high half arrives in this chunk.
	written, read, err := convert(dst, full[:2])
	require.NoError(err)
	require.Equal(0, written)
	require.Equal(0, read, "the split pair waits for the next chunk")

	written, read, err = convert(dst, full)
	require.NoError(err)
	require.Equal(4, read)
	require.Equal("😀", string(dst[:written]))
}

func TestUTF16ToUTF8_OddTrailingByte(t *testing.T) {
	require := require.New(t)

	engine := endian.GetLittleEndianEngine()
	src := encodeUTF16(t, "ab", engine)
	src = append(src, 0x63) // half of the next code unit

	dst := make([]byte, 16)
	convert := UTF16ToUTF8(engine)
	written, read, err := convert(dst, src)
	require.NoError(err)
	require.Equal(2, written)
	require.Equal(4, read, "the odd byte stays unconsumed")
}

func TestUTF8ToUTF16_RoundTrip(t *testing.T) {
	for _, engine := range []endian.EndianEngine{
		endian.GetLittleEndianEngine(),
		endian.GetBigEndianEngine(),
	} {
		const text = "mixed ascii, ümlauts, ελληνικά, 🀄"

		dst := make([]byte, 256)
		written, read, err := UTF8ToUTF16(engine)(dst, []byte(text))
		require.NoError(t, err)
		require.Equal(t, len(text), read)

		back := make([]byte, 256)
		bw, br, err := UTF16ToUTF8(engine)(back, dst[:written])
		require.NoError(t, err)
		require.Equal(t, written, br)
		require.Equal(t, text, string(back[:bw]))
	}
}

func TestUTF8ToUTF16_DestinationFull(t *testing.T) {
	require := require.New(t)

	// Room for exactly one code unit; the second rune must wait.
	dst := make([]byte, 2)
	written, read, err := UTF8ToUTF16(endian.GetLittleEndianEngine())(dst, []byte("ab"))
	require.NoError(err)
	require.Equal(2, written)
	require.Equal(1, read)
}

func TestUTF8ToUTF16_SurrogatePairNeedsFourBytes(t *testing.T) {
	require := require.New(t)

	// A supplementary-plane rune cannot be split across the boundary.
	dst := make([]byte, 2)
	written, read, err := UTF8ToUTF16(endian.GetLittleEndianEngine())(dst, []byte("😀"))
	require.NoError(err)
	require.Equal(0, written)
	require.Equal(0, read)
}
