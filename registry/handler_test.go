package registry

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/arcline/charconv/codec"
	"github.com/arcline/charconv/errs"
)

func TestHandlerDecodeChunk_Space(t *testing.T) {
	require := require.New(t)

	h := NewRegistry().NewHandler("X-TEST", codec.ASCIIToUTF8, codec.UTF8ToASCII)

	dst := make([]byte, 4)
	written, read, err := h.DecodeChunk(dst, []byte("abcdefgh"))
	require.ErrorIs(err, errs.ErrSpace)
	require.Equal(4, written)
	require.Equal(4, read)
}

func TestHandlerDecodeChunk_PartialAbsorbed(t *testing.T) {
	require := require.New(t)

	// A lone half of a UTF-16 code unit: no progress is possible, but
	// on the decode path that is a clean stop, not an error.
	dst := make([]byte, 16)
	written, read, err := utf16LEHandler.DecodeChunk(dst, []byte{0x41})
	require.NoError(err)
	require.Equal(0, written)
	require.Equal(0, read)
}

func TestHandlerDecodeChunk_InputError(t *testing.T) {
	require := require.New(t)

	dst := make([]byte, 16)
	written, read, err := asciiHandler.DecodeChunk(dst, []byte{'a', 0xFF})
	require.ErrorIs(err, errs.ErrInput)
	require.Equal(1, written)
	require.Equal(1, read)
}

func TestHandlerEncodeChunk_TruncatedIsInternal(t *testing.T) {
	require := require.New(t)

	dst := make([]byte, 16)
	_, _, err := latin1Handler.EncodeChunk(dst, []byte{0xC3}) // half a sequence
	require.ErrorIs(err, errs.ErrInternal)
}

func TestHandlerEncodeChunk_Space(t *testing.T) {
	require := require.New(t)

	dst := make([]byte, 2)
	written, read, err := latin1Handler.EncodeChunk(dst, []byte("abcd"))
	require.ErrorIs(err, errs.ErrSpace)
	require.Equal(2, written)
	require.Equal(2, read)
}

func TestHandlerEncodeInit(t *testing.T) {
	require := require.New(t)

	dst := make([]byte, 8)
	n, err := utf16Handler.EncodeInit(dst)
	require.NoError(err)
	require.Equal(2, n)
	require.Equal([]byte{0xFF, 0xFE}, dst[:n])

	// No room: nothing is emitted.
	n, err = utf16Handler.EncodeInit(dst[:1])
	require.NoError(err)
	require.Equal(0, n)

	// No preamble: nothing is emitted.
	n, err = utf16LEHandler.EncodeInit(dst)
	require.NoError(err)
	require.Equal(0, n)
}

func TestHandlerDirectionSupport(t *testing.T) {
	require := require.New(t)

	r := NewRegistry()

	decodeOnly := r.NewHandler("X-DEC", codec.ASCIIToUTF8, nil)
	require.True(decodeOnly.SupportsDecode())
	require.False(decodeOnly.SupportsEncode())

	_, _, err := decodeOnly.EncodeChunk(make([]byte, 4), []byte("a"))
	require.ErrorIs(err, errs.ErrUnsupportedEncoding)

	encodeOnly := r.NewHandler("X-ENC", nil, codec.UTF8ToASCII)
	require.False(encodeOnly.SupportsDecode())
	require.True(encodeOnly.SupportsEncode())

	_, _, err = encodeOnly.DecodeChunk(make([]byte, 4), []byte("a"))
	require.ErrorIs(err, errs.ErrUnsupportedEncoding)
}

func TestHandlerClose_BuiltinNoop(t *testing.T) {
	require := require.New(t)

	require.NoError(latin1Handler.Close())

	// Still usable afterwards.
	dst := make([]byte, 4)
	written, _, err := latin1Handler.DecodeChunk(dst, []byte{0xE9})
	require.NoError(err)
	require.Equal(2, written)
}
