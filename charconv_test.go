package charconv

import (
	"bytes"
	"io"
	"strings"
	"testing"
	"testing/iotest"

	"github.com/stretchr/testify/require"

	"github.com/arcline/charconv/charset"
	"github.com/arcline/charconv/errs"
)

func TestDetect(t *testing.T) {
	require := require.New(t)

	require.Equal(charset.UTF8, Detect([]byte("<?xml version=\"1.0\"?>")))
	require.Equal(charset.UTF16LE, Detect([]byte{0xFF, 0xFE}))
	require.Equal(charset.None, Detect(nil))
}

func TestReaderLatin1(t *testing.T) {
	require := require.New(t)

	src := bytes.NewReader([]byte{'c', 'a', 'f', 0xE9, ' ', 0xFC, 'b', 'e', 'r'})
	r, err := NewReader("ISO-8859-1", src)
	require.NoError(err)

	got, err := io.ReadAll(r)
	require.NoError(err)
	require.Equal("café über", string(got))
	require.NoError(r.Close())
}

func TestReaderUTF8Passthrough(t *testing.T) {
	require := require.New(t)

	r, err := NewReader("utf-8", strings.NewReader("unchanged 日本語"))
	require.NoError(err)

	got, err := io.ReadAll(r)
	require.NoError(err)
	require.Equal("unchanged 日本語", string(got))
	require.NoError(r.Close())
}

func TestReaderUTF16OneByteAtATime(t *testing.T) {
	require := require.New(t)

	// Code units arrive split across reads; the reader must carry the
	// fragments until they complete.
	src := []byte{'h', 0x00, 'i', 0x00, 0x3D, 0xD8, 0x00, 0xDE} // "hi😀" in UTF-16LE
	r, err := NewReader("UTF-16LE", iotest.OneByteReader(bytes.NewReader(src)))
	require.NoError(err)

	got, err := io.ReadAll(r)
	require.NoError(err)
	require.Equal("hi😀", string(got))
	require.NoError(r.Close())
}

func TestReaderTruncatedStream(t *testing.T) {
	require := require.New(t)

	// An odd number of UTF-16 bytes cannot end on a unit boundary.
	src := []byte{'h', 0x00, 'i'}
	r, err := NewReader("UTF-16LE", bytes.NewReader(src))
	require.NoError(err)
	defer r.Close()

	_, err = io.ReadAll(r)
	require.ErrorIs(err, errs.ErrPartial)
}

func TestReaderMalformedByteAtEOF(t *testing.T) {
	require := require.New(t)

	// The final read delivers data together with io.EOF; the bad byte
	// at the end must still be reported as an input error, not as a
	// truncated stream.
	src := iotest.DataErrReader(bytes.NewReader([]byte{'o', 'k', 0xFF}))
	r, err := NewReader("ASCII", src)
	require.NoError(err)
	defer r.Close()

	got, err := io.ReadAll(r)
	require.ErrorIs(err, errs.ErrInput)
	require.Equal("ok", string(got))
}

func TestReaderTruncatedStreamAtEOF(t *testing.T) {
	require := require.New(t)

	// Same data-with-EOF delivery, but the leftover is a clean half of
	// a code unit: that one is a truncated stream.
	src := iotest.DataErrReader(bytes.NewReader([]byte{'h', 0x00, 'i'}))
	r, err := NewReader("UTF-16LE", src)
	require.NoError(err)
	defer r.Close()

	got, err := io.ReadAll(r)
	require.ErrorIs(err, errs.ErrPartial)
	require.Equal("h", string(got))
}

func TestReaderUnknownEncoding(t *testing.T) {
	require := require.New(t)

	_, err := NewReader("x-no-such-encoding", strings.NewReader(""))
	require.ErrorIs(err, errs.ErrUnsupportedEncoding)
}

func TestReaderAfterClose(t *testing.T) {
	require := require.New(t)

	r, err := NewReader("ISO-8859-1", strings.NewReader("x"))
	require.NoError(err)
	require.NoError(r.Close())

	_, err = r.Read(make([]byte, 4))
	require.ErrorIs(err, errs.ErrConverterClosed)
}

func TestWriterLatin1(t *testing.T) {
	require := require.New(t)

	var sink bytes.Buffer
	w, err := NewWriter("ISO-8859-1", &sink)
	require.NoError(err)

	_, err = w.Write([]byte("café"))
	require.NoError(err)
	require.NoError(w.Close())
	require.Equal([]byte{'c', 'a', 'f', 0xE9}, sink.Bytes())
}

func TestWriterSplitSequence(t *testing.T) {
	require := require.New(t)

	var sink bytes.Buffer
	w, err := NewWriter("ISO-8859-1", &sink)
	require.NoError(err)

	// The é sequence is split across two writes.
	full := []byte("caf\xC3\xA9!")
	n, err := w.Write(full[:4])
	require.NoError(err)
	require.Equal(4, n)

	_, err = w.Write(full[4:])
	require.NoError(err)
	require.NoError(w.Close())
	require.Equal([]byte{'c', 'a', 'f', 0xE9, '!'}, sink.Bytes())
}

func TestWriterEscapesUnrepresentable(t *testing.T) {
	require := require.New(t)

	var sink bytes.Buffer
	w, err := NewWriter("ASCII", &sink)
	require.NoError(err)

	_, err = w.Write([]byte("A€B"))
	require.NoError(err)
	require.NoError(w.Close())
	require.Equal("A&#8364;B", sink.String())
}

func TestWriterUTF16EmitsBOM(t *testing.T) {
	require := require.New(t)

	var sink bytes.Buffer
	w, err := NewWriter("UTF-16", &sink)
	require.NoError(err)

	_, err = w.Write([]byte("hi"))
	require.NoError(err)
	require.NoError(w.Close())
	require.Equal([]byte{0xFF, 0xFE, 'h', 0x00, 'i', 0x00}, sink.Bytes())
}

func TestWriterUTF8Passthrough(t *testing.T) {
	require := require.New(t)

	var sink bytes.Buffer
	w, err := NewWriter("UTF8", &sink)
	require.NoError(err)

	_, err = w.Write([]byte("as is"))
	require.NoError(err)
	require.NoError(w.Close())
	require.Equal("as is", sink.String())
}

func TestWriterCloseMidSequence(t *testing.T) {
	require := require.New(t)

	var sink bytes.Buffer
	w, err := NewWriter("ISO-8859-1", &sink)
	require.NoError(err)

	_, err = w.Write([]byte{'a', 0xC3})
	require.NoError(err)

	err = w.Close()
	require.ErrorIs(err, errs.ErrPartial)
}

func TestRoundTripThroughBackend(t *testing.T) {
	require := require.New(t)

	const text = "Привет, мир"

	var encoded bytes.Buffer
	w, err := NewWriter("windows-1251", &encoded)
	require.NoError(err)
	_, err = w.Write([]byte(text))
	require.NoError(err)
	require.NoError(w.Close())
	require.Equal(len([]rune(text)), encoded.Len(), "single byte per character")

	r, err := NewReader("windows-1251", bytes.NewReader(encoded.Bytes()))
	require.NoError(err)
	got, err := io.ReadAll(r)
	require.NoError(err)
	require.Equal(text, string(got))
	require.NoError(r.Close())
}
