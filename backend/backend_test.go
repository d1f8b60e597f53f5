package backend

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/arcline/charconv/errs"
)

func TestOpenStateless_UnknownName(t *testing.T) {
	require := require.New(t)

	_, err := OpenStateless("x-no-such-encoding")
	require.ErrorIs(err, errs.ErrUnsupportedEncoding)
}

func TestStatelessDecode(t *testing.T) {
	require := require.New(t)

	s, err := OpenStateless("windows-1251")
	require.NoError(err)
	require.Equal("windows-1251", s.Name())

	// 0xC0..0xC2 are А, Б, В in windows-1251.
	dst := make([]byte, 16)
	written, read, err := s.Convert(false, dst, []byte{0xC0, 0xC1, 0xC2})
	require.NoError(err)
	require.Equal(3, read)
	require.Equal("АБВ", string(dst[:written]))

	require.NoError(s.Close())
}

func TestStatelessEncode(t *testing.T) {
	require := require.New(t)

	s, err := OpenStateless("windows-1251")
	require.NoError(err)

	dst := make([]byte, 16)
	written, read, err := s.Convert(true, dst, []byte("АБВ"))
	require.NoError(err)
	require.Equal(6, read)
	require.Equal([]byte{0xC0, 0xC1, 0xC2}, dst[:written])
}

func TestStatelessShortDst(t *testing.T) {
	require := require.New(t)

	s, err := OpenStateless("windows-1251")
	require.NoError(err)

	src := bytes.Repeat([]byte{0xC0}, 10)
	dst := make([]byte, 4)

	written, read, err := s.Convert(false, dst, src)
	require.ErrorIs(err, errs.ErrSpace)
	require.Equal(4, written)
	require.Equal(2, read, "only delivered code points are consumed")
}

func TestStatelessShortSrc(t *testing.T) {
	require := require.New(t)

	s, err := OpenStateless("UTF-16BE")
	require.NoError(err)

	dst := make([]byte, 16)
	_, read, err := s.Convert(false, dst, []byte{0x00, 'a', 0x00})
	require.ErrorIs(err, errs.ErrPartial)
	require.Equal(2, read, "the half code unit stays unconsumed")
}

func TestPivotConsumesPastFullDestination(t *testing.T) {
	require := require.New(t)

	p, err := OpenPivot("windows-1251", false)
	require.NoError(err)
	require.Equal("windows-1251", p.Name())

	src := bytes.Repeat([]byte{0xC0}, 10)

	// The destination holds two of the ten characters; the rest is
	// staged internally and the whole input counts as consumed.
	dst := make([]byte, 4)
	written, read, err := p.Convert(dst, src)
	require.ErrorIs(err, errs.ErrSpace)
	require.Equal(4, written)
	require.Equal(10, read)

	// The staged bytes drain on the next call.
	rest := make([]byte, 64)
	var drained []byte
	drained = append(drained, dst[:written]...)
	for {
		written, read, err = p.Convert(rest, nil)
		drained = append(drained, rest[:written]...)
		require.Equal(0, read)
		if err == nil {
			break
		}
		require.ErrorIs(err, errs.ErrSpace)
	}

	require.Equal(bytes.Repeat([]byte("А"), 10), drained)
}

func TestPivotStagedErrorSurvivesDrain(t *testing.T) {
	require := require.New(t)

	p, err := OpenPivot("windows-1251", true)
	require.NoError(err)

	// Ten encodable characters followed by one windows-1251 cannot
	// represent. The tiny destination forces the tail through the
	// staging path, where the bad rune is discovered.
	src := append(bytes.Repeat([]byte("А"), 10), []byte("Ω")...)

	dst := make([]byte, 4)
	written, read, err := p.Convert(dst, src)
	require.ErrorIs(err, errs.ErrSpace)
	require.Equal(4, written)
	require.Equal(20, read, "everything up to the bad rune is consumed")

	// The staged bytes drain, then the error held from staging
	// surfaces instead of being lost.
	rest := make([]byte, 64)
	written, read, err = p.Convert(rest, src[20:])
	require.ErrorIs(err, errs.ErrInput)
	require.Equal(6, written)
	require.Equal(0, read)
}

func TestPivotSingleUse(t *testing.T) {
	require := require.New(t)

	p, err := OpenPivot("windows-1251", false)
	require.NoError(err)

	dst := make([]byte, 16)
	_, _, err = p.Convert(dst, []byte{0xC0})
	require.NoError(err)

	require.NoError(p.Close())
	require.NoError(p.Close(), "closing twice is harmless")

	_, _, err = p.Convert(dst, []byte{0xC0})
	require.ErrorIs(err, errs.ErrConverterClosed)
}

func TestOpenPivot_UnknownName(t *testing.T) {
	require := require.New(t)

	_, err := OpenPivot("x-no-such-encoding", true)
	require.ErrorIs(err, errs.ErrUnsupportedEncoding)
}
