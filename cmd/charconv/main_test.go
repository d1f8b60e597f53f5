package main

import (
	"bytes"
	"io"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/arcline/charconv/charset"
	"github.com/arcline/charconv/registry"
)

func TestSourceName(t *testing.T) {
	require := require.New(t)

	// Byte order must survive the mapping.
	require.Equal("UTF-16LE", sourceName(charset.UTF16LE))
	require.Equal("UTF-16BE", sourceName(charset.UTF16BE))

	// Everything else maps to its canonical spelling, not the display
	// form the resolver cannot parse.
	require.Equal("UTF-8", sourceName(charset.UTF8))
	require.Equal("EBCDIC", sourceName(charset.EBCDIC))
	require.Equal("ISO-10646-UCS-4", sourceName(charset.UCS4BE))
	require.Equal("ISO-10646-UCS-4", sourceName(charset.UCS4LE))
	require.Equal("ISO-8859-5", sourceName(charset.ISO8859_5))
}

func TestSourceNameResolves(t *testing.T) {
	require := require.New(t)

	// Every tag the detector can produce for a convertible encoding
	// must yield a name the registry resolves.
	for _, enc := range []charset.Encoding{
		charset.UTF16LE,
		charset.UTF16BE,
		charset.EBCDIC,
	} {
		h, err := registry.DefaultRegistry().Open(sourceName(enc), false)
		require.NoError(err, "resolving %s", enc)
		require.NotNil(h)
		require.NoError(h.Close())
	}
}

func TestSniffStripsBOM(t *testing.T) {
	require := require.New(t)

	enc, rest, err := sniff(bytes.NewReader([]byte{0xFF, 0xFE, 'h', 0x00}))
	require.NoError(err)
	require.Equal(charset.UTF16LE, enc)

	replay, err := io.ReadAll(rest)
	require.NoError(err)
	require.Equal([]byte{'h', 0x00}, replay, "the BOM is not replayed")
}
