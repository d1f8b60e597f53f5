// Package charconv converts byte streams between external character
// encodings and UTF-8.
//
// The package front door is small: Detect sniffs an encoding from the
// first bytes of a document, NewReader wraps an io.Reader so its
// contents arrive as UTF-8, and NewWriter wraps an io.Writer so UTF-8
// written to it leaves in the target encoding. Everything resolves
// through the default registry; use the registry package directly for
// custom handlers, aliases, or backend policy.
package charconv

import (
	"errors"
	"fmt"
	"io"

	"github.com/arcline/charconv/charset"
	"github.com/arcline/charconv/convert"
	"github.com/arcline/charconv/errs"
	"github.com/arcline/charconv/internal/pool"
	"github.com/arcline/charconv/registry"
)

// readChunkSize is how much raw input a Reader pulls per fill.
const readChunkSize = 8 * 1024

// Detect guesses the encoding of a document from its first bytes.
// See charset.Detect.
func Detect(head []byte) charset.Encoding {
	return charset.Detect(head)
}

// Reader decodes a stream in the named encoding into UTF-8.
type Reader struct {
	r io.Reader
	h *registry.Handler

	raw  *pool.ByteBuffer // undecoded input
	conv *pool.ByteBuffer // decoded output not yet delivered

	rerr   error // deferred error from the underlying reader
	closed bool
}

// NewReader returns a Reader that decodes r from the named encoding
// into UTF-8. A UTF-8 source reads through unchanged. The name resolves
// via the default registry; unresolvable names fail with
// errs.ErrUnsupportedEncoding.
//
// Close the Reader when done so backend converters and buffers are
// released.
func NewReader(name string, r io.Reader) (*Reader, error) {
	h, err := registry.DefaultRegistry().Open(name, false)
	if err != nil {
		return nil, err
	}

	return &Reader{
		r:    r,
		h:    h,
		raw:  pool.GetConvBuffer(),
		conv: pool.GetConvBuffer(),
	}, nil
}

// Read fills p with decoded UTF-8 bytes.
func (cr *Reader) Read(p []byte) (int, error) {
	if cr.closed {
		return 0, fmt.Errorf("%w: reader", errs.ErrConverterClosed)
	}

	for {
		if cr.conv.Len() > 0 {
			n := copy(p, cr.conv.Bytes())
			cr.conv.ShrinkFront(n)

			return n, nil
		}

		if cr.h == nil {
			// UTF-8 passthrough.
			return cr.r.Read(p)
		}

		if cr.rerr != nil {
			if cr.raw.Len() > 0 {
				// Let the engine classify the leftover bytes first: a
				// malformed sequence is an input error even at the end
				// of the stream.
				n, cerr := convert.Input(cr.h, cr.conv, cr.raw)
				if cerr != nil {
					return 0, cerr
				}
				if n > 0 {
					continue
				}
				if errors.Is(cr.rerr, io.EOF) {
					// The stream ended inside a multi-byte sequence.
					return 0, fmt.Errorf("%w: truncated input stream", errs.ErrPartial)
				}
			}

			return 0, cr.rerr
		}

		cr.raw.Grow(readChunkSize)
		n, err := cr.r.Read(cr.raw.Tail()[:readChunkSize])
		cr.raw.AddLen(n)
		cr.rerr = err

		if cr.raw.Len() > 0 {
			if _, cerr := convert.Input(cr.h, cr.conv, cr.raw); cerr != nil {
				return 0, cerr
			}
		}
	}
}

// Close releases the Reader's handler and buffers. The underlying
// reader is left open.
func (cr *Reader) Close() error {
	if cr.closed {
		return nil
	}
	cr.closed = true

	pool.PutConvBuffer(cr.raw)
	pool.PutConvBuffer(cr.conv)
	cr.raw = nil
	cr.conv = nil

	if cr.h != nil {
		return cr.h.Close()
	}

	return nil
}

// Writer encodes UTF-8 written to it into the named encoding.
type Writer struct {
	w io.Writer
	h *registry.Handler

	buf  *pool.ByteBuffer // complete UTF-8 awaiting encoding
	conv *pool.ByteBuffer // encoded output awaiting the sink

	// tail holds an incomplete UTF-8 sequence split across Write calls.
	tail    [4]byte
	tailLen int

	wroteInit bool
	closed    bool
}

// NewWriter returns a Writer that encodes UTF-8 into the named encoding
// and writes the result to w. A UTF-8 target writes through unchanged.
// Unrepresentable code points are escaped as decimal character
// references rather than failing the stream.
//
// Each Write pushes its encoded output through to w. Close the Writer
// when done; it verifies the stream did not end mid-sequence and
// releases the handler and buffers.
func NewWriter(name string, w io.Writer) (*Writer, error) {
	h, err := registry.DefaultRegistry().Open(name, true)
	if err != nil {
		return nil, err
	}

	return &Writer{
		w:    w,
		h:    h,
		buf:  pool.GetConvBuffer(),
		conv: pool.GetConvBuffer(),
	}, nil
}

// Write encodes p, which together with earlier writes must form valid
// UTF-8, and sends the encoded bytes to the underlying writer. A
// multi-byte sequence may be split across Write calls; the fragment is
// carried until completed.
func (cw *Writer) Write(p []byte) (int, error) {
	if cw.closed {
		return 0, fmt.Errorf("%w: writer", errs.ErrConverterClosed)
	}

	if cw.h == nil {
		return cw.w.Write(p)
	}

	if !cw.wroteInit {
		cw.wroteInit = true
		if _, err := convert.OutputInit(cw.h, cw.conv); err != nil {
			return 0, err
		}
	}

	if cw.tailLen > 0 {
		cw.buf.MustWrite(cw.tail[:cw.tailLen])
		cw.tailLen = 0
	}
	cw.buf.MustWrite(p)

	// Hold back a trailing incomplete sequence; the encoder treats
	// truncated UTF-8 in its input as an internal error.
	complete := completeUTF8Prefix(cw.buf.Bytes())
	if hold := cw.buf.Len() - complete; hold > 0 {
		cw.tailLen = copy(cw.tail[:], cw.buf.Bytes()[complete:])
		cw.buf.SetLength(complete)
	}

	for cw.buf.Len() > 0 {
		if _, err := convert.Output(cw.h, cw.conv, cw.buf); err != nil {
			return 0, err
		}
	}

	if cw.conv.Len() > 0 {
		if _, err := cw.conv.WriteTo(cw.w); err != nil {
			return 0, err
		}
		cw.conv.Reset()
	}

	return len(p), nil
}

// Close verifies the stream ended on a sequence boundary and releases
// the Writer's handler and buffers. The underlying writer is left open.
func (cw *Writer) Close() error {
	if cw.closed {
		return nil
	}
	cw.closed = true

	var err error
	if cw.tailLen > 0 {
		err = fmt.Errorf("%w: stream ends inside a UTF-8 sequence", errs.ErrPartial)
	}

	pool.PutConvBuffer(cw.buf)
	pool.PutConvBuffer(cw.conv)
	cw.buf = nil
	cw.conv = nil

	if cw.h != nil {
		if cerr := cw.h.Close(); err == nil {
			err = cerr
		}
	}

	return err
}

// completeUTF8Prefix returns the length of the longest prefix of p that
// does not end inside a multi-byte UTF-8 sequence. Invalid bytes count
// as complete; the encoder rejects them with better context.
func completeUTF8Prefix(p []byte) int {
	end := len(p)
	for i := end - 1; i >= 0 && i >= end-4; i-- {
		b := p[i]
		if b < 0x80 {
			return end
		}
		if b&0xC0 == 0xC0 {
			// Lead byte: complete only if its sequence fits.
			need := 2
			switch {
			case b >= 0xF0:
				need = 4
			case b >= 0xE0:
				need = 3
			}
			if i+need <= end {
				return end
			}

			return i
		}
	}

	return end
}
