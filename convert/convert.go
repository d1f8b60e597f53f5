// Package convert drives a conversion handler over growable buffers.
//
// The engine owns the chunking policy: it carves bounded chunks off the
// input buffer, makes room in the output buffer, retries when the
// handler runs out of space, and on the encode path escapes
// unrepresentable code points as decimal character references instead
// of failing the stream.
package convert

import (
	"errors"
	"fmt"
	"unicode/utf8"

	"github.com/arcline/charconv/errs"
	"github.com/arcline/charconv/internal/pool"
	"github.com/arcline/charconv/registry"
)

const (
	// minDecodeSpace is the least output room guaranteed to a decode
	// chunk, so even pathological expansion makes progress.
	minDecodeSpace = 4096

	// maxInputChunk bounds the input consumed by one encode chunk.
	maxInputChunk = 64 * 1024

	// maxOutputChunk bounds the output produced by one encode chunk.
	maxOutputChunk = 256 * 1024
)

// Input decodes the contents of in into UTF-8 appended to out,
// returning the number of bytes produced.
//
// Consumed bytes are removed from the front of in; a trailing
// incomplete sequence stays there for the next call. The output buffer
// is grown and the conversion retried as long as the handler reports it
// is out of space, so a single call drains everything decodable. An
// input error is deferred while the erroring chunk still made progress;
// it surfaces on the next call, when no progress is possible.
func Input(h *registry.Handler, out, in *pool.ByteBuffer) (int, error) {
	if h == nil || out == nil || in == nil {
		return 0, fmt.Errorf("%w: nil argument to Input", errs.ErrInternal)
	}
	if in.Len() == 0 {
		return 0, nil
	}

	total := 0
	consumed := 0
	for {
		if out.Avail() < minDecodeSpace {
			out.Grow(minDecodeSpace)
		}

		written, read, err := h.DecodeChunk(out.Tail(), in.Bytes()[consumed:])
		out.AddLen(written)
		total += written
		consumed += read

		if errors.Is(err, errs.ErrSpace) {
			continue
		}

		in.ShrinkFront(consumed)

		if err != nil && written == 0 {
			return total, err
		}

		return total, nil
	}
}

// Output encodes one chunk of UTF-8 from in into the external encoding
// appended to out, returning the number of bytes produced.
//
// Consumed bytes are removed from the front of in. At most 64KiB of
// input is taken and at most 256KiB of output produced per call, so
// callers loop until in is empty. When the handler rejects a code point
// the engine escapes it as a decimal character reference ("&#NNNN;")
// encoded through the same handler and keeps going; a reference the
// handler cannot fully encode fails hard with errs.ErrInternal, as does
// a truncated UTF-8 sequence, since the input buffer is expected to
// hold complete sequences.
func Output(h *registry.Handler, out, in *pool.ByteBuffer) (int, error) {
	if h == nil || out == nil || in == nil {
		return 0, fmt.Errorf("%w: nil argument to Output", errs.ErrInternal)
	}

	total := 0
	for {
		toconv := in.Len()
		if toconv == 0 {
			return total, nil
		}
		if toconv > maxInputChunk {
			toconv = maxInputChunk
		}
		if toconv*4 >= out.Avail() {
			out.Grow(toconv * 4)
		}
		avail := out.Avail()
		if avail > maxOutputChunk {
			avail = maxOutputChunk
		}

		written, read, err := h.EncodeChunk(out.Tail()[:avail], in.Bytes()[:toconv])
		out.AddLen(written)
		in.ShrinkFront(read)
		total += written

		switch {
		case err == nil:
			return total, nil
		case errors.Is(err, errs.ErrSpace):
			// Grown on the next pass.
		case errors.Is(err, errs.ErrInput):
			n, eerr := escapeChar(h, out, in)
			if eerr != nil {
				return total, eerr
			}
			total += n
		default:
			if total > 0 {
				return total, nil
			}

			return total, err
		}
	}
}

// OutputInit emits the handler's encoding preamble (such as a UTF-16
// byte-order mark) into out and returns the number of bytes written.
// Call it once per stream, before the first Output.
func OutputInit(h *registry.Handler, out *pool.ByteBuffer) (int, error) {
	if h == nil || out == nil {
		return 0, fmt.Errorf("%w: nil argument to OutputInit", errs.ErrInternal)
	}

	out.Grow(4)
	n, err := h.EncodeInit(out.Tail())
	if err != nil {
		return 0, err
	}
	out.AddLen(n)

	return n, nil
}

// escapeChar replaces the code point at the front of in with its
// decimal character reference, encoded through h into out. The
// reference must convert completely in one pass or the handler is in an
// unrecoverable state.
func escapeChar(h *registry.Handler, out, in *pool.ByteBuffer) (int, error) {
	r, size := utf8.DecodeRune(in.Bytes())
	if r == utf8.RuneError && size <= 1 {
		return 0, fmt.Errorf("%w: invalid UTF-8 at rejected code point", errs.ErrInternal)
	}

	ref := fmt.Appendf(nil, "&#%d;", r)

	if out.Avail() < len(ref)*4 {
		out.Grow(len(ref) * 4)
	}
	written, read, err := h.EncodeChunk(out.Tail(), ref)
	if err != nil || read != len(ref) {
		return 0, fmt.Errorf("%w: cannot encode character reference for U+%04X", errs.ErrInternal, r)
	}
	out.AddLen(written)
	in.ShrinkFront(size)

	return written, nil
}
