package registry

import (
	"errors"
	"fmt"

	"github.com/arcline/charconv/backend"
	"github.com/arcline/charconv/codec"
	"github.com/arcline/charconv/errs"
)

// Handler converts between one external encoding and UTF-8.
//
// A handler is exactly one of three kinds: built-in or registered
// (ConvertFunc pair), stateless backend, or stateful backend (a Pivot
// per direction). Either direction may be missing; SupportsDecode and
// SupportsEncode report what the handler can do.
//
// Built-in and registered handlers are immutable and safe for
// concurrent use. Backend handlers carry converter state and must be
// confined to one stream.
type Handler struct {
	name string

	// Built-in or registered converter pair. input decodes the external
	// encoding to UTF-8, output encodes UTF-8 to the external encoding.
	input  codec.ConvertFunc
	output codec.ConvertFunc

	// preamble is emitted by EncodeInit before the first encoded chunk,
	// e.g. the UTF-16 byte-order mark.
	preamble []byte

	stateless   *backend.Stateless
	statefulIn  *backend.Pivot
	statefulOut *backend.Pivot
}

// Name returns the handler's encoding name.
func (h *Handler) Name() string {
	return h.name
}

// SupportsDecode reports whether the handler can convert the external
// encoding to UTF-8.
func (h *Handler) SupportsDecode() bool {
	return h.input != nil || h.stateless != nil || h.statefulIn != nil
}

// SupportsEncode reports whether the handler can convert UTF-8 to the
// external encoding.
func (h *Handler) SupportsEncode() bool {
	return h.output != nil || h.stateless != nil || h.statefulOut != nil
}

// DecodeChunk converts one chunk of externally encoded bytes in src to
// UTF-8 in dst.
//
// Counts are valid on every return. Possible errors are errs.ErrSpace
// (dst filled before src was consumed), errs.ErrInput (unconvertible
// sequence at src[read:]), and errs.ErrUnsupportedEncoding when the
// handler has no decode direction. A trailing incomplete sequence is
// not an error on the decode path; it is simply left unconsumed.
func (h *Handler) DecodeChunk(dst, src []byte) (written, read int, err error) {
	switch {
	case h.input != nil:
		written, read, err = h.input(dst, src)
		if err == nil {
			err = classifyStop(written, read, len(src))
		}
	case h.stateless != nil:
		written, read, err = h.stateless.Convert(false, dst, src)
	case h.statefulIn != nil:
		written, read, err = h.statefulIn.Convert(dst, src)
	default:
		return 0, 0, fmt.Errorf("%w: %s cannot decode", errs.ErrUnsupportedEncoding, h.name)
	}

	// More input will complete the trailing sequence; the engine
	// resubmits it with the next chunk.
	if errors.Is(err, errs.ErrPartial) {
		err = nil
	}

	return written, read, err
}

// EncodeChunk converts one chunk of UTF-8 bytes in src to the external
// encoding in dst.
//
// Counts are valid on every return. Possible errors are errs.ErrSpace,
// errs.ErrInput, errs.ErrUnsupportedEncoding when the handler has no
// encode direction, and errs.ErrInternal for a trailing incomplete
// sequence: the encode path owns complete UTF-8 input, so truncation
// there means the caller's buffer handling is broken.
func (h *Handler) EncodeChunk(dst, src []byte) (written, read int, err error) {
	switch {
	case h.output != nil:
		written, read, err = h.output(dst, src)
		if err == nil {
			err = classifyStop(written, read, len(src))
		}
	case h.stateless != nil:
		written, read, err = h.stateless.Convert(true, dst, src)
	case h.statefulOut != nil:
		written, read, err = h.statefulOut.Convert(dst, src)
	default:
		return 0, 0, fmt.Errorf("%w: %s cannot encode", errs.ErrUnsupportedEncoding, h.name)
	}

	if errors.Is(err, errs.ErrPartial) {
		err = fmt.Errorf("%w: truncated UTF-8 on encode", errs.ErrInternal)
	}

	return written, read, err
}

// EncodeInit writes the handler's output preamble, if any, to dst and
// returns the number of bytes written. A dst too small for the preamble
// produces nothing.
func (h *Handler) EncodeInit(dst []byte) (int, error) {
	if len(h.preamble) == 0 || len(dst) < len(h.preamble) {
		return 0, nil
	}

	return copy(dst, h.preamble), nil
}

// Close releases any backend converters the handler holds. Built-in and
// registered handlers are shared and have nothing to release, so Close
// on them is a no-op.
func (h *Handler) Close() error {
	if h.stateless != nil {
		return h.stateless.Close()
	}
	if h.statefulIn != nil {
		_ = h.statefulIn.Close()
	}
	if h.statefulOut != nil {
		_ = h.statefulOut.Close()
	}

	return nil
}

// classifyStop turns a clean converter stop into the engine's verdict:
// if input remains, it stopped either because dst filled up (progress
// was made) or because only an incomplete trailing sequence is left.
func classifyStop(written, read, srcLen int) error {
	if read >= srcLen {
		return nil
	}
	if written > 0 {
		return errs.ErrSpace
	}

	return errs.ErrPartial
}
