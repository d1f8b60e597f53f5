package backend

import (
	"errors"
	"fmt"

	"golang.org/x/text/transform"

	"github.com/arcline/charconv/errs"
)

// pivotBufSize bounds the bytes a Pivot can hold between calls.
const pivotBufSize = 4096

// Pivot is a stateful converter for one direction of one stream.
//
// Unlike Stateless, a Pivot keeps converting when the caller's
// destination fills up: the overflow is staged in an internal pivot
// buffer and delivered at the start of the next call. Because that
// buffer carries stream state, a Pivot must never be shared between
// streams; the registry opens a fresh pair per resolution and Close
// retires it for good.
type Pivot struct {
	name  string
	tr    transform.Transformer
	pivot []byte // transcoded bytes not yet delivered
	stash [pivotBufSize]byte

	// pending holds a conversion error hit while staging; it is
	// delivered once the staged bytes have drained.
	pending error
	closed  bool
}

// OpenPivot resolves name through the IANA index and opens a stateful
// converter for one direction: decode (external to UTF-8) when output
// is false, encode when output is true.
func OpenPivot(name string, output bool) (*Pivot, error) {
	e, err := lookupEncoding(name)
	if err != nil {
		return nil, err
	}

	var tr transform.Transformer
	if output {
		tr = e.NewEncoder().Transformer
	} else {
		tr = e.NewDecoder().Transformer
	}

	return &Pivot{name: name, tr: tr}, nil
}

// Name returns the encoding name the converter was opened with.
func (p *Pivot) Name() string {
	return p.name
}

// Convert transcodes src into dst, draining any bytes staged by a
// previous overflowing call first.
//
// When dst fills up the converter keeps consuming src into the pivot
// buffer and reports errs.ErrSpace; the consumed count still covers the
// staged bytes, so the caller must not resubmit them. errs.ErrPartial
// marks a trailing incomplete sequence, errs.ErrInput an unconvertible
// one. A closed converter fails with errs.ErrConverterClosed.
func (p *Pivot) Convert(dst, src []byte) (written, read int, err error) {
	if p.closed {
		return 0, 0, errs.ErrConverterClosed
	}

	if len(p.pivot) > 0 {
		n := copy(dst, p.pivot)
		written = n
		if n < len(p.pivot) {
			p.pivot = p.pivot[:copy(p.pivot, p.pivot[n:])]

			return written, 0, errs.ErrSpace
		}
		p.pivot = nil
	}

	if p.pending != nil {
		err = p.pending
		p.pending = nil

		return written, 0, err
	}

	nDst, nSrc, terr := p.tr.Transform(dst[written:], src, false)
	written += nDst
	read = nSrc

	switch {
	case terr == nil:
		return written, read, nil
	case errors.Is(terr, transform.ErrShortDst):
		// Keep consuming into the pivot buffer so the overflow is
		// delivered on the next call.
		nP, nSrc2, serr := p.tr.Transform(p.stash[:], src[read:], false)
		p.pivot = p.stash[:nP]
		read += nSrc2
		if serr != nil && !errors.Is(serr, transform.ErrShortDst) && !errors.Is(serr, transform.ErrShortSrc) {
			// A bad sequence found while staging must not get lost
			// behind the staged bytes.
			p.pending = fmt.Errorf("%w: %s", errs.ErrInput, serr)
		}

		return written, read, errs.ErrSpace
	case errors.Is(terr, transform.ErrShortSrc):
		return written, read, errs.ErrPartial
	default:
		return written, read, fmt.Errorf("%w: %s", errs.ErrInput, terr)
	}
}

// Close retires the converter. Any staged bytes are dropped and every
// later Convert fails with errs.ErrConverterClosed; closing twice is a
// no-op.
func (p *Pivot) Close() error {
	p.closed = true
	p.pivot = nil

	return nil
}
