// Package backend adapts the golang.org/x/text transcoding facility to
// the handler contract used by the registry.
//
// Two adapter shapes exist, mirroring the two kinds of system
// converters the engine supports: Stateless is a shift-style converter
// pair that transcodes directly between the external encoding and
// UTF-8, and Pivot is a stateful converter that stages bytes through an
// internal pivot buffer and is valid for a single stream only.
package backend

import (
	"errors"
	"fmt"
	"strings"

	"golang.org/x/text/encoding"
	"golang.org/x/text/encoding/ianaindex"
	"golang.org/x/text/transform"

	"github.com/arcline/charconv/errs"
)

// Stateless is a shift-style converter pair for one external encoding:
// one transformer decoding into UTF-8 and one encoding out of it.
// Each call transcodes as many bytes as fit and reports the shift in
// consumed/produced counts; no bytes are held between calls, so a
// Stateless converter can serve successive chunks of one stream.
type Stateless struct {
	name string
	dec  transform.Transformer // external encoding -> UTF-8
	enc  transform.Transformer // UTF-8 -> external encoding
}

// OpenStateless resolves name through the IANA index and opens the
// converter pair for it.
//
// An unrecognized or unsupported name fails with
// errs.ErrUnsupportedEncoding so resolution can fall through to the
// next backend; any other failure propagates as is.
func OpenStateless(name string) (*Stateless, error) {
	e, err := lookupEncoding(name)
	if err != nil {
		return nil, err
	}

	return &Stateless{
		name: name,
		dec:  e.NewDecoder().Transformer,
		enc:  e.NewEncoder().Transformer,
	}, nil
}

// Name returns the encoding name the converter was opened with.
func (s *Stateless) Name() string {
	return s.name
}

// Convert transcodes src into dst in the requested direction: decode
// (external to UTF-8) when output is false, encode when output is true.
//
// Returned errors follow the engine taxonomy: errs.ErrSpace when dst
// filled up, errs.ErrPartial when src ends mid-sequence, errs.ErrInput
// for an unconvertible sequence. Counts are valid on every return.
func (s *Stateless) Convert(output bool, dst, src []byte) (written, read int, err error) {
	t := s.dec
	if output {
		t = s.enc
	}

	written, read, terr := t.Transform(dst, src, false)
	switch {
	case terr == nil:
		return written, read, nil
	case errors.Is(terr, transform.ErrShortDst):
		return written, read, errs.ErrSpace
	case errors.Is(terr, transform.ErrShortSrc):
		return written, read, errs.ErrPartial
	default:
		return written, read, fmt.Errorf("%w: %s", errs.ErrInput, terr)
	}
}

// Close resets both transformers. The converter may be reopened for
// another stream by resolution; Close itself never fails.
func (s *Stateless) Close() error {
	s.dec.Reset()
	s.enc.Reset()

	return nil
}

// lookupEncoding resolves an encoding name to an x/text Encoding via
// the IANA registry, trying the MIME index as a fallback for names the
// canonical index does not carry.
func lookupEncoding(name string) (encoding.Encoding, error) {
	name = strings.TrimSpace(name)

	e, err := ianaindex.IANA.Encoding(name)
	if err != nil || e == nil {
		e, err = ianaindex.MIME.Encoding(name)
	}
	if err != nil || e == nil {
		// The index knows the name but has no converter for it, or the
		// name is not registered at all. Either way resolution should
		// fall through to the next backend.
		return nil, fmt.Errorf("%w: %q", errs.ErrUnsupportedEncoding, name)
	}

	return e, nil
}
