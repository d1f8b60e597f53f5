// Package registry resolves encoding names and detection tags to
// conversion handlers.
//
// Resolution walks a fixed order: the alias table, the built-in
// handlers, dynamically registered handlers, then the external backends
// (stateless first, stateful second). Built-in and registered handlers
// are shared; backend handlers are minted per resolution and owned by
// the caller.
package registry

import (
	"errors"
	"fmt"
	"strings"
	"sync"

	"github.com/arcline/charconv/backend"
	"github.com/arcline/charconv/charset"
	"github.com/arcline/charconv/codec"
	"github.com/arcline/charconv/endian"
	"github.com/arcline/charconv/errs"
)

// MaxHandlers bounds the number of dynamically registered handlers per
// registry.
const MaxHandlers = 50

var (
	utf8Handler    = &Handler{name: "UTF-8", input: codec.UTF8ToUTF8, output: codec.UTF8ToUTF8}
	utf16LEHandler = &Handler{
		name:   "UTF-16LE",
		input:  codec.UTF16ToUTF8(endian.GetLittleEndianEngine()),
		output: codec.UTF8ToUTF16(endian.GetLittleEndianEngine()),
	}
	utf16BEHandler = &Handler{
		name:   "UTF-16BE",
		input:  codec.UTF16ToUTF8(endian.GetBigEndianEngine()),
		output: codec.UTF8ToUTF16(endian.GetBigEndianEngine()),
	}
	// Plain "UTF-16" defaults to little-endian and stamps a BOM in
	// front of encoded output so the byte order is recoverable.
	utf16Handler = &Handler{
		name:     "UTF-16",
		input:    codec.UTF16ToUTF8(endian.GetLittleEndianEngine()),
		output:   codec.UTF8ToUTF16(endian.GetLittleEndianEngine()),
		preamble: codec.UTF16BOM,
	}
	latin1Handler  = &Handler{name: "ISO-8859-1", input: codec.Latin1ToUTF8, output: codec.UTF8ToLatin1}
	asciiHandler   = &Handler{name: "ASCII", input: codec.ASCIIToUTF8, output: codec.UTF8ToASCII}
	usASCIIHandler = &Handler{name: "US-ASCII", input: codec.ASCIIToUTF8, output: codec.UTF8ToASCII}

	iso8859_2Handler  = codePageHandler(codec.ISO8859_2Table)
	iso8859_5Handler  = codePageHandler(codec.ISO8859_5Table)
	iso8859_7Handler  = codePageHandler(codec.ISO8859_7Table)
	iso8859_15Handler = codePageHandler(codec.ISO8859_15Table)
)

var builtinHandlers = []*Handler{
	utf8Handler,
	utf16LEHandler,
	utf16BEHandler,
	utf16Handler,
	latin1Handler,
	asciiHandler,
	usASCIIHandler,
	iso8859_2Handler,
	iso8859_5Handler,
	iso8859_7Handler,
	iso8859_15Handler,
}

func codePageHandler(cp *codec.CodePage) *Handler {
	return &Handler{name: cp.Name, input: cp.Decoder(), output: cp.Encoder()}
}

type aliasEntry struct {
	name  string
	alias string
}

// Registry holds the alias table and the dynamically registered
// handlers. The zero value is not usable; create one with NewRegistry
// or use DefaultRegistry. All methods are safe for concurrent use.
type Registry struct {
	mu      sync.RWMutex
	aliases []aliasEntry
	dynamic []*Handler

	useStateless bool
	useStateful  bool
}

// Option configures a Registry.
type Option func(*Registry)

// WithoutStatelessBackend disables the stateless external backend, so
// resolution skips straight from registered handlers to the stateful
// backend.
func WithoutStatelessBackend() Option {
	return func(r *Registry) { r.useStateless = false }
}

// WithoutStatefulBackend disables the stateful external backend.
func WithoutStatefulBackend() Option {
	return func(r *Registry) { r.useStateful = false }
}

// NewRegistry creates a registry with an empty alias table, no
// registered handlers, and both external backends enabled.
func NewRegistry(opts ...Option) *Registry {
	r := &Registry{useStateless: true, useStateful: true}
	for _, opt := range opts {
		opt(r)
	}

	return r
}

var (
	defaultOnce     sync.Once
	defaultRegistry *Registry
)

// DefaultRegistry returns the process-wide registry shared by the
// package-level conveniences.
func DefaultRegistry() *Registry {
	defaultOnce.Do(func() {
		defaultRegistry = NewRegistry()
	})

	return defaultRegistry
}

// AddAlias maps alias to the encoding name. The alias is stored
// uppercased; registering an alias that already exists replaces its
// target.
func (r *Registry) AddAlias(name, alias string) {
	upper := strings.ToUpper(alias)

	r.mu.Lock()
	defer r.mu.Unlock()

	for i := range r.aliases {
		if r.aliases[i].alias == upper {
			r.aliases[i].name = name

			return
		}
	}
	r.aliases = append(r.aliases, aliasEntry{name: name, alias: upper})
}

// DelAlias removes alias from the table, matching it case-insensitively
// like every other alias operation. It returns errs.ErrAliasNotFound if
// the alias is not registered.
func (r *Registry) DelAlias(alias string) error {
	upper := strings.ToUpper(alias)

	r.mu.Lock()
	defer r.mu.Unlock()

	for i := range r.aliases {
		if r.aliases[i].alias == upper {
			r.aliases = append(r.aliases[:i], r.aliases[i+1:]...)

			return nil
		}
	}

	return fmt.Errorf("%w: %q", errs.ErrAliasNotFound, alias)
}

// LookupAlias returns the encoding name alias maps to. The second
// return value reports whether the alias is registered.
func (r *Registry) LookupAlias(alias string) (string, bool) {
	upper := strings.ToUpper(alias)

	r.mu.RLock()
	defer r.mu.RUnlock()

	for i := range r.aliases {
		if r.aliases[i].alias == upper {
			return r.aliases[i].name, true
		}
	}

	return "", false
}

// ClearAliases drops every registered alias.
func (r *Registry) ClearAliases() {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.aliases = nil
}

// NewHandler builds a registrable handler for name from a converter
// pair. Either function may be nil for a one-directional handler; the
// name is resolved through the alias table and stored uppercased.
func (r *Registry) NewHandler(name string, input, output codec.ConvertFunc) *Handler {
	if resolved, ok := r.LookupAlias(name); ok {
		name = resolved
	}

	return &Handler{name: strings.ToUpper(name), input: input, output: output}
}

// Register adds a handler to the registry's dynamic set, making it
// resolvable by name. Registration beyond MaxHandlers fails with
// errs.ErrRegistryFull and the handler is discarded.
func (r *Registry) Register(h *Handler) error {
	if h == nil || h.name == "" {
		return fmt.Errorf("%w: nil or unnamed handler", errs.ErrInternal)
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if len(r.dynamic) >= MaxHandlers {
		return fmt.Errorf("%w: %d handlers", errs.ErrRegistryFull, MaxHandlers)
	}
	r.dynamic = append(r.dynamic, h)

	return nil
}

// Open resolves name to a handler for one direction of conversion:
// decode (external to UTF-8) when output is false, encode when output
// is true.
//
// UTF-8 and its spellings resolve to a nil handler with a nil error,
// meaning no conversion is needed. Otherwise the name is resolved
// through the alias table and matched case-insensitively against the
// built-in handlers, the registered handlers, and finally the external
// backends. A name nothing recognizes gets one last chance through the
// known-spelling table and tag lookup before failing with
// errs.ErrUnsupportedEncoding.
//
// Handlers minted by a backend are owned by the caller and must be
// closed after the stream; shared handlers ignore Close.
func (r *Registry) Open(name string, output bool) (*Handler, error) {
	if name == "" {
		return nil, fmt.Errorf("%w: empty encoding name", errs.ErrUnsupportedEncoding)
	}
	if isUTF8Name(name) {
		return nil, nil
	}

	resolved := name
	if target, ok := r.LookupAlias(name); ok {
		resolved = target
		if isUTF8Name(resolved) {
			return nil, nil
		}
	}

	h, err := r.findHandler(resolved, output)
	if h != nil || !errors.Is(err, errs.ErrUnsupportedEncoding) {
		return h, err
	}

	// Unknown spelling. Normalize through the known-name table and
	// retry by tag; this catches spellings like "UTF16".
	if enc := r.ParseName(name); enc != charset.Error && enc != charset.None {
		return r.Lookup(enc, output)
	}

	return nil, fmt.Errorf("%w: %q", errs.ErrUnsupportedEncoding, name)
}

// Lookup resolves a detection tag to a handler for one direction of
// conversion.
//
// charset.None and charset.UTF8 resolve to a nil handler with nil
// error. Tags with a single canonical spelling resolve directly; tags
// whose converters go by several names try a short ordered list of
// spellings until one resolves. charset.Error and the unusual UCS-4
// byte orders fail with errs.ErrUnsupportedEncoding.
func (r *Registry) Lookup(enc charset.Encoding, output bool) (*Handler, error) {
	switch enc {
	case charset.None, charset.UTF8:
		return nil, nil
	case charset.UTF16LE:
		return utf16LEHandler, nil
	case charset.UTF16BE:
		return utf16BEHandler, nil
	case charset.ASCII:
		return asciiHandler, nil
	case charset.ISO8859_1:
		return latin1Handler, nil
	case charset.EBCDIC:
		return r.findByNames([]string{"EBCDIC", "ebcdic", "EBCDIC-US", "IBM037"}, output)
	case charset.UCS4LE, charset.UCS4BE:
		return r.findByNames([]string{"ISO-10646-UCS-4", "UCS-4", "UCS4"}, output)
	case charset.UCS2:
		return r.findByNames([]string{"ISO-10646-UCS-2", "UCS-2", "UCS2"}, output)
	case charset.ShiftJIS:
		return r.findByNames([]string{"SHIFT-JIS", "SHIFT_JIS", "Shift_JIS"}, output)
	case charset.ISO2022JP:
		return r.findHandler("ISO-2022-JP", output)
	case charset.EUCJP:
		return r.findHandler("EUC-JP", output)
	case charset.ISO8859_2:
		return r.findHandler("ISO-8859-2", output)
	case charset.ISO8859_3:
		return r.findHandler("ISO-8859-3", output)
	case charset.ISO8859_4:
		return r.findHandler("ISO-8859-4", output)
	case charset.ISO8859_5:
		return r.findHandler("ISO-8859-5", output)
	case charset.ISO8859_6:
		return r.findHandler("ISO-8859-6", output)
	case charset.ISO8859_7:
		return r.findHandler("ISO-8859-7", output)
	case charset.ISO8859_8:
		return r.findHandler("ISO-8859-8", output)
	case charset.ISO8859_9:
		return r.findHandler("ISO-8859-9", output)
	default:
		// charset.Error and the 2143/3412 UCS-4 byte orders.
		return nil, fmt.Errorf("%w: %s", errs.ErrUnsupportedEncoding, enc)
	}
}

// findHandler matches name against the built-in handlers, the
// registered handlers, then the enabled backends, requiring support for
// the requested direction.
func (r *Registry) findHandler(name string, output bool) (*Handler, error) {
	for _, h := range builtinHandlers {
		if strings.EqualFold(h.name, name) && supports(h, output) {
			return h, nil
		}
	}

	r.mu.RLock()
	dynamic := r.dynamic
	useStateless := r.useStateless
	useStateful := r.useStateful
	r.mu.RUnlock()

	for _, h := range dynamic {
		if strings.EqualFold(h.name, name) && supports(h, output) {
			return h, nil
		}
	}

	if useStateless {
		sl, err := backend.OpenStateless(name)
		if err == nil {
			return &Handler{name: name, stateless: sl}, nil
		}
		if !errors.Is(err, errs.ErrUnsupportedEncoding) {
			return nil, err
		}
	}

	if useStateful {
		h, err := openStatefulHandler(name, output)
		if err == nil {
			return h, nil
		}
		if !errors.Is(err, errs.ErrUnsupportedEncoding) {
			return nil, err
		}
	}

	return nil, fmt.Errorf("%w: %q", errs.ErrUnsupportedEncoding, name)
}

// openStatefulHandler opens stateful converters for name. Only the
// requested direction is required; the other is opened best-effort so
// the handler can serve it when the backend allows.
func openStatefulHandler(name string, output bool) (*Handler, error) {
	in, inErr := backend.OpenPivot(name, false)
	out, outErr := backend.OpenPivot(name, true)

	if output && outErr != nil {
		if in != nil {
			_ = in.Close()
		}

		return nil, outErr
	}
	if !output && inErr != nil {
		if out != nil {
			_ = out.Close()
		}

		return nil, inErr
	}

	return &Handler{name: name, statefulIn: in, statefulOut: out}, nil
}

// findByNames tries each spelling in order and returns the first
// handler that resolves.
func (r *Registry) findByNames(names []string, output bool) (*Handler, error) {
	var firstErr error
	for _, name := range names {
		h, err := r.findHandler(name, output)
		if h != nil {
			return h, nil
		}
		if firstErr == nil {
			firstErr = err
		}
	}

	return nil, firstErr
}

func supports(h *Handler, output bool) bool {
	if output {
		return h.SupportsEncode()
	}

	return h.SupportsDecode()
}

func isUTF8Name(name string) bool {
	return strings.EqualFold(name, "UTF-8") || strings.EqualFold(name, "UTF8")
}

// ParseName maps an encoding name, in any of its known spellings, to
// its detection tag. The name is resolved through the alias table
// first. Unknown names map to charset.Error; UTF-16 and UCS-2 without
// an explicit byte order map to the little-endian tag, since decoders
// sort out the real order from the byte-order mark.
func (r *Registry) ParseName(name string) charset.Encoding {
	if name == "" {
		return charset.None
	}
	if resolved, ok := r.LookupAlias(name); ok {
		name = resolved
	}

	switch strings.ToUpper(name) {
	case "UTF-8", "UTF8":
		return charset.UTF8
	case "UTF-16", "UTF16", "UTF-16LE":
		return charset.UTF16LE
	case "UTF-16BE":
		return charset.UTF16BE
	case "ISO-10646-UCS-2", "UCS-2", "UCS2":
		return charset.UCS2
	case "ISO-10646-UCS-4", "UCS-4", "UCS4":
		return charset.UCS4LE
	case "ISO-8859-1", "ISO-LATIN-1", "ISO LATIN 1":
		return charset.ISO8859_1
	case "ISO-8859-2", "ISO-LATIN-2", "ISO LATIN 2":
		return charset.ISO8859_2
	case "ISO-8859-3":
		return charset.ISO8859_3
	case "ISO-8859-4":
		return charset.ISO8859_4
	case "ISO-8859-5":
		return charset.ISO8859_5
	case "ISO-8859-6":
		return charset.ISO8859_6
	case "ISO-8859-7":
		return charset.ISO8859_7
	case "ISO-8859-8":
		return charset.ISO8859_8
	case "ISO-8859-9":
		return charset.ISO8859_9
	case "ISO-2022-JP":
		return charset.ISO2022JP
	case "EBCDIC":
		return charset.EBCDIC
	case "SHIFT_JIS", "SHIFT-JIS":
		return charset.ShiftJIS
	case "EUC-JP":
		return charset.EUCJP
	default:
		return charset.Error
	}
}
