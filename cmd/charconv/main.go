// Command charconv converts files or stdin between character encodings,
// with UTF-8 as the pivot.
//
// Usage:
//
//	charconv [-f ENC] [-t ENC] [-z] [-o FILE] [FILE...]
//
// Without -f the source encoding is sniffed from the first bytes of the
// input. Gzip-compressed input is unwrapped with -z, or automatically
// for files ending in .gz.
package main

import (
	"bytes"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/klauspost/compress/gzip"
	"github.com/spf13/pflag"

	"github.com/arcline/charconv"
	"github.com/arcline/charconv/charset"
)

func main() {
	var (
		from   string
		to     string
		output string
		gunzip bool
	)

	pflag.StringVarP(&from, "from", "f", "", "source encoding (sniffed when omitted)")
	pflag.StringVarP(&to, "to", "t", "UTF-8", "target encoding")
	pflag.StringVarP(&output, "output", "o", "", "output file (default stdout)")
	pflag.BoolVarP(&gunzip, "gunzip", "z", false, "treat input as gzip-compressed")
	pflag.Parse()

	out := io.Writer(os.Stdout)
	if output != "" {
		f, err := os.Create(output)
		if err != nil {
			fatal(err)
		}
		defer f.Close()
		out = f
	}

	ew, err := charconv.NewWriter(to, out)
	if err != nil {
		fatal(err)
	}

	args := pflag.Args()
	if len(args) == 0 {
		args = []string{"-"}
	}
	for _, name := range args {
		if err := convertFile(name, from, gunzip, ew); err != nil {
			fatal(fmt.Errorf("%s: %w", name, err))
		}
	}

	if err := ew.Close(); err != nil {
		fatal(err)
	}
}

func convertFile(name, from string, gunzip bool, out io.Writer) error {
	var in io.Reader
	if name == "-" {
		in = os.Stdin
	} else {
		f, err := os.Open(name)
		if err != nil {
			return err
		}
		defer f.Close()
		in = f
		if strings.HasSuffix(name, ".gz") {
			gunzip = true
		}
	}

	if gunzip {
		zr, err := gzip.NewReader(in)
		if err != nil {
			return err
		}
		defer zr.Close()
		in = zr
	}

	if from == "" {
		enc, rest, err := sniff(in)
		if err != nil {
			return err
		}
		in = rest
		if enc == charset.None {
			enc = charset.UTF8
		}
		from = sourceName(enc)
	}

	dec, err := charconv.NewReader(from, in)
	if err != nil {
		return err
	}
	defer dec.Close()

	_, err = io.Copy(out, dec)

	return err
}

// sourceName maps a detected tag to the spelling handed to the reader.
// The UTF-16 tags keep their explicit byte order; everything else uses
// the canonical spelling the resolver knows, since display names like
// "UCS-4BE" resolve nowhere.
func sourceName(enc charset.Encoding) string {
	switch enc {
	case charset.UTF16LE, charset.UTF16BE:
		return enc.String()
	}
	if name := enc.CanonicalName(); name != "" {
		return name
	}

	return enc.String()
}

// sniff reads up to four bytes, detects the encoding from them, and
// returns a reader replaying the stream. A byte-order mark that drove
// the detection is dropped rather than replayed.
func sniff(in io.Reader) (charset.Encoding, io.Reader, error) {
	head := make([]byte, 4)
	n, err := io.ReadFull(in, head)
	if err != nil && err != io.ErrUnexpectedEOF && err != io.EOF {
		return charset.None, nil, err
	}
	head = head[:n]

	enc := charset.Detect(head)
	switch {
	case enc == charset.UTF8 && bytes.HasPrefix(head, []byte{0xEF, 0xBB, 0xBF}):
		head = head[3:]
	case enc == charset.UTF16BE && bytes.HasPrefix(head, []byte{0xFE, 0xFF}),
		enc == charset.UTF16LE && bytes.HasPrefix(head, []byte{0xFF, 0xFE}):
		head = head[2:]
	}

	return enc, io.MultiReader(bytes.NewReader(head), in), nil
}

func fatal(err error) {
	fmt.Fprintln(os.Stderr, "charconv:", err)
	os.Exit(1)
}
