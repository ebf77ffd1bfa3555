// Copyright (c) 2026 H0llyW00dzZ All rights reserved.
//
// By accessing or using this software, you agree to be bound by the terms
// of the License Agreement, which you can find at LICENSE files.

package report

import (
	"errors"
	"fmt"
	"strings"

	"golang.org/x/text/encoding"
	"golang.org/x/text/encoding/htmlindex"
)

// ErrUnknownEncoding is returned for labels the WHATWG index does not know.
var ErrUnknownEncoding = errors.New("report: unknown encoding")

// Decoder converts child output from one character set to UTF-8. A nil
// Decoder passes bytes through unchanged.
type Decoder struct {
	name string
	enc  encoding.Encoding
}

// NewDecoder looks label up in the WHATWG encoding index ("windows-1252",
// "shift_jis", "utf-16le", ...). An empty label or any UTF-8 alias returns
// nil.
func NewDecoder(label string) (*Decoder, error) {
	label = strings.TrimSpace(label)
	if label == "" {
		return nil, nil
	}
	enc, err := htmlindex.Get(label)
	if err != nil {
		return nil, fmt.Errorf("%w: %q", ErrUnknownEncoding, label)
	}
	name, err := htmlindex.Name(enc)
	if err != nil {
		return nil, fmt.Errorf("%w: %q", ErrUnknownEncoding, label)
	}
	if name == "utf-8" {
		return nil, nil
	}
	return &Decoder{name: name, enc: enc}, nil
}

// Name returns the canonical encoding name.
func (d *Decoder) Name() string {
	if d == nil {
		return "utf-8"
	}
	return d.name
}

// Bytes converts b to UTF-8.
func (d *Decoder) Bytes(b []byte) ([]byte, error) {
	if d == nil || len(b) == 0 {
		return b, nil
	}
	out, err := d.enc.NewDecoder().Bytes(b)
	if err != nil {
		return b, fmt.Errorf("decode %s: %w", d.name, err)
	}
	return out, nil
}
