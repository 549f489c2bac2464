package fmtstream

import (
	"bytes"
	"errors"
	"fmt"
	"io"

	"gopkg.in/yaml.v3"
)

// NoWrap as a wrap margin selects truncate mode.
const NoWrap = -1

// Layout holds the margins of a [Stream], in columns.
//
// Every line, empty lines included, starts with LeftMargin spaces and ends
// at RightMargin at most.
// A WrapMargin of 0 or more wraps long lines onto continuation lines indented
// by WrapMargin. [NoWrap] drops whatever does not fit instead.
type Layout struct {
	LeftMargin  int `yaml:"lmargin"`
	RightMargin int `yaml:"rmargin"`
	WrapMargin  int `yaml:"wmargin"`
}

// Truncate reports whether the layout drops text instead of wrapping it.
func (l Layout) Truncate() bool { return l.WrapMargin == NoWrap }

// Validate checks that 0 <= LeftMargin < RightMargin and that WrapMargin is
// [NoWrap] or within [0, RightMargin).
func (l Layout) Validate() error {
	switch {
	case l.LeftMargin < 0:
		return fmt.Errorf("%w: left margin %d is negative", ErrInvalidMargins, l.LeftMargin)
	case l.RightMargin <= l.LeftMargin:
		return fmt.Errorf("%w: right margin %d must exceed left margin %d", ErrInvalidMargins, l.RightMargin, l.LeftMargin)
	case l.WrapMargin < NoWrap:
		return fmt.Errorf("%w: wrap margin %d is negative", ErrInvalidMargins, l.WrapMargin)
	case l.WrapMargin >= l.RightMargin:
		return fmt.Errorf("%w: wrap margin %d must be less than right margin %d", ErrInvalidMargins, l.WrapMargin, l.RightMargin)
	}
	return nil
}

// ParseLayout decodes a YAML layout document:
//
//	lmargin: 2
//	rmargin: 79
//	wmargin: 4
//
// The key "truncate: true" sets the wrap margin to [NoWrap]. Unknown keys are
// rejected. An empty document yields the zero Layout, which does not validate.
func ParseLayout(data []byte) (Layout, error) {
	var raw struct {
		Layout   `yaml:",inline"`
		Truncate bool `yaml:"truncate"`
	}
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(&raw); err != nil && !errors.Is(err, io.EOF) {
		return Layout{}, fmt.Errorf("%w: %s", ErrInvalidLayout, err)
	}
	l := raw.Layout
	if raw.Truncate {
		l.WrapMargin = NoWrap
	}
	if err := l.Validate(); err != nil {
		return Layout{}, err
	}
	return l, nil
}

// MarshalLayout encodes l as a YAML document accepted by [ParseLayout].
func MarshalLayout(l Layout) ([]byte, error) {
	var buf bytes.Buffer
	enc := yaml.NewEncoder(&buf)
	if err := enc.Encode(l); err != nil {
		return nil, err
	}
	if err := enc.Close(); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
