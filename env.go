package fmtstream

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"unicode"
)

// ParseHelpFormat applies a help-format string to base and returns the
// result. The string is a list of settings separated by commas or spaces,
// in the style of ARGP_HELP_FMT:
//
//	rmargin=79,lmargin=2,wmargin=4
//
// The bare word "truncate" sets the wrap margin to [NoWrap].
func ParseHelpFormat(base Layout, s string) (Layout, error) {
	l := base
	fields := strings.FieldsFunc(s, func(r rune) bool {
		return r == ',' || unicode.IsSpace(r)
	})
	for _, field := range fields {
		if field == "truncate" {
			l.WrapMargin = NoWrap
			continue
		}
		key, val, ok := strings.Cut(field, "=")
		if !ok {
			return base, fmt.Errorf("%w: %q has no value", ErrInvalidLayout, field)
		}
		n, err := strconv.Atoi(val)
		if err != nil {
			return base, fmt.Errorf("%w: %s: %q is not a number", ErrInvalidLayout, key, val)
		}
		switch key {
		case "lmargin":
			l.LeftMargin = n
		case "rmargin":
			l.RightMargin = n
		case "wmargin":
			l.WrapMargin = n
		default:
			return base, fmt.Errorf("%w: unknown setting %q", ErrInvalidLayout, key)
		}
	}
	if err := l.Validate(); err != nil {
		return base, err
	}
	return l, nil
}

// LayoutFromEnv applies the help-format string in the environment variable
// key to base. An unset or empty variable leaves base unchanged.
func LayoutFromEnv(key string, base Layout) (Layout, error) {
	v := os.Getenv(key)
	if v == "" {
		return base, nil
	}
	return ParseHelpFormat(base, v)
}
