package fmtstream

import (
	"bytes"
	"fmt"
	"text/template"
)

// maxRenderAttempts bounds the Printf size-guess loop. A renderer that
// reports its true size needs at most two attempts.
const maxRenderAttempts = 3

// Renderer formats a template and its arguments into a byte slice.
//
// Render writes the output into dst and returns its length. When the output
// does not fit, Render returns the length it requires, which is larger than
// len(dst), and the contents of dst are unspecified.
type Renderer interface {
	Render(dst []byte, format string, args ...any) (int, error)
}

// Sprintf renders with the fmt package verbs.
type Sprintf struct{}

// Render implements [Renderer] with [fmt.Appendf].
func (Sprintf) Render(dst []byte, format string, args ...any) (int, error) {
	// Capacity is capped at len(dst) so fmt reallocates instead of writing past it.
	out := fmt.Appendf(dst[:0:len(dst)], format, args...)
	return len(out), nil
}

// Template renders the format as a Go [text/template]. A single argument is
// the template's data, several arguments are passed as a slice. Parsed
// templates are cached by source.
type Template struct {
	Funcs template.FuncMap

	cache map[string]*template.Template
}

// Render implements [Renderer]. Execution errors wrap [ErrRender].
func (t *Template) Render(dst []byte, format string, args ...any) (int, error) {
	tmpl, err := t.parse(format)
	if err != nil {
		return 0, err
	}
	var data any
	switch len(args) {
	case 0:
	case 1:
		data = args[0]
	default:
		data = args
	}
	var buf bytes.Buffer
	if err := tmpl.Execute(&buf, data); err != nil {
		return 0, fmt.Errorf("%w: %w", ErrRender, err)
	}
	if buf.Len() > len(dst) {
		return buf.Len(), nil
	}
	return copy(dst, buf.Bytes()), nil
}

func (t *Template) parse(src string) (*template.Template, error) {
	if tmpl, ok := t.cache[src]; ok {
		return tmpl, nil
	}
	tmpl, err := template.New("").Funcs(t.Funcs).Parse(src)
	if err != nil {
		return nil, fmt.Errorf("%w: %s", ErrInvalidTemplate, err)
	}
	if t.cache == nil {
		t.cache = make(map[string]*template.Template)
	}
	t.cache[src] = tmpl
	return tmpl, nil
}

// Printf renders format and args with the stream's [Renderer] and appends
// the result to the pending text. It returns the number of bytes appended.
func (s *Stream) Printf(format string, args ...any) (int, error) {
	if s.closed {
		return 0, ErrClosed
	}
	guess := printfSizeGuess
	if s.maxSize > 0 {
		guess = min(guess, max(1, s.maxSize/2))
	}
	for range maxRenderAttempts {
		if err := s.ensure(guess); err != nil {
			return 0, err
		}
		avail := s.buf[s.end:]
		n, err := s.renderer.Render(avail, format, args...)
		if err != nil {
			return 0, err
		}
		if n <= len(avail) {
			s.end += n
			return n, nil
		}
		guess = n + 1
	}
	return 0, fmt.Errorf("%w: output size kept growing", ErrRender)
}
