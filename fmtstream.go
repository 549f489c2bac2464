package fmtstream

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
)

// Sentinel errors for programmatic error handling.
var (
	ErrInvalidMargins  = errors.New("invalid margins")
	ErrInvalidLayout   = errors.New("invalid layout")
	ErrBackpressure    = errors.New("sink backpressure")
	ErrBufferFull      = errors.New("buffer full")
	ErrClosed          = errors.New("stream closed")
	ErrRender          = errors.New("render failed")
	ErrInvalidTemplate = errors.New("invalid template")
)

const (
	defaultInitialSize = 200
	printfSizeGuess    = 150
)

// indent names the margin owed at the start of a line.
type indent int

const (
	indentNone indent = iota
	indentLeft
	indentWrap
)

// column is the output column at the point. A suppressed column means the
// next line starts without a margin.
type column struct {
	n          int
	suppressed bool
}

// Stream reformats text written to it into margin-bounded lines and
// writes the finished lines to an underlying writer.
//
// A Stream is not safe for concurrent use.
type Stream struct {
	w io.Writer

	lmargin int
	rmargin int
	wmargin int

	buf   []byte // len(buf) is the capacity
	end   int    // end of written bytes
	point int    // [0, point) is finalized
	read  int    // [read, end) is pending; [point, read) is a gap during an update

	col     column
	bol     bool   // nothing finalized on the current line yet
	owed    indent // margin inserted before the first byte of the line
	discard bool   // truncate mode is dropping bytes until the next newline

	classifier Classifier
	renderer   Renderer
	maxSize    int
	logger     *slog.Logger
	closed     bool
}

// Option configures a [Stream].
type Option func(*Stream)

// WithClassifier sets the break classifier used in wrap mode.
// Default: [Unicode].
func WithClassifier(c Classifier) Option {
	return func(s *Stream) { s.classifier = c }
}

// WithRenderer sets the renderer used by [Stream.Printf].
// Default: [Sprintf].
func WithRenderer(r Renderer) Option {
	return func(s *Stream) { s.renderer = r }
}

// WithInitialSize sets the initial buffer capacity in bytes.
func WithInitialSize(n int) Option {
	return func(s *Stream) {
		if n > 0 {
			s.buf = make([]byte, n)
		}
	}
}

// WithMaxBufferSize caps buffer growth. Once the cap is reached the stream
// makes room by writing finished lines to the sink instead of growing.
// Zero means unlimited.
func WithMaxBufferSize(n int) Option {
	return func(s *Stream) { s.maxSize = n }
}

// WithLogger sets the logger for buffer and truncation diagnostics.
// Default: discard.
func WithLogger(l *slog.Logger) Option {
	return func(s *Stream) { s.logger = l }
}

// New returns a Stream that writes to w, prefixes lines with lmargin spaces
// and limits them to rmargin columns. If wmargin >= 0, words that extend past
// rmargin are wrapped onto a new line indented by wmargin spaces. If wmargin
// is -1, characters beyond rmargin are dropped until the next newline.
func New(w io.Writer, lmargin, rmargin, wmargin int, opts ...Option) (*Stream, error) {
	return NewLayout(w, Layout{LeftMargin: lmargin, RightMargin: rmargin, WrapMargin: wmargin}, opts...)
}

// NewLayout is like [New] but takes the margins from l.
func NewLayout(w io.Writer, l Layout, opts ...Option) (*Stream, error) {
	if err := l.Validate(); err != nil {
		return nil, err
	}
	s := &Stream{
		w:       w,
		lmargin: l.LeftMargin,
		rmargin: l.RightMargin,
		wmargin: l.WrapMargin,
		bol:     true,
		owed:    indentLeft,
		col:     column{n: l.LeftMargin},
	}
	for _, opt := range opts {
		opt(s)
	}
	if s.buf == nil {
		s.buf = make([]byte, defaultInitialSize)
	}
	if s.maxSize > 0 && s.maxSize < len(s.buf) {
		s.maxSize = len(s.buf)
	}
	if s.classifier == nil {
		s.classifier = Unicode{}
	}
	if s.renderer == nil {
		s.renderer = Sprintf{}
	}
	if s.logger == nil {
		s.logger = slog.New(slog.DiscardHandler)
	}
	return s, nil
}

// Layout returns the current margins.
func (s *Stream) Layout() Layout {
	return Layout{LeftMargin: s.lmargin, RightMargin: s.rmargin, WrapMargin: s.wmargin}
}

// LeftMargin returns the indentation of every line.
func (s *Stream) LeftMargin() int { return s.lmargin }

// RightMargin returns the maximum line width.
func (s *Stream) RightMargin() int { return s.rmargin }

// WrapMargin returns the indentation of continuation lines, or [NoWrap].
func (s *Stream) WrapMargin() int { return s.wmargin }

// SetLeftMargin sets the left margin and returns the previous one.
// Pending text is formatted with the old margins first.
func (s *Stream) SetLeftMargin(n int) (int, error) {
	old := s.lmargin
	l := s.Layout()
	l.LeftMargin = n
	return old, s.setLayout(l)
}

// SetRightMargin sets the right margin and returns the previous one.
func (s *Stream) SetRightMargin(n int) (int, error) {
	old := s.rmargin
	l := s.Layout()
	l.RightMargin = n
	return old, s.setLayout(l)
}

// SetWrapMargin sets the wrap margin and returns the previous one.
// A wrap margin of -1 switches the stream to truncate mode.
func (s *Stream) SetWrapMargin(n int) (int, error) {
	old := s.wmargin
	l := s.Layout()
	l.WrapMargin = n
	return old, s.setLayout(l)
}

func (s *Stream) setLayout(l Layout) error {
	if err := l.Validate(); err != nil {
		return err
	}
	if err := s.Update(); err != nil {
		return err
	}
	s.lmargin, s.rmargin, s.wmargin = l.LeftMargin, l.RightMargin, l.WrapMargin
	if s.bol {
		s.col.n = s.margin(s.owed)
	}
	return nil
}

// Point returns the output column of the end of the text written so far.
func (s *Stream) Point() (int, error) {
	if err := s.Update(); err != nil {
		return 0, err
	}
	return s.col.n, nil
}

// SuppressMargin starts the next line without a margin. At the start of a
// line it applies to the current line.
func (s *Stream) SuppressMargin() error {
	if err := s.Update(); err != nil {
		return err
	}
	if s.bol {
		s.owed = indentNone
		s.col = column{}
		return nil
	}
	s.col.suppressed = true
	return nil
}

// Update formats all pending text into finished lines. It writes to the
// sink only when the buffer has no room left for margins and line breaks.
// Calling it again without writing in between has no effect.
func (s *Stream) Update() error {
	if s.closed {
		return ErrClosed
	}
	return s.update(false)
}

// update formats pending text. With hold set, an incomplete trailing rune
// and any text whose line breaks depend on what follows stay pending.
func (s *Stream) update(hold bool) error {
	if s.read >= s.end {
		return nil
	}
	defer s.closeGap()
	if s.wmargin < 0 {
		return s.truncate(hold)
	}
	return s.wrap(hold)
}

// Flush formats pending text and writes every finished line to the sink.
func (s *Stream) Flush() error {
	if err := s.Update(); err != nil {
		return err
	}
	return s.drain()
}

// Close formats all pending text, ends an unterminated last line with a
// newline and writes everything to the sink. It does not close the sink.
// If the sink fails, the stream stays usable and Close may be retried.
func (s *Stream) Close() error {
	if s.closed {
		return ErrClosed
	}
	if err := s.update(false); err != nil {
		return err
	}
	if !s.bol || s.discard {
		if err := s.WriteByte('\n'); err != nil {
			return err
		}
		if err := s.update(false); err != nil {
			return err
		}
	}
	if err := s.drain(); err != nil {
		return fmt.Errorf("close: %w", err)
	}
	s.buf = nil
	s.closed = true
	return nil
}

func (s *Stream) margin(i indent) int {
	switch i {
	case indentLeft:
		return s.lmargin
	case indentWrap:
		return s.wmargin
	default:
		return 0
	}
}
