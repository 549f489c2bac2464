package fmtstream

import (
	"fmt"
	"io"
	"math"
)

// maxFlushRetries bounds how often a flush is retried while the sink keeps
// accepting part of the data.
const maxFlushRetries = 3

type flushState int

const (
	stateFlushing flushState = iota
	stateCompacting
	stateRetrying
	stateDone
)

// flushResult reports how much of a flushed prefix the sink accepted.
type flushResult struct {
	written  int
	complete bool
	err      error
}

func (s *Stream) free() int { return len(s.buf) - s.end }

// Write appends p to the pending text. It implements [io.Writer].
func (s *Stream) Write(p []byte) (int, error) {
	return write(s, p)
}

// WriteString appends str to the pending text.
func (s *Stream) WriteString(str string) (int, error) {
	return write(s, str)
}

// WriteByte appends c to the pending text.
func (s *Stream) WriteByte(c byte) error {
	if s.closed {
		return ErrClosed
	}
	if err := s.ensure(1); err != nil {
		return err
	}
	s.buf[s.end] = c
	s.end++
	return nil
}

func write[T string | []byte](s *Stream, p T) (int, error) {
	if s.closed {
		return 0, ErrClosed
	}
	written := 0
	for len(p) > 0 {
		n := len(p)
		if s.maxSize > 0 {
			n = min(n, max(1, s.maxSize/2))
		}
		if err := s.ensure(n); err != nil {
			return written, err
		}
		k := copy(s.buf[s.end:], p[:n])
		s.end += k
		written += k
		p = p[k:]
	}
	return written, nil
}

// ensure makes room for n more bytes after the write cursor, formatting and
// flushing finished text before growing the buffer. A bounded buffer is
// also formatted once the pending text would fill half of it, which leaves
// room for margins and line breaks.
func (s *Stream) ensure(n int) error {
	if s.free() >= n && (s.maxSize == 0 || s.end-s.point+n <= s.maxSize/2) {
		return nil
	}
	if err := s.update(true); err != nil {
		return err
	}
	if err := s.drain(); err != nil {
		return err
	}
	if s.free() >= n {
		return nil
	}
	return s.grow(n)
}

// grow reallocates the buffer so that need bytes are free after the write
// cursor. The size at least doubles, clamped to the maximum buffer size.
// All written bytes are preserved.
func (s *Stream) grow(need int) error {
	if need > math.MaxInt/2-len(s.buf) {
		return fmt.Errorf("%w: cannot grow by %d bytes", ErrBufferFull, need)
	}
	size := max(2*len(s.buf), s.end+need)
	if s.maxSize > 0 && size > s.maxSize {
		size = s.maxSize
	}
	if size-s.end < need {
		return fmt.Errorf("%w: need %d bytes, %d of %d in use", ErrBufferFull, need, s.end, size)
	}
	buf := make([]byte, size)
	copy(buf, s.buf[:s.end])
	s.logger.Debug("fmtstream: grow buffer", "from", len(s.buf), "to", size)
	s.buf = buf
	return nil
}

// canGrow reports whether the buffer may grow to hold n more bytes.
func (s *Stream) canGrow(n int) bool {
	return s.maxSize == 0 || s.end+n <= s.maxSize
}

// drain writes the finalized prefix to the sink. A sink that accepts only
// part of it is retried while it keeps making progress.
func (s *Stream) drain() error {
	state := stateFlushing
	retries := 0
	var res flushResult
	for {
		switch state {
		case stateFlushing:
			res = s.flushPrefix(s.point)
			state = stateCompacting
		case stateCompacting:
			s.compact(res.written)
			switch {
			case res.complete:
				state = stateDone
			case res.written > 0 && retries < maxFlushRetries:
				state = stateRetrying
			default:
				return fmt.Errorf("%w: %d bytes unwritten: %w", ErrBackpressure, s.point, res.err)
			}
		case stateRetrying:
			retries++
			s.logger.Debug("fmtstream: partial write", "written", res.written, "remaining", s.point, "attempt", retries)
			state = stateFlushing
		case stateDone:
			return nil
		}
	}
}

// flushPrefix writes the first n bytes of the buffer to the sink.
func (s *Stream) flushPrefix(n int) flushResult {
	if n == 0 {
		return flushResult{complete: true}
	}
	written, err := s.w.Write(s.buf[:n])
	written = max(0, min(written, n))
	if written < n && err == nil {
		err = io.ErrShortWrite
	}
	return flushResult{written: written, complete: written == n && err == nil, err: err}
}

// compact discards the first n bytes, which must be finalized.
func (s *Stream) compact(n int) {
	if n == 0 {
		return
	}
	copy(s.buf, s.buf[n:s.end])
	s.end -= n
	s.point -= n
	s.read -= n
}
