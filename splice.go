package fmtstream

import (
	"bytes"
	"fmt"
	"strings"
)

// splice drops drop pending bytes and inserts ins at the point, moving the
// point past it. Pending text is shifted only when the gap between the point
// and the pending text is too small, and then by enough to leave room for
// the rest of the pass.
func (s *Stream) splice(ins string, drop int) error {
	s.read += drop
	if err := s.openGap(len(ins)); err != nil {
		s.read -= drop
		return err
	}
	copy(s.buf[s.point:], ins)
	s.point += len(ins)
	return nil
}

// openGap guarantees n bytes between the point and the pending text.
func (s *Stream) openGap(n int) error {
	want := n - (s.read - s.point)
	if want <= 0 {
		return nil
	}
	if pending := s.end - s.read; pending > want && (s.free() >= pending || s.canGrow(pending)) {
		want = pending
	}
	if err := s.makeRoom(want); err != nil {
		return err
	}
	copy(s.buf[s.read+want:], s.buf[s.read:s.end])
	s.read += want
	s.end += want
	return nil
}

// closeGap moves the pending text back against the point.
func (s *Stream) closeGap() {
	gap := s.read - s.point
	if gap == 0 {
		return
	}
	copy(s.buf[s.point:], s.buf[s.read:s.end])
	s.end -= gap
	s.read = s.point
}

// advance finalizes the next n pending bytes.
func (s *Stream) advance(n int) {
	if s.read != s.point {
		copy(s.buf[s.point:], s.buf[s.read:s.read+n])
	}
	s.point += n
	s.read += n
}

// makeRoom guarantees n free bytes for a splice. Past the maximum buffer
// size it writes finished lines to the sink, oldest first.
func (s *Stream) makeRoom(n int) error {
	for s.free() < n {
		if s.canGrow(n) {
			return s.grow(n)
		}
		nl := bytes.IndexByte(s.buf[:s.point], '\n')
		if nl < 0 {
			if s.point == 0 {
				return fmt.Errorf("%w: %d pending bytes", ErrBufferFull, s.end)
			}
			// A single line fills the buffer. Cut it before the pending text.
			nl = s.point - 1
			s.buf[nl] = '\n'
			s.logger.Warn("fmtstream: line longer than buffer, truncated", "size", len(s.buf))
		}
		res := s.flushPrefix(nl + 1)
		s.compact(res.written)
		if !res.complete {
			return fmt.Errorf("%w: %w", ErrBackpressure, res.err)
		}
	}
	return nil
}

// startLine inserts the margin owed to the current line. It is called
// before the first byte of a line is finalized.
func (s *Stream) startLine() error {
	if !s.bol {
		return nil
	}
	n := s.margin(s.owed)
	if n > 0 {
		if err := s.splice(strings.Repeat(" ", n), 0); err != nil {
			return err
		}
	}
	s.bol = false
	s.col = column{n: n}
	return nil
}

// lineBreak records that a new line starts at the point. The line owes
// margin i unless the previous line asked to suppress it.
func (s *Stream) lineBreak(i indent) {
	if s.col.suppressed {
		i = indentNone
	}
	s.bol = true
	s.owed = i
	s.col = column{n: s.margin(i)}
}
