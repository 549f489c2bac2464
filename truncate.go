package fmtstream

import (
	"bytes"
	"unicode/utf8"

	"github.com/mattn/go-runewidth"
)

// truncate finalizes the pending text in truncate mode. Lines pass through
// unchanged up to the right margin. Anything past it is dropped up to the
// next newline, which may arrive in a later write. With hold set, an
// incomplete trailing rune stays pending.
func (s *Stream) truncate(hold bool) error {
	for s.read < s.end {
		if s.discard {
			nl := bytes.IndexByte(s.buf[s.read:s.end], '\n')
			if nl < 0 {
				s.logger.Debug("fmtstream: truncated", "dropped", s.end-s.read)
				s.read = s.end
				return nil
			}
			s.logger.Debug("fmtstream: truncated", "dropped", nl)
			s.read += nl
			s.discard = false
		}
		if err := s.startLine(); err != nil {
			return err
		}
		if s.buf[s.read] == '\n' {
			s.advance(1)
			s.lineBreak(indentLeft)
			continue
		}

		budget := s.rmargin - s.col.n
		i, w := s.read, 0
		for i < s.end && s.buf[i] != '\n' {
			if hold && !utf8.FullRune(s.buf[i:s.end]) {
				s.advance(i - s.read)
				s.col.n += w
				return nil
			}
			rw, size := measure(s.buf[i:s.end])
			if w+rw > budget {
				break
			}
			w += rw
			i += size
		}
		s.advance(i - s.read)
		s.col.n += w
		if s.read == s.end || s.buf[s.read] == '\n' {
			continue
		}

		if nl := bytes.IndexByte(s.buf[s.read:s.end], '\n'); nl >= 0 {
			s.logger.Debug("fmtstream: truncated", "dropped", nl)
			s.read += nl
			continue
		}
		s.logger.Debug("fmtstream: truncated", "dropped", s.end-s.read)
		s.read = s.end
		s.discard = true
	}
	return nil
}

// measure returns the column width and byte length of the first rune in b.
// A malformed byte counts as one column.
func measure(b []byte) (width, size int) {
	r, size := utf8.DecodeRune(b)
	if r == utf8.RuneError && size == 1 {
		return 1, 1
	}
	return runewidth.RuneWidth(r), size
}
