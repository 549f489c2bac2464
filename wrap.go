package fmtstream

import (
	"bytes"
	"math"
	"unicode/utf8"
)

var softHyphen = []byte("\u00ad")

// wrap finalizes the pending text in wrap mode. Each line of pending text
// is classified separately so that lines after a newline are measured from
// the left margin.
//
// With hold set, an unterminated line is finalized only up to the offset the
// classifier reports as open: breaks before it cannot change when more text
// arrives, breaks after it can.
func (s *Stream) wrap(hold bool) error {
	for s.read < s.end {
		text := s.buf[s.read:s.end]
		nl := bytes.IndexByte(text, '\n')
		partial := hold && nl < 0
		switch {
		case nl >= 0:
			text = text[:nl+1]
		case partial:
			text = text[:completeRunes(text)]
		}
		n := len(text)
		breaks, end, open := s.classifier.Classify(text, s.rmargin-s.wmargin, s.col.n-s.wmargin)

		limit := n
		if partial && open < n && (s.maxSize == 0 || n-open <= s.maxSize/2) {
			_, w, _ := s.classifier.Classify(text[open:], math.MaxInt32, 0)
			end -= w
			limit = open
		}

		newline := false
		for i := 0; i <= limit && i < n && !newline; i++ {
			switch breaks[i] {
			case BreakMandatory:
				if err := s.startLine(); err != nil {
					return err
				}
				s.advance(1)
				s.lineBreak(indentLeft)
				newline = true
				continue
			case BreakPossible:
				drop := 0
				if isBlank(s.buf[s.read]) {
					drop = 1
				}
				if err := s.splice("\n", drop); err != nil {
					return err
				}
				s.lineBreak(indentWrap)
				if drop > 0 {
					continue
				}
			case BreakHyphen:
				drop := 0
				if bytes.HasPrefix(s.buf[s.read:s.end], softHyphen) {
					drop = len(softHyphen)
				}
				if err := s.splice("-\n", drop); err != nil {
					return err
				}
				s.lineBreak(indentWrap)
				if drop > 0 {
					i += drop - 1
					continue
				}
			}
			if i == limit {
				break
			}
			if err := s.startLine(); err != nil {
				return err
			}
			s.advance(1)
		}
		if !newline && !s.bol {
			s.col.n = end + s.wmargin
		}
		if partial {
			return nil
		}
	}
	return nil
}

// completeRunes returns the length of text without an incomplete UTF-8
// sequence at its end.
func completeRunes(text []byte) int {
	for i := len(text) - 1; i >= 0 && i >= len(text)-utf8.UTFMax; i-- {
		if utf8.RuneStart(text[i]) {
			if utf8.FullRune(text[i:]) {
				return len(text)
			}
			return i
		}
	}
	return len(text)
}

func isBlank(c byte) bool { return c == ' ' || c == '\t' }
