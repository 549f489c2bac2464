package fmtstream

import (
	"bytes"

	"github.com/rivo/uniseg"
)

// Break classifies a byte position of text for line breaking.
type Break uint8

const (
	// BreakNone: no break at this position.
	BreakNone Break = iota
	// BreakPossible: the line is broken here. If the byte is a space or tab
	// it is replaced by the newline, otherwise the newline goes before it.
	BreakPossible
	// BreakHyphen: the line is broken before this byte with a trailing
	// hyphen. A soft hyphen at this position becomes the visible hyphen.
	BreakHyphen
	// BreakMandatory: the byte is a newline already present in the text.
	BreakMandatory
)

func (b Break) String() string {
	switch b {
	case BreakNone:
		return "none"
	case BreakPossible:
		return "possible"
	case BreakHyphen:
		return "hyphen"
	case BreakMandatory:
		return "mandatory"
	default:
		return "unknown"
	}
}

// Classifier decides where text is broken into lines.
//
// Classify returns one [Break] per byte of text and the column after the
// last byte. Columns count from the wrap margin: every line after a break
// starts at column 0, and start, the column of the first byte, may be
// negative. Lines hold at most width columns unless a word has no break
// opportunity, in which case it overflows up to the next one.
//
// The third result is the offset from which the breaks may change if more
// text is appended, or len(text) if they cannot. No break other than one at
// that offset is chosen after it.
type Classifier interface {
	Classify(text []byte, width, start int) (breaks []Break, end, open int)
}

// Plain breaks lines only at spaces and tabs. Character widths come from
// go-runewidth. Malformed UTF-8 counts as one column per byte.
type Plain struct{}

// Classify implements [Classifier].
func (Plain) Classify(text []byte, width, start int) ([]Break, int, int) {
	breaks := make([]Break, len(text))
	col := start
	last, lastCol := -1, 0
	for i := 0; i < len(text); {
		switch c := text[i]; {
		case c == '\n':
			breaks[i] = BreakMandatory
			col, last = 0, -1
			i++
			continue
		case isBlank(c):
			col++
			last, lastCol = i, col
			i++
			continue
		}
		w, size := measure(text[i:])
		if col+w > width && last >= 0 {
			breaks[last] = BreakPossible
			col -= lastCol
			last = -1
		}
		col += w
		i += size
	}
	open := len(text)
	if last >= 0 {
		open = last
	}
	return breaks, col, open
}

// Unicode breaks lines at the opportunities of the Unicode line breaking
// algorithm (UAX #14), as reported by uniseg: after spaces, after hyphens,
// between ideographs and at soft hyphens. Widths are grapheme cluster widths.
type Unicode struct{}

// Classify implements [Classifier]. Whether the end of text is a break
// opportunity depends on the next cluster, so the last cluster is open. An
// opportunity between clusters is open from the cluster before it, which
// the next pass needs to see it.
func (Unicode) Classify(text []byte, width, start int) ([]Break, int, int) {
	breaks := make([]Break, len(text))
	col := start
	last, lastCol, lastKind := -1, 0, BreakNone
	held := 0
	state := -1
	pos, final := 0, len(text)
	for rest := text; len(rest) > 0; {
		var cluster []byte
		var boundaries int
		cluster, rest, boundaries, state = uniseg.Step(rest, state)
		canBreak := boundaries&uniseg.MaskLine == uniseg.LineCanBreak && len(rest) > 0
		final = pos

		switch {
		case bytes.IndexByte(cluster, '\n') >= 0:
			breaks[pos+bytes.IndexByte(cluster, '\n')] = BreakMandatory
			col, last = 0, -1
			final = len(text)
		case len(cluster) == 1 && isBlank(cluster[0]):
			col++
			last, lastCol, lastKind = pos, col, BreakPossible
			held = pos
		case bytes.Equal(cluster, softHyphen):
			if canBreak && col+1 <= width {
				last, lastCol, lastKind = pos, col, BreakHyphen
				held = pos
			}
		default:
			w := boundaries >> uniseg.ShiftWidth
			if col+w > width && last >= 0 {
				breaks[last] = lastKind
				col -= lastCol
				last = -1
			}
			col += w
			if canBreak {
				last, lastCol, lastKind = pos+len(cluster), col, BreakPossible
				held = pos
			}
		}
		pos += len(cluster)
	}
	open := final
	if last >= 0 {
		open = held
	}
	return breaks, col, open
}
