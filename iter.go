package fmtstream

import "iter"

// WriteIter writes each item from seq to s on its own line. Items that
// implement [fmt.Stringer] are written with String, others with %v.
// Iteration stops at the first error.
func WriteIter[T any](s *Stream, seq iter.Seq[T]) error {
	var err error
	seq(func(item T) bool {
		if _, err = s.WriteString(text(item)); err != nil {
			return false
		}
		err = s.WriteByte('\n')
		return err == nil
	})
	return err
}

// WriteChan writes items received from ch to s until ch is closed.
// It is a thin wrapper around [WriteIter].
func WriteChan[T any](s *Stream, ch <-chan T) error {
	return WriteIter(s, chanToIter(ch))
}

func chanToIter[T any](ch <-chan T) iter.Seq[T] {
	return func(yield func(T) bool) {
		for item := range ch {
			if !yield(item) {
				return
			}
		}
	}
}
