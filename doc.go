// Package fmtstream formats a stream of text into margin-bounded lines.
//
// A [Stream] sits in front of an [io.Writer]. Text written to it is kept in a
// buffer until it is formatted: every line is indented by a left margin and
// limited to a right margin. The stream runs in one of two modes, chosen by
// the wrap margin:
//
//   - Wrap mode (wrap margin >= 0): lines that would pass the right margin are
//     broken at the last break opportunity and continued on a new line
//     indented by the wrap margin.
//   - Truncate mode (wrap margin [NoWrap]): characters past the right margin
//     are dropped until the next newline.
//
// The main use is help and usage text:
//
//	s, err := fmtstream.New(os.Stdout, 2, 79, 29)
//	if err != nil {
//		return err
//	}
//	s.Printf("--verbose")
//	s.Printf("%*s%s\n", 20, "", "Print every file as it is processed.")
//	return s.Close()
//
// # Buffering
//
// Formatting is lazy. Written text is pending until the stream needs room,
// [Stream.Update], [Stream.Flush] or [Stream.Close] is called. Finished lines
// are written to the sink when the buffer fills, on Flush and on Close.
// The buffer grows as needed. [WithMaxBufferSize] caps its size, after which
// the stream writes finished lines early to make room.
//
// A sink that accepts only part of a write is retried while it makes
// progress. Otherwise the operation fails with [ErrBackpressure] and the
// unwritten text stays buffered, so the operation can be retried.
//
// # Line Breaking
//
// A [Classifier] decides where lines break. [Unicode], the default, follows
// the Unicode line breaking algorithm and measures East Asian wide
// characters as two columns. [Plain] breaks only at spaces and tabs.
//
// # Printf
//
// [Stream.Printf] renders through a [Renderer]. [Sprintf], the default, uses
// the fmt verbs. [Template] treats the format as a Go [text/template].
//
// # Configuration
//
// Margins can come from a [Layout], decoded from YAML with [ParseLayout] or
// from an ARGP_HELP_FMT style string with [ParseHelpFormat] and
// [LayoutFromEnv].
//
// # Errors
//
// The package exports sentinel errors for programmatic handling:
//
//   - [ErrInvalidMargins]: margins out of order
//   - [ErrInvalidLayout]: malformed layout document or help-format string
//   - [ErrBackpressure]: the sink did not accept the buffered text
//   - [ErrBufferFull]: the maximum buffer size leaves no room
//   - [ErrClosed]: the stream is closed
//   - [ErrRender], [ErrInvalidTemplate]: Printf failures
package fmtstream
