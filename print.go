package fmtstream

import "fmt"

// Print appends the default formats of args, like [fmt.Print].
func (s *Stream) Print(args ...any) (int, error) {
	return s.WriteString(fmt.Sprint(args...))
}

// Println appends the default formats of args separated by spaces and
// followed by a newline, like [fmt.Println].
func (s *Stream) Println(args ...any) (int, error) {
	return s.WriteString(fmt.Sprintln(args...))
}

// text returns the string form of v, preferring [fmt.Stringer].
func text(v any) string {
	if str, ok := v.(fmt.Stringer); ok {
		return str.String()
	}
	return fmt.Sprintf("%v", v)
}
