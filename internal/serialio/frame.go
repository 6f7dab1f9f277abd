package serialio

import "strings"

// extractFrame cuts one candidate frame out of buffer: the span from the
// first '{' to the first '}' after it, inclusive. rest is the buffer
// with everything up to and including that span removed; bytes before
// the '{' are silently discarded.
//
// This is deliberately naive: a frame containing a nested {...} value is
// truncated at the inner '}', and a second frame in the same buffer
// waits for the next iteration. Device firmware emits flat single
// objects only, and downstream tooling relies on this exact behavior.
func extractFrame(buffer string) (frame, rest string, ok bool) {
	start := strings.Index(buffer, "{")
	if start < 0 {
		return "", buffer, false
	}
	end := strings.Index(buffer[start:], "}")
	if end < 0 {
		return "", buffer, false
	}
	end += start + 1
	return buffer[start:end], buffer[end:], true
}
