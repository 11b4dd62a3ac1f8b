package ai

import (
	"io"
	"unicode/utf8"
)

const readBufferSize = 4096

// pump copies r to emit in the sizes the pipe delivers them, holding back a
// trailing partial UTF-8 sequence until the rest of it arrives.
func pump(r io.Reader, emit func(string)) error {
	buf := make([]byte, readBufferSize)
	var pending []byte
	for {
		n, err := r.Read(buf)
		if n > 0 {
			pending = append(pending, buf[:n]...)
			cut := completePrefix(pending)
			if cut > 0 {
				emit(string(pending[:cut]))
				pending = append(pending[:0], pending[cut:]...)
			}
		}
		if err != nil {
			if len(pending) > 0 {
				emit(string(pending))
			}
			if err == io.EOF {
				return nil
			}
			return err
		}
	}
}

// completePrefix returns the length of the longest prefix of b that does not
// end inside a multi-byte rune.
func completePrefix(b []byte) int {
	end := len(b)
	// A rune is at most utf8.UTFMax bytes, so only the tail needs checking.
	for i := 1; i <= utf8.UTFMax && i <= end; i++ {
		start := end - i
		if !utf8.RuneStart(b[start]) {
			continue
		}
		if utf8.FullRune(b[start:end]) {
			return end
		}
		return start
	}
	return end
}
