package xml

import (
	"bufio"
	"io"
)

// minBufferSize is the minimum lookahead window, in code points, that
// CharacterStream guarantees whenever more data is available (spec.md
// §4.A).
const minBufferSize = 2048

// CharacterStream surfaces a chunked lookahead window into decoded Unicode
// code points so the scanner can match multi-character delimiters without
// backtracking across buffer refills (spec.md §4.A). Position never
// decreases; only advance moves it. Refills read the source
// synchronously, so a code point is reported missing only at the end of
// input.
type CharacterStream struct {
	src      *bufio.Reader
	buf      []rune
	pos      int // index into buf of the current code point
	finished bool
	line     int
	col      int
}

// NewCharacterStream wraps r, which must already be decoded to a rune
// stream (see encoding.go's DetectEncoding for turning raw bytes into this
// reader).
func NewCharacterStream(r io.Reader) *CharacterStream {
	return &CharacterStream{
		src:  bufio.NewReaderSize(r, 64*1024),
		line: 1,
		col:  1,
	}
}

// fill tops up the buffer until it holds at least minBufferSize code
// points past the current position, or the source is exhausted.
func (cs *CharacterStream) fill() {
	if cs.finished {
		return
	}
	for len(cs.buf)-cs.pos < minBufferSize {
		r, _, err := cs.src.ReadRune()
		if err != nil {
			cs.finished = true
			return
		}
		cs.buf = append(cs.buf, r)
	}
}

// needMore reports whether the scanner should suspend and wait for more
// input: the remaining buffer is short and the source isn't finished
// (spec.md §5's suspension point).
func (cs *CharacterStream) needMore() bool {
	return !cs.finished && len(cs.buf)-cs.pos < minBufferSize
}

// codePointAt returns the next code point without consuming it, and
// whether one was available.
func (cs *CharacterStream) codePointAt() (rune, bool) {
	cs.fill()
	if cs.pos >= len(cs.buf) {
		return 0, false
	}
	return cs.buf[cs.pos], true
}

// peekAt returns the code point n positions ahead of the current one
// (0 == codePointAt), refilling as needed.
func (cs *CharacterStream) peekAt(n int) (rune, bool) {
	cs.fill()
	for len(cs.buf)-cs.pos <= n && !cs.finished {
		cs.fill()
	}
	idx := cs.pos + n
	if idx >= len(cs.buf) {
		return 0, false
	}
	return cs.buf[idx], true
}

// lookingAt reports whether the upcoming code points equal pattern,
// triggering a refill first if the remaining buffer is shorter than the
// pattern and more data is available.
func (cs *CharacterStream) lookingAt(pattern string) bool {
	runes := []rune(pattern)
	for len(cs.buf)-cs.pos < len(runes) && !cs.finished {
		cs.fill()
	}
	if len(cs.buf)-cs.pos < len(runes) {
		return false
	}
	for i, want := range runes {
		if cs.buf[cs.pos+i] != want {
			return false
		}
	}
	return true
}

// atEOF reports whether the stream has no more code points to deliver.
func (cs *CharacterStream) atEOF() bool {
	cs.fill()
	return cs.finished && cs.pos >= len(cs.buf)
}

// advance moves the position forward n code points, updating line/column
// bookkeeping used to annotate errors and DocumentLocator queries.
func (cs *CharacterStream) advance(n int) {
	for i := 0; i < n; i++ {
		if cs.pos >= len(cs.buf) {
			cs.fill()
			if cs.pos >= len(cs.buf) {
				return
			}
		}
		if cs.buf[cs.pos] == '\n' {
			cs.line++
			cs.col = 1
		} else {
			cs.col++
		}
		cs.pos++
	}
}

// position returns the current 1-based line and column, for error
// reporting and DocumentLocator.
func (cs *CharacterStream) position() (line, col int) {
	return cs.line, cs.col
}
