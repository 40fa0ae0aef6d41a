package backend

import (
	"bufio"
	"io"
)

// LineReader only returns whole newline terminated lines. A trailing partial
// line is held back, and io.EOF reported, until the rest of it arrives. This
// keeps a CSV parser from seeing half written records of a file that is
// still being appended to.
//
// Lines longer than the caller's buffer are returned over several reads.
type LineReader struct {
	r *bufio.Reader
	// partial is an unterminated line waiting for its newline.
	partial []byte
	// ready is the rest of a whole line not yet returned.
	ready []byte
	final bool
}

var _ io.Reader = (*LineReader)(nil)

func NewLineReader(r io.Reader) *LineReader {
	return &LineReader{r: bufio.NewReader(r)}
}

// NewFinalLineReader returns a LineReader for input that is read to its end
// once. An unterminated last line is returned when r reports io.EOF instead
// of being held back.
func NewFinalLineReader(r io.Reader) *LineReader {
	l := NewLineReader(r)
	l.final = true
	return l
}

// Pending returns the number of bytes of an unterminated line held back.
func (l *LineReader) Pending() int { return len(l.partial) }

func (l *LineReader) Read(b []byte) (int, error) {
	if len(l.ready) == 0 {
		data, err := l.r.ReadBytes('\n')
		l.partial = append(l.partial, data...)
		switch {
		case err == nil:
		case err == io.EOF && l.final && len(l.partial) > 0:
		default:
			return 0, err
		}
		l.ready, l.partial = l.partial, nil
	}
	n := copy(b, l.ready)
	l.ready = l.ready[n:]
	return n, nil
}
