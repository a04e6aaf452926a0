package backend

import (
	"bufio"
	"io"
)

// lineReader only hands out complete newline-terminated lines. A trailing
// partial line is held back until its newline arrives, so a CSV file that
// is still being appended to never yields a truncated record.
type lineReader struct {
	r       *bufio.Reader
	partial []byte
	pending []byte
}

var _ io.Reader = (*lineReader)(nil)

func NewLineReader(r io.Reader) *lineReader {
	return &lineReader{
		r: bufio.NewReader(r),
	}
}

func (l *lineReader) Read(b []byte) (int, error) {
	if len(l.pending) == 0 {
		line, err := l.r.ReadBytes('\n')
		if err != nil {
			l.partial = append(l.partial, line...)
			return 0, io.EOF
		}
		l.pending = append(l.partial, line...)
		l.partial = nil
	}
	n := copy(b, l.pending)
	l.pending = l.pending[n:]
	return n, nil
}
