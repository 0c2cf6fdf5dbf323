package csvcursor

import (
	"bufio"
	"io"
)

// LineSource produces the next line of text on demand. ReadLine returns the
// line without its terminator and io.EOF once the input is exhausted. A call
// may block while the underlying stream waits for data; cancellation, if
// needed, belongs to that stream (closing it unblocks the read).
type LineSource interface {
	ReadLine() (string, error)
}

// ScanSource is a LineSource over an io.Reader. Lines are split on '\n' and a
// trailing '\r' is stripped, so both LF and CRLF inputs yield the same lines.
// A final line without a terminator is still delivered before io.EOF.
type ScanSource struct {
	src io.Reader
	buf *bufio.Reader
}

// NewScanSource creates a ScanSource reading from r, panicking if r is nil.
func NewScanSource(r io.Reader) *ScanSource {
	if r == nil {
		panic("csvcursor: line source reader cannot be nil")
	}
	return &ScanSource{
		src: r,
		buf: bufio.NewReaderSize(r, defaultBufferSize),
	}
}

// ReadLine returns the next line from the underlying reader.
func (s *ScanSource) ReadLine() (string, error) {
	line, err := s.buf.ReadString('\n')
	if err != nil {
		if err == io.EOF && line != "" {
			// Unterminated final line.
			return trimLineEnding(line), nil
		}
		return "", err
	}
	return trimLineEnding(line), nil
}

// Close closes the underlying reader when it is an io.Closer.
func (s *ScanSource) Close() error {
	if c, ok := s.src.(io.Closer); ok {
		return c.Close()
	}
	return nil
}

func trimLineEnding(line string) string {
	if n := len(line); n > 0 && line[n-1] == '\n' {
		line = line[:n-1]
	}
	if n := len(line); n > 0 && line[n-1] == '\r' {
		line = line[:n-1]
	}
	return line
}

// StringsSource is an in-memory LineSource, convenient in tests and examples.
type StringsSource struct {
	lines []string
	pos   int
}

// NewStringsSource creates a StringsSource yielding the given lines in order.
func NewStringsSource(lines ...string) *StringsSource {
	return &StringsSource{lines: lines}
}

// ReadLine returns the next stored line, or io.EOF when none remain.
func (s *StringsSource) ReadLine() (string, error) {
	if s.pos >= len(s.lines) {
		return "", io.EOF
	}
	line := s.lines[s.pos]
	s.pos++
	return line, nil
}
