package csvcursor

import (
	"bufio"
	"errors"
	"io"
)

var (
	errNilWriter      = errors.New("csvcursor: writer is nil")
	errWriterNoTarget = errors.New("csvcursor: writer destination cannot be nil")
)

// Writer emits CSV records in the dialect the Reader consumes: comma
// delimiters, double-quote field delimiters, doubled quotes as the escape.
// Fields containing a comma, quote, CR, or LF are quoted; others are written
// verbatim.
type Writer struct {
	dst *bufio.Writer

	// UseCRLF writes records terminated with \r\n when set.
	UseCRLF bool
	// AlwaysQuote forces quoting for all fields when enabled.
	AlwaysQuote bool

	err error
}

// NewWriter creates a new Writer with internal buffering tuned for bulk writes.
func NewWriter(w io.Writer) *Writer {
	if w == nil {
		panic(errWriterNoTarget.Error())
	}
	return &Writer{
		dst: bufio.NewWriterSize(w, defaultBufferSize),
	}
}

// Reset updates the underlying writer while preserving the configuration flags.
func (w *Writer) Reset(dst io.Writer) {
	if w == nil {
		panic(errNilWriter.Error())
	}
	if dst == nil {
		panic(errWriterNoTarget.Error())
	}
	if w.dst == nil {
		w.dst = bufio.NewWriterSize(dst, defaultBufferSize)
	} else {
		w.dst.Reset(dst)
	}
	w.err = nil
}

// Write emits a single CSV record terminated with the configured newline sequence.
func (w *Writer) Write(record []string) error {
	if w == nil {
		return errNilWriter
	}
	if w.dst == nil {
		return errWriterNoTarget
	}
	if w.err != nil {
		return w.err
	}

	for i := range record {
		if i > 0 {
			if err := w.dst.WriteByte(','); err != nil {
				w.err = err
				return err
			}
		}
		if err := w.writeField(record[i]); err != nil {
			w.err = err
			return err
		}
	}

	if w.UseCRLF {
		if _, err := w.dst.Write([]byte{'\r', '\n'}); err != nil {
			w.err = err
			return err
		}
	} else {
		if err := w.dst.WriteByte('\n'); err != nil {
			w.err = err
			return err
		}
	}
	return nil
}

// WriteAll writes multiple records, stopping at the first error.
func (w *Writer) WriteAll(records [][]string) error {
	if w == nil {
		return errNilWriter
	}
	for _, record := range records {
		if err := w.Write(record); err != nil {
			return err
		}
	}
	return nil
}

// Flush flushes pending buffered data to the underlying writer.
func (w *Writer) Flush() error {
	if w == nil {
		return errNilWriter
	}
	if w.dst == nil {
		return errWriterNoTarget
	}
	if w.err != nil {
		return w.err
	}
	if err := w.dst.Flush(); err != nil {
		w.err = err
		return err
	}
	return nil
}

// Error reports the first error encountered by the writer.
func (w *Writer) Error() error {
	if w == nil {
		return errNilWriter
	}
	return w.err
}

func (w *Writer) writeField(field string) error {
	if !w.AlwaysQuote && !NeedsQuoting(field) {
		_, err := w.dst.WriteString(field)
		return err
	}
	if err := w.dst.WriteByte('"'); err != nil {
		return err
	}

	start := 0
	for i := 0; i < len(field); i++ {
		if field[i] == '"' {
			if start < i {
				if _, err := w.dst.WriteString(field[start:i]); err != nil {
					return err
				}
			}
			if _, err := w.dst.Write([]byte{'"', '"'}); err != nil {
				return err
			}
			start = i + 1
		}
	}
	if start < len(field) {
		if _, err := w.dst.WriteString(field[start:]); err != nil {
			return err
		}
	}
	return w.dst.WriteByte('"')
}

// NeedsQuoting reports whether field must be quoted to survive a round trip
// through the Reader.
func NeedsQuoting(field string) bool {
	for i := 0; i < len(field); i++ {
		switch field[i] {
		case '"', ',', '\n', '\r':
			return true
		}
	}
	return false
}
