package csvcursor

import (
	"io"
	"strings"
	"unsafe"
)

const defaultBufferSize = 1 << 10 // 1024 bytes

// Reader is a cursor-style CSV reader that parses one field at a time from a
// LineSource, holding at most one line in memory. It understands quoted
// fields, embedded commas inside quotes, and doubled-quote escapes. A quoted
// field must close on the physical line it starts on.
//
// Strings returned by RawField and Field are views into the reader's internal
// storage and are only valid until the next call to ReadField, ReadFieldSkip,
// NextLine, or Close.
//
// Reader is not safe for concurrent use.
type Reader struct {
	src LineSource

	line     string
	haveLine bool
	// lineConsumed is set after the current line's final field has been
	// read, so further ReadField calls return false without rescanning.
	lineConsumed bool

	fieldStart int
	// fieldEnd is the exclusive end offset of the current field's raw span.
	// Only meaningful when spansToLineEnd is false.
	fieldEnd       int
	spansToLineEnd bool
	fieldIndex     int
	lineIndex      int
	quoted         bool
	escapedQuotes  int

	unescaped   []byte
	unescapedOK bool
	closed      bool
}

// NewReader creates a Reader that takes ownership of src, panicking if src is
// nil. If src implements io.Closer it is closed when the Reader is closed.
func NewReader(src LineSource) *Reader {
	if src == nil {
		panic("csvcursor: line source cannot be nil")
	}
	return &Reader{
		src:        src,
		fieldIndex: -1,
	}
}

// ReadField advances the cursor to the next field on the current line. It
// returns false when the current line has no more fields or the input is
// exhausted; repeated calls at end of line keep returning false until
// NextLine is called. The first call on a fresh reader pulls the first line
// from the source.
func (r *Reader) ReadField() (bool, error) {
	if r == nil || r.src == nil {
		return false, nil
	}
	if r.lineConsumed {
		return false, nil
	}

	start := 0
	if !r.haveLine {
		line, err := r.src.ReadLine()
		if err != nil {
			if err == io.EOF {
				return false, nil
			}
			return false, err
		}
		r.line = line
		r.haveLine = true
	} else if r.fieldIndex >= 0 {
		start = r.fieldEnd + 1
	}

	r.fieldIndex++
	r.fieldStart = start
	r.spansToLineEnd = false
	r.quoted = false
	r.escapedQuotes = 0
	r.unescapedOK = false

	return r.scanField(start)
}

// ReadFieldSkip performs skip+1 field reads and leaves the cursor on the
// last one, returning false as soon as any underlying read does. A negative
// skip is rejected with ErrInvalidSkip.
func (r *Reader) ReadFieldSkip(skip int) (bool, error) {
	if skip < 0 {
		return false, ErrInvalidSkip
	}
	for i := 0; i <= skip; i++ {
		ok, err := r.ReadField()
		if err != nil || !ok {
			return false, err
		}
	}
	return true, nil
}

// NextLine discards the remainder of the current line and loads the next
// one, returning false when the source has no further lines. When no line
// has been loaded yet it first primes the reader with one read and then
// advances past it, so NextLine as the very first operation lands on the
// second physical line.
func (r *Reader) NextLine() (bool, error) {
	if r == nil || r.src == nil {
		return false, nil
	}

	if !r.haveLine {
		if _, err := r.src.ReadLine(); err != nil {
			if err == io.EOF {
				return false, nil
			}
			return false, err
		}
	}

	line, err := r.src.ReadLine()
	if err != nil {
		r.line = ""
		r.haveLine = false
		r.resetFieldState()
		if err == io.EOF {
			return false, nil
		}
		return false, err
	}

	r.line = line
	r.haveLine = true
	r.lineIndex++
	r.resetFieldState()
	return true, nil
}

// RawField returns the current field's text exactly as it appears on the
// line, including surrounding quotes for a quoted field. It returns "" when
// no field is current.
func (r *Reader) RawField() string {
	if r == nil || !r.haveLine || r.fieldIndex < 0 {
		return ""
	}
	if r.spansToLineEnd {
		return r.line[r.fieldStart:]
	}
	return r.line[r.fieldStart:r.fieldEnd]
}

// Field returns the current field's logical value: surrounding quotes
// stripped and doubled quotes collapsed to one. Unquoted fields and quoted
// fields without escapes are returned without copying; escaped quotes force
// one unescape pass into a reusable buffer, cached until the next advance.
func (r *Reader) Field() string {
	raw := r.RawField()
	if !r.quoted {
		return raw
	}
	inner := raw[1 : len(raw)-1]
	if r.escapedQuotes == 0 {
		return inner
	}
	if !r.unescapedOK {
		r.unescape(inner)
	}
	// Zero-copy string over the unescape buffer; valid until the next advance.
	return unsafe.String(unsafe.SliceData(r.unescaped), len(r.unescaped))
}

// FieldIndex returns the 0-based index of the current field within the
// current line, or -1 when no field has been read on it yet.
func (r *Reader) FieldIndex() int {
	return r.fieldIndex
}

// LineIndex returns the number of line advances performed so far.
func (r *Reader) LineIndex() int {
	return r.lineIndex
}

// Close releases the line source (closing it when it is an io.Closer) and
// drops the unescape buffer. Closing an already-closed Reader is a no-op.
func (r *Reader) Close() error {
	if r == nil || r.closed {
		return nil
	}
	r.closed = true
	r.line = ""
	r.haveLine = false
	r.resetFieldState()
	r.unescaped = nil

	var err error
	if c, ok := r.src.(io.Closer); ok {
		err = c.Close()
	}
	r.src = nil
	return err
}

// scanField locates the current field's end, with start being the field's
// first character offset.
func (r *Reader) scanField(start int) (bool, error) {
	rest := r.line[start:]
	idxComma := strings.IndexByte(rest, ',')
	idxQuote := strings.IndexByte(rest, '"')

	switch {
	case idxComma == -1 && idxQuote == -1:
		// The field runs to the end of the line.
		r.spansToLineEnd = true
		r.lineConsumed = true
		return true, nil
	case idxQuote == -1 || (idxComma != -1 && idxComma < idxQuote):
		r.fieldEnd = start + idxComma
		return true, nil
	case idxQuote > 0:
		// A quote may only open a field.
		return false, r.parseError(start+idxQuote, ErrBareQuote)
	}
	return r.scanQuoted(start)
}

// scanQuoted resolves a quoted field whose opening quote sits at start.
func (r *Reader) scanQuoted(start int) (bool, error) {
	r.quoted = true
	pos := start + 1
	for {
		idx := strings.IndexByte(r.line[pos:], '"')
		if idx == -1 {
			return false, r.parseError(start, ErrUnterminatedQuote)
		}
		q := pos + idx
		switch {
		case q == len(r.line)-1:
			// Closing quote is the line's last character.
			r.spansToLineEnd = true
			r.lineConsumed = true
			return true, nil
		case r.line[q+1] == ',':
			// Raw span keeps the closing quote; the comma is excluded.
			r.fieldEnd = q + 1
			return true, nil
		case r.line[q+1] == '"':
			r.escapedQuotes++
			pos = q + 2
		default:
			return false, r.parseError(q+1, ErrTrailingQuote)
		}
	}
}

// unescape copies inner into the reusable buffer, collapsing doubled quotes.
// The buffer is reallocated only when its capacity is insufficient.
func (r *Reader) unescape(inner string) {
	need := len(inner) - r.escapedQuotes
	if cap(r.unescaped) < need {
		r.unescaped = make([]byte, 0, need)
	}
	buf := r.unescaped[:0]
	for i := 0; i < len(inner); i++ {
		c := inner[i]
		buf = append(buf, c)
		if c == '"' {
			i++
		}
	}
	r.unescaped = buf
	r.unescapedOK = true
}

func (r *Reader) resetFieldState() {
	r.lineConsumed = false
	r.fieldStart = 0
	r.fieldEnd = 0
	r.spansToLineEnd = false
	r.fieldIndex = -1
	r.quoted = false
	r.escapedQuotes = 0
	r.unescapedOK = false
}

// parseError attaches the current line and the 0-based offset to err as a
// 1-based line/column pair.
func (r *Reader) parseError(offset int, err error) error {
	return &ParseError{Line: r.lineIndex + 1, Column: offset + 1, Err: err}
}
