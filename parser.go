package delimtext

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"unsafe"
)

const defaultBufferSize = 1 << 10 // 1024 bytes

var (
	// ErrUnterminatedEnclosure is returned when an enclosed field is not closed before EOF.
	ErrUnterminatedEnclosure = errors.New("delimtext: unterminated enclosed field")
	// ErrExpectedDelimiter is returned when data follows a closing enclosure without a separator.
	ErrExpectedDelimiter = errors.New("delimtext: expected delimiter after closing enclosure")
	// ErrTrailingEscape is returned when the input ends in the middle of an escape sequence.
	ErrTrailingEscape = errors.New("delimtext: escape sequence at end of input")
	// ErrFieldCount is returned when a record contains an unexpected number of fields.
	ErrFieldCount = errors.New("delimtext: wrong number of fields")
)

// ParseError contains location information for parsing errors.
type ParseError struct {
	Line   int
	Column int
	Err    error
}

// Error formats the parse error message with the stored line, column, and Err values.
func (e *ParseError) Error() string {
	if e == nil {
		return ""
	}
	return fmt.Sprintf("delimtext: parse error on line %d, column %d: %v", e.Line, e.Column, e.Err)
}

// Unwrap returns the underlying Err so ParseError participates in errors.Unwrap.
func (e *ParseError) Unwrap() error {
	if e == nil {
		return nil
	}
	return e.Err
}

// Parser reads delimited-text records, decoding the escaping and enclosing
// rules produced by Format and Writer. Only the first byte of the dialect's
// Enclose and Escape sequences is used; when the two bytes are equal the
// parser falls back to doubled-encloser semantics inside enclosed fields.
type Parser struct {
	src io.Reader

	// Dialect configures the separators and the escape/enclose bytes.
	Dialect Delimiters
	// ReuseRecord indicates whether Read may reuse the backing array of the returned slice.
	ReuseRecord bool
	// FieldsPerRecord expects each record to contain this many fields. Zero captures the width of the first record.
	FieldsPerRecord int

	buf    []byte
	bufPos int
	bufLen int
	bufErr error

	record      []string
	dataBuf     []byte
	fieldBounds []int
	finished    bool
	line        int
}

// Parser states while assembling a field.
const (
	stateFieldStart = iota
	statePlain
	stateEnclosed
	stateAfterClose
)

// NewParser creates a Parser consuming delimited text from r, panicking if r
// is nil. The zero Dialect parses plain comma-separated lines.
func NewParser(r io.Reader) *Parser {
	if r == nil {
		panic("delimtext: parser source cannot be nil")
	}

	return &Parser{
		src:         r,
		buf:         make([]byte, defaultBufferSize),
		record:      make([]string, 0, 16),
		dataBuf:     make([]byte, 0, 512),
		fieldBounds: make([]int, 0, 32),
		line:        1,
	}
}

// Read parses the next record from the underlying stream. It returns the
// field values (which may reuse internal storage when ReuseRecord is true);
// io.EOF signals that no more records remain.
func (p *Parser) Read() ([]string, error) {
	if p == nil || p.src == nil {
		return nil, io.EOF
	}
	if p.finished {
		return nil, io.EOF
	}

	d := p.Dialect.normalized()
	encloser := d.encloseByte()
	escaper := d.escapeByte()

	if p.ReuseRecord {
		p.record = p.record[:0]
	} else {
		p.record = nil
	}
	p.dataBuf = p.dataBuf[:0]
	p.fieldBounds = p.fieldBounds[:0]

	plainSpec := plainSpecial(d, escaper)
	enclosedSpec := enclosedSpecial(escaper, encloser)

	state := stateFieldStart
	column := 1
	fieldStart := 0

	endField := func() {
		p.fieldBounds = append(p.fieldBounds, fieldStart, len(p.dataBuf))
		fieldStart = len(p.dataBuf)
		state = stateFieldStart
	}

	for {
		b, err := p.nextByte()
		if err != nil {
			if err != io.EOF {
				return nil, err
			}
			p.finished = true
			switch state {
			case stateEnclosed:
				return nil, p.wrapError(column, ErrUnterminatedEnclosure)
			case stateAfterClose, statePlain:
				endField()
				return p.buildRecord()
			default:
				// Flush a trailing field if data ended without a terminator.
				if len(p.fieldBounds) > 0 || len(p.dataBuf) > 0 {
					endField()
					return p.buildRecord()
				}
				return nil, io.EOF
			}
		}

		curColumn := column
		column++

		switch state {
		case stateFieldStart:
			if encloser != 0 && b == encloser {
				state = stateEnclosed
				continue
			}
			state = statePlain
			fallthrough

		case statePlain:
			switch {
			case b == d.Field:
				endField()
			case b == d.Record:
				endField()
				p.line++
				return p.buildRecord()
			case b == '\r' && d.Record == '\n':
				// Fold an optional \n into the terminator.
				next, err := p.peekByte()
				if err == nil && next == '\n' {
					p.bufPos++
				} else if err != nil && err != io.EOF {
					return nil, err
				}
				endField()
				p.line++
				return p.buildRecord()
			case escaper != 0 && b == escaper:
				lit, err := p.nextByte()
				if err == io.EOF {
					p.finished = true
					return nil, p.wrapError(curColumn, ErrTrailingEscape)
				}
				if err != nil {
					return nil, err
				}
				column++
				p.dataBuf = append(p.dataBuf, lit)
			default:
				p.dataBuf = append(p.dataBuf, b)
				column += p.consumeRun(plainSpec)
			}

		case stateEnclosed:
			switch {
			case b == encloser:
				if escaper == encloser {
					// Doubled encloser is a literal one.
					next, err := p.peekByte()
					if err == nil && next == encloser {
						p.bufPos++
						column++
						p.dataBuf = append(p.dataBuf, encloser)
						continue
					}
					if err != nil && err != io.EOF {
						return nil, err
					}
				}
				state = stateAfterClose
			case escaper != 0 && b == escaper:
				lit, err := p.nextByte()
				if err == io.EOF {
					p.finished = true
					return nil, p.wrapError(curColumn, ErrTrailingEscape)
				}
				if err != nil {
					return nil, err
				}
				column++
				p.dataBuf = append(p.dataBuf, lit)
			case b == '\n':
				// Embedded newlines count toward the logical line number.
				p.dataBuf = append(p.dataBuf, b)
				p.line++
				column = 1
			default:
				p.dataBuf = append(p.dataBuf, b)
				column += p.consumeRun(enclosedSpec)
			}

		case stateAfterClose:
			switch {
			case b == d.Field:
				endField()
			case b == d.Record:
				endField()
				p.line++
				return p.buildRecord()
			case b == '\r' && d.Record == '\n':
				next, err := p.peekByte()
				if err == nil && next == '\n' {
					p.bufPos++
				} else if err != nil && err != io.EOF {
					return nil, err
				}
				endField()
				p.line++
				return p.buildRecord()
			default:
				return nil, p.wrapError(curColumn, ErrExpectedDelimiter)
			}
		}
	}
}

// ReadAll exhausts the parser, collecting records until io.EOF and returning
// the accumulated records plus the first non-EOF error encountered.
func (p *Parser) ReadAll() (records [][]string, err error) {
	for {
		record, err := p.Read()
		if err == io.EOF {
			return records, nil
		}
		if err != nil {
			return nil, err
		}
		records = append(records, record)
	}
}

// plainSpecial returns the byte set that interrupts a plain-data run in an
// unenclosed field.
func plainSpecial(d Delimiters, escaper byte) []byte {
	s := []byte{d.Field, d.Record}
	if d.Record == '\n' {
		s = append(s, '\r')
	}
	if escaper != 0 {
		s = append(s, escaper)
	}
	return s
}

// enclosedSpecial returns the byte set that interrupts a plain-data run
// inside an enclosed field.
func enclosedSpecial(escaper, encloser byte) []byte {
	s := []byte{encloser, '\n'}
	if escaper != 0 {
		s = append(s, escaper)
	}
	return s
}

// consumeRun bulk-appends buffered bytes up to (excluding) the next special
// byte and reports how many bytes were consumed. It never refills the buffer;
// the main loop resumes byte-wise at buffer boundaries.
func (p *Parser) consumeRun(special []byte) int {
	if p.bufPos >= p.bufLen {
		return 0
	}
	data := p.buf[p.bufPos:p.bufLen]
	n := len(data)
	for _, sp := range special {
		if idx := bytes.IndexByte(data[:n], sp); idx >= 0 {
			n = idx
		}
	}
	if n == 0 {
		return 0
	}
	p.dataBuf = append(p.dataBuf, data[:n]...)
	p.bufPos += n
	return n
}

// buildRecord materialises the accumulated field bounds into a []string,
// sharing the data buffer zero-copy when ReuseRecord is set.
func (p *Parser) buildRecord() ([]string, error) {
	n := len(p.fieldBounds) / 2

	var backing string
	if p.ReuseRecord {
		if len(p.dataBuf) > 0 {
			backing = unsafe.String(unsafe.SliceData(p.dataBuf), len(p.dataBuf))
		}
		if cap(p.record) < n {
			p.record = make([]string, n)
		}
		p.record = p.record[:n]
	} else {
		backing = string(p.dataBuf)
		p.record = make([]string, n)
	}

	for i := 0; i < n; i++ {
		p.record[i] = backing[p.fieldBounds[2*i]:p.fieldBounds[2*i+1]]
	}

	if p.FieldsPerRecord <= 0 {
		p.FieldsPerRecord = n
		return p.record, nil
	}
	if n != p.FieldsPerRecord {
		return p.record, ErrFieldCount
	}
	return p.record, nil
}

// wrapError attaches the current line and supplied column to err.
func (p *Parser) wrapError(column int, err error) error {
	return &ParseError{Line: p.line, Column: column, Err: err}
}

// nextByte returns the next byte from the stream, refilling the working
// buffer from src as needed.
func (p *Parser) nextByte() (byte, error) {
	b, err := p.peekByte()
	if err != nil {
		return 0, err
	}
	p.bufPos++
	return b, nil
}

// peekByte returns the next buffered byte without consuming it, refilling
// from src as needed and propagating any read error.
func (p *Parser) peekByte() (byte, error) {
	for {
		if p.bufPos < p.bufLen {
			return p.buf[p.bufPos], nil
		}
		if p.bufErr != nil {
			return 0, p.bufErr
		}

		n, err := p.src.Read(p.buf)
		if n == 0 && err != nil {
			return 0, err
		}
		if n == 0 {
			continue
		}
		p.bufPos = 0
		p.bufLen = n
		p.bufErr = err
	}
}
