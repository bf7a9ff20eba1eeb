package delimtext

import (
	"bufio"
	"errors"
	"io"
	"strings"
)

var (
	errNilWriter      = errors.New("delimtext: writer is nil")
	errWriterNoTarget = errors.New("delimtext: writer destination cannot be nil")
)

// Writer emits delimited-text records with configurable separators, escaping,
// and enclosing rules.
type Writer struct {
	dst *bufio.Writer

	// Dialect holds the delimiter configuration applied to every record.
	// Zero separators fall back to ',' and '\n'.
	Dialect Delimiters

	err error
}

// NewWriter creates a Writer with internal buffering tuned for bulk writes.
// The zero Dialect produces unescaped, unenclosed comma-separated output.
func NewWriter(w io.Writer) *Writer {
	if w == nil {
		panic(errWriterNoTarget.Error())
	}
	return &Writer{
		dst: bufio.NewWriterSize(w, defaultBufferSize),
	}
}

// Reset updates the underlying writer while preserving the dialect.
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

// Write emits a single record, formatting every field per the dialect and
// terminating the record with the configured separator.
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

	d := w.Dialect.normalized()

	for i := range record {
		if i > 0 {
			if err := w.dst.WriteByte(d.Field); err != nil {
				w.err = err
				return err
			}
		}
		if err := w.writeField(record[i], d); err != nil {
			w.err = err
			return err
		}
	}

	if err := w.terminate(d); err != nil {
		w.err = err
		return err
	}
	return nil
}

// WriteNullable emits a record in which absent fields are rendered as the
// dialect's Null text. The null text is written verbatim, bypassing escaping,
// so that bulk-load conventions like \N survive intact.
func (w *Writer) WriteNullable(record []*string) error {
	if w == nil {
		return errNilWriter
	}
	if w.dst == nil {
		return errWriterNoTarget
	}
	if w.err != nil {
		return w.err
	}

	d := w.Dialect.normalized()

	for i := range record {
		if i > 0 {
			if err := w.dst.WriteByte(d.Field); err != nil {
				w.err = err
				return err
			}
		}
		if record[i] == nil {
			if _, err := w.dst.WriteString(d.Null); err != nil {
				w.err = err
				return err
			}
			continue
		}
		if err := w.writeField(*record[i], d); err != nil {
			w.err = err
			return err
		}
	}

	if err := w.terminate(d); err != nil {
		w.err = err
		return err
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

func (w *Writer) writeField(field string, d Delimiters) error {
	if w.fieldIsPlain(field, d) {
		_, err := w.dst.WriteString(field)
		return err
	}
	_, err := w.dst.WriteString(Format(field, d.Escape, d.Enclose, d.triggers(), d.EncloseRequired))
	return err
}

// fieldIsPlain reports whether field can be written without any escaping or
// enclosing, so the common case skips the formatting allocation.
func (w *Writer) fieldIsPlain(field string, d Delimiters) bool {
	if d.EncloseRequired && sequenceLegal(d.Enclose) {
		return false
	}
	if sequenceLegal(d.Escape) && strings.Contains(field, d.Escape) {
		return false
	}
	if sequenceLegal(d.Enclose) && strings.Contains(field, d.Enclose) {
		return false
	}
	return !strings.ContainsAny(field, d.triggers())
}

func (w *Writer) terminate(d Delimiters) error {
	if d.CRLF && d.Record == '\n' {
		_, err := w.dst.Write([]byte{'\r', '\n'})
		return err
	}
	return w.dst.WriteByte(d.Record)
}
