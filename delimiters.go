package delimtext

// Delimiters describes a delimited-text dialect: the field and record
// separators, optional enclosing and escape sequences, and the textual form
// of absent values.
//
// The Writer honours Enclose and Escape as full strings. The Parser, which
// works byte-wise, uses only their first byte; multi-byte sequences are a
// formatting-side feature.
type Delimiters struct {
	// Field is the field separator. Default is ','.
	Field byte
	// Record is the record terminator. Default is '\n'.
	Record byte
	// Enclose is the enclosing sequence. Empty or "\x00" disables enclosing.
	Enclose string
	// Escape is the escape sequence. Empty or "\x00" disables escaping.
	Escape string
	// EncloseRequired forces enclosing on every written field.
	EncloseRequired bool
	// CRLF emits \r\n record terminators when Record is '\n'.
	CRLF bool
	// Null is written verbatim in place of absent fields. Default is "".
	Null string
}

// normalized returns d with zero separators replaced by the defaults.
func (d Delimiters) normalized() Delimiters {
	if d.Field == 0 {
		d.Field = ','
	}
	if d.Record == 0 {
		d.Record = '\n'
	}
	return d
}

// triggers returns the characters whose presence in a raw field value forces
// enclosing: the separators, plus '\r' since a bare carriage return would be
// folded into the record terminator when read back.
func (d Delimiters) triggers() string {
	t := []byte{d.Field, d.Record}
	if d.Field != '\r' && d.Record != '\r' {
		t = append(t, '\r')
	}
	return string(t)
}

// FormatField renders one field value according to the dialect.
func (d Delimiters) FormatField(value string) string {
	d = d.normalized()
	return Format(value, d.Escape, d.Enclose, d.triggers(), d.EncloseRequired)
}

// encloseByte returns the parsing-side enclosing byte, zero when disabled.
func (d Delimiters) encloseByte() byte {
	if !sequenceLegal(d.Enclose) {
		return 0
	}
	return d.Enclose[0]
}

// escapeByte returns the parsing-side escape byte, zero when disabled.
func (d Delimiters) escapeByte() byte {
	if !sequenceLegal(d.Escape) {
		return 0
	}
	return d.Escape[0]
}
