package delimtext

import "strings"

// nulSentinel is the literal "no character configured" token. Escape and
// enclosing sequences set to this value behave as if they were unset.
const nulSentinel = "\x00"

// sequenceLegal reports whether seq can act as an escape or enclosing
// sequence. Empty strings and the NUL sentinel mean the feature is off.
func sequenceLegal(seq string) bool {
	return seq != "" && seq != nulSentinel
}

// EscapeAndEnclose formats a single nullable field value for delimited-text
// output. A nil value stays nil. See Format for the transformation rules.
func EscapeAndEnclose(value *string, escape, enclose, mustEncloseFor string, encloseRequired bool) *string {
	if value == nil {
		return nil
	}
	out := Format(*value, escape, enclose, mustEncloseFor, encloseRequired)
	return &out
}

// Format escapes and optionally encloses a field value.
//
// When escape is a legal sequence, every occurrence of it in value is
// doubled first, then (if enclose is also legal) every occurrence of the
// enclosing sequence is prefixed with a single escape. The ordering matters:
// because doubling happens before enclose-escaping, the escape inserted in
// front of an encloser is never re-doubled.
//
// The value is wrapped in enclose when encloseRequired is set, or when any
// character of mustEncloseFor occurs in the raw input. The trigger scan runs
// against the original value, not the escaped form.
//
// Empty or NUL escape/enclose sequences disable the respective step; there
// are no error conditions.
func Format(value, escape, enclose, mustEncloseFor string, encloseRequired bool) string {
	escaping := sequenceLegal(escape)

	withEscapes := value
	if escaping {
		// The escape sequence escapes itself first.
		withEscapes = strings.ReplaceAll(withEscapes, escape, escape+escape)
	}

	if !sequenceLegal(enclose) {
		return withEscapes
	}

	// Once an enclosing sequence is configured and escaping is legal, the
	// encloser is escaped whether or not the field ends up enclosed.
	if escaping {
		withEscapes = strings.ReplaceAll(withEscapes, enclose, escape+enclose)
	}

	doEnclose := encloseRequired
	if !doEnclose && mustEncloseFor != "" {
		doEnclose = strings.ContainsAny(value, mustEncloseFor)
	}

	if doEnclose {
		return enclose + withEscapes + enclose
	}
	return withEscapes
}
