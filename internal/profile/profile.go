// Package profile resolves named delimiter dialects, either from the
// built-in presets or from YAML profile files.
package profile

import (
	"fmt"
	"os"
	"sort"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/imran273/delimtext"
)

// Profile is the on-disk form of a delimiter dialect. Separator fields hold
// a single character, optionally written as a backslash escape (\t, \n, \r,
// \0, \\). Empty enclose/escape values disable the feature.
type Profile struct {
	Field           string `yaml:"field"`
	Record          string `yaml:"record"`
	Enclose         string `yaml:"enclose"`
	Escape          string `yaml:"escape"`
	EncloseRequired bool   `yaml:"enclose_required"`
	CRLF            bool   `yaml:"crlf"`
	Null            string `yaml:"null"`
}

var builtins = map[string]delimtext.Delimiters{
	"csv":  {Field: ',', Record: '\n', Enclose: `"`, Escape: `\`},
	"tsv":  {Field: '\t', Record: '\n', Escape: `\`},
	"pipe": {Field: '|', Record: '\n', Escape: `\`},
	// MySQL LOAD DATA / SELECT INTO OUTFILE defaults.
	"mysql": {Field: ',', Record: '\n', Enclose: `'`, Escape: `\`, Null: `\N`},
	// Hive text tables: ^A separated, no escaping.
	"hive": {Field: '\x01', Record: '\n', Null: `\N`},
}

// Builtin returns the preset dialect registered under name.
func Builtin(name string) (delimtext.Delimiters, bool) {
	d, ok := builtins[strings.ToLower(name)]
	return d, ok
}

// Names lists the built-in preset names in sorted order.
func Names() []string {
	names := make([]string, 0, len(builtins))
	for name := range builtins {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Load reads a YAML profile file and resolves it to a dialect.
func Load(path string) (delimtext.Delimiters, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return delimtext.Delimiters{}, fmt.Errorf("profile: read %s: %w", path, err)
	}

	var p Profile
	if err := yaml.Unmarshal(raw, &p); err != nil {
		return delimtext.Delimiters{}, fmt.Errorf("profile: parse %s: %w", path, err)
	}

	d, err := p.Delimiters()
	if err != nil {
		return delimtext.Delimiters{}, fmt.Errorf("profile: %s: %w", path, err)
	}
	return d, nil
}

// Delimiters validates the profile and converts it to a dialect value.
func (p Profile) Delimiters() (delimtext.Delimiters, error) {
	field, err := separator("field", p.Field, ',')
	if err != nil {
		return delimtext.Delimiters{}, err
	}
	record, err := separator("record", p.Record, '\n')
	if err != nil {
		return delimtext.Delimiters{}, err
	}
	enclose, err := unescapeToken("enclose", p.Enclose)
	if err != nil {
		return delimtext.Delimiters{}, err
	}
	escape, err := unescapeToken("escape", p.Escape)
	if err != nil {
		return delimtext.Delimiters{}, err
	}

	return delimtext.Delimiters{
		Field:           field,
		Record:          record,
		Enclose:         enclose,
		Escape:          escape,
		EncloseRequired: p.EncloseRequired,
		CRLF:            p.CRLF,
		Null:            p.Null,
	}, nil
}

// separator resolves a single-character separator token, applying def when
// the token is empty.
func separator(name, token string, def byte) (byte, error) {
	if token == "" {
		return def, nil
	}
	s, err := unescapeToken(name, token)
	if err != nil {
		return 0, err
	}
	if len(s) != 1 {
		return 0, fmt.Errorf("%s separator must be a single character, got %q", name, token)
	}
	return s[0], nil
}

func unescapeToken(name, token string) (string, error) {
	if !strings.Contains(token, `\`) {
		return token, nil
	}

	var b strings.Builder
	for i := 0; i < len(token); i++ {
		c := token[i]
		if c != '\\' {
			b.WriteByte(c)
			continue
		}
		i++
		if i >= len(token) {
			return "", fmt.Errorf("%s: trailing backslash in %q", name, token)
		}
		switch token[i] {
		case 't':
			b.WriteByte('\t')
		case 'n':
			b.WriteByte('\n')
		case 'r':
			b.WriteByte('\r')
		case '0':
			b.WriteByte(0)
		case '\\':
			b.WriteByte('\\')
		default:
			return "", fmt.Errorf("%s: unknown escape \\%c in %q", name, token[i], token)
		}
	}
	return b.String(), nil
}
