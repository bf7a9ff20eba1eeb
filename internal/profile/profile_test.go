package profile

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/imran273/delimtext"
)

func TestBuiltin(t *testing.T) {
	t.Parallel()

	d, ok := Builtin("csv")
	require.True(t, ok)
	assert.Equal(t, byte(','), d.Field)
	assert.Equal(t, `"`, d.Enclose)
	assert.Equal(t, `\`, d.Escape)

	d, ok = Builtin("MySQL")
	require.True(t, ok, "builtin lookup should be case-insensitive")
	assert.Equal(t, `'`, d.Enclose)
	assert.Equal(t, `\N`, d.Null)

	_, ok = Builtin("nope")
	assert.False(t, ok)
}

func TestNames(t *testing.T) {
	t.Parallel()

	names := Names()
	assert.Equal(t, []string{"csv", "hive", "mysql", "pipe", "tsv"}, names)
}

func TestLoad(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "dialect.yaml")
	content := `
field: "\\t"
record: "\\n"
enclose: "'"
escape: "\\\\"
enclose_required: true
"null": "NULL"
`
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))

	d, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, delimtext.Delimiters{
		Field:           '\t',
		Record:          '\n',
		Enclose:         `'`,
		Escape:          `\`,
		EncloseRequired: true,
		Null:            "NULL",
	}, d)
}

func TestLoadMissingFile(t *testing.T) {
	t.Parallel()

	_, err := Load(filepath.Join(t.TempDir(), "absent.yaml"))
	require.Error(t, err)
}

func TestProfileDelimiters(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		profile Profile
		want    delimtext.Delimiters
		wantErr string
	}{
		{
			name:    "emptyProfileUsesDefaults",
			profile: Profile{},
			want:    delimtext.Delimiters{Field: ',', Record: '\n'},
		},
		{
			name:    "escapedSeparators",
			profile: Profile{Field: `\t`, Record: `\n`, Escape: `\\`},
			want:    delimtext.Delimiters{Field: '\t', Record: '\n', Escape: `\`},
		},
		{
			name:    "nulToken",
			profile: Profile{Escape: `\0`},
			want:    delimtext.Delimiters{Field: ',', Record: '\n', Escape: "\x00"},
		},
		{
			name:    "multiCharFieldRejected",
			profile: Profile{Field: "ab"},
			wantErr: "single character",
		},
		{
			name:    "unknownEscapeRejected",
			profile: Profile{Enclose: `\q`},
			wantErr: "unknown escape",
		},
		{
			name:    "trailingBackslashRejected",
			profile: Profile{Escape: `x\`},
			wantErr: "trailing backslash",
		},
	}

	for _, tc := range tests {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			got, err := tc.profile.Delimiters()
			if tc.wantErr != "" {
				require.ErrorContains(t, err, tc.wantErr)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tc.want, got)
		})
	}
}
