package delimtext

import (
	"bytes"
	"errors"
	"strings"
	"testing"
)

func TestWriterWrite(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		records [][]string
		config  func(*Writer)
		want    string
	}{
		{
			name:    "basic",
			records: [][]string{{"a", "b", "c"}},
			want:    "a,b,c\n",
		},
		{
			name: "multipleRecords",
			records: [][]string{
				{"alpha", "beta"},
				{"gamma", "delta"},
			},
			want: "alpha,beta\ngamma,delta\n",
		},
		{
			name:    "emptyField",
			records: [][]string{{"", "b"}},
			want:    ",b\n",
		},
		{
			name:    "fieldSeparatorForcesEnclose",
			records: [][]string{{"alpha,beta"}},
			config: func(w *Writer) {
				w.Dialect = Delimiters{Enclose: `"`, Escape: `\`}
			},
			want: "\"alpha,beta\"\n",
		},
		{
			name: "escapeSequenceDoubled",
			records: [][]string{
				{`back\slash`, "plain"},
			},
			config: func(w *Writer) {
				w.Dialect = Delimiters{Enclose: `"`, Escape: `\`}
			},
			want: `back\\slash,plain` + "\n",
		},
		{
			name: "encloserEscapedWithEscapeSequence",
			records: [][]string{
				{`he said "hello"`, "plain"},
			},
			config: func(w *Writer) {
				w.Dialect = Delimiters{Enclose: `"`, Escape: `\`}
			},
			want: `he said \"hello\",plain` + "\n",
		},
		{
			name: "newlineForcesEnclose",
			records: [][]string{
				{"multi\nline", "z"},
			},
			config: func(w *Writer) {
				w.Dialect = Delimiters{Enclose: `"`, Escape: `\`}
			},
			want: "\"multi\nline\",z\n",
		},
		{
			name: "encloseRequired",
			records: [][]string{
				{"alpha", "beta"},
			},
			config: func(w *Writer) {
				w.Dialect = Delimiters{Enclose: `"`, Escape: `\`, EncloseRequired: true}
			},
			want: "\"alpha\",\"beta\"\n",
		},
		{
			name: "customSeparators",
			records: [][]string{
				{"a|b", "c"},
			},
			config: func(w *Writer) {
				w.Dialect = Delimiters{Field: '|', Enclose: `'`, Escape: `\`}
			},
			want: "'a|b'|c\n",
		},
		{
			name: "noEscapeConfigured",
			records: [][]string{
				{"a,b"},
			},
			config: func(w *Writer) {
				w.Dialect = Delimiters{Enclose: `"`}
			},
			want: "\"a,b\"\n",
		},
		{
			name: "crlf",
			records: [][]string{
				{"a"},
				{"b"},
			},
			config: func(w *Writer) {
				w.Dialect = Delimiters{CRLF: true}
			},
			want: "a\r\nb\r\n",
		},
	}

	for _, tc := range tests {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			var buf bytes.Buffer
			w := NewWriter(&buf)
			if tc.config != nil {
				tc.config(w)
			}
			for _, rec := range tc.records {
				if err := w.Write(rec); err != nil {
					t.Fatalf("Write() error = %v", err)
				}
			}
			if err := w.Flush(); err != nil {
				t.Fatalf("Flush() error = %v", err)
			}
			if got := buf.String(); got != tc.want {
				t.Fatalf("unexpected output:\n got: %q\nwant: %q", got, tc.want)
			}
		})
	}
}

func TestWriterWriteNullable(t *testing.T) {
	t.Parallel()

	val := "x,y"
	esc := `nul\char`

	tests := []struct {
		name    string
		dialect Delimiters
		record  []*string
		want    string
	}{
		{
			name:    "defaultNullIsEmpty",
			dialect: Delimiters{Enclose: `"`, Escape: `\`},
			record:  []*string{nil, &val},
			want:    ",\"x,y\"\n",
		},
		{
			name:    "nullMarkerVerbatim",
			dialect: Delimiters{Enclose: `"`, Escape: `\`, Null: `\N`},
			record:  []*string{&val, nil},
			want:    "\"x,y\"," + `\N` + "\n",
		},
		{
			name:    "presentFieldsStillEscaped",
			dialect: Delimiters{Enclose: `"`, Escape: `\`, Null: `\N`},
			record:  []*string{&esc, nil},
			want:    `nul\\char,\N` + "\n",
		},
	}

	for _, tc := range tests {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			var buf bytes.Buffer
			w := NewWriter(&buf)
			w.Dialect = tc.dialect
			if err := w.WriteNullable(tc.record); err != nil {
				t.Fatalf("WriteNullable() error = %v", err)
			}
			if err := w.Flush(); err != nil {
				t.Fatalf("Flush() error = %v", err)
			}
			if got := buf.String(); got != tc.want {
				t.Fatalf("unexpected output:\n got: %q\nwant: %q", got, tc.want)
			}
		})
	}
}

func TestWriterWriteAll(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	w := NewWriter(&buf)

	records := [][]string{
		{"alpha", "beta"},
		{"gamma", "delta"},
	}

	if err := w.WriteAll(records); err != nil {
		t.Fatalf("WriteAll() error = %v", err)
	}
	if err := w.Flush(); err != nil {
		t.Fatalf("Flush() error = %v", err)
	}

	want := "alpha,beta\ngamma,delta\n"
	if got := buf.String(); got != want {
		t.Fatalf("unexpected output got %q want %q", got, want)
	}
}

func TestWriterReset(t *testing.T) {
	t.Parallel()

	var buf1 bytes.Buffer
	var buf2 bytes.Buffer

	var w Writer
	w.Reset(&buf1)

	if err := w.Write([]string{"a"}); err != nil {
		t.Fatalf("Write() error = %v", err)
	}
	if err := w.Flush(); err != nil {
		t.Fatalf("Flush() error = %v", err)
	}
	if got := buf1.String(); got != "a\n" {
		t.Fatalf("unexpected buf1 contents %q", got)
	}

	w.Dialect = Delimiters{Field: ';', CRLF: true}
	w.Reset(&buf2)
	if err := w.Write([]string{"x", "y"}); err != nil {
		t.Fatalf("Write() error = %v", err)
	}
	if err := w.Flush(); err != nil {
		t.Fatalf("Flush() error = %v", err)
	}
	if got := buf2.String(); got != "x;y\r\n" {
		t.Fatalf("unexpected buf2 contents %q", got)
	}
}

type flushFailWriter struct {
	fail error
}

func (f *flushFailWriter) Write([]byte) (int, error) {
	return 0, f.fail
}

func TestWriterFlushError(t *testing.T) {
	t.Parallel()

	exp := errors.New("flush failed")
	w := NewWriter(&flushFailWriter{fail: exp})

	if err := w.Write([]string{"a"}); err != nil {
		t.Fatalf("Write() error = %v", err)
	}
	if err := w.Flush(); !errors.Is(err, exp) {
		t.Fatalf("expected flush error %v, got %v", exp, err)
	}
	if err := w.Write([]string{"b"}); !errors.Is(err, exp) {
		t.Fatalf("Write() should return stored error %v, got %v", exp, err)
	}
}

func TestWriterErrorMethod(t *testing.T) {
	t.Parallel()

	w := NewWriter(&strings.Builder{})
	if err := w.Error(); err != nil {
		t.Fatalf("expected nil error from fresh writer, got %v", err)
	}

	exp := errors.New("flush failed")
	w.Reset(&flushFailWriter{fail: exp})
	if err := w.Write([]string{"a"}); err != nil {
		t.Fatalf("Write() error = %v", err)
	}
	if err := w.Flush(); !errors.Is(err, exp) {
		t.Fatalf("expected flush error %v, got %v", exp, err)
	}
	if err := w.Error(); !errors.Is(err, exp) {
		t.Fatalf("Error() should return %v, got %v", exp, err)
	}
}
