// # delimtext: Field Escaping, Writing, and Parsing for Delimited Text
//
// delimtext formats field values for delimited-text export formats and parses them back. The core is a single pure transformation that escapes special sequences and optionally encloses the field in a delimiter, following the rules used by database bulk-load formats (CSV-like, MySQL LOAD DATA, Hive text tables).
//
// # Features
//
// - EscapeAndEnclose / Format: escape-doubling, encloser escaping, and trigger-character enclosing with well-defined ordering; nil values pass through untouched.
// - Delimiters: a dialect value bundling field/record separators, escape and enclosing sequences, forced enclosing, and a verbatim null representation.
// - Writer: buffered record emission in any dialect, including nullable records (WriteNullable) for bulk-load null markers such as \N.
// - Parser: streaming decoder with escape-aware state machine, doubled-encloser fallback, record reuse (Parser.ReuseRecord), width enforcement (Parser.FieldsPerRecord), and structured errors via ParseError.
// - Benchmarks, a write/parse round-trip fuzz target, and table-driven unit tests.
//
// # Getting Started
//
// Import github.com/imran273/delimtext. The delimtext command under cmd/ converts files between dialects, with named presets and YAML profiles.
package delimtext

// Version is the semantic version of the module, surfaced by the CLI.
const Version = "0.1.0"
