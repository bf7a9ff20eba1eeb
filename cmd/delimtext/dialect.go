package main

import (
	"fmt"
	"strings"

	"github.com/imran273/delimtext"
	"github.com/imran273/delimtext/internal/profile"
)

// resolveDialect picks a dialect from a YAML profile path when given,
// otherwise from the built-in preset registry. An empty name means csv.
func resolveDialect(name, profilePath string) (delimtext.Delimiters, error) {
	if profilePath != "" {
		return profile.Load(profilePath)
	}
	if name == "" {
		name = "csv"
	}
	if d, ok := profile.Builtin(name); ok {
		return d, nil
	}
	return delimtext.Delimiters{}, fmt.Errorf("unknown dialect %q (built-ins: %s)",
		name, strings.Join(profile.Names(), ", "))
}
