// Package ui decides how command output is presented and renders the
// tabular listings of the CLI.
package ui

import (
	"io"
	"os"
	"sort"
	"strings"

	"github.com/mattn/go-isatty"
	"github.com/muesli/termenv"
	"github.com/spf13/pflag"

	"github.com/arthur-debert/simreg/pkg/errors"
)

// Format selects how listings and descriptions are written
type Format int

const (
	// FormatAuto picks FormatTerminal or FormatText from the output stream
	FormatAuto Format = iota
	// FormatTerminal writes styled tables and rendered markdown
	FormatTerminal
	// FormatText writes tab-separated rows and plain markdown
	FormatText
	// FormatYAML writes the registry contents as YAML documents
	FormatYAML
)

var _ pflag.Value = (*Format)(nil)

// canonical names, indexed by Format
var formatNames = [...]string{
	FormatAuto:     "auto",
	FormatTerminal: "term",
	FormatText:     "text",
	FormatYAML:     "yaml",
}

// spellings accepted on the command line and in config.toml
var formatAliases = map[string]Format{
	"":         FormatAuto,
	"auto":     FormatAuto,
	"term":     FormatTerminal,
	"terminal": FormatTerminal,
	"text":     FormatText,
	"plain":    FormatText,
	"yaml":     FormatYAML,
	"yml":      FormatYAML,
}

func (f Format) String() string {
	if f < 0 || int(f) >= len(formatNames) {
		return "unknown"
	}
	return formatNames[f]
}

// Set parses s into f, so a Format can back a command-line flag
func (f *Format) Set(s string) error {
	parsed, err := ParseFormat(s)
	if err != nil {
		return err
	}
	*f = parsed
	return nil
}

// Type names the flag value in help output
func (f *Format) Type() string {
	return "format"
}

// FormatNames lists the canonical format names
func FormatNames() []string {
	return append([]string(nil), formatNames[:]...)
}

// ParseFormat maps a format name, case-insensitively, to its Format
func ParseFormat(s string) (Format, error) {
	if f, ok := formatAliases[strings.ToLower(strings.TrimSpace(s))]; ok {
		return f, nil
	}
	accepted := make([]string, 0, len(formatAliases))
	for name := range formatAliases {
		if name != "" {
			accepted = append(accepted, name)
		}
	}
	sort.Strings(accepted)
	return FormatAuto, errors.Newf(errors.ErrInvalidInput, "unknown format: %s", s).
		WithDetail("accepted", accepted)
}

// DetectFormat picks FormatTerminal when w is a color-capable terminal and
// FormatText otherwise. Writers that are not files never get styling.
func DetectFormat(w io.Writer) Format {
	if os.Getenv("NO_COLOR") != "" {
		return FormatText
	}
	file, ok := w.(interface{ Fd() uintptr })
	if !ok {
		return FormatText
	}
	fd := file.Fd()
	if !isatty.IsTerminal(fd) && !isatty.IsCygwinTerminal(fd) {
		return FormatText
	}
	if termenv.NewOutput(w).Profile == termenv.Ascii {
		return FormatText
	}
	return FormatTerminal
}

// Resolve returns f, or the detected format for w when f is FormatAuto
func Resolve(f Format, w io.Writer) Format {
	if f != FormatAuto {
		return f
	}
	return DetectFormat(w)
}
