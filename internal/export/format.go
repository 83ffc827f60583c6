// Package export writes chat transcripts and dev lab snapshots to files.
package export

import (
	"fmt"

	"github.com/spf13/pflag"
)

// Format is an output file format. It can be used as a command line flag.
type Format string

const (
	FormatText     Format = "txt"
	FormatJSON     Format = "json"
	FormatMarkdown Format = "md"
	FormatPDF      Format = "pdf"
	FormatXLSX     Format = "xlsx"
)

var formats = []Format{FormatText, FormatJSON, FormatMarkdown, FormatPDF, FormatXLSX}

// ParseFormat returns the Format named by v.
func ParseFormat(v string) (Format, error) {
	for _, f := range formats {
		if string(f) == v {
			return f, nil
		}
	}
	return "", fmt.Errorf("invalid format %q, valid values are %q", v, formats)
}

// Set implements pflag.Value.
func (f *Format) Set(v string) error {
	parsed, err := ParseFormat(v)
	if err != nil {
		return err
	}
	*f = parsed
	return nil
}

// String implements pflag.Value.
func (f *Format) String() string {
	if f == nil {
		return ""
	}
	return string(*f)
}

// Type implements pflag.Value.
func (f *Format) Type() string {
	return "Format"
}

var (
	_ pflag.Value = (*Format)(nil)
)
