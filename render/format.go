package render

import (
	"errors"
	"fmt"
	"path"
	"strings"
)

// Format identifies an output encoding
type Format string

const (
	FormatDOT  Format = "dot"
	FormatPNG  Format = "png"
	FormatSVG  Format = "svg"
	FormatPDF  Format = "pdf"
	FormatJSON Format = "json"
	FormatYAML Format = "yaml"

	// DefaultFormat is used when the destination has no recognized extension
	DefaultFormat = FormatPNG
)

// ErrUnsupportedFormat is returned for unknown format names
var ErrUnsupportedFormat = errors.New("unsupported format")

var aliases = map[string]Format{
	"dot":  FormatDOT,
	"gv":   FormatDOT,
	"png":  FormatPNG,
	"svg":  FormatSVG,
	"pdf":  FormatPDF,
	"json": FormatJSON,
	"yaml": FormatYAML,
	"yml":  FormatYAML,
}

// ParseFormat returns the format registered under name, e.g. png or yml
func ParseFormat(name string) (Format, error) {
	if format, ok := aliases[strings.ToLower(strings.TrimPrefix(name, "."))]; ok {
		return format, nil
	}
	return "", fmt.Errorf("%w: %q", ErrUnsupportedFormat, name)
}

// FormatFromPath infers the format from the destination extension
func FormatFromPath(location string) Format {
	if format, err := ParseFormat(path.Ext(location)); err == nil {
		return format
	}
	return DefaultFormat
}

// IsImage returns true for formats laid out by Graphviz
func (f Format) IsImage() bool {
	switch f {
	case FormatPNG, FormatSVG, FormatPDF:
		return true
	}
	return false
}
