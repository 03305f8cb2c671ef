// Package render encodes a call graph as DOT, Graphviz images, JSON or YAML.
package render

import (
	"context"
	"fmt"

	"github.com/viant/playgraph/graph"
)

// Renderer encodes a graph
type Renderer interface {
	Render(ctx context.Context, g *graph.Graph) ([]byte, error)
}

// New returns the renderer for format
func New(format Format) (Renderer, error) {
	format, err := ParseFormat(string(format))
	if err != nil {
		return nil, err
	}
	if format.IsImage() {
		return &ImageRenderer{Format: format}, nil
	}
	switch format {
	case FormatDOT:
		return &DOTRenderer{}, nil
	case FormatJSON:
		return &JSONRenderer{}, nil
	case FormatYAML:
		return &YAMLRenderer{}, nil
	}
	return nil, fmt.Errorf("%w: %q", ErrUnsupportedFormat, format)
}
