package analyzer

import (
	"context"
	"github.com/viant/playgraph/graph"
)

// GraphExporter receives the graph once analysis is complete
type GraphExporter interface {
	Export(ctx context.Context, g *graph.Graph) error
}

// WithGraphExporter registers a GraphExporter to send the graph to after analysis.
func WithGraphExporter(exporter GraphExporter) Option {
	return func(a *Analyzer) {
		a.graphExporter = exporter
	}
}

// Export hands the graph to the registered exporter, if any
func (a *Analyzer) Export(ctx context.Context) error {
	if a.graphExporter == nil {
		return nil
	}
	return a.graphExporter.Export(ctx, a.graph)
}
