package render

import (
	"bytes"
	"context"
	"fmt"

	"github.com/viant/afs"
	"github.com/viant/afs/file"
	"github.com/viant/playgraph/graph"
	"github.com/viant/playgraph/internal/ctxlog"
)

// FileExporter renders the graph and uploads it to Destination
type FileExporter struct {
	Format      Format
	Destination string
	// FS defaults to afs.New()
	FS afs.Service
}

// NewFileExporter creates an exporter; an empty format is inferred from destination
func NewFileExporter(format Format, destination string) *FileExporter {
	if format == "" {
		format = FormatFromPath(destination)
	}
	return &FileExporter{Format: format, Destination: destination}
}

// Export implements analyzer.GraphExporter
func (e *FileExporter) Export(ctx context.Context, g *graph.Graph) error {
	logger := ctxlog.FromContext(ctx)
	logger.Info("writing graph output", "format", e.Format, "path", e.Destination)
	renderer, err := New(e.Format)
	if err != nil {
		return err
	}
	data, err := renderer.Render(ctx, g)
	if err != nil {
		return fmt.Errorf("failed to render %s: %w", e.Format, err)
	}
	fs := e.FS
	if fs == nil {
		fs = afs.New()
	}
	if err := fs.Upload(ctx, e.Destination, file.DefaultFileOsMode, bytes.NewReader(data)); err != nil {
		return fmt.Errorf("failed to write %s: %w", e.Destination, err)
	}
	return nil
}
