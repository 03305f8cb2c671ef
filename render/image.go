package render

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"os/exec"
	"strings"

	"github.com/goccy/go-graphviz"
	"github.com/viant/playgraph/graph"
	"github.com/viant/playgraph/internal/ctxlog"
)

// DefaultBinary is the Graphviz layout command used when the embedded engine cannot render a format
const DefaultBinary = "dot"

// ErrGraphvizMissing is returned when a format needs the Graphviz binary and it cannot be found
var ErrGraphvizMissing = errors.New("graphviz dot binary not found")

// ImageRenderer lays out the DOT form with the embedded Graphviz engine,
// falling back to the Graphviz binary for formats the engine rejects.
type ImageRenderer struct {
	Format Format
	// Binary overrides the Graphviz command, dot when empty
	Binary string
	// External skips the embedded engine
	External bool
}

func (r *ImageRenderer) Render(ctx context.Context, g *graph.Graph) ([]byte, error) {
	logger := ctxlog.FromContext(ctx)
	source, err := (&DOTRenderer{}).Render(ctx, g)
	if err != nil {
		return nil, err
	}
	if r.External {
		return r.renderExternal(ctx, source, nil)
	}
	data, err := r.renderEmbedded(ctx, source)
	if err == nil {
		return data, nil
	}
	logger.Debug("embedded graphviz failed, trying binary", "format", r.Format, "error", err)
	return r.renderExternal(ctx, source, err)
}

func (r *ImageRenderer) renderEmbedded(ctx context.Context, source []byte) (data []byte, err error) {
	gv, err := graphviz.New(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to start graphviz: %w", err)
	}
	defer func() {
		if closeErr := gv.Close(); err == nil && closeErr != nil {
			err = closeErr
		}
	}()
	parsed, err := graphviz.ParseBytes(source)
	if err != nil {
		return nil, fmt.Errorf("failed to parse dot: %w", err)
	}
	defer parsed.Close()

	buf := &bytes.Buffer{}
	if err = gv.Render(ctx, parsed, graphviz.Format(r.Format), buf); err != nil {
		return nil, fmt.Errorf("failed to render %s: %w", r.Format, err)
	}
	if buf.Len() == 0 {
		return nil, fmt.Errorf("failed to render %s: empty output", r.Format)
	}
	return buf.Bytes(), nil
}

func (r *ImageRenderer) renderExternal(ctx context.Context, source []byte, embeddedErr error) ([]byte, error) {
	binary := r.Binary
	if binary == "" {
		binary = DefaultBinary
	}
	command, err := exec.LookPath(binary)
	if err != nil {
		if embeddedErr != nil {
			return nil, fmt.Errorf("%w: %s: %v (embedded: %v)", ErrGraphvizMissing, binary, err, embeddedErr)
		}
		return nil, fmt.Errorf("%w: %s: %v", ErrGraphvizMissing, binary, err)
	}
	ctxlog.FromContext(ctx).Debug("running graphviz", "command", command, "format", r.Format)

	cmd := exec.CommandContext(ctx, command, "-T"+string(r.Format))
	cmd.Stdin = bytes.NewReader(source)
	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr
	if err := cmd.Run(); err != nil {
		return nil, fmt.Errorf("%s -T%s failed: %w: %s", binary, r.Format, err, strings.TrimSpace(stderr.String()))
	}
	return stdout.Bytes(), nil
}
