package render

import (
	"context"
	"fmt"
	"strconv"

	"github.com/awalterschulze/gographviz"
	"github.com/viant/playgraph/graph"
)

// GraphName is the name of the emitted digraph
const GraphName = "playgraph"

// DOTRenderer emits a Graphviz digraph
type DOTRenderer struct{}

// Render builds a directed gographviz graph with one statement per node and edge
func (r *DOTRenderer) Render(ctx context.Context, g *graph.Graph) ([]byte, error) {
	dot, err := r.build(g)
	if err != nil {
		return nil, err
	}
	return []byte(dot.String()), nil
}

func (r *DOTRenderer) build(g *graph.Graph) (*gographviz.Graph, error) {
	dot := gographviz.NewGraph()
	if err := dot.SetName(GraphName); err != nil {
		return nil, err
	}
	if err := dot.SetDir(true); err != nil {
		return nil, err
	}
	for _, node := range g.Nodes() {
		if err := dot.AddNode(GraphName, strconv.Quote(node.ID), nodeAttributes(node)); err != nil {
			return nil, fmt.Errorf("node %s: %w", node.ID, err)
		}
	}
	for _, edge := range g.Edges() {
		if err := dot.AddEdge(strconv.Quote(edge.From.ID), strconv.Quote(edge.To.ID), true, nil); err != nil {
			return nil, fmt.Errorf("edge %s -> %s: %w", edge.From.ID, edge.To.ID, err)
		}
	}
	return dot, nil
}

func nodeAttributes(node *graph.Node) map[string]string {
	attrs := map[string]string{
		"label": strconv.Quote(node.Label),
	}
	if node.Shape != "" {
		attrs["shape"] = node.Shape
	}
	if node.FillColor != "" {
		attrs["fillcolor"] = node.FillColor
	}
	if node.Margin != "" {
		attrs["margin"] = strconv.Quote(node.Margin)
	}
	if node.Style != "" {
		attrs["style"] = node.Style
	}
	return attrs
}
