package render

import (
	"context"
	"encoding/json"

	"github.com/viant/playgraph/graph"
	"gopkg.in/yaml.v3"
)

// Document is the structured form of a graph
type Document struct {
	Nodes []*graph.Node `json:"nodes" yaml:"nodes"`
	Edges []EdgeRef     `json:"edges" yaml:"edges"`
}

// EdgeRef links two node IDs
type EdgeRef struct {
	From string `json:"from" yaml:"from"`
	To   string `json:"to" yaml:"to"`
}

// NewDocument copies nodes and edges in insertion order
func NewDocument(g *graph.Graph) *Document {
	doc := &Document{Nodes: g.Nodes(), Edges: []EdgeRef{}}
	for _, edge := range g.Edges() {
		doc.Edges = append(doc.Edges, EdgeRef{From: edge.From.ID, To: edge.To.ID})
	}
	return doc
}

type JSONRenderer struct{}

func (r *JSONRenderer) Render(ctx context.Context, g *graph.Graph) ([]byte, error) {
	data, err := json.MarshalIndent(NewDocument(g), "", "  ")
	if err != nil {
		return nil, err
	}
	return append(data, '\n'), nil
}

type YAMLRenderer struct{}

func (r *YAMLRenderer) Render(ctx context.Context, g *graph.Graph) ([]byte, error) {
	return yaml.Marshal(NewDocument(g))
}
