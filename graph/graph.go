package graph

import (
	"errors"
	"fmt"
)

// ErrNodeNotFound is returned when an edge references a node the graph does not know
var ErrNodeNotFound = errors.New("node not found")

// Graph holds nodes and directed edges in insertion order; nothing is ever removed.
// It is not safe for concurrent use.
type Graph struct {
	nodes []*Node
	index map[string]int
	edges []*Edge
	in    map[string]int
}

// New creates an empty graph
func New() *Graph {
	return &Graph{
		index: make(map[string]int),
		in:    make(map[string]int),
	}
}

// AddNode inserts a node and returns the stored instance. Adding a node whose ID
// is already known leaves the graph unchanged and returns the existing node.
func (g *Graph) AddNode(node *Node) *Node {
	if idx, ok := g.index[node.ID]; ok {
		return g.nodes[idx]
	}
	g.index[node.ID] = len(g.nodes)
	g.nodes = append(g.nodes, node)
	return node
}

// AddEdge records a directed edge; both endpoints must already be in the graph.
// Repeated edges between the same pair are kept.
func (g *Graph) AddEdge(from, to *Node) error {
	if from == nil || to == nil {
		return fmt.Errorf("edge %v -> %v: %w", from, to, ErrNodeNotFound)
	}
	if _, ok := g.index[from.ID]; !ok {
		return fmt.Errorf("edge source %s: %w", from.ID, ErrNodeNotFound)
	}
	if _, ok := g.index[to.ID]; !ok {
		return fmt.Errorf("edge destination %s: %w", to.ID, ErrNodeNotFound)
	}
	g.edges = append(g.edges, &Edge{From: g.nodes[g.index[from.ID]], To: g.nodes[g.index[to.ID]]})
	g.in[to.ID]++
	return nil
}

// Node returns a node by ID
func (g *Graph) Node(id string) (*Node, bool) {
	idx, ok := g.index[id]
	if !ok {
		return nil, false
	}
	return g.nodes[idx], true
}

// Nodes returns nodes in insertion order
func (g *Graph) Nodes() []*Node {
	result := make([]*Node, len(g.nodes))
	copy(result, g.nodes)
	return result
}

// Edges returns edges in insertion order
func (g *Graph) Edges() []*Edge {
	result := make([]*Edge, len(g.edges))
	copy(result, g.edges)
	return result
}

// Len returns the number of nodes
func (g *Graph) Len() int {
	return len(g.nodes)
}

// InDegree returns the number of edges pointing at the node
func (g *Graph) InDegree(id string) int {
	return g.in[id]
}

// Successors returns the callee IDs of a node in edge order, repeated edges included
func (g *Graph) Successors(id string) []string {
	var result []string
	for _, edge := range g.edges {
		if edge.From.ID == id {
			result = append(result, edge.To.ID)
		}
	}
	return result
}
