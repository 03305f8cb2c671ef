package render

import (
	"bytes"
	"context"
	"encoding/json"
	"os"
	"os/exec"
	"path/filepath"
	"strconv"
	"testing"

	"github.com/awalterschulze/gographviz"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/viant/playgraph/graph"
	"gopkg.in/yaml.v3"
)

func sampleGraph(t *testing.T) *graph.Graph {
	t.Helper()
	g := graph.New()
	root := g.AddNode(graph.NewPlaybookNode("/tmp/site.yml"))
	setup := g.AddNode(graph.NewTaskNode("web", "setup.yml"))
	webMain := g.AddNode(graph.NewTaskNode("web", "main.yml"))
	require.NoError(t, g.AddEdge(webMain, setup))
	require.NoError(t, g.AddEdge(root, webMain))
	return g
}

func TestFormatFromPath(t *testing.T) {
	tests := []struct {
		description string
		location    string
		expect      Format
	}{
		{description: "png", location: "./ansible_graph.png", expect: FormatPNG},
		{description: "upper case svg", location: "out/graph.SVG", expect: FormatSVG},
		{description: "pdf", location: "graph.pdf", expect: FormatPDF},
		{description: "dot", location: "graph.dot", expect: FormatDOT},
		{description: "gv alias", location: "graph.gv", expect: FormatDOT},
		{description: "json", location: "file:///tmp/graph.json", expect: FormatJSON},
		{description: "yml alias", location: "graph.yml", expect: FormatYAML},
		{description: "no extension", location: "graph", expect: DefaultFormat},
		{description: "unknown extension", location: "graph.txt", expect: DefaultFormat},
	}
	for _, tc := range tests {
		t.Run(tc.description, func(t *testing.T) {
			assert.Equal(t, tc.expect, FormatFromPath(tc.location))
		})
	}
}

func TestNew(t *testing.T) {
	for _, format := range []Format{FormatDOT, FormatPNG, FormatSVG, FormatPDF, FormatJSON, FormatYAML} {
		renderer, err := New(format)
		require.NoError(t, err, format)
		assert.NotNil(t, renderer, format)
		assert.Equal(t, format == FormatPNG || format == FormatSVG || format == FormatPDF, format.IsImage())
	}
	_, err := New("bmp")
	assert.ErrorIs(t, err, ErrUnsupportedFormat)
}

func TestDOTRenderer_Render(t *testing.T) {
	data, err := (&DOTRenderer{}).Render(context.Background(), sampleGraph(t))
	require.NoError(t, err)

	parsed, err := gographviz.Read(data)
	require.NoError(t, err)
	assert.True(t, parsed.Directed)
	assert.Len(t, parsed.Nodes.Nodes, 3)

	root, ok := parsed.Nodes.Lookup[strconv.Quote("playbook/site.yml")]
	require.True(t, ok)
	assert.EqualValues(t, graph.PlaybookShape, root.Attrs["shape"])
	assert.EqualValues(t, graph.PlaybookColor, root.Attrs["fillcolor"])
	assert.EqualValues(t, graph.NodeStyle, root.Attrs["style"])

	task, ok := parsed.Nodes.Lookup[strconv.Quote("role/web/main.yml")]
	require.True(t, ok)
	assert.EqualValues(t, graph.TaskShape, task.Attrs["shape"])
	assert.EqualValues(t, strconv.Quote("role/web/main.yml"), task.Attrs["label"])

	var edges []string
	for _, edge := range parsed.Edges.Edges {
		edges = append(edges, edge.Src+"->"+edge.Dst)
	}
	assert.ElementsMatch(t, []string{
		`"role/web/main.yml"->"role/web/setup.yml"`,
		`"playbook/site.yml"->"role/web/main.yml"`,
	}, edges)
}

func TestJSONRenderer_Render(t *testing.T) {
	data, err := (&JSONRenderer{}).Render(context.Background(), sampleGraph(t))
	require.NoError(t, err)

	var actual map[string]interface{}
	require.NoError(t, json.Unmarshal(data, &actual))
	nodes := actual["nodes"].([]interface{})
	require.Len(t, nodes, 3)
	assert.Equal(t, map[string]interface{}{
		"id":    "playbook/site.yml",
		"label": "playbook/site.yml",
		"kind":  "playbook",
		"file":  "/tmp/site.yml",
	}, nodes[0])
	assert.Equal(t, map[string]interface{}{
		"id":    "role/web/setup.yml",
		"label": "role/web/setup.yml",
		"kind":  "task",
		"role":  "web",
		"file":  "setup.yml",
	}, nodes[1])
	assert.Equal(t, []interface{}{
		map[string]interface{}{"from": "role/web/main.yml", "to": "role/web/setup.yml"},
		map[string]interface{}{"from": "playbook/site.yml", "to": "role/web/main.yml"},
	}, actual["edges"])
}

func TestYAMLRenderer_Render(t *testing.T) {
	data, err := (&YAMLRenderer{}).Render(context.Background(), sampleGraph(t))
	require.NoError(t, err)

	expect := `nodes:
    - id: playbook/site.yml
      label: playbook/site.yml
      kind: playbook
      file: /tmp/site.yml
    - id: role/web/setup.yml
      label: role/web/setup.yml
      kind: task
      role: web
      file: setup.yml
    - id: role/web/main.yml
      label: role/web/main.yml
      kind: task
      role: web
      file: main.yml
edges:
    - from: role/web/main.yml
      to: role/web/setup.yml
    - from: playbook/site.yml
      to: role/web/main.yml
`
	var expected, actual interface{}
	require.NoError(t, yaml.Unmarshal([]byte(expect), &expected))
	require.NoError(t, yaml.Unmarshal(data, &actual))
	assert.Equal(t, expected, actual)
}

func TestJSONRenderer_EmptyGraph(t *testing.T) {
	data, err := (&JSONRenderer{}).Render(context.Background(), graph.New())
	require.NoError(t, err)
	assert.JSONEq(t, `{"nodes":[],"edges":[]}`, string(data))
}

func TestImageRenderer_Render(t *testing.T) {
	tests := []struct {
		description string
		format      Format
		expect      func(t *testing.T, data []byte)
	}{
		{
			description: "png",
			format:      FormatPNG,
			expect: func(t *testing.T, data []byte) {
				assert.True(t, bytes.HasPrefix(data, []byte("\x89PNG\r\n\x1a\n")))
			},
		},
		{
			description: "svg",
			format:      FormatSVG,
			expect: func(t *testing.T, data []byte) {
				assert.Contains(t, string(data), "<svg")
				assert.Contains(t, string(data), "role/web/setup.yml")
			},
		},
	}
	for _, tc := range tests {
		t.Run(tc.description, func(t *testing.T) {
			renderer := &ImageRenderer{Format: tc.format, Binary: "playgraph-no-such-dot"}
			data, err := renderer.Render(context.Background(), sampleGraph(t))
			require.NoError(t, err)
			tc.expect(t, data)
		})
	}
}

func TestImageRenderer_External(t *testing.T) {
	t.Run("missing binary", func(t *testing.T) {
		renderer := &ImageRenderer{Format: FormatPNG, Binary: "playgraph-no-such-dot", External: true}
		_, err := renderer.Render(context.Background(), sampleGraph(t))
		assert.ErrorIs(t, err, ErrGraphvizMissing)
	})
	t.Run("svg", func(t *testing.T) {
		if _, err := exec.LookPath(DefaultBinary); err != nil {
			t.Skip("graphviz is not installed")
		}
		data, err := (&ImageRenderer{Format: FormatSVG, External: true}).Render(context.Background(), sampleGraph(t))
		require.NoError(t, err)
		assert.Contains(t, string(data), "<svg")
	})
}

func TestFileExporter_Export(t *testing.T) {
	tests := []struct {
		description string
		format      Format
		fileName    string
		expect      string
	}{
		{description: "format from destination", fileName: "graph.json", expect: `"nodes"`},
		{description: "explicit format", format: FormatDOT, fileName: "graph.out", expect: "digraph"},
		{description: "yaml", fileName: "nested/graph.yaml", expect: "edges:"},
		{description: "default png", fileName: "ansible_graph.png", expect: "\x89PNG"},
	}
	for _, tc := range tests {
		t.Run(tc.description, func(t *testing.T) {
			destination := filepath.Join(t.TempDir(), tc.fileName)
			exporter := NewFileExporter(tc.format, destination)
			require.NoError(t, exporter.Export(context.Background(), sampleGraph(t)))
			data, err := os.ReadFile(destination)
			require.NoError(t, err)
			assert.Contains(t, string(data), tc.expect)
		})
	}
}

func TestFileExporter_UnsupportedFormat(t *testing.T) {
	exporter := &FileExporter{Format: "bmp", Destination: filepath.Join(t.TempDir(), "graph.bmp")}
	err := exporter.Export(context.Background(), sampleGraph(t))
	assert.ErrorIs(t, err, ErrUnsupportedFormat)
}
