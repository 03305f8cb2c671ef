package graph

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewPlaybookNode(t *testing.T) {
	node := NewPlaybookNode("/tmp/plays/site.yml")
	assert.Equal(t, "playbook/site.yml", node.ID)
	assert.Equal(t, "playbook/site.yml", node.Label)
	assert.Equal(t, KindPlaybook, node.Kind)
	assert.Equal(t, PlaybookShape, node.Shape)
	assert.Equal(t, PlaybookColor, node.FillColor)
	assert.Equal(t, NodeMargin, node.Margin)
	assert.Equal(t, NodeStyle, node.Style)
}

func TestNewTaskNode(t *testing.T) {
	tests := []struct {
		description string
		role        string
		fileName    string
		expectID    string
		expectLabel string
	}{
		{
			description: "top level task file",
			role:        "web",
			fileName:    "main.yml",
			expectID:    "role/web/main.yml",
			expectLabel: "role/web/main.yml",
		},
		{
			description: "nested task file keyed by base name",
			role:        "web",
			fileName:    "setup/nginx.yml",
			expectID:    "role/web/nginx.yml",
			expectLabel: "role/web/setup/nginx.yml",
		},
	}
	for _, tc := range tests {
		t.Run(tc.description, func(t *testing.T) {
			node := NewTaskNode(tc.role, tc.fileName)
			assert.Equal(t, tc.expectID, node.ID)
			assert.Equal(t, tc.expectLabel, node.Label)
			assert.Equal(t, KindTask, node.Kind)
			assert.Equal(t, TaskShape, node.Shape)
			assert.Equal(t, TaskColor, node.FillColor)
		})
	}
}

func TestGraph_AddNode(t *testing.T) {
	g := New()
	first := g.AddNode(NewTaskNode("web", "main.yml"))
	assert.Equal(t, 1, g.Len())

	again := g.AddNode(first)
	assert.Same(t, first, again)
	assert.Equal(t, 1, g.Len())

	duplicate := g.AddNode(NewTaskNode("web", "main.yml"))
	assert.Same(t, first, duplicate, "same identity should resolve to the stored node")
	assert.Equal(t, 1, g.Len())

	g.AddNode(NewPlaybookNode("site.yml"))
	ids := []string{}
	for _, node := range g.Nodes() {
		ids = append(ids, node.ID)
	}
	assert.Equal(t, []string{"role/web/main.yml", "playbook/site.yml"}, ids)
}

func TestGraph_AddEdge(t *testing.T) {
	t.Run("success case", func(t *testing.T) {
		g := New()
		root := g.AddNode(NewPlaybookNode("site.yml"))
		task := g.AddNode(NewTaskNode("web", "main.yml"))

		require.NoError(t, g.AddEdge(root, task))
		require.NoError(t, g.AddEdge(root, task))

		assert.Len(t, g.Edges(), 2, "repeated edges are kept")
		assert.Equal(t, 2, g.InDegree(task.ID))
		assert.Equal(t, 0, g.InDegree(root.ID))
		assert.Equal(t, []string{task.ID, task.ID}, g.Successors(root.ID))
	})

	t.Run("error cases", func(t *testing.T) {
		g := New()
		root := g.AddNode(NewPlaybookNode("site.yml"))
		unknown := NewTaskNode("web", "main.yml")

		err := g.AddEdge(root, unknown)
		assert.ErrorIs(t, err, ErrNodeNotFound)
		assert.ErrorContains(t, err, "destination")

		err = g.AddEdge(unknown, root)
		assert.ErrorIs(t, err, ErrNodeNotFound)
		assert.ErrorContains(t, err, "source")

		err = g.AddEdge(nil, root)
		assert.ErrorIs(t, err, ErrNodeNotFound)
		assert.Empty(t, g.Edges())
	})
}

func TestGraph_Node(t *testing.T) {
	g := New()
	g.AddNode(NewPlaybookNode("site.yml"))

	node, ok := g.Node("playbook/site.yml")
	require.True(t, ok)
	assert.Equal(t, KindPlaybook, node.Kind)

	_, ok = g.Node("role/web/main.yml")
	assert.False(t, ok)
}
