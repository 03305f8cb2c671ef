package graph

import (
	"path"
	"strings"
)

// Node represents a playbook or a task file
type Node struct {
	ID    string `json:"id" yaml:"id"`
	Label string `json:"label" yaml:"label"`
	Kind  Kind   `json:"kind" yaml:"kind"`
	Role  string `json:"role,omitempty" yaml:"role,omitempty"`
	File  string `json:"file,omitempty" yaml:"file,omitempty"`

	Shape     string `json:"-" yaml:"-"`
	FillColor string `json:"-" yaml:"-"`
	Margin    string `json:"-" yaml:"-"`
	Style     string `json:"-" yaml:"-"`
}

// Edge represents a caller invoking a callee
type Edge struct {
	From *Node
	To   *Node
}

// PlaybookID returns the node identifier of a playbook file
func PlaybookID(fileName string) string {
	return "playbook/" + path.Base(fileName)
}

// TaskID returns the node identifier of a role task file, task files are keyed by base name
func TaskID(role, fileName string) string {
	return "role/" + role + "/" + path.Base(fileName)
}

// NewPlaybookNode creates a playbook node for the supplied playbook location
func NewPlaybookNode(location string) *Node {
	id := PlaybookID(location)
	return &Node{
		ID:        id,
		Label:     id,
		Kind:      KindPlaybook,
		File:      location,
		Shape:     PlaybookShape,
		FillColor: PlaybookColor,
		Margin:    NodeMargin,
		Style:     NodeStyle,
	}
}

// NewTaskNode creates a task file node, the label keeps the file name as written by the caller
func NewTaskNode(role, fileName string) *Node {
	return &Node{
		ID:        TaskID(role, fileName),
		Label:     "role/" + role + "/" + strings.TrimPrefix(fileName, "./"),
		Kind:      KindTask,
		Role:      role,
		File:      fileName,
		Shape:     TaskShape,
		FillColor: TaskColor,
		Margin:    NodeMargin,
		Style:     NodeStyle,
	}
}

// String returns the node identifier
func (n *Node) String() string {
	if n == nil {
		return "<nil>"
	}
	return n.ID
}
