package graph

// Kind identifies what a node stands for
type Kind string

const (
	KindPlaybook Kind = "playbook"
	KindTask     Kind = "task"
)

// Presentation parameters, attached to nodes at creation time
const (
	PlaybookShape = "ellipse"
	PlaybookColor = "azure"
	TaskShape     = "rectangle"
	TaskColor     = "aliceblue"

	NodeMargin = "0.5"
	NodeStyle  = "filled"
)
