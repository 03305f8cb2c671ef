package analyzer

import (
	"context"
	"fmt"
	"github.com/viant/afs/url"
	"github.com/viant/playgraph/graph"
	"github.com/viant/playgraph/inspector/info"
	"github.com/viant/playgraph/internal/ctxlog"
	"path"
	"strings"
)

const templateMarker = "{{"

// analyzeTaskFile parses a task file and recursively expands its includes.
// It returns the file node; the caller inserts it and links it to its own node.
// trail holds the locations of the task files on the active include chain.
func (a *Analyzer) analyzeTaskFile(ctx context.Context, roleName, baseDir, fileName string, scope info.Scope, trail []string) (*graph.Node, error) {
	logger := ctxlog.FromContext(ctx)
	location := url.Join(baseDir, path.Clean(fileName))

	for _, visited := range trail {
		if visited == location {
			chain := append(append([]string{}, trail...), location)
			return nil, fmt.Errorf("role %s: %w: %s", roleName, ErrCycleDetected, strings.Join(chain, " -> "))
		}
	}
	if len(trail) >= a.maxDepth {
		return nil, fmt.Errorf("role %s: %s: %w (%d)", roleName, location, ErrMaxDepthExceeded, a.maxDepth)
	}

	node := a.taskNode(roleName, fileName)
	fingerprint, err := scope.Fingerprint()
	if err != nil {
		return nil, fmt.Errorf("role %s: %w", roleName, err)
	}
	expansionKey := fmt.Sprintf("%s@%x", location, fingerprint)
	if a.expanded[expansionKey] {
		logger.Debug("task file already expanded", "path", location, "id", node.ID)
		return node, nil
	}

	logger.Info("analyzing task file", "path", location)
	taskFile, err := a.inspector.InspectTaskFile(ctx, location)
	if err != nil {
		return nil, fmt.Errorf("role %s: %w", roleName, err)
	}

	trail = append(append(make([]string, 0, len(trail)+1), trail...), location)
	tasks := append([]info.Task{}, taskFile.Tasks...)
	for i := 0; i < len(tasks); i++ {
		task := tasks[i]
		if task.IsBlock() {
			nested, err := task.Block()
			if err != nil {
				return nil, fmt.Errorf("role %s: %s task[%d]: %w: %v", roleName, location, i, ErrParse, err)
			}
			tasks = append(tasks, nested...)
			continue
		}
		target, ok, err := task.Include(a.includeKeys...)
		if err != nil {
			return nil, fmt.Errorf("role %s: %s task[%d]: %w: %v", roleName, location, i, ErrParse, err)
		}
		if !ok {
			continue
		}
		logger.Debug("include detected", "path", location, "include", target)
		resolved, err := resolveInclude(target, scope)
		if err != nil {
			return nil, fmt.Errorf("role %s: %s: %w", roleName, location, err)
		}
		if resolved != target {
			logger.Info("dynamic include resolved", "include", target, "file", resolved)
		}

		child, err := a.analyzeTaskFile(ctx, roleName, baseDir, resolved, scope, trail)
		if err != nil {
			return nil, err
		}
		child = a.graph.AddNode(child)
		node = a.graph.AddNode(node)
		if err := a.graph.AddEdge(node, child); err != nil {
			return nil, err
		}
	}
	a.expanded[expansionKey] = true
	return node, nil
}

// taskNode returns the known node of a task file or a new one that is not yet in the graph
func (a *Analyzer) taskNode(roleName, fileName string) *graph.Node {
	if node, ok := a.graph.Node(graph.TaskID(roleName, fileName)); ok {
		return node
	}
	return graph.NewTaskNode(roleName, fileName)
}

// resolveInclude returns a static include as is; a dynamic one ({{ name }}) is
// resolved from scope using the second whitespace separated token as the variable name.
func resolveInclude(value string, scope info.Scope) (string, error) {
	if !strings.Contains(value, templateMarker) {
		return value, nil
	}
	tokens := strings.Fields(value)
	if len(tokens) < 2 {
		return "", fmt.Errorf("%w: malformed include expression %q", ErrParse, value)
	}
	name := tokens[1]
	resolved, ok := scope.Lookup(name)
	if !ok {
		return "", fmt.Errorf("%w: %s is missing from play vars - %s", ErrMissingVariable, name, scope)
	}
	return resolved, nil
}
