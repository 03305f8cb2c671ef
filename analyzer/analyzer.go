package analyzer

import (
	"context"
	"fmt"
	"github.com/viant/afs"
	"github.com/viant/afs/url"
	"github.com/viant/playgraph/graph"
	"github.com/viant/playgraph/inspector"
	"github.com/viant/playgraph/inspector/info"
	"github.com/viant/playgraph/internal/ctxlog"
	"path/filepath"
	"strings"
)

const (
	tasksDir     = "tasks"
	mainTaskFile = "main.yml"

	// DefaultMaxDepth bounds include chains
	DefaultMaxDepth = 64
)

// Analyzer expands playbooks into a call graph of playbooks and role task files
type Analyzer struct {
	rolesDir      string
	fs            afs.Service
	inspector     *inspector.Inspector
	graph         *graph.Graph
	graphExporter GraphExporter
	match         MatcherFn
	excludes      []string
	includeKeys   []string
	allRoles      bool
	maxDepth      int
	expanded      map[string]bool
}

// New creates an analyzer resolving roles under rolesDir
func New(rolesDir string, options ...Option) *Analyzer {
	ret := &Analyzer{
		rolesDir:    normalizeLocation(rolesDir),
		match:       YAMLFiles,
		includeKeys: []string{info.IncludeTasksKey, info.ShortIncludeTasksKey},
		maxDepth:    DefaultMaxDepth,
		expanded:    map[string]bool{},
	}
	for _, opt := range options {
		opt(ret)
	}
	if ret.fs == nil {
		ret.fs = afs.New()
	}
	if ret.graph == nil {
		ret.graph = graph.New()
	}
	ret.inspector = inspector.New(ret.fs)
	return ret
}

// Graph returns the graph populated so far
func (a *Analyzer) Graph() *graph.Graph {
	return a.graph
}

// AnalyzePlaybook adds a playbook root node and expands the role of every play
func (a *Analyzer) AnalyzePlaybook(ctx context.Context, location string) error {
	logger := ctxlog.FromContext(ctx)
	location = normalizeLocation(location)
	logger.Info("analyzing playbook", "path", location)

	playbook, err := a.inspector.InspectPlaybook(ctx, location)
	if err != nil {
		return err
	}
	node := graph.NewPlaybookNode(location)
	if existing, ok := a.graph.Node(node.ID); ok && existing.File != location {
		logger.Warn("playbooks with the same file name share one node", "id", node.ID, "path", location, "shared", existing.File)
	}
	root := a.graph.AddNode(node)
	logger.Info("created root node", "id", root.ID)

	for i, play := range playbook.Plays {
		name := play.DisplayName(i)
		logger.Info("analyzing play", "name", name)
		roles := play.Roles
		if len(roles) == 0 {
			continue
		}
		if !a.allRoles && len(roles) > 1 {
			logger.Warn("only the first role of a play is analyzed", "play", name, "role", roles[0].Name, "ignored", len(roles)-1)
			roles = roles[:1]
		}
		for _, role := range roles {
			if err := a.analyzeRole(ctx, root, role.Name, play.Scope()); err != nil {
				return fmt.Errorf("%s play %s: %w", root.ID, name, err)
			}
		}
	}
	return nil
}

// analyzeRole expands tasks/main.yml of a role and links it to parent
func (a *Analyzer) analyzeRole(ctx context.Context, parent *graph.Node, roleName string, scope info.Scope) error {
	logger := ctxlog.FromContext(ctx)
	logger.Info("analyzing role", "role", roleName)
	if len(scope) > 0 {
		logger.Info("included vars", "role", roleName, "vars", scope.String())
	}

	baseDir := url.Join(url.Join(a.rolesDir, roleName), tasksDir)
	exists, err := a.fs.Exists(ctx, baseDir)
	if err != nil {
		return fmt.Errorf("role %s: failed to check %s: %w", roleName, baseDir, err)
	}
	if !exists {
		return fmt.Errorf("role %s: %s %w", roleName, baseDir, ErrNotFound)
	}

	root, err := a.analyzeTaskFile(ctx, roleName, baseDir, mainTaskFile, scope, nil)
	if err != nil {
		return err
	}
	root = a.graph.AddNode(root)
	return a.graph.AddEdge(parent, root)
}

// normalizeLocation turns local relative paths into absolute ones, URLs are kept as is
func normalizeLocation(location string) string {
	if location == "" || strings.Contains(location, "://") {
		return location
	}
	if abs, err := filepath.Abs(location); err == nil {
		return abs
	}
	return location
}
