package analyzer

import (
	"github.com/viant/afs"
	"github.com/viant/playgraph/graph"
	"os"
	"path/filepath"
	"strings"
)

type Option func(*Analyzer)

// MatcherFn decides whether a walked entry is visited; directories returning false are skipped
type MatcherFn func(info os.FileInfo) bool

// WithFileSystem sets the afs service used to read documents
func WithFileSystem(fs afs.Service) Option {
	return func(a *Analyzer) {
		a.fs = fs
	}
}

// WithGraph makes the analyzer populate an existing graph
func WithGraph(g *graph.Graph) Option {
	return func(a *Analyzer) {
		a.graph = g
	}
}

// WithMatcher sets the playbook file matcher used by AnalyzeDir
func WithMatcher(matcher MatcherFn) Option {
	return func(a *Analyzer) {
		if matcher != nil {
			a.match = matcher
		}
	}
}

// WithExcludes adds gitignore style patterns, relative to the analyzed directory, skipped by AnalyzeDir
func WithExcludes(patterns ...string) Option {
	return func(a *Analyzer) {
		a.excludes = append(a.excludes, patterns...)
	}
}

// WithIncludeKeys replaces the task keys recognized as include directives
func WithIncludeKeys(keys ...string) Option {
	return func(a *Analyzer) {
		if len(keys) > 0 {
			a.includeKeys = keys
		}
	}
}

// WithAllRoles analyzes every role of a play in order instead of only the first one
func WithAllRoles() Option {
	return func(a *Analyzer) {
		a.allRoles = true
	}
}

// WithMaxDepth limits the include chain length, values below 1 keep the default
func WithMaxDepth(depth int) Option {
	return func(a *Analyzer) {
		if depth > 0 {
			a.maxDepth = depth
		}
	}
}

// YAMLFiles matches files with a .yml or .yaml extension
func YAMLFiles(info os.FileInfo) bool {
	if info.IsDir() {
		return true
	}
	switch strings.ToLower(filepath.Ext(info.Name())) {
	case ".yml", ".yaml":
		return true
	}
	return false
}

// YAMLLikeFiles matches any file whose name contains .yml or .yaml, e.g. site.yml.bak
func YAMLLikeFiles(info os.FileInfo) bool {
	if info.IsDir() {
		return true
	}
	name := info.Name()
	return strings.Contains(name, ".yml") || strings.Contains(name, ".yaml")
}

// Matcher returns the matcher registered under name: suffix (default) or substring
func Matcher(name string) (MatcherFn, bool) {
	switch strings.ToLower(name) {
	case "", "suffix":
		return YAMLFiles, true
	case "substring":
		return YAMLLikeFiles, true
	}
	return nil, false
}
