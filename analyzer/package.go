package analyzer

import (
	"context"
	"fmt"
	ignore "github.com/sabhiram/go-gitignore"
	"github.com/viant/afs/file"
	"github.com/viant/afs/storage"
	"github.com/viant/afs/url"
	"github.com/viant/playgraph/internal/ctxlog"
	"io"
	"os"
	"path"
	"sort"
	"strings"
)

// IgnoreFile lists gitignore style patterns excluded from directory analysis
const IgnoreFile = ".playgraphignore"

// AnalyzeDir walks a directory tree and returns the playbook candidates in lexical order.
// The roles directory is skipped when it lies under root; local candidates are plain paths.
func (a *Analyzer) AnalyzeDir(ctx context.Context, root string) ([]string, error) {
	root = normalizeLocation(root)
	excluded, err := a.excludeMatcher(ctx, root)
	if err != nil {
		return nil, err
	}
	rolesDir := walkLocation(a.rolesDir)
	var candidates []string
	var visitor storage.OnVisit = func(ctx context.Context, baseURL, parent string, info os.FileInfo, reader io.Reader) (bool, error) {
		relative := path.Join(parent, info.Name())
		if excluded != nil {
			if excluded.MatchesPath(relative) || (info.IsDir() && excluded.MatchesPath(relative+"/")) {
				return false, nil
			}
		}
		dir := baseURL
		if parent != "" {
			dir = url.Join(baseURL, parent)
		}
		location := walkLocation(url.Join(dir, info.Name()))
		if info.IsDir() && location == rolesDir {
			ctxlog.FromContext(ctx).Debug("skipping roles dir", "path", location)
			return false, nil
		}
		if !a.match(info) {
			return false, nil
		}
		if info.IsDir() {
			return true, nil
		}
		candidates = append(candidates, location)
		return true, nil
	}
	if err := a.fs.Walk(ctx, root, visitor); err != nil {
		return nil, fmt.Errorf("failed to walk %s: %w", root, err)
	}
	sort.Strings(candidates)
	return candidates, nil
}

// AnalyzeAll runs AnalyzePlaybook for every playbook candidate under root,
// accumulating into the analyzer graph.
func (a *Analyzer) AnalyzeAll(ctx context.Context, root string) error {
	logger := ctxlog.FromContext(ctx)
	candidates, err := a.AnalyzeDir(ctx, root)
	if err != nil {
		return err
	}
	logger.Info("analyzing all playbooks", "dir", root, "count", len(candidates))
	for _, candidate := range candidates {
		if err := a.AnalyzePlaybook(ctx, candidate); err != nil {
			return err
		}
	}
	return nil
}

// walkLocation turns local file URLs into plain paths
func walkLocation(location string) string {
	if !strings.Contains(location, "://") {
		return path.Clean(location)
	}
	if url.Scheme(location, file.Scheme) == file.Scheme {
		return path.Clean(url.Path(location))
	}
	return strings.TrimRight(location, "/")
}

func (a *Analyzer) excludeMatcher(ctx context.Context, root string) (*ignore.GitIgnore, error) {
	lines := append([]string{}, a.excludes...)
	ignoreURL := url.Join(root, IgnoreFile)
	exists, err := a.fs.Exists(ctx, ignoreURL)
	if err != nil {
		return nil, fmt.Errorf("failed to check %s: %w", ignoreURL, err)
	}
	if exists {
		data, err := a.fs.DownloadWithURL(ctx, ignoreURL)
		if err != nil {
			return nil, fmt.Errorf("failed to read %s: %w", ignoreURL, err)
		}
		lines = append(lines, strings.Split(string(data), "\n")...)
	}
	if len(lines) == 0 {
		return nil, nil
	}
	return ignore.CompileIgnoreLines(lines...), nil
}
