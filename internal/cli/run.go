package cli

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/viant/playgraph/analyzer"
	"github.com/viant/playgraph/config"
	"github.com/viant/playgraph/inspector/repository"
	"github.com/viant/playgraph/internal/ctxlog"
	"github.com/viant/playgraph/render"
	"github.com/viant/playgraph/report"
)

// Run loads configuration, analyzes the requested playbooks and writes the graph.
// Logs go to logW, stats to outW.
func Run(ctx context.Context, opts *Options, outW, logW io.Writer) error {
	location, _ := config.Locate(opts.ConfigFile)
	cfg, err := config.Load(location)
	if err != nil {
		return err
	}
	opts.overlay(cfg)

	logger := ctxlog.New(cfg.Log.Level, cfg.Log.Format, logW)
	ctx = ctxlog.WithLogger(ctx, logger)
	if location != "" {
		logger.Debug("loaded config", "path", location)
	}

	if !opts.IsSet("roles-dir") && cfg.RolesDir == config.DefaultRolesDir && !isDir(cfg.RolesDir) {
		if project, err := repository.New().DetectProject(opts.target()); err == nil && project.RolesDir != "" {
			logger.Info("using project roles dir", "project", project.Name, "type", project.Type, "target", project.RelativePath, "path", project.RolesDir)
			cfg.RolesDir = project.RolesDir
		}
	}

	matcher, ok := analyzer.Matcher(cfg.Match)
	if !ok {
		return usageError("invalid match: must be 'suffix' or 'substring'")
	}
	format := render.FormatFromPath(cfg.OutputPath)
	if cfg.Format != "" {
		if format, err = render.ParseFormat(cfg.Format); err != nil {
			return usageError("invalid format: %v", err)
		}
	}

	options := []analyzer.Option{
		analyzer.WithMatcher(matcher),
		analyzer.WithExcludes(cfg.Exclude...),
		analyzer.WithIncludeKeys(cfg.IncludeKeys...),
		analyzer.WithMaxDepth(cfg.MaxDepth),
		analyzer.WithGraphExporter(render.NewFileExporter(format, cfg.OutputPath)),
	}
	if cfg.AllRoles {
		options = append(options, analyzer.WithAllRoles())
	}
	srv := analyzer.New(cfg.RolesDir, options...)

	switch opts.Command {
	case CommandPlaybook:
		err = srv.AnalyzePlaybook(ctx, opts.Playbook)
	case CommandAll:
		err = srv.AnalyzeAll(ctx, opts.Dir)
	default:
		err = usageError("unknown command %q", opts.Command)
	}
	if err != nil {
		return err
	}
	if err = srv.Export(ctx); err != nil {
		return err
	}
	logger.Info("graph written", "path", cfg.OutputPath, "format", format, "nodes", srv.Graph().Len())

	if cfg.Stats {
		if err = report.Build(srv.Graph(), report.DefaultTop).Write(outW); err != nil {
			return fmt.Errorf("failed to print stats: %w", err)
		}
	}
	return nil
}

func (o *Options) target() string {
	if o.Command == CommandAll {
		return o.Dir
	}
	return o.Playbook
}

func isDir(location string) bool {
	info, err := os.Stat(location)
	return err == nil && info.IsDir()
}

// overlay applies explicitly given flags over cfg
func (o *Options) overlay(cfg *config.Config) {
	if o.IsSet("roles-dir") {
		cfg.RolesDir = o.RolesDir
	}
	if o.IsSet("output-path") {
		cfg.OutputPath = o.OutputPath
	}
	if o.IsSet("format") {
		cfg.Format = o.Format
	}
	if o.IsSet("max-depth") {
		cfg.MaxDepth = o.MaxDepth
	}
	if o.IsSet("all-roles") {
		cfg.AllRoles = o.AllRoles
	}
	if o.IsSet("stats") {
		cfg.Stats = o.Stats
	}
	if o.IsSet("match") {
		cfg.Match = o.Match
	}
	cfg.Exclude = append(cfg.Exclude, o.Exclude...)
	if o.IsSet("log-level") {
		cfg.Log.Level = o.LogLevel
	}
	if o.IsSet("log-format") {
		cfg.Log.Format = o.LogFormat
	}
}
