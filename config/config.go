// Package config loads playgraph settings from an optional HCL file.
//
// Values are layered: built-in defaults, then the file, then the environment;
// command line flags are applied last by the caller. File expressions may
// reference ${cwd} and ${env.NAME}:
//
//	roles_dir = "${cwd}/roles"
//	exclude   = ["vendor/", "molecule/"]
//
//	log {
//	  level = "debug"
//	}
package config

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/hashicorp/hcl/v2"
	"github.com/hashicorp/hcl/v2/gohcl"
	"github.com/hashicorp/hcl/v2/hclparse"
	"github.com/viant/playgraph/internal/ctxlog"
	"github.com/zclconf/go-cty/cty"
)

const (
	// DefaultFile is looked up in the working directory when no file is given
	DefaultFile = "playgraph.hcl"

	DefaultRolesDir   = "./roles"
	DefaultOutputPath = "./ansible_graph.png"
	DefaultMaxDepth   = 64
	DefaultMatch      = "suffix"
	DefaultLogLevel   = "info"
	DefaultLogFormat  = "text"
)

// ErrInvalid is returned for files that fail to parse or decode
var ErrInvalid = errors.New("invalid config")

// Config holds run settings
type Config struct {
	RolesDir    string   `hcl:"roles_dir,optional"`
	OutputPath  string   `hcl:"output_path,optional"`
	Format      string   `hcl:"format,optional"`
	MaxDepth    int      `hcl:"max_depth,optional"`
	AllRoles    bool     `hcl:"all_roles,optional"`
	Stats       bool     `hcl:"stats,optional"`
	Match       string   `hcl:"match,optional"`
	Exclude     []string `hcl:"exclude,optional"`
	IncludeKeys []string `hcl:"include_keys,optional"`
	Log         *Log     `hcl:"log,block"`
}

// Log configures the slog handler
type Log struct {
	Level  string `hcl:"level,optional"`
	Format string `hcl:"format,optional"`
}

// Default returns built-in settings
func Default() *Config {
	return &Config{
		RolesDir:   DefaultRolesDir,
		OutputPath: DefaultOutputPath,
		MaxDepth:   DefaultMaxDepth,
		Match:      DefaultMatch,
		Log:        &Log{Level: DefaultLogLevel, Format: DefaultLogFormat},
	}
}

// Locate returns the config file to load: explicit when set, otherwise
// DefaultFile if it exists in the working directory.
func Locate(explicit string) (string, bool) {
	if explicit != "" {
		return explicit, true
	}
	if info, err := os.Stat(DefaultFile); err == nil && !info.IsDir() {
		return DefaultFile, true
	}
	return "", false
}

// Load returns defaults overlaid with filename (when not empty) and the environment
func Load(filename string) (*Config, error) {
	cfg := Default()
	if filename != "" {
		fromFile, err := decodeFile(filename)
		if err != nil {
			return nil, err
		}
		cfg.merge(fromFile)
	}
	cfg.applyEnv()
	return cfg, nil
}

func decodeFile(filename string) (*Config, error) {
	parser := hclparse.NewParser()
	hclFile, diags := parser.ParseHCLFile(filename)
	if diags.HasErrors() {
		return nil, fmt.Errorf("%w: failed to parse %s: %v", ErrInvalid, filename, diags)
	}
	evalCtx, err := newEvalContext()
	if err != nil {
		return nil, err
	}
	var ret Config
	if diags = gohcl.DecodeBody(hclFile.Body, evalCtx, &ret); diags.HasErrors() {
		return nil, fmt.Errorf("%w: failed to decode %s: %v", ErrInvalid, filename, diags)
	}
	if ret.MaxDepth < 0 {
		return nil, fmt.Errorf("%w: %s: max_depth must not be negative", ErrInvalid, filename)
	}
	return &ret, nil
}

func newEvalContext() (*hcl.EvalContext, error) {
	cwd, err := os.Getwd()
	if err != nil {
		return nil, fmt.Errorf("failed to get working directory: %w", err)
	}
	env := map[string]cty.Value{}
	for _, pair := range os.Environ() {
		name, value, ok := strings.Cut(pair, "=")
		if !ok || name == "" {
			continue
		}
		env[name] = cty.StringVal(value)
	}
	return &hcl.EvalContext{
		Variables: map[string]cty.Value{
			"cwd": cty.StringVal(cwd),
			"env": cty.ObjectVal(env),
		},
	}, nil
}

// merge overlays the values set in other
func (c *Config) merge(other *Config) {
	if other.RolesDir != "" {
		c.RolesDir = other.RolesDir
	}
	if other.OutputPath != "" {
		c.OutputPath = other.OutputPath
	}
	if other.Format != "" {
		c.Format = other.Format
	}
	if other.MaxDepth > 0 {
		c.MaxDepth = other.MaxDepth
	}
	c.AllRoles = c.AllRoles || other.AllRoles
	c.Stats = c.Stats || other.Stats
	if other.Match != "" {
		c.Match = other.Match
	}
	c.Exclude = append(c.Exclude, other.Exclude...)
	if len(other.IncludeKeys) > 0 {
		c.IncludeKeys = other.IncludeKeys
	}
	if other.Log != nil {
		if other.Log.Level != "" {
			c.Log.Level = other.Log.Level
		}
		if other.Log.Format != "" {
			c.Log.Format = other.Log.Format
		}
	}
}

func (c *Config) applyEnv() {
	if level := os.Getenv(ctxlog.LevelEnvVariable); level != "" {
		c.Log.Level = level
	}
}
