package cli

import (
	"flag"
	"fmt"
	"io"
	"strings"
)

const (
	CommandPlaybook = "playbook"
	CommandAll      = "all"

	// Exit codes
	ExitFailure = 1
	ExitUsage   = 2
)

// ExitError is a custom error type that includes a specific exit code.
type ExitError struct {
	Code    int
	Message string
}

// Error implements the error interface for ExitError.
func (e *ExitError) Error() string {
	return e.Message
}

func usageError(format string, args ...interface{}) *ExitError {
	return &ExitError{Code: ExitUsage, Message: fmt.Sprintf(format, args...)}
}

// Options holds parsed command line values
type Options struct {
	Command    string
	Playbook   string
	Dir        string
	RolesDir   string
	OutputPath string
	Format     string
	ConfigFile string
	MaxDepth   int
	AllRoles   bool
	Stats      bool
	Match      string
	Exclude    []string
	LogLevel   string
	LogFormat  string

	// set records flags given explicitly, by canonical name
	set map[string]bool
}

// IsSet returns true when the flag was given on the command line
func (o *Options) IsSet(name string) bool {
	return o.set[name]
}

type stringsFlag []string

func (s *stringsFlag) String() string {
	return strings.Join(*s, ",")
}

func (s *stringsFlag) Set(value string) error {
	*s = append(*s, value)
	return nil
}

// canonical maps short flag names to the long ones
var canonical = map[string]string{
	"f": "file",
	"d": "dir",
	"r": "roles-dir",
	"o": "output-path",
}

const usageText = `
playgraph - call graph of Ansible playbooks, roles and task files.

Usage:
  playgraph playbook|p -f FILE [options]
  playgraph all|a      -d DIR  [options]

Commands:
  playbook  Analyze a single playbook.
  all       Analyze every playbook under a directory. The roles dir is
            skipped when it lies under DIR; use -exclude for other
            non-playbook YAML (group_vars/, molecule/).

Options:
`

// Parse processes command-line arguments. It returns the options, a boolean
// indicating if the program should exit cleanly, or an ExitError.
func Parse(args []string, output io.Writer) (*Options, bool, error) {
	if len(args) == 0 {
		fmt.Fprint(output, usageText)
		return nil, true, nil
	}
	opts := &Options{set: map[string]bool{}}
	switch strings.ToLower(args[0]) {
	case CommandPlaybook, "p":
		opts.Command = CommandPlaybook
	case CommandAll, "a":
		opts.Command = CommandAll
	case "-h", "-help", "--help", "help":
		fmt.Fprint(output, usageText)
		return nil, true, nil
	default:
		return nil, false, usageError("unknown command %q, expected playbook or all", args[0])
	}

	flagSet := flag.NewFlagSet("playgraph "+opts.Command, flag.ContinueOnError)
	flagSet.SetOutput(output)
	flagSet.Usage = func() {
		fmt.Fprint(output, usageText)
		flagSet.PrintDefaults()
	}

	if opts.Command == CommandPlaybook {
		flagSet.StringVar(&opts.Playbook, "file", "", "Path to the playbook file.")
		flagSet.StringVar(&opts.Playbook, "f", "", "Path to the playbook file (shorthand).")
	} else {
		flagSet.StringVar(&opts.Dir, "dir", "", "Directory containing playbooks.")
		flagSet.StringVar(&opts.Dir, "d", "", "Directory containing playbooks (shorthand).")
	}
	flagSet.StringVar(&opts.RolesDir, "roles-dir", "./roles", "Directory containing roles.")
	flagSet.StringVar(&opts.RolesDir, "r", "./roles", "Directory containing roles (shorthand).")
	flagSet.StringVar(&opts.OutputPath, "output-path", "./ansible_graph.png", "Graph output location.")
	flagSet.StringVar(&opts.OutputPath, "o", "./ansible_graph.png", "Graph output location (shorthand).")
	flagSet.StringVar(&opts.Format, "format", "", "Output format: dot, png, svg, pdf, json or yaml. Inferred from the output path by default.")
	flagSet.StringVar(&opts.ConfigFile, "config", "", "HCL configuration file, playgraph.hcl is used when present.")
	flagSet.IntVar(&opts.MaxDepth, "max-depth", 64, "Maximum include chain length.")
	flagSet.BoolVar(&opts.AllRoles, "all-roles", false, "Analyze every role of a play instead of the first one.")
	flagSet.BoolVar(&opts.Stats, "stats", false, "Print global stats.")
	flagSet.StringVar(&opts.Match, "match", "suffix", "Playbook file matching: 'suffix' or 'substring'.")
	flagSet.Var((*stringsFlag)(&opts.Exclude), "exclude", "Gitignore style pattern excluded from 'all', repeatable.")
	flagSet.StringVar(&opts.LogLevel, "log-level", "info", "Set the logging level. Options: 'debug', 'info', 'warn', 'error'.")
	flagSet.StringVar(&opts.LogFormat, "log-format", "text", "Log output format. Options: 'text' or 'json'.")

	if err := flagSet.Parse(args[1:]); err != nil {
		if err == flag.ErrHelp {
			return nil, true, nil
		}
		return nil, false, &ExitError{Code: ExitUsage, Message: err.Error()}
	}
	flagSet.Visit(func(f *flag.Flag) {
		name := f.Name
		if long, ok := canonical[name]; ok {
			name = long
		}
		opts.set[name] = true
	})

	if flagSet.NArg() > 0 {
		if opts.Command == CommandPlaybook && opts.Playbook == "" {
			opts.Playbook = flagSet.Arg(0)
		} else if opts.Command == CommandAll && opts.Dir == "" {
			opts.Dir = flagSet.Arg(0)
		} else {
			return nil, false, usageError("unexpected arguments: %s", strings.Join(flagSet.Args(), " "))
		}
	}
	if err := opts.validate(); err != nil {
		return nil, false, err
	}
	return opts, false, nil
}

func (o *Options) validate() error {
	switch {
	case o.Command == CommandPlaybook && o.Playbook == "":
		return usageError("playbook requires -f FILE")
	case o.Command == CommandAll && o.Dir == "":
		return usageError("all requires -d DIR")
	}
	o.LogFormat = strings.ToLower(o.LogFormat)
	if o.LogFormat != "text" && o.LogFormat != "json" {
		return usageError("invalid log-format: must be 'text' or 'json'")
	}
	o.LogLevel = strings.ToLower(o.LogLevel)
	switch o.LogLevel {
	case "debug", "info", "warn", "error":
	default:
		return usageError("invalid log-level: must be 'debug', 'info', 'warn', or 'error'")
	}
	if o.MaxDepth < 1 {
		return usageError("invalid max-depth: must be positive")
	}
	return nil
}
