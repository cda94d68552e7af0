package app

import (
	"errors"
	"fmt"
	"strings"

	"github.com/vk/coursegraph/internal/refscan"
)

// Commands understood by App.Run.
const (
	CommandAnalyze     = "analyze"
	CommandOrder       = "order"
	CommandCheckDelete = "check-delete"
	CommandValidate    = "validate"
	CommandPlan        = "plan"
	CommandRewrite     = "rewrite"
)

// Commands lists every command in the order they are documented.
var Commands = []string{CommandAnalyze, CommandOrder, CommandCheckDelete, CommandValidate, CommandPlan, CommandRewrite}

// Config holds all the necessary configuration for an App instance to run.
type Config struct {
	CoursePaths []string // course files or directories
	Command     string

	NodeIDs             []string
	Mapping             map[string]string // old id -> new id, for rewrite
	IncludeDependencies bool

	Parser         string // expression scanner: quote or hcl
	StructureEdges bool

	LogFormat   string
	LogLevel    string
	Output      string // text or json
	WorkerCount int
}

// NewConfig validates cfg and fills in defaults.
func NewConfig(cfg Config) (*Config, error) {
	if len(cfg.CoursePaths) == 0 {
		return nil, errors.New("at least one course path is required")
	}

	if cfg.Command == "" {
		cfg.Command = CommandAnalyze
	}
	switch cfg.Command {
	case CommandAnalyze, CommandOrder:
	case CommandCheckDelete, CommandValidate, CommandPlan:
		if len(cfg.NodeIDs) == 0 {
			return nil, fmt.Errorf("command %q requires at least one node id", cfg.Command)
		}
	case CommandRewrite:
		if len(cfg.Mapping) == 0 {
			return nil, fmt.Errorf("command %q requires an id mapping", cfg.Command)
		}
	default:
		return nil, fmt.Errorf("unknown command %q: must be one of %s", cfg.Command, strings.Join(Commands, ", "))
	}
	if _, err := refscan.ByName(cfg.Parser); err != nil {
		return nil, err
	}

	if cfg.Output == "" {
		cfg.Output = "text"
	}
	if cfg.Output != "text" && cfg.Output != "json" {
		return nil, fmt.Errorf("invalid output %q: must be 'text' or 'json'", cfg.Output)
	}

	if cfg.LogLevel == "" {
		cfg.LogLevel = "warn"
	}
	if _, err := parseLevel(cfg.LogLevel); err != nil {
		return nil, err
	}
	if cfg.LogFormat == "" {
		cfg.LogFormat = LogFormatText
	}
	if cfg.LogFormat != LogFormatText && cfg.LogFormat != LogFormatJSON {
		return nil, fmt.Errorf("invalid log format %q: must be '%s' or '%s'", cfg.LogFormat, LogFormatText, LogFormatJSON)
	}

	if cfg.WorkerCount < 1 {
		cfg.WorkerCount = 1
	}

	return &cfg, nil
}
