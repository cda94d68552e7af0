package cli

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"strings"

	"github.com/vk/coursegraph/internal/app"
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

// Parse processes command-line arguments. It returns a populated app.Config,
// a boolean indicating if the program should exit cleanly, or an ExitError.
// Defaults for logging and workers come from the environment and from a
// .env file in the working directory.
func Parse(args []string, output io.Writer) (*app.Config, bool, error) {
	lookup, err := loadEnv(DefaultEnvFile)
	if err != nil {
		return nil, false, &ExitError{Code: 2, Message: err.Error()}
	}
	return parse(args, output, lookup)
}

func parse(args []string, output io.Writer, lookup lookupFunc) (*app.Config, bool, error) {
	slog.Debug("CLI parser started.")
	flagSet := flag.NewFlagSet("coursegraph", flag.ContinueOnError)
	flagSet.SetOutput(output)

	// Custom usage/help text function
	flagSet.Usage = func() {
		fmt.Fprintf(output, `
coursegraph - Dependency analysis for course structures.

Usage:
  coursegraph [options] [COURSE_PATH...]

Arguments:
  COURSE_PATH
    Path to a course file (.hcl, .yaml, .yml) or a directory of them.

Commands (--command):
  %s

Environment:
  %s, %s, %s supply defaults for the matching
  options and may also be set in a %s file.

Options:
`, strings.Join(app.Commands, ", "), EnvLogLevel, EnvLogFormat, EnvWorkers, DefaultEnvFile)
		flagSet.PrintDefaults()
	}

	defaultWorkers, err := envInt(lookup, EnvWorkers, 4)
	if err != nil {
		return nil, false, &ExitError{Code: 2, Message: err.Error()}
	}

	courseFlag := flagSet.String("course", "", "Comma-separated course files or directories.")
	cFlag := flagSet.String("c", "", "Comma-separated course files or directories (shorthand).")
	commandFlag := flagSet.String("command", app.CommandAnalyze, "Command to run. Options: "+strings.Join(app.Commands, ", ")+".")
	nodesFlag := flagSet.String("nodes", "", "Comma-separated node ids for check-delete, validate, plan and order.")
	mapFlag := flagSet.String("map", "", "Comma-separated old=new id pairs for rewrite. The rewritten course is printed in its source format (YAML or HCL).")
	includeDepsFlag := flagSet.Bool("include-deps", false, "Include transitive requirements when planning duplication.")
	logFormatFlag := flagSet.String("log-format", envString(lookup, EnvLogFormat, "text"), "Log output format. Options: 'text' or 'json'.")
	logLevelFlag := flagSet.String("log-level", envString(lookup, EnvLogLevel, "warn"), "Set the logging level. Options: 'debug', 'info', 'warn', 'error'.")
	outputFlag := flagSet.String("output", "text", "Result format. Options: 'text' or 'json'.")
	workersFlag := flagSet.Int("workers", defaultWorkers, "Number of courses analyzed concurrently.")
	parserFlag := flagSet.String("parser", "quote", "Expression scanner. Options: 'quote' or 'hcl'.")
	structureFlag := flagSet.Bool("structure-edges", false, "Also link every node to its parent.")

	if err := flagSet.Parse(args); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return nil, true, nil
		}
		return nil, false, &ExitError{Code: 2, Message: err.Error()}
	}
	slog.Debug("Arguments parsed successfully.")

	var paths []string
	if *courseFlag != "" {
		paths = splitList(*courseFlag)
	} else if *cFlag != "" {
		paths = splitList(*cFlag)
	}
	paths = append(paths, flagSet.Args()...)
	slog.Debug("Course paths determined.", "paths", paths)

	if len(paths) == 0 {
		slog.Debug("No course path provided, printing usage and exiting.")
		flagSet.Usage()
		return nil, true, nil
	}

	logFormat := strings.ToLower(*logFormatFlag)
	if logFormat != "text" && logFormat != "json" {
		return nil, false, &ExitError{Code: 2, Message: "invalid log-format: must be 'text' or 'json'"}
	}

	logLevel := strings.ToLower(*logLevelFlag)
	switch logLevel {
	case "debug", "info", "warn", "error":
		// valid
	default:
		return nil, false, &ExitError{Code: 2, Message: "invalid log-level: must be 'debug', 'info', 'warn', or 'error'"}
	}

	if *workersFlag < 1 {
		return nil, false, &ExitError{Code: 2, Message: "invalid workers: must be at least 1"}
	}

	mapping, err := parseMapping(*mapFlag)
	if err != nil {
		return nil, false, &ExitError{Code: 2, Message: err.Error()}
	}
	slog.Debug("CLI parameter validation complete.")

	config, err := app.NewConfig(app.Config{
		CoursePaths:         paths,
		Command:             strings.ToLower(*commandFlag),
		NodeIDs:             splitList(*nodesFlag),
		Mapping:             mapping,
		IncludeDependencies: *includeDepsFlag,
		Parser:              strings.ToLower(*parserFlag),
		StructureEdges:      *structureFlag,
		LogFormat:           logFormat,
		LogLevel:            logLevel,
		Output:              strings.ToLower(*outputFlag),
		WorkerCount:         *workersFlag,
	})

	if err != nil {
		return nil, false, &ExitError{Code: 2, Message: err.Error()}
	}

	slog.Debug("CLI parser finished successfully.", "config", config)
	return config, false, nil
}

func splitList(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}

// parseMapping reads "old=new,old2=new2".
func parseMapping(s string) (map[string]string, error) {
	pairs := splitList(s)
	if len(pairs) == 0 {
		return nil, nil
	}
	mapping := make(map[string]string, len(pairs))
	for _, pair := range pairs {
		old, repl, ok := strings.Cut(pair, "=")
		old, repl = strings.TrimSpace(old), strings.TrimSpace(repl)
		if !ok || old == "" || repl == "" {
			return nil, fmt.Errorf("invalid map entry %q: expected old=new", pair)
		}
		if _, dup := mapping[old]; dup {
			return nil, fmt.Errorf("invalid map entry %q: id %s mapped twice", pair, old)
		}
		mapping[old] = repl
	}
	return mapping, nil
}
