package cli

import (
	"flag"
	"fmt"
	"io"
	"log/slog"
	"strings"

	"github.com/vk/confgraph/internal/app"
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
func Parse(args []string, output io.Writer) (*app.Config, bool, error) {
	slog.Debug("CLI parser started.")
	flagSet := flag.NewFlagSet("confgraph", flag.ContinueOnError)
	flagSet.SetOutput(output)

	flagSet.Usage = func() {
		fmt.Fprint(output, `
confgraph - resolves declared configuration units into a closed model.

Usage:
  confgraph [options] UNIT_PATH [UNIT_PATH...]

Arguments:
  UNIT_PATH
    Path to a single .hcl unit manifest or a directory containing them.

Options:
`)
		flagSet.PrintDefaults()
	}

	unitsFlag := flagSet.String("units", "", "Comma-separated unit manifest paths (alternative to positional arguments).")
	rootsFlag := flagSet.String("roots", "", "Comma-separated root unit names. Defaults to every declared full configuration.")
	propsFlag := flagSet.String("props", "", "Comma-separated property files applied before parsing, strongest last.")
	baseFlag := flagSet.String("base", ".", "Base directory for relative resource locations.")
	logFormatFlag := flagSet.String("log-format", "json", "Log output format. Options: 'text' or 'json'.")
	logLevelFlag := flagSet.String("log-level", "info", "Set the logging level. Options: 'debug', 'info', 'warn', 'error'.")
	reportFlag := flagSet.String("report", "text", "Resolution report format. Options: 'text' or 'json'.")

	if err := flagSet.Parse(args); err != nil {
		if err == flag.ErrHelp {
			return nil, true, nil
		}
		return nil, false, &ExitError{Code: 2, Message: err.Error()}
	}
	slog.Debug("Arguments parsed successfully.")

	unitPaths := splitList(*unitsFlag)
	unitPaths = append(unitPaths, flagSet.Args()...)
	slog.Debug("Unit paths determined.", "paths", unitPaths)

	if len(unitPaths) == 0 {
		slog.Debug("No unit paths provided, printing usage and exiting.")
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

	report := strings.ToLower(*reportFlag)
	if report != "text" && report != "json" {
		return nil, false, &ExitError{Code: 2, Message: "invalid report: must be 'text' or 'json'"}
	}
	slog.Debug("CLI parameter validation complete.")

	config, err := app.NewConfig(app.Config{
		UnitPaths: unitPaths,
		Roots:     splitList(*rootsFlag),
		Props:     splitList(*propsFlag),
		BasePath:  *baseFlag,
		LogFormat: logFormat,
		LogLevel:  logLevel,
		Report:    report,
	})
	if err != nil {
		return nil, false, &ExitError{Code: 2, Message: err.Error()}
	}

	slog.Debug("CLI parser finished successfully.", "config", config)
	return config, false, nil
}

// splitList parses a comma-separated flag value, trimming blanks.
func splitList(raw string) []string {
	if raw == "" {
		return nil
	}
	var out []string
	for _, part := range strings.Split(raw, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}
