package cli

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"strings"

	"github.com/spf13/pflag"
	"github.com/vk/kitresolve/internal/app"
	"github.com/vk/kitresolve/internal/emit"
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
	flagSet := pflag.NewFlagSet("kitresolve", pflag.ContinueOnError)
	flagSet.SetOutput(output)
	flagSet.SortFlags = false

	flagSet.Usage = func() {
		fmt.Fprint(output, `
kitresolve - Resolves a front-end build configuration into absolute paths.

Usage:
  kitresolve [options] [CONFIG_PATH]

Arguments:
  CONFIG_PATH
    Path to a kit.config.{hcl,json,jsonc,yaml,yml} file. When omitted the
    project root is searched.

Options:
`)
		flagSet.PrintDefaults()
	}

	configFlag := flagSet.StringP("config", "c", "", "Path to the configuration file.")
	rootFlag := flagSet.StringP("root", "r", "", "Project root aliases are resolved against. Defaults to the config file's directory.")
	formatFlag := flagSet.StringP("format", "f", string(emit.FormatJSON), "Output format. Options: 'json', 'yaml' or 'tsconfig'.")
	outFlag := flagSet.StringP("out", "o", "", "Write the output to this file instead of stdout.")
	tsBaseFlag := flagSet.String("ts-base", "", "Directory tsconfig paths are made relative to. Absolute when empty.")
	sandboxFlag := flagSet.Bool("sandbox", false, "Reject aliases that resolve outside the project root.")
	notifyFlag := flagSet.String("notify", "", "socket.io dev server URL notified after each resolution.")
	namespaceFlag := flagSet.String("notify-namespace", "/", "socket.io namespace used with --notify.")
	watchFlag := flagSet.BoolP("watch", "w", false, "Re-resolve whenever the configuration file changes.")
	intervalFlag := flagSet.Duration("interval", app.DefaultInterval, "Polling interval in watch mode.")
	healthPortFlag := flagSet.Int("healthcheck-port", 0, "Port for the HTTP health check server in watch mode. 0 is disabled.")
	logFormatFlag := flagSet.String("log-format", "text", "Log output format. Options: 'text' or 'json'.")
	logLevelFlag := flagSet.String("log-level", "info", "Set the logging level. Options: 'debug', 'info', 'warn', 'error'.")

	if err := flagSet.Parse(args); err != nil {
		if errors.Is(err, pflag.ErrHelp) {
			return nil, true, nil
		}
		return nil, false, &ExitError{Code: 2, Message: err.Error()}
	}
	slog.Debug("Arguments parsed successfully.")

	if flagSet.NArg() > 1 {
		return nil, false, &ExitError{Code: 2, Message: fmt.Sprintf("expected at most one CONFIG_PATH, got %d", flagSet.NArg())}
	}

	path := *configFlag
	if path == "" && flagSet.NArg() > 0 {
		path = flagSet.Arg(0)
	}
	slog.Debug("Config path determined.", "path", path)

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

	format, err := emit.ParseFormat(*formatFlag)
	if err != nil {
		return nil, false, &ExitError{Code: 2, Message: fmt.Sprintf("invalid format: %v", err)}
	}
	slog.Debug("CLI parameter validation complete.")

	config, err := app.NewConfig(app.Config{
		ConfigPath:      path,
		ProjectRoot:     *rootFlag,
		Format:          format,
		OutPath:         *outFlag,
		TSBase:          *tsBaseFlag,
		Sandbox:         *sandboxFlag,
		NotifyURL:       *notifyFlag,
		NotifyNamespace: *namespaceFlag,
		Watch:           *watchFlag,
		Interval:        *intervalFlag,
		HealthcheckPort: *healthPortFlag,
		LogFormat:       logFormat,
		LogLevel:        logLevel,
	})
	if err != nil {
		return nil, false, &ExitError{Code: 2, Message: err.Error()}
	}

	slog.Debug("CLI parser finished successfully.", "config", config)
	return config, false, nil
}
