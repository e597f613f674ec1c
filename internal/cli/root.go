// Package cli implements the ec2-instance-browser command tree.
package cli

import (
	"context"
	"errors"
	"fmt"
	"io"
	"time"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/rshade/ec2-instance-browser/internal/catalog"
	"github.com/rshade/ec2-instance-browser/internal/config"
	"github.com/rshade/ec2-instance-browser/internal/dataset"
	"github.com/rshade/ec2-instance-browser/internal/iops"
	"github.com/rshade/ec2-instance-browser/internal/logging"
)

// Process exit codes.
const (
	ExitOK          = 0
	ExitError       = 1
	ExitUnavailable = 2
)

// ExitCode maps a command error to a process exit code.
func ExitCode(err error) int {
	switch {
	case err == nil:
		return ExitOK
	case errors.Is(err, dataset.ErrDatasetUnavailable):
		return ExitUnavailable
	default:
		return ExitError
	}
}

// app carries the resolved settings into every subcommand.
type app struct {
	v      *viper.Viper
	cfg    config.Config
	logger zerolog.Logger
	stdout io.Writer
	stderr io.Writer

	// progress enables the spinner; it is only turned on for terminals.
	progress bool
}

// NewRootCommand builds the command tree writing results to stdout and
// diagnostics to stderr.
func NewRootCommand(stdout, stderr io.Writer) *cobra.Command {
	a := &app{
		v:      config.New(),
		logger: zerolog.Nop(),
		stdout: stdout,
		stderr: stderr,
	}

	cmd := &cobra.Command{
		Use:   "ec2-instance-browser",
		Short: "Browse EC2 instance types from a local pricing dataset",
		Long: `ec2-instance-browser reads a local SQLite snapshot of EC2 instance
types and prices and shows specifications, instance store performance,
a sample on-demand Linux price and the regions each type is offered in.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return a.init()
		},
	}

	flags := cmd.PersistentFlags()
	flags.String(config.KeyDataset, config.DefaultDatasetPath(), "Path to the instance dataset (data.db)")
	flags.String(config.KeyConfigFile, "", "Optional YAML config file")
	flags.String(config.KeyLogLevel, "warn", "Log level (trace, debug, info, warn, error, disabled)")
	flags.String(config.KeyLogFormat, config.LogFormatPretty, "Log format - either 'json' or 'pretty'")
	flags.StringP(config.KeyOutput, "o", config.OutputTable, "Output format - table, json or yaml")
	flags.Duration(config.KeyTimeout, 0, "Abort dataset queries after this long (0 disables)")

	for _, key := range []string{
		config.KeyDataset,
		config.KeyConfigFile,
		config.KeyLogLevel,
		config.KeyLogFormat,
		config.KeyOutput,
		config.KeyTimeout,
	} {
		_ = a.v.BindPFlag(key, flags.Lookup(key))
	}

	cmd.AddCommand(
		newBrowseCommand(a),
		newListCommand(a),
		newShowCommand(a),
		newRegionsCommand(a),
		newIOPSCommand(a),
	)
	return cmd
}

// Execute runs the command tree with args and returns the process exit code.
func Execute(ctx context.Context, args []string, stdout, stderr io.Writer) int {
	cmd := NewRootCommand(stdout, stderr)
	cmd.SetArgs(args)
	cmd.SetOut(stdout)
	cmd.SetErr(stderr)

	err := cmd.ExecuteContext(ctx)
	if err != nil {
		fmt.Fprintf(stderr, "Error: %v\n", err)
	}
	return ExitCode(err)
}

// init resolves configuration once flags are parsed.
func (a *app) init() error {
	cfg, err := config.Load(a.v)
	if err != nil {
		return err
	}
	logger, err := logging.New(a.stderr, cfg.LogLevel, cfg.LogFormat)
	if err != nil {
		return err
	}

	a.cfg = cfg
	a.logger = logger
	a.progress = cfg.Output == config.OutputTable && logging.IsTerminal(a.stderr)
	iops.SetLogger(logger)

	logger.Debug().
		Str("dataset", cfg.DatasetPath).
		Str("output", cfg.Output).
		Dur("timeout", cfg.Timeout).
		Msg("configuration loaded")
	return nil
}

// context derives the command context, bounded by the configured timeout.
func (a *app) context(cmd *cobra.Command) (context.Context, context.CancelFunc) {
	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}
	if a.cfg.Timeout > 0 {
		return context.WithTimeout(ctx, a.cfg.Timeout)
	}
	return context.WithCancel(ctx)
}

func (a *app) openGateway(ctx context.Context) (*dataset.Gateway, error) {
	return dataset.Open(ctx, a.cfg.DatasetPath, a.logger)
}

func (a *app) newLoader(gw *dataset.Gateway) (*catalog.Loader, error) {
	ref, err := iops.Default()
	if err != nil {
		return nil, fmt.Errorf("failed to load iops reference: %w", err)
	}
	return catalog.NewLoader(gw, ref, a.logger), nil
}

// since logs how long an operation took at debug level.
func (a *app) since(op string, start time.Time) {
	a.logger.Debug().Str("operation", op).Dur("elapsed", time.Since(start)).Msg("operation finished")
}
