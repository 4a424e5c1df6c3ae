package cmd

import (
	"context"
	"errors"
	"io"
	"os"
	"strings"

	"github.com/google/uuid"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/telekom/dbusname/pkg/dbusname/config"
	"github.com/telekom/dbusname/pkg/dbusname/output"
	"github.com/telekom/dbusname/pkg/metrics"
	"github.com/telekom/dbusname/pkg/utils"
)

type Config struct {
	ConfigPath   string
	OutputWriter io.Writer
}

type runtimeState struct {
	configPath      string
	cfg             *config.Config
	outputFormat    string
	template        string
	metricsTextfile string
	verbose         bool
	writer          io.Writer
	log             *zap.SugaredLogger
}

type runtimeKey struct{}

func DefaultConfig() Config {
	return Config{
		ConfigPath:   config.DefaultConfigPath(),
		OutputWriter: os.Stdout,
	}
}

func NewRootCommand(cfg Config) *cobra.Command {
	rt := &runtimeState{configPath: cfg.ConfigPath, writer: cfg.OutputWriter}

	root := &cobra.Command{
		Use:   "dbusname",
		Short: "Validate D-Bus bus names, interface names, member names, error names and object paths",
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			if rt.writer == nil {
				rt.writer = os.Stdout
			}
			if rt.configPath == "" {
				rt.configPath = config.DefaultConfigPath()
			}
			if rt.outputFormat == "" {
				rt.outputFormat = os.Getenv("DBUSNAME_OUTPUT")
			}
			if !rt.verbose {
				rt.verbose = strings.EqualFold(os.Getenv("DBUSNAME_VERBOSE"), "true")
			}
			if err := rt.setupLogger(cmd); err != nil {
				return err
			}

			// Skip config loading for commands that don't need it
			if cmd.Name() == "init" && cmd.Parent() != nil && cmd.Parent().Name() == "config" {
				return nil
			}
			if cmd.Name() == "version" || cmd.Name() == "completion" {
				return nil
			}

			cfg, err := config.LoadOrDefault(rt.configPath)
			if err != nil {
				return err
			}
			rt.cfg = cfg
			rt.log.Debugw("Loaded config", "path", rt.configPath)
			return nil
		},
	}

	root.PersistentFlags().StringVar(&rt.configPath, "config", rt.configPath, "Path to config file")
	root.PersistentFlags().StringVarP(&rt.outputFormat, "output", "o", "", "Output format: table, json, yaml, template")
	root.PersistentFlags().StringVar(&rt.template, "template", "", "Go template for --output template (sprig functions available)")
	root.PersistentFlags().StringVar(&rt.metricsTextfile, "metrics-textfile", "", "Write Prometheus metrics to this file after the run")
	root.PersistentFlags().BoolVarP(&rt.verbose, "verbose", "v", false, "Enable debug logging on stderr")

	root.SetContext(context.WithValue(context.Background(), runtimeKey{}, rt))

	root.AddCommand(
		NewValidateCommand(),
		NewLintCommand(),
		NewConfigCommand(),
		NewCompletionCommand(),
		NewVersionCommand(),
	)

	return root
}

func getRuntime(cmd *cobra.Command) (*runtimeState, error) {
	rt, ok := cmd.Context().Value(runtimeKey{}).(*runtimeState)
	if !ok || rt == nil {
		return nil, errors.New("runtime not initialized")
	}
	return rt, nil
}

func (rt *runtimeState) setupLogger(cmd *cobra.Command) error {
	if !rt.verbose {
		rt.log = zap.NewNop().Sugar()
		return nil
	}
	logger, err := utils.SetupLogger(true)
	if err != nil {
		return err
	}
	rt.log = logger.Sugar().With("invocation_id", uuid.NewString(), "command", cmd.CommandPath())
	return nil
}

func (rt *runtimeState) Logger() *zap.SugaredLogger {
	if rt.log == nil {
		return zap.NewNop().Sugar()
	}
	return rt.log
}

func (rt *runtimeState) OutputFormat() (output.Format, error) {
	if rt.outputFormat != "" {
		return output.ParseFormat(rt.outputFormat)
	}
	if rt.cfg != nil && rt.cfg.Settings.OutputFormat != "" {
		return output.ParseFormat(rt.cfg.Settings.OutputFormat)
	}
	return output.FormatTable, nil
}

func (rt *runtimeState) Writer() io.Writer {
	if rt.writer != nil {
		return rt.writer
	}
	return os.Stdout
}

func (rt *runtimeState) config() *config.Config {
	if rt.cfg == nil {
		cfg := config.DefaultConfig()
		rt.cfg = &cfg
	}
	return rt.cfg
}

func (rt *runtimeState) configPathValue() string {
	if rt.configPath == "" {
		return config.DefaultConfigPath()
	}
	return rt.configPath
}

// write renders obj in the selected output format; table is drawn by the
// caller-supplied function.
func (rt *runtimeState) write(obj any, table func(io.Writer)) error {
	format, err := rt.OutputFormat()
	if err != nil {
		return err
	}
	switch format {
	case output.FormatTable:
		table(rt.Writer())
		return nil
	case output.FormatTemplate:
		return output.WriteTemplate(rt.Writer(), rt.template, obj)
	default:
		return output.WriteObject(rt.Writer(), format, obj)
	}
}

// flushMetrics writes the metrics textfile if one is configured. Failing to
// write it never masks the command's own error.
func (rt *runtimeState) flushMetrics(runErr error) error {
	path := rt.metricsTextfile
	if path == "" && rt.cfg != nil {
		path = rt.cfg.Settings.MetricsTextfile
	}
	if path == "" {
		return runErr
	}
	if err := metrics.WriteTextfile(path); err != nil {
		if runErr != nil {
			rt.Logger().Warnw("Failed to write metrics textfile", "path", path, "error", err)
			return runErr
		}
		return err
	}
	rt.Logger().Debugw("Wrote metrics textfile", "path", path)
	return runErr
}
