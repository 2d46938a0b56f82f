package cli

import (
	"fmt"
	"os"
	"time"

	"github.com/mattn/go-isatty"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"github.com/devports/svctop/pkg/config"
	"github.com/devports/svctop/pkg/models"
)

type rootOptions struct {
	configPath   string
	system       bool
	all          bool
	debug        bool
	inputCadence time.Duration
	dataCadence  time.Duration
	logLines     int
}

// loadConfig reads the configuration files and applies explicitly set flags.
func (o *rootOptions) loadConfig(flags *pflag.FlagSet) (config.Config, error) {
	cfg, err := config.Load(o.configPath)
	if err != nil {
		return config.Config{}, err
	}
	if flags.Changed("system") && o.system {
		if err := cfg.SetScope(models.ScopeSystem); err != nil {
			return config.Config{}, err
		}
	}
	if flags.Changed("all") && o.all {
		show := false
		cfg.ShowOnlyUserConfig = &show
	}
	if flags.Changed("input-cadence") {
		cfg.InputCadence = o.inputCadence
	}
	if flags.Changed("data-cadence") {
		cfg.DataCadence = o.dataCadence
	}
	if flags.Changed("log-lines") {
		cfg.LogLines = o.logLines
	}
	if err := cfg.Validate(); err != nil {
		return config.Config{}, err
	}
	return cfg, nil
}

func (o *rootOptions) bindFlags(flags *pflag.FlagSet) {
	flags.StringVar(&o.configPath, "config", "", "config file (default layers ~/.config/svctop/config.yaml and ./.svctop/config.yaml)")
	flags.BoolVar(&o.system, "system", false, "Manage system-wide units instead of the user manager")
	flags.BoolVar(&o.all, "all", false, "Show all units, not only those defined in the unit directory")
	flags.BoolVar(&o.debug, "debug", false, "Enable debug logging")
	flags.DurationVar(&o.inputCadence, "input-cadence", config.DefaultInputCadence, "Interval between input/refresh cycles")
	flags.DurationVar(&o.dataCadence, "data-cadence", config.DefaultDataCadence, "Interval between service list refreshes")
	flags.IntVar(&o.logLines, "log-lines", config.DefaultLogLines, "Number of journal lines to retrieve")
}

// newCLIApp builds an App that logs to stderr.
func (o *rootOptions) newCLIApp(cmd *cobra.Command) (*App, error) {
	cfg, err := o.loadConfig(cmd.Flags())
	if err != nil {
		return nil, err
	}
	app := NewApp(cfg, newLogger(os.Stderr, o.debug))
	app.out = cmd.OutOrStdout()
	return app, nil
}

// NewRootCmd builds the svctop command tree.
func NewRootCmd(version string) *cobra.Command {
	opts := &rootOptions{}

	root := &cobra.Command{
		Use:   "svctop",
		Short: "Watch and control systemd services from the terminal",
		Long: `svctop lists systemd service units, starts, stops and restarts them,
and tails their journal without leaving the terminal.

Run without a subcommand to open the interactive view.`,
		Version:       version,
		SilenceUsage:  true,
		SilenceErrors: true,
		Args:          cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := opts.loadConfig(cmd.Flags())
			if err != nil {
				return err
			}
			if !isatty.IsTerminal(os.Stdout.Fd()) && !isatty.IsCygwinTerminal(os.Stdout.Fd()) {
				app := NewApp(cfg, newLogger(os.Stderr, opts.debug))
				app.out = cmd.OutOrStdout()
				return app.ListCmd(cmd.Context(), false)
			}

			logPath := cfg.LogFile
			if logPath == "" {
				paths, err := models.GetConfigPaths()
				if err != nil {
					return fmt.Errorf("failed to get config paths: %w", err)
				}
				if err := paths.EnsureDirs(); err != nil {
					return fmt.Errorf("failed to create config directory: %w", err)
				}
				logPath = paths.LogFile
			}
			logFile, err := openLogFile(logPath)
			if err != nil {
				return err
			}
			defer logFile.Close()

			return NewApp(cfg, newLogger(logFile, opts.debug)).TopCmd(cmd.Context())
		},
	}
	root.SetVersionTemplate(`{{printf "svctop version %s\n" .Version}}`)

	opts.bindFlags(root.PersistentFlags())

	root.AddCommand(
		newLsCmd(opts),
		newControlCmd(opts, models.ActionStart),
		newControlCmd(opts, models.ActionStop),
		newControlCmd(opts, models.ActionRestart),
		newLogsCmd(opts),
		newStatusCmd(opts),
		newVersionCmd(version),
	)
	return root
}

func newLsCmd(opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "ls",
		Short: "List service units",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			app, err := opts.newCLIApp(cmd)
			if err != nil {
				return err
			}
			return app.ListCmd(cmd.Context(), opts.all)
		},
	}
}

func newControlCmd(opts *rootOptions, action models.Action) *cobra.Command {
	return &cobra.Command{
		Use:   action.String() + " <unit>",
		Short: fmt.Sprintf("%s a service unit", capitalize(action.String())),
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			app, err := opts.newCLIApp(cmd)
			if err != nil {
				return err
			}
			return app.ControlCmd(cmd.Context(), args[0], action)
		},
	}
}

func newLogsCmd(opts *rootOptions) *cobra.Command {
	var lines int
	cmd := &cobra.Command{
		Use:   "logs <unit>",
		Short: "Print the most recent journal lines of a unit",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			app, err := opts.newCLIApp(cmd)
			if err != nil {
				return err
			}
			return app.LogsCmd(cmd.Context(), args[0], lines)
		},
	}
	cmd.Flags().IntVarP(&lines, "lines", "n", 0, "Number of lines to show (default: log-lines)")
	return cmd
}

func newStatusCmd(opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "status <unit>",
		Short: "Show the state of a unit",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			app, err := opts.newCLIApp(cmd)
			if err != nil {
				return err
			}
			return app.StatusCmd(cmd.Context(), args[0])
		},
	}
}

func newVersionCmd(version string) *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print the version",
		Args:  cobra.NoArgs,
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Fprintf(cmd.OutOrStdout(), "svctop version %s\n", version)
		},
	}
}

func capitalize(s string) string {
	if s == "" {
		return s
	}
	return string(s[0]-'a'+'A') + s[1:]
}
