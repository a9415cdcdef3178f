package cmd

import (
	"fmt"
	"log/slog"

	"github.com/shapestone/shape-moxfield/internal/config"
	"github.com/shapestone/shape-moxfield/internal/logging"
	"github.com/spf13/cobra"
)

var (
	cfgFile   string
	verbose   bool
	logFormat string
)

var rootCmd = &cobra.Command{
	Use:   "moxconv",
	Short: "Convert Moxfield CSV exports to Moxfield text lists",
	Long: `moxconv turns a Moxfield collection CSV export into the text list
format Moxfield imports, one card per line:

  {Count} {Name} ({Edition}) {Collector Number} {*F*|*E*}

Commands:
  convert  - convert a file or stdin
  serve    - run the HTTP conversion service
  version  - print version information`,
	SilenceUsage: true,
}

// Execute runs the root command.
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file, .toml or .yaml (default: $MOXCONV_CONFIG, ./moxconv.toml)")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "debug logging")
	rootCmd.PersistentFlags().StringVar(&logFormat, "log-format", "", "log format: text or json")
}

// loadConfig loads --config if given, otherwise the environment's config.
func loadConfig() (*config.Config, error) {
	if cfgFile != "" {
		return config.Load(cfgFile)
	}
	return config.LoadFromEnv()
}

// newLogger builds the command logger. Precedence: flags, environment,
// config file, defaults.
func newLogger(cmd *cobra.Command, cfg *config.Config) (*slog.Logger, error) {
	lc := logging.DefaultConfig()
	lc.Writer = cmd.ErrOrStderr()
	if level, ok := logging.ParseLevel(cfg.Log.Level); ok {
		lc.Level = level
	}
	lc.Format = cfg.Log.Format
	lc.AddSource = cfg.Log.AddSource

	lc = logging.ApplyEnv(lc)

	switch logFormat {
	case "":
	case "text", "json":
		lc.Format = logFormat
	default:
		return nil, fmt.Errorf("--log-format must be text or json, got %q", logFormat)
	}
	if verbose {
		lc.Level = slog.LevelDebug
	}

	return logging.New(lc), nil
}

// setup loads the config and logger shared by every subcommand.
func setup(cmd *cobra.Command) (*config.Config, *slog.Logger, error) {
	cfg, err := loadConfig()
	if err != nil {
		return nil, nil, err
	}
	logger, err := newLogger(cmd, cfg)
	if err != nil {
		return nil, nil, err
	}
	return cfg, logger, nil
}
