package cmd

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"strings"
	"time"

	"github.com/mattn/go-isatty"
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/s0up4200/wistiakit/config"
	"github.com/s0up4200/wistiakit/filter"
	"github.com/s0up4200/wistiakit/wistia"
)

var (
	cfgFile   string
	cfg       *config.Config
	logger    zerolog.Logger
	client    *wistia.Client
	filters   *filter.Manager
	formatter wistia.Formatter

	// Command flags
	outputFormat string
	filterExpr   string
	preset       string
	showDetails  bool
)

// rootCmd represents the base command
var rootCmd = &cobra.Command{
	Use:   "wistiakit",
	Short: "Browse Wistia projects and medias from the command line",
	Long: `wistiakit is a CLI for the Wistia Data API. It lists and shows projects
and medias, filters them with expressions, and prints them as a tree,
JSON or YAML.`,
	PersistentPreRunE: initializeApp,
	SilenceUsage:      true,
}

// Execute adds all child commands to the root command and sets flags appropriately.
func Execute() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	err := rootCmd.ExecuteContext(ctx)
	stop()
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default is ./config.yaml)")
	rootCmd.PersistentFlags().StringVarP(&outputFormat, "output", "o", "", "output format: table, json or yaml")
	rootCmd.PersistentFlags().StringVarP(&filterExpr, "filter", "f", "", "filter expression")
	rootCmd.PersistentFlags().StringVarP(&preset, "preset", "p", "", "use a preset filter from config")
	rootCmd.PersistentFlags().BoolVar(&showDetails, "details", false, "show descriptions and dates")

	rootCmd.AddCommand(testCmd)
}

// initializeApp initializes the configuration and clients
func initializeApp(cmd *cobra.Command, args []string) error {
	var err error
	cfg, err = config.Load(cfgFile)
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	logger = setupLogger(cfg.Logging)

	if cmd.Flags().Changed("output") {
		format := strings.ToLower(outputFormat)
		if err := config.ValidateOutputFormat(format); err != nil {
			return err
		}
		cfg.Output.Format = format
	}
	if cmd.Flags().Changed("details") {
		cfg.Output.ShowDetails = showDetails
	}

	client, err = wistia.NewClient(cfg.Wistia.APIKey, logger, cfg.ClientOptions()...)
	if err != nil {
		return fmt.Errorf("failed to create Wistia client: %w", err)
	}

	filters = filter.NewManager()
	presets := make(map[string]filter.Definition, len(cfg.Filter.Presets))
	for name, p := range cfg.Filter.Presets {
		presets[name] = filter.Definition{Expression: p.Expression, Description: p.Description}
	}
	if err := filters.LoadPresets(presets); err != nil {
		return fmt.Errorf("invalid filter preset: %w", err)
	}

	formatter = wistia.NewConsoleFormatter()

	logger.Debug().
		Str("base_url", cfg.Wistia.BaseURL).
		Str("debug", cfg.DebugLevel().String()).
		Int("presets", len(presets)).
		Msg("Initialized Wistia client")

	return nil
}

// setupLogger configures the zerolog logger
func setupLogger(cfg config.LoggingConfig) zerolog.Logger {
	level := zerolog.InfoLevel
	switch strings.ToLower(cfg.Level) {
	case "debug":
		level = zerolog.DebugLevel
	case "warn":
		level = zerolog.WarnLevel
	case "error":
		level = zerolog.ErrorLevel
	}

	zerolog.SetGlobalLevel(level)

	if cfg.Format == "json" {
		return zerolog.New(os.Stderr).With().Timestamp().Logger()
	}

	fd := os.Stderr.Fd()
	tty := isatty.IsTerminal(fd) || isatty.IsCygwinTerminal(fd)

	output := zerolog.ConsoleWriter{
		Out:        os.Stderr,
		TimeFormat: time.RFC3339,
		NoColor:    !cfg.Color || !tty,
	}

	return zerolog.New(output).With().Timestamp().Logger()
}

// resolveFilter picks the filter to apply: command line filter > preset >
// default expression. A nil filter means everything matches.
func resolveFilter() (filter.CompiledFilter, error) {
	f, err := filters.Resolve(filterExpr, preset, cfg.Filter.DefaultExpression)
	if err != nil {
		return nil, fmt.Errorf("invalid filter: %w", err)
	}
	return f, nil
}

func formatOptions() wistia.FormatOptions {
	return wistia.FormatOptions{
		ShowDetails:      cfg.Output.ShowDetails,
		StripNumbering:   cfg.Output.StripNumbering,
		ShowEmptySection: cfg.Output.ShowEmptySection,
	}
}
