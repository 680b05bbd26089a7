package app

import (
	"context"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/agentstation/zonemeta/internal/cmd/output"
	"github.com/agentstation/zonemeta/internal/textgen"
	"github.com/agentstation/zonemeta/pkg/logging"
)

// Execute runs the zonemeta CLI application with the given arguments.
// This is the main entry point called from main.go.
func (a *App) Execute(ctx context.Context, args []string) error {
	// Flag defaults come from the configuration, so an explicit config file
	// has to be read before the command tree is built
	if path := configFlag(args); path != "" {
		viper.Set("config", path)
		config, err := LoadConfig()
		if err != nil {
			return err
		}
		a.config = config
	}

	rootCmd := a.createRootCommand()
	rootCmd.SetArgs(args)
	return rootCmd.ExecuteContext(ctx)
}

// createRootCommand creates the root cobra command with all subcommands.
func (a *App) createRootCommand() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:     "zonemeta",
		Short:   "Column business metadata for data catalog assets",
		Version: a.version,
		Long: `zonemeta keeps the column business metadata of Amazon DataZone table
assets in sync with their structure.

It merges an asset's table form and column business metadata form into one
view per column, fills missing business names and descriptions with a text
generation backend (Gemini, Bedrock or an OpenAI-compatible API), applies
hand-written edits, and publishes both forms as a new asset revision.`,
		PersistentPreRunE: a.setupCommand,
		SilenceUsage:      true,
		SilenceErrors:     true,
	}

	rootCmd.AddGroup(&cobra.Group{
		ID:    "core",
		Title: "Core Commands:",
	})
	rootCmd.AddGroup(&cobra.Group{
		ID:    "management",
		Title: "Management Commands:",
	})

	// Global flags
	flags := rootCmd.PersistentFlags()
	flags.StringVar(&a.config.ConfigFile, "config", "", "config file (default is $HOME/.zonemeta.yaml)")
	flags.BoolVarP(&a.config.Verbose, "verbose", "v", a.config.Verbose, "verbose output (shortcut for --log-level=debug)")
	flags.BoolVarP(&a.config.Quiet, "quiet", "q", a.config.Quiet, "minimal output (shortcut for --log-level=warn)")
	flags.BoolVar(&a.config.NoColor, "no-color", a.config.NoColor, "disable colored output")
	flags.StringVarP(&a.config.Format, "format", "o", a.config.Format, "output format: table, json, yaml, wide")
	flags.StringVar(&a.config.LogLevel, "log-level", a.config.LogLevel, "log level: trace, debug, info, warn, error (overrides -v/-q)")

	// Catalog and generation flags default to the loaded configuration
	flags.StringVarP(&a.config.DomainID, "domain", "d", a.config.DomainID, "DataZone domain ID")
	flags.StringVar(&a.config.Region, "region", a.config.Region, "AWS region")
	flags.StringVar(&a.config.EndpointURL, "endpoint-url", a.config.EndpointURL, "DataZone endpoint override")
	flags.StringVarP(&a.config.Generator, "generator", "g", a.config.Generator,
		"generation backend: "+strings.Join(textgen.Backends(), ", "))
	flags.StringVar(&a.config.GeneratorModel, "model", a.config.GeneratorModel, "generation model (backend default when empty)")
	flags.StringVar(&a.config.Overwrite, "overwrite", a.config.Overwrite, "generate for columns with missing metadata or always: missing, always")
	flags.StringVar(&a.config.Duplicates, "duplicates", a.config.Duplicates, "duplicate metadata entries: last, first, reject")
	flags.IntVar(&a.config.Concurrency, "concurrency", a.config.Concurrency, "assets synced at once")

	rootCmd.SetVersionTemplate("zonemeta {{.Version}}\n")

	a.registerCommands(rootCmd)

	return rootCmd
}

// setupCommand is called before any command runs.
func (a *App) setupCommand(cmd *cobra.Command, _ []string) error {
	// These flags are defined as persistent flags in createRootCommand, so errors indicate programming errors
	verbose := mustGetBool(cmd, "verbose")
	quiet := mustGetBool(cmd, "quiet")
	noColor := mustGetBool(cmd, "no-color")
	format := mustGetString(cmd, "format")
	logLevel := mustGetString(cmd, "log-level")

	a.config.UpdateFromFlags(verbose, quiet, noColor, format, logLevel)

	if _, err := output.ParseFormat(a.config.Format); err != nil {
		return err
	}

	logger := NewLogger(a.config)
	a.logger = &logger

	cmd.SetContext(logging.WithLogger(cmd.Context(), a.logger))
	return nil
}

// configFlag returns the value of --config in args, if any.
func configFlag(args []string) string {
	for i, arg := range args {
		if arg == "--" {
			break
		}
		if value, ok := strings.CutPrefix(arg, "--config="); ok {
			return value
		}
		if arg == "--config" && i+1 < len(args) {
			return args[i+1]
		}
	}
	return ""
}

// ExitOnError is a helper that prints an error and exits with status 1.
// This is meant to be used in main.go for top-level error handling.
func ExitOnError(err error) {
	if err != nil {
		_, _ = os.Stderr.WriteString(err.Error() + "\n")
		os.Exit(1)
	}
}

// mustGetBool retrieves a boolean flag value or panics if the flag doesn't exist.
func mustGetBool(cmd *cobra.Command, name string) bool {
	val, err := cmd.Flags().GetBool(name)
	if err != nil {
		panic("programming error: failed to get flag " + name + ": " + err.Error())
	}
	return val
}

// mustGetString retrieves a string flag value or panics if the flag doesn't exist.
func mustGetString(cmd *cobra.Command, name string) string {
	val, err := cmd.Flags().GetString(name)
	if err != nil {
		panic("programming error: failed to get flag " + name + ": " + err.Error())
	}
	return val
}
