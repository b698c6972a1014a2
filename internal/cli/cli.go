// Package cli implements the ntwk command-line interface.
//
// The CLI is built using cobra and supports verbose logging via the
// charmbracelet/log library. Loggers are passed through context.Context so
// every command logs the same way.
//
// # Commands
//
// The main commands are:
//   - tui: Edit a network interactively in the terminal
//   - render: Replay a gesture script and write SVG, PNG, PDF, DOT or text
//   - serve: Serve the editor canvas over HTTP
//   - config: Show the active configuration
package cli

import (
	"io"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/ntwkui/ntwk/pkg/buildinfo"
	"github.com/ntwkui/ntwk/pkg/config"
	"github.com/ntwkui/ntwk/pkg/errors"
)

// =============================================================================
// Constants
// =============================================================================

// appName is the application name used for display.
const appName = "ntwk"

// Log levels exported for use in main.go.
const (
	LogDebug = log.DebugLevel
	LogInfo  = log.InfoLevel
)

// =============================================================================
// CLI - Central CLI State
// =============================================================================

// CLI holds shared state for all commands.
type CLI struct {
	Logger *log.Logger

	// Config is loaded before any subcommand runs.
	Config     *config.Config
	ConfigPath string

	configFlag string
	verbose    bool
}

// New creates a new CLI instance with a default logger.
func New(w io.Writer, level log.Level) *CLI {
	return &CLI{
		Logger: newLogger(w, level),
		Config: config.DefaultConfig(),
	}
}

// SetLogLevel updates the logger's level.
func (c *CLI) SetLogLevel(level log.Level) {
	c.Logger.SetLevel(level)
}

// Verbose reports whether --verbose was given.
func (c *CLI) Verbose() bool { return c.verbose }

// RootCommand creates the root cobra command with all subcommands registered.
func (c *CLI) RootCommand() *cobra.Command {
	root := &cobra.Command{
		Use:          appName,
		Short:        "ntwk draws network graphs on a 2D canvas",
		Long:         `ntwk is a small network editor: place nodes on a canvas, link them with straight or curved edges, and render the result as SVG, PNG, PDF, Graphviz DOT or text.`,
		Version:      buildinfo.Version,
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			if err := c.loadConfig(); err != nil {
				return err
			}
			registerHooks(c.Logger)
			cmd.SetContext(withLogger(cmd.Context(), c.Logger))
			return nil
		},
	}

	root.SetVersionTemplate(buildinfo.Template())
	root.PersistentFlags().BoolVarP(&c.verbose, "verbose", "v", false, "enable verbose logging")
	root.PersistentFlags().StringVar(&c.configFlag, "config", "", "config file (default: $NTWK_CONFIG or ~/.config/ntwk/config.toml)")

	// Register all subcommands
	root.AddCommand(c.tuiCommand())
	root.AddCommand(c.renderCommand())
	root.AddCommand(c.serveCommand())
	root.AddCommand(c.configCommand())
	root.AddCommand(c.completionCommand())

	return root
}

// loadConfig reads the config file named by --config, or searches the
// default locations. The log level from the file applies unless --verbose
// was given.
func (c *CLI) loadConfig() error {
	var (
		cfg  *config.Config
		path string
		err  error
	)
	if c.configFlag != "" {
		cfg, path, err = config.LoadFromPath(c.configFlag)
	} else {
		cfg, path, err = config.Load()
	}
	if err != nil {
		return err
	}
	c.Config, c.ConfigPath = cfg, path

	if c.verbose {
		c.SetLogLevel(LogDebug)
		return nil
	}
	level, err := log.ParseLevel(cfg.Log.Level)
	if err != nil {
		return errors.Wrap(errors.ErrCodeInvalidConfig, err, "log level")
	}
	c.SetLogLevel(level)
	return nil
}
