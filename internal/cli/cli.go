// Package cli implements the netfile command-line interface.
package cli

import (
	"io"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/matzehuels/netfile/internal/config"
	"github.com/matzehuels/netfile/pkg/buildinfo"
	"github.com/matzehuels/netfile/pkg/netfile"
)

// =============================================================================
// Constants
// =============================================================================

// appName is the application name used for display.
const appName = "netfile"

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
	Config *config.Config
}

// New creates a new CLI instance with a default logger and configuration.
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

// RootCommand creates the root cobra command with all subcommands registered.
func (c *CLI) RootCommand() *cobra.Command {
	root := &cobra.Command{
		Use:   appName,
		Short: "Netfile inspects and upgrades saved network files",
		Long: `Netfile reads network files written by any released format version,
reports their provenance, and re-saves them in the latest format.`,
		Version:           buildinfo.Version,
		SilenceUsage:      true,
		PersistentPreRunE: c.loadConfig,
	}

	root.SetVersionTemplate(buildinfo.Template())

	// Register all subcommands
	root.AddCommand(c.infoCommand())
	root.AddCommand(c.upgradeCommand())
	root.AddCommand(c.versionsCommand())
	root.AddCommand(c.browseCommand())
	root.AddCommand(c.completionCommand())

	return root
}

// loadConfig reads config.toml before any command runs. The configured log
// level applies unless debug logging was already requested.
func (c *CLI) loadConfig(cmd *cobra.Command, args []string) error {
	cfg, err := config.LoadDefault()
	if err != nil {
		return err
	}
	c.Config = cfg

	if c.Logger.GetLevel() > LogDebug && cfg.LogLevel != "" {
		level, err := log.ParseLevel(cfg.LogLevel)
		if err != nil {
			c.Logger.Warn("ignoring log level from config", "level", cfg.LogLevel, "err", err)
			return nil
		}
		c.SetLogLevel(level)
	}
	return nil
}

// =============================================================================
// Store Factory
// =============================================================================

// newStore creates a document store for CLI use.
func (c *CLI) newStore() *netfile.Store {
	return netfile.NewStore(nil, netfile.Env{}, c.Logger)
}
