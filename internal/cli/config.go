package cli

import (
	"fmt"
	"os"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/spf13/cobra"

	"github.com/ntwkui/ntwk/pkg/config"
)

// configCommand creates the config command group.
func (c *CLI) configCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "config",
		Short: "Inspect ntwk configuration",
	}
	cmd.AddCommand(c.configPathCommand())
	cmd.AddCommand(c.configShowCommand())
	cmd.AddCommand(c.configInitCommand())
	return cmd
}

func (c *CLI) configPathCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "path",
		Short: "Print the config file in use",
		Args:  cobra.NoArgs,
		Run: func(cmd *cobra.Command, args []string) {
			if c.ConfigPath == "" {
				printInfo("No config file found, using defaults")
				printDetail("create one at %s", config.DefaultConfigPath())
				return
			}
			fmt.Fprintln(stdout, c.ConfigPath)
		},
	}
}

func (c *CLI) configShowCommand() *cobra.Command {
	var asTOML bool

	cmd := &cobra.Command{
		Use:   "show",
		Short: "Print the effective configuration",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if asTOML {
				return c.Config.Encode(stdout)
			}
			fmt.Fprintln(stdout, configTable(c.Config))
			return nil
		},
	}
	cmd.Flags().BoolVar(&asTOML, "toml", false, "print as TOML")
	return cmd
}

func (c *CLI) configInitCommand() *cobra.Command {
	var force bool

	cmd := &cobra.Command{
		Use:   "init",
		Short: "Write a config file with default settings",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			path := config.DefaultConfigPath()
			if _, err := os.Stat(path); err == nil && !force {
				printWarning("%s already exists (use --force to overwrite)", path)
				return nil
			}
			if err := config.DefaultConfig().Save(path); err != nil {
				return err
			}
			printSuccess("Wrote default config")
			printFile(path)
			return nil
		},
	}
	cmd.Flags().BoolVar(&force, "force", false, "overwrite an existing file")
	return cmd
}

// configTable renders the settings as a two-column table.
func configTable(cfg *config.Config) string {
	rows := [][]string{
		{"canvas.width", fmt.Sprintf("%g", cfg.Canvas.Width)},
		{"canvas.height", fmt.Sprintf("%g", cfg.Canvas.Height)},
		{"canvas.node_radius", fmt.Sprintf("%g", cfg.Canvas.NodeRadius)},
		{"canvas.stroke_width", fmt.Sprintf("%g", cfg.Canvas.StrokeWidth)},
		{"style.node_color", cfg.Style.NodeColor},
		{"style.edge_color", cfg.Style.EdgeColor},
		{"style.background", cfg.Style.Background},
		{"log.level", cfg.Log.Level},
		{"server.addr", cfg.Server.Addr},
	}

	headerStyle := lipgloss.NewStyle().Foreground(colorGray).Bold(true)
	return table.New().
		Border(lipgloss.RoundedBorder()).
		BorderStyle(lipgloss.NewStyle().Foreground(colorDim)).
		Headers("Key", "Value").
		Rows(rows...).
		StyleFunc(func(row, col int) lipgloss.Style {
			switch {
			case row == -1:
				return headerStyle
			case col == 0:
				return StyleDim
			default:
				return StyleValue
			}
		}).
		Render()
}
