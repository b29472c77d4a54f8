// Package cli wires the splitdesk command line.
package cli

import (
	"context"
	"fmt"
	"os"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"splitdesk/internal/config"
	"splitdesk/internal/keybind"
	"splitdesk/internal/logger"
	"splitdesk/internal/term"
	"splitdesk/internal/trace"
	"splitdesk/internal/ui"
)

var (
	flagWorkdir string
	flagModal   bool
	flagConfig  string
)

// RootCmd is the root command for the CLI.
var RootCmd = &cobra.Command{
	Use:   "splitdesk [file]",
	Short: "splitdesk - split-pane terminal workspace",
	Long: `A terminal workspace whose editor area and terminal panel are recursively
splittable pane containers. Panes split, close, exchange, and pass focus
through keybindings (ctrl+w v/c/x/h/l/k/j) and the built-in terminal panel
(ctrl+t).`,
	Args: cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig()
		if err != nil {
			logger.Warn("load config", "err", err)
		}

		if cmd.Flags().Changed("workdir") {
			cfg.Workspace = flagWorkdir
		}
		if cmd.Flags().Changed("modal") {
			cfg.Modal = flagModal
		}

		shutdown, err := trace.Setup(context.Background())
		if err != nil {
			logger.Warn("trace setup", "err", err)
		}
		defer shutdown(context.Background())

		keys := keybind.NewDefaultRegistry(cfg.Keybindings)
		ws := ui.NewWorkspace(cfg.Workspace, cfg.Modal, keys, &term.SystemPTY{})
		if !cfg.ShowBorders {
			ws.Editors().HideBorder()
			ws.Terminals().HideBorder()
		}

		model := ui.NewAppModel(ws, keys)
		if len(args) == 1 {
			model.InitialFile = args[0]
		}

		p := tea.NewProgram(model.AsTeaModel(),
			tea.WithAltScreen(),
			tea.WithMouseCellMotion(),
		)
		_, err = p.Run()
		return err
	},
}

func loadConfig() (config.Config, error) {
	if flagConfig != "" {
		return config.Load(flagConfig)
	}
	return config.LoadDefault()
}

func init() {
	RootCmd.Flags().StringVarP(&flagWorkdir, "workdir", "w", "", "workspace folder to open")
	RootCmd.Flags().BoolVarP(&flagModal, "modal", "m", false, "enable modal editing")
	RootCmd.Flags().StringVarP(&flagConfig, "config", "c", "", "config file path (default ~/.splitdesk/config.yaml)")
}

// Execute runs the root command.
func Execute() error {
	return RootCmd.Execute()
}

// ExitOnError prints the error and exits non-zero.
func ExitOnError(err error) {
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
