package main

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/Veraticus/sortbin/internal/common"
	"github.com/Veraticus/sortbin/internal/config"
	"github.com/Veraticus/sortbin/internal/session"
	"github.com/Veraticus/sortbin/internal/tui"
	"github.com/Veraticus/sortbin/internal/tui/themes"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

func tuiCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "tui",
		Short: "Open the interactive interface",
		Long: `Open the interactive interface.

Drop or paste an image path to classify it, then switch between the
Classify, History, Statistics and Environmental Impact views with 1-4 or tab.

Examples:
  sortbin tui                   # Connect to the configured service
  sortbin tui --demo            # Explore with built-in sample data
  sortbin tui --view statistics # Start on the statistics view`,
		RunE: runTUI,
	}

	addTUIFlags(cmd)
	return cmd
}

func addTUIFlags(cmd *cobra.Command) {
	cmd.Flags().String("view", "home", "view to start on (home, history, statistics, reference)")
	cmd.Flags().String("theme", "", "color theme (default, catppuccin-mocha)")
	cmd.Flags().Bool("no-mouse", false, "disable mouse support")
}

func runTUI(cmd *cobra.Command, _ []string) error {
	ctx := cmd.Context()

	viewName, _ := cmd.Flags().GetString("view")
	view, err := session.ParseView(viewName)
	if err != nil {
		return err
	}

	themeName, _ := cmd.Flags().GetString("theme")
	if themeName == "" {
		themeName = viper.GetString(config.KeyTheme)
	}
	noMouse, _ := cmd.Flags().GetBool("no-mouse")

	maxBytes, err := config.MaxUploadBytes(viper.GetViper())
	if err != nil {
		return err
	}

	gwCfg, err := config.LoadGatewayConfig(viper.GetViper())
	if err != nil {
		return fmt.Errorf("invalid gateway configuration: %w", err)
	}

	gw, err := newGateway()
	if err != nil {
		return err
	}

	// The TUI owns the terminal, so logs go to a file
	closeLog, err := redirectLogs(viper.GetString(config.KeyLogFile))
	if err != nil {
		return err
	}
	defer closeLog()

	slog.Info("Starting TUI", "view", view, "theme", themeName, "demo", viper.GetBool("demo"))

	return tui.Run(ctx,
		tui.WithGateway(gw),
		tui.WithTheme(themes.GetTheme(themeName)),
		tui.WithInitialView(view),
		tui.WithMaxBytes(maxBytes),
		tui.WithRequestTimeout(gwCfg.Timeout),
		tui.WithMouse(!noMouse),
	)
}

// redirectLogs points the default logger at path and returns a function
// that closes the file.
func redirectLogs(path string) (func(), error) {
	path = config.ExpandPath(path)
	if err := os.MkdirAll(filepath.Dir(path), 0o750); err != nil {
		return nil, fmt.Errorf("failed to create log directory: %w", err)
	}

	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o600)
	if err != nil {
		return nil, fmt.Errorf("failed to open log file: %w", err)
	}

	level, err := common.ParseLevel(viper.GetString(config.KeyLogLevel))
	if err != nil {
		_ = f.Close()
		return nil, err
	}
	if err := common.SetupLogger(f, level, viper.GetString(config.KeyLogFormat)); err != nil {
		_ = f.Close()
		return nil, err
	}

	return func() {
		if err := f.Close(); err != nil {
			fmt.Fprintf(os.Stderr, "Failed to close log file: %v\n", err)
		}
	}, nil
}
