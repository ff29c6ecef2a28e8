// Package main implements tuidock, a terminal workspace of dockable windows.
// Tabs are dragged between panels, docked against edges through drop hints,
// floated into their own windows and saved as layouts.
package main

import (
	"context"
	"fmt"
	"os"

	"github.com/charmbracelet/fang"
	"github.com/spf13/cobra"
)

// Version information (set by goreleaser)
var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
	builtBy = "unknown"
)

// Global flags
var (
	debugMode  bool
	cpuProfile string
)

func main() {
	var opts tuiFlags

	rootCmd := &cobra.Command{
		Use:   "tuidock",
		Short: "Dockable window workspace for the terminal",
		Long: `tuidock - dockable windows in the terminal

Arrange windows as tabs in split panels. Drag a tab over a panel to dock it
through the drop hints, off its header to float it, and save the arrangement
as a layout that is restored on the next start.`,
		Example: `  # Run tuidock
  tuidock

  # Use a specific layout file
  tuidock --layout ~/work.layout.toml

  # Record a session as a script
  tuidock --record session.tape

  # Replay a script headlessly
  tuidock play session.tape

  # List all keybindings
  tuidock keybinds list`,
		Version: version,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runTUI(cmd.Context(), opts)
		},
		SilenceUsage: true,
	}

	rootCmd.PersistentFlags().BoolVar(&debugMode, "debug", false, "Enable debug logging")
	rootCmd.PersistentFlags().StringVar(&cpuProfile, "cpuprofile", "", "Write CPU profile to file")
	rootCmd.Flags().StringVar(&opts.layout, "layout", "", "Layout file to restore and save (defaults to the configured path)")
	rootCmd.Flags().BoolVar(&opts.noLayout, "no-layout", false, "Start from the default workspace and keep layouts in memory")
	rootCmd.Flags().StringVar(&opts.theme, "theme", "", "Theme to use, overriding the config")
	rootCmd.Flags().StringVar(&opts.script, "script", "", "Play a script in the running workspace")
	rootCmd.Flags().StringVar(&opts.record, "record", "", "Record the session as a script on quit")

	rootCmd.AddCommand(
		newPlayCmd(),
		newLayoutCmd(),
		newConfigCmd(),
		newKeybindsCmd(),
	)

	if err := fang.Execute(
		context.Background(),
		rootCmd,
		fang.WithVersion(fmt.Sprintf("%s\nCommit: %s\nBuilt: %s\nBy: %s", version, commit, date, builtBy)),
	); err != nil {
		os.Exit(1)
	}
}
