package main

import (
	"errors"
	"fmt"
	"io"
	"os"
	"os/exec"
	"slices"
	"strings"

	"charm.land/lipgloss/v2"
	"charm.land/lipgloss/v2/table"
	"charm.land/log/v2"
	"github.com/Gaurav-Gosain/tuidock/internal/app"
	"github.com/Gaurav-Gosain/tuidock/internal/config"
	"github.com/Gaurav-Gosain/tuidock/internal/layout"
	"github.com/Gaurav-Gosain/tuidock/internal/render"
	"github.com/Gaurav-Gosain/tuidock/internal/tape"
	"github.com/spf13/cobra"
)

var (
	headerStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("12")).
			Padding(0, 1)
	cellStyle  = lipgloss.NewStyle().Padding(0, 1)
	titleStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("14"))
	noteStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("8")).Italic(true)
)

// stderrLogger logs warnings to stderr, everything with --debug.
func stderrLogger() *log.Logger {
	logger := log.NewWithOptions(os.Stderr, log.Options{Prefix: "tuidock"})
	if debugMode {
		logger.SetLevel(log.DebugLevel)
	} else {
		logger.SetLevel(log.WarnLevel)
	}
	return logger
}

func newTable(headers ...string) *table.Table {
	return table.New().
		Border(lipgloss.RoundedBorder()).
		BorderStyle(lipgloss.NewStyle().Foreground(lipgloss.Color("8"))).
		Headers(headers...).
		StyleFunc(func(row, col int) lipgloss.Style {
			if row == -1 {
				return headerStyle
			}
			return cellStyle
		})
}

// confirm asks a yes/no question on stdin.
func confirm(out io.Writer, in io.Reader, question string) bool {
	fmt.Fprintf(out, "%s (yes/no): ", question)
	var response string
	_, _ = fmt.Fscanln(in, &response)
	response = strings.ToLower(strings.TrimSpace(response))
	return response == "yes" || response == "y"
}

// ============================================================================
// play
// ============================================================================

func newPlayCmd() *cobra.Command {
	var (
		width, height int
		realtime      bool
		preview       bool
		layoutPath    string
	)
	cmd := &cobra.Command{
		Use:   "play FILE",
		Short: "Replay a script headlessly",
		Long: `Run a dock script against a virtual workspace without a terminal UI

Scripts drive the workspace with commands such as Open, Dock, Drag and
MouseDown, and check it with Expect commands. The first failing command stops
the run and is reported with its line number.`,
		Example: `  # Check a recorded session still replays
  tuidock play session.tape

  # Print the final workspace
  tuidock play --preview layout-test.tape`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cmds, err := readScript(args[0])
			if err != nil {
				return err
			}
			logger := stderrLogger()
			cfg := loadConfig(logger)

			r := tape.NewRunner(width, height, cfg.DockOptions(render.Measure, logger))
			r.Factory = app.Factory(r.Master)
			r.LayoutPath = layoutPath
			r.Out = cmd.OutOrStdout()
			r.Realtime = realtime
			if err := r.Run(cmd.Context(), cmds); err != nil {
				return err
			}
			if preview {
				printWorkspace(cmd.OutOrStdout(), r, width, height)
			}
			logger.Info("script passed", "file", args[0], "commands", len(cmds))
			return nil
		},
	}
	cmd.Flags().IntVar(&width, "width", 80, "Workspace width")
	cmd.Flags().IntVar(&height, "height", 24, "Workspace height")
	cmd.Flags().BoolVar(&realtime, "realtime", false, "Honor Sleep durations")
	cmd.Flags().BoolVar(&preview, "preview", false, "Print the final workspace")
	cmd.Flags().StringVar(&layoutPath, "layout", "", "Layout file for Save and Load without a path")
	return cmd
}

func printWorkspace(w io.Writer, r *tape.Runner, width, height int) {
	c := render.NewCanvas(width, height)
	c.ASCII = true
	render.DrawWorkspace(c, r.Desktop, r.Master)
	fmt.Fprintln(w, c.String())
}

// ============================================================================
// layout
// ============================================================================

func newLayoutCmd() *cobra.Command {
	layoutCmd := &cobra.Command{
		Use:   "layout",
		Short: "Inspect saved layouts",
		Long:  `Inspect and reset the layout file restored at startup`,
	}

	pathCmd := &cobra.Command{
		Use:   "path",
		Short: "Print layout file path",
		RunE: func(cmd *cobra.Command, args []string) error {
			path, err := layoutFile(nil)
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), path)
			return nil
		},
	}

	var width, height int
	showCmd := &cobra.Command{
		Use:   "show [FILE]",
		Short: "Print a layout",
		Long: `Print the panel tree of a layout and a preview of the workspace it
restores. Without FILE the configured layout file is shown.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			path, err := layoutFile(args)
			if err != nil {
				return err
			}
			doc, err := layout.Load(path)
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			r := tape.NewRunner(width, height, config.DefaultConfig().DockOptions(render.Measure, stderrLogger()))
			r.Factory = app.Factory(r.Master)
			if err := layout.Apply(r.Master, doc, r.Factory); err != nil {
				return err
			}
			fmt.Fprintln(out, titleStyle.Render(path))
			if err := r.Master.Dump(out); err != nil {
				return err
			}
			fmt.Fprintln(out)
			printWorkspace(out, r, width, height)
			return nil
		},
	}
	showCmd.Flags().IntVar(&width, "width", 80, "Preview width")
	showCmd.Flags().IntVar(&height, "height", 24, "Preview height")

	resetCmd := &cobra.Command{
		Use:   "reset",
		Short: "Delete the saved layout",
		Long: `Delete the layout file so the next start opens the default workspace

This removes your saved layout after confirmation.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			path, err := layoutFile(nil)
			if err != nil {
				return err
			}
			if _, err := os.Stat(path); errors.Is(err, os.ErrNotExist) {
				fmt.Fprintln(cmd.OutOrStdout(), "No saved layout.")
				return nil
			}
			if !confirm(cmd.OutOrStdout(), cmd.InOrStdin(), "Delete the layout at "+path+"?") {
				fmt.Fprintln(cmd.OutOrStdout(), "Reset cancelled.")
				return nil
			}
			if err := os.Remove(path); err != nil {
				return fmt.Errorf("failed to remove layout: %w", err)
			}
			fmt.Fprintln(cmd.OutOrStdout(), "Layout removed.")
			return nil
		},
	}

	layoutCmd.AddCommand(pathCmd, showCmd, resetCmd)
	return layoutCmd
}

// layoutFile returns the file named in args or the configured layout path.
func layoutFile(args []string) (string, error) {
	if len(args) > 0 {
		return args[0], nil
	}
	cfg := loadConfig(stderrLogger())
	path, err := cfg.LayoutPath(layout.DefaultPath)
	if err != nil {
		return "", fmt.Errorf("could not determine layout path: %w", err)
	}
	return path, nil
}

// ============================================================================
// config
// ============================================================================

func newConfigCmd() *cobra.Command {
	configCmd := &cobra.Command{
		Use:   "config",
		Short: "Manage tuidock configuration",
		Long:  `Manage the tuidock configuration file and settings`,
	}

	configPathCmd := &cobra.Command{
		Use:   "path",
		Short: "Print configuration file path",
		Long:  `Print the path to the tuidock configuration file`,
		RunE: func(cmd *cobra.Command, args []string) error {
			path, err := config.GetConfigPath()
			if err != nil {
				return fmt.Errorf("could not determine config path: %w", err)
			}
			fmt.Fprintln(cmd.OutOrStdout(), path)
			return nil
		},
	}

	configEditCmd := &cobra.Command{
		Use:   "edit",
		Short: "Edit configuration in $EDITOR",
		Long: `Open the tuidock configuration file in your default editor

The editor is determined by checking $EDITOR, $VISUAL, or common editors
like vim, vi, nano, and emacs in that order. A running tuidock picks up
the saved file.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return editConfigFile()
		},
	}

	configResetCmd := &cobra.Command{
		Use:   "reset",
		Short: "Reset configuration to defaults",
		Long: `Reset the tuidock configuration file to default settings

This will overwrite your existing configuration after confirmation.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return resetConfigToDefaults(cmd.OutOrStdout(), cmd.InOrStdin())
		},
	}

	configSchemaCmd := &cobra.Command{
		Use:   "schema",
		Short: "Print the configuration JSON schema",
		Long: `Print a JSON schema describing the configuration file

Editors with TOML schema support can use it for completion and validation.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			data, err := config.Schema()
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), string(data))
			return nil
		},
	}

	configCmd.AddCommand(configPathCmd, configEditCmd, configResetCmd, configSchemaCmd)
	return configCmd
}

func editConfigFile() error {
	configPath, err := config.GetConfigPath()
	if err != nil {
		return fmt.Errorf("could not determine config path: %w", err)
	}

	if _, err := os.Stat(configPath); errors.Is(err, os.ErrNotExist) {
		fmt.Printf("Config file doesn't exist, creating default at: %s\n", configPath)
		if _, err := config.LoadUserConfig(); err != nil {
			return fmt.Errorf("could not create config file: %w", err)
		}
	}

	editor := os.Getenv("EDITOR")
	if editor == "" {
		editor = os.Getenv("VISUAL")
	}
	if editor == "" {
		for _, e := range []string{"vim", "vi", "nano", "emacs"} {
			if _, err := exec.LookPath(e); err == nil {
				editor = e
				break
			}
		}
	}
	if editor == "" {
		return errors.New("no editor found. Please set $EDITOR environment variable")
	}

	cmd := exec.Command(editor, configPath)
	cmd.Stdin = os.Stdin
	cmd.Stdout = os.Stdout
	cmd.Stderr = os.Stderr
	if err := cmd.Run(); err != nil {
		return fmt.Errorf("failed to open editor: %w", err)
	}

	if _, err := config.Load(configPath); err != nil {
		fmt.Fprintf(os.Stderr, "Warning: %v\n", err)
	}
	return nil
}

func resetConfigToDefaults(out io.Writer, in io.Reader) error {
	configPath, err := config.GetConfigPath()
	if err != nil {
		return fmt.Errorf("could not determine config path: %w", err)
	}

	if _, err := os.Stat(configPath); err == nil {
		fmt.Fprintf(out, "Warning: This will overwrite your existing configuration at:\n")
		fmt.Fprintf(out, "  %s\n\n", configPath)
		if !confirm(out, in, "Are you sure you want to reset to defaults?") {
			fmt.Fprintln(out, "Reset cancelled.")
			return nil
		}
	}

	if err := config.Save(configPath, config.DefaultConfig()); err != nil {
		return err
	}
	fmt.Fprintf(out, "Configuration reset to defaults\n")
	fmt.Fprintf(out, "  Location: %s\n", configPath)
	fmt.Fprintln(out, "\nYou can customize it with: tuidock config edit")
	return nil
}

// ============================================================================
// keybinds
// ============================================================================

func newKeybindsCmd() *cobra.Command {
	keybindsCmd := &cobra.Command{
		Use:     "keybinds",
		Aliases: []string{"keys", "kb"},
		Short:   "View keybinding configuration",
		Long:    `View and inspect tuidock keybinding configuration`,
	}

	keybindsListCmd := &cobra.Command{
		Use:   "list",
		Short: "List all keybindings",
		Long:  `Display all configured keybindings in a formatted table`,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg := loadConfig(stderrLogger())
			printKeybindings(cmd.OutOrStdout(), config.NewKeybindRegistry(cfg))
			return nil
		},
	}

	keybindsCustomCmd := &cobra.Command{
		Use:   "list-custom",
		Short: "List customized keybindings",
		Long: `Display only keybindings that differ from defaults

Shows a comparison of default and custom keybindings.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.LoadUserConfig()
			if cfg == nil {
				return fmt.Errorf("error loading config: %w", err)
			}
			printCustomKeybindings(cmd.OutOrStdout(), findCustomizations(cfg, config.DefaultConfig()))
			return nil
		},
	}

	keybindsCmd.AddCommand(keybindsListCmd, keybindsCustomCmd)
	return keybindsCmd
}

func printKeybindings(w io.Writer, registry *config.KeybindRegistry) {
	fmt.Fprintln(w)
	fmt.Fprintln(w, titleStyle.Render("tuidock Keybindings"))
	fmt.Fprintln(w)

	for _, section := range config.GetKeybindings(registry) {
		t := newTable("Keys", "Action")
		for _, b := range section.Bindings {
			t.Row(b.Key, b.Description)
		}
		fmt.Fprintln(w, lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("11")).Render(section.Title))
		fmt.Fprintln(w, t.Render())
		fmt.Fprintln(w)
	}
	fmt.Fprintln(w, noteStyle.Render("Note: Esc also cancels a drag in progress, leaving the window floating."))
	fmt.Fprintln(w)
}

// Customization is a keybinding that differs from the default.
type Customization struct {
	Action      string
	DefaultKeys string
	CustomKeys  string
}

func findCustomizations(userCfg, defaultCfg *config.Config) []Customization {
	var customizations []Customization
	compare := func(user, def map[string][]string) {
		actions := make([]string, 0, len(def))
		for action := range def {
			actions = append(actions, action)
		}
		slices.Sort(actions)
		for _, action := range actions {
			userKeys, ok := user[action]
			if !ok || slices.Equal(userKeys, def[action]) {
				continue
			}
			customizations = append(customizations, Customization{
				Action:      app.ActionLabel(action),
				DefaultKeys: strings.Join(def[action], ", "),
				CustomKeys:  strings.Join(userKeys, ", "),
			})
		}
	}
	compare(userCfg.Keybindings.Windows, defaultCfg.Keybindings.Windows)
	compare(userCfg.Keybindings.Layout, defaultCfg.Keybindings.Layout)
	compare(userCfg.Keybindings.System, defaultCfg.Keybindings.System)
	return customizations
}

func printCustomKeybindings(w io.Writer, customizations []Customization) {
	if len(customizations) == 0 {
		fmt.Fprintln(w, noteStyle.Render("No custom keybindings configured. All keybindings are using defaults."))
		fmt.Fprintln(w)
		fmt.Fprintln(w, "Run 'tuidock keybinds list' to see all keybindings.")
		return
	}

	fmt.Fprintln(w)
	fmt.Fprintln(w, titleStyle.Render("Custom Keybindings"))
	fmt.Fprintln(w)
	t := newTable("Action", "Default", "Custom")
	for _, c := range customizations {
		t.Row(c.Action, c.DefaultKeys, c.CustomKeys)
	}
	fmt.Fprintln(w, t.Render())
	fmt.Fprintln(w)
	fmt.Fprintln(w, lipgloss.NewStyle().
		Foreground(lipgloss.Color("11")).
		Render(fmt.Sprintf("Found %d customized keybinding(s)", len(customizations))))
	fmt.Fprintln(w)
}
