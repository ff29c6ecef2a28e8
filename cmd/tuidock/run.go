package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"runtime/pprof"
	"strings"
	"syscall"

	tea "charm.land/bubbletea/v2"
	"charm.land/log/v2"
	"github.com/Gaurav-Gosain/tuidock/internal/app"
	"github.com/Gaurav-Gosain/tuidock/internal/config"
	"github.com/Gaurav-Gosain/tuidock/internal/layout"
	"github.com/Gaurav-Gosain/tuidock/internal/tape"
	"github.com/Gaurav-Gosain/tuidock/internal/terminal"
	"golang.org/x/term"
)

type tuiFlags struct {
	layout   string
	noLayout bool
	theme    string
	script   string
	record   string
}

func runTUI(ctx context.Context, opts tuiFlags) error {
	logger, logFile, err := app.OpenLog(debugMode)
	if err != nil {
		return err
	}
	defer logFile.Close()

	stop, err := startProfile()
	if err != nil {
		return err
	}
	defer stop()

	cfg := loadConfig(logger)

	layoutPath := ""
	if !opts.noLayout {
		layoutPath = opts.layout
		if layoutPath == "" {
			if layoutPath, err = cfg.LayoutPath(layout.DefaultPath); err != nil {
				return fmt.Errorf("could not determine layout path: %w", err)
			}
		}
	}

	var script []tape.Command
	if opts.script != "" {
		if script, err = readScript(opts.script); err != nil {
			return err
		}
	}

	width, height, err := term.GetSize(int(os.Stdout.Fd()))
	if err != nil {
		width, height = 0, 0
	}

	model, err := app.New(app.Options{
		Config:     cfg,
		Logger:     logger,
		Theme:      opts.theme,
		LayoutPath: layoutPath,
		Script:     script,
		RecordPath: opts.record,
		Width:      width,
		Height:     height,
	})
	if err != nil {
		return err
	}

	p := tea.NewProgram(
		model,
		tea.WithoutSignalHandler(),
		tea.WithFilter(app.FilterMouseMotion),
	)

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	if path, err := config.GetConfigPath(); err == nil {
		err := config.Watch(ctx, path, func(c *config.Config, err error) {
			p.Send(app.ConfigReloadMsg{Config: c, Err: err})
		})
		if err != nil {
			logger.Warn("config changes will not be picked up", "err", err)
		}
	}

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)
	defer signal.Stop(sigChan)
	go func() {
		select {
		case <-sigChan:
			p.Send(tea.QuitMsg{})
		case <-ctx.Done():
		}
	}()

	_, runErr := p.Run()
	if runErr != nil {
		terminal.ResetStdout()
		runErr = fmt.Errorf("program error: %w", runErr)
	}
	return errors.Join(runErr, model.Cleanup())
}

// loadConfig returns the user config, falling back to the defaults.
func loadConfig(logger *log.Logger) *config.Config {
	cfg, err := config.LoadUserConfig()
	switch {
	case cfg == nil:
		logger.Warn("failed to load config, using defaults", "err", err)
		cfg = config.DefaultConfig()
	case err != nil:
		logger.Warn("config", "err", err)
	}
	if path, err := config.GetConfigPath(); err == nil {
		logger.Debug("configuration", "path", path)
	}
	return cfg
}

func readScript(path string) ([]tape.Command, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read script: %w", err)
	}
	cmds, errs := tape.ParseFile(string(data))
	if len(errs) > 0 {
		return nil, fmt.Errorf("%w in %s:\n  %s", tape.ErrParse, path, strings.Join(errs, "\n  "))
	}
	return cmds, nil
}

func startProfile() (func(), error) {
	if cpuProfile == "" {
		return func() {}, nil
	}
	f, err := os.Create(cpuProfile)
	if err != nil {
		return nil, fmt.Errorf("could not create CPU profile: %w", err)
	}
	if err := pprof.StartCPUProfile(f); err != nil {
		f.Close()
		return nil, fmt.Errorf("could not start CPU profile: %w", err)
	}
	return func() {
		pprof.StopCPUProfile()
		f.Close()
	}, nil
}
