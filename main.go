// forgefit - ForgeFit in the terminal.
//
// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later
package main

import (
	"context"
	"fmt"
	"io"
	"log"
	"os"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/jeranaias/forgefit-tui/internal/cli"
	"github.com/jeranaias/forgefit-tui/internal/config"
	"github.com/jeranaias/forgefit-tui/internal/page"
	"github.com/jeranaias/forgefit-tui/internal/ui/dashboard"
	"github.com/jeranaias/forgefit-tui/internal/ui/styles"
)

// Version information (set at build time)
var (
	Version   = "0.1.0"
	GitCommit = "unknown"
	BuildDate = "unknown"
)

func init() {
	cli.Version = Version
	cli.GitCommit = GitCommit
	cli.BuildDate = BuildDate
}

// bootstrapTimeout bounds the initial page loads.
const bootstrapTimeout = 20 * time.Second

func main() {
	root := cli.NewRootCommand(cli.RootOptions{RunTUI: runTUI})
	cmd, err := root.ExecuteC()
	if err != nil {
		cli.DisplayError(os.Stderr, err, cli.JSONErrors(cmd))
		os.Exit(cli.GetExitCode(err))
	}
}

// runTUI starts the dashboard.
func runTUI(cmd *cobra.Command, env cli.Env) error {
	cfg, client := env.Config, env.Client

	if !term.IsTerminal(int(os.Stdout.Fd())) {
		return &cli.TTYRequiredError{Operation: "start the dashboard"}
	}

	// Anything logged while Bubble Tea owns the screen goes to the log file.
	if cfg.UI.LogFile != "" {
		f, err := tea.LogToFile(cfg.UI.LogFile, "forgefit")
		if err != nil {
			return fmt.Errorf("open log file: %w", err)
		}
		defer f.Close()
	} else {
		log.SetOutput(io.Discard)
	}

	ctx, cancel := context.WithCancel(cmd.Context())
	defer cancel()

	theme := styles.NewTheme(cfg.UI.Theme)
	styles.SetDefaultTheme(theme)

	pg := page.New(ctx, client, page.Options{
		Debounce:        cfg.Debounce(),
		RecomputeTotals: cfg.Food.RecomputeTotals,
	})
	pg.Chat.Open = cfg.UI.ChatOpen

	bootCtx, bootCancel := context.WithTimeout(ctx, bootstrapTimeout)
	bootErr := pg.Bootstrap(bootCtx, client)
	bootCancel()

	m := dashboard.New(pg, theme, dashboard.Options{
		MarkdownReplies: cfg.UI.MarkdownReplies,
		BaseURL:         cfg.Server.BaseURL,
	})

	p := tea.NewProgram(
		m,
		tea.WithAltScreen(),
		tea.WithMouseCellMotion(),
		tea.WithContext(ctx),
	)

	if bootErr != nil {
		go p.Send(dashboard.BootstrapErrMsg{Err: bootErr})
	}

	// Live config reload of the file this run was started from. Only the
	// food and UI settings apply while running.
	if env.ConfigPath != "" {
		go func() {
			err := config.Watch(ctx, env.ConfigPath, func(c *config.Config) {
				p.Send(dashboard.ConfigChangedMsg{Config: c})
			})
			if err != nil {
				log.Printf("config: watch disabled: %v", err)
			}
		}()
	}

	if _, err := p.Run(); err != nil {
		return fmt.Errorf("error running forgefit: %w", err)
	}
	return nil
}
