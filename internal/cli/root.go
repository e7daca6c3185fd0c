// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package cli

import (
	"fmt"
	"strings"

	"github.com/spf13/afero"
	"github.com/spf13/cobra"

	"github.com/jeranaias/forgefit-tui/internal/api"
	"github.com/jeranaias/forgefit-tui/internal/config"
)

// Version information (set at build time).
var (
	Version   = "0.1.0"
	GitCommit = "unknown"
	BuildDate = "unknown"
)

// Env is what the root command set up for a run.
type Env struct {
	Config *config.Config
	// ConfigPath is the file Config came from, or would come from once
	// created. It is the --config value when one was given.
	ConfigPath string
	Client     *api.Client
}

// RootOptions wires the command tree to the rest of the program.
type RootOptions struct {
	// RunTUI starts the dashboard. It runs when no subcommand is given.
	RunTUI func(cmd *cobra.Command, env Env) error

	// LoadConfig loads the config, from path when it is not empty.
	// Default: config.Load / config.LoadFromPath.
	LoadConfig func(path string) (*config.Config, error)

	// Fs receives exported files. Default: the OS filesystem.
	Fs afero.Fs
}

// ClientFromConfig builds the API client from the server section.
func ClientFromConfig(cfg *config.Config) (*api.Client, error) {
	return api.NewClientWithConfig(&api.ClientConfig{
		BaseURL:       cfg.Server.BaseURL,
		SessionCookie: cfg.Server.SessionCookie,
		CookieName:    cfg.Server.CookieName,
		Timeout:       cfg.Timeout(),
		RatePerSec:    cfg.Server.RatePerSec,
		RateBurst:     cfg.Server.RateBurst,
		Verbose:       cfg.Server.Verbose,
	})
}

func loadConfig(path string) (*config.Config, error) {
	if path != "" {
		return config.LoadFromPath(path)
	}
	return config.Load()
}

// NewRootCommand builds the forgefit command tree.
func NewRootCommand(opts RootOptions) *cobra.Command {
	if opts.LoadConfig == nil {
		opts.LoadConfig = loadConfig
	}
	if opts.Fs == nil {
		opts.Fs = afero.NewOsFs()
	}

	var (
		cfgFile  string
		baseURL  string
		verbose  bool
		jsonMode bool
		cfg      *config.Config
		cfgPath  string
		client   *api.Client
	)

	// setup loads the config and builds the client once per invocation.
	setup := func(cmd *cobra.Command, _ []string) error {
		var err error
		cfg, err = opts.LoadConfig(cfgFile)
		if err != nil {
			return err
		}
		if baseURL != "" {
			cfg.Server.BaseURL = baseURL
		}
		if verbose {
			cfg.Server.Verbose = true
		}
		if cfgPath, err = config.ResolvePath(cfgFile); err != nil {
			return err
		}
		client, err = ClientFromConfig(cfg)
		return err
	}

	root := &cobra.Command{
		Use:   "forgefit",
		Short: "ForgeFit in the terminal: workout plan, food log and coach chat.",
		Long: `forgefit talks to a ForgeFit server and shows the week's workout plan,
today's food log and the coach chat in one screen.

Without a subcommand it starts the full-screen dashboard.`,
		SilenceUsage:      true,
		SilenceErrors:     true,
		PersistentPreRunE: setup,
		RunE: func(cmd *cobra.Command, args []string) error {
			if opts.RunTUI == nil {
				return cmd.Help()
			}
			return opts.RunTUI(cmd, Env{Config: cfg, ConfigPath: cfgPath, Client: client})
		},
	}
	root.PersistentFlags().StringVarP(&cfgFile, "config", "c", "", "config file (default is ~/.forgefit/config.toml)")
	root.PersistentFlags().StringVar(&baseURL, "base-url", "", "ForgeFit server URL (overrides config)")
	root.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "log each request")
	root.PersistentFlags().BoolVar(&jsonMode, "json", false, "print errors as JSON")

	// ------------------------------------------------------------------
	// chat
	// ------------------------------------------------------------------
	var plain bool
	chatCmd := &cobra.Command{
		Use:   "chat",
		Short: "Chat with the coach without the full-screen UI",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return HandleChatCommand(cmd.Context(), client, ChatOptions{
				BaseURL:  cfg.Server.BaseURL,
				Markdown: cfg.UI.MarkdownReplies && !plain,
			})
		},
	}
	chatCmd.Flags().BoolVar(&plain, "plain", false, "print replies without markdown rendering")

	// ------------------------------------------------------------------
	// food
	// ------------------------------------------------------------------
	foodCmd := &cobra.Command{
		Use:   "food",
		Short: "Food log commands",
	}

	var exportOpts FoodExportOptions
	exportCmd := &cobra.Command{
		Use:   "export",
		Short: "Export today's food log",
		Long: `Export today's food log to a file.

Examples:
  forgefit food export                          # xlsx in the current directory
  forgefit food export --format json --out today.json
  forgefit food export -f md --open`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			exportOpts.Fs = opts.Fs
			_, err := HandleFoodExport(cmd.Context(), client, cmd.OutOrStdout(), exportOpts)
			return err
		},
	}
	exportCmd.Flags().StringVarP(&exportOpts.Format, "format", "f", "xlsx", "output format: xlsx, json or md")
	exportCmd.Flags().StringVarP(&exportOpts.Out, "out", "o", "", "output path (default food_log_<date>.<ext>)")
	exportCmd.Flags().BoolVar(&exportOpts.Open, "open", false, "open the file after exporting")

	searchCmd := &cobra.Command{
		Use:   "search QUERY...",
		Short: "Search the food database",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return HandleFoodSearch(cmd.Context(), client, cmd.OutOrStdout(), strings.Join(args, " "))
		},
	}
	foodCmd.AddCommand(exportCmd, searchCmd)

	// ------------------------------------------------------------------
	// version
	// ------------------------------------------------------------------
	versionCmd := &cobra.Command{
		Use:   "version",
		Short: "Print version information",
		Args:  cobra.NoArgs,
		// No config needed.
		PersistentPreRunE: func(*cobra.Command, []string) error { return nil },
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Fprintf(cmd.OutOrStdout(), "forgefit %s (commit %s, built %s)\n", Version, GitCommit, BuildDate)
		},
	}

	root.AddCommand(chatCmd, foodCmd, versionCmd)
	return root
}

// JSONErrors reports whether --json was passed to cmd or a parent.
func JSONErrors(cmd *cobra.Command) bool {
	f := cmd.Flags().Lookup("json")
	return f != nil && f.Value.String() == "true"
}
