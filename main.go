package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"

	"jadoo/chat"
	"jadoo/config"
	"jadoo/provider"
	"jadoo/server"
	"jadoo/settings"
	"jadoo/storage"
	"jadoo/ui"
	"jadoo/voice"
)

const (
	Version = "v0.01.00"
	License = "Apache-2.0"
)

var (
	configDir string
	dataDir   string
	debug     bool

	titleStyle   = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#00D9FF"))
	successStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#00FF87"))
	dimStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("#6B7280"))
)

func main() {
	rootCmd := &cobra.Command{
		Use:   "jadoo",
		Short: "Jadoo - a friendly chat assistant that can talk back",
		Long: titleStyle.Render("Jadoo") + `

Chat with an AI assistant in your terminal, pick a personality,
and let it read replies aloud.

` + dimStyle.Render("Use 'jadoo [command] --help' for more information."),
		Version:           Version,
		SilenceUsage:      true,
		PersistentPreRunE: applyGlobalFlags,
		RunE:              runChat,
	}

	rootCmd.PersistentFlags().StringVar(&configDir, "config-dir", "", "directory holding settings.toml (env JADOO_CONFIG_DIR)")
	rootCmd.PersistentFlags().StringVar(&dataDir, "data-dir", "", "data directory (env JADOO_DATA_DIR)")
	rootCmd.PersistentFlags().BoolVar(&debug, "debug", false, "write a debug log to the data directory (env JADOO_DEBUG)")

	rootCmd.AddCommand(
		&cobra.Command{
			Use:   "chat",
			Short: "Open the terminal chat (default)",
			RunE:  runChat,
		},
		serveCmd(),
		settingsCmd(),
		personalitiesCmd(),
		versionCmd(),
	)

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

// applyGlobalFlags pushes flag values into the environment so config.Load
// sees them the same way it sees the variables.
func applyGlobalFlags(cmd *cobra.Command, args []string) error {
	if configDir != "" {
		if err := os.Setenv("JADOO_CONFIG_DIR", configDir); err != nil {
			return err
		}
	}
	if dataDir != "" {
		if err := os.Setenv("JADOO_DATA_DIR", dataDir); err != nil {
			return err
		}
	}
	if debug {
		if err := os.Setenv("JADOO_DEBUG", "true"); err != nil {
			return err
		}
	}
	return nil
}

func openStore(cfg *config.Config) (*storage.SQLiteStore, error) {
	store, err := storage.NewSQLiteStore(config.GetStorePath(cfg.DataDir()))
	if err != nil {
		return nil, fmt.Errorf("failed to open local store: %w", err)
	}
	return store, nil
}

func runChat(cmd *cobra.Command, args []string) error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	logger, logCloser := config.InitDebugLog(cfg.DataDir(), cfg.Debug, cfg.LogLevel)
	defer logCloser.Close()

	kv, err := openStore(cfg)
	if err != nil {
		return err
	}
	defer kv.Close()

	keys, err := config.LoadKeybindings(cfg.DataDir())
	if err != nil {
		logger.Warn().Err(err).Msg("using default keybindings")
		keys = config.DefaultKeybindings()
	}

	store := settings.NewStore(kv, logger)
	synth := voice.NewSynthesizer(cfg.Voice, store, logger)
	defer synth.StopSpeaking()

	orch := chat.New(chat.Deps{
		Completer:   chat.NewEndpointClient(cfg.Client.Endpoint, nil),
		Personality: store,
		History:     storage.NewHistoryStore(kv),
		Speaker:     synth,
		Logger:      logger,
	})

	// Cancelled on exit so an in-flight request does not outlive the program.
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	view := ui.NewChatView(ctx, ui.Deps{
		Orchestrator: orch,
		Settings:     store,
		Synthesizer:  synth,
		Recognizer:   voice.NewRecognizer(cfg.Voice, logger),
		Keys:         keys,
		Logger:       logger,
		Version:      Version,
	})

	p := tea.NewProgram(view, tea.WithAltScreen(), tea.WithMouseCellMotion())
	if _, err := p.Run(); err != nil {
		return fmt.Errorf("error running jadoo: %w", err)
	}
	return nil
}

func serveCmd() *cobra.Command {
	var listen string

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Run the completion endpoint (POST /api/chat)",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load()
			if err != nil {
				return fmt.Errorf("failed to load config: %w", err)
			}
			if listen != "" {
				cfg.Server.Listen = listen
			}

			level := cfg.LogLevel
			if cfg.Debug {
				level = "debug"
			}
			logger := config.NewConsoleLogger(os.Stderr, level)

			opts := server.Options{
				Listen:       cfg.Server.Listen,
				ProviderName: cfg.Provider.Type,
				Model:        cfg.Provider.Model,
				MaxTokens:    cfg.Provider.MaxTokens,
				Temperature:  cfg.Provider.Temperature,
				Logger:       logger,
			}

			if cfg.HasAPIKey() {
				p, err := provider.NewProvider(provider.Config{
					Type:    provider.MapProviderIDToType(cfg.Provider.Type),
					BaseURL: cfg.Provider.BaseURL,
					Model:   cfg.Provider.Model,
					APIKey:  cfg.APIKey,
				})
				if err != nil {
					return fmt.Errorf("failed to create provider: %w", err)
				}
				opts.Provider = provider.WithRateLimit(p, cfg.Provider.RequestsPerSecond, cfg.Provider.Burst)
			}

			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()

			return server.New(opts).Start(ctx)
		},
	}

	cmd.Flags().StringVar(&listen, "listen", "", "address to listen on (overrides [server] listen)")
	return cmd
}
