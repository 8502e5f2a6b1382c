package main

import (
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"jadoo/config"
	"jadoo/model"
	"jadoo/settings"
)

func settingsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "settings",
		Short: "Show or change the saved personality and voice settings",
	}
	cmd.AddCommand(settingsShowCmd(), settingsSetCmd(), settingsResetCmd())
	return cmd
}

// withSettings opens the local store for one CLI command.
func withSettings(fn func(store *settings.Store) error) error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}
	kv, err := openStore(cfg)
	if err != nil {
		return err
	}
	defer kv.Close()

	logger := config.NewConsoleLogger(os.Stderr, cfg.LogLevel)
	return fn(settings.NewStore(kv, logger))
}

func settingsShowCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "show",
		Short: "Print the current settings",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return withSettings(func(store *settings.Store) error {
				printSettings(cmd.OutOrStdout(), store.Get())
				return nil
			})
		},
	}
}

func settingsSetCmd() *cobra.Command {
	var (
		personality string
		speak       bool
		voiceName   string
		rate        float64
		pitch       float64
		volume      float64
	)

	cmd := &cobra.Command{
		Use:   "set",
		Short: "Change one or more settings",
		Example: `  jadoo settings set --personality creative
  jadoo settings set --speak=false
  jadoo settings set --voice "" --rate 1.2`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			flags := cmd.Flags()
			var u settings.Update
			changed := false

			if flags.Changed("personality") {
				if _, ok := model.LookupPersonality(personality); !ok {
					return fmt.Errorf("unknown personality %q (see 'jadoo personalities')", personality)
				}
				u.PersonalityMode = &personality
				changed = true
			}
			if flags.Changed("speak") {
				u.SpeakReplies = &speak
				changed = true
			}
			if flags.Changed("voice") {
				u.SelectedVoice = &voiceName
				changed = true
			}
			if flags.Changed("rate") {
				u.SpeechRate = &rate
				changed = true
			}
			if flags.Changed("pitch") {
				u.SpeechPitch = &pitch
				changed = true
			}
			if flags.Changed("volume") {
				u.SpeechVolume = &volume
				changed = true
			}
			if !changed {
				return fmt.Errorf("nothing to set; pass at least one flag")
			}

			return withSettings(func(store *settings.Store) error {
				if err := store.Set(u); err != nil {
					return err
				}
				fmt.Fprintln(cmd.OutOrStdout(), successStyle.Render("✓ Settings saved"))
				printSettings(cmd.OutOrStdout(), store.Get())
				return nil
			})
		},
	}

	f := cmd.Flags()
	f.StringVar(&personality, "personality", "", "personality mode id")
	f.BoolVar(&speak, "speak", true, "read replies aloud")
	f.StringVar(&voiceName, "voice", "", "voice name; empty selects the system default")
	f.Float64Var(&rate, "rate", model.DefaultSpeechRate, "speech rate (0.5-2.0)")
	f.Float64Var(&pitch, "pitch", model.DefaultSpeechPitch, "speech pitch (0.5-2.0)")
	f.Float64Var(&volume, "volume", model.DefaultSpeechVolume, "speech volume (0.0-1.0)")
	return cmd
}

func settingsResetCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "reset",
		Short: "Restore every setting to its default",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return withSettings(func(store *settings.Store) error {
				if err := store.Reset(); err != nil {
					return err
				}
				fmt.Fprintln(cmd.OutOrStdout(), successStyle.Render("✓ Settings reset to defaults"))
				return nil
			})
		},
	}
}

func printSettings(w io.Writer, s model.Settings) {
	voiceName := s.Voice.SelectedVoice
	if voiceName == "" {
		voiceName = dimStyle.Render("(system default)")
	}
	p := model.ResolvePersonality(s.PersonalityMode)

	fmt.Fprintf(w, "  Personality:  %s %s\n", p.Name, dimStyle.Render("("+p.ID+")"))
	fmt.Fprintf(w, "  Speak:        %t\n", s.Voice.SpeakReplies)
	fmt.Fprintf(w, "  Voice:        %s\n", voiceName)
	fmt.Fprintf(w, "  Rate:         %.1f\n", s.Voice.SpeechRate)
	fmt.Fprintf(w, "  Pitch:        %.1f\n", s.Voice.SpeechPitch)
	fmt.Fprintf(w, "  Volume:       %.1f\n", s.Voice.SpeechVolume)
}

func personalitiesCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "personalities",
		Short: "List the personality modes",
		Args:  cobra.NoArgs,
		Run: func(cmd *cobra.Command, args []string) {
			w := cmd.OutOrStdout()
			for _, p := range model.Personalities() {
				fmt.Fprintf(w, "%-14s %s\n", p.ID, titleStyle.Render(p.Name))
				fmt.Fprintf(w, "%-14s %s\n", "", dimStyle.Render(p.Description))
			}
		},
	}
}

func versionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print version and license",
		Args:  cobra.NoArgs,
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Fprintf(cmd.OutOrStdout(), "jadoo %s (%s)\n", Version, License)
		},
	}
}
