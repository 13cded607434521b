// Package app contains the Cobra command tree for focuspulse.
package app

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/stonebridge-systems/focuspulse/internal/config"
	"github.com/stonebridge-systems/focuspulse/internal/energy"
	"github.com/stonebridge-systems/focuspulse/internal/output"
)

var appVersion = "dev"

// SetVersion sets the application version (called from main with ldflags value).
func SetVersion(v string) {
	appVersion = v
	rootCmd.Version = v
}

var (
	flagNoColor bool
	flagVerbose bool
	flagConfig  string
)

var rootCmd = &cobra.Command{
	Use:   "focuspulse",
	Short: "Gamified focus companion for your learning dashboard",
	Long: `focuspulse turns the activity your dashboard already tracks into a daily
energy score, evolution milestones, skill progress and a year-long focus
calendar. All gamification state lives locally; the backend is only read.

Run 'focuspulse' with no arguments for today's energy summary.`,
	SilenceUsage:  true,
	SilenceErrors: true,
	RunE:          runStatus,
}

// Execute is the entry point called from main.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "error:", err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVar(&flagConfig, "config", "", "Config file path (default: ~/.config/focuspulse/config.yaml)")
	rootCmd.PersistentFlags().BoolVar(&flagNoColor, "no-color", false, "Disable colored output")
	rootCmd.PersistentFlags().BoolVar(&flagVerbose, "verbose", false, "Enable verbose output")
}

// runStatus renders the daily energy dashboard. The backend is polled once;
// a failed fetch just shows the last persisted value.
func runStatus(cmd *cobra.Command, args []string) error {
	env, err := setup()
	if err != nil {
		return err
	}
	defer env.close()

	ctx, cancel := context.WithTimeout(cmd.Context(), 20*time.Second)
	defer cancel()
	env.engine.Tick(ctx)

	snap := env.engine.Current()
	rank := energy.RankOf(snap.XP)
	next, delta := energy.NextRank(snap.XP)

	fmt.Println(output.Section(fmt.Sprintf("Energy — %s", snap.Date)))
	fmt.Printf("\n %s\n", output.EnergyBar(snap.XP, 30))
	fmt.Printf(" Rank:  %s (level %d)\n", output.StyleBold.Render(rank.Title), energy.LevelOf(snap.XP))
	if delta > 0 {
		fmt.Printf(" Next:  %s in %d XP\n", next.Title, delta)
	}
	fmt.Printf(" Week average: %d\n", env.engine.WeekAverage())

	if mode, active := env.engine.RewardState(); active {
		remaining := time.Until(mode.ExpiresAt).Round(time.Minute)
		fmt.Printf(" %s\n", output.StyleReward.Render(fmt.Sprintf("Reward mode active — %s left", remaining)))
	} else if env.engine.RewardEligible() {
		fmt.Printf(" %s\n", output.StyleMuted.Render("Reward mode available (focuspulse reward on)"))
	}
	return nil
}

// setup loads config and wires the store, API client, bridge and engine.
func setup() (*appEnv, error) {
	cfg, err := config.Load(flagConfig)
	if err != nil {
		return nil, fmt.Errorf("loading config: %w", err)
	}
	output.SetNoColor(flagNoColor || !cfg.Output.Color || !output.IsTerminal())

	env, err := buildEnv(cfg)
	if err != nil {
		return nil, err
	}
	return env, nil
}
