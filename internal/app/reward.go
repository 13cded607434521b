package app

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/stonebridge-systems/focuspulse/internal/output"
)

var rewardMinutes int

var rewardCmd = &cobra.Command{
	Use:   "reward",
	Short: "Manage reward mode",
	Long: `Reward mode unlocks relaxed blocking for a fixed window. It can only
be activated when the 7-day energy average is at or above the configured
threshold. Activation and deactivation are broadcast to the bridge so the
browser extension can react immediately.`,
}

var rewardOnCmd = &cobra.Command{
	Use:   "on",
	Short: "Activate reward mode",
	RunE:  runRewardOn,
}

var rewardOffCmd = &cobra.Command{
	Use:   "off",
	Short: "Deactivate reward mode early",
	RunE:  runRewardOff,
}

var rewardStatusCmd = &cobra.Command{
	Use:   "status",
	Short: "Show reward mode state",
	RunE:  runRewardStatus,
}

func init() {
	rewardOnCmd.Flags().IntVar(&rewardMinutes, "minutes", 0, "Reward window length in minutes (defaults to config)")
	rewardCmd.AddCommand(rewardOnCmd)
	rewardCmd.AddCommand(rewardOffCmd)
	rewardCmd.AddCommand(rewardStatusCmd)
	rootCmd.AddCommand(rewardCmd)
}

func runRewardOn(cmd *cobra.Command, args []string) error {
	env, err := setup()
	if err != nil {
		return err
	}
	defer env.close()

	mode, err := env.engine.ActivateRewardMode(rewardMinutes)
	if err != nil {
		return fmt.Errorf("activating reward mode: %w", err)
	}

	fmt.Println(output.StyleReward.Render(
		fmt.Sprintf("Reward mode active for %dm (until %s)",
			mode.DurationMinutes, mode.ExpiresAt.Local().Format("15:04"))))
	return nil
}

func runRewardOff(cmd *cobra.Command, args []string) error {
	env, err := setup()
	if err != nil {
		return err
	}
	defer env.close()

	if _, active := env.engine.RewardState(); !active {
		fmt.Println(output.StyleMuted.Render("Reward mode is not active."))
		return nil
	}
	if err := env.engine.DeactivateRewardMode(); err != nil {
		return fmt.Errorf("deactivating reward mode: %w", err)
	}
	fmt.Println("Reward mode deactivated.")
	return nil
}

func runRewardStatus(cmd *cobra.Command, args []string) error {
	env, err := setup()
	if err != nil {
		return err
	}
	defer env.close()

	mode, active := env.engine.RewardState()
	if active {
		remaining := time.Until(mode.ExpiresAt).Round(time.Minute)
		fmt.Println(output.StyleReward.Render(
			fmt.Sprintf("Reward mode active, %s remaining", remaining)))
		return nil
	}

	avg := env.engine.WeekAverage()
	if env.engine.RewardEligible() {
		fmt.Printf("Reward mode available (week average %d). Run 'focuspulse reward on' to start.\n", avg)
	} else {
		fmt.Printf("Reward mode locked. Week average %d is below the %d threshold.\n",
			avg, env.cfg.RewardThreshold)
	}
	return nil
}
