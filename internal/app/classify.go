package app

import (
	"context"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/stonebridge-systems/focuspulse/internal/energy"
	"github.com/stonebridge-systems/focuspulse/internal/output"
)

var classifyCmd = &cobra.Command{
	Use:   "classify <learning|distraction|neutral>",
	Short: "Apply an instant energy adjustment for the current activity",
	Long: `Nudge today's energy immediately based on what you are doing right
now: learning adds points, distraction subtracts. A few seconds later the
engine refetches the backend summary so the authoritative value wins.`,
	Args:      cobra.ExactArgs(1),
	ValidArgs: []string{energy.KindLearning, energy.KindDistraction, energy.KindNeutral},
	RunE:      runClassify,
}

func init() {
	rootCmd.AddCommand(classifyCmd)
}

func runClassify(cmd *cobra.Command, args []string) error {
	kind := args[0]
	switch kind {
	case energy.KindLearning, energy.KindDistraction, energy.KindNeutral:
	default:
		return fmt.Errorf("unknown activity kind %q (want learning, distraction or neutral)", kind)
	}

	env, err := setup()
	if err != nil {
		return err
	}
	defer env.close()

	ctx, cancel := context.WithTimeout(context.Background(), 20*time.Second)
	defer cancel()

	before := env.engine.Current().XP
	env.engine.HandleClassification(ctx, kind)
	after := env.engine.Current().XP

	delta := after - before
	switch {
	case delta > 0:
		fmt.Printf("%s energy %d (%s)\n",
			output.StyleSuccess.Render(fmt.Sprintf("+%d", delta)), after, kind)
	case delta < 0:
		fmt.Printf("%s energy %d (%s)\n",
			output.StyleError.Render(fmt.Sprintf("%d", delta)), after, kind)
	default:
		fmt.Printf("energy unchanged at %d (%s)\n", after, kind)
	}

	// Let the reconcile fetch land before the process exits, otherwise the
	// instant nudge would linger until the next watch tick.
	reconcile := env.engine.ReconcileDelay() + 2*time.Second
	time.Sleep(reconcile)
	fmt.Printf("reconciled: energy %d\n", env.engine.Current().XP)
	return nil
}
