package app

import (
	"context"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/stonebridge-systems/focuspulse/internal/output"
	"github.com/stonebridge-systems/focuspulse/internal/skills"
)

var skillsVerbose bool

var skillsCmd = &cobra.Command{
	Use:   "skills",
	Short: "Show skill-tree progress derived from study plans",
	Long: `Match your study plans against the skill taxonomy and show how far
along each skill is. A subtopic counts as completed only when its best
matching plan has every chapter done and the quiz unlocked.`,
	RunE: runSkills,
}

func init() {
	skillsCmd.Flags().BoolVar(&skillsVerbose, "subtopics", false, "Show per-subtopic detail under each skill")
	rootCmd.AddCommand(skillsCmd)
}

func runSkills(cmd *cobra.Command, args []string) error {
	env, err := setup()
	if err != nil {
		return err
	}
	defer env.close()

	ctx, cancel := context.WithTimeout(context.Background(), 20*time.Second)
	defer cancel()

	plans, err := env.client.StudyPlans(ctx)
	if err != nil {
		return fmt.Errorf("fetching study plans: %w", err)
	}

	taxonomy := skills.Taxonomy()
	progress := skills.ComputeSkillProgress(plans, taxonomy)

	fmt.Println(output.Section("Skill Tree"))

	table := output.NewTable("Skill", "Tier", "State", "Progress", "Subtopics")
	for _, sk := range taxonomy {
		sp := progress[sk.ID]
		table.Add(
			sk.Name,
			fmt.Sprintf("%d", sk.Tier),
			renderState(sp.State),
			fmt.Sprintf("%d%%", sp.CompletionPct),
			fmt.Sprintf("%d/%d done", sp.CompletedCount, sp.TotalCount),
		)
	}
	table.Print()

	if skillsVerbose {
		for _, sk := range taxonomy {
			sp := progress[sk.ID]
			fmt.Printf("\n%s\n", output.StyleBold.Render(sk.Name))
			for _, sub := range sp.Subtopics {
				marker := output.StyleMuted.Render("·")
				detail := "no matching plan"
				switch {
				case sub.Completed:
					marker = output.StyleSuccess.Render("✓")
					detail = sub.MatchedPlanTitle
				case sub.InProgress:
					marker = output.StyleWarning.Render("◐")
					detail = fmt.Sprintf("%s (%d%%)", sub.MatchedPlanTitle, sub.MatchedPlanPct)
				case sub.HasMatch:
					marker = output.StyleMuted.Render("○")
					detail = fmt.Sprintf("%s (not started)", sub.MatchedPlanTitle)
				}
				fmt.Printf("  %s %s — %s\n", marker, sub.Name, detail)
			}
		}
	}
	return nil
}

// renderState colors a skill state for the table.
func renderState(s skills.SkillState) string {
	switch s {
	case skills.StateCompleted:
		return output.StyleSuccess.Render("completed")
	case skills.StateInProgress:
		return output.StyleWarning.Render("in progress")
	default:
		return output.StyleMuted.Render("not started")
	}
}
