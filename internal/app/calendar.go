package app

import (
	"context"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/stonebridge-systems/focuspulse/internal/calendar"
	"github.com/stonebridge-systems/focuspulse/internal/output"
)

var calendarCmd = &cobra.Command{
	Use:   "calendar",
	Short: "Show the 52-week focus heatmap",
	Long: `Render a contribution-style heatmap of daily active minutes over the
past 52 weeks. Each cell is a day; shading reflects how much focused time
the day had (none, 1-10m, 11-60m, over an hour).`,
	RunE: runCalendar,
}

func init() {
	rootCmd.AddCommand(calendarCmd)
}

// dayNames labels the heatmap rows, Monday first.
var dayNames = [7]string{"Mon", "Tue", "Wed", "Thu", "Fri", "Sat", "Sun"}

func runCalendar(cmd *cobra.Command, args []string) error {
	env, err := setup()
	if err != nil {
		return err
	}
	defer env.close()

	ctx, cancel := context.WithTimeout(context.Background(), 20*time.Second)
	defer cancel()

	history, err := env.client.ActivityHistory(ctx, 365)
	if err != nil {
		return fmt.Errorf("fetching activity history: %w", err)
	}

	grid := calendar.BuildGrid(history, time.Now())
	stats := calendar.ComputeStats(history)

	fmt.Println(output.Section("Focus Calendar"))
	printMonthRow(grid)
	for row := 0; row < 7; row++ {
		line := fmt.Sprintf("%4s ", dayNames[row])
		for _, week := range grid {
			day := week[row]
			line += output.HeatCell(day.Bucket, day.IsFuture) + " "
		}
		fmt.Println(line)
	}

	fmt.Println()
	fmt.Printf("  %s active days, %s total, longest streak %s\n",
		output.StyleBold.Render(fmt.Sprintf("%d", stats.ActiveDays)),
		output.StyleBold.Render(formatMinutes(stats.TotalMinutes)),
		output.StyleBold.Render(fmt.Sprintf("%d days", stats.LongestStreak)))
	return nil
}

// printMonthRow prints month labels above the columns whose first day
// starts a new month.
func printMonthRow(grid []calendar.Week) {
	line := "     "
	prevMonth := time.Month(0)
	for _, week := range grid {
		d, err := time.Parse("2006-01-02", week[0].Date)
		if err != nil {
			line += "  "
			continue
		}
		if m := d.Month(); m != prevMonth {
			line += d.Format("Jan")[:1] + " "
			prevMonth = m
		} else {
			line += "  "
		}
	}
	fmt.Println(output.StyleMuted.Render(line))
}

// formatMinutes renders a minute count as hours and minutes.
func formatMinutes(m int) string {
	if m < 60 {
		return fmt.Sprintf("%dm", m)
	}
	return fmt.Sprintf("%dh %dm", m/60, m%60)
}
