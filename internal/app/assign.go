package app

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"
)

var assignCmd = &cobra.Command{
	Use:   "assign <slot>",
	Short: "Ask the dashboard to assign the next study item to a slot",
	Long: `Broadcast an assignment request over the bridge. The dashboard picks
the next unfinished study item and places it in the given slot (0-based).`,
	Args: cobra.ExactArgs(1),
	RunE: runAssign,
}

func init() {
	rootCmd.AddCommand(assignCmd)
}

func runAssign(cmd *cobra.Command, args []string) error {
	slot, err := strconv.Atoi(args[0])
	if err != nil || slot < 0 {
		return fmt.Errorf("slot must be a non-negative integer, got %q", args[0])
	}

	env, err := setup()
	if err != nil {
		return err
	}
	defer env.close()

	env.bcast.SendAssign(slot)
	env.bcast.Flush()
	fmt.Printf("Requested next item for slot %d.\n", slot)
	return nil
}
