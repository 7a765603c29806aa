package cmd

import (
	"fmt"
	"os"
	"sort"

	"github.com/spf13/cobra"

	"exam-seating/internal/roomplan"
)

// NewPlanCmd creates the plan command group
func NewPlanCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "plan",
		Short: "Inspect room plan files",
	}
	cmd.AddCommand(newPlanValidateCmd())
	return cmd
}

func newPlanValidateCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "validate <plan.json>",
		Short: "Validate a room plan file",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			data, err := os.ReadFile(args[0])
			if err != nil {
				return err
			}
			plan, err := roomplan.Parse(data)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%s: ok, %d program(s)\n", args[0], len(plan.Programs))
			ids := make([]string, 0, len(plan.Programs))
			for id := range plan.Programs {
				ids = append(ids, id)
			}
			sort.Strings(ids)
			for _, id := range ids {
				program := plan.Programs[id]
				fmt.Fprintf(cmd.OutOrStdout(), "  %s: %d room(s), capacity %d\n",
					id, len(program.Rooms), program.TotalCapacity())
			}
			return nil
		},
	}
}
