package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"exam-seating/internal/cmd"
)

var version = "1.0.0"

func main() {
	rootCmd := &cobra.Command{
		Use:   "exam-seating",
		Short: "Exam room and seat assignment tool",
		Long: `Exam-seating reads an applicant roster workbook, partitions applicants by
program, packs them into exam rooms and assigns seat numbers and exam IDs,
then exports room lists and publishes seat lookups.`,
		Version: version,
	}

	rootCmd.AddCommand(cmd.NewAssignCmd())
	rootCmd.AddCommand(cmd.NewPlanCmd())

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
