package cli

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/tessro/onair/internal/core"
	"github.com/tessro/onair/internal/schedule"
)

var scheduleCmd = &cobra.Command{
	Use:     "schedule",
	Aliases: []string{"programs"},
	Short:   "Show the program schedule",
	Long:    `List the daily programs, marking the one on air now.`,
	Args:    cobra.NoArgs,
	RunE:    runSchedule,
}

func init() {
	rootCmd.AddCommand(scheduleCmd)
}

type scheduleResult struct {
	Now      time.Time      `json:"now"`
	OnAir    core.Program   `json:"on_air"`
	Next     core.Program   `json:"next"`
	Programs []core.Program `json:"programs"`
}

func runSchedule(cmd *cobra.Command, args []string) error {
	status := schedule.Evaluate(cfg.Programs, time.Now())
	out := cmd.OutOrStdout()

	if JSONOutput() {
		return writeJSON(out, scheduleResult{
			Now:      status.Now,
			OnAir:    status.Program,
			Next:     status.Next,
			Programs: cfg.Programs,
		})
	}

	table := NewTable(out, "", "TIME", "PROGRAM", "ANNOUNCER")
	for _, p := range cfg.Programs {
		table.Row(StatusIcon(p.ID == status.Program.ID), p.Slot(), p.Name, p.Announcer)
	}
	table.Flush()

	fmt.Fprintf(out, "\n%s  On air: %s", status.Clock(), status.Program)
	if status.Next.ID != status.Program.ID {
		fmt.Fprintf(out, "  ·  Next: %s at %s", status.Next.Name, status.Next.Slot())
	}
	fmt.Fprintln(out)
	return nil
}
