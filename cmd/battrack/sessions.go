package main

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"codeberg.org/halden/battrack/internal/config"
	"codeberg.org/halden/battrack/internal/history"
)

func newSessionsCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "sessions",
		Short: "List recorded charge sessions",
		Long:  "Prints the completed charge sessions retained in the history document (the last 2 that reached 90% capacity).",
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := config.Load(cmd.InheritedFlags())
			if err != nil {
				return err
			}
			initLogging(cfg.LogLevel)

			store := history.Load(cfg.DataFile)
			sessions := store.CompletedSessions()
			if len(sessions) == 0 {
				fmt.Fprintln(cmd.OutOrStdout(), "No completed charge sessions recorded.")
				return nil
			}

			for i, session := range sessions {
				end := "-"
				if session.EndTime != nil {
					end = session.EndTime.Format(time.RFC3339)
				}
				fmt.Fprintf(cmd.OutOrStdout(), "%d: %s -> %s (%s)  %.0f%% -> %.0f%%  %d samples\n",
					i+1,
					session.StartTime.Format(time.RFC3339),
					end,
					formatDuration(session.Duration()),
					session.StartCapacity,
					session.EndCapacity,
					len(session.Samples),
				)
			}
			return nil
		},
	}
}

func formatDuration(d time.Duration) string {
	d = d.Round(time.Minute)
	hours := int(d.Hours())
	minutes := int(d.Minutes()) % 60
	if hours > 0 {
		return fmt.Sprintf("%dh %02dm", hours, minutes)
	}
	return fmt.Sprintf("%dm", minutes)
}
