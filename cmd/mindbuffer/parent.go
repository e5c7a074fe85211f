package main

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/spf13/cobra"
)

var journalCmd = &cobra.Command{
	Use:   "journal",
	Short: "Write or read the daily sentence journal",
}

var journalAddCmd = &cobra.Command{
	Use:   "add <sentence>",
	Short: "Write today's sentence",
	Args:  cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		coach, _, err := openCoach(cmd)
		if err != nil {
			return err
		}
		defer coach.Close(context.WithoutCancel(cmd.Context()))

		entry, err := coach.WriteJournal(cmd.Context(), strings.Join(args, " "))
		if err != nil {
			return err
		}
		fmt.Printf("Saved (%s)\n", entry.Emotion)
		return nil
	},
}

var journalListCmd = &cobra.Command{
	Use:   "list",
	Short: "List journal entries",
	RunE: func(cmd *cobra.Command, args []string) error {
		day, _ := cmd.Flags().GetString("day")

		coach, _, err := openCoach(cmd)
		if err != nil {
			return err
		}
		defer coach.Close(context.WithoutCancel(cmd.Context()))

		entries, err := coach.Journal.Entries(cmd.Context())
		if day != "" {
			t, perr := time.ParseInLocation(time.DateOnly, day, time.Local)
			if perr != nil {
				return fmt.Errorf("invalid --day: %w", perr)
			}
			entries, err = coach.Journal.OnDay(cmd.Context(), t)
		}
		if err != nil {
			return err
		}
		for _, e := range entries {
			fmt.Printf("%s  [%s]  %s\n", time.UnixMilli(e.Timestamp).Format("2006-01-02 15:04"), e.Emotion, e.Text)
		}
		return nil
	},
}

var statsCmd = &cobra.Command{
	Use:   "stats",
	Short: "Show the parent zone statistics",
	RunE: func(cmd *cobra.Command, args []string) error {
		calm, _ := cmd.Flags().GetBool("calm")
		avoided, _ := cmd.Flags().GetBool("avoided")

		coach, _, err := openCoach(cmd)
		if err != nil {
			return err
		}
		defer coach.Close(context.WithoutCancel(cmd.Context()))

		if calm {
			if _, err := coach.FinishCalmPod(cmd.Context()); err != nil {
				return err
			}
		}
		if avoided {
			if _, err := coach.AvoidConflict(cmd.Context()); err != nil {
				return err
			}
		}
		stats, err := coach.Stats.Load(cmd.Context())
		if err != nil {
			return err
		}
		fmt.Printf("Calm pods:          %d\n", stats.CalmCount)
		fmt.Printf("Minutes avoided:    %d\n", stats.AvoidedMinutes)
		fmt.Printf("Conflicts avoided:  %d\n", stats.ConflictsAvoided)
		return nil
	},
}

func init() {
	journalCmd.AddCommand(journalAddCmd, journalListCmd)
	journalListCmd.Flags().String("day", "", "Only entries of this day (YYYY-MM-DD)")
	statsCmd.Flags().Bool("calm", false, "Record a finished calm pod first")
	statsCmd.Flags().Bool("avoided", false, "Record an avoided conflict first")
	rootCmd.AddCommand(journalCmd, statsCmd)
}
