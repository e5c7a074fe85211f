package main

import (
	"context"
	"fmt"
	"os"

	"github.com/aretw0/mindbuffer/internal/presentation/tui"
	"github.com/spf13/cobra"
	"golang.org/x/term"
)

var historyCmd = &cobra.Command{
	Use:   "history",
	Short: "Show archived sessions",
	RunE: func(cmd *cobra.Command, args []string) error {
		coach, _, err := openCoach(cmd)
		if err != nil {
			return err
		}
		defer coach.Close(context.WithoutCancel(cmd.Context()))

		sessions, err := coach.Archive.List(cmd.Context())
		if err != nil {
			return err
		}

		render := tui.NewPlainRenderer()
		if term.IsTerminal(int(os.Stdout.Fd())) {
			render = tui.NewRenderer()
		}
		out, err := render(tui.HistoryMarkdown(sessions))
		if err != nil {
			return err
		}
		fmt.Print(out)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(historyCmd)
}
