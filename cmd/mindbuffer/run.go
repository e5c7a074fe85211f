package main

import (
	"context"
	"os"

	"github.com/aretw0/mindbuffer"
	"github.com/aretw0/mindbuffer/internal/cli"
	"github.com/aretw0/mindbuffer/internal/presentation/tui"
	"github.com/spf13/cobra"
	"golang.org/x/term"
)

var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Start a five-minute rescue session",
	RunE: func(cmd *cobra.Command, args []string) error {
		stress, _ := cmd.Flags().GetInt("stress")
		headless, _ := cmd.Flags().GetBool("headless")
		if !term.IsTerminal(int(os.Stdin.Fd())) {
			headless = true
		}

		sigCtx := cli.NewSignalContext(cmd.Context())
		defer sigCtx.Cancel()

		coach, _, err := openCoach(cmd)
		if err != nil {
			return err
		}
		defer coach.Close(context.WithoutCancel(sigCtx))

		renderer := tui.NewPlainRenderer()
		if !headless {
			renderer = tui.NewRenderer()
		}

		_, err = cli.RunSession(sigCtx, coach, cli.SessionOptions{
			Input:         os.Stdin,
			Output:        os.Stdout,
			InitialStress: stress,
			Headless:      headless,
			Version:       mindbuffer.Version,
			Renderer:      renderer,
		})
		return cli.HandleExecutionError(err)
	},
}

func init() {
	rootCmd.AddCommand(runCmd)
	runCmd.Flags().Int("stress", 75, "Current stress level, 0 to 100")
	runCmd.Flags().Bool("headless", false, "No banner and no countdown in the prompt")

	rootCmd.RunE = runCmd.RunE
	rootCmd.Flags().AddFlagSet(runCmd.Flags())
}
