package main

import (
	"context"
	"fmt"
	"os"

	"github.com/aretw0/mindbuffer/pkg/archive"
	"github.com/spf13/cobra"
)

var exportCmd = &cobra.Command{
	Use:   "export",
	Short: "Export settings and sessions as JSON",
	RunE: func(cmd *cobra.Command, args []string) error {
		secrets, _ := cmd.Flags().GetBool("secrets")
		output, _ := cmd.Flags().GetString("output")

		coach, _, err := openCoach(cmd)
		if err != nil {
			return err
		}
		defer coach.Close(context.WithoutCancel(cmd.Context()))

		data, err := coach.Export(cmd.Context(), archive.WithSecrets(secrets))
		if err != nil {
			return err
		}
		if output == "" || output == "-" {
			fmt.Println(string(data))
			return nil
		}
		if err := os.WriteFile(output, data, 0o600); err != nil {
			return fmt.Errorf("failed to write export: %w", err)
		}
		fmt.Fprintf(os.Stderr, "Exported to %s\n", output)
		return nil
	},
}

var resetCmd = &cobra.Command{
	Use:   "reset",
	Short: "Delete every session, the settings and the parent zone data",
	RunE: func(cmd *cobra.Command, args []string) error {
		if yes, _ := cmd.Flags().GetBool("yes"); !yes {
			return fmt.Errorf("refusing to delete data without --yes")
		}
		coach, _, err := openCoach(cmd)
		if err != nil {
			return err
		}
		defer coach.Close(context.WithoutCancel(cmd.Context()))
		return coach.Reset(cmd.Context())
	},
}

func init() {
	rootCmd.AddCommand(exportCmd, resetCmd)
	exportCmd.Flags().Bool("secrets", false, "Keep credentials in the exported settings")
	exportCmd.Flags().StringP("output", "o", "", "Write to a file instead of stdout")
	resetCmd.Flags().Bool("yes", false, "Confirm deletion")
}
