package main

import (
	"fmt"
	"strings"

	"github.com/aretw0/mindbuffer"
	"github.com/spf13/cobra"
)

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the version number of mindbuffer",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Printf("mindbuffer version %s\n", strings.TrimSpace(mindbuffer.Version))
	},
}

func init() {
	rootCmd.AddCommand(versionCmd)
}
