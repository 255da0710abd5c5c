package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"
	"github.com/vivekalabs/viveka"
)

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the version number of viveka",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Printf("viveka version %s\n", strings.TrimSpace(viveka.Version))
	},
}

func init() {
	rootCmd.AddCommand(versionCmd)
}
