package main

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/spf13/cobra"
	"github.com/vivekalabs/viveka/internal/logging"
)

var rootCmd = &cobra.Command{
	Use:   "viveka",
	Short: "Viveka is a rule-based loan advisory assistant",
	Long: `Viveka runs the conversational loan advisor behind the Viveka NBFC site:
intent classification, EMI quotes, document collection and sanction letters,
exposed over a terminal chat, an HTTP API or MCP.`,
}

// Execute adds all child commands to the root command and sets flags appropriately.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Println(err)
		os.Exit(1)
	}
}

func init() {
	// Persistent flags (available to all commands)
	rootCmd.PersistentFlags().Bool("debug", false, "Enable debug logging on stderr")
}

// commandLogger builds the logger all commands share. Quiet by default so
// stdout stays clean for the conversation itself.
func commandLogger(cmd *cobra.Command) *slog.Logger {
	debug, _ := cmd.Flags().GetBool("debug")
	if debug {
		return logging.New(slog.LevelDebug)
	}
	return logging.NewNop()
}
