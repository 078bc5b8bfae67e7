// Command framepipe wires the frame-scheduling runtime into a runnable
// binary: a demo pipeline, a Prometheus /metrics endpoint, and a
// websocket stream sink. Command-tree and config-layering structure is
// adapted from DimaJoyti-go-coffee/cmd/task-cli/commands/root.go.
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var cfgFile string

var rootCmd = &cobra.Command{
	Use:   "framepipe",
	Short: "Multi-threaded frame-scheduling pipeline runtime",
	Long: `framepipe drives frames through a declared list of stages, each
wrapped in an Ordered, Unordered, or Parallel executor, and streams the
terminal frame's selected view to connected websocket observers.`,
}

func init() {
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default none)")

	rootCmd.PersistentFlags().Int("workers", 0, "worker goroutine count (0 = GOMAXPROCS)")
	rootCmd.PersistentFlags().Uint64("frame-budget", 0, "frames to process before stopping (omit for unbounded; 0 processes none)")
	rootCmd.PersistentFlags().Bool("auto-stamp", false, "stamp each frame's timestamp from time.Now()")
	rootCmd.PersistentFlags().String("log-level", "info", "debug|info|warn|error")
	rootCmd.PersistentFlags().String("log-format", "console", "console|json")
	rootCmd.PersistentFlags().Int("port", 8080, "stream sink websocket port")
	rootCmd.PersistentFlags().String("metrics-addr", ":9090", "Prometheus /metrics listen address")
	rootCmd.PersistentFlags().Int("image-width", 256, "demo source image width")
	rootCmd.PersistentFlags().Int("image-height", 256, "demo source image height")
	rootCmd.PersistentFlags().Int("tile-workers", 4, "tile-level parallelism inside TiledConvolveStage")

	rootCmd.AddCommand(runCmd)
	rootCmd.AddCommand(benchCmd)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
