package main

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"framepipe/benchmark"
	"framepipe/internal/config"
	"framepipe/internal/logging"
	"framepipe/pipeline"
	"framepipe/utils"
)

const resultsPath = "./benchmark/results.txt"

var benchCmd = &cobra.Command{
	Use:   "bench",
	Short: "Measure frames/second at several worker counts and chart the speedup",
	RunE:  runBench,
}

func init() {
	benchCmd.Flags().IntSlice("workers-sweep", []int{1, 2, 4, 8}, "worker counts to benchmark")
}

func runBench(cmd *cobra.Command, args []string) error {
	cfg, err := config.Load(cmd.Flags(), cfgFile)
	if err != nil {
		return err
	}
	logger := logging.New(cfg.LogLevel, cfg.LogFormat)
	defer logger.Sync()

	sweep, err := cmd.Flags().GetIntSlice("workers-sweep")
	if err != nil {
		return err
	}

	for _, workers := range sweep {
		fps, err := measureFPS(cfg, workers)
		if err != nil {
			return err
		}
		sample := benchmark.Sample{
			PolicyMix:       "ordered+unordered+parallel",
			Workers:         workers,
			FramesPerSecond: fps,
			Scenario:        fmt.Sprintf("%dx%d", cfg.ImageWidth, cfg.ImageHeight),
		}
		line, err := json.Marshal(sample)
		if err != nil {
			return err
		}
		utils.WriteToFile(resultsPath, string(line)+"\n")
		fmt.Printf("workers=%d fps=%.2f\n", workers, fps)
	}

	dataSets := benchmark.ParseResults(resultsPath)
	best := benchmark.ComputeBestFPS(dataSets, "./benchmark/best.txt")
	speedups := benchmark.ComputeSpeedups(best, "./benchmark/speedups.txt")
	return benchmark.PlotSpeedups(speedups, "./benchmark")
}

// measureFPS runs the demo pipeline for a fixed frame budget at the
// given worker count and returns the measured frames/second.
func measureFPS(cfg *config.Runtime, workers int) (float64, error) {
	const frames = 200

	l := logging.New(cfg.LogLevel, cfg.LogFormat)
	defer l.Sync()

	p := pipeline.New(pipeline.Config{
		Workers:     workers,
		FrameBudget: pipeline.Budget(frames),
		Logger:      l,
	}, nil)

	for _, s := range buildDemoStages(cfg) {
		if err := p.Add(s); err != nil {
			return 0, err
		}
	}

	start := time.Now()
	p.Start()
	elapsed := time.Since(start).Seconds()
	if elapsed <= 0 {
		return 0, nil
	}
	return float64(frames) / elapsed, nil
}
