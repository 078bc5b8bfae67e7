package main

import (
	"fmt"
	"net/http"

	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"framepipe/demo"
	"framepipe/internal/config"
	"framepipe/internal/logging"
	"framepipe/pipeline"
	"framepipe/sink"
	"framepipe/stage"
)

var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Run the demo frame pipeline and stream frames over websocket",
	RunE:  runRun,
}

func runRun(cmd *cobra.Command, args []string) error {
	cfg, err := config.Load(cmd.Flags(), cfgFile)
	if err != nil {
		return err
	}
	logger := logging.New(cfg.LogLevel, cfg.LogFormat)
	defer logger.Sync()

	metricsMux := http.NewServeMux()
	metricsMux.Handle("/metrics", promhttp.Handler())

	hub := sink.NewHub(logger)
	go hub.Run()
	wsMux := http.NewServeMux()
	wsMux.HandleFunc("/ws", hub.ServeWS)

	go func() {
		logger.Info("serving metrics", zap.String("addr", cfg.MetricsAddr))
		if err := http.ListenAndServe(cfg.MetricsAddr, metricsMux); err != nil {
			logger.Error("metrics server exited", zap.Error(err))
		}
	}()

	go func() {
		wsAddr := fmt.Sprintf(":%d", cfg.Port)
		logger.Info("serving stream sink", zap.String("addr", wsAddr))
		if err := http.ListenAndServe(wsAddr, wsMux); err != nil {
			logger.Error("stream sink server exited", zap.Error(err))
		}
	}()

	p := pipeline.New(pipeline.Config{
		Workers:     cfg.Workers,
		FrameBudget: cfg.FrameBudget,
		AutoStamp:   cfg.AutoStamp,
		Logger:      logger,
	}, nil)

	for _, s := range buildDemoStages(cfg) {
		if err := p.Add(s); err != nil {
			return err
		}
	}
	if err := p.Add(sink.New("sink", hub, logger)); err != nil {
		return err
	}

	logger.Info("starting pipeline", zap.Int("workers", cfg.Workers))
	p.Start()
	return nil
}

// buildDemoStages assembles the Module G stages into the declaration
// order the demo pipeline runs them in: a synthetic source, a
// grayscale pass, a sharpen convolution, and a tiled blur exercising
// the work-stealing pool.
func buildDemoStages(cfg *config.Runtime) []stage.Stage {
	return []stage.Stage{
		demo.NewSourceStage("source", "main", cfg.ImageWidth, cfg.ImageHeight),
		demo.NewGrayscaleStage("grayscale", "main"),
		demo.NewConvolveStage("sharpen", "main", demo.Sharpen),
		demo.NewTiledConvolveStage("tiled-blur", "main", []*demo.Kernel{demo.Blur}, cfg.TileWorkers),
	}
}
