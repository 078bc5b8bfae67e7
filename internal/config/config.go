// Package config layers a config file, environment variables, and CLI
// flags via spf13/viper, grounded on
// DimaJoyti-go-coffee/cmd/task-cli/commands/root.go's
// viper.BindPFlag/viper.Get* usage.
package config

import (
	"os"
	"strings"

	"github.com/spf13/pflag"
	"github.com/spf13/viper"
)

// Runtime holds every flag the run/bench commands accept.
type Runtime struct {
	Workers int
	// FrameBudget is nil unless --frame-budget was explicitly passed (or
	// set via config file/env var), so an explicit 0 is distinguishable
	// from "flag omitted, run unbounded."
	FrameBudget *uint64
	AutoStamp   bool
	LogLevel    string
	LogFormat   string
	Port        int
	MetricsAddr string
	ImageWidth  int
	ImageHeight int
	TileWorkers int
}

// Load binds flags to viper, layers in FRAMEPIPE_-prefixed environment
// variables and an optional config file, and returns the resolved
// Runtime.
func Load(flags *pflag.FlagSet, cfgFile string) (*Runtime, error) {
	v := viper.New()
	v.SetEnvPrefix("framepipe")
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	v.AutomaticEnv()

	if cfgFile != "" {
		v.SetConfigFile(cfgFile)
		if err := v.ReadInConfig(); err != nil {
			return nil, err
		}
	}

	if err := v.BindPFlags(flags); err != nil {
		return nil, err
	}

	var frameBudget *uint64
	_, envSet := os.LookupEnv("FRAMEPIPE_FRAME_BUDGET")
	if flags.Changed("frame-budget") || v.InConfig("frame-budget") || envSet {
		fb := v.GetUint64("frame-budget")
		frameBudget = &fb
	}

	return &Runtime{
		Workers:     v.GetInt("workers"),
		FrameBudget: frameBudget,
		AutoStamp:   v.GetBool("auto-stamp"),
		LogLevel:    v.GetString("log-level"),
		LogFormat:   v.GetString("log-format"),
		Port:        v.GetInt("port"),
		MetricsAddr: v.GetString("metrics-addr"),
		ImageWidth:  v.GetInt("image-width"),
		ImageHeight: v.GetInt("image-height"),
		TileWorkers: v.GetInt("tile-workers"),
	}, nil
}
