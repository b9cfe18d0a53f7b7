package main

import (
	"fmt"
	"math"
	"os"
	"path/filepath"
	"strconv"

	"github.com/ironsheep/image-average-mcp/internal/average"
)

type config struct {
	debug    bool
	storeDir string
	gamma    float64
}

// loadConfig reads settings from the environment. A bad gamma is rejected
// here so the server never starts with an unusable default.
func loadConfig(getenv func(string) string) (*config, error) {
	cfg := &config{
		debug:    getenv("IMAGE_AVERAGE_LOG_LEVEL") == "debug",
		storeDir: getenv("IMAGE_AVERAGE_STORE_DIR"),
		gamma:    average.DefaultGamma,
	}

	if cfg.storeDir == "" {
		cfg.storeDir = filepath.Join(os.TempDir(), "image-average")
	}

	if v := getenv("IMAGE_AVERAGE_GAMMA"); v != "" {
		g, err := strconv.ParseFloat(v, 64)
		if err != nil {
			return nil, fmt.Errorf("IMAGE_AVERAGE_GAMMA: %w", err)
		}
		if !(g > 0) || math.IsInf(g, 0) {
			return nil, fmt.Errorf("IMAGE_AVERAGE_GAMMA: %w: must be a finite positive number, got %s",
				average.ErrInvalidConfiguration, v)
		}
		cfg.gamma = g
	}

	return cfg, nil
}
