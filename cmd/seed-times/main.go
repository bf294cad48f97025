package main

import (
	"context"
	"flag"
	"os"
	"runtime"
	"time"

	"github.com/MohamedMohamady125/projectusa/internal/loadgen"
	"github.com/MohamedMohamady125/projectusa/pkg/logger"
)

// Default configuration constants.
const (
	defaultNumTimes    = 10000
	defaultNumSwimmers = 500
	defaultTopN        = 50
	defaultWorkers     = 2 // multiplier for runtime.NumCPU()
	defaultTimeout     = 30 * time.Second
	defaultRunTimeout  = 10 * time.Minute
)

func main() {
	var (
		baseURL  = flag.String("url", "http://localhost:9080", "Base URL of the service")
		numTimes = flag.Int("times", defaultNumTimes, "Number of swim times to generate and submit")
		swimmers = flag.Int("swimmers", defaultNumSwimmers, "Number of distinct swimmer IDs")
		topN     = flag.Int("top", defaultTopN, "Number of entries to fetch per ranking board")
		workers  = flag.Int("workers", runtime.NumCPU()*defaultWorkers, "Number of concurrent workers")
		timeout  = flag.Duration("timeout", defaultTimeout, "HTTP request timeout")
		verbose  = flag.Bool("verbose", false, "Enable verbose logging")
	)
	flag.Parse()

	if err := logger.Init(); err != nil {
		os.Stderr.WriteString("failed to initialize logging: " + err.Error() + "\n")
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), defaultRunTimeout)
	defer cancel()

	cfg := &loadgen.Config{
		BaseURL:     *baseURL,
		NumTimes:    *numTimes,
		NumSwimmers: *swimmers,
		TopN:        *topN,
		Workers:     *workers,
		Timeout:     *timeout,
		Verbose:     *verbose,
	}

	if _, err := loadgen.Run(ctx, cfg); err != nil {
		logger.Get().Error(ctx, "load run failed", logger.Error(err))
		os.Exit(1)
	}
}
