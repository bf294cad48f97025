package loadgen

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"sync"
	"sync/atomic"
	"time"

	"github.com/MohamedMohamady125/projectusa/pkg/logger"
)

// Run generates submissions, pushes them through the service and then reads
// back each ranking board it touched.
func Run(ctx context.Context, cfg *Config) (*Stats, error) {
	stats := &Stats{StartTime: time.Now()}
	log := logger.Get().Named("loadgen")

	subs := Generate(cfg, stats)
	log.Info(ctx, "generated submissions",
		logger.Int("count", len(subs)),
		logger.Int("swimmers", cfg.NumSwimmers),
	)

	if err := submit(ctx, cfg, subs, stats); err != nil {
		return stats, err
	}
	if err := verifyBoards(ctx, cfg, subs, stats); err != nil {
		return stats, err
	}

	stats.Duration = time.Since(stats.StartTime)
	log.Info(ctx, "load run complete",
		logger.Int("submitted", int(stats.TimesSubmitted)),
		logger.Int("successful", int(stats.TimesSuccessful)),
		logger.Int("duplicate", int(stats.TimesDuplicate)),
		logger.Int("failed", int(stats.TimesFailed)),
		logger.Int("boardsVerified", stats.BoardsVerified),
		logger.Duration("took", stats.Duration),
	)
	return stats, nil
}

func submit(ctx context.Context, cfg *Config, subs []Submission, stats *Stats) error {
	client := &http.Client{Timeout: cfg.Timeout}
	target := cfg.BaseURL + "/times"
	log := logger.Get().Named("loadgen")

	subChan := make(chan Submission, cfg.Workers*2)
	var wg sync.WaitGroup

	for i := 0; i < cfg.Workers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for sub := range subChan {
				select {
				case <-ctx.Done():
					return
				default:
				}
				atomic.AddInt64(&stats.TimesSubmitted, 1)
				switch postSubmission(ctx, client, target, sub) {
				case outcomeAccepted:
					atomic.AddInt64(&stats.TimesSuccessful, 1)
				case outcomeDuplicate:
					atomic.AddInt64(&stats.TimesDuplicate, 1)
				default:
					atomic.AddInt64(&stats.TimesFailed, 1)
				}
			}
		}()
	}

	for _, sub := range subs {
		select {
		case <-ctx.Done():
			close(subChan)
			wg.Wait()
			return ctx.Err()
		case subChan <- sub:
		}
	}
	close(subChan)
	wg.Wait()

	if cfg.Verbose {
		log.Info(ctx, "submission phase finished",
			logger.Int("successful", int(atomic.LoadInt64(&stats.TimesSuccessful))),
			logger.Int("failed", int(atomic.LoadInt64(&stats.TimesFailed))),
		)
	}
	return nil
}

type outcome int

const (
	outcomeAccepted outcome = iota
	outcomeDuplicate
	outcomeFailed
)

func postSubmission(ctx context.Context, client *http.Client, target string, sub Submission) outcome {
	body, err := json.Marshal(sub)
	if err != nil {
		return outcomeFailed
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, target, bytes.NewReader(body))
	if err != nil {
		return outcomeFailed
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := client.Do(req)
	if err != nil {
		return outcomeFailed
	}
	defer func() { _ = resp.Body.Close() }()
	_, _ = io.Copy(io.Discard, resp.Body)

	switch resp.StatusCode {
	case http.StatusAccepted:
		return outcomeAccepted
	case http.StatusOK:
		return outcomeDuplicate
	default:
		return outcomeFailed
	}
}

// verifyBoards fetches the top of every event board touched by the run.
func verifyBoards(ctx context.Context, cfg *Config, subs []Submission, stats *Stats) error {
	client := &http.Client{Timeout: cfg.Timeout}
	log := logger.Get().Named("loadgen")

	events := make(map[string]struct{})
	for _, sub := range subs {
		events[sub.Event] = struct{}{}
	}

	for event := range events {
		target := fmt.Sprintf("%s/rankings?event=%s&limit=%d",
			cfg.BaseURL, url.QueryEscape(event), cfg.TopN)
		req, err := http.NewRequestWithContext(ctx, http.MethodGet, target, nil)
		if err != nil {
			return err
		}
		resp, err := client.Do(req)
		if err != nil {
			return fmt.Errorf("fetch rankings for %s: %w", event, err)
		}
		data, err := io.ReadAll(resp.Body)
		_ = resp.Body.Close()
		if err != nil {
			return err
		}
		if resp.StatusCode != http.StatusOK {
			return fmt.Errorf("rankings for %s returned %d", event, resp.StatusCode)
		}

		var entries []Entry
		if err := json.Unmarshal(data, &entries); err != nil {
			return fmt.Errorf("decode rankings for %s: %w", event, err)
		}
		for i := 1; i < len(entries); i++ {
			if entries[i].Seconds < entries[i-1].Seconds {
				return fmt.Errorf("board %s out of order at rank %d", event, entries[i].Rank)
			}
		}
		stats.BoardsVerified++
		if cfg.Verbose {
			log.Info(ctx, "board verified",
				logger.String("event", event),
				logger.Int("entries", len(entries)),
			)
		}
	}
	return nil
}
