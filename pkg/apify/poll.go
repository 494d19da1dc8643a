package apify

import (
	"context"
	"fmt"
	"time"

	"github.com/rotisserie/eris"
)

const (
	defaultPollInterval    = 3 * time.Second
	defaultMaxPollAttempts = 25
)

// ErrRunTimeout is returned when a run does not finish within the polling
// attempt budget.
var ErrRunTimeout = eris.New("apify: run polling timed out")

// ErrRunFailed is returned when the remote run reports a failed terminal
// status.
var ErrRunFailed = eris.New("apify: run failed")

// PollOption configures polling behavior.
type PollOption func(*pollConfig)

type pollConfig struct {
	interval    time.Duration
	maxAttempts int
}

// WithPollInterval overrides the fixed interval between status checks.
func WithPollInterval(d time.Duration) PollOption {
	return func(c *pollConfig) { c.interval = d }
}

// WithMaxPollAttempts overrides the attempt budget.
func WithMaxPollAttempts(n int) PollOption {
	return func(c *pollConfig) { c.maxAttempts = n }
}

// PollRun polls GetRun at a fixed interval until the run reaches a terminal
// status or the attempt budget is exhausted. Returns ErrRunTimeout on
// exhaustion and ErrRunFailed (wrapped with the remote status) when the run
// terminates unsuccessfully.
func PollRun(ctx context.Context, client Client, runID string, opts ...PollOption) (*Run, error) {
	cfg := pollConfig{
		interval:    defaultPollInterval,
		maxAttempts: defaultMaxPollAttempts,
	}
	for _, opt := range opts {
		opt(&cfg)
	}

	for attempt := 0; attempt < cfg.maxAttempts; attempt++ {
		run, err := client.GetRun(ctx, runID)
		if err != nil {
			return nil, eris.Wrap(err, fmt.Sprintf("apify: poll run %s", runID))
		}

		if run.Finished() {
			if run.Status != StatusSucceeded {
				return nil, eris.Wrap(ErrRunFailed, fmt.Sprintf("run %s status %s", runID, run.Status))
			}
			return run, nil
		}

		select {
		case <-ctx.Done():
			return nil, eris.Wrap(ctx.Err(), fmt.Sprintf("apify: poll run %s cancelled", runID))
		case <-time.After(cfg.interval):
		}
	}

	return nil, eris.Wrap(ErrRunTimeout, fmt.Sprintf("run %s still not finished after %d attempts", runID, cfg.maxAttempts))
}
