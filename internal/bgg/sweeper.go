package bgg

import (
	"time"

	"github.com/go-co-op/gocron"
)

// DefaultSweepInterval is how often expired cache entries are pruned.
const DefaultSweepInterval = time.Hour

// Sweeper prunes a client's cache on a fixed interval.
type Sweeper struct {
	scheduler *gocron.Scheduler
}

// NewSweeper schedules client.CleanExpiredCache every interval. Call Start to run it.
func NewSweeper(client *Client, interval time.Duration) (*Sweeper, error) {
	if interval <= 0 {
		interval = DefaultSweepInterval
	}

	s := gocron.NewScheduler(time.UTC)
	s.SingletonModeAll()
	if _, err := s.Every(interval).Do(client.CleanExpiredCache); err != nil {
		return nil, err
	}
	return &Sweeper{scheduler: s}, nil
}

// Start runs the schedule in the background.
func (s *Sweeper) Start() {
	s.scheduler.StartAsync()
}

// Stop halts the schedule and waits for a running sweep to return.
func (s *Sweeper) Stop() {
	s.scheduler.Stop()
}
