package jobs

import (
	"context"
	"log/slog"
	"time"

	"github.com/go-co-op/gocron"
)

// SetupInBackground schedules the poller. Singleton mode guarantees a slow
// cmus-remote or Discord call never overlaps with the next cycle, so only one
// goroutine ever touches the session at a time.
func SetupInBackground(ctx context.Context, interval time.Duration, poller *Poller) (*gocron.Scheduler, error) {
	s := gocron.NewScheduler(time.UTC)
	s.SingletonModeAll()

	if _, err := s.Every(interval).Do(poller.Run, ctx); err != nil {
		return nil, err
	}

	slog.Info("Jobs scheduled. Scheduler not running yet.", slog.Duration("interval", interval))

	return s, nil
}
