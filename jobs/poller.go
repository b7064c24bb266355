package jobs

import (
	"context"
	"log/slog"

	"github.com/marcus-crane/cmuscord/models"
	"github.com/marcus-crane/cmuscord/presence"
)

// Source is anything that can tell us what's currently loaded
type Source interface {
	Snapshot(ctx context.Context) *models.Snapshot
}

// Poller runs one cycle of probe -> parse -> presence update per tick
type Poller struct {
	source    Source
	session   *presence.Session
	lastTrack string
}

func NewPoller(source Source, session *presence.Session) *Poller {
	return &Poller{
		source:  source,
		session: session,
	}
}

func (p *Poller) Tick(ctx context.Context) error {
	snapshot := p.source.Snapshot(ctx)

	if snapshot == nil {
		if p.lastTrack != "" {
			slog.Info("Playback stopped")
		}
		p.lastTrack = ""
	} else if trackID := snapshot.TrackID(); trackID != p.lastTrack {
		slog.Info("Now playing",
			slog.String("track_id", trackID),
			slog.String("title", snapshot.DisplayTitle()),
			slog.String("artist", snapshot.DisplayArtist()),
			slog.Int("duration", snapshot.Duration),
		)
		p.lastTrack = trackID
	}

	return p.session.Update(snapshot)
}

// Run is the scheduled task. Errors are logged rather than returned since
// there's nobody to return them to.
func (p *Poller) Run(ctx context.Context) {
	if err := p.Tick(ctx); err != nil {
		slog.Error("Presence update failed", slog.String("stack", err.Error()))
	}
}
