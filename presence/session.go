package presence

import (
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/marcus-crane/cmuscord/models"
)

// Channel is the external presence broadcaster (ie; the Discord client)
type Channel interface {
	Connect() error
	SetActivity(activity models.Activity) error
	Close() error
}

type State int

const (
	Disconnected State = iota
	Connected
)

func (s State) String() string {
	switch s {
	case Connected:
		return "connected"
	default:
		return "disconnected"
	}
}

// Session tracks whether we're connected to the presence channel and when the
// current listening session began. sessionStart is set if and only if we are
// connected.
type Session struct {
	// OnChange, if set, is called after every successful push with the
	// activity that was sent, and with active=false whenever the session ends.
	OnChange func(activity models.Activity, active bool)

	channel      Channel
	now          func() time.Time
	connected    bool
	sessionStart *time.Time
	m            sync.Mutex
}

func NewSession(channel Channel) *Session {
	return &Session{
		channel: channel,
		now:     time.Now,
	}
}

// Update advances the session by one polling cycle. A nil snapshot means
// nothing is playing. Connection and push failures only change state, they
// are retried on the next cycle. The only error returned is a failure to
// close the channel after playback stops.
func (s *Session) Update(snapshot *models.Snapshot) error {
	s.m.Lock()
	defer s.m.Unlock()

	if snapshot == nil {
		if !s.connected {
			return nil
		}
		s.drop()
		slog.Info("Nothing playing, closing presence connection")
		if err := s.channel.Close(); err != nil {
			return fmt.Errorf("failed to close presence channel: %w", err)
		}
		return nil
	}

	if !s.connected {
		if err := s.channel.Connect(); err != nil {
			slog.Warn("Failed to connect to presence channel", slog.String("stack", err.Error()))
			return nil
		}
		start := s.now()
		s.connected = true
		s.sessionStart = &start
		slog.Info("Connected to presence channel", slog.Time("session_start", start))
	}

	activity := BuildActivity(snapshot, *s.sessionStart)
	if err := s.channel.SetActivity(activity); err != nil {
		slog.Warn("Failed to update presence",
			slog.String("stack", err.Error()),
			slog.String("details", activity.Details),
		)
		s.drop()
		return nil
	}

	slog.Debug("Updated presence",
		slog.String("details", activity.Details),
		slog.String("state", activity.State),
	)
	if s.OnChange != nil {
		s.OnChange(activity, true)
	}
	return nil
}

// Shutdown clears the presence on the way out if we're still connected
func (s *Session) Shutdown() error {
	s.m.Lock()
	defer s.m.Unlock()

	if !s.connected {
		return nil
	}
	s.drop()
	return s.channel.Close()
}

func (s *Session) drop() {
	s.connected = false
	s.sessionStart = nil
	if s.OnChange != nil {
		s.OnChange(models.Activity{}, false)
	}
}

func (s *Session) Connected() bool {
	s.m.Lock()
	defer s.m.Unlock()
	return s.connected
}

func (s *Session) State() State {
	if s.Connected() {
		return Connected
	}
	return Disconnected
}

// SessionStart returns the anchor used for elapsed time, if connected
func (s *Session) SessionStart() (time.Time, bool) {
	s.m.Lock()
	defer s.m.Unlock()
	if s.sessionStart == nil {
		return time.Time{}, false
	}
	return *s.sessionStart, true
}
