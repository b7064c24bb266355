package cmus

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os/exec"
	"strings"

	"github.com/marcus-crane/cmuscord/models"
	"github.com/marcus-crane/cmuscord/shared"
)

var ErrUnavailable = errors.New("cmus-remote command unavailable")

type runFunc func(ctx context.Context, name string, args ...string) ([]byte, error)

// Probe asks a running cmus instance what it's doing via cmus-remote
type Probe struct {
	Command string
	run     runFunc
}

func NewProbe(command string) *Probe {
	if command == "" {
		command = shared.CMUS_REMOTE_COMMAND
	}
	return &Probe{
		Command: command,
		run:     runCommand,
	}
}

// Query returns the raw status text. Any failure, including cmus not running
// (cmus-remote exits non-zero) or cmus-remote not being installed, is reported
// as no output rather than an error.
func (p *Probe) Query(ctx context.Context) (string, bool) {
	out, err := p.run(ctx, p.Command, shared.CMUS_QUERY_FLAG)
	if err != nil {
		slog.Debug("No status available from cmus",
			slog.String("command", p.Command),
			slog.String("stack", err.Error()),
		)
		return "", false
	}
	return strings.ToValidUTF8(string(out), "\uFFFD"), true
}

// Snapshot queries and parses in one go. Malformed status output is treated
// the same as nothing playing.
func (p *Probe) Snapshot(ctx context.Context) *models.Snapshot {
	text, ok := p.Query(ctx)
	if !ok {
		return nil
	}
	snapshot, err := ParseStatus(text)
	if err != nil {
		slog.Debug("Skipping malformed cmus status", slog.String("stack", err.Error()))
		return nil
	}
	return snapshot
}

// SplitFields breaks status text into lines of whitespace separated fields
func SplitFields(text string) [][]string {
	raw := strings.Split(text, "\n")
	lines := make([][]string, 0, len(raw))
	for _, line := range raw {
		lines = append(lines, strings.Fields(line))
	}
	return lines
}

func runCommand(ctx context.Context, name string, args ...string) ([]byte, error) {
	path, err := exec.LookPath(name)
	if err != nil {
		if errors.Is(err, exec.ErrNotFound) {
			return nil, ErrUnavailable
		}
		return nil, fmt.Errorf("locate %s: %w", name, err)
	}

	out, err := exec.CommandContext(ctx, path, args...).Output()
	if err != nil {
		return nil, fmt.Errorf("%s %s: %w", name, strings.Join(args, " "), err)
	}
	return out, nil
}
