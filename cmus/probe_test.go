package cmus

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func fakeProbe(out string, err error) (*Probe, *[]string) {
	var calls []string
	p := NewProbe("")
	p.run = func(_ context.Context, name string, args ...string) ([]byte, error) {
		calls = append(calls, name)
		calls = append(calls, args...)
		return []byte(out), err
	}
	return p, &calls
}

func TestProbe_QueryRunsCmusRemote(t *testing.T) {
	t.Parallel()
	p, calls := fakeProbe("status stopped\n", nil)
	out, ok := p.Query(context.Background())
	assert.True(t, ok)
	assert.Equal(t, "status stopped\n", out)
	assert.Equal(t, []string{"cmus-remote", "-Q"}, *calls)
}

func TestProbe_CustomCommand(t *testing.T) {
	t.Parallel()
	p := NewProbe("/opt/cmus/bin/cmus-remote")
	assert.Equal(t, "/opt/cmus/bin/cmus-remote", p.Command)
}

func TestProbe_FailureMeansNoOutput(t *testing.T) {
	t.Parallel()
	for _, err := range []error{ErrUnavailable, errors.New("exit status 1")} {
		p, _ := fakeProbe("partial", err)
		out, ok := p.Query(context.Background())
		assert.False(t, ok)
		assert.Empty(t, out)
		assert.Nil(t, p.Snapshot(context.Background()))
	}
}

func TestProbe_InvalidUTF8IsReplaced(t *testing.T) {
	t.Parallel()
	p, _ := fakeProbe("file /music/caf\xe9.mp3\nduration 10\nposition 1\ntag title caf\xe9\n", nil)
	snapshot := p.Snapshot(context.Background())
	require.NotNil(t, snapshot)
	assert.Equal(t, "/music/caf\uFFFD.mp3", snapshot.Path)
	assert.Equal(t, "caf\uFFFD", snapshot.DisplayTitle())
}

func TestProbe_MalformedStatusIsSkipped(t *testing.T) {
	t.Parallel()
	p, _ := fakeProbe("file a.mp3\nduration abc\n", nil)
	assert.Nil(t, p.Snapshot(context.Background()))
}

func TestRunCommand_MissingBinary(t *testing.T) {
	t.Parallel()
	_, err := runCommand(context.Background(), "cmus-remote-that-does-not-exist")
	assert.ErrorIs(t, err, ErrUnavailable)
}
