package discord

import (
	"errors"
	"fmt"
	"net"
	"os"
	"path/filepath"
	"time"
)

var ErrNoSocket = errors.New("no discord ipc socket found")

// Sandboxed installs put their socket one level down
var sandboxDirs = []string{
	"",
	"app/com.discordapp.Discord",
	"snap.discord",
}

func runtimeDir() string {
	for _, key := range []string{"XDG_RUNTIME_DIR", "TMPDIR", "TMP", "TEMP"} {
		if dir := os.Getenv(key); dir != "" {
			return dir
		}
	}
	return "/tmp"
}

// socketPaths lists every location a running client may be listening on, in
// the order they should be tried.
func socketPaths() []string {
	base := runtimeDir()
	paths := make([]string, 0, len(sandboxDirs)*10)
	for _, sub := range sandboxDirs {
		for i := 0; i < 10; i++ {
			paths = append(paths, filepath.Join(base, sub, fmt.Sprintf("discord-ipc-%d", i)))
		}
	}
	return paths
}

func dialSocket(timeout time.Duration) (net.Conn, error) {
	for _, path := range socketPaths() {
		conn, err := net.DialTimeout("unix", path, timeout)
		if err == nil {
			return conn, nil
		}
	}
	return nil, ErrNoSocket
}
