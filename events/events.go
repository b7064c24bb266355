package events

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"sync"

	"github.com/cespare/xxhash/v2"
	"github.com/r3labs/sse/v2"
	"github.com/rs/cors"

	"github.com/marcus-crane/cmuscord/models"
	"github.com/marcus-crane/cmuscord/shared"
)

type presenceEvent struct {
	Active   bool             `json:"active"`
	Activity *models.Activity `json:"activity,omitempty"`
}

// Mirror republishes whatever is being broadcast to Discord as server sent
// events so other things (a website widget, a status bar) can follow along.
type Mirror struct {
	Server *sse.Server
	last   uint64
	m      sync.Mutex
}

func NewMirror() *Mirror {
	server := sse.New()
	server.AutoReplay = false
	server.CreateStream(shared.EVENT_STREAM_PRESENCE)
	return &Mirror{Server: server}
}

// Publish only emits when the payload differs from the previous one
func (mi *Mirror) Publish(activity models.Activity, active bool) {
	event := presenceEvent{Active: active}
	if active {
		event.Activity = &activity
	}
	data, err := json.Marshal(event)
	if err != nil {
		slog.Error("Failed to encode presence event", slog.String("stack", err.Error()))
		return
	}

	mi.m.Lock()
	defer mi.m.Unlock()
	sum := xxhash.Sum64(data)
	if sum == mi.last {
		return
	}
	mi.last = sum
	mi.Server.Publish(shared.EVENT_STREAM_PRESENCE, &sse.Event{Data: data})
}

func (mi *Mirror) Handler(allowedOrigins []string) http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("/events", mi.Server.ServeHTTP)

	c := cors.New(cors.Options{
		AllowedOrigins: allowedOrigins,
		AllowedMethods: []string{"GET"},
		AllowedHeaders: []string{"Origin, Content-Type, Accept"},
	})

	return c.Handler(mux)
}
