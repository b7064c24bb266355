package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/marcus-crane/cmuscord/cmus"
	"github.com/marcus-crane/cmuscord/config"
	"github.com/marcus-crane/cmuscord/discord"
	"github.com/marcus-crane/cmuscord/events"
	"github.com/marcus-crane/cmuscord/jobs"
	"github.com/marcus-crane/cmuscord/presence"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		slog.Error("Failed to load config", slog.String("stack", err.Error()))
		os.Exit(1)
	}

	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
		Level: cfg.GetLogLevel(),
	}))
	slog.SetDefault(logger)

	client, err := discord.NewClient(cfg.Discord.ClientID)
	if err != nil {
		slog.Error("Failed to create Discord client", slog.String("stack", err.Error()))
		os.Exit(1)
	}

	session := presence.NewSession(client)

	if cfg.Events.Addr != "" {
		mirror := events.NewMirror()
		session.OnChange = mirror.Publish
		go func() {
			slog.Info("Presence events available", slog.String("addr", cfg.Events.Addr))
			err := http.ListenAndServe(cfg.Events.Addr, mirror.Handler(cfg.GetAllowedOrigins()))
			if err != nil && !errors.Is(err, http.ErrServerClosed) {
				slog.Error("Event server stopped", slog.String("stack", err.Error()))
			}
		}()
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	poller := jobs.NewPoller(cmus.NewProbe(cfg.Cmus.RemotePath), session)
	scheduler, err := jobs.SetupInBackground(ctx, cfg.GetPollInterval(), poller)
	if err != nil {
		slog.Error("Failed to schedule jobs", slog.String("stack", err.Error()))
		os.Exit(1)
	}

	scheduler.StartAsync()
	slog.Info("cmuscord is running", slog.String("client_id", cfg.Discord.ClientID))

	<-ctx.Done()
	slog.Info("Gracefully shutting down...")
	scheduler.Stop()

	if err := session.Shutdown(); err != nil {
		slog.Warn("Failed to clear presence on shutdown", slog.String("stack", err.Error()))
	}

	slog.Info("cmuscord has successfully shut down.")
}
