package main

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/alecthomas/kong"
	"github.com/sirupsen/logrus"

	"github.com/perronapp/perron/internal/api/journey"
	"github.com/perronapp/perron/internal/config"
	"github.com/perronapp/perron/internal/disclaimer"
	"github.com/perronapp/perron/internal/monitor"
	"github.com/perronapp/perron/internal/notify"
	"github.com/perronapp/perron/internal/plan"
	"github.com/perronapp/perron/internal/planner"
	"github.com/perronapp/perron/internal/render"
	"github.com/perronapp/perron/internal/server"
)

type app struct {
	cfg         *config.Config
	logger      *logrus.Logger
	planner     *planner.Planner
	disclaimers *disclaimer.Store
}

var CLI struct {
	Config string `help:"Path to config file" default:"config.yaml" type:"path"`

	Plan  PlanCmd  `cmd:"" help:"Plan a journey between two places."`
	Serve ServeCmd `cmd:"" help:"Serve the journey-planning HTTP API."`
	Watch WatchCmd `cmd:"" help:"Watch a journey and push delay notifications."`
}

type PlanCmd struct {
	From  string `arg:"" help:"Origin place name or UIC code."`
	To    string `arg:"" help:"Destination place name or UIC code."`
	Text  bool   `help:"Print a one-sentence answer instead of JSON."`
	Legs  bool   `help:"Print every leg of the first journey instead of summaries."`
	Limit int    `help:"Maximum number of options." default:"6"`
}

func (c *PlanCmd) Run(a *app) error {
	ctx, cancel := context.WithTimeout(context.Background(), time.Minute)
	defer cancel()

	switch {
	case c.Text:
		options, err := a.planner.Options(ctx, c.From, c.To, 1)
		if err != nil {
			return err
		}
		text := render.Sentence(options, c.From, c.To)
		if d := a.disclaimers.Text(a.cfg.Journey.Language); d != "" {
			text += "\n\n" + d
		}
		fmt.Println(text)
		return nil

	case c.Legs:
		itinerary, err := a.planner.Itinerary(ctx, c.From, c.To)
		if err != nil {
			return err
		}
		return json.NewEncoder(os.Stdout).Encode(struct {
			Legs []plan.FlatRow `json:"legs"`
		}{Legs: plan.FlattenAll(itinerary)})

	default:
		options, err := a.planner.Options(ctx, c.From, c.To, c.Limit)
		if err != nil {
			return err
		}
		return json.NewEncoder(os.Stdout).Encode(render.NewPlan(options))
	}
}

type ServeCmd struct{}

func (c *ServeCmd) Run(a *app) error {
	apiKey := os.Getenv("PERRON_API_KEY")
	if apiKey == "" {
		return fmt.Errorf("PERRON_API_KEY environment variable is required")
	}

	srv := server.New(a.planner, a.disclaimers, a.logger, apiKey, a.cfg.Journey.Language, a.cfg.Journey.Limit)
	httpServer := &http.Server{
		Addr:    a.cfg.Server.Listen,
		Handler: srv.Routes(),
	}

	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	go func() {
		<-ctx.Done()
		shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer shutdownCancel()
		if err := httpServer.Shutdown(shutdownCtx); err != nil {
			a.logger.WithField("error", err).Error("server shutdown failed")
		}
	}()

	a.logger.WithField("listen", a.cfg.Server.Listen).Info("starting server")
	if err := httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		return err
	}
	a.logger.Info("server stopped")
	return nil
}

type WatchCmd struct{}

func (c *WatchCmd) Run(a *app) error {
	pushoverToken := os.Getenv("PUSHOVER_TOKEN")
	pushoverUser := os.Getenv("PUSHOVER_USER")
	if pushoverToken == "" || pushoverUser == "" {
		return fmt.Errorf("PUSHOVER_TOKEN and PUSHOVER_USER environment variables are required")
	}
	if a.cfg.Watch.From == "" || a.cfg.Watch.To == "" {
		return fmt.Errorf("watch: from and to must be configured")
	}

	interval, err := a.cfg.Watch.IntervalDuration()
	if err != nil {
		return err
	}

	notifier := notify.NewNotifier(pushoverToken, pushoverUser, a.logger)
	mon := monitor.NewJourneyMonitor(a.planner, notifier, a.logger,
		a.cfg.Watch.From, a.cfg.Watch.To, a.cfg.Watch.DelayThreshold)

	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	a.logger.WithFields(logrus.Fields{
		"journey":  a.cfg.Watch.From + " -> " + a.cfg.Watch.To,
		"interval": interval.String(),
	}).Info("starting watch")

	mon.Watch(ctx, interval)
	a.logger.Info("watch stopped")
	return nil
}

func main() {
	kctx := kong.Parse(&CLI)

	// Setup structured logging with logfmt. Logs go to stderr so the plan
	// command's JSON output on stdout stays machine-readable.
	logger := logrus.New()
	logger.SetOutput(os.Stderr)
	logger.SetLevel(logrus.DebugLevel)
	logger.SetFormatter(&logrus.TextFormatter{
		DisableColors: true,
		FullTimestamp: true,
	})

	cfg, err := config.Load(CLI.Config)
	if err != nil {
		logger.WithField("error", err).Fatal("failed to load config")
	}

	clientID := os.Getenv("JOURNEY_CLIENT_ID")
	clientSecret := os.Getenv("JOURNEY_CLIENT_SECRET")
	if clientID == "" || clientSecret == "" {
		logger.Fatal("JOURNEY_CLIENT_ID and JOURNEY_CLIENT_SECRET environment variables are required")
	}

	client := journey.NewClient(cfg.Journey.BaseURL, cfg.Journey.TokenURL,
		clientID, clientSecret, cfg.Journey.Language)

	a := &app{
		cfg:         cfg,
		logger:      logger,
		planner:     planner.New(client, logger),
		disclaimers: disclaimer.NewStore(cfg.Disclaimers, "en"),
	}

	if err := kctx.Run(a); err != nil {
		logger.WithField("error", err).Fatal("command failed")
	}
}
