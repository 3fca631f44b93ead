// Package planner ties place resolution, trip fetching and normalization
// together for the CLI, the HTTP API and the delay monitor.
package planner

import (
	"context"
	"fmt"

	"github.com/sirupsen/logrus"

	"github.com/perronapp/perron/internal/api/journey"
	"github.com/perronapp/perron/internal/plan"
)

type Planner struct {
	client *journey.Client
	logger *logrus.Logger
}

func New(client *journey.Client, logger *logrus.Logger) *Planner {
	return &Planner{client: client, logger: logger}
}

// Options plans up to limit journey summaries between two places given as
// names or UIC codes.
func (p *Planner) Options(ctx context.Context, from, to string, limit int) (plan.OptionsList, error) {
	resp, err := p.fetch(ctx, from, to)
	if err != nil {
		return nil, err
	}
	return plan.BuildOptions(resp, limit), nil
}

// Itinerary plans the first journey including every transfer.
func (p *Planner) Itinerary(ctx context.Context, from, to string) (plan.Itinerary, error) {
	resp, err := p.fetch(ctx, from, to)
	if err != nil {
		return nil, err
	}
	return plan.BuildItinerary(resp), nil
}

// Trips resolves both places and returns the raw response tree. The monitor
// uses this to read live times the normalized shapes do not carry.
func (p *Planner) Trips(ctx context.Context, from, to string) (*journey.TripResponse, error) {
	return p.fetch(ctx, from, to)
}

func (p *Planner) fetch(ctx context.Context, from, to string) (*journey.TripResponse, error) {
	origin, err := p.client.ResolveStopPlace(ctx, from)
	if err != nil {
		return nil, fmt.Errorf("resolving origin: %w", err)
	}
	destination, err := p.client.ResolveStopPlace(ctx, to)
	if err != nil {
		return nil, fmt.Errorf("resolving destination: %w", err)
	}

	p.logger.WithFields(logrus.Fields{
		"origin":      origin,
		"destination": destination,
	}).Debug("fetching trips")

	resp, err := p.client.Trips(ctx, origin, destination)
	if err != nil {
		return nil, fmt.Errorf("fetching trips: %w", err)
	}
	return resp, nil
}
