package monitor

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/perronapp/perron/internal/api/journey"
	"github.com/perronapp/perron/internal/plan"
)

// TripSource fetches the raw journey tree for a pair of places. Satisfied
// by planner.Planner.
type TripSource interface {
	Trips(ctx context.Context, from, to string) (*journey.TripResponse, error)
}

// Notifier is the subset of notification sends the monitor uses.
type Notifier interface {
	SendJourneyDelay(service, from, to string, delayMinutes int, expectedTime, platform string) error
}

// JourneyMonitor polls one journey and pushes a notification when its next
// departure slips behind schedule. Delays are deduplicated in five-minute
// buckets, so a growing delay re-notifies while a stable one stays quiet.
type JourneyMonitor struct {
	trips     TripSource
	notifier  Notifier
	logger    *logrus.Logger
	from      string
	to        string
	threshold int

	mu             sync.Mutex
	notifiedBucket int
}

func NewJourneyMonitor(trips TripSource, notifier Notifier, logger *logrus.Logger, from, to string, thresholdMinutes int) *JourneyMonitor {
	if thresholdMinutes < 1 {
		thresholdMinutes = 1
	}
	return &JourneyMonitor{
		trips:     trips,
		notifier:  notifier,
		logger:    logger,
		from:      from,
		to:        to,
		threshold: thresholdMinutes,
	}
}

// Check fetches the journey once and notifies when the delay warrants it.
func (m *JourneyMonitor) Check(ctx context.Context) error {
	resp, err := m.trips.Trips(ctx, m.from, m.to)
	if err != nil {
		return fmt.Errorf("fetching journey: %w", err)
	}

	itinerary := plan.BuildItinerary(resp)
	if len(itinerary) == 0 {
		m.logger.WithFields(logrus.Fields{
			"from": m.from,
			"to":   m.to,
		}).Warn("no connection found")
		return nil
	}

	row := plan.Flatten(itinerary[0])
	delay := plan.DepartureDelay(plan.FirstDeparture(resp))

	if delay < m.threshold {
		m.logger.WithFields(logrus.Fields{
			"service":   row.Service,
			"departure": row.Dep,
			"platform":  row.FromQuay,
		}).Info("journey running on time")

		// A cleared delay may grow again later; start over.
		m.mu.Lock()
		m.notifiedBucket = 0
		m.mu.Unlock()
		return nil
	}

	bucket := delay / 5 * 5
	m.mu.Lock()
	shouldNotify := bucket > m.notifiedBucket
	if shouldNotify {
		m.notifiedBucket = bucket
	}
	m.mu.Unlock()

	if !shouldNotify {
		m.logger.WithFields(logrus.Fields{
			"service": row.Service,
			"delay":   delay,
			"bucket":  bucket,
		}).Debug("delay already notified for this bucket")
		return nil
	}

	m.logger.WithFields(logrus.Fields{
		"service":       row.Service,
		"delay_minutes": delay,
		"expected":      row.Dep,
		"platform":      row.FromQuay,
	}).Warn("journey delayed")

	return m.notifier.SendJourneyDelay(row.Service, m.from, m.to, delay, row.Dep, row.FromQuay)
}

// Watch checks immediately and then on every tick until the context is
// cancelled.
func (m *JourneyMonitor) Watch(ctx context.Context, interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	if err := m.Check(ctx); err != nil {
		m.logger.WithField("error", err).Error("journey check failed")
	}

	for {
		select {
		case <-ctx.Done():
			m.logger.Info("watch stopped: context cancelled")
			return
		case <-ticker.C:
			if err := m.Check(ctx); err != nil {
				m.logger.WithField("error", err).Error("journey check failed")
			}
		}
	}
}
