package monitor

import (
	"context"
	"io"
	"testing"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/perronapp/perron/internal/api/journey"
)

func strp(s string) *string { return &s }
func intp(i int) *int       { return &i }

type fakeTrips struct {
	resp *journey.TripResponse
}

func (f *fakeTrips) Trips(ctx context.Context, from, to string) (*journey.TripResponse, error) {
	return f.resp, nil
}

type delayCall struct {
	service string
	minutes int
}

type fakeNotifier struct {
	delays []delayCall
}

func (f *fakeNotifier) SendJourneyDelay(service, from, to string, delayMinutes int, expectedTime, platform string) error {
	f.delays = append(f.delays, delayCall{service: service, minutes: delayMinutes})
	return nil
}

func respWithDelay(aimed, live string) *journey.TripResponse {
	departure := &journey.StopCall{TimeAimed: strp(aimed)}
	if live != "" {
		departure.TimeRt = strp(live)
	}
	return &journey.TripResponse{Trips: []journey.Trip{{
		Legs: []journey.Leg{{
			Type: "PTRideLeg",
			ServiceJourney: &journey.ServiceJourney{
				StopPoints: []journey.StopPoint{
					{RouteIndex: intp(0), Departure: departure},
					{RouteIndex: intp(1), Arrival: &journey.StopCall{TimeAimed: strp("2025-11-11T08:56:00+01:00")}},
				},
				ServiceProducts: []journey.ServiceProduct{{
					NameFormatted:  strp("IC 1"),
					RouteIndexFrom: intp(0),
					RouteIndexTo:   intp(1),
				}},
			},
		}},
	}}}
}

func newTestMonitor(trips TripSource, notifier Notifier) *JourneyMonitor {
	logger := logrus.New()
	logger.SetOutput(io.Discard)
	return NewJourneyMonitor(trips, notifier, logger, "Bern", "Zuerich HB", 3)
}

func TestCheck(t *testing.T) {
	t.Run("on time sends nothing", func(t *testing.T) {
		notifier := &fakeNotifier{}
		m := newTestMonitor(&fakeTrips{resp: respWithDelay("2025-11-11T08:02:00+01:00", "")}, notifier)

		require.NoError(t, m.Check(context.Background()))
		assert.Empty(t, notifier.delays)
	})

	t.Run("delay above threshold notifies once per bucket", func(t *testing.T) {
		notifier := &fakeNotifier{}
		trips := &fakeTrips{resp: respWithDelay("2025-11-11T08:02:00+01:00", "2025-11-11T08:08:00+01:00")}
		m := newTestMonitor(trips, notifier)

		require.NoError(t, m.Check(context.Background()))
		require.NoError(t, m.Check(context.Background()))

		require.Len(t, notifier.delays, 1)
		assert.Equal(t, delayCall{service: "IC 1", minutes: 6}, notifier.delays[0])
	})

	t.Run("growing delay notifies again", func(t *testing.T) {
		notifier := &fakeNotifier{}
		trips := &fakeTrips{resp: respWithDelay("2025-11-11T08:02:00+01:00", "2025-11-11T08:08:00+01:00")}
		m := newTestMonitor(trips, notifier)

		require.NoError(t, m.Check(context.Background()))
		trips.resp = respWithDelay("2025-11-11T08:02:00+01:00", "2025-11-11T08:14:00+01:00")
		require.NoError(t, m.Check(context.Background()))

		require.Len(t, notifier.delays, 2)
		assert.Equal(t, 12, notifier.delays[1].minutes)
	})

	t.Run("cleared delay resets the bucket", func(t *testing.T) {
		notifier := &fakeNotifier{}
		trips := &fakeTrips{resp: respWithDelay("2025-11-11T08:02:00+01:00", "2025-11-11T08:08:00+01:00")}
		m := newTestMonitor(trips, notifier)

		require.NoError(t, m.Check(context.Background()))
		trips.resp = respWithDelay("2025-11-11T08:02:00+01:00", "")
		require.NoError(t, m.Check(context.Background()))
		trips.resp = respWithDelay("2025-11-11T08:02:00+01:00", "2025-11-11T08:08:00+01:00")
		require.NoError(t, m.Check(context.Background()))

		assert.Len(t, notifier.delays, 2)
	})

	t.Run("no connection sends nothing", func(t *testing.T) {
		notifier := &fakeNotifier{}
		m := newTestMonitor(&fakeTrips{resp: &journey.TripResponse{}}, notifier)

		require.NoError(t, m.Check(context.Background()))
		assert.Empty(t, notifier.delays)
	})
}
