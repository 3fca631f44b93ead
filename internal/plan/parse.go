package plan

import (
	"strings"
	"time"

	"github.com/perronapp/perron/internal/api/journey"
)

// rideLegType is the upstream tag for legs travelled aboard a vehicle. Any
// ride leg counts, regardless of vehicle mode: an older rule additionally
// required mode "TRAIN" and silently dropped bus and tram legs from mixed
// itineraries.
const rideLegType = "PTRideLeg"

// DefaultLimit is the number of journey options returned when the caller
// does not ask for a specific amount.
const DefaultLimit = 6

func isRideLeg(leg *journey.Leg) bool {
	return strings.EqualFold(leg.Type, rideLegType)
}

// RideLegs returns the trip's vehicle legs in travel order.
func RideLegs(trip *journey.Trip) []*journey.Leg {
	var legs []*journey.Leg
	for i := range trip.Legs {
		if isRideLeg(&trip.Legs[i]) {
			legs = append(legs, &trip.Legs[i])
		}
	}
	return legs
}

// legOption normalizes one ride leg into a TripOption.
func legOption(leg *journey.Leg) TripOption {
	stopPoints, product := legRun(leg)
	board := BoardingStop(stopPoints, product)
	alight := AlightingStop(stopPoints, product)

	option := TripOption{
		Service:   serviceLabel(product),
		Operator:  operatorName(product),
		Direction: directionName(leg),
	}
	if board != nil {
		option.Departure = pickTime(board.Departure)
		option.FromQuay = pickQuay(board.Departure)
		option.FromName = placeName(board.Place)
	}
	if alight != nil {
		option.Arrival = pickTime(alight.Arrival)
		option.ToQuay = pickQuay(alight.Arrival)
		option.ToName = placeName(alight.Place)
	}
	return option
}

// legRun extracts the stop sequence and the first service product of a ride
// leg, either of which may be missing.
func legRun(leg *journey.Leg) ([]journey.StopPoint, *journey.ServiceProduct) {
	sj := leg.ServiceJourney
	if sj == nil {
		return nil, nil
	}
	if len(sj.ServiceProducts) == 0 {
		return sj.StopPoints, nil
	}
	return sj.StopPoints, &sj.ServiceProducts[0]
}

func placeName(p *journey.Place) *string {
	if p == nil {
		return nil
	}
	return nonBlank(p.Name)
}

// BuildItinerary returns the first journey that has at least one vehicle
// leg, one TripOption per vehicle leg with transfer order preserved. An
// empty itinerary means no connection was found.
func BuildItinerary(resp *journey.TripResponse) Itinerary {
	if resp == nil {
		return nil
	}
	for i := range resp.Trips {
		legs := RideLegs(&resp.Trips[i])
		if len(legs) == 0 {
			continue
		}
		itinerary := make(Itinerary, 0, len(legs))
		for _, leg := range legs {
			itinerary = append(itinerary, legOption(leg))
		}
		return itinerary
	}
	return nil
}

// BuildOptions returns up to limit one-row journey summaries. Each row
// joins the first vehicle leg's boarding side with the last vehicle leg's
// alighting side, collapsing intermediate transfers. Journeys without a
// vehicle leg are skipped and do not use up a slot. A limit below 1 falls
// back to DefaultLimit.
func BuildOptions(resp *journey.TripResponse, limit int) OptionsList {
	if limit < 1 {
		limit = DefaultLimit
	}
	if resp == nil {
		return nil
	}

	var options OptionsList
	for i := range resp.Trips {
		if len(options) >= limit {
			break
		}
		legs := RideLegs(&resp.Trips[i])
		if len(legs) == 0 {
			continue
		}
		first := legOption(legs[0])
		last := legOption(legs[len(legs)-1])
		options = append(options, TripOption{
			Departure: first.Departure,
			Arrival:   last.Arrival,
			Service:   first.Service,
			Operator:  first.Operator,
			FromQuay:  first.FromQuay,
			ToQuay:    last.ToQuay,
			Direction: first.Direction,
			FromName:  first.FromName,
			ToName:    last.ToName,
		})
	}
	return options
}

// FirstDeparture returns the departure record of the boarding stop point of
// the first vehicle leg of the first usable journey, or nil when there is
// none. Monitoring uses it to compare live against aimed times.
func FirstDeparture(resp *journey.TripResponse) *journey.StopCall {
	if resp == nil {
		return nil
	}
	for i := range resp.Trips {
		legs := RideLegs(&resp.Trips[i])
		if len(legs) == 0 {
			continue
		}
		stopPoints, product := legRun(legs[0])
		if board := BoardingStop(stopPoints, product); board != nil {
			return board.Departure
		}
		return nil
	}
	return nil
}

// DepartureDelay returns the whole minutes the live departure lags behind
// the aimed one. Zero when either timestamp is missing, unparseable, or the
// service runs early.
func DepartureDelay(call *journey.StopCall) int {
	if call == nil || call.TimeRt == nil || call.TimeAimed == nil {
		return 0
	}
	live, err := time.Parse(time.RFC3339, *call.TimeRt)
	if err != nil {
		return 0
	}
	aimed, err := time.Parse(time.RFC3339, *call.TimeAimed)
	if err != nil {
		return 0
	}
	diff := live.Sub(aimed)
	if diff < 0 {
		return 0
	}
	return int(diff.Minutes())
}
