package plan

import (
	"strings"

	"github.com/perronapp/perron/internal/api/journey"
)

// Stop-use values marking one-sided stops in the upstream schema.
const (
	stopUseAccess = "ACCESS" // boarding only
	stopUseEgress = "EGRESS" // alighting only
)

// BoardingStop resolves which stop point of a vehicle leg the rider boards
// at. The ladder, in order: exact route-index match against the product's
// range start, offset from the first stop point's route index, the ACCESS
// stop-use flag, the forBoarding flag, the first stop point with a departure
// record, the first stop point. Nil means the leg has no stop points at all;
// callers treat that as "skip this leg".
func BoardingStop(stopPoints []journey.StopPoint, product *journey.ServiceProduct) *journey.StopPoint {
	if len(stopPoints) == 0 {
		return nil
	}

	if product != nil && product.RouteIndexFrom != nil {
		if sp := byRouteIndex(stopPoints, *product.RouteIndexFrom); sp != nil {
			return sp
		}
	}

	for i := range stopPoints {
		if hasStopUse(&stopPoints[i], stopUseAccess) {
			return &stopPoints[i]
		}
	}
	for i := range stopPoints {
		if stopPoints[i].ForBoarding != nil && *stopPoints[i].ForBoarding {
			return &stopPoints[i]
		}
	}
	for i := range stopPoints {
		if stopPoints[i].Departure != nil {
			return &stopPoints[i]
		}
	}
	return &stopPoints[0]
}

// AlightingStop mirrors BoardingStop from the other end of the run: exact
// match against the product's range end, offset fallback, then the EGRESS
// and forAlighting flags and the arrival record scanned from the back.
func AlightingStop(stopPoints []journey.StopPoint, product *journey.ServiceProduct) *journey.StopPoint {
	if len(stopPoints) == 0 {
		return nil
	}

	if product != nil && product.RouteIndexTo != nil {
		if sp := byRouteIndex(stopPoints, *product.RouteIndexTo); sp != nil {
			return sp
		}
	}

	for i := len(stopPoints) - 1; i >= 0; i-- {
		if hasStopUse(&stopPoints[i], stopUseEgress) {
			return &stopPoints[i]
		}
	}
	for i := len(stopPoints) - 1; i >= 0; i-- {
		if stopPoints[i].ForAlighting != nil && *stopPoints[i].ForAlighting {
			return &stopPoints[i]
		}
	}
	for i := len(stopPoints) - 1; i >= 0; i-- {
		if stopPoints[i].Arrival != nil {
			return &stopPoints[i]
		}
	}
	return &stopPoints[len(stopPoints)-1]
}

// byRouteIndex finds the stop point at the wanted position of the vehicle's
// full run. Stop points frequently arrive without their own routeIndex, so
// when no exact match exists the position is derived as an offset from the
// first stop point's index.
func byRouteIndex(stopPoints []journey.StopPoint, want int) *journey.StopPoint {
	for i := range stopPoints {
		if stopPoints[i].RouteIndex != nil && *stopPoints[i].RouteIndex == want {
			return &stopPoints[i]
		}
	}
	if first := stopPoints[0].RouteIndex; first != nil {
		if pos := want - *first; pos >= 0 && pos < len(stopPoints) {
			return &stopPoints[pos]
		}
	}
	return nil
}

func hasStopUse(sp *journey.StopPoint, use string) bool {
	return sp.StopUse != nil && strings.EqualFold(*sp.StopUse, use)
}
