// Package plan normalizes raw journey-service response trees into
// rider-facing value objects. Every function in this package is pure: it
// performs no I/O, holds no state and never returns an error. Missing or
// malformed upstream data degrades to absent fields, never to a failure.
package plan

// TripOption is the normalized view of one vehicle leg (itinerary) or one
// whole journey (options). Nil means the upstream data held nothing usable;
// the empty string is never used as a stand-in at this layer.
type TripOption struct {
	Departure *string
	Arrival   *string
	Service   *string
	Operator  *string
	FromQuay  *string
	ToQuay    *string
	Direction *string
	FromName  *string
	ToName    *string
}

// Itinerary is the first usable journey, one TripOption per vehicle leg in
// travel order, transfers included. Empty means no connection was found.
type Itinerary []TripOption

// OptionsList holds one summary TripOption per alternative journey.
type OptionsList []TripOption
