package journey

// TripResponse is the raw journey-service response tree. It is read-only
// input for the planning core and is never mutated.
type TripResponse struct {
	Trips []Trip `json:"trips"`
}

// Trip is one candidate journey, an ordered sequence of legs.
type Trip struct {
	Legs []Leg `json:"legs"`
}

// Leg is polymorphic: the Type tag separates legs travelled aboard a vehicle
// from walking and waiting legs.
type Leg struct {
	Type           string          `json:"type"`
	Mode           string          `json:"mode"`
	ServiceJourney *ServiceJourney `json:"serviceJourney"`
	Directions     []Direction     `json:"directions"`
}

// ServiceJourney describes the vehicle run a ride leg is part of.
type ServiceJourney struct {
	StopPoints      []StopPoint      `json:"stopPoints"`
	ServiceProducts []ServiceProduct `json:"serviceProducts"`
	Directions      []Direction      `json:"directions"`
}

// StopPoint is one position along a vehicle's run. The upstream schema is
// only partially populated, so every field may be missing.
type StopPoint struct {
	Place        *Place    `json:"place"`
	RouteIndex   *int      `json:"routeIndex"`
	StopUse      *string   `json:"stopUse"`
	ForBoarding  *bool     `json:"forBoarding"`
	ForAlighting *bool     `json:"forAlighting"`
	Departure    *StopCall `json:"departure"`
	Arrival      *StopCall `json:"arrival"`
}

// StopCall carries the live and aimed times plus the platform variants for
// one departure or arrival.
type StopCall struct {
	TimeRt        *string `json:"timeRt"`
	TimeAimed     *string `json:"timeAimed"`
	QuayRt        *Quay   `json:"quayRt"`
	QuayFormatted *string `json:"quayFormatted"`
	QuayAimed     *Quay   `json:"quayAimed"`
}

// Quay is a named platform.
type Quay struct {
	Name *string `json:"name"`
}

// Place is a named stop place.
type Place struct {
	Name *string `json:"name"`
}

// ServiceProduct is the line and vehicle metadata of a ride leg, covering
// the route-index range [RouteIndexFrom, RouteIndexTo] of the full stop
// sequence.
type ServiceProduct struct {
	NameFormatted  *string      `json:"nameFormatted"`
	Name           *string      `json:"name"`
	Line           *string      `json:"line"`
	VehicleMode    *VehicleMode `json:"vehicleMode"`
	Operator       *Operator    `json:"operator"`
	RouteIndexFrom *int         `json:"routeIndexFrom"`
	RouteIndexTo   *int         `json:"routeIndexTo"`
}

// VehicleMode describes the vehicle type, e.g. short name "S" for a
// suburban train.
type VehicleMode struct {
	VehicleSubModeShortName *string `json:"vehicleSubModeShortName"`
}

// Operator is the company running a service.
type Operator struct {
	Name *string `json:"name"`
}

// Direction is a named travel direction of a vehicle or leg.
type Direction struct {
	Name *string `json:"name"`
}
