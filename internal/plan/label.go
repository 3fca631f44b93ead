package plan

import (
	"strings"

	"github.com/perronapp/perron/internal/api/journey"
)

// serviceLabel derives the rider-facing line label from product metadata,
// e.g. "S 4" rather than the full train number "S 4 15427". Ladder:
// formatted name verbatim, first two tokens of the raw name, submode plus
// line number.
func serviceLabel(product *journey.ServiceProduct) *string {
	if product == nil {
		return nil
	}
	if label := nonBlank(product.NameFormatted); label != nil {
		return label
	}
	if name := nonBlank(product.Name); name != nil {
		tokens := strings.Fields(*name)
		if len(tokens) >= 2 {
			label := tokens[0] + " " + tokens[1]
			return &label
		}
		return &tokens[0]
	}
	if product.VehicleMode != nil {
		sub := nonBlank(product.VehicleMode.VehicleSubModeShortName)
		line := nonBlank(product.Line)
		if sub != nil && line != nil {
			label := *sub + " " + *line
			return &label
		}
	}
	return nil
}

func operatorName(product *journey.ServiceProduct) *string {
	if product == nil || product.Operator == nil {
		return nil
	}
	return nonBlank(product.Operator.Name)
}

// directionName prefers the service journey's direction list over the
// leg's own.
func directionName(leg *journey.Leg) *string {
	if leg.ServiceJourney != nil {
		if name := firstDirection(leg.ServiceJourney.Directions); name != nil {
			return name
		}
	}
	return firstDirection(leg.Directions)
}

func firstDirection(directions []journey.Direction) *string {
	if len(directions) == 0 {
		return nil
	}
	return nonBlank(directions[0].Name)
}
