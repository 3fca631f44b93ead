// Package render turns normalized journey options into the two output
// shapes: a compact JSON plan and a one-sentence prose answer.
package render

import (
	"fmt"
	"strings"
	"time"

	"github.com/perronapp/perron/internal/api/journey"
	"github.com/perronapp/perron/internal/plan"
)

// Plan is the wire shape of the compact JSON answer.
type Plan struct {
	Options []plan.FlatRow `json:"options"`
}

// NewPlan flattens options into the JSON plan shape.
func NewPlan(options plan.OptionsList) Plan {
	return Plan{Options: plan.FlattenAll(options)}
}

// Sentence renders exactly one line about the best option. Times are
// shortened to HH:mm and absent fields drop their clause instead of
// printing the sentinel. from and to are the caller's inputs; when they are
// bare UIC codes the resolved stop names take their place.
func Sentence(options plan.OptionsList, from, to string) string {
	if len(options) == 0 {
		return "No suitable connection found."
	}
	row := plan.Flatten(options[0])

	service := row.Service
	if service == plan.Sentinel {
		service = "train"
	}

	var b strings.Builder
	fmt.Fprintf(&b, "The next %s", service)
	if row.Operator != plan.Sentinel {
		fmt.Fprintf(&b, " operated by %s", row.Operator)
	}
	if row.Dir != plan.Sentinel {
		fmt.Fprintf(&b, " towards %s", row.Dir)
	}
	fmt.Fprintf(&b, " leaves %s at %s", placeLabel(from, row.From), clockTime(row.Dep))
	if row.FromQuay != plan.Sentinel {
		fmt.Fprintf(&b, " from platform %s", row.FromQuay)
	}
	fmt.Fprintf(&b, " and reaches %s at %s", placeLabel(to, row.To), clockTime(row.Arr))
	if row.ToQuay != plan.Sentinel {
		fmt.Fprintf(&b, " on platform %s", row.ToQuay)
	}
	b.WriteString(".")
	return b.String()
}

func placeLabel(requested, resolved string) string {
	if (requested == "" || journey.IsUIC(requested)) && resolved != plan.Sentinel {
		return resolved
	}
	return requested
}

// clockTime shortens an ISO timestamp to HH:mm, leaving anything
// unparseable as is.
func clockTime(s string) string {
	t, err := time.Parse(time.RFC3339, s)
	if err != nil {
		return s
	}
	return t.Format("15:04")
}
