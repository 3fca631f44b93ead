package plan

import "strings"

// Sentinel replaces absent or blank fields in flattened rows.
const Sentinel = "-"

// FlatRow is a TripOption with every absent field replaced by the "-"
// sentinel, ready for tabular or prose rendering.
type FlatRow struct {
	Dep      string `json:"dep"`
	Arr      string `json:"arr"`
	Service  string `json:"service"`
	Operator string `json:"operator"`
	FromQuay string `json:"fromQuay"`
	ToQuay   string `json:"toQuay"`
	Dir      string `json:"dir"`
	From     string `json:"from"`
	To       string `json:"to"`
}

// Flatten maps a TripOption to its sentinel-padded row.
func Flatten(option TripOption) FlatRow {
	return FlatRow{
		Dep:      orSentinel(option.Departure),
		Arr:      orSentinel(option.Arrival),
		Service:  orSentinel(option.Service),
		Operator: orSentinel(option.Operator),
		FromQuay: orSentinel(option.FromQuay),
		ToQuay:   orSentinel(option.ToQuay),
		Dir:      orSentinel(option.Direction),
		From:     orSentinel(option.FromName),
		To:       orSentinel(option.ToName),
	}
}

// FlattenAll maps a list of options to rows. The result is never nil, so
// the JSON rendering always carries an array.
func FlattenAll(options []TripOption) []FlatRow {
	rows := make([]FlatRow, 0, len(options))
	for _, option := range options {
		rows = append(rows, Flatten(option))
	}
	return rows
}

func orSentinel(s *string) string {
	if s == nil || strings.TrimSpace(*s) == "" {
		return Sentinel
	}
	return *s
}
