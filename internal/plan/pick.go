package plan

import (
	"strings"

	"github.com/perronapp/perron/internal/api/journey"
)

// pickTime prefers the live timestamp over the aimed one.
func pickTime(call *journey.StopCall) *string {
	if call == nil {
		return nil
	}
	if t := nonBlank(call.TimeRt); t != nil {
		return t
	}
	return nonBlank(call.TimeAimed)
}

// pickQuay walks the platform variants in priority order: live name,
// formatted string, aimed name. The first valid candidate wins.
func pickQuay(call *journey.StopCall) *string {
	if call == nil {
		return nil
	}
	for _, candidate := range []*string{quayName(call.QuayRt), call.QuayFormatted, quayName(call.QuayAimed)} {
		if validQuay(candidate) {
			return candidate
		}
	}
	return nil
}

// validQuay rejects the upstream's placeholder values. "-" and "?" mean
// "platform not known", not a platform called "-".
func validQuay(s *string) bool {
	if s == nil {
		return false
	}
	switch strings.TrimSpace(*s) {
	case "", "-", "?":
		return false
	}
	return true
}

func quayName(q *journey.Quay) *string {
	if q == nil {
		return nil
	}
	return q.Name
}

func nonBlank(s *string) *string {
	if s == nil || strings.TrimSpace(*s) == "" {
		return nil
	}
	return s
}
