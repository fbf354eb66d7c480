package models

import (
	"github.com/robfig/cron/v3"
)

// ScheduleSpec describes when a schedule trigger fires. Expression uses the
// standard 5-field cron format (minute hour day month weekday). An expression
// the parser rejects is kept verbatim and flagged Custom rather than failing
// the save; the scheduling backend decides what to do with custom expressions.
type ScheduleSpec struct {
	Expression string `json:"expression"`
	Timezone   string `json:"timezone,omitempty"`
	Enabled    bool   `json:"enabled"`
	Custom     bool   `json:"custom,omitempty"`
}

// NewScheduleSpec builds a spec from a raw expression, falling back to a
// custom expression when cron parsing fails.
func NewScheduleSpec(expression, timezone string, enabled bool) *ScheduleSpec {
	spec := &ScheduleSpec{
		Expression: expression,
		Timezone:   timezone,
		Enabled:    enabled,
	}
	spec.normalize()

	return spec
}

// Valid reports whether the expression parses as standard cron.
func (s *ScheduleSpec) Valid() bool {
	parser := cron.NewParser(cron.Minute | cron.Hour | cron.Dom | cron.Month | cron.Dow)
	_, err := parser.Parse(s.Expression)

	return err == nil
}

func (s *ScheduleSpec) normalize() {
	if s == nil || s.Expression == "" {
		return
	}

	s.Custom = !s.Valid()
}
