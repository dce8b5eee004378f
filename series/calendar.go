package series

import (
	"time"

	"github.com/rickar/cal/v2"
	"github.com/rickar/cal/v2/us"
)

// BusinessCalendar reports whether a timestamp falls on a business day.
// Callers use it to decide whether weekend gaps are missing data or
// simply non-trading days. It is a standalone helper: the auto and cv
// packages do not consult it when building candidates or folds.
type BusinessCalendar struct {
	cal *cal.BusinessCalendar
}

// NewUSBusinessCalendar returns a BusinessCalendar using the US federal
// holiday schedule.
func NewUSBusinessCalendar() *BusinessCalendar {
	bc := cal.NewBusinessCalendar()
	bc.AddHoliday(us.Holidays...)
	return &BusinessCalendar{cal: bc}
}

// IsBusinessDay reports whether t falls on a working business day.
func (b *BusinessCalendar) IsBusinessDay(t time.Time) bool {
	if b == nil || b.cal == nil {
		return t.Weekday() != time.Saturday && t.Weekday() != time.Sunday
	}
	return b.cal.IsWorkday(t)
}

// InferredCalendarFit reports the fraction of a series' timestamps that fall
// on business days. A value near 1.0 suggests the series is naturally
// business-day-sampled (so a 5-day seasonal period may be more appropriate
// than a 7-day one); a value near 5.0/7.0 suggests no calendar awareness at
// all.
func (b *BusinessCalendar) InferredCalendarFit(s *Series) float64 {
	if s.Len() == 0 {
		return 0
	}
	var hits int
	for _, t := range s.T {
		if b.IsBusinessDay(t) {
			hits++
		}
	}
	return float64(hits) / float64(s.Len())
}

// LooksBusinessDayOnly reports whether every sampled timestamp in the series
// lands on a business day, i.e. weekends (and holidays, per the calendar)
// are structurally absent rather than just missing data.
func (b *BusinessCalendar) LooksBusinessDayOnly(s *Series) bool {
	return b.InferredCalendarFit(s) >= 0.999
}
