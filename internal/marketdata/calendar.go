package marketdata

import (
	"time"

	"github.com/scmhub/calendar"

	"github.com/guttosm/portfolio-stats/internal/logger"
)

// DefaultMIC is the exchange calendar used for US tickers (NYSE).
const DefaultMIC = "xnys"

// TradingCalendar answers "was the exchange open that day" questions.
// Without a library calendar (or on a nil receiver) it falls back to Monday
// to Friday.
type TradingCalendar struct {
	cal *calendar.Calendar
	loc *time.Location
}

// NewTradingCalendar loads the calendar of the given market identifier code.
func NewTradingCalendar(mic string) *TradingCalendar {
	cal := calendar.GetCalendar(mic)
	if cal == nil && mic != DefaultMIC {
		cal = calendar.GetCalendar(DefaultMIC)
	}
	if cal == nil {
		lg := logger.Component("marketdata.calendar")
		lg.Warn().Str("mic", mic).Msg("calendar not found, using weekday fallback")
		loc, err := time.LoadLocation("America/New_York")
		if err != nil {
			loc = time.UTC
		}
		return &TradingCalendar{loc: loc}
	}
	return &TradingCalendar{cal: cal, loc: cal.Loc}
}

// IsTradingDay reports whether d's calendar date was a session day.
func (c *TradingCalendar) IsTradingDay(d time.Time) bool {
	y, m, day := d.Date()
	local := time.Date(y, m, day, 12, 0, 0, 0, c.location())

	if c == nil || c.cal == nil {
		wd := local.Weekday()
		return wd != time.Saturday && wd != time.Sunday
	}
	return c.cal.IsBusinessDay(local)
}

// LastNTradingDays returns the last n session dates up to and including
// from's date, most recent first.
func (c *TradingCalendar) LastNTradingDays(n int, from time.Time) []time.Time {
	if n < 1 {
		n = 1
	}
	out := make([]time.Time, 0, n)
	d := truncateToDate(from)

	for len(out) < n {
		if c.IsTradingDay(d) {
			out = append(out, d)
		}
		d = d.AddDate(0, 0, -1)
	}
	return out
}

func (c *TradingCalendar) location() *time.Location {
	if c == nil || c.loc == nil {
		return time.UTC
	}
	return c.loc
}

func truncateToDate(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, t.Location())
}
