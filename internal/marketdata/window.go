package marketdata

import (
	"fmt"
	"strings"
	"time"
)

// Window is a Yahoo-style lookback period such as "5d", "1y" or "max".
type Window string

const (
	Window1D  Window = "1d"
	Window5D  Window = "5d"
	Window1MO Window = "1mo"
	Window3MO Window = "3mo"
	Window6MO Window = "6mo"
	Window1Y  Window = "1y"
	Window2Y  Window = "2y"
	Window5Y  Window = "5y"
	Window10Y Window = "10y"
	WindowYTD Window = "ytd"
	WindowMax Window = "max"
)

var windows = map[Window]struct{}{
	Window1D: {}, Window5D: {}, Window1MO: {}, Window3MO: {}, Window6MO: {},
	Window1Y: {}, Window2Y: {}, Window5Y: {}, Window10Y: {}, WindowYTD: {}, WindowMax: {},
}

// ParseWindow validates s as a supported window (case-insensitive).
func ParseWindow(s string) (Window, error) {
	w := Window(strings.ToLower(strings.TrimSpace(s)))
	if _, ok := windows[w]; !ok {
		return "", fmt.Errorf("unsupported window %q", s)
	}
	return w, nil
}

func (w Window) String() string { return string(w) }

// Start returns the first date covered by w when the window ends at now.
//
// Day windows count trading sessions on cal; month and year windows use
// calendar arithmetic. "max" returns the zero time.
func (w Window) Start(now time.Time, cal *TradingCalendar) time.Time {
	today := truncateToDate(now)
	switch w {
	case Window1D, Window5D:
		n := 1
		if w == Window5D {
			n = 5
		}
		days := cal.LastNTradingDays(n, now)
		return days[len(days)-1]
	case Window1MO:
		return today.AddDate(0, -1, 0)
	case Window3MO:
		return today.AddDate(0, -3, 0)
	case Window6MO:
		return today.AddDate(0, -6, 0)
	case Window1Y:
		return today.AddDate(-1, 0, 0)
	case Window2Y:
		return today.AddDate(-2, 0, 0)
	case Window5Y:
		return today.AddDate(-5, 0, 0)
	case Window10Y:
		return today.AddDate(-10, 0, 0)
	case WindowYTD:
		return time.Date(today.Year(), time.January, 1, 0, 0, 0, 0, today.Location())
	default:
		return time.Time{}
	}
}
