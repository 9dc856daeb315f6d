package models

import "time"

// Bar is one daily OHLCV session for a symbol.
//
// Price and volume fields are pointers because upstream sources report
// missing values (Yahoo returns nulls, the bar store allows NULL columns).
// A nil Close makes the bar's date unusable for alignment.
type Bar struct {
	Date   time.Time
	Open   *float64
	High   *float64
	Low    *float64
	Close  *float64
	Volume *int64
}

// AdjustTo rescales Open, High and Low by adjClose/Close and replaces Close
// with adjClose, turning a raw bar into a split and dividend adjusted one.
// Bars lacking either close, or with a zero Close, are left unchanged.
func (b *Bar) AdjustTo(adjClose *float64) {
	if adjClose == nil || b.Close == nil || *b.Close == 0 {
		return
	}
	ratio := *adjClose / *b.Close
	for _, p := range []**float64{&b.Open, &b.High, &b.Low} {
		if *p != nil {
			*p = Float(**p * ratio)
		}
	}
	b.Close = Float(*adjClose)
}

// Series is the ordered daily history of one symbol.
type Series struct {
	Symbol string
	Bars   []Bar
}

// Len returns the number of bars in the series.
func (s Series) Len() int { return len(s.Bars) }

// DailyBar is a Bar tagged with its symbol, as stored in the daily_bars table.
type DailyBar struct {
	Symbol string
	Bar
}

// Float returns a pointer to v; handy when building bars from non-null values.
func Float(v float64) *float64 { return &v }

// Int returns a pointer to v.
func Int(v int64) *int64 { return &v }
