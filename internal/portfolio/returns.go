package portfolio

import (
	"time"

	"gonum.org/v1/gonum/mat"
)

// ReturnMatrix holds simple daily returns, one row fewer than its PriceMatrix.
type ReturnMatrix struct {
	Symbols []string
	Dates   []time.Time
	Returns *mat.Dense
}

// Rows returns the number of return observations.
func (r ReturnMatrix) Rows() int { return len(r.Dates) }

// Returns computes return[i] = price[i]/price[i-1] - 1 per column and drops
// the first date, which has no prior price. p must have at least 2 rows,
// which Align guarantees.
func Returns(p PriceMatrix) ReturnMatrix {
	rows, cols := p.Prices.Dims()
	out := mat.NewDense(rows-1, cols, nil)
	for i := 1; i < rows; i++ {
		for j := 0; j < cols; j++ {
			out.Set(i-1, j, p.Prices.At(i, j)/p.Prices.At(i-1, j)-1)
		}
	}
	return ReturnMatrix{
		Symbols: p.Symbols,
		Dates:   append([]time.Time(nil), p.Dates[1:]...),
		Returns: out,
	}
}
