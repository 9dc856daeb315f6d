package portfolio

import (
	"fmt"
	"math"

	"gonum.org/v1/gonum/mat"
	"gonum.org/v1/gonum/stat"

	"github.com/guttosm/portfolio-stats/internal/domain/errs"
	"github.com/guttosm/portfolio-stats/internal/domain/models"
)

// EqualWeights returns n weights of 1/n.
func EqualWeights(n int) []float64 {
	w := make([]float64, n)
	for i := range w {
		w[i] = 1 / float64(n)
	}
	return w
}

// Compute derives equal-weight statistics from daily returns:
//
//	expected_return = w · mean(returns)
//	risk            = w · (cov(returns) · w)
//
// The covariance is the sample covariance (n-1 denominator), so at least two
// return rows are required. N=1 is not special-cased: the covariance is then a
// single variance.
func Compute(r ReturnMatrix) (models.PortfolioStats, error) {
	rows, cols := r.Returns.Dims()
	if rows < 2 {
		return models.PortfolioStats{}, errs.NewProcessing(MsgProcessing,
			fmt.Errorf("covariance needs at least 2 return observations, got %d", rows))
	}

	means := make([]float64, cols)
	col := make([]float64, rows)
	for j := 0; j < cols; j++ {
		mat.Col(col, j, r.Returns)
		means[j] = stat.Mean(col, nil)
	}

	cov := mat.NewSymDense(cols, nil)
	stat.CovarianceMatrix(cov, r.Returns, nil)

	weights := EqualWeights(cols)
	w := mat.NewVecDense(cols, weights)
	mu := mat.NewVecDense(cols, means)

	expected := mat.Dot(w, mu)
	risk := mat.Inner(w, cov, w)

	if !finite(expected) || !finite(risk) {
		return models.PortfolioStats{}, errs.NewProcessing(MsgProcessing,
			fmt.Errorf("non-finite statistics (expected_return=%v, risk=%v)", expected, risk))
	}

	return models.PortfolioStats{
		Symbols:        append([]string(nil), r.Symbols...),
		Weights:        weights,
		ExpectedReturn: expected,
		Risk:           risk,
		Observations:   rows,
	}, nil
}

// Calculate runs the whole pipeline: Align, Returns, Compute.
func Calculate(symbols []string, data map[string]models.Series) (models.PortfolioStats, error) {
	prices, err := Align(symbols, data)
	if err != nil {
		return models.PortfolioStats{}, err
	}
	return Compute(Returns(prices))
}

func finite(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0)
}
