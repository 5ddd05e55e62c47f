package forecast

import (
	"errors"
	"fmt"
	"math"

	"gonum.org/v1/gonum/optimize"
)

// seasonalModel is SARIMA(1,1,1)(1,1,0)[s]. After one regular and one
// seasonal difference, w_t = (1-B)(1-B^s) y_t follows
//
//	(1 - phi B)(1 - Phi B^s) w_t = (1 + theta B) e_t
//
// Parameters are estimated by conditional sum of squares. No stationarity or
// invertibility constraint is imposed on phi, Phi or theta.
type seasonalModel struct {
	period int

	phi      float64 // non-seasonal AR(1)
	theta    float64 // non-seasonal MA(1)
	seasonal float64 // seasonal AR(1)

	y         []float64
	w         []float64
	residuals []float64
}

const numParameters = 3

var (
	errTooShort  = errors.New("series too short for seasonal differencing")
	errNonFinite = errors.New("non-finite value")
	errOptimizer = errors.New("optimizer failed")
)

// fitSeasonal estimates the model on y.
func fitSeasonal(y []float64, period int) (*seasonalModel, error) {
	for _, v := range y {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return nil, fmt.Errorf("input: %w", errNonFinite)
		}
	}

	m := &seasonalModel{period: period, y: y}
	m.w = difference(y, period)

	// CSS needs period+1 pre-sample values of w and more residuals than
	// parameters.
	if len(m.w)-(period+1) <= numParameters {
		return nil, fmt.Errorf("%d observations after differencing: %w", len(m.w), errTooShort)
	}

	problem := optimize.Problem{
		Func: func(x []float64) float64 {
			sse := m.css(x[0], x[1], x[2], nil)
			if math.IsNaN(sse) || math.IsInf(sse, 0) {
				return math.MaxFloat64
			}
			return sse
		},
	}
	settings := &optimize.Settings{
		MajorIterations: 2000,
		FuncEvaluations: 10000,
	}

	// Hitting an iteration or evaluation limit still leaves the best simplex
	// vertex in result, which is checked for finiteness below.
	result, err := optimize.Minimize(problem, []float64{0, 0, 0}, settings, &optimize.NelderMead{})
	if result == nil || len(result.X) != numParameters {
		return nil, fmt.Errorf("%w: %v", errOptimizer, err)
	}
	for _, v := range result.X {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return nil, fmt.Errorf("parameters: %w", errNonFinite)
		}
	}

	m.phi, m.theta, m.seasonal = result.X[0], result.X[1], result.X[2]
	m.residuals = make([]float64, len(m.w))
	if sse := m.css(m.phi, m.theta, m.seasonal, m.residuals); math.IsNaN(sse) || math.IsInf(sse, 0) {
		return nil, fmt.Errorf("residuals: %w", errNonFinite)
	}

	return m, nil
}

// css returns the conditional sum of squared one-step errors. Residuals
// before the first full lag window are taken as zero. When out is non-nil it
// receives the residuals.
func (m *seasonalModel) css(phi, theta, seasonal float64, out []float64) float64 {
	w := m.w
	s := m.period
	start := s + 1

	var prev, sse float64
	for t := start; t < len(w); t++ {
		predicted := phi*w[t-1] + seasonal*w[t-s] - phi*seasonal*w[t-s-1] + theta*prev
		e := w[t] - predicted
		if out != nil {
			out[t] = e
		}
		sse += e * e
		if math.IsNaN(sse) || math.IsInf(sse, 0) {
			return math.Inf(1)
		}
		prev = e
	}
	return sse
}

// forecast returns the next steps daily values on the original scale. Future
// shocks are zero, so only the last in-sample residual feeds the MA term.
func (m *seasonalModel) forecast(steps int) ([]float64, error) {
	s := m.period
	n := len(m.y)

	w := make([]float64, len(m.w), len(m.w)+steps)
	copy(w, m.w)
	y := make([]float64, n, n+steps)
	copy(y, m.y)

	lastResidual := m.residuals[len(m.residuals)-1]
	out := make([]float64, steps)
	for h := 0; h < steps; h++ {
		t := len(w)
		next := m.phi*w[t-1] + m.seasonal*w[t-s] - m.phi*m.seasonal*w[t-s-1]
		if h == 0 {
			next += m.theta * lastResidual
		}
		w = append(w, next)

		k := len(y)
		value := y[k-1] + y[k-s] - y[k-s-1] + next
		if math.IsNaN(value) || math.IsInf(value, 0) {
			return nil, fmt.Errorf("forecast step %d: %w", h+1, errNonFinite)
		}
		y = append(y, value)
		out[h] = value
	}
	return out, nil
}

// difference applies (1-B)(1-B^s) to y.
func difference(y []float64, s int) []float64 {
	if len(y) <= s+1 {
		return nil
	}
	w := make([]float64, 0, len(y)-s-1)
	for t := s + 1; t < len(y); t++ {
		w = append(w, y[t]-y[t-1]-y[t-s]+y[t-s-1])
	}
	return w
}
