package analysis

import (
	"math"

	"github.com/san-kum/predprey/internal/sim"
)

// Insights summarizes one predator-prey run the way a field ecologist
// would read it: extremes, cycle counts and lengths, how far the foxes
// trail the rabbits, and how volatile the ecosystem is overall.
type Insights struct {
	MaxPrey     float64
	MinPrey     float64
	MaxPredator float64
	MinPredator float64

	PreyCycles     int
	PredatorCycles int
	PreyPeriod     float64
	PredatorPeriod float64
	PhaseLag       float64

	FinalPrey     float64
	FinalPredator float64

	Correlation float64
	Stability   string
}

// Analyze computes Insights from a finished trajectory. The result must
// hold two-component states: [rabbits, foxes].
func Analyze(result *sim.Result) *Insights {
	prey := result.Series(0)
	predator := result.Series(1)

	if len(prey) == 0 {
		return &Insights{}
	}

	preyPeaks := FindPeaks(prey)
	predatorPeaks := FindPeaks(predator)

	ins := &Insights{
		MaxPrey:        maxOf(prey),
		MinPrey:        minOf(prey),
		MaxPredator:    maxOf(predator),
		MinPredator:    minOf(predator),
		PreyCycles:     len(preyPeaks),
		PredatorCycles: len(predatorPeaks),
		PreyPeriod:     MeanPeriod(result.Times, preyPeaks),
		PredatorPeriod: MeanPeriod(result.Times, predatorPeaks),
		PhaseLag:       PhaseLag(result.Times, preyPeaks, predatorPeaks),
		FinalPrey:      prey[len(prey)-1],
		FinalPredator:  predator[len(predator)-1],
		Correlation:    Correlation(prey, predator),
	}

	ins.Stability = classifyStability(prey, predator)

	return ins
}

// Correlation is the Pearson correlation coefficient of the two series.
func Correlation(a, b []float64) float64 {
	n := len(a)
	if n == 0 || n != len(b) {
		return 0
	}

	meanA := mean(a)
	meanB := mean(b)

	var cov, varA, varB float64
	for i := 0; i < n; i++ {
		da := a[i] - meanA
		db := b[i] - meanB
		cov += da * db
		varA += da * da
		varB += db * db
	}

	if varA == 0 || varB == 0 {
		return 0
	}
	return cov / math.Sqrt(varA*varB)
}

// classifyStability buckets the run by the coefficient of variation of
// both populations.
func classifyStability(prey, predator []float64) string {
	cvPrey := coeffVariation(prey)
	cvPredator := coeffVariation(predator)

	switch {
	case cvPrey < 0.3 && cvPredator < 0.3:
		return "stable equilibrium"
	case cvPrey < 0.5 && cvPredator < 0.5:
		return "moderate fluctuations"
	default:
		return "strong cyclical patterns"
	}
}

func coeffVariation(data []float64) float64 {
	m := mean(data)
	if m == 0 {
		return 0
	}
	var ss float64
	for _, v := range data {
		d := v - m
		ss += d * d
	}
	return math.Sqrt(ss/float64(len(data))) / math.Abs(m)
}

func mean(data []float64) float64 {
	if len(data) == 0 {
		return 0
	}
	sum := 0.0
	for _, v := range data {
		sum += v
	}
	return sum / float64(len(data))
}

func maxOf(data []float64) float64 {
	m := data[0]
	for _, v := range data {
		if v > m {
			m = v
		}
	}
	return m
}

func minOf(data []float64) float64 {
	m := data[0]
	for _, v := range data {
		if v < m {
			m = v
		}
	}
	return m
}
