package analysis

// FindPeaks returns the indices of strict local maxima.
func FindPeaks(data []float64) []int {
	peaks := make([]int, 0)
	for i := 1; i < len(data)-1; i++ {
		if data[i] > data[i-1] && data[i] > data[i+1] {
			peaks = append(peaks, i)
		}
	}
	return peaks
}

// FindTroughs returns the indices of strict local minima.
func FindTroughs(data []float64) []int {
	troughs := make([]int, 0)
	for i := 1; i < len(data)-1; i++ {
		if data[i] < data[i-1] && data[i] < data[i+1] {
			troughs = append(troughs, i)
		}
	}
	return troughs
}

// MeanPeriod estimates the cycle length as the mean spacing between
// consecutive peaks. It returns 0 when fewer than two peaks exist.
func MeanPeriod(times []float64, peaks []int) float64 {
	if len(peaks) < 2 {
		return 0
	}
	total := 0.0
	for i := 1; i < len(peaks); i++ {
		total += times[peaks[i]] - times[peaks[i-1]]
	}
	return total / float64(len(peaks)-1)
}

// PhaseLag is the delay between the first prey peak and the first
// predator peak. Positive lag means predators trail prey, the expected
// pattern for this model.
func PhaseLag(times []float64, preyPeaks, predatorPeaks []int) float64 {
	if len(preyPeaks) == 0 || len(predatorPeaks) == 0 {
		return 0
	}
	return times[predatorPeaks[0]] - times[preyPeaks[0]]
}
