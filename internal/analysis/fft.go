package analysis

import (
	"math"
	"math/cmplx"
)

// FFT computes the discrete Fourier transform by radix-2 decimation.
// The input length must be a power of two; use [DominantPeriod] for
// arbitrary-length series.
func FFT(data []float64) []complex128 {
	n := len(data)
	if n <= 1 {
		result := make([]complex128, n)
		for i := range data {
			result[i] = complex(data[i], 0)
		}
		return result
	}

	if n%2 != 0 {
		panic("fft requires power of 2 length")
	}

	even := make([]float64, n/2)
	odd := make([]float64, n/2)

	for i := 0; i < n/2; i++ {
		even[i] = data[2*i]
		odd[i] = data[2*i+1]
	}

	feven := FFT(even)
	fodd := FFT(odd)

	result := make([]complex128, n)
	for k := 0; k < n/2; k++ {
		w := cmplx.Exp(complex(0, -2*math.Pi*float64(k)/float64(n)))
		result[k] = feven[k] + w*fodd[k]
		result[k+n/2] = feven[k] - w*fodd[k]
	}

	return result
}

// PowerSpectrum returns the squared magnitudes of the first half of the
// FFT bins.
func PowerSpectrum(data []float64) []float64 {
	fft := FFT(data)
	ps := make([]float64, len(fft)/2)

	for i := range ps {
		ps[i] = cmplx.Abs(fft[i]) * cmplx.Abs(fft[i])
	}

	return ps
}

// DominantPeriod estimates the strongest oscillation period in a series
// sampled at interval dt. The series is zero-padded to a power of two
// and the DC bin is ignored. Returns 0 when no oscillation stands out.
func DominantPeriod(data []float64, dt float64) float64 {
	if len(data) < 4 || dt <= 0 {
		return 0
	}

	// detrend by removing the mean so the DC bin does not swamp the peak
	m := mean(data)
	n := 1
	for n < len(data) {
		n *= 2
	}
	padded := make([]float64, n)
	for i, v := range data {
		padded[i] = v - m
	}

	ps := PowerSpectrum(padded)

	maxPower := 0.0
	maxIdx := 0
	for i := 1; i < len(ps); i++ {
		if ps[i] > maxPower {
			maxPower = ps[i]
			maxIdx = i
		}
	}

	if maxIdx == 0 {
		return 0
	}

	freq := float64(maxIdx) / (float64(n) * dt)
	return 1.0 / freq
}
