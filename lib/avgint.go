package lib

import "math"

// AverageInt64 running mean and variance over a live set of samples.
// Samples can be withdrawn with Remove, min and max are not tracked
// since they cannot be maintained under removal.
type AverageInt64 struct {
	n     int64
	sum   int64
	sumsq float64
}

// Add a sample.
func (av *AverageInt64) Add(sample int64) {
	av.n++
	av.sum += sample
	av.sumsq += float64(sample) * float64(sample)
}

// Remove a sample that was previously added.
func (av *AverageInt64) Remove(sample int64) {
	if av.n == 0 {
		panicerr("AverageInt64.Remove(%v) on empty set", sample)
	}
	av.n--
	av.sum -= sample
	av.sumsq -= float64(sample) * float64(sample)
}

// Samples return number of live samples.
func (av *AverageInt64) Samples() int64 {
	return av.n
}

// Sum return sum of live samples.
func (av *AverageInt64) Sum() int64 {
	return av.sum
}

// Mean return the average of live samples.
func (av *AverageInt64) Mean() int64 {
	if av.n == 0 {
		return 0
	}
	return av.sum / av.n
}

// Variance of live samples.
func (av *AverageInt64) Variance() float64 {
	if av.n == 0 {
		return 0
	}
	n, mean := float64(av.n), float64(av.sum)/float64(av.n)
	if v := (av.sumsq / n) - (mean * mean); v > 0 {
		return v
	}
	return 0
}

// SD standard deviation of live samples.
func (av *AverageInt64) SD() float64 {
	return math.Sqrt(av.Variance())
}

// Stats return samples, sum, mean, variance and stddeviance.
func (av *AverageInt64) Stats() map[string]interface{} {
	return map[string]interface{}{
		"samples":     av.Samples(),
		"sum":         av.Sum(),
		"mean":        av.Mean(),
		"variance":    av.Variance(),
		"stddeviance": av.SD(),
	}
}
