package lib

import "fmt"
import "math"
import "sort"
import "strconv"
import "strings"

// HistogramInt64 statistical histogram over int64 samples. Samples are
// bucketed into fixed width buckets between [from, till), with one
// underflow and one overflow bucket.
type HistogramInt64 struct {
	n         int64
	minval    int64
	maxval    int64
	sum       int64
	sumsq     float64
	histogram []int64
	// setup
	from  int64
	till  int64
	width int64
}

// NewhistorgramInt64 return a new histogram object.
func NewhistorgramInt64(from, till, width int64) *HistogramInt64 {
	if width <= 0 {
		panicerr("histogram width must be > 0, got %v", width)
	}
	from, till = (from/width)*width, (till/width)*width
	h := &HistogramInt64{from: from, till: till, width: width}
	h.histogram = make([]int64, 1+((till-from)/width)+1)
	return h
}

// Add a sample to this histogram.
func (h *HistogramInt64) Add(sample int64) {
	if h.n == 0 || sample < h.minval {
		h.minval = sample
	}
	if h.n == 0 || sample > h.maxval {
		h.maxval = sample
	}
	h.n++
	h.sum += sample
	h.sumsq += float64(sample) * float64(sample)

	switch {
	case sample < h.from:
		h.histogram[0]++
	case sample >= h.till:
		h.histogram[len(h.histogram)-1]++
	default:
		h.histogram[((sample-h.from)/h.width)+1]++
	}
}

// Min return minimum value from sample.
func (h *HistogramInt64) Min() int64 {
	return h.minval
}

// Max return maximum value from sample.
func (h *HistogramInt64) Max() int64 {
	return h.maxval
}

// Samples return total number of samples in the set.
func (h *HistogramInt64) Samples() int64 {
	return h.n
}

// Sum return the sum of all sample values.
func (h *HistogramInt64) Sum() int64 {
	return h.sum
}

// Mean return the average value of all samples.
func (h *HistogramInt64) Mean() int64 {
	if h.n == 0 {
		return 0
	}
	return h.sum / h.n
}

// Variance return the squared deviation of samples from their mean.
func (h *HistogramInt64) Variance() float64 {
	if h.n == 0 {
		return 0
	}
	n, mean := float64(h.n), float64(h.sum)/float64(h.n)
	if v := (h.sumsq / n) - (mean * mean); v > 0 {
		return v
	}
	return 0 // rounding

}

// SD return the standard deviation of samples.
func (h *HistogramInt64) SD() float64 {
	return math.Sqrt(h.Variance())
}

// Clone copies the entire instance.
func (h *HistogramInt64) Clone() *HistogramInt64 {
	newh := *h
	newh.histogram = append([]int64(nil), h.histogram...)
	return &newh
}

// Stats return cumulative counts, keyed by the lower bound of each
// bucket, upto the last non-empty bucket which is keyed as "+".
func (h *HistogramInt64) Stats() map[string]int64 {
	m := make(map[string]int64)
	last := -1
	for i := len(h.histogram) - 1; i >= 0; i-- {
		if h.histogram[i] > 0 {
			last = i
			break
		}
	}
	cumm := int64(0)
	for j := 0; j <= last; j++ {
		cumm += h.histogram[j]
		if j == last {
			m["+"] = cumm
			continue
		}
		m[strconv.Itoa(int(h.from+(int64(j)*h.width)))] = cumm
	}
	return m
}

// Fullstats includes mean, variance, stddeviance along with Stats().
func (h *HistogramInt64) Fullstats() map[string]interface{} {
	hmap := make(map[string]interface{})
	for k, v := range h.Stats() {
		hmap[k] = v
	}
	return map[string]interface{}{
		"samples":     h.Samples(),
		"min":         h.Min(),
		"max":         h.Max(),
		"mean":        h.Mean(),
		"variance":    h.Variance(),
		"stddeviance": h.SD(),
		"histogram":   hmap,
	}
}

// Logstring return Fullstats as a loggable string with sorted keys.
func (h *HistogramInt64) Logstring() string {
	stats := h.Fullstats()
	keys := make([]string, 0, len(stats))
	for k := range stats {
		if k != "histogram" {
			keys = append(keys, k)
		}
	}
	sort.Strings(keys)
	ss := make([]string, 0, len(keys)+1)
	for _, key := range keys {
		ss = append(ss, fmt.Sprintf(`"%v": %v`, key, stats[key]))
	}

	buckets, hs := h.Stats(), []string{}
	bounds := make([]int, 0, len(buckets))
	for k := range buckets {
		if k == "+" {
			continue
		}
		n, _ := strconv.Atoi(k)
		bounds = append(bounds, n)
	}
	sort.Ints(bounds)
	for _, n := range bounds {
		ks := strconv.Itoa(n)
		hs = append(hs, fmt.Sprintf(`"%v": %v`, ks, buckets[ks]))
	}
	hs = append(hs, fmt.Sprintf(`"+": %v`, buckets["+"]))
	ss = append(ss, fmt.Sprintf(`"histogram": {%v}`, strings.Join(hs, ",")))
	return "{" + strings.Join(ss, ",") + "}"
}
