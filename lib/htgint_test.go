package lib

import "fmt"
import "math"
import "reflect"
import "strings"
import "testing"

var _ = fmt.Sprintf("dummy")

func TestHistogramInt(t *testing.T) {
	h := NewhistorgramInt64(3, 97, 3)
	for i := 1; i <= 100; i++ {
		h.Add(int64(i))
	}

	if x, y := int64(1), h.Min(); x != y {
		t.Errorf("Min() expected %v, got %v", x, y)
	} else if x, y := int64(100), h.Max(); x != y {
		t.Errorf("Max() expected %v, got %v", x, y)
	} else if x, y := int64(100), h.Samples(); x != y {
		t.Errorf("Samples() expected %v, got %v", x, y)
	} else if x, y := int64(100*101)/2, h.Sum(); x != y {
		t.Errorf("Sum() expected %v, got %v", x, y)
	} else if x, y := h.Sum()/h.Samples(), h.Mean(); x != y {
		t.Errorf("Mean() expected %v, got %v", x, y)
	} else if x, y := 833.25, h.Variance(); math.Abs(x-y) > 1e-6 {
		t.Errorf("Variance() expected %v, got %v", x, y)
	} else if x, y := math.Sqrt(833.25), h.SD(); math.Abs(x-y) > 1e-6 {
		t.Errorf("SD() expected %v, got %v", x, y)
	}

	samples := []int64{0, 1, 2, 3, 4, 5, 6, 7, 9, 10, 11, 12, 13, 14, 15, 16, 17}

	ref := map[string]int64{"12": 11, "15": 14, "+": 17, "6": 6, "9": 8}
	h = NewhistorgramInt64(6, 15, 3)
	for _, sample := range samples {
		h.Add(sample)
	}
	if data := h.Stats(); !reflect.DeepEqual(ref, data) {
		t.Errorf("expected %v, got %v", ref, data)
	}

	clone := h.Clone()
	clone.Add(100)
	if h.Samples() == clone.Samples() {
		t.Errorf("clone shares state")
	}
	if s := h.Logstring(); !strings.Contains(s, `"samples": 17`) {
		t.Errorf("unexpected %v", s)
	}
}

func TestHistogramEmpty(t *testing.T) {
	h := NewhistorgramInt64(1, 256, 1)
	if h.Mean() != 0 || h.Variance() != 0 || h.Samples() != 0 {
		t.Errorf("unexpected %v", h.Fullstats())
	}
	if len(h.Stats()) != 0 {
		t.Errorf("unexpected %v", h.Stats())
	}
}
