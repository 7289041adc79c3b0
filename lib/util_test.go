package lib

import "reflect"
import "strings"
import "testing"

func TestParsecsv(t *testing.T) {
	if out := Parsecsv(""); out != nil {
		t.Errorf("unexpected %v", out)
	}
	ref := []string{"id", "name"}
	if out := Parsecsv(" id, ,name ,"); !reflect.DeepEqual(ref, out) {
		t.Errorf("expected %v, got %v", ref, out)
	}
}

func TestPrettystats(t *testing.T) {
	stats := map[string]interface{}{"n_count": int64(2)}
	if s := Prettystats(stats, false); s != `{"n_count":2}` {
		t.Errorf("unexpected %v", s)
	}
	if s := Prettystats(stats, true); !strings.Contains(s, "\n") {
		t.Errorf("unexpected %v", s)
	}
}

func TestCallsite(t *testing.T) {
	if site := Callsite(0); !strings.HasPrefix(site, "util_test.go:") {
		t.Errorf("unexpected %v", site)
	}
}
