package malloc

import "bytes"
import "strings"
import "testing"

import "github.com/bnclabs/rbindex/api"
import "github.com/bnclabs/rbindex/log"
import "github.com/stretchr/testify/assert"
import "github.com/stretchr/testify/require"

type bufLogger struct {
	buf *bytes.Buffer
}

func (l *bufLogger) SetLogLevel(string) {}

func (l *bufLogger) Fatalf(format string, v ...interface{})   { l.Printlf(0, format, v...) }
func (l *bufLogger) Errorf(format string, v ...interface{})   { l.Printlf(0, format, v...) }
func (l *bufLogger) Warnf(format string, v ...interface{})    { l.Printlf(0, format, v...) }
func (l *bufLogger) Infof(format string, v ...interface{})    { l.Printlf(0, format, v...) }
func (l *bufLogger) Verbosef(format string, v ...interface{}) { l.Printlf(0, format, v...) }
func (l *bufLogger) Debugf(format string, v ...interface{})   { l.Printlf(0, format, v...) }
func (l *bufLogger) Tracef(format string, v ...interface{})   { l.Printlf(0, format, v...) }

func (l *bufLogger) Printlf(_ log.LogLevel, format string, v ...interface{}) {
	l.buf.WriteString(strings.TrimSpace(format) + "\n")
	_ = v
}

func TestTrackerAccounting(t *testing.T) {
	tr := NewTracker("test", NewPool(100, 0))

	hs := []api.Handle{}
	for i := 0; i < 10; i++ {
		hs = append(hs, tr.Alloc("insert", 100))
	}
	for i := 0; i < 5; i++ {
		hs = append(hs, tr.Alloc("replace", 50))
	}
	heap, peak := tr.Heapsize()
	assert.Equal(t, int64(1250), heap)
	assert.Equal(t, int64(1250), peak)

	for _, h := range hs[:4] {
		tr.Free("remove", h)
	}
	heap, peak = tr.Heapsize()
	assert.Equal(t, int64(850), heap)
	assert.Equal(t, int64(1250), peak)

	stats := tr.Stats()
	assert.Equal(t, int64(10), stats["site.insert.allocs"])
	assert.Equal(t, int64(4), stats["site.insert.frees"])
	assert.Equal(t, int64(600), stats["site.insert.live"])
	assert.Equal(t, int64(5), stats["site.replace.allocs"])
	assert.Equal(t, int64(250), stats["site.replace.live"])
	assert.Equal(t, int64(11), stats["allocated"])
	assert.Equal(t, int64(100), stats["capacity"])
}

func TestTrackerUntracked(t *testing.T) {
	buf := &bytes.Buffer{}
	log.SetLogger(&bufLogger{buf: buf}, nil)
	defer log.SetLogger(nil, map[string]interface{}{"log.level": "info"})

	pool := NewPool(10, 0)
	h := pool.Alloc("direct", 1)
	tr := NewTracker("test", pool)
	tr.Free("remove", h)
	require.Contains(t, buf.String(), "free of untracked slot")

	// slot is still live in the pool.
	_, allocated := pool.Info()
	require.Equal(t, int64(1), allocated)
}

func TestTrackerLog(t *testing.T) {
	buf := &bytes.Buffer{}
	log.SetLogger(&bufLogger{buf: buf}, nil)
	defer log.SetLogger(nil, map[string]interface{}{"log.level": "info"})

	tr := NewTracker("test", NewPool(10, 0))
	tr.Alloc("insert", 10)
	tr.Log()
	require.Contains(t, buf.String(), "heap")
	require.Contains(t, buf.String(), "sites")

	buf.Reset()
	tr.Release()
	require.Contains(t, buf.String(), "releasing with")
	heap, _ := tr.Heapsize()
	require.Equal(t, int64(0), heap)
}
