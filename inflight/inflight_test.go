package inflight

import "errors"
import "fmt"
import "sync"
import "testing"

import "github.com/bnclabs/rbindex/api"
import "github.com/bnclabs/rbindex/lib"
import "github.com/stretchr/testify/assert"
import "github.com/stretchr/testify/require"

var _ = fmt.Sprintf("dummy")

func TestPublishDelivered(t *testing.T) {
	reg := NewRegistry("session", nil)
	m1, err := reg.Publish("a/b", 1, []byte("hello"))
	require.NoError(t, err)
	m2, err := reg.Publish("a/c", 1, []byte("world!"))
	require.NoError(t, err)
	assert.Equal(t, int64(1), m1.Token)
	assert.Equal(t, int64(2), m2.Token)
	assert.Equal(t, int64(2), reg.Len())
	assert.Equal(t, int64(11), reg.Bytes())

	msg, ok := reg.Lookup(2)
	require.True(t, ok)
	require.True(t, msg == m2)

	msg, ok = reg.Delivered(1)
	require.True(t, ok)
	require.True(t, msg == m1)
	_, ok = reg.Delivered(1)
	require.False(t, ok)
	assert.Equal(t, int64(1), reg.Len())
	assert.Equal(t, int64(6), reg.Bytes())
	assert.Empty(t, reg.Pending("a/b"))
	reg.Validate()
}

func TestPending(t *testing.T) {
	reg := NewRegistry("session", nil)
	topics := []string{"x", "y", "x", "z", "x", "y"}
	for _, topic := range topics {
		_, err := reg.Publish(topic, 0, []byte(topic))
		require.NoError(t, err)
	}
	tokens := []int64{}
	for _, msg := range reg.Pending("x") {
		tokens = append(tokens, msg.Token)
	}
	require.Equal(t, []int64{1, 3, 5}, tokens)
	require.Len(t, reg.Pending("y"), 2)
	require.Empty(t, reg.Pending("w"))

	oldest, ok := reg.Oldest()
	require.True(t, ok)
	require.Equal(t, int64(1), oldest.Token)

	// drop every pending "x".
	for _, msg := range reg.Pending("x") {
		require.True(t, reg.Drop(msg))
	}
	require.False(t, reg.Drop(&Message{Token: 3, Topic: "x"}))
	require.Empty(t, reg.Pending("x"))
	require.Equal(t, int64(3), reg.Len())
	oldest, _ = reg.Oldest()
	require.Equal(t, int64(2), oldest.Token)
	reg.Validate()
}

func TestMaxInflight(t *testing.T) {
	reg := NewRegistry("session", lib.Settings{"maxinflight": 2})
	reg.Publish("a", 1, nil)
	reg.Publish("a", 1, nil)
	_, err := reg.Publish("a", 1, nil)
	require.True(t, errors.Is(err, api.ErrorOutofMemory), err)

	reg.Delivered(1)
	msg, err := reg.Publish("a", 1, nil)
	require.NoError(t, err)
	require.Equal(t, int64(3), msg.Token)
	require.Equal(t, int64(3), reg.Stats()["nexttoken"].(int64)-1)

	require.Panics(t, func() { NewRegistry("bad", lib.Settings{"maxinflight": 0}) })
}

func TestConcurrentPublish(t *testing.T) {
	reg := NewRegistry("session", nil)
	var wg sync.WaitGroup
	for g := 0; g < 8; g++ {
		wg.Add(1)
		go func(g int) {
			defer wg.Done()
			for i := 0; i < 100; i++ {
				msg, err := reg.Publish(fmt.Sprintf("t%v", g), 1, []byte("x"))
				if err != nil {
					t.Error(err)
					return
				}
				if i%2 == 0 {
					reg.Delivered(msg.Token)
				}
			}
		}(g)
	}
	wg.Wait()
	require.Equal(t, int64(400), reg.Len())
	require.Equal(t, int64(400), reg.Bytes())
	require.Len(t, reg.Pending("t3"), 50)
	reg.Validate()
}
