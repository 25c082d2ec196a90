package shutdown

import (
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestShutdownRunsInReverseOrderOnce(t *testing.T) {
	m := NewManager(nil)

	var mu sync.Mutex
	var order []string
	record := func(name string) Func {
		return func() {
			mu.Lock()
			defer mu.Unlock()
			order = append(order, name)
		}
	}

	m.Register("client", record("client"))
	m.Register("controller", record("controller"))
	m.Register("monitor", record("monitor"))

	m.Shutdown()
	m.Shutdown()

	assert.Equal(t, []string{"monitor", "controller", "client"}, order)
	assert.Error(t, m.Context().Err())

	select {
	case <-m.Done():
	default:
		t.Fatal("done channel not closed")
	}
}

func TestShutdownSkipsStuckComponent(t *testing.T) {
	m := NewManager(nil)
	m.SetStepTimeout(20 * time.Millisecond)

	block := make(chan struct{})
	defer close(block)

	stopped := false
	m.Register("fast", Func(func() { stopped = true }))
	m.Register("stuck", Func(func() { <-block }))

	start := time.Now()
	m.Shutdown()

	assert.True(t, stopped)
	assert.Less(t, time.Since(start), time.Second)
}
