package utils

import (
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestDebouncerOnlyLastCallFires(t *testing.T) {
	d := NewDebouncer(50 * time.Millisecond)
	var fired int32
	var got int32

	for i := 1; i <= 5; i++ {
		n := int32(i)
		d.Call(func() {
			atomic.AddInt32(&fired, 1)
			atomic.StoreInt32(&got, n)
		})
		time.Sleep(10 * time.Millisecond)
	}

	time.Sleep(150 * time.Millisecond)
	assert.Equal(t, int32(1), atomic.LoadInt32(&fired))
	assert.Equal(t, int32(5), atomic.LoadInt32(&got))
}

func TestDebouncerSpacedCallsAllFire(t *testing.T) {
	d := NewDebouncer(20 * time.Millisecond)
	var fired int32

	d.Call(func() { atomic.AddInt32(&fired, 1) })
	time.Sleep(60 * time.Millisecond)
	d.Call(func() { atomic.AddInt32(&fired, 1) })
	time.Sleep(60 * time.Millisecond)

	assert.Equal(t, int32(2), atomic.LoadInt32(&fired))
}

func TestDebouncerStopCancelsPending(t *testing.T) {
	d := NewDebouncer(30 * time.Millisecond)
	var fired int32

	d.Call(func() { atomic.AddInt32(&fired, 1) })
	d.Stop()
	time.Sleep(80 * time.Millisecond)

	assert.Equal(t, int32(0), atomic.LoadInt32(&fired))
}
