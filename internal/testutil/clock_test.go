package testutil

import (
	"sync"
	"testing"
	"time"
)

func TestSteppedClock_Advances(t *testing.T) {
	base := time.Unix(1700000000, 0)
	c := NewSteppedClock(base, time.Second)

	if got := c.Now(); !got.Equal(base.Add(time.Second)) {
		t.Errorf("first Now() = %v, want %v", got, base.Add(time.Second))
	}
	if got := c.Now(); !got.Equal(base.Add(2 * time.Second)) {
		t.Errorf("second Now() = %v, want %v", got, base.Add(2*time.Second))
	}
	if got := c.Current(); !got.Equal(base.Add(2 * time.Second)) {
		t.Errorf("Current() advanced the clock: %v", got)
	}
}

func TestSteppedClock_Reset(t *testing.T) {
	base := time.Unix(1700000000, 0)
	c := NewSteppedClock(base, time.Minute)

	c.Now()
	c.Now()
	c.Reset()
	if got := c.Now(); !got.Equal(base.Add(time.Minute)) {
		t.Errorf("Now() after Reset = %v, want %v", got, base.Add(time.Minute))
	}
}

func TestSteppedClock_ConcurrentUse(t *testing.T) {
	c := NewSteppedClock(time.Unix(0, 0), time.Millisecond)

	var wg sync.WaitGroup
	for i := 0; i < 50; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			c.Now()
		}()
	}
	wg.Wait()

	want := time.Unix(0, 0).Add(50 * time.Millisecond)
	if got := c.Current(); !got.Equal(want) {
		t.Errorf("after 50 concurrent calls Current() = %v, want %v", got, want)
	}
}
