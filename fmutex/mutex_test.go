package fmutex_test

import (
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/wardlem/fabricdb/fmutex"
)

func TestEnterLeaveExcludesOtherGoroutine(t *testing.T) {
	tk := fmutex.Enter(fmutex.InodeMutex, nil)

	acquired := make(chan struct{})
	go func() {
		inner := fmutex.Enter(fmutex.InodeMutex, nil)
		close(acquired)
		fmutex.Leave(inner)
	}()

	select {
	case <-acquired:
		t.Fatal("second goroutine acquired the mutex while it was held")
	case <-time.After(20 * time.Millisecond):
	}

	fmutex.Leave(tk)
	<-acquired
}

func TestNestedEnterWithTicketDoesNotDeadlock(t *testing.T) {
	outer := fmutex.Enter(fmutex.InodeMutex, nil)
	inner := fmutex.Enter(fmutex.InodeMutex, outer)
	fmutex.Leave(inner)
	fmutex.Leave(outer)
}

func TestLeaveUnheldTicketPanics(t *testing.T) {
	require.Panics(t, func() {
		fmutex.Leave(&fmutex.Ticket{})
	})
}

func TestLeaveNilPanics(t *testing.T) {
	require.Panics(t, func() {
		fmutex.Leave(nil)
	})
}

func TestConcurrentEnterLeaveSerializes(t *testing.T) {
	var counter int
	var wg sync.WaitGroup
	for i := 0; i < 50; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			tk := fmutex.Enter(fmutex.InodeMutex, nil)
			counter++
			fmutex.Leave(tk)
		}()
	}
	wg.Wait()
	require.Equal(t, 50, counter)
}
