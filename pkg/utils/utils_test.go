package utils

import (
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestGoSafe_RecoversPanic(t *testing.T) {
	var wg sync.WaitGroup
	wg.Add(1)
	GoSafe(func() {
		defer wg.Done()
		panic("boom")
	})
	wg.Wait()
}

func TestDaysBetween(t *testing.T) {
	a := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	assert.InDelta(t, 7.5, DaysBetween(a, a.Add(180*time.Hour)), 1e-9)
	assert.Equal(t, 42, *ToPointer(42))
}

func TestPrettyDate(t *testing.T) {
	at := time.Date(2024, 3, 4, 15, 30, 0, 0, time.UTC)
	assert.Equal(t, "Seg, 04 Mar 2024 12:30 BRT", PrettyDate(at))
}
