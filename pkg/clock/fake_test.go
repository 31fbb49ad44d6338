package clock

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFake_AfterFuncFiresOnAdvance(t *testing.T) {
	fc := NewFake(time.Date(2025, 9, 21, 14, 30, 0, 0, time.UTC))

	var fired []string
	fc.AfterFunc(2*time.Second, func() { fired = append(fired, "second") })
	fc.AfterFunc(time.Second, func() { fired = append(fired, "first") })

	fc.Advance(500 * time.Millisecond)
	assert.Empty(t, fired)

	fc.Advance(2 * time.Second)
	assert.Equal(t, []string{"first", "second"}, fired)
	assert.Equal(t, 0, fc.Pending())
}

func TestFake_StopCancelsTimer(t *testing.T) {
	fc := NewFake(time.Now())

	called := false
	timer := fc.AfterFunc(time.Second, func() { called = true })
	assert.True(t, timer.Stop())
	assert.False(t, timer.Stop())

	fc.Advance(time.Minute)
	assert.False(t, called)
}

func TestFake_SleepUnblocksOnAdvance(t *testing.T) {
	fc := NewFake(time.Now())
	done := make(chan error, 1)

	go func() {
		done <- fc.Sleep(context.Background(), time.Second)
	}()

	fc.BlockUntil(1)
	fc.Advance(time.Second)

	select {
	case err := <-done:
		require.NoError(t, err)
	case <-time.After(time.Second):
		t.Fatal("sleep did not return after advance")
	}
}

func TestFake_SleepHonoursContext(t *testing.T) {
	fc := NewFake(time.Now())
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	err := fc.Sleep(ctx, time.Hour)
	assert.ErrorIs(t, err, context.Canceled)
	assert.Equal(t, 0, fc.Pending())
}
