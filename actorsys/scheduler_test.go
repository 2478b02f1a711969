package actorsys

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSchedulerSubmit(t *testing.T) {
	t.Run("Should run the submitted function and return its result", func(t *testing.T) {
		s := NewScheduler(2)
		defer s.Close()

		res := s.Submit(context.Background(), func() Result {
			return Ok("done")
		})

		assert.True(t, res.Success)
		assert.Equal(t, "done", res.Payload)
	})

	t.Run("Should report interruption when the context is canceled while awaiting", func(t *testing.T) {
		s := NewScheduler(1)
		defer s.Close()

		ctx, cancel := context.WithCancel(context.Background())
		started := make(chan struct{})
		release := make(chan struct{})
		// occupy the single worker so the next submission queues
		go s.Submit(context.Background(), func() Result {
			close(started)
			<-release
			return Ok("first")
		})
		<-started

		cancel()
		res := s.Submit(ctx, func() Result {
			return Ok("second")
		})
		close(release)

		assert.False(t, res.Success)
		assert.Equal(t, "Action interrupted", res.Payload)
	})

	t.Run("Should allow independent concurrent submissions to progress", func(t *testing.T) {
		s := NewScheduler(4)
		defer s.Close()

		results := make(chan Result, 4)
		for i := 0; i < 4; i++ {
			go func() {
				results <- s.Submit(context.Background(), func() Result {
					time.Sleep(time.Millisecond)
					return Ok("x")
				})
			}()
		}
		for i := 0; i < 4; i++ {
			r := <-results
			require.True(t, r.Success)
		}
	})
}
