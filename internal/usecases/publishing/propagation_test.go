package publishing_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/vfg2006/ad-publisher-api/internal/usecases/publishing"
)

func fastPoller(attempts int) *publishing.PropagationPoller {
	return &publishing.PropagationPoller{
		InitialDelay: time.Millisecond,
		Interval:     time.Millisecond,
		Multiplier:   2,
		MaxAttempts:  attempts,
	}
}

func TestPropagationPoller_WaitVisible(t *testing.T) {
	t.Run("retorna assim que a entidade fica visível", func(t *testing.T) {
		calls := 0
		err := fastPoller(4).WaitVisible(context.Background(), func(context.Context) error {
			calls++
			if calls < 3 {
				return errors.New("not found")
			}
			return nil
		})

		assert.NoError(t, err)
		assert.Equal(t, 3, calls)
	})

	t.Run("esgota as tentativas com ErrPropagationTimeout", func(t *testing.T) {
		calls := 0
		err := fastPoller(3).WaitVisible(context.Background(), func(context.Context) error {
			calls++
			return errors.New("not found")
		})

		assert.ErrorIs(t, err, publishing.ErrPropagationTimeout)
		assert.ErrorContains(t, err, "not found")
		assert.Equal(t, 3, calls)
	})

	t.Run("zero tentativas ainda faz uma leitura", func(t *testing.T) {
		calls := 0
		err := fastPoller(0).WaitVisible(context.Background(), func(context.Context) error {
			calls++
			return nil
		})

		assert.NoError(t, err)
		assert.Equal(t, 1, calls)
	})

	t.Run("contexto cancelado interrompe a espera", func(t *testing.T) {
		ctx, cancel := context.WithCancel(context.Background())
		cancel()

		poller := &publishing.PropagationPoller{InitialDelay: time.Hour, MaxAttempts: 3}
		err := poller.WaitVisible(ctx, func(context.Context) error { return nil })

		assert.ErrorIs(t, err, context.Canceled)
	})
}
