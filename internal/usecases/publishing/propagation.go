package publishing

import (
	"context"
	"fmt"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/vfg2006/ad-publisher-api/internal/config"
)

// PropagationPoller espera uma entidade recém-criada ficar visível para leitura.
// Faz até MaxAttempts leituras; entre elas o intervalo cresce pelo Multiplier.
type PropagationPoller struct {
	InitialDelay time.Duration
	Interval     time.Duration
	Multiplier   float64
	MaxAttempts  int
}

func NewPropagationPoller(cfg config.Publish) *PropagationPoller {
	return &PropagationPoller{
		InitialDelay: cfg.PropagationInitialDelay,
		Interval:     cfg.PropagationInterval,
		Multiplier:   cfg.PropagationMultiplier,
		MaxAttempts:  cfg.PropagationMaxAttempts,
	}
}

// WaitVisible chama check até ele não retornar erro. Esgotadas as tentativas retorna ErrPropagationTimeout.
func (p *PropagationPoller) WaitVisible(ctx context.Context, check func(ctx context.Context) error) error {
	attempts := max(p.MaxAttempts, 1)
	interval := p.Interval
	multiplier := p.Multiplier
	if multiplier < 1 {
		multiplier = 1
	}

	if err := sleep(ctx, p.InitialDelay); err != nil {
		return err
	}

	var lastErr error
	for attempt := 1; attempt <= attempts; attempt++ {
		lastErr = check(ctx)
		if lastErr == nil {
			return nil
		}

		logrus.WithFields(logrus.Fields{
			"attempt":      attempt,
			"max_attempts": attempts,
			"error":        lastErr.Error(),
		}).Debug("publishing: entity not visible yet")

		if attempt == attempts {
			break
		}

		if err := sleep(ctx, interval); err != nil {
			return err
		}
		interval = time.Duration(float64(interval) * multiplier)
	}

	return fmt.Errorf("%w after %d attempts: %v", ErrPropagationTimeout, attempts, lastErr)
}

func sleep(ctx context.Context, d time.Duration) error {
	if d <= 0 {
		return ctx.Err()
	}

	timer := time.NewTimer(d)
	defer timer.Stop()

	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}
