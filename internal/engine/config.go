package engine

import (
	"errors"
	"fmt"
	"time"

	"github.com/shopspring/decimal"
)

var InvalidConfigErr = errors.New("invalid simulation config")

// SimulationConfig carries the cost parameters and optional explicit
// valuation window for one simulation run.
type SimulationConfig struct {
	startingCash decimal.Decimal
	commission   decimal.Decimal
	impact       decimal.Decimal

	windowStart time.Time
	windowEnd   time.Time

	progress bool
}

var one = decimal.NewFromInt(1)

func NewSimulationConfig(startingCash, commission, impact decimal.Decimal) (*SimulationConfig, error) {
	if startingCash.LessThanOrEqual(decimal.Zero) {
		return nil, fmt.Errorf("%w: starting cash %s must be positive", InvalidConfigErr, startingCash)
	}
	if commission.IsNegative() {
		return nil, fmt.Errorf("%w: commission %s must not be negative", InvalidConfigErr, commission)
	}
	if impact.IsNegative() || impact.GreaterThanOrEqual(one) {
		return nil, fmt.Errorf("%w: impact %s must be in [0,1)", InvalidConfigErr, impact)
	}
	return &SimulationConfig{
		startingCash: startingCash,
		commission:   commission,
		impact:       impact,
	}, nil
}

// WithWindow fixes the valuation window instead of deriving it from the
// first and last order dates.
func (c *SimulationConfig) WithWindow(start, end time.Time) *SimulationConfig {
	c.windowStart = start
	c.windowEnd = end
	return c
}

// WithProgress enables the terminal progress bar during the run loop.
func (c *SimulationConfig) WithProgress() *SimulationConfig {
	c.progress = true
	return c
}
