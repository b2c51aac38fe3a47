package engine

import (
	"context"
	"fmt"
	"time"

	"marketsim/types"
)

// PriceProvider returns one closing price per symbol per trading day over
// the requested range, with gaps already resolved by forward-fill then
// back-fill. The engine trusts that guarantee and does no filling itself.
type PriceProvider interface {
	GetClosingPrices(ctx context.Context, symbols []string, start, end time.Time) (*types.PricePanel, error)
}

type Engine struct {
	prices PriceProvider
	config *SimulationConfig
}

func NewEngine(prices PriceProvider, config *SimulationConfig) *Engine {
	return &Engine{
		prices: prices,
		config: config,
	}
}

// ComputePortfolioValues evaluates the order sequence against historical
// closes and returns the day-by-day valuation series over the window
// bounded by the first and last order dates (or the configured window).
// The price panel is fetched once, with one leading day so providers have
// a forward-fill seed; the output starts at the window's first day.
func (e *Engine) ComputePortfolioValues(ctx context.Context, raw []types.Order) (types.ValuationSeries, error) {
	orders, err := LoadOrders(raw, nil)
	if err != nil {
		return nil, err
	}

	start, end := e.window(orders)
	panel, err := e.prices.GetClosingPrices(ctx, orderSymbols(orders), start.AddDate(0, 0, -1), end)
	if err != nil {
		return nil, fmt.Errorf("load prices: %w", err)
	}

	return runLedger(orders, panel, start, end, e.config)
}

func (e *Engine) window(orders []types.Order) (time.Time, time.Time) {
	if !e.config.windowStart.IsZero() && !e.config.windowEnd.IsZero() {
		return types.Day(e.config.windowStart), types.Day(e.config.windowEnd)
	}
	return orders[0].Date, orders[len(orders)-1].Date
}

func orderSymbols(orders []types.Order) []string {
	seen := make(map[string]bool)
	var symbols []string
	for _, o := range orders {
		if !seen[o.Symbol] {
			seen[o.Symbol] = true
			symbols = append(symbols, o.Symbol)
		}
	}
	return symbols
}
