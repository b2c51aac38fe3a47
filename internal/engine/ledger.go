package engine

import (
	"errors"
	"fmt"
	"io"
	"sort"
	"time"

	"marketsim/types"

	"github.com/schollz/progressbar/v3"
	"github.com/shopspring/decimal"
)

var MissingPriceDataErr = errors.New("no price data for order date")

// ledger is the running {cash, positions} state carried day-over-day.
// Exactly one writer: the run loop below.
type ledger struct {
	cash      decimal.Decimal
	positions map[string]decimal.Decimal
}

func newLedger(startingCash decimal.Decimal) *ledger {
	return &ledger{
		cash:      startingCash,
		positions: make(map[string]decimal.Decimal),
	}
}

func (l *ledger) apply(o types.Order, price, impact, commission decimal.Decimal) error {
	posDelta, cashDelta, err := orderDeltas(o.Side, o.Shares, price, impact, commission)
	if err != nil {
		return fmt.Errorf("apply order %s %s %s: %w", o.Side, o.Shares, o.Symbol, err)
	}
	l.cash = l.cash.Add(cashDelta)
	l.positions[o.Symbol] = l.positions[o.Symbol].Add(posDelta)
	return nil
}

// value marks all positions to that day's closes. Decimal addition is
// exact, so map iteration order does not affect the result.
func (l *ledger) value(panel *types.PricePanel, day int) decimal.Decimal {
	total := l.cash
	for symbol, qty := range l.positions {
		if qty.IsZero() {
			continue
		}
		total = total.Add(qty.Mul(panel.Price(symbol, day)))
	}
	return total
}

// runLedger folds the date-sorted order list into one ledger, emitting one
// snapshot per trading day in [start, end]. All orders are validated
// against the panel before the loop starts; the loop itself cannot fail.
func runLedger(orders []types.Order, panel *types.PricePanel, start, end time.Time, cfg *SimulationConfig) (types.ValuationSeries, error) {
	index := panel.DateIndex()
	for _, o := range orders {
		if !panel.HasSymbol(o.Symbol) {
			return nil, fmt.Errorf("%w: %s", UnknownSymbolErr, o.Symbol)
		}
		_, ok := index[o.Date.Unix()]
		if !ok || o.Date.Before(start) || o.Date.After(end) {
			return nil, fmt.Errorf("%w: %s %s", MissingPriceDataErr, o.Symbol, o.Date.Format(orderDateLayout))
		}
	}

	first := sort.Search(len(panel.Dates), func(i int) bool { return !panel.Dates[i].Before(start) })

	led := newLedger(cfg.startingCash)
	series := make(types.ValuationSeries, 0, panel.NumDays()-first)
	bar := initProgressBar(panel.NumDays()-first, cfg.progress)

	oi := 0
	for di := first; di < panel.NumDays(); di++ {
		date := panel.Dates[di]
		if date.After(end) {
			break
		}
		for oi < len(orders) && orders[oi].Date.Equal(date) {
			o := orders[oi]
			if err := led.apply(o, panel.Price(o.Symbol, di), cfg.impact, cfg.commission); err != nil {
				return nil, err
			}
			oi++
		}
		series = append(series, types.Snapshot{Date: date, Value: led.value(panel, di)})
		bar.Add(1)
	}
	return series, nil
}

func initProgressBar(maxTicks int, visible bool) *progressbar.ProgressBar {
	options := []progressbar.Option{
		progressbar.OptionEnableColorCodes(true),
		progressbar.OptionSetElapsedTime(true),
		progressbar.OptionShowElapsedTimeOnFinish(),
		progressbar.OptionSetDescription("Simulating portfolio..."),
		progressbar.OptionSetTheme(progressbar.Theme{
			Saucer:        "[green]=[reset]",
			SaucerHead:    "[green]>[reset]",
			SaucerPadding: " ",
			BarStart:      "[",
			BarEnd:        "]",
		}),
	}
	if !visible {
		options = append(options, progressbar.OptionSetWriter(io.Discard))
	}
	return progressbar.NewOptions(maxTicks, options...)
}
