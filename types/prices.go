package types

import (
	"sort"
	"time"

	"github.com/shopspring/decimal"
)

// PricePanel holds one closing price per symbol per trading day, columnar:
// Closes[symbol] is parallel to Dates. Providers guarantee the panel is
// fully filled before it reaches the engine.
type PricePanel struct {
	Dates  []time.Time
	Closes map[string][]decimal.Decimal
}

func NewPricePanel(dates []time.Time, closes map[string][]decimal.Decimal) *PricePanel {
	return &PricePanel{Dates: dates, Closes: closes}
}

func (p *PricePanel) NumDays() int {
	return len(p.Dates)
}

func (p *PricePanel) HasSymbol(symbol string) bool {
	_, ok := p.Closes[symbol]
	return ok
}

// Price returns the closing price of symbol on the day-th trading day.
func (p *PricePanel) Price(symbol string, day int) decimal.Decimal {
	return p.Closes[symbol][day]
}

func (p *PricePanel) Symbols() []string {
	symbols := make([]string, 0, len(p.Closes))
	for s := range p.Closes {
		symbols = append(symbols, s)
	}
	sort.Strings(symbols)
	return symbols
}

// DateIndex maps each trading day (unix seconds at UTC midnight) to its
// position in Dates.
func (p *PricePanel) DateIndex() map[int64]int {
	index := make(map[int64]int, len(p.Dates))
	for i, d := range p.Dates {
		index[d.Unix()] = i
	}
	return index
}
