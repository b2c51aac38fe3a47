package repository

import (
	"errors"
	"fmt"
	"sort"
	"time"

	"marketsim/types"

	"github.com/shopspring/decimal"
)

// Global error declarations.
var (
	ErrNoPrices = errors.New("no closing prices found in datasource")
)

// observations holds raw, possibly gappy closing prices: per symbol, a map
// keyed by unix seconds at UTC midnight.
type observations map[string]map[int64]decimal.Decimal

// FilledCell records one price that was resolved by fill rather than
// observed. Callers can surface these as data-quality warnings; the panel
// itself stays continuous either way.
type FilledCell struct {
	Symbol string
	Date   time.Time
}

type FillReport struct {
	Cells []FilledCell
}

func (r FillReport) Count() int {
	return len(r.Cells)
}

// densify builds a fully filled panel over the given trading days from
// sparse observations: each gap carries the most recent known price
// forward, and a leading gap is filled backward from the first known
// price. A symbol with no observations at all is an error.
func densify(dates []time.Time, obs observations) (*types.PricePanel, FillReport, error) {
	closes := make(map[string][]decimal.Decimal, len(obs))
	var report FillReport

	for symbol, points := range obs {
		col := make([]decimal.Decimal, len(dates))
		firstKnown := -1
		var last decimal.Decimal

		for i, d := range dates {
			if v, ok := points[d.Unix()]; ok {
				if firstKnown == -1 {
					firstKnown = i
				}
				last = v
				col[i] = v
				continue
			}
			if firstKnown != -1 {
				col[i] = last
				report.Cells = append(report.Cells, FilledCell{Symbol: symbol, Date: d})
			}
		}
		if firstKnown == -1 {
			return nil, FillReport{}, fmt.Errorf("%w: %s", ErrNoPrices, symbol)
		}
		for i := 0; i < firstKnown; i++ {
			col[i] = col[firstKnown]
			report.Cells = append(report.Cells, FilledCell{Symbol: symbol, Date: dates[i]})
		}
		closes[symbol] = col
	}

	sort.Slice(report.Cells, func(i, j int) bool {
		a, b := report.Cells[i], report.Cells[j]
		if a.Symbol != b.Symbol {
			return a.Symbol < b.Symbol
		}
		return a.Date.Before(b.Date)
	})

	return types.NewPricePanel(dates, closes), report, nil
}

// sortedDates flattens a day set into an ascending slice.
func sortedDates(daySet map[int64]time.Time) []time.Time {
	dates := make([]time.Time, 0, len(daySet))
	for _, d := range daySet {
		dates = append(dates, d)
	}
	sort.Slice(dates, func(i, j int) bool { return dates[i].Before(dates[j]) })
	return dates
}
