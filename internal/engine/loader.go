package engine

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"sort"
	"time"

	"marketsim/types"

	"github.com/shopspring/decimal"
)

// Global error declarations.
var (
	InvalidOrderErr   = errors.New("invalid order record")
	EmptyOrderListErr = errors.New("empty order list")
	UnknownSymbolErr  = errors.New("symbol not in traded universe")
)

const orderDateLayout = "2006-01-02"

// LoadOrders validates raw order records and returns a copy sorted by date
// ascending. Orders sharing a date keep their input order; same-day cash
// sequencing depends on it. A nil universe accepts any symbol.
func LoadOrders(raw []types.Order, universe map[string]bool) ([]types.Order, error) {
	if len(raw) == 0 {
		return nil, EmptyOrderListErr
	}

	orders := append([]types.Order(nil), raw...)
	for i := range orders {
		o := &orders[i]
		if o.Date.IsZero() {
			return nil, fmt.Errorf("%w: order %d has no date", InvalidOrderErr, i)
		}
		if o.Side != types.SideTypeBuy && o.Side != types.SideTypeSell {
			return nil, fmt.Errorf("%w: order %d has unknown side %q", InvalidOrderErr, i, o.Side)
		}
		if o.Shares.LessThanOrEqual(decimal.Zero) {
			return nil, fmt.Errorf("%w: order %d has non-positive shares %s", InvalidOrderErr, i, o.Shares)
		}
		if universe != nil && !universe[o.Symbol] {
			return nil, fmt.Errorf("%w: %s", UnknownSymbolErr, o.Symbol)
		}
		o.Date = types.Day(o.Date)
	}

	sort.SliceStable(orders, func(i, j int) bool { return orders[i].Date.Before(orders[j].Date) })
	return orders, nil
}

// ReadOrdersCSV parses order records in Date,Symbol,Order,Shares format.
// A header row is skipped when present. Records are validated and sorted
// via LoadOrders.
func ReadOrdersCSV(r io.Reader) ([]types.Order, error) {
	cr := csv.NewReader(r)
	cr.TrimLeadingSpace = true

	var orders []types.Order
	line := 0
	for {
		record, err := cr.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("read orders: %w", err)
		}
		line++
		if len(record) != 4 {
			return nil, fmt.Errorf("%w: line %d has %d fields, want 4", InvalidOrderErr, line, len(record))
		}
		if line == 1 && record[0] == "Date" {
			continue
		}

		date, err := time.Parse(orderDateLayout, record[0])
		if err != nil {
			return nil, fmt.Errorf("%w: line %d has unparsable date %q", InvalidOrderErr, line, record[0])
		}
		shares, err := decimal.NewFromString(record[3])
		if err != nil {
			return nil, fmt.Errorf("%w: line %d has unparsable shares %q", InvalidOrderErr, line, record[3])
		}
		orders = append(orders, types.NewOrder(date, record[1], types.Side(record[2]), shares))
	}

	return LoadOrders(orders, nil)
}

// ReadOrderFile reads an order CSV from disk.
func ReadOrderFile(path string) ([]types.Order, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open order file: %w", err)
	}
	defer f.Close()
	return ReadOrdersCSV(f)
}
