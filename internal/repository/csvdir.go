package repository

import (
	"context"
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	"marketsim/types"

	"github.com/shopspring/decimal"
)

const priceDateLayout = "2006-01-02"

// CSVDir serves closing prices from a directory of per-symbol CSV files
// (<dir>/<SYMBOL>.csv). The adjusted close column is preferred over the
// raw close when both are present.
type CSVDir struct {
	dir string

	lastFill FillReport
}

func NewCSVDir(dir string) *CSVDir {
	return &CSVDir{dir: dir}
}

// LastFill reports which cells of the most recently built panel were
// resolved by fill rather than observed.
func (c *CSVDir) LastFill() FillReport {
	return c.lastFill
}

func (c *CSVDir) GetClosingPrices(_ context.Context, symbols []string, start, end time.Time) (*types.PricePanel, error) {
	start, end = types.Day(start), types.Day(end)

	obs := make(observations, len(symbols))
	daySet := make(map[int64]time.Time)

	for _, symbol := range symbols {
		points, err := c.readSymbolFile(symbol, start, end, daySet)
		if err != nil {
			return nil, err
		}
		if len(points) == 0 {
			return nil, fmt.Errorf("%w: %s", ErrNoPrices, symbol)
		}
		obs[symbol] = points
	}

	panel, fill, err := densify(sortedDates(daySet), obs)
	if err != nil {
		return nil, err
	}
	c.lastFill = fill
	return panel, nil
}

func (c *CSVDir) readSymbolFile(symbol string, start, end time.Time, daySet map[int64]time.Time) (map[int64]decimal.Decimal, error) {
	path := filepath.Join(c.dir, symbol+".csv")
	f, err := os.Open(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("%w: %s", ErrNoPrices, symbol)
		}
		return nil, fmt.Errorf("open price file: %w", err)
	}
	defer f.Close()

	cr := csv.NewReader(f)
	cr.TrimLeadingSpace = true

	header, err := cr.Read()
	if err != nil {
		return nil, fmt.Errorf("read price file header %s: %w", path, err)
	}
	dateCol, closeCol, err := priceColumns(header)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}

	points := make(map[int64]decimal.Decimal)
	for {
		record, err := cr.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("read price file %s: %w", path, err)
		}

		day, err := time.Parse(priceDateLayout, record[dateCol])
		if err != nil {
			return nil, fmt.Errorf("%s: unparsable date %q: %w", path, record[dateCol], err)
		}
		day = types.Day(day)
		if day.Before(start) || day.After(end) {
			continue
		}
		close, err := decimal.NewFromString(record[closeCol])
		if err != nil {
			return nil, fmt.Errorf("%s: unparsable close %q: %w", path, record[closeCol], err)
		}

		daySet[day.Unix()] = day
		points[day.Unix()] = close
	}
	return points, nil
}

func priceColumns(header []string) (dateCol, closeCol int, err error) {
	dateCol, closeCol = -1, -1
	for i, name := range header {
		switch name {
		case "Date":
			dateCol = i
		case "Adj Close":
			closeCol = i
		case "Close":
			if closeCol == -1 {
				closeCol = i
			}
		}
	}
	if dateCol == -1 || closeCol == -1 {
		return 0, 0, fmt.Errorf("missing Date or Close column")
	}
	return dateCol, closeCol, nil
}
