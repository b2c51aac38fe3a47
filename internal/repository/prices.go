package repository

import (
	"context"
	"fmt"
	"time"

	"marketsim/types"

	"github.com/shopspring/decimal"
)

const dailyClosesQuery = `
SELECT day, ticker, close
FROM daily_closes
WHERE ticker = ANY($1)
  AND day BETWEEN $2 AND $3
ORDER BY day, ticker`

// GetClosingPrices returns a fully filled price panel for the requested
// symbols over [start, end]. The trading calendar is the set of days the
// store has at least one close for; gaps within it are filled per symbol.
func (db *Database) GetClosingPrices(ctx context.Context, symbols []string, start, end time.Time) (*types.PricePanel, error) {
	rows, err := db.conn.Query(ctx, dailyClosesQuery, symbols, start, end)
	if err != nil {
		return nil, fmt.Errorf("query daily closes: %w", err)
	}
	defer rows.Close()

	obs := make(observations, len(symbols))
	daySet := make(map[int64]time.Time)

	for rows.Next() {
		var (
			day    time.Time
			ticker string
			close  decimal.Decimal
		)
		if err := rows.Scan(&day, &ticker, &close); err != nil {
			return nil, fmt.Errorf("scan daily close: %w", err)
		}
		day = types.Day(day)
		daySet[day.Unix()] = day
		if obs[ticker] == nil {
			obs[ticker] = make(map[int64]decimal.Decimal)
		}
		obs[ticker][day.Unix()] = close
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("read daily closes: %w", err)
	}

	for _, symbol := range symbols {
		if len(obs[symbol]) == 0 {
			return nil, fmt.Errorf("%w: %s", ErrNoPrices, symbol)
		}
	}

	panel, fill, err := densify(sortedDates(daySet), obs)
	if err != nil {
		return nil, err
	}
	db.lastFill = fill
	return panel, nil
}
