// Package benchmark generates the static buy-and-hold trade list: buy a
// fixed block on the first trading day, sell it on the last.
package benchmark

import (
	"fmt"

	"marketsim/internal/repository"
	"marketsim/types"

	"github.com/shopspring/decimal"
)

func Trades(panel *types.PricePanel, symbol string, shares decimal.Decimal) ([]types.Order, error) {
	if !panel.HasSymbol(symbol) {
		return nil, fmt.Errorf("%w: %s", repository.ErrNoPrices, symbol)
	}
	if panel.NumDays() < 2 {
		return nil, fmt.Errorf("%w: need at least two trading days for %s", repository.ErrNoPrices, symbol)
	}

	return []types.Order{
		types.NewOrder(panel.Dates[0], symbol, types.SideTypeBuy, shares),
		types.NewOrder(panel.Dates[panel.NumDays()-1], symbol, types.SideTypeSell, shares),
	}, nil
}
