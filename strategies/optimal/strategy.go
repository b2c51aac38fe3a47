// Package optimal generates the trade list of a trader with perfect
// one-day foresight. The resulting valuation curve is an upper bound used
// as a comparison benchmark, not a tradable strategy.
package optimal

import (
	"fmt"

	"marketsim/internal/repository"
	"marketsim/types"

	"github.com/shopspring/decimal"
)

type Strategy struct {
	// TradeSize is the absolute holding targeted ahead of each day:
	// +TradeSize before an up day, -TradeSize before a down day.
	TradeSize decimal.Decimal
}

func New() *Strategy {
	return &Strategy{TradeSize: decimal.NewFromInt(1000)}
}

// Trades walks the panel and, on every day but the last, emits the order
// that moves net holdings to the target implied by the next day's close.
// Days where the target is already held produce no order.
func (s *Strategy) Trades(panel *types.PricePanel, symbol string) ([]types.Order, error) {
	closes, ok := panel.Closes[symbol]
	if !ok {
		return nil, fmt.Errorf("%w: %s", repository.ErrNoPrices, symbol)
	}

	var orders []types.Order
	net := decimal.Zero
	for i := 0; i+1 < len(closes); i++ {
		target := s.TradeSize.Neg()
		if closes[i].LessThan(closes[i+1]) {
			target = s.TradeSize
		}

		delta := target.Sub(net)
		if delta.IsZero() {
			continue
		}
		side := types.SideTypeBuy
		if delta.IsNegative() {
			side = types.SideTypeSell
		}
		orders = append(orders, types.NewOrder(panel.Dates[i], symbol, side, delta.Abs()))
		net = target
	}
	return orders, nil
}
