package types

import (
	"time"

	"github.com/shopspring/decimal"
)

type Side string

const (
	SideTypeBuy  Side = "BUY"
	SideTypeSell Side = "SELL"
)

// Order is a single trade instruction executed in full at that day's
// closing price.
type Order struct {
	Date   time.Time
	Symbol string
	Side   Side
	Shares decimal.Decimal
}

func NewOrder(date time.Time, symbol string, side Side, shares decimal.Decimal) Order {
	return Order{
		Date:   Day(date),
		Symbol: symbol,
		Side:   side,
		Shares: shares,
	}
}

// Day truncates a timestamp to its UTC calendar day. All order and panel
// dates are normalized through this so equality checks line up.
func Day(t time.Time) time.Time {
	u := t.UTC()
	return time.Date(u.Year(), u.Month(), u.Day(), 0, 0, 0, 0, time.UTC)
}
