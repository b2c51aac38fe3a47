package engine

import (
	"errors"

	"marketsim/types"

	"github.com/shopspring/decimal"
)

var UnknownSideErr = errors.New("unknown order side")

// orderDeltas computes the position and cash change of executing one order
// at the given reference price. Impact moves the effective fill price
// against the trader on both sides; commission is a flat per-order fee.
// Pure function, no shared state.
func orderDeltas(side types.Side, shares, price, impact, commission decimal.Decimal) (posDelta, cashDelta decimal.Decimal, err error) {
	switch side {
	case types.SideTypeBuy:
		fill := price.Mul(one.Add(impact))
		return shares, shares.Mul(fill).Neg().Sub(commission), nil
	case types.SideTypeSell:
		fill := price.Mul(one.Sub(impact))
		return shares.Neg(), shares.Mul(fill).Sub(commission), nil
	default:
		return decimal.Zero, decimal.Zero, UnknownSideErr
	}
}
