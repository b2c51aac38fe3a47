package types

import (
	"time"

	"github.com/shopspring/decimal"
)

// Snapshot is the total portfolio value (cash plus mark-to-market position
// value) for one trading day. Immutable once produced.
type Snapshot struct {
	Date  time.Time
	Value decimal.Decimal
}

// ValuationSeries is date-ascending, one snapshot per trading day, no
// duplicate dates.
type ValuationSeries []Snapshot

func (s ValuationSeries) First() Snapshot {
	return s[0]
}

func (s ValuationSeries) Last() Snapshot {
	return s[len(s)-1]
}
