// Package indicators computes technical indicators over daily closing
// price columns. All functions are pure: slice in, slice out, aligned to
// the input. Entries inside the warm-up window are left as the zero
// value; callers decide how to treat them.
package indicators

import (
	"math"

	"github.com/shopspring/decimal"
)

var one = decimal.NewFromInt(1)

// SMA is the m-day simple moving average; defined from index m-1 on.
func SMA(prices []decimal.Decimal, m int) []decimal.Decimal {
	out := make([]decimal.Decimal, len(prices))
	if m <= 0 || len(prices) < m {
		return out
	}
	window := decimal.Zero
	for i, p := range prices {
		window = window.Add(p)
		if i >= m {
			window = window.Sub(prices[i-m])
		}
		if i >= m-1 {
			out[i] = window.Div(decimal.NewFromInt(int64(m)))
		}
	}
	return out
}

// EMA is the exponential moving average with smoothing 2/(m+1), seeded
// with the first price.
func EMA(prices []decimal.Decimal, m int) []decimal.Decimal {
	out := make([]decimal.Decimal, len(prices))
	if m <= 0 || len(prices) == 0 {
		return out
	}
	alpha := decimal.NewFromInt(2).Div(decimal.NewFromInt(int64(m) + 1))
	out[0] = prices[0]
	for i := 1; i < len(prices); i++ {
		out[i] = prices[i].Mul(alpha).Add(out[i-1].Mul(one.Sub(alpha)))
	}
	return out
}

// Bollinger returns the upper and lower bands: the m-day mean plus/minus
// two m-day population standard deviations.
func Bollinger(prices []decimal.Decimal, m int) (upper, lower []decimal.Decimal) {
	upper = make([]decimal.Decimal, len(prices))
	lower = make([]decimal.Decimal, len(prices))
	if m <= 0 || len(prices) < m {
		return upper, lower
	}
	sma := SMA(prices, m)
	two := decimal.NewFromInt(2)
	for i := m - 1; i < len(prices); i++ {
		sd := rollingStd(prices[i-m+1:i+1], sma[i])
		upper[i] = sma[i].Add(two.Mul(sd))
		lower[i] = sma[i].Sub(two.Mul(sd))
	}
	return upper, lower
}

// RateOfChange is the fractional price change over m days; defined from
// index m on.
func RateOfChange(prices []decimal.Decimal, m int) []decimal.Decimal {
	out := make([]decimal.Decimal, len(prices))
	for i := m; i < len(prices); i++ {
		if prices[i-m].IsZero() {
			continue
		}
		out[i] = prices[i].Div(prices[i-m]).Sub(one)
	}
	return out
}

// Stochastic returns the %K oscillator over an m-day high/low range and
// its n-day moving average %D.
func Stochastic(prices []decimal.Decimal, m, n int) (k, d []decimal.Decimal) {
	k = make([]decimal.Decimal, len(prices))
	if m <= 0 || len(prices) < m {
		return k, make([]decimal.Decimal, len(prices))
	}
	hundred := decimal.NewFromInt(100)
	for i := m - 1; i < len(prices); i++ {
		lo, hi := prices[i-m+1], prices[i-m+1]
		for _, p := range prices[i-m+2 : i+1] {
			if p.LessThan(lo) {
				lo = p
			}
			if p.GreaterThan(hi) {
				hi = p
			}
		}
		span := hi.Sub(lo)
		if span.IsZero() {
			continue
		}
		k[i] = prices[i].Sub(lo).Mul(hundred).Div(span)
	}
	d = SMA(k, n)
	return k, d
}

// CCI is the m-day commodity channel index on closes: the deviation from
// the m-day mean, scaled by Lambert's constant times the average m-day
// standard deviation over the whole series.
func CCI(prices []decimal.Decimal, m int) []decimal.Decimal {
	out := make([]decimal.Decimal, len(prices))
	if m <= 0 || len(prices) < m {
		return out
	}
	sma := SMA(prices, m)

	avgStd := decimal.Zero
	for i := m - 1; i < len(prices); i++ {
		avgStd = avgStd.Add(rollingStd(prices[i-m+1:i+1], sma[i]))
	}
	avgStd = avgStd.Div(decimal.NewFromInt(int64(len(prices) - m + 1)))
	if avgStd.IsZero() {
		return out
	}

	lambert := decimal.NewFromFloat(0.015)
	scale := lambert.Mul(avgStd)
	for i := m - 1; i < len(prices); i++ {
		out[i] = prices[i].Sub(sma[i]).Div(scale)
	}
	return out
}

// rollingStd is the population standard deviation of one window. The
// square root goes through float64; decimal has no Sqrt.
func rollingStd(window []decimal.Decimal, avg decimal.Decimal) decimal.Decimal {
	variance := decimal.Zero
	for _, p := range window {
		d := p.Sub(avg)
		variance = variance.Add(d.Mul(d))
	}
	variance = variance.Div(decimal.NewFromInt(int64(len(window))))
	return decimal.NewFromFloat(math.Sqrt(variance.InexactFloat64()))
}
