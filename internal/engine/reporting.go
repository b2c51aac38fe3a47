package engine

import (
	"errors"
	"fmt"
	"io"
	"math"
	"time"

	"marketsim/types"

	"github.com/shopspring/decimal"
)

var EmptySeriesErr = errors.New("valuation series is empty")

// tradingDaysPerYear annualizes the Sharpe ratio.
const tradingDaysPerYear = 252

type Report struct {
	// Meta / period info
	StartDate   time.Time
	EndDate     time.Time
	TradingDays int

	// Absolute performance
	FinalValue       decimal.Decimal
	CumulativeReturn decimal.Decimal

	// Daily return distribution
	MeanDailyReturn decimal.Decimal
	StdDailyReturn  decimal.Decimal

	// Risk-adjusted
	SharpeRatio decimal.Decimal
}

// BuildReport summarizes a valuation series.
func BuildReport(series types.ValuationSeries) (*Report, error) {
	if len(series) == 0 {
		return nil, EmptySeriesErr
	}

	report := &Report{
		StartDate:   series.First().Date,
		EndDate:     series.Last().Date,
		TradingDays: len(series),
		FinalValue:  series.Last().Value,
	}

	firstValue := series.First().Value
	if !firstValue.IsZero() {
		report.CumulativeReturn = series.Last().Value.Div(firstValue).Sub(one)
	}

	returns := dailyReturns(series)
	if len(returns) == 0 {
		return report, nil
	}

	report.MeanDailyReturn = mean(returns)
	report.StdDailyReturn = std(returns, report.MeanDailyReturn)
	if !report.StdDailyReturn.IsZero() {
		annualize := decimal.NewFromFloat(math.Sqrt(tradingDaysPerYear))
		report.SharpeRatio = annualize.Mul(report.MeanDailyReturn.Div(report.StdDailyReturn))
	}

	return report, nil
}

func dailyReturns(series types.ValuationSeries) []decimal.Decimal {
	var returns []decimal.Decimal
	for i := 1; i < len(series); i++ {
		prev := series[i-1].Value
		if prev.IsZero() {
			continue
		}
		returns = append(returns, series[i].Value.Div(prev).Sub(one))
	}
	return returns
}

func mean(values []decimal.Decimal) decimal.Decimal {
	total := decimal.Zero
	for _, v := range values {
		total = total.Add(v)
	}
	return total.Div(decimal.NewFromInt(int64(len(values))))
}

// std is the population standard deviation (ddof = 0). The square root
// goes through float64; decimal has no Sqrt.
func std(values []decimal.Decimal, avg decimal.Decimal) decimal.Decimal {
	variance := decimal.Zero
	for _, v := range values {
		d := v.Sub(avg)
		variance = variance.Add(d.Mul(d))
	}
	variance = variance.Div(decimal.NewFromInt(int64(len(values))))
	return decimal.NewFromFloat(math.Sqrt(variance.InexactFloat64()))
}

// PrintReport writes a human-readable summary of one run.
func PrintReport(w io.Writer, name string, report *Report) {
	fmt.Fprintf(w, "===== %s =====\n", name)
	fmt.Fprintf(w, "Start Date:            %s\n", report.StartDate.Format(orderDateLayout))
	fmt.Fprintf(w, "End Date:              %s\n", report.EndDate.Format(orderDateLayout))
	fmt.Fprintf(w, "Trading Days:          %d\n", report.TradingDays)
	fmt.Fprintf(w, "Final Value:           %s\n", report.FinalValue.StringFixed(2))
	fmt.Fprintf(w, "Cumulative Return:     %s\n", report.CumulativeReturn.StringFixed(6))
	fmt.Fprintf(w, "Mean Daily Return:     %s\n", report.MeanDailyReturn.StringFixed(6))
	fmt.Fprintf(w, "Std Daily Return:      %s\n", report.StdDailyReturn.StringFixed(6))
	fmt.Fprintf(w, "Sharpe Ratio:          %s\n", report.SharpeRatio.StringFixed(4))
}

// PrintComparison writes two runs side by side, e.g. a strategy against
// its buy-and-hold benchmark.
func PrintComparison(w io.Writer, nameA string, a *Report, nameB string, b *Report) {
	fmt.Fprintf(w, "===== %s vs %s =====\n", nameA, nameB)
	fmt.Fprintf(w, "%-24s %14s %14s\n", "", nameA, nameB)
	fmt.Fprintf(w, "%-24s %14s %14s\n", "Final Value", a.FinalValue.StringFixed(2), b.FinalValue.StringFixed(2))
	fmt.Fprintf(w, "%-24s %14s %14s\n", "Cumulative Return", a.CumulativeReturn.StringFixed(6), b.CumulativeReturn.StringFixed(6))
	fmt.Fprintf(w, "%-24s %14s %14s\n", "Mean Daily Return", a.MeanDailyReturn.StringFixed(6), b.MeanDailyReturn.StringFixed(6))
	fmt.Fprintf(w, "%-24s %14s %14s\n", "Std Daily Return", a.StdDailyReturn.StringFixed(6), b.StdDailyReturn.StringFixed(6))
	fmt.Fprintf(w, "%-24s %14s %14s\n", "Sharpe Ratio", a.SharpeRatio.StringFixed(4), b.SharpeRatio.StringFixed(4))
}
