package engine

import (
	"context"
	"errors"
	"testing"
	"time"

	"marketsim/types"

	"github.com/shopspring/decimal"
)

type stubProvider struct {
	panel *types.PricePanel
	err   error

	gotSymbols []string
	gotStart   time.Time
	gotEnd     time.Time
}

func (s *stubProvider) GetClosingPrices(_ context.Context, symbols []string, start, end time.Time) (*types.PricePanel, error) {
	s.gotSymbols = symbols
	s.gotStart = start
	s.gotEnd = end
	return s.panel, s.err
}

func day(n int) time.Time {
	return time.Date(2012, 1, n, 0, 0, 0, 0, time.UTC)
}

func dec(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

// panelOf builds a panel with consecutive dates starting at day(startDay).
func panelOf(startDay int, closes map[string][]string) *types.PricePanel {
	n := 0
	decCloses := make(map[string][]decimal.Decimal, len(closes))
	for symbol, column := range closes {
		n = len(column)
		col := make([]decimal.Decimal, len(column))
		for i, v := range column {
			col[i] = dec(v)
		}
		decCloses[symbol] = col
	}
	dates := make([]time.Time, n)
	for i := range dates {
		dates[i] = day(startDay + i)
	}
	return types.NewPricePanel(dates, decCloses)
}

func mustConfig(t *testing.T, startingCash, commission, impact string) *SimulationConfig {
	t.Helper()
	cfg, err := NewSimulationConfig(dec(startingCash), dec(commission), dec(impact))
	if err != nil {
		t.Fatal(err)
	}
	return cfg
}

func TestComputePortfolioValues(t *testing.T) {
	tests := []struct {
		name       string
		panel      *types.PricePanel
		orders     []types.Order
		cash       string
		commission string
		impact     string
		window     [2]int // panel day numbers; zero means derive from orders
		want       []string
		wantErr    error
	}{
		{
			name:   "single buy leaves total value unchanged at zero cost",
			panel:  panelOf(1, map[string][]string{"JPM": {"50", "50"}}),
			orders: []types.Order{types.NewOrder(day(2), "JPM", types.SideTypeBuy, dec("1000"))},
			cash:   "100000", commission: "0", impact: "0",
			want: []string{"100000"},
		},
		{
			name:   "held position marks to market on later days",
			panel:  panelOf(1, map[string][]string{"JPM": {"50", "50", "52"}}),
			orders: []types.Order{types.NewOrder(day(2), "JPM", types.SideTypeBuy, dec("1000"))},
			cash:   "100000", commission: "0", impact: "0",
			window: [2]int{2, 3},
			want:   []string{"100000", "102000"},
		},
		{
			name: "same-day round trip pays two commissions",
			panel: panelOf(1, map[string][]string{
				"JPM": {"50", "50"},
			}),
			orders: []types.Order{
				types.NewOrder(day(2), "JPM", types.SideTypeBuy, dec("1000")),
				types.NewOrder(day(2), "JPM", types.SideTypeSell, dec("1000")),
			},
			cash: "100000", commission: "5", impact: "0",
			want: []string{"99990"},
		},
		{
			name:  "carry-forward: no orders and flat prices leave value unchanged",
			panel: panelOf(1, map[string][]string{"JPM": {"50", "50", "50", "50"}}),
			orders: []types.Order{
				types.NewOrder(day(2), "JPM", types.SideTypeBuy, dec("100")),
			},
			cash: "10000", commission: "0", impact: "0",
			window: [2]int{2, 4},
			want:   []string{"10000", "10000", "10000"},
		},
		{
			name:  "round-trip neutrality with zero costs",
			panel: panelOf(1, map[string][]string{"JPM": {"50", "50", "50"}}),
			orders: []types.Order{
				types.NewOrder(day(2), "JPM", types.SideTypeBuy, dec("250")),
				types.NewOrder(day(3), "JPM", types.SideTypeSell, dec("250")),
			},
			cash: "100000", commission: "0", impact: "0",
			want: []string{"100000", "100000"},
		},
		{
			name:   "impact penalizes a buy",
			panel:  panelOf(1, map[string][]string{"JPM": {"50", "50"}}),
			orders: []types.Order{types.NewOrder(day(2), "JPM", types.SideTypeBuy, dec("100"))},
			cash:   "100000", commission: "0", impact: "0.1",
			// cash 100000 - 100*55 = 94500, position 100*50 = 5000
			want: []string{"99500"},
		},
		{
			name:   "impact penalizes a sell of a short position",
			panel:  panelOf(1, map[string][]string{"JPM": {"50", "50"}}),
			orders: []types.Order{types.NewOrder(day(2), "JPM", types.SideTypeSell, dec("100"))},
			cash:   "100000", commission: "0", impact: "0.1",
			// cash 100000 + 100*45 = 104500, position -100*50 = -5000
			want: []string{"99500"},
		},
		{
			name:   "order before earliest available price",
			panel:  panelOf(3, map[string][]string{"JPM": {"50", "50"}}),
			orders: []types.Order{types.NewOrder(day(1), "JPM", types.SideTypeBuy, dec("10"))},
			cash:   "100000", commission: "0", impact: "0",
			wantErr: MissingPriceDataErr,
		},
		{
			name:  "order after latest available price",
			panel: panelOf(1, map[string][]string{"JPM": {"50", "50"}}),
			orders: []types.Order{
				types.NewOrder(day(2), "JPM", types.SideTypeBuy, dec("10")),
				types.NewOrder(day(9), "JPM", types.SideTypeSell, dec("10")),
			},
			cash: "100000", commission: "0", impact: "0",
			wantErr: MissingPriceDataErr,
		},
		{
			name:    "symbol missing from panel",
			panel:   panelOf(1, map[string][]string{"JPM": {"50", "50"}}),
			orders:  []types.Order{types.NewOrder(day(2), "IBM", types.SideTypeBuy, dec("10"))},
			cash:    "100000", commission: "0", impact: "0",
			wantErr: UnknownSymbolErr,
		},
		{
			name:    "empty order list",
			panel:   panelOf(1, map[string][]string{"JPM": {"50"}}),
			orders:  nil,
			cash:    "100000", commission: "0", impact: "0",
			wantErr: EmptyOrderListErr,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := mustConfig(t, tt.cash, tt.commission, tt.impact)
			if tt.window != [2]int{} {
				cfg.WithWindow(day(tt.window[0]), day(tt.window[1]))
			}
			eng := NewEngine(&stubProvider{panel: tt.panel}, cfg)

			got, err := eng.ComputePortfolioValues(context.Background(), tt.orders)
			if tt.wantErr != nil {
				if !errors.Is(err, tt.wantErr) {
					t.Fatalf("ComputePortfolioValues() error = %v, want %v", err, tt.wantErr)
				}
				return
			}
			if err != nil {
				t.Fatal(err)
			}

			if len(got) != len(tt.want) {
				t.Fatalf("ComputePortfolioValues() returned %d snapshots, want %d", len(got), len(tt.want))
			}
			for i, want := range tt.want {
				if !got[i].Value.Equal(dec(want)) {
					t.Errorf("snapshot %d (%s) value = %s, want %s",
						i, got[i].Date.Format(orderDateLayout), got[i].Value, want)
				}
				if i > 0 && !got[i].Date.After(got[i-1].Date) {
					t.Errorf("snapshot %d date %s not after %s", i, got[i].Date, got[i-1].Date)
				}
			}
		})
	}
}

func TestComputePortfolioValuesCommissionDelta(t *testing.T) {
	panel := panelOf(1, map[string][]string{"JPM": {"50", "50"}})
	orders := []types.Order{types.NewOrder(day(2), "JPM", types.SideTypeBuy, dec("100"))}

	run := func(commission string) decimal.Decimal {
		cfg := mustConfig(t, "100000", commission, "0")
		series, err := NewEngine(&stubProvider{panel: panel}, cfg).ComputePortfolioValues(context.Background(), orders)
		if err != nil {
			t.Fatal(err)
		}
		return series.Last().Value
	}

	free := run("0")
	charged := run("7.5")
	if !free.Sub(charged).Equal(dec("7.5")) {
		t.Errorf("commission delta = %s, want 7.5 (free %s, charged %s)", free.Sub(charged), free, charged)
	}
}

func TestComputePortfolioValuesDeterminism(t *testing.T) {
	panel := panelOf(1, map[string][]string{
		"JPM": {"50", "51.37", "49.9", "52.01"},
		"IBM": {"120", "119.5", "121.33", "122"},
	})
	orders := []types.Order{
		types.NewOrder(day(2), "JPM", types.SideTypeBuy, dec("300")),
		types.NewOrder(day(2), "IBM", types.SideTypeBuy, dec("50")),
		types.NewOrder(day(3), "JPM", types.SideTypeSell, dec("100")),
		types.NewOrder(day(4), "IBM", types.SideTypeSell, dec("50")),
	}

	run := func() types.ValuationSeries {
		cfg := mustConfig(t, "100000", "9.95", "0.005")
		series, err := NewEngine(&stubProvider{panel: panel}, cfg).ComputePortfolioValues(context.Background(), orders)
		if err != nil {
			t.Fatal(err)
		}
		return series
	}

	a, b := run(), run()
	if len(a) != len(b) {
		t.Fatalf("runs differ in length: %d vs %d", len(a), len(b))
	}
	for i := range a {
		if !a[i].Date.Equal(b[i].Date) || a[i].Value.String() != b[i].Value.String() {
			t.Errorf("snapshot %d differs between runs: %s=%s vs %s=%s",
				i, a[i].Date, a[i].Value, b[i].Date, b[i].Value)
		}
	}
}

func TestEngineFetchesLeadDay(t *testing.T) {
	provider := &stubProvider{panel: panelOf(1, map[string][]string{"JPM": {"50", "50", "50"}})}
	cfg := mustConfig(t, "100000", "0", "0")
	orders := []types.Order{
		types.NewOrder(day(2), "JPM", types.SideTypeBuy, dec("10")),
		types.NewOrder(day(3), "JPM", types.SideTypeSell, dec("10")),
	}
	if _, err := NewEngine(provider, cfg).ComputePortfolioValues(context.Background(), orders); err != nil {
		t.Fatal(err)
	}

	if !provider.gotStart.Equal(day(1)) {
		t.Errorf("provider start = %s, want %s (one lead day before first order)", provider.gotStart, day(1))
	}
	if !provider.gotEnd.Equal(day(3)) {
		t.Errorf("provider end = %s, want %s", provider.gotEnd, day(3))
	}
	if len(provider.gotSymbols) != 1 || provider.gotSymbols[0] != "JPM" {
		t.Errorf("provider symbols = %v, want [JPM]", provider.gotSymbols)
	}
}
