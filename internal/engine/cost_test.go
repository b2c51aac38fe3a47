package engine

import (
	"errors"
	"testing"

	"marketsim/types"
)

func TestOrderDeltas(t *testing.T) {
	tests := []struct {
		name       string
		side       types.Side
		shares     string
		price      string
		impact     string
		commission string
		wantPos    string
		wantCash   string
		wantErr    error
	}{
		{
			name: "buy without costs",
			side: types.SideTypeBuy, shares: "100", price: "50", impact: "0", commission: "0",
			wantPos: "100", wantCash: "-5000",
		},
		{
			name: "sell without costs",
			side: types.SideTypeSell, shares: "100", price: "50", impact: "0", commission: "0",
			wantPos: "-100", wantCash: "5000",
		},
		{
			name: "buy pays commission",
			side: types.SideTypeBuy, shares: "10", price: "50", impact: "0", commission: "9.95",
			wantPos: "10", wantCash: "-509.95",
		},
		{
			name: "sell pays commission",
			side: types.SideTypeSell, shares: "10", price: "50", impact: "0", commission: "9.95",
			wantPos: "-10", wantCash: "490.05",
		},
		{
			name: "impact raises the buy fill price",
			side: types.SideTypeBuy, shares: "100", price: "50", impact: "0.005", commission: "0",
			wantPos: "100", wantCash: "-5025",
		},
		{
			name: "impact lowers the sell fill price",
			side: types.SideTypeSell, shares: "100", price: "50", impact: "0.005", commission: "0",
			wantPos: "-100", wantCash: "4975",
		},
		{
			name: "unknown side",
			side: types.Side("HOLD"), shares: "1", price: "1", impact: "0", commission: "0",
			wantErr: UnknownSideErr,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			pos, cash, err := orderDeltas(tt.side, dec(tt.shares), dec(tt.price), dec(tt.impact), dec(tt.commission))
			if tt.wantErr != nil {
				if !errors.Is(err, tt.wantErr) {
					t.Fatalf("orderDeltas() error = %v, want %v", err, tt.wantErr)
				}
				return
			}
			if err != nil {
				t.Fatal(err)
			}
			if !pos.Equal(dec(tt.wantPos)) {
				t.Errorf("position delta = %s, want %s", pos, tt.wantPos)
			}
			if !cash.Equal(dec(tt.wantCash)) {
				t.Errorf("cash delta = %s, want %s", cash, tt.wantCash)
			}
		})
	}
}
