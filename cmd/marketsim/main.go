package main

import (
	"context"
	"flag"
	"log"
	"os"
	"time"

	"marketsim/internal/config"
	"marketsim/internal/engine"
	"marketsim/internal/repository"
	"marketsim/strategies/benchmark"
	"marketsim/strategies/optimal"

	"github.com/shopspring/decimal"
)

type fillReporter interface {
	LastFill() repository.FillReport
}

func main() {
	configPath := flag.String("config", "config.yaml", "path to YAML config")
	ordersPath := flag.String("orders", "orders.csv", "path to order CSV (Date,Symbol,Order,Shares)")
	compareSymbol := flag.String("compare", "", "run the theoretically-optimal strategy against buy-and-hold for this symbol instead of an order file")
	startFlag := flag.String("start", "2008-01-01", "comparison window start (with -compare)")
	endFlag := flag.String("end", "2009-12-31", "comparison window end (with -compare)")
	flag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		log.Fatal(err)
	}

	var prices engine.PriceProvider
	var fills fillReporter
	if cfg.Storage.DatabaseURL != "" {
		db, err := repository.NewDatabase(cfg.Storage.DatabaseURL)
		if err != nil {
			log.Fatal(err)
		}
		defer db.Close()
		prices, fills = db, db
	} else {
		dir := repository.NewCSVDir(cfg.Storage.DataDir)
		prices, fills = dir, dir
	}

	simConfig, err := engine.NewSimulationConfig(
		decimal.NewFromFloat(cfg.Simulation.StartingCash),
		decimal.NewFromFloat(cfg.Simulation.Commission),
		decimal.NewFromFloat(cfg.Simulation.Impact),
	)
	if err != nil {
		log.Fatal(err)
	}
	simConfig.WithProgress()

	if *compareSymbol != "" {
		if err := runComparison(prices, simConfig, *compareSymbol, *startFlag, *endFlag); err != nil {
			log.Fatal(err)
		}
		return
	}

	orders, err := engine.ReadOrderFile(*ordersPath)
	if err != nil {
		log.Fatal(err)
	}

	eng := engine.NewEngine(prices, simConfig)
	series, err := eng.ComputePortfolioValues(context.Background(), orders)
	if err != nil {
		log.Fatal(err)
	}

	if n := fills.LastFill().Count(); n > 0 {
		log.Printf("filled %d missing price cells", n)
	}

	report, err := engine.BuildReport(series)
	if err != nil {
		log.Fatal(err)
	}
	engine.PrintReport(os.Stdout, "Portfolio Valuation", report)

	if cfg.Report.OutputCSV != "" {
		if err := engine.WriteValuationsCSVFile(cfg.Report.OutputCSV, series); err != nil {
			log.Fatal(err)
		}
		log.Printf("wrote valuations to %s", cfg.Report.OutputCSV)
	}
}

// runComparison evaluates the theoretically-optimal trade list and the
// buy-and-hold benchmark over the same window and prints both side by side.
func runComparison(prices engine.PriceProvider, simConfig *engine.SimulationConfig, symbol, startStr, endStr string) error {
	ctx := context.Background()

	start, err := time.Parse("2006-01-02", startStr)
	if err != nil {
		return err
	}
	end, err := time.Parse("2006-01-02", endStr)
	if err != nil {
		return err
	}

	panel, err := prices.GetClosingPrices(ctx, []string{symbol}, start, end)
	if err != nil {
		return err
	}
	simConfig.WithWindow(panel.Dates[0], panel.Dates[panel.NumDays()-1])
	eng := engine.NewEngine(prices, simConfig)

	optimalOrders, err := optimal.New().Trades(panel, symbol)
	if err != nil {
		return err
	}
	optimalSeries, err := eng.ComputePortfolioValues(ctx, optimalOrders)
	if err != nil {
		return err
	}
	optimalReport, err := engine.BuildReport(optimalSeries)
	if err != nil {
		return err
	}

	benchOrders, err := benchmark.Trades(panel, symbol, decimal.NewFromInt(1000))
	if err != nil {
		return err
	}
	benchSeries, err := eng.ComputePortfolioValues(ctx, benchOrders)
	if err != nil {
		return err
	}
	benchReport, err := engine.BuildReport(benchSeries)
	if err != nil {
		return err
	}

	engine.PrintComparison(os.Stdout, "Theoretically Optimal", optimalReport, "Buy and Hold", benchReport)
	return nil
}
