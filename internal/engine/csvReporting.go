package engine

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"

	"marketsim/types"
)

// WriteValuationsCSVFile writes a valuation series to a CSV file at the
// given path.
func WriteValuationsCSVFile(path string, series types.ValuationSeries) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create valuations file: %w", err)
	}
	defer f.Close()

	return writeValuationsCSV(f, series)
}

// writeValuationsCSV writes a valuation series to any io.Writer as CSV.
// You can pass os.Stdout for debugging, or a file.
func writeValuationsCSV(w io.Writer, series types.ValuationSeries) error {
	cw := csv.NewWriter(w)
	defer cw.Flush()

	if err := cw.Write([]string{"date", "value"}); err != nil {
		return fmt.Errorf("write header: %w", err)
	}

	for _, snap := range series {
		record := []string{
			snap.Date.Format(orderDateLayout),
			snap.Value.String(),
		}
		if err := cw.Write(record); err != nil {
			return fmt.Errorf("write record: %w", err)
		}
	}

	cw.Flush()
	if err := cw.Error(); err != nil {
		return fmt.Errorf("flush csv: %w", err)
	}
	return nil
}
