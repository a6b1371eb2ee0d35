package export

import (
	"context"
	"fmt"
	"strconv"
	"time"

	"github.com/xuri/excelize/v2"

	"github.com/chainstat/walletstat/internal/oracle"
)

const summarySheet = "Summary"

// XLSXWriter renders reports to a local .xlsx workbook.
type XLSXWriter struct {
	path string
}

// NewXLSXWriter creates an XLSXWriter that saves to the given path.
func NewXLSXWriter(path string) *XLSXWriter {
	return &XLSXWriter{path: path}
}

func (w *XLSXWriter) Write(_ context.Context, report Report) error {
	f, err := buildWorkbook(report)
	if err != nil {
		return err
	}
	defer f.Close()

	if err := f.SaveAs(w.path); err != nil {
		return fmt.Errorf("saving workbook %s: %w", w.path, err)
	}
	return nil
}

// buildWorkbook renders the summary sheet plus one timeline sheet per wallet.
// Wallet sheets are named W01, W02, ... in row order; the full address sits in
// the sheet's first row.
func buildWorkbook(report Report) (*excelize.File, error) {
	f := excelize.NewFile()
	if err := f.SetSheetName("Sheet1", summarySheet); err != nil {
		return nil, fmt.Errorf("renaming summary sheet: %w", err)
	}

	if err := writeRow(f, summarySheet, 1, summaryHeader()); err != nil {
		return nil, err
	}
	for i, row := range report.Rows {
		if err := writeRow(f, summarySheet, i+2, summaryLine(row)); err != nil {
			return nil, err
		}
	}

	base := len(report.Rows) + 3
	footer := [][]any{
		{"Wallets", report.WalletCount},
		{"Combined USD", report.TotalUSD},
		{"Mean USD", report.MeanUSD},
		{"Median USD", report.MedianUSD},
		{"Generated At", report.GeneratedAt.Format(time.RFC3339)},
	}
	for i, line := range footer {
		if err := writeRow(f, summarySheet, base+i, line); err != nil {
			return nil, err
		}
	}

	for i, row := range report.Rows {
		name := fmt.Sprintf("W%02d", i+1)
		if _, err := f.NewSheet(name); err != nil {
			return nil, fmt.Errorf("adding sheet %s: %w", name, err)
		}
		if err := writeRow(f, name, 1, []any{"Wallet", row.Address}); err != nil {
			return nil, err
		}
		if err := writeRow(f, name, 2, []any{"Taken At", "USD", "Tokens", "NFTs"}); err != nil {
			return nil, err
		}
		for j, h := range row.History {
			line := []any{h.TakenAt.Format(time.RFC3339), oracle.FormatUSDCents(h.USDCents), h.Tokens, h.NFTs}
			if err := writeRow(f, name, j+3, line); err != nil {
				return nil, err
			}
		}
	}

	return f, nil
}

func summaryHeader() []any {
	return []any{"Address", "Scanned At", "Total USD", "Tokens", "NFTs", "Best", "Worst", "Diversity", "Risk"}
}

func summaryLine(row Row) []any {
	return []any{
		row.Address,
		row.TakenAt.Format(time.RFC3339),
		row.TotalUSD,
		row.Tokens,
		row.NFTs,
		row.Best,
		row.Worst,
		row.Diversity,
		row.Risk,
	}
}

func writeRow(f *excelize.File, sheet string, row int, values []any) error {
	if err := f.SetSheetRow(sheet, "A"+strconv.Itoa(row), &values); err != nil {
		return fmt.Errorf("writing %s row %d: %w", sheet, row, err)
	}
	return nil
}
