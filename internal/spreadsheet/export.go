package spreadsheet

import (
	"fmt"
	"io"
	"sort"

	"github.com/SscSPs/landed_pricing_app/internal/core/domain"
	"github.com/xuri/excelize/v2"
)

// PriceListSheet is the name of the exported sheet.
const PriceListSheet = "PriceList"

// ExportPriceList writes one row per sku with the seller minimum and maximum price of
// every transport mode present in tiers. Flagged tiers leave their cells empty.
func ExportPriceList(w io.Writer, tiers []domain.PriceTierRecord) error {
	xl := excelize.NewFile()
	defer func() { _ = xl.Close() }()

	if err := xl.SetSheetName(xl.GetSheetName(0), PriceListSheet); err != nil {
		return fmt.Errorf("rename sheet: %w", err)
	}

	modeSet := map[domain.TransportMode]bool{}
	bySKU := map[string]map[domain.TransportMode]domain.PriceTierRecord{}
	for _, t := range tiers {
		modeSet[t.TransportMode] = true
		if bySKU[t.SKU] == nil {
			bySKU[t.SKU] = map[domain.TransportMode]domain.PriceTierRecord{}
		}
		bySKU[t.SKU][t.TransportMode] = t
	}
	modes := make([]domain.TransportMode, 0, len(modeSet))
	for m := range modeSet {
		modes = append(modes, m)
	}
	sort.Slice(modes, func(i, j int) bool { return modes[i] < modes[j] })
	skus := make([]string, 0, len(bySKU))
	for sku := range bySKU {
		skus = append(skus, sku)
	}
	sort.Strings(skus)

	header := []any{"sku"}
	for _, m := range modes {
		header = append(header, fmt.Sprintf("%s seller_min", m), fmt.Sprintf("%s max_price", m))
	}
	if err := xl.SetSheetRow(PriceListSheet, "A1", &header); err != nil {
		return fmt.Errorf("write header: %w", err)
	}

	for i, sku := range skus {
		row := i + 2
		if err := setCell(xl, 1, row, sku); err != nil {
			return err
		}
		for j, m := range modes {
			t, ok := bySKU[sku][m]
			if !ok || !t.Usable() {
				continue
			}
			seller, _ := t.SellerMin.Round(2).Float64()
			maxPrice, _ := t.MaxPrice.Round(2).Float64()
			if err := setCell(xl, 2+2*j, row, seller); err != nil {
				return err
			}
			if err := setCell(xl, 3+2*j, row, maxPrice); err != nil {
				return err
			}
		}
	}

	if _, err := xl.WriteTo(w); err != nil {
		return fmt.Errorf("write workbook: %w", err)
	}
	return nil
}

func setCell(xl *excelize.File, col, row int, value any) error {
	cell, err := excelize.CoordinatesToCellName(col, row)
	if err != nil {
		return err
	}
	if err := xl.SetCellValue(PriceListSheet, cell, value); err != nil {
		return fmt.Errorf("write %s: %w", cell, err)
	}
	return nil
}
