package vitidata

import (
	"context"
	"vitibrasil-backend/lib/vitibrasil"
)

// Write access belongs to the refresh worker alone. Each Replace*
// swaps out one (domain, year) slice of the cache atomically so a
// half-failed refresh never leaves a year partially written.

func (s Store) ReplaceProductionYear(ctx context.Context, year int, records []vitibrasil.ProductionRecord) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	_, err = tx.ExecContext(ctx, "DELETE FROM producao WHERE year = ?", year)
	if err != nil {
		return err
	}
	for _, rec := range records {
		_, err = tx.ExecContext(ctx,
			"INSERT INTO producao (year, category, product, quantity_l) VALUES (?, ?, ?, ?)",
			rec.Year, rec.Category, rec.Product, ptrToNull(rec.QuantityLiters))
		if err != nil {
			return err
		}
	}
	return tx.Commit()
}

// ReplaceProcessingYear only touches rows of the given product
// sub-category, since one portal page covers one sub-category.
func (s Store) ReplaceProcessingYear(ctx context.Context, year int, product string, records []vitibrasil.ProcessingRecord) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	_, err = tx.ExecContext(ctx,
		"DELETE FROM processamento WHERE year = ? AND product = ?", year, product)
	if err != nil {
		return err
	}
	for _, rec := range records {
		_, err = tx.ExecContext(ctx,
			"INSERT INTO processamento (year, group_name, cultive, product, quantity_kg) VALUES (?, ?, ?, ?, ?)",
			rec.Year, rec.GroupName, rec.Cultive, rec.Product, ptrToNull(rec.QuantityKg))
		if err != nil {
			return err
		}
	}
	return tx.Commit()
}

func (s Store) ReplaceCommercializationYear(ctx context.Context, year int, records []vitibrasil.CommercializationRecord) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	_, err = tx.ExecContext(ctx, "DELETE FROM comercializacao WHERE year = ?", year)
	if err != nil {
		return err
	}
	for _, rec := range records {
		_, err = tx.ExecContext(ctx,
			"INSERT INTO comercializacao (year, group_name, product, quantity_l) VALUES (?, ?, ?, ?)",
			rec.Year, rec.GroupName, rec.Product, ptrToNull(rec.QuantityLiters))
		if err != nil {
			return err
		}
	}
	return tx.Commit()
}

func (s Store) ReplaceImportYear(ctx context.Context, year int, product string, records []vitibrasil.ImportRecord) error {
	converted := make([]vitibrasil.ExportRecord, len(records))
	for i, rec := range records {
		converted[i] = vitibrasil.ExportRecord(rec)
	}
	return s.replaceTradeYear(ctx, "importacao", year, product, converted)
}

func (s Store) ReplaceExportYear(ctx context.Context, year int, product string, records []vitibrasil.ExportRecord) error {
	return s.replaceTradeYear(ctx, "exportacao", year, product, records)
}

func (s Store) replaceTradeYear(ctx context.Context, table string, year int, product string, records []vitibrasil.ExportRecord) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	_, err = tx.ExecContext(ctx,
		"DELETE FROM "+table+" WHERE year = ? AND product = ?", year, product)
	if err != nil {
		return err
	}
	for _, rec := range records {
		_, err = tx.ExecContext(ctx,
			"INSERT INTO "+table+" (year, country, product, quantity_kg, value_us) VALUES (?, ?, ?, ?, ?)",
			rec.Year, rec.Country, rec.Product, ptrToNull(rec.QuantityKg), ptrToNull(rec.ValueUSD))
		if err != nil {
			return err
		}
	}
	return tx.Commit()
}
