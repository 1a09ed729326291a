package vitidata

import (
	"context"
	"database/sql"
	"fmt"
	"vitibrasil-backend/lib/vitibrasil"
)

// Store reads and (for the refresh worker only) rewrites the cache of
// the last successfully scraped datasets, one table per domain. Query
// paths never write through it.
//
// Only the year predicate is pushed into SQL. Text dimensions are
// filtered in Go with the same fold the live path uses: sqlite's
// lower() is ASCII-only, so "áfrica" would not match "África" there,
// and LIKE would treat % and _ as wildcards the live path takes
// literally.
type Store struct {
	db *sql.DB
}

func NewStore(database *sql.DB) Store {
	return Store{db: database}
}

func nullToPtr(v sql.NullFloat64) *float64 {
	if !v.Valid {
		return nil
	}
	return &v.Float64
}

func ptrToNull(v *float64) sql.NullFloat64 {
	if v == nil {
		return sql.NullFloat64{}
	}
	return sql.NullFloat64{Float64: *v, Valid: true}
}

type ProductionFilters struct {
	Category string
	Product  string
}

func (s Store) SelectProduction(ctx context.Context, year int, f ProductionFilters) ([]vitibrasil.ProductionRecord, error) {
	rows, err := s.db.QueryContext(ctx,
		"SELECT year, category, product, quantity_l FROM producao WHERE year = ?", year)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var records []vitibrasil.ProductionRecord
	for rows.Next() {
		var rec vitibrasil.ProductionRecord
		var quantity sql.NullFloat64
		err := rows.Scan(&rec.Year, &rec.Category, &rec.Product, &quantity)
		if err != nil {
			return nil, err
		}
		if !matchFold(rec.Category, f.Category) || !matchFold(rec.Product, f.Product) {
			continue
		}
		rec.QuantityLiters = nullToPtr(quantity)
		records = append(records, rec)
	}
	return records, rows.Err()
}

type ProcessingFilters struct {
	Group   string
	Cultive string
	Product string
}

func (s Store) SelectProcessing(ctx context.Context, year int, f ProcessingFilters) ([]vitibrasil.ProcessingRecord, error) {
	rows, err := s.db.QueryContext(ctx,
		"SELECT year, group_name, cultive, product, quantity_kg FROM processamento WHERE year = ?", year)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var records []vitibrasil.ProcessingRecord
	for rows.Next() {
		var rec vitibrasil.ProcessingRecord
		var quantity sql.NullFloat64
		err := rows.Scan(&rec.Year, &rec.GroupName, &rec.Cultive, &rec.Product, &quantity)
		if err != nil {
			return nil, err
		}
		if !matchFold(rec.GroupName, f.Group) ||
			!matchFold(rec.Cultive, f.Cultive) ||
			!matchFold(rec.Product, f.Product) {
			continue
		}
		rec.QuantityKg = nullToPtr(quantity)
		records = append(records, rec)
	}
	return records, rows.Err()
}

type CommercializationFilters struct {
	Group   string
	Product string
}

func (s Store) SelectCommercialization(ctx context.Context, year int, f CommercializationFilters) ([]vitibrasil.CommercializationRecord, error) {
	rows, err := s.db.QueryContext(ctx,
		"SELECT year, group_name, product, quantity_l FROM comercializacao WHERE year = ?", year)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var records []vitibrasil.CommercializationRecord
	for rows.Next() {
		var rec vitibrasil.CommercializationRecord
		var quantity sql.NullFloat64
		err := rows.Scan(&rec.Year, &rec.GroupName, &rec.Product, &quantity)
		if err != nil {
			return nil, err
		}
		if !matchFold(rec.GroupName, f.Group) || !matchFold(rec.Product, f.Product) {
			continue
		}
		rec.QuantityLiters = nullToPtr(quantity)
		records = append(records, rec)
	}
	return records, rows.Err()
}

type TradeFilters struct {
	Country string
	Product string
}

func (s Store) SelectImport(ctx context.Context, year int, f TradeFilters) ([]vitibrasil.ImportRecord, error) {
	records, err := s.selectTrade(ctx, "importacao", year, f)
	if err != nil {
		return nil, err
	}
	out := make([]vitibrasil.ImportRecord, len(records))
	for i, rec := range records {
		out[i] = vitibrasil.ImportRecord(rec)
	}
	return out, nil
}

func (s Store) SelectExport(ctx context.Context, year int, f TradeFilters) ([]vitibrasil.ExportRecord, error) {
	records, err := s.selectTrade(ctx, "exportacao", year, f)
	if err != nil {
		return nil, err
	}
	return records, nil
}

// importacao and exportacao rows share a shape; scan them as exports
// and convert, the structs are identical.
func (s Store) selectTrade(ctx context.Context, table string, year int, f TradeFilters) ([]vitibrasil.ExportRecord, error) {
	rows, err := s.db.QueryContext(ctx,
		"SELECT year, country, product, quantity_kg, value_us FROM "+table+" WHERE year = ?", year)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var records []vitibrasil.ExportRecord
	for rows.Next() {
		var rec vitibrasil.ExportRecord
		var quantity, value sql.NullFloat64
		err := rows.Scan(&rec.Year, &rec.Country, &rec.Product, &quantity, &value)
		if err != nil {
			return nil, err
		}
		if !matchFold(rec.Country, f.Country) || !matchFold(rec.Product, f.Product) {
			continue
		}
		rec.QuantityKg = nullToPtr(quantity)
		rec.ValueUSD = nullToPtr(value)
		records = append(records, rec)
	}
	return records, rows.Err()
}

func (s Store) distinct(ctx context.Context, table, column string) ([]string, error) {
	rows, err := s.db.QueryContext(ctx,
		fmt.Sprintf("SELECT DISTINCT %s FROM %s ORDER BY %s", column, table, column))
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var values []string
	for rows.Next() {
		var v string
		err := rows.Scan(&v)
		if err != nil {
			return nil, err
		}
		values = append(values, v)
	}
	return values, rows.Err()
}

func (s Store) DistinctProductionCategories(ctx context.Context) ([]string, error) {
	return s.distinct(ctx, "producao", "category")
}

func (s Store) DistinctProductionProducts(ctx context.Context) ([]string, error) {
	return s.distinct(ctx, "producao", "product")
}

func (s Store) DistinctProcessingGroups(ctx context.Context) ([]string, error) {
	return s.distinct(ctx, "processamento", "group_name")
}

func (s Store) DistinctProcessingCultives(ctx context.Context) ([]string, error) {
	return s.distinct(ctx, "processamento", "cultive")
}

func (s Store) DistinctCommercializationGroups(ctx context.Context) ([]string, error) {
	return s.distinct(ctx, "comercializacao", "group_name")
}

func (s Store) DistinctCommercializationProducts(ctx context.Context) ([]string, error) {
	return s.distinct(ctx, "comercializacao", "product")
}

func (s Store) DistinctImportCountries(ctx context.Context) ([]string, error) {
	return s.distinct(ctx, "importacao", "country")
}

func (s Store) DistinctExportCountries(ctx context.Context) ([]string, error) {
	return s.distinct(ctx, "exportacao", "country")
}
