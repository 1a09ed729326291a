package vitibrasil

import (
	"fmt"
	"strconv"
	"strings"
)

var ErrUnparsableRow = fmt.Errorf("unparsable row")

// ParseQuantity parses a Brazilian-locale numeric cell: "." separates
// thousands, "," is the decimal mark, and a literal "-" (or an empty
// cell) means the value is missing, which maps to nil rather than zero.
func ParseQuantity(s string) (*float64, error) {
	s = strings.TrimSpace(s)
	if s == "" || s == "-" {
		return nil, nil
	}

	cleaned := strings.ReplaceAll(s, ".", "")
	cleaned = strings.ReplaceAll(cleaned, ",", ".")
	v, err := strconv.ParseFloat(cleaned, 64)
	if err != nil {
		return nil, fmt.Errorf("%w: bad numeric cell %q", ErrUnparsableRow, s)
	}
	if v < 0 {
		return nil, fmt.Errorf("%w: negative quantity %q", ErrUnparsableRow, s)
	}
	return &v, nil
}

func requireText(row RawRow, key string) (string, error) {
	v := strings.TrimSpace(row[key])
	if v == "" {
		return "", fmt.Errorf("%w: missing %s", ErrUnparsableRow, key)
	}
	return v, nil
}

func NormalizeProduction(year int, row RawRow) (ProductionRecord, error) {
	category, err := requireText(row, "category")
	if err != nil {
		return ProductionRecord{}, err
	}
	product, err := requireText(row, "product")
	if err != nil {
		return ProductionRecord{}, err
	}
	quantity, err := ParseQuantity(row["quantity"])
	if err != nil {
		return ProductionRecord{}, err
	}
	return ProductionRecord{
		Year:           year,
		Category:       category,
		Product:        product,
		QuantityLiters: quantity,
	}, nil
}

// NormalizeProcessing attaches the resolved option label as Product;
// the table itself only carries group and cultivar columns.
func NormalizeProcessing(year int, product string, row RawRow) (ProcessingRecord, error) {
	group, err := requireText(row, "group")
	if err != nil {
		return ProcessingRecord{}, err
	}
	cultive, err := requireText(row, "cultive")
	if err != nil {
		return ProcessingRecord{}, err
	}
	quantity, err := ParseQuantity(row["quantity"])
	if err != nil {
		return ProcessingRecord{}, err
	}
	return ProcessingRecord{
		Year:       year,
		GroupName:  group,
		Cultive:    cultive,
		Product:    product,
		QuantityKg: quantity,
	}, nil
}

func NormalizeCommercialization(year int, row RawRow) (CommercializationRecord, error) {
	group, err := requireText(row, "group")
	if err != nil {
		return CommercializationRecord{}, err
	}
	product, err := requireText(row, "product")
	if err != nil {
		return CommercializationRecord{}, err
	}
	quantity, err := ParseQuantity(row["quantity"])
	if err != nil {
		return CommercializationRecord{}, err
	}
	return CommercializationRecord{
		Year:           year,
		GroupName:      group,
		Product:        product,
		QuantityLiters: quantity,
	}, nil
}

func NormalizeImport(year int, product string, row RawRow) (ImportRecord, error) {
	country, err := requireText(row, "country")
	if err != nil {
		return ImportRecord{}, err
	}
	quantity, err := ParseQuantity(row["quantity"])
	if err != nil {
		return ImportRecord{}, err
	}
	value, err := ParseQuantity(row["value"])
	if err != nil {
		return ImportRecord{}, err
	}
	return ImportRecord{
		Year:       year,
		Country:    country,
		Product:    product,
		QuantityKg: quantity,
		ValueUSD:   value,
	}, nil
}

func NormalizeExport(year int, product string, row RawRow) (ExportRecord, error) {
	country, err := requireText(row, "country")
	if err != nil {
		return ExportRecord{}, err
	}
	quantity, err := ParseQuantity(row["quantity"])
	if err != nil {
		return ExportRecord{}, err
	}
	value, err := ParseQuantity(row["value"])
	if err != nil {
		return ExportRecord{}, err
	}
	return ExportRecord{
		Year:       year,
		Country:    country,
		Product:    product,
		QuantityKg: quantity,
		ValueUSD:   value,
	}, nil
}
