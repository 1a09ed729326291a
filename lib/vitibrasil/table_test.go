package vitibrasil

import (
	"context"
	"errors"
	"testing"
	"vitibrasil-backend/lib/telemetry"

	"github.com/stretchr/testify/require"
)

func TestParseTableProduction(t *testing.T) {
	cleanup := telemetry.SetupForTesting(t, "test:vitibrasil")
	defer cleanup()

	rows, err := ParseTable(context.Background(), DomainProduction, []byte(productionPage))
	require.NoError(t, err)

	// group marker rows carry subtotals and must not be emitted
	require.Equal(t, []RawRow{
		{"category": "VINHO DE MESA", "product": "Tinto", "quantity": "175.267.437"},
		{"category": "VINHO DE MESA", "product": "Branco", "quantity": "40.290.494"},
		{"category": "SUCO", "product": "Suco de uva integral", "quantity": "-"},
	}, rows)
}

func TestParseTableProcessing(t *testing.T) {
	cleanup := telemetry.SetupForTesting(t, "test:vitibrasil")
	defer cleanup()

	rows, err := ParseTable(context.Background(), DomainProcessing, []byte(processingPage))
	require.NoError(t, err)
	require.Equal(t, []RawRow{
		{"group": "TINTAS", "cultive": "Alicante Bouschet", "quantity": "4.108.858"},
		{"group": "TINTAS", "cultive": "Ancelota", "quantity": "-"},
	}, rows)
}

func TestParseTableCommercialization(t *testing.T) {
	cleanup := telemetry.SetupForTesting(t, "test:vitibrasil")
	defer cleanup()

	rows, err := ParseTable(context.Background(), DomainCommercialization, []byte(commercializationPage))
	require.NoError(t, err)
	require.Equal(t, []RawRow{
		{"group": "VINHO DE MESA", "product": "Tinto", "quantity": "165.097.539"},
		{"group": "ESPUMANTES", "product": "Espumante Moscatel", "quantity": "-"},
	}, rows)
}

func TestParseTableExportSkipsTotal(t *testing.T) {
	cleanup := telemetry.SetupForTesting(t, "test:vitibrasil")
	defer cleanup()

	rows, err := ParseTable(context.Background(), DomainExport, []byte(exportPage))
	require.NoError(t, err)
	require.Equal(t, []RawRow{
		{"country": "Paraguai", "quantity": "2.578.529", "value": "4.649.134"},
		{"country": "Haiti", "quantity": "-", "value": "-"},
	}, rows)
}

func TestParseTableImportSkipsTotal(t *testing.T) {
	cleanup := telemetry.SetupForTesting(t, "test:vitibrasil")
	defer cleanup()

	rows, err := ParseTable(context.Background(), DomainImport, []byte(importPage))
	require.NoError(t, err)
	require.Len(t, rows, 3)
	require.Equal(t, RawRow{
		"country": "Argentina", "quantity": "14.952.789", "value": "34.269.187",
	}, rows[0])
	require.Equal(t, RawRow{
		"country": "Afeganistão", "quantity": "-", "value": "-",
	}, rows[2])
}

func TestParseTableUnexpectedLayout(t *testing.T) {
	cleanup := telemetry.SetupForTesting(t, "test:vitibrasil")
	defer cleanup()

	// header signature from a different report
	_, err := ParseTable(context.Background(), DomainProduction, []byte(wrongTablePage))
	require.True(t, errors.Is(err, ErrUnexpectedLayout))

	// a three-column table is not a production table
	_, err = ParseTable(context.Background(), DomainProduction, []byte(importPage))
	require.True(t, errors.Is(err, ErrUnexpectedLayout))

	// no data table at all
	_, err = ParseTable(context.Background(), DomainImport, []byte("<html><body><p>em manutenção</p></body></html>"))
	require.True(t, errors.Is(err, ErrUnexpectedLayout))
}
