package vitibrasil

import (
	"bytes"
	"context"
	"fmt"
	"log/slog"
	"slices"
	"vitibrasil-backend/lib/htmlutil"
	"vitibrasil-backend/lib/textutil"

	"github.com/PuerkitoBio/goquery"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"
)

var ErrUnexpectedLayout = fmt.Errorf("unexpected table layout")

// RawRow is one data row of a portal table, keyed by record dimension.
type RawRow map[string]string

// tableLayout describes what a domain's table is expected to look
// like. The header signature doubles as the structural check that the
// portal actually served the requested table: a wrong `opcao` or
// `subopcao` silently returns a different page, it never errors.
type tableLayout struct {
	// normalized header cell texts, in order
	headers []string
	// grouped tables interleave group rows (class tb_item, carrying
	// the group label and its subtotal) with data rows (tb_subitem)
	grouped  bool
	groupKey string
	itemKey  string
	// keys for the numeric cells following the item cell
	valueKeys []string
}

var layouts = map[Domain]tableLayout{
	DomainProduction: {
		headers:   []string{"produto", "quantidade (l.)"},
		grouped:   true,
		groupKey:  "category",
		itemKey:   "product",
		valueKeys: []string{"quantity"},
	},
	DomainProcessing: {
		headers:   []string{"cultivar", "quantidade (kg)"},
		grouped:   true,
		groupKey:  "group",
		itemKey:   "cultive",
		valueKeys: []string{"quantity"},
	},
	DomainCommercialization: {
		headers:   []string{"produto", "quantidade (l.)"},
		grouped:   true,
		groupKey:  "group",
		itemKey:   "product",
		valueKeys: []string{"quantity"},
	},
	DomainImport: {
		headers:   []string{"paises", "quantidade (kg)", "valor (us$)"},
		itemKey:   "country",
		valueKeys: []string{"quantity", "value"},
	},
	DomainExport: {
		headers:   []string{"paises", "quantidade (kg)", "valor (us$)"},
		itemKey:   "country",
		valueKeys: []string{"quantity", "value"},
	},
}

// ParseTable extracts the data rows of the domain's statistics table
// from a portal page. A page without the table, or whose header
// signature does not match the domain's layout, fails with
// ErrUnexpectedLayout. Subtotal and decoration rows are skipped.
func ParseTable(ctx context.Context, domain Domain, page []byte) ([]RawRow, error) {
	ctx, span := tracer.Start(ctx, "ParseTable")
	defer span.End()
	span.SetAttributes(attribute.String("domain", domain.String()))

	layout := layouts[domain]

	doc, err := goquery.NewDocumentFromReader(bytes.NewReader(page))
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrUnexpectedLayout, err)
	}

	table := doc.Find("table.tb_base.tb_dados").First()
	if table.Length() == 0 {
		return nil, fmt.Errorf("%w: no data table on page", ErrUnexpectedLayout)
	}

	var headers []string
	table.Find("thead tr th").Each(func(_ int, th *goquery.Selection) {
		text := htmlutil.GetText(th.Nodes[0])
		headers = append(headers, textutil.NormalizeLabel(htmlutil.CleanCell(text)))
	})
	if !slices.Equal(headers, layout.headers) {
		return nil, fmt.Errorf(
			"%w: header signature %v, expected %v",
			ErrUnexpectedLayout, headers, layout.headers,
		)
	}

	wantCells := 1 + len(layout.valueKeys)
	var rows []RawRow
	skipped := 0
	currentGroup := ""

	table.Find("tbody tr").Each(func(_ int, tr *goquery.Selection) {
		cells := tr.Find("td")
		if cells.Length() != wantCells {
			skipped++
			return
		}

		texts := make([]string, cells.Length())
		cells.Each(func(i int, td *goquery.Selection) {
			texts[i] = htmlutil.CleanCell(htmlutil.GetText(td.Nodes[0]))
		})

		if layout.grouped {
			first := cells.First()
			switch {
			case first.HasClass("tb_item"):
				// group marker row, its quantity is a subtotal
				currentGroup = texts[0]
				return
			case first.HasClass("tb_subitem"):
				if currentGroup == "" {
					skipped++
					return
				}
			default:
				skipped++
				return
			}
		} else if textutil.NormalizeLabel(texts[0]) == "total" {
			skipped++
			return
		}

		row := RawRow{layout.itemKey: texts[0]}
		if layout.grouped {
			row[layout.groupKey] = currentGroup
		}
		for i, key := range layout.valueKeys {
			row[key] = texts[1+i]
		}
		rows = append(rows, row)
	})

	if skipped > 0 {
		span.AddEvent("skipped rows", trace.WithAttributes(attribute.Int("count", skipped)))
		slog.DebugContext(ctx, "skipped non-data table rows",
			"domain", domain.String(), "count", skipped)
	}

	return rows, nil
}
