// Package vitibrasil scrapes the Embrapa Vitibrasil portal, which
// publishes Brazilian grape and wine statistics as HTML tables
// addressed by year and page/sub-option codes.
package vitibrasil

import "go.opentelemetry.io/otel"

var tracer = otel.Tracer("scrapers/vitibrasil")

type Domain int

const (
	DomainProduction Domain = iota
	DomainProcessing
	DomainCommercialization
	DomainImport
	DomainExport
)

func (d Domain) String() string {
	switch d {
	case DomainProduction:
		return "production"
	case DomainProcessing:
		return "processing"
	case DomainCommercialization:
		return "commercialization"
	case DomainImport:
		return "import"
	case DomainExport:
		return "export"
	}
	return "unknown"
}

// pageCode is the portal's `opcao` parameter selecting the page
// for a domain.
func (d Domain) pageCode() string {
	switch d {
	case DomainProduction:
		return "opt_02"
	case DomainProcessing:
		return "opt_03"
	case DomainCommercialization:
		return "opt_04"
	case DomainImport:
		return "opt_05"
	case DomainExport:
		return "opt_06"
	}
	return ""
}

// YearRange is the span of years the portal actually has data for.
// Import/export series run one year further than the others.
func (d Domain) YearRange() (min, max int) {
	switch d {
	case DomainImport, DomainExport:
		return 1970, 2024
	default:
		return 1970, 2023
	}
}

// HasOptions reports whether fetching this domain requires a
// `subopcao` code selecting a product sub-category.
func (d Domain) HasOptions() bool {
	_, ok := optionTables[d]
	return ok
}
