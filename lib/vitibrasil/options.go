package vitibrasil

import (
	"fmt"
	"strings"
	"vitibrasil-backend/lib/textutil"
)

// Option is a product sub-category of an option-coded domain. Code is
// the integer the portal expects in `subopcao`; Label is the canonical
// human-facing name.
type Option struct {
	Label string
	Code  int
}

var optionTables = map[Domain][]Option{
	DomainProcessing: {
		{Label: "viníferas", Code: 1},
		{Label: "americanas e híbridas", Code: 2},
		{Label: "uvas de mesa", Code: 3},
		{Label: "sem classificação", Code: 4},
	},
	DomainImport: {
		{Label: "vinhos de mesa", Code: 1},
		{Label: "espumantes", Code: 2},
		{Label: "uvas frescas", Code: 3},
		{Label: "uvas passas", Code: 4},
		{Label: "suco de uva", Code: 5},
	},
	DomainExport: {
		{Label: "vinhos de mesa", Code: 1},
		{Label: "espumantes", Code: 2},
		{Label: "uvas frescas", Code: 3},
		{Label: "suco de uva", Code: 4},
	},
}

type InvalidOptionError struct {
	Domain Domain
	Label  string
	Valid  []string
}

func (e *InvalidOptionError) Error() string {
	return fmt.Sprintf(
		"invalid option %q for %s, valid options: %s",
		e.Label, e.Domain, strings.Join(e.Valid, ", "),
	)
}

// ResolveOption maps a label to its option code, ignoring case and
// accents ("viniferas" resolves the same as "viníferas").
func ResolveOption(domain Domain, label string) (Option, error) {
	want := textutil.NormalizeLabel(label)
	for _, opt := range optionTables[domain] {
		if textutil.NormalizeLabel(opt.Label) == want {
			return opt, nil
		}
	}
	return Option{}, &InvalidOptionError{
		Domain: domain,
		Label:  label,
		Valid:  OptionLabels(domain),
	}
}

// OptionLabels lists the canonical labels for an option-coded domain,
// in portal order. Nil for domains without option codes.
func OptionLabels(domain Domain) []string {
	table := optionTables[domain]
	if table == nil {
		return nil
	}
	labels := make([]string, len(table))
	for i, opt := range table {
		labels[i] = opt.Label
	}
	return labels
}
