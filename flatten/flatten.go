package flatten

import (
	"fmt"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/andinosoft/alegra-sharepoint-sync/alegra"
	"github.com/andinosoft/alegra-sharepoint-sync/sharepoint"
)

// Row is a flattened record that can be sent to a SharePoint list and
// written to a spreadsheet sheet.
type Row interface {
	Fields() sharepoint.Fields
	Headers() []string
	Values() []any
}

// TaxSummary aggregates the taxes attached to a line, with VAT broken out
// separately.
type TaxSummary struct {
	Total         decimal.Decimal
	Detail        string
	VATPercentage decimal.Decimal
	VATAmount     decimal.Decimal
	VATName       string
	Others        string
}

// SummarizeTaxes folds a tax list into totals and a human readable detail
// line ("name: pct% = $amount" entries joined by " | ").
func SummarizeTaxes(taxes []alegra.Tax) TaxSummary {
	summary := TaxSummary{}
	details := []string{}
	others := []string{}

	for _, tax := range taxes {
		summary.Total = summary.Total.Add(tax.Amount)
		details = append(details, fmt.Sprintf("%v: %v%% = $%v", tax.Name, tax.Percentage, tax.Amount))

		if strings.EqualFold(tax.Type, "IVA") {
			summary.VATPercentage = tax.Percentage
			summary.VATAmount = tax.Amount
			summary.VATName = tax.Name
		} else {
			others = append(others, fmt.Sprintf("%v: %v%%", tax.Name, tax.Percentage))
		}
	}

	summary.Detail = strings.Join(details, " | ")
	summary.Others = strings.Join(others, " | ")

	return summary
}

func number(d decimal.Decimal) float64 {
	f, _ := d.Float64()
	return f
}
