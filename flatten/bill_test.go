package flatten

import (
	"testing"

	"github.com/shopspring/decimal"

	"github.com/andinosoft/alegra-sharepoint-sync/alegra"
)

func TestFlattenBill(t *testing.T) {
	bill := alegra.Bill{
		ID:     "888",
		Date:   "2026-03-15",
		Status: "open",
		Type:   "bill",
		Total:  decimal.NewFromInt(238000),
		NumberTemplate: alegra.NumberTemplate{
			FullNumber: "FC-500",
		},
		Provider: alegra.Contact{
			ID:   "31",
			Name: "Papelería Central",
		},
		Purchases: alegra.Purchases{
			Categories: []alegra.PurchaseCategory{
				{
					ID:       "12",
					Name:     "Gastos de oficina",
					Price:    decimal.NewFromInt(200000),
					Quantity: decimal.NewFromInt(1),
					Subtotal: decimal.NewFromInt(200000),
					Total:    decimal.NewFromInt(238000),
					Tax: []alegra.Tax{
						{
							Name:       "IVA 19%",
							Type:       "IVA",
							Percentage: decimal.NewFromInt(19),
							Amount:     decimal.NewFromInt(38000),
						},
					},
				},
			},
		},
		Retentions: []alegra.Retention{
			{
				ID:           "5",
				Name:         "ReteFuente 2.5%",
				Type:         "retefuente",
				CalculatedBy: "subtotal",
				IsAssumed:    false,
				Percentage:   "2.5%",
				Amount:       decimal.NewFromInt(5000),
			},
		},
	}

	row, categories, retentions := Bill(bill)

	if row.ID != "888" || row.Number != "FC-500" || row.ProviderName != "Papelería Central" {
		t.Errorf("incorrectly flattened bill - got:%+v", row)
	}

	if row.CategoryCount != 1 || row.RetentionCount != 1 {
		t.Errorf("incorrect counts - got:%+v", row)
	}

	if len(categories) != 1 {
		t.Fatalf("incorrect category count - expected:%v, got:%v", 1, len(categories))
	}

	if categories[0].BillNumber != "FC-500" || categories[0].CategoryName != "Gastos de oficina" {
		t.Errorf("incorrectly flattened category - got:%+v", categories[0])
	}

	if !categories[0].Taxes.Equal(decimal.NewFromInt(38000)) {
		t.Errorf("incorrect category taxes - expected:%v, got:%v", 38000, categories[0].Taxes)
	}

	if expected := "IVA 19%: 19% = $38000"; categories[0].TaxDetail != expected {
		t.Errorf("incorrect tax detail - expected:%v, got:%v", expected, categories[0].TaxDetail)
	}

	if len(retentions) != 1 {
		t.Fatalf("incorrect retention count - expected:%v, got:%v", 1, len(retentions))
	}

	if retentions[0].Percentage != 2.5 {
		t.Errorf("incorrect retention percentage - expected:%v, got:%v", 2.5, retentions[0].Percentage)
	}

	if retentions[0].AssumedBy != "Proveedor" {
		t.Errorf("incorrect assumed-by - expected:%v, got:%v", "Proveedor", retentions[0].AssumedBy)
	}
}

func TestFlattenBillAssumedRetention(t *testing.T) {
	bill := alegra.Bill{
		ID: "889",
		Retentions: []alegra.Retention{
			{ID: "6", Name: "ReteIVA", IsAssumed: true, Percentage: "15"},
		},
	}

	_, _, retentions := Bill(bill)

	if retentions[0].AssumedBy != "Empresa" {
		t.Errorf("incorrect assumed-by - expected:%v, got:%v", "Empresa", retentions[0].AssumedBy)
	}
}

func TestScrubPercentage(t *testing.T) {
	tests := []struct {
		percentage string
		expected   float64
	}{
		{"2.5", 2.5},
		{"2.5%", 2.5},
		{" 19 % ", 19},
		{"N/A", 0},
		{"", 0},
	}

	for _, test := range tests {
		if v := scrubPercentage(test.percentage); v != test.expected {
			t.Errorf("incorrectly scrubbed %q - expected:%v, got:%v", test.percentage, test.expected, v)
		}
	}
}
