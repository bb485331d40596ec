package flatten

import (
	"testing"

	"github.com/shopspring/decimal"

	"github.com/andinosoft/alegra-sharepoint-sync/alegra"
)

func TestFlattenItem(t *testing.T) {
	item := alegra.Item{
		ID:        "101",
		Name:      "Resma carta 75g",
		Reference: "RC-75",
		Status:    "active",
		Type:      "product",
		Price: []alegra.Price{
			{
				Name:  "Mayorista",
				Price: decimal.NewFromInt(12000),
			},
			{
				Name:     "General",
				Price:    decimal.NewFromInt(15000),
				Main:     true,
				Currency: alegra.Currency{Code: "COP"},
			},
		},
		Tax: []alegra.Tax{
			{
				Name:       "IVA 19%",
				Type:       "IVA",
				Percentage: decimal.NewFromInt(19),
			},
		},
		ItemCategory: alegra.ItemCategory{
			ID:   "4",
			Name: "Papelería",
		},
		Inventory: alegra.Inventory{
			Unit:              "unit",
			AvailableQuantity: decimal.NewFromInt(120),
		},
	}

	row := Item(item)

	if row.ID != "101" || row.Name != "Resma carta 75g" {
		t.Errorf("incorrectly flattened item - got:%+v", row)
	}

	// main price wins over the first price list entry
	if !row.MainPrice.Equal(decimal.NewFromInt(15000)) {
		t.Errorf("incorrect main price - expected:%v, got:%v", 15000, row.MainPrice)
	}

	if row.Currency != "COP" || row.PriceList != "General" {
		t.Errorf("incorrect price metadata - got:%+v", row)
	}

	if !row.VATPercentage.Equal(decimal.NewFromInt(19)) || row.VATName != "IVA 19%" {
		t.Errorf("incorrect VAT - got:%+v", row)
	}

	if row.PriceCount != 2 || row.TaxCount != 1 {
		t.Errorf("incorrect counters - got:%+v", row)
	}
}

func TestFlattenItemWithoutMainPrice(t *testing.T) {
	item := alegra.Item{
		ID: "102",
		Price: []alegra.Price{
			{Name: "Mayorista", Price: decimal.NewFromInt(12000)},
		},
	}

	row := Item(item)

	if !row.MainPrice.Equal(decimal.NewFromInt(12000)) || row.PriceList != "Mayorista" {
		t.Errorf("incorrect price fallback - got:%+v", row)
	}
}

func TestItemRowFields(t *testing.T) {
	row := Item(alegra.Item{
		Name:         "Resma carta 75g",
		ItemCategory: alegra.ItemCategory{Name: "Papelería"},
		Price: []alegra.Price{
			{Price: decimal.NewFromInt(15000), Main: true},
		},
	})

	fields := row.Fields()

	if fields["Title"] != "Resma carta 75g" {
		t.Errorf("incorrect Title - got:%v", fields["Title"])
	}

	if fields["Categoria"] != "Papelería" {
		t.Errorf("incorrect category - got:%v", fields["Categoria"])
	}

	if fields["Precio_x0020_Principal"] != 15000.0 {
		t.Errorf("incorrect price - got:%v", fields["Precio_x0020_Principal"])
	}
}
