package flatten

import (
	"github.com/shopspring/decimal"

	"github.com/andinosoft/alegra-sharepoint-sync/alegra"
	"github.com/andinosoft/alegra-sharepoint-sync/sharepoint"
)

// ItemRow is a catalogue item flattened for the products list. MainPrice is
// the price flagged as main, falling back to the first price list entry.
type ItemRow struct {
	ID                  alegra.ID
	Name                string
	Description         string
	Reference           string
	Status              string
	Type                string
	ItemType            string
	ProductKey          string
	CategoryID          alegra.ID
	CategoryName        string
	ItemCategoryID      alegra.ID
	ItemCategoryName    string
	ItemCategoryDetail  string
	MainPrice           decimal.Decimal
	Currency            string
	PriceList           string
	Unit                string
	InitialQuantity     decimal.Decimal
	AvailableQuantity   decimal.Decimal
	UnitCost            decimal.Decimal
	InitialQuantityDate string
	CalculationScale    int
	HasNoIvaDays        bool
	VATPercentage       decimal.Decimal
	VATName             string
	OtherTaxes          string
	TaxCount            int
	PriceCount          int
	CustomFieldCount    int
}

// Item flattens a catalogue item.
func Item(item alegra.Item) ItemRow {
	row := ItemRow{
		ID:                  item.ID,
		Name:                item.Name,
		Description:         item.Description,
		Reference:           item.Reference,
		Status:              item.Status,
		Type:                item.Type,
		ItemType:            item.ItemType,
		ProductKey:          item.ProductKey,
		CategoryID:          item.Category.ID,
		CategoryName:        item.Category.Name,
		ItemCategoryID:      item.ItemCategory.ID,
		ItemCategoryName:    item.ItemCategory.Name,
		ItemCategoryDetail:  item.ItemCategory.Description,
		Unit:                item.Inventory.Unit,
		InitialQuantity:     item.Inventory.InitialQuantity,
		AvailableQuantity:   item.Inventory.AvailableQuantity,
		UnitCost:            item.Inventory.UnitCost,
		InitialQuantityDate: item.Inventory.InitialQuantityDate,
		CalculationScale:    item.CalculationScale,
		HasNoIvaDays:        item.HasNoIvaDays,
		TaxCount:            len(item.Tax),
		PriceCount:          len(item.Price),
		CustomFieldCount:    len(item.CustomFields),
	}

	if len(item.Price) > 0 {
		main := item.Price[0]
		for _, price := range item.Price {
			if price.Main {
				main = price
				break
			}
		}

		row.MainPrice = main.Price
		row.Currency = main.Currency.Code
		row.PriceList = main.Name
	}

	taxes := SummarizeTaxes(item.Tax)
	row.VATPercentage = taxes.VATPercentage
	row.VATName = taxes.VATName
	row.OtherTaxes = taxes.Others

	return row
}

func (r ItemRow) Fields() sharepoint.Fields {
	return sharepoint.Fields{
		"Title":                  r.Name,
		"Categoria":              r.ItemCategoryName,
		"Precio_x0020_Principal": number(r.MainPrice),
	}
}

func (r ItemRow) Headers() []string {
	return []string{
		"ID_Item", "Nombre", "Descripcion", "Referencia", "Estado", "Tipo", "Tipo_Item", "Clave_Producto",
		"Categoria_ID", "Categoria_Nombre",
		"Item_Categoria_ID", "Item_Categoria_Nombre", "Item_Categoria_Descripcion",
		"Precio_Principal", "Moneda", "Lista_Precios",
		"Unidad_Medida", "Cantidad_Inicial", "Cantidad_Disponible", "Costo_Unitario", "Fecha_Cantidad_Inicial",
		"Escala_Calculo", "Dias_Sin_IVA",
		"IVA_Porcentaje", "IVA_Tipo", "Otros_Impuestos", "Total_Impuestos",
		"Cantidad_Precios", "Cantidad_Campos_Personalizados",
	}
}

func (r ItemRow) Values() []any {
	return []any{
		r.ID.String(), r.Name, r.Description, r.Reference, r.Status, r.Type, r.ItemType, r.ProductKey,
		r.CategoryID.String(), r.CategoryName,
		r.ItemCategoryID.String(), r.ItemCategoryName, r.ItemCategoryDetail,
		number(r.MainPrice), r.Currency, r.PriceList,
		r.Unit, number(r.InitialQuantity), number(r.AvailableQuantity), number(r.UnitCost), r.InitialQuantityDate,
		r.CalculationScale, r.HasNoIvaDays,
		number(r.VATPercentage), r.VATName, r.OtherTaxes, r.TaxCount,
		r.PriceCount, r.CustomFieldCount,
	}
}
