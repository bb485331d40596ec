package flatten

import (
	"strings"

	"github.com/shopspring/decimal"

	"github.com/andinosoft/alegra-sharepoint-sync/alegra"
	"github.com/andinosoft/alegra-sharepoint-sync/sharepoint"
)

// BillCategoryLookup lists the internal name variations under which the
// purchase invoice lookup column of the categories list may have been
// provisioned.
var BillCategoryLookup = []string{
	"Factura_x0020_de_x0020_CompraLookupId",
	"Factura_x0020_de_x0020_Compra",
	"FacturadeCompraLookupId",
	"FacturadeCompra",
}

// BillRetentionLookup is the internal name of the purchase invoice lookup
// column of the retentions list.
const BillRetentionLookup = "Factura_x0020_de_x0020_CompraLookupId"

// BillRow is a purchase invoice flattened for the purchase invoices list.
type BillRow struct {
	ID                     alegra.ID
	Date                   string
	DueDate                string
	Number                 string
	Status                 string
	Total                  decimal.Decimal
	TotalPaid              decimal.Decimal
	Balance                decimal.Decimal
	Type                   string
	Observations           string
	ProviderID             alegra.ID
	ProviderName           string
	ProviderIdentification string
	ProviderEmail          string
	ProviderPhone          string
	Warehouse              string
	CostCenter             string
	CostCenterCode         string
	RetentionCount         int
	CategoryCount          int
}

// BillCategoryRow is an expense category line of a purchase invoice.
type BillCategoryRow struct {
	BillNumber    string
	CategoryID    alegra.ID
	CategoryName  string
	Price         decimal.Decimal
	Quantity      decimal.Decimal
	Discount      decimal.Decimal
	Observations  string
	Subtotal      decimal.Decimal
	Total         decimal.Decimal
	Taxes         decimal.Decimal
	TaxDetail     string
	VATPercentage decimal.Decimal
	VATAmount     decimal.Decimal
}

// BillRetentionRow is a withholding applied to a purchase invoice. AssumedBy
// reports whether the company or the provider carries the retention.
type BillRetentionRow struct {
	RetentionID  alegra.ID
	Name         string
	Percentage   float64
	Amount       decimal.Decimal
	BillNumber   string
	Type         string
	CalculatedBy string
	IsAssumed    bool
	ExchangeRate string
	AssumedBy    string
}

// Bill flattens a purchase invoice into an invoice row, one row per expense
// category and one row per retention.
func Bill(bill alegra.Bill) (BillRow, []BillCategoryRow, []BillRetentionRow) {
	row := BillRow{
		ID:                     bill.ID,
		Date:                   bill.Date,
		DueDate:                bill.DueDate,
		Number:                 bill.NumberTemplate.FullNumber,
		Status:                 bill.Status,
		Total:                  bill.Total,
		TotalPaid:              bill.TotalPaid,
		Balance:                bill.Balance,
		Type:                   bill.Type,
		Observations:           bill.Observations,
		ProviderID:             bill.Provider.ID,
		ProviderName:           bill.Provider.Name,
		ProviderIdentification: bill.Provider.Identification,
		ProviderEmail:          bill.Provider.Email,
		ProviderPhone:          bill.Provider.PhonePrimary,
		Warehouse:              bill.Warehouse.Name,
		CostCenter:             bill.CostCenter.Name,
		CostCenterCode:         bill.CostCenter.Code,
		RetentionCount:         len(bill.Retentions),
		CategoryCount:          len(bill.Purchases.Categories),
	}

	categories := []BillCategoryRow{}
	for _, category := range bill.Purchases.Categories {
		taxes := SummarizeTaxes(category.Tax)

		categories = append(categories, BillCategoryRow{
			BillNumber:    row.Number,
			CategoryID:    category.ID,
			CategoryName:  category.Name,
			Price:         category.Price,
			Quantity:      category.Quantity,
			Discount:      category.Discount,
			Observations:  category.Observations,
			Subtotal:      category.Subtotal,
			Total:         category.Total,
			Taxes:         taxes.Total,
			TaxDetail:     taxes.Detail,
			VATPercentage: taxes.VATPercentage,
			VATAmount:     taxes.VATAmount,
		})
	}

	retentions := []BillRetentionRow{}
	for _, retention := range bill.Retentions {
		assumedBy := "Proveedor"
		if retention.IsAssumed {
			assumedBy = "Empresa"
		}

		retentions = append(retentions, BillRetentionRow{
			RetentionID:  retention.ID,
			Name:         retention.Name,
			Percentage:   scrubPercentage(retention.Percentage),
			Amount:       retention.Amount,
			BillNumber:   row.Number,
			Type:         retention.Type,
			CalculatedBy: retention.CalculatedBy,
			IsAssumed:    retention.IsAssumed,
			ExchangeRate: retention.ExchangeRate,
			AssumedBy:    assumedBy,
		})
	}

	return row, categories, retentions
}

// scrubPercentage strips everything but digits and the decimal point from a
// percentage that may carry a '%' sign or other stray characters.
func scrubPercentage(percentage string) float64 {
	clean := strings.Map(func(r rune) rune {
		if (r >= '0' && r <= '9') || r == '.' {
			return r
		}
		return -1
	}, percentage)

	if clean == "" {
		return 0
	}

	value, err := decimal.NewFromString(clean)
	if err != nil {
		return 0
	}

	return number(value)
}

func (r BillRow) Fields() sharepoint.Fields {
	return sharepoint.Fields{
		"Title":                          r.ID.String(),
		"Fecha":                          r.Date,
		"Fecha_x0020_Vencimiento":        r.DueDate,
		"Numero_x0020_Factura":           r.Number,
		"Estado":                         r.Status,
		"Total":                          number(r.Total),
		"Total_x0020_Pagado":             number(r.TotalPaid),
		"Saldo":                          number(r.Balance),
		"Tipo_x0020_Factura":             r.Type,
		"Observaciones":                  r.Observations,
		"ID_x0020_Proveedor":             r.ProviderID.String(),
		"Nombre_x0020_Proveedor":         r.ProviderName,
		"Identificacion_x0020_Proveedor": r.ProviderIdentification,
		"Nombre_x0020_Almacen":           r.Warehouse,
		"Centro_x0020_de_x0020_Costo":    r.CostCenter,
		"Codigo_x0020_Unico":             r.CostCenterCode,
		"Cantidad_x0020_Retenciones":     r.RetentionCount,
		"Cantidad_x0020_Categorias":      r.CategoryCount,
	}
}

func (r BillRow) Headers() []string {
	return []string{
		"ID_Factura", "Fecha", "Fecha_Vencimiento", "Numero_Factura", "Estado",
		"Total", "Total_Pagado", "Saldo", "Tipo_Factura", "Observaciones",
		"ID_Proveedor", "Nombre_Proveedor", "Identificacion_Proveedor",
		"Email_Proveedor", "Telefono_Proveedor",
		"Nombre_Almacen", "Centro_de_Costo", "Codigo_Unico",
		"Cantidad_Retenciones", "Cantidad_Categorias",
	}
}

func (r BillRow) Values() []any {
	return []any{
		r.ID.String(), r.Date, r.DueDate, r.Number, r.Status,
		number(r.Total), number(r.TotalPaid), number(r.Balance), r.Type, r.Observations,
		r.ProviderID.String(), r.ProviderName, r.ProviderIdentification,
		r.ProviderEmail, r.ProviderPhone,
		r.Warehouse, r.CostCenter, r.CostCenterCode,
		r.RetentionCount, r.CategoryCount,
	}
}

func (r BillCategoryRow) Fields() sharepoint.Fields {
	return sharepoint.Fields{
		"Title":                  r.BillNumber,
		"Categoria_x0020_ID":     r.CategoryID.String(),
		"Categoria_x0020_Nombre": r.CategoryName,
		"Precio_x0020_Unitario":  number(r.Price),
		"Cantidad":               number(r.Quantity),
		"Descuento":              number(r.Discount),
		"Observaciones":          r.Observations,
		"Subtotal":               number(r.Subtotal),
		"Total_x0020_Categoria":  number(r.Total),
		"Impuestos":              number(r.Taxes),
	}
}

func (r BillCategoryRow) Headers() []string {
	return []string{
		"Numero_Factura", "Categoria_ID", "Categoria_Nombre",
		"Precio_Unitario", "Cantidad", "Descuento", "Observaciones",
		"Subtotal", "Total_Categoria", "Impuestos", "Detalle_Impuestos",
		"IVA_Porcentaje", "IVA_Monto",
	}
}

func (r BillCategoryRow) Values() []any {
	return []any{
		r.BillNumber, r.CategoryID.String(), r.CategoryName,
		number(r.Price), number(r.Quantity), number(r.Discount), r.Observations,
		number(r.Subtotal), number(r.Total), number(r.Taxes), r.TaxDetail,
		number(r.VATPercentage), number(r.VATAmount),
	}
}

func (r BillRetentionRow) Fields() sharepoint.Fields {
	return sharepoint.Fields{
		"Title":                      r.RetentionID.String(),
		"Nombre":                     r.Name,
		"Porcentaje":                 r.Percentage,
		"Monto":                      number(r.Amount),
		"Retencion_x0020_Tipo":       r.Type,
		"Calculado_x0020_Por":        r.CalculatedBy,
		"Tipo_x0020_de_x0020_Cambio": r.ExchangeRate,
		"Asumido_x0020_Por":          r.AssumedBy,
	}
}

func (r BillRetentionRow) Headers() []string {
	return []string{
		"ID_Retencion", "Nombre", "Porcentaje", "Monto", "Factura_de_Compra",
		"Retencion_Tipo", "Calculado_Por", "Es_Asumida", "Tipo_de_Cambio", "Asumido_Por",
	}
}

func (r BillRetentionRow) Values() []any {
	return []any{
		r.RetentionID.String(), r.Name, r.Percentage, number(r.Amount), r.BillNumber,
		r.Type, r.CalculatedBy, r.IsAssumed, r.ExchangeRate, r.AssumedBy,
	}
}
