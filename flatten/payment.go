package flatten

import (
	"github.com/shopspring/decimal"

	"github.com/andinosoft/alegra-sharepoint-sync/alegra"
	"github.com/andinosoft/alegra-sharepoint-sync/sharepoint"
)

// Record type discriminators of the unified payments list.
const (
	RecordSimplePayment   = "PAGO_SIMPLE"
	RecordInvoicePayment  = "PAGO_CON_FACTURA"
	RecordCategoryPayment = "PAGO_CON_CATEGORIA"
)

// PaymentRow is one record of the unified payments list. A payment without
// invoices or categories produces a single simple record; otherwise one
// record is produced per associated invoice and per associated category,
// all sharing the payment header fields.
type PaymentRow struct {
	PaymentID            alegra.ID
	Date                 string
	Number               string
	InternalNumber       alegra.ID
	Amount               decimal.Decimal
	Type                 string
	Method               string
	Status               string
	Observations         string
	Anotations           string
	AccountID            alegra.ID
	AccountName          string
	AccountType          string
	ClientID             alegra.ID
	ClientName           string
	ClientPhone          string
	ClientIdentification string
	CostCenterID         alegra.ID
	CostCenterCode       string
	CostCenterName       string

	InvoiceID      alegra.ID
	InvoiceNumber  string
	InvoiceDate    string
	InvoicePaid    decimal.Decimal
	InvoiceTotal   decimal.Decimal
	InvoiceBalance decimal.Decimal

	CategoryID           alegra.ID
	CategoryName         string
	CategoryPrice        decimal.Decimal
	CategoryQuantity     decimal.Decimal
	CategoryTotal        decimal.Decimal
	CategoryObservations string
	CategoryBehavior     string

	RecordType string
}

// Payment flattens a payment into unified records.
func Payment(payment alegra.Payment) []PaymentRow {
	base := PaymentRow{
		PaymentID:            payment.ID,
		Date:                 payment.Date,
		Number:               payment.NumberTemplate.FullNumber,
		InternalNumber:       payment.Number,
		Amount:               payment.Amount,
		Type:                 payment.Type,
		Method:               payment.PaymentMethod,
		Status:               payment.Status,
		Observations:         payment.Observations,
		Anotations:           payment.Anotation,
		AccountID:            payment.BankAccount.ID,
		AccountName:          payment.BankAccount.Name,
		AccountType:          payment.BankAccount.Type,
		ClientID:             payment.Client.ID,
		ClientName:           payment.Client.Name,
		ClientPhone:          payment.Client.Phone,
		ClientIdentification: payment.Client.Identification,
		CostCenterID:         payment.CostCenter.ID,
		CostCenterCode:       payment.CostCenter.Code,
		CostCenterName:       payment.CostCenter.Name,
		RecordType:           RecordSimplePayment,
	}

	if len(payment.Invoices) == 0 && len(payment.Categories) == 0 {
		return []PaymentRow{base}
	}

	rows := []PaymentRow{}

	for _, invoice := range payment.Invoices {
		row := base
		row.InvoiceID = invoice.ID
		row.InvoiceNumber = invoice.Number.String()
		row.InvoiceDate = invoice.Date
		row.InvoicePaid = invoice.Amount
		row.InvoiceTotal = invoice.Total
		row.InvoiceBalance = invoice.Balance
		row.RecordType = RecordInvoicePayment
		rows = append(rows, row)
	}

	for _, category := range payment.Categories {
		row := base
		row.CategoryID = category.ID
		row.CategoryName = category.Name
		row.CategoryPrice = category.Price
		row.CategoryQuantity = category.Quantity
		row.CategoryTotal = category.Total
		row.CategoryObservations = category.Observations
		row.CategoryBehavior = category.Behavior
		row.RecordType = RecordCategoryPayment
		rows = append(rows, row)
	}

	return rows
}

func (r PaymentRow) Fields() sharepoint.Fields {
	fields := sharepoint.Fields{
		"Title":                            r.PaymentID.String(),
		"Fecha":                            r.Date,
		"Numero_x0020_Pago":                r.Number,
		"Numero_x0020_Interno":             r.InternalNumber.String(),
		"Monto_x0020_Total":                number(r.Amount),
		"Tipo_x0020_Pago":                  r.Type,
		"Metodo_x0020_Pago":                r.Method,
		"Estado_x0020_Pago":                r.Status,
		"Observaciones":                    r.Observations,
		"Cuenta_x0020_Nombre":              r.AccountName,
		"ID_x0020_Cuenta":                  r.AccountID.String(),
		"Cuenta_x0020_Tipo":                r.AccountType,
		"ID_x0020_Cliente":                 r.ClientID.String(),
		"Nombre_x0020_Cliente":             r.ClientName,
		"Identificacion_x0020_Cliente":     r.ClientIdentification,
		"ID_x0020_Factura":                 r.InvoiceID.String(),
		"Numero_x0020_Factura":             r.InvoiceNumber,
		"Factura_x0020_Monto_x0020_Pagado": number(r.InvoicePaid),
		"Total_x0020_Factura":              number(r.InvoiceTotal),
		"Saldo_x0020_Factura":              number(r.InvoiceBalance),
		"Nombre_x0020_Categoria":           r.CategoryName,
		"Precio_x0020_Categoria":           number(r.CategoryPrice),
		"Cantidad_x0020_Categoria":         number(r.CategoryQuantity),
		"Total_x0020_Categoria":            number(r.CategoryTotal),
		"Observaciones_x0020_Categoria":    r.CategoryObservations,
	}

	// date columns reject empty strings
	if r.InvoiceDate != "" {
		fields["Fecha_x0020_Factura"] = r.InvoiceDate
	}

	return fields
}

func (r PaymentRow) Headers() []string {
	return []string{
		"Pago_ID", "Fecha", "Numero_Pago", "Numero_Interno", "Monto_Total",
		"Tipo_Pago", "Metodo_Pago", "Estado_Pago", "Observaciones_Pago", "Anotaciones_Pago",
		"Cuenta_ID", "Cuenta_Nombre", "Cuenta_Tipo",
		"Cliente_ID", "Cliente_Nombre", "Cliente_Telefono", "Cliente_Identificacion",
		"Centro_Costo_ID", "Centro_Costo_Codigo", "Centro_Costo_Nombre",
		"Factura_ID", "Factura_Numero", "Factura_Fecha", "Factura_Monto_Pagado", "Factura_Total", "Factura_Saldo",
		"Categoria_ID", "Categoria_Nombre", "Categoria_Precio", "Categoria_Cantidad",
		"Categoria_Total", "Categoria_Observaciones", "Categoria_Comportamiento",
		"Tipo_Registro",
	}
}

func (r PaymentRow) Values() []any {
	return []any{
		r.PaymentID.String(), r.Date, r.Number, r.InternalNumber.String(), number(r.Amount),
		r.Type, r.Method, r.Status, r.Observations, r.Anotations,
		r.AccountID.String(), r.AccountName, r.AccountType,
		r.ClientID.String(), r.ClientName, r.ClientPhone, r.ClientIdentification,
		r.CostCenterID.String(), r.CostCenterCode, r.CostCenterName,
		r.InvoiceID.String(), r.InvoiceNumber, r.InvoiceDate, number(r.InvoicePaid), number(r.InvoiceTotal), number(r.InvoiceBalance),
		r.CategoryID.String(), r.CategoryName, number(r.CategoryPrice), number(r.CategoryQuantity),
		number(r.CategoryTotal), r.CategoryObservations, r.CategoryBehavior,
		r.RecordType,
	}
}
