package flatten

import (
	"github.com/shopspring/decimal"

	"github.com/andinosoft/alegra-sharepoint-sync/alegra"
	"github.com/andinosoft/alegra-sharepoint-sync/sharepoint"
)

// InvoiceItemLookup lists the internal name variations under which the
// sales invoice lookup column of the invoice items list may have been
// provisioned.
var InvoiceItemLookup = []string{
	"Factura_x0020_de_x0020_VentaLookupId",
	"Factura_x0020_de_x0020_Venta",
	"FacturadeVentaLookupId",
	"FacturadeVenta",
}

// InvoiceRow is a sales invoice flattened for the invoices list.
type InvoiceRow struct {
	ID                   alegra.ID
	Date                 string
	DueDate              string
	Number               string
	Status               string
	Subtotal             decimal.Decimal
	Discount             decimal.Decimal
	Taxes                decimal.Decimal
	Total                decimal.Decimal
	TotalPaid            decimal.Decimal
	Balance              decimal.Decimal
	PaymentTerm          string
	PaymentForm          string
	ClientID             alegra.ID
	ClientName           string
	ClientIdentification string
	ClientEmail          string
	ClientPhone          string
	ClientCity           string
	ClientDepartment     string
	ClientAddress        string
	SellerName           string
	SellerID             string
	Observations         string
	Anotation            string
	Warehouse            string
	CostCenter           string
	CUFE                 string
	LegalStatus          string
	ItemCount            int
}

// InvoiceItemRow is a sales invoice line flattened for the invoice items
// list, linked back to its invoice by number.
type InvoiceItemRow struct {
	InvoiceID     alegra.ID
	InvoiceNumber string
	Name          string
	Description   string
	Price         decimal.Decimal
	Quantity      decimal.Decimal
	Discount      decimal.Decimal
	Total         decimal.Decimal
	Reference     string
	Unit          string
}

// Invoice flattens a sales invoice into an invoice row and one row per
// invoice line.
func Invoice(invoice alegra.Invoice) (InvoiceRow, []InvoiceItemRow) {
	row := InvoiceRow{
		ID:                   invoice.ID,
		Date:                 invoice.Date,
		DueDate:              invoice.DueDate,
		Number:               invoice.NumberTemplate.FullNumber,
		Status:               invoice.Status,
		Subtotal:             invoice.Subtotal,
		Discount:             invoice.Discount,
		Taxes:                invoice.Tax,
		Total:                invoice.Total,
		TotalPaid:            invoice.TotalPaid,
		Balance:              invoice.Balance,
		PaymentTerm:          invoice.Term,
		PaymentForm:          invoice.PaymentForm,
		ClientID:             invoice.Client.ID,
		ClientName:           invoice.Client.Name,
		ClientIdentification: invoice.Client.Identification,
		ClientEmail:          invoice.Client.Email,
		ClientPhone:          invoice.Client.PhonePrimary,
		ClientCity:           invoice.Client.Address.City,
		ClientDepartment:     invoice.Client.Address.Department,
		ClientAddress:        invoice.Client.Address.Address,
		SellerName:           invoice.Seller.Name,
		SellerID:             invoice.Seller.Identification,
		Observations:         invoice.Observations,
		Anotation:            invoice.Anotation,
		Warehouse:            invoice.Warehouse.Name,
		CostCenter:           invoice.CostCenter.Name,
		CUFE:                 invoice.Stamp.CUFE,
		LegalStatus:          invoice.Stamp.LegalStatus,
		ItemCount:            len(invoice.Items),
	}

	items := []InvoiceItemRow{}
	for _, item := range invoice.Items {
		items = append(items, InvoiceItemRow{
			InvoiceID:     invoice.ID,
			InvoiceNumber: invoice.NumberTemplate.FullNumber,
			Name:          item.Name,
			Description:   item.Description,
			Price:         item.Price,
			Quantity:      item.Quantity,
			Discount:      item.Discount,
			Total:         item.Total,
			Reference:     item.Reference,
			Unit:          item.Unit,
		})
	}

	return row, items
}

func (r InvoiceRow) Fields() sharepoint.Fields {
	return sharepoint.Fields{
		"Title":                   r.ID.String(),
		"Fecha":                   r.Date,
		"Fecha_x0020_Vencimiento": r.DueDate,
		"Numero_x0020_Factura":    r.Number,
		"Subtotal":                number(r.Subtotal),
		"Descuento":               number(r.Discount),
		"Impuestos":               number(r.Taxes),
		"Total":                   number(r.Total),
		"Total_x0020_Pagado":      number(r.TotalPaid),
		"Saldo":                   number(r.Balance),
		"Cliente_x0020_Nombre":    r.ClientName,
		"Estado":                  r.Status,
	}
}

func (r InvoiceRow) Headers() []string {
	return []string{
		"ID", "Fecha", "Fecha_Vencimiento", "Numero_Factura", "Estado",
		"Subtotal", "Descuento", "Impuestos", "Total", "Total_Pagado", "Saldo",
		"Termino_Pago", "Forma_Pago",
		"Cliente_ID", "Cliente_Nombre", "Cliente_Identificacion", "Cliente_Email",
		"Cliente_Telefono", "Cliente_Ciudad", "Cliente_Departamento", "Cliente_Direccion",
		"Vendedor_Nombre", "Vendedor_ID",
		"Observaciones", "Anotacion", "Almacen", "Centro_Costo",
		"CUFE", "Estado_DIAN", "Cantidad_Items",
	}
}

func (r InvoiceRow) Values() []any {
	return []any{
		r.ID.String(), r.Date, r.DueDate, r.Number, r.Status,
		number(r.Subtotal), number(r.Discount), number(r.Taxes), number(r.Total), number(r.TotalPaid), number(r.Balance),
		r.PaymentTerm, r.PaymentForm,
		r.ClientID.String(), r.ClientName, r.ClientIdentification, r.ClientEmail,
		r.ClientPhone, r.ClientCity, r.ClientDepartment, r.ClientAddress,
		r.SellerName, r.SellerID,
		r.Observations, r.Anotation, r.Warehouse, r.CostCenter,
		r.CUFE, r.LegalStatus, r.ItemCount,
	}
}

func (r InvoiceItemRow) Fields() sharepoint.Fields {
	return sharepoint.Fields{
		"Title":     r.InvoiceNumber,
		"Nombre":    r.Name,
		"Precio":    number(r.Price),
		"Cantidad":  number(r.Quantity),
		"Descuento": number(r.Discount),
		"Total":     number(r.Total),
	}
}

func (r InvoiceItemRow) Headers() []string {
	return []string{
		"Factura_ID", "Numero_Factura", "Item_Nombre", "Item_Descripcion",
		"Item_Precio", "Item_Cantidad", "Item_Descuento", "Item_Total",
		"Item_Referencia", "Item_Unidad",
	}
}

func (r InvoiceItemRow) Values() []any {
	return []any{
		r.InvoiceID.String(), r.InvoiceNumber, r.Name, r.Description,
		number(r.Price), number(r.Quantity), number(r.Discount), number(r.Total),
		r.Reference, r.Unit,
	}
}
