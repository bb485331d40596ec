package flatten

import (
	"testing"

	"github.com/shopspring/decimal"

	"github.com/andinosoft/alegra-sharepoint-sync/alegra"
)

func TestFlattenSimplePayment(t *testing.T) {
	payment := alegra.Payment{
		ID:     "555",
		Date:   "2026-03-15",
		Number: "23",
		Type:   "in",
		Status: "applied",
		Amount: decimal.NewFromInt(250000),
		NumberTemplate: alegra.NumberTemplate{
			FullNumber: "RC-23",
		},
		Client: alegra.Contact{
			ID:   "77",
			Name: "Comercializadora El Roble",
		},
		BankAccount: alegra.BankAccount{
			ID:   "3",
			Name: "Bancolombia Ahorros",
			Type: "bank",
		},
	}

	rows := Payment(payment)

	if len(rows) != 1 {
		t.Fatalf("incorrect record count - expected:%v, got:%v", 1, len(rows))
	}

	if rows[0].RecordType != RecordSimplePayment {
		t.Errorf("incorrect record type - expected:%v, got:%v", RecordSimplePayment, rows[0].RecordType)
	}

	if rows[0].PaymentID != "555" || rows[0].Number != "RC-23" || rows[0].ClientName != "Comercializadora El Roble" {
		t.Errorf("incorrectly flattened payment - got:%+v", rows[0])
	}
}

func TestFlattenPaymentWithInvoicesAndCategories(t *testing.T) {
	payment := alegra.Payment{
		ID:     "556",
		Amount: decimal.NewFromInt(500000),
		Invoices: []alegra.PaymentInvoice{
			{ID: "4321", Number: "FV-1001", Date: "2026-03-01", Amount: decimal.NewFromInt(300000)},
			{ID: "4322", Number: "FV-1002", Date: "2026-03-02", Amount: decimal.NewFromInt(150000)},
		},
		Categories: []alegra.PaymentCategory{
			{ID: "9", Name: "Otros ingresos", Total: decimal.NewFromInt(50000)},
		},
	}

	rows := Payment(payment)

	if len(rows) != 3 {
		t.Fatalf("incorrect record count - expected:%v, got:%v", 3, len(rows))
	}

	if rows[0].RecordType != RecordInvoicePayment || rows[0].InvoiceNumber != "FV-1001" {
		t.Errorf("incorrect first record - got:%+v", rows[0])
	}

	if rows[1].RecordType != RecordInvoicePayment || rows[1].InvoiceNumber != "FV-1002" {
		t.Errorf("incorrect second record - got:%+v", rows[1])
	}

	if rows[2].RecordType != RecordCategoryPayment || rows[2].CategoryName != "Otros ingresos" {
		t.Errorf("incorrect third record - got:%+v", rows[2])
	}

	for _, row := range rows {
		if row.PaymentID != "556" {
			t.Errorf("record lost the payment header - got:%+v", row)
		}
	}
}

func TestPaymentRowFieldsOmitEmptyInvoiceDate(t *testing.T) {
	rows := Payment(alegra.Payment{ID: "555"})

	fields := rows[0].Fields()

	if _, ok := fields["Fecha_x0020_Factura"]; ok {
		t.Errorf("unexpected invoice date field in %+v", fields)
	}

	rows = Payment(alegra.Payment{
		ID: "556",
		Invoices: []alegra.PaymentInvoice{
			{ID: "4321", Date: "2026-03-01"},
		},
	})

	fields = rows[0].Fields()

	if fields["Fecha_x0020_Factura"] != "2026-03-01" {
		t.Errorf("incorrect invoice date - expected:%v, got:%v", "2026-03-01", fields["Fecha_x0020_Factura"])
	}
}
