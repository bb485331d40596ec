package commands

import (
	"context"
	"fmt"

	"github.com/rs/zerolog"

	"github.com/andinosoft/alegra-sharepoint-sync/alegra"
	"github.com/andinosoft/alegra-sharepoint-sync/config"
	"github.com/andinosoft/alegra-sharepoint-sync/flatten"
	"github.com/andinosoft/alegra-sharepoint-sync/sharepoint"
)

// counters tracks uploaded parent records and their child rows.
type counters struct {
	ok          int
	failed      int
	childOK     int
	childFailed int
}

// pushInvoice uploads a sales invoice and its line items. The invoice has to
// land first so the items can reference it through the lookup column.
func pushInvoice(ctx context.Context, destination *sharepoint.Client, lists config.Lists, invoice alegra.Invoice, log zerolog.Logger) (bool, int, int) {
	row, items := flatten.Invoice(invoice)

	id, err := destination.CreateItem(ctx, lists.Invoices, row.Fields())
	if err != nil {
		log.Error().Err(err).Str("invoice", row.Number).Msg("failed to upload invoice")
		return false, 0, 0
	}

	log.Info().Str("invoice", row.Number).Str("sharepoint-id", id).Msg("invoice uploaded")

	ok := 0
	failed := 0

	for _, item := range items {
		if _, err := destination.CreateItemWithLookup(ctx, lists.InvoiceItems, flatten.InvoiceItemLookup, id, item.Fields()); err != nil {
			log.Error().Err(err).Str("invoice", row.Number).Str("item", item.Name).Msg("failed to upload invoice item")
			failed++
		} else {
			ok++
		}
	}

	return true, ok, failed
}

// pushPayment uploads the unified records of a payment.
func pushPayment(ctx context.Context, destination *sharepoint.Client, lists config.Lists, payment alegra.Payment, log zerolog.Logger) (int, int) {
	ok := 0
	failed := 0

	for _, row := range flatten.Payment(payment) {
		if _, err := destination.CreateItem(ctx, lists.Payments, row.Fields()); err != nil {
			log.Error().Err(err).Str("payment", row.Number).Str("record-type", row.RecordType).Msg("failed to upload payment record")
			failed++
		} else {
			ok++
		}
	}

	return ok, failed
}

// pushBill uploads a purchase invoice with its expense categories and
// retentions, both linked back to the invoice through lookup columns.
func pushBill(ctx context.Context, destination *sharepoint.Client, lists config.Lists, bill alegra.Bill, log zerolog.Logger) (bool, counters, counters) {
	row, categories, retentions := flatten.Bill(bill)

	id, err := destination.CreateItem(ctx, lists.Bills, row.Fields())
	if err != nil {
		log.Error().Err(err).Str("bill", row.Number).Msg("failed to upload bill")
		return false, counters{}, counters{}
	}

	log.Info().Str("bill", row.Number).Str("sharepoint-id", id).Msg("bill uploaded")

	c := counters{}
	for _, category := range categories {
		if _, err := destination.CreateItemWithLookup(ctx, lists.BillCategories, flatten.BillCategoryLookup, id, category.Fields()); err != nil {
			log.Error().Err(err).Str("bill", row.Number).Str("category", category.CategoryName).Msg("failed to upload bill category")
			c.failed++
		} else {
			c.ok++
		}
	}

	r := counters{}
	for _, retention := range retentions {
		fields := retention.Fields()
		fields[flatten.BillRetentionLookup] = id

		if _, err := destination.CreateItem(ctx, lists.BillRetentions, fields); err != nil {
			log.Error().Err(err).Str("bill", row.Number).Str("retention", retention.Name).Msg("failed to upload bill retention")
			r.failed++
		} else {
			r.ok++
		}
	}

	return true, c, r
}

// summary writes the final banner of a job to the log, mirroring it on the
// console.
func summary(log zerolog.Logger, logfile string, lines ...string) {
	log.Info().Msg("============================================================")
	for _, line := range lines {
		log.Info().Msg(line)
	}
	log.Info().Msgf("log file: %v", logfile)
	log.Info().Msg("============================================================")

	for _, line := range lines {
		fmt.Println(line)
	}
	fmt.Printf("log: %v\n", logfile)
}
