package commands

import (
	"context"
	"fmt"
	"time"

	"github.com/rs/zerolog"
	"github.com/samber/lo"
	"github.com/shopspring/decimal"
	"github.com/spf13/cobra"

	"github.com/andinosoft/alegra-sharepoint-sync/alegra"
	"github.com/andinosoft/alegra-sharepoint-sync/config"
	"github.com/andinosoft/alegra-sharepoint-sync/flatten"
	"github.com/andinosoft/alegra-sharepoint-sync/sharepoint"
)

const (
	historyBatchSize  = 50
	historyBatchPause = 2 * time.Second
	historyDatePause  = 1 * time.Second
)

var history = struct {
	entity string
	from   string
	to     string
}{
	entity: "invoices",
}

func historyCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "history",
		Short: "Backfills a date range into SharePoint",
		Long:  "Fetches an entity day by day over a date range, writes an .xlsx snapshot to the SharePoint drive and uploads the rows to the lists in batches.",
		RunE:  runHistory,
	}

	cmd.Flags().StringVar(&history.entity, "entity", "invoices", "entity to backfill (invoices, payments or bills)")
	cmd.Flags().StringVar(&history.from, "from", "", "start date (YYYY-MM-DD, overrides FECHA_INICIO)")
	cmd.Flags().StringVar(&history.to, "to", "", "end date (YYYY-MM-DD, overrides FECHA_FIN)")

	return cmd
}

func runHistory(cmd *cobra.Command, args []string) error {
	log, logfile, closer, err := newLogger(fmt.Sprintf("historico_%v", history.entity))
	if err != nil {
		return err
	}
	defer closer()

	cfg, source, destination, err := setup(cmd, log)
	if err != nil {
		return err
	}

	from := history.from
	if from == "" {
		from = cfg.StartDate
	}

	to := history.to
	if to == "" {
		to = cfg.EndDate
	}
	if to == "" {
		to = time.Now().Format("2006-01-02")
	}

	dates, err := dateRange(from, to)
	if err != nil {
		return err
	}

	log.Info().
		Str("entity", history.entity).
		Str("from", from).
		Str("to", to).
		Int("days", len(dates)).
		Msg("backfill started")

	switch history.entity {
	case "invoices":
		return historyInvoices(cmd.Context(), cfg, source, destination, dates, log, logfile)

	case "payments":
		return historyPayments(cmd.Context(), cfg, source, destination, dates, log, logfile)

	case "bills":
		return historyBills(cmd.Context(), cfg, source, destination, dates, log, logfile)

	default:
		return fmt.Errorf("unknown entity %q (expected invoices, payments or bills)", history.entity)
	}
}

func historyInvoices(ctx context.Context, cfg *config.Config, source *alegra.Client, destination *sharepoint.Client, dates []time.Time, log zerolog.Logger, logfile string) error {
	invoices := []alegra.Invoice{}

	for i, date := range dates {
		page, err := source.Invoices(ctx, date)
		if err != nil {
			log.Error().Err(err).Str("date", date.Format("2006-01-02")).Msg("failed to retrieve invoices")
			continue
		}

		if len(page) > 0 {
			log.Info().Str("date", date.Format("2006-01-02")).Int("count", len(page)).Msg("invoices retrieved")
		}

		invoices = append(invoices, page...)
		pace(i)
	}

	if len(invoices) == 0 {
		summary(log, logfile, fmt.Sprintf("no invoices between %v and %v", dates[0].Format("2006-01-02"), dates[len(dates)-1].Format("2006-01-02")))
		return nil
	}

	rows := [][]any{}
	details := [][]any{}
	open := 0
	closed := 0
	total := decimal.Zero
	balance := decimal.Zero

	for _, invoice := range invoices {
		row, items := flatten.Invoice(invoice)

		rows = append(rows, row.Values())
		for _, item := range items {
			details = append(details, item.Values())
		}

		if row.Status == "open" {
			open++
		} else {
			closed++
		}

		total = total.Add(row.Total)
		balance = balance.Add(row.Balance)
	}

	average := total.Div(decimal.NewFromInt(int64(len(invoices))))

	stats := [][]any{
		{"Periodo", fmt.Sprintf("%v a %v", dates[0].Format("2006-01-02"), dates[len(dates)-1].Format("2006-01-02"))},
		{"Total Facturas", len(invoices)},
		{"Facturas Abiertas", open},
		{"Facturas Cerradas", closed},
		{"Monto Total", number(total)},
		{"Saldo Pendiente", number(balance)},
		{"Promedio por Factura", number(average)},
	}

	content, err := workbook([]sheet{
		{name: "Facturas", headers: flatten.InvoiceRow{}.Headers(), rows: rows},
		{name: "Items_Detalle", headers: flatten.InvoiceItemRow{}.Headers(), rows: details},
		{name: "Estadisticas", headers: []string{"Metrica", "Valor"}, rows: stats},
	})
	if err != nil {
		return err
	}

	if err := snapshot(ctx, destination, cfg.ExcelFolder, "facturas_historico", dates, content, log); err != nil {
		log.Error().Err(err).Msg("failed to upload snapshot")
	}

	c := counters{}
	for i, batch := range lo.Chunk(invoices, historyBatchSize) {
		if i > 0 {
			time.Sleep(historyBatchPause)
		}

		log.Info().Int("batch", i+1).Int("size", len(batch)).Msg("uploading invoice batch")

		for _, invoice := range batch {
			ok, items, failed := pushInvoice(ctx, destination, cfg.Lists, invoice, log)
			if ok {
				c.ok++
			} else {
				c.failed++
			}

			c.childOK += items
			c.childFailed += failed
		}
	}

	summary(log, logfile,
		fmt.Sprintf("sales invoice backfill %v a %v", dates[0].Format("2006-01-02"), dates[len(dates)-1].Format("2006-01-02")),
		fmt.Sprintf("invoices retrieved: %v", len(invoices)),
		fmt.Sprintf("invoices uploaded:  %v", c.ok),
		fmt.Sprintf("invoices failed:    %v", c.failed),
		fmt.Sprintf("items uploaded:     %v", c.childOK),
		fmt.Sprintf("items failed:       %v", c.childFailed))

	if c.ok == 0 {
		return fmt.Errorf("no invoices uploaded (%v failed)", c.failed)
	}

	return nil
}

func historyPayments(ctx context.Context, cfg *config.Config, source *alegra.Client, destination *sharepoint.Client, dates []time.Time, log zerolog.Logger, logfile string) error {
	payments := []alegra.Payment{}

	for i, date := range dates {
		page, err := source.Payments(ctx, date)
		if err != nil {
			log.Error().Err(err).Str("date", date.Format("2006-01-02")).Msg("failed to retrieve payments")
			continue
		}

		if len(page) > 0 {
			log.Info().Str("date", date.Format("2006-01-02")).Int("count", len(page)).Msg("payments retrieved")
		}

		payments = append(payments, page...)
		pace(i)
	}

	if len(payments) == 0 {
		summary(log, logfile, fmt.Sprintf("no payments between %v and %v", dates[0].Format("2006-01-02"), dates[len(dates)-1].Format("2006-01-02")))
		return nil
	}

	records := []flatten.PaymentRow{}
	amount := decimal.Zero

	for _, payment := range payments {
		records = append(records, flatten.Payment(payment)...)
		amount = amount.Add(payment.Amount)
	}

	rows := [][]any{}
	for _, record := range records {
		rows = append(rows, record.Values())
	}

	average := amount.Div(decimal.NewFromInt(int64(len(payments))))

	stats := [][]any{
		{"Periodo", fmt.Sprintf("%v a %v", dates[0].Format("2006-01-02"), dates[len(dates)-1].Format("2006-01-02"))},
		{"Total Pagos", len(payments)},
		{"Total Registros", len(records)},
		{"Monto Total", number(amount)},
		{"Promedio por Pago", number(average)},
	}

	content, err := workbook([]sheet{
		{name: "Pagos", headers: flatten.PaymentRow{}.Headers(), rows: rows},
		{name: "Estadisticas", headers: []string{"Metrica", "Valor"}, rows: stats},
	})
	if err != nil {
		return err
	}

	if err := snapshot(ctx, destination, cfg.ExcelFolder, "pagos_historico", dates, content, log); err != nil {
		log.Error().Err(err).Msg("failed to upload snapshot")
	}

	uploaded := 0
	failed := 0

	for i, batch := range lo.Chunk(records, historyBatchSize) {
		if i > 0 {
			time.Sleep(historyBatchPause)
		}

		log.Info().Int("batch", i+1).Int("size", len(batch)).Msg("uploading payment batch")

		for _, record := range batch {
			if _, err := destination.CreateItem(ctx, cfg.Lists.Payments, record.Fields()); err != nil {
				log.Error().Err(err).Str("payment", record.Number).Msg("failed to upload payment record")
				failed++
			} else {
				uploaded++
			}
		}
	}

	summary(log, logfile,
		fmt.Sprintf("payment backfill %v a %v", dates[0].Format("2006-01-02"), dates[len(dates)-1].Format("2006-01-02")),
		fmt.Sprintf("payments retrieved: %v", len(payments)),
		fmt.Sprintf("records uploaded:   %v", uploaded),
		fmt.Sprintf("records failed:     %v", failed))

	if uploaded == 0 {
		return fmt.Errorf("no payment records uploaded (%v failed)", failed)
	}

	return nil
}

func historyBills(ctx context.Context, cfg *config.Config, source *alegra.Client, destination *sharepoint.Client, dates []time.Time, log zerolog.Logger, logfile string) error {
	bills := []alegra.Bill{}

	for i, date := range dates {
		page, err := source.Bills(ctx, date)
		if err != nil {
			log.Error().Err(err).Str("date", date.Format("2006-01-02")).Msg("failed to retrieve bills")
			continue
		}

		if len(page) > 0 {
			log.Info().Str("date", date.Format("2006-01-02")).Int("count", len(page)).Msg("bills retrieved")
		}

		bills = append(bills, page...)
		pace(i)
	}

	if len(bills) == 0 {
		summary(log, logfile, fmt.Sprintf("no bills between %v and %v", dates[0].Format("2006-01-02"), dates[len(dates)-1].Format("2006-01-02")))
		return nil
	}

	rows := [][]any{}
	categories := [][]any{}
	retentions := [][]any{}
	total := decimal.Zero
	balance := decimal.Zero

	for _, bill := range bills {
		row, cc, rr := flatten.Bill(bill)

		rows = append(rows, row.Values())
		for _, category := range cc {
			categories = append(categories, category.Values())
		}
		for _, retention := range rr {
			retentions = append(retentions, retention.Values())
		}

		total = total.Add(row.Total)
		balance = balance.Add(row.Balance)
	}

	average := total.Div(decimal.NewFromInt(int64(len(bills))))

	stats := [][]any{
		{"Periodo", fmt.Sprintf("%v a %v", dates[0].Format("2006-01-02"), dates[len(dates)-1].Format("2006-01-02"))},
		{"Total Facturas", len(bills)},
		{"Monto Total", number(total)},
		{"Saldo Pendiente", number(balance)},
		{"Promedio por Factura", number(average)},
	}

	content, err := workbook([]sheet{
		{name: "Facturas", headers: flatten.BillRow{}.Headers(), rows: rows},
		{name: "Categorias_Detalle", headers: flatten.BillCategoryRow{}.Headers(), rows: categories},
		{name: "Retenciones_Detalle", headers: flatten.BillRetentionRow{}.Headers(), rows: retentions},
		{name: "Estadisticas", headers: []string{"Metrica", "Valor"}, rows: stats},
	})
	if err != nil {
		return err
	}

	if err := snapshot(ctx, destination, cfg.ExcelFolder, "facturas_compra_historico", dates, content, log); err != nil {
		log.Error().Err(err).Msg("failed to upload snapshot")
	}

	c := counters{}
	for i, batch := range lo.Chunk(bills, historyBatchSize) {
		if i > 0 {
			time.Sleep(historyBatchPause)
		}

		log.Info().Int("batch", i+1).Int("size", len(batch)).Msg("uploading bill batch")

		for _, bill := range batch {
			ok, _, _ := pushBill(ctx, destination, cfg.Lists, bill, log)
			if ok {
				c.ok++
			} else {
				c.failed++
			}
		}
	}

	summary(log, logfile,
		fmt.Sprintf("purchase invoice backfill %v a %v", dates[0].Format("2006-01-02"), dates[len(dates)-1].Format("2006-01-02")),
		fmt.Sprintf("bills retrieved: %v", len(bills)),
		fmt.Sprintf("bills uploaded:  %v", c.ok),
		fmt.Sprintf("bills failed:    %v", c.failed))

	if c.ok == 0 {
		return fmt.Errorf("no bills uploaded (%v failed)", c.failed)
	}

	return nil
}

// snapshot uploads the workbook to the configured drive folder under a
// timestamped name.
func snapshot(ctx context.Context, destination *sharepoint.Client, folder string, prefix string, dates []time.Time, content []byte, log zerolog.Logger) error {
	filename := fmt.Sprintf("%v_%v_a_%v_%v.xlsx",
		prefix,
		dates[0].Format("2006-01-02"),
		dates[len(dates)-1].Format("2006-01-02"),
		time.Now().Format("20060102_150405"))

	uploaded, err := destination.Upload(ctx, folder, filename, content, false)
	if err != nil {
		return err
	}

	log.Info().Str("file", uploaded.Name).Int64("size", uploaded.Size).Str("url", uploaded.WebURL).Msg("snapshot uploaded")

	return nil
}

// dateRange expands an inclusive YYYY-MM-DD range into its days.
func dateRange(from string, to string) ([]time.Time, error) {
	start, err := time.Parse("2006-01-02", from)
	if err != nil {
		return nil, fmt.Errorf("invalid start date %q: %w", from, err)
	}

	end, err := time.Parse("2006-01-02", to)
	if err != nil {
		return nil, fmt.Errorf("invalid end date %q: %w", to, err)
	}

	if end.Before(start) {
		return nil, fmt.Errorf("end date %v precedes start date %v", to, from)
	}

	dates := []time.Time{}
	for d := start; !d.After(end); d = d.AddDate(0, 0, 1) {
		dates = append(dates, d)
	}

	return dates, nil
}

// pace sleeps briefly every ten processed dates to stay under the API rate
// limit.
func pace(i int) {
	if i > 0 && (i+1)%10 == 0 {
		time.Sleep(historyDatePause)
	}
}

// number unwraps a decimal for spreadsheet cells.
func number(d decimal.Decimal) float64 {
	f, _ := d.Float64()
	return f
}
