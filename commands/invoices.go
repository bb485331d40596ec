package commands

import (
	"fmt"

	"github.com/spf13/cobra"
)

func invoicesCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "invoices",
		Short: "Uploads yesterday's sales invoices to SharePoint",
		Long:  "Retrieves the sales invoices issued yesterday, flattens them and uploads them to the invoices list together with their line items.",
		RunE:  runInvoices,
	}
}

func runInvoices(cmd *cobra.Command, args []string) error {
	log, logfile, closer, err := newLogger("facturas_venta")
	if err != nil {
		return err
	}
	defer closer()

	cfg, source, destination, err := setup(cmd, log)
	if err != nil {
		return err
	}

	ctx := cmd.Context()
	date := yesterday()

	log.Info().Str("date", date.Format("2006-01-02")).Msg("retrieving sales invoices")

	invoices, err := source.Invoices(ctx, date)
	if err != nil {
		return fmt.Errorf("failed to retrieve invoices: %w", err)
	}

	if len(invoices) == 0 {
		summary(log, logfile,
			fmt.Sprintf("no sales invoices for %v", date.Format("2006-01-02")))
		return nil
	}

	log.Info().Int("count", len(invoices)).Msg("invoices retrieved")

	c := counters{}
	for _, invoice := range invoices {
		ok, items, failed := pushInvoice(ctx, destination, cfg.Lists, invoice, log)
		if ok {
			c.ok++
		} else {
			c.failed++
		}

		c.childOK += items
		c.childFailed += failed
	}

	summary(log, logfile,
		fmt.Sprintf("sales invoices %v", date.Format("2006-01-02")),
		fmt.Sprintf("invoices uploaded:  %v", c.ok),
		fmt.Sprintf("invoices failed:    %v", c.failed),
		fmt.Sprintf("items uploaded:     %v", c.childOK),
		fmt.Sprintf("items failed:       %v", c.childFailed))

	if c.ok == 0 {
		return fmt.Errorf("no invoices uploaded (%v failed)", c.failed)
	}

	return nil
}
