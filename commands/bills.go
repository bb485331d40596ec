package commands

import (
	"fmt"

	"github.com/spf13/cobra"
)

func billsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "bills",
		Short: "Uploads yesterday's purchase invoices to SharePoint",
		Long:  "Retrieves the purchase invoices registered yesterday and uploads them to the bills list with their expense categories and tax retentions.",
		RunE:  runBills,
	}
}

func runBills(cmd *cobra.Command, args []string) error {
	log, logfile, closer, err := newLogger("facturas_compra")
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

	log.Info().Str("date", date.Format("2006-01-02")).Msg("retrieving purchase invoices")

	bills, err := source.Bills(ctx, date)
	if err != nil {
		return fmt.Errorf("failed to retrieve bills: %w", err)
	}

	if len(bills) == 0 {
		summary(log, logfile,
			fmt.Sprintf("no purchase invoices for %v", date.Format("2006-01-02")))
		return nil
	}

	log.Info().Int("count", len(bills)).Msg("bills retrieved")

	c := counters{}
	categories := counters{}
	retentions := counters{}

	for _, bill := range bills {
		ok, cc, rr := pushBill(ctx, destination, cfg.Lists, bill, log)
		if ok {
			c.ok++
		} else {
			c.failed++
		}

		categories.childOK += cc.ok
		categories.childFailed += cc.failed
		retentions.childOK += rr.ok
		retentions.childFailed += rr.failed
	}

	summary(log, logfile,
		fmt.Sprintf("purchase invoices %v", date.Format("2006-01-02")),
		fmt.Sprintf("bills uploaded:      %v", c.ok),
		fmt.Sprintf("bills failed:        %v", c.failed),
		fmt.Sprintf("categories uploaded: %v", categories.childOK),
		fmt.Sprintf("categories failed:   %v", categories.childFailed),
		fmt.Sprintf("retentions uploaded: %v", retentions.childOK),
		fmt.Sprintf("retentions failed:   %v", retentions.childFailed))

	if c.ok == 0 {
		return fmt.Errorf("no bills uploaded (%v failed)", c.failed)
	}

	return nil
}
