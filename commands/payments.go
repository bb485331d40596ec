package commands

import (
	"fmt"

	"github.com/spf13/cobra"
)

func paymentsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "payments",
		Short: "Uploads yesterday's received payments to SharePoint",
		Long:  "Retrieves the payments received yesterday and uploads them to the payments list as unified records, one per associated invoice or income category.",
		RunE:  runPayments,
	}
}

func runPayments(cmd *cobra.Command, args []string) error {
	log, logfile, closer, err := newLogger("pagos_ingresos")
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

	log.Info().Str("date", date.Format("2006-01-02")).Msg("retrieving payments")

	payments, err := source.Payments(ctx, date)
	if err != nil {
		return fmt.Errorf("failed to retrieve payments: %w", err)
	}

	if len(payments) == 0 {
		summary(log, logfile,
			fmt.Sprintf("no payments for %v", date.Format("2006-01-02")))
		return nil
	}

	log.Info().Int("count", len(payments)).Msg("payments retrieved")

	records := 0
	failed := 0
	for _, payment := range payments {
		ok, ko := pushPayment(ctx, destination, cfg.Lists, payment, log)
		records += ok
		failed += ko
	}

	summary(log, logfile,
		fmt.Sprintf("payments %v", date.Format("2006-01-02")),
		fmt.Sprintf("payments processed: %v", len(payments)),
		fmt.Sprintf("records uploaded:   %v", records),
		fmt.Sprintf("records failed:     %v", failed))

	if records == 0 {
		return fmt.Errorf("no payment records uploaded (%v failed)", failed)
	}

	return nil
}
