package commands

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/andinosoft/alegra-sharepoint-sync/alegra"
	"github.com/andinosoft/alegra-sharepoint-sync/config"
	"github.com/andinosoft/alegra-sharepoint-sync/flatten"
	"github.com/andinosoft/alegra-sharepoint-sync/sharepoint"
)

// settleWait is how long deletions are given to propagate before the list is
// re-read.
var settleWait = 2 * time.Second

var syncFlags = struct {
	dryRun   bool
	interval time.Duration
}{}

func syncCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "sync",
		Short: "Repairs payment records that were uploaded without a client",
		Long:  "Scans the payments list for records missing client data, re-fetches each payment from Alegra and, when the client has since been assigned, deletes and recreates the payment records and every affected invoice.",
		RunE:  runSync,
	}

	cmd.Flags().BoolVar(&syncFlags.dryRun, "dry-run", false, "reports what would change without modifying SharePoint")
	cmd.Flags().DurationVar(&syncFlags.interval, "interval", 0, "re-runs the job on a fixed period (e.g. 30m)")

	return cmd
}

func runSync(cmd *cobra.Command, args []string) error {
	for {
		err := reconcileOnce(cmd)

		if syncFlags.interval <= 0 {
			return err
		}

		if err != nil {
			fmt.Printf("reconciliation failed: %v\n", err)
		}

		fmt.Printf("waiting %v until next run\n", syncFlags.interval)

		select {
		case <-cmd.Context().Done():
			return cmd.Context().Err()

		case <-time.After(syncFlags.interval):
		}
	}
}

// reconcileOnce runs a single reconciliation pass with its own log file,
// released when the pass finishes.
func reconcileOnce(cmd *cobra.Command) error {
	log, logfile, closer, err := newLogger("sincronizador")
	if err != nil {
		return err
	}
	defer closer()

	cfg, source, destination, err := setup(cmd, log)
	if err != nil {
		return err
	}

	r := reconciler{
		cfg:         cfg,
		source:      source,
		destination: destination,
		log:         log,
		dryRun:      syncFlags.dryRun,
	}

	err = r.run(cmd.Context())

	summary(log, logfile,
		"payment reconciliation",
		fmt.Sprintf("records reviewed:   %v", r.stats.reviewed),
		fmt.Sprintf("payments recreated: %v", r.stats.recreated),
		fmt.Sprintf("payments unchanged: %v", r.stats.unchanged),
		fmt.Sprintf("invoices recreated: %v", r.stats.invoices),
		fmt.Sprintf("records deleted:    %v", r.stats.deleted),
		fmt.Sprintf("items deleted:      %v", r.stats.items),
		fmt.Sprintf("errors:             %v", r.stats.errors))

	return err
}

type reconciler struct {
	cfg         *config.Config
	source      *alegra.Client
	destination *sharepoint.Client
	log         zerolog.Logger
	dryRun      bool

	stats struct {
		reviewed  int
		recreated int
		unchanged int
		invoices  int
		deleted   int
		items     int
		errors    int
	}
}

func (r *reconciler) run(ctx context.Context) error {
	r.log.Info().Bool("dry-run", r.dryRun).Msg("scanning payments list")

	records, err := r.destination.Items(ctx, r.cfg.Lists.Payments)
	if err != nil {
		return fmt.Errorf("failed to read payments list: %w", err)
	}

	incomplete := map[string][]sharepoint.ListItem{}
	for _, record := range records {
		if strings.TrimSpace(field(record, "ID_x0020_Cliente")) == "" || strings.TrimSpace(field(record, "Nombre_x0020_Cliente")) == "" {
			id := field(record, "Title")
			if id == "" {
				continue
			}

			incomplete[id] = append(incomplete[id], record)
		}
	}

	r.log.Info().Int("records", len(records)).Int("incomplete", len(incomplete)).Msg("payments list scanned")

	for id, rows := range incomplete {
		r.stats.reviewed++

		if err := r.reconcile(ctx, id, rows); err != nil {
			r.log.Error().Err(err).Str("payment", id).Msg("failed to reconcile payment")
			r.stats.errors++
		}
	}

	return nil
}

// reconcile re-fetches one payment and rebuilds its records when Alegra now
// reports a client.
func (r *reconciler) reconcile(ctx context.Context, id string, rows []sharepoint.ListItem) error {
	payment, err := r.source.Payment(ctx, alegra.ID(id))
	if err != nil {
		if errors.Is(err, alegra.ErrNotFound) {
			r.log.Warn().Str("payment", id).Msg("payment no longer exists in Alegra")
			r.stats.unchanged++
			return nil
		}

		return err
	}

	if payment.Client.ID == "" && payment.Client.Name == "" {
		r.log.Debug().Str("payment", id).Msg("payment still has no client")
		r.stats.unchanged++
		return nil
	}

	r.log.Info().Str("payment", id).Str("client", payment.Client.Name).Msg("payment has been assigned a client")

	// Affected invoices are the ones the stale records referenced plus the
	// ones the fresh payment is applied to.
	affected := map[string]bool{}
	for _, row := range rows {
		if invoice := field(row, "ID_x0020_Factura"); invoice != "" {
			affected[invoice] = true
		}
	}
	for _, invoice := range payment.Invoices {
		if invoice.ID != "" {
			affected[string(invoice.ID)] = true
		}
	}

	if r.dryRun {
		r.log.Info().Str("payment", id).Int("invoices", len(affected)).Msg("dry run: would recreate payment records")
		r.stats.recreated++
		return nil
	}

	if err := r.deleteAll(ctx, r.cfg.Lists.Payments, id); err != nil {
		return err
	}

	created := 0
	for _, record := range flatten.Payment(*payment) {
		if _, err := r.destination.CreateItem(ctx, r.cfg.Lists.Payments, record.Fields()); err != nil {
			r.log.Error().Err(err).Str("payment", id).Msg("failed to recreate payment record")
			r.stats.errors++
		} else {
			created++
		}
	}

	r.log.Info().Str("payment", id).Int("records", created).Msg("payment records recreated")
	r.stats.recreated++

	for invoice := range affected {
		if err := r.recreateInvoice(ctx, invoice); err != nil {
			r.log.Error().Err(err).Str("invoice", invoice).Msg("failed to recreate invoice")
			r.stats.errors++
		}
	}

	return nil
}

// recreateInvoice replaces every list row of one invoice, item rows included,
// with fresh Alegra data.
func (r *reconciler) recreateInvoice(ctx context.Context, id string) error {
	invoice, err := r.source.Invoice(ctx, alegra.ID(id))
	if err != nil {
		if errors.Is(err, alegra.ErrNotFound) {
			r.log.Warn().Str("invoice", id).Msg("invoice no longer exists in Alegra")
			return nil
		}

		return err
	}

	// Item rows carry the invoice number, not the id.
	number := invoice.NumberTemplate.FullNumber

	items, err := r.destination.Items(ctx, r.cfg.Lists.InvoiceItems)
	if err != nil {
		return fmt.Errorf("failed to read invoice items list: %w", err)
	}

	for _, item := range items {
		if field(item, "Title") != number {
			continue
		}

		if err := r.destination.DeleteItem(ctx, r.cfg.Lists.InvoiceItems, item.ID); err != nil {
			r.log.Error().Err(err).Str("invoice", id).Str("item", item.ID).Msg("failed to delete invoice item")
		} else {
			r.stats.items++
		}
	}

	if err := r.deleteAll(ctx, r.cfg.Lists.Invoices, id); err != nil {
		return err
	}

	if ok, _, _ := pushInvoice(ctx, r.destination, r.cfg.Lists, *invoice, r.log); !ok {
		return fmt.Errorf("failed to recreate invoice %v", id)
	}

	r.stats.invoices++

	return nil
}

// deleteAll removes every row of a list whose Title matches, waits for the
// deletions to settle and retries any leftovers once.
func (r *reconciler) deleteAll(ctx context.Context, list string, title string) error {
	deleted, err := r.deletePass(ctx, list, title)
	if err != nil {
		return err
	}

	if deleted == 0 {
		return nil
	}

	r.stats.deleted += deleted
	time.Sleep(settleWait)

	leftover, err := r.deletePass(ctx, list, title)
	if err != nil {
		return err
	}

	if leftover > 0 {
		r.log.Warn().Str("list", list).Str("title", title).Int("leftover", leftover).Msg("deleted leftover rows on retry")
		r.stats.deleted += leftover
	}

	return nil
}

func (r *reconciler) deletePass(ctx context.Context, list string, title string) (int, error) {
	rows, err := r.destination.Items(ctx, list)
	if err != nil {
		return 0, fmt.Errorf("failed to read list: %w", err)
	}

	deleted := 0
	for _, row := range rows {
		if field(row, "Title") != title {
			continue
		}

		if err := r.destination.DeleteItem(ctx, list, row.ID); err != nil {
			r.log.Error().Err(err).Str("list", list).Str("item", row.ID).Msg("failed to delete row")
			continue
		}

		deleted++
	}

	return deleted, nil
}

// field reads a list item column as a string. Graph returns numeric columns
// as float64.
func field(item sharepoint.ListItem, name string) string {
	switch v := item.Fields[name].(type) {
	case string:
		return v

	case float64:
		return fmt.Sprintf("%v", v)

	default:
		return ""
	}
}
