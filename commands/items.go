package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/andinosoft/alegra-sharepoint-sync/flatten"
)

func itemsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "items",
		Short: "Uploads the product catalogue to SharePoint",
		Long:  "Retrieves the complete product and service catalogue, page by page, and uploads it to the products list.",
		RunE:  runItems,
	}
}

func runItems(cmd *cobra.Command, args []string) error {
	log, logfile, closer, err := newLogger("items")
	if err != nil {
		return err
	}
	defer closer()

	cfg, source, destination, err := setup(cmd, log)
	if err != nil {
		return err
	}

	ctx := cmd.Context()

	log.Info().Msg("retrieving product catalogue")

	items, err := source.Items(ctx)
	if err != nil {
		return fmt.Errorf("failed to retrieve catalogue: %w", err)
	}

	if len(items) == 0 {
		summary(log, logfile, "product catalogue is empty")
		return nil
	}

	log.Info().Int("count", len(items)).Msg("catalogue retrieved")

	ok := 0
	failed := 0

	for _, item := range items {
		row := flatten.Item(item)

		if _, err := destination.CreateItem(ctx, cfg.Lists.Products, row.Fields()); err != nil {
			log.Error().Err(err).Str("item", row.Name).Msg("failed to upload item")
			failed++
		} else {
			ok++
		}
	}

	summary(log, logfile,
		"product catalogue",
		fmt.Sprintf("items uploaded: %v", ok),
		fmt.Sprintf("items failed:   %v", failed))

	if ok == 0 {
		return fmt.Errorf("no items uploaded (%v failed)", failed)
	}

	return nil
}
