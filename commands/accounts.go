package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/andinosoft/alegra-sharepoint-sync/alegra"
	"github.com/andinosoft/alegra-sharepoint-sync/flatten"
)

func accountsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "accounts",
		Short: "Uploads the chart of accounts to SharePoint",
		Long:  "Retrieves the complete chart of accounts and uploads it to the accounts list, roots first so the parent account lookup resolves for every child.",
		RunE:  runAccounts,
	}
}

func runAccounts(cmd *cobra.Command, args []string) error {
	log, logfile, closer, err := newLogger("cuentas_contables")
	if err != nil {
		return err
	}
	defer closer()

	cfg, source, destination, err := setup(cmd, log)
	if err != nil {
		return err
	}

	ctx := cmd.Context()

	log.Info().Msg("retrieving chart of accounts")

	accounts, err := source.Accounts(ctx)
	if err != nil {
		return fmt.Errorf("failed to retrieve chart of accounts: %w", err)
	}

	if len(accounts) == 0 {
		summary(log, logfile, "chart of accounts is empty")
		return nil
	}

	stats := flatten.AnalyzeAccounts(accounts)
	log.Info().
		Int("total", stats.Total).
		Int("roots", stats.Roots).
		Int("max-depth", stats.MaxDepth).
		Msg("chart of accounts retrieved")

	for kind, count := range stats.ByType {
		log.Info().Str("type", kind).Int("count", count).Msg("account type")
	}

	roots, children := flatten.PartitionAccounts(accounts)

	// First pass uploads root accounts and records the SharePoint id assigned
	// to each so the second pass can populate the parent lookup.
	uploaded := map[alegra.ID]string{}

	ok := 0
	failed := 0
	skipped := 0

	for _, account := range roots {
		row := flatten.Account(account)

		id, err := destination.CreateItem(ctx, cfg.Lists.Accounts, row.Fields())
		if err != nil {
			log.Error().Err(err).Str("account", row.Code).Msg("failed to upload root account")
			failed++
			continue
		}

		uploaded[account.ID] = id
		ok++
	}

	log.Info().Int("uploaded", ok).Int("failed", failed).Msg("root accounts uploaded")

	for _, account := range children {
		row := flatten.Account(account)

		parent, found := uploaded[account.IDParent]
		if !found {
			log.Warn().Str("account", row.Code).Str("parent", account.IDParent.String()).Msg("parent account not uploaded, skipping")
			skipped++
			continue
		}

		id, err := destination.CreateItemWithLookup(ctx, cfg.Lists.Accounts, flatten.AccountParentLookup, parent, row.Fields())
		if err != nil {
			log.Error().Err(err).Str("account", row.Code).Msg("failed to upload account")
			failed++
			continue
		}

		uploaded[account.ID] = id
		ok++
	}

	summary(log, logfile,
		"chart of accounts",
		fmt.Sprintf("accounts uploaded: %v", ok),
		fmt.Sprintf("accounts skipped:  %v", skipped),
		fmt.Sprintf("accounts failed:   %v", failed))

	if ok == 0 {
		return fmt.Errorf("no accounts uploaded (%v failed, %v skipped)", failed, skipped)
	}

	return nil
}
