package flatten

import (
	"github.com/samber/lo"

	"github.com/andinosoft/alegra-sharepoint-sync/alegra"
	"github.com/andinosoft/alegra-sharepoint-sync/sharepoint"
)

// AccountParentLookup lists the internal name variations under which the
// parent account lookup column of the chart of accounts list may have been
// provisioned.
var AccountParentLookup = []string{
	"ID_x0020_PadreLookupId",
	"ID_x0020_Padre",
	"IDPadreLookupId",
	"ID_PadreLookupId",
}

// AccountRow is a chart of accounts entry flattened for the accounts list.
type AccountRow struct {
	ID                    alegra.ID
	IDParent              alegra.ID
	IDGlobal              alegra.ID
	Code                  string
	Name                  string
	Text                  string
	Description           string
	Type                  string
	Nature                string
	Use                   string
	Status                string
	Blocked               bool
	ShowThirdPartyBalance bool
	CategoryRule          string
}

// Account flattens a chart of accounts entry.
func Account(account alegra.Account) AccountRow {
	return AccountRow{
		ID:                    account.ID,
		IDParent:              account.IDParent,
		IDGlobal:              account.IDGlobal,
		Code:                  account.Code.String(),
		Name:                  account.Name,
		Text:                  account.Text,
		Description:           account.Description,
		Type:                  account.Type,
		Nature:                account.Nature,
		Use:                   account.Use,
		Status:                account.Status,
		Blocked:               account.Blocked,
		ShowThirdPartyBalance: account.ShowThirdPartyBalance,
		CategoryRule:          account.CategoryRule.Name,
	}
}

func (r AccountRow) Fields() sharepoint.Fields {
	fields := sharepoint.Fields{
		"Title":                            r.ID.String(),
		"ID_x0020_Global":                  r.IDGlobal.String(),
		"Codigo":                           r.Code,
		"Nombre":                           r.Name,
		"Texto":                            r.Text,
		"Tipo_x0020_Cuenta_x0020_Contable": r.Type,
		"Estado":                           r.Status,
		"Bloqueado":                        boolField(r.Blocked),
		"Naturaleza":                       r.Nature,
		"Uso":                              r.Use,
		"Mostrar_x0020_Saldo_x0020_por_x0": boolField(r.ShowThirdPartyBalance),
	}

	if r.Description != "" {
		fields["Descripcion"] = r.Description
	}

	if r.CategoryRule != "" {
		fields["Regla_x0020_de_x0020_Categoria"] = r.CategoryRule
	}

	return fields
}

// boolField renders booleans as "True"/"False", matching the capitalization
// already stored in the accounts list.
func boolField(v bool) string {
	if v {
		return "True"
	}

	return "False"
}

func (r AccountRow) Headers() []string {
	return []string{
		"ID", "ID_Padre", "ID_Global", "Codigo", "Nombre", "Texto", "Descripcion",
		"Tipo", "Naturaleza", "Uso", "Estado", "Bloqueado", "Mostrar_Saldo_Terceros", "Regla_Categoria",
	}
}

func (r AccountRow) Values() []any {
	return []any{
		r.ID.String(), r.IDParent.String(), r.IDGlobal.String(), r.Code, r.Name, r.Text, r.Description,
		r.Type, r.Nature, r.Use, r.Status, r.Blocked, r.ShowThirdPartyBalance, r.CategoryRule,
	}
}

// PartitionAccounts splits the chart of accounts into root accounts and
// accounts that reference a parent. Roots have to exist in SharePoint before
// their children so the parent lookup can be resolved.
func PartitionAccounts(accounts []alegra.Account) (roots []alegra.Account, children []alegra.Account) {
	roots = lo.Filter(accounts, func(account alegra.Account, _ int) bool {
		return account.IDParent == ""
	})

	children = lo.Filter(accounts, func(account alegra.Account, _ int) bool {
		return account.IDParent != ""
	})

	return roots, children
}

// AccountStats summarizes the shape of the chart of accounts.
type AccountStats struct {
	Total    int
	Roots    int
	MaxDepth int
	ByType   map[string]int
}

// AnalyzeAccounts walks the chart of accounts and reports per-type counts,
// the number of roots and the deepest parent chain.
func AnalyzeAccounts(accounts []alegra.Account) AccountStats {
	stats := AccountStats{
		Total:  len(accounts),
		ByType: map[string]int{},
	}

	index := map[alegra.ID]alegra.Account{}
	for _, account := range accounts {
		index[account.ID] = account
	}

	for _, account := range accounts {
		kind := account.Type
		if kind == "" {
			kind = "unknown"
		}
		stats.ByType[kind]++

		if account.IDParent == "" {
			stats.Roots++
		}

		depth := 0
		for parent := account.IDParent; parent != ""; {
			depth++

			next, ok := index[parent]
			if !ok {
				break
			}
			parent = next.IDParent
		}

		if depth > stats.MaxDepth {
			stats.MaxDepth = depth
		}
	}

	return stats
}
