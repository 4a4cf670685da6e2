package distribution

import "costledger/internal/models"

// Ledger accounts used by the static derivation. Debits depend on the
// cost classification, the credit side is always the cost clearing
// account.
const (
	accountCIP          = "1580-CIP"
	accountLabor        = "5100-PROJECT-LABOR"
	accountMaterial     = "5200-PROJECT-MATERIAL"
	accountProjectCost  = "5900-PROJECT-COST"
	accountCostClearing = "2100-COST-CLEARING"
)

// StaticResolver derives code combinations from a fixed mapping over the
// item's capitalization state and expenditure classification. It stands
// in for the chart-of-accounts derivation service.
type StaticResolver struct{}

func (StaticResolver) DeriveAccounts(item models.ExpenditureItem) (string, string, error) {
	if item.CapitalizationStatus == models.CapCIP {
		return accountCIP, accountCostClearing, nil
	}

	switch item.ExpenditureType.Name {
	case "Labor":
		return accountLabor, accountCostClearing, nil
	case "Material":
		return accountMaterial, accountCostClearing, nil
	default:
		return accountProjectCost, accountCostClearing, nil
	}
}
