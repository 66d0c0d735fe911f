package ledger

import "paisa-server/src/models"

// ComputeStats aggregates income/expense totals over an already-filtered set
// of transactions. Splits play no part: stats are computed purely off
// transaction amounts and types.
func ComputeStats(transactions []models.Transaction) models.TransactionStats {
	var stats models.TransactionStats
	for _, tx := range transactions {
		switch tx.Type {
		case "income":
			stats.TotalIncome += tx.Amount
		case "expense":
			stats.TotalExpense += tx.Amount
		}
	}
	stats.Balance = stats.TotalIncome - stats.TotalExpense
	stats.TransactionCount = len(transactions)
	return stats
}
