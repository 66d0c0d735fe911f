package ledger

import (
	"testing"

	"paisa-server/src/models"
)

func TestComputeStats(t *testing.T) {
	transactions := []models.Transaction{
		{Type: "income", Amount: 1000},
		{Type: "income", Amount: 250.5},
		{Type: "expense", Amount: 300},
		{Type: "expense", Amount: 100.5},
	}

	stats := ComputeStats(transactions)
	if stats.TotalIncome != 1250.5 {
		t.Fatalf("totalIncome = %v, want 1250.5", stats.TotalIncome)
	}
	if stats.TotalExpense != 400.5 {
		t.Fatalf("totalExpense = %v, want 400.5", stats.TotalExpense)
	}
	if stats.Balance != 850 {
		t.Fatalf("balance = %v, want 850", stats.Balance)
	}
	if stats.TransactionCount != 4 {
		t.Fatalf("transactionCount = %d, want 4", stats.TransactionCount)
	}
	if stats.Balance != stats.TotalIncome-stats.TotalExpense {
		t.Fatal("balance must equal income minus expense")
	}
}

func TestComputeStatsEmpty(t *testing.T) {
	stats := ComputeStats(nil)
	if stats.TotalIncome != 0 || stats.TotalExpense != 0 || stats.Balance != 0 || stats.TransactionCount != 0 {
		t.Fatalf("empty set should produce zero stats, got %+v", stats)
	}
}

func TestComputeStatsSplitsIrrelevant(t *testing.T) {
	// Stats come purely off transaction amounts; how a transaction is split
	// across sources never changes the totals.
	stats := ComputeStats([]models.Transaction{{Type: "expense", Amount: 100}})
	if stats.TotalExpense != 100 || stats.TransactionCount != 1 {
		t.Fatalf("unexpected stats: %+v", stats)
	}
}
