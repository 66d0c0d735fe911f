// Package ledger holds the balance rules between a transaction's amount and
// its source splits. Persistence lives in src/db/sql; everything here is pure
// so the rules can be tested without a database.
package ledger

import (
	"fmt"
	"strconv"

	"paisa-server/src/models"
)

// SplitTolerance is the allowed discrepancy between a transaction's amount
// and the sum of its split amounts, absorbing float64 rounding.
const SplitTolerance = 0.01

var validTransactionTypes = map[string]bool{
	"income":  true,
	"expense": true,
}

func ValidTransactionType(t string) bool {
	return validTransactionTypes[t]
}

// SplitsTotal sums the raw supplied split amounts. Entries that would later
// be dropped by PersistableSplits still count here.
func SplitsTotal(splits []models.SplitInput) float64 {
	var total float64
	for _, s := range splits {
		total += s.Amount
	}
	return total
}

// CheckSplitSum validates a supplied split list against the transaction
// amount. An empty list is exempt: it represents an un-allocated transaction.
func CheckSplitSum(splits []models.SplitInput, amount float64) error {
	if len(splits) == 0 {
		return nil
	}
	total := SplitsTotal(splits)
	if !withinTolerance(total, amount) {
		return models.NewValidationError(fmt.Sprintf(
			"Source splits total (%s) must equal transaction amount (%s)",
			formatAmount(total), formatAmount(amount)))
	}
	return nil
}

// CheckExistingSplitSum guards an amount change that arrives without a new
// split list. If the transaction has splits, their current sum must already
// match the new amount, otherwise the whole update is rejected.
func CheckExistingSplitSum(splits []models.SourceSplit, newAmount float64) error {
	if len(splits) == 0 {
		return nil
	}
	var total float64
	for _, s := range splits {
		total += s.Amount
	}
	if !withinTolerance(total, newAmount) {
		return models.NewValidationError(
			"Cannot update amount without updating source splits to match. Existing splits total: " +
				formatAmount(total))
	}
	return nil
}

// PersistableSplits drops entries with a non-positive amount or a missing
// sourceId. Such entries still count toward the sum check; they are just
// never written.
func PersistableSplits(splits []models.SplitInput) []models.SplitInput {
	var kept []models.SplitInput
	for _, s := range splits {
		if s.SourceID != "" && s.Amount > 0 {
			kept = append(kept, s)
		}
	}
	return kept
}

func withinTolerance(a, b float64) bool {
	diff := a - b
	if diff < 0 {
		diff = -diff
	}
	return diff <= SplitTolerance
}

// formatAmount renders a float the way it was supplied, without trailing
// zeros, so error messages read "90" rather than "90.000000".
func formatAmount(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}
