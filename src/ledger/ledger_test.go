package ledger

import (
	"errors"
	"testing"

	"paisa-server/src/models"
)

func TestCheckSplitSum(t *testing.T) {
	cases := []struct {
		name    string
		splits  []models.SplitInput
		amount  float64
		wantErr string
	}{
		{
			name:   "no splits is exempt",
			splits: nil,
			amount: 100,
		},
		{
			name:   "empty split list is exempt",
			splits: []models.SplitInput{},
			amount: 100,
		},
		{
			name: "exact match",
			splits: []models.SplitInput{
				{SourceID: "a", Amount: 60},
				{SourceID: "b", Amount: 40},
			},
			amount: 100,
		},
		{
			name: "mismatch rejected with both values in message",
			splits: []models.SplitInput{
				{SourceID: "a", Amount: 60},
				{SourceID: "b", Amount: 30},
			},
			amount:  100,
			wantErr: "Source splits total (90) must equal transaction amount (100)",
		},
		{
			name:   "within tolerance passes",
			splits: []models.SplitInput{{SourceID: "a", Amount: 99.995}},
			amount: 100,
		},
		{
			name:    "just beyond tolerance fails",
			splits:  []models.SplitInput{{SourceID: "a", Amount: 99.98}},
			amount:  100,
			wantErr: "Source splits total (99.98) must equal transaction amount (100)",
		},
		{
			name: "filtered-out entries still count toward the sum",
			splits: []models.SplitInput{
				{SourceID: "a", Amount: 60},
				{SourceID: "", Amount: 40},
			},
			amount: 100,
		},
		{
			name: "single split over amount",
			splits: []models.SplitInput{
				{SourceID: "a", Amount: 150},
			},
			amount:  100,
			wantErr: "Source splits total (150) must equal transaction amount (100)",
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			err := CheckSplitSum(tc.splits, tc.amount)
			if tc.wantErr == "" {
				if err != nil {
					t.Fatalf("expected success, got %v", err)
				}
				return
			}
			if err == nil {
				t.Fatal("expected error")
			}
			var vErr *models.ValidationError
			if !errors.As(err, &vErr) {
				t.Fatalf("expected ValidationError, got %T", err)
			}
			if err.Error() != tc.wantErr {
				t.Fatalf("wrong message:\n got %q\nwant %q", err.Error(), tc.wantErr)
			}
		})
	}
}

func TestCheckExistingSplitSum(t *testing.T) {
	splits := []models.SourceSplit{
		{ID: "s1", TransactionID: "t1", SourceID: "a", Amount: 50},
	}

	if err := CheckExistingSplitSum(splits, 50); err != nil {
		t.Fatalf("matching amount should pass: %v", err)
	}
	// 50.005 is within the 0.01 tolerance of the existing 50 split.
	if err := CheckExistingSplitSum(splits, 50.005); err != nil {
		t.Fatalf("amount within tolerance should pass: %v", err)
	}

	err := CheckExistingSplitSum(splits, 55)
	if err == nil {
		t.Fatal("amount change without new splits must be rejected")
	}
	want := "Cannot update amount without updating source splits to match. Existing splits total: 50"
	if err.Error() != want {
		t.Fatalf("wrong message:\n got %q\nwant %q", err.Error(), want)
	}

	// A transaction with no splits can change amount freely.
	if err := CheckExistingSplitSum(nil, 55); err != nil {
		t.Fatalf("no splits should be exempt: %v", err)
	}
}

func TestPersistableSplits(t *testing.T) {
	in := []models.SplitInput{
		{SourceID: "a", Amount: 60},
		{SourceID: "", Amount: 20},
		{SourceID: "b", Amount: 0},
		{SourceID: "c", Amount: -5},
		{SourceID: "d", Amount: 40},
	}
	out := PersistableSplits(in)
	if len(out) != 2 {
		t.Fatalf("expected 2 persistable splits, got %d", len(out))
	}
	if out[0].SourceID != "a" || out[1].SourceID != "d" {
		t.Fatalf("wrong splits kept: %+v", out)
	}
}

func TestValidTransactionType(t *testing.T) {
	for _, valid := range []string{"income", "expense"} {
		if !ValidTransactionType(valid) {
			t.Fatalf("%q should be valid", valid)
		}
	}
	for _, invalid := range []string{"both", "transfer", "", "Income"} {
		if ValidTransactionType(invalid) {
			t.Fatalf("%q should be invalid", invalid)
		}
	}
}

func TestSplitsTotal(t *testing.T) {
	total := SplitsTotal([]models.SplitInput{
		{SourceID: "a", Amount: 60},
		{SourceID: "b", Amount: 40.5},
	})
	if total != 100.5 {
		t.Fatalf("expected 100.5, got %v", total)
	}
	if SplitsTotal(nil) != 0 {
		t.Fatal("empty total should be 0")
	}
}
