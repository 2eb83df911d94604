package ledger

import (
	"errors"
	"testing"

	"github.com/shopspring/decimal"

	"splitledger/internal/models"
)

// dec parses a decimal literal, panicking on malformed test data.
func dec(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

func sumAmounts(obligations []models.Obligation) decimal.Decimal {
	total := decimal.Zero
	for _, o := range obligations {
		total = total.Add(o.Amount)
	}
	return total
}

func TestSplitEqual(t *testing.T) {
	tests := []struct {
		name         string
		total        decimal.Decimal
		payer        models.UserID
		participants []models.UserID
		want         []models.Obligation
		wantErr      bool
	}{
		{
			name:         "payer plus two owes a third each",
			total:        dec("300"),
			payer:        "A",
			participants: []models.UserID{"A", "B", "C"},
			want: []models.Obligation{
				{From: "B", To: "A", Amount: dec("100")},
				{From: "C", To: "A", Amount: dec("100")},
			},
		},
		{
			name:         "per-head amount rounds to cents",
			total:        dec("100"),
			payer:        "A",
			participants: []models.UserID{"A", "B", "C"},
			want: []models.Obligation{
				{From: "B", To: "A", Amount: dec("33.33")},
				{From: "C", To: "A", Amount: dec("33.33")},
			},
		},
		{
			name:         "payer alone produces no obligations",
			total:        dec("40"),
			payer:        "A",
			participants: []models.UserID{"A"},
			want:         []models.Obligation{},
		},
		{
			name:         "no participants rejected",
			total:        dec("40"),
			payer:        "A",
			participants: nil,
			wantErr:      true,
		},
		{
			name:         "empty participant id rejected",
			total:        dec("40"),
			payer:        "A",
			participants: []models.UserID{"A", ""},
			wantErr:      true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Split(tt.total, tt.payer, Equal{Participants: tt.participants})
			if tt.wantErr {
				if !errors.Is(err, ErrInvalidInput) {
					t.Fatalf("Split error = %v, want ErrInvalidInput", err)
				}
				return
			}
			if err != nil {
				t.Fatalf("Split failed: %v", err)
			}
			assertObligations(t, got, tt.want)
		})
	}
}

func TestSplitRejectsMalformedExpense(t *testing.T) {
	strategy := Equal{Participants: []models.UserID{"A", "B"}}

	if _, err := Split(dec("0"), "A", strategy); !errors.Is(err, ErrInvalidInput) {
		t.Errorf("zero total: error = %v, want ErrInvalidInput", err)
	}
	if _, err := Split(dec("-5"), "A", strategy); !errors.Is(err, ErrInvalidInput) {
		t.Errorf("negative total: error = %v, want ErrInvalidInput", err)
	}
	if _, err := Split(dec("10"), "", strategy); !errors.Is(err, ErrInvalidInput) {
		t.Errorf("missing payer: error = %v, want ErrInvalidInput", err)
	}
	if _, err := Split(dec("10"), "A", nil); !errors.Is(err, ErrInvalidInput) {
		t.Errorf("nil strategy: error = %v, want ErrInvalidInput", err)
	}
}

func TestSplitUnequal(t *testing.T) {
	t.Run("emits one obligation per positive non-payer share", func(t *testing.T) {
		got, err := Split(dec("90"), "A", Unequal{Shares: []models.Share{
			{User: "A", Amount: dec("30")},
			{User: "B", Amount: dec("60")},
			{User: "C", Amount: dec("0")},
		}})
		if err != nil {
			t.Fatalf("Split failed: %v", err)
		}
		assertObligations(t, got, []models.Obligation{
			{From: "B", To: "A", Amount: dec("60")},
		})
	})

	t.Run("tolerates a one cent rounding gap", func(t *testing.T) {
		got, err := Split(dec("100"), "A", Unequal{Shares: []models.Share{
			{User: "A", Amount: dec("33.33")},
			{User: "B", Amount: dec("33.33")},
			{User: "C", Amount: dec("33.33")},
		}})
		if err != nil {
			t.Fatalf("Split failed: %v", err)
		}
		if len(got) != 2 {
			t.Fatalf("got %d obligations, want 2", len(got))
		}
	})

	t.Run("mismatched shares fail with the discrepancy", func(t *testing.T) {
		_, err := Split(dec("100"), "A", Unequal{Shares: []models.Share{
			{User: "A", Amount: dec("30")},
			{User: "B", Amount: dec("60")},
		}})
		var mismatch *ShareMismatchError
		if !errors.As(err, &mismatch) {
			t.Fatalf("Split error = %v, want ShareMismatchError", err)
		}
		if !mismatch.Expected.Equal(dec("100")) || !mismatch.Got.Equal(dec("90")) {
			t.Errorf("mismatch = {expected %s, got %s}, want {100, 90}", mismatch.Expected, mismatch.Got)
		}
	})

	t.Run("negative share rejected", func(t *testing.T) {
		_, err := Split(dec("10"), "A", Unequal{Shares: []models.Share{
			{User: "B", Amount: dec("-10")},
			{User: "C", Amount: dec("20")},
		}})
		if !errors.Is(err, ErrInvalidInput) {
			t.Fatalf("Split error = %v, want ErrInvalidInput", err)
		}
	})
}

func TestSplitWeighted(t *testing.T) {
	t.Run("amounts proportional to weights", func(t *testing.T) {
		got, err := Split(dec("100"), "A", Weighted{Shares: []models.Share{
			{User: "A", Weight: dec("1")},
			{User: "B", Weight: dec("1")},
			{User: "C", Weight: dec("2")},
		}})
		if err != nil {
			t.Fatalf("Split failed: %v", err)
		}
		assertObligations(t, got, []models.Obligation{
			{From: "B", To: "A", Amount: dec("25")},
			{From: "C", To: "A", Amount: dec("50")},
		})
	})

	t.Run("all weights zero rejected", func(t *testing.T) {
		_, err := Split(dec("100"), "A", Weighted{Shares: []models.Share{
			{User: "B", Weight: dec("0")},
			{User: "C", Weight: dec("0")},
		}})
		if !errors.Is(err, ErrInvalidInput) {
			t.Fatalf("Split error = %v, want ErrInvalidInput", err)
		}
	})

	t.Run("zero-weight participant emits nothing", func(t *testing.T) {
		got, err := Split(dec("100"), "A", Weighted{Shares: []models.Share{
			{User: "B", Weight: dec("0")},
			{User: "C", Weight: dec("1")},
		}})
		if err != nil {
			t.Fatalf("Split failed: %v", err)
		}
		assertObligations(t, got, []models.Obligation{
			{From: "C", To: "A", Amount: dec("100")},
		})
	})
}

func TestSplitItemized(t *testing.T) {
	t.Run("each item splits among its involved users", func(t *testing.T) {
		got, err := Split(dec("50"), "A", Itemized{Items: []models.LineItem{
			{Label: "Pizza", Amount: dec("30"), PaidBy: "A", Involved: []models.UserID{"A", "B", "C"}},
			{Label: "Drinks", Amount: dec("20"), PaidBy: "B", Involved: []models.UserID{"A", "B"}},
		}})
		if err != nil {
			t.Fatalf("Split failed: %v", err)
		}
		assertObligations(t, got, []models.Obligation{
			{From: "B", To: "A", Amount: dec("10")},
			{From: "C", To: "A", Amount: dec("10")},
			{From: "A", To: "B", Amount: dec("10")},
		})
	})

	t.Run("duplicate pairs across items are not pre-merged", func(t *testing.T) {
		got, err := Split(dec("20"), "A", Itemized{Items: []models.LineItem{
			{Label: "First", Amount: dec("10"), PaidBy: "A", Involved: []models.UserID{"B"}},
			{Label: "Second", Amount: dec("10"), PaidBy: "A", Involved: []models.UserID{"B"}},
		}})
		if err != nil {
			t.Fatalf("Split failed: %v", err)
		}
		if len(got) != 2 {
			t.Fatalf("got %d obligations, want 2 unmerged entries", len(got))
		}
	})

	t.Run("item without involved users rejected", func(t *testing.T) {
		_, err := Split(dec("10"), "A", Itemized{Items: []models.LineItem{
			{Label: "Orphan", Amount: dec("10"), PaidBy: "A"},
		}})
		if !errors.Is(err, ErrInvalidInput) {
			t.Fatalf("Split error = %v, want ErrInvalidInput", err)
		}
	})
}

func TestSplitCustom(t *testing.T) {
	t.Run("valid obligations pass through rounded", func(t *testing.T) {
		got, err := Split(dec("30"), "A", Custom{Obligations: []models.Obligation{
			{From: "B", To: "A", Amount: dec("10.005")},
			{From: "C", To: "A", Amount: dec("20")},
		}})
		if err != nil {
			t.Fatalf("Split failed: %v", err)
		}
		if !got[0].Amount.Equal(dec("10.01")) {
			t.Errorf("first amount = %s, want 10.01 after rounding", got[0].Amount)
		}
	})

	t.Run("self-referential obligation rejected", func(t *testing.T) {
		_, err := Split(dec("10"), "A", Custom{Obligations: []models.Obligation{
			{From: "B", To: "B", Amount: dec("10")},
		}})
		if !errors.Is(err, ErrInvalidInput) {
			t.Fatalf("Split error = %v, want ErrInvalidInput", err)
		}
	})

	t.Run("non-positive amount rejected", func(t *testing.T) {
		_, err := Split(dec("10"), "A", Custom{Obligations: []models.Obligation{
			{From: "B", To: "A", Amount: dec("0")},
		}})
		if !errors.Is(err, ErrInvalidInput) {
			t.Fatalf("Split error = %v, want ErrInvalidInput", err)
		}
	})
}

func TestEqualSplitSumsToNotionalShares(t *testing.T) {
	// N-1 obligations of total/N each: the payer's own share is the gap
	// between the obligation sum and the expense total.
	total := dec("200")
	got, err := Split(total, "A", Equal{Participants: []models.UserID{"A", "B", "C", "D"}})
	if err != nil {
		t.Fatalf("Split failed: %v", err)
	}
	want := dec("150") // 3 shares of 50
	if diff := sumAmounts(got).Sub(want).Abs(); diff.GreaterThan(dec("0.01")) {
		t.Errorf("obligation sum = %s, want %s within 0.01", sumAmounts(got), want)
	}
	for _, o := range got {
		if !o.Amount.Equal(dec("50")) {
			t.Errorf("obligation %s->%s = %s, want 50", o.From, o.To, o.Amount)
		}
	}
}

func assertObligations(t *testing.T, got, want []models.Obligation) {
	t.Helper()
	if len(got) != len(want) {
		t.Fatalf("got %d obligations, want %d: %v", len(got), len(want), got)
	}
	for i := range want {
		if got[i].From != want[i].From || got[i].To != want[i].To {
			t.Errorf("obligation[%d] = %s->%s, want %s->%s", i, got[i].From, got[i].To, want[i].From, want[i].To)
		}
		if !got[i].Amount.Equal(want[i].Amount) {
			t.Errorf("obligation[%d] amount = %s, want %s", i, got[i].Amount, want[i].Amount)
		}
	}
}
