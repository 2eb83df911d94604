package ledger

import (
	"testing"

	"splitledger/internal/models"
)

func TestMerge(t *testing.T) {
	tests := []struct {
		name  string
		input []models.Obligation
		want  []models.Obligation
	}{
		{
			name: "duplicate pairs summed in first-occurrence order",
			input: []models.Obligation{
				{From: "B", To: "A", Amount: dec("10")},
				{From: "C", To: "A", Amount: dec("5")},
				{From: "B", To: "A", Amount: dec("2.50")},
			},
			want: []models.Obligation{
				{From: "B", To: "A", Amount: dec("12.50")},
				{From: "C", To: "A", Amount: dec("5")},
			},
		},
		{
			name: "opposite directions stay separate",
			input: []models.Obligation{
				{From: "B", To: "A", Amount: dec("10")},
				{From: "A", To: "B", Amount: dec("4")},
			},
			want: []models.Obligation{
				{From: "B", To: "A", Amount: dec("10")},
				{From: "A", To: "B", Amount: dec("4")},
			},
		},
		{
			name:  "empty input",
			input: nil,
			want:  []models.Obligation{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assertObligations(t, Merge(tt.input), tt.want)
		})
	}
}

func TestMergeIdempotent(t *testing.T) {
	input := []models.Obligation{
		{From: "B", To: "A", Amount: dec("10")},
		{From: "B", To: "A", Amount: dec("10")},
		{From: "C", To: "B", Amount: dec("7.25")},
	}
	once := Merge(input)
	twice := Merge(once)
	assertObligations(t, twice, once)
}
