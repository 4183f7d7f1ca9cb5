package core

import "testing"

func TestNewBudgetStatus(t *testing.T) {
	cases := []struct {
		budget, spent int64
		remaining     int64
		exceeded      bool
	}{
		{100000, 35000, 65000, false},
		{30000, 35000, -5000, true},
		{30000, 30000, 0, false}, // exactly on budget is not exceeded
		{100000, 0, 100000, false},
	}
	for i, tc := range cases {
		st := NewBudgetStatus(Money{Cents: tc.budget}, Money{Cents: tc.spent})
		if st.Remaining.Cents != tc.remaining {
			t.Fatalf("case %d remaining = %d, want %d", i, st.Remaining.Cents, tc.remaining)
		}
		if st.Exceeded != tc.exceeded {
			t.Fatalf("case %d exceeded = %v, want %v", i, st.Exceeded, tc.exceeded)
		}
	}
}
