package core

import (
	"errors"
	"testing"
	"time"
)

func TestParseDate(t *testing.T) {
	cases := []struct {
		in string
		ok bool
	}{
		{"2024-01-05", true},
		{"2024-12-31", true},
		{"2024-02-30", false},
		{"05/01/2024", false},
		{"tomorrow", false},
		{"", false},
	}
	for i, tc := range cases {
		d, err := ParseDate(tc.in)
		if tc.ok && err != nil {
			t.Fatalf("case %d expected ok, got %v", i, err)
		}
		if !tc.ok {
			if err == nil {
				t.Fatalf("case %d expected error", i)
			}
			if !errors.Is(err, ErrInvalidDate) {
				t.Fatalf("case %d expected ErrInvalidDate, got %v", i, err)
			}
			continue
		}
		if d.String() != tc.in {
			t.Fatalf("case %d round trip mismatch: %s != %s", i, d.String(), tc.in)
		}
	}
}

func TestDateEqual(t *testing.T) {
	a := NewDate(2024, 1, 5)
	b := Date{Time: time.Date(2024, 1, 5, 23, 59, 0, 0, time.Local)}
	if !a.Equal(b) {
		t.Fatalf("same calendar day should compare equal regardless of clock")
	}
	if a.Equal(NewDate(2024, 1, 6)) {
		t.Fatalf("different days should not compare equal")
	}
}

func TestToday(t *testing.T) {
	now := time.Date(2024, 6, 15, 13, 37, 0, 0, time.Local)
	if got := Today(now).String(); got != "2024-06-15" {
		t.Fatalf("Today() = %s, want 2024-06-15", got)
	}
}

func TestExpenseValidate(t *testing.T) {
	good := Expense{
		Date:     NewDate(2024, 1, 5),
		Category: "Food",
		Amount:   Money{Cents: 25000},
	}
	if err := good.Validate(); err != nil {
		t.Fatalf("expected ok, got %v", err)
	}

	// Free-form categories and unsigned amounts are accepted on purpose.
	loose := Expense{Date: NewDate(2024, 1, 5), Category: "", Amount: Money{Cents: -100}}
	if err := loose.Validate(); err != nil {
		t.Fatalf("empty category and negative amount must validate, got %v", err)
	}

	if err := (Expense{Category: "Food"}).Validate(); err == nil {
		t.Fatalf("expected error for zero date")
	}
}

func TestAlertValidate(t *testing.T) {
	if err := (Alert{DueDate: NewDate(2024, 3, 1), Amount: Money{Cents: 50000}}).Validate(); err != nil {
		t.Fatalf("expected ok, got %v", err)
	}
	if err := (Alert{}).Validate(); err == nil {
		t.Fatalf("expected error for zero due date")
	}
}
