package core

// CategoryTotal is an amount aggregated by category label.
type CategoryTotal struct {
	Category string
	Total    Money
}

// BudgetStatus compares a user's budget against what they have spent.
type BudgetStatus struct {
	Budget    Money
	Spent     Money
	Remaining Money
	Exceeded  bool
}

// NewBudgetStatus derives the remaining amount and the exceeded flag from a
// budget and a spent total. Exceeded is strict: spending exactly the budget
// does not trip the warning.
func NewBudgetStatus(budget, spent Money) BudgetStatus {
	return BudgetStatus{
		Budget:    budget,
		Spent:     spent,
		Remaining: budget.Sub(spent),
		Exceeded:  spent.Cents > budget.Cents,
	}
}
