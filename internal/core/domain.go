package core

import (
	"errors"
	"time"
)

type (
	// Date is a calendar day without a time-of-day component.
	Date struct {
		time.Time
	}

	// Money is a monetary amount in integer cents.
	Money struct {
		Cents int64
	}

	User struct {
		ID           int64
		Username     string
		PasswordHash string
		Budget       Money
	}

	Expense struct {
		ID          int64
		UserID      int64
		Date        Date
		Category    string
		Amount      Money
		Description string
	}

	Alert struct {
		ID          int64
		UserID      int64
		DueDate     Date
		Amount      Money
		Description string
		Notified    bool
	}
)

var (
	ErrDuplicateUsername  = errors.New("username already taken")
	ErrInvalidCredentials = errors.New("invalid username or password")
	ErrEmptyCredentials   = errors.New("username and password are required")
	ErrInvalidAmount      = errors.New("invalid amount")
	ErrInvalidDate        = errors.New("invalid date")
	ErrUnauthenticated    = errors.New("no authenticated session")
	ErrUserNotFound       = errors.New("user not found")
	ErrAlertNotFound      = errors.New("alert not found")
)

// DateLayout is the wire and storage format for calendar dates.
const DateLayout = "2006-01-02"

// NewDate creates a Date from year, month, day.
func NewDate(year, month, day int) Date {
	return Date{Time: time.Date(year, time.Month(month), day, 0, 0, 0, 0, time.UTC)}
}

// ParseDate parses an ISO-8601 calendar date (YYYY-MM-DD).
func ParseDate(s string) (Date, error) {
	t, err := time.Parse(DateLayout, s)
	if err != nil {
		return Date{}, ErrInvalidDate
	}
	return Date{Time: t}, nil
}

// Today truncates now to its calendar day.
func Today(now time.Time) Date {
	return NewDate(now.Year(), int(now.Month()), now.Day())
}

func (d Date) Validate() error {
	if d.IsZero() {
		return ErrInvalidDate
	}
	return nil
}

// String renders the date in storage format.
func (d Date) String() string {
	return d.Format(DateLayout)
}

// Equal reports whether two dates fall on the same calendar day.
func (d Date) Equal(other Date) bool {
	return d.String() == other.String()
}

// Validate checks the fields an expense must carry before it is persisted.
// Category and description are deliberately free-form: any string, including
// an empty one, is a valid label. Amounts carry no sign constraint.
func (e Expense) Validate() error {
	if err := e.Date.Validate(); err != nil {
		return err
	}
	return nil
}

func (a Alert) Validate() error {
	if err := a.DueDate.Validate(); err != nil {
		return err
	}
	return nil
}
