package records

import "time"

// LoanStatus is the lifecycle state of a loan.
type LoanStatus string

const (
	LoanActive    LoanStatus = "Active"
	LoanPending   LoanStatus = "Pending"
	LoanPaidOff   LoanStatus = "Paid Off"
	LoanDefaulted LoanStatus = "Defaulted"
)

// Valid reports whether s is a known loan status.
func (s LoanStatus) Valid() bool {
	switch s {
	case LoanActive, LoanPending, LoanPaidOff, LoanDefaulted:
		return true
	}
	return false
}

// PaymentStatus is the lifecycle state of a payment. It only ever moves
// from Pending to Completed.
type PaymentStatus string

const (
	PaymentPending   PaymentStatus = "Pending"
	PaymentCompleted PaymentStatus = "Completed"
)

// Valid reports whether s is a known payment status.
func (s PaymentStatus) Valid() bool {
	return s == PaymentPending || s == PaymentCompleted
}

// Loan represents money lent from a lender to a borrower.
type Loan struct {
	ID               string
	BorrowerID       int
	LenderID         int
	Amount           float64
	InterestRate     float64
	TermMonths       int
	Status           LoanStatus
	Purpose          string
	StartDate        time.Time
	MonthlyPayment   float64
	RemainingBalance float64
	NextPaymentDate  time.Time
}

// Payment represents one installment against a loan.
type Payment struct {
	ID            string
	LoanID        string
	Amount        float64
	DueDate       time.Time
	Status        PaymentStatus
	Date          *time.Time // completion date, nil while pending
	Method        string
	TransactionID string
}

// LoanInput carries the raw fields of the new-loan form.
type LoanInput struct {
	BorrowerID     string
	Amount         string
	InterestRate   string
	Term           string
	Purpose        string
	MonthlyPayment float64
}

// Seed is the initial dataset a Store starts from.
type Seed struct {
	Loans    []Loan
	Payments []Payment
}
