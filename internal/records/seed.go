package records

import (
	"bytes"
	_ "embed"
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"gopkg.in/yaml.v3"
)

//go:embed seed.yaml
var defaultSeed []byte

type seedFile struct {
	Loans    []seedLoan    `yaml:"loans"`
	Payments []seedPayment `yaml:"payments"`
}

type seedLoan struct {
	ID               string  `yaml:"id"`
	BorrowerID       int     `yaml:"borrower_id"`
	LenderID         int     `yaml:"lender_id"`
	Amount           float64 `yaml:"amount"`
	InterestRate     float64 `yaml:"interest_rate"`
	TermMonths       int     `yaml:"term_months"`
	Status           string  `yaml:"status"`
	Purpose          string  `yaml:"purpose"`
	StartDate        string  `yaml:"start_date"`
	MonthlyPayment   float64 `yaml:"monthly_payment"`
	RemainingBalance float64 `yaml:"remaining_balance"`
	NextPaymentDate  string  `yaml:"next_payment_date"`
}

type seedPayment struct {
	ID            string  `yaml:"id"`
	LoanID        string  `yaml:"loan_id"`
	Amount        float64 `yaml:"amount"`
	DueDate       string  `yaml:"due_date"`
	Status        string  `yaml:"status"`
	Date          string  `yaml:"date"`
	Method        string  `yaml:"method"`
	TransactionID string  `yaml:"transaction_id"`
}

// DefaultSeed returns the dataset bundled with the binary.
func DefaultSeed() (Seed, error) {
	return LoadSeed(bytes.NewReader(defaultSeed))
}

// LoadSeedFile reads a YAML seed dataset from path.
func LoadSeedFile(path string) (Seed, error) {
	f, err := os.Open(path)
	if err != nil {
		return Seed{}, fmt.Errorf("open seed: %w", err)
	}
	defer f.Close()
	return LoadSeed(f)
}

// LoadSeed decodes a YAML seed dataset.
func LoadSeed(r io.Reader) (Seed, error) {
	var sf seedFile
	if err := yaml.NewDecoder(r).Decode(&sf); err != nil && err != io.EOF {
		return Seed{}, fmt.Errorf("decode seed: %w", err)
	}

	seed := Seed{
		Loans:    make([]Loan, 0, len(sf.Loans)),
		Payments: make([]Payment, 0, len(sf.Payments)),
	}
	for i, l := range sf.Loans {
		start, err := parseDate(l.StartDate)
		if err != nil {
			return Seed{}, fmt.Errorf("loan %d start_date: %w", i, err)
		}
		next, err := parseDate(l.NextPaymentDate)
		if err != nil {
			return Seed{}, fmt.Errorf("loan %d next_payment_date: %w", i, err)
		}
		status := LoanStatus(strings.TrimSpace(l.Status))
		if status == "" {
			status = LoanActive
		}
		if !status.Valid() {
			return Seed{}, fmt.Errorf("loan %d status: unknown %q", i, l.Status)
		}
		seed.Loans = append(seed.Loans, Loan{
			ID:               l.ID,
			BorrowerID:       l.BorrowerID,
			LenderID:         l.LenderID,
			Amount:           l.Amount,
			InterestRate:     l.InterestRate,
			TermMonths:       l.TermMonths,
			Status:           status,
			Purpose:          l.Purpose,
			StartDate:        start,
			MonthlyPayment:   l.MonthlyPayment,
			RemainingBalance: l.RemainingBalance,
			NextPaymentDate:  next,
		})
	}
	for i, p := range sf.Payments {
		due, err := parseDate(p.DueDate)
		if err != nil {
			return Seed{}, fmt.Errorf("payment %d due_date: %w", i, err)
		}
		status := PaymentStatus(strings.TrimSpace(p.Status))
		if status == "" {
			status = PaymentPending
		}
		if !status.Valid() {
			return Seed{}, fmt.Errorf("payment %d status: unknown %q", i, p.Status)
		}
		pay := Payment{
			ID:            p.ID,
			LoanID:        p.LoanID,
			Amount:        p.Amount,
			DueDate:       due,
			Status:        status,
			Method:        p.Method,
			TransactionID: p.TransactionID,
		}
		if strings.TrimSpace(p.Date) != "" {
			d, err := parseDate(p.Date)
			if err != nil {
				return Seed{}, fmt.Errorf("payment %d date: %w", i, err)
			}
			pay.Date = &d
		}
		seed.Payments = append(seed.Payments, pay)
	}
	return seed, nil
}

// parseDate accepts YYYY-MM-DD; empty input is the zero time.
func parseDate(s string) (time.Time, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return time.Time{}, nil
	}
	return time.Parse(time.DateOnly, s)
}
