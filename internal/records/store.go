package records

import (
	"fmt"
	"slices"
	"strconv"
	"strings"
	"sync"
	"time"
)

const (
	DefaultIDPrefix      = "LN-2024"
	DefaultPaymentMethod = "Bank Transfer"

	paymentInterval = 30 * 24 * time.Hour
)

// Store holds the loan and payment collections. Every mutation builds a new
// slice, so snapshots handed out by Loans and Payments never change.
type Store struct {
	mu       sync.RWMutex
	loans    []Loan
	payments []Payment
	seq      int
	prefix   string
	method   string
	now      func() time.Time
}

// Option configures a Store.
type Option func(*Store)

// WithClock overrides the time source used for date stamping.
func WithClock(now func() time.Time) Option {
	return func(s *Store) { s.now = now }
}

// WithIDPrefix sets the prefix of generated loan IDs.
func WithIDPrefix(prefix string) Option {
	return func(s *Store) {
		if strings.TrimSpace(prefix) != "" {
			s.prefix = strings.TrimSpace(prefix)
		}
	}
}

// WithPaymentMethod sets the method recorded on processed payments.
func WithPaymentMethod(method string) Option {
	return func(s *Store) {
		if strings.TrimSpace(method) != "" {
			s.method = strings.TrimSpace(method)
		}
	}
}

// NewStore creates a store seeded with copies of the given records.
func NewStore(seed Seed, opts ...Option) *Store {
	s := &Store{
		loans:    slices.Clone(seed.Loans),
		payments: clonePayments(seed.Payments),
		prefix:   DefaultIDPrefix,
		method:   DefaultPaymentMethod,
		now:      time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}
	s.seq = s.highestSequence()
	return s
}

// highestSequence returns the counter start: the larger of the collection
// length and the highest numeric suffix among IDs carrying our prefix.
func (s *Store) highestSequence() int {
	seq := len(s.loans)
	head := s.prefix + "-"
	for _, l := range s.loans {
		if !strings.HasPrefix(l.ID, head) {
			continue
		}
		n, err := strconv.Atoi(strings.TrimPrefix(l.ID, head))
		if err == nil && n > seq {
			seq = n
		}
	}
	return seq
}

// Loans returns a copy of the current loans. Writes to it never reach the
// store.
func (s *Store) Loans() []Loan {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return slices.Clone(s.loans)
}

// Payments returns a copy of the current payments. Writes to it never reach
// the store.
func (s *Store) Payments() []Payment {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return clonePayments(s.payments)
}

// Loan looks up a loan by ID.
func (s *Store) Loan(id string) (Loan, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, l := range s.loans {
		if l.ID == id {
			return l, true
		}
	}
	return Loan{}, false
}

// clonePayments copies payments along with their completion dates.
func clonePayments(in []Payment) []Payment {
	if in == nil {
		return nil
	}
	out := make([]Payment, len(in))
	for i, p := range in {
		if p.Date != nil {
			d := *p.Date
			p.Date = &d
		}
		out[i] = p
	}
	return out
}

// AddLoan creates an Active loan from raw form input and appends it.
// Malformed numbers are stored as their parse sentinels; nothing is rejected.
func (s *Store) AddLoan(in LoanInput, lenderID int) Loan {
	s.mu.Lock()
	defer s.mu.Unlock()

	now := s.now()
	s.seq++
	amount := ParseAmount(in.Amount)
	loan := Loan{
		ID:               fmt.Sprintf("%s-%03d", s.prefix, s.seq),
		BorrowerID:       ParseWhole(in.BorrowerID),
		LenderID:         lenderID,
		Amount:           amount,
		InterestRate:     ParseAmount(in.InterestRate),
		TermMonths:       ParseWhole(in.Term),
		Status:           LoanActive,
		Purpose:          in.Purpose,
		StartDate:        DateOf(now),
		MonthlyPayment:   in.MonthlyPayment,
		RemainingBalance: amount,
		NextPaymentDate:  DateOf(now.Add(paymentInterval)),
	}

	next := make([]Loan, len(s.loans), len(s.loans)+1)
	copy(next, s.loans)
	s.loans = append(next, loan)
	return loan
}

// ProcessPayment marks the payment with the given ID as Completed, stamping
// the date, method and a time-derived transaction ID. An unknown ID leaves
// the collection untouched and reports false. Processing an already
// completed payment stamps it again.
func (s *Store) ProcessPayment(id string) (Payment, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	idx := -1
	for i := range s.payments {
		if s.payments[i].ID == id {
			idx = i
			break
		}
	}
	if idx < 0 {
		return Payment{}, false
	}

	now := s.now()
	date := DateOf(now)
	txn := fmt.Sprintf("TXN-%d", now.UnixMilli())

	next := make([]Payment, len(s.payments))
	copy(next, s.payments)
	for i := idx; i < len(next); i++ {
		if next[i].ID != id {
			continue
		}
		d := date
		next[i].Status = PaymentCompleted
		next[i].Date = &d
		next[i].Method = s.method
		next[i].TransactionID = txn
	}
	s.payments = next
	out := next[idx]
	d := *out.Date
	out.Date = &d
	return out, true
}

// DateOf truncates t to its UTC calendar date.
func DateOf(t time.Time) time.Time {
	u := t.UTC()
	return time.Date(u.Year(), u.Month(), u.Day(), 0, 0, 0, 0, time.UTC)
}
