package repository

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/jask/loanboard/internal/records"
)

// LoanRepo handles loans.
type LoanRepo struct {
	db DBTX
}

func NewLoanRepo(db DBTX) *LoanRepo { return &LoanRepo{db: db} }

func (r *LoanRepo) Insert(ctx context.Context, l records.Loan) error {
	_, err := r.db.ExecContext(ctx, `
	INSERT INTO loans(
	 id, borrower_id, lender_id, amount, interest_rate, term_months, status, purpose,
	 start_date, monthly_payment, remaining_balance, next_payment_date, created_at)
	VALUES(?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, CURRENT_TIMESTAMP);
	`,
		l.ID, l.BorrowerID, l.LenderID, nullableFloat(l.Amount), nullableFloat(l.InterestRate),
		l.TermMonths, string(l.Status), l.Purpose, nullableDate(l.StartDate),
		nullableFloat(l.MonthlyPayment), nullableFloat(l.RemainingBalance), nullableDate(l.NextPaymentDate))
	return err
}

// List returns loans in insertion order.
func (r *LoanRepo) List(ctx context.Context) ([]records.Loan, error) {
	rows, err := r.db.QueryContext(ctx, `
	SELECT id, borrower_id, lender_id, amount, interest_rate, term_months, status, purpose,
	 start_date, monthly_payment, remaining_balance, next_payment_date
	FROM loans ORDER BY rowid`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var out []records.Loan
	for rows.Next() {
		l, err := scanLoan(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, l)
	}
	return out, rows.Err()
}

func (r *LoanRepo) Count(ctx context.Context) (int, error) {
	var n int
	err := r.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM loans`).Scan(&n)
	return n, err
}

func scanLoan(row scanner) (records.Loan, error) {
	var l records.Loan
	var status string
	var amount, rate, monthly, remaining sql.NullFloat64
	var start, next sql.NullString
	if err := row.Scan(&l.ID, &l.BorrowerID, &l.LenderID, &amount, &rate, &l.TermMonths, &status,
		&l.Purpose, &start, &monthly, &remaining, &next); err != nil {
		return records.Loan{}, err
	}
	l.Status = records.LoanStatus(status)
	l.Amount = floatOrNaN(amount)
	l.InterestRate = floatOrNaN(rate)
	l.MonthlyPayment = floatOrNaN(monthly)
	l.RemainingBalance = floatOrNaN(remaining)
	var err error
	if l.StartDate, err = parseNullDate(start); err != nil {
		return records.Loan{}, fmt.Errorf("loan %s start_date: %w", l.ID, err)
	}
	if l.NextPaymentDate, err = parseNullDate(next); err != nil {
		return records.Loan{}, fmt.Errorf("loan %s next_payment_date: %w", l.ID, err)
	}
	return l, nil
}
