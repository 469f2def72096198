package repository

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/jask/loanboard/internal/records"
)

// PaymentRepo handles payments.
type PaymentRepo struct {
	db DBTX
}

func NewPaymentRepo(db DBTX) *PaymentRepo { return &PaymentRepo{db: db} }

func (r *PaymentRepo) Insert(ctx context.Context, p records.Payment) error {
	var paid interface{}
	if p.Date != nil {
		paid = nullableDate(*p.Date)
	}
	_, err := r.db.ExecContext(ctx, `
	INSERT INTO payments(id, loan_id, amount, due_date, status, paid_date, method, transaction_id, updated_at)
	VALUES(?, ?, ?, ?, ?, ?, ?, ?, CURRENT_TIMESTAMP);
	`, p.ID, p.LoanID, nullableFloat(p.Amount), nullableDate(p.DueDate), string(p.Status), paid, p.Method, p.TransactionID)
	return err
}

// UpdateProcessed stores the completion stamp of a processed payment.
// It reports false when no row has that id.
func (r *PaymentRepo) UpdateProcessed(ctx context.Context, p records.Payment) (bool, error) {
	var paid interface{}
	if p.Date != nil {
		paid = nullableDate(*p.Date)
	}
	res, err := r.db.ExecContext(ctx, `
	UPDATE payments SET status = ?, paid_date = ?, method = ?, transaction_id = ?, updated_at = CURRENT_TIMESTAMP
	WHERE id = ?`, string(p.Status), paid, p.Method, p.TransactionID, p.ID)
	if err != nil {
		return false, err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return false, err
	}
	return n > 0, nil
}

// List returns payments in insertion order.
func (r *PaymentRepo) List(ctx context.Context) ([]records.Payment, error) {
	rows, err := r.db.QueryContext(ctx, `
	SELECT id, loan_id, amount, due_date, status, paid_date, method, transaction_id
	FROM payments ORDER BY rowid`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var out []records.Payment
	for rows.Next() {
		p, err := scanPayment(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, p)
	}
	return out, rows.Err()
}

func (r *PaymentRepo) Get(ctx context.Context, id string) (*records.Payment, error) {
	row := r.db.QueryRowContext(ctx, `
	SELECT id, loan_id, amount, due_date, status, paid_date, method, transaction_id
	FROM payments WHERE id = ?`, id)
	p, err := scanPayment(row)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		return nil, err
	}
	return &p, nil
}

func scanPayment(row scanner) (records.Payment, error) {
	var p records.Payment
	var status string
	var amount sql.NullFloat64
	var due, paid sql.NullString
	if err := row.Scan(&p.ID, &p.LoanID, &amount, &due, &status, &paid, &p.Method, &p.TransactionID); err != nil {
		return records.Payment{}, err
	}
	p.Status = records.PaymentStatus(status)
	p.Amount = floatOrNaN(amount)
	var err error
	if p.DueDate, err = parseNullDate(due); err != nil {
		return records.Payment{}, fmt.Errorf("payment %s due_date: %w", p.ID, err)
	}
	if paid.Valid {
		d, err := parseNullDate(paid)
		if err != nil {
			return records.Payment{}, fmt.Errorf("payment %s paid_date: %w", p.ID, err)
		}
		p.Date = &d
	}
	return p, nil
}
