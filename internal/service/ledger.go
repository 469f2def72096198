package service

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/jask/loanboard/internal/database/repository"
	"github.com/jask/loanboard/internal/records"
)

// Ledger writes applied store mutations to the database.
type Ledger struct {
	Loans    *repository.LoanRepo
	Payments *repository.PaymentRepo
	Log      *zap.Logger
}

// LoanAdded stores a newly created loan.
func (l *Ledger) LoanAdded(ctx context.Context, loan records.Loan) error {
	if err := l.Loans.Insert(ctx, loan); err != nil {
		return fmt.Errorf("store loan %s: %w", loan.ID, err)
	}
	l.logger().Debug("loan stored", zap.String("loan_id", loan.ID))
	return nil
}

// PaymentProcessed stores the completion stamp of a payment.
func (l *Ledger) PaymentProcessed(ctx context.Context, p records.Payment) error {
	ok, err := l.Payments.UpdateProcessed(ctx, p)
	if err != nil {
		return fmt.Errorf("store payment %s: %w", p.ID, err)
	}
	if !ok {
		return fmt.Errorf("store payment %s: not in database", p.ID)
	}
	l.logger().Debug("payment stored", zap.String("payment_id", p.ID), zap.String("transaction_id", p.TransactionID))
	return nil
}

func (l *Ledger) logger() *zap.Logger {
	if l.Log == nil {
		return zap.NewNop()
	}
	return l.Log
}
