package domain

import (
	"sort"
	"time"

	"github.com/google/uuid"
)

// CompletedPayment ledger view of a reconciled order payment
type CompletedPayment struct {
	OrderID     uuid.UUID
	Title       string
	Total       int64
	CompletedAt time.Time
}

// TransactionType deposit or withdrawal
type TransactionType string

const (
	TransactionDeposit    TransactionType = "deposit"
	TransactionWithdrawal TransactionType = "withdrawal"
)

// Transaction a wallet history line
type Transaction struct {
	Type      TransactionType
	Status    string
	Title     string
	Amount    int64
	OrderID   *uuid.UUID
	CreatedAt time.Time
}

// Wallet is derived from completed payments and withdrawals. It is never stored.
type Wallet struct {
	Earnings     int64
	Withdrawn    int64
	Balance      int64
	HoldBalance  int64
	Available    int64
	Transactions []Transaction
}

// ComputeWallet sums the ledger. Payments completed within hold of now are
// part of the balance but not yet available; failed withdrawals are ignored.
func ComputeWallet(payments []CompletedPayment, withdrawals []Withdrawal, now time.Time, hold time.Duration) Wallet {
	var w Wallet
	holdFrom := now.Add(-hold)

	txs := make([]Transaction, 0, len(payments)+len(withdrawals))

	for _, p := range payments {
		w.Earnings += p.Total
		if p.CompletedAt.After(holdFrom) {
			w.HoldBalance += p.Total
		}
		orderID := p.OrderID
		txs = append(txs, Transaction{
			Type:      TransactionDeposit,
			Status:    string(WithdrawalStatusSucceeded),
			Title:     p.Title,
			Amount:    p.Total,
			OrderID:   &orderID,
			CreatedAt: p.CompletedAt,
		})
	}

	for _, wd := range withdrawals {
		if wd.Status != WithdrawalStatusFailed {
			w.Withdrawn += wd.Amount
		}
		txs = append(txs, Transaction{
			Type:      TransactionWithdrawal,
			Status:    string(wd.Status),
			Title:     "Withdrawal",
			Amount:    wd.Amount,
			CreatedAt: wd.CreatedAt,
		})
	}

	sort.SliceStable(txs, func(i, j int) bool { return txs[i].CreatedAt.After(txs[j].CreatedAt) })

	w.Balance = w.Earnings - w.Withdrawn
	w.Available = w.Balance - w.HoldBalance
	w.Transactions = txs
	return w
}
