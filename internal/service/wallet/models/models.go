package models

import (
	"time"

	"github.com/google/uuid"

	"github.com/m04kA/SMC-ReservationService/internal/domain"
)

// TransactionResponse строка истории кошелька
type TransactionResponse struct {
	Type      string     `json:"type"`
	Status    string     `json:"status"`
	Title     string     `json:"title"`
	Amount    int64      `json:"amount"`
	OrderID   *uuid.UUID `json:"orderId,omitempty"`
	CreatedAt time.Time  `json:"createdAt"`
}

// WalletResponse кошелёк бизнеса
type WalletResponse struct {
	BusinessID      uuid.UUID             `json:"businessId"`
	Currency        string                `json:"currency"`
	Earnings        int64                 `json:"earnings"`
	Withdrawn       int64                 `json:"withdrawn"`
	Balance         int64                 `json:"balance"`
	HoldBalance     int64                 `json:"holdBalance"`
	Available       int64                 `json:"available"`
	CompletedOrders int                   `json:"completedOrders"`
	Transactions    []TransactionResponse `json:"transactions"`
}

// WithdrawalResponse выплата
type WithdrawalResponse struct {
	ID          uuid.UUID  `json:"id"`
	BusinessID  uuid.UUID  `json:"businessId"`
	Amount      int64      `json:"amount"`
	Status      string     `json:"status"`
	CreatedAt   time.Time  `json:"createdAt"`
	CompletedAt *time.Time `json:"completedAt,omitempty"`
}

// FromDomainWallet конвертирует кошелёк
func FromDomainWallet(b *domain.Business, w domain.Wallet, completedOrders int) *WalletResponse {
	resp := &WalletResponse{
		BusinessID:      b.ID,
		Currency:        b.Currency,
		Earnings:        w.Earnings,
		Withdrawn:       w.Withdrawn,
		Balance:         w.Balance,
		HoldBalance:     w.HoldBalance,
		Available:       w.Available,
		CompletedOrders: completedOrders,
		Transactions:    make([]TransactionResponse, 0, len(w.Transactions)),
	}
	for _, tx := range w.Transactions {
		resp.Transactions = append(resp.Transactions, TransactionResponse{
			Type:      string(tx.Type),
			Status:    tx.Status,
			Title:     tx.Title,
			Amount:    tx.Amount,
			OrderID:   tx.OrderID,
			CreatedAt: tx.CreatedAt,
		})
	}
	return resp
}

// FromDomainWithdrawal конвертирует выплату
func FromDomainWithdrawal(w *domain.Withdrawal) *WithdrawalResponse {
	return &WithdrawalResponse{
		ID:          w.ID,
		BusinessID:  w.BusinessID,
		Amount:      w.Amount,
		Status:      string(w.Status),
		CreatedAt:   w.CreatedAt,
		CompletedAt: w.CompletedAt,
	}
}
