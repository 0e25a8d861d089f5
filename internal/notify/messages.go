package notify

import (
	"fmt"
	"strings"

	"github.com/google/uuid"

	"github.com/m04kA/SMC-ReservationService/internal/domain"
)

// OrderReceived уведомление владельцу о новой заявке
func OrderReceived(o *domain.Order, c *domain.Customer) Payload {
	return Payload{
		Title:      "New Request",
		Body:       fmt.Sprintf("%s is requesting a reservation for %s", c.FullName(), o.Title),
		BusinessID: o.BusinessID.String(),
		OrderID:    o.ID.String(),
		Status:     string(o.Status),
	}
}

// OrderStatusChanged уведомление клиенту о смене статуса заказа
func OrderStatusChanged(b *domain.Business, o *domain.Order) Payload {
	name := fmt.Sprintf("%q", b.Name)

	var body string
	switch o.Status {
	case domain.OrderStatusPending:
		body = fmt.Sprintf("You requested a reservation with %s. You will receive an email when your reservation is approved", name)
	case domain.OrderStatusApproved:
		body = fmt.Sprintf("Your reservation with %s has been approved", name)
	case domain.OrderStatusDeclined:
		body = fmt.Sprintf("Your reservation with %s was declined. Please feel free to make another reservation.", name)
	default:
		body = fmt.Sprintf("Your reservation with %s is %s", name, o.Status)
	}

	return Payload{
		Title:      fmt.Sprintf("%s - Reservation With %s #%s", strings.ToUpper(string(o.Status)), b.Name, shortID(o.ID)),
		Body:       body,
		BusinessID: b.ID.String(),
		OrderID:    o.ID.String(),
		Status:     string(o.Status),
	}
}

// PaymentRequested уведомление клиенту о запросе оплаты
func PaymentRequested(b *domain.Business, o *domain.Order) Payload {
	amount := domain.FormatAmount(o.Price)
	return Payload{
		Title:      fmt.Sprintf("Payment request from %s #%s", b.Name, shortID(o.ID)),
		Body:       fmt.Sprintf("%s requested $%s for %s", b.Name, amount, o.Title),
		BusinessID: b.ID.String(),
		OrderID:    o.ID.String(),
		Amount:     amount,
	}
}

// PaymentReceived уведомление владельцу о поступившей оплате
func PaymentReceived(o *domain.Order, c *domain.Customer) Payload {
	amount := domain.FormatAmount(o.Payment.Total)
	return Payload{
		Title:      "Payment Received",
		Body:       fmt.Sprintf("Payment received from %s ($%s)", c.FullName(), amount),
		BusinessID: o.BusinessID.String(),
		OrderID:    o.ID.String(),
		Amount:     amount,
	}
}

// WithdrawalRequested уведомление оператору о запросе выплаты
func WithdrawalRequested(b *domain.Business, w *domain.Withdrawal) Payload {
	amount := domain.FormatAmount(w.Amount)
	return Payload{
		Title:      fmt.Sprintf("New withdrawal request # %s", shortID(w.ID)),
		Body:       fmt.Sprintf("%s is requesting a withdrawal of $%s", b.Name, amount),
		BusinessID: b.ID.String(),
		Amount:     amount,
	}
}

func shortID(id uuid.UUID) string {
	return strings.ToUpper(id.String()[:5])
}
