package complete_payment

import (
	"errors"
	"fmt"

	"github.com/m04kA/SMC-ReservationService/internal/domain"
)

var (
	// ErrInvalidInput возвращается при некорректных данных события
	ErrInvalidInput = fmt.Errorf("complete_payment: invalid input data: %w", domain.ErrValidation)

	// ErrDuplicateDelivery возвращается при повторной доставке уже проведённого платежа
	// Оборачивает ErrUnknownOrder: для домена такой заказ уже не ожидает оплаты
	ErrDuplicateDelivery = fmt.Errorf("complete_payment: payment already completed: %w", domain.ErrUnknownOrder)

	// ErrInternal возвращается при внутренних ошибках usecase
	ErrInternal = errors.New("complete_payment: internal error")
)
