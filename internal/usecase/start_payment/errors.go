package start_payment

import (
	"errors"
	"fmt"

	"github.com/m04kA/SMC-ReservationService/internal/domain"
)

var (
	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = fmt.Errorf("start_payment: invalid input data: %w", domain.ErrValidation)

	// ErrGateway возвращается, когда платёжный шлюз не смог выпустить намерение оплаты
	ErrGateway = fmt.Errorf("start_payment: payment gateway failed: %w", domain.ErrExternalService)

	// ErrInternal возвращается при внутренних ошибках usecase
	ErrInternal = errors.New("start_payment: internal error")
)
