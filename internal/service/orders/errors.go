package orders

import (
	"errors"
	"fmt"

	"github.com/m04kA/SMC-ReservationService/internal/domain"
)

var (
	// ErrInvalidInput возвращается при некорректных параметрах фильтра
	ErrInvalidInput = fmt.Errorf("orders service: invalid input data: %w", domain.ErrValidation)

	// ErrInternal возвращается при внутренних ошибках сервиса
	ErrInternal = errors.New("orders service: internal error")
)
