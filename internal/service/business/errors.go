package business

import (
	"errors"
	"fmt"

	"github.com/m04kA/SMC-ReservationService/internal/domain"
)

var (
	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = fmt.Errorf("business service: invalid input data: %w", domain.ErrValidation)

	// ErrLocationNotFound возвращается, когда по координатам не удалось определить адрес
	ErrLocationNotFound = fmt.Errorf("business service: location not found: %w", domain.ErrValidation)

	// ErrGeocoding возвращается при недоступности сервиса геокодирования
	ErrGeocoding = fmt.Errorf("business service: geocoding failed: %w", domain.ErrExternalService)

	// ErrInternal возвращается при внутренних ошибках сервиса
	ErrInternal = errors.New("business service: internal error")
)
