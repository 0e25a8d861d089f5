package geocoding

import "errors"

var (
	// ErrLocationNotFound возвращается, когда по координатам не найден адрес со страной
	ErrLocationNotFound = errors.New("geocoding: location not found")

	// ErrTimeZoneNotFound возвращается, когда по координатам не определён часовой пояс
	ErrTimeZoneNotFound = errors.New("geocoding: time zone not found")

	// ErrInternal возвращается при внутренних ошибках клиента
	ErrInternal = errors.New("geocoding client: internal error")

	// ErrInvalidResponse возвращается при некорректном ответе от сервиса
	ErrInvalidResponse = errors.New("geocoding client: invalid response")
)
