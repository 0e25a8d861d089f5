package stripegateway

import "errors"

var (
	// ErrGateway возвращается, когда платёжный шлюз отклонил запрос или недоступен
	ErrGateway = errors.New("stripegateway: gateway error")

	// ErrInvalidSignature возвращается, когда подпись вебхука не прошла проверку
	ErrInvalidSignature = errors.New("stripegateway: invalid webhook signature")

	// ErrIgnoredEvent возвращается для событий, которые сервис не обрабатывает
	ErrIgnoredEvent = errors.New("stripegateway: event is not handled")

	// ErrInvalidPayload возвращается, когда в событии нет нужных данных
	ErrInvalidPayload = errors.New("stripegateway: invalid event payload")
)
