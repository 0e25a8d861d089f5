package stripegateway

import (
	"context"
	"encoding/json"
	"fmt"
	"strconv"
	"strings"

	"github.com/google/uuid"
	"github.com/stripe/stripe-go/v76"
	"github.com/stripe/stripe-go/v76/client"
	"github.com/stripe/stripe-go/v76/webhook"
)

// Client клиент платёжного шлюза Stripe
type Client struct {
	api           *client.API
	webhookSecret string
}

// NewClient создает клиента с ключом API и секретом подписи вебхуков
// backends == nil означает стандартные адреса Stripe
func NewClient(secretKey, webhookSecret string, backends *stripe.Backends) *Client {
	return &Client{
		api:           client.New(secretKey, backends),
		webhookSecret: webhookSecret,
	}
}

// CreateIntent создает намерение оплаты на сумму amount в минорных единицах
func (c *Client) CreateIntent(ctx context.Context, amount int64, currency string, md Metadata) (*Intent, error) {
	params := &stripe.PaymentIntentParams{
		Amount:   stripe.Int64(amount),
		Currency: stripe.String(strings.ToLower(currency)),
		AutomaticPaymentMethods: &stripe.PaymentIntentAutomaticPaymentMethodsParams{
			Enabled: stripe.Bool(true),
		},
	}
	params.Context = ctx
	addMetadata(params, md)

	pi, err := c.api.PaymentIntents.New(params)
	if err != nil {
		return nil, fmt.Errorf("%w: CreateIntent: %v", ErrGateway, err)
	}
	return toIntent(pi), nil
}

// UpdateIntent меняет сумму и метаданные существующего намерения
func (c *Client) UpdateIntent(ctx context.Context, intentID string, amount int64, md Metadata) (*Intent, error) {
	params := &stripe.PaymentIntentParams{
		Amount: stripe.Int64(amount),
	}
	params.Context = ctx
	addMetadata(params, md)

	pi, err := c.api.PaymentIntents.Update(intentID, params)
	if err != nil {
		return nil, fmt.Errorf("%w: UpdateIntent id=%s: %v", ErrGateway, intentID, err)
	}
	return toIntent(pi), nil
}

// ParseEvent проверяет подпись вебхука и извлекает событие успешной оплаты
// Для остальных типов событий возвращает ErrIgnoredEvent
func (c *Client) ParseEvent(payload []byte, signature string) (*PaymentEvent, error) {
	event, err := webhook.ConstructEventWithOptions(payload, signature, c.webhookSecret,
		webhook.ConstructEventOptions{IgnoreAPIVersionMismatch: true})
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidSignature, err)
	}

	if event.Type != eventPaymentSucceeded {
		return nil, fmt.Errorf("%w: %s", ErrIgnoredEvent, event.Type)
	}

	var pi stripe.PaymentIntent
	if err := json.Unmarshal(event.Data.Raw, &pi); err != nil {
		return nil, fmt.Errorf("%w: decode payment intent: %v", ErrInvalidPayload, err)
	}

	orderID, err := uuid.Parse(pi.Metadata[metadataOrderID])
	if err != nil {
		return nil, fmt.Errorf("%w: metadata orderId: %v", ErrInvalidPayload, err)
	}

	var tip int64
	if raw, ok := pi.Metadata[metadataTip]; ok && raw != "" {
		if tip, err = strconv.ParseInt(raw, 10, 64); err != nil {
			return nil, fmt.Errorf("%w: metadata tip: %v", ErrInvalidPayload, err)
		}
	}

	return &PaymentEvent{
		IntentID:       pi.ID,
		AmountReceived: pi.AmountReceived,
		OrderID:        orderID,
		Tip:            tip,
	}, nil
}

func addMetadata(params *stripe.PaymentIntentParams, md Metadata) {
	params.AddMetadata(metadataOrderID, md.OrderID.String())
	params.AddMetadata(metadataTip, strconv.FormatInt(md.Tip, 10))
}

func toIntent(pi *stripe.PaymentIntent) *Intent {
	return &Intent{
		ID:           pi.ID,
		ClientSecret: pi.ClientSecret,
		Amount:       pi.Amount,
	}
}
