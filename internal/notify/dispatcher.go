package notify

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/google/uuid"
)

// Channel способ доставки уведомлений (websocket, брокер, лог)
type Channel interface {
	Name() string
	Accepts(e Event) bool
	Deliver(ctx context.Context, e Event) error
}

// Recorder метрики доставки
type Recorder interface {
	NotificationDelivered(channel string)
	NotificationDropped(reason string)
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}

// Config параметры очереди уведомлений
type Config struct {
	Workers      int
	QueueSize    int
	Timeout      time.Duration
	OperatorRoom string
}

const (
	dropQueueFull = "queue_full"
	dropClosed    = "closed"
	dropTimeout   = "timeout"
	dropError     = "error"
)

// Dispatcher ограниченная очередь уведомлений с пулом воркеров
// Публикация не блокирует вызывающего: при переполнении событие отбрасывается
type Dispatcher struct {
	channels     []Channel
	queue        chan Event
	timeout      time.Duration
	operatorRoom string
	recorder     Recorder
	log          Logger
	now          func() time.Time

	mu     sync.RWMutex
	closed bool
	wg     sync.WaitGroup
}

// NewDispatcher создает диспетчер и запускает воркеры
func NewDispatcher(cfg Config, recorder Recorder, log Logger, channels ...Channel) *Dispatcher {
	if cfg.Workers <= 0 {
		cfg.Workers = 1
	}
	if cfg.QueueSize <= 0 {
		cfg.QueueSize = 1
	}
	if cfg.Timeout <= 0 {
		cfg.Timeout = 5 * time.Second
	}

	d := &Dispatcher{
		channels:     channels,
		queue:        make(chan Event, cfg.QueueSize),
		timeout:      cfg.Timeout,
		operatorRoom: cfg.OperatorRoom,
		recorder:     recorder,
		log:          log,
		now:          time.Now,
	}

	d.wg.Add(cfg.Workers)
	for i := 0; i < cfg.Workers; i++ {
		go d.worker()
	}
	return d
}

// NotifyBusinessOwner уведомление владельцу бизнеса
func (d *Dispatcher) NotifyBusinessOwner(accountID uuid.UUID, kind Kind, payload Payload) {
	d.Publish(Event{Audience: AudienceOwner, Recipient: accountID.String(), Kind: kind, Payload: payload})
}

// NotifyCustomer уведомление клиенту по email
func (d *Dispatcher) NotifyCustomer(email string, kind Kind, payload Payload) {
	d.Publish(Event{Audience: AudienceCustomer, Recipient: email, Kind: kind, Payload: payload})
}

// NotifyOperator уведомление в канал операторов
func (d *Dispatcher) NotifyOperator(kind Kind, payload Payload) {
	d.Publish(Event{Audience: AudienceOperator, Recipient: d.operatorRoom, Kind: kind, Payload: payload})
}

// Publish ставит событие в очередь
func (d *Dispatcher) Publish(e Event) {
	if e.CreatedAt.IsZero() {
		e.CreatedAt = d.now().UTC()
	}

	d.mu.RLock()
	defer d.mu.RUnlock()

	if d.closed {
		d.drop(e, dropClosed)
		return
	}

	select {
	case d.queue <- e:
	default:
		d.drop(e, dropQueueFull)
	}
}

// Close перестаёт принимать события и ждёт, пока воркеры разберут очередь
// Если ctx истекает раньше, оставшиеся события теряются
func (d *Dispatcher) Close(ctx context.Context) error {
	d.mu.Lock()
	if !d.closed {
		d.closed = true
		close(d.queue)
	}
	d.mu.Unlock()

	done := make(chan struct{})
	go func() {
		d.wg.Wait()
		close(done)
	}()

	select {
	case <-done:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

func (d *Dispatcher) worker() {
	defer d.wg.Done()
	for e := range d.queue {
		d.deliver(e)
	}
}

func (d *Dispatcher) deliver(e Event) {
	for _, ch := range d.channels {
		if !ch.Accepts(e) {
			continue
		}

		ctx, cancel := context.WithTimeout(context.Background(), d.timeout)
		err := ch.Deliver(ctx, e)
		cancel()

		if err != nil {
			reason := dropError
			if errors.Is(err, context.DeadlineExceeded) {
				reason = dropTimeout
			}
			d.log.Warn("Notify: channel=%s kind=%s recipient=%s failed: %v", ch.Name(), e.Kind, e.Recipient, err)
			d.recorder.NotificationDropped(reason)
			continue
		}
		d.recorder.NotificationDelivered(ch.Name())
	}
}

func (d *Dispatcher) drop(e Event, reason string) {
	d.log.Warn("Notify: dropped kind=%s recipient=%s: %s", e.Kind, e.Recipient, reason)
	d.recorder.NotificationDropped(reason)
}
