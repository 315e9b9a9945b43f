package kafka

import (
	"context"
	"encoding/json"
	"sync"
	"time"

	kafka "github.com/segmentio/kafka-go"
	"github.com/sirupsen/logrus"

	"order-desk/internal/models"
	"order-desk/internal/repository"
)

type Publisher struct {
	writer Writer
}

func NewPublisher(brokers []string, topic string) *Publisher {
	w := &kafka.Writer{
		Addr:                   kafka.TCP(brokers...),
		Topic:                  topic,
		Balancer:               &kafka.LeastBytes{},
		AllowAutoTopicCreation: true,
	}
	return &Publisher{writer: w}
}

func NewPublisherWith(w Writer) *Publisher {
	return &Publisher{writer: w}
}

func (p *Publisher) Publish(ctx context.Context, key string, payload []byte) error {
	msg := kafka.Message{Value: payload}
	if key != "" {
		msg.Key = []byte(key)
	}
	return p.writer.WriteMessages(ctx, msg)
}

func (p *Publisher) Close() error {
	return p.writer.Close()
}

type orderEvent struct {
	Type  repository.EventType `json:"type"`
	Order models.Order         `json:"order"`
	Total int                  `json:"total"`
	At    string               `json:"at"`
}

// EventPublisher forwards repository change events to a topic, keyed by
// order id so every change of one order lands on the same partition.
// Observe only enqueues; a single worker publishes in arrival order, so a
// slow or absent broker never holds up the mutation that raised the event.
type EventPublisher struct {
	pub     *Publisher
	timeout time.Duration
	events  chan repository.Event
	done    chan struct{}

	mu     sync.RWMutex
	closed bool
}

func NewEventPublisher(pub *Publisher, timeout time.Duration, buffer int) *EventPublisher {
	if timeout <= 0 {
		timeout = 5 * time.Second
	}
	if buffer <= 0 {
		buffer = 256
	}
	e := &EventPublisher{
		pub:     pub,
		timeout: timeout,
		events:  make(chan repository.Event, buffer),
		done:    make(chan struct{}),
	}
	go e.run()
	return e
}

// Observe is a repository.Observer. When the buffer is full the event is
// dropped and logged.
func (e *EventPublisher) Observe(ev repository.Event) {
	e.mu.RLock()
	defer e.mu.RUnlock()
	if e.closed {
		return
	}
	select {
	case e.events <- ev:
	default:
		logrus.WithFields(logrus.Fields{
			"order_id": ev.Order.ID,
			"type":     ev.Type,
		}).Warn("event buffer full, dropping order event")
	}
}

// Close stops accepting events and waits until the queued ones are sent.
func (e *EventPublisher) Close() {
	e.mu.Lock()
	if !e.closed {
		e.closed = true
		close(e.events)
	}
	e.mu.Unlock()
	<-e.done
}

func (e *EventPublisher) run() {
	defer close(e.done)
	for ev := range e.events {
		e.publish(ev)
	}
}

func (e *EventPublisher) publish(ev repository.Event) {
	payload, err := json.Marshal(orderEvent{
		Type:  ev.Type,
		Order: ev.Order,
		Total: ev.Total,
		At:    models.FormatTimestamp(ev.At),
	})
	if err != nil {
		logrus.WithError(err).WithField("order_id", ev.Order.ID).Error("encode order event")
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), e.timeout)
	defer cancel()
	if err := e.pub.Publish(ctx, ev.Order.ID, payload); err != nil {
		logrus.WithError(err).WithFields(logrus.Fields{
			"order_id": ev.Order.ID,
			"type":     ev.Type,
		}).Error("publish order event")
	}
}
