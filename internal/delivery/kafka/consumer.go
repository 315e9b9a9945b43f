package kafka

import (
	"context"
	"errors"
	"strconv"
	"time"

	kafka "github.com/segmentio/kafka-go"
	"github.com/sirupsen/logrus"

	"order-desk/internal/service"
)

type Config struct {
	Brokers     []string
	GroupID     string
	Topic       string
	DLQ         string
	MaxRetries  int
	BaseBackoff time.Duration
}

// MessageHandler turns one intake payload into an order.
type MessageHandler interface {
	HandleMessage(ctx context.Context, payload []byte) error
}

type Reader interface {
	FetchMessage(ctx context.Context) (kafka.Message, error)
	CommitMessages(ctx context.Context, msgs ...kafka.Message) error
	Close() error
}

type Writer interface {
	WriteMessages(ctx context.Context, msgs ...kafka.Message) error
	Close() error
}

type Consumer struct {
	cfg     Config
	reader  Reader
	dlq     Writer
	handler MessageHandler
	log     logrus.FieldLogger
}

func NewConsumer(cfg Config, h MessageHandler) *Consumer {
	r := kafka.NewReader(kafka.ReaderConfig{
		Brokers:        cfg.Brokers,
		GroupID:        cfg.GroupID,
		Topic:          cfg.Topic,
		MinBytes:       1,
		MaxBytes:       10e6,
		MaxWait:        100 * time.Millisecond,
		CommitInterval: 0,
	})

	var dlq Writer
	if cfg.DLQ != "" {
		dlq = &kafka.Writer{
			Addr:                   kafka.TCP(cfg.Brokers...),
			Topic:                  cfg.DLQ,
			RequiredAcks:           kafka.RequireAll,
			Balancer:               &kafka.LeastBytes{},
			AllowAutoTopicCreation: true,
			BatchTimeout:           10 * time.Millisecond,
		}
	}
	return NewConsumerWith(cfg, r, dlq, h)
}

// NewConsumerWith builds a consumer over an existing reader and DLQ writer.
// dlq may be nil, in which case failed messages are dropped after logging.
func NewConsumerWith(cfg Config, r Reader, dlq Writer, h MessageHandler) *Consumer {
	if cfg.MaxRetries < 0 {
		cfg.MaxRetries = 0
	}
	if cfg.BaseBackoff <= 0 {
		cfg.BaseBackoff = 200 * time.Millisecond
	}
	return &Consumer{
		cfg:     cfg,
		reader:  r,
		dlq:     dlq,
		handler: h,
		log:     logrus.WithFields(logrus.Fields{"topic": cfg.Topic, "group": cfg.GroupID}),
	}
}

// Subscribe consumes until ctx is done. Messages are committed once handled,
// or once parked in the DLQ after the retries are used up.
func (c *Consumer) Subscribe(ctx context.Context) error {
	for {
		if ctx.Err() != nil {
			return nil
		}

		m, err := c.reader.FetchMessage(ctx)
		if err != nil {
			if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
				return nil
			}
			c.log.WithError(err).Error("kafka fetch error")
			if !sleep(ctx, 300*time.Millisecond) {
				return nil
			}
			continue
		}

		log := c.log.WithFields(logrus.Fields{"partition": m.Partition, "offset": m.Offset})
		log.WithField("key", string(m.Key)).Debug("fetched message")

		attempts, last := c.handle(ctx, m)
		if last == nil {
			if err := c.reader.CommitMessages(ctx, m); err != nil {
				log.WithError(err).Error("commit failed")
			}
			continue
		}
		if ctx.Err() != nil {
			return nil
		}

		if c.dlq != nil {
			if err := c.dlq.WriteMessages(ctx, c.dlqMessage(m, last, attempts)); err != nil {
				if ctx.Err() != nil {
					return nil
				}
				log.WithError(err).Error("write to DLQ failed")
				sleep(ctx, 500*time.Millisecond)
				continue
			}
			log.WithError(last).Warn("message moved to DLQ")
		} else {
			log.WithError(last).Warn("DLQ disabled, drop message")
		}

		if err := c.reader.CommitMessages(ctx, m); err != nil {
			if ctx.Err() != nil {
				return nil
			}
			log.WithError(err).Error("commit after DLQ failed")
		}
	}
}

func (c *Consumer) handle(ctx context.Context, m kafka.Message) (int, error) {
	var last error
	attempt := 0
	for ; attempt <= c.cfg.MaxRetries; attempt++ {
		if attempt > 0 && !sleep(ctx, backoff(attempt, c.cfg.BaseBackoff)) {
			return attempt, ctx.Err()
		}
		last = c.handler.HandleMessage(ctx, m.Value)
		if last == nil {
			return attempt + 1, nil
		}
		if isNonRetryable(last) {
			return attempt + 1, last
		}
	}
	return attempt, last
}

func (c *Consumer) dlqMessage(m kafka.Message, last error, attempts int) kafka.Message {
	headers := make([]kafka.Header, 0, len(m.Headers)+5)
	headers = append(headers, m.Headers...)
	headers = append(headers,
		kafka.Header{Key: "x-dlq-reason", Value: []byte(trimErr(last))},
		kafka.Header{Key: "x-dlq-attempts", Value: []byte(strconv.Itoa(attempts))},
		kafka.Header{Key: "x-dlq-ts", Value: []byte(time.Now().UTC().Format(time.RFC3339))},
		kafka.Header{Key: "x-dlq-source-topic", Value: []byte(c.cfg.Topic)},
		kafka.Header{Key: "x-dlq-group", Value: []byte(c.cfg.GroupID)},
	)
	return kafka.Message{Key: m.Key, Value: m.Value, Headers: headers}
}

func (c *Consumer) Close() error {
	var first error
	if c.reader != nil {
		if err := c.reader.Close(); err != nil {
			first = err
		}
	}
	if c.dlq != nil {
		if err := c.dlq.Close(); err != nil && first == nil {
			first = err
		}
	}
	return first
}

func sleep(ctx context.Context, d time.Duration) bool {
	if d <= 0 {
		return true
	}
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-t.C:
		return true
	case <-ctx.Done():
		return false
	}
}

func backoff(n int, base time.Duration) time.Duration {
	if n <= 0 {
		return 0
	}
	d := base * (1 << (n - 1))
	if d > 5*time.Second {
		d = 5 * time.Second
	}
	return d
}

func trimErr(err error) string {
	if err == nil {
		return ""
	}
	s := err.Error()
	if len(s) > 1000 {
		return s[:1000]
	}
	return s
}

func isNonRetryable(err error) bool {
	return errors.Is(err, service.ErrDecode) || errors.Is(err, service.ErrValidation)
}
