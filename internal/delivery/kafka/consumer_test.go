package kafka_test

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"testing"
	"time"

	kafkago "github.com/segmentio/kafka-go"
	"github.com/stretchr/testify/require"

	"order-desk/internal/delivery/kafka"
	"order-desk/internal/service"
)

type readerStub struct {
	mu        sync.Mutex
	queue     []kafkago.Message
	committed []kafkago.Message
	closed    bool
}

func (r *readerStub) FetchMessage(ctx context.Context) (kafkago.Message, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if len(r.queue) == 0 {
		return kafkago.Message{}, context.Canceled
	}
	m := r.queue[0]
	r.queue = r.queue[1:]
	return m, nil
}

func (r *readerStub) CommitMessages(_ context.Context, msgs ...kafkago.Message) error {
	r.mu.Lock()
	r.committed = append(r.committed, msgs...)
	r.mu.Unlock()
	return nil
}

func (r *readerStub) Close() error { r.closed = true; return nil }

type writerStub struct {
	mu      sync.Mutex
	written []kafkago.Message
	err     error
	closed  bool
	block   chan struct{}
}

func (w *writerStub) WriteMessages(_ context.Context, msgs ...kafkago.Message) error {
	if w.block != nil {
		<-w.block
	}
	w.mu.Lock()
	defer w.mu.Unlock()
	if w.err != nil {
		return w.err
	}
	w.written = append(w.written, msgs...)
	return nil
}

func (w *writerStub) Close() error { w.closed = true; return nil }

type handlerFunc func(ctx context.Context, payload []byte) error

func (f handlerFunc) HandleMessage(ctx context.Context, payload []byte) error { return f(ctx, payload) }

func header(m kafkago.Message, key string) string {
	for _, h := range m.Headers {
		if h.Key == key {
			return string(h.Value)
		}
	}
	return ""
}

func testConfig() kafka.Config {
	return kafka.Config{Topic: "orders.intake", GroupID: "order-desk", MaxRetries: 2, BaseBackoff: time.Millisecond}
}

func TestConsumer_SuccessCommits(t *testing.T) {
	r := &readerStub{queue: []kafkago.Message{{Offset: 1, Value: []byte("a")}, {Offset: 2, Value: []byte("b")}}}
	dlq := &writerStub{}
	var seen []string
	c := kafka.NewConsumerWith(testConfig(), r, dlq, handlerFunc(func(_ context.Context, p []byte) error {
		seen = append(seen, string(p))
		return nil
	}))

	require.NoError(t, c.Subscribe(context.Background()))
	require.Equal(t, []string{"a", "b"}, seen)
	require.Len(t, r.committed, 2)
	require.Empty(t, dlq.written)
}

func TestConsumer_NonRetryableGoesToDLQOnce(t *testing.T) {
	r := &readerStub{queue: []kafkago.Message{{Offset: 7, Key: []byte("k"), Value: []byte("{bad")}}}
	dlq := &writerStub{}
	calls := 0
	c := kafka.NewConsumerWith(testConfig(), r, dlq, handlerFunc(func(context.Context, []byte) error {
		calls++
		return fmt.Errorf("%w: unexpected EOF", service.ErrDecode)
	}))

	require.NoError(t, c.Subscribe(context.Background()))
	require.Equal(t, 1, calls)
	require.Len(t, dlq.written, 1)

	m := dlq.written[0]
	require.Equal(t, "k", string(m.Key))
	require.Equal(t, "{bad", string(m.Value))
	require.Equal(t, "1", header(m, "x-dlq-attempts"))
	require.Contains(t, header(m, "x-dlq-reason"), "decode")
	require.Equal(t, "orders.intake", header(m, "x-dlq-source-topic"))
	require.Equal(t, "order-desk", header(m, "x-dlq-group"))
	require.Len(t, r.committed, 1)
}

func TestConsumer_RetriesThenDLQ(t *testing.T) {
	r := &readerStub{queue: []kafkago.Message{{Offset: 3, Value: []byte("x")}}}
	dlq := &writerStub{}
	calls := 0
	c := kafka.NewConsumerWith(testConfig(), r, dlq, handlerFunc(func(context.Context, []byte) error {
		calls++
		return errors.New("store busy")
	}))

	require.NoError(t, c.Subscribe(context.Background()))
	require.Equal(t, 3, calls)
	require.Len(t, dlq.written, 1)
	require.Equal(t, "3", header(dlq.written[0], "x-dlq-attempts"))
	require.Len(t, r.committed, 1)
}

func TestConsumer_RetrySucceeds(t *testing.T) {
	r := &readerStub{queue: []kafkago.Message{{Offset: 3, Value: []byte("x")}}}
	dlq := &writerStub{}
	calls := 0
	c := kafka.NewConsumerWith(testConfig(), r, dlq, handlerFunc(func(context.Context, []byte) error {
		calls++
		if calls < 2 {
			return errors.New("transient")
		}
		return nil
	}))

	require.NoError(t, c.Subscribe(context.Background()))
	require.Equal(t, 2, calls)
	require.Empty(t, dlq.written)
	require.Len(t, r.committed, 1)
}

func TestConsumer_NoDLQDropsAndCommits(t *testing.T) {
	r := &readerStub{queue: []kafkago.Message{{Offset: 1, Value: []byte("x")}}}
	c := kafka.NewConsumerWith(testConfig(), r, nil, handlerFunc(func(context.Context, []byte) error {
		return fmt.Errorf("%w: bad", service.ErrValidation)
	}))

	require.NoError(t, c.Subscribe(context.Background()))
	require.Len(t, r.committed, 1)
	require.NoError(t, c.Close())
	require.True(t, r.closed)
}

func TestConsumer_StopsOnCanceledContext(t *testing.T) {
	r := &readerStub{queue: []kafkago.Message{{Offset: 1}}}
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	c := kafka.NewConsumerWith(testConfig(), r, nil, handlerFunc(func(context.Context, []byte) error {
		t.Fatal("handler must not run")
		return nil
	}))
	require.NoError(t, c.Subscribe(ctx))
	require.Empty(t, r.committed)
}
