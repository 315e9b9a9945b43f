// Package store adapts a kv.KV into typed JSON values that never fail on read.
package store

import (
	"encoding/json"

	"github.com/sirupsen/logrus"

	"order-desk/internal/metrics"
	"order-desk/internal/repository/kv"
)

// Adapter persists one value of type T under a single key.
//
// Read falls back to the supplied default on any problem and Write drops the
// value on any problem; both only log. Callers never see persistence errors.
type Adapter[T any] struct {
	kv  kv.KV
	key string
	log logrus.FieldLogger
}

type Option func(*options)

type options struct {
	log logrus.FieldLogger
}

func WithLogger(l logrus.FieldLogger) Option { return func(o *options) { o.log = l } }

// New builds an adapter. A nil store is accepted and behaves as an absent
// substrate.
func New[T any](store kv.KV, key string, opts ...Option) *Adapter[T] {
	o := options{log: logrus.StandardLogger()}
	for _, opt := range opts {
		opt(&o)
	}
	return &Adapter[T]{
		kv:  store,
		key: key,
		log: o.log.WithField("key", key),
	}
}

func (a *Adapter[T]) Key() string { return a.key }

func (a *Adapter[T]) Read(def T) T {
	if a.kv == nil {
		a.log.Error("store unavailable, using default")
		metrics.StoreFallbacks.WithLabelValues(a.key, "no_store").Inc()
		return def
	}

	raw, ok, err := a.kv.Get(a.key)
	if err != nil {
		a.log.WithError(err).Error("store read failed, using default")
		metrics.StoreFallbacks.WithLabelValues(a.key, "read_error").Inc()
		return def
	}
	if !ok {
		a.log.Info("key not set, using default")
		metrics.StoreFallbacks.WithLabelValues(a.key, "missing").Inc()
		return def
	}

	var v T
	if err := json.Unmarshal([]byte(raw), &v); err != nil {
		a.log.WithError(err).Error("stored value is malformed, using default")
		metrics.StoreFallbacks.WithLabelValues(a.key, "malformed").Inc()
		return def
	}
	return v
}

func (a *Adapter[T]) Write(v T) {
	if a.kv == nil {
		a.log.Error("store unavailable, value not persisted")
		metrics.StoreWriteFailures.WithLabelValues(a.key, "no_store").Inc()
		return
	}

	raw, err := json.Marshal(v)
	if err != nil {
		a.log.WithError(err).Error("encode failed, value not persisted")
		metrics.StoreWriteFailures.WithLabelValues(a.key, "encode").Inc()
		return
	}
	if err := a.kv.Set(a.key, string(raw)); err != nil {
		a.log.WithError(err).Error("store write failed, value not persisted")
		metrics.StoreWriteFailures.WithLabelValues(a.key, "write_error").Inc()
	}
}
