// Package repository owns the order collection and the sequential id counter.
package repository

import (
	"errors"
	"fmt"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/sirupsen/logrus"

	"order-desk/internal/models"
	"order-desk/internal/repository/store"
)

var ErrNotFound = errors.New("order not found")

type EventType string

const (
	EventCreated EventType = "created"
	EventUpdated EventType = "updated"
	EventDeleted EventType = "deleted"
)

// Event describes a persisted mutation. Total is the collection size after it.
type Event struct {
	Type  EventType
	Order models.Order
	Total int
	At    time.Time
}

type Observer func(Event)

type Orders interface {
	GenerateNextID() string
	Create(order models.Order) models.Order
	Update(order models.Order) error
	Delete(id string)
	Get(id string) (models.Order, error)
	List() []models.Order
	Search(term string) []models.Order
}

var _ Orders = (*OrderRepository)(nil)

// OrderRepository keeps the collection in memory and writes it back through
// its adapters after every mutation. Each call is a single
// read-modify-write-persist step under one lock.
type OrderRepository struct {
	mu        sync.Mutex
	ordersDB  *store.Adapter[[]models.Order]
	counterDB *store.Adapter[int]
	orders    []models.Order
	nextID    int
	now       func() time.Time
	observers []Observer

	// notifyMu is taken before mu is released so events reach observers in
	// mutation order.
	notifyMu sync.Mutex
}

type Option func(*OrderRepository)

func WithClock(now func() time.Time) Option { return func(r *OrderRepository) { r.now = now } }

func WithObserver(o Observer) Option {
	return func(r *OrderRepository) { r.observers = append(r.observers, o) }
}

// New loads the collection and the counter once.
func New(orders *store.Adapter[[]models.Order], counter *store.Adapter[int], opts ...Option) *OrderRepository {
	r := &OrderRepository{
		ordersDB:  orders,
		counterDB: counter,
		now:       time.Now,
	}
	for _, o := range opts {
		o(r)
	}

	r.orders = orders.Read([]models.Order{})
	if r.orders == nil {
		r.orders = []models.Order{}
	}
	r.nextID = counter.Read(1)
	if r.nextID < 1 {
		logrus.WithField("key", counter.Key()).WithField("value", r.nextID).
			Warn("stored counter out of range, restarting from 1")
		r.nextID = 1
	}
	return r
}

// Subscribe registers an observer called after each persisted mutation.
func (r *OrderRepository) Subscribe(o Observer) {
	r.mu.Lock()
	r.observers = append(r.observers, o)
	r.mu.Unlock()
}

func (r *OrderRepository) GenerateNextID() string {
	r.mu.Lock()
	defer r.mu.Unlock()
	return formatID(r.nextID)
}

func formatID(n int) string {
	return fmt.Sprintf("ORD-%04d", n)
}

// Create assigns the id and creation time, whatever the caller put there.
func (r *OrderRepository) Create(order models.Order) models.Order {
	r.mu.Lock()

	stored := order.Clone()
	stored.ID = formatID(r.nextID)
	stored.CreatedAt = models.FormatTimestamp(r.now())

	r.orders = append([]models.Order{stored}, r.orders...)
	sortNewestFirst(r.orders)

	r.nextID++
	r.counterDB.Write(r.nextID)
	r.ordersDB.Write(r.orders)

	r.notifyLocked(r.event(EventCreated, stored))
	return stored.Clone()
}

// Update replaces the stored order with the same id. The stored id and
// creation time are kept. A missing id yields ErrNotFound.
func (r *OrderRepository) Update(order models.Order) error {
	r.mu.Lock()

	idx := r.indexOf(order.ID)
	if idx < 0 {
		r.mu.Unlock()
		return fmt.Errorf("update %s: %w", order.ID, ErrNotFound)
	}

	updated := order.Clone()
	updated.CreatedAt = r.orders[idx].CreatedAt
	r.orders[idx] = updated
	r.ordersDB.Write(r.orders)

	r.notifyLocked(r.event(EventUpdated, updated))
	return nil
}

// Delete is a no-op for unknown ids.
func (r *OrderRepository) Delete(id string) {
	r.mu.Lock()

	idx := r.indexOf(id)
	if idx < 0 {
		r.mu.Unlock()
		return
	}
	removed := r.orders[idx]
	r.orders = append(r.orders[:idx:idx], r.orders[idx+1:]...)
	r.ordersDB.Write(r.orders)

	r.notifyLocked(r.event(EventDeleted, removed))
}

func (r *OrderRepository) Get(id string) (models.Order, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	idx := r.indexOf(id)
	if idx < 0 {
		return models.Order{}, fmt.Errorf("get %s: %w", id, ErrNotFound)
	}
	return r.orders[idx].Clone(), nil
}

func (r *OrderRepository) List() []models.Order {
	r.mu.Lock()
	defer r.mu.Unlock()
	return cloneAll(r.orders)
}

// Search matches term case-insensitively anywhere in the first or last name.
// The result is newest first regardless of stored order.
func (r *OrderRepository) Search(term string) []models.Order {
	r.mu.Lock()
	needle := strings.ToLower(term)
	out := make([]models.Order, 0, len(r.orders))
	for _, o := range r.orders {
		if strings.Contains(strings.ToLower(o.FirstName), needle) ||
			strings.Contains(strings.ToLower(o.LastName), needle) {
			out = append(out, o.Clone())
		}
	}
	r.mu.Unlock()

	sortNewestFirst(out)
	return out
}

func (r *OrderRepository) Len() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.orders)
}

func (r *OrderRepository) indexOf(id string) int {
	for i := range r.orders {
		if r.orders[i].ID == id {
			return i
		}
	}
	return -1
}

func (r *OrderRepository) event(t EventType, o models.Order) Event {
	return Event{Type: t, Order: o.Clone(), Total: len(r.orders), At: r.now()}
}

// notifyLocked must be called with mu held; it releases mu and runs the
// observers outside of it. Observers must not call back into the repository.
func (r *OrderRepository) notifyLocked(ev Event) {
	observers := make([]Observer, len(r.observers))
	copy(observers, r.observers)

	r.notifyMu.Lock()
	defer r.notifyMu.Unlock()
	r.mu.Unlock()

	for _, o := range observers {
		o(ev)
	}
}

func sortNewestFirst(orders []models.Order) {
	sort.SliceStable(orders, func(i, j int) bool {
		return orders[i].CreatedAt > orders[j].CreatedAt
	})
}

func cloneAll(orders []models.Order) []models.Order {
	out := make([]models.Order, len(orders))
	for i := range orders {
		out[i] = orders[i].Clone()
	}
	return out
}
