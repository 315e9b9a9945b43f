package service_test

import (
	"testing"
	"time"

	"order-desk/internal/models"
	"order-desk/internal/repository"
	"order-desk/internal/repository/kv"
	"order-desk/internal/repository/store"
)

var fixedNow = time.Date(2024, 5, 1, 9, 30, 0, 0, time.Local)

func clock() time.Time { return fixedNow }

func newRepo(t *testing.T) *repository.OrderRepository {
	t.Helper()
	m := kv.NewMemory()
	return repository.New(
		store.New[[]models.Order](m, "orders"),
		store.New[int](m, "nextOrderId"),
		repository.WithClock(clock),
	)
}

func validDraft() models.Draft {
	return models.Draft{
		FirstName:  "Mario",
		LastName:   "Rossi",
		Code:       "123",
		PickupDate: "2024-06-01",
		Merchandise: []models.MerchandiseItem{
			{ID: "m1", ItemCode: "12345678", ItemName: "Maglietta"},
		},
	}
}
