package service

import (
	"order-desk/internal/models"
	"order-desk/internal/repository"
)

const EmptyListMessage = "Nessun ordine trovato. Prova ad aggiungerne uno!"

// OrderList is the filtered list view. Orders re-runs the search on every
// call, so a new term takes effect immediately.
type OrderList struct {
	repo repository.Orders
	term string
}

func NewOrderList(repo repository.Orders) *OrderList {
	return &OrderList{repo: repo}
}

func (l *OrderList) SetSearchTerm(term string) { l.term = term }
func (l *OrderList) SearchTerm() string        { return l.term }
func (l *OrderList) ClearSearch()              { l.term = "" }

func (l *OrderList) Orders() []models.Order {
	return l.repo.Search(l.term)
}

// Empty returns EmptyListMessage when the current search has no results.
func (l *OrderList) Empty() string {
	if len(l.Orders()) == 0 {
		return EmptyListMessage
	}
	return ""
}
