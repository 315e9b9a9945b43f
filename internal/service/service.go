package service

import (
	"context"
	"time"

	"order-desk/internal/models"
	"order-desk/internal/repository"
)

//go:generate mockgen -source=service.go -destination=mocks/mock.go

type Order interface {
	ListOrders(term string) []models.Order
	GetOrder(id string) (models.Order, error)
	NextOrderID() string
	CreateOrder(draft models.Draft) (models.Order, error)
	UpdateOrder(id string, draft models.Draft) (models.Order, error)

	RequestDelete(id string) string
	ConfirmDelete(id string) error
	CancelDelete()

	ValidateItem(code, name string) error

	Printable(id string) (string, error)
	PrintOrder(id string) error

	HandleMessage(ctx context.Context, payload []byte) error
}

var _ Order = (*Service)(nil)

type Service struct {
	repo    repository.Orders
	gate    *DeleteGate
	printer *PrintService
	now     func() time.Time
}

type Option func(*Service)

func WithClock(now func() time.Time) Option { return func(s *Service) { s.now = now } }

func NewService(repo repository.Orders, printer *PrintService, opts ...Option) *Service {
	s := &Service{
		repo:    repo,
		gate:    NewDeleteGate(repo),
		printer: printer,
		now:     time.Now,
	}
	for _, o := range opts {
		o(s)
	}
	return s
}

func (s *Service) ListOrders(term string) []models.Order {
	l := NewOrderList(s.repo)
	l.SetSearchTerm(term)
	return l.Orders()
}

func (s *Service) GetOrder(id string) (models.Order, error) {
	return s.repo.Get(id)
}

func (s *Service) NextOrderID() string {
	return s.repo.GenerateNextID()
}

func (s *Service) CreateOrder(draft models.Draft) (models.Order, error) {
	form := NewCreateForm(s.repo, s.now)
	form.Fill(draft)
	return form.Submit()
}

func (s *Service) UpdateOrder(id string, draft models.Draft) (models.Order, error) {
	existing, err := s.repo.Get(id)
	if err != nil {
		return models.Order{}, err
	}
	form := NewEditForm(s.repo, existing)
	form.Fill(draft)
	return form.Submit()
}

func (s *Service) RequestDelete(id string) string { return s.gate.Request(id) }
func (s *Service) ConfirmDelete(id string) error  { return s.gate.Confirm(id) }
func (s *Service) CancelDelete()                  { s.gate.Cancel() }

func (s *Service) ValidateItem(code, name string) error {
	return ValidateMerchandiseItem(code, name)
}

func (s *Service) Printable(id string) (string, error) {
	o, err := s.repo.Get(id)
	if err != nil {
		return "", err
	}
	return RenderPrintable(o)
}

func (s *Service) PrintOrder(id string) error {
	o, err := s.repo.Get(id)
	if err != nil {
		return err
	}
	return s.printer.Print(o)
}
