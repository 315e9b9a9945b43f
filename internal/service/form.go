package service

import (
	"fmt"
	"time"

	"order-desk/internal/models"
	"order-desk/internal/repository"
)

type Mode int

const (
	ModeCreate Mode = iota
	ModeEdit
)

func (m Mode) String() string {
	if m == ModeEdit {
		return "edit"
	}
	return "create"
}

// OrderForm drives one create or edit cycle: it holds the field values,
// validates them on Submit and hands the result to the repository.
type OrderForm struct {
	repo     repository.Orders
	mode     Mode
	existing models.Order

	firstName  string
	lastName   string
	code       string
	pickupDate string
	items      *MerchandiseEditor

	errors map[string]string
	done   bool
}

// NewCreateForm starts from empty fields with today's date as pickup date.
func NewCreateForm(repo repository.Orders, now func() time.Time) *OrderForm {
	if now == nil {
		now = time.Now
	}
	f := &OrderForm{
		repo:       repo,
		mode:       ModeCreate,
		pickupDate: models.Today(now()),
		items:      NewMerchandiseEditor(),
		errors:     map[string]string{},
	}
	f.items.Load(nil)
	return f
}

// NewEditForm seeds every field from existing.
func NewEditForm(repo repository.Orders, existing models.Order) *OrderForm {
	f := &OrderForm{
		repo:     repo,
		mode:     ModeEdit,
		existing: existing.Clone(),
		items:    NewMerchandiseEditor(),
		errors:   map[string]string{},
	}
	f.Fill(models.DraftFromOrder(existing))
	return f
}

func (f *OrderForm) Mode() Mode { return f.mode }

// NextID is the id the order will get (create) or has (edit).
func (f *OrderForm) NextID() string {
	if f.mode == ModeEdit {
		return f.existing.ID
	}
	return f.repo.GenerateNextID()
}

func (f *OrderForm) Title() string {
	if f.mode == ModeEdit {
		return fmt.Sprintf("Modifica Ordine %s", f.existing.ID)
	}
	return "Aggiungi Nuovo Ordine"
}

// Fill overwrites every field with d, bypassing the keystroke filters.
func (f *OrderForm) Fill(d models.Draft) {
	f.firstName = d.FirstName
	f.lastName = d.LastName
	f.code = d.Code
	f.pickupDate = d.PickupDate
	f.items.Load(d.Merchandise)
}

func (f *OrderForm) SetFirstName(v string)  { f.firstName = v }
func (f *OrderForm) SetLastName(v string)   { f.lastName = v }
func (f *OrderForm) SetPickupDate(v string) { f.pickupDate = v }

// SetCode only takes digits; anything else is ignored and false returned.
func (f *OrderForm) SetCode(v string) bool {
	if v != "" && !digitsPattern.MatchString(v) {
		return false
	}
	f.code = v
	return true
}

func (f *OrderForm) Merchandise() *MerchandiseEditor { return f.items }

func (f *OrderForm) Draft() models.Draft {
	return models.Draft{
		FirstName:   f.firstName,
		LastName:    f.lastName,
		Code:        f.code,
		PickupDate:  f.pickupDate,
		Merchandise: f.items.Items(),
	}
}

func (f *OrderForm) Errors() map[string]string {
	out := make(map[string]string, len(f.errors))
	for k, v := range f.errors {
		out[k] = v
	}
	return out
}

func (f *OrderForm) Done() bool { return f.done }

// Submit validates the fields and saves the order. Validation problems are
// kept in Errors and returned as *ValidationErrors; the repository is not
// called in that case.
func (f *OrderForm) Submit() (models.Order, error) {
	draft := f.Draft()
	f.errors = ValidateOrder(draft)
	if len(f.errors) > 0 {
		return models.Order{}, &ValidationErrors{Fields: f.Errors()}
	}

	if f.mode == ModeCreate {
		stored := f.repo.Create(draft.Order(f.repo.GenerateNextID(), ""))
		f.done = true
		return stored, nil
	}

	order := draft.Order(f.existing.ID, f.existing.CreatedAt)
	if err := f.repo.Update(order); err != nil {
		return models.Order{}, err
	}
	f.done = true
	return order, nil
}
