package service

import (
	"regexp"
	"strings"

	"github.com/google/uuid"

	"order-desk/internal/models"
)

const itemCodeLength = 8

var pendingCodePattern = regexp.MustCompile(`^\d{0,8}$`)

// MerchandiseEditor composes the item list of one order before it is saved.
type MerchandiseEditor struct {
	items       []models.MerchandiseItem
	pendingCode string
	pendingName string
	codeError   string
	newID       func() string
}

func NewMerchandiseEditor() *MerchandiseEditor {
	return &MerchandiseEditor{newID: uuid.NewString}
}

// Load replaces the list with a copy of items. Entries without an id get a
// fresh one.
func (e *MerchandiseEditor) Load(items []models.MerchandiseItem) {
	e.items = make([]models.MerchandiseItem, 0, len(items))
	for _, it := range items {
		if it.ID == "" {
			it.ID = e.newID()
		}
		e.items = append(e.items, it)
	}
}

func (e *MerchandiseEditor) Items() []models.MerchandiseItem {
	out := make([]models.MerchandiseItem, len(e.items))
	copy(out, e.items)
	return out
}

func (e *MerchandiseEditor) PendingCode() string { return e.pendingCode }
func (e *MerchandiseEditor) PendingName() string { return e.pendingName }
func (e *MerchandiseEditor) CodeError() string   { return e.codeError }

// SetPendingCode accepts up to 8 digits and reports whether v was taken.
// Reaching 8 digits or emptying the field clears a standing code error.
func (e *MerchandiseEditor) SetPendingCode(v string) bool {
	if !pendingCodePattern.MatchString(v) {
		return false
	}
	e.pendingCode = v
	if len(v) == itemCodeLength || len(v) == 0 {
		e.codeError = ""
	}
	return true
}

func (e *MerchandiseEditor) SetPendingName(v string) { e.pendingName = v }

func (e *MerchandiseEditor) CanAdd() bool {
	return len(e.pendingCode) == itemCodeLength && strings.TrimSpace(e.pendingName) != ""
}

// AddItem validates the buffers and appends them as a new entry. On failure
// the buffers are kept; a code problem is also recorded in CodeError while a
// name problem is only returned, as an *ItemNameError alert.
func (e *MerchandiseEditor) AddItem() (models.MerchandiseItem, error) {
	if err := ValidateMerchandiseItem(e.pendingCode, e.pendingName); err != nil {
		if ce, ok := err.(*ItemCodeError); ok {
			e.codeError = ce.Message
		} else {
			e.codeError = ""
		}
		return models.MerchandiseItem{}, err
	}

	item := models.MerchandiseItem{
		ID:       e.newID(),
		ItemCode: e.pendingCode,
		ItemName: e.pendingName,
	}
	e.items = append(e.items, item)
	e.pendingCode = ""
	e.pendingName = ""
	e.codeError = ""
	return item, nil
}

func (e *MerchandiseEditor) RemoveItem(id string) {
	for i := range e.items {
		if e.items[i].ID == id {
			e.items = append(e.items[:i:i], e.items[i+1:]...)
			return
		}
	}
}
