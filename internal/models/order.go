package models

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strconv"
	"time"
)

const (
	// DateLayout is the pickup date wire format.
	DateLayout = "2006-01-02"
	// TimestampLayout is used for CreatedAt. Fixed width in UTC keeps string
	// comparison chronological.
	TimestampLayout = "2006-01-02T15:04:05.000000000Z07:00"
)

type Order struct {
	ID          string            `json:"id"`
	FirstName   string            `json:"firstName"`
	LastName    string            `json:"lastName"`
	Code        int               `json:"code"`
	PickupDate  string            `json:"pickupDate"`
	Merchandise []MerchandiseItem `json:"merchandise"`
	CreatedAt   string            `json:"createdAt"`
}

// Clone returns a copy that shares no slices with o.
func (o Order) Clone() Order {
	out := o
	if o.Merchandise != nil {
		out.Merchandise = make([]MerchandiseItem, len(o.Merchandise))
		copy(out.Merchandise, o.Merchandise)
	}
	return out
}

// Draft is an order as typed into the form: nothing assigned yet and the
// internal code still raw.
type Draft struct {
	FirstName   string            `json:"firstName"   validate:"notblank"`
	LastName    string            `json:"lastName"    validate:"notblank"`
	Code        string            `json:"code"        validate:"digits"`
	PickupDate  string            `json:"pickupDate"  validate:"required"`
	Merchandise []MerchandiseItem `json:"merchandise" validate:"min=1"`
}

// UnmarshalJSON accepts code both as a string and as a JSON number, so an
// Order read from the API can be sent back as a Draft. A number is kept as
// its literal text and validated like typed input.
func (d *Draft) UnmarshalJSON(data []byte) error {
	type plain Draft
	var aux struct {
		plain
		Code json.RawMessage `json:"code"`
	}
	if err := json.Unmarshal(data, &aux); err != nil {
		return err
	}
	*d = Draft(aux.plain)

	raw := bytes.TrimSpace(aux.Code)
	switch {
	case len(raw) == 0 || bytes.Equal(raw, []byte("null")):
		d.Code = ""
	case raw[0] == '"':
		if err := json.Unmarshal(raw, &d.Code); err != nil {
			return fmt.Errorf("draft code: %w", err)
		}
	default:
		var n json.Number
		if err := json.Unmarshal(raw, &n); err != nil {
			return fmt.Errorf("draft code: %w", err)
		}
		d.Code = n.String()
	}
	return nil
}

// DraftFromOrder is the inverse of Draft.Order, used to seed the edit form.
func DraftFromOrder(o Order) Draft {
	return Draft{
		FirstName:   o.FirstName,
		LastName:    o.LastName,
		Code:        strconv.Itoa(o.Code),
		PickupDate:  o.PickupDate,
		Merchandise: o.Clone().Merchandise,
	}
}

// Order builds an order from a validated draft. The code must already have
// passed validation: digits only and within int range.
func (d Draft) Order(id, createdAt string) Order {
	code, _ := strconv.Atoi(d.Code)
	items := make([]MerchandiseItem, len(d.Merchandise))
	copy(items, d.Merchandise)
	return Order{
		ID:          id,
		FirstName:   d.FirstName,
		LastName:    d.LastName,
		Code:        code,
		PickupDate:  d.PickupDate,
		Merchandise: items,
		CreatedAt:   createdAt,
	}
}

func FormatTimestamp(t time.Time) string {
	return t.UTC().Format(TimestampLayout)
}

// Today returns the local calendar date of t as YYYY-MM-DD.
func Today(t time.Time) string {
	return t.Local().Format(DateLayout)
}

// FormatDisplayDate renders a stored date or timestamp as DD/MM/YYYY.
// Values that do not parse are returned unchanged; empty values become "N/A".
func FormatDisplayDate(s string) string {
	if s == "" {
		return "N/A"
	}
	if t, err := time.Parse(DateLayout, s); err == nil {
		return t.Format("02/01/2006")
	}
	if t, err := time.Parse(time.RFC3339Nano, s); err == nil {
		return t.Local().Format("02/01/2006")
	}
	return s
}
