package models_test

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"order-desk/internal/models"
)

func TestFormatDisplayDate(t *testing.T) {
	require.Equal(t, "N/A", models.FormatDisplayDate(""))
	require.Equal(t, "01/06/2024", models.FormatDisplayDate("2024-06-01"))
	require.Equal(t, "domani", models.FormatDisplayDate("domani"))

	ts := time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)
	require.Equal(t, ts.Local().Format("02/01/2006"), models.FormatDisplayDate(models.FormatTimestamp(ts)))
	require.Equal(t, ts.Local().Format("02/01/2006"), models.FormatDisplayDate(ts.Format(time.RFC3339)))
}

func TestFormatTimestamp_SortsLexically(t *testing.T) {
	a := models.FormatTimestamp(time.Date(2024, 5, 1, 9, 0, 0, 0, time.UTC))
	b := models.FormatTimestamp(time.Date(2024, 5, 1, 9, 0, 0, 500, time.UTC))
	c := models.FormatTimestamp(time.Date(2024, 5, 1, 10, 0, 0, 0, time.FixedZone("CEST", 2*3600)))
	require.Less(t, a, b)
	require.Less(t, c, a, "10:00 CEST is 08:00 UTC")
	require.Len(t, a, len(b))
}

func TestDraftOrder_ParsesCode(t *testing.T) {
	d := models.Draft{
		FirstName:   "Mario",
		LastName:    "Rossi",
		Code:        "00123",
		PickupDate:  "2024-06-01",
		Merchandise: []models.MerchandiseItem{{ID: "a", ItemCode: "12345678", ItemName: "Maglietta"}},
	}
	o := d.Order("ORD-0001", "")
	require.Equal(t, 123, o.Code)
	require.Equal(t, "ORD-0001", o.ID)

	o.Merchandise[0].ItemName = "changed"
	require.Equal(t, "Maglietta", d.Merchandise[0].ItemName, "order does not share the draft's slice")

	back := models.DraftFromOrder(o)
	require.Equal(t, "123", back.Code)
}

func TestOrderClone(t *testing.T) {
	o := models.Order{Merchandise: []models.MerchandiseItem{{ID: "a"}}}
	c := o.Clone()
	c.Merchandise[0].ID = "b"
	require.Equal(t, "a", o.Merchandise[0].ID)
	require.Nil(t, models.Order{}.Clone().Merchandise)
}

func TestDraftUnmarshal_CodeStringOrNumber(t *testing.T) {
	var d models.Draft
	require.NoError(t, json.Unmarshal([]byte(`{"firstName":"Mario","code":"0042"}`), &d))
	require.Equal(t, "0042", d.Code)
	require.Equal(t, "Mario", d.FirstName)

	d = models.Draft{}
	require.NoError(t, json.Unmarshal([]byte(`{"code":123,"pickupDate":"2024-06-01"}`), &d))
	require.Equal(t, "123", d.Code)
	require.Equal(t, "2024-06-01", d.PickupDate)

	d = models.Draft{}
	require.NoError(t, json.Unmarshal([]byte(`{"code":-1.5}`), &d))
	require.Equal(t, "-1.5", d.Code, "kept verbatim for validation to reject")

	d = models.Draft{Code: "9"}
	require.NoError(t, json.Unmarshal([]byte(`{"code":null}`), &d))
	require.Empty(t, d.Code)

	require.Error(t, json.Unmarshal([]byte(`{"code":true}`), &d))
}

func TestDraftUnmarshal_FromOrderJSON(t *testing.T) {
	o := models.Order{
		ID:          "ORD-0001",
		FirstName:   "Mario",
		LastName:    "Rossi",
		Code:        77,
		PickupDate:  "2024-06-01",
		Merchandise: []models.MerchandiseItem{{ID: "a", ItemCode: "12345678", ItemName: "Maglietta"}},
		CreatedAt:   "2024-05-01T09:00:00.000000000Z",
	}
	raw, err := json.Marshal(o)
	require.NoError(t, err)

	var d models.Draft
	require.NoError(t, json.Unmarshal(raw, &d))
	require.Equal(t, models.DraftFromOrder(o), d)
}
