package service_test

import (
	"context"
	"encoding/json"
	"testing"

	"github.com/brianvoe/gofakeit/v7"
	"github.com/stretchr/testify/require"

	"order-desk/internal/models"
	svc "order-desk/internal/service"
)

func newService(t *testing.T, printer svc.Printer) (*svc.Service, *recordingPrinter) {
	t.Helper()
	rec, _ := printer.(*recordingPrinter)
	return svc.NewService(newRepo(t), svc.NewPrintService(svc.NewMemorySurface(), printer), svc.WithClock(clock)), rec
}

func TestService_CreateListGet(t *testing.T) {
	s, _ := newService(t, &recordingPrinter{})
	require.Equal(t, "ORD-0001", s.NextOrderID())

	created, err := s.CreateOrder(validDraft())
	require.NoError(t, err)
	require.Equal(t, "ORD-0001", created.ID)
	require.Equal(t, "ORD-0002", s.NextOrderID())

	got, err := s.GetOrder(created.ID)
	require.NoError(t, err)
	require.Equal(t, created, got)

	require.Len(t, s.ListOrders(""), 1)
	require.Len(t, s.ListOrders("ROSSI"), 1)
	require.Empty(t, s.ListOrders("verdi"))
}

func TestService_CreateInvalid(t *testing.T) {
	s, _ := newService(t, &recordingPrinter{})
	d := validDraft()
	d.Merchandise = nil

	_, err := s.CreateOrder(d)
	var verr *svc.ValidationErrors
	require.ErrorAs(t, err, &verr)
	require.Equal(t, svc.MsgMerchandiseEmpty, verr.Fields["merchandise"])
	require.Empty(t, s.ListOrders(""))
}

func TestService_CreateOverflowingCode_Rejected(t *testing.T) {
	s, _ := newService(t, &recordingPrinter{})
	d := validDraft()
	d.Code = "99999999999999999999"

	_, err := s.CreateOrder(d)
	var verr *svc.ValidationErrors
	require.ErrorAs(t, err, &verr)
	require.Equal(t, svc.MsgCodeNotInteger, verr.Fields["code"])
	require.Empty(t, s.ListOrders(""))
}

func TestService_UpdateOrder(t *testing.T) {
	s, _ := newService(t, &recordingPrinter{})
	created, err := s.CreateOrder(validDraft())
	require.NoError(t, err)

	d := validDraft()
	d.LastName = "Bianchi"
	updated, err := s.UpdateOrder(created.ID, d)
	require.NoError(t, err)
	require.Equal(t, "Bianchi", updated.LastName)
	require.Equal(t, created.CreatedAt, updated.CreatedAt)

	_, err = s.UpdateOrder("ORD-9999", d)
	require.ErrorIs(t, err, svc.ErrNotFound)
}

func TestService_DeleteFlow(t *testing.T) {
	s, _ := newService(t, &recordingPrinter{})
	created, err := s.CreateOrder(validDraft())
	require.NoError(t, err)

	require.Contains(t, s.RequestDelete(created.ID), created.ID)
	s.CancelDelete()
	require.ErrorIs(t, s.ConfirmDelete(created.ID), svc.ErrNothingPending)

	s.RequestDelete(created.ID)
	require.NoError(t, s.ConfirmDelete(created.ID))
	_, err = s.GetOrder(created.ID)
	require.ErrorIs(t, err, svc.ErrNotFound)
}

func TestService_PrintableAndPrint(t *testing.T) {
	s, printer := newService(t, &recordingPrinter{})
	created, err := s.CreateOrder(validDraft())
	require.NoError(t, err)

	html, err := s.Printable(created.ID)
	require.NoError(t, err)
	require.Contains(t, html, "Dettaglio Ordine: ORD-0001")

	require.NoError(t, s.PrintOrder(created.ID))
	require.Len(t, printer.docs, 1)
	require.Equal(t, html, printer.docs[0])

	_, err = s.Printable("ORD-0404")
	require.ErrorIs(t, err, svc.ErrNotFound)
	require.ErrorIs(t, s.PrintOrder("ORD-0404"), svc.ErrNotFound)
}

func TestService_ValidateItem(t *testing.T) {
	s, _ := newService(t, &recordingPrinter{})
	require.NoError(t, s.ValidateItem("12345678", "Maglietta"))
	require.ErrorIs(t, s.ValidateItem("1234", "Maglietta"), svc.ErrValidation)
}

func TestHandleMessage_CreatesOrder(t *testing.T) {
	s, _ := newService(t, &recordingPrinter{})
	f := gofakeit.New(11)
	d := models.Draft{
		FirstName:  f.FirstName(),
		LastName:   f.LastName(),
		Code:       f.DigitN(5),
		PickupDate: "2024-07-15",
		Merchandise: []models.MerchandiseItem{
			{ItemCode: f.DigitN(8), ItemName: f.ProductName()},
		},
	}
	payload, err := json.Marshal(d)
	require.NoError(t, err)

	require.NoError(t, s.HandleMessage(context.Background(), payload))
	list := s.ListOrders("")
	require.Len(t, list, 1)
	require.Equal(t, d.FirstName, list[0].FirstName)
	require.NotEmpty(t, list[0].Merchandise[0].ID)
}

func TestHandleMessage_BadJSON(t *testing.T) {
	s, _ := newService(t, &recordingPrinter{})
	err := s.HandleMessage(context.Background(), []byte("{not json"))
	require.ErrorIs(t, err, svc.ErrDecode)
	require.Empty(t, s.ListOrders(""))
}

func TestHandleMessage_InvalidDraft(t *testing.T) {
	s, _ := newService(t, &recordingPrinter{})
	err := s.HandleMessage(context.Background(), []byte(`{"firstName":"Mario","code":"x"}`))
	require.ErrorIs(t, err, svc.ErrValidation)
	require.Empty(t, s.ListOrders(""))
}

func TestHandleMessage_CanceledContext(t *testing.T) {
	s, _ := newService(t, &recordingPrinter{})
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	require.ErrorIs(t, s.HandleMessage(ctx, []byte(`{}`)), context.Canceled)
}
