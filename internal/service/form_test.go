package service_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"order-desk/internal/models"
	svc "order-desk/internal/service"
)

func TestCreateForm_Defaults(t *testing.T) {
	repo := newRepo(t)
	f := svc.NewCreateForm(repo, clock)

	require.Equal(t, svc.ModeCreate, f.Mode())
	require.Equal(t, "Aggiungi Nuovo Ordine", f.Title())
	require.Equal(t, "ORD-0001", f.NextID())
	require.Equal(t, "2024-05-01", f.Draft().PickupDate)
	require.Empty(t, f.Draft().Merchandise)
}

func TestCreateForm_SubmitInvalid_DoesNotSave(t *testing.T) {
	repo := newRepo(t)
	f := svc.NewCreateForm(repo, clock)

	_, err := f.Submit()
	var verr *svc.ValidationErrors
	require.ErrorAs(t, err, &verr)
	require.Contains(t, verr.Fields, "firstName")
	require.Contains(t, verr.Fields, "merchandise")
	require.NotContains(t, verr.Fields, "pickupDate")
	require.Equal(t, verr.Fields, f.Errors())
	require.False(t, f.Done())
	require.Empty(t, repo.List())
	require.Equal(t, "ORD-0001", repo.GenerateNextID())
}

func TestCreateForm_SubmitValid(t *testing.T) {
	repo := newRepo(t)
	f := svc.NewCreateForm(repo, clock)
	f.SetFirstName("Mario")
	f.SetLastName("Rossi")
	require.True(t, f.SetCode("123"))
	require.False(t, f.SetCode("12a"))
	f.Merchandise().SetPendingCode("12345678")
	f.Merchandise().SetPendingName("Maglietta")
	_, err := f.Merchandise().AddItem()
	require.NoError(t, err)

	order, err := f.Submit()
	require.NoError(t, err)
	require.True(t, f.Done())
	require.Empty(t, f.Errors())
	require.Equal(t, "ORD-0001", order.ID)
	require.Equal(t, 123, order.Code)
	require.Equal(t, "2024-05-01", order.PickupDate)
	require.NotEmpty(t, order.CreatedAt)

	stored, err := repo.Get("ORD-0001")
	require.NoError(t, err)
	require.Equal(t, order, stored)
}

func TestCreateForm_FillBypassesFilters(t *testing.T) {
	repo := newRepo(t)
	f := svc.NewCreateForm(repo, clock)
	d := validDraft()
	d.Code = "12a"
	f.Fill(d)

	_, err := f.Submit()
	require.ErrorIs(t, err, svc.ErrValidation)
	require.Equal(t, svc.MsgCodeNotInteger, f.Errors()["code"])
}

func TestEditForm_PreservesIDAndCreatedAt(t *testing.T) {
	repo := newRepo(t)
	created := repo.Create(validDraft().Order("", ""))

	f := svc.NewEditForm(repo, created)
	require.Equal(t, svc.ModeEdit, f.Mode())
	require.Equal(t, "Modifica Ordine ORD-0001", f.Title())
	require.Equal(t, "ORD-0001", f.NextID())
	require.Equal(t, models.DraftFromOrder(created), f.Draft())

	f.SetFirstName("Luigi")
	updated, err := f.Submit()
	require.NoError(t, err)
	require.Equal(t, created.ID, updated.ID)
	require.Equal(t, created.CreatedAt, updated.CreatedAt)

	stored, err := repo.Get(created.ID)
	require.NoError(t, err)
	require.Equal(t, "Luigi", stored.FirstName)
	require.Len(t, repo.List(), 1)
	require.Equal(t, "ORD-0002", repo.GenerateNextID())
}

func TestEditForm_DeletedMeanwhile_NotFound(t *testing.T) {
	repo := newRepo(t)
	created := repo.Create(validDraft().Order("", ""))
	f := svc.NewEditForm(repo, created)
	repo.Delete(created.ID)

	_, err := f.Submit()
	require.ErrorIs(t, err, svc.ErrNotFound)
	require.False(t, f.Done())
	require.Empty(t, repo.List())
}

func TestOrderList_Search(t *testing.T) {
	repo := newRepo(t)
	for _, name := range [][2]string{{"Mario", "Rossi"}, {"Anna", "Verdi"}, {"Marta", "Bianchi"}} {
		d := validDraft()
		d.FirstName, d.LastName = name[0], name[1]
		repo.Create(d.Order("", ""))
	}

	l := svc.NewOrderList(repo)
	require.Len(t, l.Orders(), 3)

	l.SetSearchTerm("mar")
	require.Equal(t, "mar", l.SearchTerm())
	require.Len(t, l.Orders(), 2)

	l.SetSearchTerm("zzz")
	require.Empty(t, l.Orders())

	l.ClearSearch()
	require.Len(t, l.Orders(), 3)
}

func TestOrderList_Empty(t *testing.T) {
	repo := newRepo(t)
	l := svc.NewOrderList(repo)
	require.Equal(t, svc.EmptyListMessage, l.Empty())

	repo.Create(validDraft().Order("", ""))
	require.Empty(t, l.Empty())
	l.SetSearchTerm("nessuno")
	require.Equal(t, svc.EmptyListMessage, l.Empty())
}
