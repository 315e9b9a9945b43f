package service

import (
	"fmt"
	"sync"

	"order-desk/internal/repository"
)

// DeleteGate is the two-step confirmation in front of Delete: an id is staged
// first and only removed on Confirm.
type DeleteGate struct {
	mu      sync.Mutex
	repo    repository.Orders
	pending string
}

func NewDeleteGate(repo repository.Orders) *DeleteGate {
	return &DeleteGate{repo: repo}
}

// Request stages id, replacing any earlier staged id, and returns the
// confirmation prompt.
func (g *DeleteGate) Request(id string) string {
	g.mu.Lock()
	g.pending = id
	g.mu.Unlock()
	return ConfirmDeletePrompt(id)
}

func ConfirmDeletePrompt(id string) string {
	return fmt.Sprintf("Sei sicuro di voler eliminare l'ordine %s? L'azione è irreversibile.", id)
}

func (g *DeleteGate) Pending() (string, bool) {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.pending, g.pending != ""
}

// Confirm deletes id if it is the staged one. Any other id, or nothing
// staged, yields ErrNothingPending and leaves the staged id in place.
func (g *DeleteGate) Confirm(id string) error {
	g.mu.Lock()
	if g.pending == "" || g.pending != id {
		g.mu.Unlock()
		return ErrNothingPending
	}
	g.pending = ""
	g.mu.Unlock()

	g.repo.Delete(id)
	return nil
}

func (g *DeleteGate) Cancel() {
	g.mu.Lock()
	g.pending = ""
	g.mu.Unlock()
}
