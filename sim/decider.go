package sim

import "github.com/storesim-xyz/go-storesim/store"

// Decision is one day's plan: price changes and restock orders. Nil maps
// mean no change.
type Decision struct {
	Prices map[string]float64
	Orders map[string]int
}

// Decider produces a daily decision from the day-start snapshot.
type Decider interface {
	Decide(snap store.Snapshot) Decision
}

// DeciderFunc adapts a function to the Decider interface.
type DeciderFunc func(snap store.Snapshot) Decision

func (f DeciderFunc) Decide(snap store.Snapshot) Decision { return f(snap) }

// HoldAndRestock is the fallback strategy: keep prices where they are and
// reorder a fixed quantity of anything stocked out.
type HoldAndRestock struct {
	Quantity int
}

// Decide orders Quantity units of each stocked-out product that has no
// delivery already in transit.
func (h HoldAndRestock) Decide(snap store.Snapshot) Decision {
	qty := h.Quantity
	if qty <= 0 {
		qty = 5
	}

	inTransit := make(map[string]bool, len(snap.Pending))
	for _, d := range snap.Pending {
		inTransit[d.Product] = true
	}

	orders := make(map[string]int)
	for _, name := range snap.Stockouts {
		if inTransit[name] {
			continue
		}
		orders[name] = qty
	}
	return Decision{Orders: orders}
}
