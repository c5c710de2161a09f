package store

import (
	"github.com/storesim-xyz/go-storesim/crisis"
	"github.com/storesim-xyz/go-storesim/inventory"
	"github.com/storesim-xyz/go-storesim/supply"
)

// State is the root aggregate of the simulation. Components mutate it only
// through the engine's operations.
type State struct {
	Day  int
	Cash float64

	// AccountsPayable holds unpaid net-30 obligations plus loan interest.
	AccountsPayable float64
	// CrisisResponseCash tracks emergency loan proceeds separately so
	// reports can distinguish earned cash from borrowed cash.
	CrisisResponseCash float64

	Ledger *inventory.Ledger

	DailySales    map[string]int
	DailySpoilage map[string]int

	TotalRevenue      float64
	TotalProfit       float64
	TotalSpoilageCost float64

	Pending      []supply.PendingDelivery
	ActiveCrises []crisis.Event
}

func newState(products []string, startingCash float64) State {
	s := State{
		Day:           1,
		Cash:          startingCash,
		Ledger:        inventory.NewLedger(products),
		DailySales:    make(map[string]int, len(products)),
		DailySpoilage: make(map[string]int, len(products)),
	}
	for _, name := range products {
		s.DailySales[name] = 0
		s.DailySpoilage[name] = 0
	}
	return s
}

func (s *State) resetDailyCounters() {
	for name := range s.DailySales {
		s.DailySales[name] = 0
	}
	for name := range s.DailySpoilage {
		s.DailySpoilage[name] = 0
	}
}
