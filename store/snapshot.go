package store

import (
	"github.com/storesim-xyz/go-storesim/catalog"
	"github.com/storesim-xyz/go-storesim/competitor"
	"github.com/storesim-xyz/go-storesim/crisis"
	"github.com/storesim-xyz/go-storesim/inventory"
	"github.com/storesim-xyz/go-storesim/supply"
)

// ProductView is one product's line in a snapshot.
type ProductView struct {
	Name            string
	Cost            float64
	Price           float64
	CompetitorPrice float64
	Category        catalog.Category
	ShelfLifeDays   int
	Stock           int
	Sellable        int
}

// SupplierView is a supplier's current standing with crisis effects
// applied.
type SupplierView struct {
	Name                string
	Product             string
	BaseReliability     float64
	AdjustedReliability float64
	LeadTimeDays        int
	EffectiveLeadDays   int
	Available           bool
	CrisisIDs           []string
}

// Snapshot is the observable state of the store at the start of a day,
// the input a decision producer plans against.
type Snapshot struct {
	Day               int
	Cash              float64
	AccountsPayable   float64
	TotalSpoilageCost float64

	Products  []ProductView
	Stockouts []string
	Expiring  []inventory.Warning

	Suppliers []SupplierView
	Pending   []supply.PendingDelivery

	ActiveCrises     []crisis.Event
	EmergencyActions []crisis.Action

	WarIntensity       float64
	CompetitorStrategy competitor.Strategy
}

// Snapshot assembles the day-start view. Product and supplier rows follow
// catalog order.
func (e *Engine) Snapshot() Snapshot {
	day := e.state.Day
	rivalPrices := e.rival.Prices()

	snap := Snapshot{
		Day:                day,
		Cash:               e.state.Cash,
		AccountsPayable:    e.state.AccountsPayable,
		TotalSpoilageCost:  e.state.TotalSpoilageCost,
		Stockouts:          e.state.Ledger.Stockouts(day),
		Expiring:           e.state.Ledger.ExpiringSoon(day, 1),
		Pending:            e.PendingDeliveries(),
		ActiveCrises:       e.ActiveCrises(),
		EmergencyActions:   availableActions(e.state.ActiveCrises),
		WarIntensity:       e.rival.WarIntensity(),
		CompetitorStrategy: e.rival.Strategy(),
	}

	for _, p := range e.cat.Products() {
		snap.Products = append(snap.Products, ProductView{
			Name:            p.Name,
			Cost:            p.Cost,
			Price:           e.prices[p.Name],
			CompetitorPrice: rivalPrices[p.Name],
			Category:        p.Category,
			ShelfLifeDays:   p.ShelfLifeDays,
			Stock:           e.state.Ledger.Quantity(p.Name),
			Sellable:        e.state.Ledger.Sellable(p.Name, day),
		})
		for _, sup := range e.cat.Suppliers(p.Name) {
			fx := crisis.EffectsOn(e.state.ActiveCrises, p.Name, sup)
			snap.Suppliers = append(snap.Suppliers, SupplierView{
				Name:                sup.Name,
				Product:             p.Name,
				BaseReliability:     sup.Reliability,
				AdjustedReliability: fx.AdjustedReliability(sup.Reliability),
				LeadTimeDays:        sup.LeadTimeDays,
				EffectiveLeadDays:   sup.LeadTimeDays + fx.DelayDays,
				Available:           fx.Available,
				CrisisIDs:           fx.CrisisIDs,
			})
		}
	}
	return snap
}

// availableActions unions the emergency actions offered by the active
// crises, preserving first-seen order.
func availableActions(active []crisis.Event) []crisis.Action {
	var out []crisis.Action
	seen := make(map[crisis.Action]bool)
	for _, c := range active {
		for _, a := range c.EmergencyActions {
			if seen[a] {
				continue
			}
			seen[a] = true
			out = append(out, a)
		}
	}
	return out
}
