package store

import (
	"github.com/storesim-xyz/go-storesim/catalog"
	"github.com/storesim-xyz/go-storesim/competitor"
	"github.com/storesim-xyz/go-storesim/crisis"
	"github.com/storesim-xyz/go-storesim/market"
	"github.com/storesim-xyz/go-storesim/supply"
)

// SpoilageReport records one product's losses in the daily sweep.
type SpoilageReport struct {
	Product  string
	Quantity int
	CostLost float64
}

// DaySummary is the settlement output for one simulated day.
type DaySummary struct {
	Day int

	Revenue      float64
	Profit       float64
	SpoilageCost float64
	UnitsSold    int
	UnitsSpoiled int

	Cash               float64
	AccountsPayable    float64
	PayablesPaid       float64
	CashFlowCrisis     bool
	CrisisResponseCash float64

	Inventory       map[string]int
	SpoilageReports []SpoilageReport

	CompetitorReactions []competitor.Reaction
	WarIntensity        float64
	CompetitorStrategy  competitor.Strategy
	RevengeMode         bool

	Market market.Event

	DeliveryOutcomes  []supply.Outcome
	PendingDeliveries int

	NewCrises      []crisis.Event
	ResolvedCrises []crisis.Event
	ActiveCrises   int
	CrisisCost     float64
}

// EndDay settles the day in fixed order: spoilage sweep, financials,
// delivery resolution, payables, the rival's response, crisis advance,
// counter reset, day increment.
func (e *Engine) EndDay() DaySummary {
	s := DaySummary{Day: e.state.Day}

	// Spoilage before profit.
	s.SpoilageReports = e.sweepSpoilage()

	var cost float64
	for _, p := range e.cat.Products() {
		sold := e.state.DailySales[p.Name]
		s.Revenue += float64(sold) * e.prices[p.Name]
		cost += float64(sold) * p.Cost
		s.SpoilageCost += float64(e.state.DailySpoilage[p.Name]) * p.Cost
		s.UnitsSold += sold
		s.UnitsSpoiled += e.state.DailySpoilage[p.Name]
	}
	s.Profit = s.Revenue - cost - s.SpoilageCost

	e.state.Cash += s.Revenue
	e.state.TotalRevenue += s.Revenue
	e.state.TotalProfit += s.Profit

	s.DeliveryOutcomes = e.resolveDeliveries()
	s.PayablesPaid, s.CashFlowCrisis = e.settlePayables()
	s.CompetitorReactions = e.rival.React(e.prices, e.state.Day)
	s.WarIntensity = e.rival.WarIntensity()
	s.CompetitorStrategy = e.rival.Strategy()
	s.RevengeMode = e.rival.RevengeMode()

	s.Market = e.markets.Conditions(e.state.Day)
	s.NewCrises, s.ResolvedCrises, s.CrisisCost = e.advanceCrises(s.Market)
	s.ActiveCrises = len(e.state.ActiveCrises)

	s.Cash = e.state.Cash
	s.AccountsPayable = e.state.AccountsPayable
	s.CrisisResponseCash = e.state.CrisisResponseCash
	s.PendingDeliveries = len(e.state.Pending)
	s.Inventory = make(map[string]int, e.cat.Len())
	for _, name := range e.cat.Names() {
		s.Inventory[name] = e.state.Ledger.Quantity(name)
	}

	e.state.resetDailyCounters()
	e.state.Day++
	return s
}

func (e *Engine) sweepSpoilage() []SpoilageReport {
	spoiled := e.state.Ledger.SweepSpoilage(e.state.Day)

	var reports []SpoilageReport
	var total float64
	for _, name := range e.state.Ledger.Products() {
		qty := spoiled[name]
		if qty == 0 {
			continue
		}
		p, _ := e.cat.Product(name)
		lost := float64(qty) * p.Cost
		total += lost
		e.state.DailySpoilage[name] += qty
		reports = append(reports, SpoilageReport{Product: name, Quantity: qty, CostLost: lost})
	}
	e.state.TotalSpoilageCost += total
	return reports
}

// resolveDeliveries runs the reliability trial on every due delivery.
// Arrivals become batches expiring shelf-life days from now; failures
// reverse the payment or payable.
func (e *Engine) resolveDeliveries() []supply.Outcome {
	remaining, outcomes := supply.ResolveDue(e.rng, e.cat, e.state.Day, e.state.Pending, e.state.ActiveCrises)
	e.state.Pending = remaining

	for _, out := range outcomes {
		d := out.Delivery
		if out.Delivered {
			p, _ := e.cat.Product(d.Product)
			e.state.Ledger.AddBatch(d.Product, d.Quantity, e.state.Day, expirationDay(p, e.state.Day))
			continue
		}
		if d.Terms == catalog.PayNow {
			e.state.Cash += d.TotalCost
		} else {
			e.state.AccountsPayable -= d.TotalCost
			if e.state.AccountsPayable < 0 {
				e.state.AccountsPayable = 0
			}
		}
	}
	return outcomes
}

// settlePayables pays the outstanding balance in full when cash covers
// it. There is no partial payment: a shortfall leaves the whole balance
// outstanding and flags a cash-flow crisis.
func (e *Engine) settlePayables() (paid float64, cashFlowCrisis bool) {
	if e.state.AccountsPayable <= 0 {
		return 0, false
	}
	if e.state.AccountsPayable <= e.state.Cash {
		paid = e.state.AccountsPayable
		e.state.Cash -= paid
		e.state.AccountsPayable = 0
		return paid, false
	}
	return 0, true
}

// advanceCrises spawns new crises, ages every active one (including
// today's arrivals), and debits the daily crisis cost.
func (e *Engine) advanceCrises(ev market.Event) (spawned, resolved []crisis.Event, dailyCost float64) {
	spawned = e.crises.Generate(e.state.Day, e.state.ActiveCrises, ev)
	e.state.ActiveCrises = append(e.state.ActiveCrises, spawned...)

	up := e.crises.UpdateActive(e.state.ActiveCrises)
	e.state.ActiveCrises = up.Ongoing
	e.state.Cash -= up.DailyCost
	return spawned, up.Resolved, up.DailyCost
}
