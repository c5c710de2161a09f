// Package store orchestrates the daily simulation cycle: price and order
// intake from a decision producer, customer traffic, delivery and payable
// settlement, the rival's pricing response, and crisis bookkeeping. The
// Engine owns the root State and is the only writer to it.
package store

import (
	"errors"
	"math/rand"

	"github.com/storesim-xyz/go-storesim/catalog"
	"github.com/storesim-xyz/go-storesim/competitor"
	"github.com/storesim-xyz/go-storesim/crisis"
	"github.com/storesim-xyz/go-storesim/demand"
	"github.com/storesim-xyz/go-storesim/inventory"
	"github.com/storesim-xyz/go-storesim/market"
	"github.com/storesim-xyz/go-storesim/supply"
)

// Config configures a new simulation engine.
type Config struct {
	Seed          int64
	StartingCash  float64
	StartingStock int // units per product on day one
	Catalog       *catalog.Catalog
}

// DefaultConfig returns the standard starting position: $150 cash and 8
// units of everything.
func DefaultConfig() Config {
	return Config{
		Seed:          1,
		StartingCash:  150.0,
		StartingStock: 8,
	}
}

// Engine runs the store simulation. Not safe for concurrent use.
type Engine struct {
	cat *catalog.Catalog
	rng *rand.Rand

	markets  *market.Generator
	crises   *crisis.Generator
	rival    *competitor.Engine
	shoppers *demand.Simulator

	state  State
	prices map[string]float64
}

// New creates an engine from a config. A nil catalog falls back to the
// default ten-product catalog.
func New(cfg Config) *Engine {
	cat := cfg.Catalog
	if cat == nil {
		cat = catalog.Default()
	}
	rng := rand.New(rand.NewSource(cfg.Seed))

	e := &Engine{
		cat:      cat,
		rng:      rng,
		markets:  market.NewGenerator(rng),
		crises:   crisis.NewGenerator(rng, cat),
		rival:    competitor.NewEngine(rng, cat),
		shoppers: demand.NewSimulator(rng, cat),
		state:    newState(cat.Names(), cfg.StartingCash),
		prices:   make(map[string]float64, cat.Len()),
	}
	for _, p := range cat.Products() {
		e.prices[p.Name] = p.Price
		if cfg.StartingStock > 0 {
			e.state.Ledger.AddBatch(p.Name, cfg.StartingStock, 0, expirationDay(p, 0))
		}
	}
	return e
}

// expirationDay computes when a batch received on a given day expires;
// zero means never.
func expirationDay(p catalog.Product, receivedDay int) int {
	if p.ShelfLifeDays == 0 {
		return 0
	}
	return receivedDay + p.ShelfLifeDays
}

// Day returns the current simulation day.
func (e *Engine) Day() int { return e.state.Day }

// Cash returns the current cash balance.
func (e *Engine) Cash() float64 { return e.state.Cash }

// AccountsPayable returns the outstanding payable balance.
func (e *Engine) AccountsPayable() float64 { return e.state.AccountsPayable }

// Ledger exposes the inventory ledger.
func (e *Engine) Ledger() *inventory.Ledger { return e.state.Ledger }

// TotalRevenue returns cumulative revenue since day one.
func (e *Engine) TotalRevenue() float64 { return e.state.TotalRevenue }

// TotalProfit returns cumulative profit since day one.
func (e *Engine) TotalProfit() float64 { return e.state.TotalProfit }

// TotalSpoilageCost returns cumulative spoilage losses since day one.
func (e *Engine) TotalSpoilageCost() float64 { return e.state.TotalSpoilageCost }

// Prices returns a copy of our current shelf prices.
func (e *Engine) Prices() map[string]float64 {
	out := make(map[string]float64, len(e.prices))
	for k, v := range e.prices {
		out[k] = v
	}
	return out
}

// CompetitorPrices returns a copy of the rival's current prices.
func (e *Engine) CompetitorPrices() map[string]float64 { return e.rival.Prices() }

// PendingDeliveries returns a copy of the in-transit orders.
func (e *Engine) PendingDeliveries() []supply.PendingDelivery {
	return append([]supply.PendingDelivery(nil), e.state.Pending...)
}

// ActiveCrises returns a copy of the active crisis list.
func (e *Engine) ActiveCrises() []crisis.Event {
	return append([]crisis.Event(nil), e.state.ActiveCrises...)
}

// AddCrisis injects a crisis event, for externally triggered disruptions.
func (e *Engine) AddCrisis(c crisis.Event) {
	e.state.ActiveCrises = append(e.state.ActiveCrises, c)
}

// SetPrices applies a price request. Each product is validated
// independently; the returned map holds an error per rejected product and
// accepted products take effect immediately. Prices below cost x 1.01 are
// rejected.
func (e *Engine) SetPrices(request map[string]float64) map[string]error {
	rejected := make(map[string]error)
	for _, name := range e.cat.Names() {
		price, ok := request[name]
		if !ok {
			continue
		}
		p, _ := e.cat.Product(name)
		min := p.Cost * 1.01
		if price < min {
			rejected[name] = &ValidationError{
				Product: name,
				Reason:  ReasonPriceBelowMinimum,
				Detail:  "minimum is cost x 1.01",
			}
			continue
		}
		e.prices[name] = price
	}
	for name := range request {
		if !e.cat.Has(name) {
			rejected[name] = &ValidationError{Product: name, Reason: ReasonUnknownProduct}
		}
	}
	return rejected
}

// OrderResult reports one product's order outcome.
type OrderResult struct {
	Supplier    string
	Quantity    int
	UnitCost    float64
	TotalCost   float64
	DeliveryDay int
	Terms       catalog.PaymentTerm
	Discounted  bool
	Err         error
}

// ProcessOrders places orders with the best available supplier per
// product. Pay-now orders debit cash immediately and are rejected when
// cash is short; pay-later orders accrue accounts payable. Successful
// orders join the pending delivery queue.
func (e *Engine) ProcessOrders(orders map[string]int) map[string]OrderResult {
	results := make(map[string]OrderResult, len(orders))
	for _, name := range e.cat.Names() {
		qty, ok := orders[name]
		if !ok {
			continue
		}
		results[name] = e.placeOrder(name, qty)
	}
	for name := range orders {
		if !e.cat.Has(name) {
			results[name] = OrderResult{Err: &ValidationError{Product: name, Reason: ReasonUnknownProduct}}
		}
	}
	return results
}

func (e *Engine) placeOrder(name string, qty int) OrderResult {
	if qty <= 0 {
		return OrderResult{Err: &ValidationError{Product: name, Reason: ReasonInvalidQuantity}}
	}

	sel, err := supply.SelectSupplier(e.cat, name, qty, e.state.ActiveCrises)
	if err != nil {
		return OrderResult{Err: err}
	}

	if sel.Supplier.Terms == catalog.PayNow {
		if sel.TotalCost > e.state.Cash {
			return OrderResult{Err: &InsufficientFundsError{
				Product: name, Need: sel.TotalCost, Have: e.state.Cash,
			}}
		}
		e.state.Cash -= sel.TotalCost
	} else {
		e.state.AccountsPayable += sel.TotalCost
	}

	d := supply.NewDelivery(sel, name, qty, e.state.Day)
	e.state.Pending = append(e.state.Pending, d)

	return OrderResult{
		Supplier:    sel.Supplier.Name,
		Quantity:    qty,
		UnitCost:    sel.UnitCost,
		TotalCost:   sel.TotalCost,
		DeliveryDay: d.DeliveryDay,
		Terms:       sel.Supplier.Terms,
		Discounted:  sel.Discounted,
	}
}

// SimulateCustomers runs the day's customer traffic against current
// prices and stock, accumulating the results into the daily counters.
func (e *Engine) SimulateCustomers() demand.Result {
	ev := e.markets.Conditions(e.state.Day)
	multipliers := market.ProductMultipliers(e.cat, ev)

	res := e.shoppers.Simulate(e.prices, e.rival.Prices(), e.state.Ledger, ev, multipliers)
	for name, sold := range res.UnitsSold {
		e.state.DailySales[name] += sold
	}
	return res
}

// IsUnavailableErr reports whether an order failed because every supplier
// was crisis-excluded.
func IsUnavailableErr(err error) bool {
	var unavailable *supply.UnavailableError
	return errors.As(err, &unavailable)
}
