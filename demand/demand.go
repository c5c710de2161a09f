// Package demand simulates the store's daily customer traffic. The
// population size follows the day's market conditions and how our prices
// compare to the rival's; each customer belongs to a segment (price
// sensitive or brand loyal) and makes one to three seasonally weighted
// picks, each finalized by a price-ratio-tiered buy probability.
package demand

import (
	"math/rand"

	"github.com/storesim-xyz/go-storesim/catalog"
	"github.com/storesim-xyz/go-storesim/inventory"
	"github.com/storesim-xyz/go-storesim/market"
)

// Segment classifies a customer's shopping psychology.
type Segment string

const (
	PriceSensitive Segment = "price_sensitive"
	BrandLoyal     Segment = "brand_loyal"
)

// Customer is an ephemeral daily shopper.
type Customer struct {
	Segment          Segment
	PriceSensitivity float64
	LoyaltyStrength  float64
	Preferred        []string // brand-loyal only
}

// Purchase is what one customer bought.
type Purchase struct {
	Products   []string
	TotalSpent float64
	Segment    Segment
}

// Result aggregates a day of customer traffic.
type Result struct {
	Population int
	Purchases  []Purchase
	UnitsSold  map[string]int
	Revenue    float64
}

// Simulator runs daily customer traffic against the inventory ledger.
type Simulator struct {
	rng *rand.Rand
	cat *catalog.Catalog
}

// NewSimulator creates a demand simulator.
func NewSimulator(rng *rand.Rand, cat *catalog.Catalog) *Simulator {
	return &Simulator{rng: rng, cat: cat}
}

// Simulate runs one day of customers. Sales consume sellable units from
// the ledger as they happen; multipliers are the day's per-product demand
// multipliers from the market package.
func (s *Simulator) Simulate(ourPrices, rivalPrices map[string]float64, ledger *inventory.Ledger,
	ev market.Event, multipliers map[string]float64) Result {

	res := Result{UnitsSold: make(map[string]int)}
	res.Population = s.population(ourPrices, rivalPrices, ev)

	for i := 0; i < res.Population; i++ {
		c := s.newCustomer()
		p := s.shop(c, ourPrices, rivalPrices, ledger, ev, multipliers)
		if len(p.Products) > 0 {
			res.Purchases = append(res.Purchases, p)
			res.Revenue += p.TotalSpent
			for _, name := range p.Products {
				res.UnitsSold[name]++
			}
		}
	}
	return res
}

// population sizes the day's crowd: a 12-22 base scaled by the aggregate
// demand multiplier, then nudged by our overall price competitiveness.
func (s *Simulator) population(ourPrices, rivalPrices map[string]float64, ev market.Event) int {
	base := 12 + s.rng.Intn(11)
	n := int(float64(base) * ev.DemandMultiplier)

	ratio := s.averagePriceRatio(ourPrices, rivalPrices)
	switch {
	case ratio > 1.1:
		n = int(float64(n) * 0.8)
		if n < 6 {
			n = 6
		}
	case ratio < 0.9:
		n = int(float64(n) * 1.3)
		if n > 28 {
			n = 28
		}
	}
	return n
}

func (s *Simulator) averagePriceRatio(ourPrices, rivalPrices map[string]float64) float64 {
	sum, count := 0.0, 0
	for _, name := range s.cat.Names() {
		our, okA := ourPrices[name]
		rival, okB := rivalPrices[name]
		if !okA || !okB || rival == 0 {
			continue
		}
		sum += our / rival
		count++
	}
	if count == 0 {
		return 1.0
	}
	return sum / float64(count)
}

func (s *Simulator) newCustomer() Customer {
	if s.rng.Float64() < 0.6 {
		return Customer{
			Segment:          PriceSensitive,
			PriceSensitivity: s.uniform(1.2, 2.0),
		}
	}
	names := s.cat.Names()
	count := 1 + s.rng.Intn(2)
	idx := s.rng.Perm(len(names))[:count]
	preferred := make([]string, count)
	for i, j := range idx {
		preferred[i] = names[j]
	}
	return Customer{
		Segment:          BrandLoyal,
		PriceSensitivity: s.uniform(0.3, 0.7),
		LoyaltyStrength:  s.uniform(0.7, 0.95),
		Preferred:        preferred,
	}
}

func (s *Simulator) shop(c Customer, ourPrices, rivalPrices map[string]float64,
	ledger *inventory.Ledger, ev market.Event, multipliers map[string]float64) Purchase {

	p := Purchase{Segment: c.Segment}
	picks := 1 + s.rng.Intn(3)
	for i := 0; i < picks; i++ {
		var name string
		if c.Segment == PriceSensitive {
			name = s.priceSensitiveChoice(ourPrices, rivalPrices, multipliers)
		} else {
			name = s.brandLoyalChoice(c, ledger, ev, multipliers)
		}
		if name == "" || ledger.Sellable(name, ev.Day) == 0 {
			continue
		}
		if !s.willBuy(c, name, ourPrices, rivalPrices, multipliers) {
			continue
		}
		if ledger.Consume(name, 1, ev.Day) == 1 {
			p.Products = append(p.Products, name)
			p.TotalSpent += ourPrices[name]
		}
	}
	return p
}

// priceSensitiveChoice ranks products priced within 5% of the rival by
// seasonally boosted savings. 70% of the time it samples the top two
// deals; otherwise any deal. With no deals at all it falls back to the
// cheapest seasonally weighted product.
func (s *Simulator) priceSensitiveChoice(ourPrices, rivalPrices, multipliers map[string]float64) string {
	type deal struct {
		name    string
		savings float64
	}
	var deals []deal
	for _, name := range s.cat.Names() {
		our, rival := ourPrices[name], rivalPrices[name]
		if rival == 0 || our > rival*1.05 {
			continue
		}
		deals = append(deals, deal{name, (rival - our) * multipliers[name]})
	}

	if len(deals) == 0 {
		best := ""
		bestValue := 0.0
		for _, name := range s.cat.Names() {
			m := multipliers[name]
			if m == 0 {
				m = 1
			}
			value := ourPrices[name] / m
			if best == "" || value < bestValue {
				best, bestValue = name, value
			}
		}
		return best
	}

	// Insertion sort by savings, stable on catalog order.
	for i := 1; i < len(deals); i++ {
		for j := i; j > 0 && deals[j].savings > deals[j-1].savings; j-- {
			deals[j], deals[j-1] = deals[j-1], deals[j]
		}
	}
	if s.rng.Float64() < 0.7 && len(deals) >= 2 {
		return deals[s.rng.Intn(2)].name
	}
	return deals[s.rng.Intn(len(deals))].name
}

// brandLoyalChoice picks among in-stock preferred products, seasonally
// weighted. When none are in stock the customer substitutes with a
// market-scaled probability, else leaves.
func (s *Simulator) brandLoyalChoice(c Customer, ledger *inventory.Ledger,
	ev market.Event, multipliers map[string]float64) string {

	var available []string
	for _, name := range c.Preferred {
		if ledger.Sellable(name, ev.Day) > 0 {
			available = append(available, name)
		}
	}
	if len(available) > 0 {
		return s.weightedPick(available, multipliers)
	}

	substitution := 0.3 * ev.DemandMultiplier
	if substitution > 0.6 {
		substitution = 0.6
	}
	if s.rng.Float64() >= substitution {
		return ""
	}
	var inStock []string
	for _, name := range s.cat.Names() {
		if ledger.Sellable(name, ev.Day) > 0 {
			inStock = append(inStock, name)
		}
	}
	if len(inStock) == 0 {
		return ""
	}
	return s.weightedPick(inStock, multipliers)
}

func (s *Simulator) weightedPick(names []string, weights map[string]float64) string {
	total := 0.0
	for _, name := range names {
		w := weights[name]
		if w <= 0 {
			w = 1
		}
		total += w
	}
	r := s.rng.Float64() * total
	for _, name := range names {
		w := weights[name]
		if w <= 0 {
			w = 1
		}
		r -= w
		if r <= 0 {
			return name
		}
	}
	return names[len(names)-1]
}

// willBuy finalizes a pick with the segment's price-ratio-tiered buy
// probability, boosted by the product's demand multiplier and capped at
// 0.98.
func (s *Simulator) willBuy(c Customer, name string, ourPrices, rivalPrices, multipliers map[string]float64) bool {
	rival := rivalPrices[name]
	if rival == 0 {
		rival = ourPrices[name]
	}
	ratio := ourPrices[name] / rival

	var prob float64
	if c.Segment == PriceSensitive {
		switch {
		case ratio <= 0.95:
			prob = 0.95
		case ratio <= 1.0:
			prob = 0.85
		case ratio <= 1.1:
			prob = 0.4
		default:
			prob = 0.1
		}
	} else if c.prefers(name) {
		if ratio <= 1.2 {
			prob = 0.7 + c.LoyaltyStrength*0.3
		} else {
			prob = c.LoyaltyStrength * 0.5
		}
	} else {
		prob = 0.8 - ratio
		if prob < 0.1 {
			prob = 0.1
		}
	}

	boost := multipliers[name]
	if boost > 0 {
		prob *= boost
	}
	if prob > 0.98 {
		prob = 0.98
	}
	return s.rng.Float64() < prob
}

func (c Customer) prefers(name string) bool {
	for _, p := range c.Preferred {
		if p == name {
			return true
		}
	}
	return false
}

func (s *Simulator) uniform(lo, hi float64) float64 {
	return lo + s.rng.Float64()*(hi-lo)
}
