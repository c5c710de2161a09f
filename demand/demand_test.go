package demand

import (
	"math/rand"
	"testing"

	"github.com/storesim-xyz/go-storesim/catalog"
	"github.com/storesim-xyz/go-storesim/inventory"
	"github.com/storesim-xyz/go-storesim/market"
)

func flatMultipliers(c *catalog.Catalog) map[string]float64 {
	m := make(map[string]float64)
	for _, name := range c.Names() {
		m[name] = 1.0
	}
	return m
}

func stockedLedger(c *catalog.Catalog, qty int) *inventory.Ledger {
	l := inventory.NewLedger(c.Names())
	for _, name := range c.Names() {
		l.AddBatch(name, qty, 0, 0)
	}
	return l
}

func TestBargainHuntersMostlyBuy(t *testing.T) {
	cat := catalog.Default()
	rng := rand.New(rand.NewSource(42))
	s := NewSimulator(rng, cat)
	mult := flatMultipliers(cat)

	// Our $1.00 against the rival's $2.00: price-sensitive customers buy
	// at 0.95 probability. Over repeated trials of 20 single-pick
	// customers, average purchases must come out near 19.
	ourPrices := map[string]float64{}
	rivalPrices := map[string]float64{}
	for _, name := range cat.Names() {
		ourPrices[name] = 1.00
		rivalPrices[name] = 2.00
	}

	trials := 200
	total := 0
	for trial := 0; trial < trials; trial++ {
		ledger := stockedLedger(cat, 20)
		bought := 0
		for i := 0; i < 20; i++ {
			c := Customer{Segment: PriceSensitive, PriceSensitivity: 1.5}
			name := s.priceSensitiveChoice(ourPrices, rivalPrices, mult)
			if name == "" || ledger.Sellable(name, 1) == 0 {
				continue
			}
			if s.willBuy(c, name, ourPrices, rivalPrices, mult) {
				ledger.Consume(name, 1, 1)
				bought++
			}
		}
		total += bought
	}
	avg := float64(total) / float64(trials)
	if avg < 15 {
		t.Errorf("Expected at least 15 purchases per 20 bargain hunters on average, got %v", avg)
	}
}

func TestExpensiveStoreRarelySells(t *testing.T) {
	cat := catalog.Default()
	s := NewSimulator(rand.New(rand.NewSource(9)), cat)
	mult := flatMultipliers(cat)

	ourPrices := map[string]float64{}
	rivalPrices := map[string]float64{}
	for _, name := range cat.Names() {
		ourPrices[name] = 3.00
		rivalPrices[name] = 2.00
	}

	c := Customer{Segment: PriceSensitive, PriceSensitivity: 1.8}
	buys := 0
	for i := 0; i < 1000; i++ {
		if s.willBuy(c, "Coke", ourPrices, rivalPrices, mult) {
			buys++
		}
	}
	// Tier probability is 0.1 above a 1.1 ratio.
	if buys < 50 || buys > 200 {
		t.Errorf("Expected roughly 100/1000 buys at the 0.1 tier, got %d", buys)
	}
}

func TestBuyProbabilityCappedBySeasonalBoost(t *testing.T) {
	cat := catalog.Default()
	s := NewSimulator(rand.New(rand.NewSource(4)), cat)

	mult := flatMultipliers(cat)
	mult["Candy"] = 3.0 // Halloween-grade boost

	our := map[string]float64{"Candy": 1.00}
	rival := map[string]float64{"Candy": 2.00}
	c := Customer{Segment: PriceSensitive}

	// 0.95 x 3.0 caps at 0.98; over many rolls nearly every one buys.
	buys := 0
	for i := 0; i < 1000; i++ {
		if s.willBuy(c, "Candy", our, rival, mult) {
			buys++
		}
	}
	if buys < 950 {
		t.Errorf("Expected near-certain buys at capped probability, got %d/1000", buys)
	}
}

func TestBrandLoyalSticksToPreferred(t *testing.T) {
	cat := catalog.Default()
	s := NewSimulator(rand.New(rand.NewSource(17)), cat)
	mult := flatMultipliers(cat)
	ledger := stockedLedger(cat, 10)

	c := Customer{
		Segment:         BrandLoyal,
		LoyaltyStrength: 0.9,
		Preferred:       []string{"Gum"},
	}
	ev := market.Event{Day: 1, DemandMultiplier: 1.0}
	for i := 0; i < 50; i++ {
		name := s.brandLoyalChoice(c, ledger, ev, mult)
		if name != "Gum" {
			t.Fatalf("Expected preferred Gum while in stock, got %q", name)
		}
	}
}

func TestBrandLoyalSubstitution(t *testing.T) {
	cat := catalog.Default()
	s := NewSimulator(rand.New(rand.NewSource(21)), cat)
	mult := flatMultipliers(cat)

	// Preferred product out of stock; everything else stocked.
	ledger := stockedLedger(cat, 10)
	ledger.Consume("Gum", 10, 1)

	c := Customer{Segment: BrandLoyal, LoyaltyStrength: 0.8, Preferred: []string{"Gum"}}
	ev := market.Event{Day: 1, DemandMultiplier: 1.0}

	substituted, left := 0, 0
	for i := 0; i < 1000; i++ {
		name := s.brandLoyalChoice(c, ledger, ev, mult)
		if name == "" {
			left++
		} else {
			if name == "Gum" {
				t.Fatal("Substitute pick returned the out-of-stock preferred product")
			}
			substituted++
		}
	}
	// Substitution probability at multiplier 1.0 is 0.3.
	if substituted < 200 || substituted > 400 {
		t.Errorf("Expected roughly 300/1000 substitutions, got %d", substituted)
	}

	// The cap binds when the market runs hot.
	hot := market.Event{Day: 1, DemandMultiplier: 3.0}
	substituted = 0
	for i := 0; i < 1000; i++ {
		if s.brandLoyalChoice(c, ledger, hot, mult) != "" {
			substituted++
		}
	}
	if substituted < 500 || substituted > 700 {
		t.Errorf("Expected substitution capped near 600/1000, got %d", substituted)
	}
	_ = left
}

func TestPopulationScaling(t *testing.T) {
	cat := catalog.Default()
	s := NewSimulator(rand.New(rand.NewSource(33)), cat)

	cheap := map[string]float64{}
	pricey := map[string]float64{}
	rival := map[string]float64{}
	for _, name := range cat.Names() {
		rival[name] = 2.00
		cheap[name] = 1.50  // ratio 0.75
		pricey[name] = 2.50 // ratio 1.25
	}
	ev := market.Event{Day: 1, DemandMultiplier: 1.0}

	for i := 0; i < 200; i++ {
		if n := s.population(cheap, rival, ev); n < 6 || n > 28 {
			t.Fatalf("Cheap-store population out of bounds: %d", n)
		}
		if n := s.population(pricey, rival, ev); n < 6 || n > 17 {
			t.Fatalf("Pricey-store population out of bounds: %d", n)
		}
	}
}

func TestSimulateConsumesInventory(t *testing.T) {
	cat := catalog.Default()
	s := NewSimulator(rand.New(rand.NewSource(8)), cat)

	ledger := stockedLedger(cat, 5)
	before := ledger.TotalUnits()

	ourPrices := map[string]float64{}
	for _, p := range cat.Products() {
		ourPrices[p.Name] = p.Price
	}
	rival := map[string]float64{}
	for _, name := range cat.Names() {
		rival[name] = ourPrices[name] * 1.05
	}
	ev := market.Event{Day: 1, Season: catalog.Spring, DemandMultiplier: 1.0}

	res := s.Simulate(ourPrices, rival, ledger, ev, flatMultipliers(cat))

	sold := 0
	for _, n := range res.UnitsSold {
		sold += n
	}
	if before-ledger.TotalUnits() != sold {
		t.Errorf("Ledger shrank by %d but %d units sold", before-ledger.TotalUnits(), sold)
	}

	var revenue float64
	for name, n := range res.UnitsSold {
		revenue += float64(n) * ourPrices[name]
	}
	if diff := revenue - res.Revenue; diff > 1e-9 || diff < -1e-9 {
		t.Errorf("Revenue %v does not match units sold at posted prices %v", res.Revenue, revenue)
	}
}
