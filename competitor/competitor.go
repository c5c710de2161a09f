// Package competitor implements the rival store's pricing engine. Each day
// it runs four phases against our posted prices: a strategy resample
// driven by war intensity, reactive cuts answering our undercuts,
// proactive attacks it initiates itself, and psychological tactics when it
// is in that mood. Sustained undercutting flips it into revenge mode.
//
// All price floors are expressed as cost multipliers in a Floors config so
// the reactive and proactive phases can be tuned independently.
package competitor

import (
	"fmt"
	"math"
	"math/rand"

	"github.com/storesim-xyz/go-storesim/catalog"
)

// Strategy is the rival's posture for the day.
type Strategy string

const (
	Aggressive    Strategy = "aggressive"
	Defensive     Strategy = "defensive"
	Predatory     Strategy = "predatory"
	Psychological Strategy = "psychological"
	Balanced      Strategy = "balanced"
)

// Floors sets the minimum price, as a multiple of product cost, each phase
// will cut to.
type Floors struct {
	ReactiveWar  float64 // reactive cuts while the war is hot
	ReactiveCalm float64 // reactive cuts otherwise
	Predatory    float64 // proactive cuts under a predatory strategy
	Aggressive   float64 // proactive cuts under an aggressive strategy
	Probe        float64 // proactive cuts under any other strategy
	LossLeader   float64 // psychological loss-leader pricing
	Chaos        float64 // psychological chaotic walk
}

// DefaultFloors returns the standard floor configuration.
func DefaultFloors() Floors {
	return Floors{
		ReactiveWar:  1.25,
		ReactiveCalm: 1.4,
		Predatory:    1.25,
		Aggressive:   1.3,
		Probe:        1.4,
		LossLeader:   1.25,
		Chaos:        1.25,
	}
}

// Reaction is one price move by the rival.
type Reaction struct {
	Product string
	From    float64
	To      float64
	Tag     string
}

func (r Reaction) String() string {
	return fmt.Sprintf("%s: $%.2f -> $%.2f (%s)", r.Product, r.From, r.To, r.Tag)
}

// DayLog records the rival's moves for one day.
type DayLog struct {
	Day       int
	Reactions []Reaction
	Intensity float64
	Strategy  Strategy
	Revenge   bool
}

// Engine is the rival store's pricing state machine. Not safe for
// concurrent use.
type Engine struct {
	rng    *rand.Rand
	cat    *catalog.Catalog
	floors Floors

	prices          map[string]float64
	strategy        Strategy
	warIntensity    float64 // 0..10
	revenge         bool
	undercutTotal   float64 // cumulative dollars we have undercut by
	daysSinceAttack int
	log             []DayLog
}

var initialPrices = map[string]float64{
	"Coke": 2.10, "Water": 1.80, "Chips": 1.95, "Crackers": 1.85,
	"Sandwiches": 4.20, "Bananas": 1.15, "Ice Cream": 3.40,
	"Candy": 2.20, "Gum": 2.05, "Chocolate": 2.50,
}

// NewEngine creates the rival engine with default floors and its standard
// opening prices. Products without an entry in the opening table start at
// the catalog price.
func NewEngine(rng *rand.Rand, cat *catalog.Catalog) *Engine {
	e := &Engine{
		rng:      rng,
		cat:      cat,
		floors:   DefaultFloors(),
		prices:   make(map[string]float64, cat.Len()),
		strategy: Balanced,
	}
	for _, p := range cat.Products() {
		if price, ok := initialPrices[p.Name]; ok {
			e.prices[p.Name] = price
		} else {
			e.prices[p.Name] = p.Price
		}
	}
	return e
}

// SetFloors replaces the floor configuration.
func (e *Engine) SetFloors(f Floors) { e.floors = f }

// Prices returns a copy of the rival's current prices.
func (e *Engine) Prices() map[string]float64 {
	out := make(map[string]float64, len(e.prices))
	for k, v := range e.prices {
		out[k] = v
	}
	return out
}

// Price returns the rival's price for one product.
func (e *Engine) Price(product string) float64 { return e.prices[product] }

// WarIntensity returns the current 0-10 price-war intensity.
func (e *Engine) WarIntensity() float64 { return e.warIntensity }

// Strategy returns the rival's posture for the current day.
func (e *Engine) Strategy() Strategy { return e.strategy }

// RevengeMode reports whether sustained undercutting has enraged the rival.
func (e *Engine) RevengeMode() bool { return e.revenge }

// Log returns the recorded daily move history.
func (e *Engine) Log() []DayLog {
	return append([]DayLog(nil), e.log...)
}

// React runs the rival's daily decision cycle against our prices and
// returns its moves.
func (e *Engine) React(ourPrices map[string]float64, day int) []Reaction {
	e.resampleStrategy()
	e.trackUndercuts(ourPrices)

	var reactions []Reaction
	reactions = append(reactions, e.reactive(ourPrices)...)
	reactions = append(reactions, e.proactive(ourPrices)...)
	reactions = append(reactions, e.psychological()...)

	e.updateWarDynamics(reactions)

	if len(reactions) > 0 {
		e.log = append(e.log, DayLog{
			Day:       day,
			Reactions: reactions,
			Intensity: e.warIntensity,
			Strategy:  e.strategy,
			Revenge:   e.revenge,
		})
	}
	e.daysSinceAttack++
	return reactions
}

func (e *Engine) resampleStrategy() {
	switch {
	case e.warIntensity >= 8:
		e.strategy = e.pick(Predatory, Psychological, Aggressive)
	case e.warIntensity >= 5:
		e.strategy = e.pick(Aggressive, Predatory, Psychological)
	case e.warIntensity >= 3:
		e.strategy = e.pick(Aggressive, Balanced, Defensive)
	default:
		if e.rng.Float64() < 0.15 {
			e.strategy = Aggressive
		} else {
			e.strategy = e.pick(Balanced, Defensive)
		}
	}
}

// trackUndercuts accumulates how far below the rival we are pricing.
// Crossing one dollar of cumulative undercut flips revenge mode on.
func (e *Engine) trackUndercuts(ourPrices map[string]float64) {
	for _, name := range e.cat.Names() {
		our, ok := ourPrices[name]
		if !ok {
			continue
		}
		if gap := e.prices[name] - our; gap > 0 {
			e.undercutTotal += gap
		}
	}
	if e.undercutTotal > 1.0 && !e.revenge {
		e.revenge = true
	}
}

var strategyReactionMult = map[Strategy]float64{
	Aggressive:    1.2,
	Predatory:     1.5,
	Psychological: 1.0,
	Defensive:     0.7,
	Balanced:      1.0,
}

func (e *Engine) reactive(ourPrices map[string]float64) []Reaction {
	var reactions []Reaction
	for _, p := range e.cat.Products() {
		our, ok := ourPrices[p.Name]
		if !ok {
			continue
		}
		gap := e.prices[p.Name] - our
		if gap <= 0 {
			continue
		}

		var chance, cut float64
		switch {
		case gap > 0.20:
			chance, cut = 0.95, 0.8
		case gap > 0.15:
			chance, cut = 0.85, 0.7
		case gap > 0.10:
			chance, cut = 0.70, 0.6
		case gap > 0.05:
			chance, cut = 0.50, 0.5
		default:
			chance, cut = 0.25, 0.4
		}
		chance *= strategyReactionMult[e.strategy]
		if e.revenge {
			chance = math.Min(0.98, chance*1.5)
			cut = math.Min(0.95, cut*1.3)
		}
		chance += e.warIntensity * 0.08
		chance = math.Min(0.98, chance)

		if e.rng.Float64() >= chance {
			continue
		}

		drop := gap * cut
		if e.strategy == Predatory && e.rng.Float64() < 0.4 {
			drop += e.uniform(0.01, 0.08)
		}
		newPrice := e.prices[p.Name] - drop

		floor := p.Cost * e.floors.ReactiveCalm
		if e.warIntensity >= 7 {
			floor = p.Cost * e.floors.ReactiveWar
		}
		newPrice = math.Max(floor, newPrice)

		if r, moved := e.move(p.Name, newPrice, reactiveTag(drop)); moved {
			reactions = append(reactions, r)
		}
	}
	return reactions
}

func reactiveTag(drop float64) string {
	switch {
	case drop > 0.15:
		return "nuclear strike"
	case drop > 0.10:
		return "aggressive assault"
	case drop > 0.05:
		return "fierce counter"
	default:
		return "quick strike"
	}
}

var strategyAttackChance = map[Strategy]float64{
	Aggressive:    0.35,
	Predatory:     0.45,
	Psychological: 0.25,
	Defensive:     0.05,
	Balanced:      0.15,
}

func (e *Engine) proactive(ourPrices map[string]float64) []Reaction {
	chance := strategyAttackChance[e.strategy]
	chance += float64(e.daysSinceAttack) * 0.05
	if e.revenge {
		chance *= 1.8
	}
	if e.rng.Float64() >= chance {
		return nil
	}

	var reactions []Reaction
	targets := e.sampleProducts(1 + e.rng.Intn(3))
	for _, name := range targets {
		p, _ := e.cat.Product(name)
		old := e.prices[name]

		var newPrice float64
		switch e.strategy {
		case Predatory:
			newPrice = math.Max(p.Cost*e.floors.Predatory, old*0.85)
		case Aggressive:
			newPrice = math.Max(p.Cost*e.floors.Aggressive, old*0.9)
		default:
			newPrice = math.Max(p.Cost*e.floors.Probe, old*0.95)
		}

		// Sometimes aim to land just under our price instead.
		if our, ok := ourPrices[name]; ok && our < old && e.rng.Float64() < 0.6 {
			newPrice = math.Max(newPrice, our-e.uniform(0.01, 0.05))
		}

		tag := "proactive strike"
		if e.strategy == Predatory {
			tag = "surprise attack"
		}
		if r, moved := e.move(name, newPrice, tag); moved {
			reactions = append(reactions, r)
		}
	}
	if len(reactions) > 0 {
		e.daysSinceAttack = 0
	}
	return reactions
}

func (e *Engine) psychological() []Reaction {
	if e.strategy != Psychological {
		return nil
	}
	if e.rng.Float64() >= 0.3 {
		return nil
	}

	var reactions []Reaction
	switch e.rng.Intn(3) {
	case 0: // feign weakness by raising prices
		for _, name := range e.sampleProducts(1 + e.rng.Intn(2)) {
			p, _ := e.cat.Product(name)
			newPrice := math.Min(e.prices[name]*1.1, p.Cost*2.0)
			if r, moved := e.move(name, newPrice, "fake retreat"); moved {
				reactions = append(reactions, r)
			}
		}
	case 1: // one product at a razor-thin margin
		names := e.cat.Names()
		name := names[e.rng.Intn(len(names))]
		p, _ := e.cat.Product(name)
		if r, moved := e.move(name, p.Cost*e.floors.LossLeader, "loss leader"); moved {
			reactions = append(reactions, r)
		}
	case 2: // chaotic walk across the shelf
		for _, p := range e.cat.Products() {
			if e.rng.Float64() >= 0.4 {
				continue
			}
			change := e.uniform(-0.08, 0.08)
			newPrice := math.Max(p.Cost*e.floors.Chaos, e.prices[p.Name]+change)
			if r, moved := e.move(p.Name, newPrice, "chaos"); moved {
				reactions = append(reactions, r)
			}
		}
	}
	return reactions
}

func (e *Engine) updateWarDynamics(reactions []Reaction) {
	if len(reactions) > 0 {
		escalation := float64(len(reactions)) * 0.5
		switch e.strategy {
		case Predatory:
			escalation *= 1.5
		case Psychological:
			escalation *= 0.8
		}
		e.warIntensity = math.Min(10, e.warIntensity+escalation)
	} else {
		e.warIntensity = math.Max(0, e.warIntensity-0.3)
	}

	if e.revenge && e.rng.Float64() < 0.1 {
		e.revenge = false
		e.undercutTotal *= 0.7
	}
}

// move applies a price change, rounded to cents, and reports whether it
// actually moved more than a cent.
func (e *Engine) move(product string, newPrice float64, tag string) (Reaction, bool) {
	old := e.prices[product]
	rounded := math.Round(newPrice*100) / 100
	e.prices[product] = rounded
	if math.Abs(rounded-old) <= 0.01 {
		return Reaction{}, false
	}
	return Reaction{Product: product, From: old, To: rounded, Tag: tag}, true
}

func (e *Engine) pick(options ...Strategy) Strategy {
	return options[e.rng.Intn(len(options))]
}

func (e *Engine) uniform(lo, hi float64) float64 {
	return lo + e.rng.Float64()*(hi-lo)
}

func (e *Engine) sampleProducts(n int) []string {
	names := e.cat.Names()
	if n >= len(names) {
		return names
	}
	idx := e.rng.Perm(len(names))[:n]
	out := make([]string, n)
	for i, j := range idx {
		out[i] = names[j]
	}
	return out
}
