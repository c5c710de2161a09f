// Package crisis models supply-chain disruptions: stochastic generation of
// crisis events from market conditions, escalation into secondary crises,
// day-by-day lifecycle with daily costs and recovery cooldowns, and the
// read-time overlay of crisis effects onto supplier profiles.
//
// Crisis effects never mutate the catalog. EffectsOn computes the combined
// overlay for a product/supplier pair from whatever crises are active.
package crisis

import (
	"fmt"
	"math/rand"
	"strings"

	"github.com/google/uuid"
	"github.com/storesim-xyz/go-storesim/catalog"
	"github.com/storesim-xyz/go-storesim/market"
)

// Type is the kind of crisis.
type Type string

const (
	SupplierBankruptcy    Type = "supplier_bankruptcy"
	SupplyShortage        Type = "supply_shortage"
	DeliveryDisruption    Type = "delivery_disruption"
	RegulatoryCrisis      Type = "regulatory_crisis"
	EconomicShock         Type = "economic_shock"
	RawMaterialSpike      Type = "raw_material_spike"
	CompetitiveDisruption Type = "competitive_disruption"
)

// Action is an emergency response a producer can take during a crisis.
type Action string

const (
	EmergencyRestock       Action = "emergency_restock"
	SwitchSupplier         Action = "switch_supplier"
	TakeLoan               Action = "take_loan"
	CompetitorIntelligence Action = "competitor_intelligence"
	RaisePrices            Action = "raise_prices"
	LiquidateInventory     Action = "liquidate_inventory"
)

// Event is an active or resolved crisis.
type Event struct {
	ID                string
	Type              Type
	AffectedProducts  []string
	AffectedSuppliers []string
	Severity          float64 // 0..1
	DurationDays      int
	RemainingDays     int

	// Supply-side effects, overlaid on affected suppliers at read time.
	CostMultiplier          float64 // 1.0 = no effect
	DeliveryDelayMultiplier float64 // 1.0 = no delay
	ReliabilityPenalty      float64 // subtracted from base reliability

	Description      string
	EmergencyActions []Action
}

// DailyCost returns the cash cost this crisis charges per day it is active.
func (e Event) DailyCost() float64 {
	switch e.Type {
	case RegulatoryCrisis:
		return 50 + e.Severity*150
	case EconomicShock:
		return e.Severity * 30
	}
	return 0
}

// Affects reports whether the crisis targets the product or the supplier.
func (e Event) Affects(product, supplier string) bool {
	for _, p := range e.AffectedProducts {
		if p == product {
			return true
		}
	}
	for _, s := range e.AffectedSuppliers {
		if s == supplier {
			return true
		}
	}
	return false
}

// SupplierEffects is the combined crisis overlay for one supplier serving
// one product.
type SupplierEffects struct {
	CostMultiplier     float64
	DelayDays          int
	ReliabilityPenalty float64
	Available          bool
	CrisisIDs          []string
}

// EffectsOn computes the overlay for a supplier of a product under the
// active crises. A supplier named in a bankruptcy crisis is unavailable.
func EffectsOn(active []Event, product string, sup catalog.Supplier) SupplierEffects {
	fx := SupplierEffects{CostMultiplier: 1.0, Available: true}
	for _, c := range active {
		if !c.Affects(product, sup.Name) {
			continue
		}
		fx.CostMultiplier *= c.CostMultiplier
		fx.DelayDays += int(float64(sup.LeadTimeDays) * (c.DeliveryDelayMultiplier - 1))
		fx.ReliabilityPenalty += c.ReliabilityPenalty
		fx.CrisisIDs = append(fx.CrisisIDs, c.ID)
		if c.Type == SupplierBankruptcy {
			for _, name := range c.AffectedSuppliers {
				if name == sup.Name {
					fx.Available = false
				}
			}
		}
	}
	return fx
}

// AdjustedReliability applies the overlay penalty to a base reliability,
// floored at 0.1 so no supplier becomes a guaranteed failure.
func (fx SupplierEffects) AdjustedReliability(base float64) float64 {
	r := base - fx.ReliabilityPenalty
	if r < 0.1 {
		return 0.1
	}
	return r
}

// Update is the result of advancing active crises by one day.
type Update struct {
	Ongoing   []Event
	Resolved  []Event
	DailyCost float64
}

// Generator produces and ages crisis events. It is not safe for concurrent
// use.
type Generator struct {
	rng *rand.Rand
	cat *catalog.Catalog

	baseRate         float64
	escalationChance float64
	recoveryDays     int // cooldown after a resolution, dampens new crises
}

// NewGenerator creates a crisis generator with the standard rates: 5% base
// daily probability and 30% daily escalation chance per eligible crisis.
func NewGenerator(rng *rand.Rand, cat *catalog.Catalog) *Generator {
	return &Generator{
		rng:              rng,
		cat:              cat,
		baseRate:         0.05,
		escalationChance: 0.3,
	}
}

var typeOrder = []Type{
	SupplierBankruptcy,
	SupplyShortage,
	DeliveryDisruption,
	RegulatoryCrisis,
	EconomicShock,
	RawMaterialSpike,
	CompetitiveDisruption,
}

var baseWeights = map[Type]float64{
	SupplierBankruptcy:    0.15,
	SupplyShortage:        0.20,
	DeliveryDisruption:    0.25,
	RegulatoryCrisis:      0.10,
	EconomicShock:         0.10,
	RawMaterialSpike:      0.15,
	CompetitiveDisruption: 0.05,
}

var economicRiskModifiers = map[market.Condition]float64{
	market.EconNormal:    1.0,
	market.EconBoom:      0.7,
	market.EconRecession: 2.5,
	market.EconRecovery:  1.5,
}

var weatherRiskModifiers = map[market.Weather]float64{
	market.WeatherNormal:  1.0,
	market.HeatWave:       1.8,
	market.ColdSnap:       1.5,
	market.RainyDay:       2.0,
	market.PerfectWeather: 0.8,
}

// Generate rolls for a new crisis and for escalations of the active ones,
// returning any crises spawned today.
func (g *Generator) Generate(day int, active []Event, ev market.Event) []Event {
	var spawned []Event

	if g.rng.Float64() < g.probability(ev, len(active) > 0) {
		t := g.selectType(ev)
		spawned = append(spawned, g.build(t, ev))
	}

	for _, c := range active {
		if g.rng.Float64() < g.escalationChance {
			if secondary, ok := g.escalate(c, ev); ok {
				spawned = append(spawned, secondary)
			}
		}
	}

	return spawned
}

// UpdateActive ages the active crises by one day. Expired crises move to
// the resolved list and start a recovery cooldown of max(3, duration/2)
// days during which new-crisis probability drops sharply.
func (g *Generator) UpdateActive(active []Event) Update {
	var up Update
	for _, c := range active {
		c.RemainingDays--
		up.DailyCost += c.DailyCost()
		if c.RemainingDays <= 0 {
			up.Resolved = append(up.Resolved, c)
			cooldown := c.DurationDays / 2
			if cooldown < 3 {
				cooldown = 3
			}
			g.recoveryDays = cooldown
		} else {
			up.Ongoing = append(up.Ongoing, c)
		}
	}
	return up
}

// probability computes today's new-crisis chance, capped at 40%. Reading
// it consumes a day of recovery cooldown when one is pending.
func (g *Generator) probability(ev market.Event, anyActive bool) float64 {
	p := g.baseRate * economicRiskModifiers[ev.Economic] * weatherRiskModifiers[ev.Weather]
	if g.recoveryDays > 0 {
		p *= 0.3
		g.recoveryDays--
	}
	if anyActive {
		p *= 0.4
	}
	if p > 0.4 {
		return 0.4
	}
	return p
}

func (g *Generator) selectType(ev market.Event) Type {
	weights := make(map[Type]float64, len(baseWeights))
	for t, w := range baseWeights {
		weights[t] = w
	}
	if ev.Economic == market.EconRecession {
		weights[SupplierBankruptcy] *= 3.0
		weights[EconomicShock] *= 2.0
	}
	switch ev.Weather {
	case market.HeatWave, market.ColdSnap, market.RainyDay:
		weights[DeliveryDisruption] *= 2.5
		weights[SupplyShortage] *= 1.5
	}

	total := 0.0
	for _, t := range typeOrder {
		total += weights[t]
	}
	r := g.rng.Float64() * total
	for _, t := range typeOrder {
		r -= weights[t]
		if r <= 0 {
			return t
		}
	}
	return typeOrder[len(typeOrder)-1]
}

func (g *Generator) build(t Type, ev market.Event) Event {
	switch t {
	case SupplierBankruptcy:
		return g.supplierBankruptcy()
	case SupplyShortage:
		return g.supplyShortage()
	case DeliveryDisruption:
		return g.deliveryDisruption(ev)
	case RegulatoryCrisis:
		return g.regulatoryCrisis()
	case EconomicShock:
		return g.economicShock()
	case RawMaterialSpike:
		return g.rawMaterialSpike()
	case CompetitiveDisruption:
		return g.competitiveDisruption()
	}
	return g.supplyShortage()
}

// escalate spawns the secondary crisis for an active one. Only crises with
// severity at or below 0.8 escalate; the extreme ones already saturate
// their effects.
func (g *Generator) escalate(c Event, ev market.Event) (Event, bool) {
	if c.Severity > 0.8 {
		return Event{}, false
	}
	switch c.Type {
	case SupplierBankruptcy:
		return g.supplyShortage(), true
	case DeliveryDisruption:
		return g.rawMaterialSpike(), true
	}
	return Event{}, false
}

func (g *Generator) supplierBankruptcy() Event {
	names := g.cat.Names()
	product := names[g.rng.Intn(len(names))]
	sups := g.cat.Suppliers(product)
	sup := sups[g.rng.Intn(len(sups))]

	severity := g.uniform(0.7, 1.0)
	duration := g.randRange(5, 10)

	return Event{
		ID:                 uuid.NewString(),
		Type:               SupplierBankruptcy,
		AffectedProducts:   []string{product},
		AffectedSuppliers:  []string{sup.Name},
		Severity:           severity,
		DurationDays:       duration,
		RemainingDays:      duration,
		CostMultiplier:     1.0,
		ReliabilityPenalty: 1.0,
		Description: fmt.Sprintf("SUPPLIER BANKRUPTCY: %s has gone bankrupt, %s supply disrupted for %d days",
			sup.Name, product, duration),
		EmergencyActions: []Action{SwitchSupplier, EmergencyRestock, RaisePrices},
	}
}

func (g *Generator) supplyShortage() Event {
	products := g.sampleProducts(g.randRange(1, 3))
	severity := g.uniform(0.4, 0.8)
	duration := g.randRange(3, 7)
	costMult := 1.2 + severity*0.5

	return Event{
		ID:                 uuid.NewString(),
		Type:               SupplyShortage,
		AffectedProducts:   products,
		Severity:           severity,
		DurationDays:       duration,
		RemainingDays:      duration,
		CostMultiplier:     costMult,
		ReliabilityPenalty: 0.3 + severity*0.4,
		Description: fmt.Sprintf("SUPPLY SHORTAGE: %s shortage, costs up %.0f%% for %d days",
			strings.Join(products, ", "), (costMult-1)*100, duration),
		EmergencyActions: []Action{EmergencyRestock, RaisePrices, LiquidateInventory},
	}
}

func (g *Generator) deliveryDisruption(ev market.Event) Event {
	all := g.cat.SupplierNames()
	affected := g.sampleStrings(all, len(all)/2)
	severity := g.uniform(0.3, 0.9)
	duration := g.randRange(2, 5)

	return Event{
		ID:                      uuid.NewString(),
		Type:                    DeliveryDisruption,
		AffectedSuppliers:       affected,
		Severity:                severity,
		DurationDays:            duration,
		RemainingDays:           duration,
		CostMultiplier:          1.0,
		DeliveryDelayMultiplier: 1.5 + severity,
		ReliabilityPenalty:      0.2 + severity*0.3,
		Description: fmt.Sprintf("DELIVERY CRISIS: %s causing delivery delays, %d suppliers affected for %d days",
			ev.Weather, len(affected), duration),
		EmergencyActions: []Action{EmergencyRestock, SwitchSupplier},
	}
}

func (g *Generator) regulatoryCrisis() Event {
	severity := g.uniform(0.5, 0.9)
	duration := g.randRange(7, 14)
	daily := 50 + severity*150

	return Event{
		ID:             uuid.NewString(),
		Type:           RegulatoryCrisis,
		Severity:       severity,
		DurationDays:   duration,
		RemainingDays:  duration,
		CostMultiplier: 1.0,
		Description: fmt.Sprintf("REGULATORY CRISIS: health inspection requires immediate compliance, $%.0f/day for %d days",
			daily, duration),
		EmergencyActions: []Action{TakeLoan, LiquidateInventory, RaisePrices},
	}
}

func (g *Generator) economicShock() Event {
	severity := g.uniform(0.6, 1.0)
	duration := g.randRange(10, 20)
	costMult := 1.1 + severity*0.4

	return Event{
		ID:             uuid.NewString(),
		Type:           EconomicShock,
		Severity:       severity,
		DurationDays:   duration,
		RemainingDays:  duration,
		CostMultiplier: costMult,
		Description: fmt.Sprintf("ECONOMIC SHOCK: sudden market downturn, all costs up %.0f%% for %d days",
			(costMult-1)*100, duration),
		EmergencyActions: []Action{TakeLoan, RaisePrices, CompetitorIntelligence},
	}
}

func (g *Generator) rawMaterialSpike() Event {
	var products []string
	for _, name := range g.cat.Names() {
		if g.rng.Float64() < 0.4 {
			products = append(products, name)
		}
	}
	if len(products) == 0 {
		names := g.cat.Names()
		products = []string{names[g.rng.Intn(len(names))]}
	}
	severity := g.uniform(0.5, 0.9)
	duration := g.randRange(4, 8)
	costMult := 1.3 + severity*0.7

	return Event{
		ID:               uuid.NewString(),
		Type:             RawMaterialSpike,
		AffectedProducts: products,
		Severity:         severity,
		DurationDays:     duration,
		RemainingDays:    duration,
		CostMultiplier:   costMult,
		Description: fmt.Sprintf("RAW MATERIAL SPIKE: %s costs up %.0f%% for %d days",
			strings.Join(products, ", "), (costMult-1)*100, duration),
		EmergencyActions: []Action{RaisePrices, SwitchSupplier, LiquidateInventory},
	}
}

func (g *Generator) competitiveDisruption() Event {
	severity := g.uniform(0.3, 0.7)
	duration := g.randRange(3, 6)

	return Event{
		ID:             uuid.NewString(),
		Type:           CompetitiveDisruption,
		Severity:       severity,
		DurationDays:   duration,
		RemainingDays:  duration,
		CostMultiplier: 1.0,
		Description: fmt.Sprintf("COMPETITOR SUPPLY CRISIS: rival store has supply chain problems, market opportunity for %d days",
			duration),
		EmergencyActions: []Action{CompetitorIntelligence, RaisePrices, EmergencyRestock},
	}
}

var intelReports = []string{
	"Competitor has supply shortage in Chips - vulnerable to price attack",
	"Rival store has cash flow problems - opportunity to steal customers",
	"Competitor's main supplier is unreliable - they'll have stockouts soon",
	"Intelligence suggests competitor is planning price war - prepare defenses",
	"Rival store has regulatory compliance issues - they're distracted",
}

// IntelReport returns a random competitor-intelligence finding. Used by the
// paid intelligence emergency action.
func (g *Generator) IntelReport() string {
	return intelReports[g.rng.Intn(len(intelReports))]
}

func (g *Generator) uniform(lo, hi float64) float64 {
	return lo + g.rng.Float64()*(hi-lo)
}

func (g *Generator) randRange(lo, hi int) int {
	return lo + g.rng.Intn(hi-lo+1)
}

// sampleProducts draws n distinct product names in catalog order bias-free.
func (g *Generator) sampleProducts(n int) []string {
	return g.sampleStrings(g.cat.Names(), n)
}

func (g *Generator) sampleStrings(pool []string, n int) []string {
	if n >= len(pool) {
		return append([]string(nil), pool...)
	}
	idx := g.rng.Perm(len(pool))[:n]
	out := make([]string, n)
	for i, j := range idx {
		out[i] = pool[j]
	}
	return out
}
