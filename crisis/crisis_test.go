package crisis

import (
	"math/rand"
	"testing"

	"github.com/storesim-xyz/go-storesim/catalog"
	"github.com/storesim-xyz/go-storesim/market"
)

func newGenerator(seed int64) *Generator {
	return NewGenerator(rand.New(rand.NewSource(seed)), catalog.Default())
}

func TestCrisisLifecycle(t *testing.T) {
	g := newGenerator(1)

	c := Event{
		ID:            "c1",
		Type:          SupplyShortage,
		Severity:      0.5,
		DurationDays:  5,
		RemainingDays: 5,
	}

	active := []Event{c}
	for day := 1; day <= 4; day++ {
		up := g.UpdateActive(active)
		if len(up.Resolved) != 0 {
			t.Fatalf("Expected no resolution on update %d", day)
		}
		if len(up.Ongoing) != 1 {
			t.Fatalf("Expected 1 ongoing crisis on update %d, got %d", day, len(up.Ongoing))
		}
		if up.Ongoing[0].RemainingDays != 5-day {
			t.Errorf("Expected %d remaining days after update %d, got %d",
				5-day, day, up.Ongoing[0].RemainingDays)
		}
		active = up.Ongoing
	}

	up := g.UpdateActive(active)
	if len(up.Resolved) != 1 {
		t.Fatalf("Expected crisis resolved on fifth update, got %d resolved", len(up.Resolved))
	}
	if len(up.Ongoing) != 0 {
		t.Errorf("Expected no ongoing crises after resolution, got %d", len(up.Ongoing))
	}
	if g.recoveryDays != 3 {
		t.Errorf("Expected recovery cooldown max(3, 5/2) = 3, got %d", g.recoveryDays)
	}
}

func TestRecoveryCooldownFromLongCrisis(t *testing.T) {
	g := newGenerator(1)
	up := g.UpdateActive([]Event{{
		Type: EconomicShock, Severity: 0.8, DurationDays: 14, RemainingDays: 1,
	}})
	if len(up.Resolved) != 1 {
		t.Fatal("Expected resolution")
	}
	if g.recoveryDays != 7 {
		t.Errorf("Expected cooldown 7 days, got %d", g.recoveryDays)
	}
}

func TestDailyCost(t *testing.T) {
	reg := Event{Type: RegulatoryCrisis, Severity: 0.6}
	if got := reg.DailyCost(); got != 50+0.6*150 {
		t.Errorf("Expected regulatory daily cost 140, got %v", got)
	}
	shock := Event{Type: EconomicShock, Severity: 0.5}
	if got := shock.DailyCost(); got != 15 {
		t.Errorf("Expected shock daily cost 15, got %v", got)
	}
	free := Event{Type: SupplyShortage, Severity: 0.9}
	if got := free.DailyCost(); got != 0 {
		t.Errorf("Expected no daily cost for shortage, got %v", got)
	}
}

func TestProbabilityCapAndModifiers(t *testing.T) {
	g := newGenerator(1)

	// Recession plus rain: 0.05 x 2.5 x 2.0 = 0.25.
	ev := market.Event{Economic: market.EconRecession, Weather: market.RainyDay}
	if p := g.probability(ev, false); p != 0.25 {
		t.Errorf("Expected probability 0.25, got %v", p)
	}

	// An active crisis dampens new ones.
	if p := g.probability(ev, true); p != 0.1 {
		t.Errorf("Expected dampened probability 0.1, got %v", p)
	}

	// Recovery cooldown applies 0.3 and consumes a day.
	g.recoveryDays = 1
	if p := g.probability(ev, false); p != 0.25*0.3 {
		t.Errorf("Expected cooldown probability 0.075, got %v", p)
	}
	if g.recoveryDays != 0 {
		t.Errorf("Expected cooldown consumed, got %d days left", g.recoveryDays)
	}
}

func TestEffectsOnBankruptSupplier(t *testing.T) {
	cat := catalog.Default()
	sups := cat.Suppliers("Chips")

	active := []Event{{
		ID:                 "c1",
		Type:               SupplierBankruptcy,
		AffectedProducts:   []string{"Chips"},
		AffectedSuppliers:  []string{sups[0].Name},
		Severity:           0.9,
		CostMultiplier:     1.0,
		ReliabilityPenalty: 1.0,
	}}

	fx := EffectsOn(active, "Chips", sups[0])
	if fx.Available {
		t.Error("Expected bankrupt supplier to be unavailable")
	}
	if r := fx.AdjustedReliability(sups[0].Reliability); r != 0.1 {
		t.Errorf("Expected reliability floored at 0.1, got %v", r)
	}

	// The other supplier serves the same product, so it also carries the
	// product-level penalty, but stays available.
	fx2 := EffectsOn(active, "Chips", sups[1])
	if !fx2.Available {
		t.Error("Expected second supplier to remain available")
	}
	if fx2.ReliabilityPenalty != 1.0 {
		t.Errorf("Expected product-level penalty 1.0, got %v", fx2.ReliabilityPenalty)
	}
}

func TestEffectsStack(t *testing.T) {
	cat := catalog.Default()
	sup := cat.Suppliers("Water")[0]

	active := []Event{
		{ID: "a", Type: SupplyShortage, AffectedProducts: []string{"Water"},
			CostMultiplier: 1.4, ReliabilityPenalty: 0.2},
		{ID: "b", Type: DeliveryDisruption, AffectedSuppliers: []string{sup.Name},
			CostMultiplier: 1.0, DeliveryDelayMultiplier: 2.0, ReliabilityPenalty: 0.3},
	}

	fx := EffectsOn(active, "Water", sup)
	if fx.CostMultiplier != 1.4 {
		t.Errorf("Expected cost multiplier 1.4, got %v", fx.CostMultiplier)
	}
	if fx.DelayDays != sup.LeadTimeDays {
		t.Errorf("Expected delay of %d days, got %d", sup.LeadTimeDays, fx.DelayDays)
	}
	if diff := fx.ReliabilityPenalty - 0.5; diff > 1e-9 || diff < -1e-9 {
		t.Errorf("Expected stacked penalty 0.5, got %v", fx.ReliabilityPenalty)
	}
	if len(fx.CrisisIDs) != 2 {
		t.Errorf("Expected 2 contributing crises, got %d", len(fx.CrisisIDs))
	}
}

func TestEffectsOnUnaffected(t *testing.T) {
	cat := catalog.Default()
	sup := cat.Suppliers("Gum")[0]

	fx := EffectsOn(nil, "Gum", sup)
	if !fx.Available || fx.CostMultiplier != 1.0 || fx.DelayDays != 0 || fx.ReliabilityPenalty != 0 {
		t.Errorf("Expected neutral effects, got %+v", fx)
	}
}

func TestEscalationGating(t *testing.T) {
	g := newGenerator(3)
	ev := market.Event{Economic: market.EconNormal, Weather: market.WeatherNormal}

	if _, ok := g.escalate(Event{Type: SupplierBankruptcy, Severity: 0.9}, ev); ok {
		t.Error("Expected no escalation above severity 0.8")
	}
	sec, ok := g.escalate(Event{Type: SupplierBankruptcy, Severity: 0.75}, ev)
	if !ok {
		t.Fatal("Expected bankruptcy to escalate")
	}
	if sec.Type != SupplyShortage {
		t.Errorf("Expected bankruptcy to escalate into shortage, got %s", sec.Type)
	}
	sec, ok = g.escalate(Event{Type: DeliveryDisruption, Severity: 0.5}, ev)
	if !ok || sec.Type != RawMaterialSpike {
		t.Errorf("Expected delivery disruption to escalate into raw-material spike, got %v %s", ok, sec.Type)
	}
	if _, ok := g.escalate(Event{Type: RegulatoryCrisis, Severity: 0.5}, ev); ok {
		t.Error("Expected no escalation path for regulatory crisis")
	}
}

func TestGeneratedEventShapes(t *testing.T) {
	g := newGenerator(11)

	for i := 0; i < 50; i++ {
		for _, typ := range typeOrder {
			c := g.build(typ, market.Event{Weather: market.RainyDay})
			if c.Type != typ {
				t.Fatalf("Expected type %s, got %s", typ, c.Type)
			}
			if c.ID == "" {
				t.Fatal("Expected a crisis ID")
			}
			if c.Severity < 0 || c.Severity > 1 {
				t.Fatalf("Severity out of range for %s: %v", typ, c.Severity)
			}
			if c.DurationDays <= 0 || c.RemainingDays != c.DurationDays {
				t.Fatalf("Bad duration for %s: %d/%d", typ, c.RemainingDays, c.DurationDays)
			}
			if len(c.EmergencyActions) == 0 {
				t.Fatalf("Expected emergency actions for %s", typ)
			}
		}
	}
}

func TestGenerateDeterministic(t *testing.T) {
	a, b := newGenerator(99), newGenerator(99)
	ev := market.Event{Economic: market.EconRecession, Weather: market.RainyDay}

	for day := 1; day <= 50; day++ {
		ca := a.Generate(day, nil, ev)
		cb := b.Generate(day, nil, ev)
		if len(ca) != len(cb) {
			t.Fatalf("Day %d: generators diverged: %d vs %d crises", day, len(ca), len(cb))
		}
		for i := range ca {
			if ca[i].Type != cb[i].Type || ca[i].Severity != cb[i].Severity {
				t.Fatalf("Day %d: crisis %d diverged", day, i)
			}
		}
	}
}
