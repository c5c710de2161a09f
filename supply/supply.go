// Package supply implements crisis-aware supplier selection and delivery
// handling. Selection scores every available supplier on cost, speed,
// reliability, cash-flow terms, and bulk discounts, with crisis overlays
// folded into the score. Deliveries resolve as Bernoulli trials at the
// supplier's crisis-adjusted reliability.
//
// The package computes decisions and outcomes; applying their financial
// effects (debiting cash, accruing payables) is the store's job.
package supply

import (
	"fmt"
	"math/rand"
	"strings"

	"github.com/google/uuid"
	"github.com/storesim-xyz/go-storesim/catalog"
	"github.com/storesim-xyz/go-storesim/crisis"
)

// PendingDelivery is an order in transit.
type PendingDelivery struct {
	ID          string
	Supplier    string
	Product     string
	Quantity    int
	UnitCost    float64
	TotalCost   float64
	OrderDay    int
	DeliveryDay int
	Terms       catalog.PaymentTerm
	Discounted  bool
}

// Selection is the chosen supplier for an order, with the costs and
// crisis overlay in effect at order time.
type Selection struct {
	Supplier     catalog.Supplier
	UnitCost     float64
	TotalCost    float64
	Discounted   bool
	DiscountRate float64
	LeadDays     int // lead time plus crisis delay
	Reliability  float64
	Effects      crisis.SupplierEffects
	Score        float64
}

// UnavailableError means every supplier for a product is excluded by
// active crises.
type UnavailableError struct {
	Product   string
	CrisisIDs []string
}

func (e *UnavailableError) Error() string {
	if len(e.CrisisIDs) > 0 {
		return fmt.Sprintf("all suppliers for %s are unavailable due to crises %s",
			e.Product, strings.Join(e.CrisisIDs, ", "))
	}
	return fmt.Sprintf("no suppliers available for %s", e.Product)
}

// SelectSupplier picks the best supplier for an order of qty units of a
// product under the active crises. Scores tie-break toward catalog order.
func SelectSupplier(cat *catalog.Catalog, product string, qty int, active []crisis.Event) (Selection, error) {
	p, ok := cat.Product(product)
	if !ok {
		return Selection{}, fmt.Errorf("unknown product %q", product)
	}
	sups := cat.Suppliers(product)
	if len(sups) == 0 {
		return Selection{}, &UnavailableError{Product: product}
	}

	var best Selection
	var found bool
	var excludedBy []string
	for _, sup := range sups {
		fx := crisis.EffectsOn(active, product, sup)
		if !fx.Available {
			excludedBy = append(excludedBy, fx.CrisisIDs...)
			continue
		}
		sel := score(p, sup, qty, fx)
		if !found || sel.Score > best.Score {
			best = sel
			found = true
		}
	}
	if !found {
		return Selection{}, &UnavailableError{Product: product, CrisisIDs: dedupe(excludedBy)}
	}
	return best, nil
}

// score computes the strategic value of ordering from one supplier.
func score(p catalog.Product, sup catalog.Supplier, qty int, fx crisis.SupplierEffects) Selection {
	unitCost := p.Cost * sup.PriceMultiplier * fx.CostMultiplier
	discounted := qty >= sup.BulkThreshold
	discountRate := 0.0
	if discounted {
		unitCost *= 1 - sup.BulkDiscountRate
		discountRate = sup.BulkDiscountRate
	}

	costScore := 100 - sup.PriceMultiplier*fx.CostMultiplier*50
	speedScore := 100 - float64(sup.LeadTimeDays+fx.DelayDays)*20
	reliability := fx.AdjustedReliability(sup.Reliability)
	reliabilityScore := reliability * 100
	cashFlowScore := 0.0
	if sup.Terms == catalog.PayLater {
		cashFlowScore = 50
	}
	bulkBonus := 0.0
	if discounted {
		bulkBonus = 25
	}
	crisisPenalty := 0.0
	if fx.CostMultiplier > 1.0 || fx.DelayDays > 0 {
		crisisPenalty = 30
	}

	return Selection{
		Supplier:     sup,
		UnitCost:     unitCost,
		TotalCost:    unitCost * float64(qty),
		Discounted:   discounted,
		DiscountRate: discountRate,
		LeadDays:     sup.LeadTimeDays + fx.DelayDays,
		Reliability:  reliability,
		Effects:      fx,
		Score:        costScore + speedScore + reliabilityScore + cashFlowScore + bulkBonus - crisisPenalty,
	}
}

// NewDelivery builds the pending delivery for a selection.
func NewDelivery(sel Selection, product string, qty, today int) PendingDelivery {
	return PendingDelivery{
		ID:          uuid.NewString(),
		Supplier:    sel.Supplier.Name,
		Product:     product,
		Quantity:    qty,
		UnitCost:    sel.UnitCost,
		TotalCost:   sel.TotalCost,
		OrderDay:    today,
		DeliveryDay: today + sel.LeadDays,
		Terms:       sel.Supplier.Terms,
		Discounted:  sel.Discounted,
	}
}

// Outcome is the result of one due delivery.
type Outcome struct {
	Delivery  PendingDelivery
	Delivered bool
	Message   string
}

// ResolveDue resolves every pending delivery whose day has arrived as a
// Bernoulli trial at the supplier's crisis-adjusted reliability, in order
// of placement. It returns the deliveries still in transit and the
// outcomes of the due ones. Financial reversal of failures is left to the
// caller.
func ResolveDue(rng *rand.Rand, cat *catalog.Catalog, today int, pending []PendingDelivery, active []crisis.Event) (remaining []PendingDelivery, outcomes []Outcome) {
	for _, d := range pending {
		if d.DeliveryDay > today {
			remaining = append(remaining, d)
			continue
		}

		reliability := 1.0
		if sup, ok := cat.Supplier(d.Supplier); ok {
			fx := crisis.EffectsOn(active, d.Product, sup)
			reliability = fx.AdjustedReliability(sup.Reliability)
		}

		if rng.Float64() <= reliability {
			outcomes = append(outcomes, Outcome{
				Delivery:  d,
				Delivered: true,
				Message:   fmt.Sprintf("DELIVERED: %d %s from %s", d.Quantity, d.Product, d.Supplier),
			})
		} else {
			outcomes = append(outcomes, Outcome{
				Delivery: d,
				Message:  fmt.Sprintf("FAILED: %s delivery from %s, payment reversed", d.Product, d.Supplier),
			})
		}
	}
	return remaining, outcomes
}

func dedupe(in []string) []string {
	seen := make(map[string]bool, len(in))
	var out []string
	for _, s := range in {
		if !seen[s] {
			seen[s] = true
			out = append(out, s)
		}
	}
	return out
}
