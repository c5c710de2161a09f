// Package inventory tracks batch-level stock for the store. Each delivery
// creates a batch with its own expiration day; sales consume the oldest
// usable batch first and the daily spoilage sweep discards whatever has
// expired.
package inventory

// Batch is a received lot of a single product. ExpirationDay of zero means
// the batch never expires.
type Batch struct {
	Quantity      int
	ReceivedDay   int
	ExpirationDay int
}

// Expired reports whether the batch is unusable on the given day.
func (b Batch) Expired(day int) bool {
	return b.ExpirationDay > 0 && day >= b.ExpirationDay
}

// Warning flags a batch that is about to spoil.
type Warning struct {
	Product  string
	Quantity int
	DaysLeft int
}

// Ledger holds per-product batch lists in receipt order. Product iteration
// follows the order the products were registered, so sweeps and reports are
// deterministic.
type Ledger struct {
	order   []string
	batches map[string][]Batch
}

// NewLedger creates a ledger tracking the given products in the given order.
func NewLedger(products []string) *Ledger {
	l := &Ledger{
		order:   append([]string(nil), products...),
		batches: make(map[string][]Batch, len(products)),
	}
	for _, name := range l.order {
		l.batches[name] = nil
	}
	return l
}

// Products returns the tracked product names in registration order.
func (l *Ledger) Products() []string {
	return append([]string(nil), l.order...)
}

// AddBatch appends a new batch for a product. Batches with non-positive
// quantity are ignored.
func (l *Ledger) AddBatch(product string, qty, receivedDay, expirationDay int) {
	if qty <= 0 {
		return
	}
	if _, ok := l.batches[product]; !ok {
		l.order = append(l.order, product)
	}
	l.batches[product] = append(l.batches[product], Batch{
		Quantity:      qty,
		ReceivedDay:   receivedDay,
		ExpirationDay: expirationDay,
	})
}

// Quantity returns the total units on hand for a product, including
// expired batches that have not been swept yet. Callers that need
// sellable stock should use Sellable.
func (l *Ledger) Quantity(product string) int {
	total := 0
	for _, b := range l.batches[product] {
		total += b.Quantity
	}
	return total
}

// Sellable returns the units on hand for a product excluding batches that
// are expired as of the given day.
func (l *Ledger) Sellable(product string, day int) int {
	total := 0
	for _, b := range l.batches[product] {
		if !b.Expired(day) {
			total += b.Quantity
		}
	}
	return total
}

// Batches returns a copy of the batch list for a product, oldest first.
func (l *Ledger) Batches(product string) []Batch {
	return append([]Batch(nil), l.batches[product]...)
}

// Consume removes up to qty units of a product, oldest batch first,
// skipping expired batches. It returns the number of units actually
// removed. Emptied batches are dropped immediately so no zero-quantity
// batch ever remains.
func (l *Ledger) Consume(product string, qty, day int) int {
	if qty <= 0 {
		return 0
	}
	removed := 0
	kept := l.batches[product][:0]
	for _, b := range l.batches[product] {
		if removed < qty && !b.Expired(day) {
			take := qty - removed
			if take > b.Quantity {
				take = b.Quantity
			}
			b.Quantity -= take
			removed += take
		}
		if b.Quantity > 0 {
			kept = append(kept, b)
		}
	}
	l.batches[product] = kept
	return removed
}

// SweepSpoilage removes every batch whose expiration day has arrived and
// returns the spoiled units per product. Products with no spoilage do not
// appear in the result, so a second sweep on the same day returns an empty
// map.
func (l *Ledger) SweepSpoilage(day int) map[string]int {
	spoiled := make(map[string]int)
	for _, product := range l.order {
		kept := l.batches[product][:0]
		for _, b := range l.batches[product] {
			if b.Expired(day) {
				spoiled[product] += b.Quantity
			} else {
				kept = append(kept, b)
			}
		}
		l.batches[product] = kept
	}
	return spoiled
}

// ExpiringSoon returns warnings for batches that will expire within the
// given number of days, in product registration order.
func (l *Ledger) ExpiringSoon(day, within int) []Warning {
	var warnings []Warning
	for _, product := range l.order {
		for _, b := range l.batches[product] {
			if b.ExpirationDay == 0 || b.Expired(day) {
				continue
			}
			left := b.ExpirationDay - day
			if left <= within {
				warnings = append(warnings, Warning{
					Product:  product,
					Quantity: b.Quantity,
					DaysLeft: left,
				})
			}
		}
	}
	return warnings
}

// Stockouts returns the tracked products with zero sellable units, in
// registration order.
func (l *Ledger) Stockouts(day int) []string {
	var out []string
	for _, product := range l.order {
		if l.Sellable(product, day) == 0 {
			out = append(out, product)
		}
	}
	return out
}

// TotalUnits returns the total units on hand across all products.
func (l *Ledger) TotalUnits() int {
	total := 0
	for _, product := range l.order {
		total += l.Quantity(product)
	}
	return total
}
