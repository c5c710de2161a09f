// Package catalog defines the immutable reference data for the store
// simulation: the products on the shelves, the suppliers that stock them,
// and the payment terms suppliers trade under.
//
// A Catalog keeps products in declaration order and every lookup that
// enumerates products or suppliers walks that order. Stochastic code
// elsewhere in the simulator relies on this: iterating a Go map would
// perturb the random stream between runs with the same seed.
package catalog

import "fmt"

// Category groups products for reporting and demand modeling.
type Category string

const (
	Beverages Category = "beverages"
	Snacks    Category = "snacks"
	FreshFood Category = "fresh_food"
	Frozen    Category = "frozen"
	Candy     Category = "candy"
)

// Season identifies a quarter of the simulated year. Seasonal demand
// multipliers on products are keyed by season.
type Season string

const (
	Spring Season = "spring"
	Summer Season = "summer"
	Fall   Season = "fall"
	Winter Season = "winter"
)

// PaymentTerm is when a supplier expects to be paid.
type PaymentTerm string

const (
	// PayNow debits cash when the order is placed.
	PayNow PaymentTerm = "upfront"
	// PayLater accrues accounts payable, settled at end of day
	// once the delivery lands.
	PayLater PaymentTerm = "net_30"
)

// Product is an immutable catalog entry. ShelfLifeDays of zero means the
// product never spoils.
type Product struct {
	Name          string
	Cost          float64 // wholesale base cost per unit
	Price         float64 // suggested retail price
	Category      Category
	ShelfLifeDays int
	Seasonal      map[Season]float64 // demand multiplier by season
}

// SeasonalMultiplier returns the product's demand multiplier for a season,
// defaulting to 1.0 when the table has no entry.
func (p Product) SeasonalMultiplier(s Season) float64 {
	if m, ok := p.Seasonal[s]; ok {
		return m
	}
	return 1.0
}

// Supplier is an immutable supplier profile. Crisis effects (reliability
// penalties, cost multipliers, delivery delays) are overlaid at read time
// and never mutate these fields.
type Supplier struct {
	Name             string
	Reliability      float64 // probability a delivery arrives, 0..1
	LeadTimeDays     int
	BulkThreshold    int     // order quantity that earns the discount
	BulkDiscountRate float64 // fraction off unit cost at or above threshold
	Terms            PaymentTerm
	PriceMultiplier  float64 // applied to the product's base cost
}

// Catalog is an ordered product registry with per-product supplier lists.
type Catalog struct {
	products  []Product
	index     map[string]int
	suppliers map[string][]Supplier
}

// New builds a catalog from an ordered product list and a supplier table
// keyed by product name.
func New(products []Product, suppliers map[string][]Supplier) (*Catalog, error) {
	c := &Catalog{
		products:  make([]Product, len(products)),
		index:     make(map[string]int, len(products)),
		suppliers: make(map[string][]Supplier, len(suppliers)),
	}
	copy(c.products, products)
	for i, p := range c.products {
		if p.Name == "" {
			return nil, fmt.Errorf("product %d has no name", i)
		}
		if _, dup := c.index[p.Name]; dup {
			return nil, fmt.Errorf("duplicate product %q", p.Name)
		}
		c.index[p.Name] = i
	}
	for name, list := range suppliers {
		if _, ok := c.index[name]; !ok {
			return nil, fmt.Errorf("suppliers listed for unknown product %q", name)
		}
		c.suppliers[name] = append([]Supplier(nil), list...)
	}
	return c, nil
}

// Len returns the number of products.
func (c *Catalog) Len() int { return len(c.products) }

// Products returns the products in declaration order.
func (c *Catalog) Products() []Product {
	return append([]Product(nil), c.products...)
}

// Names returns product names in declaration order.
func (c *Catalog) Names() []string {
	names := make([]string, len(c.products))
	for i, p := range c.products {
		names[i] = p.Name
	}
	return names
}

// Product looks up a product by name.
func (c *Catalog) Product(name string) (Product, bool) {
	i, ok := c.index[name]
	if !ok {
		return Product{}, false
	}
	return c.products[i], true
}

// Has reports whether the catalog contains the product.
func (c *Catalog) Has(name string) bool {
	_, ok := c.index[name]
	return ok
}

// Suppliers returns the supplier list for a product, in declaration order.
func (c *Catalog) Suppliers(name string) []Supplier {
	return append([]Supplier(nil), c.suppliers[name]...)
}

// Supplier looks up a supplier by name across all products.
func (c *Catalog) Supplier(name string) (Supplier, bool) {
	for _, p := range c.products {
		for _, s := range c.suppliers[p.Name] {
			if s.Name == name {
				return s, true
			}
		}
	}
	return Supplier{}, false
}

// SupplierNames returns every supplier name, walking products in
// declaration order. Crisis generation samples from this list.
func (c *Catalog) SupplierNames() []string {
	var names []string
	for _, p := range c.products {
		for _, s := range c.suppliers[p.Name] {
			names = append(names, s.Name)
		}
	}
	return names
}
