package catalog

import "testing"

func TestDefaultCatalog(t *testing.T) {
	c := Default()

	if c.Len() != 10 {
		t.Errorf("Expected 10 products, got %d", c.Len())
	}

	for _, name := range c.Names() {
		sups := c.Suppliers(name)
		if len(sups) != 2 {
			t.Errorf("Expected 2 suppliers for %s, got %d", name, len(sups))
		}
		if len(sups) == 2 {
			if sups[0].Terms != PayNow {
				t.Errorf("Expected first supplier for %s on upfront terms, got %s", name, sups[0].Terms)
			}
			if sups[1].Terms != PayLater {
				t.Errorf("Expected second supplier for %s on net_30 terms, got %s", name, sups[1].Terms)
			}
		}
	}
}

func TestOrderedIteration(t *testing.T) {
	c := Default()

	expected := []string{
		"Coke", "Water", "Chips", "Crackers", "Sandwiches",
		"Bananas", "Ice Cream", "Candy", "Gum", "Chocolate",
	}
	names := c.Names()
	if len(names) != len(expected) {
		t.Fatalf("Expected %d names, got %d", len(expected), len(names))
	}
	for i, name := range expected {
		if names[i] != name {
			t.Errorf("Expected product %d to be %s, got %s", i, name, names[i])
		}
	}
}

func TestProductLookup(t *testing.T) {
	c := Default()

	p, ok := c.Product("Sandwiches")
	if !ok {
		t.Fatal("Expected Sandwiches in catalog")
	}
	if p.Cost != 2.5 {
		t.Errorf("Expected Sandwiches cost 2.5, got %v", p.Cost)
	}
	if p.ShelfLifeDays != 3 {
		t.Errorf("Expected Sandwiches shelf life 3, got %d", p.ShelfLifeDays)
	}
	if p.SeasonalMultiplier(Summer) != 1.4 {
		t.Errorf("Expected Sandwiches summer multiplier 1.4, got %v", p.SeasonalMultiplier(Summer))
	}

	if _, ok := c.Product("Cigarettes"); ok {
		t.Error("Expected lookup of unknown product to fail")
	}
}

func TestSeasonalMultiplierDefault(t *testing.T) {
	p := Product{Name: "Test"}
	if p.SeasonalMultiplier(Winter) != 1.0 {
		t.Errorf("Expected default seasonal multiplier 1.0, got %v", p.SeasonalMultiplier(Winter))
	}
}

func TestSupplierLookup(t *testing.T) {
	c := Default()

	s, ok := c.Supplier("AquaSaver")
	if !ok {
		t.Fatal("Expected AquaSaver in catalog")
	}
	if s.PriceMultiplier != 0.78 {
		t.Errorf("Expected AquaSaver price multiplier 0.78, got %v", s.PriceMultiplier)
	}
	if s.LeadTimeDays != 2 {
		t.Errorf("Expected AquaSaver lead time 2, got %d", s.LeadTimeDays)
	}

	if names := c.SupplierNames(); len(names) != 20 {
		t.Errorf("Expected 20 supplier names, got %d", len(names))
	}
}

func TestNewValidation(t *testing.T) {
	_, err := New([]Product{{Name: "A"}, {Name: "A"}}, nil)
	if err == nil {
		t.Error("Expected error for duplicate product names")
	}

	_, err = New([]Product{{Name: "A"}}, map[string][]Supplier{"B": {}})
	if err == nil {
		t.Error("Expected error for suppliers of unknown product")
	}
}
