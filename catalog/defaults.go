package catalog

// Default returns the standard ten-product convenience-store catalog with
// two suppliers per product: one fast and reliable on upfront terms, one
// cheaper and slower on net-30 terms.
func Default() *Catalog {
	products := []Product{
		{
			Name: "Coke", Cost: 1.0, Price: 2.0, Category: Beverages,
			Seasonal: map[Season]float64{Spring: 1.0, Summer: 1.4, Fall: 0.9, Winter: 0.8},
		},
		{
			Name: "Water", Cost: 1.0, Price: 2.0, Category: Beverages,
			Seasonal: map[Season]float64{Spring: 1.1, Summer: 1.6, Fall: 0.8, Winter: 0.7},
		},
		{
			Name: "Chips", Cost: 1.0, Price: 2.0, Category: Snacks,
			Seasonal: map[Season]float64{Spring: 1.1, Summer: 1.2, Fall: 1.0, Winter: 0.9},
		},
		{
			Name: "Crackers", Cost: 0.8, Price: 1.75, Category: Snacks,
			Seasonal: map[Season]float64{Spring: 1.0, Summer: 0.9, Fall: 1.1, Winter: 1.2},
		},
		{
			Name: "Sandwiches", Cost: 2.5, Price: 4.5, Category: FreshFood,
			ShelfLifeDays: 3,
			Seasonal:      map[Season]float64{Spring: 1.3, Summer: 1.4, Fall: 0.9, Winter: 0.8},
		},
		{
			Name: "Bananas", Cost: 0.5, Price: 1.2, Category: FreshFood,
			ShelfLifeDays: 5,
			Seasonal:      map[Season]float64{Spring: 1.1, Summer: 1.0, Fall: 1.0, Winter: 1.1},
		},
		{
			Name: "Ice Cream", Cost: 1.8, Price: 3.2, Category: Frozen,
			ShelfLifeDays: 7,
			Seasonal:      map[Season]float64{Spring: 1.2, Summer: 2.0, Fall: 0.6, Winter: 0.3},
		},
		{
			Name: "Candy", Cost: 1.0, Price: 2.0, Category: Candy,
			Seasonal: map[Season]float64{Spring: 1.0, Summer: 0.9, Fall: 1.3, Winter: 1.1},
		},
		{
			Name: "Gum", Cost: 1.0, Price: 2.0, Category: Candy,
			Seasonal: map[Season]float64{Spring: 1.0, Summer: 1.0, Fall: 1.0, Winter: 1.0},
		},
		{
			Name: "Chocolate", Cost: 1.2, Price: 2.4, Category: Candy,
			Seasonal: map[Season]float64{Spring: 1.0, Summer: 0.8, Fall: 1.1, Winter: 1.4},
		},
	}

	suppliers := map[string][]Supplier{
		"Coke": {
			{Name: "FastCoke Inc", Reliability: 0.95, LeadTimeDays: 1, BulkThreshold: 20, BulkDiscountRate: 0.10, Terms: PayNow, PriceMultiplier: 1.0},
			{Name: "CheapCoke Co", Reliability: 0.85, LeadTimeDays: 3, BulkThreshold: 25, BulkDiscountRate: 0.15, Terms: PayLater, PriceMultiplier: 0.85},
		},
		"Water": {
			{Name: "H2O Express", Reliability: 0.96, LeadTimeDays: 1, BulkThreshold: 30, BulkDiscountRate: 0.12, Terms: PayNow, PriceMultiplier: 1.02},
			{Name: "AquaSaver", Reliability: 0.85, LeadTimeDays: 2, BulkThreshold: 50, BulkDiscountRate: 0.20, Terms: PayLater, PriceMultiplier: 0.78},
		},
		"Chips": {
			{Name: "CrunchyCorp", Reliability: 0.90, LeadTimeDays: 1, BulkThreshold: 15, BulkDiscountRate: 0.08, Terms: PayNow, PriceMultiplier: 1.05},
			{Name: "BudgetChips Ltd", Reliability: 0.80, LeadTimeDays: 2, BulkThreshold: 30, BulkDiscountRate: 0.12, Terms: PayLater, PriceMultiplier: 0.90},
		},
		"Crackers": {
			{Name: "CrispyCrackers Co", Reliability: 0.88, LeadTimeDays: 1, BulkThreshold: 25, BulkDiscountRate: 0.10, Terms: PayNow, PriceMultiplier: 1.0},
			{Name: "ValueCrunch", Reliability: 0.82, LeadTimeDays: 3, BulkThreshold: 40, BulkDiscountRate: 0.18, Terms: PayLater, PriceMultiplier: 0.85},
		},
		"Sandwiches": {
			{Name: "FreshFast Deli", Reliability: 0.92, LeadTimeDays: 1, BulkThreshold: 10, BulkDiscountRate: 0.08, Terms: PayNow, PriceMultiplier: 1.0},
			{Name: "BudgetBites", Reliability: 0.75, LeadTimeDays: 2, BulkThreshold: 15, BulkDiscountRate: 0.12, Terms: PayLater, PriceMultiplier: 0.90},
		},
		"Bananas": {
			{Name: "TropicalSpeed", Reliability: 0.90, LeadTimeDays: 1, BulkThreshold: 20, BulkDiscountRate: 0.10, Terms: PayNow, PriceMultiplier: 1.0},
			{Name: "FarmDirect", Reliability: 0.85, LeadTimeDays: 2, BulkThreshold: 30, BulkDiscountRate: 0.15, Terms: PayLater, PriceMultiplier: 0.88},
		},
		"Ice Cream": {
			{Name: "FrozenExpress", Reliability: 0.94, LeadTimeDays: 1, BulkThreshold: 12, BulkDiscountRate: 0.09, Terms: PayNow, PriceMultiplier: 1.05},
			{Name: "ChillCheap", Reliability: 0.80, LeadTimeDays: 2, BulkThreshold: 20, BulkDiscountRate: 0.14, Terms: PayLater, PriceMultiplier: 0.92},
		},
		"Candy": {
			{Name: "SweetSpeed", Reliability: 0.92, LeadTimeDays: 1, BulkThreshold: 25, BulkDiscountRate: 0.10, Terms: PayNow, PriceMultiplier: 0.98},
			{Name: "CandyDiscount", Reliability: 0.88, LeadTimeDays: 3, BulkThreshold: 40, BulkDiscountRate: 0.18, Terms: PayLater, PriceMultiplier: 0.82},
		},
		"Gum": {
			{Name: "ChewFast", Reliability: 0.88, LeadTimeDays: 1, BulkThreshold: 20, BulkDiscountRate: 0.09, Terms: PayNow, PriceMultiplier: 1.08},
			{Name: "GumEcon", Reliability: 0.82, LeadTimeDays: 3, BulkThreshold: 35, BulkDiscountRate: 0.16, Terms: PayLater, PriceMultiplier: 0.88},
		},
		"Chocolate": {
			{Name: "CocoaRush", Reliability: 0.90, LeadTimeDays: 1, BulkThreshold: 18, BulkDiscountRate: 0.11, Terms: PayNow, PriceMultiplier: 1.02},
			{Name: "SweetSaver", Reliability: 0.84, LeadTimeDays: 2, BulkThreshold: 25, BulkDiscountRate: 0.16, Terms: PayLater, PriceMultiplier: 0.89},
		},
	}

	c, err := New(products, suppliers)
	if err != nil {
		panic("catalog: invalid default data: " + err.Error())
	}
	return c
}
