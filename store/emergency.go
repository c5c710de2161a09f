package store

import (
	"fmt"

	"github.com/storesim-xyz/go-storesim/crisis"
)

// Emergency action pricing.
const (
	emergencyRestockMarkup = 2.0   // unit cost multiplier for same-day stock
	loanPrincipal          = 500.0 // cash injected by an emergency loan
	loanInterest           = 50.0  // interest accrued to accounts payable
	intelligenceFee        = 100.0
	supplierSwitchFee      = 25.0
)

// EmergencyParams carries the per-action arguments. Only restock uses
// Product and Quantity.
type EmergencyParams struct {
	Product  string
	Quantity int
}

// EmergencyResult reports what an emergency action did.
type EmergencyResult struct {
	Action      crisis.Action
	Cost        float64
	CashGranted float64
	Intel       string
	Message     string
}

// ExecuteEmergencyAction runs one emergency response against the store's
// finances and inventory. Actions that cost cash fail with
// InsufficientFundsError when the balance is short; the advisory-only
// actions return an error because they map to ordinary price and order
// operations instead.
func (e *Engine) ExecuteEmergencyAction(action crisis.Action, params EmergencyParams) (EmergencyResult, error) {
	switch action {
	case crisis.EmergencyRestock:
		return e.emergencyRestock(params.Product, params.Quantity)
	case crisis.TakeLoan:
		return e.takeLoan()
	case crisis.CompetitorIntelligence:
		return e.buyIntelligence()
	case crisis.SwitchSupplier:
		return e.switchSupplier(params.Product)
	case crisis.RaisePrices, crisis.LiquidateInventory:
		return EmergencyResult{}, fmt.Errorf("action %q is advisory: adjust prices through SetPrices", action)
	default:
		return EmergencyResult{}, fmt.Errorf("unknown emergency action %q", action)
	}
}

// emergencyRestock buys stock at double cost with same-day arrival,
// skipping the supplier network entirely.
func (e *Engine) emergencyRestock(product string, qty int) (EmergencyResult, error) {
	if qty <= 0 {
		return EmergencyResult{}, &ValidationError{Product: product, Reason: ReasonInvalidQuantity}
	}
	p, ok := e.cat.Product(product)
	if !ok {
		return EmergencyResult{}, &ValidationError{Product: product, Reason: ReasonUnknownProduct}
	}

	cost := p.Cost * float64(qty) * emergencyRestockMarkup
	if cost > e.state.Cash {
		return EmergencyResult{}, &InsufficientFundsError{Product: product, Need: cost, Have: e.state.Cash}
	}

	e.state.Cash -= cost
	e.state.Ledger.AddBatch(product, qty, e.state.Day, expirationDay(p, e.state.Day))

	return EmergencyResult{
		Action:  crisis.EmergencyRestock,
		Cost:    cost,
		Message: fmt.Sprintf("emergency restock: %d x %s for $%.2f", qty, product, cost),
	}, nil
}

// takeLoan injects $500 of cash. Only the interest hits accounts payable;
// the principal is tracked as crisis-response cash.
func (e *Engine) takeLoan() (EmergencyResult, error) {
	e.state.Cash += loanPrincipal
	e.state.CrisisResponseCash += loanPrincipal
	e.state.AccountsPayable += loanInterest

	return EmergencyResult{
		Action:      crisis.TakeLoan,
		Cost:        loanInterest,
		CashGranted: loanPrincipal,
		Message:     fmt.Sprintf("emergency loan: $%.2f received, $%.2f interest due", loanPrincipal, loanInterest),
	}, nil
}

func (e *Engine) buyIntelligence() (EmergencyResult, error) {
	if intelligenceFee > e.state.Cash {
		return EmergencyResult{}, &InsufficientFundsError{Need: intelligenceFee, Have: e.state.Cash}
	}
	e.state.Cash -= intelligenceFee

	return EmergencyResult{
		Action:  crisis.CompetitorIntelligence,
		Cost:    intelligenceFee,
		Intel:   e.crises.IntelReport(),
		Message: fmt.Sprintf("competitor intelligence purchased for $%.2f", intelligenceFee),
	}, nil
}

// switchSupplier pays the expediting fee. Supplier choice is scored fresh
// on every order, so the switch itself takes effect on the next
// ProcessOrders call.
func (e *Engine) switchSupplier(product string) (EmergencyResult, error) {
	if product != "" && !e.cat.Has(product) {
		return EmergencyResult{}, &ValidationError{Product: product, Reason: ReasonUnknownProduct}
	}
	if supplierSwitchFee > e.state.Cash {
		return EmergencyResult{}, &InsufficientFundsError{Product: product, Need: supplierSwitchFee, Have: e.state.Cash}
	}
	e.state.Cash -= supplierSwitchFee

	return EmergencyResult{
		Action:  crisis.SwitchSupplier,
		Cost:    supplierSwitchFee,
		Message: fmt.Sprintf("supplier switch fee $%.2f paid; next order rescores suppliers", supplierSwitchFee),
	}, nil
}
