package pricing

import (
	"math"

	"servicemarket/internal/apperr"
)

// Split is the monetary breakdown fixed on a booking at creation time.
type Split struct {
	Total            float64
	CallingCharge    float64
	Remaining        float64
	CommissionAmount float64
	ProviderAmount   float64
}

// ComputeSplit derives the full financial breakdown for one cart item.
// Pure and deterministic: the commission rate must already be the
// caller's snapshot of the provider's rate.
//
//	total      = unitPrice * quantity
//	remaining  = total - callingCharge (callingCharge capped at total)
//	commission = remaining * commissionPct / 100
//	provider   = remaining - commission
//
// All figures rounded half-up to the currency's minor unit.
func ComputeSplit(unitPrice float64, quantity int, callingCharge, commissionPct float64) (Split, error) {
	if unitPrice < 0 {
		return Split{}, apperr.New(apperr.KindInvalidInput, "unit price must not be negative")
	}
	if quantity < 1 {
		return Split{}, apperr.New(apperr.KindInvalidInput, "quantity must be at least 1")
	}
	if callingCharge < 0 {
		return Split{}, apperr.New(apperr.KindInvalidInput, "calling charge must not be negative")
	}
	if commissionPct < 0 || commissionPct > 100 {
		return Split{}, apperr.New(apperr.KindInvalidInput, "commission percentage must be between 0 and 100")
	}

	total := round2(unitPrice * float64(quantity))
	if callingCharge > total {
		callingCharge = total
	}
	callingCharge = round2(callingCharge)
	remaining := round2(total - callingCharge)
	commission := round2(remaining * commissionPct / 100)
	provider := round2(remaining - commission)

	return Split{
		Total:            total,
		CallingCharge:    callingCharge,
		Remaining:        remaining,
		CommissionAmount: commission,
		ProviderAmount:   provider,
	}, nil
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}
