package domain

// PriceList holds the configured per-unit prices in integer currency units.
type PriceList struct {
	PlayerLine   int
	BusinessLine int
}

// DefaultPrices returns the standard fundraiser price list.
func DefaultPrices() PriceList {
	return PriceList{PlayerLine: 20, BusinessLine: 200}
}

// Total computes the charge for one order. Business lines only count when a
// business design was requested. Inputs are pre-clamped by the caller; the
// computation is pure.
func (p PriceList) Total(playerLines int, businessRequested bool, businessLines int) int {
	total := playerLines * p.PlayerLine
	if businessRequested {
		total += businessLines * p.BusinessLine
	}
	return total
}
