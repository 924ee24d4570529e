package pricing

// Result holds every derived figure of a computation.
type Result struct {
	BasePriceInBase      float64 `json:"base_price_in_base"`
	IndirectCostsTotal   float64 `json:"indirect_costs_total"`
	TotalAcquisitionCost float64 `json:"total_acquisition_cost"`
	TotalUnits           float64 `json:"total_units"`
	UnitCost             float64 `json:"unit_cost"`
	SuggestedPrice       float64 `json:"suggested_price"`
	ProfitPerUnit        float64 `json:"profit_per_unit"`
}

// Compute derives the unit cost and suggested price for in, converting a
// foreign invoice total with exchangeRate. It never fails: when no units
// were bought the unit cost is 0.
func Compute(in Input, exchangeRate float64) Result {
	var r Result

	r.BasePriceInBase = in.PriceTotal.Float()
	if in.IsForeign() {
		r.BasePriceInBase *= exchangeRate
	}

	r.IndirectCostsTotal = in.Costs.Total()
	r.TotalAcquisitionCost = r.BasePriceInBase + r.IndirectCostsTotal

	r.TotalUnits = in.Quantity.Float()
	if !in.IsLoose() {
		r.TotalUnits *= in.UnitsPerPackage.Float()
	}

	if r.TotalUnits > 0 {
		r.UnitCost = r.TotalAcquisitionCost / r.TotalUnits
	}
	r.SuggestedPrice = r.UnitCost * (1 + in.MarginPercent.Float()/100)
	r.ProfitPerUnit = r.SuggestedPrice - r.UnitCost
	return r
}
