package market

// Status is the position of a price inside its zone band.
type Status string

const (
	StatusCheap       Status = "cheap"
	StatusCompetitive Status = "competitive"
	StatusExpensive   Status = "expensive"
)

var messages = map[Status]string{
	StatusCheap:       "Precio riesgoso (Muy bajo).",
	StatusCompetitive: "Precio Óptimo.",
	StatusExpensive:   "Precio elevado para la zona.",
}

// Message returns the fixed advisory text of s.
func (s Status) Message() string { return messages[s] }

// MessageCode is the i18n code of the advisory text.
func (s Status) MessageCode() string { return "market_" + string(s) }

// Assessment is the market position of a suggested price.
type Assessment struct {
	MarketLow     float64 `json:"market_low"`
	MarketHigh    float64 `json:"market_high"`
	MarketAverage float64 `json:"market_average"`
	Status        Status  `json:"status"`
	Message       string  `json:"message"`
	ZoneLabel     string  `json:"zone_label"`
}

// Classify positions suggestedPrice inside the band of zoneID. It returns
// nil when unitCost is not positive since there is nothing to compare.
// Both band edges count as competitive.
func Classify(unitCost, suggestedPrice float64, zoneID string) *Assessment {
	if unitCost <= 0 {
		return nil
	}
	band := Lookup(zoneID)

	a := &Assessment{
		MarketLow:  unitCost * band.Min,
		MarketHigh: unitCost * band.Max,
		ZoneLabel:  band.Label,
	}
	a.MarketAverage = (a.MarketLow + a.MarketHigh) / 2

	switch {
	case suggestedPrice < a.MarketLow:
		a.Status = StatusCheap
	case suggestedPrice > a.MarketHigh:
		a.Status = StatusExpensive
	default:
		a.Status = StatusCompetitive
	}
	a.Message = a.Status.Message()
	return a
}
