// Package pricing turns a purchase invoice into a unit cost and a suggested
// retail price. Everything here is pure: the same Input and exchange rate
// always produce the same Result.
package pricing

// UnitType says how the purchased quantity is counted.
type UnitType string

const (
	UnitBoxed UnitType = "boxed"
	UnitLoose UnitType = "loose"
)

// Currency of the invoice total.
type Currency string

const (
	CurrencyBase    Currency = "base"
	CurrencyForeign Currency = "foreign"
)

// IndirectCosts are the non-invoice costs added to the purchase price.
type IndirectCosts struct {
	Transport Amount `json:"transport"`
	Load      Amount `json:"load"`
	Labor     Amount `json:"labor"`
	Storage   Amount `json:"storage"`
	Ads       Amount `json:"ads"`
	Sourcing  Amount `json:"sourcing"`
	Other     Amount `json:"other"`
}

// Total sums the seven categories. Negative entries are kept as given.
func (c IndirectCosts) Total() float64 {
	return c.Transport.Float() +
		c.Load.Float() +
		c.Labor.Float() +
		c.Storage.Float() +
		c.Ads.Float() +
		c.Sourcing.Float() +
		c.Other.Float()
}

// Input is a snapshot of the calculator form.
type Input struct {
	ProductName string `json:"product_name"`
	Brand       string `json:"brand"`
	Supplier    string `json:"supplier"`
	Zone        string `json:"zone"`

	Quantity        Amount   `json:"quantity"`
	UnitType        UnitType `json:"unit_type"`
	UnitsPerPackage Amount   `json:"units_per_package"`

	Currency   Currency `json:"currency"`
	PriceTotal Amount   `json:"price_total"`

	Costs         IndirectCosts `json:"costs"`
	MarginPercent Amount        `json:"margin_percent"`
}

// IsLoose reports whether quantity counts single units. Any value other than
// "loose" is treated as boxed.
func (in Input) IsLoose() bool { return in.UnitType == UnitLoose }

// IsForeign reports whether PriceTotal must be converted. Any value other
// than "foreign" is treated as the base currency.
func (in Input) IsForeign() bool { return in.Currency == CurrencyForeign }

// DefaultInput mirrors the calculator's initial form state.
func DefaultInput() Input {
	return Input{
		Zone:            "lima_centro",
		Quantity:        1,
		UnitType:        UnitBoxed,
		UnitsPerPackage: 12,
		Currency:        CurrencyBase,
		MarginPercent:   30,
	}
}
