package handlers

import (
	"net/http"

	"github.com/diewo77/costopro/httpx"
	"github.com/diewo77/costopro/i18n"
	"github.com/diewo77/costopro/internal/market"
	"github.com/diewo77/costopro/internal/money"
	"github.com/diewo77/costopro/internal/pricing"
	"github.com/diewo77/costopro/internal/services"
	"github.com/rs/zerolog"
)

type PricingHandler struct {
	catalog *services.CatalogService
	rates   *services.RateBook
	log     zerolog.Logger
}

func NewPricingHandler(catalog *services.CatalogService, rates *services.RateBook, log zerolog.Logger) *PricingHandler {
	return &PricingHandler{catalog: catalog, rates: rates, log: log}
}

type zoneGroup struct {
	Group market.Group  `json:"group"`
	Label string        `json:"label"`
	Zones []market.Zone `json:"zones"`
}

// Zones lists the market zones grouped for a selector.
func (h *PricingHandler) Zones(w http.ResponseWriter, r *http.Request) {
	var groups []zoneGroup
	for _, z := range market.Zones() {
		if n := len(groups); n == 0 || groups[n-1].Group != z.Group {
			groups = append(groups, zoneGroup{Group: z.Group, Label: i18n.T(lang(r), "zone_group_"+string(z.Group))})
		}
		groups[len(groups)-1].Zones = append(groups[len(groups)-1].Zones, z)
	}
	httpx.JSON(w, http.StatusOK, map[string]any{"default": market.DefaultZone, "groups": groups})
}

type quoteResponse struct {
	*services.Quote
	Advice    string        `json:"advice,omitempty"`
	Formatted money.Amounts `json:"formatted"`
}

func newQuoteResponse(r *http.Request, q *services.Quote) quoteResponse {
	resp := quoteResponse{
		Quote: q,
		Formatted: formatter(r).FormatAll(map[string]float64{
			"base_price_in_base":     q.Result.BasePriceInBase,
			"indirect_costs_total":   q.Result.IndirectCostsTotal,
			"total_acquisition_cost": q.Result.TotalAcquisitionCost,
			"unit_cost":              q.Result.UnitCost,
			"suggested_price":        q.Result.SuggestedPrice,
			"profit_per_unit":        q.Result.ProfitPerUnit,
		}),
	}
	if q.Assessment != nil {
		resp.Advice = i18n.T(lang(r), q.Assessment.Status.MessageCode())
		resp.Formatted["market_low"] = formatter(r).Format(q.Assessment.MarketLow)
		resp.Formatted["market_high"] = formatter(r).Format(q.Assessment.MarketHigh)
		resp.Formatted["market_average"] = formatter(r).Format(q.Assessment.MarketAverage)
	}
	return resp
}

// Compute prices a form snapshot without saving it. Missing fields take
// the calculator defaults.
func (h *PricingHandler) Compute(w http.ResponseWriter, r *http.Request) {
	in := pricing.DefaultInput()
	if !decode(w, r, &in) {
		return
	}
	q, err := h.catalog.Preview(services.SessionFromContext(r.Context()), in)
	if err != nil {
		writeError(w, r, h.log, err)
		return
	}
	httpx.JSON(w, http.StatusOK, newQuoteResponse(r, q))
}

type rateRequest struct {
	Rate pricing.Amount `json:"rate"`
}

// Rate returns the current exchange rate.
func (h *PricingHandler) Rate(w http.ResponseWriter, r *http.Request) {
	httpx.JSON(w, http.StatusOK, map[string]float64{"rate": h.rates.Rate()})
}

// SetRate replaces the exchange rate.
func (h *PricingHandler) SetRate(w http.ResponseWriter, r *http.Request) {
	var req rateRequest
	if !decode(w, r, &req) {
		return
	}
	if err := h.rates.SetRate(services.SessionFromContext(r.Context()), req.Rate.Float()); err != nil {
		writeError(w, r, h.log, err)
		return
	}
	h.log.Info().Float64("rate", req.Rate.Float()).Msg("exchange rate updated")
	httpx.JSON(w, http.StatusOK, map[string]float64{"rate": h.rates.Rate()})
}
