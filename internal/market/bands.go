// Package market positions a suggested price against the expected price
// range of a sales zone or channel.
package market

// Band is the expected price range of a zone, expressed as multipliers of
// the unit cost.
type Band struct {
	Min   float64 `json:"min"`
	Max   float64 `json:"max"`
	Label string  `json:"label"`
}

// Group clusters zones for listing.
type Group string

const (
	GroupMetro    Group = "metro"
	GroupProvince Group = "province"
	GroupDigital  Group = "digital"
)

// DefaultZone is used for unknown zone ids.
const DefaultZone = "lima_centro"

// Zone is one entry of the reference table.
type Zone struct {
	ID    string `json:"id"`
	Group Group  `json:"group"`
	Band
}

// zones is the static reference table, in display order.
var zones = []Zone{
	{"lima_centro", GroupMetro, Band{1.25, 1.40, "Lima: Mercado Central / Gamarra"}},
	{"lima_norte", GroupMetro, Band{1.30, 1.45, "Lima Norte: Mercados Populares"}},
	{"lima_sur", GroupMetro, Band{1.35, 1.55, "Lima Sur: Zonas Residenciales"}},
	{"lima_top", GroupMetro, Band{1.80, 2.50, "Lima Moderna: San Isidro / Miraflores"}},
	{"prov_norte", GroupProvince, Band{1.35, 1.60, "Norte (Trujillo/Piura/Chiclayo)"}},
	{"prov_sur", GroupProvince, Band{1.40, 1.65, "Sur (Arequipa/Cusco/Tacna)"}},
	{"prov_centro", GroupProvince, Band{1.30, 1.50, "Sierra Central (Huancayo/Ayacucho)"}},
	{"prov_selva", GroupProvince, Band{1.45, 1.75, "Selva (Iquitos/Tarapoto) - Flete Alto"}},
	{"web_marketplace", GroupDigital, Band{1.50, 1.80, "Marketplace (ML/Linio/Falabella)"}},
	{"web_social", GroupDigital, Band{1.20, 1.40, "Redes Sociales (FB/IG/TikTok)"}},
	{"web_propia", GroupDigital, Band{1.60, 2.20, "E-commerce Propio (Web)"}},
}

var bandByZone = func() map[string]Band {
	m := make(map[string]Band, len(zones))
	for _, z := range zones {
		m[z.ID] = z.Band
	}
	return m
}()

// Zones returns a copy of the reference table in display order.
func Zones() []Zone {
	out := make([]Zone, len(zones))
	copy(out, zones)
	return out
}

// Lookup returns the band for id, falling back to DefaultZone.
func Lookup(id string) Band {
	if b, ok := bandByZone[id]; ok {
		return b
	}
	return bandByZone[DefaultZone]
}
