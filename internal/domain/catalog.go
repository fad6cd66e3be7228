package domain

// Price is a display amount in the smallest currency unit.
// Country selection determines displayed price/currency only; it does
// not alter the sync or notification contracts.
type Price struct {
	Amount   int64  `json:"amount"`
	Currency string `json:"currency"`
}

type LegalService struct {
	Slug   string            `json:"slug"`
	Name   string            `json:"name"`
	Prices map[Country]Price `json:"-"`
}

func (s LegalService) PriceFor(c Country) Price {
	return s.Prices[c]
}

var services = []LegalService{
	{
		Slug: "consulta-legal",
		Name: "Legal Consultation",
		Prices: map[Country]Price{
			CountryRD:  {Amount: 250000, Currency: "DOP"},
			CountryUSA: {Amount: 7500, Currency: "USD"},
		},
	},
	{
		Slug: "divorcio-express",
		Name: "Express Divorce",
		Prices: map[Country]Price{
			CountryRD:  {Amount: 4500000, Currency: "DOP"},
			CountryUSA: {Amount: 120000, Currency: "USD"},
		},
	},
	{
		Slug: "constitucion-empresa",
		Name: "Company Formation",
		Prices: map[Country]Price{
			CountryRD:  {Amount: 3500000, Currency: "DOP"},
			CountryUSA: {Amount: 95000, Currency: "USD"},
		},
	},
	{
		Slug: "poder-notarial",
		Name: "Power of Attorney",
		Prices: map[Country]Price{
			CountryRD:  {Amount: 800000, Currency: "DOP"},
			CountryUSA: {Amount: 25000, Currency: "USD"},
		},
	},
}

func Services() []LegalService {
	out := make([]LegalService, len(services))
	copy(out, services)
	return out
}

func FindService(slug string) (LegalService, bool) {
	for _, s := range services {
		if s.Slug == slug {
			return s, true
		}
	}
	return LegalService{}, false
}
