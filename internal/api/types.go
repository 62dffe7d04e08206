package api

// TickersResponse from GET /v2/reference/tickers
type TickersResponse struct {
	Page    int         `json:"page"`
	PerPage int         `json:"perPage"`
	Count   int         `json:"count"`
	Tickers []APITicker `json:"tickers"`
}

// APITicker is one instrument summary from the catalog list endpoint.
type APITicker struct {
	Ticker      string `json:"ticker"`
	Name        string `json:"name"`
	Market      string `json:"market"`
	Locale      string `json:"locale"`
	Currency    string `json:"currency"`
	PrimaryExch string `json:"primaryExch"`
	Active      bool   `json:"active"`
	Updated     string `json:"updated"`
}

// APICompany is the detail record from GET /v1/meta/symbols/{symbol}/company.
// Its Active flag is authoritative; the list endpoint's flag may disagree,
// and the detail record wins.
type APICompany struct {
	Symbol      string   `json:"symbol"`
	Name        string   `json:"name"`
	Description string   `json:"description"`
	Tags        []string `json:"tags"`
	Similar     []string `json:"similar"`
	Industry    string   `json:"industry"`
	Sector      string   `json:"sector"`
	Exchange    string   `json:"exchange"`
	Active      bool     `json:"active"`

	// Supplementary fields the endpoint returns; not persisted.
	Logo     string `json:"logo"`
	CEO      string `json:"ceo"`
	URL      string `json:"url"`
	ListDate string `json:"listdate"`
	Country  string `json:"hq_country"`
	Updated  string `json:"updated"`
}
