package dto

// BrapiQuoteResponse is the body of GET /api/quote/{ticker}.
type BrapiQuoteResponse struct {
	Results   []BrapiQuoteResult `json:"results"`
	Error     bool               `json:"error"`
	Message   string             `json:"message"`
	RequestAt string             `json:"requestedAt"`
}

// BrapiQuoteResult is one ticker of a quote response.
type BrapiQuoteResult struct {
	Symbol               string               `json:"symbol"`
	ShortName            string               `json:"shortName"`
	LongName             string               `json:"longName"`
	Currency             string               `json:"currency"`
	RegularMarketPrice   float64              `json:"regularMarketPrice"`
	AverageDailyVolume3M int64                `json:"averageDailyVolume3Month"`
	HistoricalDataPrice  []BrapiHistoricalBar `json:"historicalDataPrice"`
}

// BrapiHistoricalBar is one daily bar; Date is a unix timestamp.
type BrapiHistoricalBar struct {
	Date          int64    `json:"date"`
	Open          *float64 `json:"open"`
	High          *float64 `json:"high"`
	Low           *float64 `json:"low"`
	Close         *float64 `json:"close"`
	Volume        *int64   `json:"volume"`
	AdjustedClose *float64 `json:"adjustedClose"`
}

// BrapiErrorResponse is returned with non-2xx statuses.
type BrapiErrorResponse struct {
	Error   bool   `json:"error"`
	Message string `json:"message"`
}
