package dto

// CVMOffer is a public offering as exposed by the CVM open data API.
type CVMOffer struct {
	OfferNumber  string   `json:"numero_oferta"`
	Issuer       string   `json:"nome_emissor"`
	SecurityType string   `json:"tipo_ativo"`
	Indexer      string   `json:"indexador"`
	Rate         *float64 `json:"taxa"`
	TotalVolume  *float64 `json:"valor_total"`
	MaturityDate string   `json:"data_vencimento"`
	Status       string   `json:"status"`
}
