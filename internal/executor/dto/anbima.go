package dto

// AnbimaSecondaryMarketItem is one row of the ANBIMA secondary-market feed for private credit
// (debentures, CRI, CRA) and bank instruments.
type AnbimaSecondaryMarketItem struct {
	Code              string   `json:"codigo_ativo"`
	AssetType         string   `json:"tipo_ativo"`
	Issuer            string   `json:"emissor"`
	Indexer           string   `json:"indexador"`
	MaturityDate      string   `json:"data_vencimento"`
	ReferenceDate     string   `json:"data_referencia"`
	IndicativeRate    *float64 `json:"taxa_indicativa"`
	UnitPrice         *float64 `json:"pu"`
	StandardDeviation *float64 `json:"desvio_padrao"`
	Duration          *float64 `json:"duration"`
}

// AnbimaPublicBondItem is one row of the ANBIMA federal bonds feed (Tesouro).
type AnbimaPublicBondItem struct {
	BondType       string   `json:"tipo_titulo"`
	SelicCode      string   `json:"codigo_selic"`
	MaturityDate   string   `json:"data_vencimento"`
	ReferenceDate  string   `json:"data_referencia"`
	IndicativeRate *float64 `json:"taxa_indicativa"`
	UnitPrice      *float64 `json:"pu"`
	StandardDev    *float64 `json:"desvio_padrao"`
}
