package search

// popularAssets seeds a fresh or cleared cache.
var popularAssets = []CachedAsset{
	{Ticker: "PETR4", DisplayName: "Petrobras PN", AssetType: "stock", Issuer: "Petróleo Brasileiro S.A."},
	{Ticker: "VALE3", DisplayName: "Vale ON", AssetType: "stock", Issuer: "Vale S.A."},
	{Ticker: "ITUB4", DisplayName: "Itaú Unibanco PN", AssetType: "stock", Issuer: "Itaú Unibanco Holding S.A."},
	{Ticker: "BBDC4", DisplayName: "Bradesco PN", AssetType: "stock", Issuer: "Banco Bradesco S.A."},
	{Ticker: "BBAS3", DisplayName: "Banco do Brasil ON", AssetType: "stock", Issuer: "Banco do Brasil S.A."},
	{Ticker: "ABEV3", DisplayName: "Ambev ON", AssetType: "stock", Issuer: "Ambev S.A."},
	{Ticker: "WEGE3", DisplayName: "WEG ON", AssetType: "stock", Issuer: "WEG S.A."},
	{Ticker: "B3SA3", DisplayName: "B3 ON", AssetType: "stock", Issuer: "B3 S.A. Brasil Bolsa Balcão"},
	{Ticker: "BOVA11", DisplayName: "iShares Ibovespa", AssetType: "etf", Issuer: "BlackRock"},
	{Ticker: "IVVB11", DisplayName: "iShares S&P 500", AssetType: "etf", Issuer: "BlackRock"},
	{Ticker: "HGLG11", DisplayName: "CSHG Logística", AssetType: "fii", Issuer: "Credit Suisse Hedging-Griffo"},
	{Ticker: "MXRF11", DisplayName: "Maxi Renda", AssetType: "fii", Issuer: "XP Investimentos"},
	{Ticker: "KNRI11", DisplayName: "Kinea Renda Imobiliária", AssetType: "fii", Issuer: "Kinea Investimentos"},
	{Ticker: "TESOURO-SELIC", DisplayName: "Tesouro Selic", AssetType: "titulo_publico", Issuer: "Tesouro Nacional"},
	{Ticker: "TESOURO-IPCA", DisplayName: "Tesouro IPCA+", AssetType: "titulo_publico", Issuer: "Tesouro Nacional"},
}

// PopularAssets returns a fresh copy of the seed list.
func PopularAssets() []CachedAsset {
	return append([]CachedAsset(nil), popularAssets...)
}
