package scoring

import (
	"fmt"
	"strings"
)

func formatIndicator(v *float64, format string) string {
	if x, ok := finite(v); ok {
		return fmt.Sprintf(format, x)
	}
	return "não informado"
}

// BuildRiskPrompt renders the Portuguese prompt sent to the text generator for one fixed-income asset.
func BuildRiskPrompt(indicators Indicators, meta AssetMetadata) string {
	var b strings.Builder
	fmt.Fprintf(&b, "Código: %s\n", meta.Code)
	fmt.Fprintf(&b, "Tipo de ativo: %s\n", meta.AssetType)
	fmt.Fprintf(&b, "Emissor: %s\n", valueOr(meta.Issuer, "não informado"))
	fmt.Fprintf(&b, "Indexador: %s\n", valueOr(meta.Indexer, "não informado"))
	fmt.Fprintf(&b, "Taxa: %s\n", formatIndicator(meta.Rate, "%.4f%%"))
	fmt.Fprintf(&b, "Prazo até o vencimento (anos): %s\n", formatIndicator(meta.YearsToMaturity, "%.1f"))
	fmt.Fprintf(&b, "Desvio padrão: %s\n", formatIndicator(indicators.StandardDeviation, "%.4f"))
	fmt.Fprintf(&b, "Liquidez: %s\n", formatIndicator(indicators.Liquidity, "%.2f"))

	return fmt.Sprintf(`Você é um analista de risco de crédito do mercado brasileiro de renda fixa.
Avalie o risco do ativo abaixo em uma escala inteira de 1 (risco mínimo) a 20 (risco máximo).

%s
Critérios de ponderação:
- Qualidade do emissor: 40%%
- Severidade dos indicadores (desvio padrão, taxa acima do mercado): 30%%
- Liquidez: 20%%
- Prazo: 10%%

Responda na primeira linha exatamente no formato "score: N", onde N é um inteiro entre 1 e 20,
seguido de uma justificativa curta.`, b.String())
}

func valueOr(s, fallback string) string {
	if strings.TrimSpace(s) == "" {
		return fallback
	}
	return s
}
