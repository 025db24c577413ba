package scoring

// Category labels shown to investors.
const (
	CategoryLow      = "Baixo"
	CategoryModerate = "Moderado"
	CategoryHigh     = "Alto"
)

// Family selects the category threshold table. The fixed-income and market-data tables differ
// on purpose and must not be shared.
type Family int

const (
	// FamilyFixedIncome covers ANBIMA and CVM assets: <=6 low, 7-13 moderate, >=14 high.
	FamilyFixedIncome Family = iota
	// FamilyMarketData covers Brapi assets: <=6 low, 7-12 moderate, >=13 high.
	FamilyMarketData
)

type thresholds struct {
	lowMax      int
	moderateMax int
}

var familyThresholds = map[Family]thresholds{
	FamilyFixedIncome: {lowMax: 6, moderateMax: 13},
	FamilyMarketData:  {lowMax: 6, moderateMax: 12},
}

func (f Family) String() string {
	switch f {
	case FamilyFixedIncome:
		return "fixed_income"
	case FamilyMarketData:
		return "market_data"
	default:
		return "unknown"
	}
}

// Categorize maps a final score to its category using the family's table.
func Categorize(score int, family Family) string {
	t, ok := familyThresholds[family]
	if !ok {
		t = familyThresholds[FamilyFixedIncome]
	}
	switch {
	case score <= t.lowMax:
		return CategoryLow
	case score <= t.moderateMax:
		return CategoryModerate
	default:
		return CategoryHigh
	}
}
