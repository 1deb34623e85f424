package model

// Row is one render-ready display row. It is a pure projection: the
// presentation layer owns turning it into markup.
type Row struct {
	Emoji string
	Label string
	Unit  string

	Value          float64
	FormattedValue string
	NegativeValue  bool

	CostApplicable bool
	Cost           float64
	FormattedCost  string
	Credit         bool

	// Warning carries a non-fatal per-row problem (unresolved rate entity,
	// malformed cost formula). Empty when the row is clean.
	Warning string
}

// Summary is the full output of one refresh cycle.
type Summary struct {
	Rows            []Row
	Total           float64
	TotalApplicable bool
	FormattedTotal  string
	Window          TimeWindow

	// Stale is set when the statistics fetch failed and every quantity
	// degraded to zero for this cycle.
	Stale bool
}
