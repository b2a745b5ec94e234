package models

// EfficiencyMetric is the per-school efficiency summary with its statistical neighbours
type EfficiencyMetric struct {
	URN          int64                 `json:"urn" toml:"urn" yaml:"urn"`
	Name         string                `json:"name" toml:"name" yaml:"name"`
	OverallPhase string                `json:"overall_phase" toml:"overall_phase" yaml:"overall_phase"`
	TermYears    string                `json:"term_years" toml:"term_years" yaml:"term_years"`
	Rank         int                   `json:"rank" toml:"rank" yaml:"rank"`
	DecileRank   int                   `json:"decile_rank" toml:"decile_rank" yaml:"decile_rank"`
	Neighbours   []EfficiencyNeighbour `json:"neighbours" toml:"neighbours" yaml:"neighbours"`
}

// EfficiencyNeighbour is one school in the efficiency comparison set
type EfficiencyNeighbour struct {
	URN        int64  `json:"urn" toml:"urn" yaml:"urn"`
	Name       string `json:"name" toml:"name" yaml:"name"`
	Rank       int    `json:"rank" toml:"rank" yaml:"rank"`
	DecileRank int    `json:"decile_rank" toml:"decile_rank" yaml:"decile_rank"`
}
