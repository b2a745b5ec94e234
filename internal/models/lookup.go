package models

// SizeLookup maps a pupil-count range to a size band for one peer group.
// Rows for the same phase, sixth-form flag and term partition the pupil-count axis.
type SizeLookup struct {
	OverallPhase string   `json:"overall_phase" toml:"overall_phase" yaml:"overall_phase"`
	HasSixthForm bool     `json:"has_sixth_form" toml:"has_sixth_form" yaml:"has_sixth_form"`
	TermYears    string   `json:"term_years" toml:"term_years" yaml:"term_years"`
	NoPupilsMin  float64  `json:"no_pupils_min" toml:"no_pupils_min" yaml:"no_pupils_min"`
	NoPupilsMax  *float64 `json:"no_pupils_max,omitempty" toml:"no_pupils_max" yaml:"no_pupils_max"` // nil = unbounded
	SizeType     string   `json:"size_type" toml:"size_type" yaml:"size_type"`
}

// Contains reports whether pupils falls inside the row's range (both ends inclusive)
func (l *SizeLookup) Contains(pupils float64) bool {
	if pupils < l.NoPupilsMin {
		return false
	}
	return l.NoPupilsMax == nil || pupils <= *l.NoPupilsMax
}

// FSMLookup maps a free-school-meals percentage range to an FSM band
type FSMLookup struct {
	OverallPhase string  `json:"overall_phase" toml:"overall_phase" yaml:"overall_phase"`
	HasSixthForm bool    `json:"has_sixth_form" toml:"has_sixth_form" yaml:"has_sixth_form"`
	TermYears    string  `json:"term_years" toml:"term_years" yaml:"term_years"`
	FSMMin       float64 `json:"fsm_min" toml:"fsm_min" yaml:"fsm_min"`
	FSMMax       float64 `json:"fsm_max" toml:"fsm_max" yaml:"fsm_max"`
	FSMScale     string  `json:"fsm_scale" toml:"fsm_scale" yaml:"fsm_scale"`
}

// Contains reports whether fsm falls inside [FSMMin, FSMMax]
func (l *FSMLookup) Contains(fsm float64) bool {
	return fsm >= l.FSMMin && fsm <= l.FSMMax
}

// RatingThreshold is one band of a metric's rating scale for a peer group.
// SizeType and FSMScale are empty when the scale is not keyed on that axis.
type RatingThreshold struct {
	AreaName     string   `json:"area_name" toml:"area_name" yaml:"area_name"`
	OverallPhase string   `json:"overall_phase" toml:"overall_phase" yaml:"overall_phase"`
	HasSixthForm bool     `json:"has_sixth_form" toml:"has_sixth_form" yaml:"has_sixth_form"`
	LondonWeight string   `json:"london_weight" toml:"london_weight" yaml:"london_weight"`
	SizeType     string   `json:"size_type,omitempty" toml:"size_type" yaml:"size_type"`
	FSMScale     string   `json:"fsm_scale,omitempty" toml:"fsm_scale" yaml:"fsm_scale"`
	TermYears    string   `json:"term_years" toml:"term_years" yaml:"term_years"`
	ScoreLow     float64  `json:"score_low" toml:"score_low" yaml:"score_low"`
	ScoreHigh    *float64 `json:"score_high,omitempty" toml:"score_high" yaml:"score_high"`
	Rating       string   `json:"rating" toml:"rating" yaml:"rating"`
	RatingText   string   `json:"rating_text" toml:"rating_text" yaml:"rating_text"`
}

// PeerKeys is the peer-group key tuple used to select rating thresholds.
// A nil SizeType or FSMScale means no band matched and only rows not keyed
// on that axis are selected.
type PeerKeys struct {
	OverallPhase string
	HasSixthForm bool
	LondonWeight string
	SizeType     *string
	FSMScale     *string
	TermYears    string
}
