package models

// Overall phase values used by the peer-group tables
const (
	PhaseNursery         = "Nursery"
	PhasePrimary         = "Primary"
	PhaseSecondary       = "Secondary"
	PhaseAllThrough      = "All-through"
	PhaseSixteenPlus     = "16 plus"
	PhaseSpecial         = "Special"
	PhasePupilReferral   = "Pupil referral unit"
	PhaseInfantAndJunior = "Infant and junior"
)

// Establishment is the contextual record of a school, academy or federation.
// It is owned by the upstream ingestion process and read-only here.
// IsFederation marks the federation entity itself; member schools only carry FederationUID.
type Establishment struct {
	URN                  int64    `json:"urn" toml:"urn" yaml:"urn"`
	Name                 string   `json:"name" toml:"name" yaml:"name"`
	Phase                string   `json:"phase" toml:"phase" yaml:"phase"`
	OverallPhase         string   `json:"overall_phase" toml:"overall_phase" yaml:"overall_phase"`
	HasSixthForm         bool     `json:"has_sixth_form" toml:"has_sixth_form" yaml:"has_sixth_form"`
	LondonWeight         string   `json:"london_weight" toml:"london_weight" yaml:"london_weight"`
	OfstedRating         string   `json:"ofsted_rating" toml:"ofsted_rating" yaml:"ofsted_rating"`
	OfstedLastInspection string   `json:"ofsted_last_inspection" toml:"ofsted_last_inspection" yaml:"ofsted_last_inspection"`
	FinanceType          string   `json:"finance_type" toml:"finance_type" yaml:"finance_type"`
	IsFederation         bool     `json:"is_federation" toml:"is_federation" yaml:"is_federation"`
	FederationUID        int64    `json:"federation_uid,omitempty" toml:"federation_uid" yaml:"federation_uid"`
	FederationName       string   `json:"federation_name,omitempty" toml:"federation_name" yaml:"federation_name"`
	TrustUID             int64    `json:"trust_uid,omitempty" toml:"trust_uid" yaml:"trust_uid"`
	TrustName            string   `json:"trust_name,omitempty" toml:"trust_name" yaml:"trust_name"`
	CompanyNumber        *int     `json:"company_number,omitempty" toml:"company_number" yaml:"company_number"`
	NumberOfPupils       *float64 `json:"number_of_pupils,omitempty" toml:"number_of_pupils" yaml:"number_of_pupils"`
	Active               bool     `json:"active" toml:"active" yaml:"active"`
}

// DisplayName is the name a report is published under; federations report under the federation name
func (e *Establishment) DisplayName() string {
	if e.IsFederation && e.FederationName != "" {
		return e.FederationName
	}
	return e.Name
}
