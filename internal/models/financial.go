package models

// FinancialRecord holds one establishment's figures for one reporting term.
// Every numeric fact is optional: an absent figure is not the same as zero.
type FinancialRecord struct {
	ID               int64            `json:"id" toml:"id" yaml:"id"`
	FinanceType      FinanceType      `json:"finance_type" toml:"finance_type" yaml:"finance_type"`
	Term             int              `json:"term" toml:"term" yaml:"term"`
	CentralFinancing CentralFinancing `json:"central_financing,omitempty" toml:"central_financing" yaml:"central_financing"`

	SchoolName   string `json:"school_name" toml:"school_name" yaml:"school_name"`
	Phase        string `json:"phase" toml:"phase" yaml:"phase"`
	OverallPhase string `json:"overall_phase" toml:"overall_phase" yaml:"overall_phase"`
	Has6Form     bool   `json:"has_6_form" toml:"has_6_form" yaml:"has_6_form"`
	LondonWeight string `json:"london_weight" toml:"london_weight" yaml:"london_weight"`

	NoPupils      *float64 `json:"no_pupils,omitempty" toml:"no_pupils" yaml:"no_pupils"`
	PercentageFSM *float64 `json:"percentage_fsm,omitempty" toml:"percentage_fsm" yaml:"percentage_fsm"`

	TeachingStaff               *float64 `json:"teaching_staff,omitempty" toml:"teaching_staff" yaml:"teaching_staff"`
	SupplyStaff                 *float64 `json:"supply_staff,omitempty" toml:"supply_staff" yaml:"supply_staff"`
	EducationSupportStaff       *float64 `json:"education_support_staff,omitempty" toml:"education_support_staff" yaml:"education_support_staff"`
	AdministrativeClericalStaff *float64 `json:"administrative_clerical_staff,omitempty" toml:"administrative_clerical_staff" yaml:"administrative_clerical_staff"`
	OtherStaffCosts             *float64 `json:"other_staff_costs,omitempty" toml:"other_staff_costs" yaml:"other_staff_costs"`
	Premises                    *float64 `json:"premises,omitempty" toml:"premises" yaml:"premises"`
	EducationalSupplies         *float64 `json:"educational_supplies,omitempty" toml:"educational_supplies" yaml:"educational_supplies"`
	Energy                      *float64 `json:"energy,omitempty" toml:"energy" yaml:"energy"`

	TotalIncome      *float64 `json:"total_income,omitempty" toml:"total_income" yaml:"total_income"`
	TotalExpenditure *float64 `json:"total_expenditure,omitempty" toml:"total_expenditure" yaml:"total_expenditure"`
	InYearBalance    *float64 `json:"in_year_balance,omitempty" toml:"in_year_balance" yaml:"in_year_balance"`
	RevenueReserve   *float64 `json:"revenue_reserve,omitempty" toml:"revenue_reserve" yaml:"revenue_reserve"`

	TeachersTotal  *float64 `json:"teachers_total,omitempty" toml:"teachers_total" yaml:"teachers_total"`
	TeachersLeader *float64 `json:"teachers_leader,omitempty" toml:"teachers_leader" yaml:"teachers_leader"`
	WorkforceTotal *float64 `json:"workforce_total,omitempty" toml:"workforce_total" yaml:"workforce_total"`

	Progress8Measure *float64 `json:"progress_8_measure,omitempty" toml:"progress_8_measure" yaml:"progress_8_measure"`
	Progress8Banding *float64 `json:"progress_8_banding,omitempty" toml:"progress_8_banding" yaml:"progress_8_banding"`
	Ks2Progress      *float64 `json:"ks2_progress,omitempty" toml:"ks2_progress" yaml:"ks2_progress"`

	// PeriodCoveredByReturn is the number of months the return covers; fewer than 12 is a partial year
	PeriodCoveredByReturn *int `json:"period_covered_by_return,omitempty" toml:"period_covered_by_return" yaml:"period_covered_by_return"`
}

// TrustFinancialRecord is the trust-level (MAT) record used for trust identity
type TrustFinancialRecord struct {
	UID                int64  `json:"uid" toml:"uid" yaml:"uid"`
	Term               int    `json:"term" toml:"term" yaml:"term"`
	TrustOrCompanyName string `json:"trust_or_company_name" toml:"trust_or_company_name" yaml:"trust_or_company_name"`
	CompanyNumber      *int   `json:"company_number,omitempty" toml:"company_number" yaml:"company_number"`
}

// LatestDataYear records the most recent term loaded for a finance type
type LatestDataYear struct {
	FinanceType FinanceType `json:"finance_type" toml:"finance_type" yaml:"finance_type"`
	Term        int         `json:"term" toml:"term" yaml:"term"`
}
