package models

import (
	"fmt"
	"strings"
)

// FinanceType identifies which financial data set an establishment reports into.
// Each type loads on its own schedule and so has its own latest data year.
type FinanceType string

const (
	FinanceTypeMaintained FinanceType = "Maintained"
	FinanceTypeAcademies  FinanceType = "Academies"
	FinanceTypeMAT        FinanceType = "MAT"
	FinanceTypeFederation FinanceType = "Federation"
)

// FinanceTypes lists every known finance type in a stable order
var FinanceTypes = []FinanceType{
	FinanceTypeMaintained,
	FinanceTypeAcademies,
	FinanceTypeMAT,
	FinanceTypeFederation,
}

// ParseFinanceType converts free text into a FinanceType.
// Matching is case-insensitive and ignores surrounding whitespace.
func ParseFinanceType(s string) (FinanceType, error) {
	value := strings.TrimSpace(s)
	for _, ft := range FinanceTypes {
		if strings.EqualFold(value, string(ft)) {
			return ft, nil
		}
	}
	return "", fmt.Errorf("%w: %q", ErrUnknownFinanceType, s)
}

func (f FinanceType) String() string {
	return string(f)
}

// CentralFinancing selects whether a trust's centrally held funds are apportioned
// into an academy's figures
type CentralFinancing string

const (
	CentralFinancingInclude CentralFinancing = "Include"
	CentralFinancingExclude CentralFinancing = "Exclude"
)

// ParseCentralFinancing parses a configuration value, defaulting to Include when empty
func ParseCentralFinancing(s string) (CentralFinancing, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "include":
		return CentralFinancingInclude, nil
	case "exclude":
		return CentralFinancingExclude, nil
	default:
		return "", fmt.Errorf("invalid central financing mode: %q", s)
	}
}
