// Package types defines the fact records extracted from eSocial events and
// the aggregate records produced for the income statements.
package types

import (
	"fmt"

	"github.com/shopspring/decimal"
)

// PersonID is the individual taxpayer identifier (CPF). It is the identity
// key across all fact collections.
type PersonID string

// String returns the string representation
func (p PersonID) String() string {
	return string(p)
}

// Period is a pay period token: "YYYY-MM" for a monthly competência, or a
// bare "YYYY" for the annual (13th-salary) competência. Lexicographic
// ordering of year-month tokens coincides with chronological ordering.
type Period string

// IsAnnual reports whether the token denotes the annual (13th-salary)
// competência. Compatibility rule carried over from the source documents:
// any 4-character token counts as annual, so a malformed 4-character period
// bypasses payment confirmation. Kept as-is.
func (p Period) IsAnnual() bool {
	return len(p) == 4
}

// MonthPeriod builds the "YYYY-MM" token for a given year and month.
func MonthPeriod(year, month int) Period {
	return Period(fmt.Sprintf("%04d-%02d", year, month))
}

// RemunerationItem is one remuneration line extracted from a computed-pay
// event (S-1200). Immutable once created; many per person and period.
type RemunerationItem struct {
	// Person is the beneficiary CPF
	Person PersonID `json:"cpf"`

	// Period is the competência the line belongs to
	Period Period `json:"period"`

	// PayCode is the employer-defined rubrica code
	PayCode string `json:"pay_code"`

	// Amount is the exact line value
	Amount decimal.Decimal `json:"amount"`

	// Employer is the employer CNPJ
	Employer string `json:"employer"`
}

// PaymentConfirmation marks that a computed competência was actually paid.
// Extracted from payment events (S-1210).
type PaymentConfirmation struct {
	// Person is the beneficiary CPF
	Person PersonID `json:"cpf"`

	// Period is the competência confirmed as paid
	Period Period `json:"period"`
}

// HealthPlanCharge is one supplementary health-plan entry extracted from a
// payment event. Charges are aggregated by (operator, registration).
type HealthPlanCharge struct {
	// Person is the beneficiary CPF
	Person PersonID `json:"cpf"`

	// OperatorCNPJ identifies the health-plan operator
	OperatorCNPJ string `json:"operator_cnpj"`

	// ANSRegistration is the operator's ANS registration id
	ANSRegistration string `json:"ans_registration"`

	// Amount is the charged value
	Amount decimal.Decimal `json:"amount"`
}

// EmploymentSpan bounds a person's expected competência range within a
// calendar year. Dates are kept as the raw "YYYY-MM-DD" strings read from
// the hire/termination events; unparseable dates leave the corresponding
// boundary at its full-year default.
type EmploymentSpan struct {
	// AdmissionDate is the hire date, empty when no hire event was seen
	AdmissionDate string `json:"admission_date,omitempty"`

	// TerminationDate is the termination date, empty while active
	TerminationDate string `json:"termination_date,omitempty"`
}

// PlaceholderName synthesizes a display name for a CPF that never appeared
// with a worker name in any document.
func PlaceholderName(p PersonID) string {
	return fmt.Sprintf("FUNCIONÁRIO CPF %s", p)
}
