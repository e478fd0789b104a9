// Package audit cross-references the fact store and produces the three
// pending-issue lists the operator reviews before generating statements:
// persons without computed pay (blocking), competência coverage gaps
// (advisory), and computed competências without a matching payment
// (advisory, resolved through the manual correction ledger).
package audit

import (
	"fmt"
	"sort"
	"time"

	"github.com/shopspring/decimal"

	"esocial-informe/core/store"
	"esocial-informe/core/types"
)

// dateLayout is the eSocial event date format.
const dateLayout = "2006-01-02"

// MissingComputation flags a person with payment or health facts but no
// remuneration line at all. Blocking: the person is excluded from
// aggregation for this run.
type MissingComputation struct {
	// Person is the flagged CPF
	Person types.PersonID `json:"cpf"`

	// Name is the resolved display name
	Name string `json:"name"`

	// Note explains the consequence to the operator
	Note string `json:"note"`
}

// CoverageGap flags expected competências absent from a person's computed
// pay. Advisory only. The admission/termination readings and the applied
// range rule are echoed so the operator can tell a missing file from a
// mid-year hire.
type CoverageGap struct {
	// Person is the flagged CPF
	Person types.PersonID `json:"cpf"`

	// Name is the resolved display name
	Name string `json:"name"`

	// Missing lists the absent competências in chronological order
	Missing []types.Period `json:"missing"`

	// Admission is the hire date as read, or a not-found marker
	Admission string `json:"admission"`

	// Termination is the termination date as read, or "Ativo"
	Termination string `json:"termination"`

	// Rule describes the expected range that was applied
	Rule string `json:"rule"`
}

// PendingPayment is one computed (person, competência) pair without a
// payment confirmation. Seeded with an empty date and zero manual tax; the
// operator resolves it through the correction ledger.
type PendingPayment struct {
	// Person is the flagged CPF
	Person types.PersonID `json:"cpf"`

	// Name is the resolved display name
	Name string `json:"name"`

	// Period is the unconfirmed competência
	Period types.Period `json:"period"`

	// PaymentDate is filled by the operator (DD/MM/AAAA free text)
	PaymentDate string `json:"payment_date"`

	// WithheldTax is the manual withheld-tax amount for the competência
	WithheldTax decimal.Decimal `json:"withheld_tax"`
}

// Report is the auditor output for one run.
type Report struct {
	// Year is the audited calendar year
	Year int `json:"year"`

	// MissingComputation is the blocking list
	MissingComputation []MissingComputation `json:"missing_computation"`

	// CoverageGaps is the advisory continuity list
	CoverageGaps []CoverageGap `json:"coverage_gaps"`

	// PendingPayments is the advisory unconfirmed-payment list
	PendingPayments []PendingPayment `json:"pending_payments"`
}

// Clean reports whether no finding of any severity was raised.
func (r *Report) Clean() bool {
	return len(r.MissingComputation) == 0 && len(r.CoverageGaps) == 0 && len(r.PendingPayments) == 0
}

// Blocked returns the set of persons excluded from aggregation.
func (r *Report) Blocked() map[types.PersonID]bool {
	out := make(map[types.PersonID]bool, len(r.MissingComputation))
	for _, f := range r.MissingComputation {
		out[f.Person] = true
	}
	return out
}

// Run cross-references the store's facts for the target calendar year. The
// store is read only; findings are computed over the union of persons seen
// in remuneration or payment facts, in sorted person order. A person
// without any remuneration line short-circuits to the blocking list and is
// never evaluated for the other two.
func Run(facts *store.FactStore, year int) *Report {
	report := &Report{Year: year}

	for _, person := range facts.AllPeople() {
		name := facts.Name(person)

		if !facts.HasRemuneration(person) {
			report.MissingComputation = append(report.MissingComputation, MissingComputation{
				Person: person,
				Name:   name,
				Note:   "Nenhum S-1200 encontrado. Impossível calcular Bruto/INSS.",
			})
			continue
		}

		observed := facts.PeriodsOf(person)

		if gap, ok := coverageGap(person, name, facts.Span(person), observed, year); ok {
			report.CoverageGaps = append(report.CoverageGaps, gap)
		}

		for _, period := range sortedPeriods(observed) {
			if !facts.Confirmed(person, period) {
				report.PendingPayments = append(report.PendingPayments, PendingPayment{
					Person:      person,
					Name:        name,
					Period:      period,
					PaymentDate: "",
					WithheldTax: decimal.Zero,
				})
			}
		}
	}

	return report
}

// coverageGap computes the expected competência range [start, end] within
// the target year and flags expected tokens absent from the observed set.
//
//	start = admission month when the admission year equals the target;
//	        13 when the admission is in a later year (no valid months);
//	        1 otherwise (no record, unparseable date, or an earlier year).
//	end   = termination month when the termination year equals the target;
//	        0 when the termination is in an earlier year;
//	        12 otherwise.
func coverageGap(person types.PersonID, name string, span *types.EmploymentSpan, observed map[types.Period]bool, year int) (CoverageGap, bool) {
	startMonth, endMonth := 1, 12
	admission := "Não encontrada (S-2200 ausente)"
	termination := "Ativo"

	if span != nil && span.AdmissionDate != "" {
		if dt, err := time.Parse(dateLayout, span.AdmissionDate); err == nil {
			admission = dt.Format("02/01/2006")
			if dt.Year() == year {
				startMonth = int(dt.Month())
			} else if dt.Year() > year {
				startMonth = 13
			}
		}
	}
	if span != nil && span.TerminationDate != "" {
		if dt, err := time.Parse(dateLayout, span.TerminationDate); err == nil {
			termination = dt.Format("02/01/2006")
			if dt.Year() == year {
				endMonth = int(dt.Month())
			} else if dt.Year() < year {
				endMonth = 0
			}
		}
	}

	var missing []types.Period
	for month := startMonth; month <= endMonth; month++ {
		expected := types.MonthPeriod(year, month)
		if !observed[expected] {
			missing = append(missing, expected)
		}
	}
	if len(missing) == 0 {
		return CoverageGap{}, false
	}

	return CoverageGap{
		Person:      person,
		Name:        name,
		Missing:     missing,
		Admission:   admission,
		Termination: termination,
		Rule:        fmt.Sprintf("Esperado de %02d/%d a %02d/%d", startMonth, year, endMonth, year),
	}, true
}

func sortedPeriods(set map[types.Period]bool) []types.Period {
	out := make([]types.Period, 0, len(set))
	for p := range set {
		out = append(out, p)
	}
	// lexicographic == chronological for year-month tokens
	sort.Slice(out, func(i, j int) bool { return out[i] < out[j] })
	return out
}
