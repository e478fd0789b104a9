// Package ledger holds the operator's manual payment corrections. Rows are
// seeded from the auditor's pending-payment list; a row only becomes an
// active correction once its payment date is filled in. Rows with an empty
// date are unresolved pendencies and never validate a competência.
package ledger

import (
	"github.com/shopspring/decimal"

	"esocial-informe/core/types"
)

// Correction is one operator-entered payment record supplementing a missing
// payment confirmation.
type Correction struct {
	// Person is the beneficiary CPF
	Person types.PersonID `json:"cpf"`

	// Period is the competência being validated
	Period types.Period `json:"period"`

	// PaymentDate is free text (DD/MM/AAAA); the row is active iff non-empty
	PaymentDate string `json:"payment_date"`

	// WithheldTax is the manual withheld-tax amount, added to the person's
	// monthly IRRF total
	WithheldTax decimal.Decimal `json:"withheld_tax"`
}

// Active reports whether the correction counts for aggregation.
func (c Correction) Active() bool {
	return c.PaymentDate != ""
}

// Ledger accumulates correction rows for one session. Multiple corrections
// for the same (person, competência) are legal; their tax amounts sum.
type Ledger struct {
	rows []Correction
}

// New returns an empty ledger.
func New() *Ledger {
	return &Ledger{}
}

// Seed adds an unresolved row for a pending (person, competência) pair.
func (l *Ledger) Seed(person types.PersonID, period types.Period) {
	l.rows = append(l.rows, Correction{
		Person:      person,
		Period:      period,
		WithheldTax: decimal.Zero,
	})
}

// Resolve fills the first unresolved row matching (person, competência), or
// appends a new row when none is pending.
func (l *Ledger) Resolve(person types.PersonID, period types.Period, paymentDate string, withheldTax decimal.Decimal) {
	for i := range l.rows {
		row := &l.rows[i]
		if row.Person == person && row.Period == period && !row.Active() {
			row.PaymentDate = paymentDate
			row.WithheldTax = withheldTax
			return
		}
	}
	l.rows = append(l.rows, Correction{
		Person:      person,
		Period:      period,
		PaymentDate: paymentDate,
		WithheldTax: withheldTax,
	})
}

// Rows returns every row, resolved or not.
func (l *Ledger) Rows() []Correction {
	return l.rows
}

// Active returns only the rows with a filled payment date.
func (l *Ledger) Active() []Correction {
	var out []Correction
	for _, row := range l.rows {
		if row.Active() {
			out = append(out, row)
		}
	}
	return out
}

// Pending returns the rows still waiting for a payment date.
func (l *Ledger) Pending() []Correction {
	var out []Correction
	for _, row := range l.rows {
		if !row.Active() {
			out = append(out, row)
		}
	}
	return out
}

// CoveredPeriods returns the competências a person has active corrections
// for.
func (l *Ledger) CoveredPeriods(p types.PersonID) map[types.Period]bool {
	out := make(map[types.Period]bool)
	for _, row := range l.rows {
		if row.Active() && row.Person == p {
			out[row.Period] = true
		}
	}
	return out
}

// WithheldTaxTotal sums the active manual tax amounts of a person.
func (l *Ledger) WithheldTaxTotal(p types.PersonID) decimal.Decimal {
	total := decimal.Zero
	for _, row := range l.rows {
		if row.Active() && row.Person == p {
			total = total.Add(row.WithheldTax)
		}
	}
	return total
}
