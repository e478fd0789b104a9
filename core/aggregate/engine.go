// Package aggregate combines validated remuneration facts, the operator's
// pay-code mapping, and active manual corrections into the per-person
// statement totals consumed by the renderers.
package aggregate

import (
	"fmt"
	"sort"
	"strings"

	"github.com/shopspring/decimal"

	"esocial-informe/core/ledger"
	"esocial-informe/core/store"
	"esocial-informe/core/types"
	"esocial-informe/internal/brl"
)

// NoHealthInfo is the fixed placeholder when a person has no health-plan
// charges.
const NoHealthInfo = "Sem informações complementares."

// Engine is a pure read over the finalized fact collections. Statements are
// recomputed on every call and never cached.
type Engine struct {
	facts   *store.FactStore
	ledger  *ledger.Ledger
	mapping types.PayCodeMapping
}

// New builds an engine over a finalized fact store, correction ledger, and
// pay-code mapping.
func New(facts *store.FactStore, led *ledger.Ledger, mapping types.PayCodeMapping) *Engine {
	return &Engine{facts: facts, ledger: led, mapping: mapping}
}

// Statements aggregates every person with at least one remuneration line,
// in sorted person order. Persons without computed pay (the blocking audit
// list) have no remuneration lines and therefore never appear here.
func (e *Engine) Statements() []types.Statement {
	people := e.facts.RemunerationPeople()
	out := make([]types.Statement, 0, len(people))
	for _, person := range people {
		out = append(out, e.statementFor(person))
	}
	return out
}

func (e *Engine) statementFor(person types.PersonID) types.Statement {
	validated := e.facts.ConfirmedPeriods(person)
	for period := range e.ledger.CoveredPeriods(person) {
		validated[period] = true
	}

	// An item counts iff its competência was confirmed or manually
	// corrected, or is the annual token.
	var valid []types.RemunerationItem
	for _, item := range e.facts.ItemsOf(person) {
		if validated[item.Period] || item.Period.IsAnnual() {
			valid = append(valid, item)
		}
	}

	sum := func(category types.Category) decimal.Decimal {
		total := decimal.Zero
		for _, item := range valid {
			if e.mapping.Has(category, item.PayCode) {
				total = total.Add(item.Amount)
			}
		}
		return total
	}

	gross := sum(types.CategoryGross)
	inss := sum(types.CategoryINSS)
	irrf := sum(types.CategoryIRRF).Add(e.ledger.WithheldTaxTotal(person))
	thirteenthGross := sum(types.CategoryThirteenthGross)
	thirteenthINSS := sum(types.CategoryThirteenthINSS)
	thirteenthIRRF := sum(types.CategoryThirteenthIRRF)

	return types.Statement{
		Person:          person,
		Name:            e.facts.Name(person),
		Gross:           gross,
		INSS:            inss,
		IRRF:            irrf,
		ThirteenthGross: thirteenthGross,
		ThirteenthINSS:  thirteenthINSS,
		ThirteenthIRRF:  thirteenthIRRF,
		// may go negative on a misconfigured INSS mapping; not clamped
		NetThirteenth: thirteenthGross.Sub(thirteenthINSS),
		HealthInfo:    healthInfo(e.facts.HealthOf(person)),
	}
}

type planGroup struct {
	operator     string
	registration string
}

// healthInfo groups charges by (operator, ANS registration), sums each
// group, and renders one line per group in deterministic order.
func healthInfo(charges []types.HealthPlanCharge) string {
	if len(charges) == 0 {
		return NoHealthInfo
	}

	totals := make(map[planGroup]decimal.Decimal)
	for _, c := range charges {
		key := planGroup{c.OperatorCNPJ, c.ANSRegistration}
		totals[key] = totals[key].Add(c.Amount)
	}

	groups := make([]planGroup, 0, len(totals))
	for g := range totals {
		groups = append(groups, g)
	}
	sort.Slice(groups, func(i, j int) bool {
		if groups[i].operator != groups[j].operator {
			return groups[i].operator < groups[j].operator
		}
		return groups[i].registration < groups[j].registration
	})

	var b strings.Builder
	b.WriteString("DESPESAS MÉDICAS/ODONTOLÓGICAS:\n")
	for _, g := range groups {
		fmt.Fprintf(&b, "OPERADORA CNPJ: %s (Reg. ANS: %s) - VALOR ANUAL: R$ %s\n",
			g.operator, g.registration, brl.Format(totals[g]))
	}
	return b.String()
}
