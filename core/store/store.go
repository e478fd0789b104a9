// Package store accumulates extracted facts into typed collections keyed by
// person and competência. The store is the explicit, caller-owned result of
// one batch run; facts are immutable once merged and a new document set
// starts from Reset.
package store

import (
	"sort"

	"esocial-informe/core/event"
	"esocial-informe/core/types"
)

type confirmationKey struct {
	person types.PersonID
	period types.Period
}

// FactStore holds every fact extracted from one document set.
type FactStore struct {
	items         []types.RemunerationItem
	confirmations map[confirmationKey]bool
	health        map[types.PersonID][]types.HealthPlanCharge
	names         map[types.PersonID]string
	spans         map[types.PersonID]*types.EmploymentSpan
}

// New returns an empty fact store.
func New() *FactStore {
	s := &FactStore{}
	s.Reset()
	return s
}

// Reset discards all facts. Callers invalidate explicitly when a new
// document set is supplied; nothing is cached across runs implicitly.
func (s *FactStore) Reset() {
	s.items = nil
	s.confirmations = make(map[confirmationKey]bool)
	s.health = make(map[types.PersonID][]types.HealthPlanCharge)
	s.names = make(map[types.PersonID]string)
	s.spans = make(map[types.PersonID]*types.EmploymentSpan)
}

// Merge folds one document's facts into the store. This is the single
// reduce step of the parallel extraction map-reduce; name and span entries
// are last-write-wins.
func (s *FactStore) Merge(f *event.Facts) {
	if f == nil {
		return
	}
	s.items = append(s.items, f.Items...)
	for _, c := range f.Confirmations {
		s.confirmations[confirmationKey{c.Person, c.Period}] = true
	}
	for _, h := range f.HealthCharges {
		s.health[h.Person] = append(s.health[h.Person], h)
	}
	for person, name := range f.Names {
		s.names[person] = name
	}
	for person, date := range f.Admissions {
		s.span(person).AdmissionDate = date
	}
	for person, date := range f.Terminations {
		s.span(person).TerminationDate = date
	}
}

func (s *FactStore) span(p types.PersonID) *types.EmploymentSpan {
	sp := s.spans[p]
	if sp == nil {
		sp = &types.EmploymentSpan{}
		s.spans[p] = sp
	}
	return sp
}

// Items returns every remuneration line in merge order.
func (s *FactStore) Items() []types.RemunerationItem {
	return s.items
}

// ItemsOf returns the remuneration lines of one person.
func (s *FactStore) ItemsOf(p types.PersonID) []types.RemunerationItem {
	var out []types.RemunerationItem
	for _, item := range s.items {
		if item.Person == p {
			out = append(out, item)
		}
	}
	return out
}

// PeriodsOf returns the set of competências observed in a person's
// remuneration lines.
func (s *FactStore) PeriodsOf(p types.PersonID) map[types.Period]bool {
	out := make(map[types.Period]bool)
	for _, item := range s.items {
		if item.Person == p {
			out[item.Period] = true
		}
	}
	return out
}

// RemunerationPeople returns the sorted set of persons with at least one
// remuneration line.
func (s *FactStore) RemunerationPeople() []types.PersonID {
	seen := make(map[types.PersonID]bool)
	for _, item := range s.items {
		seen[item.Person] = true
	}
	return sortedPeople(seen)
}

// HasRemuneration reports whether the person has any remuneration line.
func (s *FactStore) HasRemuneration(p types.PersonID) bool {
	for _, item := range s.items {
		if item.Person == p {
			return true
		}
	}
	return false
}

// AllPeople returns the sorted union of persons seen in remuneration or
// payment facts.
func (s *FactStore) AllPeople() []types.PersonID {
	seen := make(map[types.PersonID]bool)
	for _, item := range s.items {
		seen[item.Person] = true
	}
	for key := range s.confirmations {
		seen[key.person] = true
	}
	for person := range s.health {
		seen[person] = true
	}
	return sortedPeople(seen)
}

// Confirmed reports whether the (person, competência) pair has a payment
// confirmation.
func (s *FactStore) Confirmed(p types.PersonID, period types.Period) bool {
	return s.confirmations[confirmationKey{p, period}]
}

// ConfirmedPeriods returns the set of competências confirmed as paid for a
// person.
func (s *FactStore) ConfirmedPeriods(p types.PersonID) map[types.Period]bool {
	out := make(map[types.Period]bool)
	for key := range s.confirmations {
		if key.person == p {
			out[key.period] = true
		}
	}
	return out
}

// HealthOf returns a person's health-plan charges.
func (s *FactStore) HealthOf(p types.PersonID) []types.HealthPlanCharge {
	return s.health[p]
}

// Span returns a person's employment span, nil when no hire or termination
// event was seen.
func (s *FactStore) Span(p types.PersonID) *types.EmploymentSpan {
	return s.spans[p]
}

// Name resolves a person's display name, falling back to the synthesized
// placeholder so every person renders with something.
func (s *FactStore) Name(p types.PersonID) string {
	if name, ok := s.names[p]; ok && name != "" {
		return name
	}
	return types.PlaceholderName(p)
}

// SetName records an operator name override.
func (s *FactStore) SetName(p types.PersonID, name string) {
	if name == "" {
		delete(s.names, p)
		return
	}
	s.names[p] = name
}

// PayCodes returns the sorted set of distinct rubrica codes seen in
// remuneration lines, for the operator's mapping screen.
func (s *FactStore) PayCodes() []string {
	seen := make(map[string]bool)
	for _, item := range s.items {
		seen[item.PayCode] = true
	}
	out := make([]string, 0, len(seen))
	for code := range seen {
		out = append(out, code)
	}
	sort.Strings(out)
	return out
}

func sortedPeople(seen map[types.PersonID]bool) []types.PersonID {
	out := make([]types.PersonID, 0, len(seen))
	for p := range seen {
		out = append(out, p)
	}
	sort.Slice(out, func(i, j int) bool { return out[i] < out[j] })
	return out
}
