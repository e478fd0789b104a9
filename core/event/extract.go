// Package event - per-kind fact extraction
package event

import (
	"strings"

	"github.com/beevik/etree"
	"github.com/shopspring/decimal"

	"esocial-informe/core/types"
)

// Facts is everything one document contributed. Collections are merged into
// the fact store by the caller; name and date maps are last-write-wins.
type Facts struct {
	// Items are remuneration lines from an S-1200
	Items []types.RemunerationItem

	// Confirmations are paid competências from an S-1210
	Confirmations []types.PaymentConfirmation

	// HealthCharges are health-plan entries from an S-1210
	HealthCharges []types.HealthPlanCharge

	// Names maps CPF to the worker name read from the document
	Names map[types.PersonID]string

	// Admissions maps CPF to a raw hire date
	Admissions map[types.PersonID]string

	// Terminations maps CPF to a raw termination date
	Terminations map[types.PersonID]string
}

func newFacts() *Facts {
	return &Facts{
		Names:        make(map[types.PersonID]string),
		Admissions:   make(map[types.PersonID]string),
		Terminations: make(map[types.PersonID]string),
	}
}

// Empty reports whether the document contributed nothing.
func (f *Facts) Empty() bool {
	return len(f.Items) == 0 && len(f.Confirmations) == 0 && len(f.HealthCharges) == 0 &&
		len(f.Names) == 0 && len(f.Admissions) == 0 && len(f.Terminations) == 0
}

// Extract parses and classifies one raw document and pulls its facts.
// Returns nil for malformed, unrecognized, or unusable documents; such
// documents are silently skipped by the batch layer.
func Extract(raw []byte) *Facts {
	doc := Parse(raw)
	if doc == nil {
		return nil
	}

	var facts *Facts
	switch Classify(doc) {
	case KindEmploymentStart:
		facts = extractEmploymentStart(doc)
	case KindEmploymentEnd:
		facts = extractEmploymentEnd(doc)
	case KindRemuneration:
		facts = extractRemuneration(doc)
	case KindPayment:
		facts = extractPayment(doc)
	default:
		return nil
	}

	if facts == nil || facts.Empty() {
		return nil
	}
	return facts
}

// firstText resolves an optional field through an ordered list of candidate
// paths; the first present non-empty element wins.
func firstText(root *etree.Document, paths ...string) (string, bool) {
	for _, p := range paths {
		if el := root.FindElement(p); el != nil {
			if text := strings.TrimSpace(el.Text()); text != "" {
				return text, true
			}
		}
	}
	return "", false
}

func childText(el *etree.Element, tag string) (string, bool) {
	child := el.SelectElement(tag)
	if child == nil {
		return "", false
	}
	text := strings.TrimSpace(child.Text())
	return text, text != ""
}

func extractEmploymentStart(doc *etree.Document) *Facts {
	cpf, ok := firstText(doc, "//cpfTrab")
	if !ok {
		return nil
	}
	person := types.PersonID(cpf)

	facts := newFacts()
	if name, ok := firstText(doc, "//nmTrab"); ok {
		facts.Names[person] = name
	}
	if start, ok := firstText(doc, "//dtAdm", "//dtInicio"); ok {
		facts.Admissions[person] = start
	}
	return facts
}

func extractEmploymentEnd(doc *etree.Document) *Facts {
	cpf, ok := firstText(doc, "//cpfTrab")
	if !ok {
		return nil
	}
	person := types.PersonID(cpf)

	facts := newFacts()
	if name, ok := firstText(doc, "//nmTrab"); ok {
		facts.Names[person] = name
	}
	if end, ok := firstText(doc, "//dtDeslig", "//dtTerm"); ok {
		facts.Terminations[person] = end
	}
	return facts
}

func extractRemuneration(doc *etree.Document) *Facts {
	cpf, ok := firstText(doc, "//cpfTrab")
	if !ok {
		return nil
	}
	period, ok := firstText(doc, "//perApur")
	if !ok {
		return nil
	}
	employer, _ := firstText(doc, "//ideEmpregador/nrInsc")

	facts := newFacts()
	for _, dmDev := range doc.FindElements("//dmDev") {
		for _, item := range dmDev.FindElements(".//itensRemun") {
			code, ok := childText(item, "codRubr")
			if !ok {
				continue
			}
			text, ok := childText(item, "vrRubr")
			if !ok {
				continue
			}
			amount, err := decimal.NewFromString(text)
			if err != nil {
				// bad amount drops this line only
				continue
			}
			facts.Items = append(facts.Items, types.RemunerationItem{
				Person:   types.PersonID(cpf),
				Period:   types.Period(period),
				PayCode:  code,
				Amount:   amount,
				Employer: employer,
			})
		}
	}
	return facts
}

func extractPayment(doc *etree.Document) *Facts {
	cpf, ok := firstText(doc, "//ideBenef/cpfBenef", "//cpfBenef")
	if !ok {
		return nil
	}
	person := types.PersonID(cpf)

	facts := newFacts()
	for _, pgto := range doc.FindElements("//infoPgto") {
		ref, ok := childText(pgto, "perRef")
		if !ok {
			continue
		}
		facts.Confirmations = append(facts.Confirmations, types.PaymentConfirmation{
			Person: person,
			Period: types.Period(ref),
		})
	}
	for _, plan := range doc.FindElements("//planSaude") {
		operator, ok := childText(plan, "cnpjOper")
		if !ok {
			continue
		}
		registration, ok := childText(plan, "regANS")
		if !ok {
			continue
		}
		text, ok := childText(plan, "vlrSaudeTit")
		if !ok {
			continue
		}
		amount, err := decimal.NewFromString(text)
		if err != nil {
			continue
		}
		facts.HealthCharges = append(facts.HealthCharges, types.HealthPlanCharge{
			Person:          person,
			OperatorCNPJ:    operator,
			ANSRegistration: registration,
			Amount:          amount,
		})
	}
	return facts
}
