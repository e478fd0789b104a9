// Package event parses individual eSocial event documents into typed fact
// records. Documents are classified into exactly one event kind by marker
// elements, then field extraction is best-effort: a bad value drops the
// smallest enclosing fact, never the whole batch.
package event

import (
	"bytes"

	"github.com/beevik/etree"
)

// Kind discriminates the supported eSocial event families.
type Kind int

const (
	// KindUnknown is any document without a recognized marker
	KindUnknown Kind = iota

	// KindEmploymentStart is a hire/engagement event (S-2200, S-2300)
	KindEmploymentStart

	// KindEmploymentEnd is a termination event (S-2299, S-2399)
	KindEmploymentEnd

	// KindRemuneration is a computed-pay event (S-1200)
	KindRemuneration

	// KindPayment is a payment event (S-1210)
	KindPayment
)

// String returns the event kind name
func (k Kind) String() string {
	switch k {
	case KindEmploymentStart:
		return "employment-start"
	case KindEmploymentEnd:
		return "employment-end"
	case KindRemuneration:
		return "remuneration"
	case KindPayment:
		return "payment"
	default:
		return "unknown"
	}
}

// Parse reads a raw XML document and strips namespace prefixes from every
// element so marker and field lookups match on local names alone. Malformed
// input yields nil.
func Parse(raw []byte) *etree.Document {
	doc := etree.NewDocument()
	if err := doc.ReadFromBytes(bytes.TrimSpace(raw)); err != nil {
		return nil
	}
	stripNamespaces(&doc.Element)
	return doc
}

func stripNamespaces(el *etree.Element) {
	el.Space = ""
	for _, child := range el.ChildElements() {
		stripNamespaces(child)
	}
}

// Classify decides the event kind of a parsed document. Precedence is fixed
// and the first matching rule wins:
//
//  1. employment-start: has a trabalhador element and no termination marker
//  2. employment-end: has a desligamento or termino element
//  3. remuneration: has an evtRemun element
//  4. payment: has an evtPgtos element
//
// A hire document that also carries a termination marker therefore
// classifies as employment-end.
func Classify(doc *etree.Document) Kind {
	hasWorker := doc.FindElement("//trabalhador") != nil
	hasEnd := doc.FindElement("//desligamento") != nil || doc.FindElement("//termino") != nil

	switch {
	case hasWorker && !hasEnd:
		return KindEmploymentStart
	case hasEnd:
		return KindEmploymentEnd
	case doc.FindElement("//evtRemun") != nil:
		return KindRemuneration
	case doc.FindElement("//evtPgtos") != nil:
		return KindPayment
	default:
		return KindUnknown
	}
}
