// Package session loads the operator's per-run state: the target calendar
// year, the employer identity, the rubrica-to-category mapping, name
// overrides, and manual payment corrections. The session file is HCL,
// block-structured and hand-edited between audit and generate runs.
package session

import (
	"github.com/hashicorp/hcl/v2/hclsimple"
	"github.com/shopspring/decimal"

	"esocial-informe/core/ledger"
	"esocial-informe/core/types"
	"esocial-informe/internal/errors"
)

// Year plausibility bounds, matching the operator input range.
const (
	MinYear = 2020
	MaxYear = 2030
)

// Employer identifies the paying source printed on every statement.
type Employer struct {
	// Name is the employer display name
	Name string `hcl:"name"`

	// CNPJ is the employer tax id
	CNPJ string `hcl:"cnpj"`
}

type categoryBlock struct {
	Name  string   `hcl:"name,label"`
	Codes []string `hcl:"codes"`
}

type nameBlock struct {
	CPF   string `hcl:"cpf,label"`
	Value string `hcl:"value"`
}

type correctionBlock struct {
	CPF         string `hcl:"cpf"`
	Period      string `hcl:"period"`
	Paid        string `hcl:"paid,optional"`
	WithheldTax string `hcl:"withheld_tax,optional"`
}

type file struct {
	Year        int               `hcl:"year"`
	Employer    *Employer         `hcl:"employer,block"`
	Categories  []categoryBlock   `hcl:"category,block"`
	Names       []nameBlock       `hcl:"name,block"`
	Corrections []correctionBlock `hcl:"correction,block"`
}

// Session is the decoded, validated operator state.
type Session struct {
	// Year is the target calendar year
	Year int

	// Employer is the paying source
	Employer Employer

	// Mapping assigns rubrica codes to statement categories
	Mapping types.PayCodeMapping

	// Names are operator display-name overrides by CPF
	Names map[types.PersonID]string

	// Corrections are the manual payment corrections
	Corrections []ledger.Correction
}

// Load reads and validates a session file.
func Load(path string) (*Session, error) {
	var f file
	if err := hclsimple.DecodeFile(path, nil, &f); err != nil {
		return nil, errors.Wrap(errors.TypeConfig, "decoding session file", err)
	}
	return build(&f)
}

// Decode parses session content from memory; filename picks the HCL or JSON
// syntax and shows up in diagnostics.
func Decode(filename string, src []byte) (*Session, error) {
	var f file
	if err := hclsimple.Decode(filename, src, nil, &f); err != nil {
		return nil, errors.Wrap(errors.TypeConfig, "decoding session file", err)
	}
	return build(&f)
}

func build(f *file) (*Session, error) {
	if f.Year < MinYear || f.Year > MaxYear {
		return nil, errors.Newf(errors.TypeConfig, "year %d outside plausible range %d-%d", f.Year, MinYear, MaxYear)
	}

	s := &Session{
		Year:    f.Year,
		Mapping: types.NewPayCodeMapping(),
		Names:   make(map[types.PersonID]string),
	}
	if f.Employer != nil {
		s.Employer = *f.Employer
	}

	known := make(map[types.Category]bool)
	for _, c := range types.Categories() {
		known[c] = true
	}
	for _, block := range f.Categories {
		category := types.Category(block.Name)
		if !known[category] {
			return nil, errors.Newf(errors.TypeConfig, "unknown category %q", block.Name)
		}
		s.Mapping.Assign(category, block.Codes...)
	}

	for _, block := range f.Names {
		s.Names[types.PersonID(block.CPF)] = block.Value
	}

	for _, block := range f.Corrections {
		tax := decimal.Zero
		if block.WithheldTax != "" {
			parsed, err := decimal.NewFromString(block.WithheldTax)
			if err != nil {
				return nil, errors.Wrapf(errors.TypeConfig, err, "correction %s/%s: bad withheld_tax", block.CPF, block.Period)
			}
			tax = parsed
		}
		s.Corrections = append(s.Corrections, ledger.Correction{
			Person:      types.PersonID(block.CPF),
			Period:      types.Period(block.Period),
			PaymentDate: block.Paid,
			WithheldTax: tax,
		})
	}

	return s, nil
}

// RequireGrossMapping refuses statement generation without gross-salary
// rubrica codes, mirroring the operator flow that blocks export until the
// mapping is filled.
func (s *Session) RequireGrossMapping() error {
	if s.Mapping.Empty(types.CategoryGross) {
		return errors.Config("no gross-salary pay-codes mapped; assign codes to the \"gross\" category")
	}
	return nil
}
