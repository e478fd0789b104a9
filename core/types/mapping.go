// Package types - pay-code categorization
package types

// Category is one of the six income-statement buckets a rubrica can be
// mapped to by the operator.
type Category string

const (
	// CategoryGross is taxable salary and vacation pay
	CategoryGross Category = "gross"

	// CategoryThirteenthGross is gross 13th salary
	CategoryThirteenthGross Category = "thirteenth_gross"

	// CategoryINSS is the monthly official social-security contribution
	CategoryINSS Category = "inss"

	// CategoryThirteenthINSS is social security withheld over the 13th salary
	CategoryThirteenthINSS Category = "thirteenth_inss"

	// CategoryIRRF is monthly withheld income tax
	CategoryIRRF Category = "irrf"

	// CategoryThirteenthIRRF is income tax withheld over the 13th salary
	CategoryThirteenthIRRF Category = "thirteenth_irrf"
)

// Categories lists all buckets in statement order.
func Categories() []Category {
	return []Category{
		CategoryGross,
		CategoryThirteenthGross,
		CategoryINSS,
		CategoryThirteenthINSS,
		CategoryIRRF,
		CategoryThirteenthIRRF,
	}
}

// PayCodeMapping maps each category to the set of rubrica codes the operator
// assigned to it. A code may legally appear in more than one category; the
// resulting double count is the operator's responsibility and is not guarded
// against.
type PayCodeMapping map[Category]map[string]bool

// NewPayCodeMapping returns a mapping with every category present and empty.
func NewPayCodeMapping() PayCodeMapping {
	m := make(PayCodeMapping, len(Categories()))
	for _, c := range Categories() {
		m[c] = make(map[string]bool)
	}
	return m
}

// Assign adds pay-codes to a category's set.
func (m PayCodeMapping) Assign(c Category, codes ...string) {
	set := m[c]
	if set == nil {
		set = make(map[string]bool)
		m[c] = set
	}
	for _, code := range codes {
		set[code] = true
	}
}

// Has reports whether the category's set contains the pay-code.
func (m PayCodeMapping) Has(c Category, code string) bool {
	return m[c][code]
}

// Empty reports whether the category has no codes assigned.
func (m PayCodeMapping) Empty(c Category) bool {
	return len(m[c]) == 0
}
